package memory

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/hemera/pkg/domain/interfaces"
)

// ErrNotFound indicates the requested record does not exist
var ErrNotFound = goerr.New("not found")

// Repository is an in-memory implementation of the repository interfaces.
// All records are lost when the process exits.
type Repository struct {
	sessions *sessionStore
}

var _ interfaces.SessionRepository = &Repository{}

func New() *Repository {
	return &Repository{
		sessions: newSessionStore(),
	}
}

package interfaces

import (
	"context"
	"time"

	"github.com/secmon-lab/hemera/pkg/domain/model"
	"github.com/secmon-lab/hemera/pkg/domain/types"
)

// SessionRepository defines the interface for chat session accounting
type SessionRepository interface {
	// Put registers a session (upsert)
	Put(ctx context.Context, sess *model.Session) error

	// Get retrieves a session by ID
	Get(ctx context.Context, id types.SessionID) (*model.Session, error)

	// Touch updates the session's last-active time
	Touch(ctx context.Context, id types.SessionID, now time.Time) error

	// Delete removes a session by ID
	Delete(ctx context.Context, id types.SessionID) error

	// Count returns the number of registered sessions
	Count(ctx context.Context) (int, error)

	// PruneIdle deletes sessions whose last activity is before the given
	// time and returns the number of sessions deleted
	PruneIdle(ctx context.Context, before time.Time) (int, error)
}

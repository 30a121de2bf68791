package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/hemera/pkg/domain/model"
	"github.com/secmon-lab/hemera/pkg/domain/types"
)

type sessionStore struct {
	mu       sync.RWMutex
	sessions map[types.SessionID]*model.Session
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		sessions: make(map[types.SessionID]*model.Session),
	}
}

func copySession(s *model.Session) *model.Session {
	copied := *s
	return &copied
}

func (r *Repository) Put(ctx context.Context, sess *model.Session) error {
	if sess == nil {
		return goerr.New("session is nil")
	}
	if sess.ID == "" {
		return goerr.New("session ID is required")
	}

	r.sessions.mu.Lock()
	defer r.sessions.mu.Unlock()

	r.sessions.sessions[sess.ID] = copySession(sess)
	return nil
}

func (r *Repository) Get(ctx context.Context, id types.SessionID) (*model.Session, error) {
	r.sessions.mu.RLock()
	defer r.sessions.mu.RUnlock()

	sess, ok := r.sessions.sessions[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "session not found", goerr.V("id", id))
	}

	return copySession(sess), nil
}

func (r *Repository) Touch(ctx context.Context, id types.SessionID, now time.Time) error {
	r.sessions.mu.Lock()
	defer r.sessions.mu.Unlock()

	sess, ok := r.sessions.sessions[id]
	if !ok {
		return goerr.Wrap(ErrNotFound, "session not found", goerr.V("id", id))
	}

	sess.Touch(now)
	return nil
}

func (r *Repository) Delete(ctx context.Context, id types.SessionID) error {
	r.sessions.mu.Lock()
	defer r.sessions.mu.Unlock()

	if _, ok := r.sessions.sessions[id]; !ok {
		return goerr.Wrap(ErrNotFound, "session not found", goerr.V("id", id))
	}

	delete(r.sessions.sessions, id)
	return nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	r.sessions.mu.RLock()
	defer r.sessions.mu.RUnlock()

	return len(r.sessions.sessions), nil
}

func (r *Repository) PruneIdle(ctx context.Context, before time.Time) (int, error) {
	r.sessions.mu.Lock()
	defer r.sessions.mu.Unlock()

	pruned := 0
	for id, sess := range r.sessions.sessions {
		if sess.LastActiveAt.Before(before) {
			delete(r.sessions.sessions, id)
			pruned++
		}
	}

	return pruned, nil
}

package worker

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/hemera/pkg/domain/interfaces"
	"github.com/secmon-lab/hemera/pkg/utils/logging"
)

// SessionReaper removes chat sessions that stayed idle beyond the TTL
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - Session metadata lives in process memory, so the reaper only keeps the
//   registry from growing without bound
type SessionReaper struct {
	sessions interfaces.SessionRepository
	ttl      time.Duration
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewSessionReaper creates a worker that prunes idle sessions every interval
func NewSessionReaper(sessions interfaces.SessionRepository, ttl, interval time.Duration) *SessionReaper {
	return &SessionReaper{
		sessions: sessions,
		ttl:      ttl,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop. Does not block server startup.
func (w *SessionReaper) Start(ctx context.Context) error {
	logging.Default().Info("Session reaper starting",
		"ttl", w.ttl.String(),
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *SessionReaper) Stop() {
	logging.Default().Info("Session reaper stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Session reaper stopped")
}

// run is the main worker loop (runs in goroutine)
func (w *SessionReaper) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.sweep(ctx); err != nil {
				// Log error but continue worker
				logging.Default().Error("Session sweep failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			logging.Default().Info("Session reaper received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("Session reaper context cancelled")
			return
		}
	}
}

// sweep performs a single prune cycle
func (w *SessionReaper) sweep(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-w.ttl)

	pruned, err := w.sessions.PruneIdle(ctx, cutoff)
	if err != nil {
		return goerr.Wrap(err, "failed to prune idle sessions")
	}
	if pruned == 0 {
		return nil
	}

	active, err := w.sessions.Count(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to count sessions")
	}

	logging.Default().Info("Idle sessions pruned",
		"pruned", pruned,
		"active", active)

	return nil
}

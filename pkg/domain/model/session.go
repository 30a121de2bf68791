package model

import (
	"time"

	"github.com/secmon-lab/hemera/pkg/domain/types"
)

// Session is the metadata of one chat connection. The conversation history
// itself lives in the agent bound to the connection and is never persisted.
type Session struct {
	ID           types.SessionID
	CreatedAt    time.Time
	LastActiveAt time.Time
}

// NewSession creates session metadata with a fresh ID
func NewSession(now time.Time) *Session {
	return &Session{
		ID:           types.NewSessionID(),
		CreatedAt:    now,
		LastActiveAt: now,
	}
}

// Touch updates the last-active timestamp
func (x *Session) Touch(now time.Time) {
	x.LastActiveAt = now
}

package types

import "github.com/google/uuid"

// SessionID is a UUID-based identifier for a chat session
type SessionID string

// NewSessionID generates a new UUID v4 SessionID
func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

// String returns the string representation of the session ID
func (s SessionID) String() string {
	return string(s)
}

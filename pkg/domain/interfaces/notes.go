package interfaces

import "context"

// NoteSource defines the interface for dated note retrieval
type NoteSource interface {
	// RecentNotes returns a digest of the most recent dated notes.
	// count selects how many notes to include; zero or negative falls
	// back to the default window.
	RecentNotes(ctx context.Context, count int) (string, error)
}

package interfaces

import (
	"context"

	"github.com/secmon-lab/hemera/pkg/domain/model"
)

// CalendarService defines the interface for the user's calendar backend
type CalendarService interface {
	// ListUpcoming returns a human-readable digest of events starting
	// within the next 72 hours, one line per event
	ListUpcoming(ctx context.Context) (string, error)

	// AddEvent creates an event and returns a confirmation message
	// including the event link when the backend provides one
	AddEvent(ctx context.Context, req *model.AddEventRequest) (string, error)

	// EditEvent applies a partial update to an existing event and returns
	// a confirmation message
	EditEvent(ctx context.Context, req *model.EditEventRequest) (string, error)
}

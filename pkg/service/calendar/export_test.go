package calendar

import (
	calendar "google.golang.org/api/calendar/v3"

	"github.com/secmon-lab/hemera/pkg/domain/interfaces"
)

// Export internal functions for testing
var (
	TimeBlocks        = timeBlocks
	ResolveEventTimes = resolveEventTimes
	EventLine         = eventLine
	Confirmation      = confirmation
	Fallback          = fallback
	BlockTime         = blockTime
)

// NewForTest creates a calendar client for testing purposes
func NewForTest(svc *calendar.Service) interfaces.CalendarService {
	return &client{svc: svc}
}

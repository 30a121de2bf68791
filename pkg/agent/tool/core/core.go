// Package core provides the built-in tool set of the assistant:
// arithmetic evaluation, dated-note retrieval, and calendar operations.
package core

import (
	"github.com/secmon-lab/hemera/pkg/agent/tool"
	"github.com/secmon-lab/hemera/pkg/domain/interfaces"
)

// New builds the base tool set available to every chat session.
func New(notes interfaces.NoteSource) []tool.Tool {
	return []tool.Tool{
		&calculatorTool{},
		&notesTool{source: notes},
	}
}

// NewWithCalendar builds the full tool set for sessions that have a
// calendar backend bound. The calendar tools also guard themselves, so
// registering them with a nil service degrades to a "not configured"
// answer instead of a failure.
func NewWithCalendar(notes interfaces.NoteSource, cal interfaces.CalendarService) []tool.Tool {
	tools := New(notes)
	return append(tools,
		&calendarListTool{svc: cal},
		&calendarAddTool{svc: cal},
		&calendarEditTool{svc: cal},
	)
}

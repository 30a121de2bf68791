package calendar

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	calendar "google.golang.org/api/calendar/v3"

	"github.com/secmon-lab/hemera/pkg/domain/model"
)

// timeBlocks builds the wire representation of a start/end pair. All-day
// events carry date-only blocks; timed events carry RFC3339 date-times
// with the zone name attached only when one was supplied.
func timeBlocks(start, end model.TimePoint, tz string) (*calendar.EventDateTime, *calendar.EventDateTime) {
	if start.AllDay {
		return &calendar.EventDateTime{Date: start.DateString()},
			&calendar.EventDateTime{Date: end.DateString()}
	}

	startBlock := &calendar.EventDateTime{DateTime: start.RFC3339String()}
	endBlock := &calendar.EventDateTime{DateTime: end.RFC3339String()}
	if tz != "" {
		startBlock.TimeZone = tz
		endBlock.TimeZone = tz
	}
	return startBlock, endBlock
}

// resolveEventTimes computes the effective start/end for an edit. Payload
// values win; otherwise the stored event's raw representations are reused.
// The zone preference is payload, then stored start, then stored end. A
// stored end always wins over a supplied duration.
func resolveEventTimes(req *model.EditEventRequest, existing *calendar.Event) (model.TimePoint, model.TimePoint, string, error) {
	tz := req.TimeZone
	if tz == "" {
		tz = blockZone(existing.Start)
	}
	if tz == "" {
		tz = blockZone(existing.End)
	}

	startRaw := req.StartTime
	if startRaw == "" {
		startRaw = blockTime(existing.Start)
	}
	endRaw := req.EndTime
	if endRaw == "" {
		endRaw = blockTime(existing.End)
	}

	if startRaw == "" {
		return model.TimePoint{}, model.TimePoint{}, "", goerr.Wrap(model.ErrInvalidPayload,
			"Event has no start time; provide start_time", goerr.V(model.EventIDKey, req.EventID))
	}

	start, err := model.ParseTimeValue(startRaw, tz)
	if err != nil {
		return model.TimePoint{}, model.TimePoint{}, "", err
	}
	end, err := model.ComputeEnd(start, endRaw, req.DurationMinutes)
	if err != nil {
		return model.TimePoint{}, model.TimePoint{}, "", err
	}

	return start, end, tz, nil
}

// blockTime returns the raw time of a wire block, preferring the timed
// representation.
func blockTime(block *calendar.EventDateTime) string {
	if block == nil {
		return ""
	}
	if block.DateTime != "" {
		return block.DateTime
	}
	return block.Date
}

// blockZone returns the zone name of a wire block.
func blockZone(block *calendar.EventDateTime) string {
	if block == nil {
		return ""
	}
	return block.TimeZone
}

// fallback returns value unless it is empty, in which case the stored
// value is kept.
func fallback(value, stored string) string {
	if value != "" {
		return value
	}
	return stored
}

// eventLine formats one row of the upcoming-events listing.
func eventLine(ev *calendar.Event) string {
	when := blockTime(ev.Start)
	if when == "" {
		when = "unknown"
	}
	summary := ev.Summary
	if summary == "" {
		summary = "Untitled"
	}
	return fmt.Sprintf("%s – %s (id: %s)", when, summary, ev.Id)
}

// confirmation renders the message returned after a create or update,
// echoing the times the backend stored rather than the ones requested.
func confirmation(verb string, ev *calendar.Event) string {
	msg := fmt.Sprintf("%s calendar event %q (%s → %s).", verb, ev.Summary, blockTime(ev.Start), blockTime(ev.End))
	if ev.HtmlLink != "" {
		msg += " Link: " + ev.HtmlLink
	}
	return msg
}

package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// TimePoint is a resolved point in time for a calendar event. When AllDay
// is set the instant is pinned to midnight of its date and the event is
// represented by date-only boundaries on the wire.
type TimePoint struct {
	Time   time.Time
	AllDay bool
}

// DateString returns the date-only wire form of the time point.
func (x TimePoint) DateString() string {
	return x.Time.Format("2006-01-02")
}

// RFC3339String returns the timed wire form of the time point.
func (x TimePoint) RFC3339String() string {
	return x.Time.Format(time.RFC3339)
}

// Layouts accepted by the lenient local-time path, tried in order after
// RFC3339 and bare-date parsing have failed.
var lenientLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// ParseTimeValue resolves a flexible date/time string into a TimePoint.
// Accepted forms, first match wins:
//  1. RFC3339 with a UTC offset ("Z" included) -> timed
//  2. Bare date (YYYY-MM-DD) -> all-day, midnight of that date
//  3. Lenient local patterns (YYYY-MM-DD HH:MM and the T-separated
//     variants with and without seconds) -> timed
//
// On the lenient path a supplied zone name does not convert the wall-clock
// value; it is tagged with a zero UTC offset as-is.
// TODO: resolve tz via time.LoadLocation and convert the wall-clock value
// instead of pinning offset zero.
func ParseTimeValue(raw, tz string) (TimePoint, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return TimePoint{}, goerr.Wrap(ErrParseTime, "time value is empty")
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return TimePoint{Time: t}, nil
	}

	if t, err := time.Parse("2006-01-02", value); err == nil {
		return TimePoint{Time: t, AllDay: true}, nil
	}

	for _, layout := range lenientLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return TimePoint{Time: t}, nil
		}
	}

	return TimePoint{}, goerr.Wrap(ErrParseTime, "unsupported time format", goerr.V(TimeValueKey, value))
}

// ComputeEnd resolves the end of an event from its start and optional
// explicit end or duration. An explicit end must agree with the start on
// all-day vs timed. Without one, all-day events span one day, timed events
// span the given duration, and one hour is the fallback.
func ComputeEnd(start TimePoint, explicitEnd string, durationMinutes int) (TimePoint, error) {
	if explicitEnd != "" {
		end, err := ParseTimeValue(explicitEnd, "")
		if err != nil {
			return TimePoint{}, err
		}
		if end.AllDay != start.AllDay {
			return TimePoint{}, ErrAllDayMismatch
		}
		return end, nil
	}

	if start.AllDay {
		return TimePoint{Time: start.Time.AddDate(0, 0, 1), AllDay: true}, nil
	}
	if durationMinutes > 0 {
		return TimePoint{Time: start.Time.Add(time.Duration(durationMinutes) * time.Minute)}, nil
	}
	return TimePoint{Time: start.Time.Add(time.Hour)}, nil
}

package model

import "github.com/m-mizutani/goerr/v2"

// Time and payload errors. The messages are shown to the model as tool
// observations, so they stay human-readable.
var (
	ErrParseTime      = goerr.New("could not parse time; use RFC3339 or YYYY-MM-DD for all-day events")
	ErrAllDayMismatch = goerr.New("start_time and end_time must both be date-only or both include time")
	ErrInvalidPayload = goerr.New("invalid event payload")
)

// Context keys for error values
const (
	TimeValueKey = "time_value"
	EventIDKey   = "event_id"
)

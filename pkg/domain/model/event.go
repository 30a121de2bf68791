package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// AddEventRequest is the tool payload for creating a calendar event.
// StartTime and EndTime are flexible strings resolved by ParseTimeValue.
type AddEventRequest struct {
	Summary         string `json:"summary"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	Description     string `json:"description,omitempty"`
	Location        string `json:"location,omitempty"`
	TimeZone        string `json:"time_zone,omitempty"`
}

// Validate checks the required fields of the add payload
func (x *AddEventRequest) Validate() error {
	if x.Summary == "" {
		return goerr.Wrap(ErrInvalidPayload, "summary is required")
	}
	if x.StartTime == "" {
		return goerr.Wrap(ErrInvalidPayload, "start_time is required")
	}
	return nil
}

// ParseAddEventRequest decodes and validates a raw add-event payload
func ParseAddEventRequest(raw string) (*AddEventRequest, error) {
	var req AddEventRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return nil, goerr.Wrap(ErrInvalidPayload, "could not decode add event payload", goerr.V("cause", err.Error()))
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// EditEventRequest is the tool payload for updating a calendar event.
// Fields left empty fall back to the stored event's current values.
type EditEventRequest struct {
	EventID         string `json:"event_id"`
	Summary         string `json:"summary,omitempty"`
	Description     string `json:"description,omitempty"`
	StartTime       string `json:"start_time,omitempty"`
	EndTime         string `json:"end_time,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	TimeZone        string `json:"time_zone,omitempty"`
	Location        string `json:"location,omitempty"`
}

// Validate checks the required fields of the edit payload
func (x *EditEventRequest) Validate() error {
	if x.EventID == "" {
		return goerr.Wrap(ErrInvalidPayload, "event_id is required")
	}
	return nil
}

// ParseEditEventRequest decodes and validates a raw edit-event payload
func ParseEditEventRequest(raw string) (*EditEventRequest, error) {
	var req EditEventRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return nil, goerr.Wrap(ErrInvalidPayload, "could not decode edit event payload", goerr.V("cause", err.Error()))
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

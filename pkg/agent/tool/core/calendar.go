package core

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/hemera/pkg/agent/tool"
	"github.com/secmon-lab/hemera/pkg/domain/interfaces"
	"github.com/secmon-lab/hemera/pkg/domain/model"
)

// errCalendarNotConfigured is the observation shown to the model when a
// calendar tool runs without a bound backend.
func errCalendarNotConfigured() error {
	return goerr.New("Calendar is not configured")
}

// calendarListTool lists upcoming events
type calendarListTool struct {
	svc interfaces.CalendarService
}

func (t *calendarListTool) Name() string {
	return "calendar"
}

func (t *calendarListTool) Description() string {
	return "List the user's upcoming Google Calendar events for the next 72 hours, including each event's id."
}

func (t *calendarListTool) Parameters() map[string]*gollem.Parameter {
	return map[string]*gollem.Parameter{}
}

func (t *calendarListTool) Invoke(ctx context.Context, _ string) (string, error) {
	if t.svc == nil {
		return "", errCalendarNotConfigured()
	}
	tool.Update(ctx, "Fetching upcoming events...")
	return t.svc.ListUpcoming(ctx)
}

// calendarAddTool creates a calendar event
type calendarAddTool struct {
	svc interfaces.CalendarService
}

func (t *calendarAddTool) Name() string {
	return "calendar_add_event"
}

func (t *calendarAddTool) Description() string {
	return "Add a new event to Google Calendar. Provide JSON with summary, start_time, optional end_time or duration_minutes, description, location, and time_zone."
}

func (t *calendarAddTool) Parameters() map[string]*gollem.Parameter {
	return map[string]*gollem.Parameter{
		"summary":          {Type: gollem.TypeString, Required: true},
		"start_time":       {Type: gollem.TypeString, Required: true},
		"end_time":         {Type: gollem.TypeString},
		"duration_minutes": {Type: gollem.TypeInteger},
		"description":      {Type: gollem.TypeString},
		"location":         {Type: gollem.TypeString},
		"time_zone":        {Type: gollem.TypeString},
	}
}

func (t *calendarAddTool) Invoke(ctx context.Context, raw string) (string, error) {
	if t.svc == nil {
		return "", errCalendarNotConfigured()
	}

	req, err := model.ParseAddEventRequest(raw)
	if err != nil {
		return "", err
	}

	tool.Update(ctx, "Creating calendar event: "+req.Summary)
	return t.svc.AddEvent(ctx, req)
}

// calendarEditTool updates an existing calendar event
type calendarEditTool struct {
	svc interfaces.CalendarService
}

func (t *calendarEditTool) Name() string {
	return "calendar_edit_event"
}

func (t *calendarEditTool) Description() string {
	return "Edit an existing Google Calendar event. Provide event_id and any fields to update (summary, description, start_time, end_time, duration_minutes, time_zone, location)."
}

func (t *calendarEditTool) Parameters() map[string]*gollem.Parameter {
	return map[string]*gollem.Parameter{
		"event_id":         {Type: gollem.TypeString, Required: true},
		"summary":          {Type: gollem.TypeString},
		"description":      {Type: gollem.TypeString},
		"start_time":       {Type: gollem.TypeString},
		"end_time":         {Type: gollem.TypeString},
		"duration_minutes": {Type: gollem.TypeInteger},
		"time_zone":        {Type: gollem.TypeString},
		"location":         {Type: gollem.TypeString},
	}
}

func (t *calendarEditTool) Invoke(ctx context.Context, raw string) (string, error) {
	if t.svc == nil {
		return "", errCalendarNotConfigured()
	}

	req, err := model.ParseEditEventRequest(raw)
	if err != nil {
		return "", err
	}

	tool.Update(ctx, "Updating calendar event: "+req.EventID)
	return t.svc.EditEvent(ctx, req)
}

// Package calendar adapts Google Calendar v3 to the assistant's event
// operations. All responses are human-readable strings meant to be shown
// to the model as tool observations.
package calendar

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/secmon-lab/hemera/pkg/domain/interfaces"
	"github.com/secmon-lab/hemera/pkg/domain/model"
)

// ErrBackend indicates the calendar backend could not be constructed or
// reached.
var ErrBackend = goerr.New("calendar backend error")

const primaryCalendarID = "primary"

// listWindow is how far ahead ListUpcoming looks.
const listWindow = 72 * time.Hour

// client implements interfaces.CalendarService over the Google Calendar API
type client struct {
	svc *calendar.Service
}

var _ interfaces.CalendarService = &client{}

// NewFromToken creates a calendar service authorized by an OAuth token
// obtained through the login flow.
func NewFromToken(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token) (interfaces.CalendarService, error) {
	if cfg == nil || token == nil {
		return nil, goerr.Wrap(ErrBackend, "oauth client and token are required")
	}

	httpClient := oauth2.NewClient(ctx, cfg.TokenSource(ctx, token))
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create calendar service")
	}

	return &client{svc: svc}, nil
}

// NewFromCredentialsFile creates a calendar service authorized by a service
// account credentials file.
func NewFromCredentialsFile(ctx context.Context, path string) (interfaces.CalendarService, error) {
	if path == "" {
		return nil, goerr.Wrap(ErrBackend, "credentials file path is required")
	}

	svc, err := calendar.NewService(ctx,
		option.WithCredentialsFile(path),
		option.WithScopes(calendar.CalendarScope),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create calendar service", goerr.V("path", path))
	}

	return &client{svc: svc}, nil
}

// ListUpcoming returns one line per event starting within the next 72
// hours on the primary calendar, recurring events expanded.
func (c *client) ListUpcoming(ctx context.Context) (string, error) {
	now := time.Now().UTC()
	events, err := c.svc.Events.List(primaryCalendarID).
		TimeMin(now.Format(time.RFC3339)).
		TimeMax(now.Add(listWindow).Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return "", goerr.Wrap(err, "failed to list events")
	}

	if len(events.Items) == 0 {
		return "No upcoming events found.", nil
	}

	lines := make([]string, 0, len(events.Items))
	for _, ev := range events.Items {
		lines = append(lines, eventLine(ev))
	}
	return strings.Join(lines, "\n"), nil
}

// AddEvent creates an event on the primary calendar and returns a
// confirmation message.
func (c *client) AddEvent(ctx context.Context, req *model.AddEventRequest) (string, error) {
	start, err := model.ParseTimeValue(req.StartTime, req.TimeZone)
	if err != nil {
		return "", err
	}
	end, err := model.ComputeEnd(start, req.EndTime, req.DurationMinutes)
	if err != nil {
		return "", err
	}
	if !end.Time.After(start.Time) {
		return "", goerr.Wrap(model.ErrInvalidPayload, "end_time must be after start_time",
			goerr.V("start", start.Time), goerr.V("end", end.Time))
	}

	startBlock, endBlock := timeBlocks(start, end, req.TimeZone)
	body := &calendar.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Location:    req.Location,
		Start:       startBlock,
		End:         endBlock,
	}

	created, err := c.svc.Events.Insert(primaryCalendarID, body).Context(ctx).Do()
	if err != nil {
		return "", goerr.Wrap(err, "Unable to create event")
	}

	return confirmation("Created", created), nil
}

// EditEvent applies a partial update to an event. Fields omitted from the
// payload fall back to the stored event, so a bare event_id is a no-op
// rewrite of the current state.
func (c *client) EditEvent(ctx context.Context, req *model.EditEventRequest) (string, error) {
	existing, err := c.svc.Events.Get(primaryCalendarID, req.EventID).Context(ctx).Do()
	if err != nil {
		return "", goerr.Wrap(err, "Unable to fetch event", goerr.V(model.EventIDKey, req.EventID))
	}

	start, end, tz, err := resolveEventTimes(req, existing)
	if err != nil {
		return "", err
	}

	startBlock, endBlock := timeBlocks(start, end, tz)
	body := &calendar.Event{
		Summary:     fallback(req.Summary, existing.Summary),
		Description: fallback(req.Description, existing.Description),
		Location:    fallback(req.Location, existing.Location),
		Start:       startBlock,
		End:         endBlock,
	}

	saved, err := c.svc.Events.Update(primaryCalendarID, req.EventID, body).Context(ctx).Do()
	if err != nil {
		return "", goerr.Wrap(err, "Unable to update event", goerr.V(model.EventIDKey, req.EventID))
	}

	return confirmation("Updated", saved), nil
}

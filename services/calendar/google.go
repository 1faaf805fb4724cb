package calendar

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"meetsync/models"
	"meetsync/utils"
)

// GoogleCalendarService implements CalendarService against the Google
// Calendar API.
type GoogleCalendarService struct {
	svc      *gcal.Service
	timeZone string
	logger   *zap.Logger
}

// NewGoogleCalendarService builds a calendar client for the account behind
// the given client options.
func NewGoogleCalendarService(ctx context.Context, timeZone string, opts ...option.ClientOption) (*GoogleCalendarService, error) {
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &GoogleCalendarService{svc: svc, timeZone: timeZone, logger: utils.GetLogger()}, nil
}

// BusyIntervals queries free/busy for the calendar over [from, to).
func (s *GoogleCalendarService) BusyIntervals(ctx context.Context, calendarID string, from, to time.Time) ([]models.BusyInterval, error) {
	req := &gcal.FreeBusyRequest{
		TimeMin:  from.Format(time.RFC3339),
		TimeMax:  to.Format(time.RFC3339),
		TimeZone: s.timeZone,
		Items:    []*gcal.FreeBusyRequestItem{{Id: calendarID}},
	}
	res, err := s.svc.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, utils.WrapTimeout("calendar freebusy.query", fmt.Errorf("free/busy query failed: %w", err))
	}

	cal, ok := res.Calendars[calendarID]
	if !ok {
		// No data for the calendar is an empty busy set, not an error.
		return nil, nil
	}

	var busy []models.BusyInterval
	for _, p := range cal.Busy {
		start, err := time.Parse(time.RFC3339, p.Start)
		if err != nil {
			s.logger.Warn("Skipping unparseable busy interval start", zap.String("start", p.Start))
			continue
		}
		end, err := time.Parse(time.RFC3339, p.End)
		if err != nil {
			s.logger.Warn("Skipping unparseable busy interval end", zap.String("end", p.End))
			continue
		}
		busy = append(busy, models.BusyInterval{Start: start, End: end})
	}
	return busy, nil
}

// CreateEvent inserts the agreed meeting and notifies the attendee.
func (s *GoogleCalendarService) CreateEvent(ctx context.Context, calendarID string, req models.CalendarEventRequest) (string, error) {
	event := &gcal.Event{
		Summary:   req.Summary,
		Start:     &gcal.EventDateTime{DateTime: req.Start.Format(time.RFC3339), TimeZone: s.timeZone},
		End:       &gcal.EventDateTime{DateTime: req.End.Format(time.RFC3339), TimeZone: s.timeZone},
		Attendees: []*gcal.EventAttendee{{Email: req.AttendeeEmail}},
	}
	created, err := s.svc.Events.Insert(calendarID, event).SendUpdates("all").Context(ctx).Do()
	if err != nil {
		return "", utils.WrapTimeout("calendar events.insert", fmt.Errorf("failed to create event: %w", err))
	}
	return created.Id, nil
}

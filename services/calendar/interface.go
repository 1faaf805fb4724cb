package calendar

import (
	"context"
	"time"

	"meetsync/models"
)

// CalendarService is the availability source and event sink for the host's
// calendar.
type CalendarService interface {
	// BusyIntervals returns the occupied stretches of the calendar inside
	// [from, to). Absent free/busy data means an empty result, not an
	// error.
	BusyIntervals(ctx context.Context, calendarID string, from, to time.Time) ([]models.BusyInterval, error)

	// CreateEvent inserts the agreed meeting and invites the attendee.
	// Returns the created event's ID.
	CreateEvent(ctx context.Context, calendarID string, req models.CalendarEventRequest) (string, error)
}

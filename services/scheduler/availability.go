package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"meetsync/models"
	"meetsync/services/calendar"
	"meetsync/utils"
)

// DefaultAvailabilityService queries the calendar's free/busy data and runs
// the open-slot sweep over the configured window.
type DefaultAvailabilityService struct {
	Calendar     calendar.CalendarService
	TimeZone     *time.Location
	WindowDays   int
	DayStartHour int
	DayEndHour   int

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// OpenSlots fetches busy intervals for the window and returns up to maxSlots
// open slots.
func (s *DefaultAvailabilityService) OpenSlots(ctx context.Context, calendarID string, durationMinutes, maxSlots int) ([]models.Slot, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	windowStart := now.In(s.TimeZone)
	windowEnd := windowStart.AddDate(0, 0, s.WindowDays)

	busy, err := s.Calendar.BusyIntervals(ctx, calendarID, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("availability lookup failed: %w", err)
	}

	slots, err := FindOpenSlots(busy, SlotOptions{
		DurationMinutes: durationMinutes,
		WindowStart:     windowStart,
		WindowDays:      s.WindowDays,
		DayStartHour:    s.DayStartHour,
		DayEndHour:      s.DayEndHour,
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Debug("Computed open slots",
		zap.String("calendarId", calendarID),
		zap.Int("busy", len(busy)),
		zap.Int("open", len(slots)))

	if maxSlots > 0 && len(slots) > maxSlots {
		slots = slots[:maxSlots]
	}
	return slots, nil
}

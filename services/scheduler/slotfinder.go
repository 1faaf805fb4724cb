package scheduler

import (
	"fmt"
	"sort"
	"time"

	"meetsync/models"
)

// SlotOptions constrains an open-slot search.
type SlotOptions struct {
	DurationMinutes int
	WindowStart     time.Time
	WindowDays      int
	DayStartHour    int
	DayEndHour      int
}

func (o SlotOptions) validate() error {
	if o.DurationMinutes <= 0 {
		return fmt.Errorf("duration must be positive, got %d", o.DurationMinutes)
	}
	if o.DayStartHour >= o.DayEndHour {
		return fmt.Errorf("day start hour %d must be before day end hour %d", o.DayStartHour, o.DayEndHour)
	}
	if o.WindowDays < 1 {
		return fmt.Errorf("window must cover at least one day, got %d", o.WindowDays)
	}
	return nil
}

// FindOpenSlots computes every back-to-back slot of exactly the requested
// duration inside the working hours of each day in the window, skipping busy
// intervals. Busy intervals may arrive unsorted and overlapping. The result
// is chronological across days, and pure: identical inputs give identical
// output.
func FindOpenSlots(busy []models.BusyInterval, opts SlotOptions) ([]models.Slot, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	duration := time.Duration(opts.DurationMinutes) * time.Minute
	loc := opts.WindowStart.Location()

	var slots []models.Slot
	for i := 0; i < opts.WindowDays; i++ {
		day := opts.WindowStart.AddDate(0, 0, i)
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), opts.DayStartHour, 0, 0, 0, loc)
		dayEnd := time.Date(day.Year(), day.Month(), day.Day(), opts.DayEndHour, 0, 0, 0, loc)

		todayBusy := overlappingSorted(busy, dayStart, dayEnd)

		cursor := dayStart
		for _, b := range todayBusy {
			for !cursor.Add(duration).After(b.Start) {
				slots = append(slots, models.Slot{Start: cursor, End: cursor.Add(duration)})
				cursor = cursor.Add(duration)
			}
			// The cursor only moves forward; overlapping busy intervals
			// and intervals reaching back past the working window cannot
			// drag it backwards.
			if b.End.After(cursor) {
				cursor = b.End
			}
		}

		for !cursor.Add(duration).After(dayEnd) {
			slots = append(slots, models.Slot{Start: cursor, End: cursor.Add(duration)})
			cursor = cursor.Add(duration)
		}
	}
	return slots, nil
}

// overlappingSorted filters busy intervals down to those touching the working
// window and orders them by start, ties broken by end.
func overlappingSorted(busy []models.BusyInterval, dayStart, dayEnd time.Time) []models.BusyInterval {
	var out []models.BusyInterval
	for _, b := range busy {
		if b.End.After(dayStart) && b.Start.Before(dayEnd) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start.Equal(out[j].Start) {
			return out[i].End.Before(out[j].End)
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

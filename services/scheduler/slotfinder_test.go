package scheduler

import (
	"testing"
	"time"

	"meetsync/models"
)

func day(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2026, time.March, 2, hour, min, 0, 0, time.UTC)
}

func busy(start, end time.Time) models.BusyInterval {
	return models.BusyInterval{Start: start, End: end}
}

func defaultOpts(durationMinutes, windowDays int, windowStart time.Time) SlotOptions {
	return SlotOptions{
		DurationMinutes: durationMinutes,
		WindowStart:     windowStart,
		WindowDays:      windowDays,
		DayStartHour:    9,
		DayEndHour:      17,
	}
}

func TestFindOpenSlotsFirstSlotAfterMorningMeeting(t *testing.T) {
	// One 09:00-10:00 meeting, 30-minute slots: the first opening is 10:00.
	slots, err := FindOpenSlots(
		[]models.BusyInterval{busy(day(t, 9, 0), day(t, 10, 0))},
		defaultOpts(30, 1, day(t, 0, 0)),
	)
	if err != nil {
		t.Fatalf("FindOpenSlots failed: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("expected slots, got none")
	}
	if !slots[0].Start.Equal(day(t, 10, 0)) || !slots[0].End.Equal(day(t, 10, 30)) {
		t.Errorf("first slot = %v-%v, want 10:00-10:30", slots[0].Start, slots[0].End)
	}
}

func TestFindOpenSlotsEmptyCalendarFillsTheDay(t *testing.T) {
	slots, err := FindOpenSlots(nil, defaultOpts(60, 1, day(t, 0, 0)))
	if err != nil {
		t.Fatalf("FindOpenSlots failed: %v", err)
	}
	if len(slots) != 8 {
		t.Fatalf("got %d slots, want 8", len(slots))
	}
	for i, s := range slots {
		wantStart := day(t, 9+i, 0)
		if !s.Start.Equal(wantStart) || !s.End.Equal(wantStart.Add(time.Hour)) {
			t.Errorf("slot %d = %v-%v, want %v-%v", i, s.Start, s.End, wantStart, wantStart.Add(time.Hour))
		}
	}
}

func TestFindOpenSlotsProperties(t *testing.T) {
	busySet := []models.BusyInterval{
		busy(day(t, 11, 15), day(t, 12, 45)),
		busy(day(t, 10, 0), day(t, 10, 30)),
		// Overlaps the previous interval; the cursor must not move backward.
		busy(day(t, 10, 15), day(t, 11, 0)),
		// Fully outside working hours; must be ignored.
		busy(day(t, 18, 0), day(t, 19, 0)),
		// Next day.
		busy(day(t, 9, 0).AddDate(0, 0, 1), day(t, 16, 0).AddDate(0, 0, 1)),
	}
	opts := defaultOpts(30, 3, day(t, 0, 0))

	slots, err := FindOpenSlots(busySet, opts)
	if err != nil {
		t.Fatalf("FindOpenSlots failed: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("expected slots, got none")
	}

	duration := 30 * time.Minute
	for i, s := range slots {
		if s.Duration() != duration {
			t.Errorf("slot %d has duration %v, want %v", i, s.Duration(), duration)
		}
		if s.Start.Hour() < opts.DayStartHour || s.End.After(endOfWorkingDay(s.Start, opts.DayEndHour)) {
			t.Errorf("slot %d (%v-%v) leaves the working window", i, s.Start, s.End)
		}
		for _, b := range busySet {
			if s.Overlaps(b) {
				t.Errorf("slot %d (%v-%v) overlaps busy %v-%v", i, s.Start, s.End, b.Start, b.End)
			}
		}
		if i > 0 && !slots[i-1].Start.Before(s.Start) {
			t.Errorf("slots not strictly ascending at %d: %v then %v", i, slots[i-1].Start, s.Start)
		}
	}
}

func endOfWorkingDay(instant time.Time, endHour int) time.Time {
	return time.Date(instant.Year(), instant.Month(), instant.Day(), endHour, 0, 0, 0, instant.Location())
}

func TestFindOpenSlotsDeterministic(t *testing.T) {
	busySet := []models.BusyInterval{
		busy(day(t, 9, 45), day(t, 11, 10)),
		busy(day(t, 14, 0), day(t, 15, 0)),
	}
	opts := defaultOpts(45, 2, day(t, 0, 0))

	first, err := FindOpenSlots(busySet, opts)
	if err != nil {
		t.Fatalf("FindOpenSlots failed: %v", err)
	}
	second, err := FindOpenSlots(busySet, opts)
	if err != nil {
		t.Fatalf("FindOpenSlots failed: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Start.Equal(second[i].Start) || !first[i].End.Equal(second[i].End) {
			t.Errorf("slot %d differs between runs", i)
		}
	}
}

func TestFindOpenSlotsClipsBoundaryBusy(t *testing.T) {
	// Busy 08:30-09:30 reaches into the working window; the sweep starts
	// after it, never before 09:00.
	slots, err := FindOpenSlots(
		[]models.BusyInterval{busy(day(t, 8, 30), day(t, 9, 30))},
		defaultOpts(30, 1, day(t, 0, 0)),
	)
	if err != nil {
		t.Fatalf("FindOpenSlots failed: %v", err)
	}
	if !slots[0].Start.Equal(day(t, 9, 30)) {
		t.Errorf("first slot starts %v, want 09:30", slots[0].Start)
	}
}

func TestFindOpenSlotsRejectsBadOptions(t *testing.T) {
	cases := []struct {
		name string
		opts SlotOptions
	}{
		{"zero duration", SlotOptions{DurationMinutes: 0, WindowStart: day(t, 0, 0), WindowDays: 1, DayStartHour: 9, DayEndHour: 17}},
		{"inverted hours", SlotOptions{DurationMinutes: 30, WindowStart: day(t, 0, 0), WindowDays: 1, DayStartHour: 17, DayEndHour: 9}},
		{"no days", SlotOptions{DurationMinutes: 30, WindowStart: day(t, 0, 0), WindowDays: 0, DayStartHour: 9, DayEndHour: 17}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := FindOpenSlots(nil, tc.opts); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

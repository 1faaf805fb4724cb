package models

import "time"

// BusyInterval is one occupied stretch of the host's calendar, as reported by
// the availability source. Intervals arrive unsorted and may overlap.
type BusyInterval struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// Slot is a candidate meeting window of exactly the requested duration.
// Slots are computed per request and only persisted once they are part of a
// proposal.
type Slot struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// Duration returns the span of the slot.
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Overlaps reports whether the slot intersects the given busy interval.
func (s Slot) Overlaps(b BusyInterval) bool {
	return s.Start.Before(b.End) && b.Start.Before(s.End)
}

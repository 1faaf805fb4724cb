package scheduler

import (
	"context"

	"meetsync/models"
)

// AvailabilityService finds candidate meeting slots on the host's calendar.
type AvailabilityService interface {
	// OpenSlots returns up to maxSlots candidate slots of the given
	// duration inside the configured search window. A calendar with no
	// free/busy data yields a fully open window.
	OpenSlots(ctx context.Context, calendarID string, durationMinutes, maxSlots int) ([]models.Slot, error)
}

package ai

import (
	"context"

	"meetsync/models"
)

// DraftRequest carries everything the composition prompt needs.
type DraftRequest struct {
	AttendeeEmail string
	Subject       string
	Notes         string
	Slots         []models.Slot
}

// TextOracle is the text-generation boundary: one capability, two call
// sites. Draft composes an outbound proposal body; Extract pulls the agreed
// meeting time out of a free-text reply. Neither caches; both honor the
// caller's context deadline.
type TextOracle interface {
	Draft(ctx context.Context, req DraftRequest) (string, error)
	Extract(ctx context.Context, replyBody string) (string, error)
}

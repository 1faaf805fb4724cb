package negotiationRepo

import (
	"context"
	"errors"

	"meetsync/models"
)

// Sentinel errors surfaced by the repository. Callers branch on these with
// errors.Is; everything else is an infrastructure failure.
var (
	// ErrDuplicateThread means a negotiation already exists for the thread.
	ErrDuplicateThread = errors.New("negotiation already exists for thread")
	// ErrNotFound means no negotiation is tracked for the thread.
	ErrNotFound = errors.New("negotiation not found")
	// ErrAlreadyResolved means the negotiation left the proposed state
	// before this call; the first accepted reply wins.
	ErrAlreadyResolved = errors.New("negotiation already resolved")
)

// NegotiationRepository is the durable store of outstanding negotiations,
// keyed by the mail thread identity assigned at send time.
type NegotiationRepository interface {
	// Create inserts a new negotiation in the proposed state. Fails with
	// ErrDuplicateThread if the thread identity is already tracked.
	Create(ctx context.Context, n *models.Negotiation) error

	// FindByThreadID returns the negotiation for the thread, or ErrNotFound.
	FindByThreadID(ctx context.Context, threadID string) (*models.Negotiation, error)

	// Resolve records the agreed slot and moves the negotiation from
	// proposed to resolved. The transition is atomic per thread: of any
	// number of concurrent callers exactly one succeeds, the rest get
	// ErrAlreadyResolved. Fails with ErrNotFound if the thread is untracked.
	Resolve(ctx context.Context, threadID string, agreed models.Slot) (*models.Negotiation, error)

	// MarkAbandoned moves a proposed negotiation to the abandoned terminal
	// state. Same atomicity and error contract as Resolve.
	MarkAbandoned(ctx context.Context, threadID string) (*models.Negotiation, error)

	// ListByStatus returns negotiations in the given status, newest first.
	ListByStatus(ctx context.Context, status string) ([]models.Negotiation, error)
}

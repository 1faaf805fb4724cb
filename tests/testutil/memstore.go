// Package testutil provides in-memory doubles shared by the service tests.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	negotiationRepo "meetsync/database/repository/negotiation"
	"meetsync/models"
)

// MemNegotiationRepo is an in-memory NegotiationRepository. Its Resolve and
// MarkAbandoned mirror the Mongo implementation's compare-and-set on the
// proposed status, so concurrency tests exercise the same contract.
type MemNegotiationRepo struct {
	mu       sync.Mutex
	byThread map[string]*models.Negotiation

	// CreateErr, when set, makes Create fail without storing anything.
	CreateErr error
}

func NewMemNegotiationRepo() *MemNegotiationRepo {
	return &MemNegotiationRepo{byThread: make(map[string]*models.Negotiation)}
}

func (r *MemNegotiationRepo) Create(ctx context.Context, n *models.Negotiation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CreateErr != nil {
		return r.CreateErr
	}
	if _, exists := r.byThread[n.ThreadID]; exists {
		return fmt.Errorf("thread %s: %w", n.ThreadID, negotiationRepo.ErrDuplicateThread)
	}
	clone := *n
	r.byThread[n.ThreadID] = &clone
	return nil
}

func (r *MemNegotiationRepo) FindByThreadID(ctx context.Context, threadID string) (*models.Negotiation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.byThread[threadID]
	if !ok {
		return nil, negotiationRepo.ErrNotFound
	}
	clone := *n
	return &clone, nil
}

func (r *MemNegotiationRepo) Resolve(ctx context.Context, threadID string, agreed models.Slot) (*models.Negotiation, error) {
	return r.transition(threadID, func(n *models.Negotiation) {
		n.Status = models.NegotiationResolved
		n.AgreedSlot = &agreed
	})
}

func (r *MemNegotiationRepo) MarkAbandoned(ctx context.Context, threadID string) (*models.Negotiation, error) {
	return r.transition(threadID, func(n *models.Negotiation) {
		n.Status = models.NegotiationAbandoned
	})
}

func (r *MemNegotiationRepo) transition(threadID string, apply func(*models.Negotiation)) (*models.Negotiation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.byThread[threadID]
	if !ok {
		return nil, negotiationRepo.ErrNotFound
	}
	if n.Status != models.NegotiationProposed {
		return nil, negotiationRepo.ErrAlreadyResolved
	}
	apply(n)
	now := time.Now().UTC()
	n.ResolvedAt = &now
	clone := *n
	return &clone, nil
}

func (r *MemNegotiationRepo) ListByStatus(ctx context.Context, status string) ([]models.Negotiation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Negotiation
	for _, n := range r.byThread {
		if n.Status == status {
			out = append(out, *n)
		}
	}
	return out, nil
}

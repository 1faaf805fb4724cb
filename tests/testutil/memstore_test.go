package testutil

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	negotiationRepo "meetsync/database/repository/negotiation"
	"meetsync/models"
)

func TestResolveIsSingleShotUnderConcurrency(t *testing.T) {
	repo := NewMemNegotiationRepo()
	base := time.Date(2026, time.March, 3, 14, 0, 0, 0, time.UTC)
	err := repo.Create(context.Background(), &models.Negotiation{
		ID:              "neg-1",
		ThreadID:        "thread-1",
		DurationMinutes: 30,
		Status:          models.NegotiationProposed,
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	slots := []models.Slot{
		{Start: base, End: base.Add(30 * time.Minute)},
		{Start: base.Add(time.Hour), End: base.Add(90 * time.Minute)},
	}

	var wg sync.WaitGroup
	results := make([]error, len(slots))
	for i := range slots {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = repo.Resolve(context.Background(), "thread-1", slots[i])
		}(i)
	}
	wg.Wait()

	var winners, losers int
	var winner models.Slot
	for i, err := range results {
		switch {
		case err == nil:
			winners++
			winner = slots[i]
		case errors.Is(err, negotiationRepo.ErrAlreadyResolved):
			losers++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if winners != 1 || losers != 1 {
		t.Fatalf("winners=%d losers=%d, want exactly one of each", winners, losers)
	}

	n, err := repo.FindByThreadID(context.Background(), "thread-1")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if n.AgreedSlot == nil || !n.AgreedSlot.Start.Equal(winner.Start) {
		t.Errorf("stored resolution %+v does not match winner %+v", n.AgreedSlot, winner)
	}
}

func TestCreateRejectsDuplicateThread(t *testing.T) {
	repo := NewMemNegotiationRepo()
	n := &models.Negotiation{ID: "neg-1", ThreadID: "thread-1", Status: models.NegotiationProposed}
	if err := repo.Create(context.Background(), n); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	err := repo.Create(context.Background(), &models.Negotiation{ID: "neg-2", ThreadID: "thread-1", Status: models.NegotiationProposed})
	if !errors.Is(err, negotiationRepo.ErrDuplicateThread) {
		t.Errorf("got %v, want ErrDuplicateThread", err)
	}
}

func TestTransitionsOnMissingThread(t *testing.T) {
	repo := NewMemNegotiationRepo()
	if _, err := repo.Resolve(context.Background(), "nope", models.Slot{}); !errors.Is(err, negotiationRepo.ErrNotFound) {
		t.Errorf("Resolve: got %v, want ErrNotFound", err)
	}
	if _, err := repo.MarkAbandoned(context.Background(), "nope"); !errors.Is(err, negotiationRepo.ErrNotFound) {
		t.Errorf("MarkAbandoned: got %v, want ErrNotFound", err)
	}
}

package negotiationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meetsync/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new negotiation document.
func (r *MongoNegotiationRepo) Create(ctx context.Context, n *models.Negotiation) error {
	ctxWithTimeout, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctxWithTimeout, n)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("thread %s: %w", n.ThreadID, ErrDuplicateThread)
		}
		return fmt.Errorf("error creating negotiation for thread %s: %w", n.ThreadID, err)
	}
	return nil
}

// FindByThreadID retrieves a negotiation by its thread identity.
func (r *MongoNegotiationRepo) FindByThreadID(ctx context.Context, threadID string) (*models.Negotiation, error) {
	ctxWithTimeout, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var n models.Negotiation
	err := r.coll.FindOne(ctxWithTimeout, bson.M{"threadId": threadID}).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching negotiation for thread %s: %w", threadID, err)
	}
	return &n, nil
}

// Resolve atomically moves a proposed negotiation to resolved and records the
// agreed slot. The status filter makes the update a per-thread compare-and-set:
// a concurrent resolve that lost the race matches no document.
func (r *MongoNegotiationRepo) Resolve(ctx context.Context, threadID string, agreed models.Slot) (*models.Negotiation, error) {
	return r.transition(ctx, threadID, bson.M{
		"status":     models.NegotiationResolved,
		"agreedSlot": agreed,
		"resolvedAt": time.Now().UTC(),
	})
}

// MarkAbandoned atomically moves a proposed negotiation to abandoned.
func (r *MongoNegotiationRepo) MarkAbandoned(ctx context.Context, threadID string) (*models.Negotiation, error) {
	return r.transition(ctx, threadID, bson.M{
		"status":     models.NegotiationAbandoned,
		"resolvedAt": time.Now().UTC(),
	})
}

func (r *MongoNegotiationRepo) transition(ctx context.Context, threadID string, set bson.M) (*models.Negotiation, error) {
	ctxWithTimeout, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"threadId": threadID, "status": models.NegotiationProposed}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var n models.Negotiation
	err := r.coll.FindOneAndUpdate(ctxWithTimeout, filter, bson.M{"$set": set}, opts).Decode(&n)
	if err == nil {
		return &n, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("error updating negotiation for thread %s: %w", threadID, err)
	}

	// No proposed document matched: either the thread is untracked or a
	// concurrent caller already moved it to a terminal state.
	if _, ferr := r.FindByThreadID(ctx, threadID); ferr != nil {
		return nil, ferr
	}
	return nil, ErrAlreadyResolved
}

// ListByStatus retrieves negotiations in the given status, newest first.
func (r *MongoNegotiationRepo) ListByStatus(ctx context.Context, status string) ([]models.Negotiation, error) {
	ctxWithTimeout, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctxWithTimeout, bson.M{"status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing negotiations with status %s: %w", status, err)
	}
	defer cursor.Close(ctxWithTimeout)

	var out []models.Negotiation
	for cursor.Next(ctxWithTimeout) {
		var n models.Negotiation
		if err := cursor.Decode(&n); err != nil {
			return nil, fmt.Errorf("failed to decode negotiation: %w", err)
		}
		out = append(out, n)
	}
	return out, nil
}

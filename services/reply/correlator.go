package reply

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	negotiationRepo "meetsync/database/repository/negotiation"
	"meetsync/models"
	ai "meetsync/services/intelligence"
	"meetsync/utils"
)

// ReplyCorrelator matches an inbound message back to an open negotiation and
// extracts the committed time.
type ReplyCorrelator interface {
	// OnInboundMessage returns the calendar event to create when the reply
	// resolved the negotiation, or nil when the message should be skipped:
	// untracked thread, negotiation no longer proposed, or a lost resolve
	// race. Skips are expected traffic, not errors.
	OnInboundMessage(ctx context.Context, threadID, rawBody string) (*models.CalendarEventRequest, error)
}

// DefaultReplyCorrelator resolves replies against the negotiation store. The
// persisted record is the single source of truth for subject, attendee and
// duration; nothing about the original proposal lives in process memory.
type DefaultReplyCorrelator struct {
	Repo   negotiationRepo.NegotiationRepository
	Oracle ai.TextOracle
}

func (c *DefaultReplyCorrelator) OnInboundMessage(ctx context.Context, threadID, rawBody string) (*models.CalendarEventRequest, error) {
	logger := utils.GetLogger()

	n, err := c.Repo.FindByThreadID(ctx, threadID)
	if err != nil {
		if errors.Is(err, negotiationRepo.ErrNotFound) {
			// Most inbound mail has nothing to do with a negotiation.
			logger.Debug("No negotiation for thread", zap.String("threadId", threadID))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up thread %s: %w", threadID, err)
	}

	if n.Status != models.NegotiationProposed {
		// Duplicate push delivery or a reply after resolution.
		logger.Debug("Negotiation already settled",
			zap.String("threadId", threadID), zap.String("status", n.Status))
		return nil, nil
	}

	extracted, err := c.Oracle.Extract(ctx, rawBody)
	if err != nil {
		return nil, fmt.Errorf("extraction failed for thread %s: %w", threadID, err)
	}
	start, err := time.Parse(time.RFC3339, extracted)
	if err != nil {
		return nil, &UnparseableReplyError{ThreadID: threadID, Raw: extracted, Err: err}
	}

	// The duration recorded at proposal time wins; the reply may not name
	// one of the proposed slots verbatim.
	agreed := models.Slot{
		Start: start,
		End:   start.Add(time.Duration(n.DurationMinutes) * time.Minute),
	}

	resolved, err := c.Repo.Resolve(ctx, threadID, agreed)
	if err != nil {
		if errors.Is(err, negotiationRepo.ErrAlreadyResolved) {
			// Two near-simultaneous replies raced; first writer won.
			logger.Info("Lost resolve race", zap.String("threadId", threadID))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve thread %s: %w", threadID, err)
	}

	logger.Info("Negotiation resolved",
		zap.String("threadId", threadID),
		zap.Time("start", agreed.Start),
		zap.Time("end", agreed.End))

	return &models.CalendarEventRequest{
		Summary:       resolved.Subject,
		Start:         agreed.Start,
		End:           agreed.End,
		AttendeeEmail: resolved.AttendeeEmail,
	}, nil
}

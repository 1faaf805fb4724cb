package proposal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	negotiationRepo "meetsync/database/repository/negotiation"
	"meetsync/models"
	ai "meetsync/services/intelligence"
	"meetsync/services/mail"
	"meetsync/utils"
)

// DefaultProposalService orchestrates one proposal run across the mail
// transport, the text oracle and the negotiation store.
type DefaultProposalService struct {
	Mail   mail.MailTransport
	Oracle ai.TextOracle
	Repo   negotiationRepo.NegotiationRepository
	Labels *LabelCache

	LabelName              string
	DefaultDurationMinutes int
}

// SendProposal runs the saga. Steps 1-3 and 5 must succeed; a step-4 label
// failure is reported as a warning on an otherwise successful result because
// the mail is already delivered and correlation does not depend on the tag.
func (s *DefaultProposalService) SendProposal(ctx context.Context, req models.ProposalRequest) (*models.ProposalResult, error) {
	logger := utils.GetLogger()

	// Step 1: ensure the classification label. Terminal on failure; no
	// mail has been sent yet.
	label, err := s.Labels.Ensure(ctx, s.LabelName)
	if err != nil {
		return nil, &LabelInitError{Err: err}
	}

	// Step 2: draft the message body. Terminal on failure.
	draft, err := s.Oracle.Draft(ctx, ai.DraftRequest{
		AttendeeEmail: req.AttendeeEmail,
		Subject:       req.Subject,
		Notes:         req.Notes,
		Slots:         req.Slots,
	})
	if err != nil {
		return nil, &DraftError{Err: err}
	}

	// Step 3: send. Irreversible from here on: any rerun of the saga
	// delivers a second message to the attendee.
	sent, err := s.Mail.Send(ctx, req.AttendeeEmail, "Meeting about "+req.Subject, draft)
	if err != nil {
		return nil, &SendError{Err: err}
	}
	logger.Info("Proposal sent",
		zap.String("threadId", sent.ThreadID),
		zap.String("messageId", sent.MessageID),
		zap.String("attendee", req.AttendeeEmail))

	result := &models.ProposalResult{
		ThreadID:     sent.ThreadID,
		MessageID:    sent.MessageID,
		Draft:        draft,
		LabelApplied: true,
	}

	// Step 4: apply the label. The tag is a convenience; failing here must
	// not roll back or fail a run whose mail is already delivered.
	if err := s.Mail.ApplyLabel(ctx, sent.MessageID, label.ID); err != nil {
		applyErr := &LabelApplyError{MessageID: sent.MessageID, Err: err}
		logger.Warn("Continuing despite label failure", zap.Error(applyErr))
		result.LabelApplied = false
		result.Warning = applyErr.Error()
	}

	// Step 5: persist the negotiation keyed by the thread identity. On
	// failure the error carries both identities so an operator can
	// re-create the record out of band.
	n := &models.Negotiation{
		ID:              uuid.New().String(),
		ThreadID:        sent.ThreadID,
		MessageID:       sent.MessageID,
		OwnerID:         req.OwnerID,
		AttendeeEmail:   req.AttendeeEmail,
		Subject:         req.Subject,
		ProposedSlots:   req.Slots,
		DurationMinutes: s.durationMinutes(req),
		Status:          models.NegotiationProposed,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return nil, &PersistError{ThreadID: sent.ThreadID, MessageID: sent.MessageID, Err: err}
	}

	return result, nil
}

// durationMinutes resolves the duration recorded with the negotiation: the
// explicit request value, else the span of the first proposed slot, else the
// configured default. Reply correlation reuses this figure instead of
// re-deriving one from whatever slot the attendee names.
func (s *DefaultProposalService) durationMinutes(req models.ProposalRequest) int {
	if req.DurationMinutes > 0 {
		return req.DurationMinutes
	}
	if len(req.Slots) > 0 {
		if mins := int(req.Slots[0].Duration().Minutes()); mins > 0 {
			return mins
		}
	}
	return s.DefaultDurationMinutes
}

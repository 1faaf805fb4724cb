package proposal

import (
	"context"

	"meetsync/models"
)

// ProposalService runs the outbound proposal saga: ensure label, draft,
// send, apply label, persist. Step ordering and failure policy are fixed;
// see the step error types in this package.
//
// The saga as a whole is not idempotent: a rerun after a successful send
// always delivers a second message. Callers must not blindly retry a run
// that failed past the send step.
type ProposalService interface {
	SendProposal(ctx context.Context, req models.ProposalRequest) (*models.ProposalResult, error)
}

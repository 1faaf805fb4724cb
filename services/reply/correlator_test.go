package reply

import (
	"context"
	"errors"
	"testing"
	"time"

	"meetsync/models"
	ai "meetsync/services/intelligence"
	"meetsync/tests/testutil"
)

type fakeOracle struct {
	out string
	err error
}

func (f *fakeOracle) Draft(ctx context.Context, req ai.DraftRequest) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeOracle) Extract(ctx context.Context, replyBody string) (string, error) {
	return f.out, f.err
}

func seedNegotiation(t *testing.T, repo *testutil.MemNegotiationRepo, threadID string) *models.Negotiation {
	t.Helper()
	start := time.Date(2026, time.March, 3, 14, 0, 0, 0, time.UTC)
	n := &models.Negotiation{
		ID:              "neg-1",
		ThreadID:        threadID,
		MessageID:       "msg-1",
		AttendeeEmail:   "pat@example.com",
		Subject:         "Q2 roadmap",
		ProposedSlots:   []models.Slot{{Start: start, End: start.Add(45 * time.Minute)}},
		DurationMinutes: 45,
		Status:          models.NegotiationProposed,
		CreatedAt:       time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), n); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return n
}

func TestOnInboundMessageResolvesNegotiation(t *testing.T) {
	repo := testutil.NewMemNegotiationRepo()
	seedNegotiation(t, repo, "thread-1")
	c := &DefaultReplyCorrelator{Repo: repo, Oracle: &fakeOracle{out: "2026-03-03T14:00:00Z"}}

	eventReq, err := c.OnInboundMessage(context.Background(), "thread-1", "2pm works, see you then")
	if err != nil {
		t.Fatalf("OnInboundMessage failed: %v", err)
	}
	if eventReq == nil {
		t.Fatal("expected an event request")
	}

	wantStart := time.Date(2026, time.March, 3, 14, 0, 0, 0, time.UTC)
	if !eventReq.Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", eventReq.Start, wantStart)
	}
	// End comes from the duration recorded at proposal time.
	if !eventReq.End.Equal(wantStart.Add(45 * time.Minute)) {
		t.Errorf("end = %v, want %v", eventReq.End, wantStart.Add(45*time.Minute))
	}
	if eventReq.Summary != "Q2 roadmap" || eventReq.AttendeeEmail != "pat@example.com" {
		t.Errorf("event carries wrong negotiation fields: %+v", eventReq)
	}

	n, _ := repo.FindByThreadID(context.Background(), "thread-1")
	if n.Status != models.NegotiationResolved {
		t.Errorf("status = %q, want resolved", n.Status)
	}
}

func TestOnInboundMessageUnparseableReply(t *testing.T) {
	repo := testutil.NewMemNegotiationRepo()
	seedNegotiation(t, repo, "thread-1")
	c := &DefaultReplyCorrelator{Repo: repo, Oracle: &fakeOracle{out: "NONE"}}

	_, err := c.OnInboundMessage(context.Background(), "thread-1", "let me get back to you")
	var unparseable *UnparseableReplyError
	if !errors.As(err, &unparseable) {
		t.Fatalf("got %v, want UnparseableReplyError", err)
	}
	if unparseable.Raw != "NONE" {
		t.Errorf("Raw = %q", unparseable.Raw)
	}

	// The negotiation stays open for another attempt.
	n, _ := repo.FindByThreadID(context.Background(), "thread-1")
	if n.Status != models.NegotiationProposed {
		t.Errorf("status = %q, want proposed", n.Status)
	}
}

func TestOnInboundMessageSkipsUntrackedThread(t *testing.T) {
	repo := testutil.NewMemNegotiationRepo()
	c := &DefaultReplyCorrelator{Repo: repo, Oracle: &fakeOracle{out: "2026-03-03T14:00:00Z"}}

	eventReq, err := c.OnInboundMessage(context.Background(), "unknown-thread", "hi there")
	if err != nil || eventReq != nil {
		t.Errorf("expected skip, got (%v, %v)", eventReq, err)
	}
}

func TestOnInboundMessageSkipsSettledNegotiation(t *testing.T) {
	repo := testutil.NewMemNegotiationRepo()
	seedNegotiation(t, repo, "thread-1")
	agreed := models.Slot{
		Start: time.Date(2026, time.March, 3, 14, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.March, 3, 14, 45, 0, 0, time.UTC),
	}
	if _, err := repo.Resolve(context.Background(), "thread-1", agreed); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	oracle := &fakeOracle{err: errors.New("oracle must not be called for settled threads")}
	c := &DefaultReplyCorrelator{Repo: repo, Oracle: oracle}

	// A duplicate push notification redelivers the same reply.
	eventReq, err := c.OnInboundMessage(context.Background(), "thread-1", "2pm works")
	if err != nil || eventReq != nil {
		t.Errorf("expected skip, got (%v, %v)", eventReq, err)
	}
}

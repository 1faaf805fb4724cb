package models

// LabelHandle identifies the Gmail classification label used to tag outbound
// proposals. It is looked up (or created) once per workflow run and cached;
// it is always re-derivable from the name.
type LabelHandle struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// ProposalRequest is the input to one proposal saga run.
type ProposalRequest struct {
	OwnerID         string `json:"ownerId"`
	AttendeeEmail   string `json:"email" binding:"required,email"`
	Subject         string `json:"subject" binding:"required"`
	Notes           string `json:"notes"`
	Slots           []Slot `json:"slots" binding:"required,min=1"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ProposalResult reports a completed saga run. LabelApplied is false when the
// label step failed after the mail was already delivered; the run still
// counts as a success and Warning says why.
type ProposalResult struct {
	ThreadID     string `json:"threadId"`
	MessageID    string `json:"messageId"`
	Draft        string `json:"draft"`
	LabelApplied bool   `json:"labelApplied"`
	Warning      string `json:"warning,omitempty"`
}

// InboundMessage is one new message surfaced by the Gmail history API after a
// push notification.
type InboundMessage struct {
	MessageID string `json:"messageId"`
	ThreadID  string `json:"threadId"`
	Body      string `json:"body"`
}

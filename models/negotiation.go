package models

import "time"

// Negotiation statuses. A negotiation is created as "proposed" and moves to
// exactly one terminal status.
const (
	NegotiationProposed  = "proposed"
	NegotiationResolved  = "resolved"
	NegotiationAbandoned = "abandoned"
)

// Negotiation is the durable record tracking one outbound meeting proposal
// through to resolution. It is keyed by the Gmail thread identity assigned at
// send time; that key is how a later reply is correlated back to the
// proposal.
type Negotiation struct {
	ID              string     `bson:"id" json:"id"`
	ThreadID        string     `bson:"threadId" json:"threadId"`
	MessageID       string     `bson:"messageId" json:"messageId"`
	OwnerID         string     `bson:"ownerId" json:"ownerId"`
	AttendeeEmail   string     `bson:"attendeeEmail" json:"attendeeEmail"`
	Subject         string     `bson:"subject" json:"subject"`
	ProposedSlots   []Slot     `bson:"proposedSlots" json:"proposedSlots"`
	DurationMinutes int        `bson:"durationMinutes" json:"durationMinutes"`
	Status          string     `bson:"status" json:"status"`
	AgreedSlot      *Slot      `bson:"agreedSlot,omitempty" json:"agreedSlot,omitempty"`
	CreatedAt       time.Time  `bson:"createdAt" json:"createdAt"`
	ResolvedAt      *time.Time `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
}

// CalendarEventRequest is what a successfully resolved negotiation emits; the
// calendar sink turns it into an actual event.
type CalendarEventRequest struct {
	Summary       string    `json:"summary"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	AttendeeEmail string    `json:"attendeeEmail"`
}

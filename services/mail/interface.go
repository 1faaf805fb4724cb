package mail

import (
	"context"

	"meetsync/models"
)

// SentMessage is the identity pair the transport assigns on send. The thread
// identity is the correlation key for the whole negotiation.
type SentMessage struct {
	MessageID string `json:"messageId"`
	ThreadID  string `json:"threadId"`
}

// WatchHandle reports an active mailbox watch registration.
type WatchHandle struct {
	HistoryID  uint64 `json:"historyId"`
	Expiration int64  `json:"expiration"`
}

// MailTransport is the outbound/inbound mail boundary. Implementations must
// honor the caller's context deadline on every call.
type MailTransport interface {
	// EnsureLabel looks up the named label, creating it if absent.
	// Idempotent.
	EnsureLabel(ctx context.Context, name string) (models.LabelHandle, error)

	// Send delivers a plain-text message and returns the transport-assigned
	// identities. Irreversible: callers must not retry past a successful
	// send.
	Send(ctx context.Context, to, subject, body string) (*SentMessage, error)

	// ApplyLabel attaches the label to an already-sent message.
	ApplyLabel(ctx context.Context, messageID, labelID string) error

	// MessagesSince resolves a push notification's history cursor to the
	// messages added since that point, with their plain-text bodies.
	MessagesSince(ctx context.Context, historyID uint64) ([]models.InboundMessage, error)

	// Watch registers the mailbox for push notifications on the given
	// label; StopWatch tears the registration down.
	Watch(ctx context.Context, topic, labelID string) (*WatchHandle, error)
	StopWatch(ctx context.Context) error
}

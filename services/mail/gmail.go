package mail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"meetsync/models"
	"meetsync/utils"
)

const gmailUser = "me"

// GmailTransport implements MailTransport against the Gmail API.
type GmailTransport struct {
	svc    *gmail.Service
	logger *zap.Logger
}

// NewGmailTransport builds a transport for the account behind the given
// client options (credentials file, token source, or pre-built HTTP client).
func NewGmailTransport(ctx context.Context, opts ...option.ClientOption) (*GmailTransport, error) {
	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}
	return &GmailTransport{svc: svc, logger: utils.GetLogger()}, nil
}

// EnsureLabel looks up the named label, creating it when missing.
func (t *GmailTransport) EnsureLabel(ctx context.Context, name string) (models.LabelHandle, error) {
	list, err := t.svc.Users.Labels.List(gmailUser).Context(ctx).Do()
	if err != nil {
		return models.LabelHandle{}, utils.WrapTimeout("gmail labels.list", fmt.Errorf("failed to list labels: %w", err))
	}
	for _, l := range list.Labels {
		if l.Name == name {
			return models.LabelHandle{Name: name, ID: l.Id}, nil
		}
	}

	created, err := t.svc.Users.Labels.Create(gmailUser, &gmail.Label{Name: name}).Context(ctx).Do()
	if err != nil {
		return models.LabelHandle{}, utils.WrapTimeout("gmail labels.create", fmt.Errorf("failed to create label %q: %w", name, err))
	}
	t.logger.Info("Created Gmail label", zap.String("name", name), zap.String("id", created.Id))
	return models.LabelHandle{Name: name, ID: created.Id}, nil
}

// Send delivers a plain-text message and returns the Gmail-assigned identities.
func (t *GmailTransport) Send(ctx context.Context, to, subject, body string) (*SentMessage, error) {
	raw := strings.Join([]string{
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	msg := &gmail.Message{Raw: base64.URLEncoding.EncodeToString([]byte(raw))}
	sent, err := t.svc.Users.Messages.Send(gmailUser, msg).Context(ctx).Do()
	if err != nil {
		return nil, utils.WrapTimeout("gmail messages.send", fmt.Errorf("failed to send message to %s: %w", to, err))
	}
	return &SentMessage{MessageID: sent.Id, ThreadID: sent.ThreadId}, nil
}

// ApplyLabel attaches the label to an already-sent message.
func (t *GmailTransport) ApplyLabel(ctx context.Context, messageID, labelID string) error {
	req := &gmail.ModifyMessageRequest{AddLabelIds: []string{labelID}}
	if _, err := t.svc.Users.Messages.Modify(gmailUser, messageID, req).Context(ctx).Do(); err != nil {
		return utils.WrapTimeout("gmail messages.modify", fmt.Errorf("failed to label message %s: %w", messageID, err))
	}
	return nil
}

// MessagesSince resolves a history cursor to the messages added since that
// point. Messages that have vanished between the history listing and the get
// are skipped, not fatal: the history API is at-least-once and a later
// notification covers them.
func (t *GmailTransport) MessagesSince(ctx context.Context, historyID uint64) ([]models.InboundMessage, error) {
	call := t.svc.Users.History.List(gmailUser).
		StartHistoryId(historyID).
		HistoryTypes("messageAdded").
		Context(ctx)

	var out []models.InboundMessage
	err := call.Pages(ctx, func(page *gmail.ListHistoryResponse) error {
		for _, h := range page.History {
			for _, added := range h.MessagesAdded {
				msg, err := t.svc.Users.Messages.Get(gmailUser, added.Message.Id).Format("full").Context(ctx).Do()
				if err != nil {
					t.logger.Warn("Failed to fetch message from history",
						zap.String("messageId", added.Message.Id), zap.Error(err))
					continue
				}
				out = append(out, models.InboundMessage{
					MessageID: msg.Id,
					ThreadID:  msg.ThreadId,
					Body:      extractPlainText(msg),
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, utils.WrapTimeout("gmail history.list", fmt.Errorf("failed to list history from %d: %w", historyID, err))
	}
	return out, nil
}

// Watch registers the mailbox for push notifications scoped to the label.
func (t *GmailTransport) Watch(ctx context.Context, topic, labelID string) (*WatchHandle, error) {
	req := &gmail.WatchRequest{
		TopicName:           topic,
		LabelIds:            []string{labelID},
		LabelFilterBehavior: "INCLUDE",
	}
	res, err := t.svc.Users.Watch(gmailUser, req).Context(ctx).Do()
	if err != nil {
		return nil, utils.WrapTimeout("gmail watch", fmt.Errorf("failed to configure watch: %w", err))
	}
	return &WatchHandle{HistoryID: res.HistoryId, Expiration: res.Expiration}, nil
}

// StopWatch tears down the mailbox watch registration.
func (t *GmailTransport) StopWatch(ctx context.Context) error {
	if err := t.svc.Users.Stop(gmailUser).Context(ctx).Do(); err != nil {
		return utils.WrapTimeout("gmail stop", fmt.Errorf("failed to stop watch: %w", err))
	}
	return nil
}

// extractPlainText pulls the text/plain part out of a full-format message,
// falling back to the snippet when no decodable part exists.
func extractPlainText(msg *gmail.Message) string {
	if msg.Payload == nil {
		return msg.Snippet
	}
	if body := findPlainPart(msg.Payload); body != "" {
		return body
	}
	return msg.Snippet
}

func findPlainPart(part *gmail.MessagePart) string {
	if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
		// Gmail body data is base64url without padding.
		decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(part.Body.Data, "="))
		if err != nil {
			return ""
		}
		return string(decoded)
	}
	for _, p := range part.Parts {
		if body := findPlainPart(p); body != "" {
			return body
		}
	}
	return ""
}

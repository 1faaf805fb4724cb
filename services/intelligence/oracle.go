package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"meetsync/utils"
)

// DefaultTextOracle implements TextOracle on the Gemini client. The prompts
// are the contract: drafting is free-form, extraction must yield exactly one
// RFC 3339 instant so the caller can parse it strictly.
type DefaultTextOracle struct {
	Client *GeminiClient
}

func NewDefaultTextOracle(apiKey string) *DefaultTextOracle {
	return &DefaultTextOracle{Client: NewGeminiClient(apiKey)}
}

// Draft composes the outbound proposal body.
func (o *DefaultTextOracle) Draft(ctx context.Context, req DraftRequest) (string, error) {
	var options strings.Builder
	for _, s := range req.Slots {
		fmt.Fprintf(&options, "- %s to %s\n",
			s.Start.Format("Monday 2 January, 3:04 PM"),
			s.End.Format("3:04 PM"))
	}

	prompt := fmt.Sprintf(
		"You are a helpful assistant. Write a polite email to %s proposing a meeting about %q.\n"+
			"Here are some times:\n\n%s\nNotes: %s\n\n"+
			"Reply with the email body only, no subject line.",
		req.AttendeeEmail, req.Subject, options.String(), req.Notes)

	text, err := o.Client.GenerateDraft(ctx, prompt)
	if err != nil {
		return "", utils.WrapTimeout("oracle draft", err)
	}
	return strings.TrimSpace(text), nil
}

// Extract pulls the agreed meeting time out of a reply. The returned string
// is whatever the model produced; validating it against RFC 3339 is the
// caller's job.
func (o *DefaultTextOracle) Extract(ctx context.Context, replyBody string) (string, error) {
	prompt := fmt.Sprintf(
		"Extract the agreed meeting date and time from this email reply:\n\n%q\n\n"+
			"Answer with exactly one RFC 3339 timestamp (like %s) and nothing else. "+
			"If no time was agreed, answer with the single word NONE.",
		replyBody, time.RFC3339)

	text, err := o.Client.GenerateExtract(ctx, prompt)
	if err != nil {
		return "", utils.WrapTimeout("oracle extract", err)
	}
	return strings.TrimSpace(text), nil
}

// File: services/intelligence/geminiClient.go
package ai

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Model names for the two oracle call sites. Drafting gets the larger model;
// extraction is a short structured task and runs on the lite one.
const (
	draftModel   = "models/gemini-2.0-flash"
	extractModel = "models/gemini-2.0-flash-lite"
)

type GeminiClient struct {
	draft   *genai.GenerativeModel
	extract *genai.GenerativeModel
}

func NewGeminiClient(apiKey string) *GeminiClient {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		panic(fmt.Sprintf("failed to create Gemini client: %v", err))
	}

	return &GeminiClient{
		draft:   client.GenerativeModel(draftModel),
		extract: client.GenerativeModel(extractModel),
	}
}

func (g *GeminiClient) GenerateDraft(ctx context.Context, prompt string) (string, error) {
	return generate(ctx, g.draft, prompt)
}

func (g *GeminiClient) GenerateExtract(ctx context.Context, prompt string) (string, error) {
	return generate(ctx, g.extract, prompt)
}

func generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

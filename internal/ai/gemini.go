package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Gemini is an optional last-resort backend, enabled when a Gemini API key
// is configured.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-2.0-flash")
	model.SetTemperature(0.4)
	model.SetTopP(0.9)

	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Name() string { return "Gemini" }

func (g *Gemini) Close() {
	g.client.Close()
}

func (g *Gemini) Complete(ctx context.Context, prompt, instructions string) (string, error) {
	resp, err := g.model.GenerateContent(ctx,
		genai.Text(instructions+"\n\n"+prompt),
	)
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			return "", &ProviderError{Backend: g.Name(), StatusHint: gerr.Code, Message: gerr.Message, Err: err}
		}
		return "", &ProviderError{Backend: g.Name(), Message: err.Error(), Err: err}
	}

	text := extractText(resp)
	if text == "" {
		return "", &ProviderError{Backend: g.Name(), Message: "empty completion response"}
	}

	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}
	return strings.TrimSpace(text.String())
}

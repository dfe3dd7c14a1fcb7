package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const cohereEndpoint = "https://api.cohere.ai/v1/chat"

// Cohere is the fallback completion backend.
type Cohere struct {
	httpClient *http.Client
	apiKey     string
	model      string
}

func NewCohere(apiKey, model string) *Cohere {
	return &Cohere{
		httpClient: &http.Client{},
		apiKey:     apiKey,
		model:      model,
	}
}

func (c *Cohere) Name() string { return "Cohere" }

type cohereRequest struct {
	Model       string  `json:"model"`
	Message     string  `json:"message"`
	Preamble    string  `json:"preamble"`
	Temperature float64 `json:"temperature"`
	P           float64 `json:"p"`
	Stream      bool    `json:"stream"`
}

type cohereResponse struct {
	Text    string `json:"text"`
	Message string `json:"message"`
}

func (c *Cohere) Complete(ctx context.Context, prompt, instructions string) (string, error) {
	body, err := json.Marshal(cohereRequest{
		Model:       c.model,
		Message:     prompt,
		Preamble:    instructions,
		Temperature: 0.4,
		P:           0.9,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode Cohere request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cohereEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build Cohere request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ProviderError{Backend: c.Name(), Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Backend: c.Name(), Message: "failed to read response body", Err: err}
	}

	var parsed cohereResponse
	json.Unmarshal(data, &parsed)

	if resp.StatusCode != http.StatusOK {
		msg := parsed.Message
		if msg == "" {
			msg = strings.TrimSpace(string(data))
		}
		return "", &ProviderError{Backend: c.Name(), StatusHint: resp.StatusCode, Message: msg}
	}

	if parsed.Text == "" {
		return "", &ProviderError{Backend: c.Name(), Message: "empty completion response"}
	}

	return parsed.Text, nil
}

package ai

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouter is the primary completion backend, reached through its
// OpenAI-compatible chat completions endpoint.
type OpenRouter struct {
	client *openai.Client
	model  string
}

func NewOpenRouter(apiKey, model, referer, title string) *OpenRouter {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = openRouterBaseURL
	cfg.HTTPClient = &http.Client{
		Transport: &attributionTransport{referer: referer, title: title},
	}
	return &OpenRouter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (o *OpenRouter) Name() string { return "OpenRouter" }

func (o *OpenRouter) Complete(ctx context.Context, prompt, instructions string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instructions},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.4,
		TopP:        0.9,
	})
	if err != nil {
		return "", o.wrapErr(err)
	}

	if len(resp.Choices) == 0 {
		return "", &ProviderError{Backend: o.Name(), Message: "empty completion response"}
	}

	return resp.Choices[0].Message.Content, nil
}

func (o *OpenRouter) wrapErr(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{
			Backend:    o.Name(),
			StatusHint: apiErr.HTTPStatusCode,
			Message:    apiErr.Message,
			Err:        err,
		}
	}
	return &ProviderError{Backend: o.Name(), Message: err.Error(), Err: err}
}

// attributionTransport adds the request attribution headers OpenRouter asks
// clients to send.
type attributionTransport struct {
	referer string
	title   string
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if t.referer != "" {
		clone.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		clone.Header.Set("X-Title", t.title)
	}
	return http.DefaultTransport.RoundTrip(clone)
}

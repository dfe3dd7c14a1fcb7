package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

const defaultInstructions = "You are a helpful learning assistant. Be concise and clear."

// Completer is a single text-completion backend. Each implementation owns its
// provider-specific request and response mapping.
type Completer interface {
	Name() string
	Complete(ctx context.Context, prompt, instructions string) (string, error)
}

// Chain tries an ordered list of completion backends until one succeeds.
// Every backend gets one timeout-bounded call per Complete; retry budgets
// live with the caller, not here.
type Chain struct {
	backends []Completer
	timeout  time.Duration
}

func NewChain(timeout time.Duration, backends ...Completer) *Chain {
	return &Chain{backends: backends, timeout: timeout}
}

// Backends returns the names of the configured backends in fallback order.
func (c *Chain) Backends() []string {
	names := make([]string, len(c.backends))
	for i, b := range c.backends {
		names[i] = b.Name()
	}
	return names
}

func (c *Chain) Complete(ctx context.Context, prompt, instructions string) (string, error) {
	if len(c.backends) == 0 {
		return "", errors.New("no completion backends configured")
	}
	if instructions == "" {
		instructions = defaultInstructions
	}

	var lastErr error
	for i, backend := range c.backends {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		text, err := backend.Complete(callCtx, prompt, instructions)
		cancel()

		if err == nil {
			log.Printf("AI response received from %s", backend.Name())
			return text, nil
		}

		lastErr = err
		log.Printf("%s failed: %v", backend.Name(), err)
		if i < len(c.backends)-1 {
			log.Printf("Trying fallback backend...")
		}
	}

	return "", chainError(lastErr)
}

// chainError maps the final backend failure to a message a caller can show
// to the user.
func chainError(err error) error {
	if IsTimeout(err) {
		return fmt.Errorf("AI processing is taking too long. Please try with shorter content: %w", err)
	}

	var provErr *ProviderError
	if errors.As(err, &provErr) {
		switch provErr.StatusHint {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("API authentication failed. Please check your API keys: %w", err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("API rate limit exceeded. Please try again later: %w", err)
		case http.StatusServiceUnavailable:
			return fmt.Errorf("AI model is currently overloaded. Please try again in a few minutes: %w", err)
		}
	}

	return fmt.Errorf("all AI models are currently unavailable: %w", err)
}

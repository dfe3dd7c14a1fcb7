package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ProviderError is a failed call against a single completion backend.
// StatusHint carries the upstream HTTP status when one was observed.
type ProviderError struct {
	Backend    string
	StatusHint int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusHint > 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Backend, e.Message, e.StatusHint)
	}
	return fmt.Sprintf("%s: %s", e.Backend, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Fatal reports whether the failure is an authentication problem. A fatal
// error is never retried against the same backend, though the next backend
// in the chain is still tried.
func (e *ProviderError) Fatal() bool {
	return e.StatusHint == http.StatusUnauthorized || e.StatusHint == http.StatusForbidden
}

// IsTimeout reports whether err represents the completion call losing its
// race against the timeout. A timeout is a normal failure mode that feeds
// the fallback and retry logic.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

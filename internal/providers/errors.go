package providers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"
	"time"
)

// ErrMissingAPIKey is returned when a remote backend is built without a credential.
var ErrMissingAPIKey = errors.New("remote backend requires an API key")

// BackendUnavailableError means the backend service could not be reached.
type BackendUnavailableError struct {
	Backend string
	URL     string
	Err     error
}

func (e *BackendUnavailableError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("%s backend unavailable at %s: %v", e.Backend, e.URL, e.Err)
	}
	return fmt.Sprintf("%s backend unavailable: %v", e.Backend, e.Err)
}

func (e *BackendUnavailableError) Unwrap() error { return e.Err }

// ModelUnavailableError means the provider rejected the model identifier
// as unknown, retired or decommissioned.
type ModelUnavailableError struct {
	Model string
	Err   error
}

func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("model %s unavailable: %v", e.Model, e.Err)
}

func (e *ModelUnavailableError) Unwrap() error { return e.Err }

// RateLimitError is returned when the provider answers 429.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
	StatusCode int
}

func (e *RateLimitError) Error() string {
	return e.Message
}

var modelUnavailablePhrases = []string{
	"not found",
	"not_found",
	"does not exist",
	"decommissioned",
	"not available",
	"unavailable",
	"retired",
	"deprecated",
	"no longer supported",
	"invalid model",
}

// isModelUnavailable reports whether err says the requested model cannot be served.
// Providers word this differently, so besides the typed error the message is
// checked for "model" alongside a known phrase.
func isModelUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var mu *ModelUnavailableError
	if errors.As(err, &mu) {
		return true
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "model") {
		return false
	}
	for _, phrase := range modelUnavailablePhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}

// isUnreachable reports whether err is a transport failure to reach the service.
func isUnreachable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Timeout() || errors.Is(urlErr.Err, context.DeadlineExceeded)
	}
	return false
}

package providers

import (
	"context"
	"fmt"
	"time"
)

// Backend is a text-in/text-out chat completion backend.
//
// Chat never returns an error: failures come back as a degraded *Reply whose
// Cause explains what went wrong, so callers always have text to show.
type Backend interface {
	Chat(ctx context.Context, prompt string) *Reply

	// Name returns the backend identifier (e.g., "ollama", "groq").
	Name() string
}

// HealthChecker is implemented by backends that can probe their service.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// ChatOptions are the generation knobs shared by every backend.
type ChatOptions struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultChatOptions returns maxTokens=1000, temperature=0.7 and a 30s timeout.
func DefaultChatOptions() ChatOptions {
	return ChatOptions{
		MaxTokens:   1000,
		Temperature: 0.7,
		Timeout:     30 * time.Second,
	}
}

// Validate checks the options are usable.
func (o ChatOptions) Validate() error {
	if o.Temperature < 0 || o.Temperature > 1 {
		return fmt.Errorf("temperature must be within [0,1], got %v", o.Temperature)
	}
	if o.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must not be negative, got %d", o.MaxTokens)
	}
	if o.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", o.Timeout)
	}
	return nil
}

// withDefaults fills zero values from DefaultChatOptions.
// Temperature 0 is a valid setting and is left alone.
func (o ChatOptions) withDefaults() ChatOptions {
	d := DefaultChatOptions()
	if o.MaxTokens == 0 {
		o.MaxTokens = d.MaxTokens
	}
	if o.Timeout == 0 {
		o.Timeout = d.Timeout
	}
	return o
}

// Reply is the outcome of one Chat call.
type Reply struct {
	// Text is always non-empty: the model answer, or fallback text when Degraded.
	Text string `json:"text"`

	Backend string `json:"backend"`
	Model   string `json:"model,omitempty"`

	// Degraded is true when Text is a locally synthesized fallback.
	Degraded bool  `json:"degraded"`
	Cause    error `json:"-"`

	// Attempts counts provider calls, including a fallback-model retry.
	Attempts int `json:"attempts"`

	PromptTokens     int           `json:"prompt_tokens,omitempty"`
	CompletionTokens int           `json:"completion_tokens,omitempty"`
	Latency          time.Duration `json:"latency"`
}

// CauseMessage returns the failure message, or "" for a live answer.
func (r *Reply) CauseMessage() string {
	if r == nil || r.Cause == nil {
		return ""
	}
	return r.Cause.Error()
}

// degradedReply builds the fallback reply for a failed call.
func degradedReply(backend, model string, attempts int, start time.Time, cause error) *Reply {
	return &Reply{
		Text:     OfflineFallback,
		Backend:  backend,
		Model:    model,
		Degraded: true,
		Cause:    cause,
		Attempts: attempts,
		Latency:  time.Since(start),
	}
}

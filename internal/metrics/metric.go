// Package metrics tracks usage of the chat backend: one Metric per call,
// kept in memory and aggregated on demand.
package metrics

import (
	"time"

	"github.com/jackzampolin/sommelier/internal/providers"
)

// Operations that call the backend.
const (
	OperationRecommend = "recommend"
	OperationCompare   = "compare"
)

// ErrorTypeDegraded marks a call answered by the offline fallback.
const ErrorTypeDegraded = "degraded"

// Metric represents a single chat backend call.
type Metric struct {
	// Attribution (for filtering/aggregation)
	SessionID string `json:"session_id,omitempty"`
	Persona   string `json:"persona,omitempty"`
	Operation string `json:"operation,omitempty"`

	// Provider info
	Backend string `json:"backend,omitempty"`
	Model   string `json:"model,omitempty"`

	// Tokens
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`

	Attempts       int     `json:"attempts"`
	LatencySeconds float64 `json:"latency_seconds"`

	// Status
	Success   bool   `json:"success"`
	ErrorType string `json:"error_type,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// FromReply builds a metric from a chat reply.
func FromReply(reply *providers.Reply, opts RecordOpts) Metric {
	m := Metric{
		SessionID:        opts.SessionID,
		Persona:          opts.Persona,
		Operation:        opts.Operation,
		Backend:          reply.Backend,
		Model:            reply.Model,
		PromptTokens:     reply.PromptTokens,
		CompletionTokens: reply.CompletionTokens,
		TotalTokens:      reply.PromptTokens + reply.CompletionTokens,
		Attempts:         reply.Attempts,
		LatencySeconds:   reply.Latency.Seconds(),
		Success:          !reply.Degraded,
		CreatedAt:        time.Now(),
	}
	if reply.Degraded {
		m.ErrorType = ErrorTypeDegraded
	}
	return m
}

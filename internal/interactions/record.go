// Package interactions records sommelier recommendations for history and export.
// Each recommendation becomes an immutable Record appended to a session Log.
package interactions

import (
	"time"

	"github.com/google/uuid"

	"github.com/jackzampolin/sommelier/internal/providers"
)

// previewLength caps the dish text shown in history summaries.
const previewLength = 50

// Record is one completed recommendation.
type Record struct {
	// Unique identifier
	ID string `json:"id"`

	Timestamp time.Time `json:"timestamp"`

	// Request
	CustomerName    string `json:"customer_name"`
	DishDescription string `json:"dish_description"`
	PersonaKey      string `json:"persona_key"`
	PersonaName     string `json:"persona_name"`

	// Response
	ResponseText string `json:"response_text"`
	Degraded     bool   `json:"degraded"`
	Error        string `json:"error,omitempty"`

	// Backend info
	Backend    string `json:"backend,omitempty"`
	Model      string `json:"model,omitempty"`
	LatencyMs  int    `json:"latency_ms"`
	PromptHash string `json:"prompt_hash,omitempty"`
}

// RecordOptions provides request context for building a Record.
type RecordOptions struct {
	CustomerName    string
	DishDescription string
	PersonaKey      string
	PersonaName     string

	// PromptHash identifies the exact compiled prompt (optional).
	PromptHash string
}

// FromReply creates a Record for a backend reply. responseText is the final
// text shown to the customer, which may include bottle suggestions.
// Returns nil if reply is nil.
func FromReply(reply *providers.Reply, responseText string, opts RecordOptions) *Record {
	if reply == nil {
		return nil
	}
	return &Record{
		ID:              uuid.New().String(),
		Timestamp:       time.Now(),
		CustomerName:    opts.CustomerName,
		DishDescription: opts.DishDescription,
		PersonaKey:      opts.PersonaKey,
		PersonaName:     opts.PersonaName,
		ResponseText:    responseText,
		Degraded:        reply.Degraded,
		Error:           reply.CauseMessage(),
		Backend:         reply.Backend,
		Model:           reply.Model,
		LatencyMs:       int(reply.Latency.Milliseconds()),
		PromptHash:      opts.PromptHash,
	}
}

// Summary is the short form of a Record used in history listings.
type Summary struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Customer    string    `json:"customer"`
	DishPreview string    `json:"dish_preview"`
	PersonaKey  string    `json:"persona_key"`
	PersonaName string    `json:"persona_name"`
	Degraded    bool      `json:"degraded"`
}

// Summarize returns the listing form of r. Dish text longer than 50
// characters is cut and marked with "...".
func (r *Record) Summarize() Summary {
	return Summary{
		ID:          r.ID,
		Timestamp:   r.Timestamp,
		Customer:    r.CustomerName,
		DishPreview: preview(r.DishDescription),
		PersonaKey:  r.PersonaKey,
		PersonaName: r.PersonaName,
		Degraded:    r.Degraded,
	}
}

func preview(s string) string {
	runes := []rune(s)
	if len(runes) <= previewLength {
		return s
	}
	return string(runes[:previewLength]) + "..."
}

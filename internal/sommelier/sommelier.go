// Package sommelier is the recommendation orchestrator. It resolves a
// persona, compiles the prompt, calls the chat backend, optionally adds
// bottle suggestions, and records the interaction in its own log.
package sommelier

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackzampolin/sommelier/internal/bottles"
	"github.com/jackzampolin/sommelier/internal/interactions"
	"github.com/jackzampolin/sommelier/internal/metrics"
	"github.com/jackzampolin/sommelier/internal/personas"
	"github.com/jackzampolin/sommelier/internal/prompts"
	"github.com/jackzampolin/sommelier/internal/providers"
)

// bottleSeparator sits between the recommendation and the bottle block.
const bottleSeparator = "\n\n---\n\n"

// DefaultPersona is used when a caller names no persona.
const DefaultPersona = "professional"

// BottleSearcher finds bottles for a varietal. Implemented by *bottles.Searcher.
type BottleSearcher interface {
	Search(ctx context.Context, varietal, dish string, maxPrice int) []bottles.Suggestion
}

var _ BottleSearcher = (*bottles.Searcher)(nil)

// Config wires a Sommelier's collaborators.
type Config struct {
	Personas *personas.Registry // Required
	Backend  providers.Backend  // Required
	Bottles  BottleSearcher     // Optional; enrichment is skipped when nil

	// Log receives saved interactions. A fresh log is created when nil.
	Log *interactions.Log

	// Archiver copies saved interactions out of process (optional).
	Archiver  interactions.Archiver
	SessionID string

	// Metrics records every backend call (optional).
	Metrics *metrics.Recorder

	PromptOptions prompts.Options

	// Concurrency bounds ComparePersonas fan-out. Values < 1 mean sequential.
	Concurrency int

	Logger *slog.Logger
}

// Sommelier produces wine recommendations. One instance owns one log.
type Sommelier struct {
	personas    *personas.Registry
	backend     providers.Backend
	bottles     BottleSearcher
	log         *interactions.Log
	archiver    interactions.Archiver
	sessionID   string
	metrics     *metrics.Recorder
	promptOpts  prompts.Options
	concurrency int
	logger      *slog.Logger
}

// New creates a Sommelier.
func New(cfg Config) (*Sommelier, error) {
	if cfg.Personas == nil {
		return nil, errors.New("persona registry is required")
	}
	if cfg.Backend == nil {
		return nil, errors.New("chat backend is required")
	}
	if cfg.Log == nil {
		cfg.Log = interactions.NewLog()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.SessionID != "" {
		logger = logger.With("session_id", cfg.SessionID)
	}
	return &Sommelier{
		personas:    cfg.Personas,
		backend:     cfg.Backend,
		bottles:     cfg.Bottles,
		log:         cfg.Log,
		archiver:    cfg.Archiver,
		sessionID:   cfg.SessionID,
		metrics:     cfg.Metrics,
		promptOpts:  cfg.PromptOptions,
		concurrency: cfg.Concurrency,
		logger:      logger,
	}, nil
}

// Personas returns the registry this sommelier serves.
func (s *Sommelier) Personas() *personas.Registry {
	return s.personas
}

// Backend returns the chat backend.
func (s *Sommelier) Backend() providers.Backend {
	return s.backend
}

// History returns the interaction log.
func (s *Sommelier) History() *interactions.Log {
	return s.log
}

// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with endpoints.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/jackzampolin/sommelier/internal/bottles"
	"github.com/jackzampolin/sommelier/internal/config"
	"github.com/jackzampolin/sommelier/internal/home"
	"github.com/jackzampolin/sommelier/internal/interactions"
	"github.com/jackzampolin/sommelier/internal/metrics"
	"github.com/jackzampolin/sommelier/internal/personas"
	"github.com/jackzampolin/sommelier/internal/providers"
	"github.com/jackzampolin/sommelier/internal/session"
	"github.com/jackzampolin/sommelier/internal/sommelier"
)

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
type Services struct {
	Personas *personas.Registry
	Backend  providers.Backend
	Bottles  *bottles.Searcher
	Sessions *session.Manager
	Archiver interactions.Archiver
	Metrics  *metrics.Recorder
	Config   *config.Manager
	Logger   *slog.Logger
	Home     *home.Dir

	// Sommelier serves stateless calls such as persona comparison.
	// It shares the backend but writes to its own, otherwise unused, log.
	Sommelier *sommelier.Sommelier
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// PersonasFrom extracts the persona registry from context.
func PersonasFrom(ctx context.Context) *personas.Registry {
	if s := ServicesFrom(ctx); s != nil {
		return s.Personas
	}
	return nil
}

// BackendFrom extracts the chat backend from context.
func BackendFrom(ctx context.Context) providers.Backend {
	if s := ServicesFrom(ctx); s != nil {
		return s.Backend
	}
	return nil
}

// BottlesFrom extracts the bottle searcher from context.
func BottlesFrom(ctx context.Context) *bottles.Searcher {
	if s := ServicesFrom(ctx); s != nil {
		return s.Bottles
	}
	return nil
}

// SessionsFrom extracts the session manager from context.
func SessionsFrom(ctx context.Context) *session.Manager {
	if s := ServicesFrom(ctx); s != nil {
		return s.Sessions
	}
	return nil
}

// ArchiverFrom extracts the history archiver from context.
func ArchiverFrom(ctx context.Context) interactions.Archiver {
	if s := ServicesFrom(ctx); s != nil {
		return s.Archiver
	}
	return nil
}

// MetricsFrom extracts the backend call recorder from context.
func MetricsFrom(ctx context.Context) *metrics.Recorder {
	if s := ServicesFrom(ctx); s != nil {
		return s.Metrics
	}
	return nil
}

// ConfigFrom extracts the config manager from context.
func ConfigFrom(ctx context.Context) *config.Manager {
	if s := ServicesFrom(ctx); s != nil {
		return s.Config
	}
	return nil
}

// SommelierFrom extracts the stateless sommelier from context.
func SommelierFrom(ctx context.Context) *sommelier.Sommelier {
	if s := ServicesFrom(ctx); s != nil {
		return s.Sommelier
	}
	return nil
}

// LoggerFrom extracts the logger from context.
// Returns slog.Default() if no logger is attached.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil && s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// HomeFrom extracts the home directory from context.
func HomeFrom(ctx context.Context) *home.Dir {
	if s := ServicesFrom(ctx); s != nil {
		return s.Home
	}
	return nil
}

package svcctx

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackzampolin/sommelier/internal/bottles"
	"github.com/jackzampolin/sommelier/internal/config"
	"github.com/jackzampolin/sommelier/internal/home"
	"github.com/jackzampolin/sommelier/internal/metrics"
	"github.com/jackzampolin/sommelier/internal/personas"
	"github.com/jackzampolin/sommelier/internal/providers"
	"github.com/jackzampolin/sommelier/internal/session"
	"github.com/jackzampolin/sommelier/internal/sommelier"
)

// BuildOptions supplies what Build cannot derive from the config.
type BuildOptions struct {
	Home          *home.Dir
	ConfigManager *config.Manager
	Logger        *slog.Logger

	// Backend replaces the configured chat backend when set.
	Backend providers.Backend
}

// Build wires every service from cfg.
func Build(ctx context.Context, cfg *config.Config, opts BuildOptions) (*Services, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	reg, err := personas.Load(PersonasFile(cfg, opts.Home))
	if err != nil {
		return nil, err
	}

	backend := opts.Backend
	if backend == nil {
		backend, err = providers.NewBackend(ctx, cfg.ToBackendConfig(), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create chat backend: %w", err)
		}
	}

	searcher := bottles.NewSearcher(cfg.ToBottlesConfig(logger))
	archiver := cfg.OpenArchive(ctx, logger)
	promptOpts := cfg.PromptOptions()
	recorder := metrics.NewRecorder(metrics.DefaultCapacity)

	factory := func(sessionID string) (*sommelier.Sommelier, error) {
		return sommelier.New(sommelier.Config{
			Personas:      reg,
			Backend:       backend,
			Bottles:       searcher,
			Archiver:      archiver,
			Metrics:       recorder,
			SessionID:     sessionID,
			PromptOptions: promptOpts,
			Concurrency:   cfg.Compare.Concurrency,
			Logger:        logger,
		})
	}

	stateless, err := sommelier.New(sommelier.Config{
		Personas:      reg,
		Backend:       backend,
		Bottles:       searcher,
		Metrics:       recorder,
		PromptOptions: promptOpts,
		Concurrency:   cfg.Compare.Concurrency,
		Logger:        logger,
	})
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(session.Config{
		MaxSessions:    cfg.Server.MaxSessions,
		SessionTimeout: cfg.SessionTimeout(),
		Logger:         logger,
	}, factory)

	logger.Info("services ready",
		"backend", backend.Name(),
		"personas", reg.Len(),
		"bottles_remote", searcher.RemoteEnabled(),
		"archive", archiver != nil)

	return &Services{
		Personas:  reg,
		Backend:   backend,
		Bottles:   searcher,
		Sessions:  sessions,
		Archiver:  archiver,
		Metrics:   recorder,
		Config:    opts.ConfigManager,
		Logger:    logger,
		Home:      opts.Home,
		Sommelier: stateless,
	}, nil
}

// PersonasFile picks the persona file: the configured one, else the one in
// the home directory when present. "" selects the built-in set.
func PersonasFile(cfg *config.Config, h *home.Dir) string {
	if cfg.Personas.File != "" {
		return cfg.Personas.File
	}
	if h != nil && h.PersonasExists() {
		return h.PersonasPath()
	}
	return ""
}

// Close drops all sessions and closes the archive connection.
func (s *Services) Close() error {
	if s.Sessions != nil {
		s.Sessions.Shutdown()
	}
	if s.Archiver != nil {
		return s.Archiver.Close()
	}
	return nil
}

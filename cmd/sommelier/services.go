package main

import (
	"context"
	"log/slog"

	"github.com/jackzampolin/sommelier/internal/config"
	"github.com/jackzampolin/sommelier/internal/home"
	"github.com/jackzampolin/sommelier/internal/svcctx"
)

// loadConfig resolves the home directory and loads configuration. An
// explicit --config wins; otherwise the home config file is used if present.
func loadConfig(logger *slog.Logger) (*home.Dir, *config.Manager, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, nil, err
	}

	path := cfgFile
	if path == "" && h.ConfigExists() {
		path = h.ConfigPath()
	}
	cm, err := config.NewManager(path)
	if err != nil {
		return nil, nil, err
	}
	cm.SetLogger(logger)
	if used := cm.ConfigFileUsed(); used != "" {
		logger.Debug("config loaded", "file", used)
	}
	return h, cm, nil
}

// loadServices wires every service for commands that run in-process.
func loadServices(ctx context.Context, logger *slog.Logger) (*svcctx.Services, error) {
	h, cm, err := loadConfig(logger)
	if err != nil {
		return nil, err
	}
	return svcctx.Build(ctx, cm.Get(), svcctx.BuildOptions{
		Home:          h,
		ConfigManager: cm,
		Logger:        logger,
	})
}

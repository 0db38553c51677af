package providers

import (
	"context"
	"fmt"
	"log/slog"
)

// Backend kinds selectable in configuration.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
	BackendMock   = "mock"
)

// BackendConfig selects and configures the single backend a process uses.
type BackendConfig struct {
	Type   string
	Local  LocalConfig
	Remote RemoteConfig
}

// NewBackend builds the configured backend. The choice is made once at
// startup; there is no way to swap backends on a running orchestrator.
func NewBackend(ctx context.Context, cfg BackendConfig, logger *slog.Logger) (Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Type {
	case BackendLocal:
		if err := cfg.Local.Options.Validate(); err != nil {
			return nil, err
		}
		local := cfg.Local
		local.Logger = logger
		b := NewLocalBackend(local)
		logger.Info("using local backend", "backend", b.Name(), "model", b.Model())
		return b, nil

	case BackendRemote, "":
		remote := cfg.Remote
		remote.Logger = logger
		b, err := NewRemoteBackend(ctx, remote)
		if err != nil {
			return nil, fmt.Errorf("remote backend: %w", err)
		}
		logger.Info("using remote backend", "backend", b.Name(), "models", b.Models())
		return b, nil

	case BackendMock:
		logger.Warn("using mock backend; replies are canned")
		return NewMockBackend(), nil

	default:
		return nil, fmt.Errorf("unknown backend type: %s", cfg.Type)
	}
}

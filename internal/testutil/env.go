package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/jackzampolin/sommelier/internal/config"
	"github.com/jackzampolin/sommelier/internal/home"
	"github.com/jackzampolin/sommelier/internal/providers"
	"github.com/jackzampolin/sommelier/internal/svcctx"
)

// ServerConfig returns configuration values for creating a test server.
// This avoids importing the server package directly.
type ServerConfig struct {
	Host       string
	Port       string
	HomeDir    string
	ConfigFile string
	Logger     *slog.Logger
}

// NewServerConfig creates configuration for a test server on a free port.
// The config file selects the mock backend and disables every remote service.
func NewServerConfig(t *testing.T) ServerConfig {
	t.Helper()

	tempDir := t.TempDir()
	httpPort, err := FindFreePort()
	if err != nil {
		t.Fatalf("failed to find free port for HTTP: %v", err)
	}

	configFile := tempDir + "/config.yaml"
	data := []byte(`backend:
  type: mock
bottles:
  api_key: ""
history:
  redis_addr: ""
`)
	if err := os.WriteFile(configFile, data, 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	return ServerConfig{
		Host:       "127.0.0.1",
		Port:       httpPort,
		HomeDir:    tempDir,
		ConfigFile: configFile,
		Logger:     Logger(),
	}
}

// URL returns the server URL for the given config.
func (c ServerConfig) URL() string {
	return fmt.Sprintf("http://%s:%s", c.Host, c.Port)
}

// Logger returns a logger that discards output unless SOMMELIER_TEST_LOG is set.
func Logger() *slog.Logger {
	if os.Getenv("SOMMELIER_TEST_LOG") != "" {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OfflineConfig returns the default config with remote services disabled.
func OfflineConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Backend.Type = providers.BackendMock
	cfg.Bottles.APIKey = ""
	cfg.History.RedisAddr = ""
	return cfg
}

// NewServices wires services around backend using OfflineConfig.
// A nil backend selects a fresh mock.
func NewServices(t *testing.T, backend providers.Backend) *svcctx.Services {
	t.Helper()
	return NewServicesWith(t, OfflineConfig(), backend)
}

// NewServicesWith wires services from cfg around backend.
func NewServicesWith(t *testing.T, cfg *config.Config, backend providers.Backend) *svcctx.Services {
	t.Helper()

	if backend == nil {
		backend = providers.NewMockBackend()
	}
	h, err := home.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create home: %v", err)
	}

	svc, err := svcctx.Build(context.Background(), cfg, svcctx.BuildOptions{
		Home:    h,
		Logger:  Logger(),
		Backend: backend,
	})
	if err != nil {
		t.Fatalf("failed to build services: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

// WaitForServer polls /health until the server answers.
func WaitForServer(url string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	client := &http.Client{Timeout: 2 * time.Second}

	for time.Now().Before(deadline) {
		resp, err := client.Get(url + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	return fmt.Errorf("server not ready after %v", timeout)
}

// WaitForShutdown waits for a channel to receive a value or timeout.
func WaitForShutdown(done <-chan error, timeout time.Duration) error {
	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("timeout waiting for shutdown")
	}
}

// HTTPClient returns an HTTP client for making requests.
func HTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

// FindFreePort finds an available TCP port and returns it as a string.
func FindFreePort() (string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	defer listener.Close()
	return fmt.Sprintf("%d", listener.Addr().(*net.TCPAddr).Port), nil
}

// StartServer is a helper type for managing server lifecycle in tests.
// Usage:
//
//	cfg := testutil.NewServerConfig(t)
//	srv, err := server.New(server.Config{...from cfg...})
//	starter := testutil.StartServer{Cancel: cancel, Done: done}
//	t.Cleanup(func() { starter.Stop() })
type StartServer struct {
	Cancel context.CancelFunc
	Done   <-chan error
}

// Stop cancels the server context and waits for shutdown.
func (s *StartServer) Stop() {
	if s.Cancel != nil {
		s.Cancel()
	}
	if s.Done != nil {
		<-s.Done
	}
}

// StatusResponse matches the server's StatusResponse structure.
type StatusResponse struct {
	Server  string `json:"server"`
	Backend struct {
		Name   string   `json:"name"`
		Models []string `json:"models"`
	} `json:"backend"`
	Sessions struct {
		Active int `json:"active"`
	} `json:"sessions"`
	Personas []string `json:"personas"`
	Archive  string   `json:"archive"`
}

// GetStatus fetches the /status endpoint and returns the parsed response.
func GetStatus(url string) (*StatusResponse, error) {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url + "/status")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var status StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, err
	}
	return &status, nil
}

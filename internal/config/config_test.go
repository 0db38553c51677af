package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackzampolin/sommelier/internal/providers"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return configFile
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Backend.Type != providers.BackendRemote {
		t.Errorf("expected remote backend, got %s", cfg.Backend.Type)
	}
	if cfg.Backend.MaxTokens != 1000 || cfg.Backend.Temperature != 0.7 {
		t.Errorf("unexpected generation defaults: %+v", cfg.Backend)
	}
	if cfg.Backend.Remote.APIKey != "${GROQ_API_KEY}" {
		t.Error("expected groq API key placeholder")
	}
	if cfg.Bottles.MaxPrice != 100 {
		t.Errorf("expected max price 100, got %d", cfg.Bottles.MaxPrice)
	}
	if !cfg.Personas.IncludeExamples {
		t.Error("expected examples to be included by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Run("resolves environment variable", func(t *testing.T) {
		t.Setenv("TEST_API_KEY", "secret123")

		result := ResolveEnvVars("${TEST_API_KEY}")
		if result != "secret123" {
			t.Errorf("expected secret123, got %s", result)
		}
	})

	t.Run("returns empty for missing env var", func(t *testing.T) {
		result := ResolveEnvVars("${DEFINITELY_NOT_SET_12345}")
		if result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})

	t.Run("leaves literal values unchanged", func(t *testing.T) {
		result := ResolveEnvVars("literal-value")
		if result != "literal-value" {
			t.Errorf("expected literal-value, got %s", result)
		}
	})
}

func TestConfig_ToBackendConfig(t *testing.T) {
	t.Setenv("TEST_GROQ_KEY", "gk-123")

	cfg := DefaultConfig()
	cfg.Backend.Remote.APIKey = "${TEST_GROQ_KEY}"
	cfg.Backend.TimeoutSeconds = 12

	bc := cfg.ToBackendConfig()
	if bc.Type != providers.BackendRemote {
		t.Errorf("expected remote, got %s", bc.Type)
	}
	if bc.Remote.APIKey != "gk-123" {
		t.Errorf("expected resolved key, got %q", bc.Remote.APIKey)
	}
	if bc.Remote.Models["llama3.2"] != "llama-3.1-8b-instant" {
		t.Errorf("expected model map entry, got %v", bc.Remote.Models)
	}
	if bc.Remote.Options.Timeout != 12*time.Second {
		t.Errorf("expected 12s timeout, got %s", bc.Remote.Options.Timeout)
	}
	if bc.Local.Options.Temperature != 0.7 {
		t.Errorf("expected local temperature 0.7, got %v", bc.Local.Options.Temperature)
	}
}

func TestConfig_ToBottlesConfig(t *testing.T) {
	t.Setenv("TEST_SPOON_KEY", "sp-1")

	cfg := DefaultConfig()
	cfg.Bottles.APIKey = "${TEST_SPOON_KEY}"

	bc := cfg.ToBottlesConfig(nil)
	if bc.APIKey != "sp-1" {
		t.Errorf("expected resolved key, got %q", bc.APIKey)
	}
	if bc.Timeout != 5*time.Second || bc.MaxPrice != 100 {
		t.Errorf("unexpected bottle settings: %+v", bc)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"temperature too high", func(c *Config) { c.Backend.Temperature = 1.5 }},
		{"temperature negative", func(c *Config) { c.Backend.Temperature = -0.1 }},
		{"unknown backend", func(c *Config) { c.Backend.Type = "carrier-pigeon" }},
		{"negative tokens", func(c *Config) { c.Backend.MaxTokens = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestNewManager(t *testing.T) {
	t.Run("loads from config file", func(t *testing.T) {
		configFile := writeConfig(t, `
backend:
  type: local
  local:
    model: mistral
bottles:
  max_price: 40
`)
		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}

		cfg := mgr.Get()
		if cfg.Backend.Type != "local" {
			t.Errorf("expected local, got %s", cfg.Backend.Type)
		}
		if cfg.Backend.Local.Model != "mistral" {
			t.Errorf("expected mistral, got %s", cfg.Backend.Local.Model)
		}
		if cfg.Bottles.MaxPrice != 40 {
			t.Errorf("expected 40, got %d", cfg.Bottles.MaxPrice)
		}
		// Untouched keys keep their defaults.
		if cfg.Backend.Local.BaseURL != "http://localhost:11434" {
			t.Errorf("expected default base url, got %s", cfg.Backend.Local.BaseURL)
		}
		if cfg.Backend.MaxTokens != 1000 {
			t.Errorf("expected default max tokens, got %d", cfg.Backend.MaxTokens)
		}
		if mgr.ConfigFileUsed() != configFile {
			t.Errorf("expected %s, got %s", configFile, mgr.ConfigFileUsed())
		}
	})

	t.Run("custom model aliases", func(t *testing.T) {
		configFile := writeConfig(t, `
backend:
  remote:
    models:
      - name: house
        id: provider/house-model
`)
		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}
		models := mgr.Get().ToBackendConfig().Remote.Models
		if len(models) != 1 || models["house"] != "provider/house-model" {
			t.Errorf("unexpected models: %v", models)
		}
	})

	t.Run("env overrides nested keys", func(t *testing.T) {
		t.Setenv("SOMMELIER_BACKEND_TYPE", "mock")
		t.Setenv("SOMMELIER_BOTTLES_MAX_PRICE", "25")

		mgr, err := NewManager(writeConfig(t, "backend:\n  type: local\n"))
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}
		cfg := mgr.Get()
		if cfg.Backend.Type != "mock" {
			t.Errorf("expected env override mock, got %s", cfg.Backend.Type)
		}
		if cfg.Bottles.MaxPrice != 25 {
			t.Errorf("expected env override 25, got %d", cfg.Bottles.MaxPrice)
		}
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		_, err := NewManager(writeConfig(t, "backend:\n  temperature: 3\n"))
		if err == nil {
			t.Fatal("expected error for temperature 3")
		}
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		_, err := NewManager(writeConfig(t, "backend: [unclosed\n"))
		if err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestManager_OnChange_Multiple(t *testing.T) {
	mgr, err := NewManager(writeConfig(t, "compare:\n  concurrency: 2\n"))
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	mgr.OnChange(func(cfg *Config) {})
	mgr.OnChange(func(cfg *Config) {})
	mgr.OnChange(func(cfg *Config) {})

	mgr.mu.RLock()
	if len(mgr.callbacks) != 3 {
		t.Errorf("expected 3 callbacks, got %d", len(mgr.callbacks))
	}
	mgr.mu.RUnlock()
}

func TestManager_Get_ThreadSafe(t *testing.T) {
	mgr, err := NewManager(writeConfig(t, "compare:\n  concurrency: 2\n"))
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				cfg := mgr.Get()
				_ = cfg.Compare.Concurrency
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestManager_WatchConfig(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file watcher test in short mode")
	}
	configFile := writeConfig(t, "bottles:\n  max_price: 50\n")

	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	if got := mgr.Get().Bottles.MaxPrice; got != 50 {
		t.Fatalf("initial value mismatch: expected 50, got %d", got)
	}

	var callbackCount atomic.Int32
	var lastValue atomic.Int64

	mgr.OnChange(func(cfg *Config) {
		callbackCount.Add(1)
		lastValue.Store(int64(cfg.Bottles.MaxPrice))
	})

	mgr.WatchConfig()

	// Give fsnotify time to set up the watcher
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(configFile, []byte("bottles:\n  max_price: 75\n"), 0644); err != nil {
		t.Fatalf("failed to write updated config file: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if callbackCount.Load() > 0 && lastValue.Load() == 75 {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	if callbackCount.Load() == 0 {
		t.Fatal("callback was not invoked after config file change")
	}
	if got := mgr.Get().Bottles.MaxPrice; got != 75 {
		t.Errorf("config not updated: expected 75, got %d", got)
	}
	if v := lastValue.Load(); v != 75 {
		t.Errorf("callback received wrong value: expected 75, got %d", v)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	mgr, err := NewManager(path)
	if err != nil {
		t.Fatalf("written defaults do not load: %v", err)
	}
	cfg := mgr.Get()
	if cfg.Backend.Remote.Model != "llama3" || len(cfg.Backend.Remote.Models) != 6 {
		t.Errorf("unexpected remote settings after round trip: %+v", cfg.Backend.Remote)
	}
}

func TestSettings(t *testing.T) {
	t.Setenv("TEST_SETTINGS_KEY", "abc")

	cfg := DefaultConfig()
	cfg.Bottles.APIKey = "literal-secret"
	cfg.Backend.Remote.APIKey = "${TEST_SETTINGS_KEY}"

	entries := Settings(cfg)
	if len(entries) != len(descriptions) {
		t.Fatalf("expected %d settings, got %d", len(descriptions), len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Key >= entries[i].Key {
			t.Fatalf("settings not sorted at %s", entries[i].Key)
		}
	}
	for _, e := range entries {
		if e.Description == "" {
			t.Errorf("missing description for %s", e.Key)
		}
	}

	entry, err := Lookup(cfg, "bottles.api_key")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if entry.Value != redacted {
		t.Errorf("expected literal secret to be redacted, got %v", entry.Value)
	}

	entry, err = Lookup(cfg, "backend.remote.api_key")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if entry.Value != "${TEST_SETTINGS_KEY}" {
		t.Errorf("expected env reference to be shown, got %v", entry.Value)
	}

	if _, err := Lookup(cfg, "nope.nothing"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("expected ErrUnknownKey, got %v", err)
	}
	if _, err := Lookup(cfg, "bad key!"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}

	if got := SettingsWithPrefix(cfg, "history."); len(got) != 3 {
		t.Errorf("expected 3 history settings, got %d", len(got))
	}
	if GetDefault("compare.concurrency") != 4 {
		t.Errorf("unexpected default: %v", GetDefault("compare.concurrency"))
	}
}

func TestValidateKey(t *testing.T) {
	valid := []string{"backend.type", "server.max_sessions", "a"}
	for _, k := range valid {
		if err := ValidateKey(k); err != nil {
			t.Errorf("expected %q valid: %v", k, err)
		}
	}
	invalid := []string{"", ".backend", "backend.", "back end", "key$"}
	for _, k := range invalid {
		if err := ValidateKey(k); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("expected %q invalid, got %v", k, err)
		}
	}
}

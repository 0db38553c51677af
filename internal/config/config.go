package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/jackzampolin/sommelier/internal/bottles"
	"github.com/jackzampolin/sommelier/internal/interactions"
	"github.com/jackzampolin/sommelier/internal/prompts"
	"github.com/jackzampolin/sommelier/internal/providers"
)

// EnvPrefix prefixes environment overrides, e.g. SOMMELIER_BACKEND_TYPE.
const EnvPrefix = "SOMMELIER"

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	mu        sync.RWMutex
	v         *viper.Viper
	config    *Config
	callbacks []func(*Config)
	logger    *slog.Logger
}

// NewManager creates a new config manager and loads initial config.
// A .env file in the working directory is loaded first when present.
func NewManager(cfgFile string) (*Manager, error) {
	_ = godotenv.Load()

	cm := &Manager{
		v:         viper.New(),
		callbacks: make([]func(*Config), 0),
		logger:    slog.Default(),
	}

	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults, env overrides and config file.
func (cm *Manager) initViper(cfgFile string) error {
	v := cm.v
	for key, value := range defaultValues(DefaultConfig()) {
		v.SetDefault(key, value)
	}

	// Environment variables with SOMMELIER_ prefix
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.sommelier")
	}

	// Try to read config file (not required)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// defaultValues flattens cfg into dotted viper keys. Registering every leaf
// key lets AutomaticEnv override nested settings during Unmarshal.
func defaultValues(cfg *Config) map[string]any {
	return map[string]any{
		"backend.type":                   cfg.Backend.Type,
		"backend.max_tokens":             cfg.Backend.MaxTokens,
		"backend.temperature":            cfg.Backend.Temperature,
		"backend.timeout_seconds":        cfg.Backend.TimeoutSeconds,
		"backend.local.base_url":         cfg.Backend.Local.BaseURL,
		"backend.local.model":            cfg.Backend.Local.Model,
		"backend.remote.provider":        cfg.Backend.Remote.Provider,
		"backend.remote.base_url":        cfg.Backend.Remote.BaseURL,
		"backend.remote.api_key":         cfg.Backend.Remote.APIKey,
		"backend.remote.model":           cfg.Backend.Remote.Model,
		"backend.remote.fallback_model":  cfg.Backend.Remote.FallbackModel,
		"backend.remote.models":          cfg.Backend.Remote.Models,
		"backend.remote.rate_limit":      cfg.Backend.Remote.RateLimit,
		"bottles.api_key":                cfg.Bottles.APIKey,
		"bottles.base_url":               cfg.Bottles.BaseURL,
		"bottles.max_price":              cfg.Bottles.MaxPrice,
		"bottles.timeout_seconds":        cfg.Bottles.TimeoutSeconds,
		"personas.file":                  cfg.Personas.File,
		"personas.include_examples":      cfg.Personas.IncludeExamples,
		"compare.concurrency":            cfg.Compare.Concurrency,
		"history.redis_addr":             cfg.History.RedisAddr,
		"history.redis_password":         cfg.History.RedisPassword,
		"history.ttl_hours":              cfg.History.TTLHours,
		"server.max_sessions":            cfg.Server.MaxSessions,
		"server.session_timeout_minutes": cfg.Server.SessionTimeoutMinutes,
		"server.allowed_origins":         cfg.Server.AllowedOrigins,
	}
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := cm.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConfigFileUsed returns the path of the loaded config file, or "".
func (cm *Manager) ConfigFileUsed() string {
	return cm.v.ConfigFileUsed()
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// SetLogger sets the logger used for reload messages.
func (cm *Manager) SetLogger(logger *slog.Logger) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.logger = logger
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration. Invalid edits are
// logged and the previous configuration stays in effect.
func (cm *Manager) WatchConfig() {
	cm.v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			cm.mu.RLock()
			logger := cm.logger
			cm.mu.RUnlock()
			logger.Warn("ignoring invalid config change", "file", e.Name, "error", err)
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		logger := cm.logger
		cm.mu.Unlock()

		logger.Info("config reloaded", "file", e.Name)
		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	cm.v.WatchConfig()
}

// ResolveEnvVars expands ${ENV_VAR} references in a string.
func ResolveEnvVars(value string) string {
	if value == "" {
		return value
	}
	return envVarPattern.ReplaceAllStringFunc(value, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}

// Validate checks values that would otherwise fail deep inside a component.
func (c *Config) Validate() error {
	if c.Backend.Temperature < 0 || c.Backend.Temperature > 1 {
		return fmt.Errorf("backend.temperature must be within [0,1], got %v", c.Backend.Temperature)
	}
	switch c.Backend.Type {
	case "", providers.BackendLocal, providers.BackendRemote, providers.BackendMock:
	default:
		return fmt.Errorf("backend.type must be one of local, remote, mock; got %q", c.Backend.Type)
	}
	if c.Backend.MaxTokens < 0 || c.Backend.TimeoutSeconds < 0 {
		return errors.New("backend.max_tokens and backend.timeout_seconds must not be negative")
	}
	return nil
}

// ChatOptions returns the generation settings shared by all backends.
func (c *Config) ChatOptions() providers.ChatOptions {
	return providers.ChatOptions{
		MaxTokens:   c.Backend.MaxTokens,
		Temperature: c.Backend.Temperature,
		Timeout:     time.Duration(c.Backend.TimeoutSeconds) * time.Second,
	}
}

// ToBackendConfig converts the config for providers.NewBackend.
// It resolves ${ENV_VAR} references in the API key.
func (c *Config) ToBackendConfig() providers.BackendConfig {
	opts := c.ChatOptions()
	models := make(map[string]string, len(c.Backend.Remote.Models))
	for _, m := range c.Backend.Remote.Models {
		models[m.Name] = m.ID
	}
	return providers.BackendConfig{
		Type: c.Backend.Type,
		Local: providers.LocalConfig{
			BaseURL: c.Backend.Local.BaseURL,
			Model:   c.Backend.Local.Model,
			Options: opts,
		},
		Remote: providers.RemoteConfig{
			Provider:      c.Backend.Remote.Provider,
			APIKey:        ResolveEnvVars(c.Backend.Remote.APIKey),
			BaseURL:       c.Backend.Remote.BaseURL,
			Model:         c.Backend.Remote.Model,
			FallbackModel: c.Backend.Remote.FallbackModel,
			Models:        models,
			Options:       opts,
			RateLimit:     c.Backend.Remote.RateLimit,
		},
	}
}

// ToBottlesConfig converts the config for bottles.NewSearcher.
func (c *Config) ToBottlesConfig(logger *slog.Logger) bottles.Config {
	return bottles.Config{
		APIKey:   ResolveEnvVars(c.Bottles.APIKey),
		BaseURL:  c.Bottles.BaseURL,
		Timeout:  time.Duration(c.Bottles.TimeoutSeconds) * time.Second,
		MaxPrice: c.Bottles.MaxPrice,
		Logger:   logger,
	}
}

// ToArchiveConfig converts the config for interactions.NewRedisArchiver.
func (c *Config) ToArchiveConfig() interactions.ArchiveConfig {
	return interactions.ArchiveConfig{
		Addr:     c.History.RedisAddr,
		Password: ResolveEnvVars(c.History.RedisPassword),
		TTL:      time.Duration(c.History.TTLHours) * time.Hour,
	}
}

// PromptOptions returns the prompt compiler options.
func (c *Config) PromptOptions() prompts.Options {
	return prompts.Options{IncludeExamples: c.Personas.IncludeExamples}
}

// SessionTimeout returns the idle time after which a session is dropped.
func (c *Config) SessionTimeout() time.Duration {
	return time.Duration(c.Server.SessionTimeoutMinutes) * time.Minute
}

// OpenArchive connects the history archive, or returns nil when disabled.
func (c *Config) OpenArchive(ctx context.Context, logger *slog.Logger) interactions.Archiver {
	a := interactions.NewRedisArchiver(ctx, c.ToArchiveConfig(), logger)
	if a == nil {
		return nil
	}
	return a
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Sommelier configuration
# API keys use ${ENV_VAR} syntax to reference environment variables
# Set these in your shell or a .env file: export GROQ_API_KEY=xxx SPOONACULAR_API_KEY=xxx
# Any scalar key can be overridden as SOMMELIER_<KEY>, e.g. SOMMELIER_BACKEND_TYPE=local

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}

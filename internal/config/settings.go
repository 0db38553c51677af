package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// ErrInvalidKey is returned when a config key contains invalid characters.
var ErrInvalidKey = errors.New("invalid config key")

// ErrUnknownKey is returned when a config key does not exist.
var ErrUnknownKey = errors.New("unknown config key")

// redacted replaces secret values in listings.
const redacted = "********"

// Entry is one effective setting.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Default     any    `json:"default" yaml:"default"`
	Description string `json:"description" yaml:"description"`
}

// descriptions documents every setting.
var descriptions = map[string]string{
	"backend.type":                   "Chat backend: remote, local or mock",
	"backend.max_tokens":             "Maximum tokens generated per recommendation",
	"backend.temperature":            "Sampling temperature in [0,1]",
	"backend.timeout_seconds":        "Per-call backend timeout in seconds",
	"backend.local.base_url":         "Ollama server URL",
	"backend.local.model":            "Ollama model name",
	"backend.remote.provider":        "Hosted provider: groq, openai or gemini",
	"backend.remote.base_url":        "Provider API base URL (empty uses the provider default)",
	"backend.remote.api_key":         "Provider API key (uses environment variable)",
	"backend.remote.model":           "Primary model, logical name or provider id",
	"backend.remote.fallback_model":  "Model tried once when the primary is unavailable",
	"backend.remote.models":          "Logical model names and their provider ids",
	"backend.remote.rate_limit":      "Requests per minute sent to the provider (0 disables)",
	"bottles.api_key":                "Spoonacular API key (uses environment variable)",
	"bottles.base_url":               "Spoonacular API base URL",
	"bottles.max_price":              "Default bottle price ceiling in dollars",
	"bottles.timeout_seconds":        "Bottle lookup timeout in seconds",
	"personas.file":                  "Persona YAML file (empty uses the built-in personas)",
	"personas.include_examples":      "Include persona example replies in prompts",
	"compare.concurrency":            "Personas queried at once during a comparison",
	"history.redis_addr":             "Redis address for the history archive (empty disables)",
	"history.redis_password":         "Redis password",
	"history.ttl_hours":              "Hours archived history is kept",
	"server.max_sessions":            "Maximum concurrent client sessions",
	"server.session_timeout_minutes": "Idle minutes before a session is dropped",
	"server.allowed_origins":         "Origins allowed to open WebSocket connections",
}

// secretKeys hold credentials and are never listed in clear.
var secretKeys = map[string]bool{
	"backend.remote.api_key": true,
	"bottles.api_key":        true,
	"history.redis_password": true,
}

// ValidateKey checks if a config key contains only allowed characters.
// Valid keys contain: letters, digits, dots and underscores.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}
	for i, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' {
			return fmt.Errorf("%w: invalid character %q at position %d", ErrInvalidKey, r, i)
		}
	}
	if key[0] == '.' || key[len(key)-1] == '.' {
		return fmt.Errorf("%w: key cannot start or end with a dot", ErrInvalidKey)
	}
	return nil
}

// Settings lists the effective settings of cfg sorted by key. Secrets show
// only whether they are set.
func Settings(cfg *Config) []Entry {
	current := defaultValues(cfg)
	defaults := defaultValues(DefaultConfig())

	keys := make([]string, 0, len(current))
	for k := range current {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, Entry{
			Key:         k,
			Value:       displayValue(k, current[k]),
			Default:     defaults[k],
			Description: descriptions[k],
		})
	}
	return out
}

// SettingsWithPrefix filters Settings by key prefix.
func SettingsWithPrefix(cfg *Config, prefix string) []Entry {
	all := Settings(cfg)
	if prefix == "" {
		return all
	}
	out := make([]Entry, 0, len(all))
	for _, e := range all {
		if strings.HasPrefix(e.Key, prefix) {
			out = append(out, e)
		}
	}
	return out
}

// Lookup returns a single effective setting.
func Lookup(cfg *Config, key string) (*Entry, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	current := defaultValues(cfg)
	value, ok := current[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return &Entry{
		Key:         key,
		Value:       displayValue(key, value),
		Default:     defaultValues(DefaultConfig())[key],
		Description: descriptions[key],
	}, nil
}

// GetDefault returns the default value for a config key.
// Returns nil if the key does not exist.
func GetDefault(key string) any {
	return defaultValues(DefaultConfig())[key]
}

func displayValue(key string, value any) any {
	if !secretKeys[key] {
		return value
	}
	s, _ := value.(string)
	if ResolveEnvVars(s) == "" {
		return ""
	}
	if strings.HasPrefix(s, "${") {
		return s
	}
	return redacted
}

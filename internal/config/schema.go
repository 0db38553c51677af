package config

// Config holds sommelier configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Backend  BackendCfg  `mapstructure:"backend" yaml:"backend"`
	Bottles  BottlesCfg  `mapstructure:"bottles" yaml:"bottles"`
	Personas PersonasCfg `mapstructure:"personas" yaml:"personas"`
	Compare  CompareCfg  `mapstructure:"compare" yaml:"compare"`
	History  HistoryCfg  `mapstructure:"history" yaml:"history"`
	Server   ServerCfg   `mapstructure:"server" yaml:"server"`
}

// BackendCfg selects and tunes the chat backend.
type BackendCfg struct {
	Type           string    `mapstructure:"type" yaml:"type"` // "remote", "local" or "mock"
	MaxTokens      int       `mapstructure:"max_tokens" yaml:"max_tokens"`
	Temperature    float64   `mapstructure:"temperature" yaml:"temperature"`
	TimeoutSeconds int       `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Local          LocalCfg  `mapstructure:"local" yaml:"local"`
	Remote         RemoteCfg `mapstructure:"remote" yaml:"remote"`
}

// LocalCfg configures the Ollama backend.
type LocalCfg struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	Model   string `mapstructure:"model" yaml:"model"`
}

// RemoteCfg configures the hosted backend.
type RemoteCfg struct {
	Provider      string       `mapstructure:"provider" yaml:"provider"` // "groq", "openai" or "gemini"
	BaseURL       string       `mapstructure:"base_url" yaml:"base_url"` // Empty uses the provider default
	APIKey        string       `mapstructure:"api_key" yaml:"api_key"`   // Supports ${ENV_VAR} syntax
	Model         string       `mapstructure:"model" yaml:"model"`       // Logical name or provider id
	FallbackModel string       `mapstructure:"fallback_model" yaml:"fallback_model"`
	Models        []ModelAlias `mapstructure:"models" yaml:"models"`
	RateLimit     int          `mapstructure:"rate_limit" yaml:"rate_limit"` // Requests per minute
}

// ModelAlias maps a logical model name to a provider id. Kept as a list
// because logical names like "llama3.2" contain viper's key delimiter.
type ModelAlias struct {
	Name string `mapstructure:"name" yaml:"name"`
	ID   string `mapstructure:"id" yaml:"id"`
}

// BottlesCfg configures bottle lookup.
type BottlesCfg struct {
	APIKey         string `mapstructure:"api_key" yaml:"api_key"` // Spoonacular key, supports ${ENV_VAR}
	BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
	MaxPrice       int    `mapstructure:"max_price" yaml:"max_price"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// PersonasCfg points at an optional persona file.
type PersonasCfg struct {
	File            string `mapstructure:"file" yaml:"file"` // Empty uses the built-in personas
	IncludeExamples bool   `mapstructure:"include_examples" yaml:"include_examples"`
}

// CompareCfg tunes persona comparison.
type CompareCfg struct {
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// HistoryCfg configures the optional Redis history archive.
type HistoryCfg struct {
	RedisAddr     string `mapstructure:"redis_addr" yaml:"redis_addr"` // Empty disables archiving
	RedisPassword string `mapstructure:"redis_password" yaml:"redis_password"`
	TTLHours      int    `mapstructure:"ttl_hours" yaml:"ttl_hours"`
}

// ServerCfg configures per-client sessions served over HTTP.
type ServerCfg struct {
	MaxSessions           int      `mapstructure:"max_sessions" yaml:"max_sessions"`
	SessionTimeoutMinutes int      `mapstructure:"session_timeout_minutes" yaml:"session_timeout_minutes"`
	AllowedOrigins        []string `mapstructure:"allowed_origins" yaml:"allowed_origins"` // WebSocket origins; "*" or empty allows all
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendCfg{
			Type:           "remote",
			MaxTokens:      1000,
			Temperature:    0.7,
			TimeoutSeconds: 30,
			Local: LocalCfg{
				BaseURL: "http://localhost:11434",
				Model:   "llama3.2",
			},
			Remote: RemoteCfg{
				Provider:      "groq",
				APIKey:        "${GROQ_API_KEY}",
				Model:         "llama3",
				FallbackModel: "llama3.2",
				Models: []ModelAlias{
					{Name: "llama3.2", ID: "llama-3.1-8b-instant"},
					{Name: "llama3", ID: "llama-3.3-70b-versatile"},
					{Name: "llama2", ID: "llama2-70b-4096"},
					{Name: "gemma", ID: "gemma2-9b-it"},
					{Name: "mixtral", ID: "mixtral-8x7b-32768"},
					{Name: "qwen", ID: "qwen/qwen3-32b"},
				},
				RateLimit: 30,
			},
		},
		Bottles: BottlesCfg{
			APIKey:         "${SPOONACULAR_API_KEY}",
			BaseURL:        "https://api.spoonacular.com",
			MaxPrice:       100,
			TimeoutSeconds: 5,
		},
		Personas: PersonasCfg{
			IncludeExamples: true,
		},
		Compare: CompareCfg{
			Concurrency: 4,
		},
		History: HistoryCfg{
			TTLHours: 24,
		},
		Server: ServerCfg{
			MaxSessions:           100,
			SessionTimeoutMinutes: 30,
			AllowedOrigins:        []string{"*"},
		},
	}
}

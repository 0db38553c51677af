package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

// Remote provider kinds.
const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// RemoteConfig holds configuration for a hosted chat-completion provider.
type RemoteConfig struct {
	Provider string // "groq" (default), "openai" or "gemini"
	APIKey   string
	BaseURL  string // Optional; provider default when empty

	// Model is a logical name looked up in Models, or a provider id.
	Model string
	// FallbackModel is tried once when the provider reports Model unavailable.
	FallbackModel string
	// Models maps logical names to provider-specific ids.
	Models map[string]string

	Options    ChatOptions
	RateLimit  int          // Requests per minute, 0 disables
	HTTPClient *http.Client // Optional (tests)
	Logger     *slog.Logger
}

// completion is one provider call.
type completion struct {
	Model       string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

type completionResult struct {
	Text             string
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// completer is the provider-specific half of the remote backend.
type completer interface {
	complete(ctx context.Context, req completion) (*completionResult, error)
}

// RemoteBackend sends prompts to a hosted provider, retrying once on the
// fallback model when the configured model is unavailable.
type RemoteBackend struct {
	name     string
	model    string
	fallback string
	models   map[string]string
	options  ChatOptions
	limiter  *RateLimiter
	client   completer
	logger   *slog.Logger
}

// NewRemoteBackend creates a remote backend. An API key is required.
func NewRemoteBackend(ctx context.Context, cfg RemoteConfig) (*RemoteBackend, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Provider == "" {
		cfg.Provider = ProviderGroq
	}
	cfg.Options = cfg.Options.withDefaults()
	if err := cfg.Options.Validate(); err != nil {
		return nil, err
	}

	var (
		client completer
		err    error
	)
	switch cfg.Provider {
	case ProviderGroq, ProviderOpenAI:
		client = newOpenAICompleter(cfg)
	case ProviderGemini:
		client, err = newGeminiCompleter(ctx, cfg)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown remote provider: %s", cfg.Provider)
	}

	return newRemoteBackend(cfg, client), nil
}

func newRemoteBackend(cfg RemoteConfig, client completer) *RemoteBackend {
	if cfg.Provider == "" {
		cfg.Provider = ProviderGroq
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	models := make(map[string]string, len(cfg.Models))
	for k, v := range cfg.Models {
		models[k] = v
	}

	return &RemoteBackend{
		name:     cfg.Provider,
		model:    cfg.Model,
		fallback: cfg.FallbackModel,
		models:   models,
		options:  cfg.Options.withDefaults(),
		limiter:  NewRateLimiter(cfg.RateLimit),
		client:   client,
		logger:   cfg.Logger,
	}
}

// Name returns the provider identifier.
func (b *RemoteBackend) Name() string {
	return b.name
}

// ResolveModel maps a logical model name to its provider id.
// Names missing from the map are treated as provider ids already.
func (b *RemoteBackend) ResolveModel(name string) string {
	if id, ok := b.models[name]; ok {
		return id
	}
	return name
}

// Models returns the model chain tried by Chat: the primary id, then the
// fallback id when it differs.
func (b *RemoteBackend) Models() []string {
	primary := b.ResolveModel(b.model)
	fallback := b.ResolveModel(b.fallback)
	if primary == "" {
		primary = fallback
	}
	if fallback == "" || fallback == primary {
		return []string{primary}
	}
	return []string{primary, fallback}
}

// RateLimitStatus reports the limiter state.
func (b *RemoteBackend) RateLimitStatus() RateLimiterStatus {
	return b.limiter.Status()
}

// Chat sends the prompt to the primary model. If the provider reports the
// model unavailable it retries exactly once with the fallback model. Any other
// failure, or a failed retry, yields the offline fallback text.
func (b *RemoteBackend) Chat(ctx context.Context, prompt string) *Reply {
	start := time.Now()
	chain := b.Models()

	var (
		result   *completionResult
		attempts int
		lastUsed string
	)
	err := retry.Do(
		func() error {
			model := chain[attempts]
			attempts++
			lastUsed = model

			if err := b.limiter.Wait(ctx); err != nil {
				return retry.Unrecoverable(err)
			}

			callCtx, cancel := context.WithTimeout(ctx, b.options.Timeout)
			defer cancel()

			res, err := b.client.complete(callCtx, completion{
				Model:       model,
				Prompt:      prompt,
				Temperature: b.options.Temperature,
				MaxTokens:   b.options.MaxTokens,
			})
			if err != nil {
				b.noteRateLimit(err)
				return err
			}
			if strings.TrimSpace(res.Text) == "" {
				return fmt.Errorf("%s returned an empty response for model %s", b.name, model)
			}
			result = res
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(len(chain))),
		retry.RetryIf(isModelUnavailable),
		retry.Delay(0),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			if int(n)+1 >= len(chain) {
				return
			}
			b.logger.Info("model unavailable, retrying with fallback",
				"backend", b.name,
				"model", chain[n],
				"fallback", chain[n+1],
				"error", err)
		}),
	)
	if err != nil {
		b.logger.Warn("remote backend degraded",
			"backend", b.name,
			"model", lastUsed,
			"attempts", attempts,
			"error", err)
		return degradedReply(b.name, lastUsed, attempts, start, err)
	}

	model := result.Model
	if model == "" {
		model = lastUsed
	}
	return &Reply{
		Text:             result.Text,
		Backend:          b.name,
		Model:            model,
		Attempts:         attempts,
		PromptTokens:     result.PromptTokens,
		CompletionTokens: result.CompletionTokens,
		Latency:          time.Since(start),
	}
}

func (b *RemoteBackend) noteRateLimit(err error) {
	var rl *RateLimitError
	if errors.As(err, &rl) {
		b.limiter.Record429(rl.RetryAfter)
	}
}

// HealthCheck probes the provider when the completer supports it.
func (b *RemoteBackend) HealthCheck(ctx context.Context) error {
	if hc, ok := b.client.(HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}

var (
	_ Backend       = (*RemoteBackend)(nil)
	_ HealthChecker = (*RemoteBackend)(nil)
)

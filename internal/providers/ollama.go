package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	OllamaName           = "ollama"
	ollamaDefaultBaseURL = "http://localhost:11434"
	ollamaDefaultModel   = "llama3.2"
)

// LocalConfig holds configuration for the on-device Ollama backend.
type LocalConfig struct {
	BaseURL    string
	Model      string
	Options    ChatOptions
	HTTPClient *http.Client // Optional (tests)
	Logger     *slog.Logger
}

// LocalBackend talks to a local Ollama server. No credentials are needed.
type LocalBackend struct {
	baseURL string
	model   string
	options ChatOptions
	client  *http.Client
	logger  *slog.Logger
}

// NewLocalBackend creates a backend for a local Ollama server.
func NewLocalBackend(cfg LocalConfig) *LocalBackend {
	if cfg.BaseURL == "" {
		cfg.BaseURL = ollamaDefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = ollamaDefaultModel
	}
	cfg.Options = cfg.Options.withDefaults()
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Options.Timeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &LocalBackend{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		options: cfg.Options,
		client:  cfg.HTTPClient,
		logger:  cfg.Logger,
	}
}

// Name returns the backend identifier.
func (b *LocalBackend) Name() string {
	return OllamaName
}

// Model returns the configured model.
func (b *LocalBackend) Model() string {
	return b.model
}

// Chat sends the prompt as a single user message.
func (b *LocalBackend) Chat(ctx context.Context, prompt string) *Reply {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, b.options.Timeout)
	defer cancel()

	resp, err := b.chat(ctx, prompt)
	if err != nil {
		b.logger.Warn("local backend degraded",
			"backend", OllamaName,
			"model", b.model,
			"error", err)
		return degradedReply(OllamaName, b.model, 1, start, err)
	}

	model := resp.Model
	if model == "" {
		model = b.model
	}
	return &Reply{
		Text:             resp.Message.Content,
		Backend:          OllamaName,
		Model:            model,
		Attempts:         1,
		PromptTokens:     resp.PromptEvalCount,
		CompletionTokens: resp.EvalCount,
		Latency:          time.Since(start),
	}
}

func (b *LocalBackend) chat(ctx context.Context, prompt string) (*ollamaChatResponse, error) {
	body, err := json.Marshal(ollamaChatRequest{
		Model:    b.model,
		Messages: []ollamaMessage{{Role: "user", Content: prompt}},
		Stream:   false,
		Options: ollamaOptions{
			Temperature: b.options.Temperature,
			NumPredict:  b.options.MaxTokens,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	respBody, status, err := b.do(ctx, http.MethodPost, "/api/chat", body)
	if err != nil {
		return nil, err
	}

	var chatResp ollamaChatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		if status != http.StatusOK {
			return nil, fmt.Errorf("ollama error (status %d): %s", status, string(respBody))
		}
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if status == http.StatusNotFound {
		return nil, &ModelUnavailableError{Model: b.model, Err: fmt.Errorf("%s", chatResp.Error)}
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("ollama error (status %d): %s", status, chatResp.Error)
	}
	if strings.TrimSpace(chatResp.Message.Content) == "" {
		return nil, fmt.Errorf("ollama returned an empty response")
	}
	return &chatResp, nil
}

// ListModels returns the names of the models installed on the server.
func (b *LocalBackend) ListModels(ctx context.Context) ([]string, error) {
	respBody, status, err := b.do(ctx, http.MethodGet, "/api/tags", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("ollama error (status %d): %s", status, string(respBody))
	}

	var tags ollamaTagsResponse
	if err := json.Unmarshal(respBody, &tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
	}
	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// HealthCheck verifies the server is reachable and the configured model is installed.
func (b *LocalBackend) HealthCheck(ctx context.Context) error {
	names, err := b.ListModels(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		if name == b.model || strings.TrimSuffix(name, ":latest") == b.model {
			return nil
		}
	}
	return &ModelUnavailableError{
		Model: b.model,
		Err:   fmt.Errorf("not installed on %s (run: ollama pull %s)", b.baseURL, b.model),
	}
}

// do performs a request and maps transport failures to *BackendUnavailableError.
func (b *LocalBackend) do(ctx context.Context, method, path string, body []byte) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := b.client.Do(req)
	if err != nil {
		if isUnreachable(err) {
			return nil, 0, &BackendUnavailableError{Backend: OllamaName, URL: b.baseURL, Err: err}
		}
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	return respBody, resp.StatusCode, nil
}

var (
	_ Backend       = (*LocalBackend)(nil)
	_ HealthChecker = (*LocalBackend)(nil)
)

package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// openAICompleter speaks the OpenAI chat completions API. Groq exposes the
// same API, so both providers share it with different base URLs.
type openAICompleter struct {
	client openai.Client
}

func newOpenAICompleter(cfg RemoteConfig) *openAICompleter {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Options.Timeout}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" && cfg.Provider == ProviderGroq {
		baseURL = groqBaseURL
	}

	// Retries are owned by RemoteBackend so the fallback model is tried exactly once.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &openAICompleter{client: openai.NewClient(opts...)}
}

func (c *openAICompleter) complete(ctx context.Context, req completion) (*completionResult, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, mapChatError(req.Model, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	return &completionResult{
		Text:             resp.Choices[0].Message.Content,
		Model:            resp.Model,
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
	}, nil
}

// HealthCheck verifies the API is reachable and the key is valid.
func (c *openAICompleter) HealthCheck(ctx context.Context) error {
	page, err := c.client.Models.List(ctx)
	if err != nil {
		return fmt.Errorf("models list failed: %w", mapChatError("", err))
	}
	if page == nil {
		return fmt.Errorf("models list returned nil response")
	}
	return nil
}

// mapChatError converts SDK errors into the package's typed errors.
func mapChatError(model string, err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	msg := apiErr.Message
	if msg == "" {
		msg = http.StatusText(apiErr.StatusCode)
	}
	wrapped := fmt.Errorf("chat completion error (status %d): %s", apiErr.StatusCode, msg)

	switch {
	case apiErr.StatusCode == http.StatusTooManyRequests:
		retryAfter := time.Duration(0)
		if apiErr.Response != nil {
			retryAfter = parseRetryAfter(apiErr.Response.Header.Get("Retry-After"))
		}
		return &RateLimitError{
			Message:    fmt.Sprintf("rate limited: %s", msg),
			RetryAfter: retryAfter,
			StatusCode: apiErr.StatusCode,
		}
	case model != "" && (apiErr.StatusCode == http.StatusNotFound ||
		strings.HasPrefix(apiErr.Code, "model_") ||
		isModelUnavailable(wrapped)):
		return &ModelUnavailableError{Model: model, Err: wrapped}
	}
	return wrapped
}

var _ HealthChecker = (*openAICompleter)(nil)

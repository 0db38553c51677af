package providers

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// geminiCompleter calls the Gemini API through the genai SDK.
type geminiCompleter struct {
	client *genai.Client
}

func newGeminiCompleter(ctx context.Context, cfg RemoteConfig) (*geminiCompleter, error) {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Options.Timeout}
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return &geminiCompleter{client: client}, nil
}

func (c *geminiCompleter) complete(ctx context.Context, req completion) (*completionResult, error) {
	temp := float32(req.Temperature)
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(req.MaxTokens),
	}

	res, err := c.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), cfg)
	if err != nil {
		if isModelUnavailable(err) {
			return nil, &ModelUnavailableError{Model: req.Model, Err: err}
		}
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	out := &completionResult{
		Text:  res.Text(),
		Model: res.ModelVersion,
	}
	if res.UsageMetadata != nil {
		out.PromptTokens = int(res.UsageMetadata.PromptTokenCount)
		out.CompletionTokens = int(res.UsageMetadata.CandidatesTokenCount)
	}
	return out, nil
}

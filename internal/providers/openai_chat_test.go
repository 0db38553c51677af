package providers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

func chatCompletionJSON(model, content string) string {
	return `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"created": 1700000000,
		"model": "` + model + `",
		"choices": [{
			"index": 0,
			"message": {"role": "assistant", "content": "` + content + `"},
			"finish_reason": "stop"
		}],
		"usage": {"prompt_tokens": 42, "completion_tokens": 7, "total_tokens": 49}
	}`
}

func TestOpenAICompleter_FallbackOnMissingModel(t *testing.T) {
	var (
		mu     sync.Mutex
		models []string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %q", got)
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		var payload struct {
			Model       string  `json:"model"`
			Temperature float64 `json:"temperature"`
			MaxTokens   int     `json:"max_tokens"`
			Messages    []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("unmarshal body: %v", err)
		}
		if len(payload.Messages) != 1 || payload.Messages[0].Role != "user" || payload.Messages[0].Content != "the prompt" {
			t.Errorf("unexpected messages: %+v", payload.Messages)
		}
		if payload.Temperature != 0.7 {
			t.Errorf("expected temperature 0.7, got %v", payload.Temperature)
		}
		if payload.MaxTokens != 1000 {
			t.Errorf("expected max_tokens 1000, got %d", payload.MaxTokens)
		}

		mu.Lock()
		models = append(models, payload.Model)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if payload.Model == "retired-model" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"message":"The model retired-model does not exist","type":"invalid_request_error","code":"model_not_found"}}`))
			return
		}
		_, _ = w.Write([]byte(chatCompletionJSON(payload.Model, "A crisp Chardonnay.")))
	}))
	defer server.Close()

	b, err := NewRemoteBackend(context.Background(), RemoteConfig{
		Provider:      ProviderOpenAI,
		APIKey:        "test-key",
		BaseURL:       server.URL,
		Model:         "llama3",
		FallbackModel: "current-model",
		Models:        map[string]string{"llama3": "retired-model"},
		Options:       DefaultChatOptions(),
	})
	if err != nil {
		t.Fatalf("NewRemoteBackend() error = %v", err)
	}

	reply := b.Chat(context.Background(), "the prompt")
	if reply.Degraded {
		t.Fatalf("expected live reply, got degraded: %v", reply.Cause)
	}
	if reply.Text != "A crisp Chardonnay." {
		t.Errorf("unexpected text: %q", reply.Text)
	}
	if reply.Attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", reply.Attempts)
	}
	if reply.Model != "current-model" {
		t.Errorf("expected fallback model, got %q", reply.Model)
	}
	if reply.PromptTokens != 42 || reply.CompletionTokens != 7 {
		t.Errorf("unexpected usage: %d/%d", reply.PromptTokens, reply.CompletionTokens)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(models) != 2 || models[0] != "retired-model" || models[1] != "current-model" {
		t.Errorf("unexpected model sequence: %v", models)
	}
}

func TestOpenAICompleter_ServerErrorDegrades(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"internal failure","type":"server_error"}}`))
	}))
	defer server.Close()

	b, err := NewRemoteBackend(context.Background(), RemoteConfig{
		Provider:      ProviderOpenAI,
		APIKey:        "test-key",
		BaseURL:       server.URL,
		Model:         "primary",
		FallbackModel: "fallback",
	})
	if err != nil {
		t.Fatalf("NewRemoteBackend() error = %v", err)
	}

	reply := b.Chat(context.Background(), "the prompt")
	if !reply.Degraded {
		t.Fatal("expected degraded reply")
	}
	if reply.Text != OfflineFallback {
		t.Errorf("expected offline fallback text, got %q", reply.Text)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("expected exactly one call, got %d", n)
	}
}

func TestMapChatError_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", "3")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit"}}`))
	}))
	defer server.Close()

	b, err := NewRemoteBackend(context.Background(), RemoteConfig{
		Provider:  ProviderOpenAI,
		APIKey:    "test-key",
		BaseURL:   server.URL,
		Model:     "primary",
		RateLimit: 60,
	})
	if err != nil {
		t.Fatalf("NewRemoteBackend() error = %v", err)
	}

	reply := b.Chat(context.Background(), "the prompt")
	if !reply.Degraded {
		t.Fatal("expected degraded reply")
	}
	if _, ok := reply.Cause.(*RateLimitError); !ok {
		t.Fatalf("expected *RateLimitError, got %T: %v", reply.Cause, reply.Cause)
	}
	if status := b.RateLimitStatus(); status.Last429.IsZero() {
		t.Error("expected limiter to record the 429")
	}
}

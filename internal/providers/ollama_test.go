package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBackend_Chat(t *testing.T) {
	var got ollamaChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:           "llama3.2",
			Message:         ollamaMessage{Role: "assistant", Content: "A Sancerre would sing here."},
			Done:            true,
			PromptEvalCount: 120,
			EvalCount:       30,
		})
	}))
	defer server.Close()

	b := NewLocalBackend(LocalConfig{BaseURL: server.URL, Model: "llama3.2", Options: DefaultChatOptions()})
	reply := b.Chat(context.Background(), "prompt text")

	assert.False(t, reply.Degraded)
	assert.Equal(t, "A Sancerre would sing here.", reply.Text)
	assert.Equal(t, OllamaName, reply.Backend)
	assert.Equal(t, 120, reply.PromptTokens)
	assert.Equal(t, 30, reply.CompletionTokens)

	assert.Equal(t, "llama3.2", got.Model)
	assert.False(t, got.Stream)
	assert.Equal(t, 0.7, got.Options.Temperature)
	assert.Equal(t, 1000, got.Options.NumPredict)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "prompt text", got.Messages[0].Content)
}

func TestLocalBackend_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	b := NewLocalBackend(LocalConfig{BaseURL: url, Options: ChatOptions{Timeout: 2 * time.Second}})
	reply := b.Chat(context.Background(), "prompt")

	assert.True(t, reply.Degraded)
	assert.Equal(t, OfflineFallback, reply.Text)

	var unavailable *BackendUnavailableError
	require.True(t, errors.As(reply.Cause, &unavailable), "cause: %v", reply.Cause)
	assert.Equal(t, OllamaName, unavailable.Backend)
}

func TestLocalBackend_MissingModel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model \"mystery\" not found, try pulling it first"}`))
	}))
	defer server.Close()

	b := NewLocalBackend(LocalConfig{BaseURL: server.URL, Model: "mystery"})
	reply := b.Chat(context.Background(), "prompt")

	assert.True(t, reply.Degraded)
	var mu *ModelUnavailableError
	assert.True(t, errors.As(reply.Cause, &mu))
}

func TestLocalBackend_HealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		_, _ = w.Write([]byte(`{"models":[{"name":"llama3.2:latest","model":"llama3.2:latest"},{"name":"mistral:7b","model":"mistral:7b"}]}`))
	}))
	defer server.Close()

	t.Run("installed", func(t *testing.T) {
		b := NewLocalBackend(LocalConfig{BaseURL: server.URL, Model: "llama3.2"})
		assert.NoError(t, b.HealthCheck(context.Background()))
	})

	t.Run("missing", func(t *testing.T) {
		b := NewLocalBackend(LocalConfig{BaseURL: server.URL, Model: "gemma"})
		err := b.HealthCheck(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ollama pull gemma")
	})

	t.Run("list", func(t *testing.T) {
		b := NewLocalBackend(LocalConfig{BaseURL: server.URL})
		names, err := b.ListModels(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"llama3.2:latest", "mistral:7b"}, names)
	})
}

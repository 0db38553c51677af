package providers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedCompleter returns a canned result or error per model id.
type scriptedCompleter struct {
	mu      sync.Mutex
	calls   []string
	errs    map[string]error
	replies map[string]string
}

func (s *scriptedCompleter) complete(_ context.Context, req completion) (*completionResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req.Model)
	s.mu.Unlock()

	if err, ok := s.errs[req.Model]; ok {
		return nil, err
	}
	return &completionResult{Text: s.replies[req.Model], Model: req.Model}, nil
}

func (s *scriptedCompleter) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func testRemote(c completer) *RemoteBackend {
	return newRemoteBackend(RemoteConfig{
		Provider:      ProviderGroq,
		Model:         "llama3.2",
		FallbackModel: "fallback-id",
		Models: map[string]string{
			"llama3.2": "primary-id",
			"gemma":    "gemma-id",
		},
	}, c)
}

func TestRemoteBackend_PrimarySucceeds(t *testing.T) {
	c := &scriptedCompleter{replies: map[string]string{"primary-id": "Try a Chardonnay."}}
	b := testRemote(c)

	reply := b.Chat(context.Background(), "prompt")

	assert.False(t, reply.Degraded)
	assert.Equal(t, "Try a Chardonnay.", reply.Text)
	assert.Equal(t, "primary-id", reply.Model)
	assert.Equal(t, 1, reply.Attempts)
	assert.Equal(t, []string{"primary-id"}, c.Calls())
}

func TestRemoteBackend_RetriesOnceWithFallback(t *testing.T) {
	c := &scriptedCompleter{
		errs: map[string]error{
			"primary-id": &ModelUnavailableError{Model: "primary-id", Err: errors.New("decommissioned")},
		},
		replies: map[string]string{"fallback-id": "Fallback says Pinot Noir."},
	}
	b := testRemote(c)

	reply := b.Chat(context.Background(), "prompt")

	assert.False(t, reply.Degraded)
	assert.Equal(t, "Fallback says Pinot Noir.", reply.Text)
	assert.Equal(t, "fallback-id", reply.Model)
	assert.Equal(t, 2, reply.Attempts)
	assert.Equal(t, []string{"primary-id", "fallback-id"}, c.Calls())
}

func TestRemoteBackend_BothFail(t *testing.T) {
	c := &scriptedCompleter{
		errs: map[string]error{
			"primary-id":  errors.New("The model `primary-id` has been decommissioned"),
			"fallback-id": errors.New("The model `fallback-id` does not exist"),
		},
	}
	b := testRemote(c)

	reply := b.Chat(context.Background(), "prompt")

	assert.True(t, reply.Degraded)
	assert.Equal(t, OfflineFallback, reply.Text)
	assert.Equal(t, 2, reply.Attempts)
	assert.Equal(t, []string{"primary-id", "fallback-id"}, c.Calls())
	require.Error(t, reply.Cause)
	assert.Contains(t, reply.CauseMessage(), "fallback-id")
}

func TestRemoteBackend_OtherErrorDoesNotRetry(t *testing.T) {
	c := &scriptedCompleter{
		errs: map[string]error{"primary-id": fmt.Errorf("chat completion error (status 500): boom")},
	}
	b := testRemote(c)

	reply := b.Chat(context.Background(), "prompt")

	assert.True(t, reply.Degraded)
	assert.Equal(t, OfflineFallback, reply.Text)
	assert.Equal(t, 1, reply.Attempts)
	assert.Equal(t, []string{"primary-id"}, c.Calls())
}

func TestRemoteBackend_NoRetryWhenPrimaryIsFallback(t *testing.T) {
	c := &scriptedCompleter{
		errs: map[string]error{"fallback-id": &ModelUnavailableError{Model: "fallback-id", Err: errors.New("gone")}},
	}
	b := newRemoteBackend(RemoteConfig{Model: "fallback-id", FallbackModel: "fallback-id"}, c)

	reply := b.Chat(context.Background(), "prompt")

	assert.True(t, reply.Degraded)
	assert.Equal(t, 1, reply.Attempts)
	assert.Equal(t, []string{"fallback-id"}, c.Calls())
}

func TestRemoteBackend_EmptyTextIsDegraded(t *testing.T) {
	c := &scriptedCompleter{replies: map[string]string{"primary-id": "   "}}
	b := testRemote(c)

	reply := b.Chat(context.Background(), "prompt")

	assert.True(t, reply.Degraded)
	assert.NotEmpty(t, reply.Text)
	assert.Equal(t, 1, reply.Attempts)
}

func TestRemoteBackend_ResolveModel(t *testing.T) {
	b := testRemote(&scriptedCompleter{})

	assert.Equal(t, "primary-id", b.ResolveModel("llama3.2"))
	assert.Equal(t, "gemma-id", b.ResolveModel("gemma"))
	assert.Equal(t, "some-provider-id", b.ResolveModel("some-provider-id"))
	assert.Equal(t, []string{"primary-id", "fallback-id"}, b.Models())
}

func TestNewRemoteBackend_Validation(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		_, err := NewRemoteBackend(context.Background(), RemoteConfig{Model: "x"})
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewRemoteBackend(context.Background(), RemoteConfig{APIKey: "k", Provider: "carrier-pigeon"})
		assert.Error(t, err)
	})

	t.Run("temperature out of range", func(t *testing.T) {
		_, err := NewRemoteBackend(context.Background(), RemoteConfig{
			APIKey:  "k",
			Options: ChatOptions{Temperature: 1.5},
		})
		assert.Error(t, err)
	})
}

func TestIsModelUnavailable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{&ModelUnavailableError{Model: "x", Err: errors.New("gone")}, true},
		{fmt.Errorf("wrapped: %w", &ModelUnavailableError{Model: "x", Err: errors.New("gone")}), true},
		{errors.New("The model `llama3-8b-8192` has been decommissioned"), true},
		{errors.New("model_not_found"), true},
		{errors.New("Error 404, Message: models/gemini-x is not found, Status: NOT_FOUND"), true},
		{errors.New("rate limit exceeded"), false},
		{errors.New("service not found"), false},
		{&BackendUnavailableError{Backend: "groq", Err: errors.New("connection refused")}, false},
	}

	for _, tt := range tests {
		name := "nil"
		if tt.err != nil {
			name = tt.err.Error()
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, isModelUnavailable(tt.err))
		})
	}
}

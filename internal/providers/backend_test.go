package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("local", func(t *testing.T) {
		b, err := NewBackend(ctx, BackendConfig{Type: BackendLocal, Local: LocalConfig{Model: "llama3.2"}}, nil)
		require.NoError(t, err)
		assert.Equal(t, OllamaName, b.Name())
	})

	t.Run("remote", func(t *testing.T) {
		b, err := NewBackend(ctx, BackendConfig{
			Type:   BackendRemote,
			Remote: RemoteConfig{APIKey: "k", Model: "llama3.2", Models: map[string]string{"llama3.2": "llama-3.1-8b-instant"}},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, ProviderGroq, b.Name())
	})

	t.Run("remote without key", func(t *testing.T) {
		_, err := NewBackend(ctx, BackendConfig{Type: BackendRemote}, nil)
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	})

	t.Run("mock", func(t *testing.T) {
		b, err := NewBackend(ctx, BackendConfig{Type: BackendMock}, nil)
		require.NoError(t, err)
		assert.Equal(t, MockName, b.Name())
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := NewBackend(ctx, BackendConfig{Type: "telepathy"}, nil)
		assert.Error(t, err)
	})

	t.Run("local rejects bad temperature", func(t *testing.T) {
		_, err := NewBackend(ctx, BackendConfig{Type: BackendLocal, Local: LocalConfig{Options: ChatOptions{Temperature: -0.1}}}, nil)
		assert.Error(t, err)
	})
}

func TestChatOptions(t *testing.T) {
	d := DefaultChatOptions()
	assert.Equal(t, 1000, d.MaxTokens)
	assert.Equal(t, 0.7, d.Temperature)
	assert.NoError(t, d.Validate())

	assert.Error(t, ChatOptions{Temperature: 1.01}.Validate())
	assert.NoError(t, ChatOptions{Temperature: 0}.Validate())
	assert.NoError(t, ChatOptions{Temperature: 1}.Validate())

	filled := ChatOptions{Temperature: 0.2}.withDefaults()
	assert.Equal(t, 1000, filled.MaxTokens)
	assert.Equal(t, 0.2, filled.Temperature)
}

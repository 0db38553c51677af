package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackzampolin/sommelier/internal/personas"
	"github.com/jackzampolin/sommelier/internal/providers"
	"github.com/jackzampolin/sommelier/internal/sommelier"
)

func mockFactory(t *testing.T) Factory {
	t.Helper()
	backend := providers.NewMockBackend()
	backend.Latency = 0
	return func(sessionID string) (*sommelier.Sommelier, error) {
		return sommelier.New(sommelier.Config{
			Personas:  personas.Default(),
			Backend:   backend,
			SessionID: sessionID,
		})
	}
}

func TestManager_CreateGetDelete(t *testing.T) {
	m := NewManager(Config{MaxSessions: 10}, mockFactory(t))
	ctx := context.Background()

	s, err := m.Create(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 1, m.Count())

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, m.Delete(s.ID))
	assert.Equal(t, 0, m.Count())

	_, err = m.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.Delete(s.ID), ErrNotFound)
}

func TestManager_IndependentLogs(t *testing.T) {
	m := NewManager(Config{}, mockFactory(t))
	ctx := context.Background()

	a, err := m.Create(ctx)
	require.NoError(t, err)
	b, err := m.Create(ctx)
	require.NoError(t, err)

	a.Sommelier.Recommend(ctx, sommelier.DefaultRequest("Ann", "steak", "professional"))
	a.Sommelier.Recommend(ctx, sommelier.DefaultRequest("Ann", "fish", "professional"))

	assert.Equal(t, 2, a.History().Len())
	assert.Equal(t, 0, b.History().Len())
	assert.Equal(t, 2, a.Info().Interactions)
}

func TestManager_MaxSessions(t *testing.T) {
	m := NewManager(Config{MaxSessions: 2}, mockFactory(t))
	ctx := context.Background()

	_, err := m.Create(ctx)
	require.NoError(t, err)
	_, err = m.Create(ctx)
	require.NoError(t, err)

	_, err = m.Create(ctx)
	assert.ErrorIs(t, err, ErrMaxSessions)
	assert.Equal(t, 2, m.Count())
}

func TestManager_FactoryError(t *testing.T) {
	m := NewManager(Config{}, func(string) (*sommelier.Sommelier, error) {
		return nil, errors.New("no backend")
	})
	_, err := m.Create(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, m.Count())
}

func TestManager_CleanupInactive(t *testing.T) {
	m := NewManager(Config{SessionTimeout: time.Minute}, mockFactory(t))
	ctx := context.Background()

	stale, err := m.Create(ctx)
	require.NoError(t, err)
	fresh, err := m.Create(ctx)
	require.NoError(t, err)

	stale.mu.Lock()
	stale.lastActivity = time.Now().Add(-2 * time.Minute)
	stale.mu.Unlock()

	removed := m.CleanupInactive(time.Now())
	assert.Equal(t, 1, removed)

	_, err = m.Get(stale.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestManager_CleanupDisabled(t *testing.T) {
	m := NewManager(Config{}, mockFactory(t))
	_, err := m.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, m.CleanupInactive(time.Now().Add(24*time.Hour)))
}

func TestManager_StartCleanupRoutine(t *testing.T) {
	m := NewManager(Config{SessionTimeout: time.Millisecond}, mockFactory(t))
	_, err := m.Create(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.StartCleanupRoutine(ctx, 10*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return m.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	<-done
}

func TestManager_ListAndShutdown(t *testing.T) {
	m := NewManager(Config{}, mockFactory(t))
	ctx := context.Background()

	first, err := m.Create(ctx)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = m.Create(ctx)
	require.NoError(t, err)

	list := m.List()
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)

	m.Shutdown()
	assert.Equal(t, 0, m.Count())
}

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jackzampolin/sommelier/internal/sommelier"
)

var (
	// ErrMaxSessions is returned by Create when the session limit is reached.
	ErrMaxSessions = errors.New("maximum sessions reached")

	// ErrNotFound is returned for an unknown session ID.
	ErrNotFound = errors.New("session not found")
)

// Factory builds the sommelier for a new session.
type Factory func(sessionID string) (*sommelier.Sommelier, error)

// Config configures a Manager.
type Config struct {
	MaxSessions    int           // 0 means unlimited
	SessionTimeout time.Duration // 0 disables idle cleanup
	Logger         *slog.Logger
}

// Manager manages all client sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	factory  Factory
	config   Config
	logger   *slog.Logger
}

// NewManager creates a session manager.
func NewManager(cfg Config, factory Factory) *Manager {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		factory:  factory,
		config:   cfg,
		logger:   cfg.Logger,
	}
}

// Create starts a new session.
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config.MaxSessions > 0 && len(m.sessions) >= m.config.MaxSessions {
		return nil, ErrMaxSessions
	}

	id := uuid.New().String()
	somm, err := m.factory(id)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	now := time.Now()
	s := &Session{
		ID:           id,
		CreatedAt:    now,
		Sommelier:    somm,
		lastActivity: now,
	}
	m.sessions[id] = s

	m.logger.Debug("session created", "session_id", id, "active", len(m.sessions))
	return s, nil
}

// Get returns a session and marks it active.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	s.Touch()
	return s, nil
}

// Delete removes a session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	m.logger.Debug("session deleted", "session_id", id)
	return nil
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// List returns all sessions, oldest first.
func (m *Manager) List() []Info {
	m.mu.RLock()
	out := make([]Info, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s.Info())
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// CleanupInactive removes sessions idle longer than the session timeout
// and returns how many were removed.
func (m *Manager) CleanupInactive(now time.Time) int {
	if m.config.SessionTimeout <= 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if now.Sub(s.LastActivity()) > m.config.SessionTimeout {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("removed inactive sessions", "removed", removed, "active", len(m.sessions))
	}
	return removed
}

// StartCleanupRoutine periodically removes inactive sessions until ctx is done.
func (m *Manager) StartCleanupRoutine(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.CleanupInactive(now)
		}
	}
}

// Shutdown drops all sessions.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id := range m.sessions {
		delete(m.sessions, id)
	}
}

// Package session keeps one sommelier per client so each client owns an
// independent interaction log.
package session

import (
	"sync"
	"time"

	"github.com/jackzampolin/sommelier/internal/interactions"
	"github.com/jackzampolin/sommelier/internal/sommelier"
)

// Session is one client's sommelier and history.
type Session struct {
	ID        string
	CreatedAt time.Time
	Sommelier *sommelier.Sommelier

	mu           sync.Mutex
	lastActivity time.Time
}

// Info is the listing form of a session.
type Info struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	Interactions int       `json:"interactions"`
}

// Touch marks the session active now.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// LastActivity returns when the session was last used.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// History returns the session's interaction log.
func (s *Session) History() *interactions.Log {
	return s.Sommelier.History()
}

// Info summarizes the session.
func (s *Session) Info() Info {
	return Info{
		ID:           s.ID,
		CreatedAt:    s.CreatedAt,
		LastActivity: s.LastActivity(),
		Interactions: s.History().Len(),
	}
}

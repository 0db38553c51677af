package bottles

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// DefaultMaxPrice is the price ceiling used when a search does not give one.
const DefaultMaxPrice = 100

// Config configures a Searcher.
type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	MaxPrice   int
	HTTPClient *http.Client // Optional (tests)
	Logger     *slog.Logger
}

// Searcher finds bottle suggestions for a varietal. Lookups never fail:
// remote errors fall back to the curated table, and unknown varietals get a
// single placeholder suggestion.
type Searcher struct {
	mu       sync.RWMutex
	remote   *SpoonacularClient
	maxPrice int
	logger   *slog.Logger
}

// NewSearcher creates a searcher from cfg.
func NewSearcher(cfg Config) *Searcher {
	s := &Searcher{}
	s.Reload(cfg)
	return s
}

// Reload swaps in new settings. Safe to call while searches are running.
func (s *Searcher) Reload(cfg Config) {
	if cfg.MaxPrice <= 0 {
		cfg.MaxPrice = DefaultMaxPrice
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	remote := NewSpoonacularClient(SpoonacularConfig{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		HTTPClient: cfg.HTTPClient,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.remote = remote
	s.maxPrice = cfg.MaxPrice
	s.logger = cfg.Logger
}

// RemoteEnabled reports whether a Spoonacular key is configured.
func (s *Searcher) RemoteEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.remote.Enabled()
}

// Search returns suggestions for varietal. maxPrice <= 0 uses the configured ceiling.
// The result is never empty.
func (s *Searcher) Search(ctx context.Context, varietal, dish string, maxPrice int) []Suggestion {
	s.mu.RLock()
	remote, logger := s.remote, s.logger
	if maxPrice <= 0 {
		maxPrice = s.maxPrice
	}
	s.mu.RUnlock()

	found, err := remote.Recommend(ctx, varietal, maxPrice)
	if err != nil {
		logger.Debug("bottle provider failed, using catalog",
			"varietal", varietal,
			"dish", dish,
			"error", err)
	}
	if len(found) > 0 {
		return found
	}

	if curated, ok := lookupCatalog(varietal); ok {
		return curated
	}
	return []Suggestion{Placeholder(varietal)}
}

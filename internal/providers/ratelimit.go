package providers

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter is a token bucket measured in requests per minute.
// Remote providers on free tiers throttle hard, so the remote backend waits
// for a token before each call instead of burning attempts on 429s.
type RateLimiter struct {
	mu sync.Mutex

	perMinute  int
	tokens     float64
	lastUpdate time.Time
	pausedTill time.Time

	consumed int64
	waited   time.Duration
	last429  time.Time
}

// RateLimiterStatus reports current limiter state.
type RateLimiterStatus struct {
	PerMinute       int           `json:"per_minute"`
	TokensAvailable int           `json:"tokens_available"`
	TotalConsumed   int64         `json:"total_consumed"`
	TotalWaited     time.Duration `json:"total_waited"`
	Last429         time.Time     `json:"last_429,omitempty"`
}

// NewRateLimiter returns a limiter allowing perMinute requests per minute,
// starting with a full bucket. Returns nil when perMinute <= 0 (no limit).
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		return nil
	}
	return &RateLimiter{
		perMinute:  perMinute,
		tokens:     float64(perMinute),
		lastUpdate: time.Now(),
	}
}

// Wait blocks until a token is available or ctx is done. A nil limiter never blocks.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil {
		return nil
	}
	for {
		wait := r.take()
		if wait == 0 {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		r.mu.Lock()
		r.waited += wait
		r.mu.Unlock()
	}
}

// take consumes a token and returns 0, or returns how long to wait.
func (r *RateLimiter) take() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if now.Before(r.pausedTill) {
		return r.pausedTill.Sub(now)
	}

	r.refill(now)
	if r.tokens >= 1 {
		r.tokens--
		r.consumed++
		return 0
	}
	perToken := time.Minute / time.Duration(r.perMinute)
	wait := time.Duration((1 - r.tokens) * float64(perToken))
	if wait <= 0 {
		wait = time.Millisecond
	}
	return wait
}

// Record429 drains the bucket and pauses for retryAfter when the provider pushes back.
func (r *RateLimiter) Record429(retryAfter time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.last429 = time.Now()
	r.tokens = 0
	if retryAfter > 0 {
		r.pausedTill = r.last429.Add(retryAfter)
	}
}

// Status returns a snapshot of the limiter.
func (r *RateLimiter) Status() RateLimiterStatus {
	if r == nil {
		return RateLimiterStatus{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refill(time.Now())
	return RateLimiterStatus{
		PerMinute:       r.perMinute,
		TokensAvailable: int(r.tokens),
		TotalConsumed:   r.consumed,
		TotalWaited:     r.waited,
		Last429:         r.last429,
	}
}

// refill must be called with the lock held.
func (r *RateLimiter) refill(now time.Time) {
	elapsed := now.Sub(r.lastUpdate).Minutes()
	r.lastUpdate = now
	r.tokens += elapsed * float64(r.perMinute)
	if r.tokens > float64(r.perMinute) {
		r.tokens = float64(r.perMinute)
	}
}

// parseRetryAfter reads a Retry-After header given in seconds.
func parseRetryAfter(value string) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	secs, err := strconv.Atoi(value)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

package providers

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiter(t *testing.T) {
	t.Run("nil limiter never blocks", func(t *testing.T) {
		var r *RateLimiter
		if err := r.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
		if NewRateLimiter(0) != nil {
			t.Error("expected nil limiter for zero rate")
		}
	})

	t.Run("consumes from full bucket", func(t *testing.T) {
		r := NewRateLimiter(3)
		for i := 0; i < 3; i++ {
			if err := r.Wait(context.Background()); err != nil {
				t.Fatalf("Wait() error = %v", err)
			}
		}
		status := r.Status()
		if status.TotalConsumed != 3 {
			t.Errorf("expected 3 consumed, got %d", status.TotalConsumed)
		}
		if status.TokensAvailable != 0 {
			t.Errorf("expected empty bucket, got %d", status.TokensAvailable)
		}
	})

	t.Run("empty bucket respects context", func(t *testing.T) {
		r := NewRateLimiter(1)
		if err := r.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		if err := r.Wait(ctx); err == nil {
			t.Error("expected context error from drained bucket")
		}
	})

	t.Run("429 drains bucket", func(t *testing.T) {
		r := NewRateLimiter(100)
		r.Record429(time.Minute)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		if err := r.Wait(ctx); err == nil {
			t.Error("expected wait to block after 429")
		}
		if r.Status().Last429.IsZero() {
			t.Error("expected Last429 to be recorded")
		}
	})
}

func TestParseRetryAfter(t *testing.T) {
	tests := map[string]time.Duration{
		"":     0,
		"3":    3 * time.Second,
		" 10 ": 10 * time.Second,
		"-1":   0,
		"soon": 0,
	}
	for in, want := range tests {
		if got := parseRetryAfter(in); got != want {
			t.Errorf("parseRetryAfter(%q) = %v, want %v", in, got, want)
		}
	}
}

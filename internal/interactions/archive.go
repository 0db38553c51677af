package interactions

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Archiver copies records somewhere that outlives the process.
type Archiver interface {
	Archive(ctx context.Context, sessionID string, rec *Record) error
	// History returns the archived records for a session in append order.
	History(ctx context.Context, sessionID string) ([]Record, error)
	Close() error
}

// ArchiveConfig configures the Redis archive.
type ArchiveConfig struct {
	Addr     string
	Password string
	DB       int
	// TTL is how long a session's history list is kept after its last write.
	TTL time.Duration
}

// RedisArchiver stores each session's history as a Redis list.
type RedisArchiver struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

var _ Archiver = (*RedisArchiver)(nil)

// NewRedisArchiver connects to Redis. It returns nil when addr is empty or the
// server does not answer a ping; history then stays in memory only.
func NewRedisArchiver(ctx context.Context, cfg ArchiveConfig, logger *slog.Logger) *RedisArchiver {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Addr == "" {
		return nil
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, history will not be archived",
			"addr", cfg.Addr,
			"error", err)
		_ = client.Close()
		return nil
	}

	logger.Info("history archive connected", "addr", cfg.Addr, "ttl", cfg.TTL)
	return &RedisArchiver{client: client, ttl: cfg.TTL, logger: logger}
}

func historyKey(sessionID string) string {
	return "sommelier:history:" + sessionID
}

// Archive appends rec to the session's list and refreshes its expiry.
func (a *RedisArchiver) Archive(ctx context.Context, sessionID string, rec *Record) error {
	if a == nil || rec == nil {
		return nil
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	key := historyKey(sessionID)
	pipe := a.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, a.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to archive record: %w", err)
	}
	return nil
}

// History returns the archived records for a session in append order.
func (a *RedisArchiver) History(ctx context.Context, sessionID string) ([]Record, error) {
	if a == nil {
		return nil, nil
	}
	items, err := a.client.LRange(ctx, historyKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	out := make([]Record, 0, len(items))
	for _, item := range items {
		var r Record
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			a.logger.Warn("skipping malformed archived record",
				"session_id", sessionID,
				"error", err)
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Close releases the Redis connection.
func (a *RedisArchiver) Close() error {
	if a == nil {
		return nil
	}
	return a.client.Close()
}

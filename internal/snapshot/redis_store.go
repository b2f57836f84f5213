// Package snapshot keeps the last successfully fetched payload per resource
// in Redis, so a backend outage degrades to recent real data before falling
// back to synthetic fixtures.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RedisConfig configures Redis access for snapshot persistence.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	Retention time.Duration
}

// Store persists last-known-good resource payloads. A nil *Store is a no-op,
// which is how the daemon runs when Redis is not configured.
type Store struct {
	client    *redis.Client
	prefix    string
	retention time.Duration
}

// NewStore constructs a Redis-backed snapshot store and verifies connectivity.
func NewStore(cfg RedisConfig) (*Store, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = "127.0.0.1:6379"
	}
	if strings.TrimSpace(cfg.KeyPrefix) == "" {
		cfg.KeyPrefix = "hunter:snapshot"
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 24 * time.Hour
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis snapshot store: %w", err)
	}

	return &Store{
		client:    client,
		prefix:    strings.TrimSpace(cfg.KeyPrefix),
		retention: cfg.Retention,
	}, nil
}

// Save stores the JSON encoding of value under the resource key.
func (s *Store) Save(ctx context.Context, key string, value any) error {
	if s == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", key, err)
	}
	if err := s.client.Set(ctx, s.key(key), data, s.retention).Err(); err != nil {
		return fmt.Errorf("write snapshot %s: %w", key, err)
	}
	return nil
}

// Load reads a stored payload into dest. The second return is false when no
// snapshot exists for the key.
func (s *Store) Load(ctx context.Context, key string, dest any) (bool, error) {
	if s == nil {
		return false, nil
	}
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read snapshot %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	return true, nil
}

// Close releases the Redis connection.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.client.Close()
}

func (s *Store) key(resource string) string {
	return s.prefix + ":" + resource
}

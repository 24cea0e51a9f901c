package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/tutor-dash-api/pkg/errors"
)

// redisEnvelope wraps the cached payload with its load time; the Redis
// key-level expiry only enforces the retention horizon, freshness is
// judged per read.
type redisEnvelope struct {
	Payload  json.RawMessage `json:"payload"`
	LoadedAt time.Time       `json:"loaded_at"`
}

// RedisCacheStore is the shared cache backend for multi-instance
// deployments.
type RedisCacheStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisCacheStore constructs a store over an established client.
func NewRedisCacheStore(client *redis.Client, logger *zap.Logger) *RedisCacheStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCacheStore{client: client, logger: logger}
}

// Get unmarshals the entry into dest when it is younger than ttl, and
// returns ErrCacheMiss otherwise.
func (s *RedisCacheStore) Get(ctx context.Context, key string, ttl time.Duration, dest interface{}) error {
	env, err := s.fetch(ctx, key)
	if err != nil {
		return err
	}
	if time.Since(env.LoadedAt) >= ttl {
		return appErrors.ErrCacheMiss
	}
	return unmarshalPayload(env.Payload, key, dest)
}

// GetStale unmarshals the entry regardless of its age; Redis key expiry
// bounds how old it can get.
func (s *RedisCacheStore) GetStale(ctx context.Context, key string, dest interface{}) error {
	env, err := s.fetch(ctx, key)
	if err != nil {
		return err
	}
	return unmarshalPayload(env.Payload, key, dest)
}

// Set stores the marshaled value with the retention horizon as key expiry.
func (s *RedisCacheStore) Set(ctx context.Context, key string, value interface{}, retention time.Duration) error {
	if s.client == nil {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}
	raw, err := json.Marshal(redisEnvelope{Payload: payload, LoadedAt: time.Now()})
	if err != nil {
		return fmt.Errorf("marshal cache envelope for %s: %w", key, err)
	}

	if err := s.client.Set(ctx, key, raw, retention).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// DeleteByPrefix removes every key starting with prefix.
func (s *RedisCacheStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	if s.client == nil {
		return nil
	}

	iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("redis delete %s: %w", key, err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan prefix %s: %w", prefix, err)
	}
	return nil
}

// Close releases the underlying Redis connection if present.
func (s *RedisCacheStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *RedisCacheStore) fetch(ctx context.Context, key string) (*redisEnvelope, error) {
	if s.client == nil {
		return nil, appErrors.ErrCacheMiss
	}

	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	var env redisEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("unmarshal cache envelope for %s: %w", key, err)
	}
	return &env, nil
}

func unmarshalPayload(payload json.RawMessage, key string, dest interface{}) error {
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("unmarshal cache value for %s: %w", key, err)
	}
	return nil
}

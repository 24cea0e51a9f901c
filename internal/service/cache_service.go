package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/tutor-dash-api/pkg/errors"
)

// CacheStore is the backend contract shared by the in-memory and Redis
// stores. Get must honor the per-read ttl; Set receives the retention
// horizon, which is longer than any ttl so stale reads stay possible.
type CacheStore interface {
	Get(ctx context.Context, key string, ttl time.Duration, dest interface{}) error
	GetStale(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, retention time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// CacheOutcome tells the caller how a read-through lookup was satisfied.
type CacheOutcome struct {
	Hit   bool
	Stale bool
}

// CacheService is a read-through cache over a CacheStore. Each instance
// covers one data family and carries its own serve-stale policy: booking
// and roster caches degrade to stale data when the upstream is down,
// the availability cache never does.
type CacheService struct {
	name        string
	store       CacheStore
	metrics     *MetricsService
	logger      *zap.Logger
	staleFactor int
	serveStale  bool
}

// NewCacheService constructs a cache over the given store. staleFactor
// stretches each entry's retention beyond its ttl; values below 1 are
// clamped to 1 (no stale window).
func NewCacheService(name string, store CacheStore, metrics *MetricsService, staleFactor int, serveStale bool, logger *zap.Logger) *CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if staleFactor < 1 {
		staleFactor = 1
	}
	return &CacheService{
		name:        name,
		store:       store,
		metrics:     metrics,
		logger:      logger,
		staleFactor: staleFactor,
		serveStale:  serveStale,
	}
}

// GetOrFetch returns a fresh cached value when one exists, otherwise runs
// fetch and stores its result. A value older than ttl is never served
// without a fetch attempt; when the fetch fails and serve-stale is enabled,
// a stale-but-retained entry is returned with Stale set instead of the
// error.
func (s *CacheService) GetOrFetch(ctx context.Context, key string, ttl time.Duration, dest interface{}, fetch func(ctx context.Context) (interface{}, error)) (CacheOutcome, error) {
	lookupStart := time.Now()
	err := s.store.Get(ctx, key, ttl, dest)
	if err == nil {
		s.metrics.RecordCacheOperation(true, time.Since(lookupStart))
		return CacheOutcome{Hit: true}, nil
	}
	if !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("cache lookup failed, treating as miss",
			zap.String("cache", s.name), zap.String("key", key), zap.Error(err))
	}
	s.metrics.RecordCacheOperation(false, time.Since(lookupStart))

	value, fetchErr := fetch(ctx)
	if fetchErr != nil {
		if s.serveStale {
			if staleErr := s.store.GetStale(ctx, key, dest); staleErr == nil {
				s.metrics.RecordStaleServe()
				s.logger.Warn("serving stale cache entry after fetch failure",
					zap.String("cache", s.name), zap.String("key", key), zap.Error(fetchErr))
				return CacheOutcome{Hit: true, Stale: true}, nil
			}
		}
		return CacheOutcome{}, fetchErr
	}

	writeStart := time.Now()
	if err := s.store.Set(ctx, key, value, ttl*time.Duration(s.staleFactor)); err != nil {
		s.logger.Warn("cache write failed",
			zap.String("cache", s.name), zap.String("key", key), zap.Error(err))
	}
	s.metrics.ObserveCacheWrite(time.Since(writeStart))

	return CacheOutcome{}, assign(value, dest)
}

// Invalidate drops every entry under the prefix.
func (s *CacheService) Invalidate(ctx context.Context, prefix string) error {
	if err := s.store.DeleteByPrefix(ctx, prefix); err != nil {
		return fmt.Errorf("invalidate %s cache prefix %s: %w", s.name, prefix, err)
	}
	return nil
}

// assign routes a freshly fetched value into the caller's destination the
// same way a cache read would, so both paths yield identical shapes.
func assign(value, dest interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal fetched value: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal fetched value: %w", err)
	}
	return nil
}

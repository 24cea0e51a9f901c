package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	appErrors "github.com/noah-isme/tutor-dash-api/pkg/errors"
)

// cacheEntry pairs a payload with its load time so freshness is judged per
// read against the caller's TTL. expiresAt is the retention horizon after
// which the entry is gone even for stale reads.
type cacheEntry struct {
	payload   json.RawMessage
	loadedAt  time.Time
	expiresAt time.Time
}

// MemoryCacheStore is the default in-process cache backend for single
// instance deployments.
type MemoryCacheStore struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewMemoryCacheStore constructs an empty store.
func NewMemoryCacheStore() *MemoryCacheStore {
	return &MemoryCacheStore{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get unmarshals the entry into dest when it is younger than ttl, and
// returns ErrCacheMiss otherwise.
func (s *MemoryCacheStore) Get(_ context.Context, key string, ttl time.Duration, dest interface{}) error {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	now := s.now()
	if !ok || now.After(entry.expiresAt) || now.Sub(entry.loadedAt) >= ttl {
		return appErrors.ErrCacheMiss
	}
	return unmarshalEntry(entry, key, dest)
}

// GetStale unmarshals the entry regardless of its age, as long as it is
// still within the retention horizon.
func (s *MemoryCacheStore) GetStale(_ context.Context, key string, dest interface{}) error {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || s.now().After(entry.expiresAt) {
		return appErrors.ErrCacheMiss
	}
	return unmarshalEntry(entry, key, dest)
}

// Set stores the marshaled value and prunes entries past retention.
func (s *MemoryCacheStore) Set(_ context.Context, key string, value interface{}, retention time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}

	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, k)
		}
	}
	s.entries[key] = cacheEntry{
		payload:   payload,
		loadedAt:  now,
		expiresAt: now.Add(retention),
	}
	return nil
}

// DeleteByPrefix drops every entry whose key starts with prefix.
func (s *MemoryCacheStore) DeleteByPrefix(_ context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.entries {
		if strings.HasPrefix(k, prefix) {
			delete(s.entries, k)
		}
	}
	return nil
}

func unmarshalEntry(entry cacheEntry, key string, dest interface{}) error {
	if err := json.Unmarshal(entry.payload, dest); err != nil {
		return fmt.Errorf("unmarshal cache value for %s: %w", key, err)
	}
	return nil
}

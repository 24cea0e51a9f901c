package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/tutor-dash-api/pkg/errors"
)

// fakeStore is a hand-rolled CacheStore with separately controllable fresh
// and stale views. With freshOnSet disabled every write lands only in the
// stale view, which simulates entries that have aged past their ttl but
// remain retained.
type fakeStore struct {
	fresh      map[string][]byte
	stale      map[string][]byte
	retentions map[string]time.Duration
	deleted    []string
	freshOnSet bool
}

func newFakeStore(freshOnSet bool) *fakeStore {
	return &fakeStore{
		fresh:      map[string][]byte{},
		stale:      map[string][]byte{},
		retentions: map[string]time.Duration{},
		freshOnSet: freshOnSet,
	}
}

func (f *fakeStore) put(view map[string][]byte, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		panic(err)
	}
	view[key] = raw
}

func (f *fakeStore) Get(_ context.Context, key string, _ time.Duration, dest interface{}) error {
	raw, ok := f.fresh[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeStore) GetStale(_ context.Context, key string, dest interface{}) error {
	raw, ok := f.stale[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeStore) Set(_ context.Context, key string, value interface{}, retention time.Duration) error {
	f.put(f.stale, key, value)
	if f.freshOnSet {
		f.put(f.fresh, key, value)
	}
	f.retentions[key] = retention
	return nil
}

func (f *fakeStore) DeleteByPrefix(_ context.Context, prefix string) error {
	f.deleted = append(f.deleted, prefix)
	return nil
}

func TestGetOrFetchHit(t *testing.T) {
	store := newFakeStore(true)
	store.put(store.fresh, "k", "cached")
	svc := NewCacheService("test", store, nil, 3, true, nil)

	var got string
	outcome, err := svc.GetOrFetch(context.Background(), "k", time.Minute, &got, func(context.Context) (interface{}, error) {
		t.Fatal("fetch must not run on a fresh hit")
		return nil, nil
	})
	require.NoError(t, err)
	assert.True(t, outcome.Hit)
	assert.False(t, outcome.Stale)
	assert.Equal(t, "cached", got)
}

func TestGetOrFetchMissFetchesAndStores(t *testing.T) {
	store := newFakeStore(true)
	svc := NewCacheService("test", store, nil, 3, true, nil)

	var got string
	outcome, err := svc.GetOrFetch(context.Background(), "k", time.Minute, &got, func(context.Context) (interface{}, error) {
		return "fetched", nil
	})
	require.NoError(t, err)
	assert.False(t, outcome.Hit)
	assert.Equal(t, "fetched", got)
	assert.Equal(t, 3*time.Minute, store.retentions["k"], "retention is ttl stretched by the stale factor")
}

func TestGetOrFetchServesStaleOnFetchFailure(t *testing.T) {
	store := newFakeStore(true)
	store.put(store.stale, "k", "old")
	svc := NewCacheService("test", store, nil, 3, true, nil)

	var got string
	outcome, err := svc.GetOrFetch(context.Background(), "k", time.Minute, &got, func(context.Context) (interface{}, error) {
		return nil, errors.New("upstream down")
	})
	require.NoError(t, err)
	assert.True(t, outcome.Stale)
	assert.Equal(t, "old", got)
}

func TestGetOrFetchNoStalePolicySurfacesError(t *testing.T) {
	store := newFakeStore(true)
	store.put(store.stale, "k", "old")
	svc := NewCacheService("availability", store, nil, 3, false, nil)

	var got string
	fetchErr := errors.New("upstream down")
	_, err := svc.GetOrFetch(context.Background(), "k", time.Minute, &got, func(context.Context) (interface{}, error) {
		return nil, fetchErr
	})
	assert.ErrorIs(t, err, fetchErr)
}

func TestGetOrFetchFailureWithoutStaleEntry(t *testing.T) {
	store := newFakeStore(true)
	svc := NewCacheService("test", store, nil, 3, true, nil)

	var got string
	_, err := svc.GetOrFetch(context.Background(), "k", time.Minute, &got, func(context.Context) (interface{}, error) {
		return nil, errors.New("upstream down")
	})
	assert.Error(t, err)
}

func TestInvalidate(t *testing.T) {
	store := newFakeStore(true)
	svc := NewCacheService("test", store, nil, 3, true, nil)

	require.NoError(t, svc.Invalidate(context.Background(), "bookings:"))
	assert.Equal(t, []string{"bookings:"}, store.deleted)
}

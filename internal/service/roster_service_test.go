package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutor-dash-api/internal/dto"
	"github.com/noah-isme/tutor-dash-api/internal/models"
	"github.com/noah-isme/tutor-dash-api/internal/repository"
)

type fakeTeacherRepo struct {
	teachers []dto.RawTeacher
	err      error
	calls    int
}

func (f *fakeTeacherRepo) List(_ context.Context) ([]dto.RawTeacher, error) {
	f.calls++
	return f.teachers, f.err
}

func intPtr(v int) *int { return &v }

func TestRosterNormalizesTier(t *testing.T) {
	repo := &fakeTeacherRepo{teachers: []dto.RawTeacher{
		{ID: "1", Name: " Alice ", Status: "Active", Restriction: intPtr(0)},
		{ID: "2", Name: "Bob", Status: "active", Restriction: intPtr(1)},
		{ID: "3", Name: "Cara", Status: "paused"},
	}}
	cache := NewCacheService("roster", repository.NewMemoryCacheStore(), nil, 3, true, nil)
	svc := NewRosterService(repo, cache, 5*time.Minute, nil)

	teachers, outcome, err := svc.Teachers(context.Background())
	require.NoError(t, err)
	assert.False(t, outcome.Stale)
	require.Len(t, teachers, 3)

	assert.Equal(t, models.Teacher{ID: "1", Name: "Alice", Status: "active", Tier: models.TierUnrestricted}, teachers[0])
	assert.Equal(t, models.TierAvailabilityChecked, teachers[1].Tier)
	assert.Equal(t, models.TierAvailabilityChecked, teachers[2].Tier, "absent restriction defaults to checked")
}

func TestRosterServedFromCache(t *testing.T) {
	repo := &fakeTeacherRepo{}
	cache := NewCacheService("roster", repository.NewMemoryCacheStore(), nil, 3, true, nil)
	svc := NewRosterService(repo, cache, 5*time.Minute, nil)
	ctx := context.Background()

	_, _, err := svc.Teachers(ctx)
	require.NoError(t, err)
	_, _, err = svc.Teachers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
}

func TestRosterServesStaleOnFailure(t *testing.T) {
	repo := &fakeTeacherRepo{teachers: []dto.RawTeacher{{ID: "1", Name: "Alice", Status: "active"}}}
	cache := NewCacheService("roster", newFakeStore(false), nil, 3, true, nil)
	svc := NewRosterService(repo, cache, 5*time.Minute, nil)
	ctx := context.Background()

	_, _, err := svc.Teachers(ctx)
	require.NoError(t, err)

	repo.err = errors.New("upstream down")
	teachers, outcome, err := svc.Teachers(ctx)
	require.NoError(t, err)
	assert.True(t, outcome.Stale)
	require.Len(t, teachers, 1)
}

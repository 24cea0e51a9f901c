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

func boolPtr(v bool) *bool { return &v }

func checkedTeacher(id string) models.Teacher {
	return models.Teacher{ID: id, Status: models.TeacherStatusActive, Tier: models.TierAvailabilityChecked}
}

func TestEvaluateEligibility(t *testing.T) {
	morning := models.TimeInterval{StartMinute: 540, EndMinute: 600} // 09:00-10:00

	t.Run("unrestricted ignores declarations", func(t *testing.T) {
		teacher := models.Teacher{ID: "t", Tier: models.TierUnrestricted}
		rec := &models.AvailabilityRecord{Morning: boolPtr(false)}
		verdict := EvaluateEligibility(teacher, rec, morning)
		assert.True(t, verdict.Eligible)
		assert.Equal(t, ReasonUnrestricted, verdict.Reason)
	})

	t.Run("closed touched slot blocks", func(t *testing.T) {
		rec := &models.AvailabilityRecord{Morning: boolPtr(false)}
		verdict := EvaluateEligibility(checkedTeacher("t"), rec, morning)
		assert.False(t, verdict.Eligible)
		assert.Equal(t, ReasonSlotClosed, verdict.Reason)
	})

	t.Run("closed untouched slot is irrelevant", func(t *testing.T) {
		rec := &models.AvailabilityRecord{Evening: boolPtr(false)}
		verdict := EvaluateEligibility(checkedTeacher("t"), rec, morning)
		assert.True(t, verdict.Eligible)
	})

	t.Run("absent flag means open", func(t *testing.T) {
		verdict := EvaluateEligibility(checkedTeacher("t"), &models.AvailabilityRecord{}, morning)
		assert.True(t, verdict.Eligible)
	})

	t.Run("absent record means open", func(t *testing.T) {
		verdict := EvaluateEligibility(checkedTeacher("t"), nil, morning)
		assert.True(t, verdict.Eligible)
	})

	t.Run("unknown target fails open", func(t *testing.T) {
		rec := &models.AvailabilityRecord{Morning: boolPtr(false)}
		verdict := EvaluateEligibility(checkedTeacher("t"), rec, models.UnknownInterval())
		assert.True(t, verdict.Eligible)
		assert.Equal(t, ReasonUnknownInterval, verdict.Reason)
	})

	t.Run("interval spanning two slots checks both", func(t *testing.T) {
		// 11:30-12:30 touches morning [360,720) and afternoon [720,1140)
		span := models.TimeInterval{StartMinute: 690, EndMinute: 750}
		rec := &models.AvailabilityRecord{Afternoon: boolPtr(false)}
		verdict := EvaluateEligibility(checkedTeacher("t"), rec, span)
		assert.False(t, verdict.Eligible)
	})

	t.Run("slot boundary is exclusive", func(t *testing.T) {
		// 12:00-13:00 starts exactly at the afternoon boundary; morning
		// [360,720) is not touched
		target := models.TimeInterval{StartMinute: 720, EndMinute: 780}
		rec := &models.AvailabilityRecord{Morning: boolPtr(false)}
		verdict := EvaluateEligibility(checkedTeacher("t"), rec, target)
		assert.True(t, verdict.Eligible)
	})
}

type fakeAvailabilityRepo struct {
	records []dto.RawAvailability
	err     error
	calls   int
}

func (f *fakeAvailabilityRepo) ListRange(_ context.Context, _, _ string) ([]dto.RawAvailability, error) {
	f.calls++
	return f.records, f.err
}

func newTestAvailabilityService(repo *fakeAvailabilityRepo) *AvailabilityService {
	cache := NewCacheService("availability", repository.NewMemoryCacheStore(), nil, 1, false, nil)
	return NewAvailabilityService(repo, cache, 10*time.Minute, nil)
}

func TestAvailabilityWindow(t *testing.T) {
	repo := &fakeAvailabilityRepo{records: []dto.RawAvailability{
		{TeacherID: "1", Date: "2026-09-01", Morning: boolPtr(false)},
		{ResourceID: "2", Date: "2026-09-01", Evening: boolPtr(true)},
	}}
	svc := newTestAvailabilityService(repo)

	window, err := svc.Window(context.Background(), "2026-09-01", "2026-09-01")
	require.NoError(t, err)
	require.Contains(t, window, "1")
	require.Contains(t, window, "2", "resource_id is accepted as teacher key")

	rec := window["1"]["2026-09-01"]
	assert.False(t, rec.Open(models.SlotMorning))
	assert.True(t, rec.Open(models.SlotAfternoon))
}

func TestAvailabilityWindowCachesWithinTTL(t *testing.T) {
	repo := &fakeAvailabilityRepo{}
	svc := newTestAvailabilityService(repo)
	ctx := context.Background()

	_, err := svc.Window(ctx, "2026-09-01", "2026-09-01")
	require.NoError(t, err)
	_, err = svc.Window(ctx, "2026-09-01", "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
}

func TestAvailabilityInvalidateForcesRefetch(t *testing.T) {
	repo := &fakeAvailabilityRepo{}
	svc := newTestAvailabilityService(repo)
	ctx := context.Background()

	_, err := svc.Window(ctx, "2026-09-01", "2026-09-01")
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(ctx))
	_, err = svc.Window(ctx, "2026-09-01", "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestAvailabilityWindowNeverServesStale(t *testing.T) {
	repo := &fakeAvailabilityRepo{records: []dto.RawAvailability{
		{TeacherID: "1", Date: "2026-09-01", Morning: boolPtr(false)},
	}}
	svc := newTestAvailabilityService(repo)
	ctx := context.Background()

	_, err := svc.Window(ctx, "2026-09-01", "2026-09-01")
	require.NoError(t, err)

	// drop the cache and break the repo: the error must surface instead
	// of the previous declarations
	require.NoError(t, svc.Invalidate(ctx))
	repo.err = errors.New("upstream down")
	_, err = svc.Window(ctx, "2026-09-01", "2026-09-01")
	assert.Error(t, err)
}

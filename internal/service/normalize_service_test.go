package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutor-dash-api/internal/dto"
	"github.com/noah-isme/tutor-dash-api/internal/models"
)

type fakeCourseTypes struct {
	types []dto.RawCourseType
	err   error
}

func (f *fakeCourseTypes) List(_ context.Context) ([]dto.RawCourseType, error) {
	return f.types, f.err
}

func newTestNormalizer(types []dto.RawCourseType, err error) *NormalizeService {
	return NewNormalizeService(&fakeCourseTypes{types: types, err: err}, nil, 0, nil)
}

func TestNormalizeFieldPriority(t *testing.T) {
	svc := newTestNormalizer(nil, nil)

	raw := dto.RawBooking{
		ID:           "b1",
		BookingID:    "ignored",
		TeacherIDAlt: "t2",
		ResourceID:   "ignored",
		LessonDate:   "2026-09-01",
		StartTimeAlt: "9:00",
		EndTimeAlt:   "10:30",
		Status:       "Confirmed",
		Room:         "R2",
	}

	rec := svc.Record(context.Background(), raw)
	assert.Equal(t, "b1", rec.ID)
	assert.Equal(t, "t2", rec.TeacherID)
	assert.Equal(t, "2026-09-01", rec.Date)
	assert.Equal(t, "09:00", rec.StartTime)
	assert.Equal(t, "10:30", rec.EndTime)
	assert.Equal(t, models.StatusConfirmed, rec.Status)
	assert.Equal(t, "R2", rec.Location)
	require.True(t, rec.Interval.Valid())
	assert.Equal(t, 540, rec.Interval.StartMinute)
	assert.Equal(t, 630, rec.Interval.EndMinute)
}

func TestNormalizeDatetimeFallback(t *testing.T) {
	svc := newTestNormalizer(nil, nil)

	raw := dto.RawBooking{
		ID:    "b2",
		Start: "2026-09-01T13:45:00Z",
		End:   "2026-09-01T15:00:00+07:00",
	}

	rec := svc.Record(context.Background(), raw)
	assert.Equal(t, "2026-09-01", rec.Date)
	assert.Equal(t, "13:45", rec.StartTime)
	assert.Equal(t, "15:00", rec.EndTime)
	assert.True(t, rec.Interval.Valid())
}

func TestNormalizeUnparseableTimesKeepRecord(t *testing.T) {
	svc := newTestNormalizer(nil, nil)

	raw := dto.RawBooking{
		ID:        "b3",
		TeacherID: "t1",
		Date:      "2026-09-01",
		StartTime: "around noon",
		EndTime:   "14:00",
	}

	rec := svc.Record(context.Background(), raw)
	assert.Equal(t, "b3", rec.ID)
	assert.Empty(t, rec.StartTime)
	assert.Equal(t, "14:00", rec.EndTime)
	assert.False(t, rec.Interval.Valid(), "half-known pair must stay unknown")
}

func TestNormalizeStudentIDs(t *testing.T) {
	svc := newTestNormalizer(nil, nil)

	rec := svc.Record(context.Background(), dto.RawBooking{StudentIDs: []dto.FlexID{"5", "6"}})
	assert.Equal(t, []string{"5", "6"}, rec.StudentIDs)

	rec = svc.Record(context.Background(), dto.RawBooking{StudentID: "7"})
	assert.Equal(t, []string{"7"}, rec.StudentIDs)
}

func TestNormalizeStatusFallsBackToPending(t *testing.T) {
	svc := newTestNormalizer(nil, nil)
	rec := svc.Record(context.Background(), dto.RawBooking{Status: "tentative"})
	assert.Equal(t, models.StatusPending, rec.Status)
}

func TestNormalizeTypeLabel(t *testing.T) {
	catalog := []dto.RawCourseType{
		{ID: "11", Label: "Math 1:1"},
		{ID: "12", Name: "Group English"},
	}
	svc := newTestNormalizer(catalog, nil)
	ctx := context.Background()

	assert.Equal(t, "Math 1:1", svc.Record(ctx, dto.RawBooking{CourseID: "11"}).TypeLabel)
	assert.Equal(t, "Group English", svc.Record(ctx, dto.RawBooking{CourseID: "12"}).TypeLabel)
	assert.Equal(t, UncategorizedLabel, svc.Record(ctx, dto.RawBooking{CourseID: "99"}).TypeLabel)
	assert.Equal(t, UncategorizedLabel, svc.Record(ctx, dto.RawBooking{}).TypeLabel)
	assert.Equal(t, "trial", svc.Record(ctx, dto.RawBooking{ScheduleType: "trial"}).TypeLabel)
}

func TestNormalizeCatalogFailureDegrades(t *testing.T) {
	svc := newTestNormalizer(nil, errors.New("boom"))
	rec := svc.Record(context.Background(), dto.RawBooking{CourseID: "11"})
	assert.Equal(t, UncategorizedLabel, rec.TypeLabel)
}

func TestNormalizeIdempotent(t *testing.T) {
	svc := newTestNormalizer(nil, nil)
	ctx := context.Background()

	first := svc.Record(ctx, dto.RawBooking{
		ID:        "b4",
		TeacherID: "t1",
		StudentID: "s1",
		Date:      "2026-09-01",
		StartTime: "9点30分",
		EndTime:   "11：00",
		Status:    "confirmed",
		Location:  "A1",
	})

	// feed the canonical record back through normalization
	second := svc.Record(ctx, dto.RawBooking{
		ID:           dto.FlexID(first.ID),
		TeacherID:    dto.FlexID(first.TeacherID),
		StudentIDs:   []dto.FlexID{dto.FlexID(first.StudentIDs[0])},
		Date:         first.Date,
		StartTime:    first.StartTime,
		EndTime:      first.EndTime,
		Status:       string(first.Status),
		Location:     first.Location,
		ScheduleType: first.TypeLabel,
	})

	assert.Equal(t, first, second)
}

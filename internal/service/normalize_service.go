package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tutor-dash-api/internal/dto"
	"github.com/noah-isme/tutor-dash-api/internal/models"
	"github.com/noah-isme/tutor-dash-api/internal/timeparse"
)

// UncategorizedLabel is the type label for records whose course id cannot
// be resolved against the catalog.
const UncategorizedLabel = "uncategorized"

type courseTypeLister interface {
	List(ctx context.Context) ([]dto.RawCourseType, error)
}

// NormalizeService maps raw upstream booking payloads onto canonical
// ScheduleRecords. Field variants are resolved by a fixed priority; a
// record that cannot be fully parsed is kept with whatever could be read
// rather than dropped.
type NormalizeService struct {
	courseTypes courseTypeLister
	cache       *CacheService
	catalogTTL  time.Duration
	logger      *zap.Logger
}

// NewNormalizeService constructs a normalize service. cache may be nil,
// in which case the catalog is fetched on every call.
func NewNormalizeService(courseTypes courseTypeLister, cache *CacheService, catalogTTL time.Duration, logger *zap.Logger) *NormalizeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NormalizeService{
		courseTypes: courseTypes,
		cache:       cache,
		catalogTTL:  catalogTTL,
		logger:      logger,
	}
}

// Records normalizes a batch against a single catalog snapshot.
func (s *NormalizeService) Records(ctx context.Context, raws []dto.RawBooking) []models.ScheduleRecord {
	labels := s.labels(ctx)
	records := make([]models.ScheduleRecord, 0, len(raws))
	for _, raw := range raws {
		records = append(records, normalizeRecord(raw, labels))
	}
	return records
}

// Record normalizes a single raw booking.
func (s *NormalizeService) Record(ctx context.Context, raw dto.RawBooking) models.ScheduleRecord {
	return normalizeRecord(raw, s.labels(ctx))
}

// labels returns the course id → label catalog, degrading to nil when the
// catalog cannot be fetched; type resolution then falls back to
// UncategorizedLabel instead of failing the batch.
func (s *NormalizeService) labels(ctx context.Context) map[string]string {
	if s.courseTypes == nil {
		return nil
	}

	var types []dto.RawCourseType
	var err error
	if s.cache != nil {
		_, err = s.cache.GetOrFetch(ctx, "coursetypes", s.catalogTTL, &types, func(ctx context.Context) (interface{}, error) {
			return s.courseTypes.List(ctx)
		})
	} else {
		types, err = s.courseTypes.List(ctx)
	}
	if err != nil {
		s.logger.Warn("course type catalog unavailable, labels degrade to uncategorized", zap.Error(err))
		return nil
	}

	labels := make(map[string]string, len(types))
	for _, t := range types {
		label := t.Label
		if label == "" {
			label = t.Name
		}
		if t.ID != "" && label != "" {
			labels[t.ID.String()] = label
		}
	}
	return labels
}

func normalizeRecord(raw dto.RawBooking, labels map[string]string) models.ScheduleRecord {
	rec := models.ScheduleRecord{
		ID:        firstID(raw.ID, raw.BookingID),
		TeacherID: firstID(raw.TeacherID, raw.TeacherIDAlt, raw.ResourceID),
		Date:      firstString(raw.Date, raw.LessonDate, datePart(raw.Start)),
		Location:  firstString(raw.Location, raw.Room),
		Status:    models.ParseScheduleStatus(raw.Status),
	}

	for _, id := range raw.StudentIDs {
		if id != "" {
			rec.StudentIDs = append(rec.StudentIDs, id.String())
		}
	}
	if len(rec.StudentIDs) == 0 && raw.StudentID != "" {
		rec.StudentIDs = []string{raw.StudentID.String()}
	}

	startRaw := firstString(raw.StartTime, raw.StartTimeAlt, clockPart(raw.Start))
	endRaw := firstString(raw.EndTime, raw.EndTimeAlt, clockPart(raw.End))
	if clock, ok := timeparse.ParseClock(startRaw); ok {
		rec.StartTime = clock
	}
	if clock, ok := timeparse.ParseClock(endRaw); ok {
		rec.EndTime = clock
	}
	rec.Interval = timeparse.Interval(rec.StartTime, rec.EndTime)

	rec.TypeLabel = resolveTypeLabel(raw, labels)
	return rec
}

// resolveTypeLabel prefers the catalog lookup by course id; older payloads
// carry an already-human schedule_type string which is used verbatim.
func resolveTypeLabel(raw dto.RawBooking, labels map[string]string) string {
	if raw.CourseID != "" {
		if label, ok := labels[raw.CourseID.String()]; ok {
			return label
		}
		return UncategorizedLabel
	}
	if t := strings.TrimSpace(raw.ScheduleType); t != "" {
		return t
	}
	return UncategorizedLabel
}

func firstID(ids ...dto.FlexID) string {
	for _, id := range ids {
		if id != "" {
			return id.String()
		}
	}
	return ""
}

func firstString(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// clockPart extracts the time-of-day portion of a datetime-ish string,
// dropping any trailing zone designator. Non-datetime input passes through
// and fails clock parsing downstream.
func clockPart(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[i+1:]
	} else if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(s, "Z")
	if i := strings.IndexByte(s, '+'); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndexByte(s, '-'); i > 0 {
		s = s[:i]
	}
	return s
}

// datePart extracts a leading YYYY-MM-DD from a datetime-ish string.
func datePart(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) >= 10 && s[4] == '-' && s[7] == '-' {
		return s[:10]
	}
	return ""
}

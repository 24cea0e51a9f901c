package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tutor-dash-api/internal/dto"
	"github.com/noah-isme/tutor-dash-api/internal/models"
	appErrors "github.com/noah-isme/tutor-dash-api/pkg/errors"
)

const bookingCachePrefix = "bookings:"

type bookingLister interface {
	ListRange(ctx context.Context, filter dto.BookingFilter) ([]dto.RawBooking, error)
}

// ScheduleService composes the booking fetch, normalization and clustering
// into the dashboard grid, and feeds day-level record sets to the resolver.
type ScheduleService struct {
	bookings   bookingLister
	normalizer *NormalizeService
	clusterer  *ClusterService
	cache      *CacheService
	ttl        time.Duration
	logger     *zap.Logger
}

// NewScheduleService constructs the service.
func NewScheduleService(bookings bookingLister, normalizer *NormalizeService, clusterer *ClusterService, cache *CacheService, ttl time.Duration, logger *zap.Logger) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{
		bookings:   bookings,
		normalizer: normalizer,
		clusterer:  clusterer,
		cache:      cache,
		ttl:        ttl,
		logger:     logger,
	}
}

// Grid returns the clustered cells for the filtered window, ordered by
// date then teacher id.
func (s *ScheduleService) Grid(ctx context.Context, filter dto.BookingFilter) (*dto.GridResponse, CacheOutcome, error) {
	if err := validateWindow(filter.StartDate, filter.EndDate); err != nil {
		return nil, CacheOutcome{}, err
	}

	raws, outcome, err := s.fetch(ctx, filter)
	if err != nil {
		return nil, outcome, err
	}
	records := s.normalizer.Records(ctx, raws)

	type cellKey struct {
		date, teacher string
	}
	groups := make(map[cellKey][]models.ScheduleRecord)
	for _, rec := range records {
		key := cellKey{date: rec.Date, teacher: rec.TeacherID}
		groups[key] = append(groups[key], rec)
	}

	keys := make([]cellKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].date != keys[j].date {
			return keys[i].date < keys[j].date
		}
		return keys[i].teacher < keys[j].teacher
	})

	cells := make([]dto.GridCell, 0, len(keys))
	for _, key := range keys {
		cells = append(cells, dto.GridCell{
			Date:      key.date,
			TeacherID: key.teacher,
			Clusters:  s.clusterer.Cluster(groups[key]),
		})
	}
	return &dto.GridResponse{Cells: cells}, outcome, nil
}

// DayRecords returns every normalized record of one date, cancelled ones
// included; the resolver filters those itself.
func (s *ScheduleService) DayRecords(ctx context.Context, date string) ([]models.ScheduleRecord, CacheOutcome, error) {
	if err := validateWindow(date, date); err != nil {
		return nil, CacheOutcome{}, err
	}
	raws, outcome, err := s.fetch(ctx, dto.BookingFilter{StartDate: date, EndDate: date})
	if err != nil {
		return nil, outcome, err
	}
	return s.normalizer.Records(ctx, raws), outcome, nil
}

// InvalidateBookings drops every cached booking window; called after any
// create, update or delete against the upstream API.
func (s *ScheduleService) InvalidateBookings(ctx context.Context) error {
	return s.cache.Invalidate(ctx, bookingCachePrefix)
}

func (s *ScheduleService) fetch(ctx context.Context, filter dto.BookingFilter) ([]dto.RawBooking, CacheOutcome, error) {
	var raws []dto.RawBooking
	outcome, err := s.cache.GetOrFetch(ctx, bookingCacheKey(filter), s.ttl, &raws, func(ctx context.Context) (interface{}, error) {
		return s.bookings.ListRange(ctx, filter)
	})
	return raws, outcome, err
}

// bookingCacheKey pins the full filter into the key so differently
// filtered windows never collide.
func bookingCacheKey(filter dto.BookingFilter) string {
	return bookingCachePrefix + strings.Join([]string{
		filter.StartDate, filter.EndDate, filter.Status, filter.CourseType, filter.TeacherID,
	}, ":")
}

func validateWindow(startDate, endDate string) error {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "start date must be YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "end date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return appErrors.Clone(appErrors.ErrValidation, "end date must not precede start date")
	}
	return nil
}

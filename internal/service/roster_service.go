package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tutor-dash-api/internal/dto"
	"github.com/noah-isme/tutor-dash-api/internal/models"
)

const rosterCacheKey = "roster"

type teacherLister interface {
	List(ctx context.Context) ([]dto.RawTeacher, error)
}

// RosterService serves the normalized teacher roster through the
// serve-stale booking-side cache: an unreachable upstream degrades to the
// last known roster rather than an empty picker.
type RosterService struct {
	repo   teacherLister
	cache  *CacheService
	ttl    time.Duration
	logger *zap.Logger
}

// NewRosterService constructs the service.
func NewRosterService(repo teacherLister, cache *CacheService, ttl time.Duration, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// Teachers returns the normalized roster, including non-bookable entries;
// callers filter with Teacher.Bookable where it matters.
func (s *RosterService) Teachers(ctx context.Context) ([]models.Teacher, CacheOutcome, error) {
	var raws []dto.RawTeacher
	outcome, err := s.cache.GetOrFetch(ctx, rosterCacheKey, s.ttl, &raws, func(ctx context.Context) (interface{}, error) {
		return s.repo.List(ctx)
	})
	if err != nil {
		return nil, outcome, err
	}

	teachers := make([]models.Teacher, 0, len(raws))
	for _, raw := range raws {
		teachers = append(teachers, models.Teacher{
			ID:     raw.ID.String(),
			Name:   strings.TrimSpace(raw.Name),
			Status: strings.ToLower(strings.TrimSpace(raw.Status)),
			Tier:   tierFromRestriction(raw.Restriction),
		})
	}
	return teachers, outcome, nil
}

// Invalidate drops the cached roster.
func (s *RosterService) Invalidate(ctx context.Context) error {
	return s.cache.Invalidate(ctx, rosterCacheKey)
}

// tierFromRestriction maps the upstream numeric enum: 0 means
// unrestricted, 1 or absent means availability declarations are binding.
func tierFromRestriction(restriction *int) models.RestrictionTier {
	if restriction != nil && *restriction == 0 {
		return models.TierUnrestricted
	}
	return models.TierAvailabilityChecked
}

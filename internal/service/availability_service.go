package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tutor-dash-api/internal/dto"
	"github.com/noah-isme/tutor-dash-api/internal/models"
)

// EligibilityReason explains an eligibility verdict.
type EligibilityReason string

const (
	ReasonEligible        EligibilityReason = "eligible"
	ReasonUnrestricted    EligibilityReason = "unrestricted"
	ReasonUnknownInterval EligibilityReason = "unknown_interval"
	ReasonSlotClosed      EligibilityReason = "slot_closed"
)

// Eligibility is the verdict for one teacher against one target interval.
type Eligibility struct {
	Eligible bool
	Reason   EligibilityReason
}

// EvaluateEligibility applies the slot policy for one teacher. rec may be
// nil (no declaration for that date: every slot open). The verdict is
// fail-open twice over: unrestricted teachers skip the check entirely, and
// an unparseable target never hides a teacher from the picker.
func EvaluateEligibility(teacher models.Teacher, rec *models.AvailabilityRecord, target models.TimeInterval) Eligibility {
	if teacher.Tier == models.TierUnrestricted {
		return Eligibility{Eligible: true, Reason: ReasonUnrestricted}
	}
	if !target.Valid() {
		return Eligibility{Eligible: true, Reason: ReasonUnknownInterval}
	}
	for _, slot := range models.AllSlots {
		bounds := models.SlotBounds[slot]
		if !target.TouchesRange(bounds[0], bounds[1]) {
			continue
		}
		if !rec.Open(slot) {
			return Eligibility{Eligible: false, Reason: ReasonSlotClosed}
		}
	}
	return Eligibility{Eligible: true, Reason: ReasonEligible}
}

type availabilityLister interface {
	ListRange(ctx context.Context, startDate, endDate string) ([]dto.RawAvailability, error)
}

// AvailabilityService loads availability declarations through a cache that
// deliberately never serves stale entries: eligibility must not be judged
// against declarations carried over from a previous editing session.
type AvailabilityService struct {
	repo   availabilityLister
	cache  *CacheService
	ttl    time.Duration
	logger *zap.Logger
}

// NewAvailabilityService constructs the service. The cache passed in must
// be built with serve-stale disabled.
func NewAvailabilityService(repo availabilityLister, cache *CacheService, ttl time.Duration, logger *zap.Logger) *AvailabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// Window returns the declarations for the inclusive date window, keyed by
// teacher id then date.
func (s *AvailabilityService) Window(ctx context.Context, startDate, endDate string) (map[string]map[string]models.AvailabilityRecord, error) {
	key := "availability:" + startDate + ":" + endDate

	var raws []dto.RawAvailability
	if _, err := s.cache.GetOrFetch(ctx, key, s.ttl, &raws, func(ctx context.Context) (interface{}, error) {
		return s.repo.ListRange(ctx, startDate, endDate)
	}); err != nil {
		return nil, err
	}

	window := make(map[string]map[string]models.AvailabilityRecord)
	for _, raw := range raws {
		teacherID := raw.TeacherID.String()
		if teacherID == "" {
			teacherID = raw.ResourceID.String()
		}
		if teacherID == "" || raw.Date == "" {
			continue
		}
		if window[teacherID] == nil {
			window[teacherID] = make(map[string]models.AvailabilityRecord)
		}
		window[teacherID][raw.Date] = models.AvailabilityRecord{
			TeacherID: teacherID,
			Date:      raw.Date,
			Morning:   raw.Morning,
			Afternoon: raw.Afternoon,
			Evening:   raw.Evening,
		}
	}
	return window, nil
}

// List returns the declarations of a window as a flat slice for the
// dashboard availability view.
func (s *AvailabilityService) List(ctx context.Context, startDate, endDate string) ([]models.AvailabilityRecord, error) {
	window, err := s.Window(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}
	var records []models.AvailabilityRecord
	for _, days := range window {
		for _, rec := range days {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		return records[i].TeacherID < records[j].TeacherID
	})
	return records, nil
}

// Invalidate drops every cached declaration window.
func (s *AvailabilityService) Invalidate(ctx context.Context) error {
	return s.cache.Invalidate(ctx, "availability:")
}

package service

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/noah-isme/tutor-dash-api/internal/dto"
	"github.com/noah-isme/tutor-dash-api/internal/models"
	"github.com/noah-isme/tutor-dash-api/internal/timeparse"
	appErrors "github.com/noah-isme/tutor-dash-api/pkg/errors"
)

type rosterSource interface {
	Teachers(ctx context.Context) ([]models.Teacher, CacheOutcome, error)
}

type daySource interface {
	DayRecords(ctx context.Context, date string) ([]models.ScheduleRecord, CacheOutcome, error)
}

type availabilitySource interface {
	Window(ctx context.Context, startDate, endDate string) (map[string]map[string]models.AvailabilityRecord, error)
	Invalidate(ctx context.Context) error
}

// resolveSession tracks one open booking form. Its generation counter
// orders the resolutions issued within the session so a stale answer can
// be recognized by the caller.
type resolveSession struct {
	createdAt  time.Time
	generation atomic.Uint64
}

// Resolution is one eligibility answer. Busy and Unavailable are
// independent axes: a teacher can be busy yet not unavailable, and the
// rendering layer decides how to combine them.
type Resolution struct {
	Busy             []string
	Unavailable      []string
	DefaultTeacherID string
	Generation       uint64
	Superseded       bool
	Degraded         bool
	Warning          string
}

// ResolverService answers "who can take this lesson" for the booking
// form. Every fetch failure degrades to empty sets rather than an error:
// booking creation proceeds on possibly incomplete safety data, flagged
// through Degraded and Warning.
type ResolverService struct {
	roster       rosterSource
	schedules    daySource
	availability availabilitySource
	metrics      *MetricsService
	validate     *validator.Validate
	collator     *collate.Collator
	logger       *zap.Logger
	sessionTTL   time.Duration
	now          func() time.Time

	mu       sync.Mutex
	sessions map[string]*resolveSession
}

// NewResolverService constructs the service.
func NewResolverService(roster rosterSource, schedules daySource, availability availabilitySource, metrics *MetricsService, sessionTTL time.Duration, logger *zap.Logger) *ResolverService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResolverService{
		roster:       roster,
		schedules:    schedules,
		availability: availability,
		metrics:      metrics,
		validate:     validator.New(),
		collator:     collate.New(language.Und),
		logger:       logger,
		sessionTTL:   sessionTTL,
		now:          time.Now,
		sessions:     make(map[string]*resolveSession),
	}
}

// BeginSession opens a booking-form editing session and drops the cached
// availability declarations, so eligibility within the new session is
// never judged against declarations carried over from a previous one.
func (s *ResolverService) BeginSession(ctx context.Context) (string, error) {
	id := uuid.NewString()

	s.mu.Lock()
	now := s.now()
	for key, sess := range s.sessions {
		if now.Sub(sess.createdAt) > s.sessionTTL {
			delete(s.sessions, key)
		}
	}
	s.sessions[id] = &resolveSession{createdAt: now}
	s.mu.Unlock()

	if err := s.availability.Invalidate(ctx); err != nil {
		s.logger.Warn("availability cache invalidation failed on session open", zap.Error(err))
	}
	return id, nil
}

// Resolve computes the busy and unavailable sets plus the deterministic
// default pick for the requested target. The returned generation is the
// session-local sequence number of this resolution; Superseded is set when
// a newer resolution was issued in the same session before this one
// finished, so the caller must discard the answer.
func (s *ResolverService) Resolve(ctx context.Context, sessionID string, req dto.EligibilityRequest) (*Resolution, error) {
	sess := s.session(sessionID)
	if sess == nil {
		return nil, appErrors.ErrSessionExpired
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid eligibility request")
	}

	start := time.Now()
	defer func() {
		s.metrics.ObserveResolution(time.Since(start))
	}()

	generation := sess.generation.Add(1)
	target := timeparse.Interval(req.StartTime, req.EndTime)
	res := &Resolution{Generation: generation}

	teachers, _, err := s.roster.Teachers(ctx)
	if err != nil {
		s.degrade(res, "teacher roster unavailable", err)
	}

	busy := make(map[string]struct{})
	records, _, err := s.schedules.DayRecords(ctx, req.Date)
	if err != nil {
		s.degrade(res, "booking snapshot unavailable, conflicts unknown", err)
	} else {
		for _, rec := range records {
			if rec.Status == models.StatusCancelled || rec.TeacherID == "" {
				continue
			}
			if req.ExcludeRecordID != "" && rec.ID == req.ExcludeRecordID {
				continue
			}
			if rec.Interval.Overlaps(target) {
				busy[rec.TeacherID] = struct{}{}
			}
		}
	}

	candidates := make([]models.Teacher, 0, len(teachers))
	for _, t := range teachers {
		if t.Bookable() {
			candidates = append(candidates, t)
		}
	}

	unavailable := make(map[string]struct{})
	if len(candidates) > 0 {
		window, err := s.availability.Window(ctx, req.Date, req.Date)
		if err != nil {
			s.degrade(res, "availability declarations unavailable", err)
			window = nil
		}
		for _, t := range candidates {
			rec := lookupDeclaration(window, t.ID, req.Date)
			if verdict := EvaluateEligibility(t, rec, target); !verdict.Eligible {
				unavailable[t.ID] = struct{}{}
			}
		}
	}

	res.Busy = sortedKeys(busy)
	res.Unavailable = sortedKeys(unavailable)
	res.DefaultTeacherID = s.defaultPick(candidates, busy, unavailable)
	res.Superseded = sess.generation.Load() != generation
	return res, nil
}

// defaultPick orders candidates by (status weight, collated name) and
// returns the first free one that is not unrestricted-tier; unrestricted
// teachers stay selectable but are excluded from the automatic pick so the
// exempt pool is not always defaulted onto. When only unrestricted
// teachers are free, the first of those wins; otherwise no default.
func (s *ResolverService) defaultPick(candidates []models.Teacher, busy, unavailable map[string]struct{}) string {
	ranked := make([]models.Teacher, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		if w1, w2 := ranked[i].StatusWeight(), ranked[j].StatusWeight(); w1 != w2 {
			return w1 < w2
		}
		return s.collator.CompareString(ranked[i].Name, ranked[j].Name) < 0
	})

	fallback := ""
	for _, t := range ranked {
		if _, isBusy := busy[t.ID]; isBusy {
			continue
		}
		if _, isUnavailable := unavailable[t.ID]; isUnavailable {
			continue
		}
		if t.Tier != models.TierUnrestricted {
			return t.ID
		}
		if fallback == "" {
			fallback = t.ID
		}
	}
	return fallback
}

func (s *ResolverService) session(id string) *resolveSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || s.now().Sub(sess.createdAt) > s.sessionTTL {
		delete(s.sessions, id)
		return nil
	}
	return sess
}

func (s *ResolverService) degrade(res *Resolution, warning string, err error) {
	res.Degraded = true
	if res.Warning == "" {
		res.Warning = warning
	}
	s.logger.Warn("resolution degraded", zap.String("reason", warning), zap.Error(err))
}

func lookupDeclaration(window map[string]map[string]models.AvailabilityRecord, teacherID, date string) *models.AvailabilityRecord {
	days, ok := window[teacherID]
	if !ok {
		return nil
	}
	rec, ok := days[date]
	if !ok {
		return nil
	}
	return &rec
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutor-dash-api/internal/dto"
	"github.com/noah-isme/tutor-dash-api/internal/service"
	appErrors "github.com/noah-isme/tutor-dash-api/pkg/errors"
	"github.com/noah-isme/tutor-dash-api/pkg/response"
)

// CacheHandler exposes explicit cache invalidation, called by the UI after
// it performs a mutation directly against the upstream API.
type CacheHandler struct {
	schedules    *service.ScheduleService
	availability *service.AvailabilityService
	roster       *service.RosterService
}

// NewCacheHandler constructs a new CacheHandler.
func NewCacheHandler(schedules *service.ScheduleService, availability *service.AvailabilityService, roster *service.RosterService) *CacheHandler {
	return &CacheHandler{schedules: schedules, availability: availability, roster: roster}
}

// Invalidate godoc
// @Summary Invalidate cached upstream data
// @Tags Cache
// @Accept json
// @Param request body dto.InvalidationRequest true "Scope to drop"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Router /cache/invalidations [post]
func (h *CacheHandler) Invalidate(c *gin.Context) {
	var req dto.InvalidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "scope must be one of bookings, availability, roster, all"))
		return
	}

	ctx := c.Request.Context()
	var err error
	switch req.Scope {
	case "bookings":
		err = h.schedules.InvalidateBookings(ctx)
	case "availability":
		err = h.availability.Invalidate(ctx)
	case "roster":
		err = h.roster.Invalidate(ctx)
	case "all":
		if err = h.schedules.InvalidateBookings(ctx); err == nil {
			if err = h.availability.Invalidate(ctx); err == nil {
				err = h.roster.Invalidate(ctx)
			}
		}
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

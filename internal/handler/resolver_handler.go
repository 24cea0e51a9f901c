package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutor-dash-api/internal/dto"
	"github.com/noah-isme/tutor-dash-api/internal/service"
	appErrors "github.com/noah-isme/tutor-dash-api/pkg/errors"
	"github.com/noah-isme/tutor-dash-api/pkg/response"
)

// ResolverHandler exposes the booking-form eligibility resolver.
type ResolverHandler struct {
	resolver *service.ResolverService
}

// NewResolverHandler constructs a new ResolverHandler.
func NewResolverHandler(resolver *service.ResolverService) *ResolverHandler {
	return &ResolverHandler{resolver: resolver}
}

// OpenSession godoc
// @Summary Open a booking-form resolution session
// @Description Opens a session and drops cached availability declarations.
// @Tags Resolver
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /resolver/sessions [post]
func (h *ResolverHandler) OpenSession(c *gin.Context) {
	id, err := h.resolver.BeginSession(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.SessionResponse{SessionID: id})
}

// Eligibility godoc
// @Summary Resolve teacher eligibility for a target interval
// @Tags Resolver
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.EligibilityRequest true "Target interval"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 410 {object} response.Envelope
// @Router /resolver/sessions/{id}/eligibility [post]
func (h *ResolverHandler) Eligibility(c *gin.Context) {
	var req dto.EligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid eligibility request"))
		return
	}

	res, err := h.resolver.Resolve(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.EligibilityResponse{
		Busy:             res.Busy,
		Unavailable:      res.Unavailable,
		DefaultTeacherID: res.DefaultTeacherID,
		Generation:       res.Generation,
		Superseded:       res.Superseded,
		Degraded:         res.Degraded,
		Warning:          res.Warning,
	})
}

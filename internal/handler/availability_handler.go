package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutor-dash-api/internal/dto"
	"github.com/noah-isme/tutor-dash-api/internal/service"
	appErrors "github.com/noah-isme/tutor-dash-api/pkg/errors"
	"github.com/noah-isme/tutor-dash-api/pkg/response"
)

// AvailabilityHandler serves availability declarations.
type AvailabilityHandler struct {
	availability *service.AvailabilityService
}

// NewAvailabilityHandler constructs a new AvailabilityHandler.
func NewAvailabilityHandler(availability *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// List godoc
// @Summary List availability declarations
// @Tags Availability
// @Produce json
// @Param start query string true "Window start (YYYY-MM-DD)"
// @Param end query string true "Window end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /availability [get]
func (h *AvailabilityHandler) List(c *gin.Context) {
	start := strings.TrimSpace(c.Query("start"))
	end := strings.TrimSpace(c.Query("end"))
	if start == "" || end == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "start and end query parameters are required"))
		return
	}

	records, err := h.availability.List(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.AvailabilityResponse{Records: records})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutor-dash-api/internal/dto"
	"github.com/noah-isme/tutor-dash-api/internal/service"
	"github.com/noah-isme/tutor-dash-api/pkg/response"
)

// TeacherHandler wires the roster service to HTTP routes.
type TeacherHandler struct {
	roster *service.RosterService
}

// NewTeacherHandler constructs a new TeacherHandler.
func NewTeacherHandler(roster *service.RosterService) *TeacherHandler {
	return &TeacherHandler{roster: roster}
}

// List godoc
// @Summary List teachers
// @Description Returns the normalized roster including restriction tiers.
// @Tags Teachers
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teachers [get]
func (h *TeacherHandler) List(c *gin.Context) {
	teachers, outcome, err := h.roster.Teachers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.TeacherListResponse{Teachers: teachers}, cacheMeta(outcome))
}

// cacheMeta surfaces cache staleness to the caller without changing the
// response shape.
func cacheMeta(outcome service.CacheOutcome) map[string]interface{} {
	if !outcome.Stale {
		return nil
	}
	return map[string]interface{}{"stale": true}
}

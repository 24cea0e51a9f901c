package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutor-dash-api/internal/dto"
	"github.com/noah-isme/tutor-dash-api/internal/service"
	"github.com/noah-isme/tutor-dash-api/pkg/response"
)

// GridHandler serves the clustered dashboard grid.
type GridHandler struct {
	schedules *service.ScheduleService
}

// NewGridHandler constructs a new GridHandler.
func NewGridHandler(schedules *service.ScheduleService) *GridHandler {
	return &GridHandler{schedules: schedules}
}

// Grid godoc
// @Summary Get the scheduling grid
// @Description Returns per-day, per-teacher overlap clusters for the window.
// @Tags Grid
// @Produce json
// @Param start query string true "Window start (YYYY-MM-DD)"
// @Param end query string true "Window end (YYYY-MM-DD)"
// @Param status query string false "Booking status filter"
// @Param type query string false "Course type filter"
// @Param teacherId query string false "Teacher filter"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /grid [get]
func (h *GridHandler) Grid(c *gin.Context) {
	filter := dto.BookingFilter{
		StartDate:  strings.TrimSpace(c.Query("start")),
		EndDate:    strings.TrimSpace(c.Query("end")),
		Status:     strings.TrimSpace(c.Query("status")),
		CourseType: strings.TrimSpace(c.Query("type")),
		TeacherID:  strings.TrimSpace(c.Query("teacherId")),
	}

	grid, outcome, err := h.schedules.Grid(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, cacheMeta(outcome))
}

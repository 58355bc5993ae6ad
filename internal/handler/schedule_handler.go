package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zad-edu/masadr2040/internal/models"
	"github.com/zad-edu/masadr2040/pkg/response"
)

type scheduleService interface {
	Weeks() []models.Week
	Grid(label string) ([]models.SlotView, error)
}

// ScheduleHandler exposes the derived booking weeks and the timetable grid.
type ScheduleHandler struct {
	service scheduleService
}

// NewScheduleHandler builds a new handler.
func NewScheduleHandler(service scheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// Weeks godoc
// @Summary Selectable booking weeks
// @Tags Schedule
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /weeks [get]
func (h *ScheduleHandler) Weeks(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Weeks(), nil)
}

// Grid godoc
// @Summary Timetable grid for a week
// @Tags Schedule
// @Produce json
// @Param week query string false "Week label, current or next" default(current)
// @Success 200 {object} response.Envelope
// @Router /slots [get]
func (h *ScheduleHandler) Grid(c *gin.Context) {
	label := c.DefaultQuery("week", "current")
	cells, err := h.service.Grid(label)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cells, map[string]interface{}{"week": label})
}

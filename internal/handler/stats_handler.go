package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zad-edu/masadr2040/internal/models"
	"github.com/zad-edu/masadr2040/pkg/response"
)

type statsService interface {
	Overview(ctx context.Context) (*models.BookingStats, bool, error)
}

// StatsHandler serves the aggregated booking statistics.
type StatsHandler struct {
	service statsService
}

// NewStatsHandler builds a new handler.
func NewStatsHandler(service statsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Overview godoc
// @Summary Booking statistics
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats [get]
func (h *StatsHandler) Overview(c *gin.Context) {
	stats, cached, err := h.service.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, map[string]interface{}{"cached": cached})
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zad-edu/masadr2040/internal/dto"
	"github.com/zad-edu/masadr2040/internal/models"
	appErrors "github.com/zad-edu/masadr2040/pkg/errors"
	"github.com/zad-edu/masadr2040/pkg/response"
)

type syncService interface {
	Status() models.SyncState
	Config() dto.SyncConfigResponse
	Refresh(ctx context.Context) models.SyncState
	Configure(ctx context.Context, req dto.SyncConfigRequest) (models.SyncState, error)
}

// SyncHandler exposes the reconciliation loop: status, forced refresh and
// runtime endpoint configuration.
type SyncHandler struct {
	service syncService
}

// NewSyncHandler builds a new handler.
func NewSyncHandler(service syncService) *SyncHandler {
	return &SyncHandler{service: service}
}

// Status godoc
// @Summary Current sync status
// @Tags Sync
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /sync/status [get]
func (h *SyncHandler) Status(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Status(), nil)
}

// Config godoc
// @Summary Active remote endpoint with the access key masked
// @Tags Sync
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /sync/config [get]
func (h *SyncHandler) Config(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Config(), nil)
}

// Refresh godoc
// @Summary Force an immediate remote pull
// @Tags Sync
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /sync/refresh [post]
func (h *SyncHandler) Refresh(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Refresh(c.Request.Context()), nil)
}

// Configure godoc
// @Summary Point sync at a different remote document
// @Tags Sync
// @Accept json
// @Produce json
// @Param payload body dto.SyncConfigRequest true "Remote endpoint configuration"
// @Success 200 {object} response.Envelope
// @Router /sync/config [put]
func (h *SyncHandler) Configure(c *gin.Context) {
	var req dto.SyncConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid sync configuration payload"))
		return
	}
	state, err := h.service.Configure(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}

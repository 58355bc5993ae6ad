package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zad-edu/masadr2040/internal/dto"
	appErrors "github.com/zad-edu/masadr2040/pkg/errors"
	"github.com/zad-edu/masadr2040/pkg/response"
)

type gateService interface {
	Unlock(ctx context.Context, req dto.UnlockRequest) (*dto.UnlockResponse, error)
}

// GateHandler exposes the protected-action gate.
type GateHandler struct {
	service gateService
}

// NewGateHandler builds a new handler.
func NewGateHandler(service gateService) *GateHandler {
	return &GateHandler{service: service}
}

// Unlock godoc
// @Summary Exchange the gate password for a short-lived token
// @Tags Gate
// @Accept json
// @Produce json
// @Param payload body dto.UnlockRequest true "Gate password"
// @Success 200 {object} response.Envelope
// @Router /gate/unlock [post]
func (h *GateHandler) Unlock(c *gin.Context) {
	var req dto.UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid unlock payload"))
		return
	}
	resp, err := h.service.Unlock(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

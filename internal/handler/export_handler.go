package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zad-edu/masadr2040/internal/service"
	"github.com/zad-edu/masadr2040/pkg/response"
)

type exportService interface {
	Bookings(ctx context.Context, format service.ExportFormat) (*service.ExportArtifact, error)
	Stats(ctx context.Context, format service.ExportFormat) (*service.ExportArtifact, error)
}

// ExportHandler streams CSV and PDF downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler builds a new handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Bookings godoc
// @Summary Download the booking list
// @Tags Export
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /export/bookings [get]
func (h *ExportHandler) Bookings(c *gin.Context) {
	artifact, err := h.service.Bookings(c.Request.Context(), service.ExportFormat(c.DefaultQuery("format", "csv")))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveArtifact(c, artifact)
}

// Stats godoc
// @Summary Download the statistics overview
// @Tags Export
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /export/stats [get]
func (h *ExportHandler) Stats(c *gin.Context) {
	artifact, err := h.service.Stats(c.Request.Context(), service.ExportFormat(c.DefaultQuery("format", "csv")))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveArtifact(c, artifact)
}

func serveArtifact(c *gin.Context, artifact *service.ExportArtifact) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Content)
}

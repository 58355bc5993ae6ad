// Package handler exposes the booking API over gin.
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

type bookingService interface {
	List() []models.Booking
	Get(id string) (*models.Booking, error)
	Create(ctx context.Context, req dto.BookingRequest) (*models.Booking, error)
	Update(ctx context.Context, id string, req dto.BookingRequest) (*models.Booking, error)
	Delete(ctx context.Context, id string) error
	Precheck(ctx context.Context, req dto.PrecheckRequest) (*dto.PrecheckResponse, error)
	Roster() models.Roster
}

// BookingHandler exposes booking CRUD and the quota precheck.
type BookingHandler struct {
	service bookingService
}

// NewBookingHandler builds a new handler.
func NewBookingHandler(service bookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// List godoc
// @Summary List bookings
// @Tags Bookings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List(), nil)
}

// Get godoc
// @Summary Get booking by id
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking id"
// @Success 200 {object} response.Envelope
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.service.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, booking, nil)
}

// Create godoc
// @Summary Create booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Param payload body dto.BookingRequest true "Booking payload"
// @Success 201 {object} response.Envelope
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req dto.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrMissingFields.Code, http.StatusBadRequest, "invalid booking payload"))
		return
	}
	booking, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, booking)
}

// Update godoc
// @Summary Update booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking id"
// @Param payload body dto.BookingRequest true "Booking payload"
// @Success 200 {object} response.Envelope
// @Router /bookings/{id} [put]
func (h *BookingHandler) Update(c *gin.Context) {
	var req dto.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrMissingFields.Code, http.StatusBadRequest, "invalid booking payload"))
		return
	}
	booking, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, booking, nil)
}

// Delete godoc
// @Summary Delete booking
// @Tags Bookings
// @Param id path string true "Booking id"
// @Success 204
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Precheck godoc
// @Summary Check quota headroom for a candidate booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Param payload body dto.PrecheckRequest true "Precheck payload"
// @Success 200 {object} response.Envelope
// @Router /bookings/precheck [post]
func (h *BookingHandler) Precheck(c *gin.Context) {
	var req dto.PrecheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrMissingFields.Code, http.StatusBadRequest, "invalid precheck payload"))
		return
	}
	resp, err := h.service.Precheck(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Roster godoc
// @Summary Reference data for the booking form
// @Tags Bookings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /roster [get]
func (h *BookingHandler) Roster(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Roster(), nil)
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zad-edu/masadr2040/internal/dto"
	"github.com/zad-edu/masadr2040/internal/models"
	appErrors "github.com/zad-edu/masadr2040/pkg/errors"
	"github.com/zad-edu/masadr2040/pkg/response"
)

type bookingServiceMock struct {
	bookings  []models.Booking
	createErr error
	deleteErr error
}

func (m *bookingServiceMock) List() []models.Booking { return m.bookings }

func (m *bookingServiceMock) Get(id string) (*models.Booking, error) {
	for _, b := range m.bookings {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
}

func (m *bookingServiceMock) Create(_ context.Context, req dto.BookingRequest) (*models.Booking, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &models.Booking{ID: "new", Day: req.Day, Period: req.Period, Teacher: req.Teacher}, nil
}

func (m *bookingServiceMock) Update(_ context.Context, id string, req dto.BookingRequest) (*models.Booking, error) {
	return &models.Booking{ID: id, Day: req.Day, Period: req.Period, Teacher: req.Teacher}, nil
}

func (m *bookingServiceMock) Delete(_ context.Context, id string) error { return m.deleteErr }

func (m *bookingServiceMock) Precheck(_ context.Context, req dto.PrecheckRequest) (*dto.PrecheckResponse, error) {
	return &dto.PrecheckResponse{Allowed: true, WeeklyLimit: 6, DailyLimit: 3}, nil
}

func (m *bookingServiceMock) Roster() models.Roster { return models.DefaultRoster() }

func testContext(t *testing.T, method, target string, payload interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestBookingHandlerCreate(t *testing.T) {
	h := NewBookingHandler(&bookingServiceMock{})
	c, w := testContext(t, http.MethodPost, "/bookings", dto.BookingRequest{
		Day: "2024-06-10", Period: 2, Teacher: "Ahmed Al-Busaidi",
		Subject: "Science", Lesson: "Cells", Grade: "7", Class: "7/1",
	})

	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	envelope := decodeEnvelope(t, w)
	require.Nil(t, envelope.Error)
}

func TestBookingHandlerCreateRejectionSurfacesErrorCode(t *testing.T) {
	h := NewBookingHandler(&bookingServiceMock{createErr: appErrors.Clone(appErrors.ErrWeeklyLimit, "")})
	c, w := testContext(t, http.MethodPost, "/bookings", dto.BookingRequest{
		Day: "2024-06-10", Period: 2, Teacher: "Ahmed Al-Busaidi",
		Subject: "Science", Lesson: "Cells", Grade: "7", Class: "7/1",
	})

	h.Create(c)
	require.Equal(t, http.StatusConflict, w.Code)
	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrWeeklyLimit.Code, envelope.Error.Code)
}

func TestBookingHandlerCreateInvalidBody(t *testing.T) {
	h := NewBookingHandler(&bookingServiceMock{})
	c, w := testContext(t, http.MethodPost, "/bookings", nil)
	c.Request.Body = http.NoBody

	h.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrMissingFields.Code, envelope.Error.Code)
}

func TestBookingHandlerDeleteNotFound(t *testing.T) {
	h := NewBookingHandler(&bookingServiceMock{deleteErr: appErrors.Clone(appErrors.ErrNotFound, "")})
	c, w := testContext(t, http.MethodDelete, "/bookings/x", nil)
	c.Params = gin.Params{{Key: "id", Value: "x"}}

	h.Delete(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingHandlerDelete(t *testing.T) {
	h := NewBookingHandler(&bookingServiceMock{})
	c, w := testContext(t, http.MethodDelete, "/bookings/x", nil)
	c.Params = gin.Params{{Key: "id", Value: "x"}}

	h.Delete(c)
	// gin buffers c.Status until WriteHeaderNow, which the engine normally
	// calls after the handler chain; CreateTestContext requires it manually.
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestBookingHandlerPrecheck(t *testing.T) {
	h := NewBookingHandler(&bookingServiceMock{})
	c, w := testContext(t, http.MethodPost, "/bookings/precheck", dto.PrecheckRequest{Teacher: "A", Day: "2024-06-10"})

	h.Precheck(c)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestBookingHandlerList(t *testing.T) {
	h := NewBookingHandler(&bookingServiceMock{bookings: []models.Booking{{ID: "b1"}}})
	c, w := testContext(t, http.MethodGet, "/bookings", nil)

	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Data)
}

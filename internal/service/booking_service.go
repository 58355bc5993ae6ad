package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zad-edu/masadr2040/internal/dto"
	"github.com/zad-edu/masadr2040/internal/models"
	"github.com/zad-edu/masadr2040/internal/quota"
	"github.com/zad-edu/masadr2040/internal/store"
	appErrors "github.com/zad-edu/masadr2040/pkg/errors"
)

// BookingService implements the booking workflow: validation, roster and week
// checks, slot exclusivity and quota admission, in that order. The first
// failed check wins; nothing is mutated on rejection.
type BookingService struct {
	bookings  *store.BookingStore
	roster    models.Roster
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewBookingService constructs a BookingService.
func NewBookingService(bookings *store.BookingStore, roster models.Roster, validate *validator.Validate, logger *zap.Logger) *BookingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		bookings:  bookings,
		roster:    roster,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Roster returns the reference data the booking form draws from.
func (s *BookingService) Roster() models.Roster {
	return s.roster
}

// List returns all bookings in document order.
func (s *BookingService) List() []models.Booking {
	return s.bookings.List()
}

// Get returns the booking with the given id.
func (s *BookingService) Get(id string) (*models.Booking, error) {
	b, ok := s.bookings.FindByID(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
	}
	return &b, nil
}

// Weeks returns the two selectable booking weeks derived from today.
func (s *BookingService) Weeks() []models.Week {
	return models.WeekOptions(s.now())
}

// Grid resolves the timetable grid for the labelled week: one SlotView per
// (day, period) cell.
func (s *BookingService) Grid(label string) ([]models.SlotView, error) {
	week, ok := s.weekByLabel(label)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("unknown week %q", label))
	}

	cells := make([]models.SlotView, 0, len(week.Dates)*models.PeriodsPerDay)
	for _, day := range week.Dates {
		for period := 1; period <= models.PeriodsPerDay; period++ {
			view := models.SlotView{Slot: models.Slot{Day: day, Period: period}}
			if b, ok := s.bookings.FindBySlot(day, period); ok {
				view.Occupied = true
				view.Booking = &b
			}
			cells = append(cells, view)
		}
	}
	return cells, nil
}

// Create admits and stores a new booking.
func (s *BookingService) Create(ctx context.Context, req dto.BookingRequest) (*models.Booking, error) {
	if err := s.admit(req, ""); err != nil {
		return nil, err
	}

	booking := models.Booking{
		ID:      uuid.NewString(),
		Day:     req.Day,
		Period:  req.Period,
		Teacher: req.Teacher,
		Subject: req.Subject,
		Lesson:  req.Lesson,
		Grade:   req.Grade,
		Class:   req.Class,
	}
	s.bookings.Upsert(booking)

	s.logger.Info("booking created",
		zap.String("id", booking.ID),
		zap.String("teacher", booking.Teacher),
		zap.String("day", booking.Day),
		zap.Int("period", booking.Period),
	)
	return &booking, nil
}

// Update replaces an existing booking after re-admitting the new values. The
// booking under edit is excluded from the slot and quota checks, so moving it
// within its own counts never trips them.
func (s *BookingService) Update(ctx context.Context, id string, req dto.BookingRequest) (*models.Booking, error) {
	if _, ok := s.bookings.FindByID(id); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
	}
	if err := s.admit(req, id); err != nil {
		return nil, err
	}

	booking := models.Booking{
		ID:      id,
		Day:     req.Day,
		Period:  req.Period,
		Teacher: req.Teacher,
		Subject: req.Subject,
		Lesson:  req.Lesson,
		Grade:   req.Grade,
		Class:   req.Class,
	}
	s.bookings.Upsert(booking)

	s.logger.Info("booking updated", zap.String("id", id))
	return &booking, nil
}

// Delete removes a booking.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	if !s.bookings.Remove(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "booking not found")
	}
	s.logger.Info("booking deleted", zap.String("id", id))
	return nil
}

// Precheck reports quota headroom for a candidate without mutating anything,
// so the form can warn before submission.
func (s *BookingService) Precheck(ctx context.Context, req dto.PrecheckRequest) (*dto.PrecheckResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrMissingFields.Code, appErrors.ErrMissingFields.Status, appErrors.ErrMissingFields.Message)
	}

	week, ok := s.weekForDay(req.Day)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrWeekUnavailable, "day falls outside the selectable weeks")
	}

	candidate := quota.Candidate{Teacher: req.Teacher, Day: req.Day, WeekDates: week.Dates}
	snapshot := s.bookings.List()

	resp := &dto.PrecheckResponse{
		WeeklyCount: quota.WeeklyCount(snapshot, candidate),
		WeeklyLimit: quota.WeeklyLimit,
		DailyCount:  quota.DailyCount(snapshot, candidate),
		DailyLimit:  quota.DailyLimit,
	}
	switch quota.Evaluate(snapshot, candidate) {
	case quota.WeeklyExceeded:
		resp.Reason = appErrors.ErrWeeklyLimit.Code
	case quota.DailyExceeded:
		resp.Reason = appErrors.ErrDailyLimit.Code
	default:
		resp.Allowed = true
	}
	return resp, nil
}

// admit runs the full admission chain for a candidate payload. excludeID is
// the booking under edit, empty on the create path.
func (s *BookingService) admit(req dto.BookingRequest, excludeID string) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrMissingFields.Code, appErrors.ErrMissingFields.Status, appErrors.ErrMissingFields.Message)
	}

	if !s.roster.HasTeacher(req.Teacher) {
		return appErrors.Clone(appErrors.ErrUnknownTeacher, fmt.Sprintf("teacher %q is not on the roster", req.Teacher))
	}

	week, ok := s.weekForDay(req.Day)
	if !ok {
		return appErrors.Clone(appErrors.ErrWeekUnavailable, "day falls outside the selectable weeks")
	}
	if !week.Available {
		return appErrors.Clone(appErrors.ErrWeekUnavailable, "next week opens for booking on Wednesday")
	}

	if occupant, ok := s.bookings.FindBySlot(req.Day, req.Period); ok && occupant.ID != excludeID {
		return appErrors.Clone(appErrors.ErrSlotTaken, fmt.Sprintf("slot is already booked by %s", occupant.Teacher))
	}

	candidate := quota.Candidate{
		Teacher:   req.Teacher,
		Day:       req.Day,
		WeekDates: week.Dates,
		ExcludeID: excludeID,
	}
	switch quota.Evaluate(s.bookings.List(), candidate) {
	case quota.WeeklyExceeded:
		return appErrors.Clone(appErrors.ErrWeeklyLimit, "")
	case quota.DailyExceeded:
		return appErrors.Clone(appErrors.ErrDailyLimit, "")
	}
	return nil
}

func (s *BookingService) weekByLabel(label string) (models.Week, bool) {
	for _, w := range s.Weeks() {
		if w.Label == label {
			return w, true
		}
	}
	return models.Week{}, false
}

func (s *BookingService) weekForDay(day string) (models.Week, bool) {
	for _, w := range s.Weeks() {
		if w.Contains(day) {
			return w, true
		}
	}
	return models.Week{}, false
}

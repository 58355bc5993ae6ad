// Package store holds the in-memory booking collection, the single source of
// truth the handlers and the sync loop both read.
package store

import (
	"sync"

	"github.com/zad-edu/masadr2040/internal/models"
)

// Listener is notified after every mutation with a snapshot of the new
// collection. The store calls it synchronously while still holding its lock,
// so a listener observes mutations in order and must not call back into the
// store.
type Listener func(snapshot []models.Booking)

// BookingStore is an ordered collection of bookings. Order is preserved on
// edits; new records append at the end. The store performs no dedup beyond id
// equality: slot exclusivity is a workflow-level guarantee.
type BookingStore struct {
	mu        sync.RWMutex
	bookings  []models.Booking
	listeners []Listener
}

// New returns an empty store.
func New() *BookingStore {
	return &BookingStore{}
}

// Subscribe registers a mutation listener. Listeners are invoked in
// registration order.
func (s *BookingStore) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// List returns a snapshot copy of the collection.
func (s *BookingStore) List() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.bookings)
}

// Len returns the number of bookings.
func (s *BookingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bookings)
}

// Upsert replaces the record with a matching id in place, or appends the
// booking when the id is new.
func (s *BookingStore) Upsert(b models.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i := range s.bookings {
		if s.bookings[i].ID == b.ID {
			s.bookings[i] = b
			replaced = true
			break
		}
	}
	if !replaced {
		s.bookings = append(s.bookings, b)
	}
	s.notify()
}

// Remove deletes the booking with the given id. Removing an unknown id is a
// no-op and triggers no notification.
func (s *BookingStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.bookings {
		if s.bookings[i].ID == id {
			s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
			s.notify()
			return true
		}
	}
	return false
}

// FindBySlot returns the booking occupying the (day, period) coordinate.
func (s *BookingStore) FindBySlot(day string, period int) (models.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if b.Day == day && b.Period == period {
			return b, true
		}
	}
	return models.Booking{}, false
}

// FindByID returns the booking with the given id.
func (s *BookingStore) FindByID(id string) (models.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if b.ID == id {
			return b, true
		}
	}
	return models.Booking{}, false
}

// Replace swaps the whole collection, used when the remote document wins a
// poll. Listeners are notified.
func (s *BookingStore) Replace(bookings []models.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = snapshot(bookings)
	s.notify()
}

// Load seeds the collection without notifying listeners; used once at startup
// so the initial local load does not schedule a remote push.
func (s *BookingStore) Load(bookings []models.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = snapshot(bookings)
}

// Equal reports whether the collection matches the other by value, in order.
func (s *BookingStore) Equal(other []models.Booking) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.bookings) != len(other) {
		return false
	}
	for i := range s.bookings {
		if s.bookings[i] != other[i] {
			return false
		}
	}
	return true
}

func (s *BookingStore) notify() {
	snap := snapshot(s.bookings)
	for _, l := range s.listeners {
		l(snap)
	}
}

func snapshot(bookings []models.Booking) []models.Booking {
	out := make([]models.Booking, len(bookings))
	copy(out, bookings)
	return out
}

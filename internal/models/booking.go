package models

// PeriodsPerDay is the number of timetable periods in a school day.
const PeriodsPerDay = 7

// DayFormat is the calendar-date layout used throughout the booking document.
const DayFormat = "2006-01-02"

// Booking is one reserved timetable slot. The JSON field names follow the
// persisted document format, so a locally saved collection and a remotely
// synced one are byte-compatible.
type Booking struct {
	ID      string `json:"id"`
	Day     string `json:"day"` // YYYY-MM-DD
	Period  int    `json:"period"`
	Teacher string `json:"teacher"`
	Subject string `json:"subject"`
	Lesson  string `json:"lesson"`
	Grade   string `json:"grade"`
	Class   string `json:"class"`
}

// Slot is a (day, period) coordinate in the timetable grid.
type Slot struct {
	Day    string `json:"day"`
	Period int    `json:"period"`
}

// Slot returns the coordinate occupied by the booking.
func (b Booking) Slot() Slot {
	return Slot{Day: b.Day, Period: b.Period}
}

// SlotView is what a grid cell resolves to: an empty slot ready for a new
// booking, or the booking occupying it.
type SlotView struct {
	Slot     Slot     `json:"slot"`
	Occupied bool     `json:"occupied"`
	Booking  *Booking `json:"booking,omitempty"`
}

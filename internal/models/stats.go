package models

// CountEntry pairs a label with its booking count. Slices of entries are
// always sorted by count descending.
type CountEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// BookingStats aggregates the collection for the statistics view.
type BookingStats struct {
	TotalBookings int          `json:"total_bookings"`
	BySubject     []CountEntry `json:"by_subject"`
	ByTeacher     []CountEntry `json:"by_teacher"`
}

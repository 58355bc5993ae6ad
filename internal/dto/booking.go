// Package dto defines the request and response payloads of the HTTP API.
package dto

// BookingRequest is the payload for creating or replacing a booking. Every
// field is required; the booking form submits them all.
type BookingRequest struct {
	Day     string `json:"day" validate:"required"`
	Period  int    `json:"period" validate:"required,min=1,max=7"`
	Teacher string `json:"teacher" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Lesson  string `json:"lesson" validate:"required"`
	Grade   string `json:"grade" validate:"required"`
	Class   string `json:"class" validate:"required"`
}

// PrecheckRequest asks whether a teacher could still book on a given day.
type PrecheckRequest struct {
	Teacher string `json:"teacher" validate:"required"`
	Day     string `json:"day" validate:"required"`
}

// PrecheckResponse reports the quota headroom for the candidate without
// mutating anything.
type PrecheckResponse struct {
	Allowed     bool   `json:"allowed"`
	Reason      string `json:"reason,omitempty"`
	WeeklyCount int    `json:"weekly_count"`
	WeeklyLimit int    `json:"weekly_limit"`
	DailyCount  int    `json:"daily_count"`
	DailyLimit  int    `json:"daily_limit"`
}

package dto

import "time"

// UnlockRequest carries the gate password.
type UnlockRequest struct {
	PIN string `json:"pin" validate:"required"`
}

// UnlockResponse returns the short-lived gate token. Protected actions stop
// asking for the password until it expires.
type UnlockResponse struct {
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expires_in"`
	IssuedAt  time.Time `json:"issued_at"`
}

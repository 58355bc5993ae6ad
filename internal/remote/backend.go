// Package remote pushes and pulls the whole booking document against a
// hosted JSON document endpoint. Two provider strategies share one contract;
// the orchestrator never knows which one is configured.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/zad-edu/masadr2040/internal/models"
	"github.com/zad-edu/masadr2040/pkg/config"
	appErrors "github.com/zad-edu/masadr2040/pkg/errors"
)

// Backend is a remote document endpoint. Push replaces the whole document;
// Pull fetches it. Neither ever patches individual records.
type Backend interface {
	Name() string
	Configured() bool
	SupportsAutoCreate() bool
	Push(ctx context.Context, bookings []models.Booking) error
	Pull(ctx context.Context) ([]models.Booking, error)
}

// NewBackend selects the provider strategy from configuration.
func NewBackend(cfg config.RemoteConfig) (Backend, error) {
	switch cfg.Provider {
	case "jsonbin":
		return NewJSONBin(cfg), nil
	case "npoint", "":
		return NewNpoint(cfg), nil
	default:
		return nil, fmt.Errorf("unknown remote provider %q", cfg.Provider)
	}
}

// classifyStatus translates a non-2xx response into a typed error. Auth and
// not-found responses point at configuration; payload rejections and the rest
// are generic remote failures.
func classifyStatus(status int, op string) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return appErrors.Clone(appErrors.ErrRemoteAuth, fmt.Sprintf("remote %s rejected: check the access key", op))
	case status == http.StatusNotFound:
		return appErrors.Clone(appErrors.ErrRemoteNotFound, fmt.Sprintf("remote %s failed: document not found", op))
	case status == http.StatusBadRequest || status == http.StatusRequestEntityTooLarge || status == http.StatusUnprocessableEntity:
		return appErrors.Clone(appErrors.ErrRemoteRejected, fmt.Sprintf("remote %s failed: payload rejected (%d)", op, status))
	default:
		return appErrors.Clone(appErrors.ErrRemoteFailed, fmt.Sprintf("remote %s failed with status %d", op, status))
	}
}

// transportError marks a request that produced no HTTP response at all,
// distinct from an application-level error response.
func transportError(err error, op string) error {
	return appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status,
		fmt.Sprintf("remote %s transport failure", op))
}

// decodeCollection accepts either a raw JSON array or an envelope whose
// "record" field is the array. Any other shape is a shape error, never
// silently accepted.
func decodeCollection(body []byte) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := json.Unmarshal(body, &bookings); err == nil {
		if bookings == nil {
			bookings = []models.Booking{}
		}
		return bookings, nil
	}

	var envelope struct {
		Record json.RawMessage `json:"record"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Record) > 0 {
		if err := json.Unmarshal(envelope.Record, &bookings); err == nil {
			if bookings == nil {
				bookings = []models.Booking{}
			}
			return bookings, nil
		}
	}

	return nil, appErrors.Clone(appErrors.ErrRemoteShape, "")
}

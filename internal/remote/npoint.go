package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/zad-edu/masadr2040/internal/models"
	"github.com/zad-edu/masadr2040/pkg/config"
	appErrors "github.com/zad-edu/masadr2040/pkg/errors"
)

const npointDefaultBaseURL = "https://api.npoint.io"

// Npoint talks to an npoint.io document. The service has no authentication
// and cannot create documents through the API, so a missing document is a
// configuration problem the user must fix on the website.
type Npoint struct {
	baseURL string
	docID   string
	client  *http.Client
}

// NewNpoint builds the npoint strategy from configuration.
func NewNpoint(cfg config.RemoteConfig) *Npoint {
	base := cfg.BaseURL
	if base == "" {
		base = npointDefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Npoint{
		baseURL: base,
		docID:   cfg.DocID,
		client:  &http.Client{Timeout: timeout},
	}
}

func (n *Npoint) Name() string { return "npoint" }

// Configured rejects placeholder ids so a template .env never produces
// network calls.
func (n *Npoint) Configured() bool {
	return n.docID != "" && !config.IsPlaceholder(n.docID)
}

func (n *Npoint) SupportsAutoCreate() bool { return false }

// Push replaces the whole document with the collection.
func (n *Npoint) Push(ctx context.Context, bookings []models.Booking) error {
	if !n.Configured() {
		return appErrors.Clone(appErrors.ErrNotConfigured, "")
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	body, err := json.Marshal(bookings)
	if err != nil {
		return fmt.Errorf("encode booking document: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.docURL(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return transportError(err, "push")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyStatus(resp.StatusCode, "push")
	}
	return nil
}

// Pull fetches the latest document.
func (n *Npoint) Pull(ctx context.Context) ([]models.Booking, error) {
	if !n.Configured() {
		return nil, appErrors.Clone(appErrors.ErrNotConfigured, "")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.docURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("build pull request: %w", err)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, transportError(err, "pull")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyStatus(resp.StatusCode, "pull")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err, "pull")
	}
	return decodeCollection(body)
}

func (n *Npoint) docURL() string {
	return fmt.Sprintf("%s/%s", n.baseURL, n.docID)
}

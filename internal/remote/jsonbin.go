package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/zad-edu/masadr2040/internal/models"
	"github.com/zad-edu/masadr2040/pkg/config"
	appErrors "github.com/zad-edu/masadr2040/pkg/errors"
)

const jsonbinDefaultBaseURL = "https://api.jsonbin.io/v3"

// JSONBin talks to a jsonbin.io bin. Reads come back wrapped in an envelope
// whose "record" field holds the array; authentication is a static master
// key header; a missing bin can be recreated through the API.
type JSONBin struct {
	baseURL   string
	accessKey string
	client    *http.Client

	// A bin cannot be recreated under a deleted id, so bootstrapping makes
	// a fresh bin and adopts its generated id for the rest of the session.
	mu    sync.Mutex
	docID string
}

// NewJSONBin builds the jsonbin strategy from configuration.
func NewJSONBin(cfg config.RemoteConfig) *JSONBin {
	base := cfg.BaseURL
	if base == "" {
		base = jsonbinDefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &JSONBin{
		baseURL:   base,
		docID:     cfg.DocID,
		accessKey: cfg.AccessKey,
		client:    &http.Client{Timeout: timeout},
	}
}

func (j *JSONBin) Name() string { return "jsonbin" }

// Configured rejects placeholder credentials so a template .env never
// produces network calls.
func (j *JSONBin) Configured() bool {
	docID := j.documentID()
	if docID == "" || config.IsPlaceholder(docID) {
		return false
	}
	return j.accessKey != "" && !config.IsPlaceholder(j.accessKey)
}

func (j *JSONBin) SupportsAutoCreate() bool { return true }

// Push replaces the bin contents with the collection. A missing bin is
// created instead: jsonbin answers 404 to a PUT on a nonexistent bin.
func (j *JSONBin) Push(ctx context.Context, bookings []models.Booking) error {
	if !j.Configured() {
		return appErrors.Clone(appErrors.ErrNotConfigured, "")
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	body, err := json.Marshal(bookings)
	if err != nil {
		return fmt.Errorf("encode booking document: %w", err)
	}

	url := fmt.Sprintf("%s/b/%s", j.baseURL, j.documentID())
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	j.setHeaders(req)

	resp, err := j.client.Do(req)
	if err != nil {
		return transportError(err, "push")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusNotFound {
		return j.create(ctx, body)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyStatus(resp.StatusCode, "push")
	}
	return nil
}

// create makes a new bin holding the collection and adopts its generated id.
func (j *JSONBin) create(ctx context.Context, body []byte) error {
	url := fmt.Sprintf("%s/b", j.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build create request: %w", err)
	}
	j.setHeaders(req)
	req.Header.Set("X-Bin-Name", "lrc-bookings")

	resp, err := j.client.Do(req)
	if err != nil {
		return transportError(err, "create")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyStatus(resp.StatusCode, "create")
	}

	var created struct {
		Metadata struct {
			ID string `json:"id"`
		} `json:"metadata"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil || created.Metadata.ID == "" {
		return appErrors.Clone(appErrors.ErrRemoteShape, "create response has an unexpected shape")
	}
	j.adoptDocumentID(created.Metadata.ID)
	return nil
}

// Pull fetches the latest bin revision. A 404 propagates as a not-found
// error; the orchestrator decides whether to bootstrap.
func (j *JSONBin) Pull(ctx context.Context) ([]models.Booking, error) {
	if !j.Configured() {
		return nil, appErrors.Clone(appErrors.ErrNotConfigured, "")
	}

	url := fmt.Sprintf("%s/b/%s/latest", j.baseURL, j.documentID())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build pull request: %w", err)
	}
	j.setHeaders(req)

	resp, err := j.client.Do(req)
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

func (j *JSONBin) documentID() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.docID
}

func (j *JSONBin) adoptDocumentID(id string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.docID = id
}

func (j *JSONBin) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Master-Key", j.accessKey)
}

package service

import (
	"context"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/zad-edu/masadr2040/internal/dto"
	"github.com/zad-edu/masadr2040/internal/models"
	"github.com/zad-edu/masadr2040/internal/remote"
	"github.com/zad-edu/masadr2040/pkg/config"
	appErrors "github.com/zad-edu/masadr2040/pkg/errors"
)

// SyncController is the slice of the orchestrator the API surface needs.
type SyncController interface {
	State() models.SyncState
	SetBackend(remote.Backend)
	PollNow(ctx context.Context)
	PushNow(ctx context.Context)
}

// SyncService exposes the reconciliation loop to the API: status, forced
// refresh, and runtime endpoint reconfiguration.
type SyncService struct {
	orch      SyncController
	validator *validator.Validate
	logger    *zap.Logger

	mu      sync.Mutex
	current config.RemoteConfig
}

// NewSyncService constructs a SyncService. base carries the startup remote
// configuration; runtime updates derive from it, keeping the probe URL and
// timeout.
func NewSyncService(orch SyncController, base config.RemoteConfig, validate *validator.Validate, logger *zap.Logger) *SyncService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{orch: orch, current: base, validator: validate, logger: logger}
}

// Status returns the current sync state snapshot.
func (s *SyncService) Status() models.SyncState {
	return s.orch.State()
}

// Config reports the active remote endpoint with the access key masked; the
// key itself is write-only.
func (s *SyncService) Config() dto.SyncConfigResponse {
	s.mu.Lock()
	cfg := s.current
	s.mu.Unlock()

	return dto.SyncConfigResponse{
		Provider:  s.orch.State().Provider,
		DocID:     cfg.DocID,
		AccessKey: maskKey(cfg.AccessKey),
		BaseURL:   cfg.BaseURL,
	}
}

// Refresh forces an immediate pull and returns the resulting state.
func (s *SyncService) Refresh(ctx context.Context) models.SyncState {
	s.orch.PollNow(ctx)
	return s.orch.State()
}

// Configure points the loop at a different remote document. The new endpoint
// is pulled immediately so the caller sees whether it works.
func (s *SyncService) Configure(ctx context.Context, req dto.SyncConfigRequest) (models.SyncState, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.SyncState{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid sync configuration")
	}

	s.mu.Lock()
	cfg := s.current
	s.mu.Unlock()
	cfg.Provider = req.Provider
	cfg.DocID = req.DocID
	cfg.AccessKey = req.AccessKey
	if req.BaseURL != "" {
		cfg.BaseURL = req.BaseURL
	}

	backend, err := remote.NewBackend(cfg)
	if err != nil {
		return models.SyncState{}, err
	}

	s.orch.SetBackend(backend)
	s.mu.Lock()
	s.current = cfg
	s.mu.Unlock()
	s.logger.Info("remote endpoint reconfigured", zap.String("provider", req.Provider))

	s.orch.PollNow(ctx)
	return s.orch.State(), nil
}

// maskKey hides all but the last four characters so the UI can show which
// key is active without ever returning it.
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

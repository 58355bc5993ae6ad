package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zad-edu/masadr2040/internal/dto"
	"github.com/zad-edu/masadr2040/internal/models"
	"github.com/zad-edu/masadr2040/internal/remote"
	"github.com/zad-edu/masadr2040/pkg/config"
	appErrors "github.com/zad-edu/masadr2040/pkg/errors"
)

type syncControllerStub struct {
	state   models.SyncState
	backend remote.Backend
	polls   int
	pushes  int
}

func (s *syncControllerStub) State() models.SyncState     { return s.state }
func (s *syncControllerStub) SetBackend(b remote.Backend) { s.backend = b }
func (s *syncControllerStub) PollNow(context.Context)     { s.polls++ }
func (s *syncControllerStub) PushNow(context.Context)     { s.pushes++ }

func TestSyncConfigureSwapsBackendAndPolls(t *testing.T) {
	orch := &syncControllerStub{state: models.SyncState{Status: models.SyncSynced}}
	svc := NewSyncService(orch, config.RemoteConfig{ProbeURL: "https://example.test"}, validator.New(), nil)

	_, err := svc.Configure(context.Background(), dto.SyncConfigRequest{
		Provider:  "jsonbin",
		DocID:     "bin42",
		AccessKey: "master",
	})
	require.NoError(t, err)
	require.NotNil(t, orch.backend)
	assert.Equal(t, "jsonbin", orch.backend.Name())
	assert.True(t, orch.backend.Configured())
	assert.Equal(t, 1, orch.polls)
}

func TestSyncConfigureRejectsUnknownProvider(t *testing.T) {
	orch := &syncControllerStub{}
	svc := NewSyncService(orch, config.RemoteConfig{}, validator.New(), nil)

	_, err := svc.Configure(context.Background(), dto.SyncConfigRequest{Provider: "gist", DocID: "x"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Nil(t, orch.backend)
}

func TestSyncConfigureRequiresDocID(t *testing.T) {
	orch := &syncControllerStub{}
	svc := NewSyncService(orch, config.RemoteConfig{}, validator.New(), nil)

	_, err := svc.Configure(context.Background(), dto.SyncConfigRequest{Provider: "npoint"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSyncConfigMasksAccessKey(t *testing.T) {
	orch := &syncControllerStub{state: models.SyncState{Provider: "jsonbin"}}
	svc := NewSyncService(orch, config.RemoteConfig{
		Provider:  "jsonbin",
		DocID:     "bin42",
		AccessKey: "supersecretkey",
	}, validator.New(), nil)

	cfg := svc.Config()
	assert.Equal(t, "jsonbin", cfg.Provider)
	assert.Equal(t, "bin42", cfg.DocID)
	assert.Equal(t, "**********tkey", cfg.AccessKey)
	assert.NotContains(t, cfg.AccessKey, "supersecret")
}

func TestSyncConfigReflectsReconfiguration(t *testing.T) {
	orch := &syncControllerStub{state: models.SyncState{Provider: "npoint"}}
	svc := NewSyncService(orch, config.RemoteConfig{Provider: "npoint", DocID: "old-doc"}, validator.New(), nil)

	_, err := svc.Configure(context.Background(), dto.SyncConfigRequest{
		Provider:  "jsonbin",
		DocID:     "bin42",
		AccessKey: "master-key-1",
	})
	require.NoError(t, err)

	cfg := svc.Config()
	assert.Equal(t, "bin42", cfg.DocID)
	assert.Equal(t, "********ey-1", cfg.AccessKey)
}

func TestSyncRefreshPollsAndReturnsState(t *testing.T) {
	orch := &syncControllerStub{state: models.SyncState{Status: models.SyncSynced, Provider: "npoint"}}
	svc := NewSyncService(orch, config.RemoteConfig{}, validator.New(), nil)

	state := svc.Refresh(context.Background())
	assert.Equal(t, models.SyncSynced, state.Status)
	assert.Equal(t, 1, orch.polls)
}

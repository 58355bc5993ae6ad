package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zad-edu/masadr2040/internal/models"
	"github.com/zad-edu/masadr2040/pkg/config"
	appErrors "github.com/zad-edu/masadr2040/pkg/errors"
)

var testBookings = []models.Booking{
	{ID: "b1", Day: "2024-06-10", Period: 2, Teacher: "X", Subject: "Science", Lesson: "Cells", Grade: "7", Class: "7/1"},
}

func npointFor(t *testing.T, handler http.HandlerFunc) (*Npoint, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewNpoint(config.RemoteConfig{
		BaseURL: srv.URL,
		DocID:   "doc123",
		Timeout: 2 * time.Second,
	}), srv
}

func jsonbinFor(t *testing.T, handler http.HandlerFunc) *JSONBin {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewJSONBin(config.RemoteConfig{
		BaseURL:   srv.URL,
		DocID:     "bin123",
		AccessKey: "master-key",
		Timeout:   2 * time.Second,
	})
}

func TestNpointPushSendsWholeDocument(t *testing.T) {
	var gotPath string
	var gotBody []models.Booking
	backend, _ := npointFor(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, backend.Push(context.Background(), testBookings))
	assert.Equal(t, "/doc123", gotPath)
	assert.Equal(t, testBookings, gotBody)
}

func TestNpointPullRawArray(t *testing.T) {
	backend, _ := npointFor(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		_ = json.NewEncoder(w).Encode(testBookings)
	})

	got, err := backend.Pull(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testBookings, got)
}

func TestNpointPullNotFound(t *testing.T) {
	backend, _ := npointFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := backend.Pull(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrRemoteNotFound.Code, appErrors.FromError(err).Code)
	assert.False(t, backend.SupportsAutoCreate())
}

func TestNpointPullShapeError(t *testing.T) {
	backend, _ := npointFor(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected":"object"}`))
	})

	_, err := backend.Pull(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrRemoteShape.Code, appErrors.FromError(err).Code)
}

func TestNpointTransportFailureIsNetworkError(t *testing.T) {
	backend := NewNpoint(config.RemoteConfig{
		BaseURL: "http://127.0.0.1:1", // nothing listens here
		DocID:   "doc123",
		Timeout: 500 * time.Millisecond,
	})

	err := backend.Push(context.Background(), testBookings)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNetwork.Code, appErrors.FromError(err).Code)
}

func TestNpointUnconfiguredNeverCallsNetwork(t *testing.T) {
	backend := NewNpoint(config.RemoteConfig{BaseURL: "http://127.0.0.1:1"})

	err := backend.Push(context.Background(), testBookings)
	assert.Equal(t, appErrors.ErrNotConfigured.Code, appErrors.FromError(err).Code)

	_, err = backend.Pull(context.Background())
	assert.Equal(t, appErrors.ErrNotConfigured.Code, appErrors.FromError(err).Code)
}

func TestJSONBinPullUnwrapsRecordEnvelope(t *testing.T) {
	backend := jsonbinFor(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/b/bin123/latest", r.URL.Path)
		require.Equal(t, "master-key", r.Header.Get("X-Master-Key"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"record": testBookings})
	})

	got, err := backend.Pull(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testBookings, got)
}

func TestJSONBinPushUsesPutWithMasterKey(t *testing.T) {
	var gotMethod, gotKey, gotPath string
	backend := jsonbinFor(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotKey = r.Header.Get("X-Master-Key")
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, backend.Push(context.Background(), testBookings))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "master-key", gotKey)
	assert.Equal(t, "/b/bin123", gotPath)
}

func TestJSONBinAuthFailure(t *testing.T) {
	backend := jsonbinFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	err := backend.Push(context.Background(), testBookings)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrRemoteAuth.Code, appErrors.FromError(err).Code)
}

func TestJSONBinMissingKeyIsUnconfigured(t *testing.T) {
	backend := NewJSONBin(config.RemoteConfig{DocID: "bin123"})
	assert.False(t, backend.Configured())
}

func TestPlaceholderCredentialsAreUnconfigured(t *testing.T) {
	npoint := NewNpoint(config.RemoteConfig{BaseURL: "http://127.0.0.1:1", DocID: "YOUR_DOC_ID"})
	assert.False(t, npoint.Configured())
	err := npoint.Push(context.Background(), testBookings)
	assert.Equal(t, appErrors.ErrNotConfigured.Code, appErrors.FromError(err).Code)

	jsonbin := NewJSONBin(config.RemoteConfig{
		BaseURL:   "http://127.0.0.1:1",
		DocID:     "YOUR_BIN_ID",
		AccessKey: "YOUR_MASTER_KEY",
	})
	assert.False(t, jsonbin.Configured())
	_, err = jsonbin.Pull(context.Background())
	assert.Equal(t, appErrors.ErrNotConfigured.Code, appErrors.FromError(err).Code)
}

func TestJSONBinPushCreatesMissingBin(t *testing.T) {
	var paths []string
	backend := jsonbinFor(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/b/bin123":
			// jsonbin cannot update a bin that no longer exists.
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodPost && r.URL.Path == "/b":
			require.Equal(t, "master-key", r.Header.Get("X-Master-Key"))
			var body []models.Booking
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, testBookings, body)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"metadata": map[string]string{"id": "bin456"},
			})
		case r.Method == http.MethodPut && r.URL.Path == "/b/bin456":
			w.WriteHeader(http.StatusOK)
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	require.NoError(t, backend.Push(context.Background(), testBookings))
	// Later pushes go to the adopted bin, not the dead id.
	require.NoError(t, backend.Push(context.Background(), testBookings))
	assert.Equal(t, []string{"PUT /b/bin123", "POST /b", "PUT /b/bin456"}, paths)
}

func TestJSONBinCreateWithoutIDIsShapeError(t *testing.T) {
	backend := jsonbinFor(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	err := backend.Push(context.Background(), testBookings)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrRemoteShape.Code, appErrors.FromError(err).Code)
}

func TestDecodeCollectionEmptyArray(t *testing.T) {
	got, err := decodeCollection([]byte("[]"))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDecodeCollectionNullIsEmpty(t *testing.T) {
	got, err := decodeCollection([]byte("null"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClassifyStatusPayloadRejected(t *testing.T) {
	err := classifyStatus(http.StatusUnprocessableEntity, "push")
	assert.Equal(t, appErrors.ErrRemoteRejected.Code, appErrors.FromError(err).Code)
}

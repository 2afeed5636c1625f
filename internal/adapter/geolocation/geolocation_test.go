package geolocation

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/weather-lookup/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestStatic_CurrentPosition(t *testing.T) {
	pos, err := NewStatic(48.85, 2.35).CurrentPosition(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Latitude: 48.85, Longitude: 2.35}, pos)
}

func TestStatic_ExpiredContext(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := NewStatic(1, 2).CurrentPosition(ctx)
	require.ErrorIs(t, err, domain.ErrGeolocationTimeout)
}

func TestDisabled_Unsupported(t *testing.T) {
	_, err := Disabled{}.CurrentPosition(context.Background())
	require.ErrorIs(t, err, domain.ErrGeolocationUnsupported)
}

func TestIPLocator_Success(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"ip":"203.0.113.7","city":"Lisbon","latitude":38.7223,"longitude":-9.1393}`)

	pos, err := NewIPLocator(srv.URL, time.Second, discardLogger()).CurrentPosition(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 38.7223, pos.Latitude)
	assert.Equal(t, -9.1393, pos.Longitude)
}

func TestIPLocator_Forbidden(t *testing.T) {
	srv := serve(t, http.StatusForbidden, `{}`)

	_, err := NewIPLocator(srv.URL, time.Second, discardLogger()).CurrentPosition(context.Background())
	require.ErrorIs(t, err, domain.ErrGeolocationPermissionDenied)
}

func TestIPLocator_ServerError(t *testing.T) {
	srv := serve(t, http.StatusTooManyRequests, `{"error":true,"reason":"RateLimited"}`)

	_, err := NewIPLocator(srv.URL, time.Second, discardLogger()).CurrentPosition(context.Background())
	require.ErrorIs(t, err, domain.ErrGeolocationUnavailable)
	assert.Contains(t, err.Error(), "429")
}

func TestIPLocator_ErrorBody(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"error":true,"reason":"Reserved IP Address"}`)

	_, err := NewIPLocator(srv.URL, time.Second, discardLogger()).CurrentPosition(context.Background())
	require.ErrorIs(t, err, domain.ErrGeolocationUnavailable)
}

func TestIPLocator_ContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewIPLocator(srv.URL, 0, discardLogger()).CurrentPosition(ctx)
	require.ErrorIs(t, err, domain.ErrGeolocationTimeout)
}

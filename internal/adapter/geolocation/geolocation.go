// Package geolocation provides domain.Geolocator implementations for a
// terminal client, which has no browser-style position API.
package geolocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/weather-lookup/internal/domain"
)

// DefaultIPLookupURL is a keyless IP geolocation endpoint.
const DefaultIPLookupURL = "https://ipapi.co/json/"

// Static reports a fixed, configured position.
type Static struct {
	coords domain.Coordinates
}

// NewStatic creates a locator that always reports lat/lon.
func NewStatic(lat, lon float64) *Static {
	return &Static{coords: domain.Coordinates{Latitude: lat, Longitude: lon}}
}

func (s *Static) CurrentPosition(ctx context.Context) (domain.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, contextError(err)
	}
	return s.coords, nil
}

// Disabled is used when no position source is configured.
type Disabled struct{}

func (Disabled) CurrentPosition(context.Context) (domain.Coordinates, error) {
	return domain.Coordinates{}, domain.ErrGeolocationUnsupported
}

// IPLocator estimates the position from the caller's public IP address.
type IPLocator struct {
	httpClient *http.Client
	url        string
	logger     *slog.Logger
}

// NewIPLocator creates an IP-based locator. A zero timeout leaves the HTTP
// client without a deadline; callers bound the request through ctx.
func NewIPLocator(url string, timeout time.Duration, logger *slog.Logger) *IPLocator {
	return &IPLocator{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		logger:     logger,
	}
}

func (l *IPLocator) CurrentPosition(ctx context.Context) (domain.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Coordinates{}, contextError(ctxErr)
		}
		return domain.Coordinates{}, fmt.Errorf("%w: %w", domain.ErrGeolocationUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.Coordinates{}, fmt.Errorf("%w: status %d", domain.ErrGeolocationPermissionDenied, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.Coordinates{}, fmt.Errorf("%w: status %d: %s", domain.ErrGeolocationUnavailable, resp.StatusCode, body)
	}

	var body ipResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Coordinates{}, fmt.Errorf("%w: decode response: %w", domain.ErrGeolocationUnavailable, err)
	}
	if body.Error || body.Latitude == nil || body.Longitude == nil {
		l.logger.Debug("ip lookup returned no position", "reason", body.Reason)
		return domain.Coordinates{}, fmt.Errorf("%w: no position in response", domain.ErrGeolocationUnavailable)
	}

	return domain.Coordinates{Latitude: *body.Latitude, Longitude: *body.Longitude}, nil
}

type ipResponse struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Error     bool     `json:"error"`
	Reason    string   `json:"reason"`
}

func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrGeolocationTimeout, err)
	}
	return err
}

package openmeteo

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-lookup/internal/domain"
	"github.com/couchcryptid/weather-lookup/internal/observability"
)

// GeocodingClient implements domain.Geocoder using the Open-Meteo geocoding API.
type GeocodingClient struct {
	httpClient *http.Client
	baseURL    string
	language   string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewGeocodingClient creates a geocoding client. A zero timeout leaves the
// HTTP client without a deadline.
func NewGeocodingClient(baseURL, language string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *GeocodingClient {
	return &GeocodingClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		language:   language,
		metrics:    metrics,
		logger:     logger,
	}
}

// ForwardGeocode returns the top match for a place name.
func (c *GeocodingClient) ForwardGeocode(ctx context.Context, name string) (domain.GeocodingResult, error) {
	params := url.Values{
		"name":     {name},
		"count":    {"1"},
		"language": {c.language},
		"format":   {"json"},
	}
	return c.doRequest(ctx, params, "forward")
}

// ReverseGeocode returns the top match for a coordinate pair.
func (c *GeocodingClient) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.GeocodingResult, error) {
	params := url.Values{
		"latitude":  {strconv.FormatFloat(lat, 'f', -1, 64)},
		"longitude": {strconv.FormatFloat(lon, 'f', -1, 64)},
		"language":  {c.language},
		"format":    {"json"},
	}
	return c.doRequest(ctx, params, "reverse")
}

func (c *GeocodingClient) doRequest(ctx context.Context, params url.Values, method string) (domain.GeocodingResult, error) {
	start := time.Now()
	var resp geocodingResponse
	err := getJSON(ctx, c.httpClient, c.baseURL+"?"+params.Encode(), &resp)
	c.metrics.GeocodeAPIDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())

	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues(method, "error").Inc()
		return domain.GeocodingResult{}, fmt.Errorf("%s geocode request: %w", method, err)
	}

	if len(resp.Results) == 0 {
		c.metrics.GeocodeRequests.WithLabelValues(method, "empty").Inc()
		c.logger.Debug("geocoding returned no results", "method", method)
		return domain.GeocodingResult{}, nil
	}

	c.metrics.GeocodeRequests.WithLabelValues(method, "success").Inc()
	r := resp.Results[0]
	return domain.GeocodingResult{
		Name:      r.Name,
		Admin1:    r.Admin1,
		Country:   r.Country,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}, nil
}

// Open-Meteo geocoding response types.

type geocodingResponse struct {
	Results []geocodingResult `json:"results"`
}

type geocodingResult struct {
	Name      string  `json:"name"`
	Admin1    string  `json:"admin1"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

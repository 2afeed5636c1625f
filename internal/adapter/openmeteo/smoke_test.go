//go:build openmeteo

package openmeteo

import (
	"context"
	"testing"
	"time"

	"github.com/couchcryptid/weather-lookup/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real Open-Meteo APIs.
// Run with: go test -tags=openmeteo ./internal/adapter/openmeteo/ -v -count=1

func TestSmoke_ForwardGeocode(t *testing.T) {
	c := NewGeocodingClient(DefaultGeocodingURL, "en", 10*time.Second, observability.NewMetricsForTesting(), discardLogger())

	result, err := c.ForwardGeocode(context.Background(), "Berlin")
	require.NoError(t, err)

	assert.Equal(t, "Berlin", result.Name)
	assert.InDelta(t, 52.52, result.Latitude, 0.1, "lat should be near Berlin")
	assert.InDelta(t, 13.41, result.Longitude, 0.1, "lon should be near Berlin")
	assert.Equal(t, "Germany", result.Country)
}

func TestSmoke_ForwardGeocode_NoMatch(t *testing.T) {
	c := NewGeocodingClient(DefaultGeocodingURL, "en", 10*time.Second, observability.NewMetricsForTesting(), discardLogger())

	result, err := c.ForwardGeocode(context.Background(), "Xyzzyqwertyville")
	require.NoError(t, err)
	assert.True(t, result.Empty())
}

func TestSmoke_FetchWeather(t *testing.T) {
	c := NewForecastClient(DefaultForecastURL, 10*time.Second, observability.NewMetricsForTesting(), discardLogger())

	snap, err := c.FetchWeather(context.Background(), 52.52, 13.41)
	require.NoError(t, err)

	assert.Equal(t, "Europe/Berlin", snap.Timezone)
	assert.NotEmpty(t, snap.Daily)
	assert.False(t, snap.Current.ObservedAt.IsZero())
	for i := 1; i < len(snap.Daily); i++ {
		assert.True(t, snap.Daily[i].Date.After(snap.Daily[i-1].Date), "daily entries should be chronological")
	}
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://geocoding-api.open-meteo.com/v1/search", cfg.GeocodingURL)
	assert.Equal(t, "https://api.open-meteo.com/v1/forecast", cfg.ForecastURL)
	assert.Equal(t, "en", cfg.GeocodingLanguage)
	assert.Zero(t, cfg.HTTPTimeout)
	assert.Equal(t, ProviderIP, cfg.GeolocationProvider)
	assert.Equal(t, "https://ipapi.co/json/", cfg.GeolocationURL)
	assert.Equal(t, 10*time.Second, cfg.GeolocationTimeout)
	assert.Empty(t, cfg.HTTPAddr)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("GEOCODING_URL", "http://localhost:9001/v1/search")
	t.Setenv("FORECAST_URL", "http://localhost:9002/v1/forecast")
	t.Setenv("GEOCODING_LANGUAGE", "de")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("GEOLOCATION_PROVIDER", "static")
	t.Setenv("DEVICE_LATITUDE", "51.5074")
	t.Setenv("DEVICE_LONGITUDE", "-0.1278")
	t.Setenv("GEOLOCATION_TIMEOUT", "2s")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9001/v1/search", cfg.GeocodingURL)
	assert.Equal(t, "http://localhost:9002/v1/forecast", cfg.ForecastURL)
	assert.Equal(t, "de", cfg.GeocodingLanguage)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, ProviderStatic, cfg.GeolocationProvider)
	assert.Equal(t, 51.5074, cfg.DeviceLatitude)
	assert.Equal(t, -0.1278, cfg.DeviceLongitude)
	assert.Equal(t, 2*time.Second, cfg.GeolocationTimeout)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidDurations(t *testing.T) {
	for _, key := range []string{"HTTP_TIMEOUT", "GEOLOCATION_TIMEOUT"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "-1s")
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_InvalidURL(t *testing.T) {
	t.Setenv("FORECAST_URL", "not a url")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ForecastURL")
}

func TestLoad_UnknownGeolocationProvider(t *testing.T) {
	t.Setenv("GEOLOCATION_PROVIDER", "gps")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GeolocationProvider")
}

func TestLoad_DisabledGeolocation(t *testing.T) {
	t.Setenv("GEOLOCATION_PROVIDER", "none")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderNone, cfg.GeolocationProvider)
}

func TestLoad_StaticProviderRequiresCoordinates(t *testing.T) {
	t.Setenv("GEOLOCATION_PROVIDER", "static")
	t.Setenv("DEVICE_LATITUDE", "10")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEVICE_LONGITUDE")
}

func TestLoad_StaticProviderRejectsOutOfRangeLatitude(t *testing.T) {
	t.Setenv("GEOLOCATION_PROVIDER", "static")
	t.Setenv("DEVICE_LATITUDE", "91")
	t.Setenv("DEVICE_LONGITUDE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DeviceLatitude")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LogLevel")
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/couchcryptid/weather-lookup/internal/adapter/geolocation"
	"github.com/couchcryptid/weather-lookup/internal/adapter/openmeteo"
)

// Geolocation providers.
const (
	ProviderIP     = "ip"
	ProviderStatic = "static"
	ProviderNone   = "none"
)

// Config holds all client settings, populated from environment variables.
type Config struct {
	GeocodingURL      string        `validate:"required,url"`
	ForecastURL       string        `validate:"required,url"`
	GeocodingLanguage string        `validate:"required"`
	HTTPTimeout       time.Duration `validate:"gte=0"` // 0 leaves the client without a deadline

	GeolocationProvider string        `validate:"oneof=ip static none"`
	GeolocationURL      string        `validate:"required,url"`
	DeviceLatitude      float64       `validate:"latitude"`
	DeviceLongitude     float64       `validate:"longitude"`
	GeolocationTimeout  time.Duration `validate:"gte=0"`

	// HTTPAddr serves health and metrics endpoints when non-empty.
	HTTPAddr        string
	LogLevel        string `validate:"oneof=debug info warn error"`
	LogFormat       string `validate:"oneof=json text"`
	ShutdownTimeout time.Duration
}

var validate = validator.New()

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is loaded first if present;
// variables already set in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	httpTimeout, err := parseDuration("HTTP_TIMEOUT", "")
	if err != nil {
		return nil, err
	}
	geoTimeout, err := parseDuration("GEOLOCATION_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		GeocodingURL:        sharedcfg.EnvOrDefault("GEOCODING_URL", openmeteo.DefaultGeocodingURL),
		ForecastURL:         sharedcfg.EnvOrDefault("FORECAST_URL", openmeteo.DefaultForecastURL),
		GeocodingLanguage:   sharedcfg.EnvOrDefault("GEOCODING_LANGUAGE", "en"),
		HTTPTimeout:         httpTimeout,
		GeolocationProvider: sharedcfg.EnvOrDefault("GEOLOCATION_PROVIDER", ProviderIP),
		GeolocationURL:      sharedcfg.EnvOrDefault("GEOLOCATION_URL", geolocation.DefaultIPLookupURL),
		GeolocationTimeout:  geoTimeout,
		HTTPAddr:            os.Getenv("HTTP_ADDR"),
		LogLevel:            sharedcfg.EnvOrDefault("LOG_LEVEL", "warn"),
		LogFormat:           sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		ShutdownTimeout:     shutdownTimeout,
	}

	if cfg.GeolocationProvider == ProviderStatic {
		if cfg.DeviceLatitude, err = parseCoordinate("DEVICE_LATITUDE"); err != nil {
			return nil, err
		}
		if cfg.DeviceLongitude, err = parseCoordinate("DEVICE_LONGITUDE"); err != nil {
			return nil, err
		}
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func parseDuration(key, fallback string) (time.Duration, error) {
	s := sharedcfg.EnvOrDefault(key, fallback)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseCoordinate(key string) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return 0, errors.New(key + " is required when GEOLOCATION_PROVIDER is static")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when a name lookup is attempted with blank input.
	ErrEmptyInput = errors.New("location name is empty")

	// ErrGeocodingFailed wraps transport, status and decode failures of a forward lookup.
	ErrGeocodingFailed = errors.New("geocoding request failed")

	// ErrForecastDecode marks a forecast body that could not be interpreted.
	ErrForecastDecode = errors.New("decode forecast response")

	ErrGeolocationPermissionDenied = errors.New("geolocation permission denied")
	ErrGeolocationUnavailable      = errors.New("geolocation position unavailable")
	ErrGeolocationTimeout          = errors.New("geolocation request timed out")
	ErrGeolocationUnsupported      = errors.New("geolocation not supported")
)

// LocationNotFoundError is returned when geocoding yields zero results.
type LocationNotFoundError struct {
	Name string
}

func (e *LocationNotFoundError) Error() string {
	return fmt.Sprintf("no location found for %q", e.Name)
}

// ForecastStatusError is returned for a non-2xx forecast response.
type ForecastStatusError struct {
	StatusCode int
}

func (e *ForecastStatusError) Error() string {
	return fmt.Sprintf("forecast API error: status %d", e.StatusCode)
}

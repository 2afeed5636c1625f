package domain

import "context"

// GeocodingResult is the top match of a geocoding lookup.
// The zero value means the provider returned no results.
type GeocodingResult struct {
	Name      string
	Admin1    string // first-level administrative region, e.g. state
	Country   string
	Latitude  float64
	Longitude float64
}

// Empty reports whether the lookup produced no match.
func (r GeocodingResult) Empty() bool {
	return r == GeocodingResult{}
}

// Geocoder resolves place names and coordinates.
type Geocoder interface {
	// ForwardGeocode converts a place name to its top match.
	ForwardGeocode(ctx context.Context, name string) (GeocodingResult, error)

	// ReverseGeocode converts coordinates to place details.
	ReverseGeocode(ctx context.Context, lat, lon float64) (GeocodingResult, error)
}

// Forecaster retrieves current conditions and the daily forecast.
type Forecaster interface {
	FetchWeather(ctx context.Context, lat, lon float64) (WeatherSnapshot, error)
}

// Coordinates is a device position.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Geolocator reports the device's current position. Failures should wrap
// one of the ErrGeolocation* sentinels.
type Geolocator interface {
	CurrentPosition(ctx context.Context) (Coordinates, error)
}

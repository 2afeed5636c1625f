package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Resolver turns user input into a Location using a Geocoder.
type Resolver struct {
	geocoder Geocoder
	logger   *slog.Logger
}

// NewResolver creates a Resolver backed by the given geocoder.
func NewResolver(geocoder Geocoder, logger *slog.Logger) *Resolver {
	return &Resolver{geocoder: geocoder, logger: logger}
}

// ResolveByName looks up the top match for a free-text place name.
// Blank input fails with ErrEmptyInput before any request is made.
func (r *Resolver) ResolveByName(ctx context.Context, name string) (Location, error) {
	query := strings.TrimSpace(name)
	if query == "" {
		return Location{}, ErrEmptyInput
	}

	result, err := r.geocoder.ForwardGeocode(ctx, norm.NFC.String(query))
	if err != nil {
		return Location{}, fmt.Errorf("%w: %w", ErrGeocodingFailed, err)
	}
	if result.Empty() {
		return Location{}, &LocationNotFoundError{Name: query}
	}

	return Location{
		Latitude:    result.Latitude,
		Longitude:   result.Longitude,
		DisplayName: DisplayName(result),
	}, nil
}

// ResolveByCoordinates names a coordinate pair. It never fails: when the
// reverse lookup errors or finds nothing, the label falls back to the
// formatted coordinates.
func (r *Resolver) ResolveByCoordinates(ctx context.Context, lat, lon float64) Location {
	loc := Location{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: CoordinateLabel(lat, lon),
	}

	result, err := r.geocoder.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		r.logger.Warn("reverse geocoding failed",
			"lat", lat,
			"lon", lon,
			"error", err,
		)
		return loc
	}
	if result.Empty() {
		r.logger.Debug("reverse geocoding returned no results", "lat", lat, "lon", lon)
		return loc
	}

	loc.DisplayName = DisplayName(result)
	return loc
}

// DisplayName composes "{name}, {admin1}, {country}", omitting empty segments.
func DisplayName(result GeocodingResult) string {
	var b strings.Builder
	b.WriteString(result.Name)
	for _, part := range []string{result.Admin1, result.Country} {
		if part == "" {
			continue
		}
		b.WriteString(", ")
		b.WriteString(part)
	}
	return b.String()
}

// CoordinateLabel formats coordinates as "{lat}°N, {lon}°E". The hemisphere
// suffix is fixed regardless of sign.
func CoordinateLabel(lat, lon float64) string {
	return fmt.Sprintf("%.2f°N, %.2f°E", lat, lon)
}

package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock geocoder ---

type mockGeocoder struct {
	forwardResult GeocodingResult
	forwardErr    error
	reverseResult GeocodingResult
	reverseErr    error
	forwardCalls  int
	reverseCalls  int
	lastQuery     string
}

func (m *mockGeocoder) ForwardGeocode(_ context.Context, name string) (GeocodingResult, error) {
	m.forwardCalls++
	m.lastQuery = name
	return m.forwardResult, m.forwardErr
}

func (m *mockGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (GeocodingResult, error) {
	m.reverseCalls++
	return m.reverseResult, m.reverseErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- tests ---

func TestResolveByName_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		geo := &mockGeocoder{}
		r := NewResolver(geo, discardLogger())

		_, err := r.ResolveByName(context.Background(), input)

		require.ErrorIs(t, err, ErrEmptyInput)
		assert.Equal(t, 0, geo.forwardCalls, "no lookup for %q", input)
	}
}

func TestResolveByName_NotFound(t *testing.T) {
	geo := &mockGeocoder{}
	r := NewResolver(geo, discardLogger())

	_, err := r.ResolveByName(context.Background(), "Nowhereville")

	var notFound *LocationNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Nowhereville", notFound.Name)
	assert.Equal(t, 1, geo.forwardCalls)
}

func TestResolveByName_TrimsQuery(t *testing.T) {
	geo := &mockGeocoder{forwardResult: GeocodingResult{Name: "Oslo", Country: "Norway", Latitude: 59.91, Longitude: 10.75}}
	r := NewResolver(geo, discardLogger())

	loc, err := r.ResolveByName(context.Background(), "  Oslo  ")

	require.NoError(t, err)
	assert.Equal(t, "Oslo", geo.lastQuery)
	assert.Equal(t, "Oslo, Norway", loc.DisplayName)
}

func TestResolveByName_NormalizesToNFC(t *testing.T) {
	geo := &mockGeocoder{forwardResult: GeocodingResult{Name: "Zürich"}}
	r := NewResolver(geo, discardLogger())

	// "u" followed by U+0308 COMBINING DIAERESIS.
	_, err := r.ResolveByName(context.Background(), "Zu\u0308rich")

	require.NoError(t, err)
	assert.Equal(t, "Z\u00fcrich", geo.lastQuery)
}

func TestResolveByName_FullDisplayName(t *testing.T) {
	geo := &mockGeocoder{
		forwardResult: GeocodingResult{
			Name:      "Paris",
			Admin1:    "Île-de-France",
			Country:   "France",
			Latitude:  48.85341,
			Longitude: 2.3488,
		},
	}
	r := NewResolver(geo, discardLogger())

	loc, err := r.ResolveByName(context.Background(), "Paris")

	require.NoError(t, err)
	assert.Equal(t, "Paris, Île-de-France, France", loc.DisplayName)
	assert.Equal(t, 48.85341, loc.Latitude)
	assert.Equal(t, 2.3488, loc.Longitude)
}

func TestResolveByName_NetworkFailure(t *testing.T) {
	cause := errors.New("connection refused")
	geo := &mockGeocoder{forwardErr: cause}
	r := NewResolver(geo, discardLogger())

	_, err := r.ResolveByName(context.Background(), "London")

	require.ErrorIs(t, err, ErrGeocodingFailed)
	assert.ErrorIs(t, err, cause)
}

func TestDisplayName_OmitsEmptySegments(t *testing.T) {
	assert.Equal(t, "X", DisplayName(GeocodingResult{Name: "X"}))
	assert.Equal(t, "London, UK", DisplayName(GeocodingResult{Name: "London", Country: "UK"}))
	assert.Equal(t, "Austin, Texas", DisplayName(GeocodingResult{Name: "Austin", Admin1: "Texas"}))
}

func TestResolveByCoordinates_Success(t *testing.T) {
	geo := &mockGeocoder{
		reverseResult: GeocodingResult{Name: "Austin", Admin1: "Texas", Country: "United States"},
	}
	r := NewResolver(geo, discardLogger())

	loc := r.ResolveByCoordinates(context.Background(), 30.2672, -97.7431)

	assert.Equal(t, "Austin, Texas, United States", loc.DisplayName)
	assert.Equal(t, 30.2672, loc.Latitude)
	assert.Equal(t, -97.7431, loc.Longitude)
	assert.Equal(t, 1, geo.reverseCalls)
}

func TestResolveByCoordinates_NetworkErrorFallsBack(t *testing.T) {
	geo := &mockGeocoder{reverseErr: errors.New("dial tcp: timeout")}
	r := NewResolver(geo, discardLogger())

	loc := r.ResolveByCoordinates(context.Background(), 51.5074, -0.1278)

	assert.Equal(t, "51.51°N, -0.13°E", loc.DisplayName)
	assert.Equal(t, 51.5074, loc.Latitude)
	assert.Equal(t, -0.1278, loc.Longitude)
}

func TestResolveByCoordinates_NoResultsFallsBack(t *testing.T) {
	geo := &mockGeocoder{}
	r := NewResolver(geo, discardLogger())

	loc := r.ResolveByCoordinates(context.Background(), 10, 20)

	assert.Equal(t, "10.00°N, 20.00°E", loc.DisplayName)
}

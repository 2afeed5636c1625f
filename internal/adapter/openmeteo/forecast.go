package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/couchcryptid/weather-lookup/internal/domain"
	"github.com/couchcryptid/weather-lookup/internal/observability"
)

const dailyFields = "weather_code,temperature_2m_max,temperature_2m_min"

// Local wall-clock layouts used by the API when timezone=auto.
var timeLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05", time.RFC3339}

const dateLayout = "2006-01-02"

// ForecastClient implements domain.Forecaster using the Open-Meteo forecast API.
type ForecastClient struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewForecastClient creates a forecast client. A zero timeout leaves the
// HTTP client without a deadline.
func NewForecastClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *ForecastClient {
	return &ForecastClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// FetchWeather retrieves current conditions and the daily forecast.
func (c *ForecastClient) FetchWeather(ctx context.Context, lat, lon float64) (domain.WeatherSnapshot, error) {
	params := url.Values{
		"latitude":        {strconv.FormatFloat(lat, 'f', -1, 64)},
		"longitude":       {strconv.FormatFloat(lon, 'f', -1, 64)},
		"current_weather": {"true"},
		"daily":           {dailyFields},
		"timezone":        {"auto"},
	}

	start := time.Now()
	var resp forecastResponse
	err := getJSON(ctx, c.httpClient, c.baseURL+"?"+params.Encode(), &resp)
	c.metrics.ForecastAPIDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		var se *statusError
		switch {
		case errors.As(err, &se):
			c.metrics.ForecastRequests.WithLabelValues("http_error").Inc()
			c.logger.Debug("forecast API error", "status", se.code, "body", se.body)
			return domain.WeatherSnapshot{}, &domain.ForecastStatusError{StatusCode: se.code}
		case errors.Is(err, errDecode):
			c.metrics.ForecastRequests.WithLabelValues("decode_error").Inc()
			return domain.WeatherSnapshot{}, fmt.Errorf("%w: %w", domain.ErrForecastDecode, err)
		default:
			c.metrics.ForecastRequests.WithLabelValues("error").Inc()
			return domain.WeatherSnapshot{}, fmt.Errorf("forecast request: %w", err)
		}
	}

	snapshot, err := resp.toSnapshot()
	if err != nil {
		c.metrics.ForecastRequests.WithLabelValues("decode_error").Inc()
		return domain.WeatherSnapshot{}, fmt.Errorf("%w: %w", domain.ErrForecastDecode, err)
	}

	c.metrics.ForecastRequests.WithLabelValues("success").Inc()
	return snapshot, nil
}

// Open-Meteo forecast response types.

type forecastResponse struct {
	Latitude            float64              `json:"latitude"`
	Longitude           float64              `json:"longitude"`
	Timezone            string               `json:"timezone"`
	CurrentWeather      *currentWeather      `json:"current_weather"`
	CurrentWeatherUnits *currentWeatherUnits `json:"current_weather_units"`
	Daily               dailyForecast        `json:"daily"`
}

type currentWeather struct {
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	Temperature       float64  `json:"temperature"`
	WeatherCode       *int     `json:"weather_code"`
	LegacyWeatherCode *int     `json:"weathercode"`
	WindSpeed         float64  `json:"windspeed"`
	WindSpeedUnits    string   `json:"windspeed_units"`
	WindDirection     float64  `json:"winddirection"`
	Time              string   `json:"time"`
}

type currentWeatherUnits struct {
	WindSpeed string `json:"windspeed"`
}

type dailyForecast struct {
	Time             []string  `json:"time"`
	WeatherCode      []int     `json:"weather_code"`
	Temperature2mMax []float64 `json:"temperature_2m_max"`
	Temperature2mMin []float64 `json:"temperature_2m_min"`
}

func (r forecastResponse) toSnapshot() (domain.WeatherSnapshot, error) {
	if r.CurrentWeather == nil {
		return domain.WeatherSnapshot{}, errors.New("missing current_weather")
	}
	loc := loadLocation(r.Timezone)
	cw := r.CurrentWeather

	observedAt, err := parseTime(cw.Time, loc)
	if err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("current_weather.time: %w", err)
	}

	current := domain.CurrentConditions{
		Temperature:   cw.Temperature,
		WindSpeed:     cw.WindSpeed,
		WindSpeedUnit: cw.WindSpeedUnits,
		WindDirection: cw.WindDirection,
		ObservedAt:    observedAt,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
	}
	switch {
	case cw.WeatherCode != nil:
		current.WeatherCode = *cw.WeatherCode
	case cw.LegacyWeatherCode != nil:
		current.WeatherCode = *cw.LegacyWeatherCode
	}
	if cw.Latitude != nil {
		current.Latitude = *cw.Latitude
	}
	if cw.Longitude != nil {
		current.Longitude = *cw.Longitude
	}
	if current.WindSpeedUnit == "" && r.CurrentWeatherUnits != nil {
		current.WindSpeedUnit = r.CurrentWeatherUnits.WindSpeed
	}

	daily, err := r.Daily.entries(loc)
	if err != nil {
		return domain.WeatherSnapshot{}, err
	}

	return domain.WeatherSnapshot{
		Timezone: r.Timezone,
		Current:  current,
		Daily:    daily,
	}, nil
}

// entries zips the parallel daily arrays by index, truncated to the shortest.
func (d dailyForecast) entries(loc *time.Location) ([]domain.DailyForecastEntry, error) {
	n := min(len(d.Time), len(d.WeatherCode), len(d.Temperature2mMax), len(d.Temperature2mMin))

	out := make([]domain.DailyForecastEntry, 0, n)
	for i := range n {
		date, err := time.ParseInLocation(dateLayout, d.Time[i], loc)
		if err != nil {
			return nil, fmt.Errorf("daily.time[%d]: %w", i, err)
		}
		out = append(out, domain.DailyForecastEntry{
			Date:        date,
			WeatherCode: d.WeatherCode[i],
			MinTemp:     d.Temperature2mMin[i],
			MaxTemp:     d.Temperature2mMax[i],
		})
	}
	return out, nil
}

func loadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func parseTime(s string, loc *time.Location) (time.Time, error) {
	var firstErr error
	for _, layout := range timeLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

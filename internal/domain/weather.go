package domain

import "time"

// Location is a resolved place: coordinates plus a human-readable label.
type Location struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"display_name"`
}

// CurrentConditions holds the observation reported by the forecast API.
type CurrentConditions struct {
	Temperature   float64   `json:"temperature"`
	WeatherCode   int       `json:"weather_code"`
	WindSpeed     float64   `json:"wind_speed"`
	WindSpeedUnit string    `json:"wind_speed_unit"`
	WindDirection float64   `json:"wind_direction"` // degrees
	ObservedAt    time.Time `json:"observed_at"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
}

// DailyForecastEntry is one calendar day of the forecast.
type DailyForecastEntry struct {
	Date        time.Time `json:"date"`
	WeatherCode int       `json:"weather_code"`
	MinTemp     float64   `json:"min_temp"`
	MaxTemp     float64   `json:"max_temp"`
}

// WeatherSnapshot is the full result of one forecast request.
// Daily entries are in chronological order.
type WeatherSnapshot struct {
	Timezone string               `json:"timezone"`
	Current  CurrentConditions    `json:"current"`
	Daily    []DailyForecastEntry `json:"daily"`
}

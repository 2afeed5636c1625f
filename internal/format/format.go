// Package format turns weather data into display strings. Every function is
// total: it never fails and never performs I/O.
//
// Display locale is fixed to en-US conventions: 12-hour clock with two-digit
// hours, short weekday and month names, whole-degree temperatures.
package format

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-lookup/internal/domain"
)

const (
	dateLayout = "Mon, Jan 2"
	timeLayout = "03:04 PM"
)

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// WindDirectionLabel maps an angle in degrees to one of 16 compass points
// and appends the rounded input angle, e.g. "WSW (250°)". The angle shown is
// not normalized, so 360 renders as "N (360°)".
func WindDirectionLabel(angle float64) string {
	normalized := math.Mod(angle, 360)
	if normalized < 0 {
		normalized += 360
	}
	index := int(round(normalized/22.5)) % len(compassPoints)
	return fmt.Sprintf("%s (%d°)", compassPoints[index], round(angle))
}

// FormatDate renders a day as "Mon, Jan 15".
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatTime renders a time of day as "02:00 PM".
func FormatTime(t time.Time) string {
	return t.Format(timeLayout)
}

// Temperature renders a current temperature, e.g. "15°C".
func Temperature(celsius float64) string {
	return fmt.Sprintf("%d°C", round(celsius))
}

// Degrees renders a whole-degree value without a unit, e.g. "16°".
func Degrees(v float64) string {
	return fmt.Sprintf("%d°", round(v))
}

// WindSpeed renders the speed as reported with its unit, e.g. "11.2 km/h".
func WindSpeed(speed float64, unit string) string {
	s := strconv.FormatFloat(speed, 'f', -1, 64)
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// Coordinates renders a coordinate pair with two decimals.
func Coordinates(lat, lon float64) string {
	return fmt.Sprintf("Latitude: %.2f°, Longitude: %.2f°", lat, lon)
}

// round rounds half up (toward positive infinity), so -2.5 becomes -2.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Report is a fully formatted view of a snapshot.
type Report struct {
	Location      string
	Coordinates   string
	Icon          string
	Temperature   string
	Description   string
	WindSpeed     string
	WindDirection string
	UpdatedAt     string
	Forecast      []DayReport
}

// DayReport is one formatted forecast day.
type DayReport struct {
	Day       string
	Icon      string
	High      string
	Low       string
	Condition string
}

// BuildReport formats a snapshot for display under displayName.
func BuildReport(snap domain.WeatherSnapshot, displayName string) Report {
	cur := snap.Current
	info := WeatherInfo(cur.WeatherCode)

	r := Report{
		Location:      displayName,
		Coordinates:   Coordinates(cur.Latitude, cur.Longitude),
		Icon:          info.Icon,
		Temperature:   Temperature(cur.Temperature),
		Description:   info.Description,
		WindSpeed:     WindSpeed(cur.WindSpeed, cur.WindSpeedUnit),
		WindDirection: WindDirectionLabel(cur.WindDirection),
		UpdatedAt:     FormatTime(cur.ObservedAt),
		Forecast:      make([]DayReport, 0, len(snap.Daily)),
	}
	for _, day := range snap.Daily {
		condition := WeatherInfo(day.WeatherCode)
		r.Forecast = append(r.Forecast, DayReport{
			Day:       FormatDate(day.Date),
			Icon:      condition.Icon,
			High:      Degrees(day.MaxTemp),
			Low:       Degrees(day.MinTemp),
			Condition: condition.Description,
		})
	}
	return r
}

// Package domain models locations and weather data returned by the
// Open-Meteo geocoding and forecast APIs.
//
// # Data Source
//
// Geocoding results come from https://geocoding-api.open-meteo.com/v1/search,
// forecasts from https://api.open-meteo.com/v1/forecast. Neither requires an
// API key. Only the first geocoding match is used (count=1).
//
// # Open-Meteo Conventions
//
// Weather codes:
//
//	WMO interpretation codes, e.g. 0 = clear sky, 3 = overcast, 95 = thunderstorm.
//	The display mapping lives in the format package; codes without an entry
//	render as "Unknown".
//
// Timestamps:
//
//	Requested with timezone=auto, so the API returns local wall-clock times
//	without an offset: "2024-01-15T14:00" for current conditions and
//	"2024-01-15" for daily entries. The IANA zone is reported separately in
//	the "timezone" field and is used to anchor parsed times.
//
// Daily arrays:
//
//	The daily block is a set of parallel arrays (time, weather_code,
//	temperature_2m_max, temperature_2m_min) indexed by day. Entries are zipped
//	by index and truncated to the shortest array.
//
// # Display Names
//
// A resolved location is labelled "{name}, {admin1}, {country}" with empty
// segments omitted. When a coordinate lookup cannot be named, the label is
// "{lat}°N, {lon}°E" with two decimals and no hemisphere adjustment.
package domain

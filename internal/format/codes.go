package format

// CodeInfo is the display glyph and description for a weather code.
type CodeInfo struct {
	Icon        string
	Description string
}

// unknownCode is returned for codes missing from weatherCodes.
var unknownCode = CodeInfo{Icon: "🌤️", Description: "Unknown"}

// weatherCodes maps WMO weather interpretation codes used by Open-Meteo.
// Read-only after package initialization.
var weatherCodes = map[int]CodeInfo{
	0:  {"☀️", "Clear sky"},
	1:  {"🌤️", "Mainly clear"},
	2:  {"⛅", "Partly cloudy"},
	3:  {"☁️", "Overcast"},
	45: {"🌫️", "Foggy"},
	48: {"🌫️", "Depositing rime fog"},
	51: {"🌧️", "Light drizzle"},
	53: {"🌧️", "Moderate drizzle"},
	55: {"🌧️", "Dense drizzle"},
	61: {"🌧️", "Slight rain"},
	63: {"🌧️", "Moderate rain"},
	65: {"🌧️", "Heavy rain"},
	71: {"❄️", "Slight snow"},
	73: {"❄️", "Moderate snow"},
	75: {"❄️", "Heavy snow"},
	77: {"❄️", "Snow grains"},
	80: {"🌧️", "Slight rain showers"},
	81: {"🌧️", "Moderate rain showers"},
	82: {"🌧️", "Violent rain showers"},
	85: {"❄️", "Slight snow showers"},
	86: {"❄️", "Heavy snow showers"},
	95: {"⛈️", "Thunderstorm"},
	96: {"⛈️", "Thunderstorm with slight hail"},
	99: {"⛈️", "Thunderstorm with heavy hail"},
}

// WeatherInfo returns the icon and description for code, or a generic
// "Unknown" entry when the code is not in the table.
func WeatherInfo(code int) CodeInfo {
	if info, ok := weatherCodes[code]; ok {
		return info
	}
	return unknownCode
}

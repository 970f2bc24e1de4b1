package insight

import "strings"

// DayForecast is one column of the forecast strip.
type DayForecast struct {
	Day       string `json:"day"`
	Temp      int    `json:"temp"`
	Condition string `json:"condition"`
}

// WeatherReport is the mocked weather widget. Temperatures are °C, wind km/h,
// precipitation and humidity percentages.
type WeatherReport struct {
	Location      string        `json:"location"`
	Updated       string        `json:"updated"`
	CurrentTemp   int           `json:"currentTemp"`
	Condition     string        `json:"condition"`
	Precipitation int           `json:"precipitation"`
	Humidity      int           `json:"humidity"`
	WindSpeed     int           `json:"windSpeed"`
	Forecast      []DayForecast `json:"forecast"`
	Advice        string        `json:"advice"`
}

// Weather returns the fixed forecast labelled with location.
func Weather(location string) WeatherReport {
	location = strings.TrimSpace(location)
	if location == "" {
		location = "Your Farm"
	}
	return WeatherReport{
		Location:      location,
		Updated:       "Updated 2h ago",
		CurrentTemp:   28,
		Condition:     "Partly Cloudy",
		Precipitation: 20,
		Humidity:      65,
		WindSpeed:     8,
		Forecast: []DayForecast{
			{Day: "Today", Temp: 28, Condition: "cloudy"},
			{Day: "Tomorrow", Temp: 30, Condition: "sunny"},
			{Day: "Wed", Temp: 27, Condition: "rainy"},
		},
		Advice: "Good conditions for irrigation. Consider delaying pesticide application due to possible rain tomorrow.",
	}
}

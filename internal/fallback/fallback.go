// Package fallback supplies fixed demo records for when live weather data is unavailable.
package fallback

import (
	"strings"

	"github.com/fakhrymubarak/weather-app-api/internal/model"
)

// Notice is shown alongside any demo data.
const Notice = "Using demo data"

// Current returns the demo current conditions for Nairobi.
func Current(unit model.Unit) model.CurrentConditions {
	return model.CurrentConditions{
		Location:    "Nairobi",
		Country:     "Kenya",
		Temperature: unit.Pick(24, 75),
		FeelsLike:   unit.Pick(22, 72),
		Condition:   "Partly Cloudy",
		Description: "Expect partly cloudy skies throughout the day",
		Humidity:    65,
		WindSpeed:   12,
		Pressure:    1013,
		Visibility:  10,
		UVIndex:     8,
		Sunrise:     "6:30 AM",
		Sunset:      "6:45 PM",
		Lat:         -1.2921,
		Lon:         36.8219,
	}
}

func Hourly(unit model.Unit) []model.HourlyPoint {
	return []model.HourlyPoint{
		{Time: "Now", Temp: unit.Pick(24, 75), Icon: model.IconCloudSun, Condition: "Partly Cloudy"},
		{Time: "2 PM", Temp: unit.Pick(26, 79), Icon: model.IconSun, Condition: "Sunny"},
		{Time: "3 PM", Temp: unit.Pick(27, 81), Icon: model.IconSun, Condition: "Sunny"},
		{Time: "4 PM", Temp: unit.Pick(26, 79), Icon: model.IconCloudSun, Condition: "Partly Cloudy"},
		{Time: "5 PM", Temp: unit.Pick(25, 77), Icon: model.IconCloud, Condition: "Cloudy"},
		{Time: "6 PM", Temp: unit.Pick(23, 73), Icon: model.IconCloudMoon, Condition: "Cloudy"},
	}
}

func Daily(unit model.Unit) []model.DailyPoint {
	return []model.DailyPoint{
		{Day: "Mon", High: unit.Pick(27, 81), Low: unit.Pick(18, 64), Icon: model.IconSun, Condition: "Sunny"},
		{Day: "Tue", High: unit.Pick(26, 79), Low: unit.Pick(17, 63), Icon: model.IconCloudSun, Condition: "Partly Cloudy"},
		{Day: "Wed", High: unit.Pick(24, 75), Low: unit.Pick(16, 61), Icon: model.IconCloudRain, Condition: "Rainy"},
		{Day: "Thu", High: unit.Pick(25, 77), Low: unit.Pick(17, 63), Icon: model.IconCloud, Condition: "Cloudy"},
		{Day: "Fri", High: unit.Pick(27, 81), Low: unit.Pick(18, 64), Icon: model.IconSun, Condition: "Sunny"},
	}
}

type popularCity struct {
	name, country string
	lat, lon      float64
	c, f          int
	condition     string
}

var popular = []popularCity{
	{"New York", "United States", 40.7128, -74.006, 18, 64, "Cloudy"},
	{"London", "United Kingdom", 51.5074, -0.1278, 15, 59, "Rainy"},
	{"Tokyo", "Japan", 35.6762, 139.6503, 22, 72, "Sunny"},
	{"Paris", "France", 48.8566, 2.3522, 17, 63, "Partly Cloudy"},
	{"Sydney", "Australia", -33.8688, 151.2093, 25, 77, "Sunny"},
	{"Dubai", "UAE", 25.2048, 55.2708, 35, 95, "Hot"},
	{"Singapore", "Singapore", 1.3521, 103.8198, 28, 82, "Humid"},
	{"Mumbai", "India", 19.076, 72.8777, 30, 86, "Sunny"},
}

// PopularCities returns the demo city list, each with a minimal current snapshot.
func PopularCities(unit model.Unit) []model.CityMatch {
	cities := make([]model.CityMatch, 0, len(popular))
	for _, p := range popular {
		temp := unit.Pick(p.c, p.f)
		cities = append(cities, model.CityMatch{
			Name:    p.name,
			Country: p.country,
			Lat:     p.lat,
			Lon:     p.lon,
			Current: &model.CurrentConditions{
				Location:    p.name,
				Country:     p.country,
				Temperature: temp,
				FeelsLike:   temp,
				Condition:   p.condition,
				Lat:         p.lat,
				Lon:         p.lon,
			},
		})
	}
	return cities
}

// FilterCities keeps cities whose name or country contains query, ignoring case.
// An empty query keeps everything.
func FilterCities(cities []model.CityMatch, query string) []model.CityMatch {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return cities
	}
	var out []model.CityMatch
	for _, c := range cities {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Country), q) {
			out = append(out, c)
		}
	}
	return out
}

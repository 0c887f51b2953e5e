package model

import (
	"math"
	"strings"
)

// Unit selects the temperature scale requested from the provider.
type Unit string

const (
	Celsius    Unit = "C"
	Fahrenheit Unit = "F"
)

// ParseUnit accepts C/F, celsius/fahrenheit and metric/imperial in any case.
// An empty value means Celsius.
func ParseUnit(s string) (Unit, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "c", "celsius", "metric":
		return Celsius, true
	case "f", "fahrenheit", "imperial":
		return Fahrenheit, true
	}
	return "", false
}

// System returns the provider's unit system selector.
func (u Unit) System() string {
	if u == Fahrenheit {
		return "imperial"
	}
	return "metric"
}

// Pick returns c for Celsius and f for Fahrenheit.
func (u Unit) Pick(c, f int) int {
	if u == Fahrenheit {
		return f
	}
	return c
}

// CurrentConditions is a normalized current-weather snapshot.
// UVIndex is 0 when the provider endpoint does not report it.
type CurrentConditions struct {
	Location    string  `json:"location"`
	Country     string  `json:"country"`
	Temperature int     `json:"temperature"`
	FeelsLike   int     `json:"feelsLike"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
	WindSpeed   int     `json:"windSpeed"`
	Pressure    int     `json:"pressure"`
	Visibility  int     `json:"visibility"`
	UVIndex     int     `json:"uvIndex"`
	Sunrise     string  `json:"sunrise"`
	Sunset      string  `json:"sunset"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

type HourlyPoint struct {
	Time      string `json:"time"`
	Temp      int    `json:"temp"`
	Icon      string `json:"icon"`
	Condition string `json:"condition"`
}

type DailyPoint struct {
	Day       string `json:"day"`
	High      int    `json:"high"`
	Low       int    `json:"low"`
	Icon      string `json:"icon"`
	Condition string `json:"condition"`
}

// CityMatch is a geocoding hit, optionally carrying a current snapshot for list display.
type CityMatch struct {
	Name    string             `json:"name"`
	Country string             `json:"country"`
	State   string             `json:"state,omitempty"`
	Lat     float64            `json:"lat"`
	Lon     float64            `json:"lon"`
	Current *CurrentConditions `json:"current,omitempty"`
}

// LocationQuery names a place either by city or by coordinates.
type LocationQuery struct {
	City      string
	Lat       float64
	Lon       float64
	HasCoords bool
}

func ByCity(city string) LocationQuery {
	return LocationQuery{City: city}
}

func ByCoords(lat, lon float64) LocationQuery {
	return LocationQuery{Lat: lat, Lon: lon, HasCoords: true}
}

// Dashboard is everything the home screen renders in one load.
type Dashboard struct {
	Current CurrentConditions `json:"current"`
	Hourly  []HourlyPoint     `json:"hourly"`
	Daily   []DailyPoint      `json:"daily"`
	Demo    bool              `json:"demo"`
	Notice  string            `json:"notice,omitempty"`
}

// Round rounds half up, so -2.5 becomes -2.
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

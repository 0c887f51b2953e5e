package repository

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/fakhrymubarak/weather-app-api/internal/metrics"
	"github.com/fakhrymubarak/weather-app-api/internal/model"
	"go.uber.org/zap"
)

// RoundTripperFunc allows us to easily mock http.Client responses in tests.
type RoundTripperFunc func(*http.Request) *http.Response

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

// failingTransport simulates a network failure.
type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

const nairobiMetricJSON = `{
  "coord": {"lon": 36.8219, "lat": -1.2921},
  "weather": [{"id": 803, "main": "Clouds", "description": "broken clouds", "icon": "04d"}],
  "main": {"temp": 22.47, "feels_like": 22.51, "temp_min": 22.47, "temp_max": 22.47, "pressure": 1019, "humidity": 66},
  "visibility": 10000,
  "wind": {"speed": 4.12, "deg": 90},
  "sys": {"country": "KE", "sunrise": 1728962597, "sunset": 1729006400},
  "name": "Nairobi"
}`

const nairobiImperialJSON = `{
  "coord": {"lon": 36.8219, "lat": -1.2921},
  "weather": [{"id": 803, "main": "Clouds", "description": "broken clouds", "icon": "04d"}],
  "main": {"temp": 72.45, "feels_like": 72.5, "pressure": 1019, "humidity": 66},
  "visibility": 10000,
  "wind": {"speed": 9.22, "deg": 90},
  "sys": {"country": "KE", "sunrise": 1728962597, "sunset": 1729006400},
  "name": "Nairobi"
}`

const geocodingJSON = `[
  {"name": "London", "local_names": {"en": "London"}, "lat": 51.5073219, "lon": -0.1276474, "country": "GB", "state": "England"},
  {"name": "London", "lat": 42.9832406, "lon": -81.243372, "country": "CA", "state": "Ontario"}
]`

// wednesday is 2024-10-16 00:00 UTC.
const wednesday int64 = 1729036800

// forecastJSON builds a 3-hour forecast list starting at start.
func forecastJSON(t *testing.T, start int64, temps []float64, icons []string) string {
	t.Helper()
	var data model.OpenWeatherMapForecast
	for i, temp := range temps {
		item := model.OpenWeatherMapForecastItem{Dt: start + int64(i)*3*3600}
		item.Main.Temp = temp
		icon := "01d"
		if i < len(icons) {
			icon = icons[i]
		}
		item.Weather = []model.OpenWeatherMapCondition{{Main: "Condition-" + icon, Icon: icon}}
		data.List = append(data.List, item)
	}
	b, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func jsonResponse(code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

// newTestRepository wires a repository to a stubbed transport with a fixed zone.
func newTestRepository(transport http.RoundTripper) *weatherRepository {
	return &weatherRepository{
		httpClient: &http.Client{Transport: transport},
		dataURL:    "https://owm.test/data/2.5",
		geoURL:     "https://owm.test/geo/1.0",
		loc:        time.UTC,
		metrics:    metrics.NewCollector("repo_test"),
		logger:     zap.NewNop().Sugar(),
	}
}

package integrationtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/fakhrymubarak/weather-app-api/internal/handler"
	"github.com/fakhrymubarak/weather-app-api/internal/metrics"
	"github.com/fakhrymubarak/weather-app-api/internal/model"
	"github.com/fakhrymubarak/weather-app-api/internal/repository"
	"github.com/fakhrymubarak/weather-app-api/internal/service"
)

// ValidAPIKey is the only key the fake provider accepts.
const ValidAPIKey = "test_api_key"

// forecastStart is 2024-10-16 00:00 UTC, a Wednesday.
const forecastStart int64 = 1729036800

const nairobiWeather = `{
  "coord": {"lon": 36.8219, "lat": -1.2921},
  "weather": [{"id": 802, "main": "Clouds", "description": "scattered clouds", "icon": "03d"}],
  "main": {"temp": 23.6, "feels_like": 23.4, "pressure": 1018, "humidity": 57},
  "visibility": 9000,
  "wind": {"speed": 5, "deg": 60},
  "sys": {"country": "KE", "sunrise": 1728962597, "sunset": 1729006400},
  "name": "Nairobi"
}`

const nairobiGeocoding = `[
  {"name": "Nairobi", "lat": -1.2832533, "lon": 36.8172449, "country": "KE", "state": "Nairobi County"}
]`

// forecastBody returns a 40-entry, 3-hour forecast list. Each day's temperatures run
// from 10+day to 17+day.
func forecastBody() string {
	var data model.OpenWeatherMapForecast
	for i := 0; i < 40; i++ {
		item := model.OpenWeatherMapForecastItem{Dt: forecastStart + int64(i)*3*3600}
		item.Main.Temp = float64(10 + i/8 + i%8)
		item.Weather = []model.OpenWeatherMapCondition{{Main: "Rain", Description: "light rain", Icon: "10d"}}
		data.List = append(data.List, item)
	}
	b, _ := json.Marshal(data)
	return string(b)
}

// newFakeProvider serves the OpenWeatherMap endpoints for Nairobi and rejects any other key.
func newFakeProvider() *httptest.Server {
	mux := http.NewServeMux()
	guard := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("appid") != ValidAPIKey {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"cod": 401, "message": "Invalid API key"}`))
				return
			}
			w.Header().Set("Content-Type", "application/json")
			next(w, r)
		}
	}

	mux.HandleFunc("/data/2.5/weather", guard(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if strings.HasPrefix(q.Get("q"), "Nairobi") || q.Get("lat") != "" {
			_, _ = w.Write([]byte(nairobiWeather))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod": "404", "message": "city not found"}`))
	}))
	mux.HandleFunc("/data/2.5/forecast", guard(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(forecastBody()))
	}))
	mux.HandleFunc("/geo/1.0/direct", guard(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(strings.ToLower(r.URL.Query().Get("q")), "nai") {
			_, _ = w.Write([]byte(nairobiGeocoding))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	return httptest.NewServer(mux)
}

// providerURLs returns the data and geocoding base URLs of a fake provider.
func providerURLs(srv *httptest.Server) (string, string) {
	return fmt.Sprintf("%s/data/2.5", srv.URL), fmt.Sprintf("%s/geo/1.0", srv.URL)
}

// newAPIServer wires the real repository, service and router as main does.
func newAPIServer(collector *metrics.Collector) *httptest.Server {
	weatherRepo := repository.NewWeatherRepository(collector)
	weatherService := service.NewWeatherService(collector, weatherRepo)
	return httptest.NewServer(handler.NewRouter(handler.NewWeatherHandler(weatherService), collector))
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fakhrymubarak/weather-app-api/internal/config"
	"github.com/fakhrymubarak/weather-app-api/internal/metrics"
	"github.com/fakhrymubarak/weather-app-api/internal/model"
	"go.uber.org/zap"
)

// Custom error types
var (
	ErrLocationNotFound  = errors.New("location not found")
	ErrAPIKeyMissing     = errors.New("API key missing")
	ErrExternalAPI       = errors.New("external API error")
	ErrMalformedResponse = errors.New("malformed provider response")
)

const (
	hourlyHorizon = 6
	dailyHorizon  = 5
	searchLimit   = 10

	hourLabel = "3 PM"
	dayLabel  = "Mon"
)

// WeatherRepository defines the interface for weather data access.
// Implementations never return errors: a failed call yields nil or an empty slice.
type WeatherRepository interface {
	GetCurrentByName(ctx context.Context, name string, unit model.Unit) *model.CurrentConditions
	GetCurrentByCoords(ctx context.Context, lat, lon float64, unit model.Unit) *model.CurrentConditions
	GetHourlyForecast(ctx context.Context, lat, lon float64, unit model.Unit) []model.HourlyPoint
	GetDailyForecast(ctx context.Context, lat, lon float64, unit model.Unit) []model.DailyPoint
	SearchPlaces(ctx context.Context, query string) []model.CityMatch
}

// weatherRepository implements WeatherRepository against OpenWeatherMap
type weatherRepository struct {
	httpClient *http.Client
	dataURL    string
	geoURL     string
	loc        *time.Location
	metrics    *metrics.Collector
	logger     *zap.SugaredLogger
}

// NewWeatherRepository creates a new weather repository instance
func NewWeatherRepository(collector *metrics.Collector, httpClient ...*http.Client) WeatherRepository {
	client := &http.Client{Timeout: config.GetProviderTimeout()}
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	return &weatherRepository{
		httpClient: client,
		dataURL:    config.GetOpenWeatherDataURL(),
		geoURL:     config.GetOpenWeatherGeoURL(),
		loc:        config.GetTimezone(),
		metrics:    collector,
		logger:     config.GetLogger(),
	}
}

func (r *weatherRepository) GetCurrentByName(ctx context.Context, name string, unit model.Unit) *model.CurrentConditions {
	params := url.Values{}
	params.Set("q", name)
	return r.getCurrent(ctx, params, unit)
}

func (r *weatherRepository) GetCurrentByCoords(ctx context.Context, lat, lon float64, unit model.Unit) *model.CurrentConditions {
	return r.getCurrent(ctx, coordParams(lat, lon), unit)
}

func (r *weatherRepository) getCurrent(ctx context.Context, params url.Values, unit model.Unit) *model.CurrentConditions {
	params.Set("units", unit.System())

	var data model.OpenWeatherMapResponse
	if err := r.fetch(ctx, "weather", r.dataURL+"/weather", params, &data); err != nil {
		r.logger.Warnw("Current weather unavailable", "query", redact(params), "error", err)
		return nil
	}

	current, err := mapCurrent(&data, unit, r.loc)
	if err != nil {
		r.logger.Warnw("Current weather unavailable", "query", redact(params), "error", err)
		return nil
	}
	r.logger.Debugw("Weather data fetched", "location", current.Location, "country", current.Country)
	return current
}

// GetHourlyForecast returns up to six forecast points in provider order.
func (r *weatherRepository) GetHourlyForecast(ctx context.Context, lat, lon float64, unit model.Unit) []model.HourlyPoint {
	list, err := r.fetchForecast(ctx, lat, lon, unit)
	if err != nil {
		r.logger.Warnw("Hourly forecast unavailable", "lat", lat, "lon", lon, "error", err)
		return nil
	}
	return mapHourly(list, r.loc)
}

// GetDailyForecast returns up to five days reduced from the 3-hour forecast list.
func (r *weatherRepository) GetDailyForecast(ctx context.Context, lat, lon float64, unit model.Unit) []model.DailyPoint {
	list, err := r.fetchForecast(ctx, lat, lon, unit)
	if err != nil {
		r.logger.Warnw("Daily forecast unavailable", "lat", lat, "lon", lon, "error", err)
		return nil
	}
	return groupDaily(list, r.loc)
}

func (r *weatherRepository) fetchForecast(ctx context.Context, lat, lon float64, unit model.Unit) ([]model.OpenWeatherMapForecastItem, error) {
	params := coordParams(lat, lon)
	params.Set("units", unit.System())

	var data model.OpenWeatherMapForecast
	if err := r.fetch(ctx, "forecast", r.dataURL+"/forecast", params, &data); err != nil {
		return nil, err
	}
	for _, item := range data.List {
		if len(item.Weather) == 0 {
			return nil, fmt.Errorf("%w: forecast entry %d has no condition", ErrMalformedResponse, item.Dt)
		}
	}
	return data.List, nil
}

// SearchPlaces looks a free-text query up in the geocoding API.
func (r *weatherRepository) SearchPlaces(ctx context.Context, query string) []model.CityMatch {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(searchLimit))

	var data []model.GeocodingResult
	if err := r.fetch(ctx, "geocoding", r.geoURL+"/direct", params, &data); err != nil {
		r.logger.Warnw("City search failed", "query", query, "error", err)
		return nil
	}
	r.logger.Debugw("Cities found", "query", query, "count", len(data))
	return mapCities(data)
}

// fetch issues a GET and decodes a 200 body into out. The returned error wraps one of
// the package sentinels.
func (r *weatherRepository) fetch(ctx context.Context, endpoint, base string, params url.Values, out interface{}) error {
	start := time.Now()
	outcome := "ok"
	defer func() {
		r.metrics.RecordProviderCall(endpoint, outcome, time.Since(start))
	}()

	apiKey := config.GetOpenWeatherMapAPIKey()
	if apiKey == "" {
		outcome = "no_api_key"
		return ErrAPIKeyMissing
	}
	params.Set("appid", apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		outcome = "transport_error"
		return fmt.Errorf("%w: build request: %v", ErrExternalAPI, err)
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		outcome = "transport_error"
		return fmt.Errorf("%w: %v", ErrExternalAPI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		outcome = "http_error"
		_, _ = io.Copy(io.Discard, resp.Body)
		if resp.StatusCode == http.StatusNotFound {
			return ErrLocationNotFound
		}
		return fmt.Errorf("%w: status %d", ErrExternalAPI, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		outcome = "decode_error"
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

func coordParams(lat, lon float64) url.Values {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return params
}

// redact drops the API key before a query is logged.
func redact(params url.Values) string {
	clean := url.Values{}
	for k, v := range params {
		if k != "appid" {
			clean[k] = v
		}
	}
	return clean.Encode()
}

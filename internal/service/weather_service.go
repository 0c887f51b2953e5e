package service

import (
	"context"
	"strings"

	"github.com/fakhrymubarak/weather-app-api/internal/config"
	"github.com/fakhrymubarak/weather-app-api/internal/fallback"
	"github.com/fakhrymubarak/weather-app-api/internal/metrics"
	"github.com/fakhrymubarak/weather-app-api/internal/model"
	"github.com/fakhrymubarak/weather-app-api/internal/repository"
	"github.com/fakhrymubarak/weather-app-api/internal/search"
)

const nowLabel = "Now"

// WeatherServiceInterface is what the screens consume. Every method always has
// something to render; the bool result reports whether it is demo data.
type WeatherServiceInterface interface {
	GetCurrent(ctx context.Context, q model.LocationQuery, unit model.Unit) (model.CurrentConditions, bool)
	GetHourly(ctx context.Context, lat, lon float64, unit model.Unit) ([]model.HourlyPoint, bool)
	GetDaily(ctx context.Context, lat, lon float64, unit model.Unit) ([]model.DailyPoint, bool)
	GetDashboard(ctx context.Context, q model.LocationQuery, unit model.Unit) model.Dashboard
	SearchCities(ctx context.Context, query string, unit model.Unit, withConditions bool) ([]model.CityMatch, bool)
}

// WeatherService substitutes fallback data wherever the repository comes back empty.
type WeatherService struct {
	WeatherRepo repository.WeatherRepository
	Searcher    search.Searcher
	Metrics     *metrics.Collector
}

// NewWeatherService builds a service over repo, or over a default repository when repo is nil.
func NewWeatherService(collector *metrics.Collector, repo ...repository.WeatherRepository) *WeatherService {
	var weatherRepo repository.WeatherRepository
	if len(repo) > 0 && repo[0] != nil {
		weatherRepo = repo[0]
	} else {
		weatherRepo = repository.NewWeatherRepository(collector)
	}
	return &WeatherService{
		WeatherRepo: weatherRepo,
		Searcher:    search.NewDirect(weatherRepo, config.GetSearchMinQueryLength()),
		Metrics:     collector,
	}
}

func (s *WeatherService) GetCurrent(ctx context.Context, q model.LocationQuery, unit model.Unit) (model.CurrentConditions, bool) {
	ctx = orBackground(ctx)
	var current *model.CurrentConditions
	if q.HasCoords {
		current = s.WeatherRepo.GetCurrentByCoords(ctx, q.Lat, q.Lon, unit)
	} else {
		current = s.WeatherRepo.GetCurrentByName(ctx, q.City, unit)
	}
	if current == nil {
		s.Metrics.RecordFallback("current")
		return fallback.Current(unit), true
	}
	return *current, false
}

// GetHourly labels the first live point "Now".
func (s *WeatherService) GetHourly(ctx context.Context, lat, lon float64, unit model.Unit) ([]model.HourlyPoint, bool) {
	points := s.WeatherRepo.GetHourlyForecast(orBackground(ctx), lat, lon, unit)
	if len(points) == 0 {
		s.Metrics.RecordFallback("hourly")
		return fallback.Hourly(unit), true
	}
	points[0].Time = nowLabel
	return points, false
}

func (s *WeatherService) GetDaily(ctx context.Context, lat, lon float64, unit model.Unit) ([]model.DailyPoint, bool) {
	days := s.WeatherRepo.GetDailyForecast(orBackground(ctx), lat, lon, unit)
	if len(days) == 0 {
		s.Metrics.RecordFallback("daily")
		return fallback.Daily(unit), true
	}
	return days, false
}

// GetDashboard loads current, hourly and daily in that order. The forecasts are keyed by
// the coordinates the provider resolved for the current conditions.
func (s *WeatherService) GetDashboard(ctx context.Context, q model.LocationQuery, unit model.Unit) model.Dashboard {
	current, demo := s.GetCurrent(ctx, q, unit)
	if demo {
		s.Metrics.RecordFallback("hourly")
		s.Metrics.RecordFallback("daily")
		return model.Dashboard{
			Current: current,
			Hourly:  fallback.Hourly(unit),
			Daily:   fallback.Daily(unit),
			Demo:    true,
			Notice:  fallback.Notice,
		}
	}

	hourly, hourlyDemo := s.GetHourly(ctx, current.Lat, current.Lon, unit)
	daily, dailyDemo := s.GetDaily(ctx, current.Lat, current.Lon, unit)

	d := model.Dashboard{
		Current: current,
		Hourly:  hourly,
		Daily:   daily,
		Demo:    hourlyDemo || dailyDemo,
	}
	if d.Demo {
		d.Notice = fallback.Notice
	}
	return d
}

// SearchCities returns the popular list for an empty query and filters it when the live
// search finds nothing. withConditions attaches a current snapshot to each live match.
func (s *WeatherService) SearchCities(ctx context.Context, query string, unit model.Unit, withConditions bool) ([]model.CityMatch, bool) {
	ctx = orBackground(ctx)
	if strings.TrimSpace(query) == "" {
		return fallback.PopularCities(unit), true
	}

	cities := s.Searcher.Search(ctx, query)
	if len(cities) == 0 {
		s.Metrics.RecordFallback("search")
		return fallback.FilterCities(fallback.PopularCities(unit), query), true
	}

	if withConditions {
		for i := range cities {
			cities[i].Current = s.WeatherRepo.GetCurrentByCoords(ctx, cities[i].Lat, cities[i].Lon, unit)
		}
	}
	return cities, false
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

var _ WeatherServiceInterface = (*WeatherService)(nil)

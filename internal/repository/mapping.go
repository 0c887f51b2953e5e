package repository

import (
	"fmt"
	"time"

	"github.com/fakhrymubarak/weather-app-api/internal/model"
)

const (
	msToKmh        = 3.6
	metersPerKm    = 1000.0
	metersPerMile  = 1609.344
	uvIndexMissing = 0
)

// mapCurrent normalizes a current-weather payload. Metric wind arrives in m/s and is
// reported in km/h; imperial wind is already mph. Visibility always arrives in meters.
func mapCurrent(data *model.OpenWeatherMapResponse, unit model.Unit, loc *time.Location) (*model.CurrentConditions, error) {
	if len(data.Weather) == 0 {
		return nil, fmt.Errorf("%w: no weather condition for %q", ErrMalformedResponse, data.Name)
	}
	cond := data.Weather[0]

	wind := data.Wind.Speed
	visibility := data.Visibility / metersPerMile
	if unit != model.Fahrenheit {
		wind *= msToKmh
		visibility = data.Visibility / metersPerKm
	}

	return &model.CurrentConditions{
		Location:    data.Name,
		Country:     data.Sys.Country,
		Temperature: model.Round(data.Main.Temp),
		FeelsLike:   model.Round(data.Main.FeelsLike),
		Condition:   cond.Main,
		Description: cond.Description,
		Humidity:    model.Round(data.Main.Humidity),
		WindSpeed:   model.Round(wind),
		Pressure:    model.Round(data.Main.Pressure),
		Visibility:  model.Round(visibility),
		UVIndex:     uvIndexMissing,
		Sunrise:     formatHour(data.Sys.Sunrise, loc),
		Sunset:      formatHour(data.Sys.Sunset, loc),
		Lat:         data.Coord.Lat,
		Lon:         data.Coord.Lon,
	}, nil
}

func mapHourly(list []model.OpenWeatherMapForecastItem, loc *time.Location) []model.HourlyPoint {
	if len(list) > hourlyHorizon {
		list = list[:hourlyHorizon]
	}
	points := make([]model.HourlyPoint, 0, len(list))
	for _, item := range list {
		points = append(points, model.HourlyPoint{
			Time:      formatHour(item.Dt, loc),
			Temp:      model.Round(item.Main.Temp),
			Icon:      model.IconFor(item.Weather[0].Icon),
			Condition: item.Weather[0].Main,
		})
	}
	return points
}

type dayBucket struct {
	day       string
	icon      string
	condition string
	min, max  float64
}

// groupDaily buckets the list by weekday label in first-seen order. Icon and condition
// come from the first entry of each day.
func groupDaily(list []model.OpenWeatherMapForecastItem, loc *time.Location) []model.DailyPoint {
	var order []*dayBucket
	byDay := make(map[string]*dayBucket)

	for _, item := range list {
		day := formatDay(item.Dt, loc)
		temp := item.Main.Temp
		b, ok := byDay[day]
		if !ok {
			b = &dayBucket{
				day:       day,
				icon:      item.Weather[0].Icon,
				condition: item.Weather[0].Main,
				min:       temp,
				max:       temp,
			}
			byDay[day] = b
			order = append(order, b)
			continue
		}
		if temp < b.min {
			b.min = temp
		}
		if temp > b.max {
			b.max = temp
		}
	}

	if len(order) > dailyHorizon {
		order = order[:dailyHorizon]
	}
	days := make([]model.DailyPoint, 0, len(order))
	for _, b := range order {
		days = append(days, model.DailyPoint{
			Day:       b.day,
			High:      model.Round(b.max),
			Low:       model.Round(b.min),
			Icon:      model.IconFor(b.icon),
			Condition: b.condition,
		})
	}
	return days
}

func mapCities(results []model.GeocodingResult) []model.CityMatch {
	if len(results) > searchLimit {
		results = results[:searchLimit]
	}
	cities := make([]model.CityMatch, 0, len(results))
	for _, res := range results {
		cities = append(cities, model.CityMatch{
			Name:    res.Name,
			Country: res.Country,
			State:   res.State,
			Lat:     res.Lat,
			Lon:     res.Lon,
		})
	}
	return cities
}

func formatHour(epoch int64, loc *time.Location) string {
	return time.Unix(epoch, 0).In(loc).Format(hourLabel)
}

func formatDay(epoch int64, loc *time.Location) string {
	return time.Unix(epoch, 0).In(loc).Format(dayLabel)
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/fakhrymubarak/weather-app-api/internal/config"
	"github.com/fakhrymubarak/weather-app-api/internal/fallback"
	"github.com/fakhrymubarak/weather-app-api/internal/model"
	"github.com/fakhrymubarak/weather-app-api/internal/service"
)

var (
	errMissingLocation = errors.New("Missing 'city' or 'lat'/'lon' query parameters")
	errMissingCoords   = errors.New("Missing 'lat'/'lon' query parameters")
	errBadCoords       = errors.New("Invalid 'lat'/'lon' query parameters")
	errBadUnit         = errors.New("Invalid 'unit' query parameter, expected C or F")
)

type WeatherHandler struct {
	WeatherService service.WeatherServiceInterface
}

func NewWeatherHandler(svc service.WeatherServiceInterface) *WeatherHandler {
	return &WeatherHandler{
		WeatherService: svc,
	}
}

func (h *WeatherHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		config.GetLogger().Errorw("could not encode json", "error", err)
	}
}

func (h *WeatherHandler) writeError(w http.ResponseWriter, statusCode int, err error) {
	errMsg := err.Error()
	h.writeJSONResponse(w, statusCode, model.Response{
		Error:   &errMsg,
		Message: "Error",
	})
}

func (h *WeatherHandler) writeData(w http.ResponseWriter, data interface{}, demo bool) {
	msg := "Success"
	if demo {
		msg = fallback.Notice
	}
	h.writeJSONResponse(w, http.StatusOK, model.Response{
		Data:    data,
		Message: msg,
		Demo:    demo,
	})
}

// HandleCurrent serves /weather/current?city= or ?lat=&lon=.
func (h *WeatherHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	unit, q, err := parseLocationRequest(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	current, demo := h.WeatherService.GetCurrent(r.Context(), q, unit)
	h.writeData(w, current, demo)
}

func (h *WeatherHandler) HandleHourly(w http.ResponseWriter, r *http.Request) {
	unit, lat, lon, err := parseCoordsRequest(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	hourly, demo := h.WeatherService.GetHourly(r.Context(), lat, lon, unit)
	h.writeData(w, hourly, demo)
}

func (h *WeatherHandler) HandleDaily(w http.ResponseWriter, r *http.Request) {
	unit, lat, lon, err := parseCoordsRequest(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	daily, demo := h.WeatherService.GetDaily(r.Context(), lat, lon, unit)
	h.writeData(w, daily, demo)
}

func (h *WeatherHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	unit, q, err := parseLocationRequest(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	d := h.WeatherService.GetDashboard(r.Context(), q, unit)
	h.writeData(w, d, d.Demo)
}

// HandleSearch serves /cities/search?q=. An empty q lists popular cities.
func (h *WeatherHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	unit, ok := model.ParseUnit(query.Get("unit"))
	if !ok {
		h.writeError(w, http.StatusBadRequest, errBadUnit)
		return
	}
	withConditions, _ := strconv.ParseBool(query.Get("conditions"))
	cities, demo := h.WeatherService.SearchCities(r.Context(), query.Get("q"), unit, withConditions)
	if cities == nil {
		cities = []model.CityMatch{}
	}
	h.writeData(w, cities, demo)
}

func (h *WeatherHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, model.Response{Message: "OK"})
}

func (h *WeatherHandler) HandleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Allow", http.MethodGet)
	h.writeError(w, http.StatusMethodNotAllowed, errors.New("Method not allowed"))
}

func (h *WeatherHandler) HandleNotFound(w http.ResponseWriter, _ *http.Request) {
	h.writeError(w, http.StatusNotFound, errors.New("Not found"))
}

func parseLocationRequest(r *http.Request) (model.Unit, model.LocationQuery, error) {
	query := r.URL.Query()
	unit, ok := model.ParseUnit(query.Get("unit"))
	if !ok {
		return "", model.LocationQuery{}, errBadUnit
	}
	if city := strings.TrimSpace(query.Get("city")); city != "" {
		return unit, model.ByCity(city), nil
	}
	if query.Get("lat") == "" && query.Get("lon") == "" {
		return "", model.LocationQuery{}, errMissingLocation
	}
	lat, lon, err := parseCoords(query.Get("lat"), query.Get("lon"))
	if err != nil {
		return "", model.LocationQuery{}, err
	}
	return unit, model.ByCoords(lat, lon), nil
}

func parseCoordsRequest(r *http.Request) (model.Unit, float64, float64, error) {
	query := r.URL.Query()
	unit, ok := model.ParseUnit(query.Get("unit"))
	if !ok {
		return "", 0, 0, errBadUnit
	}
	if query.Get("lat") == "" || query.Get("lon") == "" {
		return "", 0, 0, errMissingCoords
	}
	lat, lon, err := parseCoords(query.Get("lat"), query.Get("lon"))
	if err != nil {
		return "", 0, 0, err
	}
	return unit, lat, lon, nil
}

func parseCoords(latStr, lonStr string) (float64, float64, error) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, errBadCoords
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		return 0, 0, errBadCoords
	}
	return lat, lon, nil
}

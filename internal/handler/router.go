package handler

import (
	"net/http"

	"github.com/fakhrymubarak/weather-app-api/internal/metrics"
	"github.com/fakhrymubarak/weather-app-api/internal/middleware"
	"github.com/gorilla/mux"
)

// NewRouter mounts the weather API and the metrics endpoint.
func NewRouter(h *WeatherHandler, collector *metrics.Collector) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.AccessLog(collector))

	r.HandleFunc("/weather/current", h.HandleCurrent).Methods(http.MethodGet)
	r.HandleFunc("/weather/hourly", h.HandleHourly).Methods(http.MethodGet)
	r.HandleFunc("/weather/daily", h.HandleDaily).Methods(http.MethodGet)
	r.HandleFunc("/weather/dashboard", h.HandleDashboard).Methods(http.MethodGet)
	r.HandleFunc("/cities/search", h.HandleSearch).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.HandleHealth).Methods(http.MethodGet)
	if collector != nil {
		r.Handle("/metrics", collector.Handler()).Methods(http.MethodGet)
	}

	r.MethodNotAllowedHandler = http.HandlerFunc(h.HandleMethodNotAllowed)
	r.NotFoundHandler = http.HandlerFunc(h.HandleNotFound)
	return r
}

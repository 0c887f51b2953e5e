package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fakhrymubarak/weather-app-api/internal/config"
	"github.com/fakhrymubarak/weather-app-api/internal/handler"
	"github.com/fakhrymubarak/weather-app-api/internal/metrics"
	"github.com/fakhrymubarak/weather-app-api/internal/repository"
	"github.com/fakhrymubarak/weather-app-api/internal/service"
)

func newServer() *http.Server {
	collector := metrics.NewCollector(config.GetMetricsNamespace())
	weatherRepo := repository.NewWeatherRepository(collector)
	weatherService := service.NewWeatherService(collector, weatherRepo)
	router := handler.NewRouter(handler.NewWeatherHandler(weatherService), collector)

	port := os.Getenv("PORT")
	if port == "" {
		port = config.GetServerPort()
	}
	return &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: config.GetServerTimeoutDuration("read_header_timeout", 15*time.Second),
		ReadTimeout:       config.GetServerTimeoutDuration("read_timeout", 15*time.Second),
		WriteTimeout:      config.GetServerTimeoutDuration("write_timeout", 10*time.Second),
		IdleTimeout:       config.GetServerTimeoutDuration("idle_timeout", 30*time.Second),
	}
}

func main() {
	logger := config.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.GetOpenWeatherMapAPIKey() == "" {
		logger.Warnw("OPENWEATHERMAP_API_KEY not set, every response will use demo data")
	}

	srv := newServer()
	go func() {
		logger.Infow("Weather API server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("Server failed", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorw("Graceful shutdown failed", "error", err)
	}
}

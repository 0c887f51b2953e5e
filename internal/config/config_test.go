package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestGetOpenWeatherMapAPIKey(t *testing.T) {
	expectedKey := "test_api_key_123"
	t.Setenv("OPENWEATHERMAP_API_KEY", expectedKey)

	result := GetOpenWeatherMapAPIKey()
	if result != expectedKey {
		t.Errorf("Expected API key %s, got %s", expectedKey, result)
	}

	t.Setenv("OPENWEATHERMAP_API_KEY", "")
	result = GetOpenWeatherMapAPIKey()
	if result != "" {
		t.Errorf("Expected empty string, got %s", result)
	}
}

func TestGetOpenWeatherURLs(t *testing.T) {
	assert.Equal(t, "https://api.openweathermap.org/data/2.5", GetOpenWeatherDataURL())
	assert.Equal(t, "https://api.openweathermap.org/geo/1.0", GetOpenWeatherGeoURL())
}

func TestGetServerPort(t *testing.T) {
	want := "8080"
	got := GetServerPort()
	if got != want {
		t.Errorf("Expected server port %s, got %s", want, got)
	}
}

func TestGetServerTimeout(t *testing.T) {
	want := "15s"
	got := GetServerTimeout("read_header_timeout")
	if got != want {
		t.Errorf("Expected read_header_timeout %s, got %s", want, got)
	}
	assert.Equal(t, 15*time.Second, GetServerTimeoutDuration("read_header_timeout", time.Second))
	assert.Equal(t, 7*time.Second, GetServerTimeoutDuration("missing_timeout", 7*time.Second))
}

func TestGetProviderTimeout_TestOverride(t *testing.T) {
	// config_test.yaml overrides the 10s default
	assert.Equal(t, 2*time.Second, GetProviderTimeout())
}

func TestGetTimezone(t *testing.T) {
	assert.Equal(t, time.UTC, GetTimezone())

	viper.Set("app.timezone", "Not/AZone")
	t.Cleanup(func() { viper.Set("app.timezone", "UTC") })
	assert.Equal(t, time.Local, GetTimezone())

	viper.Set("app.timezone", "Local")
	assert.Equal(t, time.Local, GetTimezone())
}

func TestGetSearchMinQueryLength(t *testing.T) {
	assert.Equal(t, 2, GetSearchMinQueryLength())

	viper.Set("search.min_query_length", 0)
	t.Cleanup(func() { viper.Set("search.min_query_length", 2) })
	assert.Equal(t, 1, GetSearchMinQueryLength())
}

func TestGetMetricsNamespace(t *testing.T) {
	assert.Equal(t, "weather_app_test", GetMetricsNamespace())
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, 3*time.Second, parseDuration("3s", time.Minute))
}

func TestReloadConfigForTest(t *testing.T) {
	// Should not panic or error
	ReloadConfigForTest()
}

func TestGetProjectRoot(t *testing.T) {
	root, err := getProjectRoot()
	assert.NoError(t, err)
	assert.NotEmpty(t, root)
}

func TestGetLogger(t *testing.T) {
	l1 := GetLogger()
	l2 := GetLogger()
	assert.NotNil(t, l1)
	assert.Same(t, l1, l2)
}

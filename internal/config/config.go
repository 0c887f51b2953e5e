package config

import (
	"flag"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func setDefaults() {
	viper.SetDefault("openweathermap.data_url", "https://api.openweathermap.org/data/2.5")
	viper.SetDefault("openweathermap.geo_url", "https://api.openweathermap.org/geo/1.0")
	viper.SetDefault("openweathermap.timeout", "10s")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.read_header_timeout", "15s")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "10s")
	viper.SetDefault("server.idle_timeout", "30s")
	viper.SetDefault("app.timezone", "Local")
	viper.SetDefault("search.min_query_length", 2)
	viper.SetDefault("metrics.namespace", "weather_app")
}

func initConfig() {
	once.Do(func() {
		setDefaults()
		root, err := getProjectRoot()
		if err != nil {
			GetLogger().Warnw("Project root not found, using defaults", "error", err)
			return
		}
		viper.SetConfigType("yaml")

		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			GetLogger().Warnw("Error reading config file", "error", err)
		}

		if !isTestRun() {
			return
		}
		viper.SetConfigName("config_test")
		if err = viper.MergeInConfig(); err != nil {
			GetLogger().Warnw("Error merging test config file", "error", err)
		}
	})
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// GetOpenWeatherDataURL returns the base URL of the current-weather and forecast endpoints.
func GetOpenWeatherDataURL() string {
	initConfig()
	return viper.GetString("openweathermap.data_url")
}

// GetOpenWeatherGeoURL returns the base URL of the geocoding endpoint.
func GetOpenWeatherGeoURL() string {
	initConfig()
	return viper.GetString("openweathermap.geo_url")
}

func GetOpenWeatherMapAPIKey() string {
	_ = godotenv.Load()
	return os.Getenv("OPENWEATHERMAP_API_KEY")
}

// GetProviderTimeout returns the provider HTTP client timeout. Defaults to 10s.
func GetProviderTimeout() time.Duration {
	initConfig()
	return parseDuration(viper.GetString("openweathermap.timeout"), 10*time.Second)
}

func GetServerPort() string {
	initConfig()
	return viper.GetString("server.port")
}

func GetServerTimeout(key string) string {
	initConfig()
	return viper.GetString("server." + key)
}

// GetServerTimeoutDuration parses server.<key> and falls back to def when unset or invalid.
func GetServerTimeoutDuration(key string, def time.Duration) time.Duration {
	return parseDuration(GetServerTimeout(key), def)
}

// GetTimezone returns the location used to render hour and weekday labels.
// Unknown names fall back to the process local zone.
func GetTimezone() *time.Location {
	initConfig()
	name := viper.GetString("app.timezone")
	if name == "" || name == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		GetLogger().Warnw("Unknown timezone, using local", "timezone", name, "error", err)
		return time.Local
	}
	return loc
}

// GetSearchMinQueryLength returns how many characters a query needs before a search is issued.
func GetSearchMinQueryLength() int {
	initConfig()
	n := viper.GetInt("search.min_query_length")
	if n < 1 {
		return 1
	}
	return n
}

func GetMetricsNamespace() string {
	initConfig()
	return viper.GetString("metrics.namespace")
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}

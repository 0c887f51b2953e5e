package integrationtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/fakhrymubarak/weather-app-api/internal/config"
	"github.com/fakhrymubarak/weather-app-api/internal/fallback"
	"github.com/fakhrymubarak/weather-app-api/internal/metrics"
	"github.com/fakhrymubarak/weather-app-api/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type envelope[T any] struct {
	Data    T       `json:"data"`
	Error   *string `json:"error"`
	Message string  `json:"message"`
	Demo    bool    `json:"demo"`
}

type WeatherAPITestSuite struct {
	suite.Suite
	provider   *httptest.Server
	httpServer *httptest.Server
	collector  *metrics.Collector
}

func (suite *WeatherAPITestSuite) SetupSuite() {
	suite.provider = newFakeProvider()
	dataURL, geoURL := providerURLs(suite.provider)
	viper.Set("openweathermap.data_url", dataURL)
	viper.Set("openweathermap.geo_url", geoURL)
	config.ReloadConfigForTest()

	suite.collector = metrics.NewCollector("integration")
	suite.httpServer = newAPIServer(suite.collector)
}

func (suite *WeatherAPITestSuite) SetupTest() {
	os.Setenv("OPENWEATHERMAP_API_KEY", ValidAPIKey)
}

func (suite *WeatherAPITestSuite) TearDownSuite() {
	os.Unsetenv("OPENWEATHERMAP_API_KEY")
	if suite.httpServer != nil {
		suite.httpServer.Close()
	}
	if suite.provider != nil {
		suite.provider.Close()
	}
}

func TestWeatherAPITestSuite(t *testing.T) {
	suite.Run(t, new(WeatherAPITestSuite))
}

func getJSON[T any](t *testing.T, url string) (int, envelope[T]) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body envelope[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func (suite *WeatherAPITestSuite) TestCurrentByName() {
	t := suite.T()
	code, body := getJSON[model.CurrentConditions](t, suite.httpServer.URL+"/weather/current?city=Nairobi,KE&unit=C")

	require.Equal(t, http.StatusOK, code)
	assert.False(t, body.Demo)
	assert.Equal(t, "Success", body.Message)

	c := body.Data
	assert.Equal(t, "Nairobi", c.Location)
	assert.Equal(t, "KE", c.Country)
	assert.Equal(t, 24, c.Temperature)
	assert.Equal(t, 23, c.FeelsLike)
	assert.Equal(t, 57, c.Humidity)
	assert.Equal(t, 1018, c.Pressure)
	assert.Equal(t, 18, c.WindSpeed)
	assert.Equal(t, 9, c.Visibility)
	assert.Equal(t, 0, c.UVIndex)
	assert.Equal(t, "3 AM", c.Sunrise)
	assert.InDelta(t, -1.29, c.Lat, 0.01)
	assert.InDelta(t, 36.82, c.Lon, 0.01)
}

func (suite *WeatherAPITestSuite) TestCurrentImperial() {
	t := suite.T()
	code, body := getJSON[model.CurrentConditions](t, suite.httpServer.URL+"/weather/current?lat=-1.2921&lon=36.8219&unit=F")

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 5, body.Data.WindSpeed)
	assert.Equal(t, 6, body.Data.Visibility)
}

func (suite *WeatherAPITestSuite) TestCurrentUnknownCityFallsBack() {
	t := suite.T()
	code, body := getJSON[model.CurrentConditions](t, suite.httpServer.URL+"/weather/current?city=Atlantis")

	require.Equal(t, http.StatusOK, code)
	assert.True(t, body.Demo)
	assert.Equal(t, fallback.Notice, body.Message)
	assert.Equal(t, fallback.Current(model.Celsius), body.Data)
}

func (suite *WeatherAPITestSuite) TestHourlyAndDaily() {
	t := suite.T()
	code, hourly := getJSON[[]model.HourlyPoint](t, suite.httpServer.URL+"/weather/hourly?lat=-1.29&lon=36.82")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, hourly.Data, 6)
	assert.Equal(t, "Now", hourly.Data[0].Time)
	assert.Equal(t, "3 AM", hourly.Data[1].Time)
	assert.Equal(t, "cloud.sun.rain.fill", hourly.Data[1].Icon)

	code, daily := getJSON[[]model.DailyPoint](t, suite.httpServer.URL+"/weather/daily?lat=-1.29&lon=36.82")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, daily.Data, 5)
	for d, day := range daily.Data {
		assert.Equal(t, 10+d, day.Low, day.Day)
		assert.Equal(t, 17+d, day.High, day.Day)
	}
	assert.Equal(t, []string{"Wed", "Thu", "Fri", "Sat", "Sun"},
		[]string{daily.Data[0].Day, daily.Data[1].Day, daily.Data[2].Day, daily.Data[3].Day, daily.Data[4].Day})
}

func (suite *WeatherAPITestSuite) TestDashboard() {
	t := suite.T()
	code, body := getJSON[model.Dashboard](t, suite.httpServer.URL+"/weather/dashboard?city=Nairobi")

	require.Equal(t, http.StatusOK, code)
	assert.False(t, body.Demo)
	assert.Equal(t, "Nairobi", body.Data.Current.Location)
	assert.Len(t, body.Data.Hourly, 6)
	assert.Len(t, body.Data.Daily, 5)
	assert.Empty(t, body.Data.Notice)
}

func (suite *WeatherAPITestSuite) TestInvalidAPIKeyServesDemoData() {
	t := suite.T()
	os.Setenv("OPENWEATHERMAP_API_KEY", "wrong_key")

	code, body := getJSON[model.Dashboard](t, suite.httpServer.URL+"/weather/dashboard?city=Nairobi&unit=F")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, body.Demo)
	assert.Equal(t, fallback.Notice, body.Data.Notice)
	assert.Equal(t, 75, body.Data.Current.Temperature)
	assert.Equal(t, fallback.Daily(model.Fahrenheit), body.Data.Daily)
}

func (suite *WeatherAPITestSuite) TestSearch() {
	t := suite.T()
	code, body := getJSON[[]model.CityMatch](t, suite.httpServer.URL+"/cities/search?q=Nai&conditions=true")

	require.Equal(t, http.StatusOK, code)
	assert.False(t, body.Demo)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Nairobi County", body.Data[0].State)
	require.NotNil(t, body.Data[0].Current)
	assert.Equal(t, 24, body.Data[0].Current.Temperature)

	// no live matches: popular cities filtered locally
	code, body = getJSON[[]model.CityMatch](t, suite.httpServer.URL+"/cities/search?q=Tokyo")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, body.Demo)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Japan", body.Data[0].Country)
}

func (suite *WeatherAPITestSuite) TestValidation() {
	t := suite.T()
	code, body := getJSON[any](t, suite.httpServer.URL+"/weather/hourly?lat=abc&lon=1")
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "Error", body.Message)
}

func (suite *WeatherAPITestSuite) TestMetricsExposed() {
	t := suite.T()
	getJSON[model.CurrentConditions](t, suite.httpServer.URL+"/weather/current?city=Nairobi")

	resp, err := http.Get(suite.httpServer.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

package capability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/madadgar-ai/madadgar/internal/config"
	"github.com/madadgar-ai/madadgar/internal/logging"
	"github.com/madadgar-ai/madadgar/internal/tool"
)

const openWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// Weather looks up current conditions for a city via OpenWeatherMap.
type Weather struct {
	apiKey  string
	baseURL string
	client  *http.Client
	log     *logging.Logger
}

// NewWeather creates the weather capability.
func NewWeather(cfg config.WeatherConfig, log *logging.Logger) *Weather {
	return &Weather{
		apiKey:  cfg.APIKey,
		baseURL: openWeatherURL,
		client:  newHTTPClient(),
		log:     log.Sub("capability.weather"),
	}
}

// Spec returns the tool contract for the coordinator.
func (w *Weather) Spec() *tool.Spec {
	return &tool.Spec{
		Name:        "weather",
		Description: "Get the current weather (temperature, conditions, humidity, wind) for a city.",
		Params: []tool.Param{
			{Name: "city", Type: tool.TypeString, Description: "City name, e.g. 'Paris'", Required: true},
		},
		Handler: w.invoke,
	}
}

type openWeatherResponse struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

func (w *Weather) invoke(ctx context.Context, args tool.Args) tool.Result {
	city := args.String("city")

	if w.apiKey == "" {
		return tool.Failf("Weather service is not configured. Please check the WEATHER_API_KEY environment variable.")
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", w.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return tool.Fail("An error occurred while fetching weather data.", err)
	}

	w.log.Debug().Str("city", city).Msg("requesting weather")

	resp, err := w.client.Do(req)
	if err != nil {
		return tool.Fail("An error occurred while fetching weather data.", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return tool.Failf("Weather service authentication failed. Please check the API key.")
	case http.StatusNotFound:
		return tool.Failf("City '%s' not found. Please check the spelling and try again.", city)
	default:
		return tool.Failf("Failed to get weather for %s. Status code: %d", city, resp.StatusCode)
	}

	var data openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return tool.Fail("An error occurred while fetching weather data.", err)
	}

	description := ""
	if len(data.Weather) > 0 {
		description = data.Weather[0].Description
	}

	// Field order is part of the contract: temperature, conditions,
	// humidity, wind speed.
	payload := fmt.Sprintf("Weather in %s:\n• Temperature: %s°C\n• Conditions: %s\n• Humidity: %d%%\n• Wind Speed: %s m/s",
		city, formatNumber(data.Main.Temp), description, data.Main.Humidity, formatNumber(data.Wind.Speed))
	return tool.OK(payload)
}

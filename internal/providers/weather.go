package providers

import (
	"context"
	"math"
	"net/url"
	"strconv"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

// DefaultWeatherURL is the OpenWeather current conditions endpoint.
const DefaultWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// Weather fetches the current conditions for a city.
type Weather struct {
	client  *Client
	apiKey  string
	city    string
	baseURL string
}

var _ driven.Fetcher[domain.Weather] = (*Weather)(nil)

// NewWeather creates a weather provider. An empty baseURL uses
// DefaultWeatherURL.
func NewWeather(client *Client, apiKey, city, baseURL string) *Weather {
	if baseURL == "" {
		baseURL = DefaultWeatherURL
	}
	return &Weather{client: client, apiKey: apiKey, city: city, baseURL: baseURL}
}

type weatherResponse struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
}

// Fetch returns the current conditions in metric units.
func (w *Weather) Fetch(ctx context.Context) (domain.Weather, error) {
	if w.apiKey == "" {
		return domain.Weather{}, domain.ErrProviderDisabled
	}

	var resp weatherResponse
	err := w.client.GetJSON(ctx, w.baseURL, url.Values{
		"q":     {w.city},
		"appid": {w.apiKey},
		"units": {"metric"},
	}, &resp)
	if err != nil {
		return domain.Weather{}, err
	}
	if len(resp.Weather) == 0 {
		return domain.Weather{}, badResponse(w.client.Name(), "no weather conditions")
	}

	temp := math.Round(resp.Main.Temp*10) / 10
	return domain.Weather{
		Temp:        strconv.FormatFloat(temp, 'f', 1, 64),
		Description: resp.Weather[0].Main,
		Icon:        resp.Weather[0].Main,
	}, nil
}

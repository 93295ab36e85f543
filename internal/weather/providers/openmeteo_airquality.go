package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"
	"github.com/weatherdeck/weatherdeck/internal/weather"
)

// OpenMeteoAirQualityProvider implements weather.AirQualityProvider
// against the Open-Meteo air-quality API.
type OpenMeteoAirQualityProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoAirQualityProvider(client *http.Client) *OpenMeteoAirQualityProvider {
	return &OpenMeteoAirQualityProvider{
		name:    "openmeteo-airquality",
		baseURL: "https://air-quality-api.open-meteo.com/v1/air-quality",
		httpCfg: defaultHTTPConfig(client),
		circuit: newBreaker("openmeteo-airquality"),
	}
}

func (p *OpenMeteoAirQualityProvider) Name() string {
	return p.name
}

// FetchAir returns the current pollutant readings for the coordinates.
// Pollutant values pass through verbatim; classification happens in the
// normalization layer.
func (p *OpenMeteoAirQualityProvider) FetchAir(ctx context.Context, lat, lon float64) (*weather.AirReading, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", lat))
		values.Set("longitude", fmt.Sprintf("%f", lon))
		values.Set("current", "pm2_5,pm10,o3,no2,so2")
		values.Set("timezone", "auto")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Current weather.Pollutants `json:"current"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode air quality payload: %w", err)
	}

	return &weather.AirReading{
		PM25:       payload.Current.PM25,
		Components: payload.Current,
	}, nil
}

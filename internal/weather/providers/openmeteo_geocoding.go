package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"
	"github.com/weatherdeck/weatherdeck/internal/weather"
)

// suggestionLimit caps how many autocomplete results we request.
const suggestionLimit = 5

// OpenMeteoGeocodingProvider implements weather.GeocodingProvider
// against the Open-Meteo geocoding API. No API key required.
type OpenMeteoGeocodingProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoGeocodingProvider(client *http.Client) *OpenMeteoGeocodingProvider {
	return &OpenMeteoGeocodingProvider{
		name:    "openmeteo-geocoding",
		baseURL: "https://geocoding-api.open-meteo.com/v1/search",
		httpCfg: defaultHTTPConfig(client),
		circuit: newBreaker("openmeteo-geocoding"),
	}
}

func (p *OpenMeteoGeocodingProvider) Name() string {
	return p.name
}

func (p *OpenMeteoGeocodingProvider) Suggest(ctx context.Context, query string) ([]weather.Suggestion, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("name", query)
		values.Set("count", strconv.Itoa(suggestionLimit))
		values.Set("language", "en")
		values.Set("format", "json")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			ID        int64   `json:"id"`
			Name      string  `json:"name"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Country   string  `json:"country"`
			Admin1    string  `json:"admin1"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode geocoding payload: %w", err)
	}

	suggestions := make([]weather.Suggestion, 0, len(payload.Results))
	for _, r := range payload.Results {
		secondary := r.Admin1
		if r.Country != "" {
			if secondary != "" {
				secondary += ", "
			}
			secondary += r.Country
		}

		suggestions = append(suggestions, weather.Suggestion{
			ID:            strconv.FormatInt(r.ID, 10),
			Name:          r.Name,
			MainText:      r.Name,
			SecondaryText: secondary,
			Latitude:      r.Latitude,
			Longitude:     r.Longitude,
			Country:       r.Country,
			Region:        r.Admin1,
		})
	}
	return suggestions, nil
}

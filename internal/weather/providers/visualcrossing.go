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

// VisualCrossingProvider implements weather.TimelineProvider against the
// Visual Crossing timeline API.
type VisualCrossingProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewVisualCrossingProvider(client *http.Client, apiKey string) *VisualCrossingProvider {
	return &VisualCrossingProvider{
		name:    "visualcrossing",
		apiKey:  apiKey,
		baseURL: "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline",
		httpCfg: defaultHTTPConfig(client),
		circuit: newBreaker("visualcrossing"),
	}
}

func (p *VisualCrossingProvider) Name() string {
	return p.name
}

// FetchTimeline requests the full metric timeline (current conditions,
// days, hours, alerts) for a location string such as "Paris" or
// "48.85,2.35".
func (p *VisualCrossingProvider) FetchTimeline(ctx context.Context, location string) (*weather.TimelineResponse, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("visualcrossing api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("unitGroup", "metric")
		values.Set("key", p.apiKey)
		values.Set("contentType", "json")
		values.Set("include", "hours,days,current,alerts")

		u := fmt.Sprintf("%s/%s?%s", p.baseURL, url.PathEscape(location), values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload weather.TimelineResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode timeline payload: %w", err)
	}
	return &payload, nil
}

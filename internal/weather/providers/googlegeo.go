package providers

import (
	"context"
	"fmt"

	"github.com/kelvins/geocoder"
	"github.com/weatherdeck/weatherdeck/internal/weather"
)

// GoogleGeocodingProvider is a fallback suggestion source backed by the
// Google Geocoding API. It resolves the raw query to a single coordinate
// pair, so it yields at most one suggestion.
type GoogleGeocodingProvider struct {
	name   string
	apiKey string
}

func NewGoogleGeocodingProvider(apiKey string) *GoogleGeocodingProvider {
	return &GoogleGeocodingProvider{
		name:   "google-geocoding",
		apiKey: apiKey,
	}
}

func (p *GoogleGeocodingProvider) Name() string {
	return p.name
}

func (p *GoogleGeocodingProvider) Suggest(ctx context.Context, query string) ([]weather.Suggestion, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("google geocoder api key is not configured")
	}

	// The geocoder library holds its key in a package-level variable and
	// does not accept a context.
	geocoder.ApiKey = p.apiKey

	location, err := geocoder.Geocoding(geocoder.Address{City: query})
	if err != nil {
		return nil, fmt.Errorf("google geocoding %q: %w", query, err)
	}

	return []weather.Suggestion{{
		ID:        "google:" + query,
		Name:      query,
		MainText:  query,
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
	}}, nil
}

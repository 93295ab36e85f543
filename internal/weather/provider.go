package weather

import "context"

// TimelineProvider abstracts the upstream weather timeline API.
type TimelineProvider interface {
	Name() string
	FetchTimeline(ctx context.Context, location string) (*TimelineResponse, error)
}

// GeocodingProvider abstracts the place-autocomplete API used for live
// search suggestions.
type GeocodingProvider interface {
	Name() string
	Suggest(ctx context.Context, query string) ([]Suggestion, error)
}

// AirQualityProvider abstracts the dedicated air-quality API. Callers
// treat it as best-effort: a failure here means the heuristic fallback
// is used, never a failed weather response.
type AirQualityProvider interface {
	Name() string
	FetchAir(ctx context.Context, lat, lon float64) (*AirReading, error)
}

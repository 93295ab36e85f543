package weather

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// airQualityTimeout bounds the best-effort AQI lookup so a slow
// secondary endpoint cannot stall the primary weather response.
const airQualityTimeout = 3 * time.Second

// Service orchestrates upstream providers and caches normalized
// snapshots per requested location.
type Service struct {
	timeline    TimelineProvider
	geocoder    GeocodingProvider
	geoFallback GeocodingProvider
	air         AirQualityProvider
	cache       *snapshotCache
}

// NewService creates a Service. cacheTTL <= 0 disables snapshot caching.
func NewService(timeline TimelineProvider, geocoder GeocodingProvider, air AirQualityProvider, cacheTTL time.Duration) *Service {
	return &Service{
		timeline: timeline,
		geocoder: geocoder,
		air:      air,
		cache:    newSnapshotCache(cacheTTL),
	}
}

// WithGeocodingFallback installs a secondary suggestion source consulted
// when the primary geocoder errors or returns nothing.
func (s *Service) WithGeocodingFallback(p GeocodingProvider) *Service {
	s.geoFallback = p
	return s
}

// GetWeather returns the canonical snapshot for a location string
// (city name or "lat,lon"), serving a cached copy when it is fresh.
func (s *Service) GetWeather(ctx context.Context, location string) (Snapshot, error) {
	if snap, ok := s.cache.get(location); ok {
		return snap, nil
	}
	return s.fetch(ctx, location)
}

// Refresh fetches a location bypassing the cache and stores the result.
// The favorites refresher uses it to keep saved locations warm.
func (s *Service) Refresh(ctx context.Context, location string) error {
	_, err := s.fetch(ctx, location)
	return err
}

func (s *Service) fetch(ctx context.Context, location string) (Snapshot, error) {
	tl, err := s.timeline.FetchTimeline(ctx, location)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetch weather timeline: %w", err)
	}

	// Best-effort enrichment: an air-quality failure only means the
	// heuristic arm of Normalize runs.
	var air *AirReading
	if s.air != nil {
		airCtx, cancel := context.WithTimeout(ctx, airQualityTimeout)
		reading, airErr := s.air.FetchAir(airCtx, tl.Latitude, tl.Longitude)
		cancel()
		if airErr != nil {
			log.Printf("air quality lookup failed for %s; using heuristic: %v", location, airErr)
		} else {
			air = reading
		}
	}

	snap := Normalize(tl, air)
	s.cache.put(location, snap)
	return snap, nil
}

// Suggest returns live geocoding suggestions for a query, consulting the
// fallback source when the primary yields nothing.
func (s *Service) Suggest(ctx context.Context, query string) ([]Suggestion, error) {
	suggestions, err := s.geocoder.Suggest(ctx, query)
	if err != nil {
		if s.geoFallback == nil {
			return nil, fmt.Errorf("geocoding suggestions: %w", err)
		}
		log.Printf("geocoder %s failed for %q; trying %s: %v",
			s.geocoder.Name(), query, s.geoFallback.Name(), err)
		suggestions = nil
	}

	if len(suggestions) == 0 && s.geoFallback != nil {
		fallback, fbErr := s.geoFallback.Suggest(ctx, query)
		if fbErr != nil {
			if err != nil {
				return nil, fmt.Errorf("geocoding suggestions: %w", err)
			}
			log.Printf("fallback geocoder %s failed for %q: %v", s.geoFallback.Name(), query, fbErr)
			return []Suggestion{}, nil
		}
		return fallback, nil
	}
	return suggestions, nil
}

type cachedSnapshot struct {
	snap      Snapshot
	fetchedAt time.Time
}

// snapshotCache keeps the most recent snapshot per location string.
type snapshotCache struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]cachedSnapshot
}

func newSnapshotCache(ttl time.Duration) *snapshotCache {
	return &snapshotCache{
		ttl:  ttl,
		data: make(map[string]cachedSnapshot),
	}
}

func (c *snapshotCache) get(location string) (Snapshot, bool) {
	if c.ttl <= 0 {
		return Snapshot{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.data[location]
	if !ok || time.Since(entry.fetchedAt) > c.ttl {
		return Snapshot{}, false
	}
	return entry.snap, true
}

func (c *snapshotCache) put(location string, snap Snapshot) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[location] = cachedSnapshot{snap: snap, fetchedAt: time.Now()}
}

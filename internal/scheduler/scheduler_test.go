package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/weatherdeck/weatherdeck/internal/store"
	"github.com/weatherdeck/weatherdeck/internal/weather"
)

type countingTimeline struct {
	calls int64
}

func (c *countingTimeline) Name() string { return "counting-timeline" }

func (c *countingTimeline) FetchTimeline(ctx context.Context, location string) (*weather.TimelineResponse, error) {
	atomic.AddInt64(&c.calls, 1)
	return &weather.TimelineResponse{ResolvedAddress: location}, nil
}

type nopGeo struct{}

func (nopGeo) Name() string { return "nop-geo" }

func (nopGeo) Suggest(ctx context.Context, query string) ([]weather.Suggestion, error) {
	return nil, nil
}

// Sub-minute intervals must be honored as configured instead of being
// truncated to whole minutes.
func TestRefresherHonorsSubMinuteInterval(t *testing.T) {
	st := store.NewMemoryStore()
	if _, err := st.AddFavorite(store.Favorite{CityName: "Paris"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	timeline := &countingTimeline{}
	svc := weather.NewService(timeline, nopGeo{}, nil, 0)

	r := New(st, svc, 50*time.Millisecond)
	if err := r.Start(); err != nil {
		t.Fatalf("failed to start refresher: %v", err)
	}
	defer r.Stop()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if atomic.LoadInt64(&timeline.calls) > 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("expected a refresh within the configured sub-minute interval")
}

func TestRefresherDisabledWithoutInterval(t *testing.T) {
	st := store.NewMemoryStore()
	svc := weather.NewService(&countingTimeline{}, nopGeo{}, nil, 0)

	r := New(st, svc, 0)
	if err := r.Start(); err != nil {
		t.Fatalf("expected disabled refresher to start cleanly: %v", err)
	}
	r.Stop()
}

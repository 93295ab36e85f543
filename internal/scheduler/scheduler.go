package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/weatherdeck/weatherdeck/internal/store"
	"github.com/weatherdeck/weatherdeck/internal/weather"
)

// Refresher periodically re-fetches weather for saved favorites so the
// snapshot cache stays warm for dashboard loads.
type Refresher struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	store     store.Store
	interval  time.Duration
}

// New creates a Refresher.
func New(st store.Store, service *weather.Service, interval time.Duration) *Refresher {
	return &Refresher{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		store:     st,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler. A non-positive interval disables the refresher.
func (r *Refresher) Start() error {
	if r.interval <= 0 {
		log.Println("refresher: disabled by configuration")
		return nil
	}

	// gocron takes the duration directly, so sub-minute intervals are
	// honored rather than truncated.
	_, err := r.scheduler.Every(r.interval).Do(r.refreshFavorites)
	if err != nil {
		return err
	}

	r.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (r *Refresher) Stop() {
	if r.scheduler != nil {
		r.scheduler.Stop()
	}
}

func (r *Refresher) refreshFavorites() {
	favorites, err := r.store.ListFavorites()
	if err != nil {
		log.Printf("refresher: listing favorites failed: %v", err)
		return
	}
	if len(favorites) == 0 {
		return
	}

	log.Printf("refresher: refreshing %d favorite location(s)", len(favorites))

	var wg sync.WaitGroup
	for _, fav := range favorites {
		fav := fav
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			loc := locationLabel(fav)
			if err := r.service.Refresh(ctx, loc); err != nil {
				log.Printf("refresher: refresh failed for %s: %v", loc, err)
			}
		}()
	}
	wg.Wait()
}

// locationLabel picks the location string the dashboard itself would
// request: coordinates when known, else the city name.
func locationLabel(fav store.Favorite) string {
	if fav.Latitude != 0 || fav.Longitude != 0 {
		return fmt.Sprintf("%f,%f", fav.Latitude, fav.Longitude)
	}
	return fav.CityName
}

package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/weatherdeck/weatherdeck/internal/api/http"
	"github.com/weatherdeck/weatherdeck/internal/config"
	"github.com/weatherdeck/weatherdeck/internal/scheduler"
	"github.com/weatherdeck/weatherdeck/internal/store"
	"github.com/weatherdeck/weatherdeck/internal/weather"
	"github.com/weatherdeck/weatherdeck/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// History/favorites store: in-memory or durable sqlite.
	var st store.Store
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		sqlStore, err := store.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("failed to open sqlite store: %v", err)
		}
		st = sqlStore
	default:
		st = store.NewMemoryStore()
	}
	defer st.Close()

	// Upstream providers with resilience (backoff + circuit breaker).
	timeline := providers.NewVisualCrossingProvider(httpClient, cfg.VisualCrossingAPIKey)
	geocoder := providers.NewOpenMeteoGeocodingProvider(httpClient)
	air := providers.NewOpenMeteoAirQualityProvider(httpClient)

	service := weather.NewService(timeline, geocoder, air, cfg.CacheTTL)
	if cfg.GoogleGeocoderAPIKey != "" {
		service.WithGeocodingFallback(providers.NewGoogleGeocodingProvider(cfg.GoogleGeocoderAPIKey))
	}

	// Background refresher keeping favorite locations warm in cache.
	refresher := scheduler.New(st, service, cfg.RefreshInterval)
	if err := refresher.Start(); err != nil {
		log.Fatalf("failed to start favorites refresher: %v", err)
	}
	defer refresher.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weatherdeck",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response.
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weatherdeck",
		})
	})

	httpapi.RegisterRoutes(app, service, st)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

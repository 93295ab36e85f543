package httpapi

import (
	"log"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/weatherdeck/weatherdeck/internal/store"
	"github.com/weatherdeck/weatherdeck/internal/weather"
)

var validate = validator.New()

// minQueryLength is the shortest search fragment the gateway accepts.
const minQueryLength = 2

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, st store.Store) {
	v1 := app.Group("/api/v1")

	v1.Get("/locations/search", func(c *fiber.Ctx) error {
		q := c.Query("q")
		if utf8.RuneCountInString(q) < minQueryLength {
			return fiber.NewError(fiber.StatusBadRequest, "Search query must be at least 2 characters")
		}

		suggestions, err := service.Suggest(c.Context(), q)
		if err != nil {
			log.Printf("location search failed for %q: %v", q, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to search locations")
		}

		history, err := st.SearchHistory(q)
		if err != nil {
			log.Printf("history lookup failed for %q: %v", q, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to search locations")
		}

		// Live suggestions and ranked history are returned side by side,
		// without deduplication between the two lists.
		if suggestions == nil {
			suggestions = []weather.Suggestion{}
		}
		if history == nil {
			history = []store.SearchEntry{}
		}

		return c.JSON(fiber.Map{
			"suggestions": suggestions,
			"history":     history,
		})
	})

	v1.Post("/locations/search", func(c *fiber.Ctx) error {
		var req saveSearchRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Query and city name are required")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Query and city name are required")
		}

		if err := st.RecordSearch(req.toEntry()); err != nil {
			log.Printf("recording search %q failed: %v", req.Query, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save search")
		}

		return c.JSON(fiber.Map{"success": true})
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		location := c.Query("location")
		if location == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Location parameter is required")
		}

		snapshot, err := service.GetWeather(c.Context(), location)
		if err != nil {
			log.Printf("weather fetch failed for %q: %v", location, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to fetch weather data",
				"details": err.Error(),
			})
		}

		return c.JSON(snapshot)
	})

	v1.Get("/favorites", func(c *fiber.Ctx) error {
		favorites, err := st.ListFavorites()
		if err != nil {
			log.Printf("listing favorites failed: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to get favorite locations")
		}

		if favorites == nil {
			favorites = []store.Favorite{}
		}
		return c.JSON(fiber.Map{"favorites": favorites})
	})

	v1.Post("/favorites", func(c *fiber.Ctx) error {
		var req addFavoriteRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "City name is required")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "City name is required")
		}

		id, err := st.AddFavorite(req.toFavorite())
		if err != nil {
			log.Printf("adding favorite %q failed: %v", req.CityName, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to add favorite location")
		}

		return c.JSON(fiber.Map{"success": true, "id": id})
	})

	v1.Delete("/favorites/:id", func(c *fiber.Ctx) error {
		removed, err := st.DeleteFavorite(c.Params("id"))
		if err != nil {
			log.Printf("deleting favorite %q failed: %v", c.Params("id"), err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete favorite location")
		}
		if !removed {
			return fiber.NewError(fiber.StatusNotFound, "Favorite not found")
		}

		return c.JSON(fiber.Map{"success": true})
	})
}

// saveSearchRequest is the body of POST /locations/search. Coordinates
// and region/country are optional; presence checks happen before any
// store call.
type saveSearchRequest struct {
	Query     string  `json:"query" validate:"required"`
	CityName  string  `json:"cityName" validate:"required"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r saveSearchRequest) toEntry() store.SearchEntry {
	return store.SearchEntry{
		Query:     r.Query,
		CityName:  r.CityName,
		Region:    r.Region,
		Country:   r.Country,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}
}

// addFavoriteRequest is the body of POST /favorites.
type addFavoriteRequest struct {
	CityName  string  `json:"cityName" validate:"required"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r addFavoriteRequest) toFavorite() store.Favorite {
	return store.Favorite{
		CityName:  r.CityName,
		Region:    r.Region,
		Country:   r.Country,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}
}

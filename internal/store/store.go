package store

import "time"

// maxHistoryResults caps how many ranked history entries a search returns.
const maxHistoryResults = 5

// SearchEntry is one remembered search keyed by the exact query string.
// The same query searched again bumps SearchCount instead of creating a
// second entry.
type SearchEntry struct {
	Query        string    `json:"-"`
	CityName     string    `json:"city_name"`
	Region       string    `json:"region"`
	Country      string    `json:"country"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	SearchCount  int       `json:"search_count"`
	LastSearched time.Time `json:"-"`
}

// Favorite is a saved location. Ids are assigned by the store and are
// never reused within a process lifetime.
type Favorite struct {
	ID        int64     `json:"id"`
	CityName  string    `json:"city_name"`
	Region    string    `json:"region"`
	Country   string    `json:"country"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the contract both the in-memory and the sqlite-backed
// history/favorites stores must satisfy.
type Store interface {
	// RecordSearch creates an entry for the query or, if one already
	// exists for the exact same query string, increments its counter
	// and refreshes its timestamp.
	RecordSearch(entry SearchEntry) error

	// SearchHistory returns up to 5 entries whose query or city name
	// contains fragment case-insensitively, most-searched first.
	SearchHistory(fragment string) ([]SearchEntry, error)

	// AddFavorite stores a new favorite and returns its assigned id.
	AddFavorite(fav Favorite) (int64, error)

	// ListFavorites returns all saved favorites.
	ListFavorites() ([]Favorite, error)

	// DeleteFavorite removes the favorite with the given id and reports
	// whether it existed. Ids that do not parse as integers are treated
	// as not found.
	DeleteFavorite(id string) (bool, error)

	Close() error
}

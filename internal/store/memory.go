package store

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// MemoryStore is a concurrency-safe in-memory implementation of Store.
// Search history grows without bound; that matches the durable variant,
// which also never evicts.
type MemoryStore struct {
	mu sync.RWMutex

	// key: exact query string as typed
	history   map[string]*SearchEntry
	favorites []Favorite
	nextFavID int64
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		history:   make(map[string]*SearchEntry),
		nextFavID: 1,
	}
}

// RecordSearch increments the counter for an existing query or inserts a
// fresh entry with count 1. Lookup and mutation happen under one lock so
// concurrent identical queries never lose an increment.
func (s *MemoryStore) RecordSearch(entry SearchEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.history[entry.Query]; ok {
		existing.SearchCount++
		existing.LastSearched = time.Now().UTC()
		return nil
	}

	entry.SearchCount = 1
	entry.LastSearched = time.Now().UTC()
	s.history[entry.Query] = &entry
	return nil
}

// SearchHistory scans all entries for a case-insensitive substring match
// on the query key or the city name and returns the top results by
// search count, recency breaking ties.
func (s *MemoryStore) SearchHistory(fragment string) ([]SearchEntry, error) {
	needle := strings.ToLower(fragment)

	s.mu.RLock()
	var matches []SearchEntry
	for key, entry := range s.history {
		if strings.Contains(strings.ToLower(key), needle) ||
			strings.Contains(strings.ToLower(entry.CityName), needle) {
			matches = append(matches, *entry)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].SearchCount != matches[j].SearchCount {
			return matches[i].SearchCount > matches[j].SearchCount
		}
		return matches[i].LastSearched.After(matches[j].LastSearched)
	})

	if len(matches) > maxHistoryResults {
		matches = matches[:maxHistoryResults]
	}
	return matches, nil
}

// AddFavorite appends the favorite and returns its id. Ids come from a
// monotonic counter and are never reused, even after deletion.
func (s *MemoryStore) AddFavorite(fav Favorite) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fav.ID = s.nextFavID
	s.nextFavID++
	fav.CreatedAt = time.Now().UTC()
	s.favorites = append(s.favorites, fav)
	return fav.ID, nil
}

// ListFavorites returns favorites in insertion order (ascending id).
func (s *MemoryStore) ListFavorites() ([]Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Favorite, len(s.favorites))
	copy(out, s.favorites)
	return out, nil
}

// DeleteFavorite removes the favorite with the given id. A non-numeric
// id is reported as not found rather than an error.
func (s *MemoryStore) DeleteFavorite(id string) (bool, error) {
	favID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, fav := range s.favorites {
		if fav.ID == favID {
			s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

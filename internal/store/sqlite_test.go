package store

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteRecordSearchUpsert(t *testing.T) {
	s := newTestSQLiteStore(t)

	entry := SearchEntry{
		Query:     "par",
		CityName:  "Paris",
		Region:    "Île-de-France",
		Country:   "France",
		Latitude:  48.8566,
		Longitude: 2.3522,
	}

	if err := s.RecordSearch(entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.RecordSearch(entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	results, err := s.SearchHistory("par")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected single upserted row, got %d", len(results))
	}
	if results[0].SearchCount != 2 {
		t.Fatalf("expected search count 2, got %d", results[0].SearchCount)
	}
	if results[0].CityName != "Paris" || results[0].Region != "Île-de-France" {
		t.Fatalf("row fields not preserved: %+v", results[0])
	}
}

func TestSQLiteConcurrentRecordSearch(t *testing.T) {
	s := newTestSQLiteStore(t)

	const writers = 16

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.RecordSearch(SearchEntry{Query: "fresh", CityName: "Freshwater"})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent RecordSearch failed: %v", err)
		}
	}

	results, err := s.SearchHistory("fresh")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected a single row for the query, got %d", len(results))
	}
	if results[0].SearchCount != writers {
		t.Fatalf("expected search count %d, got %d", writers, results[0].SearchCount)
	}
}

func TestSQLiteSearchHistoryRanking(t *testing.T) {
	s := newTestSQLiteStore(t)

	for i := 1; i <= 7; i++ {
		entry := SearchEntry{
			Query:    fmt.Sprintf("ber%d", i),
			CityName: "Berlin",
		}
		for j := 0; j < i; j++ {
			if err := s.RecordSearch(entry); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
	}

	results, err := s.SearchHistory("BER")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	if results[0].SearchCount != 7 {
		t.Fatalf("expected top count 7, got %d", results[0].SearchCount)
	}
	for i := 1; i < len(results); i++ {
		if results[i].SearchCount > results[i-1].SearchCount {
			t.Fatal("results not sorted by search count")
		}
	}
}

func TestSQLiteFavorites(t *testing.T) {
	s := newTestSQLiteStore(t)

	id1, err := s.AddFavorite(Favorite{CityName: "Paris", Country: "France"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id2, err := s.AddFavorite(Favorite{CityName: "Oslo", Country: "Norway"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id2 <= id1 {
		t.Fatalf("ids not strictly increasing: %d then %d", id1, id2)
	}

	favs, err := s.ListFavorites()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(favs) != 2 {
		t.Fatalf("expected 2 favorites, got %d", len(favs))
	}

	removed, err := s.DeleteFavorite(fmt.Sprintf("%d", id1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !removed {
		t.Fatal("expected delete to report true")
	}

	removed, err = s.DeleteFavorite(fmt.Sprintf("%d", id1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed {
		t.Fatal("expected second delete to report false")
	}

	removed, err = s.DeleteFavorite("garbage")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed {
		t.Fatal("expected non-numeric id to report not found")
	}
}

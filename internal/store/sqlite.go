package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS favorites (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	city_name TEXT NOT NULL,
	region TEXT,
	country TEXT,
	latitude REAL,
	longitude REAL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS search_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	search_query TEXT NOT NULL,
	city_name TEXT NOT NULL,
	region TEXT,
	country TEXT,
	latitude REAL,
	longitude REAL,
	search_count INTEGER NOT NULL DEFAULT 1,
	last_searched TEXT NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_search_query ON search_history(search_query);
CREATE INDEX IF NOT EXISTS idx_city_name ON search_history(city_name);
`

// SQLiteStore is the durable implementation of Store, backed by a local
// sqlite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and
// ensures the schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	// WAL mode for better concurrency under the request-per-call model.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Concurrent writers wait for the lock instead of failing with
	// SQLITE_BUSY.
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// RecordSearch inserts a new row or bumps the counter of the existing
// one in a single upsert. The unique index on search_query keeps one
// row per query and the one-statement increment means concurrent
// identical queries cannot lose updates.
func (s *SQLiteStore) RecordSearch(entry SearchEntry) error {
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := s.db.Exec(
		`INSERT INTO search_history
		 (search_query, city_name, region, country, latitude, longitude, search_count, last_searched)
		 VALUES (?, ?, ?, ?, ?, ?, 1, ?)
		 ON CONFLICT(search_query) DO UPDATE SET
		 search_count = search_count + 1,
		 last_searched = excluded.last_searched`,
		entry.Query, entry.CityName, entry.Region, entry.Country,
		entry.Latitude, entry.Longitude, now,
	)
	if err != nil {
		return fmt.Errorf("record search: %w", err)
	}
	return nil
}

// SearchHistory matches fragment as a case-insensitive substring of the
// stored query or city name, ranked by search count then recency.
func (s *SQLiteStore) SearchHistory(fragment string) ([]SearchEntry, error) {
	pattern := "%" + strings.ToLower(fragment) + "%"

	rows, err := s.db.Query(
		`SELECT search_query, city_name, region, country, latitude, longitude, search_count, last_searched
		 FROM search_history
		 WHERE LOWER(city_name) LIKE ? OR LOWER(search_query) LIKE ?
		 ORDER BY search_count DESC, last_searched DESC
		 LIMIT ?`,
		pattern, pattern, maxHistoryResults,
	)
	if err != nil {
		return nil, fmt.Errorf("query search history: %w", err)
	}
	defer rows.Close()

	var entries []SearchEntry
	for rows.Next() {
		var (
			e       SearchEntry
			region  sql.NullString
			country sql.NullString
			lastStr string
		)
		if err := rows.Scan(&e.Query, &e.CityName, &region, &country,
			&e.Latitude, &e.Longitude, &e.SearchCount, &lastStr); err != nil {
			return nil, fmt.Errorf("scan search history row: %w", err)
		}
		e.Region = region.String
		e.Country = country.String
		e.LastSearched, _ = time.Parse(time.RFC3339, lastStr)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search history rows: %w", err)
	}
	return entries, nil
}

// AddFavorite inserts a favorite and returns the autoincrement id.
// AUTOINCREMENT guarantees ids are never reused after deletion.
func (s *SQLiteStore) AddFavorite(fav Favorite) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339)

	res, err := s.db.Exec(
		`INSERT INTO favorites (city_name, region, country, latitude, longitude, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		fav.CityName, fav.Region, fav.Country, fav.Latitude, fav.Longitude, now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert favorite: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert favorite: %w", err)
	}
	return id, nil
}

// ListFavorites returns all favorites, newest first.
func (s *SQLiteStore) ListFavorites() ([]Favorite, error) {
	rows, err := s.db.Query(
		`SELECT id, city_name, region, country, latitude, longitude, created_at
		 FROM favorites
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	var favs []Favorite
	for rows.Next() {
		var (
			f          Favorite
			region     sql.NullString
			country    sql.NullString
			createdStr string
		)
		if err := rows.Scan(&f.ID, &f.CityName, &region, &country,
			&f.Latitude, &f.Longitude, &createdStr); err != nil {
			return nil, fmt.Errorf("scan favorite row: %w", err)
		}
		f.Region = region.String
		f.Country = country.String
		f.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		favs = append(favs, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorite rows: %w", err)
	}
	return favs, nil
}

// DeleteFavorite deletes by id and reports whether a row was removed.
// Ids that do not parse as integers are treated as not found.
func (s *SQLiteStore) DeleteFavorite(id string) (bool, error) {
	favID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return false, nil
	}

	res, err := s.db.Exec(`DELETE FROM favorites WHERE id = ?`, favID)
	if err != nil {
		return false, fmt.Errorf("delete favorite: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete favorite: %w", err)
	}
	return affected > 0, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Package storage provides SQLite-based caching of fetched rosters and the
// search history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-dex/internal/config"
	"github.com/vovakirdan/tui-dex/internal/pokemon"
)

// ErrNotCached is returned when a region has never been fetched.
var ErrNotCached = errors.New("storage: roster not cached")

// Store manages the SQLite database connection for the roster cache.
type Store struct {
	db *sql.DB
}

// RosterMeta describes one cached roster.
type RosterMeta struct {
	RegionID  string
	SourceURL string
	Count     int
	FetchedAt time.Time
}

// SearchEntry is one recorded search.
type SearchEntry struct {
	ID        int64
	RegionID  string
	Query     string
	Type1     string
	Type2     string
	Stats     string // Conditions in key:op:line form, space separated
	Results   int
	CreatedAt time.Time
}

// RegionStats contains aggregated statistics for a cached roster.
type RegionStats struct {
	RegionID  string
	Count     int
	DualTyped int
	AvgTotal  float64
	MaxTotal  int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS roster_meta (
			region_id TEXT PRIMARY KEY,
			source_url TEXT NOT NULL DEFAULT '',
			fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS rosters (
			region_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			unique_id TEXT NOT NULL,
			name TEXT NOT NULL,
			name_en TEXT NOT NULL DEFAULT '',
			form TEXT NOT NULL DEFAULT '',
			type1 TEXT NOT NULL,
			type2 TEXT NOT NULL DEFAULT '',
			base_h INTEGER NOT NULL DEFAULT 0,
			base_a INTEGER NOT NULL DEFAULT 0,
			base_b INTEGER NOT NULL DEFAULT 0,
			base_c INTEGER NOT NULL DEFAULT 0,
			base_d INTEGER NOT NULL DEFAULT 0,
			base_s INTEGER NOT NULL DEFAULT 0,
			base_t INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (region_id, position)
		);
		CREATE INDEX IF NOT EXISTS idx_rosters_region ON rosters(region_id);

		CREATE TABLE IF NOT EXISTS searches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			region_id TEXT NOT NULL,
			query TEXT NOT NULL DEFAULT '',
			type1 TEXT NOT NULL DEFAULT '',
			type2 TEXT NOT NULL DEFAULT '',
			stats TEXT NOT NULL DEFAULT '',
			results INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_searches_created ON searches(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRoster replaces the cached roster of a region.
func (s *Store) SaveRoster(regionID, sourceURL string, records []pokemon.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM rosters WHERE region_id = ?", regionID); err != nil {
		return fmt.Errorf("storage: cannot clear roster: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO rosters
		 (region_id, position, unique_id, name, name_en, form, type1, type2,
		  base_h, base_a, base_b, base_c, base_d, base_s, base_t)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		_, err := stmt.Exec(
			regionID, i, r.ID, r.Name, r.NameEN, r.Form, string(r.Type1), string(r.Type2),
			r.Stats.HP, r.Stats.Attack, r.Stats.Defense, r.Stats.SpAttack, r.Stats.SpDefense, r.Stats.Speed,
			r.Stats.TotalOverride,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save record %s: %w", r.ID, err)
		}
	}

	_, err = tx.Exec(
		`INSERT INTO roster_meta (region_id, source_url, fetched_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(region_id) DO UPDATE SET source_url = excluded.source_url, fetched_at = CURRENT_TIMESTAMP`,
		regionID, sourceURL,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save roster meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit roster: %w", err)
	}
	return nil
}

// LoadRoster returns the cached roster of a region in upstream order.
// Returns ErrNotCached if the region was never saved.
func (s *Store) LoadRoster(regionID string) ([]pokemon.Record, error) {
	if _, err := s.RosterInfo(regionID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT unique_id, name, name_en, form, type1, type2,
		        base_h, base_a, base_b, base_c, base_d, base_s, base_t
		 FROM rosters
		 WHERE region_id = ?
		 ORDER BY position`,
		regionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query roster: %w", err)
	}
	defer rows.Close()

	var records []pokemon.Record
	for rows.Next() {
		var r pokemon.Record
		var type1, type2 string
		if err := rows.Scan(
			&r.ID, &r.Name, &r.NameEN, &r.Form, &type1, &type2,
			&r.Stats.HP, &r.Stats.Attack, &r.Stats.Defense, &r.Stats.SpAttack, &r.Stats.SpDefense, &r.Stats.Speed,
			&r.Stats.TotalOverride,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Type1 = pokemon.Type(type1)
		r.Type2 = pokemon.Type(type2)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// RosterInfo returns metadata for a cached roster.
func (s *Store) RosterInfo(regionID string) (*RosterMeta, error) {
	meta := &RosterMeta{RegionID: regionID}
	var fetchedAt any

	err := s.db.QueryRow(
		`SELECT m.source_url, m.fetched_at,
		        (SELECT COUNT(*) FROM rosters r WHERE r.region_id = m.region_id)
		 FROM roster_meta m
		 WHERE m.region_id = ?`,
		regionID,
	).Scan(&meta.SourceURL, &fetchedAt, &meta.Count)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotCached, regionID)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query roster meta: %w", err)
	}

	meta.FetchedAt = parseTime(fetchedAt)
	return meta, nil
}

// ClearRoster drops a region from the cache.
func (s *Store) ClearRoster(regionID string) error {
	if _, err := s.db.Exec("DELETE FROM rosters WHERE region_id = ?", regionID); err != nil {
		return fmt.Errorf("storage: cannot clear roster: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM roster_meta WHERE region_id = ?", regionID); err != nil {
		return fmt.Errorf("storage: cannot clear roster meta: %w", err)
	}
	return nil
}

// RegionStats aggregates a cached roster. A region with no rows yields a
// zero Count.
func (s *Store) RegionStats(regionID string) (*RegionStats, error) {
	stats := &RegionStats{RegionID: regionID}

	// base_t is 0 when the API did not ship a total; fall back to the sum.
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN type2 != '' THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(t), 0),
		        COALESCE(MAX(t), 0)
		 FROM (
		   SELECT type2,
		          CASE WHEN base_t > 0 THEN base_t
		               ELSE base_h + base_a + base_b + base_c + base_d + base_s END AS t
		   FROM rosters WHERE region_id = ?
		 )`,
		regionID,
	).Scan(&stats.Count, &stats.DualTyped, &stats.AvgTotal, &stats.MaxTotal)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get region stats: %w", err)
	}

	return stats, nil
}

// SaveSearch records a search. Returns the ID of the inserted record.
func (s *Store) SaveSearch(e SearchEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO searches (region_id, query, type1, type2, stats, results)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.RegionID, e.Query, e.Type1, e.Type2, e.Stats, e.Results,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save search: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentSearches returns the newest searches first.
func (s *Store) RecentSearches(limit int) ([]SearchEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, region_id, query, type1, type2, stats, results, created_at
		 FROM searches
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query searches: %w", err)
	}
	defer rows.Close()

	var entries []SearchEntry
	for rows.Next() {
		var e SearchEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RegionID, &e.Query, &e.Type1, &e.Type2, &e.Stats, &e.Results, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Package roster resolves region rosters from memory, the local cache or
// the upstream API, and runs searches over them.
package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dex/internal/pokemon"
	"github.com/vovakirdan/tui-dex/internal/registry"
	"github.com/vovakirdan/tui-dex/internal/storage"
)

// Cache persists rosters between runs. *storage.Store implements it.
type Cache interface {
	LoadRoster(regionID string) ([]pokemon.Record, error)
	SaveRoster(regionID, sourceURL string, records []pokemon.Record) error
	SaveSearch(e storage.SearchEntry) (int64, error)
}

// Fetcher downloads rosters. *api.Client implements it.
type Fetcher interface {
	URL(region registry.Region) string
	FetchRoster(ctx context.Context, region registry.Region) ([]pokemon.Record, error)
}

// Service is safe for concurrent use by SSH sessions and HTTP handlers.
type Service struct {
	cache   Cache
	fetcher Fetcher
	logger  *log.Logger

	mu  sync.RWMutex
	mem map[string][]pokemon.Record
}

// NewService creates a service. fetcher may be nil for offline use, in
// which case only cached regions can be loaded.
func NewService(cache Cache, fetcher Fetcher, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		cache:   cache,
		fetcher: fetcher,
		logger:  logger,
		mem:     make(map[string][]pokemon.Record),
	}
}

// Roster returns the roster of a region, fetching and caching it on first
// use. The returned slice must not be modified.
func (s *Service) Roster(ctx context.Context, regionID string) ([]pokemon.Record, error) {
	region, err := registry.Get(regionID)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	records, ok := s.mem[region.ID]
	s.mu.RUnlock()
	if ok {
		return records, nil
	}

	if s.cache != nil {
		records, err := s.cache.LoadRoster(region.ID)
		if err == nil {
			s.remember(region.ID, records)
			return records, nil
		}
		if !errors.Is(err, storage.ErrNotCached) {
			return nil, err
		}
	}

	if s.fetcher == nil {
		return nil, fmt.Errorf("%w: %s (run `dex fetch` first)", storage.ErrNotCached, region.ID)
	}
	return s.Refresh(ctx, region.ID)
}

// Refresh fetches a region from upstream and replaces the cached copy.
func (s *Service) Refresh(ctx context.Context, regionID string) ([]pokemon.Record, error) {
	region, err := registry.Get(regionID)
	if err != nil {
		return nil, err
	}
	if s.fetcher == nil {
		return nil, fmt.Errorf("roster: no upstream configured for %s", region.ID)
	}

	records, err := s.fetcher.FetchRoster(ctx, region)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SaveRoster(region.ID, s.fetcher.URL(region), records); err != nil {
			return nil, err
		}
	}
	s.remember(region.ID, records)
	s.logger.Info("roster refreshed", "region", region.ID, "records", len(records))
	return records, nil
}

// Search runs q over a region and records it in the search history.
// A history write failure is logged, not returned.
func (s *Service) Search(ctx context.Context, regionID string, q pokemon.Query) ([]pokemon.Record, error) {
	records, err := s.Roster(ctx, regionID)
	if err != nil {
		return nil, err
	}

	results := pokemon.Apply(records, q)
	s.RecordSearch(regionID, q, len(results))
	return results, nil
}

// RecordSearch adds a search that was run elsewhere to the history.
func (s *Service) RecordSearch(regionID string, q pokemon.Query, results int) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.SaveSearch(HistoryEntry(regionID, q, results)); err != nil {
		s.logger.Warn("cannot record search", "region", regionID, "err", err)
	}
}

func (s *Service) remember(regionID string, records []pokemon.Record) {
	s.mu.Lock()
	s.mem[regionID] = records
	s.mu.Unlock()
}

// HistoryEntry describes q as a search history row.
func HistoryEntry(regionID string, q pokemon.Query, results int) storage.SearchEntry {
	e := storage.SearchEntry{
		RegionID: regionID,
		Query:    q.Name,
		Results:  results,
	}
	if !q.NoTypeFilter {
		e.Type1 = string(q.Type1)
		e.Type2 = string(q.Type2)
	}
	conds := make([]string, len(q.Stats))
	for i, c := range q.Stats {
		conds[i] = c.String()
	}
	e.Stats = strings.Join(conds, " ")
	return e
}

// QueryFromHistory rebuilds the query a history row was recorded from.
// Stat conditions that no longer parse are dropped.
func QueryFromHistory(e storage.SearchEntry) pokemon.Query {
	q := pokemon.NewQuery()
	q.Name = e.Query
	if e.Type1 != "" || e.Type2 != "" {
		q.NoTypeFilter = false
		q.Type1 = pokemon.Selector(e.Type1)
		q.Type2 = pokemon.Selector(e.Type2)
	}
	for _, f := range strings.Fields(e.Stats) {
		if c, err := pokemon.ParseStatCondition(f); err == nil {
			q.Stats = append(q.Stats, c)
		}
	}
	return q
}

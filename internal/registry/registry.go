// Package registry provides a global registry of roster sources (regions).
// Regions register themselves in init() functions, so front-ends can list
// and resolve them without hardcoding endpoint paths.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownRegion is returned when a region ID is not registered.
var ErrUnknownRegion = errors.New("registry: unknown region")

// Region describes one roster endpoint of the Pokédex API.
type Region struct {
	// ID is the short name used on the command line and in the cache
	// (e.g. "national").
	ID string

	// Title is the display name (e.g. "全国版").
	Title string

	// Path is the endpoint path relative to the API base URL,
	// e.g. "national-pokemon/".
	Path string

	// Order controls listing order; lower comes first.
	Order int
}

var (
	regions = make(map[string]Region)
	mu      sync.RWMutex
)

// Register adds a region to the registry.
// Panics if a region with the same ID is already registered.
func Register(r Region) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := regions[r.ID]; exists {
		panic(fmt.Sprintf("registry: region %q already registered", r.ID))
	}
	regions[r.ID] = r
}

// List returns all registered regions, by Order then ID.
func List() []Region {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Region, 0, len(regions))
	for _, r := range regions {
		result = append(result, r)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Get looks up a region by ID.
func Get(id string) (Region, error) {
	mu.RLock()
	defer mu.RUnlock()

	r, ok := regions[id]
	if !ok {
		return Region{}, fmt.Errorf("%w %q", ErrUnknownRegion, id)
	}
	return r, nil
}

// Exists checks if a region with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := regions[id]
	return ok
}

// ForURL returns the region whose endpoint path appears in url, the way the
// browser derives its heading from the current API URL.
func ForURL(url string) (Region, bool) {
	for _, r := range List() {
		if strings.Contains(url, strings.Trim(r.Path, "/")) {
			return r, true
		}
	}
	return Region{}, false
}

package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dex/internal/api"
	"github.com/vovakirdan/tui-dex/internal/pokemon"
	"github.com/vovakirdan/tui-dex/internal/registry"
	"github.com/vovakirdan/tui-dex/internal/storage"
)

type fakeSearcher struct {
	roster  []pokemon.Record
	err     error
	lastQry pokemon.Query
}

func (f *fakeSearcher) Search(_ context.Context, regionID string, q pokemon.Query) ([]pokemon.Record, error) {
	f.lastQry = q
	if f.err != nil {
		return nil, f.err
	}
	if !registry.Exists(regionID) {
		return nil, fmt.Errorf("%w: %s", registry.ErrUnknownRegion, regionID)
	}
	return pokemon.Apply(f.roster, q), nil
}

func testRoster(n int) []pokemon.Record {
	out := make([]pokemon.Record, 0, n+2)
	out = append(out,
		pokemon.Record{ID: "0006", Name: "リザードン", Type1: pokemon.TypeFire, Type2: pokemon.TypeFlying,
			Stats: pokemon.Stats{HP: 78, Attack: 84, Defense: 78, SpAttack: 109, SpDefense: 85, Speed: 100}},
		pokemon.Record{ID: "0004", Name: "ヒトカゲ", Type1: pokemon.TypeFire,
			Stats: pokemon.Stats{HP: 39, Attack: 52, Defense: 43, SpAttack: 60, SpDefense: 50, Speed: 65}},
	)
	for i := 0; i < n; i++ {
		out = append(out, pokemon.Record{ID: fmt.Sprintf("9%03d", i), Name: "コイル", Type1: pokemon.TypeElectric, Type2: pokemon.TypeSteel,
			Stats: pokemon.Stats{HP: 25, Attack: 35, Defense: 70, SpAttack: 95, SpDefense: 55, Speed: 45}})
	}
	return out
}

func newTestServer(s Searcher) http.Handler {
	return New(NewHandler(s, 72, log.New(io.Discard)))
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealthz(t *testing.T) {
	rec := get(t, newTestServer(&fakeSearcher{}), "/healthz")
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(headerRequestID) == "" {
		t.Error("Expected X-Request-Id header")
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(headerRequestID, "abc")
	rec := httptest.NewRecorder()
	newTestServer(&fakeSearcher{}).ServeHTTP(rec, req)

	if got := rec.Header().Get(headerRequestID); got != "abc" {
		t.Errorf("X-Request-Id = %q, want abc", got)
	}
}

func TestRegions(t *testing.T) {
	rec := get(t, newTestServer(&fakeSearcher{}), "/api/regions")
	regions := decode[[]RegionResponse](t, rec)
	if len(regions) != 3 || regions[0].ID != "national" {
		t.Errorf("Unexpected regions: %+v", regions)
	}
}

func TestStatBounds(t *testing.T) {
	tests := []struct {
		target  string
		code    int
		display string
	}{
		{"/api/stats?base=100", http.StatusOK, "120〜167"},
		{"/api/stats?base=100&hp=true", http.StatusOK, "175〜207"},
		{"/api/stats?base=abc", http.StatusBadRequest, ""},
		{"/api/stats?base=-1", http.StatusBadRequest, ""},
		{"/api/stats?base=5&hp=maybe", http.StatusBadRequest, ""},
	}

	h := newTestServer(&fakeSearcher{})
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, h, tt.target)
			if rec.Code != tt.code {
				t.Fatalf("status = %d, want %d", rec.Code, tt.code)
			}
			if tt.code != http.StatusOK {
				return
			}
			if got := decode[BoundsResponse](t, rec); got.Display != tt.display {
				t.Errorf("display = %q, want %q", got.Display, tt.display)
			}
		})
	}
}

func TestListRosterFilters(t *testing.T) {
	tests := []struct {
		name   string
		target string
		ids    []string
	}{
		{"no filters", "/api/national/", []string{"0006", "0004"}},
		{"no trailing slash", "/api/national", []string{"0006", "0004"}},
		{"name", "/api/national/?q=%E3%83%AA%E3%82%B6", []string{"0006"}},
		{"type english", "/api/national/?type1=fire&type2=any", []string{"0006", "0004"}},
		{"mono typed", "/api/national/?type1=any&type2=none", []string{"0004"}},
		{"type kanji", "/api/national/?type1=%E9%A3%9B", []string{"0006"}},
		{"stat condition", "/api/national/?s_op=gte&s_line=100", []string{"0006"}},
		{"ignored half condition", "/api/national/?s_op=gte", []string{"0006", "0004"}},
	}

	h := newTestServer(&fakeSearcher{roster: testRoster(0)})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
			}
			resp := decode[ListResponse](t, rec)
			if resp.Count != len(tt.ids) || len(resp.Results) != len(tt.ids) {
				t.Fatalf("count = %d results = %d, want %d", resp.Count, len(resp.Results), len(tt.ids))
			}
			for i, id := range tt.ids {
				if resp.Results[i].ID != id {
					t.Errorf("result %d = %s, want %s", i, resp.Results[i].ID, id)
				}
			}
		})
	}
}

func TestListRosterRecordShape(t *testing.T) {
	h := newTestServer(&fakeSearcher{roster: testRoster(0)})
	resp := decode[ListResponse](t, get(t, h, "/api/national/?limit=1"))

	r := resp.Results[0]
	if r.Total != 534 {
		t.Errorf("total = %d, want 534", r.Total)
	}
	if len(r.Types) != 2 {
		t.Errorf("types = %v", r.Types)
	}
	if r.Ranges["h"] != (pokemon.Bounds{Min: 153, Max: 185}) {
		t.Errorf("h range = %+v", r.Ranges["h"])
	}
}

func TestListRosterPaging(t *testing.T) {
	h := newTestServer(&fakeSearcher{roster: testRoster(100)})

	first := decode[ListResponse](t, get(t, h, "/api/national/"))
	if first.Count != 102 || len(first.Results) != pokemon.DefaultPerPage {
		t.Fatalf("count = %d results = %d", first.Count, len(first.Results))
	}
	if first.Next == nil || first.Previous != nil {
		t.Fatalf("next = %v previous = %v", first.Next, first.Previous)
	}

	capped := decode[ListResponse](t, get(t, h, "/api/national/?limit=500"))
	if len(capped.Results) != 72 {
		t.Errorf("Expected limit capped at 72, got %d", len(capped.Results))
	}

	last := decode[ListResponse](t, get(t, h, "/api/national/?offset=96&limit=24"))
	if len(last.Results) != 6 || last.Next != nil || last.Previous == nil {
		t.Errorf("last page: results = %d next = %v previous = %v", len(last.Results), last.Next, last.Previous)
	}

	past := decode[ListResponse](t, get(t, h, "/api/national/?offset=9223372036854775807&limit=24"))
	if len(past.Results) != 0 || past.Next != nil {
		t.Errorf("huge offset: results = %d next = %v", len(past.Results), past.Next)
	}
	if past.Previous == nil || !strings.Contains(*past.Previous, "offset=9223372036854775783") {
		t.Errorf("huge offset: previous = %v", past.Previous)
	}
}

func TestListRosterBadRequests(t *testing.T) {
	h := newTestServer(&fakeSearcher{roster: testRoster(0)})
	for _, target := range []string{
		"/api/national/?type1=wood",
		"/api/national/?limit=0",
		"/api/national/?limit=x",
		"/api/national/?offset=-3",
	} {
		if rec := get(t, h, target); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}

func TestListRosterErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		path string
		code int
	}{
		{"unknown region", nil, "/api/kanto/", http.StatusNotFound},
		{"not cached", storage.ErrNotCached, "/api/galar/", http.StatusServiceUnavailable},
		{"upstream", fmt.Errorf("api: fetch galar: %w", api.ErrUpstream), "/api/galar/", http.StatusBadGateway},
		{"other", fmt.Errorf("disk on fire"), "/api/galar/", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(&fakeSearcher{err: tt.err})
			if rec := get(t, h, tt.path); rec.Code != tt.code {
				t.Errorf("status = %d, want %d", rec.Code, tt.code)
			}
		})
	}
}

package tui

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dex/internal/pokemon"
)

type recordedSearch struct {
	regionID string
	query    pokemon.Query
	results  int
}

type fakeService struct {
	mu       sync.Mutex
	rosters  map[string][]pokemon.Record
	err      error
	refresh  int
	searches []recordedSearch
}

func (f *fakeService) Roster(_ context.Context, regionID string) ([]pokemon.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rosters[regionID], nil
}

func (f *fakeService) Refresh(ctx context.Context, regionID string) ([]pokemon.Record, error) {
	f.refresh++
	return f.Roster(ctx, regionID)
}

func (f *fakeService) RecordSearch(regionID string, q pokemon.Query, results int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, recordedSearch{regionID, q, results})
}

func testRoster() []pokemon.Record {
	return []pokemon.Record{
		{ID: "0006", Name: "リザードン", Type1: pokemon.TypeFire, Type2: pokemon.TypeFlying,
			Stats: pokemon.Stats{HP: 78, Attack: 84, Defense: 78, SpAttack: 109, SpDefense: 85, Speed: 100}},
		{ID: "0004", Name: "ヒトカゲ", Type1: pokemon.TypeFire,
			Stats: pokemon.Stats{HP: 39, Attack: 52, Defense: 43, SpAttack: 60, SpDefense: 50, Speed: 65}},
		{ID: "0007", Name: "ゼニガメ", Type1: pokemon.TypeWater,
			Stats: pokemon.Stats{HP: 44, Attack: 48, Defense: 65, SpAttack: 50, SpDefense: 64, Speed: 43}},
		{ID: "0721", Name: "ボルケニオン", Type1: pokemon.TypeFire, Type2: pokemon.TypeWater,
			Stats: pokemon.Stats{HP: 80, Attack: 110, Defense: 120, SpAttack: 130, SpDefense: 90, Speed: 70}},
		{ID: "0025", Name: "ピカチュウ", Type1: pokemon.TypeElectric,
			Stats: pokemon.Stats{HP: 35, Attack: 55, Defense: 40, SpAttack: 50, SpDefense: 50, Speed: 90}},
	}
}

func newFakeService() *fakeService {
	return &fakeService{rosters: map[string][]pokemon.Record{
		"national": testRoster(),
		"galar":    testRoster()[:2],
	}}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m BrowserModel, msgs ...tea.Msg) (BrowserModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(BrowserModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m, cmd
}

// loadedBrowser returns a browser with the national roster loaded and two
// records per page.
func loadedBrowser(t *testing.T, svc *fakeService) BrowserModel {
	t.Helper()
	m := NewBrowserModel(BrowserOptions{Service: svc, PerPage: 2, Width: 140, Height: 40})
	msg := m.loadCmd(false)()
	m, _ = press(t, m, msg)
	return m
}

func visibleIDs(m BrowserModel) []string {
	ids := make([]string, len(m.Visible()))
	for i, r := range m.Visible() {
		ids[i] = r.ID
	}
	return ids
}

func TestBrowserLoadsInitialRegion(t *testing.T) {
	m := NewBrowserModel(BrowserOptions{Service: newFakeService(), Region: "galar"})
	if m.Region().ID != "galar" {
		t.Fatalf("Region() = %s, want galar", m.Region().ID)
	}

	msg, ok := m.loadCmd(false)().(rosterLoadedMsg)
	if !ok {
		t.Fatal("loadCmd did not produce rosterLoadedMsg")
	}
	if msg.regionID != "galar" || len(msg.records) != 2 {
		t.Errorf("loaded %s with %d records", msg.regionID, len(msg.records))
	}

	m, _ = press(t, m, msg)
	if m.loading {
		t.Error("Expected loading to finish")
	}
	if len(m.Results()) != 2 {
		t.Errorf("Expected whole roster on start, got %d", len(m.Results()))
	}
}

func TestBrowserLoadError(t *testing.T) {
	svc := newFakeService()
	svc.err = errors.New("offline")
	m := loadedBrowser(t, svc)

	if m.Status() != "offline" || !m.statusErr {
		t.Errorf("Expected error status, got %q", m.Status())
	}
	if len(m.Results()) != 0 {
		t.Errorf("Expected no results, got %d", len(m.Results()))
	}
}

func TestBrowserPaging(t *testing.T) {
	m := loadedBrowser(t, newFakeService())

	if got := visibleIDs(m); strings.Join(got, ",") != "0006,0004" {
		t.Fatalf("page 1 = %v", got)
	}

	right := tea.KeyMsg{Type: tea.KeyRight}
	left := tea.KeyMsg{Type: tea.KeyLeft}

	m, _ = press(t, m, right)
	if got := visibleIDs(m); strings.Join(got, ",") != "0007,0721" {
		t.Errorf("page 2 = %v", got)
	}

	m, _ = press(t, m, right, right, right)
	if m.Pager().Page != 3 {
		t.Errorf("Expected to stop at page 3, got %d", m.Pager().Page)
	}
	if got := visibleIDs(m); strings.Join(got, ",") != "0025" {
		t.Errorf("page 3 = %v", got)
	}

	m, _ = press(t, m, left, left, left)
	if m.Pager().Page != 1 {
		t.Errorf("Expected to stop at page 1, got %d", m.Pager().Page)
	}

	m, _ = press(t, m, runes("a"))
	if len(m.Visible()) != 5 {
		t.Errorf("show all: expected 5 visible, got %d", len(m.Visible()))
	}
	m, _ = press(t, m, runes("a"))
	if len(m.Visible()) != 2 {
		t.Errorf("paged again: expected 2 visible, got %d", len(m.Visible()))
	}
}

func TestBrowserTypePickers(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.Msg
		t1   pokemon.Selector
		t2   pokemon.Selector
		ids  string
	}{
		{"type1 none is mono-typed", []tea.Msg{runes("1")}, pokemon.None, pokemon.Any, "0004,0007,0025"},
		{"type1 fire", []tea.Msg{runes("1"), runes("1"), runes("1")}, pokemon.Selector(pokemon.TypeFire), pokemon.Any, "0006,0004,0721"},
		{"fire and water", []tea.Msg{runes("1"), runes("1"), runes("1"), runes("2"), runes("2"), runes("2"), runes("2")},
			pokemon.Selector(pokemon.TypeFire), pokemon.Selector(pokemon.TypeWater), "0721"},
		{"backwards wraps to fairy", []tea.Msg{runes("!")}, pokemon.Selector(pokemon.TypeFairy), pokemon.Any, ""},
		{"both none", []tea.Msg{runes("1"), runes("2")}, pokemon.None, pokemon.None, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := loadedBrowser(t, newFakeService())
			m, _ = press(t, m, runes("a")) // Show all
			m, _ = press(t, m, tt.keys...)

			q := m.Query()
			if q.Type1 != tt.t1 || q.Type2 != tt.t2 {
				t.Errorf("selectors = %s/%s, want %s/%s", q.Type1, q.Type2, tt.t1, tt.t2)
			}
			if q.NoTypeFilter {
				t.Error("Expected type filter to be on")
			}
			if got := strings.Join(visibleIDs(m), ","); got != tt.ids {
				t.Errorf("visible = %s, want %s", got, tt.ids)
			}
		})
	}
}

func TestBrowserNameSearch(t *testing.T) {
	svc := newFakeService()
	m := loadedBrowser(t, svc)

	m, _ = press(t, m, runes("/"), runes("q"), runes("ヒト"))
	if m.IsQuitting() {
		t.Fatal("q typed into the search box must not quit")
	}
	if len(m.Results()) != 5 {
		t.Fatalf("Search must not apply before enter, got %d results", len(m.Results()))
	}

	// Clear the stray q, then apply.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlU}, runes("ヒト"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// Any/Any keeps dual-typed records only, and ヒトカゲ is mono-typed.
	if got := len(m.Results()); got != 0 {
		t.Errorf("Expected no results with Any/Any, got %v", visibleIDs(m))
	}
	if m.Query().NoTypeFilter {
		t.Error("Expected the name search to turn the type filter on")
	}
	if m.focus != focusTable {
		t.Error("Expected focus back on the table")
	}

	if cmd == nil {
		t.Fatal("Expected a command recording the search")
	}
	cmd()
	if len(svc.searches) != 1 || svc.searches[0].query.Name != "ヒト" || svc.searches[0].results != 0 {
		t.Errorf("recorded searches = %+v", svc.searches)
	}

	m, _ = press(t, m, runes("1")) // type1 -> None
	if got := strings.Join(visibleIDs(m), ","); got != "0004" {
		t.Errorf("visible with None/Any = %s, want 0004", got)
	}
}

func TestBrowserStatSearchAppliesTypes(t *testing.T) {
	m := loadedBrowser(t, newFakeService())

	m, _ = press(t, m, runes("a"), runes(":"), runes("h:gte:40"), tea.KeyMsg{Type: tea.KeyEnter})
	if got := strings.Join(visibleIDs(m), ","); got != "0006,0721" {
		t.Errorf("visible = %s, want dual-typed 0006,0721", got)
	}
	if m.Query().NoTypeFilter {
		t.Error("Expected the stat search to turn the type filter on")
	}
}

func TestBrowserSearchCancel(t *testing.T) {
	m := loadedBrowser(t, newFakeService())

	m, _ = press(t, m, runes("/"), runes("ゼニ"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.Query().Name != "" || m.nameInput.Value() != "" {
		t.Errorf("Expected cancelled search, got %q / %q", m.Query().Name, m.nameInput.Value())
	}
	if len(m.Results()) != 5 {
		t.Errorf("Expected all results, got %d", len(m.Results()))
	}
}

func TestBrowserStatConditions(t *testing.T) {
	m := loadedBrowser(t, newFakeService())

	m, _ = press(t, m, runes(":"), runes("s:gte:70 c:gte:100"), tea.KeyMsg{Type: tea.KeyEnter})
	if got := strings.Join(visibleIDs(m), ","); got != "0006,0721" {
		t.Errorf("visible = %s, want 0006,0721", got)
	}
	if len(m.Query().Stats) != 2 {
		t.Errorf("Expected 2 conditions, got %v", m.Query().Stats)
	}

	m, _ = press(t, m, runes(":"), tea.KeyMsg{Type: tea.KeyCtrlU}, runes("speed>9"), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.statusErr {
		t.Error("Expected an error status for a bad condition")
	}
	if len(m.Query().Stats) != 2 {
		t.Errorf("Bad input must keep the previous conditions, got %v", m.Query().Stats)
	}
}

func TestBrowserReset(t *testing.T) {
	m := loadedBrowser(t, newFakeService())
	m, _ = press(t, m,
		runes("1"), runes("1"), runes("1"),
		runes(":"), runes("h:gte:70"), tea.KeyMsg{Type: tea.KeyEnter},
		runes("a"),
	)
	if len(m.Results()) != 2 {
		t.Fatalf("Expected 2 results before reset, got %d", len(m.Results()))
	}

	m, _ = press(t, m, runes("x"))
	q := m.Query()
	if !q.NoTypeFilter || q.Type1 != pokemon.Any || q.Type2 != pokemon.Any || len(q.Stats) != 0 {
		t.Errorf("Query not reset: %+v", q)
	}
	if len(m.Results()) != 5 || m.Pager().ShowAll || m.Pager().Page != 1 {
		t.Errorf("results=%d pager=%+v", len(m.Results()), m.Pager())
	}
}

func TestBrowserActualStats(t *testing.T) {
	m := loadedBrowser(t, newFakeService())

	// Columns: No., name, types, H...
	if got := m.table.Rows()[0][3]; got != "78" {
		t.Errorf("base HP cell = %q, want 78", got)
	}

	m, _ = press(t, m, runes("v"))
	if got := m.table.Rows()[0][3]; got != "153〜185" {
		t.Errorf("actual HP cell = %q, want 153〜185", got)
	}
	if got := m.table.Rows()[0][9]; got != "534" {
		t.Errorf("total cell = %q, want 534", got)
	}
}

func TestBrowserRegionSwitch(t *testing.T) {
	m := loadedBrowser(t, newFakeService())

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Region().ID != "galar" || !m.loading || cmd == nil {
		t.Fatalf("region=%s loading=%v", m.Region().ID, m.loading)
	}

	// A late answer for the region we left is dropped.
	m, _ = press(t, m, rosterLoadedMsg{regionID: "national", records: testRoster()})
	if !m.loading {
		t.Error("Stale load must not finish loading")
	}

	m, _ = press(t, m, m.loadCmd(false)())
	if len(m.Results()) != 2 {
		t.Errorf("Expected galar roster, got %d", len(m.Results()))
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Region().ID != "national" {
		t.Errorf("Expected national after shift+tab, got %s", m.Region().ID)
	}
}

func TestBrowserRefresh(t *testing.T) {
	svc := newFakeService()
	m := loadedBrowser(t, svc)

	m, cmd := press(t, m, runes("R"))
	if !m.loading || cmd == nil {
		t.Fatal("Expected refresh to start loading")
	}
	m, _ = press(t, m, m.loadCmd(true)())
	if svc.refresh != 1 {
		t.Errorf("Expected 1 refresh, got %d", svc.refresh)
	}
}

func TestBrowserExport(t *testing.T) {
	m := loadedBrowser(t, newFakeService())
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !m.statusErr {
		t.Error("Expected export to be disabled without an export dir")
	}

	dir := t.TempDir()
	m = NewBrowserModel(BrowserOptions{Service: newFakeService(), ExportDir: dir})
	m, _ = press(t, m, m.loadCmd(false)())

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("Expected an export command")
	}
	done, ok := cmd().(exportDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("export failed: %+v", done)
	}
	if _, err := os.Stat(done.path); err != nil {
		t.Errorf("export file missing: %v", err)
	}
}

func TestBrowserHistoryAndQuit(t *testing.T) {
	m := loadedBrowser(t, newFakeService())

	m, _ = press(t, m, runes("H"))
	if !m.WantsHistory() {
		t.Error("Expected history request")
	}
	if m = m.Resume(); m.WantsHistory() {
		t.Error("Resume must clear the request")
	}

	m, cmd := press(t, m, runes("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Error("Expected quit")
	}
	if m.View() != "" {
		t.Error("Expected empty view after quit")
	}
}

func TestBrowserView(t *testing.T) {
	m := loadedBrowser(t, newFakeService())
	view := m.View()

	for _, want := range []string{"全国版", "リザードン", "page 1/3", "素早さ"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestCycleSelector(t *testing.T) {
	n := len(pokemon.SelectorOptions())
	s := pokemon.Any
	for i := 0; i < n; i++ {
		s = cycleSelector(s, 1)
	}
	if s != pokemon.Any {
		t.Errorf("Full cycle ended on %s", s)
	}
	if got := cycleSelector(pokemon.Any, -1); got != pokemon.Selector(pokemon.TypeFairy) {
		t.Errorf("cycleSelector(Any, -1) = %s", got)
	}
}

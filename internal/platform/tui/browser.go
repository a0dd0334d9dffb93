package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-dex/internal/export"
	"github.com/vovakirdan/tui-dex/internal/pokemon"
	"github.com/vovakirdan/tui-dex/internal/registry"
)

// Browser layout constants
const (
	minWidthForCard = 110 // Minimum width to show the detail card beside the table
	cardWidth       = 34
	chromeHeight    = 13 // Header, query line, status, help and borders
	minTableHeight  = 5
)

// RosterService loads rosters for the browser. *roster.Service implements it.
type RosterService interface {
	Roster(ctx context.Context, regionID string) ([]pokemon.Record, error)
	Refresh(ctx context.Context, regionID string) ([]pokemon.Record, error)
	RecordSearch(regionID string, q pokemon.Query, results int)
}

// BrowserOptions configures a BrowserModel.
type BrowserOptions struct {
	Service    RosterService
	Context    context.Context // Cancels roster loads; defaults to Background
	Regions    []registry.Region
	Region     string // Initial region ID; defaults to the first region
	PerPage    int
	ShowActual bool
	ExportDir  string // Empty disables ctrl+s export
	Width      int
	Height     int
}

type focus int

const (
	focusTable focus = iota
	focusName
	focusStats
)

// rosterLoadedMsg carries the result of a roster load.
type rosterLoadedMsg struct {
	regionID string
	records  []pokemon.Record
	err      error
}

// exportDoneMsg carries the result of an xlsx export.
type exportDoneMsg struct {
	path string
	err  error
}

// BrowserModel is the Bubble Tea model for the roster browser.
type BrowserModel struct {
	svc       RosterService
	ctx       context.Context
	regions   []registry.Region
	regionIdx int
	exportDir string

	roster  []pokemon.Record // Whole region, never modified
	results []pokemon.Record // Roster after the query
	visible []pokemon.Record // Current page of results
	query   pokemon.Query
	pager   pokemon.Pager
	actual  bool // Show min〜max instead of base stats

	table     table.Model
	nameInput textinput.Model
	statInput textinput.Model
	spinner   spinner.Model
	help      help.Model
	keys      BrowserKeyMap
	inputKeys InputKeyMap
	theme     Theme

	focus        focus
	loading      bool
	status       string
	statusErr    bool
	width        int
	height       int
	quitting     bool
	wantsHistory bool
}

// NewBrowserModel creates a new browser model. Call Init to start loading
// the initial region.
func NewBrowserModel(opts BrowserOptions) BrowserModel {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if len(opts.Regions) == 0 {
		opts.Regions = registry.List()
	}

	regionIdx := 0
	for i, r := range opts.Regions {
		if r.ID == opts.Region {
			regionIdx = i
		}
	}

	name := textinput.New()
	name.Placeholder = "名前で検索"
	name.Prompt = "名前: "
	name.CharLimit = 32

	stats := textinput.New()
	stats.Placeholder = "s:gte:100 h:gte:80"
	stats.Prompt = "条件: "
	stats.CharLimit = 128

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	h := help.New()
	h.ShowAll = false

	m := BrowserModel{
		svc:       opts.Service,
		ctx:       opts.Context,
		regions:   opts.Regions,
		regionIdx: regionIdx,
		exportDir: opts.ExportDir,
		query:     pokemon.NewQuery(),
		pager:     pokemon.NewPager(opts.PerPage),
		actual:    opts.ShowActual,
		nameInput: name,
		statInput: stats,
		spinner:   sp,
		help:      h,
		keys:      DefaultBrowserKeyMap(),
		inputKeys: DefaultInputKeyMap(),
		theme:     DefaultTheme(),
		width:     opts.Width,
		height:    opts.Height,
		loading:   true,
	}
	m.table = m.createTable()
	return m
}

// Init starts loading the initial region.
func (m BrowserModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd(false))
}

// Region returns the region currently shown.
func (m BrowserModel) Region() registry.Region {
	if len(m.regions) == 0 {
		return registry.Region{}
	}
	return m.regions[m.regionIdx]
}

// Query returns the active query.
func (m BrowserModel) Query() pokemon.Query {
	return m.query
}

// Results returns every record matching the active query.
func (m BrowserModel) Results() []pokemon.Record {
	return m.results
}

// Visible returns the records on screen.
func (m BrowserModel) Visible() []pokemon.Record {
	return m.visible
}

// Pager returns the page position.
func (m BrowserModel) Pager() pokemon.Pager {
	return m.pager
}

// Selected returns the record under the table cursor.
func (m BrowserModel) Selected() (pokemon.Record, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return pokemon.Record{}, false
	}
	return m.visible[i], true
}

// Status returns the last status line message.
func (m BrowserModel) Status() string {
	return m.status
}

// IsQuitting returns true if user requested to quit.
func (m BrowserModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if user asked for the search history.
func (m BrowserModel) WantsHistory() bool {
	return m.wantsHistory
}

// Resume clears a pending history request.
func (m BrowserModel) Resume() BrowserModel {
	m.wantsHistory = false
	return m
}

// ApplyQuery switches to regionID and runs q, loading the region first if
// needed.
func (m BrowserModel) ApplyQuery(regionID string, q pokemon.Query) (BrowserModel, tea.Cmd) {
	m.query = q
	m.nameInput.SetValue(q.Name)
	m.statInput.SetValue(conditionsText(q.Stats))

	for i, r := range m.regions {
		if r.ID == regionID && i != m.regionIdx {
			m.regionIdx = i
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadCmd(false))
		}
	}

	m.apply()
	return m, m.recordCmd()
}

// Update handles messages for the browser.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.focus != focusTable {
			return m.handleInputKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.refreshRows()
		return m, nil

	case rosterLoadedMsg:
		if msg.regionID != m.Region().ID {
			return m, nil // Stale load from a region the user already left
		}
		m.loading = false
		if msg.err != nil {
			m.roster = nil
			m.setError(msg.err.Error())
		} else {
			m.roster = msg.records
			m.setStatus(fmt.Sprintf("%s: %d件", m.Region().Title, len(msg.records)))
		}
		m.apply()
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.setError(msg.err.Error())
		} else {
			m.setStatus("exported " + msg.path)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input while the table has focus.
func (m BrowserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		m.table, cmd = m.table.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keys.NextPage):
		m.pager = m.pager.Next(len(m.results))
		m.refreshRows()

	case key.Matches(msg, m.keys.PrevPage):
		m.pager = m.pager.Prev()
		m.refreshRows()

	case key.Matches(msg, m.keys.ShowAll):
		m.pager.ShowAll = !m.pager.ShowAll
		m.refreshRows()

	case key.Matches(msg, m.keys.Actual):
		m.actual = !m.actual
		m.table = m.createTable()
		m.refreshRows()

	case key.Matches(msg, m.keys.Search):
		m.focus = focusName
		return m, m.nameInput.Focus()

	case key.Matches(msg, m.keys.Stats):
		m.focus = focusStats
		return m, m.statInput.Focus()

	case key.Matches(msg, m.keys.Type1Next):
		m.query.Type1 = cycleSelector(m.query.Type1, 1)
		return m.search()

	case key.Matches(msg, m.keys.Type1Prev):
		m.query.Type1 = cycleSelector(m.query.Type1, -1)
		return m.search()

	case key.Matches(msg, m.keys.Type2Next):
		m.query.Type2 = cycleSelector(m.query.Type2, 1)
		return m.search()

	case key.Matches(msg, m.keys.Type2Prev):
		m.query.Type2 = cycleSelector(m.query.Type2, -1)
		return m.search()

	case key.Matches(msg, m.keys.Reset):
		m.query = pokemon.NewQuery()
		m.nameInput.SetValue("")
		m.statInput.SetValue("")
		m.pager.ShowAll = false
		m.setStatus("")
		m.apply()

	case key.Matches(msg, m.keys.NextRegion):
		return m.switchRegion(1)

	case key.Matches(msg, m.keys.PrevRegion):
		return m.switchRegion(-1)

	case key.Matches(msg, m.keys.Refresh):
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadCmd(true))

	case key.Matches(msg, m.keys.Export):
		if m.exportDir == "" {
			m.setError("export is disabled in this session")
			return m, nil
		}
		return m, m.exportCmd()

	case key.Matches(msg, m.keys.History):
		m.wantsHistory = true
	}

	return m, nil
}

// handleInputKey routes keys to the focused text field.
func (m BrowserModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.inputKeys.Cancel):
		if m.focus == focusName {
			m.nameInput.SetValue(m.query.Name)
		} else {
			m.statInput.SetValue(conditionsText(m.query.Stats))
		}
		m.blur()
		return m, nil

	case key.Matches(msg, m.inputKeys.Apply):
		if m.focus == focusStats {
			conds, err := parseConditions(m.statInput.Value())
			if err != nil {
				m.setError(err.Error())
				return m, nil
			}
			m.query.Stats = conds
		} else {
			m.query.Name = m.nameInput.Value()
		}
		m.blur()
		return m.search()
	}

	if m.focus == focusName {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.statInput, cmd = m.statInput.Update(msg)
	}
	return m, cmd
}

func (m *BrowserModel) blur() {
	m.focus = focusTable
	m.nameInput.Blur()
	m.statInput.Blur()
}

// search applies the query after the user changed it. Every search runs the
// type step with the current pickers; only the start and reset skip it.
func (m BrowserModel) search() (tea.Model, tea.Cmd) {
	m.query.NoTypeFilter = false
	m.apply()
	m.setStatus(fmt.Sprintf("%d件", len(m.results)))
	return m, m.recordCmd()
}

// apply reruns the query over the roster and goes back to page 1.
func (m *BrowserModel) apply() {
	m.results = pokemon.Apply(m.roster, m.query)
	m.pager.Page = 1
	m.refreshRows()
}

func (m BrowserModel) switchRegion(step int) (tea.Model, tea.Cmd) {
	if len(m.regions) < 2 {
		return m, nil
	}
	m.regionIdx = (m.regionIdx + step + len(m.regions)) % len(m.regions)
	m.loading = true
	m.roster = nil
	m.apply()
	return m, tea.Batch(m.spinner.Tick, m.loadCmd(false))
}

func (m BrowserModel) loadCmd(refresh bool) tea.Cmd {
	region := m.Region()
	svc := m.svc
	ctx := m.ctx
	return func() tea.Msg {
		if svc == nil {
			return rosterLoadedMsg{regionID: region.ID, err: fmt.Errorf("no roster source")}
		}
		load := svc.Roster
		if refresh {
			load = svc.Refresh
		}
		records, err := load(ctx, region.ID)
		return rosterLoadedMsg{regionID: region.ID, records: records, err: err}
	}
}

func (m BrowserModel) recordCmd() tea.Cmd {
	if m.svc == nil {
		return nil
	}
	svc := m.svc
	regionID := m.Region().ID
	q := m.query
	n := len(m.results)
	return func() tea.Msg {
		svc.RecordSearch(regionID, q, n)
		return nil
	}
}

func (m BrowserModel) exportCmd() tea.Cmd {
	records := m.results
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.exportDir, fmt.Sprintf("%s_%s.xlsx", m.Region().ID, timestamp))
	return func() tea.Msg {
		return exportDoneMsg{path: path, err: export.WriteXLSX(path, records)}
	}
}

func (m *BrowserModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *BrowserModel) setError(s string) {
	m.status = s
	m.statusErr = true
}

// createTable creates a new table with columns for the current stat mode.
func (m *BrowserModel) createTable() table.Model {
	statWidth := 4
	if m.actual {
		statWidth = 9
	}

	columns := []table.Column{
		{Title: "No.", Width: 6},
		{Title: "名前", Width: 18},
		{Title: "タイプ", Width: 6},
	}
	for _, k := range pokemon.BattleStats {
		columns = append(columns, table.Column{Title: k.Label(), Width: statWidth})
	}
	columns = append(columns, table.Column{Title: "T", Width: 4})

	height := m.height - chromeHeight
	if height < minTableHeight {
		height = minTableHeight
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// refreshRows recomputes the visible page and updates the table.
func (m *BrowserModel) refreshRows() {
	m.pager = m.pager.Clamp(len(m.results))
	m.visible = m.pager.Slice(m.results)

	rows := make([]table.Row, len(m.visible))
	for i, r := range m.visible {
		row := table.Row{r.ID, r.DisplayName(), typesText(r)}
		for _, k := range pokemon.AllStatKeys {
			row = append(row, statCell(k, r.Stats.Get(k), m.actual))
		}
		rows[i] = row
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// View renders the browser.
func (m BrowserModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderQuery())
	b.WriteString("\n")

	if m.loading {
		b.WriteString(fmt.Sprintf("\n %s loading %s...\n", m.spinner.View(), m.Region().Title))
	} else {
		b.WriteString(m.renderBody())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")

	if m.focus != focusTable {
		b.WriteString(m.theme.Help.Render(m.help.View(m.inputKeys)))
	} else {
		b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))
	}

	return b.String()
}

// renderHeader renders the title and region tabs.
func (m BrowserModel) renderHeader() string {
	tabs := make([]string, len(m.regions))
	for i, r := range m.regions {
		if i == m.regionIdx {
			tabs[i] = m.theme.Selector.Render(r.Title)
		} else {
			tabs[i] = m.theme.Muted.Render(" " + r.Title + " ")
		}
	}
	title := m.theme.Title.Render("POKéDEX")
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", strings.Join(tabs, " "))
}

// renderQuery renders the search fields and the type pickers.
func (m BrowserModel) renderQuery() string {
	slot := func(label string, s pokemon.Selector) string {
		text := string(s)
		if t := pokemon.Type(s); t.Valid() {
			text = m.theme.Badge(t)
		}
		return m.theme.Subtitle.Render(label) + " " + text
	}

	types := slot("タイプ1", m.query.Type1) + "  " + slot("タイプ2", m.query.Type2)
	if m.query.NoTypeFilter {
		types = m.theme.Muted.Render("タイプ: 指定なし")
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		m.theme.InputBox.Render(m.nameInput.View()),
		" ",
		m.theme.InputBox.Render(m.statInput.View()),
		"  ",
		types,
	)
}

// renderBody renders the table and, on wide terminals, the detail card.
func (m BrowserModel) renderBody() string {
	if len(m.visible) == 0 {
		return m.theme.Muted.Italic(true).Padding(2, 4).Render("No Pokémon match this search.")
	}

	tableView := m.theme.Panel.Render(m.table.View())
	if m.width < minWidthForCard {
		return tableView
	}

	r, ok := m.Selected()
	if !ok {
		return tableView
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tableView, " ", renderCard(m.theme, r, cardWidth))
}

// renderStatus renders counts, page position and the last message.
func (m BrowserModel) renderStatus() string {
	page := fmt.Sprintf("page %d/%d", m.pager.Page, max(pokemon.TotalPages(len(m.results), m.pager.PerPage), 1))
	if m.pager.ShowAll {
		page = "all"
	}
	mode := "種族値"
	if m.actual {
		mode = "実数値"
	}
	line := m.theme.Muted.Render(fmt.Sprintf("%d/%d件  %s  %s", len(m.results), len(m.roster), page, mode))

	if m.status == "" {
		return line
	}
	style := m.theme.Subtitle
	if m.statusErr {
		style = m.theme.Error
	}
	return line + "  " + style.Render(m.status)
}

// cycleSelector steps through Any, None and the 18 types, wrapping around.
func cycleSelector(s pokemon.Selector, step int) pokemon.Selector {
	opts := pokemon.SelectorOptions()
	idx := 0
	for i, o := range opts {
		if o == s {
			idx = i
		}
	}
	return opts[(idx+step+len(opts))%len(opts)]
}

// parseConditions parses space separated key:op:line conditions.
func parseConditions(s string) ([]pokemon.StatCondition, error) {
	var conds []pokemon.StatCondition
	for _, f := range strings.Fields(s) {
		c, err := pokemon.ParseStatCondition(f)
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
	}
	return conds, nil
}

func conditionsText(conds []pokemon.StatCondition) string {
	parts := make([]string, len(conds))
	for i, c := range conds {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

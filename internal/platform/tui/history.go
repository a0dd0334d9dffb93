package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-dex/internal/registry"
	"github.com/vovakirdan/tui-dex/internal/storage"
)

// maxHistory is how many searches the history screen loads.
const maxHistory = 100

// HistorySource lists recorded searches. *storage.Store implements it.
type HistorySource interface {
	RecentSearches(limit int) ([]storage.SearchEntry, error)
}

// HistoryModel is the Bubble Tea model for the search history screen.
type HistoryModel struct {
	source    HistorySource
	entries   []storage.SearchEntry
	loadErr   error
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	theme     Theme
	width     int
	height    int
	quitting  bool
	goingBack bool
	selected  *storage.SearchEntry
}

// NewHistoryModel creates a history model and loads the newest searches.
func NewHistoryModel(source HistorySource, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		source: source,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		theme:  DefaultTheme(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "日時", Width: 12},
		{Title: "地方", Width: 8},
		{Title: "名前", Width: 12},
		{Title: "タイプ", Width: 10},
		{Title: "条件", Width: 24},
		{Title: "件数", Width: 5},
	}

	height := m.height - 8 // Leave room for header, help, and margins
	if height < minTableHeight {
		height = minTableHeight
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

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

func (m *HistoryModel) load() {
	m.entries, m.loadErr = nil, nil
	if m.source != nil {
		m.entries, m.loadErr = m.source.RecentSearches(maxHistory)
	}
	m.updateTableRows()
}

func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		region := e.RegionID
		if r, err := registry.Get(e.RegionID); err == nil {
			region = r.Title
		}
		types := "-"
		if e.Type1 != "" || e.Type2 != "" {
			types = e.Type1 + "/" + e.Type2
		}
		rows[i] = table.Row{
			e.CreatedAt.Local().Format("01/02 15:04"),
			region,
			e.Query,
			types,
			e.Stats,
			fmt.Sprintf("%d", e.Results),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Select):
			if i := m.table.Cursor(); i >= 0 && i < len(m.entries) {
				e := m.entries[i]
				m.selected = &e
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.theme.Title.MarginBottom(1).Render(centerText("SEARCH HISTORY", m.width)))
	b.WriteString("\n\n")

	switch {
	case m.loadErr != nil:
		b.WriteString(m.theme.Error.Padding(2, 4).Render(m.loadErr.Error()))
	case len(m.entries) == 0:
		b.WriteString(m.theme.Muted.Italic(true).Padding(2, 4).
			Render("No searches recorded yet.\nSearch from the browser to fill this list."))
	default:
		b.WriteString(m.theme.Panel.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))

	return b.String()
}

// Selected returns the entry the user chose to run again, or nil.
func (m HistoryModel) Selected() *storage.SearchEntry {
	return m.selected
}

// IsGoingBack returns true if user wants to go back to the browser.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

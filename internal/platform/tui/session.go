package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dex/internal/roster"
)

// SessionModel manages the full browsing session: browser <-> history.
// It is the top-level model for both local and SSH sessions.
type SessionModel struct {
	browser    BrowserModel
	history    *HistoryModel
	historySrc HistorySource
	width      int
	height     int
	quitting   bool
}

// NewSessionModel creates a new session model. history may be nil, which
// disables the history screen.
func NewSessionModel(opts BrowserOptions, history HistorySource) SessionModel {
	return SessionModel{
		browser:    NewBrowserModel(opts),
		historySrc: history,
		width:      opts.Width,
		height:     opts.Height,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.browser.Init()
}

// Browser returns the browser state.
func (m SessionModel) Browser() BrowserModel {
	return m.browser
}

// InHistory reports whether the history screen is showing.
func (m SessionModel) InHistory() bool {
	return m.history != nil
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		if m.history != nil {
			// The hidden browser still needs the new size.
			next, _ := m.browser.Update(msg)
			m.browser = next.(BrowserModel)
			return m.updateHistory(msg)
		}
	}

	if _, ok := msg.(tea.KeyMsg); ok && m.history != nil {
		return m.updateHistory(msg)
	}
	return m.updateBrowser(msg)
}

// updateBrowser handles updates when the browser is showing. Async
// browser messages are routed here even while history is open.
func (m SessionModel) updateBrowser(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.browser.Update(msg)
	if b, ok := next.(BrowserModel); ok {
		m.browser = b
	}

	if m.browser.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.browser.WantsHistory() {
		m.browser = m.browser.Resume()
		if m.historySrc != nil {
			h := NewHistoryModel(m.historySrc, m.width, m.height)
			m.history = &h
		}
	}

	return m, cmd
}

// updateHistory handles updates when the history screen is showing.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.history.Update(msg)
	if h, ok := next.(HistoryModel); ok {
		m.history = &h
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if e := m.history.Selected(); e != nil {
		m.history = nil
		var browserCmd tea.Cmd
		m.browser, browserCmd = m.browser.ApplyQuery(e.RegionID, roster.QueryFromHistory(*e))
		return m, browserCmd
	}

	if m.history.IsGoingBack() {
		m.history = nil
		return m, nil
	}

	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.history != nil {
		return m.history.View()
	}
	return m.browser.View()
}

// Run starts a local browsing session.
func Run(opts BrowserOptions, history HistorySource) error {
	p := tea.NewProgram(
		NewSessionModel(opts, history),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

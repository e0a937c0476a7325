package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/trivytui/trivy-tui/internal/nav"
	"github.com/trivytui/trivy-tui/internal/report"
	"github.com/trivytui/trivy-tui/internal/rows"
)

const statusDuration = 3 * time.Second

type statusMsg string

type clearStatusMsg struct{}

// Model is the viewer session: the report, the navigation state and the
// terminal geometry. Rows are derived from the report on every render.
type Model struct {
	report   report.ScanReport
	imageRef string
	nav      nav.State
	keys     KeyMap
	help     help.Model
	prefs    Prefs

	width       int
	height      int
	tableOffset int // first visible row of the findings table

	statusMessage string
	quitting      bool
}

// NewModel creates a viewer for r. imageRef is what the user asked to scan
// and is shown when the report carries no artifact name.
func NewModel(r report.ScanReport, imageRef string) Model {
	return Model{
		report:   r,
		imageRef: imageRef,
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
}

// WithPrefs applies persisted preferences to the model.
func (m Model) WithPrefs(p Prefs) Model {
	m.prefs = p
	m.help.ShowAll = p.ShowFullHelp
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) rows() []rows.Row {
	return rows.Flatten(m.report)
}

// selectedFinding resolves the selected row to a finding. Structural rows and
// an empty selection yield false.
func (m Model) selectedFinding(rs []rows.Row) (report.Finding, bool) {
	sel, ok := m.nav.Selected()
	if !ok || sel >= len(rs) {
		return report.Finding{}, false
	}
	return rs[sel].Resolve(m.report)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.nav.SetPageSize(m.tableBodyHeight())
		m.keepSelectionVisible(len(m.rows()))
		return m, nil

	case statusMsg:
		m.statusMessage = string(msg)
		return m, tea.Tick(statusDuration, func(time.Time) tea.Msg { return clearStatusMsg{} })

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rs := m.rows()

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.prefs.ShowFullHelp = m.help.ShowAll
		m.nav.SetPageSize(m.tableBodyHeight())
		m.keepSelectionVisible(len(rs))
		return m, savePrefsCmd(m.prefs)
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyIDToClipboard(rs)
	case key.Matches(msg, m.keys.CopyDetails):
		return m, m.copyDetailsToClipboard(rs)
	}

	ev, ok := m.eventFor(msg)
	if !ok {
		return m, nil
	}

	wasOpen := m.nav.PopupOpen()
	if m.nav.Apply(ev, rs) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.nav.PopupOpen() {
		m.nav.LimitScroll(m.maxPopupScroll(rs))
	}
	if wasOpen != m.nav.PopupOpen() {
		sel, _ := m.nav.Selected()
		log.WithFields(log.Fields{"row": sel, "popup": m.nav.Mode().String()}).Debug("Popup toggled")
	}
	m.keepSelectionVisible(len(rs))
	return m, nil
}

// eventFor maps a key press onto a navigation event. Up and down scroll the
// popup while it is open and move the selection otherwise.
func (m Model) eventFor(msg tea.KeyMsg) (nav.Event, bool) {
	popup := m.nav.PopupOpen()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return nav.Quit, true
	case key.Matches(msg, m.keys.Back):
		return nav.Dismiss, true
	case key.Matches(msg, m.keys.Toggle):
		return nav.Activate, true
	case key.Matches(msg, m.keys.Down):
		if popup {
			return nav.ScrollDown, true
		}
		return nav.MoveDown, true
	case key.Matches(msg, m.keys.Up):
		if popup {
			return nav.ScrollUp, true
		}
		return nav.MoveUp, true
	case key.Matches(msg, m.keys.Top):
		return nav.MoveTop, true
	case key.Matches(msg, m.keys.Bottom):
		return nav.MoveBottom, true
	case key.Matches(msg, m.keys.PageDown):
		return nav.PageDown, true
	case key.Matches(msg, m.keys.PageUp):
		return nav.PageUp, true
	}
	return 0, false
}

// keepSelectionVisible scrolls the findings table so the selected row is on
// screen.
func (m *Model) keepSelectionVisible(n int) {
	body := m.tableBodyHeight()
	if body < 1 {
		m.tableOffset = 0
		return
	}
	if sel, ok := m.nav.Selected(); ok {
		if sel < m.tableOffset {
			m.tableOffset = sel
		}
		if sel >= m.tableOffset+body {
			m.tableOffset = sel - body + 1
		}
	}
	if maxOffset := n - body; m.tableOffset > maxOffset {
		m.tableOffset = maxOffset
	}
	if m.tableOffset < 0 {
		m.tableOffset = 0
	}
}

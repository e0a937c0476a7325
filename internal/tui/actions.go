package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/trivytui/trivy-tui/internal/detail"
	"github.com/trivytui/trivy-tui/internal/report"
	"github.com/trivytui/trivy-tui/internal/rows"
)

var (
	defaultWriteClipboard = clipboard.WriteAll
	writeClipboard        = defaultWriteClipboard
)

// copyIDToClipboard copies the selected finding's vulnerability ID.
func (m Model) copyIDToClipboard(rs []rows.Row) tea.Cmd {
	f, ok := m.selectedFinding(rs)
	if !ok {
		return func() tea.Msg { return statusMsg("No finding selected") }
	}
	id := f.ID()
	if id == "" {
		return func() tea.Msg { return statusMsg("Finding has no vulnerability ID") }
	}

	if err := writeClipboard(id); err != nil {
		return func() tea.Msg { return statusMsg(fmt.Sprintf("Clipboard error: %v", err)) }
	}
	return func() tea.Msg { return statusMsg(fmt.Sprintf("Copied: %s", id)) }
}

// copyDetailsToClipboard copies the popup content of the selected finding as
// plain text.
func (m Model) copyDetailsToClipboard(rs []rows.Row) tea.Cmd {
	f, ok := m.selectedFinding(rs)
	if !ok {
		return func() tea.Msg { return statusMsg("No finding selected") }
	}

	if err := writeClipboard(detailsText(f)); err != nil {
		return func() tea.Msg { return statusMsg(fmt.Sprintf("Clipboard error: %v", err)) }
	}
	return func() tea.Msg { return statusMsg("Copied finding details to clipboard") }
}

func detailsText(f report.Finding) string {
	var sb strings.Builder
	sb.WriteString(detail.Title(f))
	sb.WriteString("\n")
	for _, b := range detail.Build(f) {
		fmt.Fprintf(&sb, "\n%s:\n%s\n", b.Label, b.Body)
	}
	return sb.String()
}

package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trivytui/trivy-tui/internal/report"
)

// Run shows r in the terminal until the user quits. The alternate screen is
// released on every exit path, including a panic inside the program.
func Run(r report.ScanReport, imageRef string) error {
	m := NewModel(r, imageRef).WithPrefs(LoadPrefs())
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

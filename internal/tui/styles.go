package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/trivytui/trivy-tui/internal/report"
)

var (
	frameStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	frameTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Bold(true)

	imageNameStyle = lipgloss.NewStyle().Bold(true)

	columnHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("7")).
				Bold(true).
				Underline(true)

	targetLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Bold(true)

	targetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	cellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))

	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("2")).
				Foreground(lipgloss.Color("8")).
				Italic(true)

	popupStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("2")).
			Padding(0, 1)

	popupTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2")).
			Bold(true)

	popupLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	unfocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	emptyTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Align(lipgloss.Center)

	sevCriticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	sevHighStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	sevMediumStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	sevLowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	sevUnknownStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
)

func severityStyle(s report.Severity) lipgloss.Style {
	switch s {
	case report.SevCritical:
		return sevCriticalStyle
	case report.SevHigh:
		return sevHighStyle
	case report.SevMedium:
		return sevMediumStyle
	case report.SevLow:
		return sevLowStyle
	default:
		return sevUnknownStyle
	}
}

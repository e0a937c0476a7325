package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/trivytui/trivy-tui/internal/detail"
	"github.com/trivytui/trivy-tui/internal/report"
	"github.com/trivytui/trivy-tui/internal/rows"
)

const (
	minWidth  = 40
	minHeight = 12

	titleHeight = 3 // framed single line

	popupWidthPercent  = 60
	popupHeightPercent = 60
	popupMinWidth      = 36
	popupMinHeight     = 8
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.width < minWidth || m.height < minHeight {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			fmt.Sprintf("Terminal too small (%dx%d)", m.width, m.height))
	}

	rs := m.rows()
	footer := m.footerView()
	regionHeight := m.height - titleHeight - lipgloss.Height(footer)

	middle := m.tableView(rs, regionHeight)
	if m.nav.PopupOpen() {
		if f, ok := m.selectedFinding(rs); ok {
			middle = overlay(middle, m.popupView(f))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.titleView(), middle, footer)
}

// tableBodyHeight is the number of finding rows that fit on screen.
func (m Model) tableBodyHeight() int {
	if m.height == 0 {
		return 0
	}
	// frame borders and the column header take three lines
	return m.height - titleHeight - lipgloss.Height(m.footerView()) - 3
}

func (m Model) titleView() string {
	name := m.report.ArtifactName
	if name == "" {
		name = m.imageRef
	}
	counts := m.report.SeverityCounts()
	parts := []string{fmt.Sprintf("Total: %d", m.report.FindingCount())}
	for _, sev := range report.Severities {
		parts = append(parts, fmt.Sprintf("%s %d", severityStyle(sev).Render(string(sev)+":"), counts[sev]))
	}
	line := imageNameStyle.Render(name) + "   " + strings.Join(parts, "  ")
	return framed("Image", cell(line, m.width-2, lipgloss.NewStyle()), m.width, 1)
}

func (m Model) footerView() string {
	prefix := footerStyle.Render("Trivy UI")
	if m.statusMessage != "" {
		prefix = statusStyle.Render(" " + m.statusMessage + " ")
	}
	h := m.help
	h.Width = m.width - lipgloss.Width(prefix) - 2
	return lipgloss.JoinHorizontal(lipgloss.Top, prefix, "  ", h.View(m.keys))
}

type columns struct {
	severity, id, title int
}

func tableColumns(inner int) columns {
	c := columns{severity: inner * 20 / 100, id: inner * 20 / 100}
	c.title = inner - c.severity - c.id - 2
	if c.title < 0 {
		c.title = 0
	}
	return c
}

func cell(s string, w int, st lipgloss.Style) string {
	return st.Inline(true).Width(w).MaxWidth(w).Render(s)
}

func (m Model) tableView(rs []rows.Row, regionHeight int) string {
	inner := m.width - 2
	body := regionHeight - 3
	cols := tableColumns(inner)

	header := strings.Join([]string{
		cell("Severity", cols.severity, columnHeaderStyle),
		cell("Vulnerability ID", cols.id, columnHeaderStyle),
		cell("Title", cols.title, columnHeaderStyle),
	}, " ")

	lines := []string{header}
	if len(rs) == 0 {
		lines = append(lines, lipgloss.Place(inner, body, lipgloss.Center, lipgloss.Center,
			emptyTextStyle.Render("[OK] No vulnerabilities found")))
		return framed("Results", strings.Join(lines, "\n"), m.width, regionHeight-2)
	}

	sel, hasSel := m.nav.Selected()
	end := m.tableOffset + body
	if end > len(rs) {
		end = len(rs)
	}
	for i := m.tableOffset; i < end; i++ {
		lines = append(lines, m.renderRow(rs[i], cols, inner, hasSel && i == sel))
	}
	return framed("Results", strings.Join(lines, "\n"), m.width, regionHeight-2)
}

// renderRow renders one table line exactly inner cells wide. The selected
// row is rendered from plain text so the highlight covers the whole line.
func (m Model) renderRow(r rows.Row, cols columns, inner int, selected bool) string {
	var sev, id, title string
	var sevStyle, idStyle, titleStyle = cellStyle, cellStyle, cellStyle

	switch r.Kind {
	case rows.KindSpacer:
	case rows.KindGroupHeader:
		id, title = "target: ", r.Target
		idStyle, titleStyle = targetLabelStyle, targetStyle
	case rows.KindFinding:
		f, ok := r.Resolve(m.report)
		if !ok {
			break
		}
		sev, id, title = string(f.Sev()), f.ID(), report.Str(f.Title)
		sevStyle = severityStyle(f.Sev())
	}

	if selected {
		plain := strings.Join([]string{
			cell(sev, cols.severity, lipgloss.NewStyle()),
			cell(id, cols.id, lipgloss.NewStyle()),
			cell(title, cols.title, lipgloss.NewStyle()),
		}, " ")
		return cell(plain, inner, selectedRowStyle)
	}
	return strings.Join([]string{
		cell(sev, cols.severity, sevStyle),
		cell(id, cols.id, idStyle),
		cell(title, cols.title, titleStyle),
	}, " ")
}

// popupSize returns the outer width and height of the detail popup.
func (m Model) popupSize() (int, int) {
	regionHeight := m.height - titleHeight - lipgloss.Height(m.footerView())
	w := m.width * popupWidthPercent / 100
	if w < popupMinWidth {
		w = popupMinWidth
	}
	if w > m.width {
		w = m.width
	}
	h := m.height * popupHeightPercent / 100
	if h < popupMinHeight {
		h = popupMinHeight
	}
	if h > regionHeight {
		h = regionHeight
	}
	return w, h
}

func (m Model) popupView(f report.Finding) string {
	w, h := m.popupSize()
	innerWidth := w - 4 // border and padding
	bodyHeight := h - 3 // border and title line

	vp := viewport.New(innerWidth, bodyHeight)
	vp.SetContent(strings.Join(popupLines(f, innerWidth), "\n"))
	vp.SetYOffset(m.nav.Scroll())

	title := popupTitleStyle.Inline(true).MaxWidth(innerWidth).Render(detail.Title(f))
	return popupStyle.Width(w - 2).Render(lipgloss.JoinVertical(lipgloss.Left, title, vp.View()))
}

// maxPopupScroll is the largest useful scroll offset for the selected
// finding's popup.
func (m Model) maxPopupScroll(rs []rows.Row) int {
	f, ok := m.selectedFinding(rs)
	if !ok {
		return 0
	}
	w, h := m.popupSize()
	return len(popupLines(f, w-4)) - (h - 3)
}

// popupLines styles the detail layout and wraps bodies to width.
func popupLines(f report.Finding, width int) []string {
	if width < 1 {
		width = 1
	}
	wrap := lipgloss.NewStyle().Width(width)
	var out []string
	for _, l := range detail.Layout(detail.Build(f)) {
		switch l.Kind {
		case detail.LineBlank:
			out = append(out, "")
		case detail.LineLabel:
			out = append(out, popupLabelStyle.Render(l.Text))
		case detail.LineBody:
			if l.Text == "" {
				out = append(out, "")
				continue
			}
			out = append(out, strings.Split(wrap.Render(l.Text), "\n")...)
		}
	}
	return out
}

// overlay centers fg over bg. The table behind the popup loses its colors
// and is drawn in the unfocused style.
func overlay(bg, fg string) string {
	bgLines := strings.Split(ansi.Strip(bg), "\n")
	fgLines := strings.Split(fg, "\n")

	x := (lipgloss.Width(bg) - lipgloss.Width(fg)) / 2
	y := (len(bgLines) - len(fgLines)) / 2
	x, y = max(x, 0), max(y, 0)

	out := make([]string, len(bgLines))
	for i, line := range bgLines {
		j := i - y
		if j < 0 || j >= len(fgLines) {
			out[i] = unfocusedStyle.Render(line)
			continue
		}
		left := ansi.Truncate(line, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ansi.TruncateLeft(line, x+ansi.StringWidth(fgLines[j]), "")
		out[i] = unfocusedStyle.Render(left) + fgLines[j] + unfocusedStyle.Render(right)
	}
	return strings.Join(out, "\n")
}

// framed draws a box of the given outer width around body with title set
// into the top border. height is the number of body lines.
func framed(title, body string, width, height int) string {
	b := lipgloss.NormalBorder()
	borderColor := lipgloss.NewStyle().Foreground(frameStyle.GetBorderTopForeground())

	label := " " + frameTitleStyle.Render(title) + " "
	fill := width - 3 - lipgloss.Width(label)
	if fill < 0 {
		fill = 0
	}
	top := borderColor.Render(b.TopLeft+b.Top) + label + borderColor.Render(strings.Repeat(b.Top, fill)+b.TopRight)

	box := frameStyle.
		Border(b, false, true, true, true).
		Width(width - 2).
		Height(height).
		Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, top, box)
}

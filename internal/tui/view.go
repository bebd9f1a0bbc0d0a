package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"goscatter/internal/errors"
)

type layout struct {
	sidebarW int
	mainX    int
	mainW    int
	top      int
	contentH int
	// chartY is the screen row of each chart's first line
	chartY []int
}

func (m Model) layout() layout {
	width, height := m.width, m.height
	if width == 0 || height == 0 {
		width, height = 80, 24
	}
	headerHeight := 1
	footerHeight := 2
	l := layout{top: headerHeight}
	if popup := m.popupView(width); popup != "" {
		l.top += lipgloss.Height(popup)
	}
	if m.showSidebar {
		l.sidebarW = sidebarWidth
		l.mainX = sidebarWidth + 1
	}
	l.mainW = max(10, width-l.mainX)
	l.contentH = max(4, height-l.top-footerHeight)
	rows := m.cfg.Chart.Height
	for i := 0; i < 2; i++ {
		// one label line above each chart
		l.chartY = append(l.chartY, l.top+i*(rows+1)+1)
	}
	return l
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	l := m.layout()
	contentWidth := max(10, m.width)

	// Header
	header := accent(m.cfg.Theme.Accent).Render(" goscatter ─ price vs. interpreted value ")
	header = lipgloss.NewStyle().Width(contentWidth).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, l.contentH-2)
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var main string
	switch {
	case m.err != nil:
		box := boxStyle.BorderForeground(errorFg).Render(
			errorStyle.Render("could not load data") + "\n\n" + errors.UserMessage(m.err) + "\n\n" +
				dimStyle.Render("s: pick another file   p: paste JSON"))
		main = lipgloss.Place(l.mainW, l.contentH, lipgloss.Center, lipgloss.Center, box)
	case m.pasteMode:
		m.ta.SetWidth(l.mainW)
		m.ta.SetHeight(min(l.contentH, 12))
		main = lipgloss.NewStyle().Width(l.mainW).Height(l.contentH).Render(m.ta.View())
	case m.showTable:
		m.tbl.SetWidth(min(l.mainW-4, 40))
		m.tbl.SetHeight(min(l.contentH-2, 20))
		main = lipgloss.Place(l.mainW, l.contentH, lipgloss.Center, lipgloss.Center, boxStyle.Render(m.tbl.View()))
	case len(m.charts) == 0:
		main = lipgloss.Place(l.mainW, l.contentH, lipgloss.Center, lipgloss.Center,
			dimStyle.Render("no data: s to pick a file, p to paste JSON"))
	default:
		parts := make([]string, 0, 2*len(m.charts))
		for i, c := range m.charts {
			parts = append(parts, m.chartLabel(i), c.View())
		}
		main = lipgloss.NewStyle().Width(l.mainW).Height(l.contentH).MaxHeight(l.contentH).
			Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	}

	popup := m.popupView(contentWidth)
	body := main
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", main)
	}

	// Footer / help
	status := dimStyle.Render(" " + m.status + " ")
	help := ""
	if m.helpVisible {
		help = m.help.View(m.keys)
	}
	coords := ""
	if m.hovering {
		coords = dimStyle.Render(fmt.Sprintf("  price=%.2f scores=%.2f  ", m.hoverPrice, m.hoverScore))
	}
	spacerW := max(0, contentWidth-lipgloss.Width(status)-lipgloss.Width(coords))
	statusLine := lipgloss.JoinHorizontal(lipgloss.Bottom, status, lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords))
	footer := lipgloss.NewStyle().Width(contentWidth).Render(lipgloss.JoinVertical(lipgloss.Left, statusLine, " "+help))

	rows := []string{header}
	if popup != "" {
		rows = append(rows, popup)
	}
	ui := lipgloss.JoinVertical(lipgloss.Left, append(rows, body, footer)...)
	return appStyle.Width(contentWidth).Height(m.height).MaxHeight(m.height).Render(ui)
}

// popupView renders the inspect popup between the header and the body.
func (m Model) popupView(width int) string {
	if m.inspectPopup == "" || m.showTable {
		return ""
	}
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).
		MaxWidth(max(20, min(56, width/2))).Render(m.inspectPopup)
}

func (m Model) chartLabel(i int) string {
	c := m.charts[i]
	marker := "  "
	style := dimStyle
	if i == m.focus {
		marker = "▶ "
		style = accent(m.cfg.Theme.Accent)
	}
	parts := []string{
		style.Render(marker + c.Name()),
		dimStyle.Render(fmt.Sprintf("sold=%d", len(c.Processed().Points))),
	}
	if sel := c.Selection(); sel != nil {
		parts = append(parts, dimStyle.Render(formatSelection(sel)))
	}
	return strings.Join(parts, "  ")
}

package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"goscatter/internal/errors"
	"goscatter/internal/export"
	"goscatter/internal/resize"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.syncPanels()
		m.hub.Publish(resize.Size{Width: msg.Width, Height: msg.Height})
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				m.status = "view mode"
				return m, nil
			case "enter":
				text := strings.TrimSpace(m.ta.Value())
				if text == "" {
					m.status = "paste: empty"
					return m, nil
				}
				m.pasteRecords(text)
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.destroyCharts()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Focus):
			if len(m.charts) > 0 {
				m.focus = (m.focus + 1) % len(m.charts)
				m.status = "focus: " + m.charts[m.focus].Name()
				if m.showTable {
					m.refreshTable()
				}
			}
		case key.Matches(msg, m.keys.Clear):
			switch {
			case m.inspectPopup != "":
				m.inspectPopup = ""
			case m.showTable:
				m.showTable = false
			case len(m.charts) > 0:
				m.charts[m.focus].ClearSelection()
				m.status = "clearing " + m.charts[m.focus].Name() + " selection"
			}
		case key.Matches(msg, m.keys.Sidebar):
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
			}
			m.syncPanels()
			for _, c := range m.charts {
				c.Resize()
			}
		case key.Matches(msg, m.keys.Paste):
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			return m, m.ta.Focus()
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
		case key.Matches(msg, m.keys.Table):
			m.showTable = !m.showTable
			if m.showTable {
				m.refreshTable()
			}
			return m, nil
		case key.Matches(msg, m.keys.Inspect):
			m.inspect()
		case key.Matches(msg, m.keys.Export):
			m.exportFocused()
		case key.Matches(msg, m.keys.Open):
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
			return m, nil
		default:
			if m.showTable {
				var cmd tea.Cmd
				m.tbl, cmd = m.tbl.Update(msg)
				return m, cmd
			}
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	default:
		for _, c := range m.charts {
			if c.Update(msg) {
				m.noteSelections()
				return m, nil
			}
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// syncPanels sets every chart container to the current main column width.
func (m *Model) syncPanels() {
	w := m.layout().mainW
	for _, p := range m.panels {
		p.width = w
	}
}

func (m *Model) noteSelections() {
	if notes := m.notes.drain(); len(notes) > 0 {
		m.status = strings.Join(notes, "  ")
	}
	if m.showTable {
		m.refreshTable()
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	l := m.layout()
	ev := tea.MouseEvent(msg)

	// a gesture in progress keeps the pointer wherever it goes
	for i, c := range m.charts {
		if c.Dragging() {
			col, row := msg.X-l.mainX, msg.Y-l.chartY[i]
			c.HandleMouse(col, row, ev)
			m.hoverAt(i, col, row)
			return
		}
	}

	m.hovering = false
	if m.pasteMode || m.showTable || m.err != nil {
		return
	}
	for i, c := range m.charts {
		col, row := msg.X-l.mainX, msg.Y-l.chartY[i]
		w, h := c.Size()
		if col < 0 || col >= w || row < 0 || row >= h {
			continue
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.focus = i
		}
		c.HandleMouse(col, row, ev)
		m.hoverAt(i, col, row)
		return
	}
}

func (m *Model) hoverAt(i, col, row int) {
	price, score, ok := m.charts[i].DataAt(col, row)
	m.hovering = ok
	m.hoverChart, m.hoverCol, m.hoverRow = i, col, row
	m.hoverPrice, m.hoverScore = price, score
}

// inspect shows the point nearest the pointer, or the plot centre, in the
// focused chart.
func (m *Model) inspect() {
	if len(m.charts) == 0 {
		m.inspectPopup = "nothing loaded"
		m.status = m.inspectPopup
		return
	}
	c := m.charts[m.focus]
	w, h := c.Size()
	col, row := w/2, h/2
	if m.hovering && m.hoverChart == m.focus {
		col, row = m.hoverCol, m.hoverRow
	}
	p, ok := c.Nearest(col, row)
	if !ok {
		m.inspectPopup = "no point nearby"
		m.status = m.inspectPopup
		return
	}
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<pasted>"
	}
	data := c.Processed()
	bucket := "default"
	if sel := c.Selection(); sel != nil && sel.Contains(p.X) {
		bucket = "highlighted"
	}
	meta := []string{
		fmt.Sprintf("chart: %s", c.Name()),
		fmt.Sprintf("source: %s", name),
		fmt.Sprintf("points: %d", len(data.Points)),
		fmt.Sprintf("price: [%.2f, %.2f]", data.XExtent.Min, data.XExtent.Max),
		fmt.Sprintf("scores: [%.2f, %.2f]", data.YExtent.Min, data.YExtent.Max),
		formatSelection(c.Selection()),
		fmt.Sprintf("nearest: price=%.2f scores=%.2f (%s)", p.X, p.Y, bucket),
	}
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect popup"
}

// exportFocused writes the focused chart to a PNG next to the data.
func (m *Model) exportFocused() {
	if len(m.charts) == 0 {
		m.status = "nothing to export"
		return
	}
	c := m.charts[m.focus]
	path := filepath.Join(m.cwd, "goscatter-"+c.Name()+".png")
	f, err := os.Create(path)
	if err != nil {
		m.status = "export error: " + err.Error()
		return
	}
	defer f.Close()
	if err := export.Render(f, export.FormatPNG, export.FromChart(c), export.DefaultOptions()); err != nil {
		m.status = "export error: " + errors.UserMessage(err)
		return
	}
	m.logger.Info("exported chart", "chart", c.Name(), "path", path)
	m.status = "exported " + path
}

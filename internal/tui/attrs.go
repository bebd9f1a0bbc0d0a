package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"goscatter/internal/scale"
)

// refreshTable lists the records inside the focused chart's selection.
func (m *Model) refreshTable() {
	if len(m.charts) == 0 {
		m.showTable = false
		m.status = "nothing loaded"
		return
	}
	c := m.charts[m.focus]
	if c.Selection() == nil {
		m.showTable = false
		m.status = "no selection on " + c.Name()
		return
	}
	highlighted := c.Buckets().Highlighted
	if len(highlighted) == 0 {
		m.showTable = false
		m.status = "no records in " + c.Name() + " selection"
		return
	}

	cols := []table.Column{
		{Title: "#", Width: 6},
		{Title: "price", Width: 14},
		{Title: "scores", Width: 12},
	}
	rows := make([]table.Row, 0, len(highlighted))
	for i, p := range highlighted {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			scale.IntegerFormat(p.X),
			strconv.FormatFloat(p.Y, 'f', -1, 64),
		})
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
	m.status = fmt.Sprintf("%s: %d records selected", c.Name(), len(rows))
}

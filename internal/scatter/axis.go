package scatter

import (
	"math"
	"unicode/utf8"

	"goscatter/internal/canvas"
	"goscatter/internal/scale"
)

// axisRow is the cell row the x axis line is drawn on.
func (c *Chart) axisRow() int {
	return (c.cfg.height() - c.cfg.Margin.Bottom) / 2
}

// topRow is the first cell row of the plot area.
func (c *Chart) topRow() int {
	return c.cfg.Margin.Top / 2
}

func (c *Chart) renderXAxis() {
	g := c.surface.Vector().Group(GroupAxisX)
	g.Clear()

	m := c.cfg.Margin
	width := c.state.width
	row := c.axisRow()
	line := canvas.Paint{Fg: c.palette.Axis}
	label := canvas.Paint{Fg: c.palette.Axis}

	left, right := m.Left, width-m.Right
	for col := left; col <= right; col++ {
		g.Set(col, row, '─', line)
	}

	count := max(1, (right-left)/c.cfg.XTickSpacing)
	lastEnd := -1
	for _, t := range c.state.x.Ticks(count) {
		col := int(math.Floor(c.state.x.Map(t)))
		if col < left || col > right {
			continue
		}
		g.Set(col, row, '┬', line)

		text := scale.IntegerFormat(t)
		n := utf8.RuneCountInString(text)
		start := min(max(col-n/2, 0), width-n)
		if start <= lastEnd {
			continue
		}
		g.Text(start, row+1, text, label)
		lastEnd = start + n
	}

	if title := c.cfg.XTitle; title != "" {
		n := utf8.RuneCountInString(title)
		col := max(left+(right-left-n)/2, 0)
		g.Text(col, row+2, title, canvas.Paint{Fg: c.palette.Axis, Bold: true})
	}
}

func (c *Chart) renderYAxis() {
	g := c.surface.Vector().Group(GroupAxisY)
	g.Clear()

	m := c.cfg.Margin
	col := m.Left - 1
	if col < 0 {
		return
	}
	top, bottom := c.topRow(), c.axisRow()
	line := canvas.Paint{Fg: c.palette.Axis}
	label := canvas.Paint{Fg: c.palette.Axis}

	for row := top; row < bottom; row++ {
		g.Set(col, row, '│', line)
	}
	g.Set(col, bottom, '└', line)

	plotH := c.cfg.height() - m.Top - m.Bottom
	count := max(1, plotH/c.cfg.YTickSpacing)
	format := c.state.y.TickFormat(count)
	for _, t := range c.state.y.Ticks(count) {
		row := int(math.Floor(c.state.y.Map(t) / 2))
		if row < top || row > bottom {
			continue
		}
		mark := '┤'
		if row == bottom {
			mark = '┼'
		}
		g.Set(col, row, mark, line)

		text := []rune(format(t))
		// column 0 holds the vertical title
		start := col - len(text)
		if start < 2 {
			cut := 2 - start
			if cut >= len(text) {
				continue
			}
			text = text[cut:]
			start = 2
		}
		g.Text(start, row, string(text), label)
	}

	if title := []rune(c.cfg.YTitle); len(title) > 0 {
		start := max(top+(bottom-top-len(title))/2, 0)
		for i, r := range title {
			g.Set(0, start+i, r, canvas.Paint{Fg: c.palette.Axis, Bold: true})
		}
	}
}

// renderBrush shades the plot rows under the brush selection.
func (c *Chart) renderBrush() {
	g := c.surface.Vector().Group(GroupBrush)
	g.Clear()

	sel := c.brush.Selection()
	if sel == nil {
		return
	}
	col0 := int(math.Floor(sel.Lo))
	col1 := max(int(math.Ceil(sel.Hi))-1, col0)
	g.Shade(col0, col1, c.topRow(), c.axisRow()-1, c.palette.Brush)
}

package scatter

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"goscatter/internal/brush"
	"goscatter/internal/dataset"
)

// logical returns the logical pixel at the centre of cell (col, row).
func logical(col, row int) (x, y float64) {
	return float64(col) + 0.5, float64(row*2 + 1)
}

// HandleMouse feeds a mouse event at chart-local cell (col, row) to the
// brush. The brush redraws at once; the selection is recomputed after the
// brush debounce. It reports whether the event was consumed.
func (c *Chart) HandleMouse(col, row int, ev tea.MouseEvent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return false
	}
	x, y := logical(col, row)

	var (
		e  brush.Event
		ok bool
	)
	switch ev.Action {
	case tea.MouseActionPress:
		if ev.Button != tea.MouseButtonLeft {
			return false
		}
		e, ok = c.brush.Press(x, y)
	case tea.MouseActionMotion:
		e, ok = c.brush.Drag(x)
	case tea.MouseActionRelease:
		e, ok = c.brush.Release(x)
	}
	if !ok {
		return false
	}
	c.renderBrush()
	c.brushed.Trigger(e)
	return true
}

// Dragging reports whether a brush gesture is in progress.
func (c *Chart) Dragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.brush.State() != brush.Idle
}

// ClearSelection removes the selection as if the user clicked without
// dragging.
func (c *Chart) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return
	}
	e := c.brush.Clear()
	c.renderBrush()
	c.brushed.Trigger(e)
}

// InPlot reports whether cell (col, row) lies in the plot area.
func (c *Chart) InPlot(col, row int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inPlot(col, row)
}

func (c *Chart) inPlot(col, row int) bool {
	x, y := logical(col, row)
	return c.plotRect().Contains(x, y)
}

// DataAt returns the price and score under cell (col, row).
func (c *Chart) DataAt(col, row int) (price, score float64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.inPlot(col, row) {
		return 0, 0, false
	}
	x, y := logical(col, row)
	return c.state.x.Invert(x), c.state.y.Invert(y), true
}

// Nearest returns the point drawn closest to cell (col, row), measured in
// logical pixels.
func (c *Chart) Nearest(col, row int) (dataset.Point, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.data.Points) == 0 {
		return dataset.Point{}, false
	}
	x, y := logical(col, row)
	best, bestD := 0, math.Inf(1)
	for i, p := range c.data.Points {
		d := math.Hypot(c.state.x.Map(p.X)-x, c.state.y.Map(p.Y)-y)
		if d < bestD {
			best, bestD = i, d
		}
	}
	return c.data.Points[best], true
}

// Package canvas provides the two drawing layers of a chart: a dot raster
// redrawn from scratch on every update, and a retained cell layer for axes
// and overlays.
package canvas

import "math"

// Cell is one composed terminal cell.
type Cell struct {
	Glyph rune
	Fg    string
	Bg    string
	Bold  bool
}

// Raster is a dot grid addressed in logical pixels. One logical pixel is a
// cell column wide and half a cell row tall; ratio sets how many dots a
// logical pixel holds along each axis. Ratio 2 renders braille (2x4 dots per
// cell), ratio 1 renders half blocks (1x2 dots per cell).
type Raster struct {
	w, h  int // in cells
	ratio int
	mask  [][]uint8
	color [][]string
}

// NewRaster allocates a w x h cell raster. ratio is clamped to [1, 2].
func NewRaster(w, h, ratio int) *Raster {
	ratio = min(max(ratio, 1), 2)
	w, h = max(w, 0), max(h, 0)
	r := &Raster{w: w, h: h, ratio: ratio}
	r.mask = make([][]uint8, h)
	r.color = make([][]string, h)
	for i := range r.mask {
		r.mask[i] = make([]uint8, w)
		r.color[i] = make([]string, w)
	}
	return r
}

// Size returns the raster size in cells and its ratio.
func (r *Raster) Size() (w, h, ratio int) { return r.w, r.h, r.ratio }

// Clear erases every dot.
func (r *Raster) Clear() {
	for y := range r.mask {
		for x := range r.mask[y] {
			r.mask[y][x] = 0
			r.color[y][x] = ""
		}
	}
}

func (r *Raster) dotsPerCell() (int, int) {
	if r.ratio == 2 {
		return 2, 4
	}
	return 1, 2
}

// setDot sets a device dot. The cell takes the colour of the last dot drawn
// into it.
func (r *Raster) setDot(dx, dy int, color string) {
	if dx < 0 || dy < 0 {
		return
	}
	px, py := r.dotsPerCell()
	cx, rx := dx/px, dx%px
	cy, ry := dy/py, dy%py
	if cy >= r.h || cx >= r.w {
		return
	}
	var bit uint8
	if r.ratio == 2 {
		if rx == 0 {
			bit = [4]uint8{0x01, 0x02, 0x04, 0x40}[ry]
		} else {
			bit = [4]uint8{0x08, 0x10, 0x20, 0x80}[ry]
		}
	} else {
		bit = uint8(1) << ry
	}
	r.mask[cy][cx] |= bit
	r.color[cy][cx] = color
}

// FillCircle fills a circle centred at logical (x, y). The dot under the
// centre is always set so that sub-dot radii stay visible.
func (r *Raster) FillCircle(x, y, radius float64, color string) {
	ratio := float64(r.ratio)
	cx, cy := x*ratio, y*ratio
	rd := radius * ratio
	r.setDot(int(math.Floor(cx)), int(math.Floor(cy)), color)
	if rd <= 0 {
		return
	}
	x0, x1 := int(math.Floor(cx-rd)), int(math.Ceil(cx+rd))
	y0, y1 := int(math.Floor(cy-rd)), int(math.Ceil(cy+rd))
	for dy := y0; dy <= y1; dy++ {
		for dx := x0; dx <= x1; dx++ {
			ddx := float64(dx) + 0.5 - cx
			ddy := float64(dy) + 0.5 - cy
			if ddx*ddx+ddy*ddy <= rd*rd {
				r.setDot(dx, dy, color)
			}
		}
	}
}

// Cells renders the raster into glyph cells. Empty cells hold a space.
func (r *Raster) Cells() [][]Cell {
	out := make([][]Cell, r.h)
	for y := 0; y < r.h; y++ {
		row := make([]Cell, r.w)
		for x := 0; x < r.w; x++ {
			row[x] = Cell{Glyph: r.glyph(r.mask[y][x]), Fg: r.color[y][x]}
		}
		out[y] = row
	}
	return out
}

func (r *Raster) glyph(mask uint8) rune {
	if mask == 0 {
		return ' '
	}
	if r.ratio == 2 {
		return rune(0x2800 + int(mask))
	}
	switch mask {
	case 1:
		return '▀'
	case 2:
		return '▄'
	}
	return '█'
}

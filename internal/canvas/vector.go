package canvas

// Paint is the style of a vector cell or shade.
type Paint struct {
	Fg   string
	Bg   string
	Bold bool
}

type vcell struct {
	glyph rune
	paint Paint
}

type shade struct {
	col0, col1 int // inclusive
	row0, row1 int // inclusive
	bg         string
}

// Group is a named, retained set of cells on a Vector layer.
type Group struct {
	name   string
	cells  map[[2]int]vcell
	shades []shade
}

// Name returns the group name.
func (g *Group) Name() string { return g.name }

// Clear removes every element of the group.
func (g *Group) Clear() {
	clear(g.cells)
	g.shades = g.shades[:0]
}

// Set places glyph at (col, row).
func (g *Group) Set(col, row int, glyph rune, p Paint) {
	g.cells[[2]int{col, row}] = vcell{glyph: glyph, paint: p}
}

// Text writes s starting at (col, row), one rune per cell.
func (g *Group) Text(col, row int, s string, p Paint) {
	for _, ch := range s {
		g.Set(col, row, ch, p)
		col++
	}
}

// Shade sets the background of the cells in the inclusive column and row
// ranges, keeping whatever glyph is drawn there.
func (g *Group) Shade(col0, col1, row0, row1 int, bg string) {
	if col1 < col0 || row1 < row0 {
		return
	}
	g.shades = append(g.shades, shade{col0: col0, col1: col1, row0: row0, row1: row1, bg: bg})
}

// Empty reports whether the group draws nothing.
func (g *Group) Empty() bool { return len(g.cells) == 0 && len(g.shades) == 0 }

// Vector is a retained cell layer made of groups drawn in creation order.
type Vector struct {
	w, h   int
	order  []*Group
	byName map[string]*Group
}

// NewVector returns a w x h layer with the named groups.
func NewVector(w, h int, groups ...string) *Vector {
	v := &Vector{w: w, h: h, byName: map[string]*Group{}}
	for _, name := range groups {
		v.Group(name)
	}
	return v
}

// Group returns the named group, creating it on top of existing groups.
func (v *Vector) Group(name string) *Group {
	if g, ok := v.byName[name]; ok {
		return g
	}
	g := &Group{name: name, cells: map[[2]int]vcell{}}
	v.order = append(v.order, g)
	v.byName[name] = g
	return g
}

// Resize changes the layer bounds. Group contents are kept; cells outside
// the bounds are not drawn.
func (v *Vector) Resize(w, h int) { v.w, v.h = w, h }

// Clear empties every group.
func (v *Vector) Clear() {
	for _, g := range v.order {
		g.Clear()
	}
}

// paint draws the layer over base.
func (v *Vector) paint(base [][]Cell) {
	for _, g := range v.order {
		for pos, c := range g.cells {
			col, row := pos[0], pos[1]
			if row < 0 || row >= len(base) || col < 0 || col >= len(base[row]) {
				continue
			}
			cell := &base[row][col]
			cell.Glyph = c.glyph
			cell.Fg = c.paint.Fg
			cell.Bold = c.paint.Bold
			if c.paint.Bg != "" {
				cell.Bg = c.paint.Bg
			}
		}
		for _, s := range g.shades {
			for row := max(s.row0, 0); row <= s.row1 && row < len(base); row++ {
				for col := max(s.col0, 0); col <= s.col1 && col < len(base[row]); col++ {
					base[row][col].Bg = s.bg
				}
			}
		}
	}
}

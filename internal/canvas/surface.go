package canvas

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Surface stacks a Vector layer over a Raster layer of the same size.
type Surface struct {
	w, h   int
	ratio  int
	raster *Raster
	vector *Vector
}

// NewSurface returns an empty surface whose vector layer holds groups.
func NewSurface(groups ...string) *Surface {
	return &Surface{
		ratio:  1,
		raster: NewRaster(0, 0, 1),
		vector: NewVector(0, 0, groups...),
	}
}

// Resize sizes both layers to w x h cells. The raster is reallocated, so
// its content is lost; vector groups are kept.
func (s *Surface) Resize(w, h, ratio int) {
	s.w, s.h = max(w, 0), max(h, 0)
	s.raster = NewRaster(s.w, s.h, ratio)
	_, _, s.ratio = s.raster.Size()
	s.vector.Resize(s.w, s.h)
}

// Size returns the surface size in cells and the raster ratio.
func (s *Surface) Size() (w, h, ratio int) { return s.w, s.h, s.ratio }

// Raster returns the dot layer.
func (s *Surface) Raster() *Raster { return s.raster }

// Vector returns the cell layer.
func (s *Surface) Vector() *Vector { return s.vector }

// Clear erases both layers.
func (s *Surface) Clear() {
	s.raster.Clear()
	s.vector.Clear()
}

// Cells composes the vector layer over the raster.
func (s *Surface) Cells() [][]Cell {
	cells := s.raster.Cells()
	s.vector.paint(cells)
	return cells
}

// Plain returns the composed glyphs without styling.
func (s *Surface) Plain() string {
	cells := s.Cells()
	lines := make([]string, len(cells))
	for y, row := range cells {
		var b strings.Builder
		for _, c := range row {
			b.WriteRune(c.Glyph)
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

// View renders the composed surface, styling runs of equally painted cells.
func (s *Surface) View() string {
	cells := s.Cells()
	lines := make([]string, len(cells))
	for y, row := range cells {
		var b strings.Builder
		for x := 0; x < len(row); {
			end := x + 1
			for end < len(row) && samePaint(row[x], row[end]) {
				end++
			}
			var run strings.Builder
			for _, c := range row[x:end] {
				run.WriteRune(c.Glyph)
			}
			b.WriteString(styleFor(row[x]).Render(run.String()))
			x = end
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

func samePaint(a, b Cell) bool {
	return a.Fg == b.Fg && a.Bg == b.Bg && a.Bold == b.Bold
}

func styleFor(c Cell) lipgloss.Style {
	st := lipgloss.NewStyle()
	if c.Fg != "" {
		st = st.Foreground(lipgloss.Color(c.Fg))
	}
	if c.Bg != "" {
		st = st.Background(lipgloss.Color(c.Bg))
	}
	if c.Bold {
		st = st.Bold(true)
	}
	return st
}

package canvas

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterBrailleDots(t *testing.T) {
	r := NewRaster(2, 1, 2)

	// Logical (0, 0) covers dots (0..1, 0..1) at ratio 2; a zero radius only
	// sets the centre dot.
	r.FillCircle(0, 0, 0, "#fff")
	r.FillCircle(1.5, 1.5, 0, "#f00")

	cells := r.Cells()
	require.Len(t, cells, 1)
	assert.Equal(t, rune(0x2800+0x01), cells[0][0].Glyph)
	assert.Equal(t, "#fff", cells[0][0].Fg)
	// (1.5, 1.5) -> dot (3, 3): right column, bottom row of cell 1.
	assert.Equal(t, rune(0x2800+0x80), cells[0][1].Glyph)
	assert.Equal(t, "#f00", cells[0][1].Fg)
}

func TestRasterHalfBlocks(t *testing.T) {
	r := NewRaster(3, 1, 1)

	r.FillCircle(0, 0, 0, "")
	r.FillCircle(1, 1, 0, "")
	r.FillCircle(2, 0, 0, "")
	r.FillCircle(2, 1, 0, "")

	assert.Equal(t, "▀▄█", string([]rune{r.Cells()[0][0].Glyph, r.Cells()[0][1].Glyph, r.Cells()[0][2].Glyph}))
}

func TestRasterRatioClamp(t *testing.T) {
	_, _, ratio := NewRaster(1, 1, 5).Size()
	assert.Equal(t, 2, ratio)
	_, _, ratio = NewRaster(1, 1, 0).Size()
	assert.Equal(t, 1, ratio)
}

func TestRasterFillCircleRadius(t *testing.T) {
	r := NewRaster(10, 5, 2)

	r.FillCircle(5, 5, 1, "c")

	set := 0
	for _, row := range r.mask {
		for _, m := range row {
			for b := m; b != 0; b &= b - 1 {
				set++
			}
		}
	}
	// radius 1 logical = 2 dots: the disc covers more than the centre dot.
	assert.Greater(t, set, 4)
	r.Clear()
	assert.Equal(t, strings.Repeat(" ", 10), string(runes(r.Cells()[2])))
}

func TestRasterLastColourWins(t *testing.T) {
	r := NewRaster(1, 1, 2)

	r.FillCircle(0, 0, 0, "default")
	r.FillCircle(0.5, 0.5, 0, "highlighted")

	assert.Equal(t, "highlighted", r.Cells()[0][0].Fg)
}

func TestRasterIgnoresOutOfBounds(t *testing.T) {
	r := NewRaster(2, 2, 2)

	assert.NotPanics(t, func() {
		r.FillCircle(-3, -3, 1, "")
		r.FillCircle(100, 100, 1, "")
	})
}

func TestSurfaceComposition(t *testing.T) {
	s := NewSurface("axis", "brush")
	s.Resize(4, 2, 2)

	s.Raster().FillCircle(0, 0, 0, "dot")
	s.Raster().FillCircle(3, 2, 0, "dot")
	s.Vector().Group("axis").Text(1, 0, "ab", Paint{Fg: "axis"})
	s.Vector().Group("brush").Shade(0, 1, 0, 1, "sel")

	cells := s.Cells()
	assert.Equal(t, rune(0x2801), cells[0][0].Glyph)
	assert.Equal(t, "sel", cells[0][0].Bg)
	assert.Equal(t, 'a', cells[0][1].Glyph)
	assert.Equal(t, "axis", cells[0][1].Fg)
	assert.Equal(t, "sel", cells[0][1].Bg)
	assert.Equal(t, 'b', cells[0][2].Glyph)
	assert.Empty(t, cells[0][2].Bg)
	assert.Equal(t, "sel", cells[1][1].Bg)

	plain := strings.Split(s.Plain(), "\n")
	require.Len(t, plain, 2)
	assert.Equal(t, "⠁ab ", plain[0])

	view := s.View()
	assert.Contains(t, view, "a")
	assert.Equal(t, 2, len(strings.Split(view, "\n")))
}

func TestSurfaceResizeKeepsVectorGroups(t *testing.T) {
	s := NewSurface("axis")
	s.Resize(4, 1, 2)
	s.Vector().Group("axis").Text(0, 0, "x", Paint{})
	s.Raster().FillCircle(2, 0, 0, "")

	s.Resize(6, 1, 1)

	w, h, ratio := s.Size()
	assert.Equal(t, []int{6, 1, 1}, []int{w, h, ratio})
	assert.Equal(t, "x     ", s.Plain())

	s.Clear()
	assert.True(t, s.Vector().Group("axis").Empty())
}

func runes(row []Cell) []rune {
	out := make([]rune, len(row))
	for i, c := range row {
		out[i] = c.Glyph
	}
	return out
}

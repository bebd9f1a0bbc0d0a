// Package export renders a chart snapshot to a static PNG or SVG image.
package export

import (
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"goscatter/internal/dataset"
	"goscatter/internal/errors"
	"goscatter/internal/scale"
	"goscatter/internal/scatter"
)

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".svg":
		return FormatSVG, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported export format %q (use .png or .svg)", filepath.Ext(path))
}

// Snapshot is what gets drawn.
type Snapshot struct {
	Data      dataset.Processed
	Selection *scatter.Selection
	Palette   scatter.Palette
	XTitle    string
	YTitle    string
}

// Options size the image. Width and Height are pixels at scale 1.
type Options struct {
	Width  int
	Height int
	// Scale multiplies the pixel size of raster output; capped at 2.
	Scale float64
	// DotRadius in points.
	DotRadius float64
}

const baseDPI = 96

// DefaultOptions returns an 800x400 image at scale 1.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 400, Scale: 1, DotRadius: 2.5}
}

// Render draws snap to w.
func Render(w io.Writer, format Format, snap Snapshot, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "export size must be positive, got %dx%d", opts.Width, opts.Height)
	}
	p, err := build(snap, opts)
	if err != nil {
		return err
	}

	width := vg.Length(opts.Width) / baseDPI * vg.Inch
	height := vg.Length(opts.Height) / baseDPI * vg.Inch

	switch format {
	case FormatPNG:
		s := min(max(opts.Scale, 1), 2)
		c := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(int(baseDPI*s)))
		p.Draw(draw.New(c))
		_, err = vgimg.PngCanvas{Canvas: c}.WriteTo(w)
	case FormatSVG:
		c := vgsvg.New(width, height)
		p.Draw(draw.New(c))
		_, err = c.WriteTo(w)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported export format %q", format)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", format)
	}
	return nil
}

func build(snap Snapshot, opts Options) (*plot.Plot, error) {
	pal, err := parsePalette(snap.Palette)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.X.Label.Text = snap.XTitle
	p.Y.Label.Text = snap.YTitle

	xs := scale.NewLinear(snap.Data.XExtent.Min, snap.Data.XExtent.Max).Nice(10)
	ys := scale.NewLinear(snap.Data.YExtent.Min, snap.Data.YExtent.Max).Nice(10)
	p.X.Min, p.X.Max = xs.Domain()
	p.Y.Min, p.Y.Max = ys.Domain()
	p.X.Tick.Marker = plot.ConstantTicks(ticks(xs, 8, scale.IntegerFormat))
	p.Y.Tick.Marker = plot.ConstantTicks(ticks(ys, 5, ys.TickFormat(5)))

	if sel := snap.Selection; sel != nil {
		band, err := plotter.NewPolygon(plotter.XYs{
			{X: sel.Min, Y: p.Y.Min},
			{X: sel.Max, Y: p.Y.Min},
			{X: sel.Max, Y: p.Y.Max},
			{X: sel.Min, Y: p.Y.Max},
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "selection band")
		}
		band.Color = pal.band
		band.LineStyle.Width = 0
		p.Add(band)
	}

	b := scatter.Classify(snap.Data.Points, snap.Selection, snap.Palette)
	for _, bucket := range []struct {
		points []scatter.ClassifiedPoint
		color  color.Color
	}{
		{b.Default, pal.dflt},
		{b.Highlighted, pal.highlighted},
	} {
		if len(bucket.points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(bucket.points))
		for i, pt := range bucket.points {
			xys[i].X, xys[i].Y = pt.X, pt.Y
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "scatter")
		}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Color = bucket.color
		s.GlyphStyle.Radius = vg.Points(opts.DotRadius)
		p.Add(s)
	}
	return p, nil
}

func ticks(s scale.Linear, count int, format scale.Formatter) []plot.Tick {
	values := s.Ticks(count)
	out := make([]plot.Tick, len(values))
	for i, v := range values {
		out[i] = plot.Tick{Value: v, Label: format(v)}
	}
	return out
}

type colors struct {
	dflt        color.Color
	highlighted color.Color
	band        color.Color
}

func parsePalette(p scatter.Palette) (colors, error) {
	var out colors
	for _, c := range []struct {
		hex string
		dst *color.Color
	}{
		{p.Default, &out.dflt},
		{p.Highlighted, &out.highlighted},
		{p.Brush, &out.band},
	} {
		parsed, err := colorful.Hex(c.hex)
		if err != nil {
			return colors{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "colour %q", c.hex)
		}
		*c.dst = parsed
	}
	r, g, b := out.band.(colorful.Color).RGB255()
	out.band = color.NRGBA{R: r, G: g, B: b, A: 0x60}
	return out, nil
}

// FromChart snapshots the current state of c.
func FromChart(c *scatter.Chart) Snapshot {
	cfg := c.Config()
	return Snapshot{
		Data:      c.Processed(),
		Selection: c.Selection(),
		Palette:   c.Palette(),
		XTitle:    cfg.XTitle,
		YTitle:    cfg.YTitle,
	}
}

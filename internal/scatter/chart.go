// Package scatter is the price vs. interpreted value scatterplot: sold
// records drawn as dots on a raster layer, axes and a horizontal brush on a
// vector layer, and a selection callback fired when a brush gesture ends.
package scatter

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"goscatter/internal/brush"
	"goscatter/internal/canvas"
	"goscatter/internal/dataset"
	"goscatter/internal/debounce"
	"goscatter/internal/errors"
	"goscatter/internal/resize"
	"goscatter/internal/scale"
)

// Vector layer groups.
const (
	GroupAxisX = "axis-x"
	GroupAxisY = "axis-y"
	GroupBrush = "brush"
)

// niceCount is the tick count both domains are niced to.
const niceCount = 10

// Container is the host panel a chart is mounted in.
type Container interface {
	// Width is the measured width in cells.
	Width() int
	// PixelRatio is the number of raster dots per logical pixel.
	PixelRatio() float64
	// Property looks up a style property such as "--color-dot-default".
	Property(name string) string
}

// Chart is one scatterplot widget. Debounced work re-enters through the send
// function as messages handled by Update. Without WithSend the chart applies
// that work itself on the timer goroutine, so methods are safe for
// concurrent use; onChange is never called with the chart locked.
type Chart struct {
	mu sync.Mutex

	el       Container
	cfg      Config
	onChange func(*Selection)
	send     func(tea.Msg)
	logger   *log.Logger
	name     string

	data    dataset.Processed
	palette Palette
	surface *canvas.Surface
	brush   *brush.Brush
	state   renderState

	resized     *debounce.Debouncer[struct{}]
	brushed     *debounce.Debouncer[brush.Event]
	unsubscribe func()
	destroyed   bool
}

// renderState is everything that changes after construction.
type renderState struct {
	width     int
	ratio     int
	x, y      scale.Linear
	selection *Selection
	buckets   *Buckets
}

// Option configures a chart.
type Option func(*options)

type options struct {
	cfg    Config
	hub    *resize.Hub
	send   func(tea.Msg)
	logger *log.Logger
	name   string
}

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) Option { return func(o *options) { o.cfg = cfg } }

// WithHub subscribes the chart to terminal size changes.
func WithHub(h *resize.Hub) Option { return func(o *options) { o.hub = h } }

// WithSend sets how debounced work is delivered back to the program,
// usually tea.Program.Send. By default the chart applies it directly.
func WithSend(send func(tea.Msg)) Option { return func(o *options) { o.send = send } }

// WithLogger sets the logger; the default discards.
func WithLogger(l *log.Logger) Option { return func(o *options) { o.logger = l } }

// WithName labels the chart in log output.
func WithName(name string) Option { return func(o *options) { o.name = name } }

// New builds a chart over records inside el. onChange receives the price
// band when a brush gesture ends, or nil when the selection is cleared; it
// may be nil.
func New(el Container, records []dataset.Record, onChange func(*Selection), opts ...Option) (*Chart, error) {
	if el == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "chart container is nil")
	}
	o := options{cfg: DefaultConfig(), name: "chart"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	if onChange == nil {
		onChange = func(*Selection) {}
	}

	c := &Chart{
		el:       el,
		cfg:      o.cfg.normalized(),
		onChange: onChange,
		send:     o.send,
		logger:   o.logger.With("chart", o.name),
		name:     o.name,
	}
	if c.send == nil {
		c.send = func(msg tea.Msg) { c.Update(msg) }
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.processData(records)
	c.initVis()
	if o.hub != nil {
		c.unsubscribe = o.hub.Subscribe(func(resize.Size) { c.resized.Trigger(struct{}{}) })
	}
	c.resizeVis()
	c.wrangleData()
	return c, nil
}

func (c *Chart) processData(records []dataset.Record) {
	c.data = dataset.Process(records)
	c.logger.Debug("processed records", "records", len(records), "points", len(c.data.Points))
}

func (c *Chart) initVis() {
	cfg := c.cfg
	h := float64(cfg.height())

	c.state.x = scale.NewLinear(c.data.XExtent.Min, c.data.XExtent.Max).Nice(niceCount)
	c.state.y = scale.NewLinear(c.data.YExtent.Min, c.data.YExtent.Max).
		WithRange(h-float64(cfg.Margin.Bottom), float64(cfg.Margin.Top)).
		Nice(niceCount)

	c.palette = resolvePalette(c.el)
	c.surface = canvas.NewSurface(GroupAxisX, GroupAxisY, GroupBrush)
	c.brush = brush.New(brush.Rect{})

	c.resized = debounce.New(cfg.ResizeDelay, func(struct{}) { c.send(resizeMsg{chart: c}) })
	c.brushed = debounce.New(cfg.BrushDelay, func(ev brush.Event) { c.send(brushedMsg{chart: c, event: ev}) })
}

// resizeVis re-measures the container and redraws everything that depends on
// the width. The brush is repositioned from the data-space selection.
func (c *Chart) resizeVis() {
	cfg := c.cfg
	m := cfg.Margin

	width := max(c.el.Width(), m.Left+m.Right+2)
	ratio := min(max(int(c.el.PixelRatio()), 1), cfg.MaxPixelRatio)
	c.state.width, c.state.ratio = width, ratio

	c.surface.Resize(width, cfg.Rows, ratio)
	c.state.x = c.state.x.WithRange(float64(m.Left), float64(width-m.Right))
	c.brush.SetExtent(c.plotRect())

	c.renderXAxis()
	c.renderYAxis()
	if c.state.buckets != nil {
		c.renderDots()
	}
	if sel := c.state.selection; sel != nil {
		c.brush.Move(&brush.Interval{Lo: c.state.x.Map(sel.Min), Hi: c.state.x.Map(sel.Max)})
	} else {
		c.brush.Move(nil)
	}
	c.renderBrush()
	c.logger.Debug("resized", "width", width, "ratio", ratio)
}

func (c *Chart) plotRect() brush.Rect {
	m := c.cfg.Margin
	return brush.Rect{
		X0: float64(m.Left),
		Y0: float64(m.Top),
		X1: float64(c.state.width - m.Right),
		Y1: float64(c.cfg.height() - m.Bottom),
	}
}

// onBrushed applies a debounced brush event and reports whether the
// selection callback is due.
func (c *Chart) onBrushed(ev brush.Event) bool {
	if ev.Selection != nil {
		x := c.state.x
		c.state.selection = &Selection{Min: x.Invert(ev.Selection.Lo), Max: x.Invert(ev.Selection.Hi)}
	} else {
		c.state.selection = nil
	}
	c.logger.Debug("brushed", "type", ev.Type, "selection", c.state.selection)

	c.wrangleData()
	return ev.Type == brush.EventEnd
}

func (c *Chart) wrangleData() {
	b := Classify(c.data.Points, c.state.selection, c.palette)
	c.state.buckets = &b
	c.renderDots()
}

func (c *Chart) renderDots() {
	r := c.surface.Raster()
	r.Clear()
	for _, p := range c.state.buckets.Default {
		r.FillCircle(c.state.x.Map(p.X), c.state.y.Map(p.Y), c.cfg.Radius, p.Color)
	}
	for _, p := range c.state.buckets.Highlighted {
		r.FillCircle(c.state.x.Map(p.X), c.state.y.Map(p.Y), c.cfg.Radius, p.Color)
	}
}

// Update handles the chart's own debounced messages. It reports whether msg
// belonged to this chart.
func (c *Chart) Update(msg tea.Msg) bool {
	c.mu.Lock()
	owned, notify := c.apply(msg)
	sel := c.selection()
	c.mu.Unlock()

	if notify {
		c.onChange(sel)
	}
	return owned
}

func (c *Chart) apply(msg tea.Msg) (owned, notify bool) {
	switch msg := msg.(type) {
	case resizeMsg:
		if msg.chart != c {
			return false, false
		}
		if !c.destroyed {
			c.resizeVis()
		}
		return true, false
	case brushedMsg:
		if msg.chart != c {
			return false, false
		}
		if c.destroyed {
			return true, false
		}
		return true, c.onBrushed(msg.event)
	}
	return false, false
}

// Resize schedules a debounced re-measure, as a terminal size change does.
func (c *Chart) Resize() {
	if c.Destroyed() {
		return
	}
	c.resized.Trigger(struct{}{})
}

// Flush delivers pending debounced work immediately on the calling
// goroutine. It is used by tests and synchronous hosts.
func (c *Chart) Flush() {
	c.resized.Flush()
	c.brushed.Flush()
}

// Destroy unsubscribes from size changes, cancels pending debounced work and
// clears the surface. The chart ignores all later input.
func (c *Chart) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return
	}
	c.destroyed = true
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	c.resized.Stop()
	c.brushed.Stop()
	c.surface.Clear()
	c.logger.Debug("destroyed")
}

// Destroyed reports whether Destroy was called.
func (c *Chart) Destroyed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroyed
}

// Name returns the chart label.
func (c *Chart) Name() string { return c.name }

// Config returns the chart configuration.
func (c *Chart) Config() Config { return c.cfg }

// Palette returns the resolved colours.
func (c *Chart) Palette() Palette { return c.palette }

// Processed returns the projected points and extents.
func (c *Chart) Processed() dataset.Processed { return c.data }

// Selection returns a copy of the data-space selection, or nil.
func (c *Chart) Selection() *Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection()
}

func (c *Chart) selection() *Selection {
	if c.state.selection == nil {
		return nil
	}
	s := *c.state.selection
	return &s
}

// Buckets returns the current classification.
func (c *Chart) Buckets() Buckets {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.buckets == nil {
		return Buckets{}
	}
	return *c.state.buckets
}

// Scales returns the current x and y scales.
func (c *Chart) Scales() (x, y scale.Linear) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.x, c.state.y
}

// BrushSelection returns the pixel interval the brush currently shows.
func (c *Chart) BrushSelection() *brush.Interval {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.brush.Selection()
}

// Size returns the chart size in cells.
func (c *Chart) Size() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.width, c.cfg.Rows
}

// View renders the chart.
func (c *Chart) View() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surface.View()
}

// Plain renders the chart glyphs without styling.
func (c *Chart) Plain() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surface.Plain()
}

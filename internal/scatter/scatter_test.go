package scatter

import (
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goscatter/internal/brush"
	"goscatter/internal/dataset"
	"goscatter/internal/resize"
)

type panel struct {
	width int
	ratio float64
	props map[string]string
}

func (p *panel) Width() int                  { return p.width }
func (p *panel) PixelRatio() float64         { return p.ratio }
func (p *panel) Property(name string) string { return p.props[name] }

var records = []dataset.Record{
	{Price: 10, Scores: 5, Sold: true},
	{Price: 20, Scores: 8, Sold: false},
	{Price: 30, Scores: 2, Sold: true},
}

var palette = Palette{Default: "grey", Highlighted: "purple", Axis: "axis", Brush: "band"}

// harness collects debounced messages so tests can deliver them on demand.
type harness struct {
	t     *testing.T
	chart *Chart
	msgs  chan tea.Msg
	calls []*Selection
}

func newHarness(t *testing.T, el Container, recs []dataset.Record, opts ...Option) *harness {
	t.Helper()
	h := &harness{t: t, msgs: make(chan tea.Msg, 64)}
	// only deliver() releases debounced work unless a test sets its own delays
	slow := DefaultConfig()
	slow.ResizeDelay, slow.BrushDelay = time.Hour, time.Hour
	opts = append([]Option{WithConfig(slow), WithSend(func(m tea.Msg) { h.msgs <- m })}, opts...)
	c, err := New(el, recs, func(s *Selection) { h.calls = append(h.calls, s) }, opts...)
	require.NoError(t, err)
	h.chart = c
	return h
}

// deliver flushes debouncers and feeds every queued message to the chart.
func (h *harness) deliver() {
	h.chart.Flush()
	for {
		select {
		case m := <-h.msgs:
			assert.True(h.t, h.chart.Update(m))
		default:
			return
		}
	}
}

func press(col, row int) tea.MouseEvent {
	return tea.MouseEvent{X: col, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(col, row int) tea.MouseEvent {
	return tea.MouseEvent{X: col, Y: row, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(col, row int) tea.MouseEvent {
	return tea.MouseEvent{X: col, Y: row, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func TestClassifyScenario(t *testing.T) {
	points := dataset.Process(records).Points

	b := Classify(points, &Selection{Min: 15, Max: 30}, palette)

	require.Len(t, b.Default, 1)
	require.Len(t, b.Highlighted, 1)
	assert.Equal(t, dataset.Point{X: 10, Y: 5}, b.Default[0].Point)
	assert.Equal(t, "grey", b.Default[0].Color)
	assert.Equal(t, dataset.Point{X: 30, Y: 2}, b.Highlighted[0].Point)
	assert.Equal(t, ClassHighlighted, b.Highlighted[0].Class)
	assert.Equal(t, "purple", b.Highlighted[0].Color)
}

func TestClassifyProperties(t *testing.T) {
	var points []dataset.Point
	for i := 0; i < 50; i++ {
		points = append(points, dataset.Point{X: float64(i), Y: float64(i % 7)})
	}

	tests := []struct {
		name string
		sel  *Selection
	}{
		{name: "nil", sel: nil},
		{name: "band", sel: &Selection{Min: 10, Max: 20}},
		{name: "point", sel: &Selection{Min: 33, Max: 33}},
		{name: "outside", sel: &Selection{Min: 100, Max: 200}},
		{name: "everything", sel: &Selection{Min: -1, Max: 99}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Classify(points, tt.sel, palette)

			assert.Equal(t, b, Classify(points, tt.sel, palette), "classifying twice gives the same buckets")
			assert.Equal(t, len(points), b.Len())
			for _, p := range b.Highlighted {
				require.NotNil(t, tt.sel)
				assert.True(t, tt.sel.Min <= p.X && p.X <= tt.sel.Max)
			}
			for _, p := range b.Default {
				if tt.sel != nil {
					assert.False(t, tt.sel.Contains(p.X))
				}
			}
			// input order is kept within a bucket
			for i := 1; i < len(b.Default); i++ {
				assert.Less(t, b.Default[i-1].X, b.Default[i].X)
			}
		})
	}

	b := Classify(points, nil, palette)
	assert.Empty(t, b.Highlighted)
	assert.Len(t, b.Default, len(points))

	b = Classify(points, &Selection{Min: 10, Max: 20}, palette)
	assert.Len(t, b.Highlighted, 11, "closed interval includes both ends")
}

func TestNewScales(t *testing.T) {
	h := newHarness(t, &panel{width: 80, ratio: 2}, records)
	c := h.chart

	x, y := c.Scales()
	d0, d1 := x.Domain()
	assert.Equal(t, []float64{10, 30}, []float64{d0, d1})
	r0, r1 := x.Range()
	assert.Equal(t, []float64{10, 77}, []float64{r0, r1})

	d0, d1 = y.Domain()
	assert.Equal(t, []float64{2, 5}, []float64{d0, d1})
	r0, r1 = y.Range()
	assert.Equal(t, []float64{30, 1}, []float64{r0, r1})

	assert.Nil(t, c.Selection())
	assert.Len(t, c.Buckets().Default, 2)
	assert.Empty(t, c.Buckets().Highlighted)
	assert.Empty(t, h.calls)

	w, rows := c.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 18, rows)
}

func TestNewRejectsNilContainer(t *testing.T) {
	_, err := New(nil, records, nil)
	require.Error(t, err)
}

func TestEmptyDatasetFallsBack(t *testing.T) {
	h := newHarness(t, &panel{width: 40, ratio: 1}, []dataset.Record{{Price: 1, Scores: 1, Sold: false}})
	c := h.chart

	assert.True(t, c.Processed().Empty())
	x, _ := c.Scales()
	d0, d1 := x.Domain()
	assert.Equal(t, []float64{0, 1}, []float64{d0, d1})
	_, ok := c.Nearest(20, 5)
	assert.False(t, ok)
	assert.NotEmpty(t, c.View())
}

func TestAxesAndTitles(t *testing.T) {
	h := newHarness(t, &panel{width: 80, ratio: 2}, records)

	lines := strings.Split(h.chart.Plain(), "\n")
	require.Len(t, lines, 18)

	plain := h.chart.Plain()
	assert.Contains(t, plain, "Price")
	assert.Contains(t, plain, "10")
	assert.Contains(t, plain, "30")
	assert.Contains(t, lines[15], "─")
	assert.Contains(t, lines[15], "┼", "the lowest y tick sits on the x axis")

	var title strings.Builder
	for _, l := range lines {
		title.WriteRune([]rune(l)[0])
	}
	assert.Contains(t, title.String(), "Scores")
}

func TestSmallLeftMargins(t *testing.T) {
	tests := []struct {
		name string
		left int
	}{
		{name: "none", left: 0},
		{name: "one", left: 1},
		{name: "two", left: 2},
		{name: "three", left: 3},
		{name: "four", left: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Margin.Left = tt.left

			var c *Chart
			require.NotPanics(t, func() {
				c = newHarness(t, &panel{width: 40, ratio: 2}, records, WithConfig(cfg)).chart
			})

			lines := strings.Split(c.Plain(), "\n")
			require.Len(t, lines, 18)
			if tt.left > 0 {
				assert.Contains(t, "┼└", string([]rune(lines[15])[tt.left-1]))
			}
		})
	}
}

func TestDotColours(t *testing.T) {
	el := &panel{width: 80, ratio: 1, props: map[string]string{
		PropColorDotDefault:     "#111111",
		PropColorDotHighlighted: "#222222",
	}}
	h := newHarness(t, el, records)
	c := h.chart

	assert.Equal(t, "#111111", c.Palette().Default)
	assert.Equal(t, DefaultPalette.Axis, c.Palette().Axis)

	// (10, 5) maps to logical (10, 1): cell row 0, column 10.
	cells := c.surface.Cells()
	assert.Equal(t, "#111111", cells[0][10].Fg)

	c.Update(brushedMsg{chart: c, event: brush.Event{Type: brush.EventEnd, Selection: &brush.Interval{Lo: 10, Hi: 12}}})
	cells = c.surface.Cells()
	assert.Equal(t, "#222222", cells[0][10].Fg)
}

func TestBrushSelectionReportsBand(t *testing.T) {
	h := newHarness(t, &panel{width: 80, ratio: 2}, records)
	c := h.chart

	require.True(t, c.HandleMouse(20, 5, press(20, 5)))
	assert.True(t, c.Dragging())
	require.True(t, c.HandleMouse(40, 5, motion(40, 5)))
	require.True(t, c.HandleMouse(79, 5, release(79, 5)))
	assert.False(t, c.Dragging())

	// the brush redraws before the debounced selection lands
	assert.NotNil(t, c.BrushSelection())
	assert.Nil(t, c.Selection())
	assert.Empty(t, h.calls)

	h.deliver()

	require.Len(t, h.calls, 1)
	sel := h.calls[0]
	require.NotNil(t, sel)
	assert.InDelta(t, 10+10.5/67*20, sel.Min, 1e-9)
	assert.InDelta(t, 30, sel.Max, 1e-9)
	assert.Less(t, sel.Min, sel.Max)

	b := c.Buckets()
	require.Len(t, b.Highlighted, 1)
	assert.Equal(t, dataset.Point{X: 30, Y: 2}, b.Highlighted[0].Point)
	assert.Equal(t, sel, c.Selection())
}

func TestZeroWidthBrushReportsNil(t *testing.T) {
	h := newHarness(t, &panel{width: 80, ratio: 2}, records)
	c := h.chart

	c.HandleMouse(30, 5, press(30, 5))
	c.HandleMouse(30, 5, release(30, 5))
	h.deliver()

	require.Len(t, h.calls, 1)
	assert.Nil(t, h.calls[0])
	assert.Nil(t, c.Selection())
	assert.Nil(t, c.BrushSelection())
	assert.Empty(t, c.Buckets().Highlighted)
}

func TestIntermediateEventsDoNotNotify(t *testing.T) {
	h := newHarness(t, &panel{width: 80, ratio: 2}, records)
	c := h.chart

	c.HandleMouse(20, 5, press(20, 5))
	c.HandleMouse(60, 5, motion(60, 5))
	h.deliver()

	assert.Empty(t, h.calls)
	require.NotNil(t, c.Selection(), "brush events still reclassify")

	c.HandleMouse(60, 5, release(60, 5))
	h.deliver()
	assert.Len(t, h.calls, 1)
}

func TestClearSelection(t *testing.T) {
	h := newHarness(t, &panel{width: 80, ratio: 2}, records)
	c := h.chart
	c.HandleMouse(20, 5, press(20, 5))
	c.HandleMouse(60, 5, release(60, 5))
	h.deliver()
	require.NotNil(t, c.Selection())

	c.ClearSelection()
	h.deliver()

	require.Len(t, h.calls, 2)
	assert.Nil(t, h.calls[1])
	assert.Nil(t, c.Selection())
}

func TestMouseOutsidePlotIgnored(t *testing.T) {
	h := newHarness(t, &panel{width: 80, ratio: 2}, records)
	c := h.chart

	assert.False(t, c.HandleMouse(2, 5, press(2, 5)), "left margin")
	assert.False(t, c.HandleMouse(30, 16, press(30, 16)), "below the axis")
	assert.False(t, c.HandleMouse(30, 5, tea.MouseEvent{Action: tea.MouseActionPress, Button: tea.MouseButtonRight}))
	assert.False(t, c.HandleMouse(30, 5, motion(30, 5)), "no gesture in progress")
}

func TestResizeKeepsDataSelection(t *testing.T) {
	el := &panel{width: 800, ratio: 2}
	h := newHarness(t, el, records)
	c := h.chart

	x, _ := c.Scales()
	px := &brush.Interval{Lo: x.Map(15), Hi: x.Map(30)}
	c.brush.Move(px)
	c.Update(brushedMsg{chart: c, event: brush.Event{Type: brush.EventEnd, Selection: px}})
	require.Len(t, h.calls, 1)

	el.width = 400
	c.Resize()
	h.deliver()

	sel := c.Selection()
	require.NotNil(t, sel)
	assert.InDelta(t, 15, sel.Min, 1e-9)
	assert.InDelta(t, 30, sel.Max, 1e-9)

	x, _ = c.Scales()
	_, r1 := x.Range()
	assert.Equal(t, 397.0, r1)
	got := c.BrushSelection()
	require.NotNil(t, got)
	assert.InDelta(t, x.Map(15), got.Lo, 1e-9)
	assert.InDelta(t, x.Map(30), got.Hi, 1e-9)

	assert.Len(t, h.calls, 1, "resize does not notify")
	assert.Len(t, c.Buckets().Highlighted, 1)
}

func TestHubResizeIsDebounced(t *testing.T) {
	hub := resize.NewHub()
	el := &panel{width: 80, ratio: 2}
	cfg := DefaultConfig()
	cfg.ResizeDelay = 10 * time.Millisecond
	h := newHarness(t, el, records, WithHub(hub), WithConfig(cfg))
	require.Equal(t, 1, hub.Len())

	el.width = 60
	hub.Publish(resize.Size{Width: 60, Height: 40})
	hub.Publish(resize.Size{Width: 60, Height: 40})

	var got tea.Msg
	require.Eventually(t, func() bool {
		select {
		case got = <-h.msgs:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
	assert.True(t, h.chart.Update(got))

	w, _ := h.chart.Size()
	assert.Equal(t, 60, w)
	assert.Never(t, func() bool { return len(h.msgs) > 0 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestDestroy(t *testing.T) {
	hub := resize.NewHub()
	cfg := DefaultConfig()
	cfg.BrushDelay = 5 * time.Millisecond
	h := newHarness(t, &panel{width: 80, ratio: 2}, records, WithHub(hub), WithConfig(cfg))
	c := h.chart

	c.HandleMouse(20, 5, press(20, 5))
	c.Destroy()
	c.Destroy()

	assert.True(t, c.Destroyed())
	assert.Equal(t, 0, hub.Len())
	assert.Never(t, func() bool { return len(h.msgs) > 0 }, 50*time.Millisecond, 5*time.Millisecond)
	assert.False(t, c.HandleMouse(30, 5, release(30, 5)))
	assert.Empty(t, strings.TrimSpace(strings.ReplaceAll(c.Plain(), "\n", "")))
}

func TestUpdateIgnoresOtherCharts(t *testing.T) {
	a := newHarness(t, &panel{width: 80, ratio: 2}, records).chart
	b := newHarness(t, &panel{width: 80, ratio: 2}, records).chart

	assert.False(t, a.Update(resizeMsg{chart: b}))
	assert.False(t, a.Update(tea.KeyMsg{}))
	assert.True(t, b.Update(resizeMsg{chart: b}))
}

func TestDataAtAndNearest(t *testing.T) {
	h := newHarness(t, &panel{width: 80, ratio: 2}, records)
	c := h.chart

	price, score, ok := c.DataAt(76, 14)
	require.True(t, ok)
	assert.InDelta(t, 10+66.5/67*20, price, 1e-9)
	assert.InDelta(t, 2+(30-29.0)/29*3, score, 1e-9)

	_, _, ok = c.DataAt(0, 0)
	assert.False(t, ok)

	p, ok := c.Nearest(76, 14)
	require.True(t, ok)
	assert.Equal(t, dataset.Point{X: 30, Y: 2}, p)
}

func TestDefaultDeliveryWithoutSend(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BrushDelay = time.Hour
	var calls []*Selection
	c, err := New(&panel{width: 80, ratio: 2}, records, func(s *Selection) { calls = append(calls, s) }, WithConfig(cfg))
	require.NoError(t, err)

	require.True(t, c.HandleMouse(20, 5, press(20, 5)))
	c.HandleMouse(77, 5, motion(77, 5))
	c.HandleMouse(77, 5, release(77, 5))
	c.Flush()

	require.Len(t, calls, 1)
	require.NotNil(t, calls[0])
	x, _ := c.Scales()
	assert.InDelta(t, x.Invert(20.5), calls[0].Min, 1e-9)
	assert.InDelta(t, 30, calls[0].Max, 1e-9, "release clamps to the plot edge")
	assert.Equal(t, calls[0], c.Selection())
	assert.Len(t, c.Buckets().Highlighted, 1)
}

func TestDefaultDeliveryOnTimer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BrushDelay = 5 * time.Millisecond
	var (
		mu    sync.Mutex
		calls []*Selection
	)
	c, err := New(&panel{width: 80, ratio: 2}, records, func(s *Selection) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, s)
	}, WithConfig(cfg))
	require.NoError(t, err)

	c.HandleMouse(20, 5, press(20, 5))
	c.HandleMouse(60, 5, release(60, 5))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(calls) == 1
	}, time.Second, 5*time.Millisecond)
	assert.NotNil(t, c.Selection())
}

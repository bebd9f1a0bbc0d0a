package scatter

import "time"

// Margin is the space around the plot area in logical pixels: columns for
// Left and Right, half rows for Top and Bottom.
type Margin struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// Config is the fixed geometry and timing of a chart. It is copied into the
// chart at construction and never changes afterwards.
type Config struct {
	// Rows is the chart height in terminal rows.
	Rows   int
	Margin Margin
	// Radius of a dot in logical pixels.
	Radius float64

	XTitle string
	YTitle string

	// Tick spacing in logical pixels; the tick count is the plot size
	// divided by the spacing.
	XTickSpacing int
	YTickSpacing int

	ResizeDelay time.Duration
	BrushDelay  time.Duration

	// MaxPixelRatio caps the container pixel ratio.
	MaxPixelRatio int
}

// DefaultConfig returns the stock chart configuration.
func DefaultConfig() Config {
	return Config{
		Rows:          18,
		Margin:        Margin{Top: 1, Right: 3, Bottom: 6, Left: 10},
		Radius:        0.5,
		XTitle:        "Price",
		YTitle:        "Scores",
		XTickSpacing:  12,
		YTickSpacing:  6,
		ResizeDelay:   100 * time.Millisecond,
		BrushDelay:    25 * time.Millisecond,
		MaxPixelRatio: 2,
	}
}

// height returns the chart height in logical pixels.
func (c Config) height() int { return c.Rows * 2 }

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.Rows <= 0 {
		c.Rows = d.Rows
	}
	if c.Radius < 0 {
		c.Radius = 0
	}
	if c.XTickSpacing <= 0 {
		c.XTickSpacing = d.XTickSpacing
	}
	if c.YTickSpacing <= 0 {
		c.YTickSpacing = d.YTickSpacing
	}
	if c.MaxPixelRatio <= 0 {
		c.MaxPixelRatio = d.MaxPixelRatio
	}
	c.MaxPixelRatio = min(c.MaxPixelRatio, 2)
	return c
}

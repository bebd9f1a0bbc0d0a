// Package config loads goscatter settings from an optional TOML file and
// the environment.
package config

import (
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"goscatter/internal/errors"
	"goscatter/internal/scatter"
)

// DefaultFile is read when no path is given and it exists in the working
// directory.
const DefaultFile = "goscatter.toml"

// Environment overrides for the theme.
const (
	EnvColorDotDefault     = "GOSCATTER_COLOR_DOT_DEFAULT"
	EnvColorDotHighlighted = "GOSCATTER_COLOR_DOT_HIGHLIGHTED"
	EnvColorAxis           = "GOSCATTER_COLOR_AXIS"
	EnvColorBrush          = "GOSCATTER_COLOR_BRUSH"
)

type Config struct {
	Chart    Chart    `toml:"chart"`
	Debounce Debounce `toml:"debounce"`
	Theme    Theme    `toml:"theme"`
	Data     Data     `toml:"data"`
}

type Chart struct {
	Height        int     `toml:"height"`
	Radius        float64 `toml:"radius"`
	MarginTop     int     `toml:"margin_top"`
	MarginRight   int     `toml:"margin_right"`
	MarginBottom  int     `toml:"margin_bottom"`
	MarginLeft    int     `toml:"margin_left"`
	XTitle        string  `toml:"x_title"`
	YTitle        string  `toml:"y_title"`
	XTickSpacing  int     `toml:"x_tick_spacing"`
	YTickSpacing  int     `toml:"y_tick_spacing"`
	MaxPixelRatio int     `toml:"max_pixel_ratio"`
}

type Debounce struct {
	Resize time.Duration `toml:"resize"`
	Brush  time.Duration `toml:"brush"`
}

// Theme colours are hex strings. Dot colours feed the chart style
// properties.
type Theme struct {
	DotDefault     string `toml:"color-dot-default"`
	DotHighlighted string `toml:"color-dot-highlighted"`
	Axis           string `toml:"color-axis"`
	Brush          string `toml:"color-brush"`
	Accent         string `toml:"accent"`
}

type Data struct {
	Strict      bool   `toml:"strict"`
	ReduceEvery int    `toml:"reduce_every"`
	Dir         string `toml:"dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	sc := scatter.DefaultConfig()
	return Config{
		Chart: Chart{
			Height:        sc.Rows,
			Radius:        sc.Radius,
			MarginTop:     sc.Margin.Top,
			MarginRight:   sc.Margin.Right,
			MarginBottom:  sc.Margin.Bottom,
			MarginLeft:    sc.Margin.Left,
			XTitle:        sc.XTitle,
			YTitle:        sc.YTitle,
			XTickSpacing:  sc.XTickSpacing,
			YTickSpacing:  sc.YTickSpacing,
			MaxPixelRatio: sc.MaxPixelRatio,
		},
		Debounce: Debounce{Resize: sc.ResizeDelay, Brush: sc.BrushDelay},
		Theme: Theme{
			DotDefault:     scatter.DefaultPalette.Default,
			DotHighlighted: scatter.DefaultPalette.Highlighted,
			Axis:           scatter.DefaultPalette.Axis,
			Brush:          scatter.DefaultPalette.Brush,
			Accent:         "#7C3AED",
		},
		Data: Data{ReduceEvery: 10, Dir: "."},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path reads DefaultFile if it exists. envFiles are loaded with
// godotenv first; with none, ".env" is loaded if present. Variables already
// set in the environment win over env files.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return Config{}, err
		}
	}

	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load env files")
		}
	} else if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load .env")
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func (c *Config) applyEnv() {
	for env, dst := range map[string]*string{
		EnvColorDotDefault:     &c.Theme.DotDefault,
		EnvColorDotHighlighted: &c.Theme.DotHighlighted,
		EnvColorAxis:           &c.Theme.Axis,
		EnvColorBrush:          &c.Theme.Brush,
	} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*dst = v
		}
	}
}

// Validate rejects settings no chart can be drawn with.
func (c Config) Validate() error {
	ch := c.Chart
	switch {
	case ch.Height <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "chart.height must be positive, got %d", ch.Height)
	case ch.MarginTop < 0 || ch.MarginRight < 0 || ch.MarginBottom < 0 || ch.MarginLeft < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "chart margins must not be negative")
	case ch.MarginTop+ch.MarginBottom >= ch.Height*2:
		return errors.New(errors.ErrCodeInvalidConfig, "chart.height %d leaves no room inside the margins", ch.Height)
	case ch.Radius < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "chart.radius must not be negative")
	case ch.MaxPixelRatio < 1 || ch.MaxPixelRatio > 2:
		return errors.New(errors.ErrCodeInvalidConfig, "chart.max_pixel_ratio must be 1 or 2, got %d", ch.MaxPixelRatio)
	case c.Debounce.Resize < 0 || c.Debounce.Brush < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "debounce delays must not be negative")
	case c.Data.ReduceEvery < 1:
		return errors.New(errors.ErrCodeInvalidConfig, "data.reduce_every must be at least 1, got %d", c.Data.ReduceEvery)
	}
	return nil
}

// Scatter returns the chart configuration.
func (c Config) Scatter() scatter.Config {
	ch := c.Chart
	return scatter.Config{
		Rows: ch.Height,
		Margin: scatter.Margin{
			Top:    ch.MarginTop,
			Right:  ch.MarginRight,
			Bottom: ch.MarginBottom,
			Left:   ch.MarginLeft,
		},
		Radius:        ch.Radius,
		XTitle:        ch.XTitle,
		YTitle:        ch.YTitle,
		XTickSpacing:  ch.XTickSpacing,
		YTickSpacing:  ch.YTickSpacing,
		ResizeDelay:   c.Debounce.Resize,
		BrushDelay:    c.Debounce.Brush,
		MaxPixelRatio: ch.MaxPixelRatio,
	}
}

// Properties returns the style properties a chart container exposes.
func (c Config) Properties() map[string]string {
	return map[string]string{
		scatter.PropColorDotDefault:     c.Theme.DotDefault,
		scatter.PropColorDotHighlighted: c.Theme.DotHighlighted,
		scatter.PropColorAxis:           c.Theme.Axis,
		scatter.PropColorBrush:          c.Theme.Brush,
	}
}

// Palette returns the theme as chart colours.
func (c Config) Palette() scatter.Palette {
	return scatter.Palette{
		Default:     c.Theme.DotDefault,
		Highlighted: c.Theme.DotHighlighted,
		Axis:        c.Theme.Axis,
		Brush:       c.Theme.Brush,
	}
}

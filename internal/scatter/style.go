package scatter

// Host style properties resolved from the container.
const (
	PropColorDotDefault     = "--color-dot-default"
	PropColorDotHighlighted = "--color-dot-highlighted"
	PropColorAxis           = "--color-axis"
	PropColorBrush          = "--color-brush"
)

// Palette holds the colours a chart draws with.
type Palette struct {
	Default     string
	Highlighted string
	Axis        string
	Brush       string
}

// DefaultPalette is used for properties the container leaves empty.
var DefaultPalette = Palette{
	Default:     "#9CA3AF",
	Highlighted: "#7C3AED",
	Axis:        "#6B7280",
	Brush:       "#243141",
}

func resolvePalette(el Container) Palette {
	p := Palette{
		Default:     el.Property(PropColorDotDefault),
		Highlighted: el.Property(PropColorDotHighlighted),
		Axis:        el.Property(PropColorAxis),
		Brush:       el.Property(PropColorBrush),
	}
	if p.Default == "" {
		p.Default = DefaultPalette.Default
	}
	if p.Highlighted == "" {
		p.Highlighted = DefaultPalette.Highlighted
	}
	if p.Axis == "" {
		p.Axis = DefaultPalette.Axis
	}
	if p.Brush == "" {
		p.Brush = DefaultPalette.Brush
	}
	return p
}

package scatter

import "goscatter/internal/dataset"

// Selection is a price band in data units, Min <= Max.
type Selection struct {
	Min float64
	Max float64
}

// Contains reports whether x lies in the closed interval [Min, Max].
func (s Selection) Contains(x float64) bool { return s.Min <= x && x <= s.Max }

// Class is the bucket a point is drawn in.
type Class int

const (
	ClassDefault Class = iota
	ClassHighlighted
)

// ClassifiedPoint is a point tagged with its bucket and colour.
type ClassifiedPoint struct {
	dataset.Point
	Class Class
	Color string
}

// Buckets partitions points by selection. Order within each bucket follows
// the input order.
type Buckets struct {
	Default     []ClassifiedPoint
	Highlighted []ClassifiedPoint
}

// Len returns the total number of points.
func (b Buckets) Len() int { return len(b.Default) + len(b.Highlighted) }

// Classify puts points whose x lies in sel into Highlighted and the rest
// into Default. A nil sel highlights nothing.
func Classify(points []dataset.Point, sel *Selection, palette Palette) Buckets {
	b := Buckets{
		Default:     make([]ClassifiedPoint, 0, len(points)),
		Highlighted: make([]ClassifiedPoint, 0),
	}
	for _, p := range points {
		if sel != nil && sel.Contains(p.X) {
			b.Highlighted = append(b.Highlighted, ClassifiedPoint{Point: p, Class: ClassHighlighted, Color: palette.Highlighted})
			continue
		}
		b.Default = append(b.Default, ClassifiedPoint{Point: p, Class: ClassDefault, Color: palette.Default})
	}
	return b
}

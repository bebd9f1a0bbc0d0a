// Package dataset loads sold-item records and projects them into plot space.
package dataset

// Record is one input item. Records are read-only once loaded.
type Record struct {
	Price  float64 `json:"price"`
	Scores float64 `json:"scores"`
	Sold   bool    `json:"sold"`
}

// Point is a sold record projected to plot space: X is the price, Y the score.
type Point struct {
	X float64
	Y float64
}

// Extent is the [Min, Max] span of a set of values. Min <= Max.
type Extent struct {
	Min float64
	Max float64
}

// Contains reports whether v lies in the closed interval [Min, Max].
func (e Extent) Contains(v float64) bool {
	return e.Min <= v && v <= e.Max
}

// Issue describes a malformed record skipped in lenient mode.
type Issue struct {
	Index  int
	Reason string
}

// Processed holds the projected points and their per-axis extents.
type Processed struct {
	Points  []Point
	XExtent Extent
	YExtent Extent
}

// Empty reports whether no record was sold.
func (p Processed) Empty() bool { return len(p.Points) == 0 }

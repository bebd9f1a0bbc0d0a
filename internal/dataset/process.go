package dataset

import "gonum.org/v1/gonum/floats"

// FallbackExtent is the extent used for both axes when no record is sold.
var FallbackExtent = Extent{Min: 0, Max: 1}

// Process keeps sold records in input order, projects them to points and
// computes the x and y extents.
func Process(records []Record) Processed {
	points := make([]Point, 0, len(records))
	xs := make([]float64, 0, len(records))
	ys := make([]float64, 0, len(records))
	for _, r := range records {
		if !r.Sold {
			continue
		}
		points = append(points, Point{X: r.Price, Y: r.Scores})
		xs = append(xs, r.Price)
		ys = append(ys, r.Scores)
	}

	p := Processed{Points: points, XExtent: FallbackExtent, YExtent: FallbackExtent}
	if len(points) == 0 {
		return p
	}
	p.XExtent = Extent{Min: floats.Min(xs), Max: floats.Max(xs)}
	p.YExtent = Extent{Min: floats.Min(ys), Max: floats.Max(ys)}
	return p
}

// EveryNth returns every n-th record starting with the first one.
// n <= 1 returns records unchanged.
func EveryNth(records []Record, n int) []Record {
	if n <= 1 {
		return records
	}
	out := make([]Record, 0, len(records)/n+1)
	for i := 0; i < len(records); i += n {
		out = append(out, records[i])
	}
	return out
}

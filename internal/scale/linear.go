// Package scale maps continuous data values to screen coordinates.
package scale

import "math"

// Linear is a continuous linear mapping from a domain [D0, D1] to a range
// [R0, R1]. The zero value maps everything to 0.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear returns a scale over the domain [d0, d1] with range [0, 1].
func NewLinear(d0, d1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: 0, r1: 1}
}

// Domain returns the domain endpoints.
func (s Linear) Domain() (float64, float64) { return s.d0, s.d1 }

// Range returns the range endpoints.
func (s Linear) Range() (float64, float64) { return s.r0, s.r1 }

// WithRange returns a copy of s mapping onto [r0, r1].
func (s Linear) WithRange(r0, r1 float64) Linear {
	s.r0, s.r1 = r0, r1
	return s
}

// Map converts a domain value to the range. A degenerate domain maps every
// value to the middle of the range.
func (s Linear) Map(v float64) float64 {
	t := 0.5
	if s.d1 != s.d0 {
		t = (v - s.d0) / (s.d1 - s.d0)
	}
	return s.r0 + t*(s.r1-s.r0)
}

// Invert converts a range value back to the domain.
func (s Linear) Invert(px float64) float64 {
	t := 0.5
	if s.r1 != s.r0 {
		t = (px - s.r0) / (s.r1 - s.r0)
	}
	return s.d0 + t*(s.d1-s.d0)
}

// Nice extends the domain outward to round values so that it starts and ends
// on a tick of roughly count ticks. A single-value domain [v, v] is first
// widened to [v-1, v+1].
func (s Linear) Nice(count int) Linear {
	if count <= 0 {
		count = 10
	}
	start, stop := s.d0, s.d1
	if start == stop {
		start, stop = start-1, stop+1
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	var prestep float64
	for iter := 0; iter < 10; iter++ {
		step := tickIncrement(start, stop, float64(count))
		if step == prestep {
			break
		}
		switch {
		case step > 0:
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		case step < 0:
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		default:
			return s.withDomain(start, stop, reverse)
		}
		prestep = step
	}
	return s.withDomain(start, stop, reverse)
}

func (s Linear) withDomain(start, stop float64, reverse bool) Linear {
	if reverse {
		start, stop = stop, start
	}
	s.d0, s.d1 = start, stop
	return s
}

// Ticks returns roughly count round values inside the domain, in ascending
// domain order.
func (s Linear) Ticks(count int) []float64 {
	return Ticks(s.d0, s.d1, count)
}

// TickStep returns the distance between consecutive ticks for count.
func (s Linear) TickStep(count int) float64 {
	lo, hi := s.d0, s.d1
	if hi < lo {
		lo, hi = hi, lo
	}
	if count <= 0 || lo == hi {
		return 0
	}
	inc := tickIncrement(lo, hi, float64(count))
	if inc < 0 {
		return -1 / inc
	}
	return inc
}

// Ticks returns round values between start and stop.
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	i1, i2, inc := tickSpec(start, stop, float64(count))
	if !(i2 >= i1) {
		return nil
	}
	n := int(i2-i1) + 1
	ticks := make([]float64, n)
	for i := 0; i < n; i++ {
		k := i1 + float64(i)
		if reverse {
			k = i2 - float64(i)
		}
		if inc < 0 {
			ticks[i] = k / -inc
		} else {
			ticks[i] = k * inc
		}
	}
	return ticks
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickSpec returns the first and last tick index and the increment. A
// negative increment encodes 1/inc for steps below one, which keeps tick
// values exact in floating point.
func tickSpec(start, stop, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}
	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = math.Round(start * inc)
		i2 = math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = math.Round(start / inc)
		i2 = math.Round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}
	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

func tickIncrement(start, stop, count float64) float64 {
	_, _, inc := tickSpec(start, stop, count)
	return inc
}

package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearMapInvert(t *testing.T) {
	s := NewLinear(10, 30).WithRange(44, 768)

	assert.InDelta(t, 44, s.Map(10), 1e-9)
	assert.InDelta(t, 768, s.Map(30), 1e-9)
	assert.InDelta(t, 406, s.Map(20), 1e-9)
	assert.InDelta(t, 20, s.Invert(406), 1e-9)

	for _, v := range []float64{-5, 10, 12.5, 29.99, 100} {
		assert.InDelta(t, v, s.Invert(s.Map(v)), 1e-9)
	}
}

func TestLinearInvertedRange(t *testing.T) {
	y := NewLinear(0, 10).WithRange(364, 8)

	assert.InDelta(t, 364, y.Map(0), 1e-9)
	assert.InDelta(t, 8, y.Map(10), 1e-9)
	assert.InDelta(t, 5, y.Invert(186), 1e-9)
}

func TestLinearDegenerateDomain(t *testing.T) {
	s := NewLinear(4, 4).WithRange(0, 100)

	assert.Equal(t, 50.0, s.Map(4))
	assert.Equal(t, 50.0, s.Map(1000))
	assert.Equal(t, 4.0, s.Invert(12))
}

func TestNice(t *testing.T) {
	tests := []struct {
		name       string
		d0, d1     float64
		count      int
		want0, wan float64
	}{
		{name: "already round", d0: 10, d1: 30, count: 10, want0: 10, wan: 30},
		{name: "fractional", d0: 0.3, d1: 9.7, count: 10, want0: 0, wan: 10},
		{name: "hundreds", d0: 12, d1: 987, count: 10, want0: 0, wan: 1000},
		{name: "small step", d0: 0.123, d1: 0.877, count: 10, want0: 0.1, wan: 0.9},
		{name: "reversed", d0: 9.7, d1: 0.3, count: 10, want0: 10, wan: 0},
		{name: "single value", d0: 5, d1: 5, count: 10, want0: 4, wan: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d0, d1 := NewLinear(tt.d0, tt.d1).Nice(tt.count).Domain()
			assert.InDelta(t, tt.want0, d0, 1e-9)
			assert.InDelta(t, tt.wan, d1, 1e-9)
		})
	}
}

func TestNiceContainsExtent(t *testing.T) {
	for _, ext := range [][2]float64{{1.5, 2.25}, {-17, 3}, {1200, 98765}, {0.001, 0.002}} {
		d0, d1 := NewLinear(ext[0], ext[1]).Nice(10).Domain()
		assert.LessOrEqual(t, d0, ext[0])
		assert.GreaterOrEqual(t, d1, ext[1])
	}
}

func TestTicks(t *testing.T) {
	tests := []struct {
		name        string
		start, stop float64
		count       int
		want        []float64
	}{
		{name: "integers", start: 0, stop: 10, count: 5, want: []float64{0, 2, 4, 6, 8, 10}},
		{name: "fractions", start: 0, stop: 1, count: 5, want: []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{name: "reversed", start: 10, stop: 0, count: 5, want: []float64{10, 8, 6, 4, 2, 0}},
		{name: "equal", start: 3, stop: 3, count: 5, want: []float64{3}},
		{name: "no count", start: 0, stop: 1, count: 0, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ticks(tt.start, tt.stop, tt.count)
			assert.InDeltaSlice(t, tt.want, got, 1e-12)
		})
	}
}

func TestFormats(t *testing.T) {
	assert.Equal(t, "12,346", IntegerFormat(12345.6))
	assert.Equal(t, "-1,000", IntegerFormat(-1000))
	assert.Equal(t, "0.2", NewLinear(0, 1).TickFormat(5)(0.2))
	assert.Equal(t, "40", NewLinear(0, 100).TickFormat(5)(40))
	assert.Equal(t, "-1,234.5", FixedFormat(-1234.5, 1))
	assert.Equal(t, "0.0", FixedFormat(-0.04, 1))
}

package scale

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Formatter renders a tick value as a label.
type Formatter func(float64) string

// IntegerFormat formats values rounded to integers with thousands separators,
// e.g. 12345.6 -> "12,346".
func IntegerFormat(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

// TickFormat returns a fixed-precision formatter suited to the tick step of
// s for count ticks: a step of 0.5 formats with one decimal, a step of 5
// with none.
func (s Linear) TickFormat(count int) Formatter {
	step := s.TickStep(count)
	decimals := 0
	if step > 0 {
		decimals = max(0, -int(math.Floor(math.Log10(step))))
	}
	return func(v float64) string {
		return FixedFormat(v, decimals)
	}
}

// FixedFormat formats v with the given number of decimals and thousands
// separators in the integer part.
func FixedFormat(v float64, decimals int) string {
	if decimals <= 0 {
		return IntegerFormat(v)
	}
	s := strconv.FormatFloat(math.Abs(v), 'f', decimals, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return strconv.FormatFloat(v, 'f', decimals, 64)
	}
	out := humanize.Comma(n) + "." + frac
	if v < 0 && strings.Trim(s, "0.") != "" {
		out = "-" + out
	}
	return out
}

package surface

import (
	"math"
	"strconv"
	"time"
)

// TickLabel returns the x-axis label for the day tick t. total is the tick
// count of the axis minus its two end ticks. Month starts are labelled with
// the month abbreviation and drawn bold; the 10th and 20th always get their
// day number, every other day only on short spans.
func TickLabel(t time.Time, total int) (label string, bold bool, ok bool) {
	switch d := t.Day(); {
	case d == 1:
		return t.Format("Jan"), true, true
	case d == 10 || d == 20:
		return strconv.Itoa(d), false, true
	case total < 60:
		return strconv.Itoa(d), false, true
	}
	return "", false, false
}

// dayTicks returns every local midnight in [from, to].
func dayTicks(from, to time.Time) []time.Time {
	y, m, d := from.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, from.Location())
	if day.Before(from) {
		day = day.AddDate(0, 0, 1)
	}
	var out []time.Time
	for !day.After(to) {
		out = append(out, day)
		day = day.AddDate(0, 0, 1)
	}
	return out
}

// niceStep returns a 1, 2 or 5 times power-of-ten step so that span is split
// into at most n intervals.
func niceStep(span float64, n int) float64 {
	if n < 1 {
		n = 1
	}
	raw := span / float64(n)
	if raw <= 0 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, f := range []float64{1, 2, 5, 10} {
		if f*mag >= raw {
			return f * mag
		}
	}
	return 10 * mag
}

// PriceAxisMax is the y-axis ceiling: the highest open plus one step, rounded
// up to a whole step.
func PriceAxisMax(maxOpen float64) float64 {
	const step = 1000
	return math.Ceil((maxOpen+step)/step) * step
}

package coord

import (
	"math"
	"time"
)

// Scale maps a linear domain [Min, Max] onto the pixel span [Start, End].
// Start may be greater than End (y axes grow upwards).
type Scale struct {
	Min   float64
	Max   float64
	Start float64
	End   float64
}

// Ready reports whether the scale has been laid out with usable geometry.
func (s Scale) Ready() bool {
	for _, v := range []float64{s.Min, s.Max, s.Start, s.End} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return s.Max != s.Min && s.End != s.Start
}

// ValueToPixel returns the pixel offset of v. Values outside the domain
// extrapolate linearly.
func (s Scale) ValueToPixel(v float64) float64 {
	if !s.Ready() {
		return math.NaN()
	}
	return s.Start + (v-s.Min)/(s.Max-s.Min)*(s.End-s.Start)
}

// PixelToValue returns the domain value at pixel p. The second result is false
// when p lies outside the rendered pixel span or the scale is not ready.
func (s Scale) PixelToValue(p float64) (float64, bool) {
	if !s.Ready() || !s.containsPixel(p) {
		return 0, false
	}
	return s.Min + (p-s.Start)/(s.End-s.Start)*(s.Max-s.Min), true
}

func (s Scale) containsPixel(p float64) bool {
	lo, hi := s.pixelBounds()
	return p >= lo && p <= hi
}

func (s Scale) pixelBounds() (float64, float64) {
	if s.Start <= s.End {
		return s.Start, s.End
	}
	return s.End, s.Start
}

// DayBucket truncates t to midnight in t's own location.
func DayBucket(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// TimeValue converts a timestamp to the millisecond domain used by time axes.
func TimeValue(t time.Time) float64 {
	return float64(t.UnixMilli())
}

// ValueTime converts a time-axis value back to a local timestamp, rounded to
// the millisecond.
func ValueTime(v float64) time.Time {
	return time.UnixMilli(int64(math.Round(v))).Local()
}

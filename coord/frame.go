package coord

import "time"

// Area is the plot rectangle of a surface, in inclusive cell indices.
type Area struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

func (a Area) Width() int  { return a.Right - a.Left + 1 }
func (a Area) Height() int { return a.Bottom - a.Top + 1 }

func (a Area) Empty() bool { return a.Width() <= 0 || a.Height() <= 0 }

func (a Area) ContainsX(x int) bool { return x >= a.Left && x <= a.Right }

func (a Area) Contains(x, y int) bool {
	return a.ContainsX(x) && y >= a.Top && y <= a.Bottom
}

// Frame is the derived geometry of a laid-out surface: its plot area and the
// time (X) and value (Y) scales drawn inside it.
type Frame struct {
	Area Area
	X    Scale
	Y    Scale
}

// Ready reports whether the frame can be used for conversions. Surfaces that
// have not been sized yet return a zero frame.
func (f Frame) Ready() bool {
	return !f.Area.Empty() && f.X.Ready() && f.Y.Ready()
}

// TimeAt returns the timestamp under pixel column x.
func (f Frame) TimeAt(x int) (time.Time, bool) {
	v, ok := f.X.PixelToValue(float64(x))
	if !ok {
		return time.Time{}, false
	}
	return ValueTime(v), true
}

// PixelOf returns the pixel column of t on the time axis.
func (f Frame) PixelOf(t time.Time) float64 {
	return f.X.ValueToPixel(TimeValue(t))
}

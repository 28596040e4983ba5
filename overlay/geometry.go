package overlay

import (
	"math"

	"github.com/andareed/siftly-chart/coord"
	"github.com/andareed/siftly-chart/dataset"
)

// Point is the position on the rendered line under a pointer column.
type Point struct {
	X, Y  float64
	Value float64
	Above bool // Value is at or above the first open
}

// NearestPoint interpolates the line between the two rows bracketing the
// time under column x. ok is false off the plot or outside the series.
func NearestPoint(ds *dataset.Dataset, frame coord.Frame, x int) (Point, bool) {
	if !frame.Ready() || !frame.Area.ContainsX(x) {
		return Point{}, false
	}
	t, ok := frame.TimeAt(x)
	if !ok {
		return Point{}, false
	}
	i, ok := ds.Bracket(t)
	if !ok {
		return Point{}, false
	}
	a, b := ds.At(i), ds.At(i+1)
	ax, bx := frame.PixelOf(a.Date), frame.PixelOf(b.Date)
	ay, by := frame.Y.ValueToPixel(a.Open), frame.Y.ValueToPixel(b.Open)

	f := 0.0
	if bx != ax {
		f = (float64(x) - ax) / (bx - ax)
	}
	f = math.Max(0, math.Min(1, f))
	v := a.Open + (b.Open-a.Open)*f
	return Point{
		X:     float64(x),
		Y:     ay + (by-ay)*f,
		Value: v,
		Above: v >= ds.First().Open,
	}, true
}

// Rect is a cell rectangle.
type Rect struct {
	X, Y int
	W, H int
}

// Size is the tooltip panel size in cells.
type Size struct {
	W, H int
}

// TooltipMargin is the gap between the pointer and the tooltip panel.
const TooltipMargin = 2

// TooltipRect places a tooltip of size next to the pointer at x, y. The
// panel goes right of and below the pointer, flips left when it would
// overflow canvasW and above when the pointer is in the lower half of area.
// The result is clamped inside the canvas.
func TooltipRect(canvasW, canvasH int, area coord.Area, x, y int, size Size) Rect {
	r := Rect{X: x + TooltipMargin, Y: y + 1, W: size.W, H: size.H}
	if r.X+r.W > canvasW {
		r.X = x - TooltipMargin - r.W
	}
	if y > area.Top+area.Height()/2 {
		r.Y = y - 1 - r.H
	}
	r.X = max(0, min(r.X, canvasW-r.W))
	r.Y = max(0, min(r.Y, canvasH-r.H))
	return r
}

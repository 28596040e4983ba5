package overlay

import (
	"math"

	"github.com/andareed/siftly-chart/canvas"
	"github.com/andareed/siftly-chart/coord"
	"github.com/andareed/siftly-chart/surface"
)

const (
	CrosshairLayout = "1/2/2006, 3:04:05 PM"
	TooltipDate     = "1/2/2006"
	TooltipTime     = "3:04:05 PM"
)

// DefaultTooltipSize fits a date, a time and two currency rows with padding.
var DefaultTooltipSize = Size{W: 24, H: 6}

// Crosshair follows the pointer over the detail plot: dashed guides, value
// and date labels in the gutters, a marker on the line and a tooltip with
// the hovered row.
type Crosshair struct {
	Size Size

	x, y   int
	active bool
}

func NewCrosshair() *Crosshair {
	return &Crosshair{Size: DefaultTooltipSize}
}

// Move records the pointer position in surface cells.
func (c *Crosshair) Move(x, y int) {
	c.x, c.y, c.active = x, y, true
}

// Leave clears the pointer. The next draw erases the crosshair.
func (c *Crosshair) Leave() { c.active = false }

// Pointer returns the last recorded position.
func (c *Crosshair) Pointer() (int, int, bool) { return c.x, c.y, c.active }

// Visible reports whether the pointer is inside the plot of frame.
func (c *Crosshair) Visible(frame coord.Frame) bool {
	return c.active && frame.Ready() && frame.Area.Contains(c.x, c.y)
}

// DateLabel is the x-gutter label for column x.
func DateLabel(frame coord.Frame, x int) (string, bool) {
	t, ok := frame.TimeAt(x)
	if !ok {
		return "", false
	}
	return t.Format(CrosshairLayout), true
}

func (c *Crosshair) BeforeDatasetsDraw(*surface.Surface) {}

func (c *Crosshair) AfterDraw(s *surface.Surface) {
	f := s.Frame()
	if !c.Visible(f) {
		return
	}
	cv, pal := s.Canvas(), s.Palette()

	cv.Save()
	cv.Stroke = pal.Tooltip
	cv.Dash = []int{1, 1}
	cv.StrokeHLine(f.Area.Left, f.Area.Right, c.y)
	cv.StrokeVLine(c.x, f.Area.Top, f.Area.Bottom)
	cv.Restore()

	if v, ok := f.Y.PixelToValue(float64(c.y)); ok {
		labelBox(cv, pal.YLabel, pal.TooltipDate, 0, s.Gutter()-1, c.y, surface.OpenLabelText(v))
	}
	if label, ok := DateLabel(f, c.x); ok {
		w := canvas.TextWidth(label)
		x0 := max(0, min(c.x-w/2, cv.Width()-w))
		labelBox(cv, pal.XLabel, pal.TooltipDate, x0, x0+w, f.Area.Bottom+1, label)
	}

	if p, ok := NearestPoint(s.Dataset(), f, c.x); ok {
		cv.Save()
		cv.Fill = pal.Below
		if p.Above {
			cv.Fill = pal.Above
		}
		cv.Dot(int(math.Round(p.X)), int(math.Round(p.Y)))
		cv.Restore()
	}

	c.drawTooltip(s, f)
}

func (c *Crosshair) drawTooltip(s *surface.Surface, f coord.Frame) {
	t, ok := f.TimeAt(c.x)
	if !ok {
		return
	}
	ds := s.Dataset()
	i := ds.IndexAt(t)
	if i < 0 {
		return
	}
	row := ds.At(i)
	cv, pal, m := s.Canvas(), s.Palette(), s.Money()
	r := TooltipRect(cv.Width(), cv.Height(), f.Area, c.x, c.y, c.Size)

	cv.Save()
	defer cv.Restore()
	cv.Fill = pal.Tooltip.WithAlpha(1)
	cv.FillRect(r.X, r.Y, r.W, r.H)

	left := r.X + 1
	cv.Fill = pal.TooltipDate
	cv.Bold = true
	cv.FillText(left, r.Y+1, t.Format(TooltipDate))
	cv.Bold = false
	cv.Fill = pal.TooltipTime
	cv.FillText(left, r.Y+2, t.Format(TooltipTime))

	cv.Fill = pal.Above
	if row.Open < ds.First().Open {
		cv.Fill = pal.Below
	}
	cv.Dot(left, r.Y+3)

	cv.Fill = pal.TooltipData
	if m != nil {
		cv.FillText(left+2, r.Y+3, "Open "+m.Price(row.Open))
		cv.FillText(left+2, r.Y+4, "Vol  "+m.Compact(row.Volume))
	}
}

package overlay

import (
	"math"

	"github.com/andareed/siftly-chart/canvas"
	"github.com/andareed/siftly-chart/surface"
)

// OpeningLine draws a dotted reference line at the first open price with a
// label box in the gutter. It paints before the series so the line sits on
// top of it.
type OpeningLine struct{}

func (OpeningLine) BeforeDatasetsDraw(s *surface.Surface) {
	f := s.Frame()
	if !f.Y.Ready() {
		return
	}
	open := s.Dataset().First().Open
	row := int(math.Round(f.Y.ValueToPixel(open)))
	if row < f.Area.Top || row > f.Area.Bottom {
		return
	}
	c, pal := s.Canvas(), s.Palette()

	c.Save()
	c.Stroke = pal.OpenLabel
	c.Dash = []int{1, 1}
	c.StrokeHLine(f.Area.Left, f.Area.Right, row)
	c.Restore()

	labelBox(c, pal.OpenLabel, pal.TooltipDate, 0, s.Gutter()-1, row, surface.OpenLabelText(open))
}

func (OpeningLine) AfterDraw(*surface.Surface) {}

// labelBox fills cells [x0, x1) of row with bg and right-aligns text in it.
func labelBox(c *canvas.Canvas, bg, fg canvas.RGBA, x0, x1, row int, text string) {
	if x1 <= x0 {
		return
	}
	c.Save()
	defer c.Restore()
	c.Fill = bg
	c.FillRect(x0, row, x1-x0, 1)
	c.Fill = fg
	c.FillText(max(x0, x1-canvas.TextWidth(text)), row, text)
}

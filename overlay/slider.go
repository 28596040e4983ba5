package overlay

import (
	"math"

	"github.com/andareed/siftly-chart/interact"
	"github.com/andareed/siftly-chart/surface"
)

// SliderBand draws the viewport as a translucent band over the overview with
// a capsule handle on each edge. The handle under the pointer, or the one
// being dragged, is highlighted.
type SliderBand struct {
	ctrl   *interact.Controller
	x      int
	hover  bool
	lastHL interact.Region
}

func NewSliderBand(ctrl *interact.Controller) *SliderBand {
	return &SliderBand{ctrl: ctrl}
}

// Hover records the pointer column over the overview.
func (b *SliderBand) Hover(x int) { b.x, b.hover = x, true }

func (b *SliderBand) Leave() { b.hover = false }

// Highlighted returns the region drawn highlighted on the last pass.
func (b *SliderBand) Highlighted() interact.Region { return b.lastHL }

func (b *SliderBand) highlight(s *surface.Surface) interact.Region {
	switch b.ctrl.State() {
	case interact.DraggingLeftHandle:
		return interact.RegionLeftHandle
	case interact.DraggingRightHandle:
		return interact.RegionRightHandle
	case interact.DraggingBody:
		return interact.RegionBody
	}
	if b.hover {
		return b.ctrl.HitTest(b.x, s.Frame())
	}
	return interact.RegionNone
}

func (b *SliderBand) BeforeDatasetsDraw(*surface.Surface) {}

func (b *SliderBand) AfterDraw(s *surface.Surface) {
	f := s.Frame()
	b.lastHL = interact.RegionNone
	if !f.Ready() {
		return
	}
	vp := s.Viewport()
	left := int(math.Round(f.PixelOf(vp.StartDate())))
	right := int(math.Round(f.PixelOf(vp.EndDate())))
	cv, pal := s.Canvas(), s.Palette()
	hl := b.highlight(s)
	b.lastHL = hl

	cv.Save()
	cv.Fill = pal.Slide
	if hl == interact.RegionBody {
		cv.Fill = pal.Slide.WithAlpha(math.Min(1, pal.Slide.A*1.5))
	}
	cv.FillRect(left, f.Area.Top, right-left+1, f.Area.Height())
	cv.Restore()

	b.handle(s, left, hl == interact.RegionLeftHandle)
	b.handle(s, right, hl == interact.RegionRightHandle)
}

// handle draws a capsule: an edge rule with a circle and two tick marks at
// mid height.
func (b *SliderBand) handle(s *surface.Surface, x int, active bool) {
	f := s.Frame()
	cv, pal := s.Canvas(), s.Palette()
	mid := f.Area.Top + f.Area.Height()/2

	cv.Save()
	defer cv.Restore()
	cv.Stroke = pal.MinChartLine
	cv.StrokeVLine(x, f.Area.Top, f.Area.Bottom)

	cv.Fill = pal.Slide.WithAlpha(1)
	if active {
		cv.Fill = pal.MinChartLine
	}
	cv.FillText(x, mid-1, "╻")
	cv.Dot(x, mid)
	cv.FillText(x, mid+1, "╹")
}

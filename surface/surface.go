package surface

import (
	"math"

	"github.com/andareed/siftly-chart/canvas"
	"github.com/andareed/siftly-chart/config"
	"github.com/andareed/siftly-chart/coord"
	"github.com/andareed/siftly-chart/dataset"
	"github.com/andareed/siftly-chart/logging"
	"github.com/andareed/siftly-chart/money"
	"github.com/andareed/siftly-chart/viewport"
)

type Kind int

const (
	Detail Kind = iota
	Overview
)

func (k Kind) String() string {
	if k == Overview {
		return "overview"
	}
	return "detail"
}

// Plugin hooks into a surface's draw pass. BeforeDatasetsDraw runs after the
// background is cleared and before any series; AfterDraw runs last.
type Plugin interface {
	BeforeDatasetsDraw(s *Surface)
	AfterDraw(s *Surface)
}

type Options struct {
	Palette config.Palette
	Money   *money.Formatter
	Aspect  float64 // overview width:height in pixels, a cell being 1:2
}

// Surface is one rendered chart: a canvas, the frame derived from its size
// and the viewport, and the plugins drawn on top.
type Surface struct {
	kind    Kind
	ds      *dataset.Dataset
	vp      *viewport.Viewport
	opts    Options
	canvas  *canvas.Canvas
	plugins []Plugin

	width, height int
	gutter        int
	yMax          float64
	frame         coord.Frame

	dirty    bool
	rendered string
	draws    int
}

func New(kind Kind, vp *viewport.Viewport, opts Options) *Surface {
	if opts.Aspect <= 0 {
		opts.Aspect = 10
	}
	s := &Surface{
		kind:   kind,
		ds:     vp.Dataset(),
		vp:     vp,
		opts:   opts,
		canvas: canvas.New(0, 0, opts.Palette.Background.Color),
		yMax:   PriceAxisMax(vp.Dataset().MaxOpen()),
		dirty:  true,
	}
	if kind == Detail {
		s.gutter = s.measureGutter()
	}
	return s
}

func (s *Surface) Kind() Kind { return s.kind }
func (s *Surface) Dataset() *dataset.Dataset { return s.ds }
func (s *Surface) Viewport() *viewport.Viewport { return s.vp }
func (s *Surface) Canvas() *canvas.Canvas { return s.canvas }
func (s *Surface) Palette() config.Palette { return s.opts.Palette }
func (s *Surface) Money() *money.Formatter { return s.opts.Money }
func (s *Surface) Frame() coord.Frame { return s.frame }
func (s *Surface) Gutter() int { return s.gutter }
func (s *Surface) Width() int { return s.width }
func (s *Surface) Height() int { return s.height }

// Draws counts completed draw passes.
func (s *Surface) Draws() int { return s.draws }

// AddPlugin registers p. Plugins run in registration order.
func (s *Surface) AddPlugin(p Plugin) {
	s.plugins = append(s.plugins, p)
	s.dirty = true
}

// AlignTo copies the left gutter of other so both plot areas start in the
// same column.
func (s *Surface) AlignTo(other *Surface) {
	s.gutter = other.gutter
	s.layout()
}

// OverviewHeight is the row count that keeps the overview at aspect:1 for a
// given width.
func OverviewHeight(width int, aspect float64) int {
	if aspect <= 0 {
		aspect = 10
	}
	h := int(math.Round(float64(width) / (2 * aspect)))
	if h < 4 {
		h = 4
	}
	return h
}

// Resize relays the surface out for a new size and marks it dirty.
func (s *Surface) Resize(width, height int) {
	s.width, s.height = width, height
	s.canvas.Resize(width, height)
	s.layout()
}

// Update applies a new viewport range without transition. It is registered
// as a viewport subscriber.
func (s *Surface) Update(viewport.Range) {
	s.layout()
}

// Invalidate marks the surface for a redraw on the next View.
func (s *Surface) Invalidate() { s.dirty = true }

// View returns the rendered surface, redrawing it first when dirty.
func (s *Surface) View() string {
	if s.dirty {
		s.Draw()
	}
	return s.rendered
}

func (s *Surface) measureGutter() int {
	w := 0
	if s.opts.Money != nil {
		for _, v := range []float64{0, s.yMax / 2, s.yMax} {
			w = max(w, canvas.TextWidth(s.opts.Money.Axis(v)))
		}
	}
	// the crosshair value label shares the gutter with the opening label
	w = max(w, canvas.TextWidth(OpenLabelText(s.ds.First().Open)), canvas.TextWidth(OpenLabelText(s.yMax)))
	return w + 1
}

func (s *Surface) layout() {
	s.dirty = true
	s.frame = coord.Frame{}

	area := coord.Area{Left: s.gutter, Top: 0, Right: s.width - 2, Bottom: s.height - 2}
	first, last := s.vp.StartDate(), s.vp.EndDate()
	if s.kind == Overview {
		// tick labels are mirrored into the plot
		area.Bottom = s.height - 1
		first, last = s.vp.FullRange()
	}
	if area.Width() < 2 || area.Height() < 2 {
		logging.Debugf("%s surface too small for layout: %dx%d", s.kind, s.width, s.height)
		return
	}
	s.frame = coord.Frame{
		Area: area,
		X: coord.Scale{
			Min:   coord.TimeValue(first),
			Max:   coord.TimeValue(last),
			Start: float64(area.Left),
			End:   float64(area.Right),
		},
		Y: coord.Scale{
			Min:   0,
			Max:   s.yMax,
			Start: float64(area.Bottom),
			End:   float64(area.Top),
		},
	}
}

// Draw runs a full draw pass: clear, BeforeDatasetsDraw hooks, series, axes,
// AfterDraw hooks.
func (s *Surface) Draw() {
	s.dirty = false
	s.canvas.Clear()
	s.canvas.Style = canvas.Style{}
	if s.frame.Ready() {
		for _, p := range s.plugins {
			p.BeforeDatasetsDraw(s)
		}
		switch s.kind {
		case Detail:
			s.drawVolume()
			s.drawPrice()
			s.drawPriceAxis()
			s.drawTimeAxis(s.frame.Area.Bottom + 1)
		case Overview:
			s.drawOverviewSeries()
			s.drawTimeAxis(s.frame.Area.Bottom)
		}
		for _, p := range s.plugins {
			p.AfterDraw(s)
		}
	}
	s.rendered = s.canvas.Render()
	s.draws++
}

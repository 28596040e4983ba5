package canvas

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var ErrInvalidColorStop = errors.New("invalid gradient colour stop")

type colorStop struct {
	offset float64
	color  RGBA
}

// LinearGradient is a vertical gradient between rows y0 and y1.
type LinearGradient struct {
	y0, y1 float64
	stops  []colorStop
}

func NewLinearGradient(y0, y1 float64) *LinearGradient {
	return &LinearGradient{y0: y0, y1: y1}
}

// AddColorStop adds a stop at offset in [0, 1]. It fails when the gradient
// has no extent (a surface caught mid-layout) or the offset is out of range.
func (g *LinearGradient) AddColorStop(offset float64, c RGBA) error {
	if g.y0 == g.y1 || math.IsNaN(g.y0) || math.IsNaN(g.y1) || math.IsInf(g.y0, 0) || math.IsInf(g.y1, 0) {
		return fmt.Errorf("zero-sized gradient %v..%v: %w", g.y0, g.y1, ErrInvalidColorStop)
	}
	if math.IsNaN(offset) || offset < 0 || offset > 1 {
		return fmt.Errorf("offset %v: %w", offset, ErrInvalidColorStop)
	}
	i := sort.Search(len(g.stops), func(i int) bool { return g.stops[i].offset > offset })
	g.stops = append(g.stops, colorStop{})
	copy(g.stops[i+1:], g.stops[i:])
	g.stops[i] = colorStop{offset: offset, color: c}
	return nil
}

// At returns the colour at row y. Rows outside the gradient take the nearest
// end stop.
func (g *LinearGradient) At(y float64) RGBA {
	if len(g.stops) == 0 {
		return RGBA{}
	}
	t := (y - g.y0) / (g.y1 - g.y0)
	first, last := g.stops[0], g.stops[len(g.stops)-1]
	if t <= first.offset {
		return first.color
	}
	if t >= last.offset {
		return last.color
	}
	for i := 1; i < len(g.stops); i++ {
		hi := g.stops[i]
		if t > hi.offset {
			continue
		}
		lo := g.stops[i-1]
		f := (t - lo.offset) / (hi.offset - lo.offset)
		return RGBA{
			Color: lo.color.BlendRgb(hi.color.Color, f),
			A:     lo.color.A + (hi.color.A-lo.color.A)*f,
		}
	}
	return last.color
}

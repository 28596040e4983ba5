package surface

import (
	"fmt"
	"math"

	"github.com/andareed/siftly-chart/canvas"
	"github.com/andareed/siftly-chart/logging"
)

// fill opacity at the line end of the above/below gradients
const fillAlpha = 0.35

var eighths = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// OpenLabelText is the gutter label of the opening reference line.
func OpenLabelText(open float64) string {
	return fmt.Sprintf("%.2f", open)
}

// drawVolume draws volume bars on a 0..10×max volume axis so they stay in
// the bottom tenth of the plot.
func (s *Surface) drawVolume() {
	c, f := s.canvas, s.frame
	r := s.vp.Range()
	axisMax := 10 * s.ds.MaxVolume()
	if axisMax <= 0 {
		return
	}

	heights := make(map[int]float64)
	for i := r.Start; i <= r.End; i++ {
		p := s.ds.At(i)
		x := int(math.Round(f.PixelOf(p.Date)))
		if !f.Area.ContainsX(x) {
			continue
		}
		h := p.Volume / axisMax * float64(f.Area.Height())
		heights[x] = math.Max(heights[x], h)
	}

	c.Save()
	defer c.Restore()
	c.Fill = s.opts.Palette.BarChart
	for x, h := range heights {
		full := int(h)
		for k := 0; k < full; k++ {
			c.FillText(x, f.Area.Bottom-k, string(eighths[8]))
		}
		if part := int(math.Round((h - float64(full)) * 8)); part > 0 && full < f.Area.Height() {
			c.FillText(x, f.Area.Bottom-full, string(eighths[part]))
		}
	}
}

type pt struct {
	x, y, v float64
}

func (s *Surface) seriesPoints(start, end int) []pt {
	out := make([]pt, 0, end-start+1)
	for i := start; i <= end; i++ {
		p := s.ds.At(i)
		out = append(out, pt{
			x: s.frame.PixelOf(p.Date),
			y: s.frame.Y.ValueToPixel(p.Open),
			v: p.Open,
		})
	}
	return out
}

// drawPrice draws the open price line, coloured above or below the opening
// value, over a gradient fill toward the opening line.
func (s *Surface) drawPrice() {
	c, f := s.canvas, s.frame
	r := s.vp.Range()
	pts := s.seriesPoints(r.Start, r.End)
	open := s.ds.First().Open
	openY := f.Y.ValueToPixel(open)

	above := canvas.NewLinearGradient(float64(f.Area.Top), openY)
	below := canvas.NewLinearGradient(openY, float64(f.Area.Bottom))
	pal := s.opts.Palette
	aboveOK := above.AddColorStop(0, pal.Above.WithAlpha(fillAlpha)) == nil &&
		above.AddColorStop(1, pal.Above.WithAlpha(0)) == nil
	belowOK := below.AddColorStop(0, pal.Below.WithAlpha(0)) == nil &&
		below.AddColorStop(1, pal.Below.WithAlpha(fillAlpha)) == nil
	if !aboveOK || !belowOK {
		logging.Debugf("price fill gradient skipped: above=%v below=%v", aboveOK, belowOK)
	}

	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		x0 := max(int(math.Ceil(a.x)), f.Area.Left)
		x1 := min(int(math.Floor(b.x)), f.Area.Right)
		for x := x0; x <= x1; x++ {
			if i > 1 && float64(x) == a.x {
				continue
			}
			t := 0.0
			if b.x != a.x {
				t = (float64(x) - a.x) / (b.x - a.x)
			}
			y := int(math.Round(a.y + (b.y-a.y)*t))
			oy := int(math.Round(openY))
			switch {
			case y < oy && aboveOK:
				c.GradientRect(x, y, 1, oy-y, above)
			case y > oy && belowOK:
				c.GradientRect(x, oy+1, 1, y-oy, below)
			}
		}
	}

	c.Save()
	defer c.Restore()
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		c.Stroke = pal.Below
		if (a.v+b.v)/2 >= open {
			c.Stroke = pal.Above
		}
		c.Line(a.x, a.y, b.x, b.y)
	}
}

// drawPriceAxis writes compact currency ticks right-aligned in the gutter.
func (s *Surface) drawPriceAxis() {
	if s.opts.Money == nil || s.gutter < 2 {
		return
	}
	c, f := s.canvas, s.frame
	step := niceStep(s.yMax, max(1, f.Area.Height()/3))

	c.Save()
	defer c.Restore()
	c.Fill = s.opts.Palette.YLabel
	lastRow := math.MaxInt
	// the opening label owns its row
	openRow := int(math.Round(f.Y.ValueToPixel(s.ds.First().Open)))
	for v := 0.0; v <= s.yMax+step/2; v += step {
		row := int(math.Round(f.Y.ValueToPixel(v)))
		if row < f.Area.Top || row > f.Area.Bottom || row >= lastRow || row == openRow {
			continue
		}
		label := s.opts.Money.Axis(v)
		x := s.gutter - 1 - canvas.TextWidth(label)
		c.FillText(max(0, x), row, label)
		lastRow = row - 1
	}
}

// drawTimeAxis writes day ticks on row. Month labels are placed first, then
// the 10th and 20th, then the rest; a label that would touch one already
// placed is dropped.
func (s *Surface) drawTimeAxis(row int) {
	c, f := s.canvas, s.frame
	from, to := s.vp.StartDate(), s.vp.EndDate()
	if s.kind == Overview {
		from, to = s.vp.FullRange()
	}
	ticks := dayTicks(from, to)
	total := len(ticks) - 2

	type placed struct {
		label string
		bold  bool
		x     int
	}
	var passes [3][]placed
	for _, t := range ticks {
		label, bold, ok := TickLabel(t, total)
		if !ok {
			continue
		}
		w := canvas.TextWidth(label)
		p := placed{label: label, bold: bold, x: int(math.Round(f.PixelOf(t))) - w/2}
		switch d := t.Day(); {
		case d == 1:
			passes[0] = append(passes[0], p)
		case d == 10 || d == 20:
			passes[1] = append(passes[1], p)
		default:
			passes[2] = append(passes[2], p)
		}
	}

	used := make([]bool, c.Width()+2)
	free := func(x0, x1 int) bool {
		if x0 < f.Area.Left || x1 > f.Area.Right+1 || x1 >= c.Width() {
			return false
		}
		for x := max(0, x0-1); x <= x1+1 && x < len(used); x++ {
			if used[x] {
				return false
			}
		}
		return true
	}

	c.Save()
	defer c.Restore()
	c.Fill = s.opts.Palette.XLabel
	for _, pass := range passes {
		for _, p := range pass {
			w := canvas.TextWidth(p.label)
			if !free(p.x, p.x+w-1) {
				continue
			}
			c.Bold = p.bold
			c.FillText(p.x, row, p.label)
			for x := p.x; x < p.x+w; x++ {
				used[x] = true
			}
		}
	}
}

// drawOverviewSeries draws the whole dataset as a line over a translucent
// fill down to the baseline.
func (s *Surface) drawOverviewSeries() {
	c, f := s.canvas, s.frame
	pts := s.seriesPoints(0, s.ds.LastIndex())
	pal := s.opts.Palette

	c.Save()
	defer c.Restore()
	c.Fill = pal.MinChartBackground
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		for x := max(int(math.Ceil(a.x)), f.Area.Left); x <= min(int(math.Floor(b.x)), f.Area.Right); x++ {
			if i > 1 && float64(x) == a.x {
				continue
			}
			t := 0.0
			if b.x != a.x {
				t = (float64(x) - a.x) / (b.x - a.x)
			}
			y := int(math.Round(a.y + (b.y-a.y)*t))
			c.FillRect(x, y, 1, f.Area.Bottom-y+1)
		}
	}

	c.Stroke = pal.MinChartLine
	for i := 1; i < len(pts); i++ {
		c.Line(pts[i-1].x, pts[i-1].y, pts[i].x, pts[i].y)
	}
}

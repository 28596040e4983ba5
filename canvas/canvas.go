package canvas

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

const (
	hline = '─'
	vline = '│'
	cross = '┼'
	dot   = '●'
)

// braille dot bits indexed by [sub-row][sub-column]
var brailleBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Cell is one terminal cell. A zero Rune with non-zero Braille renders the
// braille pattern; wide runes mark the following cell as a continuation.
type Cell struct {
	Rune    rune
	Braille uint8
	Cont    bool
	Fg      colorful.Color
	Bg      colorful.Color
	Bold    bool
}

func (c Cell) glyph() rune {
	switch {
	case c.Rune != 0:
		return c.Rune
	case c.Braille != 0:
		return 0x2800 + rune(c.Braille)
	}
	return ' '
}

// Style is the drawing state saved and restored around primitive groups.
type Style struct {
	Stroke RGBA
	Fill   RGBA
	Dash   []int // on/off run lengths in cells; empty is solid
	Bold   bool
}

// Canvas is a cell grid with a small 2D-context style drawing API.
type Canvas struct {
	Style

	w, h     int
	bg       colorful.Color
	cells    []Cell
	stack    []Style
	renderer *lipgloss.Renderer
}

func New(w, h int, bg colorful.Color) *Canvas {
	c := &Canvas{bg: bg, renderer: lipgloss.DefaultRenderer()}
	c.Resize(w, h)
	return c
}

// SetRenderer sets the lipgloss renderer used by Render.
func (c *Canvas) SetRenderer(r *lipgloss.Renderer) { c.renderer = r }

func (c *Canvas) Width() int  { return c.w }
func (c *Canvas) Height() int { return c.h }

// Resize reallocates the grid and clears it.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.w, c.h = w, h
	c.cells = make([]Cell, w*h)
	c.Clear()
}

// Clear blanks every cell to the background and drops saved states.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = Cell{Fg: c.bg, Bg: c.bg}
	}
	c.stack = c.stack[:0]
}

func (c *Canvas) In(x, y int) bool { return x >= 0 && x < c.w && y >= 0 && y < c.h }

// At returns the cell at x, y. Out-of-bounds reads return a blank cell.
func (c *Canvas) At(x, y int) Cell {
	if !c.In(x, y) {
		return Cell{}
	}
	return c.cells[y*c.w+x]
}

func (c *Canvas) cell(x, y int) *Cell { return &c.cells[y*c.w+x] }

// Save pushes the current drawing state.
func (c *Canvas) Save() {
	s := c.Style
	s.Dash = append([]int(nil), c.Dash...)
	c.stack = append(c.stack, s)
}

// Restore pops the last saved drawing state. Restore without Save is a no-op.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.Style = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// dashOn reports whether step i of a stroke is painted under the current
// dash pattern.
func (c *Canvas) dashOn(i int) bool {
	total := 0
	for _, d := range c.Dash {
		total += d
	}
	if total <= 0 {
		return true
	}
	pos := i % total
	for k, d := range c.Dash {
		if pos < d {
			return k%2 == 0
		}
		pos -= d
	}
	return true
}

// FillRect fills a rectangle with the fill colour. Opaque fills erase what
// is underneath; translucent ones only tint the background.
func (c *Canvas) FillRect(x, y, w, h int) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			if !c.In(xx, yy) {
				continue
			}
			cl := c.cell(xx, yy)
			cl.Bg = c.Fill.Over(cl.Bg)
			if c.Fill.A >= 1 {
				*cl = Cell{Fg: cl.Bg, Bg: cl.Bg}
			}
		}
	}
}

// GradientRect tints each row of a rectangle with the gradient colour at
// that row.
func (c *Canvas) GradientRect(x, y, w, h int, g *LinearGradient) {
	for yy := y; yy < y+h; yy++ {
		col := g.At(float64(yy))
		for xx := x; xx < x+w; xx++ {
			if c.In(xx, yy) {
				cl := c.cell(xx, yy)
				cl.Bg = col.Over(cl.Bg)
			}
		}
	}
}

func (c *Canvas) stroke(x, y int, r rune) {
	cl := c.cell(x, y)
	switch {
	case r == hline && (cl.Rune == vline || cl.Rune == cross):
		r = cross
	case r == vline && (cl.Rune == hline || cl.Rune == cross):
		r = cross
	}
	cl.Rune, cl.Braille, cl.Cont = r, 0, false
	cl.Fg = c.Stroke.Over(cl.Bg)
}

// StrokeHLine strokes row y from x0 to x1 inclusive.
func (c *Canvas) StrokeHLine(x0, x1, y int) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		if c.In(x, y) && c.dashOn(x-x0) {
			c.stroke(x, y, hline)
		}
	}
}

// StrokeVLine strokes column x from y0 to y1 inclusive.
func (c *Canvas) StrokeVLine(x, y0, y1 int) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		if c.In(x, y) && c.dashOn(y-y0) {
			c.stroke(x, y, vline)
		}
	}
}

// FillText writes s starting at x, y in the fill colour and returns the
// number of cells written. Text is clipped at the right edge.
func (c *Canvas) FillText(x, y int, s string) int {
	if y < 0 || y >= c.h {
		return 0
	}
	start := x
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > c.w {
			break
		}
		if x >= 0 {
			cl := c.cell(x, y)
			cl.Rune, cl.Braille, cl.Cont, cl.Bold = r, 0, false, c.Bold
			cl.Fg = c.Fill.Over(cl.Bg)
			if rw == 2 {
				next := c.cell(x+1, y)
				next.Rune, next.Braille, next.Cont = 0, 0, true
				next.Bg = cl.Bg
			}
		}
		x += rw
	}
	return x - start
}

// TextWidth is the number of cells s occupies.
func TextWidth(s string) int { return runewidth.StringWidth(s) }

// Dot draws a filled marker at x, y in the fill colour.
func (c *Canvas) Dot(x, y int) {
	if !c.In(x, y) {
		return
	}
	cl := c.cell(x, y)
	cl.Rune, cl.Braille, cl.Cont = dot, 0, false
	cl.Fg = c.Fill.Over(cl.Bg)
}

// SubPixel converts cell-space coordinates to braille dot coordinates. Cell
// column x covers [x-0.5, x+0.5).
func SubPixel(x, y float64) (int, int) {
	return int(math.Floor(2*x + 1)), int(math.Floor(4*y + 2))
}

func isRule(r rune) bool { return r == hline || r == vline || r == cross }

// Plot sets one braille dot in the stroke colour. Rules are replaced, text
// and markers are left alone.
func (c *Canvas) Plot(sx, sy int) {
	if sx < 0 || sy < 0 {
		return
	}
	x, y := sx/2, sy/4
	if !c.In(x, y) {
		return
	}
	cl := c.cell(x, y)
	if cl.Cont || (cl.Rune != 0 && !isRule(cl.Rune)) {
		return
	}
	cl.Rune = 0
	cl.Braille |= brailleBits[sy%4][sx%2]
	cl.Fg = c.Stroke.Over(cl.Bg)
}

// Line plots a braille line between two cell-space points.
func (c *Canvas) Line(x0, y0, x1, y1 float64) {
	if anyNaN(x0, y0, x1, y1) {
		return
	}
	ax, ay := SubPixel(x0, y0)
	bx, by := SubPixel(x1, y1)

	dx, dy := abs(bx-ax), -abs(by-ay)
	sx, sy := 1, 1
	if ax > bx {
		sx = -1
	}
	if ay > by {
		sy = -1
	}
	e := dx + dy
	for {
		c.Plot(ax, ay)
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			ax += sx
		}
		if e2 <= dx {
			e += dx
			ay += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func anyNaN(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

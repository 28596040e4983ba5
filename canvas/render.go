package canvas

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styleKey struct {
	fg, bg string
	bold   bool
}

// Render returns the grid as ANSI-styled lines joined by newlines. Runs of
// cells with the same colours share one style.
func (c *Canvas) Render() string {
	styles := make(map[styleKey]lipgloss.Style)
	styleFor := func(k styleKey) lipgloss.Style {
		if s, ok := styles[k]; ok {
			return s
		}
		s := c.renderer.NewStyle().
			Foreground(lipgloss.Color(k.fg)).
			Background(lipgloss.Color(k.bg)).
			Bold(k.bold)
		styles[k] = s
		return s
	}

	var b strings.Builder
	var run strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		var cur styleKey
		run.Reset()
		for x := 0; x < c.w; x++ {
			cl := c.cells[y*c.w+x]
			if cl.Cont {
				continue
			}
			g := cl.glyph()
			k := styleKey{fg: cl.Fg.Clamped().Hex(), bg: cl.Bg.Clamped().Hex(), bold: cl.Bold}
			if g == ' ' {
				k.fg, k.bold = k.bg, false
			}
			if run.Len() > 0 && k != cur {
				b.WriteString(styleFor(cur).Render(run.String()))
				run.Reset()
			}
			cur = k
			run.WriteRune(g)
		}
		if run.Len() > 0 {
			b.WriteString(styleFor(cur).Render(run.String()))
		}
	}
	return b.String()
}

// Row returns the plain glyphs of row y.
func (c *Canvas) Row(y int) string {
	if y < 0 || y >= c.h {
		return ""
	}
	var b strings.Builder
	for x := 0; x < c.w; x++ {
		cl := c.cells[y*c.w+x]
		if !cl.Cont {
			b.WriteRune(cl.glyph())
		}
	}
	return b.String()
}

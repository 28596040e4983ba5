package canvas

import (
	"io"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var black = colorful.Color{}

func plain(c *Canvas) *Canvas {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	c.SetRenderer(r)
	return c
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		hex     string
		alpha   float64
		wantErr bool
	}{
		{in: "#ccc", hex: "#cccccc", alpha: 1},
		{in: "#36A2EB", hex: "#36a2eb", alpha: 1},
		{in: "rgb(106, 173, 56)", hex: "#6aad38", alpha: 1},
		{in: "rgba(54,162,235,0.2)", hex: "#36a2eb", alpha: 0.2},
		{in: "white", hex: "#ffffff", alpha: 1},
		{in: "LightGrey", hex: "#d3d3d3", alpha: 1},
		{in: "transparent", hex: "#000000", alpha: 0},
		{in: "", wantErr: true},
		{in: "#12", wantErr: true},
		{in: "rgb(1,2)", wantErr: true},
		{in: "rgba(1,2,3,4)", wantErr: true},
		{in: "rgb(300,0,0)", wantErr: true},
		{in: "blurple", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidColor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hex, got.Hex())
			assert.InDelta(t, tt.alpha, got.A, 1e-9)
		})
	}
}

func TestOverBlendsByAlpha(t *testing.T) {
	white := Opaque(colorful.Color{R: 1, G: 1, B: 1})
	assert.Equal(t, white.Color, white.Over(black))
	assert.Equal(t, black, white.WithAlpha(0).Over(black))

	half := white.WithAlpha(0.5).Over(black)
	assert.InDelta(t, 0.5, half.R, 1e-9)
	assert.Equal(t, "rgba(255,255,255,0.5)", white.WithAlpha(0.5).String())
	assert.Equal(t, "#ffffff", white.String())
}

func TestSaveRestore(t *testing.T) {
	c := New(4, 2, black)
	red := MustParseColor("red")
	c.Stroke = red
	c.Dash = []int{2, 1}

	c.Save()
	c.Stroke = MustParseColor("blue")
	c.Dash[0] = 9
	c.Bold = true
	c.Restore()

	assert.Equal(t, red, c.Stroke)
	assert.Equal(t, []int{2, 1}, c.Dash)
	assert.False(t, c.Bold)

	// unbalanced restore keeps the state
	c.Restore()
	assert.Equal(t, red, c.Stroke)
}

func TestStrokeLinesWithDash(t *testing.T) {
	c := New(7, 3, black)
	c.Stroke = MustParseColor("white")
	c.StrokeHLine(0, 6, 1)
	assert.Equal(t, "───────", c.Row(1))

	c.Clear()
	c.Dash = []int{1, 1}
	c.StrokeHLine(6, 0, 1)
	assert.Equal(t, "─ ─ ─ ─", c.Row(1))

	c.Dash = nil
	c.StrokeVLine(4, 0, 2)
	assert.Equal(t, "    │  ", c.Row(0))
	assert.Equal(t, "─ ─ ┼ ─", c.Row(1))
}

func TestFillRect(t *testing.T) {
	c := New(4, 2, black)
	c.Fill = MustParseColor("white")
	c.FillText(0, 0, "abcd")

	c.Fill = MustParseColor("rgba(255,0,0,0.5)")
	c.FillRect(0, 0, 2, 1)
	assert.Equal(t, "abcd", c.Row(0), "translucent fill keeps glyphs")
	assert.InDelta(t, 0.5, c.At(0, 0).Bg.R, 1e-9)

	c.Fill = MustParseColor("red")
	c.FillRect(2, 0, 5, 5)
	assert.Equal(t, "ab  ", c.Row(0))
	assert.Equal(t, 1.0, c.At(3, 1).Bg.R)
}

func TestFillTextClipsAndHandlesWideRunes(t *testing.T) {
	c := New(6, 1, black)
	c.Fill = MustParseColor("white")

	n := c.FillText(4, 0, "xyz")
	assert.Equal(t, 2, n)
	assert.Equal(t, "    xy", c.Row(0))

	c.Clear()
	n = c.FillText(0, 0, "日本x")
	assert.Equal(t, 5, n)
	assert.Equal(t, "日本x ", c.Row(0))
	assert.True(t, c.At(1, 0).Cont)
	assert.Equal(t, 5, TextWidth("日本x"))

	assert.Equal(t, 0, c.FillText(0, 3, "off"))
}

func TestBrailleLine(t *testing.T) {
	c := New(3, 1, black)
	c.Stroke = MustParseColor("white")
	c.Line(0, 0, 2, 0)

	for x := 0; x < 3; x++ {
		cl := c.At(x, 0)
		assert.NotZero(t, cl.Braille, "column %d", x)
	}
	before := c.At(0, 0).Braille
	c.Line(0, 0, math.NaN(), 0)
	assert.Equal(t, before, c.At(0, 0).Braille)
}

func TestDotAndSubPixel(t *testing.T) {
	c := New(3, 3, black)
	c.Fill = MustParseColor("lime")
	c.Dot(1, 1)
	c.Dot(9, 9)
	assert.Equal(t, " ● ", c.Row(1))

	sx, sy := SubPixel(1, 1)
	assert.Equal(t, 1, sx/2)
	assert.Equal(t, 1, sy/4)
	sx, sy = SubPixel(1.49, 0.49)
	assert.Equal(t, 1, sx/2)
	assert.Equal(t, 0, sy/4)
}

func TestGradient(t *testing.T) {
	g := NewLinearGradient(0, 10)
	require.NoError(t, g.AddColorStop(1, MustParseColor("rgba(0,0,0,0)")))
	require.NoError(t, g.AddColorStop(0, MustParseColor("white")))

	assert.InDelta(t, 1, g.At(-3).A, 1e-9)
	assert.InDelta(t, 0.5, g.At(5).A, 1e-9)
	assert.InDelta(t, 0.5, g.At(5).R, 1e-9)
	assert.InDelta(t, 0, g.At(12).A, 1e-9)

	assert.ErrorIs(t, g.AddColorStop(1.5, MustParseColor("red")), ErrInvalidColorStop)
	assert.ErrorIs(t, NewLinearGradient(4, 4).AddColorStop(0, MustParseColor("red")), ErrInvalidColorStop)
	assert.Equal(t, RGBA{}, NewLinearGradient(0, 1).At(0))

	c := New(1, 10, black)
	c.GradientRect(0, 0, 1, 10, g)
	assert.Greater(t, c.At(0, 1).Bg.R, c.At(0, 8).Bg.R)
}

func TestRender(t *testing.T) {
	c := plain(New(3, 2, black))
	c.Fill = MustParseColor("white")
	c.FillText(0, 1, "ok")

	out := c.Render()
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "   ", lines[0])
	assert.Equal(t, "ok ", lines[1])

	c.Resize(0, 0)
	assert.Equal(t, "", c.Render())
}

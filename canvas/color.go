package canvas

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var ErrInvalidColor = errors.New("invalid colour")

// RGBA is a colour with straight (non-premultiplied) alpha in [0, 1].
type RGBA struct {
	colorful.Color
	A float64
}

// Opaque wraps c with full alpha.
func Opaque(c colorful.Color) RGBA { return RGBA{Color: c, A: 1} }

// Over composites c on top of bg.
func (c RGBA) Over(bg colorful.Color) colorful.Color {
	if c.A <= 0 {
		return bg
	}
	if c.A >= 1 {
		return c.Color
	}
	return bg.BlendRgb(c.Color, c.A)
}

// WithAlpha returns c with its alpha replaced.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = a
	return c
}

func (c RGBA) String() string {
	if c.A >= 1 {
		return c.Clamped().Hex()
	}
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// ParseColor accepts the CSS colour forms used in chart configs: #rgb,
// #rrggbb, rgb(r,g,b), rgba(r,g,b,a), transparent and the SVG colour names.
func ParseColor(s string) (RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return RGBA{}, fmt.Errorf("empty string: %w", ErrInvalidColor)
	case s == "transparent":
		return RGBA{}, nil
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil || (len(s) != 4 && len(s) != 7) {
			return RGBA{}, fmt.Errorf("%q: %w", s, ErrInvalidColor)
		}
		return Opaque(c), nil
	case strings.HasPrefix(s, "rgb"):
		return parseFunc(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return Opaque(colorful.Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
		}), nil
	}
	return RGBA{}, fmt.Errorf("%q: %w", s, ErrInvalidColor)
}

// MustParseColor is ParseColor for compile-time constants.
func MustParseColor(s string) RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseFunc(s string) (RGBA, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return RGBA{}, fmt.Errorf("%q: %w", s, ErrInvalidColor)
	}
	name := strings.TrimSpace(s[:open])
	parts := strings.Split(s[open+1:len(s)-1], ",")
	if (name == "rgb" && len(parts) != 3) || (name == "rgba" && len(parts) != 4) || (name != "rgb" && name != "rgba") {
		return RGBA{}, fmt.Errorf("%q: %w", s, ErrInvalidColor)
	}

	var ch [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || v < 0 || v > 255 {
			return RGBA{}, fmt.Errorf("%q channel %d: %w", s, i, ErrInvalidColor)
		}
		ch[i] = v / 255
	}
	a := 1.0
	if len(parts) == 4 {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || v < 0 || v > 1 {
			return RGBA{}, fmt.Errorf("%q alpha: %w", s, ErrInvalidColor)
		}
		a = v
	}
	return RGBA{Color: colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, A: a}, nil
}

package config

import (
	"fmt"

	"github.com/andareed/siftly-chart/canvas"
)

// Palette is Colors parsed into drawable colours.
type Palette struct {
	Above              canvas.RGBA
	Below              canvas.RGBA
	BarChart           canvas.RGBA
	Tooltip            canvas.RGBA
	TooltipDate        canvas.RGBA
	TooltipTime        canvas.RGBA
	TooltipData        canvas.RGBA
	XLabel             canvas.RGBA
	YLabel             canvas.RGBA
	OpenLabel          canvas.RGBA
	MinChartLine       canvas.RGBA
	MinChartBackground canvas.RGBA
	Slide              canvas.RGBA
	Background         canvas.RGBA
}

// Palette parses every colour. The first failure names the offending key.
func (c *Config) Palette() (Palette, error) {
	var p Palette
	fields := []struct {
		key string
		raw string
		dst *canvas.RGBA
	}{
		{"above", c.Colors.Above, &p.Above},
		{"below", c.Colors.Below, &p.Below},
		{"barChart", c.Colors.BarChart, &p.BarChart},
		{"tooltip", c.Colors.Tooltip, &p.Tooltip},
		{"tooltipDate", c.Colors.TooltipDate, &p.TooltipDate},
		{"tooltipTime", c.Colors.TooltipTime, &p.TooltipTime},
		{"tooltipData", c.Colors.TooltipData, &p.TooltipData},
		{"xLabel", c.Colors.XLabel, &p.XLabel},
		{"yLabel", c.Colors.YLabel, &p.YLabel},
		{"openLabel", c.Colors.OpenLabel, &p.OpenLabel},
		{"minChartLine", c.Colors.MinChartLine, &p.MinChartLine},
		{"minChartBackground", c.Colors.MinChartBackground, &p.MinChartBackground},
		{"slide", c.Colors.Slide, &p.Slide},
		{"background", c.Colors.Background, &p.Background},
	}
	for _, f := range fields {
		col, err := canvas.ParseColor(f.raw)
		if err != nil {
			return Palette{}, fmt.Errorf("colors.%s: %w", f.key, err)
		}
		*f.dst = col
	}
	return p, nil
}

// DefaultPalette is the palette of Default().
func DefaultPalette() Palette {
	p, err := Default().Palette()
	if err != nil {
		panic(err)
	}
	return p
}

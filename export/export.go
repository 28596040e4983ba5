// Package export renders the visible window of a viewport to a PNG file.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/andareed/siftly-chart/canvas"
	"github.com/andareed/siftly-chart/config"
	"github.com/andareed/siftly-chart/logging"
	"github.com/andareed/siftly-chart/money"
	"github.com/andareed/siftly-chart/surface"
	"github.com/andareed/siftly-chart/viewport"
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 640
	fileDate      = "20060102"
)

var ErrNoViewport = errors.New("export: no viewport")

// Options controls the rendered image.
type Options struct {
	Dir     string
	Width   int
	Height  int
	Palette config.Palette
	Money   *money.Formatter
	// Font is a TrueType file or a family name, see LoadFont.
	Font    string
}

// FileName is the name used for the window [start, end] of vp.
func FileName(vp *viewport.Viewport) string {
	return fmt.Sprintf("siftly-chart-%s-%s.png",
		vp.StartDate().Format(fileDate), vp.EndDate().Format(fileDate))
}

// Chart builds the chart for the visible window: open prices on the primary
// axis and volume bars scaled onto the secondary one.
func Chart(vp *viewport.Viewport, opts Options) chart.Chart {
	ds := vp.Dataset()
	r := vp.Range()
	pal := opts.Palette

	lineColor := toDrawing(pal.Above)
	if ds.At(r.End).Open < ds.First().Open {
		lineColor = toDrawing(pal.Below)
	}

	price := chart.TimeSeries{
		Name:    "Open",
		XValues: ds.Dates(r.Start, r.End),
		YValues: ds.Opens(r.Start, r.End),
		Style: chart.Style{
			StrokeColor: lineColor,
			StrokeWidth: 2,
			FillColor:   lineColor.WithAlpha(48),
		},
	}
	volume := chart.TimeSeries{
		Name:    "Volume",
		YAxis:   chart.YAxisSecondary,
		XValues: ds.Dates(r.Start, r.End),
		YValues: ds.Volumes(r.Start, r.End),
		Style: chart.Style{
			StrokeColor: toDrawing(pal.BarChart),
			FillColor:   toDrawing(pal.BarChart),
		},
	}

	yAxis := chart.YAxis{
		Range: &chart.ContinuousRange{Min: 0, Max: surface.PriceAxisMax(ds.MaxOpen())},
	}
	if opts.Money != nil {
		m := opts.Money
		yAxis.ValueFormatter = func(v interface{}) string {
			if f, ok := v.(float64); ok {
				return m.Axis(f)
			}
			return ""
		}
	}

	return chart.Chart{
		Title:      fmt.Sprintf("%s - %s", vp.StartDate().Format("Jan 2, 2006"), vp.EndDate().Format("Jan 2, 2006")),
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 12}, FillColor: toDrawing(pal.Background)},
		XAxis:      chart.XAxis{ValueFormatter: chart.TimeDateValueFormatter},
		YAxis:      yAxis,
		YAxisSecondary: chart.YAxis{
			Style: chart.Style{Hidden: true},
			Range: &chart.ContinuousRange{Min: 0, Max: 10 * max(ds.MaxVolume(), 1)},
		},
		Series: []chart.Series{volume, price},
	}
}

// Write renders the visible window of vp into opts.Dir and returns the file
// path.
func Write(vp *viewport.Viewport, opts Options) (string, error) {
	if vp == nil {
		return "", ErrNoViewport
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}

	font, err := LoadFont(opts.Font)
	if err != nil {
		return "", err
	}
	ch := Chart(vp, opts)
	ch.Font = font
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(opts.Dir, FileName(vp))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	logging.Infof("exported rows %d..%d to %s", vp.Range().Start, vp.Range().End, path)
	return path, nil
}

func toDrawing(c canvas.RGBA) drawing.Color {
	r, g, b := c.RGB255()
	return drawing.Color{R: r, G: g, B: b, A: uint8(c.A*255 + 0.5)}
}

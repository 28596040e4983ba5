package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/andareed/siftly-chart/config"
	"github.com/andareed/siftly-chart/dataset"
	"github.com/andareed/siftly-chart/money"
	"github.com/andareed/siftly-chart/viewport"
)

var day0 = time.Date(2021, time.May, 3, 0, 0, 0, 0, time.Local)

func testViewport(t *testing.T) *viewport.Viewport {
	t.Helper()
	points := make([]dataset.PricePoint, 30)
	for i := range points {
		points[i] = dataset.PricePoint{
			Date:   day0.AddDate(0, 0, i),
			Open:   100 + float64(i%7)*3,
			Volume: 5000 + float64(i*10),
		}
	}
	ds, err := dataset.New(points)
	require.NoError(t, err)
	return viewport.New(ds)
}

func TestFileName(t *testing.T) {
	vp := testViewport(t)
	require.NoError(t, vp.SetIndices(2, 9))
	assert.Equal(t, "siftly-chart-20210505-20210512.png", FileName(vp))
}

func TestChartCoversVisibleWindow(t *testing.T) {
	vp := testViewport(t)
	require.NoError(t, vp.SetIndices(5, 14))
	m, err := money.New("USD")
	require.NoError(t, err)

	ch := Chart(vp, Options{Palette: config.DefaultPalette(), Money: m})
	require.Len(t, ch.Series, 2)

	price, ok := ch.Series[1].(chart.TimeSeries)
	require.True(t, ok)
	assert.Len(t, price.XValues, 10)
	assert.Equal(t, day0.AddDate(0, 0, 5), price.XValues[0])
	assert.Equal(t, vp.Dataset().At(14).Open, price.YValues[9])

	volume, ok := ch.Series[0].(chart.TimeSeries)
	require.True(t, ok)
	assert.Equal(t, chart.YAxisSecondary, volume.YAxis)

	assert.Equal(t, "$1K", ch.YAxis.ValueFormatter(1000.0))
	assert.Equal(t, 2000.0, ch.YAxis.Range.GetMax())
}

func TestWritePNG(t *testing.T) {
	vp := testViewport(t)
	require.NoError(t, vp.SetIndices(0, 20))
	dir := filepath.Join(t.TempDir(), "out")

	path, err := Write(vp, Options{Dir: dir, Width: 400, Height: 200, Palette: config.DefaultPalette()})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName(vp)), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, "\x89PNG\r\n\x1a\n", string(data[:8]))
}

func TestWriteWithoutViewport(t *testing.T) {
	_, err := Write(nil, Options{Dir: t.TempDir()})
	assert.ErrorIs(t, err, ErrNoViewport)
}

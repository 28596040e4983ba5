package coord

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleRoundTrip(t *testing.T) {
	scales := []Scale{
		{Min: 0, Max: 100, Start: 10, End: 90},
		{Min: 0, Max: 31000, Start: 20, End: 0},
		{Min: 1.6e12, Max: 1.7e12, Start: 8, End: 119},
		{Min: -5, Max: 5, Start: 0, End: 1},
	}
	for _, s := range scales {
		lo, hi := s.pixelBounds()
		for p := lo; p <= hi; p += (hi - lo) / 17 {
			v, ok := s.PixelToValue(p)
			require.True(t, ok, "pixel %v on %+v", p, s)
			assert.InDelta(t, p, s.ValueToPixel(v), 1e-6)
		}
	}
}

func TestPixelToValueOutsideSpan(t *testing.T) {
	s := Scale{Min: 0, Max: 10, Start: 5, End: 15}
	_, ok := s.PixelToValue(4.9)
	assert.False(t, ok)
	_, ok = s.PixelToValue(15.1)
	assert.False(t, ok)
	v, ok := s.PixelToValue(15)
	assert.True(t, ok)
	assert.Equal(t, 10.0, v)
}

func TestScaleReady(t *testing.T) {
	assert.False(t, Scale{}.Ready())
	assert.False(t, Scale{Min: 1, Max: 1, Start: 0, End: 10}.Ready())
	assert.False(t, Scale{Min: 0, Max: math.NaN(), Start: 0, End: 10}.Ready())
	assert.True(t, Scale{Min: 0, Max: 1, Start: 10, End: 0}.Ready())
	assert.True(t, math.IsNaN(Scale{}.ValueToPixel(3)))
}

func TestPixelToValueOnInvertedScale(t *testing.T) {
	s := Scale{Min: 0, Max: 1, Start: 20, End: 2}
	_, ok := s.PixelToValue(-4)
	assert.False(t, ok)
	_, ok = s.PixelToValue(40)
	assert.False(t, ok)
	v, ok := s.PixelToValue(2)
	require.True(t, ok)
	assert.InDelta(t, 1.0, v, 1e-9)
}

func TestDayBucket(t *testing.T) {
	ts := time.Date(2021, time.March, 14, 17, 45, 12, 99, time.Local)
	assert.Equal(t, time.Date(2021, time.March, 14, 0, 0, 0, 0, time.Local), DayBucket(ts))
	assert.Equal(t, DayBucket(ts), DayBucket(DayBucket(ts)))
}

func TestValueTimeRoundsToMillisecond(t *testing.T) {
	day := time.Date(2021, time.January, 4, 0, 0, 0, 0, time.Local)
	got := ValueTime(TimeValue(day) - 1e-4)
	assert.True(t, got.Equal(day))
	assert.Equal(t, day, DayBucket(got))
}

func TestFrameTimeAt(t *testing.T) {
	start := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 0, 10)
	f := Frame{
		Area: Area{Left: 5, Top: 0, Right: 15, Bottom: 9},
		X:    Scale{Min: TimeValue(start), Max: TimeValue(end), Start: 5, End: 15},
		Y:    Scale{Min: 0, Max: 1, Start: 9, End: 0},
	}
	require.True(t, f.Ready())

	got, ok := f.TimeAt(8)
	require.True(t, ok)
	assert.Equal(t, start.AddDate(0, 0, 3), got)
	assert.InDelta(t, 8, f.PixelOf(got), 1e-9)

	_, ok = f.TimeAt(4)
	assert.False(t, ok)
}

func TestArea(t *testing.T) {
	a := Area{Left: 2, Top: 1, Right: 11, Bottom: 5}
	assert.Equal(t, 10, a.Width())
	assert.Equal(t, 5, a.Height())
	assert.True(t, a.Contains(2, 5))
	assert.False(t, a.Contains(12, 3))
	assert.False(t, a.Empty())
	assert.True(t, Area{Left: 3, Right: 2}.Empty())
}

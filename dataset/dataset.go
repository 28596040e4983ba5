package dataset

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/andareed/siftly-chart/coord"
)

var (
	ErrTooFewPoints  = errors.New("dataset needs at least two rows")
	ErrUnordered     = errors.New("dataset rows are not in ascending date order")
	ErrDuplicateDay  = errors.New("dataset has two rows on the same calendar day")
	ErrNegativeValue = errors.New("dataset row has a negative volume")
)

// PricePoint is one row of the series. Only Date, Open and Volume are read by
// the chart; the rest are carried for export and clipboard output.
type PricePoint struct {
	Date     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	AdjClose float64
	Volume   float64
}

// Dataset is an immutable, date-ordered series with a day index built once.
type Dataset struct {
	points []PricePoint
	days   map[int64]int

	maxOpen   float64
	maxVolume float64
}

// New validates points and builds the day→row index.
func New(points []PricePoint) (*Dataset, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}

	ds := &Dataset{
		points: append([]PricePoint(nil), points...),
		days:   make(map[int64]int, len(points)),
	}
	for i, p := range ds.points {
		if p.Volume < 0 {
			return nil, fmt.Errorf("row %d: %w", i, ErrNegativeValue)
		}
		if i > 0 && !p.Date.After(ds.points[i-1].Date) {
			return nil, fmt.Errorf("row %d (%s): %w", i, p.Date.Format("2006-01-02"), ErrUnordered)
		}
		key := dayKey(p.Date)
		if _, dup := ds.days[key]; dup {
			return nil, fmt.Errorf("row %d (%s): %w", i, p.Date.Format("2006-01-02"), ErrDuplicateDay)
		}
		ds.days[key] = i

		if i == 0 || p.Open > ds.maxOpen {
			ds.maxOpen = p.Open
		}
		if p.Volume > ds.maxVolume {
			ds.maxVolume = p.Volume
		}
	}
	return ds, nil
}

func dayKey(t time.Time) int64 {
	return coord.DayBucket(t).Unix()
}

func (d *Dataset) Len() int { return len(d.points) }

func (d *Dataset) At(i int) PricePoint { return d.points[i] }

func (d *Dataset) First() PricePoint { return d.points[0] }

func (d *Dataset) Last() PricePoint { return d.points[len(d.points)-1] }

func (d *Dataset) LastIndex() int { return len(d.points) - 1 }

func (d *Dataset) MaxOpen() float64 { return d.maxOpen }

func (d *Dataset) MaxVolume() float64 { return d.maxVolume }

// IndexOfDay returns the row whose calendar day equals day, or -1 when no
// row exists for it (weekend, holiday, outside the series).
func (d *Dataset) IndexOfDay(day time.Time) int {
	if i, ok := d.days[dayKey(day)]; ok {
		return i
	}
	return -1
}

// IndexAt is IndexOfDay on the day bucket of t.
func (d *Dataset) IndexAt(t time.Time) int {
	return d.IndexOfDay(coord.DayBucket(t))
}

// NearestIndex returns the row whose timestamp is closest to t. Ties go to
// the earlier row.
func (d *Dataset) NearestIndex(t time.Time) int {
	i := sort.Search(len(d.points), func(i int) bool {
		return !d.points[i].Date.Before(t)
	})
	if i == 0 {
		return 0
	}
	if i == len(d.points) {
		return len(d.points) - 1
	}
	if t.Sub(d.points[i-1].Date) <= d.points[i].Date.Sub(t) {
		return i - 1
	}
	return i
}

// Bracket returns the index i such that row i is at or before t and row i+1
// is after it. ok is false when t is outside the series.
func (d *Dataset) Bracket(t time.Time) (int, bool) {
	if t.Before(d.points[0].Date) || t.After(d.Last().Date) {
		return 0, false
	}
	i := sort.Search(len(d.points), func(i int) bool {
		return d.points[i].Date.After(t)
	})
	if i >= len(d.points) {
		return len(d.points) - 2, true
	}
	return i - 1, true
}

// ClampIndex pins i into [0, Len()-1].
func (d *Dataset) ClampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i > len(d.points)-1 {
		return len(d.points) - 1
	}
	return i
}

// Contains reports whether t lies within [First().Date, Last().Date].
func (d *Dataset) Contains(t time.Time) bool {
	return !t.Before(d.points[0].Date) && !t.After(d.Last().Date)
}

// Dates returns the row dates of [start, end].
func (d *Dataset) Dates(start, end int) []time.Time {
	out := make([]time.Time, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, d.points[i].Date)
	}
	return out
}

// Opens returns the opening prices of [start, end].
func (d *Dataset) Opens(start, end int) []float64 {
	out := make([]float64, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, d.points[i].Open)
	}
	return out
}

// Volumes returns the volumes of [start, end].
func (d *Dataset) Volumes(start, end int) []float64 {
	out := make([]float64, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, d.points[i].Volume)
	}
	return out
}

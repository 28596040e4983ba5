package viewport

import (
	"errors"
	"fmt"
	"time"

	"github.com/andareed/siftly-chart/dataset"
)

var (
	ErrDegenerateRange = errors.New("viewport range is empty or inverted")
	ErrOutOfBounds     = errors.New("viewport bound outside dataset")
)

// Range is a visible window as dataset row indices. Start < End always holds
// for a Range stored in a Viewport.
type Range struct {
	Start int
	End   int
}

func (r Range) Width() int { return r.End - r.Start }

func (r Range) valid(n int) bool {
	return r.Start >= 0 && r.End <= n-1 && r.Start < r.End
}

// Viewport owns the visible window shared by every chart surface. Mutations
// are published synchronously to subscribers in subscription order.
type Viewport struct {
	ds          *dataset.Dataset
	rng         Range
	subscribers []func(Range)
}

// New returns a viewport spanning the whole dataset.
func New(ds *dataset.Dataset) *Viewport {
	return &Viewport{
		ds:  ds,
		rng: Range{Start: 0, End: ds.LastIndex()},
	}
}

// Subscribe registers fn to run after every successful mutation.
func (v *Viewport) Subscribe(fn func(Range)) {
	v.subscribers = append(v.subscribers, fn)
}

func (v *Viewport) Range() Range { return v.rng }

func (v *Viewport) Width() int { return v.rng.Width() }

func (v *Viewport) StartDate() time.Time { return v.ds.At(v.rng.Start).Date }

func (v *Viewport) EndDate() time.Time { return v.ds.At(v.rng.End).Date }

func (v *Viewport) Dataset() *dataset.Dataset { return v.ds }

// FullRange returns the first and last dataset dates.
func (v *Viewport) FullRange() (time.Time, time.Time) {
	return v.ds.First().Date, v.ds.Last().Date
}

// IsFull reports whether the window covers the whole dataset.
func (v *Viewport) IsFull() bool {
	return v.rng.Start == 0 && v.rng.End == v.ds.LastIndex()
}

// Reset restores the full extent.
func (v *Viewport) Reset() {
	_ = v.SetIndices(0, v.ds.LastIndex())
}

// SetRange snaps start and end to the nearest dataset rows and stores them.
// Dates outside the dataset or a window that snaps to zero or negative width
// are rejected and the current range is kept.
func (v *Viewport) SetRange(start, end time.Time) error {
	if !v.ds.Contains(start) || !v.ds.Contains(end) {
		return fmt.Errorf("%s..%s: %w", start.Format("2006-01-02"), end.Format("2006-01-02"), ErrOutOfBounds)
	}
	return v.SetIndices(v.ds.NearestIndex(start), v.ds.NearestIndex(end))
}

// SetIndices stores [start, end] if it is a valid, non-empty window.
func (v *Viewport) SetIndices(start, end int) error {
	next := Range{Start: start, End: end}
	if start < 0 || end > v.ds.LastIndex() {
		return fmt.Errorf("%d..%d: %w", start, end, ErrOutOfBounds)
	}
	if !next.valid(v.ds.Len()) {
		return fmt.Errorf("%d..%d: %w", start, end, ErrDegenerateRange)
	}
	if next == v.rng {
		return nil
	}
	v.rng = next
	v.publish()
	return nil
}

func (v *Viewport) publish() {
	for _, fn := range v.subscribers {
		fn(v.rng)
	}
}

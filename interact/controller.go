package interact

import (
	"errors"
	"time"

	"github.com/andareed/siftly-chart/coord"
	"github.com/andareed/siftly-chart/dataset"
	"github.com/andareed/siftly-chart/logging"
	"github.com/andareed/siftly-chart/viewport"
)

// ErrDragging is returned for programmatic moves during a drag.
var ErrDragging = errors.New("interact: drag in progress")

type State int

const (
	Idle State = iota
	DraggingLeftHandle
	DraggingRightHandle
	DraggingBody
)

func (s State) String() string {
	switch s {
	case DraggingLeftHandle:
		return "DRAG LEFT"
	case DraggingRightHandle:
		return "DRAG RIGHT"
	case DraggingBody:
		return "PAN"
	default:
		return "IDLE"
	}
}

// Region is what a pointer position hits on the overview slider.
type Region int

const (
	RegionNone Region = iota
	RegionLeftHandle
	RegionRightHandle
	RegionBody
)

type Cursor string

const (
	CursorDefault Cursor = "default"
	CursorResize  Cursor = "ew-resize"
	CursorMove    Cursor = "move"
)

// Tuning holds the empirically chosen interaction thresholds.
type Tuning struct {
	Radius     float64       // handle hit radius, pixels
	GuardBand  int           // rows around the pointer in which a zoom holds a bound
	EdgeMargin int           // rows a dragged handle keeps from the opposite one
	MinWindow  int           // smallest width zoom-in may produce, rows
	HoldSpan   time.Duration // zoom-out applies the guard band only above this span
}

func DefaultTuning() Tuning {
	return Tuning{
		Radius:     1,
		GuardBand:  8,
		EdgeMargin: 4,
		MinWindow:  1,
		HoldSpan:   14 * 24 * time.Hour,
	}
}

// DragSession is the state of an in-progress drag. Static is the viewport at
// pointer-down and is the reference frame for every move.
type DragSession struct {
	State      State
	StartIndex int
	Static     viewport.Range
}

// Controller turns pointer and wheel input into viewport mutations. It is the
// only writer of the viewport.
type Controller struct {
	ds      *dataset.Dataset
	vp      *viewport.Viewport
	tuning  Tuning
	session *DragSession
}

func New(vp *viewport.Viewport, tuning Tuning) *Controller {
	return &Controller{
		ds:     vp.Dataset(),
		vp:     vp,
		tuning: tuning,
	}
}

func (c *Controller) State() State {
	if c.session == nil {
		return Idle
	}
	return c.session.State
}

// Session returns a copy of the active drag session.
func (c *Controller) Session() (DragSession, bool) {
	if c.session == nil {
		return DragSession{}, false
	}
	return *c.session, true
}

// handlePixels returns the pixel columns of the viewport bounds on frame.
func (c *Controller) handlePixels(frame coord.Frame) (float64, float64) {
	return frame.PixelOf(c.vp.StartDate()), frame.PixelOf(c.vp.EndDate())
}

// HitTest classifies pixel column x against the slider drawn on frame.
// When x is within the radius of both handles the left handle wins.
func (c *Controller) HitTest(x int, frame coord.Frame) Region {
	if !frame.Ready() {
		return RegionNone
	}
	left, right := c.handlePixels(frame)
	px := float64(x)
	r := c.tuning.Radius

	nearLeft := px >= left-r && px <= left+r
	nearRight := px >= right-r && px <= right+r
	switch {
	case nearLeft:
		return RegionLeftHandle
	case nearRight:
		return RegionRightHandle
	case px > left+r && px < right-r:
		return RegionBody
	}
	return RegionNone
}

// Cursor returns the pointer feedback for x. During a drag the cursor follows
// the active session.
func (c *Controller) Cursor(x int, frame coord.Frame) Cursor {
	switch c.State() {
	case DraggingLeftHandle, DraggingRightHandle:
		return CursorResize
	case DraggingBody:
		return CursorMove
	}
	switch c.HitTest(x, frame) {
	case RegionLeftHandle, RegionRightHandle:
		return CursorResize
	case RegionBody:
		return CursorMove
	}
	return CursorDefault
}

// PointerDown starts a drag session when x hits the slider.
func (c *Controller) PointerDown(x int, frame coord.Frame) State {
	var state State
	switch c.HitTest(x, frame) {
	case RegionLeftHandle:
		state = DraggingLeftHandle
	case RegionRightHandle:
		state = DraggingRightHandle
	case RegionBody:
		state = DraggingBody
	default:
		c.session = nil
		return Idle
	}

	start := c.rowAt(x, frame)
	if start < 0 {
		// anchor drags that begin over a gap on the closest row
		if t, ok := frame.TimeAt(x); ok {
			start = c.ds.NearestIndex(t)
		} else {
			start = c.vp.Range().Start
		}
	}
	c.session = &DragSession{
		State:      state,
		StartIndex: start,
		Static:     c.vp.Range(),
	}
	logging.Debugf("drag start state=%s index=%d static=%v", state, start, c.session.Static)
	return state
}

// PointerUp ends any drag session. Release is global: it applies wherever the
// pointer is.
func (c *Controller) PointerUp() {
	if c.session != nil {
		logging.Debugf("drag end state=%s range=%v", c.session.State, c.vp.Range())
	}
	c.session = nil
}

// PointerMove advances the active drag. It reports whether the viewport
// changed.
func (c *Controller) PointerMove(x int, frame coord.Frame) bool {
	if c.session == nil || !frame.Ready() {
		return false
	}
	var next viewport.Range
	var ok bool
	switch c.session.State {
	case DraggingLeftHandle:
		next, ok = c.moveLeft(x, frame)
	case DraggingRightHandle:
		next, ok = c.moveRight(x, frame)
	case DraggingBody:
		next, ok = c.moveBody(x, frame)
	}
	if !ok {
		return false
	}
	return c.apply(next)
}

func (c *Controller) moveLeft(x int, frame coord.Frame) (viewport.Range, bool) {
	cur := c.vp.Range()
	limit := cur.End - c.tuning.EdgeMargin

	var idx int
	switch {
	case x < frame.Area.Left:
		idx = 0
	case x > frame.Area.Right:
		idx = limit
	default:
		idx = c.rowAt(x, frame)
		if idx < 0 {
			return cur, false
		}
		if idx > cur.End {
			return cur, false
		}
		if idx > limit {
			idx = limit
		}
	}
	idx = c.ds.ClampIndex(idx)
	return viewport.Range{Start: idx, End: cur.End}, true
}

func (c *Controller) moveRight(x int, frame coord.Frame) (viewport.Range, bool) {
	cur := c.vp.Range()
	limit := cur.Start + c.tuning.EdgeMargin

	var idx int
	switch {
	case x > frame.Area.Right:
		idx = c.ds.LastIndex()
	case x < frame.Area.Left:
		idx = limit
	default:
		idx = c.rowAt(x, frame)
		if idx < 0 {
			return cur, false
		}
		if idx < cur.Start {
			return cur, false
		}
		if idx < limit {
			idx = limit
		}
	}
	idx = c.ds.ClampIndex(idx)
	return viewport.Range{Start: cur.Start, End: idx}, true
}

func (c *Controller) moveBody(x int, frame coord.Frame) (viewport.Range, bool) {
	s := c.session
	var idx int
	switch {
	case x < frame.Area.Left:
		idx = 0
	case x > frame.Area.Right:
		idx = c.ds.LastIndex()
	default:
		idx = c.rowAt(x, frame)
		if idx < 0 {
			return s.Static, false
		}
	}
	return c.shift(s.Static, idx-s.StartIndex), true
}

// shift moves r by delta rows, keeping its width and stopping at the
// dataset edges.
func (c *Controller) shift(r viewport.Range, delta int) viewport.Range {
	width := r.Width()
	last := c.ds.LastIndex()
	next := viewport.Range{Start: r.Start + delta, End: r.End + delta}
	if next.Start < 0 {
		next = viewport.Range{Start: 0, End: width}
	}
	if next.End > last {
		next = viewport.Range{Start: last - width, End: last}
	}
	return next
}

// Wheel zooms around pixel column x of the detail frame. Non-negative deltaY
// zooms in. It reports whether the viewport changed.
func (c *Controller) Wheel(x int, deltaY float64, frame coord.Frame) bool {
	pivot := -1
	if frame.Ready() {
		pivot = c.rowAt(x, frame)
	}
	return c.ZoomAt(pivot, deltaY >= 0)
}

// ZoomAt shrinks (in) or grows the window by one row per side. A bound within
// the guard band of the pivot row is held in place. pivot may be -1.
func (c *Controller) ZoomAt(pivot int, in bool) bool {
	cur := c.vp.Range()
	next := cur

	if in {
		if (cur.End-1)-(cur.Start+1) >= c.tuning.MinWindow {
			next = viewport.Range{Start: cur.Start + 1, End: cur.End - 1}
		}
		next = c.hold(cur, next, pivot)
	} else {
		if cur.Start-1 >= 0 {
			next.Start = cur.Start - 1
		}
		if cur.End+1 <= c.ds.LastIndex() {
			next.End = cur.End + 1
		}
		span := c.ds.At(next.End).Date.Sub(c.ds.At(next.Start).Date)
		if span >= c.tuning.HoldSpan {
			next = c.hold(cur, next, pivot)
		}
	}
	return c.apply(next)
}

func (c *Controller) hold(cur, next viewport.Range, pivot int) viewport.Range {
	if pivot < 0 {
		return next
	}
	band := c.tuning.GuardBand
	if cur.Start >= pivot-band && cur.Start <= pivot {
		next.Start = cur.Start
	}
	if cur.End <= pivot+band && cur.End >= pivot {
		next.End = cur.End
	}
	return next
}

// Pan shifts the window by rows, keeping its width.
func (c *Controller) Pan(rows int) bool {
	return c.apply(c.shift(c.vp.Range(), rows))
}

// SetRange moves the window to [start, end], snapped to dataset rows.
func (c *Controller) SetRange(start, end time.Time) error {
	if c.session != nil {
		return ErrDragging
	}
	return c.vp.SetRange(start, end)
}

// CenterOn moves the window, keeping its width, so the row nearest to t is
// in the middle.
func (c *Controller) CenterOn(t time.Time) bool {
	if c.session != nil {
		return false
	}
	r := c.vp.Range()
	mid := r.Start + r.Width()/2
	return c.apply(c.shift(r, c.ds.NearestIndex(t)-mid))
}

// Reset restores the full dataset range and ends any drag.
func (c *Controller) Reset() {
	c.session = nil
	c.vp.Reset()
}

func (c *Controller) apply(next viewport.Range) bool {
	if next == c.vp.Range() {
		return false
	}
	if err := c.vp.SetIndices(next.Start, next.End); err != nil {
		logging.Debugf("viewport update rejected: %v", err)
		return false
	}
	return true
}

// rowAt returns the dataset row on the day under pixel column x, or -1.
func (c *Controller) rowAt(x int, frame coord.Frame) int {
	t, ok := frame.TimeAt(x)
	if !ok {
		return -1
	}
	return c.ds.IndexAt(t)
}

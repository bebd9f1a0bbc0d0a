// Package brush implements a horizontal interval selector driven by pointer
// press, drag and release.
package brush

import "fmt"

// Rect is the brushable area in logical pixels.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return r.X0 <= x && x <= r.X1 && r.Y0 <= y && y <= r.Y1
}

// Interval is a horizontal pixel span with Lo <= Hi.
type Interval struct {
	Lo, Hi float64
}

// Width returns Hi - Lo.
func (i Interval) Width() float64 { return i.Hi - i.Lo }

// Contains reports whether x lies in [Lo, Hi].
func (i Interval) Contains(x float64) bool { return i.Lo <= x && x <= i.Hi }

// EventType identifies the phase of a brush gesture.
type EventType int

const (
	EventStart EventType = iota
	EventBrush
	EventEnd
)

func (t EventType) String() string {
	switch t {
	case EventStart:
		return "start"
	case EventBrush:
		return "brush"
	case EventEnd:
		return "end"
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event reports the selection after a gesture step. Selection is nil when
// the brush is empty.
type Event struct {
	Type      EventType
	Selection *Interval
}

// State is the gesture state.
type State int

const (
	Idle State = iota
	Selecting
	Translating
)

// Brush is a horizontal brush state machine. It is not safe for concurrent
// use.
type Brush struct {
	extent    Rect
	state     State
	anchor    float64
	origin    Interval
	selection *Interval
}

// New returns an idle, empty brush over extent.
func New(extent Rect) *Brush {
	return &Brush{extent: extent}
}

// Extent returns the brushable area.
func (b *Brush) Extent() Rect { return b.extent }

// SetExtent replaces the brushable area. A current selection is clamped to it.
func (b *Brush) SetExtent(r Rect) {
	b.extent = r
	if b.selection != nil {
		b.selection = b.clampInterval(*b.selection)
	}
}

// State returns the gesture state.
func (b *Brush) State() State { return b.state }

// Selection returns a copy of the current pixel selection, or nil.
func (b *Brush) Selection() *Interval { return copyInterval(b.selection) }

// Press starts a gesture at (x, y). Presses outside the extent are ignored.
// A press inside the current selection translates it; any other press starts
// a new selection anchored at x.
func (b *Brush) Press(x, y float64) (Event, bool) {
	if !b.extent.Contains(x, y) {
		return Event{}, false
	}
	if b.selection != nil && b.selection.Width() > 0 && b.selection.Contains(x) {
		b.state = Translating
		b.anchor = x
		b.origin = *b.selection
	} else {
		b.state = Selecting
		b.anchor = x
		b.selection = &Interval{Lo: x, Hi: x}
	}
	return b.event(EventStart), true
}

// Drag updates the gesture with the pointer at x. It is ignored when idle.
func (b *Brush) Drag(x float64) (Event, bool) {
	if b.state == Idle {
		return Event{}, false
	}
	b.update(x)
	return b.event(EventBrush), true
}

// Release ends the gesture at x. A zero-width selection is cleared.
func (b *Brush) Release(x float64) (Event, bool) {
	if b.state == Idle {
		return Event{}, false
	}
	b.update(x)
	b.state = Idle
	if b.selection != nil && b.selection.Width() <= 0 {
		b.selection = nil
	}
	return b.event(EventEnd), true
}

// Clear empties the brush and ends any gesture.
func (b *Brush) Clear() Event {
	b.state = Idle
	b.selection = nil
	return b.event(EventEnd)
}

// Move sets the selection without emitting events. A nil or zero-width
// interval clears it.
func (b *Brush) Move(sel *Interval) {
	b.state = Idle
	if sel == nil || sel.Width() <= 0 {
		b.selection = nil
		return
	}
	b.selection = b.clampInterval(*sel)
}

func (b *Brush) update(x float64) {
	x = b.clampX(x)
	switch b.state {
	case Selecting:
		lo, hi := b.anchor, x
		if hi < lo {
			lo, hi = hi, lo
		}
		b.selection = &Interval{Lo: lo, Hi: hi}
	case Translating:
		dx := x - b.anchor
		dx = max(dx, b.extent.X0-b.origin.Lo)
		dx = min(dx, b.extent.X1-b.origin.Hi)
		b.selection = &Interval{Lo: b.origin.Lo + dx, Hi: b.origin.Hi + dx}
	}
}

func (b *Brush) clampX(x float64) float64 {
	return min(max(x, b.extent.X0), b.extent.X1)
}

func (b *Brush) clampInterval(i Interval) *Interval {
	lo, hi := b.clampX(i.Lo), b.clampX(i.Hi)
	if hi <= lo {
		return nil
	}
	return &Interval{Lo: lo, Hi: hi}
}

func (b *Brush) event(t EventType) Event {
	return Event{Type: t, Selection: copyInterval(b.selection)}
}

func copyInterval(i *Interval) *Interval {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

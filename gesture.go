package fidget

import "math"

// Gesture timing and distance thresholds, in seconds and scene units.
const (
	// DoubleTapWindow is the maximum time between two presses for the
	// second to count as a double tap.
	DoubleTapWindow = 0.400
	// TapHoldWindow is the minimum press duration for a tap-and-hold, and
	// the maximum press duration for a plain tap.
	TapHoldWindow = 0.500
	// SwipeMinDistance is the minimum travel for a swipe.
	SwipeMinDistance = 50.0
	// SwipeMaxTime is the maximum press duration for a swipe.
	SwipeMaxTime = 0.300
	// DragThreshold is the dead zone: movement beyond it begins a drag,
	// movement within it can still be a tap.
	DragThreshold = 2.0
)

// Classifier turns raw pointer events into per-frame gesture signals.
//
// Feed it pointer events as they arrive, call Update once per frame after
// all events have been applied, let every consumer read the flags, then
// call ClearInteractionFlags exactly once. One-shot flags (Tapped,
// DoubleTapped, TapHold, DragStarted, DragEnded, SwipeDetected) are true
// for at most one frame; Dragging persists until the pointer is released.
//
// A single Classifier is shared read-only by every toy and the carousel;
// only the pointer event callbacks write to it.
type Classifier struct {
	clock float64 // monotonic, advanced by Update

	pointerDown  bool
	dragging     bool
	moving       bool // pointer moved since the last flag clear
	holdDetected bool // the current press crossed TapHoldWindow

	tapped        bool
	doubleTapped  bool
	tapHold       bool
	dragStarted   bool
	dragEnded     bool
	swipeDetected bool

	curr  Vec2
	prev  Vec2
	start Vec2

	swipeVelocity Vec2
	lastTapTime   float64
	pressStart    float64
}

// NewClassifier creates a Classifier with an empty gesture state.
func NewClassifier() *Classifier {
	c := &Classifier{}
	c.Clear()
	return c
}

// Clear resets all gesture state, positions, and timestamps. The monotonic
// clock keeps running.
func (c *Classifier) Clear() {
	c.pointerDown = false
	c.dragging = false
	c.moving = false
	c.holdDetected = false
	c.tapped = false
	c.doubleTapped = false
	c.tapHold = false
	c.dragStarted = false
	c.dragEnded = false
	c.swipeDetected = false
	c.curr = Vec2{}
	c.prev = Vec2{}
	c.start = Vec2{}
	c.swipeVelocity = Vec2{}
	// Far enough in the past that the first press never double-taps.
	c.lastTapTime = math.Inf(-1)
	c.pressStart = c.clock
}

// Now returns the classifier's monotonic clock in seconds. Pointer event
// timestamps must be readings of this clock.
func (c *Classifier) Now() float64 {
	return c.clock
}

// PointerBegin records a press at pos with timestamp at.
func (c *Classifier) PointerBegin(pos Vec2, at float64) {
	if at-c.lastTapTime <= DoubleTapWindow {
		c.doubleTapped = true
	}

	c.pointerDown = true
	c.holdDetected = false
	c.pressStart = at
	c.start = pos
	c.prev = c.curr
	c.curr = pos
}

// PointerEnd records a release at pos with timestamp at, classifying the
// completed press as tap, swipe, drag end, or nothing. Tap and swipe are
// mutually exclusive by their distance conditions, but a fast drag release
// sets both DragEnded and SwipeDetected in the same frame — consumers
// decide which to honor.
func (c *Classifier) PointerEnd(pos Vec2, at float64) {
	c.pointerDown = false
	c.curr = pos
	c.prev = pos

	moveDistance := pos.Sub(c.start).Len()
	elapsed := at - c.pressStart

	if !c.dragging && !c.holdDetected && moveDistance < DragThreshold && elapsed < TapHoldWindow {
		c.tapped = true
		c.lastTapTime = at
	}

	if moveDistance >= SwipeMinDistance && elapsed <= SwipeMaxTime {
		c.swipeDetected = true
		if elapsed > 0 {
			c.swipeVelocity = pos.Sub(c.start).Scale(1 / elapsed)
		}
	}

	if c.dragging {
		c.dragging = false
		c.dragEnded = true
	}
}

// PointerMove records pointer motion to pos.
func (c *Classifier) PointerMove(pos Vec2) {
	c.prev = c.curr
	c.curr = pos
	c.moving = true

	if c.pointerDown && !c.dragging {
		if pos.Sub(c.start).Len() > DragThreshold {
			c.dragging = true
			c.dragStarted = true
		}
	}
}

// Update advances the classifier clock by dt seconds and runs per-frame
// detection (tap-and-hold). Call after all pointer events for the frame
// have been applied and before consumers read the flags.
func (c *Classifier) Update(dt float64) {
	c.clock += dt

	if !c.dragging || !c.moving {
		// Idle frames read a zero delta even if the hover position
		// drifted between events.
		c.prev = c.curr
	}

	if c.pointerDown && !c.dragging && !c.holdDetected {
		if c.clock-c.pressStart >= TapHoldWindow {
			c.holdDetected = true
			c.tapHold = true
		}
	}
}

// ClearInteractionFlags resets the one-shot flags. Call exactly once per
// frame, after every consumer has read them.
func (c *Classifier) ClearInteractionFlags() {
	c.tapped = false
	c.doubleTapped = false
	c.dragStarted = false
	c.dragEnded = false
	c.tapHold = false
	c.swipeDetected = false
	c.moving = false
	c.swipeVelocity = Vec2{}
}

// PointerDown reports whether the pointer is currently pressed.
func (c *Classifier) PointerDown() bool { return c.pointerDown }

// Dragging reports whether a drag is in progress. Unlike the one-shot
// flags it persists across frames until the pointer is released.
func (c *Classifier) Dragging() bool { return c.dragging }

// Tapped reports a completed tap this frame.
func (c *Classifier) Tapped() bool { return c.tapped }

// DoubleTapped reports a second press within DoubleTapWindow this frame.
func (c *Classifier) DoubleTapped() bool { return c.doubleTapped }

// TapHold reports that the press crossed TapHoldWindow this frame.
func (c *Classifier) TapHold() bool { return c.tapHold }

// DragStarted reports that a drag began this frame.
func (c *Classifier) DragStarted() bool { return c.dragStarted }

// DragEnded reports that a drag ended this frame.
func (c *Classifier) DragEnded() bool { return c.dragEnded }

// SwipeDetected reports a completed swipe this frame.
func (c *Classifier) SwipeDetected() bool { return c.swipeDetected }

// SwipeVelocity returns the swipe velocity in scene units per second.
// Zero unless SwipeDetected is true this frame.
func (c *Classifier) SwipeVelocity() Vec2 { return c.swipeVelocity }

// Position returns the current pointer position.
func (c *Classifier) Position() Vec2 { return c.curr }

// PrevPosition returns the pointer position from the previous event or
// frame.
func (c *Classifier) PrevPosition() Vec2 { return c.prev }

// StartPosition returns the position where the current press began.
func (c *Classifier) StartPosition() Vec2 { return c.start }

// Delta returns the pointer movement since the previous position. Reads
// zero while the pointer is idle or not dragging.
func (c *Classifier) Delta() Vec2 { return c.curr.Sub(c.prev) }

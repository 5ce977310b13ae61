package fidget

import (
	"math"
	"testing"
)

func newTestSpring(style HapticStyle) (*DragSpring, *recordDevice) {
	dev := &recordDevice{}
	s := NewDragSpring(Vec2{}, SpringConfig{Style: style}, NewHaptics(dev))
	return s, dev
}

func TestSpringConfigDefaults(t *testing.T) {
	cfg := SpringConfig{}.withDefaults()
	assertNear(t, "max drag", cfg.MaxDragDistance, 12)
	assertNear(t, "spring k", cfg.SpringK, 0.4)
	assertNear(t, "pressed scale", cfg.PressedScale, 0.85)
	assertNear(t, "anim duration", cfg.AnimDuration, 0.12)
	assertNear(t, "display scale", cfg.DisplayScale, 1)
}

func TestPressHapticPerStyle(t *testing.T) {
	cases := []struct {
		style HapticStyle
		kind  string
	}{
		{StyleRattle, "transient"},
		{StyleBuzz, "transient"},
		{StyleTick, "transient"},
		{StyleThump, "transient"},
		{StyleTap, "transient"},
		{StyleBuzzPulse, "continuous"},
		{StyleSelection, "transient"},
	}
	for _, tc := range cases {
		s, dev := newTestSpring(tc.style)
		s.Press(Vec2{})
		if len(dev.calls) != 1 {
			t.Errorf("style %d: got %d press calls, want 1", tc.style, len(dev.calls))
			continue
		}
		if dev.last().kind != tc.kind {
			t.Errorf("style %d: press kind = %q, want %q", tc.style, dev.last().kind, tc.kind)
		}
	}
}

func TestOffsetNeverExceedsMaxDrag(t *testing.T) {
	s, _ := newTestSpring(StyleRattle)
	s.Press(Vec2{})

	// Drag far past the travel limit, in several directions.
	pointer := Vec2{}
	for i := 0; i < 100; i++ {
		angle := float64(i) * 0.37
		pointer = pointer.Add(Vec2{X: 30 * math.Cos(angle), Y: 30 * math.Sin(angle)})
		s.Update(1.0/60, pointer)
		if got := s.Offset().Len(); got > s.cfg.MaxDragDistance+epsilon {
			t.Fatalf("offset length %v exceeds max drag %v", got, s.cfg.MaxDragDistance)
		}
	}
}

func TestQuadraticDampeningStiffens(t *testing.T) {
	s, _ := newTestSpring(StyleRattle)
	s.Press(Vec2{})

	// Identical pointer steps produce shrinking offset gains as the
	// spring loads up.
	var gains []float64
	pointer := Vec2{}
	prev := 0.0
	for i := 0; i < 5; i++ {
		pointer.X += 3
		s.Update(1.0/60, pointer)
		d := s.Offset().Len()
		gains = append(gains, d-prev)
		prev = d
	}
	for i := 1; i < len(gains); i++ {
		if gains[i] >= gains[i-1]-epsilon {
			t.Fatalf("gain %d (%v) not below gain %d (%v)", i, gains[i], i-1, gains[i-1])
		}
	}
}

func TestDampeningFloorsAtTenPercent(t *testing.T) {
	s, _ := newTestSpring(StyleRattle)
	s.Press(Vec2{})

	// Load the spring to its limit.
	s.Update(1.0/60, Vec2{X: 100})
	before := s.Offset()

	// Movement back toward rest still responds at >= 10% of the delta.
	s.Update(1.0/60, Vec2{X: 99})
	moved := before.Sub(s.Offset()).Len()
	if moved < 0.1-epsilon {
		t.Errorf("offset moved %v for a unit delta at full load, want >= 0.1", moved)
	}
}

func TestReleaseSnapsToRest(t *testing.T) {
	s, _ := newTestSpring(StyleRattle)
	s.Press(Vec2{})
	s.Update(1.0/60, Vec2{X: 8})
	if s.Offset() == (Vec2{}) {
		t.Fatal("setup: expected a nonzero offset")
	}

	s.Release()
	if s.Offset() != (Vec2{}) {
		t.Errorf("offset = %v after release, want zero", s.Offset())
	}
	if s.Interacting() || s.Pressed() {
		t.Error("spring still interacting after release")
	}
	assertNear(t, "position is origin", s.Position().Len(), 0)
}

func TestPressScaleAnimation(t *testing.T) {
	s, _ := newTestSpring(StyleRattle)
	assertNear(t, "rest scale", s.Scale(), 1)

	s.Press(Vec2{})
	for i := 0; i < 30; i++ {
		s.Update(1.0/60, Vec2{})
	}
	assertNear(t, "pressed scale", s.Scale(), 0.85)

	s.Release()
	for i := 0; i < 30; i++ {
		s.Update(1.0/60, Vec2{})
	}
	assertNear(t, "released scale", s.Scale(), 1)
}

func TestRattleCooldownShrinksWithSpeed(t *testing.T) {
	countPulses := func(pixelsPerFrame float64) int {
		s, dev := newTestSpring(StyleRattle)
		s.Press(Vec2{})
		dev.reset()
		pointer := Vec2{}
		for i := 0; i < 60; i++ {
			// Alternate direction so the spring never saturates.
			if i%2 == 0 {
				pointer.X += pixelsPerFrame
			} else {
				pointer.X -= pixelsPerFrame
			}
			s.Update(1.0/60, pointer)
		}
		return len(dev.calls)
	}

	slow := countPulses(3)  // 180 u/s
	fast := countPulses(15) // 900 u/s
	if fast <= slow {
		t.Errorf("fast drag pulses = %d, slow = %d; want faster rattle", fast, slow)
	}
}

func TestTickRequiresVelocityThreshold(t *testing.T) {
	s, dev := newTestSpring(StyleTick)
	s.Press(Vec2{})
	dev.reset()

	// 240 u/s: intensity 0.24, under the 0.3 gate.
	s.Update(1.0/60, Vec2{X: 4})
	if len(dev.calls) != 0 {
		t.Fatalf("got %d tick calls under the gate, want 0", len(dev.calls))
	}

	// 600 u/s: fixed tick regardless of speed above the gate.
	s.Update(1.0/60, Vec2{X: 14})
	if len(dev.calls) != 1 {
		t.Fatalf("got %d tick calls, want 1", len(dev.calls))
	}
	assertNear(t, "tick intensity", dev.last().intensity, 0.8)
	assertNear(t, "tick sharpness", dev.last().sharpness, 0.9)
}

func TestThumpRequiresHalfTravel(t *testing.T) {
	s, dev := newTestSpring(StyleThump)
	s.Press(Vec2{})
	dev.reset()

	// Fast but still near rest: no thump.
	s.Update(1.0/60, Vec2{X: 5})
	if len(dev.calls) != 0 {
		t.Fatalf("got %d thump calls near rest, want 0", len(dev.calls))
	}

	// Past half travel and moving: thump.
	s.Update(1.0/60, Vec2{X: 12})
	if len(dev.calls) != 1 {
		t.Fatalf("got %d thump calls past half travel, want 1", len(dev.calls))
	}
	assertNear(t, "thump sharpness", dev.last().sharpness, 0.1)
}

func TestBuzzPulseDurationScalesWithSpeed(t *testing.T) {
	s, dev := newTestSpring(StyleBuzzPulse)
	s.Press(Vec2{})
	dev.reset()

	// 600 u/s: intensity 0.6 over the 0.25 gate.
	s.Update(1.0/60, Vec2{X: 10})
	if len(dev.calls) != 1 {
		t.Fatalf("got %d buzz calls, want 1", len(dev.calls))
	}
	call := dev.last()
	if call.kind != "continuous" {
		t.Fatalf("kind = %q, want continuous", call.kind)
	}
	assertNear(t, "duration", call.duration, 0.05+0.6*0.1)
	assertNear(t, "intensity", call.intensity, 0.6*0.8)
}

func TestSlowDragBelowNoiseFloorIsSilent(t *testing.T) {
	s, dev := newTestSpring(StyleRattle)
	s.Press(Vec2{})
	dev.reset()

	// 30 u/s: intensity 0.03, under the noise floor.
	s.Update(1.0/60, Vec2{X: 0.5})
	if len(dev.calls) != 0 {
		t.Errorf("got %d calls below the noise floor, want 0", len(dev.calls))
	}
}

func TestZeroDtDoesNotBlowUpVelocity(t *testing.T) {
	s, _ := newTestSpring(StyleRattle)
	s.Press(Vec2{})

	s.Update(0, Vec2{X: 1})
	if v := s.Velocity().Len(); math.IsInf(v, 0) || math.IsNaN(v) {
		t.Fatalf("velocity = %v with dt=0", v)
	}
	// dt floors at 1ms: 1 unit over 1ms reads as 1000 u/s.
	assertNear(t, "floored velocity", s.Velocity().X, 1000)
}

func TestDisplayScaleConvertsDeltas(t *testing.T) {
	dev := &recordDevice{}
	s := NewDragSpring(Vec2{}, SpringConfig{Style: StyleRattle, DisplayScale: 0.5}, NewHaptics(dev))
	s.Press(Vec2{})

	s.Update(1.0/60, Vec2{X: 4})
	// 4 pixels * 0.5 scale = 2 units before dampening.
	if got := s.Offset().X; got <= 0 || got > 2 {
		t.Errorf("offset x = %v, want in (0, 2]", got)
	}
}

func TestPointerYFlipsIntoSimulationSpace(t *testing.T) {
	s, _ := newTestSpring(StyleRattle)
	s.Press(Vec2{})

	// Dragging down on screen pulls the spring down in simulation space.
	s.Update(1.0/60, Vec2{Y: 5})
	if s.Offset().Y >= 0 {
		t.Errorf("offset y = %v for a downward screen drag, want negative", s.Offset().Y)
	}
}

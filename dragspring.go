package fidget

import "math"

// HapticStyle selects how a DragSpring converts drag velocity into
// haptic output.
type HapticStyle uint8

const (
	// StyleRattle plays velocity-scaled transients with an
	// inverse-velocity cooldown: faster drags rattle faster.
	StyleRattle HapticStyle = iota
	// StyleBuzz plays damped low-sharpness transients on a fixed short
	// cooldown.
	StyleBuzz
	// StyleTick plays fixed high-sharpness ticks above a velocity
	// threshold, spaced out for distinctness.
	StyleTick
	// StyleThump plays heavy low-sharpness pulses only when dragged past
	// half the travel.
	StyleThump
	// StyleTap routes through the device's tap primitive.
	StyleTap
	// StyleBuzzPulse plays short continuous buzzes whose duration scales
	// with velocity.
	StyleBuzzPulse
	// StyleSelection plays the selection tick on sustained movement.
	StyleSelection
)

// Drag-to-haptic mapping constants.
const (
	// maxHapticVelocity saturates the velocity→intensity mapping, scene
	// units per second.
	maxHapticVelocity = 1000.0
	// minHapticIntensity is the noise floor below which no pulse fires.
	minHapticIntensity = 0.05
)

// SpringConfig parameterizes a DragSpring. Zero-value fields fall back to
// defaults.
type SpringConfig struct {
	// Style selects the velocity-to-haptic mapping.
	Style HapticStyle
	// MaxDragDistance hard-limits the drag offset. Defaults to 12.
	MaxDragDistance float64
	// SpringK scales the quadratic resistance. Defaults to 0.4.
	SpringK float64
	// PressedScale is the visual scale while pressed. Defaults to 0.85.
	PressedScale float64
	// AnimDuration paces the press/release scale animation in seconds.
	// Defaults to 0.12.
	AnimDuration float64
	// DisplayScale converts raw pointer deltas (screen pixels) into
	// simulation units. Defaults to 1.
	DisplayScale float64
}

func (c SpringConfig) withDefaults() SpringConfig {
	if c.MaxDragDistance <= 0 {
		c.MaxDragDistance = 12
	}
	if c.SpringK <= 0 {
		c.SpringK = 0.4
	}
	if c.PressedScale <= 0 {
		c.PressedScale = 0.85
	}
	if c.AnimDuration <= 0 {
		c.AnimDuration = 0.12
	}
	if c.DisplayScale <= 0 {
		c.DisplayScale = 1
	}
	return c
}

// DragSpring maps a press-and-drag interaction onto spring-resisted
// displacement and velocity-scaled haptic transients — the "squishy
// button". Resistance grows with the square of the normalized distance
// from rest, so the button gets progressively stiffer toward its travel
// limit; the offset is additionally hard-clamped to MaxDragDistance.
// Release snaps straight back to the origin with no easing.
type DragSpring struct {
	cfg    SpringConfig
	origin Vec2

	offset      Vec2
	velocity    Vec2
	lastPointer Vec2

	pressed  bool
	dragging bool
	scale    float64
	cooldown float64

	h *Haptics
}

// NewDragSpring creates a spring resting at origin.
func NewDragSpring(origin Vec2, cfg SpringConfig, h *Haptics) *DragSpring {
	return &DragSpring{
		cfg:    cfg.withDefaults(),
		origin: origin,
		scale:  1,
		h:      h,
	}
}

// Press begins an interaction at the given pointer position and fires the
// style's press haptic.
func (d *DragSpring) Press(pointer Vec2) {
	d.pressed = true
	d.dragging = true
	d.offset = Vec2{}
	d.velocity = Vec2{}
	d.lastPointer = pointer
	d.cooldown = 0

	switch d.cfg.Style {
	case StyleRattle:
		d.h.Medium()
	case StyleBuzz:
		d.h.Light()
	case StyleTick, StyleThump:
		d.h.Heavy()
	case StyleTap:
		d.h.Tap(0.8, 0.5)
	case StyleBuzzPulse:
		d.h.Buzz(0.7, 0.3, 0.15)
	case StyleSelection:
		d.h.Selection()
	}
}

// Release ends the interaction. The offset snaps back to zero instantly.
func (d *DragSpring) Release() {
	d.pressed = false
	d.dragging = false
	d.offset = Vec2{}
	d.velocity = Vec2{}
}

// Update advances the spring by dt seconds with the current pointer
// position, then steps the press-scale animation.
func (d *DragSpring) Update(dt float64, pointer Vec2) {
	if d.dragging {
		delta := pointer.Sub(d.lastPointer).Scale(d.cfg.DisplayScale)
		// Pointer Y grows downward, simulation Y grows upward.
		delta.Y = -delta.Y

		d.velocity = delta.Scale(1 / math.Max(dt, 0.001))
		d.lastPointer = pointer

		target := d.offset.Add(delta)
		if targetDist := target.Len(); targetDist > 0.001 {
			normalized := math.Min(targetDist/d.cfg.MaxDragDistance, 1)
			dampening := math.Max(0.1, 1-d.cfg.SpringK*normalized*normalized)

			target = d.offset.Add(delta.Scale(dampening))
			if target.Len() > d.cfg.MaxDragDistance {
				target = target.Normalized().Scale(d.cfg.MaxDragDistance)
			}
		}
		d.offset = target

		d.fireHaptic(d.velocity.Len(), dt)
	}

	// Scale chases its target fast enough to finish inside AnimDuration.
	targetScale := 1.0
	if d.pressed {
		targetScale = d.cfg.PressedScale
	}
	if math.Abs(d.scale-targetScale) > 0.001 {
		speed := dt / d.cfg.AnimDuration
		d.scale += (targetScale - d.scale) * math.Min(1, speed*8)
	} else {
		d.scale = targetScale
	}
}

// fireHaptic emits the style-specific pulse for the given drag speed,
// throttled by the style's cooldown.
func (d *DragSpring) fireHaptic(speed, dt float64) {
	d.cooldown -= dt
	if d.cooldown > 0 {
		return
	}

	intensity := math.Min(speed, maxHapticVelocity) / maxHapticVelocity
	if intensity < minHapticIntensity {
		return
	}

	switch d.cfg.Style {
	case StyleRattle:
		d.h.Transient(intensity, 0.5)
		d.cooldown = 0.04*(1-intensity*0.5) + 0.02

	case StyleBuzz:
		d.h.Transient(intensity*0.7, 0.2)
		d.cooldown = 0.03

	case StyleTick:
		if intensity > 0.3 {
			d.h.Transient(0.8, 0.9)
			d.cooldown = 0.08
		}

	case StyleThump:
		distRatio := d.offset.Len() / d.cfg.MaxDragDistance
		if distRatio > 0.5 && intensity > 0.2 {
			d.h.Transient(0.9, 0.1)
			d.cooldown = 0.12
		}

	case StyleTap:
		d.h.Tap(intensity, 0.5)
		d.cooldown = 0.05*(1-intensity*0.3) + 0.03

	case StyleBuzzPulse:
		if intensity > 0.25 {
			duration := 0.05 + intensity*0.1
			d.h.Buzz(intensity*0.8, 0.25, duration)
			// Let the buzz finish plus a small gap.
			d.cooldown = duration + 0.05
		}

	case StyleSelection:
		if intensity > 0.15 {
			d.h.Selection()
			d.cooldown = 0.06
		}
	}
}

// Offset returns the current drag offset from the origin.
func (d *DragSpring) Offset() Vec2 { return d.offset }

// Position returns origin plus offset, for placing the visual.
func (d *DragSpring) Position() Vec2 { return d.origin.Add(d.offset) }

// Origin returns the rest position.
func (d *DragSpring) Origin() Vec2 { return d.origin }

// Scale returns the current press-scale animation value.
func (d *DragSpring) Scale() float64 { return d.scale }

// Velocity returns the latest pointer velocity in simulation units.
func (d *DragSpring) Velocity() Vec2 { return d.velocity }

// Interacting reports whether the spring is mid-drag.
func (d *DragSpring) Interacting() bool { return d.dragging }

// Pressed reports whether the spring is pressed.
func (d *DragSpring) Pressed() bool { return d.pressed }

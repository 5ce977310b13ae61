package fidget

import "math"

// pageGeometry converts classifier screen coordinates into page-local
// simulation space (origin bottom-left, Y up) for a toy's hit testing.
type pageGeometry struct {
	pageSize     Vec2
	displayScale float64
}

func newPageGeometry(pageSize Vec2, displayScale float64) pageGeometry {
	if displayScale <= 0 {
		displayScale = 1
	}
	return pageGeometry{pageSize: pageSize, displayScale: displayScale}
}

// toScene maps a screen-space pointer position into page space.
func (g pageGeometry) toScene(p Vec2) Vec2 {
	return Vec2{
		X: p.X * g.displayScale,
		Y: g.pageSize.Y - p.Y*g.displayScale,
	}
}

// --- ShakerToy ---

// ShakerToy is the maracas page: a tilt-driven particle shaker whose
// collisions turn into haptic rattle.
type ShakerToy struct {
	toyBase
	sim    *Shaker
	mapper *CollisionHaptics
	tilt   TiltSource
}

// NewShakerToy creates the maracas toy. The container is sized from the
// page width the way the visual layer draws it.
func NewShakerToy(pageSize Vec2, tilt TiltSource, h *Haptics) *ShakerToy {
	containerRadius := pageSize.X * 0.38
	return &ShakerToy{
		toyBase: toyBase{name: "shaker"},
		sim: NewShaker(ShakerConfig{
			ContainerRadius: containerRadius,
			ParticleRadius:  pageSize.X * 0.025,
		}),
		mapper: NewCollisionHaptics(h),
		tilt:   tilt,
	}
}

// Sim exposes the particle simulation for rendering.
func (t *ShakerToy) Sim() *Shaker { return t.sim }

// SetActive resets stale motion when the page becomes centered.
func (t *ShakerToy) SetActive(active bool) {
	t.toyBase.SetActive(active)
	if active {
		t.sim.Reset()
		t.mapper.Reset()
	}
}

// Update steps the particle physics and feeds collisions to the mapper.
func (t *ShakerToy) Update(dt float64) {
	if !t.active {
		return
	}
	stats := t.sim.Step(dt, t.tilt)
	if stats.Any() {
		t.mapper.Update(dt, stats)
	}
}

// --- ThrottleToy ---

// ThrottleToy is the car page: gear buttons and a pedal feeding the
// Engine state machine. Button handling polls the classifier each frame
// rather than registering callbacks, so all state transitions happen in
// one place.
type ThrottleToy struct {
	toyBase
	geom   pageGeometry
	engine *Engine
	input  *Classifier

	pedal     Rect
	shiftUp   Rect
	shiftDown Rect

	wasDown bool
}

// NewThrottleToy creates the throttle toy with its controls laid out
// relative to the page size.
func NewThrottleToy(pageSize Vec2, input *Classifier, h *Haptics, displayScale float64) *ThrottleToy {
	centerX := pageSize.X / 2
	controlsY := pageSize.Y * 0.30
	buttonW := pageSize.X * 0.18
	buttonH := pageSize.Y * 0.08
	buttonSpacing := pageSize.X * 0.25
	pedalW := pageSize.X * 0.35
	pedalH := pageSize.Y * 0.12

	return &ThrottleToy{
		toyBase: toyBase{name: "throttle"},
		geom:    newPageGeometry(pageSize, displayScale),
		engine:  NewEngine(h),
		input:   input,
		pedal: Rect{
			X: centerX - pedalW/2, Y: pageSize.Y*0.10 - pedalH/2,
			Width: pedalW, Height: pedalH,
		},
		shiftDown: Rect{
			X: centerX - buttonSpacing - buttonW/2, Y: controlsY - buttonH/2,
			Width: buttonW, Height: buttonH,
		},
		shiftUp: Rect{
			X: centerX + buttonSpacing - buttonW/2, Y: controlsY - buttonH/2,
			Width: buttonW, Height: buttonH,
		},
	}
}

// Engine exposes the gear/RPM state machine for rendering.
func (t *ThrottleToy) Engine() *Engine { return t.engine }

// Pedal returns the throttle pedal's hit area in page space.
func (t *ThrottleToy) Pedal() Rect { return t.pedal }

// ShiftUpButton returns the upshift button's hit area in page space.
func (t *ThrottleToy) ShiftUpButton() Rect { return t.shiftUp }

// ShiftDownButton returns the downshift button's hit area in page space.
func (t *ThrottleToy) ShiftDownButton() Rect { return t.shiftDown }

// SetActive pauses and resumes the continuous rumble with page changes.
func (t *ThrottleToy) SetActive(active bool) {
	t.toyBase.SetActive(active)
	e := t.engine
	if !active && e.Running() {
		e.Player().Pause()
	} else if active && e.Running() && !e.Stalled() {
		e.Player().Resume()
	}
}

// Update polls the classifier for button presses and integrates the
// engine.
func (t *ThrottleToy) Update(dt float64) {
	if !t.active {
		if t.engine.Throttling() {
			// Page swapped out mid-press; the release lands off-page and
			// would otherwise leave the throttle latched.
			t.engine.SetThrottle(false)
		}
		t.interacting = false
		t.wasDown = false
		return
	}

	down := t.input.PointerDown()
	pos := t.geom.toScene(t.input.Position())

	if down && !t.wasDown {
		switch {
		case t.pedal.Contains(pos):
			t.engine.SetThrottle(true)
			t.interacting = true
		case t.shiftUp.Contains(pos):
			t.engine.ShiftUp()
		case t.shiftDown.Contains(pos):
			t.engine.ShiftDown()
		}
	} else if !down && t.wasDown && t.engine.Throttling() {
		t.engine.SetThrottle(false)
		t.interacting = false
	}
	t.wasDown = down

	t.engine.Update(dt)
}

// --- SpringGridToy ---

// SpringButton is one squishy button in a SpringGridToy.
type SpringButton struct {
	Hit    Circle
	Spring *DragSpring
}

// SpringGridToy is a page of draggable spring buttons, each with its own
// haptic style.
type SpringGridToy struct {
	toyBase
	geom    pageGeometry
	input   *Classifier
	buttons []SpringButton
	held    int // index of the pressed button, -1 when none
	wasDown bool
}

// NewSpringGridToy lays out one spring button per style in a grid
// centered on the page.
func NewSpringGridToy(pageSize Vec2, input *Classifier, h *Haptics, displayScale float64) *SpringGridToy {
	styles := []HapticStyle{
		StyleRattle, StyleBuzz, StyleTick,
		StyleThump, StyleTap, StyleBuzzPulse,
	}

	radius := pageSize.X * 0.10
	spacing := radius*2 + pageSize.X*0.06
	cols := 3
	rows := (len(styles) + cols - 1) / cols
	originX := pageSize.X/2 - spacing*float64(cols-1)/2
	originY := pageSize.Y/2 + spacing*float64(rows-1)/2

	t := &SpringGridToy{
		toyBase: toyBase{name: "springs"},
		geom:    newPageGeometry(pageSize, displayScale),
		input:   input,
		held:    -1,
	}
	for i, style := range styles {
		center := Vec2{
			X: originX + spacing*float64(i%cols),
			Y: originY - spacing*float64(i/cols),
		}
		t.buttons = append(t.buttons, SpringButton{
			Hit: Circle{Center: center, Radius: radius},
			Spring: NewDragSpring(center, SpringConfig{
				Style:           style,
				MaxDragDistance: 12,
				SpringK:         0.4,
				DisplayScale:    displayScale,
			}, h),
		})
	}
	return t
}

// Buttons exposes the buttons for rendering.
func (t *SpringGridToy) Buttons() []SpringButton { return t.buttons }

// Update routes press/drag/release edges to the hit button and steps
// every spring's animation.
func (t *SpringGridToy) Update(dt float64) {
	pointer := t.input.Position()

	if t.active {
		down := t.input.PointerDown()

		if down && !t.wasDown {
			scene := t.geom.toScene(pointer)
			for i := range t.buttons {
				if t.buttons[i].Hit.Contains(scene) {
					t.buttons[i].Spring.Press(pointer)
					t.held = i
					t.interacting = true
					break
				}
			}
		} else if !down && t.wasDown && t.held >= 0 {
			t.buttons[t.held].Spring.Release()
			t.held = -1
			t.interacting = false
		}
		t.wasDown = down
	} else if t.held >= 0 {
		// Page swapped out mid-press.
		t.buttons[t.held].Spring.Release()
		t.held = -1
		t.interacting = false
		t.wasDown = false
	}

	for i := range t.buttons {
		t.buttons[i].Spring.Update(dt, pointer)
	}
}

// --- SoundboardToy ---

// SoundboardToy is a 3x3 pad grid. Each pad plays an opaque named haptic
// pattern file plus an optional audio hook; pads with no pattern fall
// back to a plain tap pulse.
type SoundboardToy struct {
	toyBase
	geom    pageGeometry
	input   *Classifier
	h       *Haptics
	pads    []Circle
	files   []string
	onPlay  func(pad int)
	wasDown bool
}

// NewSoundboardToy creates the soundboard. files assigns pattern names to
// pads by index; missing entries fall back to the tap pulse. onPlay, if
// non-nil, is called with the pad index so the host can trigger audio.
func NewSoundboardToy(pageSize Vec2, input *Classifier, h *Haptics, displayScale float64, files []string, onPlay func(pad int)) *SoundboardToy {
	radius := pageSize.X * 0.10
	spacing := radius*2 + pageSize.X*0.04
	originX := pageSize.X/2 - spacing
	originY := pageSize.Y/2 + spacing

	t := &SoundboardToy{
		toyBase: toyBase{name: "soundboard"},
		geom:    newPageGeometry(pageSize, displayScale),
		input:   input,
		h:       h,
		files:   files,
		onPlay:  onPlay,
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			t.pads = append(t.pads, Circle{
				Center: Vec2{
					X: originX + spacing*float64(col),
					Y: originY - spacing*float64(row),
				},
				Radius: radius,
			})
		}
	}
	return t
}

// Pads exposes the pad hit areas for rendering.
func (t *SoundboardToy) Pads() []Circle { return t.pads }

// Update fires the hit pad's pattern on each press edge.
func (t *SoundboardToy) Update(dt float64) {
	if !t.active {
		t.wasDown = false
		return
	}

	down := t.input.PointerDown()
	if down && !t.wasDown {
		scene := t.geom.toScene(t.input.Position())
		for i, pad := range t.pads {
			if !pad.Contains(scene) {
				continue
			}
			if !t.playPattern(i) {
				t.h.Tap(0.8, 0.5)
			}
			if t.onPlay != nil {
				t.onPlay(i)
			}
			break
		}
	}
	t.wasDown = down
}

func (t *SoundboardToy) playPattern(pad int) bool {
	if pad >= len(t.files) || t.files[pad] == "" {
		return false
	}
	return t.h.PlayPattern(t.files[pad])
}

// --- SteeringToy ---

// Steering wheel constants.
const (
	// steeringTickAngle is the detent spacing in radians.
	steeringTickAngle = 0.175
	// steeringSmoothing is the per-frame low-pass factor on the tilt
	// angle.
	steeringSmoothing = 0.2
)

// SteeringToy is a tilt-driven steering wheel that clicks through detents
// as the device rotates.
type SteeringToy struct {
	toyBase
	tilt TiltSource
	h    *Haptics

	angle    float64
	smoothed float64
	lastTick int
}

// NewSteeringToy creates the steering toy.
func NewSteeringToy(tilt TiltSource, h *Haptics) *SteeringToy {
	return &SteeringToy{
		toyBase: toyBase{name: "steering"},
		tilt:    tilt,
		h:       h,
	}
}

// Angle returns the smoothed wheel angle for rendering.
func (t *SteeringToy) Angle() float64 { return t.angle }

// SetActive recenters the wheel when the page becomes active.
func (t *SteeringToy) SetActive(active bool) {
	t.toyBase.SetActive(active)
	if active {
		t.angle = 0
		t.smoothed = 0
		t.lastTick = 0
	}
}

// Update reads the tilt, low-passes the wheel angle, and ticks on detent
// crossings.
func (t *SteeringToy) Update(dt float64) {
	if !t.active || t.tilt == nil {
		return
	}
	accel, ok := t.tilt.Acceleration()
	if !ok {
		return
	}

	// Screen-up reads near zero; tilting rotates the wheel through the
	// full circle.
	rawAngle := math.Atan2(accel.X, -accel.Y)

	diff := wrapAngle(rawAngle - t.smoothed)
	t.smoothed = wrapAngle(t.smoothed + diff*steeringSmoothing)
	t.angle = t.smoothed

	tick := int(math.Floor(t.angle / steeringTickAngle))
	if tick != t.lastTick {
		t.h.Transient(0.6, 0.85)
		t.lastTick = tick
	}
}

// wrapAngle normalizes a to (-π, π].
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

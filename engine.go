package fidget

import "math"

// Gear identifies a drivetrain gear.
type Gear int

// Gear values. Reverse redlines highest on purpose; it is the toy's party
// trick, not a modeling claim.
const (
	GearNeutral Gear = iota
	Gear1
	Gear2
	Gear3
	Gear4
	Gear5
	GearReverse
)

// MaxRPM returns the redline for the gear.
func (g Gear) MaxRPM() float64 {
	switch g {
	case Gear1:
		return 5000
	case Gear2:
		return 7000
	case Gear3:
		return 10000
	case Gear4:
		return 12500
	case Gear5:
		return 15000
	case GearReverse:
		return 20000
	default:
		return 3000
	}
}

// String returns the dashboard label for the gear.
func (g Gear) String() string {
	switch g {
	case Gear1:
		return "1"
	case Gear2:
		return "2"
	case Gear3:
		return "3"
	case Gear4:
		return "4"
	case Gear5:
		return "5"
	case GearReverse:
		return "R"
	default:
		return "N"
	}
}

// Engine timing constants, RPM per second unless noted.
const (
	// IdleRPM is the floor the engine settles to in neutral and the
	// minimum RPM after a shift.
	IdleRPM = 500.0
	// AccelRate is the RPM gain while throttling.
	AccelRate = 2500.0
	// DecelRate is the RPM loss while coasting.
	DecelRate = 2000.0
	// ShiftWindowPercent: an upshift succeeds only within the top 15% of
	// the current gear's redline; below that the engine stalls.
	ShiftWindowPercent = 0.15
	// limiterPeriod is the gap between rev-limiter bursts, seconds.
	limiterPeriod = 0.08
)

// gearProfile shapes the continuous engine rumble for one gear. Intensity
// and sharpness interpolate from base to max over the RPM ratio and are
// floored so vibration never fully dies while in gear — higher gears feel
// loaded even at low RPM.
type gearProfile struct {
	floorIntensity float64
	floorSharpness float64
	baseIntensity  float64
	maxIntensity   float64
	baseSharpness  float64
	maxSharpness   float64
}

var gearProfiles = map[Gear]gearProfile{
	GearNeutral: {0.15, 0.10, 0.30, 0.50, 0.15, 0.25},
	// Deep diesel-truck rumble.
	Gear1: {0.25, 0.08, 0.50, 0.85, 0.10, 0.25},
	Gear2: {0.35, 0.12, 0.55, 0.90, 0.20, 0.35},
	Gear3: {0.40, 0.18, 0.60, 0.95, 0.30, 0.50},
	Gear4: {0.45, 0.25, 0.65, 1.00, 0.45, 0.70},
	// Screaming top gear.
	Gear5:       {0.50, 0.35, 0.70, 1.00, 0.60, 0.90},
	GearReverse: {0.20, 0.10, 0.40, 0.60, 0.15, 0.30},
}

// Engine is the gear/RPM state machine behind the throttle toy. Its
// continuous rumble runs on a persistent Player; discrete events (shifts,
// stalls, the rev limiter) fire one-shot transients.
//
// Invariants: rpm stays within [0, gear redline]; a stalled engine is
// stopped, in neutral, at zero RPM.
type Engine struct {
	gear       Gear
	rpm        float64
	throttling bool
	running    bool
	stalled    bool

	limiterTimer float64

	h      *Haptics
	player *Player
}

// NewEngine creates a stopped engine in neutral. The continuous rumble
// player is allocated from h.
func NewEngine(h *Haptics) *Engine {
	return &Engine{h: h, player: h.NewPlayer()}
}

// Gear returns the current gear.
func (e *Engine) Gear() Gear { return e.gear }

// RPM returns the current engine speed.
func (e *Engine) RPM() float64 { return e.rpm }

// RPMRatio returns rpm over the current gear's redline, in [0, 1].
func (e *Engine) RPMRatio() float64 {
	max := e.gear.MaxRPM()
	if max <= 0 {
		return 0
	}
	return clamp01(e.rpm / max)
}

// Running reports whether the engine is running.
func (e *Engine) Running() bool { return e.running }

// Stalled reports whether the engine is stalled.
func (e *Engine) Stalled() bool { return e.stalled }

// Throttling reports whether the throttle is held.
func (e *Engine) Throttling() bool { return e.throttling }

// Player returns the continuous rumble player, e.g. for pausing while the
// toy is off screen.
func (e *Engine) Player() *Player { return e.player }

// InShiftWindow reports whether the RPM is high enough for an upshift
// from the current gear to succeed.
func (e *Engine) InShiftWindow() bool {
	return e.rpm >= e.gear.MaxRPM()*(1-ShiftWindowPercent)
}

// SetThrottle presses or releases the throttle. Pressing a stalled or
// stopped engine restarts it; pressing a running one kicks a short
// acceleration pulse, releasing lets it settle.
func (e *Engine) SetThrottle(down bool) {
	was := e.throttling
	e.throttling = down

	if down {
		switch {
		case e.stalled:
			e.stalled = false
			e.Start()
		case !e.running:
			e.Start()
		case !was:
			e.h.Transient(0.6, 0.25)
		}
	} else if was && e.running {
		e.h.Transient(0.4, 0.15)
	}
}

// Start starts the engine: starter-motor buzz, the catch, a settle, then
// the looping idle rumble.
func (e *Engine) Start() {
	if e.running {
		return
	}

	e.running = true
	e.stalled = false
	e.rpm = IdleRPM

	e.h.Buzz(0.6, 0.4, 0.15)
	e.h.Transient(0.7, 0.3)
	e.h.Buzz(0.5, 0.2, 0.1)

	e.player.SetLooping(true)
	e.player.Start(0.5, 0.15)
}

// Stop stops the engine and the continuous rumble.
func (e *Engine) Stop() {
	if !e.running {
		return
	}
	e.running = false
	e.rpm = 0
	e.player.Stop()
}

// ShiftUp attempts an upshift.
//
// Neutral always engages first gear. From gears 1-4 the shift succeeds
// only inside the shift window; below it the engine stalls. Fifth and
// reverse reject the shift with a limiter hit and change nothing.
func (e *Engine) ShiftUp() {
	switch e.gear {
	case GearNeutral:
		// Clunk into first, reseeding RPM at idle.
		e.gear = Gear1
		e.rpm = math.Max(e.rpm, IdleRPM)
		e.h.Heavy()
		e.h.Buzz(0.7, 0.2, 0.1)
		e.updateContinuous()
		return

	case Gear5, GearReverse:
		e.h.Heavy()
		e.h.Transient(0.8, 0.9)
		return
	}

	if !e.InShiftWindow() {
		// Shifted too early.
		e.Stall()
		return
	}

	newGear := e.gear + 1
	e.h.Heavy()
	switch newGear {
	case Gear2:
		e.h.Buzz(0.8, 0.25, 0.08)
	case Gear3:
		e.h.Transient(0.9, 0.4)
	case Gear4:
		e.h.Transient(0.95, 0.5)
	case Gear5:
		// Into top gear, aggressive snap.
		e.h.Transient(1.0, 0.7)
		e.h.Buzz(0.6, 0.6, 0.05)
	}

	e.gear = newGear
	e.rpm = math.Max(newGear.MaxRPM()*0.4, IdleRPM)
	e.updateContinuous()
}

// ShiftDown attempts a downshift. Gears 2-5 drop a gear with an
// engine-braking RPM spike; first pops into neutral; neutral bumps
// softly; reverse disengages to neutral.
func (e *Engine) ShiftDown() {
	switch e.gear {
	case GearNeutral:
		e.h.Transient(0.4, 0.2)
		return

	case Gear1:
		e.gear = GearNeutral
		e.h.Medium()
		e.h.Transient(0.5, 0.3)
		e.updateContinuous()
		return

	case GearReverse:
		e.gear = GearNeutral
		e.h.Medium()
		e.updateContinuous()
		return
	}

	e.h.Heavy()
	e.h.Transient(0.85, 0.35)
	e.h.Buzz(0.75, 0.3, 0.12)

	e.gear--
	e.rpm = math.Max(math.Min(e.rpm*1.3, e.gear.MaxRPM()*0.85), IdleRPM)
	e.updateContinuous()
}

// Stall kills the engine: state resets to neutral at zero RPM and the
// four-call failure sequence plays in order (impact, grind, dying
// transient, final shudder). The sequence must stay ordered; collapsing
// it into one pulse loses the violence of the failure.
func (e *Engine) Stall() {
	e.stalled = true
	e.running = false
	e.rpm = 0
	e.gear = GearNeutral
	e.limiterTimer = 0

	e.player.Stop()

	e.h.Heavy()
	e.h.Buzz(1.0, 0.5, 0.15)
	e.h.Transient(0.9, 0.3)
	e.h.Buzz(0.7, 0.2, 0.2)
}

// Update integrates RPM over dt seconds and refreshes the continuous
// rumble. No-op unless running and not stalled.
func (e *Engine) Update(dt float64) {
	if !e.running || e.stalled {
		return
	}

	max := e.gear.MaxRPM()

	if e.throttling {
		e.rpm += AccelRate * dt

		if e.rpm >= max {
			e.rpm = max

			// Bouncing off the rev limiter: rapid sharp bursts, distinct
			// from the RPM-driven rumble.
			e.limiterTimer -= dt
			if e.limiterTimer <= 0 {
				e.h.Transient(0.9, 0.8)
				e.limiterTimer = limiterPeriod
			}
		} else {
			e.limiterTimer = 0
		}
	} else {
		e.rpm -= DecelRate * dt
		e.limiterTimer = 0

		if e.gear == GearNeutral {
			// The engine never stalls in neutral.
			e.rpm = math.Max(e.rpm, IdleRPM)
		} else if e.rpm <= 0 {
			e.Stall()
			return
		}
	}

	e.updateContinuous()
}

// updateContinuous maps the current gear and RPM ratio onto the rumble
// player's intensity and sharpness.
func (e *Engine) updateContinuous() {
	if !e.running {
		return
	}

	prof := gearProfiles[e.gear]
	ratio := e.RPMRatio()

	intensity := lerp(prof.baseIntensity, prof.maxIntensity, ratio)
	sharpness := lerp(prof.baseSharpness, prof.maxSharpness, ratio)

	// Floor: vibration never fully stops while in gear.
	intensity = math.Max(intensity, prof.floorIntensity)
	sharpness = math.Max(sharpness, prof.floorSharpness)

	// Extra punch throttling hard near the top of the band.
	if e.throttling && ratio > 0.7 {
		intensity = math.Min(1, intensity+0.1)
	}
	if ratio > 0.9 {
		intensity = 1
	}

	e.player.SetIntensity(intensity)
	e.player.SetSharpness(sharpness)
}

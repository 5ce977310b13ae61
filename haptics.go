package fidget

// Device is the platform haptic engine. Implementations are fire-and-forget:
// every method must return immediately and never block the simulation step.
// Intensity and sharpness arrive pre-clamped to [0, 1] — the Haptics wrapper
// clamps on behalf of all callers, so implementations may trust the range.
type Device interface {
	// PlayTransient plays a single brief pulse.
	PlayTransient(intensity, sharpness float64)
	// PlayContinuous plays a sustained vibration for duration seconds.
	PlayContinuous(intensity, sharpness, duration float64)
	// PlayPattern plays an opaque named pattern file. Reports whether the
	// pattern was found and started.
	PlayPattern(name string) bool
	// NewPlayer allocates a persistent, modulatable player.
	NewPlayer() DevicePlayer
}

// DevicePlayer is a persistent haptic player owned by the platform engine.
// A player outlives individual pulses: it can be started, paused, resumed,
// and have its intensity and sharpness modulated while running.
type DevicePlayer interface {
	Start(intensity, sharpness float64)
	Stop()
	Pause()
	Resume()
	SetIntensity(intensity float64)
	SetSharpness(sharpness float64)
	SetLooping(loop bool)
	IsPlaying() bool
}

// Haptics wraps a Device with defensive [0, 1] clamping and the named
// preset pulses the toys share. A nil Device degrades to a silent no-op,
// so construction never fails on hardware without haptic support.
type Haptics struct {
	dev Device
}

// NewHaptics creates a Haptics front end for dev. Passing nil yields a
// fully functional no-op instance.
func NewHaptics(dev Device) *Haptics {
	if dev == nil {
		dev = nullDevice{}
	}
	return &Haptics{dev: dev}
}

// Transient plays a single sharp pulse. Values are clamped to [0, 1].
func (h *Haptics) Transient(intensity, sharpness float64) {
	h.dev.PlayTransient(clamp01(intensity), clamp01(sharpness))
}

// Buzz plays a short continuous vibration for duration seconds.
func (h *Haptics) Buzz(intensity, sharpness, duration float64) {
	if duration <= 0 {
		return
	}
	h.dev.PlayContinuous(clamp01(intensity), clamp01(sharpness), duration)
}

// PlayPattern plays a named pattern file, treated as an opaque blob keyed
// by filename. Reports whether the device knew the pattern.
func (h *Haptics) PlayPattern(name string) bool {
	return h.dev.PlayPattern(name)
}

// Light plays a light impact pulse.
func (h *Haptics) Light() {
	h.dev.PlayTransient(0.3, 0.5)
}

// Medium plays a medium impact pulse.
func (h *Haptics) Medium() {
	h.dev.PlayTransient(0.55, 0.5)
}

// Heavy plays a heavy impact pulse.
func (h *Haptics) Heavy() {
	h.dev.PlayTransient(0.9, 0.5)
}

// Selection plays the short high-sharpness tick used for discrete
// selection changes (detents, page flips).
func (h *Haptics) Selection() {
	h.dev.PlayTransient(0.4, 0.8)
}

// Tap plays a parameterized tap pulse. Distinct from Transient in intent
// only: taps acknowledge input, transients express simulation events.
func (h *Haptics) Tap(intensity, sharpness float64) {
	h.dev.PlayTransient(clamp01(intensity), clamp01(sharpness))
}

// NewPlayer allocates a persistent player with clamped setters.
func (h *Haptics) NewPlayer() *Player {
	return &Player{p: h.dev.NewPlayer()}
}

// Player is the clamping front end for a persistent DevicePlayer. It also
// tracks the last written parameters so simulation code can read back what
// it asked for without querying the device.
type Player struct {
	p         DevicePlayer
	intensity float64
	sharpness float64
	looping   bool
	playing   bool
}

// Start begins playback at the given parameters.
func (p *Player) Start(intensity, sharpness float64) {
	p.intensity = clamp01(intensity)
	p.sharpness = clamp01(sharpness)
	p.playing = true
	p.p.Start(p.intensity, p.sharpness)
}

// Stop halts playback.
func (p *Player) Stop() {
	p.playing = false
	p.p.Stop()
}

// Pause suspends playback, keeping parameters for Resume.
func (p *Player) Pause() {
	p.playing = false
	p.p.Pause()
}

// Resume continues playback after Pause.
func (p *Player) Resume() {
	p.playing = true
	p.p.Resume()
}

// SetIntensity updates the playback intensity, clamped to [0, 1].
func (p *Player) SetIntensity(intensity float64) {
	p.intensity = clamp01(intensity)
	p.p.SetIntensity(p.intensity)
}

// SetSharpness updates the playback sharpness, clamped to [0, 1].
func (p *Player) SetSharpness(sharpness float64) {
	p.sharpness = clamp01(sharpness)
	p.p.SetSharpness(p.sharpness)
}

// SetLooping sets whether playback restarts when the pattern ends.
func (p *Player) SetLooping(loop bool) {
	p.looping = loop
	p.p.SetLooping(loop)
}

// Intensity returns the last intensity written to the device.
func (p *Player) Intensity() float64 { return p.intensity }

// Sharpness returns the last sharpness written to the device.
func (p *Player) Sharpness() float64 { return p.sharpness }

// Looping reports whether looping is enabled.
func (p *Player) Looping() bool { return p.looping }

// IsPlaying reports whether the player is currently running.
func (p *Player) IsPlaying() bool { return p.playing }

// nullDevice silently discards all haptic output. Used when the platform
// has no haptic support.
type nullDevice struct{}

func (nullDevice) PlayTransient(intensity, sharpness float64)            {}
func (nullDevice) PlayContinuous(intensity, sharpness, duration float64) {}
func (nullDevice) PlayPattern(name string) bool                          { return false }
func (nullDevice) NewPlayer() DevicePlayer                               { return nullPlayer{} }

type nullPlayer struct{}

func (nullPlayer) Start(intensity, sharpness float64) {}
func (nullPlayer) Stop()                              {}
func (nullPlayer) Pause()                             {}
func (nullPlayer) Resume()                            {}
func (nullPlayer) SetIntensity(intensity float64)     {}
func (nullPlayer) SetSharpness(sharpness float64)     {}
func (nullPlayer) SetLooping(loop bool)               {}
func (nullPlayer) IsPlaying() bool                    { return false }

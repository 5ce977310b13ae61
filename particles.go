package fidget

import (
	"math"
	"math/rand/v2"
)

// Shaker physics constants. Velocities are in scene units per second.
const (
	// GravityScale converts the tilt vector into acceleration.
	GravityScale = 2000.0
	// ShakeThreshold is the minimum change in acceleration magnitude
	// between frames to count as a shake.
	ShakeThreshold = 0.05
	// ShakeEnergy scales the randomized impulse injected per particle
	// while shaking.
	ShakeEnergy = 80000.0
	// VelocityDecay is the per-frame multiplicative damping. Deliberately
	// not dt-scaled: the feel was tuned against a fixed 60fps step and the
	// collision haptic thresholds depend on it.
	VelocityDecay = 0.90
	// SleepVelocity is the speed below which a particle is stopped dead
	// to prevent drift.
	SleepVelocity = 10.0
	// WallRestitution is the energy retained bouncing off the container.
	WallRestitution = 0.8
	// BallRestitution is the energy retained in particle-particle hits.
	BallRestitution = 0.8

	// resolutionPasses is the fixed collision-resolution budget per step.
	// Four passes keeps interpenetration invisible at 30 particles; the
	// loop does not iterate to convergence.
	resolutionPasses = 4
	// collisionMargin keeps resolved particles slightly apart from walls
	// and each other.
	collisionMargin = 0.5
)

// Particle is a single ball in the shaker. Position is relative to the
// container center.
type Particle struct {
	Position Vec2
	Velocity Vec2
	Radius   float64
}

// CollisionStats aggregates one physics step's collision events. Reset at
// the start of each step, consumed by CollisionHaptics, then discarded.
type CollisionStats struct {
	WallCount     int
	WallIntensity float64
	PairCount     int
	PairIntensity float64
}

// Any reports whether the step produced any recordable collision.
func (s CollisionStats) Any() bool {
	return s.WallCount > 0 || s.PairCount > 0
}

// ShakerConfig controls the particle count and container geometry.
// Zero-value fields fall back to defaults.
type ShakerConfig struct {
	// NumParticles is the fixed particle count. Defaults to 30.
	NumParticles int
	// ContainerRadius is the outer radius of the circular container.
	// Defaults to 150.
	ContainerRadius float64
	// ParticleRadius is the radius of every particle. Defaults to
	// ContainerRadius/12.5.
	ParticleRadius float64
	// BorderWidth is the container wall thickness; half of it eats into
	// the usable interior. Defaults to 6.
	BorderWidth float64
}

// Shaker is an N-body particle simulation confined to a circular
// container, driven by device tilt and shake impulses. The particle count
// is fixed at construction; particles are mutated every step and never
// destroyed.
type Shaker struct {
	particles   []Particle
	maxDistance float64
	prevAccel   Vec3
}

// NewShaker creates a shaker with particles seeded along the bottom arc
// of the container.
func NewShaker(cfg ShakerConfig) *Shaker {
	if cfg.NumParticles <= 0 {
		cfg.NumParticles = 30
	}
	if cfg.ContainerRadius <= 0 {
		cfg.ContainerRadius = 150
	}
	if cfg.ParticleRadius <= 0 {
		cfg.ParticleRadius = cfg.ContainerRadius / 12.5
	}
	if cfg.BorderWidth <= 0 {
		cfg.BorderWidth = 6
	}

	s := &Shaker{
		particles:   make([]Particle, cfg.NumParticles),
		maxDistance: cfg.ContainerRadius - cfg.ParticleRadius - cfg.BorderWidth/2,
	}
	for i := range s.particles {
		s.particles[i].Radius = cfg.ParticleRadius
	}
	s.seed()
	return s
}

// seed piles the particles along the bottom arc of the container.
func (s *Shaker) seed() {
	for i := range s.particles {
		p := &s.particles[i]
		x := (rand.Float64() - 0.5) * s.maxDistance * 1.5
		y := -s.maxDistance*0.7 + rand.Float64()*s.maxDistance*0.3
		p.Position = Vec2{x, y}
		if d := p.Position.Len(); d > s.maxDistance {
			p.Position = p.Position.Normalized().Scale(s.maxDistance)
		}
		p.Velocity = Vec2{}
	}
}

// Reset zeroes all velocities and the shake-detection baseline. Called
// when the toy becomes the active page so stale motion doesn't carry over.
func (s *Shaker) Reset() {
	for i := range s.particles {
		s.particles[i].Velocity = Vec2{}
	}
	s.prevAccel = Vec3{}
}

// Particles returns the live particle slice. Callers must treat it as
// read-only; the renderer uses it to place visuals.
func (s *Shaker) Particles() []Particle {
	return s.particles
}

// MaxDistance returns the maximum distance a particle center may be from
// the container center.
func (s *Shaker) MaxDistance() float64 {
	return s.maxDistance
}

// Step advances the simulation by dt seconds using the given tilt reading
// and returns the step's collision statistics. When the tilt source is
// unavailable the step is a no-op.
func (s *Shaker) Step(dt float64, tilt TiltSource) CollisionStats {
	var stats CollisionStats
	if tilt == nil {
		return stats
	}
	accel, ok := tilt.Acceleration()
	if !ok {
		return stats
	}

	accelDelta := accel.Sub(s.prevAccel)
	shaking := accelDelta.Len() > ShakeThreshold
	s.prevAccel = accel

	gravity := accel.XY()
	shakeDir := accelDelta.XY()

	for i := range s.particles {
		p := &s.particles[i]

		p.Velocity = p.Velocity.Add(gravity.Scale(GravityScale * dt))

		if shaking {
			// Randomize the impulse direction a little per particle so
			// the whole pile doesn't move in lockstep.
			angle := (rand.Float64() - 0.5) * 0.6
			p.Velocity = p.Velocity.Add(shakeDir.Rotated(angle).Scale(ShakeEnergy * dt))
		}

		p.Velocity = p.Velocity.Scale(VelocityDecay)

		if p.Velocity.Len() < SleepVelocity && !shaking {
			p.Velocity = Vec2{}
		}

		p.Position = p.Position.Add(p.Velocity.Scale(dt))
	}

	// Fixed pass budget: walls first, then pairs, each pass.
	for pass := 0; pass < resolutionPasses; pass++ {
		for i := range s.particles {
			s.resolveWall(i, &stats)
		}
		for i := 0; i < len(s.particles); i++ {
			for j := i + 1; j < len(s.particles); j++ {
				s.resolvePair(i, j, &stats)
			}
		}
	}

	return stats
}

// resolveWall clamps particle i inside the container and reflects any
// velocity component heading into the wall.
func (s *Shaker) resolveWall(i int, stats *CollisionStats) {
	p := &s.particles[i]
	dist := p.Position.Len()
	safeDistance := s.maxDistance - collisionMargin
	if dist <= safeDistance {
		return
	}

	normal := p.Position.Scale(1 / dist)
	p.Position = normal.Scale(safeDistance)

	velIntoWall := p.Velocity.Dot(normal)
	totalSpeed := p.Velocity.Len()

	if velIntoWall > 0 {
		p.Velocity = p.Velocity.Sub(normal.Scale(velIntoWall * (1 + WallRestitution)))

		// High-velocity filter: resting contact against the wall should
		// not spam the haptic mapper.
		if velIntoWall > 150 && totalSpeed > 200 {
			stats.WallIntensity += velIntoWall
			stats.WallCount++
		}
	}
}

// resolvePair separates overlapping particles i and j and exchanges the
// elastic impulse along the contact normal.
func (s *Shaker) resolvePair(i, j int, stats *CollisionStats) {
	a := &s.particles[i]
	b := &s.particles[j]

	delta := b.Position.Sub(a.Position)
	dist := delta.Len()
	safeMinDist := a.Radius + b.Radius + collisionMargin

	if dist >= safeMinDist || dist <= 0.001 {
		return
	}

	normal := delta.Scale(1 / dist)
	overlap := safeMinDist - dist

	// Push slightly more than half the overlap each so the pair lands
	// strictly apart.
	separation := normal.Scale(overlap * 0.52)
	a.Position = a.Position.Sub(separation)
	b.Position = b.Position.Add(separation)

	speedA := a.Velocity.Len()
	speedB := b.Velocity.Len()
	maxSpeed := math.Max(speedA, speedB)

	// Near-resting pairs only need the positional correction.
	if maxSpeed <= SleepVelocity*3 {
		return
	}

	relVel := b.Velocity.Sub(a.Velocity)
	velAlongNormal := relVel.Dot(normal)
	if velAlongNormal >= 0 {
		return
	}

	impulse := -(1 + BallRestitution) * velAlongNormal / 2
	impulseVec := normal.Scale(impulse)
	a.Velocity = a.Velocity.Sub(impulseVec)
	b.Velocity = b.Velocity.Add(impulseVec)

	force := math.Abs(velAlongNormal)
	if force > 200 && maxSpeed > 150 {
		stats.PairIntensity += force
		stats.PairCount++
	}
}

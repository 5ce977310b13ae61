package fidget

import "math"

// HapticCooldown is the minimum gap between wall-collision pulses, in
// seconds. Particle-particle pulses use twice this.
const HapticCooldown = 0.008

// CollisionHaptics maps one step's CollisionStats to at most one haptic
// transient. Wall impacts are the primary perceptual signal: they take
// priority over particle-particle contact and recover faster (the shared
// cooldown is reset to HapticCooldown for walls, double for pairs).
type CollisionHaptics struct {
	h        *Haptics
	cooldown float64
}

// NewCollisionHaptics creates a mapper emitting through h.
func NewCollisionHaptics(h *Haptics) *CollisionHaptics {
	return &CollisionHaptics{h: h}
}

// Reset clears the cooldown. Called when the owning toy becomes active.
func (c *CollisionHaptics) Reset() {
	c.cooldown = 0
}

// Update consumes the frame's collision statistics and emits at most one
// transient. Call once per physics step that produced collisions.
func (c *CollisionHaptics) Update(dt float64, stats CollisionStats) {
	c.cooldown -= dt
	if c.cooldown > 0 {
		return
	}

	if stats.WallCount > 0 {
		avgForce := stats.WallIntensity / float64(stats.WallCount)

		// Two bands: hard hits (>500) scale into the upper range, the
		// rest scale over [150, 500].
		var forceScale float64
		if avgForce > 500 {
			forceScale = 0.6 + math.Min((avgForce-500)/500, 0.4)
		} else {
			forceScale = 0.2 + (avgForce-150)/350*0.4
		}

		countScale := math.Min(float64(stats.WallCount)/6, 1)
		intensity := math.Min(forceScale*(0.7+countScale*0.3), 1)

		c.h.Transient(intensity, 0.95)
		c.cooldown = HapticCooldown
		return
	}

	if stats.PairCount > 0 {
		avgForce := stats.PairIntensity / float64(stats.PairCount)
		if avgForce <= 300 {
			return
		}

		countScale := math.Min(float64(stats.PairCount)/10, 1)
		intensity := math.Min(0.15+countScale*0.15, 0.35)

		c.h.Transient(intensity, 0.5)
		c.cooldown = HapticCooldown * 2
	}
}

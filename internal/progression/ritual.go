package progression

import (
	"github.com/vovakirdan/soundless/internal/core"
)

// ritualEpsilon absorbs float drift from summing many small dt values, so a
// run of exactly Required seconds completes on its last tick.
const ritualEpsilon = 1e-9

// Ritual is the silence challenge: stay inside the zone with noise below
// Threshold for Required uninterrupted seconds.
type Ritual struct {
	Anchor    core.Vec2
	Radius    float64 // 0 means anywhere
	Threshold float64
	Required  float64
	Elapsed   float64
	Active    bool
}

// Contains reports whether p is inside the zone.
func (r *Ritual) Contains(p core.Vec2) bool {
	if r.Radius <= 0 {
		return true
	}
	return core.Dist(r.Anchor, p) < r.Radius
}

// Tick advances the silence timer and reports completion.
// Noise at or above the threshold resets the timer to exactly 0. Outside the
// zone the timer holds: it neither accumulates nor resets.
func (r *Ritual) Tick(dt, noise float64, player core.Vec2) bool {
	if !r.Active || !r.Contains(player) {
		return false
	}
	if noise >= r.Threshold {
		r.Elapsed = 0
		return false
	}
	if dt > 0 {
		r.Elapsed += dt
	}
	if r.Elapsed >= r.Required-ritualEpsilon {
		r.Elapsed = r.Required
		return true
	}
	return false
}

// Progress returns completion in [0, 1].
func (r *Ritual) Progress() float64 {
	if r.Required <= 0 {
		return 1
	}
	return core.ClampF(r.Elapsed/r.Required, 0, 1)
}

// Remaining returns the seconds of silence still needed.
func (r *Ritual) Remaining() float64 {
	return max(r.Required-r.Elapsed, 0)
}

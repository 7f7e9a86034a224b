// Package noise integrates player movement and external sound into a single
// noise level in [0, 100].
package noise

import (
	"math"

	"github.com/vovakirdan/soundless/internal/config"
)

// MaxLevel is the ceiling of the noise scale.
const MaxLevel = 100.0

// Sample is everything the model needs to know about one tick.
type Sample struct {
	Moving    bool
	Running   bool
	Sustained float64 // Seconds of uninterrupted movement, including this tick
	Amplitude float64 // External sound level in [0, 100]; added unscaled
	Stage     config.StageConfig
}

// Model holds the current noise level. It is not safe for concurrent use;
// the engine owns it and mutates it once per tick.
type Model struct {
	cfg   config.NoiseConfig
	ref   float64
	level float64
}

// New creates a silent model. referenceRate is the frame rate the per-frame
// rates in cfg were tuned for.
func New(cfg config.NoiseConfig, referenceRate float64) *Model {
	if referenceRate <= 0 {
		referenceRate = 60
	}
	return &Model{cfg: cfg, ref: referenceRate}
}

// Level returns the current noise level.
func (m *Model) Level() float64 {
	return m.level
}

// Reset silences the model.
func (m *Model) Reset() {
	m.level = 0
}

// Set forces the level, clamped to [0, MaxLevel].
func (m *Model) Set(level float64) {
	m.level = clamp(level)
}

// Input returns the raw per-frame input a sample contributes before
// integration.
func (m *Model) Input(s Sample) float64 {
	var input float64
	if s.Moving {
		if s.Running {
			input = m.cfg.RunningRate
		} else {
			input = s.Stage.MovementGain
		}
		if s.Stage.MoveLimit > 0 && s.Sustained > s.Stage.MoveLimit {
			input += m.cfg.SpikePenalty
		}
	}
	if a := s.Amplitude; a > 0 && !math.IsNaN(a) {
		input += math.Min(a, MaxLevel)
	}
	return input
}

// Tick advances the model by dt seconds and returns the new level.
// Movement and sound raise the level; only complete stillness lets it decay.
func (m *Model) Tick(dt float64, s Sample) float64 {
	if dt <= 0 || math.IsNaN(dt) {
		return m.level
	}
	frames := dt * m.ref

	input := m.Input(s)
	switch {
	case input > 0:
		m.level = clamp(m.level + input*m.cfg.Integration*frames)
	case !s.Moving:
		m.level = clamp(m.level - m.cfg.DecayRate*frames)
	}
	return m.level
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > MaxLevel {
		return MaxLevel
	}
	return v
}

package config

import "math"

// DifficultyManager scales threat parameters based on stage or elapsed ticks.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty scaling.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progresses during a run.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0).
// A disabled manager always reports 0 so base tuning applies unchanged.
func (d *DifficultyManager) Level(stage int, ticks int) float64 {
	if !d.cfg.Enabled {
		return 0
	}
	if d.cfg.Progression.Type == "none" {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "stage":
		progress = float64(stage) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// ThreatSpeed returns the scaled pursuit speed.
func (d *DifficultyManager) ThreatSpeed(base float64, stage, ticks int) float64 {
	level := d.Level(stage, ticks)
	return base * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// SpawnChance returns the scaled per-frame spawn probability, kept in [0, 1].
func (d *DifficultyManager) SpawnChance(base float64, stage, ticks int) float64 {
	level := d.Level(stage, ticks)
	return clampF(base*(1.0+level*d.cfg.Scaling.SpawnMultiplier), 0.0, 1.0)
}

// Barrier returns the noise barrier lowered by difficulty, never below 0.
func (d *DifficultyManager) Barrier(base float64, stage, ticks int) float64 {
	level := d.Level(stage, ticks)
	return math.Max(0, base-level*d.cfg.Scaling.BarrierReduction)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

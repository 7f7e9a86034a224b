// Package config provides YAML-based configuration loading and difficulty
// management for the simulation. Every tunable constant of both rule sets
// lives here so the engine itself carries no magic numbers.
package config

// Mode selects which rule set the engine runs.
type Mode string

const (
	// ModeStages is the sequential-stage, single-ghost rule set.
	ModeStages Mode = "stages"
	// ModeSwarm is the scattered-checkpoint, multi-stalker rule set.
	ModeSwarm Mode = "swarm"
)

// SoundlessConfig contains every tunable of the simulation.
type SoundlessConfig struct {
	Mode        Mode             `yaml:"mode"`
	World       WorldConfig      `yaml:"world"`
	Player      PlayerConfig     `yaml:"player"`
	Noise       NoiseConfig      `yaml:"noise"`
	Stages      []StageConfig    `yaml:"stages"`
	Ghost       GhostConfig      `yaml:"ghost"`
	Swarm       SwarmConfig      `yaml:"swarm"`
	Lantern     LanternConfig    `yaml:"lantern"`
	Checkpoints CheckpointConfig `yaml:"checkpoints"`
	Ritual      RitualConfig     `yaml:"ritual"`
	Audio       AudioConfig      `yaml:"audio"`
	Timing      TimingConfig     `yaml:"timing"`
	Alerts      AlertConfig      `yaml:"alerts"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
}

// WorldConfig defines the play area in world units.
type WorldConfig struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// PlayerConfig defines player movement. Speeds are world units per
// reference frame.
type PlayerConfig struct {
	Radius    float64 `yaml:"radius"`
	WalkSpeed float64 `yaml:"walk_speed"`
	RunSpeed  float64 `yaml:"run_speed"`
	DeadZone  float64 `yaml:"dead_zone"` // Pointer distance below which the player stops
	StartX    float64 `yaml:"start_x"`   // Fraction of world width
	StartY    float64 `yaml:"start_y"`   // Fraction of world height
}

// NoiseConfig defines the noise integrator. Rates are per reference frame.
type NoiseConfig struct {
	RunningRate  float64 `yaml:"running_rate"`
	SpikePenalty float64 `yaml:"spike_penalty"` // Added once movement exceeds the stage limit
	Integration  float64 `yaml:"integration"`
	DecayRate    float64 `yaml:"decay_rate"`
}

// StageConfig defines one sequential stage. In swarm mode only the first
// entry is used, for its movement gain.
type StageConfig struct {
	Name         string  `yaml:"name"`
	Flavor       string  `yaml:"flavor"`
	MovementGain float64 `yaml:"movement_gain"`
	MoveLimit    float64 `yaml:"move_limit"` // Seconds of continuous movement before penalties; 0 disables
	NoiseBarrier float64 `yaml:"noise_barrier"`
	SpawnChance  float64 `yaml:"spawn_chance"` // Per reference frame
	ThreatSpeed  float64 `yaml:"threat_speed"`
}

// GhostConfig defines the single pursuer of the stage rule set.
type GhostConfig struct {
	Radius        float64 `yaml:"radius"`
	SpawnDistance float64 `yaml:"spawn_distance"`
	FadeIn        float64 `yaml:"fade_in"`
	FadeOut       float64 `yaml:"fade_out"`
	VisibleAt     float64 `yaml:"visible_at"` // Opacity above which contact is lethal
}

// SwarmConfig defines the stalkers of the swarm rule set.
type SwarmConfig struct {
	Radius            float64 `yaml:"radius"`
	SpawnThreshold    float64 `yaml:"spawn_threshold"`
	SpawnChance       float64 `yaml:"spawn_chance"`
	SpawnMargin       float64 `yaml:"spawn_margin"` // Distance outside the world edge
	ChaseThreshold    float64 `yaml:"chase_threshold"`
	BaseSpeed         float64 `yaml:"base_speed"`
	NoiseSpeedDivisor float64 `yaml:"noise_speed_divisor"`
	StrengthDivisor   float64 `yaml:"strength_divisor"`
	WhisperStrength   float64 `yaml:"whisper_strength"`
	Jitter            float64 `yaml:"jitter"`
	MaxThreats        int     `yaml:"max_threats"` // 0 means unlimited
}

// LanternConfig places the per-stage lantern and its door.
type LanternConfig struct {
	PickupRadius float64 `yaml:"pickup_radius"`
	DoorMargin   float64 `yaml:"door_margin"`
	XFraction    float64 `yaml:"x_fraction"`
	YFraction    float64 `yaml:"y_fraction"`
	XSpread      float64 `yaml:"x_spread"`
	YSpread      float64 `yaml:"y_spread"`
}

// CheckpointConfig defines the scattered objectives of the swarm rule set.
type CheckpointConfig struct {
	Count  int     `yaml:"count"`
	Target int     `yaml:"target"`
	Radius float64 `yaml:"radius"`
	Margin float64 `yaml:"margin"`
}

// RitualConfig defines the silence challenge.
type RitualConfig struct {
	XFraction float64 `yaml:"x_fraction"`
	YFraction float64 `yaml:"y_fraction"`
	Radius    float64 `yaml:"radius"`    // 0 means the whole world counts
	Threshold float64 `yaml:"threshold"` // Noise must stay strictly below
	Required  float64 `yaml:"required"`  // Seconds of uninterrupted silence
}

// AudioConfig defines the external amplitude adapter.
type AudioConfig struct {
	Enabled     bool    `yaml:"enabled"`
	WhisperLow  float64 `yaml:"whisper_low"`
	WhisperHigh float64 `yaml:"whisper_high"`
	Gain        float64 `yaml:"gain"`
	WindowMS    int     `yaml:"window_ms"`
}

// TimingConfig defines the clock the per-frame rates are expressed in.
type TimingConfig struct {
	ReferenceRate   float64 `yaml:"reference_rate"`   // Frames per second the rates were tuned at
	TransitionDelay float64 `yaml:"transition_delay"` // Seconds spent fading between stages
}

// AlertConfig defines HUD alert thresholds and the heartbeat cue.
type AlertConfig struct {
	Noisy           float64 `yaml:"noisy"`
	Danger          float64 `yaml:"danger"` // 0 disables the danger band
	Heartbeat       float64 `yaml:"heartbeat"`
	HeartbeatChance float64 `yaml:"heartbeat_chance"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = base tuning, 1.0 = hardest
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "stage", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Stage index or ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes at level 1.0.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Added to threat speed multiplier
	SpawnMultiplier  float64 `yaml:"spawn_multiplier"`  // Added to spawn chance multiplier
	BarrierReduction float64 `yaml:"barrier_reduction"` // Subtracted from the noise barrier
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string onto a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *SoundlessConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}

// FinalStage returns the index of the last configured stage.
func (c SoundlessConfig) FinalStage() int {
	return max(len(c.Stages)-1, 0)
}

// Stage returns the stage config at index i, clamped to the valid range.
func (c SoundlessConfig) Stage(i int) StageConfig {
	if len(c.Stages) == 0 {
		return StageConfig{}
	}
	if i < 0 {
		i = 0
	}
	if i >= len(c.Stages) {
		i = len(c.Stages) - 1
	}
	return c.Stages[i]
}

package config

import (
	_ "embed"
)

//go:embed defaults/stages.yaml
var defaultStagesYAML []byte

//go:embed defaults/swarm.yaml
var defaultSwarmYAML []byte

// Default returns the hardcoded configuration for a mode.
// It mirrors the embedded YAML and is used when the embed cannot be parsed.
func Default(mode Mode) SoundlessConfig {
	if mode == ModeSwarm {
		return DefaultSwarmConfig()
	}
	return DefaultStagesConfig()
}

// DefaultStagesConfig returns the default sequential-stage configuration.
func DefaultStagesConfig() SoundlessConfig {
	cfg := sharedDefaults()
	cfg.Mode = ModeStages
	cfg.Player.StartX = 0.1
	cfg.Player.StartY = 0.5
	cfg.Noise = NoiseConfig{
		RunningRate:  1.8,
		SpikePenalty: 2.5,
		Integration:  1.0,
		DecayRate:    1.5,
	}
	cfg.Stages = []StageConfig{
		{
			Name:         "THE DARK FOREST",
			Flavor:       "Find the lantern to unlock the path.",
			MovementGain: 0.2,
			MoveLimit:    6,
			NoiseBarrier: 70,
			SpawnChance:  0.03,
			ThreatSpeed:  5.5,
		},
		{
			Name:         "THE WHISPERING TUNNEL",
			Flavor:       "Voices in the dark... stay silent.",
			MovementGain: 0.45,
			MoveLimit:    4.5,
			NoiseBarrier: 55,
			SpawnChance:  0.07,
			ThreatSpeed:  7,
		},
		{
			Name:         "THE CABIN DOORSTEP",
			Flavor:       "Complete the ritual of silence.",
			MovementGain: 0.7,
			MoveLimit:    3,
			NoiseBarrier: 40,
			SpawnChance:  0.11,
			ThreatSpeed:  8.5,
		},
	}
	cfg.Ritual = RitualConfig{
		XFraction: 0.85,
		YFraction: 0.5,
		Radius:    100,
		Threshold: 10,
		Required:  30,
	}
	cfg.Alerts.Noisy = 40
	cfg.Alerts.Danger = 0
	cfg.Difficulty.Progression.MaxAt = 2
	return cfg
}

// DefaultSwarmConfig returns the default swarm configuration.
func DefaultSwarmConfig() SoundlessConfig {
	cfg := sharedDefaults()
	cfg.Mode = ModeSwarm
	cfg.Player.StartX = 0.5
	cfg.Player.StartY = 0.5
	cfg.Noise = NoiseConfig{
		RunningRate:  40,
		SpikePenalty: 0,
		Integration:  0.1,
		DecayRate:    0.5,
	}
	cfg.Stages = []StageConfig{
		{
			Name:         "THE HOLLOW FIELDS",
			Flavor:       "Five wards are hidden in the dark. Keep your voice down.",
			MovementGain: 5,
			MoveLimit:    0,
			NoiseBarrier: 70,
			SpawnChance:  0.02,
			ThreatSpeed:  0.5,
		},
	}
	cfg.Ritual = RitualConfig{
		XFraction: 0.5,
		YFraction: 0.5,
		Radius:    0,
		Threshold: 5,
		Required:  30,
	}
	cfg.Alerts.Noisy = 30
	cfg.Alerts.Danger = 70
	cfg.Difficulty.Progression.MaxAt = 36000 // 10 minutes at 60fps
	return cfg
}

func sharedDefaults() SoundlessConfig {
	return SoundlessConfig{
		World: WorldConfig{
			Width:  1000,
			Height: 600,
		},
		Player: PlayerConfig{
			Radius:    15,
			WalkSpeed: 2.2,
			RunSpeed:  4.5,
			DeadZone:  5,
		},
		Ghost: GhostConfig{
			Radius:        15,
			SpawnDistance: 500,
			FadeIn:        0.03,
			FadeOut:       0.02,
			VisibleAt:     0.6,
		},
		Swarm: SwarmConfig{
			Radius:            12,
			SpawnThreshold:    70,
			SpawnChance:       0.02,
			SpawnMargin:       50,
			ChaseThreshold:    10,
			BaseSpeed:         0.5,
			NoiseSpeedDivisor: 40,
			StrengthDivisor:   50,
			WhisperStrength:   0.5,
			Jitter:            0.25,
		},
		Lantern: LanternConfig{
			PickupRadius: 60,
			DoorMargin:   20,
			XFraction:    0.6,
			YFraction:    0.5,
			XSpread:      50,
			YSpread:      100,
		},
		Checkpoints: CheckpointConfig{
			Count:  5,
			Target: 5,
			Radius: 20,
			Margin: 50,
		},
		Audio: AudioConfig{
			Enabled:     false,
			WhisperLow:  8,
			WhisperHigh: 25,
			Gain:        1.0,
			WindowMS:    50,
		},
		Timing: TimingConfig{
			ReferenceRate:   60,
			TransitionDelay: 1.0,
		},
		Alerts: AlertConfig{
			Heartbeat:       40,
			HeartbeatChance: 0.1,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type: "none",
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  0.5,
				SpawnMultiplier:  1.0,
				BarrierReduction: 20,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a mode.
func GetDefaultYAML(mode Mode) []byte {
	switch mode {
	case ModeStages:
		return defaultStagesYAML
	case ModeSwarm:
		return defaultSwarmYAML
	default:
		return nil
	}
}

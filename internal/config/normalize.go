package config

import "math"

// Normalize clamps every value into a range the engine can run with.
// Missing or nonsensical values fall back to the defaults of the mode.
func (c *SoundlessConfig) Normalize() {
	if c.Mode != ModeSwarm {
		c.Mode = ModeStages
	}
	def := Default(c.Mode)

	if c.World.Width <= 0 {
		c.World.Width = def.World.Width
	}
	if c.World.Height <= 0 {
		c.World.Height = def.World.Height
	}

	c.Player.Radius = nonNeg(c.Player.Radius)
	c.Player.WalkSpeed = nonNeg(c.Player.WalkSpeed)
	c.Player.RunSpeed = nonNeg(c.Player.RunSpeed)
	c.Player.DeadZone = nonNeg(c.Player.DeadZone)
	c.Player.StartX = clampF(c.Player.StartX, 0, 1)
	c.Player.StartY = clampF(c.Player.StartY, 0, 1)

	c.Noise.RunningRate = nonNeg(c.Noise.RunningRate)
	c.Noise.SpikePenalty = nonNeg(c.Noise.SpikePenalty)
	c.Noise.Integration = nonNeg(c.Noise.Integration)
	c.Noise.DecayRate = nonNeg(c.Noise.DecayRate)

	if len(c.Stages) == 0 {
		c.Stages = def.Stages
	}
	for i := range c.Stages {
		s := &c.Stages[i]
		s.MovementGain = nonNeg(s.MovementGain)
		s.MoveLimit = nonNeg(s.MoveLimit)
		s.NoiseBarrier = clampF(s.NoiseBarrier, 0, 100)
		s.SpawnChance = clampF(s.SpawnChance, 0, 1)
		s.ThreatSpeed = nonNeg(s.ThreatSpeed)
	}

	c.Ghost.Radius = nonNeg(c.Ghost.Radius)
	c.Ghost.SpawnDistance = nonNeg(c.Ghost.SpawnDistance)
	c.Ghost.FadeIn = clampF(c.Ghost.FadeIn, 0, 1)
	c.Ghost.FadeOut = clampF(c.Ghost.FadeOut, 0, 1)
	c.Ghost.VisibleAt = clampF(c.Ghost.VisibleAt, 0, 1)

	c.Swarm.Radius = nonNeg(c.Swarm.Radius)
	c.Swarm.SpawnThreshold = clampF(c.Swarm.SpawnThreshold, 0, 100)
	c.Swarm.SpawnChance = clampF(c.Swarm.SpawnChance, 0, 1)
	c.Swarm.SpawnMargin = nonNeg(c.Swarm.SpawnMargin)
	c.Swarm.ChaseThreshold = clampF(c.Swarm.ChaseThreshold, 0, 100)
	c.Swarm.BaseSpeed = nonNeg(c.Swarm.BaseSpeed)
	if c.Swarm.NoiseSpeedDivisor <= 0 {
		c.Swarm.NoiseSpeedDivisor = def.Swarm.NoiseSpeedDivisor
	}
	if c.Swarm.StrengthDivisor <= 0 {
		c.Swarm.StrengthDivisor = def.Swarm.StrengthDivisor
	}
	c.Swarm.WhisperStrength = nonNeg(c.Swarm.WhisperStrength)
	c.Swarm.Jitter = nonNeg(c.Swarm.Jitter)
	c.Swarm.MaxThreats = max(c.Swarm.MaxThreats, 0)

	c.Lantern.PickupRadius = nonNeg(c.Lantern.PickupRadius)
	c.Lantern.DoorMargin = clampF(c.Lantern.DoorMargin, 0, c.World.Width)
	c.Lantern.XFraction = clampF(c.Lantern.XFraction, 0, 1)
	c.Lantern.YFraction = clampF(c.Lantern.YFraction, 0, 1)
	c.Lantern.XSpread = nonNeg(c.Lantern.XSpread)
	c.Lantern.YSpread = nonNeg(c.Lantern.YSpread)

	c.Checkpoints.Count = max(c.Checkpoints.Count, 1)
	if c.Checkpoints.Target <= 0 || c.Checkpoints.Target > c.Checkpoints.Count {
		c.Checkpoints.Target = c.Checkpoints.Count
	}
	c.Checkpoints.Radius = nonNeg(c.Checkpoints.Radius)
	c.Checkpoints.Margin = clampF(c.Checkpoints.Margin, 0, math.Min(c.World.Width, c.World.Height)/2)

	c.Ritual.XFraction = clampF(c.Ritual.XFraction, 0, 1)
	c.Ritual.YFraction = clampF(c.Ritual.YFraction, 0, 1)
	c.Ritual.Radius = nonNeg(c.Ritual.Radius)
	c.Ritual.Threshold = clampF(c.Ritual.Threshold, 0, 100)
	c.Ritual.Required = nonNeg(c.Ritual.Required)

	c.Audio.WhisperLow = clampF(c.Audio.WhisperLow, 0, 100)
	c.Audio.WhisperHigh = clampF(c.Audio.WhisperHigh, 0, 100)
	if c.Audio.WhisperHigh < c.Audio.WhisperLow {
		c.Audio.WhisperLow, c.Audio.WhisperHigh = c.Audio.WhisperHigh, c.Audio.WhisperLow
	}
	if c.Audio.Gain <= 0 {
		c.Audio.Gain = def.Audio.Gain
	}
	if c.Audio.WindowMS <= 0 {
		c.Audio.WindowMS = def.Audio.WindowMS
	}

	if c.Timing.ReferenceRate <= 0 {
		c.Timing.ReferenceRate = def.Timing.ReferenceRate
	}
	c.Timing.TransitionDelay = nonNeg(c.Timing.TransitionDelay)

	c.Alerts.Noisy = clampF(c.Alerts.Noisy, 0, 100)
	c.Alerts.Danger = clampF(c.Alerts.Danger, 0, 100)
	c.Alerts.Heartbeat = clampF(c.Alerts.Heartbeat, 0, 100)
	c.Alerts.HeartbeatChance = clampF(c.Alerts.HeartbeatChance, 0, 1)

	c.Difficulty.InitialLevel = clampF(c.Difficulty.InitialLevel, 0, 1)
	switch c.Difficulty.Progression.Type {
	case "stage", "time", "none":
	default:
		c.Difficulty.Progression.Type = "none"
	}
}

func nonNeg(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

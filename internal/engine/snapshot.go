package engine

import (
	"github.com/vovakirdan/soundless/internal/config"
	"github.com/vovakirdan/soundless/internal/core"
	"github.com/vovakirdan/soundless/internal/progression"
	"github.com/vovakirdan/soundless/internal/threat"
)

// Input is the player's intent for one tick.
type Input struct {
	Move    core.Vec2 `json:"move"` // Direction intent; any length, zero for none
	Running bool      `json:"running"`
	// Pointer is a world-space target that overrides Move when set.
	Pointer *core.Vec2 `json:"pointer,omitempty"`
	// MicAmplitude overrides the audio adapter for this tick when set.
	MicAmplitude *float64 `json:"mic,omitempty"`
}

// Player is the player's body.
type Player struct {
	Pos       core.Vec2 `json:"pos"`
	Radius    float64   `json:"radius"`
	Angle     float64   `json:"angle"`
	Moving    bool      `json:"moving"`
	Running   bool      `json:"running"`
	Sustained float64   `json:"sustained"` // Seconds of uninterrupted movement
}

// RitualView is the snapshot of the silence challenge.
type RitualView struct {
	Active   bool      `json:"active"`
	Anchor   core.Vec2 `json:"anchor"`
	Radius   float64   `json:"radius"`
	Elapsed  float64   `json:"elapsed"`
	Required float64   `json:"required"`
	Progress float64   `json:"progress"`
}

// Snapshot is the full observable state after a tick.
type Snapshot struct {
	Mode        config.Mode             `json:"mode"`
	World       config.WorldConfig      `json:"world"`
	Tick        int                     `json:"tick"`
	Elapsed     float64                 `json:"elapsed"`
	State       State                   `json:"state"`
	Noise       float64                 `json:"noise"`
	Stage       int                     `json:"stage"`
	StageName   string                  `json:"stage_name"`
	StageFlavor string                  `json:"stage_flavor"`
	Score       int                     `json:"score"`
	Target      int                     `json:"target"`
	Player      Player                  `json:"player"`
	Threats     []threat.Entity         `json:"threats"`
	Objectives  []progression.Objective `json:"objectives"`
	Ritual      RitualView              `json:"ritual"`
	Alert       Alert                   `json:"alert"`
	Whispering  bool                    `json:"whispering"`
}

// Result is what a tick returns.
type Result struct {
	Snapshot Snapshot
	Events   []Event
}

// Stats summarizes a run for logging.
type Stats struct {
	Mode      config.Mode
	State     State
	Stage     int
	Score     int
	Ticks     int
	Elapsed   float64
	PeakNoise float64
}

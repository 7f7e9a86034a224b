// Package progression tracks objectives and the end-game ritual for both
// rule sets.
package progression

import (
	"math/rand"

	"github.com/vovakirdan/soundless/internal/config"
	"github.com/vovakirdan/soundless/internal/core"
)

// ObjectiveKind tags what an objective represents.
type ObjectiveKind string

const (
	KindLantern    ObjectiveKind = "lantern"
	KindDoor       ObjectiveKind = "door"
	KindCheckpoint ObjectiveKind = "checkpoint"
)

// Objective is a collectible or boundary the player works toward.
// Collection is one-way.
type Objective struct {
	ID        int           `json:"id"`
	Kind      ObjectiveKind `json:"kind"`
	Pos       core.Vec2     `json:"pos"`
	Radius    float64       `json:"radius"`
	Collected bool          `json:"collected"`
}

// Update is the per-tick input to a controller.
type Update struct {
	Dt           float64
	Player       core.Vec2
	PlayerRadius float64
	Noise        float64
	Challenge    bool // The silence challenge is running
}

// Result reports progression changes during one tick.
type Result struct {
	Collected      []int
	StageComplete  bool // Door crossed on a non-final stage
	ChallengeReady bool // Conditions to start the silence challenge are met
	RitualComplete bool
}

// Controller is the objective policy of a rule set.
type Controller interface {
	// Reset clears score and lays out the first stage.
	Reset(rng *rand.Rand)
	// EnterStage lays out the given stage.
	EnterStage(stage int, rng *rand.Rand)
	// StartChallenge arms the ritual.
	StartChallenge()
	Update(u Update) Result
	Objectives() []Objective
	Ritual() *Ritual
	Score() int
	Target() int
}

// New returns the controller matching the configured mode.
func New(cfg config.SoundlessConfig) Controller {
	if cfg.Mode == config.ModeSwarm {
		return NewCheckpoints(cfg)
	}
	return NewStages(cfg)
}

func newRitual(cfg config.SoundlessConfig) Ritual {
	return Ritual{
		Anchor:    core.V(cfg.World.Width*cfg.Ritual.XFraction, cfg.World.Height*cfg.Ritual.YFraction),
		Radius:    cfg.Ritual.Radius,
		Threshold: cfg.Ritual.Threshold,
		Required:  cfg.Ritual.Required,
	}
}

// spread returns a uniform offset in [-s, s).
func spread(rng *rand.Rand, s float64) float64 {
	return (rng.Float64() - 0.5) * 2 * s
}

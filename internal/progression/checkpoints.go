package progression

import (
	"math/rand"

	"github.com/vovakirdan/soundless/internal/config"
	"github.com/vovakirdan/soundless/internal/core"
)

// Checkpoints is the scattered-objective policy: collect Target checkpoints
// to summon the silence challenge.
type Checkpoints struct {
	cfg    config.SoundlessConfig
	points []Objective
	ritual Ritual
	score  int
}

// NewCheckpoints creates the controller. Call Reset before use.
func NewCheckpoints(cfg config.SoundlessConfig) *Checkpoints {
	return &Checkpoints{cfg: cfg, ritual: newRitual(cfg)}
}

func (c *Checkpoints) Reset(rng *rand.Rand) {
	c.score = 0
	c.ritual = newRitual(c.cfg)

	cc := c.cfg.Checkpoints
	spanX := c.cfg.World.Width - 2*cc.Margin
	spanY := c.cfg.World.Height - 2*cc.Margin
	c.points = make([]Objective, cc.Count)
	for i := range c.points {
		c.points[i] = Objective{
			ID:     i + 1,
			Kind:   KindCheckpoint,
			Pos:    core.V(cc.Margin+rng.Float64()*spanX, cc.Margin+rng.Float64()*spanY),
			Radius: cc.Radius,
		}
	}
}

// EnterStage is a no-op: the swarm rule set has a single stage.
func (c *Checkpoints) EnterStage(int, *rand.Rand) {}

func (c *Checkpoints) StartChallenge() {
	c.ritual.Elapsed = 0
	c.ritual.Active = true
}

func (c *Checkpoints) Update(u Update) Result {
	var res Result

	for i := range c.points {
		p := &c.points[i]
		if p.Collected || core.Dist(u.Player, p.Pos) >= u.PlayerRadius+p.Radius {
			continue
		}
		p.Collected = true
		c.score++
		res.Collected = append(res.Collected, p.ID)
	}

	if u.Challenge {
		res.RitualComplete = c.ritual.Tick(u.Dt, u.Noise, u.Player)
	} else if c.score >= c.Target() {
		res.ChallengeReady = true
	}
	return res
}

func (c *Checkpoints) Objectives() []Objective {
	out := make([]Objective, len(c.points))
	copy(out, c.points)
	return out
}

func (c *Checkpoints) Ritual() *Ritual { return &c.ritual }
func (c *Checkpoints) Score() int      { return c.score }
func (c *Checkpoints) Target() int     { return c.cfg.Checkpoints.Target }

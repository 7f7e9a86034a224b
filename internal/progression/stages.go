package progression

import (
	"math/rand"

	"github.com/vovakirdan/soundless/internal/config"
	"github.com/vovakirdan/soundless/internal/core"
)

// Stages is the lantern-and-door policy. Every stage hides a lantern; once
// it is collected the door on the right edge opens. The final stage has no
// door and hosts the ritual zone instead.
type Stages struct {
	cfg     config.SoundlessConfig
	stage   int
	lantern Objective
	ritual  Ritual
	score   int
}

// NewStages creates the controller. Call Reset before use.
func NewStages(cfg config.SoundlessConfig) *Stages {
	return &Stages{cfg: cfg, ritual: newRitual(cfg)}
}

func (s *Stages) Reset(rng *rand.Rand) {
	s.score = 0
	s.EnterStage(0, rng)
}

func (s *Stages) EnterStage(stage int, rng *rand.Rand) {
	w, h := s.cfg.World.Width, s.cfg.World.Height
	lc := s.cfg.Lantern

	s.stage = stage
	s.lantern = Objective{
		ID:     stage + 1,
		Kind:   KindLantern,
		Pos:    core.V(w*lc.XFraction+spread(rng, lc.XSpread), h*lc.YFraction+spread(rng, lc.YSpread)),
		Radius: lc.PickupRadius,
	}
	s.ritual = newRitual(s.cfg)
	s.ritual.Active = s.final()
}

// StartChallenge restarts the silence timer. The zone itself is already
// live on the final stage.
func (s *Stages) StartChallenge() {
	s.ritual.Elapsed = 0
	s.ritual.Active = true
}

func (s *Stages) Update(u Update) Result {
	var res Result

	if !s.lantern.Collected && core.Dist(u.Player, s.lantern.Pos) < s.lantern.Radius {
		s.lantern.Collected = true
		s.score++
		res.Collected = append(res.Collected, s.lantern.ID)
	}

	if s.lantern.Collected && !s.final() && u.Player.X > s.doorX() {
		res.StageComplete = true
	}

	if s.ritual.Active {
		if u.Challenge {
			res.RitualComplete = s.ritual.Tick(u.Dt, u.Noise, u.Player)
		} else if s.ritual.Contains(u.Player) {
			res.ChallengeReady = true
		}
	}
	return res
}

func (s *Stages) Objectives() []Objective {
	objs := []Objective{s.lantern}
	if s.lantern.Collected && !s.final() {
		objs = append(objs, Objective{
			ID:   -(s.stage + 1),
			Kind: KindDoor,
			Pos:  core.V(s.doorX(), s.cfg.World.Height/2),
		})
	}
	return objs
}

func (s *Stages) Ritual() *Ritual { return &s.ritual }
func (s *Stages) Score() int      { return s.score }
func (s *Stages) Target() int     { return len(s.cfg.Stages) }

// Stage returns the current stage index.
func (s *Stages) Stage() int { return s.stage }

// Lantern returns the current stage's lantern.
func (s *Stages) Lantern() Objective { return s.lantern }

func (s *Stages) final() bool {
	return s.stage >= s.cfg.FinalStage()
}

func (s *Stages) doorX() float64 {
	return s.cfg.World.Width - s.cfg.Lantern.DoorMargin
}

package threat

import (
	"github.com/vovakirdan/soundless/internal/config"
	"github.com/vovakirdan/soundless/internal/core"
)

// Swarm is the stalker policy: any number of threats that enter from the
// edges while the player is loud and home in while noise stays above the
// chase threshold.
type Swarm struct {
	cfg      config.SwarmConfig
	world    config.WorldConfig
	diff     *config.DifficultyManager
	entities []Entity
	nextID   int
	collided bool
}

// NewSwarm creates an empty swarm.
func NewSwarm(cfg config.SwarmConfig, world config.WorldConfig, diff *config.DifficultyManager) *Swarm {
	return &Swarm{cfg: cfg, world: world, diff: diff}
}

// Clear removes every stalker.
func (s *Swarm) Clear() {
	s.entities = s.entities[:0]
	s.collided = false
}

// Entities returns a copy of the live stalkers.
func (s *Swarm) Entities() []Entity {
	if len(s.entities) == 0 {
		return nil
	}
	out := make([]Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Strength returns the multiplier applied to chase speed.
func (s *Swarm) Strength(noise float64, whispering bool) float64 {
	if whispering {
		return s.cfg.WhisperStrength
	}
	return 1 + noise/s.cfg.StrengthDivisor
}

// Update spawns, moves and collides the stalkers.
func (s *Swarm) Update(ctx Context) Outcome {
	var out Outcome
	if s.collided {
		return out
	}

	threshold := s.diff.Barrier(s.cfg.SpawnThreshold, ctx.Stage, ctx.Ticks)
	if ctx.Noise > threshold && (s.cfg.MaxThreats == 0 || len(s.entities) < s.cfg.MaxThreats) {
		out.Rolled = true
		chance := s.diff.SpawnChance(s.cfg.SpawnChance, ctx.Stage, ctx.Ticks)
		if ctx.Rand.Float64() < FrameChance(chance, ctx.Frames) {
			out.Spawned = append(out.Spawned, s.spawn(ctx))
		}
	}

	chasing := ctx.Noise > s.cfg.ChaseThreshold
	speed := 0.0
	if chasing {
		base := s.cfg.BaseSpeed + ctx.Noise/s.cfg.NoiseSpeedDivisor
		speed = s.diff.ThreatSpeed(base, ctx.Stage, ctx.Ticks) * s.Strength(ctx.Noise, ctx.Whispering)
	}

	for i := range s.entities {
		e := &s.entities[i]
		if chasing {
			e.State = Pursuing
			e.Speed = speed
			e.stepToward(ctx.Player, speed*ctx.Frames)
		} else {
			e.State = Dormant
			e.Speed = 0
			e.Pos.X += (ctx.Rand.Float64() - 0.5) * s.cfg.Jitter * 2 * ctx.Frames
			e.Pos.Y += (ctx.Rand.Float64() - 0.5) * s.cfg.Jitter * 2 * ctx.Frames
		}

		if !out.Collided && e.Touches(ctx.Player, ctx.PlayerRadius) {
			s.collided = true
			out.Collided = true
			out.CollisionID = e.ID
		}
	}
	return out
}

// spawn places a stalker just outside a random edge of the world.
func (s *Swarm) spawn(ctx Context) int {
	w, h, m := s.world.Width, s.world.Height, s.cfg.SpawnMargin

	var pos core.Vec2
	switch ctx.Rand.Intn(4) {
	case 0:
		pos = core.V(ctx.Rand.Float64()*w, -m)
	case 1:
		pos = core.V(ctx.Rand.Float64()*w, h+m)
	case 2:
		pos = core.V(-m, ctx.Rand.Float64()*h)
	default:
		pos = core.V(w+m, ctx.Rand.Float64()*h)
	}

	s.nextID++
	s.entities = append(s.entities, Entity{
		ID:      s.nextID,
		Kind:    KindStalker,
		Pos:     pos,
		Opacity: 1,
		Radius:  s.cfg.Radius,
		Active:  true,
		State:   Dormant,
	})
	return s.nextID
}

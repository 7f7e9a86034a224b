package threat

import (
	"math"

	"github.com/vovakirdan/soundless/internal/config"
	"github.com/vovakirdan/soundless/internal/core"
)

// Ghost is the single pursuer of the stage rule set. It only exists while
// the player keeps moving: stillness fades it back out of the world.
type Ghost struct {
	cfg      config.GhostConfig
	diff     *config.DifficultyManager
	entity   Entity
	nextID   int
	collided bool
}

// NewGhost creates a dormant ghost policy.
func NewGhost(cfg config.GhostConfig, diff *config.DifficultyManager) *Ghost {
	g := &Ghost{cfg: cfg, diff: diff}
	g.Clear()
	return g
}

// Clear returns the ghost to dormant. IDs keep increasing across clears.
func (g *Ghost) Clear() {
	g.entity = Entity{
		Kind:   KindGhost,
		Radius: g.cfg.Radius,
		State:  Dormant,
	}
	g.collided = false
}

// Entities returns the ghost while it is active.
func (g *Ghost) Entities() []Entity {
	if !g.entity.Active {
		return nil
	}
	return []Entity{g.entity}
}

// Update rolls for a spawn and advances an active ghost.
func (g *Ghost) Update(ctx Context) Outcome {
	var out Outcome
	if g.collided {
		return out
	}

	e := &g.entity
	if !e.Active && ctx.Moving && g.triggered(ctx) {
		out.Rolled = true
		chance := g.diff.SpawnChance(ctx.StageCfg.SpawnChance, ctx.Stage, ctx.Ticks)
		if ctx.Rand.Float64() < FrameChance(chance, ctx.Frames) {
			g.spawn(ctx)
			out.Spawned = append(out.Spawned, e.ID)
		}
	}
	if !e.Active {
		return out
	}

	if ctx.Moving {
		e.State = Pursuing
		e.Opacity = math.Min(1, e.Opacity+g.cfg.FadeIn*ctx.Frames)
		e.stepToward(ctx.Player, e.Speed*ctx.Frames)
		if e.Opacity > g.cfg.VisibleAt && e.Touches(ctx.Player, ctx.PlayerRadius) {
			g.collided = true
			out.Collided = true
			out.CollisionID = e.ID
		}
		return out
	}

	e.State = Fading
	e.Opacity -= g.cfg.FadeOut * ctx.Frames
	if e.Opacity <= 0 {
		e.Opacity = 0
		e.Active = false
		e.State = Dormant
	}
	return out
}

// triggered reports whether the player is loud enough, or has been moving
// long enough, to attract the ghost.
func (g *Ghost) triggered(ctx Context) bool {
	barrier := g.diff.Barrier(ctx.StageCfg.NoiseBarrier, ctx.Stage, ctx.Ticks)
	if ctx.Noise > barrier {
		return true
	}
	limit := ctx.StageCfg.MoveLimit
	return limit > 0 && ctx.Sustained > limit
}

func (g *Ghost) spawn(ctx Context) {
	g.nextID++
	angle := ctx.Rand.Float64() * 2 * math.Pi
	g.entity = Entity{
		ID:      g.nextID,
		Kind:    KindGhost,
		Pos:     core.Polar(ctx.Player, angle, g.cfg.SpawnDistance),
		Opacity: 0,
		Speed:   g.diff.ThreatSpeed(ctx.StageCfg.ThreatSpeed, ctx.Stage, ctx.Ticks),
		Radius:  g.cfg.Radius,
		Active:  true,
		State:   Pursuing,
	}
}

package threat

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/soundless/internal/config"
	"github.com/vovakirdan/soundless/internal/core"
)

func newGhost(t *testing.T, mutate func(*config.SoundlessConfig)) (*Ghost, config.SoundlessConfig) {
	t.Helper()
	cfg := config.DefaultStagesConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	return NewGhost(cfg.Ghost, config.NewDifficultyManager(cfg.Difficulty)), cfg
}

func ghostCtx(cfg config.SoundlessConfig, rng *rand.Rand, moving bool) Context {
	return Context{
		Frames:       1,
		StageCfg:     cfg.Stage(0),
		Player:       core.V(500, 300),
		PlayerRadius: cfg.Player.Radius,
		Moving:       moving,
		Rand:         rng,
	}
}

func TestFrameChance(t *testing.T) {
	tests := []struct {
		name      string
		p, frames float64
		want      float64
	}{
		{"zero probability", 0, 1, 0},
		{"certain", 1, 0.5, 1},
		{"one frame", 0.03, 1, 0.03},
		{"two frames", 0.5, 2, 0.75},
		{"no time elapsed", 0.5, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FrameChance(tc.p, tc.frames); math.Abs(got-tc.want) > 1e-12 {
				t.Errorf("FrameChance(%f, %f) = %f, expected %f", tc.p, tc.frames, got, tc.want)
			}
		})
	}
}

func TestGhostNeverRollsWhileStill(t *testing.T) {
	g, cfg := newGhost(t, nil)
	rng := rand.New(rand.NewSource(1))

	ctx := ghostCtx(cfg, rng, false)
	ctx.Noise = 100
	ctx.Sustained = 0
	for i := 0; i < 600; i++ {
		out := g.Update(ctx)
		if out.Rolled || len(out.Spawned) > 0 {
			t.Fatalf("tick %d: still player triggered a spawn roll", i)
		}
	}
	if len(g.Entities()) != 0 {
		t.Error("no ghost should exist")
	}
}

func TestGhostRollsAfterSustainedMovement(t *testing.T) {
	g, cfg := newGhost(t, func(c *config.SoundlessConfig) { c.Stages[0].SpawnChance = 0 })
	ctx := ghostCtx(cfg, rand.New(rand.NewSource(1)), true)

	ctx.Sustained = 5.9
	if out := g.Update(ctx); out.Rolled {
		t.Error("quiet movement inside the limit should not roll")
	}

	ctx.Sustained = 6.05
	if out := g.Update(ctx); !out.Rolled {
		t.Error("movement past the stage limit should roll")
	}

	ctx.Sustained = 0
	ctx.Noise = 71
	if out := g.Update(ctx); !out.Rolled {
		t.Error("noise above the barrier should roll")
	}
}

func TestGhostOpacityLifecycle(t *testing.T) {
	g, cfg := newGhost(t, func(c *config.SoundlessConfig) {
		c.Stages[0].SpawnChance = 1
		c.Stages[0].ThreatSpeed = 0
	})
	ctx := ghostCtx(cfg, rand.New(rand.NewSource(7)), true)
	ctx.Noise = 100

	out := g.Update(ctx)
	if len(out.Spawned) != 1 {
		t.Fatalf("expected a guaranteed spawn, got %+v", out)
	}
	e := g.Entities()[0]
	if d := core.Dist(e.Pos, ctx.Player); math.Abs(d-cfg.Ghost.SpawnDistance) > 1e-9 {
		t.Errorf("spawn distance = %f, expected %f", d, cfg.Ghost.SpawnDistance)
	}

	for i := 0; i < 100; i++ {
		g.Update(ctx)
		if op := g.Entities()[0].Opacity; op < 0 || op > 1 {
			t.Fatalf("opacity %f escaped [0, 1]", op)
		}
	}
	if op := g.Entities()[0].Opacity; op != 1 {
		t.Fatalf("opacity should saturate at 1, got %f", op)
	}

	ctx.Moving = false
	prev := 1.0
	for i := 0; ; i++ {
		g.Update(ctx)
		ents := g.Entities()
		if len(ents) == 0 {
			break
		}
		if ents[0].State != Fading {
			t.Fatalf("still player should fade the ghost, state %v", ents[0].State)
		}
		if ents[0].Opacity >= prev {
			t.Fatalf("opacity should strictly decrease while still: %f -> %f", prev, ents[0].Opacity)
		}
		prev = ents[0].Opacity
		if i > 100 {
			t.Fatal("ghost never faded out")
		}
	}
	if g.entity.Opacity != 0 || g.entity.State != Dormant || g.entity.Active {
		t.Errorf("faded ghost should be dormant at exactly 0, got %+v", g.entity)
	}
}

func TestGhostCollisionFiresOnce(t *testing.T) {
	g, cfg := newGhost(t, func(c *config.SoundlessConfig) {
		c.Stages[0].SpawnChance = 1
		c.Ghost.SpawnDistance = 10
	})
	ctx := ghostCtx(cfg, rand.New(rand.NewSource(3)), true)
	ctx.Noise = 100

	collisions := 0
	firstAt := -1
	for i := 0; i < 200; i++ {
		if out := g.Update(ctx); out.Collided {
			collisions++
			if firstAt < 0 {
				firstAt = i
			}
		}
	}
	if collisions != 1 {
		t.Fatalf("expected exactly one collision, got %d", collisions)
	}
	// Contact is harmless until the ghost is visible enough.
	minTicks := int(cfg.Ghost.VisibleAt / cfg.Ghost.FadeIn)
	if firstAt < minTicks-1 {
		t.Errorf("collision at tick %d, before opacity could pass %f", firstAt, cfg.Ghost.VisibleAt)
	}

	g.Clear()
	if out := g.Update(ctx); len(out.Spawned) != 1 {
		t.Error("Clear should re-arm the ghost")
	}
	if id := g.Entities()[0].ID; id != 2 {
		t.Errorf("ID after clear = %d, expected 2", id)
	}
}

func newSwarm() (*Swarm, config.SoundlessConfig) {
	cfg := config.DefaultSwarmConfig()
	cfg.Swarm.SpawnChance = 1
	return NewSwarm(cfg.Swarm, cfg.World, config.NewDifficultyManager(cfg.Difficulty)), cfg
}

func swarmCtx(cfg config.SoundlessConfig, noise float64) Context {
	return Context{
		Frames:       1,
		StageCfg:     cfg.Stage(0),
		Player:       core.V(cfg.World.Width/2, cfg.World.Height/2),
		PlayerRadius: cfg.Player.Radius,
		Noise:        noise,
		Rand:         rand.New(rand.NewSource(11)),
	}
}

func TestSwarmSpawnGating(t *testing.T) {
	s, cfg := newSwarm()

	if out := s.Update(swarmCtx(cfg, 70)); out.Rolled {
		t.Error("noise at the threshold should not roll")
	}

	ctx := swarmCtx(cfg, 80)
	for i := 0; i < 5; i++ {
		out := s.Update(ctx)
		if !out.Rolled || len(out.Spawned) != 1 {
			t.Fatalf("tick %d: expected a guaranteed spawn, got %+v", i, out)
		}
	}
	for _, e := range s.Entities() {
		outside := e.Pos.X < 0 || e.Pos.Y < 0 || e.Pos.X > cfg.World.Width || e.Pos.Y > cfg.World.Height
		if !outside {
			t.Errorf("stalker %d spawned inside the world at %v", e.ID, e.Pos)
		}
		if e.Kind != KindStalker || e.Opacity != 1 {
			t.Errorf("unexpected stalker %+v", e)
		}
	}
}

func TestSwarmMaxThreats(t *testing.T) {
	s, cfg := newSwarm()
	s.cfg.MaxThreats = 2
	ctx := swarmCtx(cfg, 90)
	for i := 0; i < 10; i++ {
		s.Update(ctx)
	}
	if n := len(s.Entities()); n != 2 {
		t.Errorf("swarm grew to %d, expected cap 2", n)
	}
}

func TestSwarmStrength(t *testing.T) {
	s, _ := newSwarm()

	tests := []struct {
		name       string
		noise      float64
		whispering bool
		want       float64
	}{
		{"silent", 0, false, 1},
		{"loud", 50, false, 2},
		{"whisper overrides noise", 90, true, 0.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.Strength(tc.noise, tc.whispering); got != tc.want {
				t.Errorf("Strength(%f, %v) = %f, expected %f", tc.noise, tc.whispering, got, tc.want)
			}
		})
	}
}

func TestSwarmChaseEndsInSingleCollision(t *testing.T) {
	s, cfg := newSwarm()
	ctx := swarmCtx(cfg, 80)

	collisions := 0
	for i := 0; i < 600; i++ {
		if out := s.Update(ctx); out.Collided {
			collisions++
		}
	}
	if collisions != 1 {
		t.Fatalf("expected exactly one collision, got %d", collisions)
	}

	s.Clear()
	if len(s.Entities()) != 0 {
		t.Error("Clear should remove every stalker")
	}
}

func TestSwarmIdleJitter(t *testing.T) {
	s, cfg := newSwarm()
	s.Update(swarmCtx(cfg, 80))
	before := s.Entities()[0]

	s.cfg.SpawnChance = 0
	s.Update(swarmCtx(cfg, 5))
	after := s.Entities()[0]

	if after.State != Dormant {
		t.Errorf("quiet player should leave stalkers idle, state %v", after.State)
	}
	if math.Abs(after.Pos.X-before.Pos.X) > cfg.Swarm.Jitter || math.Abs(after.Pos.Y-before.Pos.Y) > cfg.Swarm.Jitter {
		t.Errorf("idle step %v -> %v exceeds jitter %f", before.Pos, after.Pos, cfg.Swarm.Jitter)
	}
}

package soundless

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/soundless/internal/config"
	"github.com/vovakirdan/soundless/internal/core"
	"github.com/vovakirdan/soundless/internal/engine"
	"github.com/vovakirdan/soundless/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func frameWith(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestRegisteredVariants(t *testing.T) {
	tests := []struct {
		id   string
		mode config.Mode
	}{
		{IDStages, config.ModeStages},
		{IDSwarm, config.ModeSwarm},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			if !registry.Exists(tc.id) {
				t.Fatalf("variant %q not registered", tc.id)
			}
			g, err := registry.Create(tc.id)
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			sg, ok := g.(*Game)
			if !ok {
				t.Fatalf("Create returned %T", g)
			}
			if sg.Snapshot().Mode != tc.mode {
				t.Errorf("mode = %s, expected %s", sg.Snapshot().Mode, tc.mode)
			}
			if mode, ok := ModeFor(tc.id); !ok || mode != tc.mode {
				t.Errorf("ModeFor(%q) = %s, %v", tc.id, mode, ok)
			}
		})
	}

	if _, ok := ModeFor("flappy"); ok {
		t.Error("unknown variant should not resolve")
	}
}

func TestConfirmLeavesMenu(t *testing.T) {
	g := New(IDStages, "Soundless", config.DefaultStagesConfig())
	g.Reset(testRuntime(1))

	res := g.Step(core.NewInputFrame())
	if res.State.Started || res.State.Phase != "menu" {
		t.Fatalf("game should wait in the menu, got %+v", res.State)
	}

	res = g.Step(frameWith(core.ActionConfirm))
	if !res.State.Started || res.State.Phase != "playing" {
		t.Fatalf("Enter should start the run, got %+v", res.State)
	}
	if g.Snapshot().Tick != 1 {
		t.Errorf("the confirming tick should also advance the engine, tick %d", g.Snapshot().Tick)
	}
}

func TestProjectionRoundTrip(t *testing.T) {
	world := config.WorldConfig{Width: 1000, Height: 600}
	proj := newProjection(80, 24, world)

	for y := proj.field.Y; y < proj.field.Bottom(); y++ {
		for x := proj.field.X; x < proj.field.Right(); x++ {
			gx, gy := proj.toCell(proj.toWorld(x, y))
			if gx != x || gy != y {
				t.Fatalf("cell (%d,%d) projected back to (%d,%d)", x, y, gx, gy)
			}
		}
	}

	// Points outside the world pin to the border of the field.
	x, y := proj.toCell(core.V(-50, 9000))
	if x != proj.field.X || y != proj.field.Bottom()-1 {
		t.Errorf("out-of-world point mapped to (%d,%d)", x, y)
	}
}

func TestPointerMovesPlayer(t *testing.T) {
	g := New(IDStages, "Soundless", config.DefaultStagesConfig())
	g.Reset(testRuntime(1))
	g.Step(frameWith(core.ActionConfirm))
	start := g.Snapshot().Player.Pos

	in := core.NewInputFrame()
	in.SetPointer(70, 12)
	for i := 0; i < 10; i++ {
		g.Step(in)
	}

	p := g.Snapshot().Player
	if !p.Moving || p.Pos.X <= start.X {
		t.Errorf("player should head toward the pointer: %v -> %v", start, p.Pos)
	}
}

func TestRunActionRuns(t *testing.T) {
	g := New(IDStages, "Soundless", config.DefaultStagesConfig())
	g.Reset(testRuntime(1))
	g.Step(frameWith(core.ActionConfirm))

	start := g.Snapshot().Player.Pos
	g.Step(frameWith(core.ActionDown, core.ActionRun))
	p := g.Snapshot().Player
	if moved := p.Pos.Y - start.Y; !p.Running || math.Abs(moved-4.5) > 1e-9 {
		t.Errorf("run should move 4.5 units per frame, moved %f", moved)
	}
}

func TestPauseFreezesEngine(t *testing.T) {
	g := New(IDStages, "Soundless", config.DefaultStagesConfig())
	g.Reset(testRuntime(1))
	g.Step(frameWith(core.ActionConfirm))

	res := g.Step(frameWith(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("P should pause")
	}
	tick := g.Snapshot().Tick
	for i := 0; i < 30; i++ {
		g.Step(frameWith(core.ActionRight))
	}
	if g.Snapshot().Tick != tick {
		t.Error("paused game advanced")
	}

	res = g.Step(frameWith(core.ActionPause))
	if res.State.Paused || g.Snapshot().Tick != tick+1 {
		t.Error("second P should resume and tick")
	}
}

func TestRestartAfterCaught(t *testing.T) {
	cfg := config.DefaultSwarmConfig()
	cfg.Swarm.SpawnThreshold = 0
	cfg.Swarm.SpawnChance = 1

	g := New(IDSwarm, "Swarm", cfg)
	g.Reset(testRuntime(7))
	g.Step(frameWith(core.ActionConfirm))

	var cues []string
	for i := 0; i < 3600 && !g.State().Finished; i++ {
		res := g.Step(frameWith(core.ActionRight, core.ActionRun))
		cues = append(cues, res.Cues...)
	}

	st := g.State()
	if !st.Finished || st.Won {
		t.Fatalf("loud running should be caught, got %+v", st)
	}
	if out := g.Outcome(); out.Result != "caught" || out.Variant != IDSwarm || out.Seed != 7 {
		t.Errorf("unexpected outcome %+v", out)
	}
	if !strings.Contains(strings.Join(cues, ","), "threat_collision,game_over") {
		t.Errorf("cues should end with the collision, got %v", cues[max(len(cues)-3, 0):])
	}

	res := g.Step(frameWith(core.ActionRestart))
	if res.State.Finished || res.State.Phase != "playing" {
		t.Fatalf("R should restart straight into play, got %+v", res.State)
	}
	if g.Snapshot().Tick != 1 || len(g.Snapshot().Threats) != 0 {
		t.Error("restart should discard the previous run")
	}
}

func TestOutcomeBeforeStart(t *testing.T) {
	g := New(IDStages, "Soundless", config.DefaultStagesConfig())
	g.Reset(testRuntime(3))
	if out := g.Outcome(); out.Result != "" {
		t.Errorf("menu run should have no result, got %q", out.Result)
	}

	g.Step(frameWith(core.ActionConfirm))
	if out := g.Outcome(); out.Result != "abandoned" {
		t.Errorf("live run should report abandoned, got %q", out.Result)
	}
}

func TestRender(t *testing.T) {
	g := New(IDStages, "Soundless", config.DefaultStagesConfig())
	g.Reset(testRuntime(1))
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if !strings.Contains(screen.String(), "Press Enter to begin") {
		t.Error("menu overlay missing")
	}

	g.Step(frameWith(core.ActionConfirm))
	g.Render(screen)

	hud := screen.Row(0)
	for _, want := range []string{"THE DARK FOREST", "DORMANT", "NOISE"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}
	if !strings.Contains(screen.Row(HUDRows), "LANTERNS 0/3") {
		t.Errorf("status line missing: %q", screen.Row(HUDRows))
	}

	proj := newProjection(80, 24, g.Snapshot().World)
	x, y := proj.toCell(g.Snapshot().Player.Pos)
	if screen.Get(x, y) != PlayerChar {
		t.Errorf("player not drawn at (%d,%d)", x, y)
	}
	lx, ly := proj.toCell(g.Snapshot().Objectives[0].Pos)
	if screen.Get(lx, ly) != LanternChar {
		t.Errorf("lantern not drawn at (%d,%d)", lx, ly)
	}
}

func TestRenderSmallScreen(t *testing.T) {
	g := New(IDSwarm, "Swarm", config.DefaultSwarmConfig())
	g.Reset(testRuntime(1))
	g.Step(frameWith(core.ActionConfirm))

	// Must not panic on degenerate sizes.
	for _, size := range [][2]int{{0, 0}, {1, 1}, {3, 2}, {10, 4}} {
		g.Render(core.NewScreen(size[0], size[1]))
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 600)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i == 0:
			inputs[i].Set(core.ActionConfirm)
		case i%100 < 60:
			inputs[i].Set(core.ActionRight)
			inputs[i].Set(core.ActionDown)
		case i%100 < 70:
			inputs[i].SetPointer(5, 5)
		}
	}

	run := func() engine.Snapshot {
		g := New(IDSwarm, "Swarm", config.DefaultSwarmConfig())
		g.Reset(testRuntime(12345))
		for _, in := range inputs {
			g.Step(in)
		}
		return g.Snapshot()
	}

	s1, s2 := run(), run()
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("Determinism failed: snapshots differ.\nRun1=%+v\nRun2=%+v", s1, s2)
	}
}

func TestAdvanceWithWorldInput(t *testing.T) {
	g, err := Create(IDStages)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := Create("missing"); err == nil {
		t.Error("unknown variant should fail")
	}

	g.Reset(testRuntime(11))
	if g.Restart() {
		t.Error("Restart outside a terminal state should do nothing")
	}
	if !g.Start() || g.Start() {
		t.Fatal("Start should only succeed from the menu")
	}

	x := g.Snapshot().Player.Pos.X
	var res engine.Result
	for i := 0; i < 10; i++ {
		res = g.Advance(engine.Input{Move: core.Vec2{X: 1}})
	}
	if res.Snapshot.Tick != 10 || res.Snapshot.Player.Pos.X <= x {
		t.Errorf("advance should walk right, tick %d x %.2f -> %.2f", res.Snapshot.Tick, x, res.Snapshot.Player.Pos.X)
	}

	run := g.Outcome().Run("ana")
	if run.Variant != IDStages || run.Player != "ana" || run.Seed != 11 || run.Result != "abandoned" {
		t.Errorf("unexpected run %+v", run)
	}
}

// Package soundless adapts the engine to the arcade host interface.
// It maps held actions and pointer clicks onto engine input, projects the
// world onto a cell screen, and reports the outcome of each run.
package soundless

import (
	"fmt"
	"time"

	"github.com/vovakirdan/soundless/internal/config"
	"github.com/vovakirdan/soundless/internal/core"
	"github.com/vovakirdan/soundless/internal/engine"
	"github.com/vovakirdan/soundless/internal/registry"
	"github.com/vovakirdan/soundless/internal/storage"
)

// Variant IDs registered by this package.
const (
	IDStages = "soundless"
	IDSwarm  = "soundless_swarm"
)

// Game is one playable variant backed by an engine.
type Game struct {
	id     string
	title  string
	cfg    config.SoundlessConfig
	opts   []engine.Option
	eng    *engine.Engine
	rc     core.RuntimeConfig
	seed   int64
	paused bool
	last   engine.Result
}

// New creates a variant with the given config. Options are applied after the
// seed from the runtime config, so WithRand overrides it.
func New(id, title string, cfg config.SoundlessConfig, opts ...engine.Option) *Game {
	g := &Game{id: id, title: title, cfg: cfg, opts: opts}
	g.Reset(core.DefaultConfig())
	return g
}

// ModeFor returns the rule set behind a registered variant ID.
func ModeFor(id string) (config.Mode, bool) {
	switch id {
	case IDStages:
		return config.ModeStages, true
	case IDSwarm:
		return config.ModeSwarm, true
	}
	return "", false
}

// TitleFor returns the display name of a variant ID.
func TitleFor(id string) string {
	if id == IDSwarm {
		return "Soundless: The Hollow Fields"
	}
	return "Soundless"
}

// Create builds a registered variant with its default config.
func Create(id string) (*Game, error) {
	g, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	sg, ok := g.(*Game)
	if !ok {
		return nil, fmt.Errorf("soundless: variant %q is not a soundless game", id)
	}
	return sg, nil
}

func (g *Game) ID() string    { return g.id }
func (g *Game) Title() string { return g.title }

// Reset builds a fresh engine. A zero seed picks one from the clock.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rc = rc
	g.seed = rc.Seed
	if g.seed == 0 {
		g.seed = time.Now().UnixNano()
	}

	opts := append([]engine.Option{engine.WithSeed(g.seed)}, g.opts...)
	g.eng = engine.New(g.cfg, opts...)
	g.paused = false
	g.last = engine.Result{Snapshot: g.eng.Snapshot()}
}

// restart begins a new run straight away. A fixed seed advances by one so
// the new run is still reproducible from its recorded seed.
func (g *Game) restart() {
	rc := g.rc
	if rc.Seed != 0 {
		rc.Seed = g.seed + 1
	}
	g.Reset(rc)
	g.eng.Start()
}

// Start leaves the menu. It reports false outside the menu.
func (g *Game) Start() bool {
	return g.eng.Start()
}

// Restart begins a new run from a terminal state. It reports false while a
// run is still going.
func (g *Game) Restart() bool {
	if !g.eng.State().Terminal() {
		return false
	}
	g.restart()
	return true
}

// Resize changes the screen the world is projected onto. The run goes on.
func (g *Game) Resize(w, h int) {
	g.rc.ScreenW = w
	g.rc.ScreenH = h
}

// Step advances the engine by one host tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	state := g.eng.State()

	if in.Has(core.ActionConfirm) && state == engine.StateMenu {
		g.eng.Start()
	}
	if in.Has(core.ActionRestart) && state.Terminal() {
		g.restart()
	}
	if in.Has(core.ActionPause) && g.eng.State() != engine.StateMenu && !g.eng.State().Terminal() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.last = g.eng.Tick(g.rc.TickSeconds(), g.input(in))

	var cues []string
	for _, ev := range g.last.Events {
		cues = append(cues, ev.Name())
	}
	return core.StepResult{State: g.State(), Cues: cues}
}

// Advance ticks the engine with world-space input, for hosts that do not
// draw cells. Pausing does not apply.
func (g *Game) Advance(in engine.Input) engine.Result {
	g.last = g.eng.Tick(g.rc.TickSeconds(), in)
	return g.last
}

// input translates held actions into engine input. A pointer cell is
// projected back into world space.
func (g *Game) input(in core.InputFrame) engine.Input {
	out := engine.Input{
		Move:    in.Direction(),
		Running: in.Has(core.ActionRun),
	}
	if in.HasPointer {
		p := newProjection(g.rc.ScreenW, g.rc.ScreenH, g.cfg.World).toWorld(in.PointerX, in.PointerY)
		out.Pointer = &p
	}
	return out
}

// State returns the host-facing summary.
func (g *Game) State() core.GameState {
	s := g.eng.State()
	return core.GameState{
		Phase:    s.String(),
		Score:    g.eng.Snapshot().Score,
		Started:  s != engine.StateMenu,
		Finished: s.Terminal(),
		Won:      s == engine.StateWin,
		Paused:   g.paused,
	}
}

// Snapshot returns the state after the last tick.
func (g *Game) Snapshot() engine.Snapshot {
	return g.eng.Snapshot()
}

// Events returns the events of the last tick.
func (g *Game) Events() []engine.Event {
	return g.last.Events
}

// OnEvent subscribes to engine events. Subscriptions do not survive Reset
// or a restart.
func (g *Game) OnEvent(fn func(engine.Event)) {
	g.eng.OnEvent(fn)
}

// Outcome describes a run for the history log.
type Outcome struct {
	Variant   string
	Seed      int64
	Result    string // "win", "caught" or "abandoned"
	Stage     int
	Score     int
	Duration  float64 // Simulated seconds
	PeakNoise float64
}

// Outcome reports the run so far. Runs that never left the menu report an
// empty result.
func (g *Game) Outcome() Outcome {
	st := g.eng.Stats()

	var result string
	switch st.State {
	case engine.StateWin:
		result = storage.ResultWin
	case engine.StateGameOver:
		result = storage.ResultCaught
	case engine.StateMenu:
	default:
		result = storage.ResultAbandoned
	}

	return Outcome{
		Variant:   g.id,
		Seed:      g.seed,
		Result:    result,
		Stage:     st.Stage,
		Score:     st.Score,
		Duration:  st.Elapsed,
		PeakNoise: st.PeakNoise,
	}
}

// Run converts the outcome into a run log entry.
func (o Outcome) Run(player string) storage.Run {
	return storage.Run{
		Variant:   o.Variant,
		Player:    player,
		Seed:      o.Seed,
		Result:    o.Result,
		Stage:     o.Stage,
		Score:     o.Score,
		Duration:  o.Duration,
		PeakNoise: o.PeakNoise,
	}
}

func init() {
	registry.Register(IDStages, func() registry.Game {
		return New(IDStages, TitleFor(IDStages), config.DefaultStagesConfig())
	})
	registry.Register(IDSwarm, func() registry.Game {
		return New(IDSwarm, TitleFor(IDSwarm), config.DefaultSwarmConfig())
	})
}

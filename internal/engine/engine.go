// Package engine runs one Soundless session: it owns the noise model, the
// threat policy and the objective controller, and advances them together on
// each Tick.
//
// The engine is passive. Hosts call Tick at whatever rate they like with the
// elapsed seconds and the player's input; every per-frame rate in the config
// is scaled by dt so results do not depend on the host's frame rate.
package engine

import (
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/soundless/internal/audio"
	"github.com/vovakirdan/soundless/internal/config"
	"github.com/vovakirdan/soundless/internal/core"
	"github.com/vovakirdan/soundless/internal/noise"
	"github.com/vovakirdan/soundless/internal/progression"
	"github.com/vovakirdan/soundless/internal/threat"
)

// Engine is a single-player session. It is not safe for concurrent use.
type Engine struct {
	cfg    config.SoundlessConfig
	rng    *rand.Rand
	audio  audio.Adapter
	logger *log.Logger

	diff    *config.DifficultyManager
	noise   *noise.Model
	threats threat.Policy
	prog    progression.Controller

	state      State
	stage      int
	ticks      int
	elapsed    float64
	player     Player
	fadeLeft   float64
	whispering bool
	peakNoise  float64

	handlers []func(Event)
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand injects the random source used for every roll and placement.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

// WithSeed seeds a private random source.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithAudio sets the live amplitude source.
func WithAudio(a audio.Adapter) Option {
	return func(e *Engine) {
		if a != nil {
			e.audio = a
		}
	}
}

// WithLogger sets the logger for state changes.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine in the Menu state. The config is normalized first.
func New(cfg config.SoundlessConfig, opts ...Option) *Engine {
	cfg.Normalize()

	e := &Engine{
		cfg:    cfg,
		audio:  audio.Disabled{},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e.diff = config.NewDifficultyManager(cfg.Difficulty)
	e.noise = noise.New(cfg.Noise, cfg.Timing.ReferenceRate)
	if cfg.Mode == config.ModeSwarm {
		e.threats = threat.NewSwarm(cfg.Swarm, cfg.World, e.diff)
	} else {
		e.threats = threat.NewGhost(cfg.Ghost, e.diff)
	}
	e.prog = progression.New(cfg)

	e.Reset()
	return e
}

// Config returns the normalized configuration.
func (e *Engine) Config() config.SoundlessConfig {
	return e.cfg
}

// State returns the current state.
func (e *Engine) State() State {
	return e.state
}

// OnEvent subscribes a handler. Handlers run synchronously inside Tick, in
// emission order.
func (e *Engine) OnEvent(fn func(Event)) {
	if fn != nil {
		e.handlers = append(e.handlers, fn)
	}
}

// Reset discards the session and returns to Menu.
func (e *Engine) Reset() {
	e.state = StateMenu
	e.stage = 0
	e.ticks = 0
	e.elapsed = 0
	e.fadeLeft = 0
	e.whispering = false
	e.peakNoise = 0
	e.noise.Reset()
	e.threats.Clear()
	e.prog.Reset(e.rng)
	e.placePlayer()
}

// Start leaves the menu. It reports whether the state changed.
func (e *Engine) Start() bool {
	if e.state != StateMenu {
		return false
	}
	e.state = StatePlaying
	e.logger.Debug("run started", "mode", e.cfg.Mode)
	return true
}

// Snapshot returns the observable state without advancing time.
func (e *Engine) Snapshot() Snapshot {
	stageCfg := e.cfg.Stage(e.stage)
	r := e.prog.Ritual()

	return Snapshot{
		Mode:        e.cfg.Mode,
		World:       e.cfg.World,
		Tick:        e.ticks,
		Elapsed:     e.elapsed,
		State:       e.state,
		Noise:       e.noise.Level(),
		Stage:       e.stage,
		StageName:   stageCfg.Name,
		StageFlavor: stageCfg.Flavor,
		Score:       e.prog.Score(),
		Target:      e.prog.Target(),
		Player:      e.player,
		Threats:     e.threats.Entities(),
		Objectives:  e.prog.Objectives(),
		Ritual: RitualView{
			Active:   r.Active,
			Anchor:   r.Anchor,
			Radius:   r.Radius,
			Elapsed:  r.Elapsed,
			Required: r.Required,
			Progress: r.Progress(),
		},
		Alert:      e.alert(),
		Whispering: e.whispering,
	}
}

// Stats summarizes the run so far.
func (e *Engine) Stats() Stats {
	return Stats{
		Mode:      e.cfg.Mode,
		State:     e.state,
		Stage:     e.stage,
		Score:     e.prog.Score(),
		Ticks:     e.ticks,
		Elapsed:   e.elapsed,
		PeakNoise: e.peakNoise,
	}
}

// Tick advances the session by dt seconds. It never fails: bad input is
// treated as no input, and the Menu and terminal states ignore it entirely.
func (e *Engine) Tick(dt float64, in Input) Result {
	if e.state == StateMenu || e.state.Terminal() {
		return Result{Snapshot: e.Snapshot()}
	}
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}

	var events []Event
	emit := func(ev Event) { events = append(events, ev) }

	e.ticks++
	e.elapsed += dt
	e.step(dt, in, emit)

	for _, ev := range events {
		for _, fn := range e.handlers {
			fn(ev)
		}
	}
	return Result{Snapshot: e.Snapshot(), Events: events}
}

func (e *Engine) step(dt float64, in Input, emit func(Event)) {
	frames := dt * e.cfg.Timing.ReferenceRate

	if e.state == StateTransition {
		e.fadeLeft -= dt
		if e.fadeLeft <= 0 {
			e.enterStage(e.stage+1, emit)
		}
		return
	}

	e.movePlayer(dt, frames, in)
	amp := e.readAudio(in)

	stageCfg := e.cfg.Stage(e.stage)
	level := e.noise.Tick(dt, noise.Sample{
		Moving:    e.player.Moving,
		Running:   e.player.Running,
		Sustained: e.player.Sustained,
		Amplitude: amp,
		Stage:     stageCfg,
	})
	e.peakNoise = math.Max(e.peakNoise, level)

	if level > e.cfg.Alerts.Heartbeat && e.rng.Float64() < threat.FrameChance(e.cfg.Alerts.HeartbeatChance, frames) {
		emit(Heartbeat{Intensity: level / noise.MaxLevel})
	}

	out := e.threats.Update(threat.Context{
		Frames:       frames,
		Ticks:        e.ticks,
		Stage:        e.stage,
		StageCfg:     stageCfg,
		Player:       e.player.Pos,
		PlayerRadius: e.player.Radius,
		Moving:       e.player.Moving,
		Sustained:    e.player.Sustained,
		Noise:        level,
		Whispering:   e.whispering,
		Rand:         e.rng,
	})
	for _, id := range out.Spawned {
		emit(ThreatSpawned{ID: id})
	}
	if out.Collided {
		emit(ThreatCollision{ID: out.CollisionID})
		e.state = StateGameOver
		emit(GameOver{})
		e.logger.Info("player caught", "stage", e.stage, "tick", e.ticks, "noise", level)
		return
	}

	res := e.prog.Update(progression.Update{
		Dt:           dt,
		Player:       e.player.Pos,
		PlayerRadius: e.player.Radius,
		Noise:        level,
		Challenge:    e.state == StateBoss,
	})
	for _, id := range res.Collected {
		emit(ObjectiveCollected{ID: id})
	}

	switch {
	case e.state == StatePlaying && res.StageComplete:
		e.state = StateTransition
		e.fadeLeft = e.cfg.Timing.TransitionDelay
		e.logger.Debug("stage complete", "stage", e.stage)
	case e.state == StatePlaying && res.ChallengeReady:
		e.state = StateBoss
		e.prog.StartChallenge()
		if e.cfg.Mode == config.ModeSwarm {
			e.threats.Clear()
		}
		emit(ChallengeStarted{})
		e.logger.Debug("silence challenge started", "stage", e.stage)
	case e.state == StateBoss && res.RitualComplete:
		emit(RitualComplete{})
		e.state = StateWin
		emit(Win{})
		e.logger.Info("ritual complete", "tick", e.ticks)
	}
}

func (e *Engine) enterStage(stage int, emit func(Event)) {
	e.stage = min(stage, e.cfg.FinalStage())
	e.prog.EnterStage(e.stage, e.rng)
	e.threats.Clear()
	e.placePlayer()
	e.state = StatePlaying
	emit(StageTransition{Index: e.stage})
	e.logger.Debug("entered stage", "stage", e.stage, "name", e.cfg.Stage(e.stage).Name)
}

func (e *Engine) placePlayer() {
	e.player = Player{
		Pos:    core.V(e.cfg.World.Width*e.cfg.Player.StartX, e.cfg.World.Height*e.cfg.Player.StartY),
		Radius: e.cfg.Player.Radius,
	}
	e.clampPlayer()
}

// movePlayer applies pointer or directional intent. A pointer target inside
// the dead zone counts as standing still. Moving follows intent alone; a
// zero-length tick keeps position and Sustained as they are.
func (e *Engine) movePlayer(dt, frames float64, in Input) {
	var dir core.Vec2
	if in.Pointer != nil {
		delta := in.Pointer.Sub(e.player.Pos)
		if delta.Len() > e.cfg.Player.DeadZone {
			dir = delta.Normalize()
		}
	} else {
		dir = in.Move.Normalize()
	}

	e.player.Running = in.Running
	e.player.Moving = !dir.IsZero()
	if !e.player.Moving {
		e.player.Sustained = 0
		return
	}
	if frames <= 0 {
		return
	}

	speed := e.cfg.Player.WalkSpeed
	if in.Running {
		speed = e.cfg.Player.RunSpeed
	}
	e.player.Pos = e.player.Pos.Add(dir.Scale(speed * frames))
	e.player.Angle = dir.Angle()
	e.player.Sustained += dt
	e.clampPlayer()
}

func (e *Engine) clampPlayer() {
	r := e.player.Radius
	w, h := e.cfg.World.Width, e.cfg.World.Height
	e.player.Pos.X = core.ClampF(e.player.Pos.X, math.Min(r, w/2), math.Max(w-r, w/2))
	e.player.Pos.Y = core.ClampF(e.player.Pos.Y, math.Min(r, h/2), math.Max(h-r, h/2))
}

// readAudio samples the adapter once per tick, or takes the amplitude the
// host supplied with the input.
func (e *Engine) readAudio(in Input) float64 {
	var v float64
	if in.MicAmplitude != nil {
		v = *in.MicAmplitude
		e.whispering = audio.InBand(v, e.cfg.Audio.WhisperLow, e.cfg.Audio.WhisperHigh)
	} else {
		v = e.audio.Sample()
		e.whispering = e.audio.Whispering()
	}
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, noise.MaxLevel)
}

func (e *Engine) alert() Alert {
	level := e.noise.Level()
	if e.cfg.Mode == config.ModeStages && len(e.threats.Entities()) > 0 {
		return AlertPursuit
	}
	if e.cfg.Alerts.Danger > 0 && level > e.cfg.Alerts.Danger {
		return AlertDanger
	}
	if level > e.cfg.Alerts.Noisy {
		return AlertNoisy
	}
	return AlertCalm
}

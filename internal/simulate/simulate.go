// Package simulate drives the engine headlessly with scripted input, for
// balancing and reproducing runs from the command line.
package simulate

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/soundless/internal/audio"
	"github.com/vovakirdan/soundless/internal/config"
	"github.com/vovakirdan/soundless/internal/core"
	"github.com/vovakirdan/soundless/internal/engine"
	"github.com/vovakirdan/soundless/internal/progression"
)

// Pattern is a scripted player behavior.
type Pattern string

const (
	// PatternStill never moves.
	PatternStill Pattern = "still"
	// PatternWalk walks to the next objective and waits out the ritual.
	PatternWalk Pattern = "walk"
	// PatternRun is PatternWalk at a run.
	PatternRun Pattern = "run"
	// PatternPulse walks for a second, then stands still for a second.
	PatternPulse Pattern = "pulse"
)

// Patterns lists every pattern in help order.
var Patterns = []Pattern{PatternStill, PatternWalk, PatternRun, PatternPulse}

// ParsePattern validates a pattern name.
func ParsePattern(s string) (Pattern, error) {
	for _, p := range Patterns {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("simulate: unknown pattern %q", s)
}

// Options configure a simulation.
type Options struct {
	Pattern  Pattern
	Seconds  float64 // Simulated time limit
	TickRate int
	Seed     int64
	Audio    audio.Adapter // Optional
	Logger   *log.Logger
}

// Report is the result of a simulation.
type Report struct {
	Mode     config.Mode     `json:"mode"`
	Pattern  Pattern         `json:"pattern"`
	Seed     int64           `json:"seed"`
	Ticks    int             `json:"ticks"`
	State    engine.State    `json:"state"`
	Events   map[string]int  `json:"events"`
	Snapshot engine.Snapshot `json:"snapshot"`
}

// Run starts a session and ticks it until it ends or the time limit is hit.
func Run(cfg config.SoundlessConfig, opts Options) Report {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Pattern == "" {
		opts.Pattern = PatternStill
	}

	eng := engine.New(cfg,
		engine.WithSeed(opts.Seed),
		engine.WithAudio(opts.Audio),
		engine.WithLogger(opts.Logger),
	)
	counts := make(map[string]int)
	eng.OnEvent(func(ev engine.Event) {
		counts[ev.Name()]++
	})
	eng.Start()

	rc := core.RuntimeConfig{TickRate: opts.TickRate}
	dt := rc.TickSeconds()
	limit := int(math.Ceil(opts.Seconds * float64(opts.TickRate)))

	snap := eng.Snapshot()
	ticks := 0
	for ticks < limit && !snap.State.Terminal() {
		res := eng.Tick(dt, Input(opts.Pattern, snap, opts.TickRate))
		snap = res.Snapshot
		ticks++
	}

	opts.Logger.Info("simulation finished",
		"mode", cfg.Mode,
		"pattern", opts.Pattern,
		"state", snap.State,
		"ticks", ticks,
	)
	return Report{
		Mode:     snap.Mode,
		Pattern:  opts.Pattern,
		Seed:     opts.Seed,
		Ticks:    ticks,
		State:    snap.State,
		Events:   counts,
		Snapshot: snap,
	}
}

// Input is the pattern's input for the tick after snapshot s.
func Input(p Pattern, s engine.Snapshot, tickRate int) engine.Input {
	switch p {
	case PatternWalk:
		return seek(s, false)
	case PatternRun:
		return seek(s, true)
	case PatternPulse:
		if tickRate <= 0 {
			tickRate = 60
		}
		if (s.Tick/tickRate)%2 == 0 {
			return seek(s, false)
		}
	}
	return engine.Input{}
}

// seek heads for the nearest open collectible, then the door, then the
// ritual zone, and stands still once inside it.
func seek(s engine.Snapshot, running bool) engine.Input {
	if s.State == engine.StateBoss {
		r := s.Ritual
		if r.Radius <= 0 || core.Dist(s.Player.Pos, r.Anchor) <= r.Radius*0.5 {
			return engine.Input{}
		}
		return towards(r.Anchor, running)
	}

	var door *core.Vec2
	best, found := core.Vec2{}, false
	bestDist := math.Inf(1)
	for _, o := range s.Objectives {
		if o.Collected {
			continue
		}
		if o.Kind == progression.KindDoor {
			pos := o.Pos
			door = &pos
			continue
		}
		if d := core.Dist(s.Player.Pos, o.Pos); d < bestDist {
			best, bestDist, found = o.Pos, d, true
		}
	}
	switch {
	case found:
		return towards(best, running)
	case door != nil:
		// Aim past the door so the dead zone does not stop short of it.
		return towards(core.V(s.World.Width, door.Y), running)
	case s.Ritual.Radius > 0:
		return towards(s.Ritual.Anchor, running)
	}
	return engine.Input{}
}

func towards(target core.Vec2, running bool) engine.Input {
	return engine.Input{Pointer: &target, Running: running}
}

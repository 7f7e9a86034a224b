// Package cues plays short synthesized tones for game events.
package cues

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// note is one tone of a cue. A zero frequency is a rest.
type note struct {
	freq float64
	dur  time.Duration
}

// tones maps engine event names to their cue. Events without an entry are
// silent.
var tones = map[string][]note{
	"heartbeat":           {{55, 70 * time.Millisecond}, {0, 90 * time.Millisecond}, {49, 90 * time.Millisecond}},
	"objective_collected": {{660, 60 * time.Millisecond}, {880, 90 * time.Millisecond}},
	"threat_spawned":      {{110, 250 * time.Millisecond}},
	"stage_transition":    {{440, 80 * time.Millisecond}, {550, 80 * time.Millisecond}, {660, 120 * time.Millisecond}},
	"challenge_started":   {{220, 150 * time.Millisecond}, {0, 60 * time.Millisecond}, {220, 150 * time.Millisecond}},
	"game_over":           {{196, 150 * time.Millisecond}, {147, 150 * time.Millisecond}, {98, 400 * time.Millisecond}},
	"win":                 {{523, 120 * time.Millisecond}, {659, 120 * time.Millisecond}, {784, 300 * time.Millisecond}},
}

// Has reports whether name has a cue.
func Has(name string) bool {
	_, ok := tones[name]
	return ok
}

// Cue builds the streamer for an event at the given volume (0..1). It
// returns false for events without a cue.
func Cue(name string, volume float64) (beep.Streamer, bool) {
	notes, ok := tones[name]
	if !ok {
		return nil, false
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		samples := sampleRate.N(n.dur)
		if n.freq <= 0 {
			parts = append(parts, beep.Silence(samples))
			continue
		}
		sine, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			parts = append(parts, beep.Silence(samples))
			continue
		}
		parts = append(parts, beep.Take(samples, sine))
	}

	return &effects.Gain{Streamer: beep.Seq(parts...), Gain: volume - 1}, true
}

// Player mixes event cues onto the speaker. The zero value is unusable, use
// NewPlayer. Until Start succeeds, Play is a no-op.
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	volume  float64
	started bool
	logger  *log.Logger
}

// NewPlayer creates a player with the given volume, clamped to 0..1.
func NewPlayer(volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
		logger: logger,
	}
}

// Start opens the speaker. Failing to open it leaves the player silent and
// returns the error so callers can log it.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

// Play queues the cue for an event name.
func (p *Player) Play(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	s, ok := Cue(name, p.volume)
	if !ok {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	p.logger.Debug("cue", "name", name)
}

// Close silences the player and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.started = false
}

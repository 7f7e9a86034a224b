package cues

import (
	"math"
	"testing"
	"time"
)

func drain(t *testing.T, name string, volume float64) (int, float64) {
	t.Helper()
	s, ok := Cue(name, volume)
	if !ok {
		t.Fatalf("no cue for %q", name)
	}
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok || n == 0 {
			break
		}
	}
	return total, peak
}

func TestCueLength(t *testing.T) {
	tests := []struct {
		name string
		dur  time.Duration
	}{
		{"objective_collected", 150 * time.Millisecond},
		{"threat_spawned", 250 * time.Millisecond},
		{"game_over", 700 * time.Millisecond},
		{"heartbeat", 250 * time.Millisecond},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var want int
			for _, n := range tones[tc.name] {
				want += sampleRate.N(n.dur)
			}
			got, _ := drain(t, tc.name, 1)
			if got != want {
				t.Errorf("streamed %d samples, expected %d", got, want)
			}
			if d := sampleRate.D(got); d < tc.dur-time.Millisecond || d > tc.dur+time.Millisecond {
				t.Errorf("cue lasts %v, expected about %v", d, tc.dur)
			}
		})
	}
}

func TestCueVolume(t *testing.T) {
	_, loud := drain(t, "win", 1)
	_, quiet := drain(t, "win", 0.25)
	if loud > 1.0001 {
		t.Errorf("full volume peak %.3f exceeds 1", loud)
	}
	if quiet > loud*0.25+1e-6 {
		t.Errorf("quarter volume peak %.3f, loud peak %.3f", quiet, loud)
	}
	if quiet == 0 {
		t.Error("quarter volume cue is silent")
	}
}

func TestUnknownEventIsSilent(t *testing.T) {
	if Has("ritual_complete") {
		t.Fatal("ritual_complete should have no cue")
	}
	if _, ok := Cue("nope", 1); ok {
		t.Error("unknown event returned a cue")
	}
}

func TestPlayerBeforeStart(t *testing.T) {
	p := NewPlayer(3, nil)
	if p.volume != 1 {
		t.Errorf("volume not clamped: %v", p.volume)
	}
	p.Play("win")
	if p.mixer.Len() != 0 {
		t.Error("cue queued before the speaker started")
	}
	p.Close()
}

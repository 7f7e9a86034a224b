package audio

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/soundless/internal/config"
)

const rate = beep.SampleRate(8000)

func constant(v float64) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{v, -v}
		}
		return len(samples), true
	})
}

type failing struct{ err error }

func (f failing) Stream([][2]float64) (int, bool) { return 0, false }
func (f failing) Err() error                       { return f.err }

func TestDisabled(t *testing.T) {
	var a Adapter = Disabled{}
	if a.Sample() != 0 || a.Whispering() {
		t.Error("Disabled should report (0, false)")
	}
}

func TestInBand(t *testing.T) {
	tests := []struct {
		v    float64
		want bool
	}{
		{8, false},
		{8.01, true},
		{24.99, true},
		{25, false},
		{0, false},
	}
	for _, tc := range tests {
		if got := InBand(tc.v, 8, 25); got != tc.want {
			t.Errorf("InBand(%f, 8, 25) = %v, expected %v", tc.v, got, tc.want)
		}
	}
}

func TestFixedClamps(t *testing.T) {
	f := Fixed{Level: 140, Low: 8, High: 25}
	if f.Sample() != 100 || f.Whispering() {
		t.Errorf("Fixed{140} = (%f, %v)", f.Sample(), f.Whispering())
	}
	f.Level = 12
	if !f.Whispering() {
		t.Error("Fixed{12} should be whispering")
	}
}

func TestMeterMeasuresRMS(t *testing.T) {
	cfg := config.DefaultStagesConfig().Audio

	tests := []struct {
		name      string
		amplitude float64
		gain      float64
		want      float64
		whisper   bool
	}{
		{"silence", 0, 1, 0, false},
		{"soft", 0.1, 1, 0.1 * fullScale, true},
		{"amplified", 0.1, 2, 0.2 * fullScale, false},
		{"clipped", 1, 1, 100, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := cfg
			c.Gain = tc.gain
			m := NewMeter(constant(tc.amplitude), rate, c, nil)
			if !m.Update() {
				t.Fatal("Update() on a live source returned false")
			}
			if got := m.Sample(); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Sample() = %f, expected %f", got, tc.want)
			}
			if m.Whispering() != tc.whisper {
				t.Errorf("Whispering() = %v, expected %v", m.Whispering(), tc.whisper)
			}
		})
	}
}

func TestMeterDisablesOnExhaustedSource(t *testing.T) {
	src := beep.Take(10, constant(0.5))
	m := NewMeter(src, rate, config.DefaultStagesConfig().Audio, nil)

	if !m.Update() {
		t.Fatal("first window should still carry samples")
	}
	if m.Sample() == 0 {
		t.Fatal("partial window should publish a level")
	}
	if m.Update() {
		t.Fatal("drained source should disable the meter")
	}
	if !m.Disabled() || m.Sample() != 0 || m.Whispering() {
		t.Error("exhausted meter should degrade to (0, false)")
	}
	if m.Update() {
		t.Error("disabled meter must stay disabled")
	}
}

func TestMeterLogsFailureOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	m := NewMeter(failing{err: errors.New("device unplugged")}, rate, config.DefaultStagesConfig().Audio, logger)

	m.Update()
	m.Update()
	m.disable(errors.New("again"))

	if got := strings.Count(buf.String(), "audio input failed"); got != 1 {
		t.Errorf("failure logged %d times, expected once:\n%s", got, buf.String())
	}
	if !strings.Contains(buf.String(), "device unplugged") {
		t.Error("log should carry the source error")
	}
}

func TestMeterRunStopsOnCancel(t *testing.T) {
	cfg := config.DefaultStagesConfig().Audio
	cfg.WindowMS = 1
	m := NewMeter(constant(0.1), rate, cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for m.Sample() == 0 {
		select {
		case <-deadline:
			t.Fatal("meter never published a sample")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

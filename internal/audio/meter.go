package audio

import (
	"context"
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/soundless/internal/config"
)

// fullScale maps the RMS of a full-scale sine (1/sqrt 2) onto 100.
const fullScale = 100 * math.Sqrt2

// Meter measures the RMS amplitude of a beep.Streamer, one window at a time.
// The latest value is published under a lock, so Sample and Whispering never
// block on the source. A failing or exhausted source disables the meter.
type Meter struct {
	src    beep.Streamer
	window time.Duration
	low    float64
	high   float64
	logger *log.Logger

	buf [][2]float64

	mu       sync.RWMutex
	level    float64
	disabled bool
}

// NewMeter wraps src, amplified by cfg.Gain, and measures it in windows of
// cfg.WindowMS at the given sample rate.
func NewMeter(src beep.Streamer, rate beep.SampleRate, cfg config.AudioConfig, logger *log.Logger) *Meter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	window := time.Duration(cfg.WindowMS) * time.Millisecond
	if window <= 0 {
		window = 50 * time.Millisecond
	}
	n := max(rate.N(window), 1)

	return &Meter{
		src:    &effects.Gain{Streamer: src, Gain: cfg.Gain - 1},
		window: window,
		low:    cfg.WhisperLow,
		high:   cfg.WhisperHigh,
		logger: logger,
		buf:    make([][2]float64, n),
	}
}

// Sample returns the latest amplitude, or 0 once the meter is disabled.
func (m *Meter) Sample() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.disabled {
		return 0
	}
	return m.level
}

// Whispering reports whether the latest amplitude is in the whisper band.
func (m *Meter) Whispering() bool {
	return InBand(m.Sample(), m.low, m.high)
}

// Disabled reports whether the source has failed or ended.
func (m *Meter) Disabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.disabled
}

// Update reads one window from the source and publishes its amplitude.
// It returns false once the meter is disabled.
func (m *Meter) Update() bool {
	if m.Disabled() {
		return false
	}

	n, ok := m.src.Stream(m.buf)
	if n > 0 {
		level := clampLevel(rms(m.buf[:n]) * fullScale)
		m.mu.Lock()
		m.level = level
		m.mu.Unlock()
	}
	if !ok {
		m.disable(m.src.Err())
		return false
	}
	return true
}

// Run measures the source in real time until ctx is done or the source
// stops.
func (m *Meter) Run(ctx context.Context) {
	ticker := time.NewTicker(m.window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !m.Update() {
				return
			}
		}
	}
}

func (m *Meter) disable(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disabled {
		return
	}
	m.disabled = true
	m.level = 0
	if err != nil {
		m.logger.Warn("audio input failed, continuing without it", "err", err)
	} else {
		m.logger.Warn("audio input ended, continuing without it")
	}
}

func rms(samples [][2]float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s[0]*s[0] + s[1]*s[1]
	}
	return math.Sqrt(sum / float64(2*len(samples)))
}

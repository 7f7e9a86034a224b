package audio

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/soundless/internal/config"
)

// OpenWAV starts a meter that replays a WAV recording in real time as the
// microphone. The returned stop function ends the replay and closes the file.
func OpenWAV(ctx context.Context, path string, cfg config.AudioConfig, logger *log.Logger) (*Meter, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("audio: open %s: %w", path, err)
	}
	stream, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("audio: decode %s: %w", path, err)
	}

	meter := NewMeter(stream, format.SampleRate, cfg, logger)
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		meter.Run(ctx)
	}()

	stop := func() {
		cancel()
		<-done
		stream.Close()
	}
	return meter, stop, nil
}

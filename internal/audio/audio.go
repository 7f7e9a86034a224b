// Package audio turns an external sound source into a normalized amplitude
// in [0, 100] and a whisper flag.
package audio

// Adapter is a live amplitude source. Implementations must not block.
type Adapter interface {
	// Sample returns the latest amplitude in [0, 100].
	Sample() float64
	// Whispering reports whether the latest amplitude lies in the whisper band.
	Whispering() bool
}

// Disabled is the adapter used when no microphone is available.
type Disabled struct{}

func (Disabled) Sample() float64  { return 0 }
func (Disabled) Whispering() bool { return false }

// InBand reports whether v lies strictly inside (low, high).
func InBand(v, low, high float64) bool {
	return v > low && v < high
}

// Fixed reports a constant amplitude. Useful for scripted runs.
type Fixed struct {
	Level float64
	Low   float64
	High  float64
}

func (f Fixed) Sample() float64 {
	return clampLevel(f.Level)
}

func (f Fixed) Whispering() bool {
	return InBand(f.Sample(), f.Low, f.High)
}

func clampLevel(v float64) float64 {
	switch {
	case v != v || v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

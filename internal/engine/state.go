package engine

import "github.com/vovakirdan/soundless/internal/config"

// State is the top-level game state.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StateTransition
	StateBoss
	StateGameOver
	StateWin
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateTransition:
		return "transition"
	case StateBoss:
		return "boss"
	case StateGameOver:
		return "game_over"
	case StateWin:
		return "win"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether the state ends the run.
func (s State) Terminal() bool {
	return s == StateGameOver || s == StateWin
}

// Alert is the HUD threat level.
type Alert int

const (
	AlertCalm Alert = iota
	AlertNoisy
	AlertDanger
	AlertPursuit
)

// Label returns the HUD text for the alert under a rule set.
func (a Alert) Label(mode config.Mode) string {
	switch a {
	case AlertPursuit:
		return "ACTIVE PURSUIT"
	case AlertDanger:
		return "DANGER"
	case AlertNoisy:
		if mode == config.ModeSwarm {
			return "NOISY"
		}
		return "DETECTED"
	default:
		if mode == config.ModeSwarm {
			return "SILENT"
		}
		return "DORMANT"
	}
}

func (a Alert) String() string {
	switch a {
	case AlertNoisy:
		return "noisy"
	case AlertDanger:
		return "danger"
	case AlertPursuit:
		return "pursuit"
	default:
		return "calm"
	}
}

// MarshalText encodes the alert by name.
func (a Alert) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

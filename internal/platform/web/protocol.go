package web

import (
	"encoding/json"

	"github.com/vovakirdan/soundless/internal/core"
	"github.com/vovakirdan/soundless/internal/engine"
)

// Client message types.
const (
	msgInput = "input"
	msgStart = "start"
	msgReset = "reset"
)

// clientMessage is anything a browser sends. Only input messages use the
// movement fields.
type clientMessage struct {
	Type    string     `json:"type"`
	Move    core.Vec2  `json:"move"`
	Running bool       `json:"running"`
	Pointer *core.Vec2 `json:"pointer,omitempty"`
	Mic     *float64   `json:"mic,omitempty"`
}

func (m clientMessage) input() engine.Input {
	return engine.Input{
		Move:         m.Move,
		Running:      m.Running,
		Pointer:      m.Pointer,
		MicAmplitude: m.Mic,
	}
}

type helloMessage struct {
	Type     string `json:"type"`
	Session  string `json:"session"`
	Variant  string `json:"variant"`
	Seed     int64  `json:"seed"`
	TickRate int    `json:"tick_rate"`
}

type frameMessage struct {
	Type     string          `json:"type"`
	Snapshot engine.Snapshot `json:"snapshot"`
	Events   []eventMessage  `json:"events"`
}

// eventMessage carries an engine event under its wire name.
type eventMessage struct {
	Name string       `json:"name"`
	Data engine.Event `json:"data"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func encodeEvents(events []engine.Event) []eventMessage {
	out := make([]eventMessage, len(events))
	for i, ev := range events {
		out[i] = eventMessage{Name: ev.Name(), Data: ev}
	}
	return out
}

func encodeFrame(res engine.Result) ([]byte, error) {
	return json.Marshal(frameMessage{
		Type:     "frame",
		Snapshot: res.Snapshot,
		Events:   encodeEvents(res.Events),
	})
}

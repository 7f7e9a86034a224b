package tui

import (
	"reflect"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/soundless/internal/core"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []core.Action
		quit bool
	}{
		{"walk up", runes("w"), []core.Action{core.ActionUp}, false},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, []core.Action{core.ActionLeft}, false},
		{"run down", runes("S"), []core.Action{core.ActionDown, core.ActionRun}, false},
		{"shift arrow runs", tea.KeyMsg{Type: tea.KeyShiftRight}, []core.Action{core.ActionRight, core.ActionRun}, false},
		{"enter starts", tea.KeyMsg{Type: tea.KeyEnter}, []core.Action{core.ActionConfirm}, false},
		{"restart", runes("r"), []core.Action{core.ActionRestart}, false},
		{"pause", runes("p"), []core.Action{core.ActionPause}, false},
		{"quit", runes("q"), []core.Action{core.ActionQuit}, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, []core.Action{core.ActionQuit}, true},
		{"unbound", runes("z"), nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, quit := km.MapKey(tc.msg)
			if !reflect.DeepEqual(got, tc.want) || quit != tc.quit {
				t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tc.msg.String(), got, quit, tc.want, tc.quit)
			}
		})
	}
}

func TestHeldKeysLatch(t *testing.T) {
	h := NewHeldKeys(3)
	h.Press(core.ActionRight)
	h.Press(core.ActionConfirm)

	for tick := 0; tick < 3; tick++ {
		f := core.NewInputFrame()
		h.Apply(&f)
		if !f.Has(core.ActionRight) {
			t.Fatalf("tick %d: direction should still be held", tick)
		}
		if f.Has(core.ActionConfirm) != (tick == 0) {
			t.Errorf("tick %d: one-shot action latched wrongly", tick)
		}
	}

	f := core.NewInputFrame()
	h.Apply(&f)
	if f.Has(core.ActionRight) || h.Moving() {
		t.Error("direction should release after the hold window")
	}
}

func TestHeldKeysOppositeCancels(t *testing.T) {
	h := NewHeldKeys(10)
	h.Press(core.ActionLeft)
	h.Press(core.ActionRight)

	f := core.NewInputFrame()
	h.Apply(&f)
	if f.Has(core.ActionLeft) || !f.Has(core.ActionRight) {
		t.Errorf("reversing should drop the old direction, got %v", f.Actions)
	}

	h.Release()
	if h.Moving() {
		t.Error("Release should drop everything")
	}
}

func TestHoldTicks(t *testing.T) {
	if got := holdTicks(60, 180*time.Millisecond); got != 11 {
		t.Errorf("holdTicks(60, 180ms) = %d", got)
	}
	if got := holdTicks(0, time.Millisecond); got != 1 {
		t.Errorf("hold window should be at least one tick, got %d", got)
	}
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/soundless/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to actions. Terminals do not report
// shift on its own, so uppercase WASD and shifted arrows mean "run" in that
// direction. The second result reports a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (actions []core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q", "Q":
		return []core.Action{core.ActionQuit}, true

	case "w", "up":
		return []core.Action{core.ActionUp}, false
	case "s", "down":
		return []core.Action{core.ActionDown}, false
	case "a", "left":
		return []core.Action{core.ActionLeft}, false
	case "d", "right":
		return []core.Action{core.ActionRight}, false

	case "W", "shift+up":
		return []core.Action{core.ActionUp, core.ActionRun}, false
	case "S", "shift+down":
		return []core.Action{core.ActionDown, core.ActionRun}, false
	case "A", "shift+left":
		return []core.Action{core.ActionLeft, core.ActionRun}, false
	case "D", "shift+right":
		return []core.Action{core.ActionRight, core.ActionRun}, false

	case "enter", " ":
		return []core.Action{core.ActionConfirm}, false
	case "r", "R":
		return []core.Action{core.ActionRestart}, false
	case "p", "P":
		return []core.Action{core.ActionPause}, false
	case "b", "esc":
		return []core.Action{core.ActionBack}, false
	}

	return nil, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionRuns
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionRuns
	}

	return MenuActionNone
}

// HeldKeys turns key presses into held actions. Terminals only report
// presses (and autorepeat), never releases, so a movement key stays down for
// a short window after each press. Other actions last a single tick.
type HeldKeys struct {
	hold int
	left map[core.Action]int
}

// NewHeldKeys creates a latch that keeps movement keys down for hold ticks.
func NewHeldKeys(hold int) *HeldKeys {
	return &HeldKeys{hold: max(hold, 1), left: make(map[core.Action]int)}
}

// Press records an action. A direction releases its opposite at once.
func (h *HeldKeys) Press(a core.Action) {
	if !isHeld(a) {
		h.left[a] = 1
		return
	}
	if opp, ok := opposite[a]; ok {
		delete(h.left, opp)
	}
	h.left[a] = h.hold
}

// Apply sets every live action on the frame and ages the latch by one tick.
func (h *HeldKeys) Apply(frame *core.InputFrame) {
	for a, n := range h.left {
		frame.Set(a)
		if n <= 1 {
			delete(h.left, a)
		} else {
			h.left[a] = n - 1
		}
	}
}

// Moving reports whether a direction is currently held.
func (h *HeldKeys) Moving() bool {
	for a := range h.left {
		if _, ok := opposite[a]; ok {
			return true
		}
	}
	return false
}

// Release drops every held action.
func (h *HeldKeys) Release() {
	clear(h.left)
}

var opposite = map[core.Action]core.Action{
	core.ActionUp:    core.ActionDown,
	core.ActionDown:  core.ActionUp,
	core.ActionLeft:  core.ActionRight,
	core.ActionRight: core.ActionLeft,
}

func isHeld(a core.Action) bool {
	_, dir := opposite[a]
	return dir || a == core.ActionRun
}

package core

// Action represents a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionRun            // Uppercase WASD (shift held)
	ActionConfirm        // Enter - start from the menu
	ActionRestart        // R - restart after game over or win
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P
	ActionBack           // B, Esc
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRun:
		return "Run"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	default:
		return "Unknown"
	}
}

// InputFrame is the input state for one simulation tick.
// Directions are "held" actions: the platform keeps setting them for as
// long as it considers the key down.
type InputFrame struct {
	Actions map[Action]bool

	// Pointer is a screen cell the player clicked or is dragging toward.
	HasPointer bool
	PointerX   int
	PointerY   int
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SetPointer records a pointer target in screen cells.
func (f *InputFrame) SetPointer(x, y int) {
	f.HasPointer = true
	f.PointerX = x
	f.PointerY = y
}

// Clear resets all actions and the pointer for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.HasPointer = false
}

// Direction returns the held movement intent as an un-normalized vector.
// Screen y grows downward, matching world coordinates.
func (f InputFrame) Direction() Vec2 {
	var d Vec2
	if f.Has(ActionUp) {
		d.Y--
	}
	if f.Has(ActionDown) {
		d.Y++
	}
	if f.Has(ActionLeft) {
		d.X--
	}
	if f.Has(ActionRight) {
		d.X++
	}
	return d
}

package core

// Action represents a semantic input action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - walk left
	ActionRight          // D, Right arrow - walk right
	ActionFlip           // Space, Up, Down, V - flip gravity
	ActionConfirm        // Enter - confirm selection in menu / use activity zone
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart from the last checkpoint
	ActionQuit           // Q, Ctrl+C - exit session
	ActionPause          // P - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFlip:
		return "Flip"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// ParseInputScript turns a compact per-frame input string into frames.
// Each character is one frame: 'l' left, 'r' right, 'f' flip, 'L'/'R' walk
// and flip together, '.' idle. Unknown characters are treated as idle.
func ParseInputScript(s string) []InputFrame {
	frames := make([]InputFrame, 0, len(s))
	for _, c := range s {
		f := NewInputFrame()
		switch c {
		case 'l':
			f.Set(ActionLeft)
		case 'r':
			f.Set(ActionRight)
		case 'f':
			f.Set(ActionFlip)
		case 'L':
			f.Set(ActionLeft)
			f.Set(ActionFlip)
		case 'R':
			f.Set(ActionRight)
			f.Set(ActionFlip)
		}
		frames = append(frames, f)
	}
	return frames
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flipsim/internal/core"
)

// holdFrames is how many ticks a walk key stays down after its last key
// event. Terminals send no key release, only repeats.
const holdFrames = 6

// KeyMapper translates Bubble Tea key messages to room actions.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "h", "left":
		return core.ActionLeft, false
	case "d", "l", "right":
		return core.ActionRight, false
	case " ", "w", "s", "v", "up", "down":
		return core.ActionFlip, false
	case "enter", "e":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// heldKeys stretches walk key events over several ticks.
type heldKeys struct {
	left, right int
}

func (h *heldKeys) press(a core.Action) {
	switch a {
	case core.ActionLeft:
		h.left, h.right = holdFrames, 0
	case core.ActionRight:
		h.left, h.right = 0, holdFrames
	}
}

// apply adds the still-held walk actions to a frame and counts them down.
func (h *heldKeys) apply(f *core.InputFrame) {
	if h.left > 0 {
		f.Set(core.ActionLeft)
		h.left--
	}
	if h.right > 0 {
		f.Set(core.ActionRight)
		h.right--
	}
}

func (h *heldKeys) release() {
	h.left, h.right = 0, 0
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionResume
	MenuActionSaves
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "c":
		return MenuActionResume
	case "tab":
		return MenuActionSaves
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}

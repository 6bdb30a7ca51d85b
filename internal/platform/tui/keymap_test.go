package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flipsim/internal/core"
	_ "github.com/vovakirdan/flipsim/internal/scenario"
	"github.com/vovakirdan/flipsim/internal/session"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"a walks left", runeKey("a"), core.ActionLeft, false},
		{"arrow walks right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space flips", tea.KeyMsg{Type: tea.KeySpace}, core.ActionFlip, false},
		{"up flips", tea.KeyMsg{Type: tea.KeyUp}, core.ActionFlip, false},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEscape}, core.ActionBack, false},
		{"r restarts", runeKey("r"), core.ActionRestart, false},
		{"p pauses", runeKey("p"), core.ActionPause, false},
		{"q quits", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)",
					tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{runeKey("c"), MenuActionResume},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionSaves},
		{tea.KeyMsg{Type: tea.KeyEscape}, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestHeldKeys(t *testing.T) {
	var h heldKeys
	h.press(core.ActionLeft)

	for i := 0; i < holdFrames; i++ {
		f := core.NewInputFrame()
		h.apply(&f)
		if !f.Has(core.ActionLeft) {
			t.Fatalf("left released after %d frames", i)
		}
	}
	f := core.NewInputFrame()
	h.apply(&f)
	if f.Has(core.ActionLeft) {
		t.Error("left still held after holdFrames")
	}

	h.press(core.ActionLeft)
	h.press(core.ActionRight)
	f = core.NewInputFrame()
	h.apply(&f)
	if f.Has(core.ActionLeft) || !f.Has(core.ActionRight) {
		t.Error("right did not replace left")
	}
}

func TestGameModelSteps(t *testing.T) {
	s, err := session.Open("lab", session.Options{})
	if err != nil {
		t.Fatalf("session.Open() failed: %v", err)
	}
	defer s.Close()

	m := NewGameModel(s, core.RuntimeConfig{ScreenW: 100, ScreenH: 40, TickRate: 30, Seed: 3})
	m.Init()

	w := s.Scenario.World()
	p, _ := w.Entity(w.Player())
	startX := p.X

	next, _ := m.Update(runeKey("d"))
	m = next.(GameModel)
	for i := 0; i < 3; i++ {
		next, _ = m.Update(TickMsg(time.Now()))
		m = next.(GameModel)
	}
	if w.Frame() != 3 {
		t.Errorf("Frame() = %d, expected 3", w.Frame())
	}
	if p.X <= startX {
		t.Errorf("player did not walk right: %v -> %v", startX, p.X)
	}

	if !strings.Contains(m.View(), "Laboratory") {
		t.Error("view is missing the room title")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = next.(GameModel)
	if !m.BackToMenu() || m.IsQuitting() {
		t.Error("esc should return to the menu")
	}
}

func TestGameModelTooSmall(t *testing.T) {
	s, err := session.Open("lab", session.Options{})
	if err != nil {
		t.Fatalf("session.Open() failed: %v", err)
	}
	defer s.Close()

	m := NewGameModel(s, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 3})
	m.Init()
	if !strings.Contains(m.View(), "Terminal too small") {
		t.Error("small terminal not reported")
	}
}

package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flipsim/internal/core"
	"github.com/vovakirdan/flipsim/internal/registry"
	"github.com/vovakirdan/flipsim/internal/scenario"
	"github.com/vovakirdan/flipsim/internal/session"
)

// GameModel plays one room.
type GameModel struct {
	session    *session.Session
	game       registry.Scenario
	screen     *core.Screen
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	held       heldKeys
	inputFrame core.InputFrame
	gameState  core.GameState

	// standalone quits the program on Back instead of returning to a menu.
	standalone bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for an opened session.
func NewGameModel(s *session.Session, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return GameModel{
		session:    s,
		game:       s.Scenario,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init resets the room and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case core.ActionLeft, core.ActionRight:
		m.held.press(action)
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.gameState.GameOver && m.inputFrame.Has(core.ActionRestart) {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.held.release()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	m.held.apply(&m.inputFrame)
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.GameOver {
		if err := m.session.Finish(); err != nil {
			m.game.World().Logger().Error("cannot save run", "err", err)
		}
	}
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current frame as plain text.
func (m *GameModel) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".flipsim", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, the room keeps running
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the room.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.screen.Width() < scenario.ViewW || m.screen.Height() < scenario.ViewH {
		return fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d",
			scenario.ViewW, scenario.ViewH, m.screen.Width(), m.screen.Height())
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a session in the local terminal until the player quits.
func Run(s *session.Session, cfg core.RuntimeConfig) error {
	model := NewGameModel(s, cfg)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

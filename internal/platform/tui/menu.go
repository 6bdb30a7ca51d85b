package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flipsim/internal/core"
	"github.com/vovakirdan/flipsim/internal/registry"
	"github.com/vovakirdan/flipsim/internal/storage"
)

// MenuItem is a selectable room.
type MenuItem struct {
	ScenarioID string
	Title      string
	Stats      storage.StatsEntry
	HasStats   bool
	CanResume  bool
}

// MenuModel is the Bubble Tea model for the room picker.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper

	quitting  bool
	selected  *MenuItem
	resume    bool
	openSaves bool
}

// NewMenuModel creates a new menu model. store may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	rooms := registry.List()
	items := make([]MenuItem, 0, len(rooms))

	var stats map[string]storage.StatsEntry
	if store != nil {
		//nolint:errcheck // Stats are decoration; the menu works without them
		stats, _ = store.AllStats()
	}

	for _, r := range rooms {
		item := MenuItem{ScenarioID: r.ID, Title: r.Title}
		item.Stats, item.HasStats = stats[r.ID]
		if store != nil {
			_, found, err := store.LatestCheckpoint(r.ID)
			item.CanResume = err == nil && found
		}
		items = append(items, item)
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)
	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect, MenuActionResume:
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.cursor]
		m.selected = &item
		m.resume = item.CanResume && action == MenuActionResume
		return m, tea.Quit

	case MenuActionSaves:
		m.openSaves = true
		return m, tea.Quit
	}
	return m, nil
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuCursor     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDim        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("F L I P S I M"), m.width, 13))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a room", m.width, 0))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if item.CanResume {
			line += "  (saved)"
		}
		if item.HasStats {
			line += fmt.Sprintf("  trinkets %d  deaths %d", item.Stats.Trinkets, item.Stats.Deaths)
		}
		width := len(line)
		if i == m.cursor {
			line = menuCursor.Render("> " + line[2:])
		}
		b.WriteString(centerText(line, m.width, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: New  |  C: Continue  |  Tab: Saves  |  Q: Quit"
	b.WriteString(centerText(menuDim.Render(controls), m.width, len(controls)))
	b.WriteString("\n")
	return b.String()
}

// centerText pads text, whose printed width is n (or len(text) when n is 0),
// to the middle of width.
func centerText(text string, width, n int) string {
	if n == 0 {
		n = len(text)
	}
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	ScenarioID string
	Resume     bool
	Config     core.RuntimeConfig
	WantsSaves bool
	Quit       bool
}

// result converts the final menu state.
func (m MenuModel) result() MenuResult {
	r := MenuResult{Config: m.config}
	switch {
	case m.openSaves:
		r.WantsSaves = true
	case m.selected != nil:
		r.ScenarioID = m.selected.ScenarioID
		r.Resume = m.resume
	default:
		r.Quit = true
	}
	return r
}

// RunMenu runs the menu and returns the selection.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.result(), nil
}

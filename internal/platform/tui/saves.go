package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flipsim/internal/registry"
	"github.com/vovakirdan/flipsim/internal/storage"
)

// Saves board layout.
const (
	minWidthForSidebar = 80
	sidebarWidth       = 22
	maxRuns            = 100
)

// SavesKeyMap defines the key bindings for the saves board.
type SavesKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextRoom key.Binding
	PrevRoom key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SavesKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextRoom, k.PrevRoom, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k SavesKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextRoom, k.PrevRoom},
		{k.Back, k.Quit},
	}
}

// DefaultSavesKeyMap returns default key bindings.
func DefaultSavesKeyMap() SavesKeyMap {
	return SavesKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextRoom: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next room"),
		),
		PrevRoom: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev room"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SavesModel lists the runs, lifetime stats and latest checkpoint of each
// room.
type SavesModel struct {
	rooms  []registry.ScenarioInfo
	cursor int
	store  *storage.Store

	runs       []storage.RunEntry
	stats      storage.StatsEntry
	hasStats   bool
	checkpoint storage.CheckpointEntry
	hasSave    bool
	collected  []int

	table       table.Model
	help        help.Model
	keys        SavesKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewSavesModel creates the saves board. store may be nil.
func NewSavesModel(store *storage.Store, width, height int) SavesModel {
	h := help.New()
	h.ShowAll = false

	m := SavesModel{
		rooms:       registry.List(),
		store:       store,
		keys:        DefaultSavesKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	if len(m.rooms) > 0 {
		m.load(m.rooms[0].ID)
	}
	return m
}

func (m *SavesModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Started", Width: 13},
		{Title: "Time", Width: 7},
		{Title: "Deaths", Width: 6},
		{Title: "Flips", Width: 6},
		{Title: "Trinkets", Width: 8},
		{Title: "", Width: 4},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load reads everything stored for one room.
func (m *SavesModel) load(id string) {
	m.runs, m.hasStats, m.hasSave, m.collected = nil, false, false, nil
	if m.store != nil {
		if runs, err := m.store.Runs(id, maxRuns); err == nil {
			m.runs = runs
		}
		if st, ok, err := m.store.Stats(id); err == nil {
			m.stats, m.hasStats = st, ok
		}
		if cp, ok, err := m.store.LatestCheckpoint(id); err == nil {
			m.checkpoint, m.hasSave = cp, ok
		}
		if c, err := m.store.Collected(id); err == nil {
			m.collected = c
		}
	}
	m.updateRows()
}

func (m *SavesModel) updateRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		done := ""
		if r.Finished {
			done = "done"
		}
		rows[i] = table.Row{
			r.StartedAt.Format("Jan 02 15:04"),
			formatFrames(r.Frames),
			fmt.Sprint(r.Deaths),
			fmt.Sprint(r.Flips),
			fmt.Sprint(r.Trinkets),
			done,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatFrames prints a frame count at 30 fps as m:ss.
func formatFrames(frames int) string {
	secs := frames / 30
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Init initializes the saves board.
func (m SavesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the saves board.
func (m SavesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextRoom):
			if len(m.rooms) > 0 {
				m.cursor = (m.cursor + 1) % len(m.rooms)
				m.load(m.rooms[m.cursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevRoom):
			if len(m.rooms) > 0 {
				m.cursor = (m.cursor - 1 + len(m.rooms)) % len(m.rooms)
				m.load(m.rooms[m.cursor].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// View renders the saves board.
func (m SavesModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	title := "SAVES"
	if len(m.rooms) > 0 {
		title = "SAVES - " + m.rooms[m.cursor].Title
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString(centerText(titleStyle.Render(title), m.width, len(title)))
	b.WriteString("\n\n")

	body := lipgloss.JoinVertical(lipgloss.Left, m.summary(), "", m.tableContent())
	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", boxStyle.Render(body)))
	} else {
		b.WriteString(boxStyle.Render(body))
	}

	b.WriteString("\n")
	b.WriteString(menuDim.Render(m.help.View(m.keys)))
	return b.String()
}

func (m SavesModel) sidebar() string {
	var sb strings.Builder
	sb.WriteString("Rooms\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")
	for i, r := range m.rooms {
		name := r.Title
		if limit := sidebarWidth - 6; len(name) > limit {
			name = name[:limit-1] + "."
		}
		if i == m.cursor {
			sb.WriteString(menuCursor.Render("> " + name))
		} else {
			sb.WriteString("  " + name)
		}
		sb.WriteString("\n")
	}
	return boxStyle.Width(sidebarWidth).Render(sb.String())
}

// summary describes the lifetime stats and the resume point.
func (m SavesModel) summary() string {
	var lines []string
	if m.hasStats {
		lines = append(lines, fmt.Sprintf("Trinkets %d   Flips %d   Deaths %d",
			m.stats.Trinkets, m.stats.Flips, m.stats.Deaths))
	} else {
		lines = append(lines, menuDim.Render("No stats yet."))
	}
	if m.hasSave {
		cp := m.checkpoint
		side := "floor"
		if cp.GravityControl == 1 {
			side = "ceiling"
		}
		lines = append(lines, fmt.Sprintf("Checkpoint %d at (%d, %d) on the %s, %s",
			cp.SavePoint, cp.X, cp.Y, side, cp.CreatedAt.Format("Jan 02 15:04")))
	}
	if len(m.collected) > 0 {
		lines = append(lines, fmt.Sprintf("Collected %v", m.collected))
	}
	return strings.Join(lines, "\n")
}

func (m SavesModel) tableContent() string {
	if len(m.runs) == 0 {
		return menuDim.Italic(true).Padding(1, 2).Render("No runs recorded yet.")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m SavesModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m SavesModel) IsQuitting() bool {
	return m.quitting
}

// RunSaves runs the saves board. It reports whether the user went back to
// the menu rather than quitting.
func RunSaves(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewSavesModel(store, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(SavesModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}

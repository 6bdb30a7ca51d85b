package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/flipsim/internal/config"
	"github.com/vovakirdan/flipsim/internal/core"
	"github.com/vovakirdan/flipsim/internal/session"
	"github.com/vovakirdan/flipsim/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.flipsim/host_key.
	HostKeyPath string

	// DBPath is the path to the saves database.
	DBPath string

	// ScriptsDir holds extra Lua room scripts. Empty uses the builtin ones.
	ScriptsDir string

	// Sim holds the simulation tables.
	Sim config.SimConfig

	TickRate int

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.flipsim/saves.db",
		Sim:         config.DefaultSimConfig(),
		TickRate:    30,
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves the room menu over SSH.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "flipsim-ssh",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open saves database", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".flipsim", "host_key")
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	opts := session.Options{
		Sim:        s.config.Sim,
		Store:      s.store,
		ScriptsDir: s.config.ScriptsDir,
		Logger:     s.logger.With("user", sshSession.User()),
	}

	return NewSessionModel(opts, cfg), []tea.ProgramOption{tea.WithAltScreen()}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionModel runs the menu, room and saves screens of one connection.
type SessionModel struct {
	opts   session.Options
	config core.RuntimeConfig

	menu      MenuModel
	saves     *SavesModel
	play      *session.Session
	gameModel *GameModel
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts session.Options, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		opts:   opts,
		config: cfg,
		menu:   NewMenuModel(opts.Store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch {
	case m.gameModel != nil:
		return m.updateGame(msg)
	case m.saves != nil:
		return m.updateSaves(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}
	res := m.menu.result()

	switch {
	case m.menu.quitting:
		m.quitting = true
		return m, tea.Quit

	case res.WantsSaves:
		saves := NewSavesModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.saves = &saves
		return m, saves.Init()

	case res.ScenarioID != "":
		opts := m.opts
		opts.Resume = res.Resume
		s, err := session.Open(res.ScenarioID, opts)
		if err != nil {
			m.opts.Logger.Error("cannot open room", "scenario", res.ScenarioID, "err", err)
			m.menu = NewMenuModel(m.opts.Store, m.config)
			return m, nil
		}
		m.play = s
		m.config.Seed = time.Now().UnixNano()
		gm := NewGameModel(s, m.config)
		m.gameModel = &gm
		return m, gm.Init()
	}
	return m, cmd
}

func (m SessionModel) updateSaves(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.saves.Update(msg)
	if saves, ok := next.(SavesModel); ok {
		m.saves = &saves
	}
	switch {
	case m.saves.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.saves.IsGoingBack():
		m.saves = nil
		m.menu = NewMenuModel(m.opts.Store, m.config)
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.gameModel.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.gameModel = &gm
	}

	switch {
	case m.gameModel.IsQuitting():
		m.closePlay()
		m.quitting = true
		return m, tea.Quit
	case m.gameModel.BackToMenu():
		m.closePlay()
		m.menu = NewMenuModel(m.opts.Store, m.config)
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m *SessionModel) closePlay() {
	if m.play != nil {
		if err := m.play.Close(); err != nil {
			m.opts.Logger.Error("cannot save run", "err", err)
		}
	}
	m.play = nil
	m.gameModel = nil
}

// View renders the active screen.
func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.gameModel != nil:
		return m.gameModel.View()
	case m.saves != nil:
		return m.saves.View()
	}
	return m.menu.View()
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flipsim/internal/core"
	"github.com/vovakirdan/flipsim/internal/platform/tui"
	"github.com/vovakirdan/flipsim/internal/registry"
	"github.com/vovakirdan/flipsim/internal/session"
)

var flagResume bool

var playCmd = &cobra.Command{
	Use:   "play <room>",
	Short: "Play a room",
	Long: `Start playing the specified room.

Controls:
  A/D, Left/Right    - Walk
  Space, W/S, Up/Down - Flip gravity (only while standing)
  Enter              - Talk or use a terminal
  R                  - Return to the last checkpoint
  P                  - Pause
  Esc                - Leave the room
  Ctrl+S             - Save a text screenshot
  Q/Ctrl+C           - Quit

Examples:
  flipsim play lab
  flipsim play lab --resume
  flipsim play gravitron --fps 60`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Continue from the room's latest checkpoint")
}

// terminalConfig sizes the runtime config to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(_ *cobra.Command, args []string) {
	id := args[0]
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown room %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'flipsim list' to see available rooms.")
		os.Exit(1)
	}

	logger := newLogger()
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	opts, err := sessionOptions(logger, store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	opts.Resume = flagResume

	if err := play(id, opts, terminalConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error running room: %v\n", err)
		os.Exit(1)
	}
}

// play opens a session and runs it in the terminal.
func play(id string, opts session.Options, cfg core.RuntimeConfig) error {
	s, err := session.Open(id, opts)
	if err != nil {
		return err
	}
	runErr := tui.Run(s, cfg)
	if err := s.Close(); err != nil {
		opts.Logger.Error("cannot save run", "err", err)
	}
	return runErr
}

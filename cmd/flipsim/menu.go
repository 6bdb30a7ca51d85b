package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flipsim/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a room picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a room and C to continue
from its last checkpoint. Leaving a room returns to the menu.

Examples:
  flipsim menu
  flipsim menu --fps 60
  flipsim menu --db ./saves.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
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
	cfg := terminalConfig()

	for {
		res, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = res.Config

		switch {
		case res.Quit:
			return

		case res.WantsSaves:
			goBack, err := tui.RunSaves(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if !goBack {
				return
			}

		default:
			if flagSeed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}
			roomOpts := opts
			roomOpts.Resume = res.Resume
			if err := play(res.ScenarioID, roomOpts, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "Error running room: %v\n", err)
			}
		}
	}
}

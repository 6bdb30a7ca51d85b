// flipsim plays gravity-flipping rooms in the terminal.
//
// Usage:
//
//	flipsim list               - List available rooms
//	flipsim play <room>        - Play a room
//	flipsim menu               - Pick rooms interactively
//	flipsim run <room>         - Run a room headless and print its hash
//	flipsim serve              - Start SSH server for remote play
//	flipsim saves [room]       - Show saved runs and checkpoints
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.flipsim/saves.db)
//	--scripts <dir>       - Load extra Lua room scripts from a directory
//	--sim-config <path>   - Load simulation tables from a YAML file
//	--log-level <level>   - debug, info, warn or error (default: warn)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flipsim/internal/config"
	_ "github.com/vovakirdan/flipsim/internal/scenario"
	"github.com/vovakirdan/flipsim/internal/session"
	"github.com/vovakirdan/flipsim/internal/storage"
)

var (
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagScripts   string
	flagSimConfig string
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flipsim",
	Short: "Flip gravity through rooms of spikes, enemies and trinkets",
	Long: `flipsim is a terminal game where you cannot jump: you flip gravity
and fall to the ceiling instead.

Available commands:
  list     - Show all rooms
  play     - Play a room directly
  menu     - Interactive room picker
  run      - Headless run for replays and checks
  serve    - Start SSH server for remote play
  saves    - View saved runs and checkpoints

Examples:
  flipsim list
  flipsim play lab
  flipsim run super-gravitron --frames 900 --seed 7
  flipsim serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flipsim/saves.db", "Path to saves database")
	rootCmd.PersistentFlags().StringVar(&flagScripts, "scripts", "", "Directory of extra Lua room scripts")
	rootCmd.PersistentFlags().StringVar(&flagSimConfig, "sim-config", "", "Path to simulation tables YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(savesCmd)
}

// newLogger builds the CLI logger from --log-level.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "flipsim",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using warn", "level", flagLogLevel)
		level = log.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

// sessionOptions gathers the global flags into session options.
func sessionOptions(logger *log.Logger, store *storage.Store) (session.Options, error) {
	simCfg, err := config.LoadSim(flagSimConfig)
	if err != nil {
		return session.Options{}, err
	}
	return session.Options{
		Sim:        simCfg,
		Store:      store,
		ScriptsDir: flagScripts,
		Logger:     logger,
	}, nil
}

// openStore opens the saves database, or returns nil with a warning.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("playing without saves", "err", err)
		return nil
	}
	return store
}

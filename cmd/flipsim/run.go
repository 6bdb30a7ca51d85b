package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flipsim/internal/audio"
	"github.com/vovakirdan/flipsim/internal/core"
	"github.com/vovakirdan/flipsim/internal/registry"
	"github.com/vovakirdan/flipsim/internal/session"
	"github.com/vovakirdan/flipsim/internal/sim"
)

var (
	flagFrames int
	flagInput  string
	flagWAV    string
	flagSave   bool
	flagScreen bool
)

var runCmd = &cobra.Command{
	Use:   "run <room>",
	Short: "Run a room headless",
	Long: `Step a room without a terminal UI and print a summary with the final
snapshot hash. Two runs with the same seed and input print the same hash.

The input script has one character per frame: 'l' left, 'r' right,
'f' flip, 'L'/'R' walk and flip, '.' idle. Frames past its end are idle.

Examples:
  flipsim run lab --frames 300 --seed 1 --input "rrrrrrrrf"
  flipsim run super-gravitron --frames 1800 --wav gravitron.wav
  flipsim run station --frames 600 --screen`,
	Args: cobra.ExactArgs(1),
	Run:  runHeadless,
}

func init() {
	runCmd.Flags().IntVar(&flagFrames, "frames", 300, "Number of frames to simulate")
	runCmd.Flags().StringVar(&flagInput, "input", "", "Per-frame input script")
	runCmd.Flags().StringVar(&flagWAV, "wav", "", "Write the sound effects to a WAV file")
	runCmd.Flags().BoolVar(&flagSave, "save", false, "Record the run in the saves database")
	runCmd.Flags().BoolVar(&flagScreen, "screen", false, "Print the final frame")
	runCmd.Flags().BoolVar(&flagResume, "resume", false, "Continue from the room's latest checkpoint")
}

func runHeadless(_ *cobra.Command, args []string) {
	id := args[0]
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown room %q\n", id)
		os.Exit(1)
	}

	logger := newLogger()
	opts, err := sessionOptions(logger, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagSave || flagResume {
		if store := openStore(logger); store != nil {
			defer store.Close()
			opts.Store = store
		}
	}
	opts.Resume = flagResume

	s, err := session.Open(id, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	cfg := core.RuntimeConfig{
		ScreenW:  120,
		ScreenH:  40,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	s.Scenario.Reset(cfg)

	inputs := core.ParseInputScript(flagInput)
	var res core.StepResult
	frames := 0
	for ; frames < flagFrames; frames++ {
		in := core.NewInputFrame()
		if frames < len(inputs) {
			in = inputs[frames]
		}
		res = s.Scenario.Step(in)
		if res.State.GameOver {
			frames++
			break
		}
	}

	printSummary(s, res, frames)

	if flagScreen {
		screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
		s.Scenario.Render(screen)
		fmt.Println()
		fmt.Println(screen.String())
	}

	if flagWAV != "" {
		r := audio.Renderer{TickRate: flagFPS}
		if err := r.WriteFile(flagWAV, s.Audio); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s (%d sound events)\n", flagWAV, len(s.Audio.Events()))
	}
}

func printSummary(s *session.Session, res core.StepResult, frames int) {
	st := res.State
	fmt.Printf("Room:      %s\n", s.Scenario.Title())
	fmt.Printf("Frames:    %d\n", frames)
	fmt.Printf("Trinkets:  %d\n", st.Score)
	fmt.Printf("Deaths:    %d\n", st.Deaths)
	fmt.Printf("Flips:     %d\n", st.Flips)
	fmt.Printf("Finished:  %v\n", st.GameOver)
	if w := s.Scenario.World(); w != nil && w.State.Wave.Active {
		fmt.Printf("Wave time: %d frames\n", w.State.Wave.Timer)
	}
	fmt.Printf("Hash:      %016x\n", res.Hash)

	counts := s.Audio.Counts()
	if len(counts) == 0 {
		return
	}
	sounds := make([]sim.Sound, 0, len(counts))
	for snd := range counts {
		sounds = append(sounds, snd)
	}
	sort.Slice(sounds, func(i, j int) bool { return sounds[i] < sounds[j] })
	parts := make([]string, len(sounds))
	for i, snd := range sounds {
		parts[i] = fmt.Sprintf("%s x%d", snd, counts[snd])
	}
	fmt.Printf("Sounds:    %s\n", strings.Join(parts, ", "))
}

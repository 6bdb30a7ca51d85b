package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flipsim/internal/registry"
	"github.com/vovakirdan/flipsim/internal/storage"
)

var flagLimit int

var savesCmd = &cobra.Command{
	Use:   "saves [room]",
	Short: "Show saved runs and checkpoints",
	Long: `Without a room, print the lifetime stats of every room.
With a room, print its stats, checkpoints, collected pickups and recent runs.

Examples:
  flipsim saves
  flipsim saves lab --limit 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSaves,
}

func init() {
	savesCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of checkpoints and runs to show")
}

func runSaves(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening saves database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		err = printAllStats(store)
	} else {
		err = printRoom(store, args[0])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printAllStats(store *storage.Store) error {
	stats, err := store.AllStats()
	if err != nil {
		return err
	}

	fmt.Printf("  %-16s  %8s  %6s  %6s\n", "Room", "Trinkets", "Flips", "Deaths")
	fmt.Printf("  %-16s  %8s  %6s  %6s\n", "----", "--------", "-----", "------")
	for _, r := range registry.List() {
		st, ok := stats[r.ID]
		if !ok {
			fmt.Printf("  %-16s  %8s  %6s  %6s\n", r.ID, "-", "-", "-")
			continue
		}
		fmt.Printf("  %-16s  %8d  %6d  %6d\n", r.ID, st.Trinkets, st.Flips, st.Deaths)
	}
	return nil
}

func printRoom(store *storage.Store, id string) error {
	if !registry.Exists(id) {
		return fmt.Errorf("unknown room %q", id)
	}

	if st, ok, err := store.Stats(id); err != nil {
		return err
	} else if ok {
		fmt.Printf("Stats: %d trinkets, %d flips, %d deaths\n\n", st.Trinkets, st.Flips, st.Deaths)
	}

	collected, err := store.Collected(id)
	if err != nil {
		return err
	}
	if len(collected) > 0 {
		fmt.Printf("Collected: %v\n\n", collected)
	}

	cps, err := store.Checkpoints(id, flagLimit)
	if err != nil {
		return err
	}
	fmt.Println("Checkpoints:")
	if len(cps) == 0 {
		fmt.Println("  none")
	}
	for _, cp := range cps {
		fmt.Printf("  %s  #%-3d (%d, %d) gravity %d\n",
			cp.CreatedAt.Format("2006-01-02 15:04"), cp.SavePoint, cp.X, cp.Y, cp.GravityControl)
	}

	runs, err := store.Runs(id, flagLimit)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Runs:")
	if len(runs) == 0 {
		fmt.Println("  none")
	}
	for _, r := range runs {
		status := "open"
		if r.Finished {
			status = "saved"
		}
		fmt.Printf("  %s  %-9s  %6d frames  %3d deaths  %4d flips  %2d trinkets\n",
			r.StartedAt.Format("2006-01-02 15:04"), status, r.Frames, r.Deaths, r.Flips, r.Trinkets)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flipsim/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all rooms",
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	rooms := registry.List()
	if len(rooms) == 0 {
		fmt.Println("No rooms available.")
		return
	}

	idWidth := len("ID")
	for _, r := range rooms {
		idWidth = max(idWidth, len(r.ID))
	}

	fmt.Println("Available rooms:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", idWidth, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", idWidth, "--", "-----")
	for _, r := range rooms {
		fmt.Printf("  %-*s  %s\n", idWidth, r.ID, r.Title)
	}
	fmt.Println()
	fmt.Println("Run 'flipsim play <id>' to play a room.")
}

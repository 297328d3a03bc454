package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/maze-arcade/internal/registry"
)

var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "List all available level engines",
	Long:  `Shows a list of all level engines registered in the arcade.`,
	Args:  cobra.NoArgs,
	Run:   runEngines,
}

func runEngines(_ *cobra.Command, _ []string) {
	engines := registry.List()

	if len(engines) == 0 {
		fmt.Println("No engines available.")
		return
	}

	colorTitle.Println("Available engines:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, e := range engines {
		if len(e.ID) > maxIDLen {
			maxIDLen = len(e.ID)
		}
	}

	colorHeader.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	colorHeader.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, e := range engines {
		fmt.Printf("  %-*s  %s\n", maxIDLen, e.ID, e.Title)
	}

	fmt.Println()
	colorHint.Println("Run 'arcade play --engine <id>' to use one.")
}

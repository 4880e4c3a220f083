package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tuber-tapper/internal/registry"
)

var pilotsCmd = &cobra.Command{
	Use:   "pilots",
	Short: "List all available autopilots",
	Long:  `Shows a list of all autopilots that 'tapper sim' can run.`,
	Args:  cobra.NoArgs,
	Run:   runPilots,
}

func runPilots(cmd *cobra.Command, args []string) {
	pilots := registry.List()

	if len(pilots) == 0 {
		fmt.Println("No pilots available.")
		return
	}

	fmt.Println("Available pilots:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range pilots {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")

	for _, p := range pilots {
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, p.Description)
	}

	fmt.Println()
	fmt.Println("Run 'tapper sim <id>' to benchmark a pilot.")
}

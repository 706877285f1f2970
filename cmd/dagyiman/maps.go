package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dagyiman/internal/maps"
	"github.com/vovakirdan/dagyiman/internal/registry"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List built-in maps",
	Long:  `Shows the maps bundled with the game.`,
	Args:  cobra.NoArgs,
	Run:   runMaps,
}

func runMaps(_ *cobra.Command, _ []string) {
	infos := registry.List()

	if len(infos) == 0 {
		fmt.Println("No maps available.")
		return
	}

	fmt.Println("Available maps:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, m := range infos {
		if len(m.ID) > maxIDLen {
			maxIDLen = len(m.ID)
		}
	}

	fmt.Printf("  %-*s  %-9s  %s\n", maxIDLen, "ID", "Size", "Name")
	fmt.Printf("  %-*s  %-9s  %s\n", maxIDLen, "--", "----", "----")

	for _, m := range infos {
		size := fmt.Sprintf("%dx%d", m.Cols, m.Rows)
		name := m.Name
		if m.ID == maps.DefaultID {
			name += " (default)"
		}
		fmt.Printf("  %-*s  %-9s  %s\n", maxIDLen, m.ID, size, name)
	}

	fmt.Println()
	fmt.Println("Run 'dagyiman --map <id>' to play a map.")
}

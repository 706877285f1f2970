package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dagyiman/internal/config"
	"github.com/vovakirdan/dagyiman/internal/maze"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a map file",
	Long: `Parses a map file (.txt or .yaml) and reports what the game would
build from it. Exits with status 1 when the map is invalid.

Examples:
  dagyiman check ./my-maze.txt`,
	Args: cobra.ExactArgs(1),
	Run:  runCheck,
}

func runCheck(_ *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	def, err := maze.LoadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	layout, err := def.Layout(cfg.Grid.CellSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	describeLayout(os.Stdout, def, layout)
}

// describeLayout prints what the game builds from a map, each count labelled
// with the tile character that produces it.
func describeLayout(w io.Writer, def maze.Definition, layout *maze.Layout) {
	label := func(name string, t maze.Tile) string {
		return fmt.Sprintf("%s (%c)", name, t.Rune())
	}

	bounds := layout.Bounds()
	fmt.Fprintf(w, "%s: ok\n", def.ID)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-18s %dx%d cells (%.0fx%.0f px)\n", "Size", layout.Cols, layout.Rows, bounds.X, bounds.Y)
	fmt.Fprintf(w, "  %-18s %d\n", label("Walls", maze.TileWall), len(layout.Walls))
	fmt.Fprintf(w, "  %-18s (%.0f, %.0f)\n", label("Player spawn", maze.TilePlayer), layout.PlayerSpawn.X, layout.PlayerSpawn.Y)
	fmt.Fprintf(w, "  %-18s %d\n", label("Chairs", maze.TileEnemy), len(layout.EnemySpawns))
	fmt.Fprintf(w, "  %-18s %d\n", label("Medicine", maze.TilePickup), len(layout.PickupSpawns))
	fmt.Fprintf(w, "  %-18s %d\n", label("Ambulances", maze.TileBonus), len(layout.BonusSpawns))
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dagyiman/internal/core"
	"github.com/vovakirdan/dagyiman/internal/platform/gui"
)

var flagAssets string

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Play in a window",
	Long: `Opens a window sized to the map and plays there. Sprites are
read from the assets directory; missing images are drawn as
coloured blocks.

Examples:
  dagyiman gui
  dagyiman gui --map ward --assets ./assets`,
	Args: cobra.NoArgs,
	Run:  runGUI,
}

func init() {
	guiCmd.Flags().StringVar(&flagAssets, "assets", "assets", "Directory with player.png, enemy.png, medicine.png, ambulance.png, wall.png")
}

func runGUI(_ *cobra.Command, _ []string) {
	env, err := loadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer env.Close()

	assets := gui.LoadAssets(flagAssets, env.logger)
	if missing := assets.Missing(); len(missing) > 0 {
		env.logger.Info("using placeholders", "missing", missing)
	}

	rc := core.RuntimeConfig{
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	w := gui.NewWindow(env.newGame(), assets, env.store, env.music, env.logger, rc)
	if err := gui.Run(w); err != nil {
		env.Close()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

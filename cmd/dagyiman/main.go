// dagyiman is a maze arcade game: collect medicine, dodge the chairs,
// grab an ambulance when you can.
//
// Usage:
//
//	dagyiman                 - Play in the terminal
//	dagyiman gui             - Play in a window
//	dagyiman maps            - List built-in maps
//	dagyiman check <file>    - Validate a map file
//	dagyiman scores [map]    - Show high scores for a map
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: from config, 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.dagyiman/scores.db)
//	--config <path>       - Use a custom game config YAML
//	--map <id|file>       - Play a built-in map or a map file
//	--difficulty <preset> - easy, normal, hard, fixed
//	--mute                - Start with music muted
//	--debug               - Verbose logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dagyiman/internal/core"
	"github.com/vovakirdan/dagyiman/internal/platform/tui"
	"github.com/vovakirdan/dagyiman/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagMap        string
	flagDifficulty string
	flagMute       bool
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dagyiman",
	Short: "Dagyiman - collect medicine, dodge the chairs",
	Long: `Dagyiman is a maze arcade game. Walk the clinic, collect medicine
for points and stay away from the wandering chairs. Ambulances give
an extra life.

Controls:
  Arrows/WASD  - Move (hold)
  Enter        - Select
  Esc          - Back to menu
  +/-          - Volume
  M            - Mute
  Tab          - High scores (menu)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - More lives, chairs relocate less often
  normal - Chairs speed up as your score grows
  hard   - Fewer lives, chairs relocate more often
  fixed  - No speed-up

Examples:
  dagyiman
  dagyiman --map ward
  dagyiman --map ./my-maze.txt --difficulty hard
  dagyiman gui
  dagyiman scores clinic`,
	Args: cobra.NoArgs,
	Run:  runTerminal,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = config value)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagMap, "map", "", "Built-in map id or map file (default: clinic)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Start with music muted")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug messages")

	// Add subcommands
	rootCmd.AddCommand(guiCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(scoresCmd)
}

// runTerminal plays in the terminal, returning to the game after the
// scoreboard until the player quits.
func runTerminal(_ *cobra.Command, _ []string) {
	env, err := loadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer env.Close()

	// Get terminal size
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	g := env.newGame()
	for {
		res, runErr := tui.Run(g, env.store, env.music, env.logger, cfg)
		if runErr != nil {
			env.Close()
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
			os.Exit(1)
		}
		cfg = res.Config
		cfg.Seed = flagSeed // a fresh time seed unless one was given

		if !res.WantsScoreboard {
			return
		}

		goBack, sbErr := tui.RunScoreboard(env.store, env.def.ID, cfg.TickRate, cfg.ScreenW, cfg.ScreenH)
		if sbErr != nil || !goBack {
			return
		}
	}
}

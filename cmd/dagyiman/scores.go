package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dagyiman/internal/config"
	"github.com/vovakirdan/dagyiman/internal/maps"
	"github.com/vovakirdan/dagyiman/internal/storage"
)

var (
	flagAllMaps bool
	flagClear   bool
	flagSession string
	flagLimit   int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [map]",
	Short: "Show high scores for a map",
	Long: `Display the top scores for a map (default: clinic), a summary of
every played map with --all, or the record of one session with --session.
--limit 0 lists every score. --clear deletes the scores of the map.

Examples:
  dagyiman scores
  dagyiman scores ward --limit 0
  dagyiman scores --all
  dagyiman scores --session 3f2a9c1e
  dagyiman scores ward --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagAllMaps, "all", false, "Summarize every map")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every score of the map")
	scoresCmd.Flags().StringVar(&flagSession, "session", "", "Show the score recorded for a session ID")
	scoresCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of scores to list, 0 for all")
	scoresCmd.MarkFlagsMutuallyExclusive("all", "clear", "session")
}

func runScores(_ *cobra.Command, args []string) {
	mapID := maps.DefaultID
	if flagMap != "" {
		mapID = flagMap
	}
	if len(args) > 0 {
		mapID = args[0]
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	w := os.Stdout
	switch {
	case flagAllMaps:
		err = printMapStats(w, store)
	case flagClear:
		err = clearScores(w, store, mapID)
	case flagSession != "":
		err = printSession(w, store, flagSession, tickRateForDisplay())
	default:
		err = printScores(w, store, mapID, flagLimit, tickRateForDisplay())
	}
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printScores lists the best limit scores of a map, or all of them when
// limit is not positive.
func printScores(w io.Writer, store *storage.Store, mapID string, limit, tickRate int) error {
	var scores []storage.ScoreEntry
	var err error
	if limit > 0 {
		scores, err = store.TopScores(mapID, limit)
	} else {
		scores, err = store.AllScores(mapID)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "High Scores - %s\n", mapID)
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'dagyiman --map %s' to set the first high score!\n", mapID)
		return nil
	}

	// Print header
	fmt.Fprintf(w, "  %-4s  %-10s  %-6s  %s\n", "Rank", "Score", "Time", "Date")
	fmt.Fprintf(w, "  %-4s  %-10s  %-6s  %s\n", "----", "-----", "----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Fprintf(w, "  %-4d  %-10d  %-6s  %s\n", i+1, entry.Score, playTime(entry.Ticks, tickRate), dateStr)
	}

	fmt.Fprintln(w)
	if highScore, err := store.HighScore(mapID); err == nil {
		fmt.Fprintf(w, "Best: %d\n", highScore)
	}
	return nil
}

func printSession(w io.Writer, store *storage.Store, sessionID string, tickRate int) error {
	e, err := store.ScoreBySession(sessionID)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("no score recorded for session %q", sessionID)
	}

	fmt.Fprintf(w, "Session %s\n", e.SessionID)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-6s %s\n", "Map", e.MapID)
	fmt.Fprintf(w, "  %-6s %d\n", "Score", e.Score)
	fmt.Fprintf(w, "  %-6s %s\n", "Time", playTime(e.Ticks, tickRate))
	fmt.Fprintf(w, "  %-6s %s\n", "Date", e.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

func clearScores(w io.Writer, store *storage.Store, mapID string) error {
	if err := store.ClearScores(mapID); err != nil {
		return err
	}
	fmt.Fprintf(w, "Cleared scores for %s\n", mapID)
	return nil
}

func printMapStats(w io.Writer, store *storage.Store) error {
	stats, err := store.GetAllMapsStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(w, "  %-12s  %-6s  %-6s  %-7s  %s\n", "Map", "Games", "Best", "Avg", "Last played")
	fmt.Fprintf(w, "  %-12s  %-6s  %-6s  %-7s  %s\n", "---", "-----", "----", "---", "-----------")
	for _, id := range ids {
		s := stats[id]
		fmt.Fprintf(w, "  %-12s  %-6d  %-6d  %-7.1f  %s\n",
			id, s.GamesCount, s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

// tickRateForDisplay returns the rate used to turn stored ticks into time.
func tickRateForDisplay() int {
	if flagFPS > 0 {
		return flagFPS
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Default().Timing.TickRate
	}
	return cfg.Timing.TickRate
}

func playTime(ticks, tickRate int) string {
	if tickRate <= 0 {
		tickRate = 60
	}
	secs := ticks / tickRate
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

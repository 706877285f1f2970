package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dagyiman/internal/audio"
	"github.com/vovakirdan/dagyiman/internal/config"
	"github.com/vovakirdan/dagyiman/internal/game"
	"github.com/vovakirdan/dagyiman/internal/maps"
	"github.com/vovakirdan/dagyiman/internal/maze"
	"github.com/vovakirdan/dagyiman/internal/registry"
	"github.com/vovakirdan/dagyiman/internal/storage"
)

// env is everything a play command needs, built from the global flags.
type env struct {
	cfg     config.GameConfig
	def     maze.Definition
	logger  *log.Logger
	logFile io.Closer
	store   *storage.Store // nil when the database is unavailable
	music   *audio.Music
}

// loadEnv loads the config and the map. Errors here are configuration
// errors and end the process; a missing database or music is not.
func loadEnv() (*env, error) {
	logger, logFile := newLogger()
	e := &env{logger: logger, logFile: logFile}

	cfg, err := loadConfig()
	if err != nil {
		e.Close()
		return nil, err
	}
	e.cfg = cfg

	def, err := resolveMap(flagMap)
	if err != nil {
		e.Close()
		return nil, err
	}
	if _, err := def.Layout(cfg.Grid.CellSize); err != nil {
		e.Close()
		return nil, err
	}
	e.def = def

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Continue without storage - game still works
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		store = nil
	}
	e.store = store

	e.music = audio.NewMusic(cfg.Audio, logger)
	if err := e.music.Start(); err != nil {
		logger.Warn("music disabled", "err", err)
	}

	logger.Info("starting",
		"map", def.ID,
		"source", def.Source,
		"tick_rate", cfg.Timing.TickRate,
		"difficulty", flagDifficulty,
		"progression", config.NewDifficultyManager(cfg.Difficulty).IsEnabled(),
	)
	return e, nil
}

// Close releases the music, the database and the log file.
func (e *env) Close() {
	if e.music != nil {
		e.music.Close()
	}
	if e.store != nil {
		e.store.Close()
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}

func (e *env) newGame() *game.Game {
	return game.New(e.def, e.cfg)
}

// loadConfig applies the config search order, the difficulty preset and --mute.
func loadConfig() (config.GameConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	config.ApplyPreset(&cfg, preset)

	if flagMute {
		cfg.Audio.Muted = true
	}
	return cfg, nil
}

// resolveMap accepts a registered map id or a path to a map file.
func resolveMap(arg string) (maze.Definition, error) {
	if arg == "" {
		arg = maps.DefaultID
	}
	if registry.Exists(arg) {
		return registry.Get(arg)
	}
	if slices.Contains(maze.FormatExtensions(), strings.ToLower(filepath.Ext(arg))) {
		return maze.LoadFile(arg)
	}
	return maze.Definition{}, fmt.Errorf("unknown map %q (run 'dagyiman maps' to list maps)", arg)
}

// newLogger logs to ~/.dagyiman/dagyiman.log because the terminal shell
// owns the screen. Falls back to stderr.
func newLogger() (*log.Logger, io.Closer) {
	level := log.InfoLevel
	if flagDebug {
		level = log.DebugLevel
	}
	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          "dagyiman",
		Level:           level,
	}

	path := config.UserPath("dagyiman.log")
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if err == nil {
				return log.NewWithOptions(f, opts), f
			}
		}
	}
	return log.NewWithOptions(os.Stderr, opts), nil
}

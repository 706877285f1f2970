package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the user and local directories.
const FileName = "dagyiman.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.dagyiman/dagyiman.yaml -> ./configs/dagyiman.yaml -> embedded default
// Keys missing from a file keep their default values. The first file that
// exists is used; if it cannot be parsed or is invalid, Load fails rather
// than falling through to the next location.
func Load(customPath string) (GameConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, found, err := tryFile(customPath)
		if err != nil {
			return cfg, err
		}
		if !found {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, os.ErrNotExist)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserPath(FileName); userCfgPath != "" {
		if cfg, found, err := tryFile(userCfgPath); found || err != nil {
			return cfg, err
		}
	}

	// Try local configs directory
	if cfg, found, err := tryFile(filepath.Join("configs", FileName)); found || err != nil {
		return cfg, err
	}

	// Use embedded default YAML
	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil || cfg.Validate() != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryFile loads a config file over the defaults. A file that does not exist
// is reported as not found, any other failure as an error.
func tryFile(path string) (GameConfig, bool, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, false, nil
	}
	if err != nil {
		return cfg, true, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, true, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, true, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, true, nil
}

// UserPath returns a path inside ~/.dagyiman, or empty if home is unavailable.
func UserPath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, ".dagyiman"}, elem...)...)
}

// Validate reports every value that would make a session unplayable.
func (c GameConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Grid.CellSize > 0, "grid.cell_size must be positive, got %v", c.Grid.CellSize)
	check(c.Player.Speed > 0, "player.speed must be positive, got %v", c.Player.Speed)
	check(c.Player.Size > 0, "player.size must be positive, got %v", c.Player.Size)
	check(c.Player.Lives > 0, "player.lives must be positive, got %d", c.Player.Lives)
	check(c.Enemy.Speed > 0, "enemy.speed must be positive, got %v", c.Enemy.Speed)
	check(c.Enemy.Size > 0, "enemy.size must be positive, got %v", c.Enemy.Size)
	check(c.Enemy.RespawnInterval > 0, "enemy.respawn_interval must be positive, got %v", c.Enemy.RespawnInterval)
	check(c.Pickup.Size > 0, "pickup.size must be positive, got %v", c.Pickup.Size)
	check(c.Pickup.SearchSize > 0, "pickup.search_size must be positive, got %v", c.Pickup.SearchSize)
	check(c.Pickup.Floor > 0, "pickup.floor must be positive, got %d", c.Pickup.Floor)
	check(c.Pickup.Batch > 0, "pickup.batch must be positive, got %d", c.Pickup.Batch)
	check(c.Pickup.SpawnInterval > 0, "pickup.spawn_interval must be positive, got %v", c.Pickup.SpawnInterval)
	check(c.Bonus.Size > 0, "bonus.size must be positive, got %v", c.Bonus.Size)
	check(c.Bonus.Floor > 0, "bonus.floor must be positive, got %d", c.Bonus.Floor)
	check(c.Bonus.SpawnInterval > 0, "bonus.spawn_interval must be positive, got %v", c.Bonus.SpawnInterval)
	check(c.Timing.TickRate > 0, "timing.tick_rate must be positive, got %d", c.Timing.TickRate)
	check(c.Timing.BaseTickRate > 0, "timing.base_tick_rate must be positive, got %d", c.Timing.BaseTickRate)
	check(c.Timing.Loading >= 0, "timing.loading must not be negative, got %v", c.Timing.Loading)
	check(c.Timing.Fatality >= 0, "timing.fatality must not be negative, got %v", c.Timing.Fatality)
	check(c.Placement.Attempts > 0, "placement.attempts must be positive, got %d", c.Placement.Attempts)
	check(c.Placement.BorderCells >= 0, "placement.border_cells must not be negative, got %d", c.Placement.BorderCells)
	check(c.Placement.AvoidCells >= 0, "placement.avoid_cells must not be negative, got %v", c.Placement.AvoidCells)
	check(c.Difficulty.Scaling.RespawnCut >= 0, "difficulty.scaling.respawn_cut must not be negative, got %v", c.Difficulty.Scaling.RespawnCut)
	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume must be within [0, 1], got %v", c.Audio.Volume)

	switch c.Difficulty.Progression.Type {
	case "", "none", "score", "time":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type %q is not one of score, time, none", c.Difficulty.Progression.Type))
	}

	return errors.Join(errs...)
}

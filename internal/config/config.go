// Package config provides YAML-based game configuration loading and
// difficulty management for Dagyiman.
package config

import "time"

// GameConfig contains all tunable parameters of a session.
// Speeds are pixels per tick at Timing.BaseTickRate.
type GameConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Player     PlayerConfig     `yaml:"player"`
	Enemy      EnemyConfig      `yaml:"enemy"`
	Pickup     PickupConfig     `yaml:"pickup"`
	Bonus      BonusConfig      `yaml:"bonus"`
	Timing     TimingConfig     `yaml:"timing"`
	Placement  PlacementConfig  `yaml:"placement"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Audio      AudioConfig      `yaml:"audio"`
}

// GridConfig defines the tile size in pixels.
type GridConfig struct {
	CellSize float64 `yaml:"cell_size"`
}

// PlayerConfig defines the player entity.
type PlayerConfig struct {
	Speed float64 `yaml:"speed"`
	Size  float64 `yaml:"size"`
	Lives int     `yaml:"lives"`
}

// EnemyConfig defines the wandering chairs.
type EnemyConfig struct {
	Speed           float64       `yaml:"speed"`
	Size            float64       `yaml:"size"`
	RespawnInterval time.Duration `yaml:"respawn_interval"`
}

// PickupConfig defines medicine pickups.
// SearchSize is the footprint tested by the slot search; the sprite of Size
// is centered on the chosen grid cell.
type PickupConfig struct {
	Size          float64       `yaml:"size"`
	SearchSize    float64       `yaml:"search_size"`
	Score         int           `yaml:"score"`
	Floor         int           `yaml:"floor"`
	Batch         int           `yaml:"batch"`
	SpawnInterval time.Duration `yaml:"spawn_interval"`
}

// BonusConfig defines ambulance bonus items.
type BonusConfig struct {
	Size          float64       `yaml:"size"`
	Lives         int           `yaml:"lives"`
	Floor         int           `yaml:"floor"`
	SpawnInterval time.Duration `yaml:"spawn_interval"`
}

// TimingConfig defines the tick rate and the fixed-length screens.
type TimingConfig struct {
	TickRate     int           `yaml:"tick_rate"`
	BaseTickRate int           `yaml:"base_tick_rate"` // rate the speeds were tuned for
	Loading      time.Duration `yaml:"loading"`
	Fatality     time.Duration `yaml:"fatality"`
}

// PlacementConfig defines the free-slot search.
type PlacementConfig struct {
	Attempts    int     `yaml:"attempts"`
	BorderCells int     `yaml:"border_cells"`
	AvoidCells  float64 `yaml:"avoid_cells"` // enemy exclusion radius around the player
}

// AudioConfig defines background music.
type AudioConfig struct {
	Music  string  `yaml:"music"`
	Volume float64 `yaml:"volume"` // 0.0 to 1.0
	Muted  bool    `yaml:"muted"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to enemy speed at max difficulty
	RespawnCut      float64 `yaml:"respawn_cut"`      // Fraction taken off the chair respawn interval at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
// Easy and hard also change the starting lives and the chair respawn pace.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}

	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives += 2
		cfg.Enemy.RespawnInterval = cfg.Enemy.RespawnInterval * 3 / 2
	case DifficultyHard:
		cfg.Player.Lives = max(1, cfg.Player.Lives-1)
		cfg.Enemy.RespawnInterval = cfg.Enemy.RespawnInterval * 2 / 3
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}

// ScaledSpeed converts a per-tick speed tuned at BaseTickRate into the
// per-tick speed at TickRate, so pixels per second stay the same.
func (t TimingConfig) ScaledSpeed(perTick float64) float64 {
	if t.TickRate <= 0 || t.BaseTickRate <= 0 {
		return perTick
	}
	return perTick * float64(t.BaseTickRate) / float64(t.TickRate)
}

// Ticks converts a duration into a whole number of ticks, rounding up.
func (t TimingConfig) Ticks(d time.Duration) int {
	if t.TickRate <= 0 || d <= 0 {
		return 0
	}
	sec := int64(time.Second)
	return int((int64(d)*int64(t.TickRate) + sec - 1) / sec)
}

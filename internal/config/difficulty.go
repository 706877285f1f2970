package config

import (
	"math"
	"time"
)

// maxRespawnCut keeps the chair respawn interval from collapsing to zero.
const maxRespawnCut = 0.9

// DifficultyManager turns a session's score or play time into a difficulty
// level and scales chair parameters by it.
type DifficultyManager struct {
	cfg     DifficultyConfig
	initial float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:     cfg,
		initial: clampF(cfg.InitialLevel, 0, 1),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty in [0, 1]. It starts at the initial level and
// reaches 1 when score (or ticks) hits progression.max_at. Disabled means 0.
func (d *DifficultyManager) Level(score, ticks int) float64 {
	if !d.cfg.Enabled {
		return 0
	}

	var done int
	switch d.cfg.Progression.Type {
	case "score":
		done = score
	case "time":
		done = ticks
	default:
		return d.initial
	}

	progress := 1.0
	if d.cfg.Progression.MaxAt > 0 {
		progress = clampF(float64(done)/float64(d.cfg.Progression.MaxAt), 0, 1)
	}
	return d.initial + progress*(1-d.initial)
}

// EnemySpeed grows from base to base*(1+speed_multiplier) at level 1.
func (d *DifficultyManager) EnemySpeed(base float64, score, ticks int) float64 {
	return base * (1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}

// RespawnInterval shrinks from base to base*(1-respawn_cut) at level 1.
func (d *DifficultyManager) RespawnInterval(base time.Duration, score, ticks int) time.Duration {
	cut := clampF(d.cfg.Scaling.RespawnCut, 0, maxRespawnCut) * d.Level(score, ticks)
	return time.Duration(math.Round(float64(base) * (1 - cut)))
}

func clampF(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

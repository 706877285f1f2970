package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/dagyiman.yaml
var defaultYAML []byte

// Default returns the hardcoded default configuration.
// It mirrors defaults/dagyiman.yaml.
func Default() GameConfig {
	return GameConfig{
		Grid: GridConfig{CellSize: 30},
		Player: PlayerConfig{
			Speed: 4,
			Size:  26,
			Lives: 3,
		},
		Enemy: EnemyConfig{
			Speed:           3.5,
			Size:            56,
			RespawnInterval: 60 * time.Second,
		},
		Pickup: PickupConfig{
			Size:          26,
			SearchSize:    10,
			Score:         10,
			Floor:         15,
			Batch:         3,
			SpawnInterval: 3 * time.Second,
		},
		Bonus: BonusConfig{
			Size:          26,
			Lives:         1,
			Floor:         2,
			SpawnInterval: 30 * time.Second,
		},
		Timing: TimingConfig{
			TickRate:     60,
			BaseTickRate: 60,
			Loading:      2 * time.Second,
			Fatality:     5 * time.Second,
		},
		Placement: PlacementConfig{
			Attempts:    50,
			BorderCells: 2,
			AvoidCells:  6,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 1000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				RespawnCut:      0.5,
			},
		},
		Audio: AudioConfig{
			Music:  "assets/music.mp3",
			Volume: 0.1,
		},
	}
}

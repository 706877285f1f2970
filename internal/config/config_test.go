package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded yaml drifted from Default():\n got %+v\nwant %+v", cfg, Default())
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "player:\n  lives: 7\nenemy:\n  respawn_interval: 90s\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Player.Lives != 7 {
		t.Errorf("Player.Lives = %d, expected 7", cfg.Player.Lives)
	}
	if cfg.Enemy.RespawnInterval != 90*time.Second {
		t.Errorf("Enemy.RespawnInterval = %v, expected 90s", cfg.Enemy.RespawnInterval)
	}
	// Untouched keys keep their defaults.
	if cfg.Player.Speed != 4 || cfg.Pickup.Floor != 15 {
		t.Errorf("defaults lost: speed=%v floor=%d", cfg.Player.Speed, cfg.Pickup.Floor)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: got %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("player: [1, 2"), 0o644)
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("bad yaml: got %v", err)
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("timing:\n  tick_rate: 0\n"), 0o644)
	if _, err := Load(invalid); err == nil || !strings.Contains(err.Error(), "timing.tick_rate") {
		t.Errorf("invalid values: got %v", err)
	}
}

func TestLoadBrokenUserConfigFails(t *testing.T) {
	for _, tc := range []struct {
		name, data, want string
	}{
		{"bad yaml", "player: [1, 2", "failed to parse"},
		{"invalid values", "player:\n  lives: 0\n", "player.lives"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			home := t.TempDir()
			t.Setenv("HOME", home)
			t.Chdir(t.TempDir())

			path := filepath.Join(home, ".dagyiman", FileName)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(path, []byte(tc.data), 0o644); err != nil {
				t.Fatal(err)
			}

			_, err := Load("")
			if err == nil || !strings.Contains(err.Error(), tc.want) || !strings.Contains(err.Error(), path) {
				t.Errorf("Load() = %v, expected an error naming %s and %q", err, path, tc.want)
			}
		})
	}
}

func TestLoadBrokenLocalConfigFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.Mkdir("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", FileName), []byte("timing:\n  tick_rate: -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(""); err == nil || !strings.Contains(err.Error(), "timing.tick_rate") {
		t.Errorf("Load() = %v, expected the local config to be rejected", err)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, expected the defaults", cfg)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Grid.CellSize = 0
	cfg.Enemy.Speed = -1
	cfg.Audio.Volume = 2
	cfg.Difficulty.Progression.Type = "vibes"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"grid.cell_size", "enemy.speed", "audio.volume", "vibes"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %s", err, want)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		lives      int
		respawn    time.Duration
		enabled    bool
		initialLvl float64
	}{
		{"", 3, 60 * time.Second, false, 0},
		{DifficultyEasy, 5, 90 * time.Second, true, 0},
		{DifficultyNormal, 3, 60 * time.Second, true, 0.3},
		{DifficultyHard, 2, 40 * time.Second, true, 0.7},
		{DifficultyFixed, 3, 60 * time.Second, false, 0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := Default()
			ApplyPreset(&cfg, tc.preset)

			if cfg.Player.Lives != tc.lives {
				t.Errorf("Lives = %d, expected %d", cfg.Player.Lives, tc.lives)
			}
			if cfg.Enemy.RespawnInterval != tc.respawn {
				t.Errorf("RespawnInterval = %v, expected %v", cfg.Enemy.RespawnInterval, tc.respawn)
			}
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.initialLvl {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tc.initialLvl)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard", "fixed"} {
		if _, ok := ParsePreset(s); !ok {
			t.Errorf("ParsePreset(%q) rejected", s)
		}
	}
	if _, ok := ParsePreset("nightmare"); ok {
		t.Error("ParsePreset should reject unknown presets")
	}
}

func TestScaledSpeed(t *testing.T) {
	tests := []struct {
		tickRate int
		perTick  float64
		expected float64
	}{
		{60, 4, 4},
		{30, 4, 8},
		{120, 3.5, 1.75},
		{0, 4, 4}, // unset rate leaves the speed alone
	}

	for _, tc := range tests {
		timing := TimingConfig{TickRate: tc.tickRate, BaseTickRate: 60}
		if got := timing.ScaledSpeed(tc.perTick); got != tc.expected {
			t.Errorf("ScaledSpeed(%v) at %d Hz = %v, expected %v", tc.perTick, tc.tickRate, got, tc.expected)
		}
	}
}

func TestTicks(t *testing.T) {
	timing := TimingConfig{TickRate: 60}

	if got := timing.Ticks(2 * time.Second); got != 120 {
		t.Errorf("Ticks(2s) = %d, expected 120", got)
	}
	if got := timing.Ticks(10 * time.Millisecond); got != 1 {
		t.Errorf("Ticks(10ms) = %d, expected 1 (rounded up)", got)
	}
	if got := timing.Ticks(0); got != 0 {
		t.Errorf("Ticks(0) = %d, expected 0", got)
	}

	// 1/60 s is not a whole number of nanoseconds.
	for _, tc := range []struct {
		d        time.Duration
		rate     int
		expected int
	}{
		{time.Second, 60, 60},
		{3 * time.Second, 60, 180},
		{1500 * time.Millisecond, 60, 90},
		{2 * time.Second, 144, 288},
		{time.Second, 7, 7},
		{time.Second + time.Nanosecond, 60, 61},
	} {
		timing := TimingConfig{TickRate: tc.rate}
		if got := timing.Ticks(tc.d); got != tc.expected {
			t.Errorf("Ticks(%v) at %d Hz = %d, expected %d", tc.d, tc.rate, got, tc.expected)
		}
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0, RespawnCut: 0.5},
	}
	dm := NewDifficultyManager(cfg)

	if !dm.IsEnabled() {
		t.Error("manager should be enabled")
	}
	if lvl := dm.Level(0, 0); lvl != 0.5 {
		t.Errorf("Level(0) = %v, expected 0.5", lvl)
	}
	if lvl := dm.Level(50, 0); lvl != 0.75 {
		t.Errorf("Level(50) = %v, expected 0.75", lvl)
	}
	if lvl := dm.Level(500, 0); lvl != 1.0 {
		t.Errorf("Level(500) = %v, expected clamped 1.0", lvl)
	}
	if s := dm.EnemySpeed(3.5, 500, 0); s != 7 {
		t.Errorf("EnemySpeed at max = %v, expected 7", s)
	}
	if r := dm.RespawnInterval(60*time.Second, 500, 0); r != 30*time.Second {
		t.Errorf("RespawnInterval at max = %v, expected 30s", r)
	}
}

func TestDifficultyManagerTimeProgression(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 600},
		Scaling:     ScalingConfig{RespawnCut: 5},
	})

	if lvl := dm.Level(10000, 300); lvl != 0.5 {
		t.Errorf("Level at half time = %v, expected 0.5", lvl)
	}
	// The cut is capped so chairs never respawn every tick.
	if r := dm.RespawnInterval(10*time.Second, 0, 600); r != time.Second {
		t.Errorf("RespawnInterval = %v, expected 1s", r)
	}
}

func TestDifficultyManagerDisabled(t *testing.T) {
	dm := NewDifficultyManager(Default().Difficulty)

	if dm.IsEnabled() {
		t.Error("default difficulty should be disabled")
	}
	if s := dm.EnemySpeed(3.5, 10000, 10000); s != 3.5 {
		t.Errorf("disabled EnemySpeed = %v, expected base 3.5", s)
	}
	if r := dm.RespawnInterval(time.Minute, 10000, 10000); r != time.Minute {
		t.Errorf("disabled RespawnInterval = %v, expected 1m", r)
	}
}

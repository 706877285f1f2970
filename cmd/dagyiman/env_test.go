package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMap(t *testing.T) {
	def, err := resolveMap("")
	require.NoError(t, err)
	assert.Equal(t, "clinic", def.ID)

	def, err = resolveMap("ward")
	require.NoError(t, err)
	assert.Equal(t, "builtin", def.Source)

	_, err = resolveMap("nowhere")
	assert.Error(t, err)
}

func TestResolveMapFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.txt")
	require.NoError(t, os.WriteFile(path, []byte("WWWWW\nWP EW\nWWWWW\n"), 0o644))

	def, err := resolveMap(path)
	require.NoError(t, err)
	assert.Equal(t, path, def.Source)
}

func TestLoadConfigRejectsUnknownDifficulty(t *testing.T) {
	old := flagDifficulty
	t.Cleanup(func() { flagDifficulty = old })

	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	flagDifficulty = "brutal"
	_, err := loadConfig()
	assert.ErrorContains(t, err, "brutal")

	flagDifficulty = "hard"
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Difficulty.Enabled)
}

func TestPlayTime(t *testing.T) {
	assert.Equal(t, "0:00", playTime(0, 60))
	assert.Equal(t, "1:05", playTime(65*60, 60))
	assert.Equal(t, "0:02", playTime(60, 30))
}

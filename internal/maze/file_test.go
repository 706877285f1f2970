package maze

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileText(t *testing.T) {
	def, err := LoadFile(filepath.Join("testdata", "tiny.txt"))
	require.NoError(t, err)

	assert.Equal(t, "tiny", def.ID)
	assert.Equal(t, "tiny", def.Name)
	assert.Len(t, def.Rows, 5)
	assert.Equal(t, filepath.Join("testdata", "tiny.txt"), def.Source)

	l, err := def.Layout(30)
	require.NoError(t, err)
	assert.Len(t, l.EnemySpawns, 1)
	assert.Len(t, l.PickupSpawns, 1)
	assert.Len(t, l.BonusSpawns, 1)
}

func TestLoadFileYAML(t *testing.T) {
	def, err := LoadFile(filepath.Join("testdata", "tiny.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "tiny-yaml", def.ID)
	assert.Equal(t, "Tiny Closet", def.Name)
	assert.Equal(t, Grid{"WWWWW", "W P W", "W  EW", "WWWWW"}, def.Rows)
}

func TestLoadFileRejectsBadMaps(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "nospawn.txt"))
	assert.ErrorIs(t, err, ErrMissingPlayerSpawn)

	_, err = LoadFile(filepath.Join("testdata", "ragged.txt"))
	assert.ErrorIs(t, err, ErrRaggedRows)

	_, err = LoadFile(filepath.Join("testdata", "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadFile("level.json")
	assert.ErrorContains(t, err, "unsupported map extension")
}

func TestParseTextTrimsLineEndings(t *testing.T) {
	def := ParseText("crlf", []byte("WWW\r\nWPW\r\nWWW\r\n\r\n\n"))
	assert.Equal(t, Grid{"WWW", "WPW", "WWW"}, def.Rows)
}

func TestDefinitionLayoutWrapsID(t *testing.T) {
	def := Definition{ID: "broken", Rows: Grid{"WWW"}}
	_, err := def.Layout(30)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingPlayerSpawn)
	assert.Contains(t, err.Error(), "map broken")
}

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/vovakirdan/dagyiman/internal/maps"
	"github.com/vovakirdan/dagyiman/internal/storage"
)

func TestScoreboardShowsCurrentMap(t *testing.T) {
	store := openStore(t)
	for i, score := range []int{30, 50} {
		_, err := store.SaveScore(storage.ScoreEntry{
			MapID:     "clinic",
			SessionID: string(rune('a' + i)),
			Score:     score,
			Ticks:     65 * 60,
		})
		require.NoError(t, err)
	}

	m := NewScoreboardModel(store, "clinic", 60, 100, 30)
	assert.Equal(t, "clinic", m.mapID())
	require.Len(t, m.scores, 2)
	assert.Equal(t, 50, m.scores[0].Score)
	assert.Contains(t, m.summary(), "Games: 2  Best: 50")
	assert.Contains(t, m.View(), "1:05")

	m.shift(1)
	assert.Equal(t, "ward", m.mapID())
	assert.Empty(t, m.scores)
	assert.Equal(t, "Not played yet", m.summary())
	assert.Contains(t, m.View(), "No scores recorded yet.")

	m.shift(1)
	assert.Equal(t, "clinic", m.mapID(), "wraps around")
}

func TestScoreboardFileMapFirst(t *testing.T) {
	m := NewScoreboardModel(nil, "my-maze", 0, 100, 30)
	require.NotEmpty(t, m.maps)
	assert.Equal(t, "my-maze", m.maps[0].ID)
	assert.Equal(t, 60, m.tickRate)
	assert.Empty(t, m.scores)
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, "clinic", 60, 100, 30)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	sb := next.(ScoreboardModel)
	assert.True(t, sb.IsGoingBack())
	assert.NotNil(t, cmd)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	sb = next.(ScoreboardModel)
	assert.True(t, sb.IsQuitting())
	assert.False(t, sb.IsGoingBack())
}

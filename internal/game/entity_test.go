package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/dagyiman/internal/core"
)

func TestDirectionReverse(t *testing.T) {
	for _, d := range Directions {
		assert.Equal(t, d, d.Reverse().Reverse(), d.String())
		assert.Equal(t, core.Vec{}, d.Vector().Add(d.Reverse().Vector()), d.String())
	}
}

func TestPlayerStepFreeMove(t *testing.T) {
	p := NewPlayer(core.V(100, 100), 26, 4, 3)

	moved := p.Step(core.FrameOf(core.ActionLeft, core.ActionUp), nil)

	assert.True(t, moved)
	assert.Equal(t, core.V(96, 96), p.Pos)
	assert.Equal(t, core.V(100, 100), p.Spawn, "spawn is not moved")
}

func TestPlayerStepOpposingKeysCancel(t *testing.T) {
	p := NewPlayer(core.V(100, 100), 26, 4, 3)

	moved := p.Step(core.FrameOf(core.ActionLeft, core.ActionRight), nil)

	assert.False(t, moved)
	assert.Equal(t, core.V(100, 100), p.Pos)
}

func TestPlayerStepWallRevertsWithoutSliding(t *testing.T) {
	walls := []core.Rect{core.NewRect(60, 0, 30, 300)}
	p := NewPlayer(core.V(32, 100), 26, 4, 3)

	// Down alone would be free, but the diagonal clips the wall on x.
	moved := p.Step(core.FrameOf(core.ActionRight, core.ActionDown), walls)

	assert.False(t, moved)
	assert.Equal(t, core.V(32, 100), p.Pos)

	// Ending flush against the wall is not an overlap.
	p.Pos = core.V(30, 100)
	assert.True(t, p.Step(core.FrameOf(core.ActionRight), walls))
	assert.Equal(t, core.V(34, 100), p.Pos)

	assert.False(t, p.Step(core.FrameOf(core.ActionRight), walls))
	assert.Equal(t, core.V(34, 100), p.Pos)

	assert.True(t, p.Step(core.FrameOf(core.ActionDown), walls))
	assert.Equal(t, core.V(34, 104), p.Pos)
}

func TestPlayerResetToSpawn(t *testing.T) {
	p := NewPlayer(core.V(10, 20), 26, 4, 3)
	p.Pos = core.V(300, 300)
	p.ResetToSpawn()
	assert.Equal(t, core.V(10, 20), p.Pos)
}

func TestEnemyStepFreeMove(t *testing.T) {
	e := &Enemy{Pos: core.V(100, 100), Size: core.V(56, 56), Speed: 3.5, Heading: DirLeft}

	bounced := e.Step(nil, rand.New(rand.NewSource(1)))

	assert.False(t, bounced)
	assert.Equal(t, core.V(96.5, 100), e.Pos)
	assert.Equal(t, DirLeft, e.Heading)
}

func TestEnemyBounceNeverReverses(t *testing.T) {
	walls := []core.Rect{core.NewRect(158, 0, 30, 400)}
	seen := make(map[Direction]bool)

	for seed := int64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		e := &Enemy{Pos: core.V(100, 100), Size: core.V(56, 56), Speed: 3.5, Heading: DirRight}

		bounced := e.Step(walls, rng)

		require.True(t, bounced)
		assert.NotEqual(t, DirLeft, e.Heading, "seed %d reversed", seed)
		assert.Equal(t, core.V(100, 100), e.Pos, "position must be reverted")
		seen[e.Heading] = true
	}

	// Uniform over the three remaining headings.
	assert.True(t, seen[DirUp])
	assert.True(t, seen[DirDown])
	assert.True(t, seen[DirRight])
}

func TestEnemyMaybeRespawn(t *testing.T) {
	interval := 60 * time.Second
	target := core.V(300, 300)
	calls := 0
	found := true
	find := func(size core.Vec) (core.Vec, bool) {
		calls++
		assert.Equal(t, core.V(56, 56), size)
		return target, found
	}

	e := &Enemy{Pos: core.V(100, 100), Size: core.V(56, 56), Heading: DirUp, SpawnTime: 10 * time.Second}

	// Too early: no search at all.
	assert.False(t, e.MaybeRespawn(69*time.Second, interval, find))
	assert.Zero(t, calls)

	// Due, but no slot: stays put and keeps the old spawn time.
	found = false
	assert.False(t, e.MaybeRespawn(70*time.Second, interval, find))
	assert.Equal(t, core.V(100, 100), e.Pos)
	assert.Equal(t, 10*time.Second, e.SpawnTime)

	// Retried on the next eligible tick.
	found = true
	assert.True(t, e.MaybeRespawn(71*time.Second, interval, find))
	assert.Equal(t, target, e.Pos)
	assert.Equal(t, 71*time.Second, e.SpawnTime)
	assert.Equal(t, DirUp, e.Heading, "heading is kept")
	assert.Equal(t, 2, calls)
}

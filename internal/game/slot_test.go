package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/dagyiman/internal/core"
)

func TestFindFreeSlotNeverOverlaps(t *testing.T) {
	bounds := core.V(600, 450)
	size := core.V(56, 56)
	avoid := core.V(300, 210)
	radius := 180.0

	for seed := int64(0); seed < 100; seed++ {
		rng := rand.New(rand.NewSource(seed))

		// A random clutter of blocks on the lattice and off it.
		var occupied []core.Rect
		for range 25 {
			occupied = append(occupied, core.NewRect(
				float64(rng.Intn(600)), float64(rng.Intn(450)), 10+float64(rng.Intn(60)), 10+float64(rng.Intn(60))))
		}

		f := NewSlotFinder(bounds, 30, 2, 50, rng)
		pos, ok := f.FindFreeSlot(occupied, size, &avoid, radius)
		if !ok {
			continue
		}

		r := core.RectAt(pos, size)
		assert.False(t, r.IntersectsAny(occupied), "seed %d: %+v overlaps", seed, r)
		assert.GreaterOrEqual(t, core.Dist(pos, avoid), radius, "seed %d: inside avoid radius", seed)
	}
}

func TestFindFreeSlotLattice(t *testing.T) {
	bounds := core.V(300, 240)
	size := core.V(26, 26)
	f := NewSlotFinder(bounds, 30, 2, 50, rand.New(rand.NewSource(7)))

	for range 200 {
		pos, ok := f.FindFreeSlot(nil, size, nil, 0)
		require.True(t, ok)

		assert.Zero(t, math.Mod(pos.X, 30))
		assert.Zero(t, math.Mod(pos.Y, 30))
		assert.GreaterOrEqual(t, pos.X, 60.0)
		assert.GreaterOrEqual(t, pos.Y, 60.0)
		assert.Less(t, pos.X, bounds.X-size.X)
		assert.Less(t, pos.Y, bounds.Y-size.Y)
	}
}

func TestFindFreeSlotExhaustion(t *testing.T) {
	bounds := core.V(300, 300)
	f := NewSlotFinder(bounds, 30, 2, 50, rand.New(rand.NewSource(1)))

	// Everything is covered.
	pos, ok := f.FindFreeSlot([]core.Rect{core.NewRect(0, 0, 300, 300)}, core.V(10, 10), nil, 0)
	assert.False(t, ok)
	assert.Equal(t, core.Vec{}, pos)

	// The avoid radius swallows the whole map.
	center := core.V(150, 150)
	_, ok = f.FindFreeSlot(nil, core.V(10, 10), &center, 1000)
	assert.False(t, ok)

	// No lattice point fits a rectangle this large.
	_, ok = f.FindFreeSlot(nil, core.V(250, 250), nil, 0)
	assert.False(t, ok)
}

func TestFindFreeSlotDeterministic(t *testing.T) {
	draw := func() []core.Vec {
		f := NewSlotFinder(core.V(1380, 900), 30, 2, 50, rand.New(rand.NewSource(42)))
		var out []core.Vec
		for range 10 {
			pos, _ := f.FindFreeSlot(nil, core.V(26, 26), nil, 0)
			out = append(out, pos)
		}
		return out
	}
	assert.Equal(t, draw(), draw())
}

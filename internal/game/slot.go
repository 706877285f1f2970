package game

import (
	"math/rand"

	"github.com/vovakirdan/dagyiman/internal/core"
)

// SlotFinder draws random grid-aligned positions that do not overlap anything.
type SlotFinder struct {
	Bounds   core.Vec // pixel extent of the map
	Cell     float64
	Border   int // cells kept clear along the top and left edges
	Attempts int
	rng      *rand.Rand
}

// NewSlotFinder creates a finder over the given map extent.
func NewSlotFinder(bounds core.Vec, cell float64, border, attempts int, rng *rand.Rand) *SlotFinder {
	return &SlotFinder{
		Bounds:   bounds,
		Cell:     cell,
		Border:   border,
		Attempts: attempts,
		rng:      rng,
	}
}

// lattice returns the admissible top-left coordinates along one axis:
// start, start+cell, ... while the rectangle still fits before limit.
func (f *SlotFinder) lattice(limit, size float64) []float64 {
	var out []float64
	for v := float64(f.Border) * f.Cell; v < limit-size; v += f.Cell {
		out = append(out, v)
	}
	return out
}

// FindFreeSlot returns a position where a rectangle of size overlaps none of
// occupied and, when avoid is set, lies at least radius away from it
// (top-left to top-left). It gives up after Attempts draws; a false result
// means "skip this spawn", never an error.
func (f *SlotFinder) FindFreeSlot(occupied []core.Rect, size core.Vec, avoid *core.Vec, radius float64) (core.Vec, bool) {
	xs := f.lattice(f.Bounds.X, size.X)
	ys := f.lattice(f.Bounds.Y, size.Y)
	if len(xs) == 0 || len(ys) == 0 {
		return core.Vec{}, false
	}

	for range f.Attempts {
		pos := core.V(xs[f.rng.Intn(len(xs))], ys[f.rng.Intn(len(ys))])

		if avoid != nil && core.Dist(pos, *avoid) < radius {
			continue
		}
		if core.RectAt(pos, size).IntersectsAny(occupied) {
			continue
		}
		return pos, true
	}
	return core.Vec{}, false
}

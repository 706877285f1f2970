// Package game implements the Dagyiman simulation: the player, the wandering
// chairs, medicine and ambulance pickups, spawn scheduling and the
// Menu/Loading/Playing state machine. It contains no rendering or I/O.
package game

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/dagyiman/internal/core"
)

// Direction is an enemy heading.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every heading in a fixed order.
var Directions = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// Vector returns the unit step for the heading.
func (d Direction) Vector() core.Vec {
	switch d {
	case DirUp:
		return core.V(0, -1)
	case DirDown:
		return core.V(0, 1)
	case DirLeft:
		return core.V(-1, 0)
	default:
		return core.V(1, 0)
	}
}

// Reverse returns the opposite heading.
func (d Direction) Reverse() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// RandomDirection picks any of the four headings.
func RandomDirection(rng *rand.Rand) Direction {
	return Directions[rng.Intn(len(Directions))]
}

// Player is the controllable entity.
type Player struct {
	Pos   core.Vec
	Size  core.Vec
	Speed float64 // pixels per tick
	Lives int
	Score int
	Spawn core.Vec
}

// NewPlayer creates a player standing on its spawn point.
func NewPlayer(spawn core.Vec, size, speed float64, lives int) *Player {
	return &Player{
		Pos:   spawn,
		Size:  core.V(size, size),
		Speed: speed,
		Lives: lives,
		Spawn: spawn,
	}
}

// Rect returns the player's bounding box.
func (p *Player) Rect() core.Rect {
	return core.RectAt(p.Pos, p.Size)
}

// Step applies every held movement key and reverts the whole move if the
// result overlaps a wall. Diagonal moves into a corner do not slide.
// Returns true if the player moved.
func (p *Player) Step(in core.InputFrame, walls []core.Rect) bool {
	var d core.Vec
	if in.Has(core.ActionLeft) {
		d.X -= p.Speed
	}
	if in.Has(core.ActionRight) {
		d.X += p.Speed
	}
	if in.Has(core.ActionUp) {
		d.Y -= p.Speed
	}
	if in.Has(core.ActionDown) {
		d.Y += p.Speed
	}
	if d == (core.Vec{}) {
		return false
	}

	if p.Rect().Moved(d).IntersectsAny(walls) {
		return false
	}
	p.Pos = p.Pos.Add(d)
	return true
}

// ResetToSpawn puts the player back on its original spawn point.
func (p *Player) ResetToSpawn() {
	p.Pos = p.Spawn
}

// Enemy is a wandering chair.
type Enemy struct {
	Pos       core.Vec
	Size      core.Vec
	Speed     float64 // pixels per tick
	Heading   Direction
	SpawnTime time.Duration // game clock time of the last (re)spawn
}

// Rect returns the enemy's bounding box.
func (e *Enemy) Rect() core.Rect {
	return core.RectAt(e.Pos, e.Size)
}

// Step moves the enemy along its heading. On a wall hit the move is reverted
// and a new heading is drawn from the three that are not the reverse.
// Returns true if the enemy bounced.
func (e *Enemy) Step(walls []core.Rect, rng *rand.Rand) bool {
	next := e.Rect().Moved(e.Heading.Vector().Scale(e.Speed))
	if !next.IntersectsAny(walls) {
		e.Pos = next.Pos()
		return false
	}

	reverse := e.Heading.Reverse()
	options := make([]Direction, 0, 3)
	for _, d := range Directions {
		if d != reverse {
			options = append(options, d)
		}
	}
	e.Heading = options[rng.Intn(len(options))]
	return true
}

// MaybeRespawn relocates the enemy once interval has passed since its last
// spawn. The heading is kept. spawnTime is reset only when find succeeds, so
// a crowded map retries on the next tick.
func (e *Enemy) MaybeRespawn(now, interval time.Duration, find func(size core.Vec) (core.Vec, bool)) bool {
	if now-e.SpawnTime < interval {
		return false
	}
	pos, ok := find(e.Size)
	if !ok {
		return false
	}
	e.Pos = pos
	e.SpawnTime = now
	return true
}

// Pickup is a medicine bottle worth score.
type Pickup struct {
	Pos  core.Vec
	Size core.Vec
}

// Rect returns the pickup's bounding box.
func (p Pickup) Rect() core.Rect {
	return core.RectAt(p.Pos, p.Size)
}

// Bonus is an ambulance worth an extra life.
type Bonus struct {
	Pos  core.Vec
	Size core.Vec
}

// Rect returns the bonus's bounding box.
func (b Bonus) Rect() core.Rect {
	return core.RectAt(b.Pos, b.Size)
}

package game

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/vovakirdan/dagyiman/internal/core"
)

// SpriteKind tells the shell what to draw for a sprite.
type SpriteKind int

const (
	SpriteWall SpriteKind = iota
	SpritePlayer
	SpriteEnemy
	SpritePickup
	SpriteBonus
)

func (k SpriteKind) String() string {
	switch k {
	case SpriteWall:
		return "wall"
	case SpritePlayer:
		return "player"
	case SpriteEnemy:
		return "enemy"
	case SpritePickup:
		return "pickup"
	case SpriteBonus:
		return "bonus"
	default:
		return "unknown"
	}
}

// Sprite is one drawable entity in pixel space.
type Sprite struct {
	Kind SpriteKind
	Rect core.Rect
}

// Snapshot is everything a shell needs to draw one frame.
// Sprites are ordered walls, player, enemies, pickups, bonuses.
type Snapshot struct {
	Tick            uint64
	Phase           core.Phase
	Score           int
	Lives           int
	Fatality        bool
	LoadingProgress float64
	Bounds          core.Vec // map extent in pixels, zero in the Menu
	Sprites         []Sprite
	SessionID       string
	MapID           string
	Err             error // last failed Start
}

// Snapshot returns the current frame. Sprites are only filled while a
// session is being played.
func (g *Game) Snapshot() Snapshot {
	st := g.State()
	snap := Snapshot{
		Tick:            g.tick,
		Phase:           st.Phase,
		Score:           st.Score,
		Lives:           st.Lives,
		Fatality:        st.Fatality,
		LoadingProgress: g.LoadingProgress(),
		MapID:           g.def.ID,
		Err:             g.lastErr,
	}

	s := g.session
	if s == nil {
		return snap
	}
	snap.SessionID = s.ID
	snap.Bounds = s.Layout.Bounds()
	if g.phase != core.PhasePlaying {
		return snap
	}

	sprites := make([]Sprite, 0, len(s.Layout.Walls)+1+len(s.Enemies)+len(s.Pickups)+len(s.Bonuses))
	for _, w := range s.Layout.Walls {
		sprites = append(sprites, Sprite{Kind: SpriteWall, Rect: w})
	}
	sprites = append(sprites, Sprite{Kind: SpritePlayer, Rect: s.Player.Rect()})
	for _, e := range s.Enemies {
		sprites = append(sprites, Sprite{Kind: SpriteEnemy, Rect: e.Rect()})
	}
	for _, p := range s.Pickups {
		sprites = append(sprites, Sprite{Kind: SpritePickup, Rect: p.Rect()})
	}
	for _, b := range s.Bonuses {
		sprites = append(sprites, Sprite{Kind: SpriteBonus, Rect: b.Rect()})
	}
	snap.Sprites = sprites
	return snap
}

// Count returns how many sprites of the given kind the snapshot holds.
func (snap *Snapshot) Count(kind SpriteKind) int {
	n := 0
	for _, sp := range snap.Sprites {
		if sp.Kind == kind {
			n++
		}
	}
	return n
}

// Hash returns a hash of the simulated state for determinism testing.
// The session id is left out.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	putF := func(f float64) {
		put(math.Float64bits(f))
	}

	put(snap.Tick)
	put(uint64(snap.Phase))        //#nosec G115 -- hash computation
	put(uint64(int64(snap.Score))) //#nosec G115 -- hash computation
	put(uint64(int64(snap.Lives))) //#nosec G115 -- hash computation
	if snap.Fatality {
		put(1)
	} else {
		put(0)
	}
	for _, sp := range snap.Sprites {
		put(uint64(sp.Kind)) //#nosec G115 -- hash computation
		putF(sp.Rect.X)
		putF(sp.Rect.Y)
		putF(sp.Rect.W)
		putF(sp.Rect.H)
	}
	return h.Sum64()
}

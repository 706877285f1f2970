package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/dagyiman/internal/config"
	"github.com/vovakirdan/dagyiman/internal/core"
	"github.com/vovakirdan/dagyiman/internal/maze"
)

// Session is one run from Loading to death or cancel. It owns every entity
// and the spawn timers; nothing survives into the next session.
type Session struct {
	ID    string
	MapID string

	Layout  *maze.Layout
	Player  *Player
	Enemies []*Enemy
	Pickups []Pickup
	Bonuses []Bonus

	cfg        config.GameConfig
	enemySpeed float64 // scaled to the tick rate, before difficulty
	rng        *rand.Rand
	slots      *SlotFinder
	difficulty *config.DifficultyManager

	started         bool
	ticks           int
	lastPickupSpawn time.Duration
	lastBonusSpawn  time.Duration
}

// TickOutcome summarises what happened to the player during one tick.
type TickOutcome struct {
	ScoreDelta int
	LivesDelta int // net change, ambulances minus the hit
	LivesGain  int // lives from ambulances alone
	Hit        bool // an enemy touched the player
	Dead       bool // lives reached zero
}

// NewSession parses the map and places every entity: the player on its
// spawn, one chair per enemy spawn character (away from the player), then
// the pickup and bonus floors. Placements the slot search cannot satisfy are
// skipped. Speeds in cfg are per tick at the base tick rate and are scaled
// to cfg.Timing.TickRate here.
func NewSession(def maze.Definition, cfg config.GameConfig, rng *rand.Rand) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	layout, err := def.Layout(cfg.Grid.CellSize)
	if err != nil {
		return nil, err
	}

	// Drawn from the session RNG so seeded runs get stable ids.
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return nil, fmt.Errorf("game: session id: %w", err)
	}

	s := &Session{
		ID:         id.String(),
		MapID:      def.ID,
		Layout:     layout,
		cfg:        cfg,
		enemySpeed: cfg.Timing.ScaledSpeed(cfg.Enemy.Speed),
		rng:        rng,
		slots: NewSlotFinder(layout.Bounds(), cfg.Grid.CellSize,
			cfg.Placement.BorderCells, cfg.Placement.Attempts, rng),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}

	s.Player = NewPlayer(layout.PlayerSpawn, cfg.Player.Size,
		cfg.Timing.ScaledSpeed(cfg.Player.Speed), cfg.Player.Lives)

	enemySize := core.V(cfg.Enemy.Size, cfg.Enemy.Size)
	spawn := layout.PlayerSpawn
	for range layout.EnemySpawns {
		pos, ok := s.slots.FindFreeSlot(s.occupied(), enemySize, &spawn, s.avoidRadius())
		if !ok {
			continue
		}
		s.Enemies = append(s.Enemies, &Enemy{
			Pos:     pos,
			Size:    enemySize,
			Speed:   s.enemySpeed,
			Heading: RandomDirection(rng),
		})
	}

	for range cfg.Pickup.Floor {
		s.spawnPickup()
	}
	for range cfg.Bonus.Floor {
		s.spawnBonus()
	}

	return s, nil
}

// Begin starts the spawn timers and the chairs' respawn clocks.
// Called on the Loading to Playing transition.
func (s *Session) Begin(now time.Duration) {
	s.started = true
	s.lastPickupSpawn = now
	s.lastBonusSpawn = now
	for _, e := range s.Enemies {
		e.SpawnTime = now
	}
}

// Started reports whether Begin has been called.
func (s *Session) Started() bool {
	return s.started
}

// Ticks returns the number of Playing ticks simulated so far.
func (s *Session) Ticks() int {
	return s.ticks
}

// Tick advances the session by one Playing tick. The order is fixed:
// chair respawns, pickup spawns, bonus spawns, movement, pickup collection,
// bonus collection, enemy contact.
func (s *Session) Tick(now time.Duration, in core.InputFrame) TickOutcome {
	var out TickOutcome
	s.ticks++

	// Chair respawns, avoiding the player's current position
	find := func(size core.Vec) (core.Vec, bool) {
		pos := s.Player.Pos
		return s.slots.FindFreeSlot(s.occupied(), size, &pos, s.avoidRadius())
	}
	respawn := s.difficulty.RespawnInterval(s.cfg.Enemy.RespawnInterval, s.Player.Score, s.ticks)
	for _, e := range s.Enemies {
		e.MaybeRespawn(now, respawn, find)
	}

	// Medicine: a bounded batch; the timer resets even if some draws failed
	if len(s.Pickups) < s.cfg.Pickup.Floor && now-s.lastPickupSpawn >= s.cfg.Pickup.SpawnInterval {
		n := min(s.cfg.Pickup.Floor-len(s.Pickups), s.cfg.Pickup.Batch)
		for range n {
			s.spawnPickup()
		}
		s.lastPickupSpawn = now
	}

	// Ambulance: the timer resets only when one was placed
	if len(s.Bonuses) < s.cfg.Bonus.Floor && now-s.lastBonusSpawn >= s.cfg.Bonus.SpawnInterval {
		if s.spawnBonus() {
			s.lastBonusSpawn = now
		}
	}

	// Movement. Enemies is not resized during this pass.
	walls := s.Layout.Walls
	s.Player.Step(in, walls)
	speed := s.difficulty.EnemySpeed(s.enemySpeed, s.Player.Score, s.ticks)
	for _, e := range s.Enemies {
		e.Speed = speed
		e.Step(walls, s.rng)
	}

	pr := s.Player.Rect()

	// Medicine collection
	kept := s.Pickups[:0]
	for _, p := range s.Pickups {
		if pr.Intersects(p.Rect()) {
			out.ScoreDelta += s.cfg.Pickup.Score
			continue
		}
		kept = append(kept, p)
	}
	s.Pickups = kept
	s.Player.Score += out.ScoreDelta

	// Ambulance collection
	keptBonuses := s.Bonuses[:0]
	for _, b := range s.Bonuses {
		if pr.Intersects(b.Rect()) {
			out.LivesGain += s.cfg.Bonus.Lives
			continue
		}
		keptBonuses = append(keptBonuses, b)
	}
	s.Bonuses = keptBonuses
	s.Player.Lives += out.LivesGain
	out.LivesDelta = out.LivesGain

	// Chair contact: one life per tick however many chairs overlap
	for _, e := range s.Enemies {
		if pr.Intersects(e.Rect()) {
			out.Hit = true
			break
		}
	}
	if out.Hit {
		s.Player.Lives--
		out.LivesDelta--
		if s.Player.Lives <= 0 {
			out.Dead = true
		} else {
			s.Player.ResetToSpawn()
		}
	}

	return out
}

// occupied returns walls plus every live entity, in that order.
func (s *Session) occupied() []core.Rect {
	rects := make([]core.Rect, 0, len(s.Layout.Walls)+1+len(s.Enemies)+len(s.Pickups)+len(s.Bonuses))
	rects = append(rects, s.Layout.Walls...)
	if s.Player != nil {
		rects = append(rects, s.Player.Rect())
	}
	for _, e := range s.Enemies {
		rects = append(rects, e.Rect())
	}
	for _, p := range s.Pickups {
		rects = append(rects, p.Rect())
	}
	for _, b := range s.Bonuses {
		rects = append(rects, b.Rect())
	}
	return rects
}

func (s *Session) avoidRadius() float64 {
	return s.cfg.Placement.AvoidCells * s.cfg.Grid.CellSize
}

// spawnPickup searches with the small search footprint and centers the
// pickup sprite on the chosen cell.
func (s *Session) spawnPickup() bool {
	search := core.V(s.cfg.Pickup.SearchSize, s.cfg.Pickup.SearchSize)
	pos, ok := s.slots.FindFreeSlot(s.occupied(), search, nil, 0)
	if !ok {
		return false
	}
	half := s.cfg.Grid.CellSize / 2
	size := core.V(s.cfg.Pickup.Size, s.cfg.Pickup.Size)
	s.Pickups = append(s.Pickups, Pickup{
		Pos:  core.V(pos.X+half-size.X/2, pos.Y+half-size.Y/2),
		Size: size,
	})
	return true
}

func (s *Session) spawnBonus() bool {
	size := core.V(s.cfg.Bonus.Size, s.cfg.Bonus.Size)
	pos, ok := s.slots.FindFreeSlot(s.occupied(), size, nil, 0)
	if !ok {
		return false
	}
	s.Bonuses = append(s.Bonuses, Bonus{Pos: pos, Size: size})
	return true
}

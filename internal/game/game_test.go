package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/dagyiman/internal/config"
	"github.com/vovakirdan/dagyiman/internal/core"
	"github.com/vovakirdan/dagyiman/internal/maps"
	"github.com/vovakirdan/dagyiman/internal/maze"
	"github.com/vovakirdan/dagyiman/internal/registry"
)

// closet has exactly one free lattice cell, right of the spawn, so the single
// medicine always lands at (62, 62).
var closet = maze.Definition{
	ID: "closet",
	Rows: maze.Grid{
		"WWWW",
		"WWWW",
		"WP.W",
	},
}

func newTestGame(t *testing.T, def maze.Definition, mutate func(*config.GameConfig)) *Game {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	g := New(def, cfg)
	g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 12345})
	return g
}

// stepN steps with the same input n times and collects every event.
func stepN(g *Game, n int, in core.InputFrame) []core.Event {
	var events []core.Event
	for range n {
		events = append(events, g.Step(in).Events...)
	}
	return events
}

// startPlaying presses Start and waits out the loading screen.
func startPlaying(t *testing.T, g *Game) {
	t.Helper()
	g.Step(core.FrameOf(core.ActionStart))
	require.Equal(t, core.PhaseLoading, g.State().Phase)
	stepN(g, 120, core.NewInputFrame())
	require.Equal(t, core.PhasePlaying, g.State().Phase)
}

func phaseChanges(events []core.Event) []core.PhaseEvent {
	var out []core.PhaseEvent
	for _, ev := range events {
		if pe, ok := ev.(core.PhaseEvent); ok {
			out = append(out, pe)
		}
	}
	return out
}

func TestGameStartsInMenu(t *testing.T) {
	g := newTestGame(t, closet, nil)

	st := g.State()
	assert.Equal(t, core.PhaseMenu, st.Phase)
	assert.Nil(t, g.Session())

	// Idle menu ticks do nothing.
	events := stepN(g, 10, core.NewInputFrame())
	assert.Empty(t, events)
	assert.Equal(t, core.PhaseMenu, g.State().Phase)
}

func TestGameLoadingLastsTwoSeconds(t *testing.T) {
	g := newTestGame(t, closet, nil)

	res := g.Step(core.FrameOf(core.ActionStart))
	require.Equal(t, []core.PhaseEvent{{From: core.PhaseMenu, To: core.PhaseLoading}}, phaseChanges(res.Events))
	require.NotNil(t, g.Session(), "session is built on Start")
	assert.False(t, g.Session().Started())

	stepN(g, 119, core.NewInputFrame())
	assert.Equal(t, core.PhaseLoading, g.State().Phase)
	assert.InDelta(t, 119.0/120.0, g.LoadingProgress(), 1e-9)

	res = g.Step(core.NewInputFrame())
	assert.Equal(t, []core.PhaseEvent{{From: core.PhaseLoading, To: core.PhasePlaying}}, phaseChanges(res.Events))
	assert.True(t, g.Session().Started())
	assert.Equal(t, 3, g.State().Lives)
}

func TestGameMissingPlayerSpawnNeverLoads(t *testing.T) {
	def := maze.Definition{ID: "no-spawn", Rows: maze.Grid{"WWW", "WEW", "WWW"}}
	g := newTestGame(t, def, nil)

	res := g.Step(core.FrameOf(core.ActionStart))

	require.Len(t, res.Events, 1)
	cfgErr, ok := res.Events[0].(core.ConfigErrorEvent)
	require.True(t, ok)
	assert.ErrorIs(t, cfgErr.Err, maze.ErrMissingPlayerSpawn)
	assert.ErrorIs(t, g.LastError(), maze.ErrMissingPlayerSpawn)
	assert.Equal(t, core.PhaseMenu, res.State.Phase)
	assert.Nil(t, g.Session())

	for range 300 {
		assert.Equal(t, core.PhaseMenu, g.Step(core.NewInputFrame()).State.Phase)
	}

	snap := g.Snapshot()
	assert.ErrorIs(t, snap.Err, maze.ErrMissingPlayerSpawn)
}

func TestGamePickupEndToEnd(t *testing.T) {
	g := newTestGame(t, closet, func(c *config.GameConfig) {
		c.Pickup.Floor = 1
		c.Bonus.Floor = 1
	})
	startPlaying(t, g)

	s := g.Session()
	require.Empty(t, s.Enemies)
	require.Len(t, s.Pickups, 1)
	require.Empty(t, s.Bonuses, "no room left for an ambulance")
	assert.Equal(t, core.V(62, 62), s.Pickups[0].Pos)
	assert.Equal(t, core.V(30, 60), s.Player.Pos)

	events := stepN(g, 2, core.FrameOf(core.ActionRight))

	assert.Equal(t, core.V(38, 60), s.Player.Pos)
	assert.Equal(t, 10, g.State().Score)
	assert.Empty(t, s.Pickups)
	assert.Contains(t, events, core.ScoreEvent{Delta: 10, Total: 10})
}

func TestGameDeathEndToEnd(t *testing.T) {
	g := newTestGame(t, closet, func(c *config.GameConfig) { c.Player.Lives = 1 })
	startPlaying(t, g)

	s := g.Session()
	s.enemySpeed = 0
	s.Player.Score = 40
	s.Enemies = append(s.Enemies, &Enemy{Pos: s.Player.Pos, Size: core.V(56, 56)})
	id := s.ID

	res := g.Step(core.NewInputFrame())

	assert.Contains(t, res.Events, core.FatalityEvent{SessionID: id, MapID: "closet", FinalScore: 40})
	assert.Contains(t, res.Events, core.SessionEndEvent{SessionID: id, MapID: "closet", FinalScore: 40, Ticks: 1})
	assert.Equal(t, core.GameState{Phase: core.PhasePlaying, Score: 40, Fatality: true}, res.State)
	assert.Nil(t, g.Session(), "session is discarded at once")

	snap := g.Snapshot()
	assert.True(t, snap.Fatality)
	assert.Empty(t, snap.Sprites)

	// The fatality screen holds for five seconds and ignores input.
	events := stepN(g, 299, core.FrameOf(core.ActionStart, core.ActionCancel))
	assert.Empty(t, events)
	assert.Equal(t, core.PhasePlaying, g.State().Phase)

	res = g.Step(core.NewInputFrame())
	assert.Equal(t, []core.PhaseEvent{{From: core.PhasePlaying, To: core.PhaseMenu}}, phaseChanges(res.Events))
	assert.Equal(t, core.GameState{Phase: core.PhaseMenu}, res.State)
}

func TestGameBonusAndHitSameTickEvents(t *testing.T) {
	g := newTestGame(t, closet, nil)
	startPlaying(t, g)

	s := g.Session()
	s.enemySpeed = 0
	s.Bonuses = append(s.Bonuses, Bonus{Pos: s.Player.Pos, Size: core.V(26, 26)})
	s.Enemies = append(s.Enemies, &Enemy{Pos: s.Player.Pos, Size: core.V(56, 56)})

	res := g.Step(core.NewInputFrame())

	var lives []core.LivesEvent
	for _, ev := range res.Events {
		if le, ok := ev.(core.LivesEvent); ok {
			lives = append(lives, le)
		}
	}
	assert.Equal(t, []core.LivesEvent{
		{Delta: 1, Total: 4},
		{Delta: -1, Total: 3, Hit: true},
	}, lives)
	assert.Equal(t, 3, g.State().Lives)
}

func TestGameNewSessionAfterDeath(t *testing.T) {
	g := newTestGame(t, closet, func(c *config.GameConfig) { c.Player.Lives = 1 })
	startPlaying(t, g)

	first := g.Session()
	first.enemySpeed = 0
	first.Player.Score = 70
	first.Enemies = append(first.Enemies, &Enemy{Pos: first.Player.Pos, Size: core.V(56, 56)})
	stepN(g, 301, core.NewInputFrame())
	require.Equal(t, core.PhaseMenu, g.State().Phase)

	startPlaying(t, g)
	second := g.Session()

	assert.NotEqual(t, first.ID, second.ID)
	assert.Empty(t, second.Enemies)
	assert.Equal(t, 1, second.Player.Lives)
	assert.Zero(t, second.Player.Score)
	assert.Equal(t, second.Layout.PlayerSpawn, second.Player.Pos)
}

func TestGameCancelReturnsToMenu(t *testing.T) {
	g := newTestGame(t, closet, nil)
	startPlaying(t, g)
	id := g.Session().ID

	res := g.Step(core.FrameOf(core.ActionCancel, core.ActionRight))

	assert.Equal(t, core.PhaseMenu, res.State.Phase)
	assert.Nil(t, g.Session())
	assert.Contains(t, res.Events, core.SessionEndEvent{SessionID: id, MapID: "closet", Cancelled: true})
	assert.Equal(t, []core.PhaseEvent{{From: core.PhasePlaying, To: core.PhaseMenu}}, phaseChanges(res.Events))
}

func TestGameQuitFromAnyPhase(t *testing.T) {
	g := newTestGame(t, closet, nil)
	assert.True(t, g.Step(core.FrameOf(core.ActionQuit)).Quit)

	g.Step(core.FrameOf(core.ActionStart))
	assert.True(t, g.Step(core.FrameOf(core.ActionQuit)).Quit)

	stepN(g, 120, core.NewInputFrame())
	res := g.Step(core.FrameOf(core.ActionQuit))
	assert.True(t, res.Quit)
	assert.Equal(t, core.PhasePlaying, res.State.Phase)
}

func TestGameDeterminism(t *testing.T) {
	def, err := registry.Get(maps.DefaultID)
	require.NoError(t, err)

	inputs := make([]core.InputFrame, 2000)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i == 5:
			inputs[i].Set(core.ActionStart)
		case i%40 < 10:
			inputs[i].Set(core.ActionLeft)
		case i%40 < 20:
			inputs[i].Set(core.ActionUp)
		case i%40 < 30:
			inputs[i].Set(core.ActionRight)
		default:
			inputs[i].Set(core.ActionDown)
		}
	}

	run := func() Snapshot {
		g := New(def, config.Default())
		g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 777})
		for _, in := range inputs {
			g.Step(in)
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	assert.Equal(t, snap1.Hash(), snap2.Hash())
	assert.Equal(t, snap1.Score, snap2.Score)
	assert.Equal(t, snap1.Sprites, snap2.Sprites)
	assert.Equal(t, snap1.SessionID, snap2.SessionID, "seeded runs share session ids")
}

func TestSnapshotSpriteOrder(t *testing.T) {
	def, err := registry.Get(maps.DefaultID)
	require.NoError(t, err)
	g := New(def, config.Default())
	g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 5})

	assert.Empty(t, g.Snapshot().Sprites, "nothing to draw in the menu")
	startPlaying(t, g)

	snap := g.Snapshot()
	s := g.Session()
	walls := len(s.Layout.Walls)

	require.Len(t, snap.Sprites, walls+1+len(s.Enemies)+len(s.Pickups)+len(s.Bonuses))
	assert.Equal(t, SpriteWall, snap.Sprites[0].Kind)
	assert.Equal(t, Sprite{Kind: SpritePlayer, Rect: s.Player.Rect()}, snap.Sprites[walls])
	assert.Equal(t, len(s.Enemies), snap.Count(SpriteEnemy))
	assert.Equal(t, len(s.Pickups), snap.Count(SpritePickup))
	assert.Equal(t, len(s.Bonuses), snap.Count(SpriteBonus))
	assert.Equal(t, core.V(1380, 900), snap.Bounds)
	assert.Equal(t, s.ID, snap.SessionID)
}

func TestResetUsesRuntimeTickRate(t *testing.T) {
	g := New(closet, config.Default())
	g.Reset(core.RuntimeConfig{TickRate: 30, Seed: 1})

	assert.Equal(t, 30, g.Config().Timing.TickRate)

	g.Step(core.FrameOf(core.ActionStart))
	stepN(g, 59, core.NewInputFrame())
	assert.Equal(t, core.PhaseLoading, g.State().Phase)
	g.Step(core.NewInputFrame())
	assert.Equal(t, core.PhasePlaying, g.State().Phase)
	assert.Equal(t, 8.0, g.Session().Player.Speed)
}

func TestLoadingRoundsUpToWholeTicks(t *testing.T) {
	// 1.5s at 7 Hz is 10.5 ticks, so the loading screen lasts 11.
	g := newTestGame(t, closet, func(cfg *config.GameConfig) {
		cfg.Timing.Loading = 1500 * time.Millisecond
	})
	g.Reset(core.RuntimeConfig{TickRate: 7, Seed: 1})

	g.Step(core.FrameOf(core.ActionStart))
	stepN(g, 10, core.NewInputFrame())
	assert.Equal(t, core.PhaseLoading, g.State().Phase)
	assert.InDelta(t, 10.0/11.0, g.LoadingProgress(), 1e-9)

	g.Step(core.NewInputFrame())
	assert.Equal(t, core.PhasePlaying, g.State().Phase)
}

package game

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/dagyiman/internal/config"
	"github.com/vovakirdan/dagyiman/internal/core"
	"github.com/vovakirdan/dagyiman/internal/maze"
)

// Game is the Menu/Loading/Playing state machine. Shells call Step once per
// tick; time is the number of ticks times the tick duration, never the wall
// clock.
type Game struct {
	def  maze.Definition
	base config.GameConfig
	cfg  config.GameConfig
	rng  *rand.Rand

	phase      core.Phase
	tick       uint64
	rate       int
	now        time.Duration
	phaseTick  uint64

	// Loading and Fatality screen lengths in ticks.
	loadTicks     uint64
	fatalityTicks uint64

	session *Session

	// Fatality screen: the session is gone, only the final score remains.
	fatality     bool
	fatalityTick uint64
	finalScore   int

	lastErr error
}

// New creates a game in the Menu phase for the given map and configuration.
func New(def maze.Definition, cfg config.GameConfig) *Game {
	g := &Game{def: def, base: cfg}
	g.Reset(core.RuntimeConfig{TickRate: cfg.Timing.TickRate})
	return g
}

// Title returns a human-readable name for display.
func (g *Game) Title() string {
	return "Dagyiman"
}

// Map returns the map definition sessions are built from.
func (g *Game) Map() maze.Definition {
	return g.def
}

// Config returns the effective configuration.
func (g *Game) Config() config.GameConfig {
	return g.cfg
}

// Reset returns to the Menu with a fresh RNG. A positive TickRate in rc
// overrides the configured one.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.cfg = g.base
	if rc.TickRate > 0 {
		g.cfg.Timing.TickRate = rc.TickRate
	}
	g.rate = g.cfg.Timing.TickRate
	if g.rate <= 0 {
		g.rate = core.DefaultConfig().TickRate
		g.cfg.Timing.TickRate = g.rate
	}
	g.loadTicks = uint64(g.cfg.Timing.Ticks(g.cfg.Timing.Loading))
	g.fatalityTicks = uint64(g.cfg.Timing.Ticks(g.cfg.Timing.Fatality))
	g.rng = rand.New(rand.NewSource(rc.Seed))

	g.phase = core.PhaseMenu
	g.tick = 0
	g.now = 0
	g.phaseTick = 0
	g.fatalityTick = 0
	g.session = nil
	g.fatality = false
	g.finalScore = 0
	g.lastErr = nil
}

// Step advances the simulation by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionQuit) {
		return core.StepResult{State: g.State(), Quit: true}
	}

	g.tick++
	// Computed from the tick count so whole seconds land on exact ticks.
	g.now = time.Duration(g.tick) * time.Second / time.Duration(g.rate)

	var events []core.Event
	switch g.phase {
	case core.PhaseMenu:
		if in.Has(core.ActionStart) {
			events = g.start(events)
		}

	case core.PhaseLoading:
		if g.tick-g.phaseTick >= g.loadTicks {
			g.session.Begin(g.now)
			events = g.setPhase(core.PhasePlaying, events)
		}

	case core.PhasePlaying:
		events = g.stepPlaying(in, events)
	}

	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) stepPlaying(in core.InputFrame, events []core.Event) []core.Event {
	if g.fatality {
		if g.tick-g.fatalityTick >= g.fatalityTicks {
			g.fatality = false
			events = g.setPhase(core.PhaseMenu, events)
		}
		return events
	}

	if in.Has(core.ActionCancel) {
		events = append(events, g.endSession(true))
		return g.setPhase(core.PhaseMenu, events)
	}

	out := g.session.Tick(g.now, in)
	p := g.session.Player

	if out.ScoreDelta != 0 {
		events = append(events, core.ScoreEvent{Delta: out.ScoreDelta, Total: p.Score})
	}
	if out.LivesGain != 0 {
		total := p.Lives
		if out.Hit {
			total++
		}
		events = append(events, core.LivesEvent{Delta: out.LivesGain, Total: total})
	}
	if out.Hit {
		events = append(events, core.LivesEvent{Delta: -1, Total: p.Lives, Hit: true})
	}
	if out.Dead {
		events = append(events, core.FatalityEvent{
			SessionID:  g.session.ID,
			MapID:      g.session.MapID,
			FinalScore: p.Score,
		})
		g.finalScore = p.Score
		g.fatality = true
		g.fatalityTick = g.tick
		events = append(events, g.endSession(false))
	}
	return events
}

// start builds the session before leaving the Menu so a broken map never
// reaches Loading.
func (g *Game) start(events []core.Event) []core.Event {
	s, err := NewSession(g.def, g.cfg, g.rng)
	if err != nil {
		g.lastErr = err
		return append(events, core.ConfigErrorEvent{Err: err})
	}
	g.lastErr = nil
	g.session = s
	return g.setPhase(core.PhaseLoading, events)
}

// endSession discards the running session.
func (g *Game) endSession(cancelled bool) core.Event {
	ev := core.SessionEndEvent{
		SessionID:  g.session.ID,
		MapID:      g.session.MapID,
		FinalScore: g.session.Player.Score,
		Ticks:      g.session.Ticks(),
		Cancelled:  cancelled,
	}
	g.session = nil
	return ev
}

func (g *Game) setPhase(to core.Phase, events []core.Event) []core.Event {
	from := g.phase
	g.phase = to
	g.phaseTick = g.tick
	return append(events, core.PhaseEvent{From: from, To: to})
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{Phase: g.phase, Fatality: g.fatality}
	switch {
	case g.fatality:
		st.Score = g.finalScore
	case g.session != nil:
		st.Score = g.session.Player.Score
		st.Lives = g.session.Player.Lives
	}
	return st
}

// Session returns the running session, or nil outside Loading and Playing.
func (g *Game) Session() *Session {
	return g.session
}

// Now returns the game clock.
func (g *Game) Now() time.Duration {
	return g.now
}

// LastError returns the error of the last failed Start, if any.
func (g *Game) LastError() error {
	return g.lastErr
}

// LoadingProgress returns how far through the loading screen we are, 0 to 1.
func (g *Game) LoadingProgress() float64 {
	if g.phase != core.PhaseLoading {
		return 0
	}
	if g.loadTicks == 0 {
		return 1
	}
	return core.ClampF(float64(g.tick-g.phaseTick)/float64(g.loadTicks), 0, 1)
}

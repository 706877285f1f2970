package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dagyiman/internal/core"
	"github.com/vovakirdan/dagyiman/internal/game"
	"github.com/vovakirdan/dagyiman/internal/platform/shell"
	"github.com/vovakirdan/dagyiman/internal/storage"
)

// Model is the Bubble Tea model driving one Game.
type Model struct {
	game     *game.Game
	screen   *core.Screen
	journal  *shell.Journal
	mixer    shell.Mixer
	logger   *log.Logger
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	progress progress.Model
	holds    *HoldTracker
	now      func() time.Time

	pending core.InputFrame // one-shot actions for the next tick
	snap    game.Snapshot

	cursor         int // menu option
	openScoreboard bool
	quitting       bool
}

// NewModel creates a new Bubble Tea model for the given game.
// store and mixer may be nil.
func NewModel(g *game.Game, store *storage.Store, mixer shell.Mixer, logger *log.Logger, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = min(cfg.ScreenW-4, 60)

	g.Reset(cfg)
	cfg.TickRate = g.Config().Timing.TickRate

	m := Model{
		game:     g,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		journal:  shell.NewJournal(store, logger, g.Map().ID),
		mixer:    mixer,
		logger:   logger,
		config:   cfg,
		keys:     DefaultKeyMap(),
		help:     h,
		progress: bar,
		holds:    NewHoldTracker(DefaultHoldWindow),
		now:      time.Now,
		pending:  core.NewInputFrame(),
	}
	m.snap = g.Snapshot()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Mute):
		if m.mixer != nil {
			muted := m.mixer.ToggleMute()
			m.logger.Debug("mute toggled", "muted", muted)
		}
		return m, nil
	}

	switch {
	case m.snap.Phase == core.PhaseMenu:
		return m.handleMenuKey(msg)

	case m.snap.Phase == core.PhasePlaying && !m.snap.Fatality:
		if key.Matches(msg, m.keys.Cancel) {
			m.pending.Set(core.ActionCancel)
			return m, nil
		}
		if a := m.keys.MovementAction(msg); a != core.ActionNone {
			m.holds.Press(a, m.now())
			return m, nil
		}
	}

	// Loading and the fatality screen only take volume keys
	m.adjustVolume(msg)
	return m, nil
}

// handleMenuKey processes input for the two menu options.
func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MenuAction(msg) {
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(menuOptions)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if m.cursor == menuPlay {
			m.pending.Set(core.ActionStart)
			return m, nil
		}
		return m.quit()
	case MenuActionVolumeUp:
		if m.mixer != nil {
			m.mixer.VolumeUp()
		}
	case MenuActionVolumeDown:
		if m.mixer != nil {
			m.mixer.VolumeDown()
		}
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit to show scoreboard
	}
	return m, nil
}

func (m Model) adjustVolume(msg tea.KeyMsg) {
	if m.mixer == nil {
		return
	}
	switch {
	case key.Matches(msg, m.keys.VolumeUp):
		m.mixer.VolumeUp()
	case key.Matches(msg, m.keys.VolumeDown):
		m.mixer.VolumeDown()
	}
}

// quit routes the request through the game so every phase honours it.
func (m Model) quit() (tea.Model, tea.Cmd) {
	res := m.game.Step(core.FrameOf(core.ActionQuit))
	if res.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	m.progress.Width = min(msg.Width-4, 60)
	return m, nil
}

// handleTick runs one simulation step.
func (m Model) handleTick(at time.Time) (tea.Model, tea.Cmd) {
	frame := m.pending.Clone()
	if m.snap.Phase == core.PhasePlaying {
		m.holds.Apply(&frame, at)
	}
	m.pending.Clear()

	result := m.game.Step(frame)
	for _, ev := range result.Events {
		m.handleEvent(ev)
	}
	m.snap = m.game.Snapshot()

	if result.Quit {
		m.quitting = true
		return m, tea.Quit
	}

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// handleEvent releases held keys on every phase change and hands the
// event to the journal.
func (m *Model) handleEvent(ev core.Event) {
	if _, ok := ev.(core.PhaseEvent); ok {
		m.holds.Reset()
	}
	m.journal.Record(ev)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.snap.Phase {
	case core.PhaseMenu:
		return m.menuView()
	case core.PhaseLoading:
		return m.loadingView()
	}

	if m.snap.Fatality {
		DrawFatality(m.screen, m.snap.Score)
		return RenderScreen(m.screen)
	}

	board, ok := FitBoard(m.snap.Bounds, m.game.Config().Grid.CellSize, m.screen.Width(), m.screen.Height())
	if !ok {
		DrawTooSmall(m.screen, board)
		return RenderScreen(m.screen)
	}
	DrawPlaying(m.screen, m.snap, board)
	return RenderScreen(m.screen)
}

// Config returns the current runtime config (may have been updated by resize).
func (m Model) Config() core.RuntimeConfig {
	return m.config
}

// Result holds the outcome of running the game screen.
type Result struct {
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Run starts the Bubble Tea program for the game. It returns when the
// player quits or asks for the scoreboard.
func Run(g *game.Game, store *storage.Store, mixer shell.Mixer, logger *log.Logger, cfg core.RuntimeConfig) (Result, error) {
	model := NewModel(g, store, mixer, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return Result{Config: cfg}, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return Result{Config: cfg, Quit: true}, nil
	}

	return Result{
		Config:          m.Config(),
		WantsScoreboard: m.openScoreboard,
		Quit:            m.quitting,
	}, nil
}

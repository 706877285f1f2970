// Package gui provides the Ebiten window shell for Dagyiman.
// It draws the same snapshots as the terminal shell using sprite images.
package gui

import (
	"errors"
	"image"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/dagyiman/internal/core"
	"github.com/vovakirdan/dagyiman/internal/game"
	"github.com/vovakirdan/dagyiman/internal/platform/shell"
	"github.com/vovakirdan/dagyiman/internal/storage"
)

// Window size used when the map cannot be laid out.
const (
	fallbackWidth  = 1440
	fallbackHeight = 900
)

// Window is the ebiten.Game driving one Game, one tick per Update.
type Window struct {
	game    *game.Game
	assets  *Assets
	mixer   shell.Mixer // may be nil
	journal *shell.Journal
	logger  *log.Logger
	text    *textCache

	width, height int // logical screen size, the map's pixel extent
	tickRate      int

	snap     game.Snapshot
	cursor   int
	dragging bool // volume handle held with the mouse
}

// NewWindow creates the window shell. store and mixer may be nil.
func NewWindow(g *game.Game, assets *Assets, store *storage.Store, mixer shell.Mixer, logger *log.Logger, rc core.RuntimeConfig) *Window {
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}
	g.Reset(rc)

	w := &Window{
		game:     g,
		assets:   assets,
		mixer:    mixer,
		journal:  shell.NewJournal(store, logger, g.Map().ID),
		logger:   logger,
		text:     newTextCache(),
		width:    fallbackWidth,
		height:   fallbackHeight,
		tickRate: g.Config().Timing.TickRate,
	}
	if layout, err := g.Map().Layout(g.Config().Grid.CellSize); err == nil {
		b := layout.Bounds()
		w.width, w.height = int(math.Ceil(b.X)), int(math.Ceil(b.Y))
	}
	w.snap = g.Snapshot()
	return w
}

// Update runs one simulation tick.
func (w *Window) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return w.quit()
	}

	frame := core.NewInputFrame()
	switch {
	case w.snap.Phase == core.PhaseMenu:
		if w.updateMenu(&frame) {
			return w.quit()
		}
	case w.snap.Phase == core.PhasePlaying && !w.snap.Fatality:
		heldActions(ebiten.IsKeyPressed, &frame)
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			frame.Set(core.ActionCancel)
		}
	}
	w.updateVolumeKeys()

	res := w.game.Step(frame)
	for _, ev := range res.Events {
		w.journal.Record(ev)
	}
	w.snap = w.game.Snapshot()
	if res.Quit {
		return ebiten.Termination
	}
	return nil
}

// updateMenu handles menu navigation and the volume slider.
// It returns true when "Ühm" was chosen.
func (w *Window) updateMenu(frame *core.InputFrame) bool {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp), inpututil.IsKeyJustPressed(ebiten.KeyW):
		if w.cursor > 0 {
			w.cursor--
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown), inpututil.IsKeyJustPressed(ebiten.KeyS):
		if w.cursor < len(menuOptions)-1 {
			w.cursor++
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyKPEnter):
		if w.cursor == menuQuit {
			return true
		}
		frame.Set(core.ActionStart)
	}

	if w.mixer == nil {
		return false
	}
	slider := sliderRect(w.width)
	mx, my := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && image.Pt(mx, my).In(slider.Inset(-sliderGrab)) {
		w.dragging = true
	}
	if w.dragging {
		w.mixer.SetVolume(sliderPercent(mx, slider))
		if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			w.dragging = false
		}
	}
	return false
}

func (w *Window) updateVolumeKeys() {
	if w.mixer == nil {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyKPAdd):
		w.mixer.VolumeUp()
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract):
		w.mixer.VolumeDown()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		w.mixer.ToggleMute()
	}
}

// quit routes the request through the game so every phase honours it.
func (w *Window) quit() error {
	if w.game.Step(core.FrameOf(core.ActionQuit)).Quit {
		return ebiten.Termination
	}
	return nil
}

// Draw renders the last snapshot.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(colorBlack)

	switch w.snap.Phase {
	case core.PhaseMenu:
		w.drawMenu(screen)
	case core.PhaseLoading:
		w.drawLoading(screen)
	case core.PhasePlaying:
		if w.snap.Fatality {
			w.drawFatality(screen)
			return
		}
		w.drawPlaying(screen)
	}
}

// Layout keeps the logical screen at the map's size; Ebiten scales it to the window.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.width, w.height
}

// moveKeys lists the keys held for each direction.
var moveKeys = []struct {
	action core.Action
	keys   []ebiten.Key
}{
	{core.ActionUp, []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}},
	{core.ActionDown, []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}},
	{core.ActionLeft, []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}},
	{core.ActionRight, []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}},
}

// heldActions sets every direction whose key is down.
func heldActions(pressed func(ebiten.Key) bool, frame *core.InputFrame) {
	for _, mk := range moveKeys {
		for _, k := range mk.keys {
			if pressed(k) {
				frame.Set(mk.action)
				break
			}
		}
	}
}

// Run opens the window and blocks until it is closed.
func Run(w *Window) error {
	ebiten.SetWindowSize(w.width, w.height)
	ebiten.SetWindowTitle("Dagyiman")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(w.tickRate)

	err := ebiten.RunGame(w)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

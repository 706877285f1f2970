package gui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/dagyiman/internal/game"
)

// Menu options, in display order.
const (
	menuPlay = iota
	menuQuit
)

var menuOptions = []string{"Let's Dagyi!", "Ühm"}

// Glyph size of the ebitenutil debug font.
const (
	glyphW = 6
	glyphH = 16
)

// Volume slider geometry, top right of the menu.
const (
	sliderW    = 200
	sliderH    = 10
	sliderGrab = 8 // extra pixels around the track that still grab it
)

// sliderRect returns the slider track for a screen of the given width.
func sliderRect(screenW int) image.Rectangle {
	x := screenW - sliderW - 40
	return image.Rect(x, 60, x+sliderW, 60+sliderH)
}

// sliderPercent converts a cursor x position into a volume percentage.
func sliderPercent(mx int, track image.Rectangle) int {
	p := (mx - track.Min.X) * 100 / track.Dx()
	return max(0, min(100, p))
}

// textCache keeps rendered debug-font strings between frames.
type textCache struct {
	images map[string]*ebiten.Image
}

const maxCachedTexts = 128

func newTextCache() *textCache {
	return &textCache{images: make(map[string]*ebiten.Image)}
}

func (c *textCache) get(s string) *ebiten.Image {
	if img, ok := c.images[s]; ok {
		return img
	}
	if len(c.images) >= maxCachedTexts {
		for k, img := range c.images {
			img.Deallocate()
			delete(c.images, k)
		}
	}
	w, h := textSize(s)
	img := ebiten.NewImage(max(w, 1), h)
	ebitenutil.DebugPrint(img, s)
	c.images[s] = img
	return img
}

// textSize returns the unscaled size of s in the debug font.
func textSize(s string) (w, h int) {
	return utf8.RuneCountInString(s) * glyphW, glyphH
}

// drawText draws s with its top-left corner at (x, y).
func (w *Window) drawText(dst *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	dst.DrawImage(w.text.get(s), op)
}

// drawTextCentered draws s horizontally centred with its middle at cy.
func (w *Window) drawTextCentered(dst *ebiten.Image, s string, cy, scale float64, clr color.Color) {
	tw, th := textSize(s)
	x := (float64(w.width) - float64(tw)*scale) / 2
	w.drawText(dst, s, x, cy-float64(th)*scale/2, scale, clr)
}

func (w *Window) drawMenu(screen *ebiten.Image) {
	h := float64(w.height)
	w.drawTextCentered(screen, "DAGYIMAN", h/4, 6, colorYellow)

	for i, opt := range menuOptions {
		clr := color.Color(colorWhite)
		if i == w.cursor {
			clr = colorYellow
		}
		w.drawTextCentered(screen, opt, h/2+float64(i)*70, 4, clr)
	}

	if high := w.journal.HighScore(); high > 0 {
		best := fmt.Sprintf("Best on %s: %d", w.game.Map().Name, high)
		w.drawTextCentered(screen, best, h*3/4, 2, colorGray)
	}
	if w.snap.Err != nil {
		w.drawTextCentered(screen, w.snap.Err.Error(), h*3/4+50, 2, colorRed)
	}

	w.drawVolume(screen)
}

// drawVolume draws the slider with its label and percentage.
func (w *Window) drawVolume(screen *ebiten.Image) {
	if w.mixer == nil {
		return
	}
	track := sliderRect(w.width)
	x, y := float32(track.Min.X), float32(track.Min.Y)
	tw, th := float32(track.Dx()), float32(track.Dy())
	level := float32(w.mixer.Volume()) / 100

	w.drawText(screen, "Volume", float64(track.Min.X), float64(track.Min.Y-40), 2, colorWhite)
	vector.DrawFilledRect(screen, x, y, tw, th, colorGray, false)
	vector.DrawFilledRect(screen, x, y, tw*level, th, colorWhite, false)
	vector.DrawFilledRect(screen, x+tw*level-5, y-5, 10, th+10, colorYellow, false)

	label := fmt.Sprintf("%d%%", w.mixer.Volume())
	if w.mixer.Muted() {
		label = "muted"
	}
	w.drawText(screen, label, float64(track.Max.X)+10, float64(track.Min.Y-8), 2, colorWhite)
}

// drawLoading spins the player sprite above the loading text.
func (w *Window) drawLoading(screen *ebiten.Image) {
	img := w.assets.Image(game.SpritePlayer)
	size := w.game.Config().Player.Size
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size/float64(iw), size/float64(ih))
	op.GeoM.Translate(-size/2, -size/2)
	op.GeoM.Rotate(float64(w.snap.Tick) * 5 * math.Pi / 180)
	op.GeoM.Translate(float64(w.width)/2, float64(w.height)/2)
	screen.DrawImage(img, op)

	w.drawTextCentered(screen, "Loading...", float64(w.height)/2+100, 4, colorWhite)
}

func (w *Window) drawPlaying(screen *ebiten.Image) {
	for _, sp := range w.snap.Sprites {
		img := w.assets.Image(sp.Kind)
		if img == nil {
			continue
		}
		iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(sp.Rect.W/float64(iw), sp.Rect.H/float64(ih))
		op.GeoM.Translate(sp.Rect.X, sp.Rect.Y)
		screen.DrawImage(img, op)
	}

	w.drawText(screen, fmt.Sprintf("Score: %d", w.snap.Score), 10, 10, 2, colorWhite)
	w.drawText(screen, fmt.Sprintf("Lives: %d", w.snap.Lives), 10, 50, 2, colorWhite)
}

func (w *Window) drawFatality(screen *ebiten.Image) {
	cy := float64(w.height) / 2
	w.drawTextCentered(screen, "FATALITY", cy-50+5, 10, colorDarkRed)
	w.drawTextCentered(screen, "FATALITY", cy-50, 10, colorRed)
	w.drawTextCentered(screen, "Game Over!", cy+80, 4, colorWhite)
	w.drawTextCentered(screen, fmt.Sprintf("Score: %d", w.snap.Score), cy+140, 2, colorGray)
}

package gui

import (
	"errors"
	"image/color"
	_ "image/png" // sprite images
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/vovakirdan/dagyiman/internal/game"
)

// Colours used when an image is missing, and for text.
var (
	colorBlack   = color.RGBA{0, 0, 0, 255}
	colorWhite   = color.RGBA{255, 255, 255, 255}
	colorYellow  = color.RGBA{255, 255, 0, 255}
	colorRed     = color.RGBA{255, 0, 0, 255}
	colorDarkRed = color.RGBA{100, 0, 0, 255}
	colorBlue    = color.RGBA{0, 0, 255, 255}
	colorGray    = color.RGBA{128, 128, 128, 255}
)

// assetFiles names the image for each sprite kind under the assets directory.
var assetFiles = map[game.SpriteKind]string{
	game.SpritePlayer: "player.png",
	game.SpriteEnemy:  "enemy.png",
	game.SpritePickup: "medicine.png",
	game.SpriteBonus:  "ambulance.png",
	game.SpriteWall:   "wall.png",
}

// placeholderColor is the flat colour drawn when a sprite's image is missing.
func placeholderColor(kind game.SpriteKind) color.RGBA {
	switch kind {
	case game.SpritePlayer:
		return colorYellow
	case game.SpriteEnemy:
		return colorRed
	case game.SpritePickup:
		return colorWhite
	case game.SpriteBonus, game.SpriteWall:
		return colorBlue
	}
	return colorGray
}

// Assets holds one image per sprite kind. Kinds without a usable image on
// disk get a 1x1 image of their placeholder colour, stretched when drawn.
type Assets struct {
	images  map[game.SpriteKind]*ebiten.Image
	missing []string
}

// LoadAssets reads the sprite images from dir. A file that is missing or
// cannot be decoded is logged and replaced by its placeholder.
func LoadAssets(dir string, logger *log.Logger) *Assets {
	if logger == nil {
		logger = log.Default()
	}
	a := &Assets{images: make(map[game.SpriteKind]*ebiten.Image, len(assetFiles))}

	for kind, name := range assetFiles {
		path := filepath.Join(dir, name)
		img, _, err := ebitenutil.NewImageFromFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Warn("asset missing, using placeholder", "path", path)
			} else {
				logger.Warn("asset unreadable, using placeholder", "path", path, "err", err)
			}
			a.missing = append(a.missing, name)
			continue
		}
		a.images[kind] = img
	}
	slices.Sort(a.missing)
	return a
}

// Image returns the image for a sprite kind. Placeholders are created on
// first use.
func (a *Assets) Image(kind game.SpriteKind) *ebiten.Image {
	if img, ok := a.images[kind]; ok {
		return img
	}
	ph := ebiten.NewImage(1, 1)
	ph.Fill(placeholderColor(kind))
	a.images[kind] = ph
	return ph
}

// Missing lists the asset files that were replaced by placeholders.
func (a *Assets) Missing() []string {
	return a.missing
}

package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dagyiman/internal/core"
	"github.com/vovakirdan/dagyiman/internal/game"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorDarkRed:      lipgloss.NewStyle().Foreground(lipgloss.Color("88")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// glyph is how one sprite kind looks on a single tile. Wide boards use both
// runes, narrow boards only the first.
type glyph struct {
	runes [2]rune
	color core.Color
}

var glyphs = map[game.SpriteKind]glyph{
	game.SpriteWall:   {[2]rune{'█', '█'}, core.ColorBlue},
	game.SpritePlayer: {[2]rune{'(', ')'}, core.ColorBrightYellow},
	game.SpriteEnemy:  {[2]rune{'h', 'h'}, core.ColorRed},
	game.SpritePickup: {[2]rune{'+', ' '}, core.ColorBrightWhite},
	game.SpriteBonus:  {[2]rune{'A', '+'}, core.ColorBrightBlue},
}

// hudRows is the number of screen rows above the board.
const hudRows = 1

// Board maps the pixel space of a snapshot onto terminal cells.
// One map tile becomes TileW columns and one row.
type Board struct {
	Cols, Rows int
	CellSize   float64
	TileW      int
}

// FitBoard picks the widest tile that fits the terminal. ok is false when
// not even one column per tile fits.
func FitBoard(bounds core.Vec, cellSize float64, width, height int) (b Board, ok bool) {
	if cellSize <= 0 {
		return Board{}, false
	}
	b = Board{
		Cols:     int(math.Ceil(bounds.X / cellSize)),
		Rows:     int(math.Ceil(bounds.Y / cellSize)),
		CellSize: cellSize,
		TileW:    2,
	}
	if b.Rows+hudRows > height {
		return b, false
	}
	if b.Cols*2 > width {
		b.TileW = 1
	}
	return b, b.Cols*b.TileW <= width
}

// Width returns the board width in terminal columns.
func (b Board) Width() int {
	return b.Cols * b.TileW
}

// tiles returns the tile range a rect covers. Rects smaller than a cell are
// drawn on the tile holding their centre so they never smear across two.
func (b Board) tiles(r core.Rect) (x0, y0, x1, y1 int) {
	if r.W < b.CellSize && r.H < b.CellSize {
		c := r.Center()
		x := int(math.Floor(c.X / b.CellSize))
		y := int(math.Floor(c.Y / b.CellSize))
		return x, y, x, y
	}
	x0 = int(math.Floor(r.X / b.CellSize))
	y0 = int(math.Floor(r.Y / b.CellSize))
	x1 = int(math.Ceil(r.Right()/b.CellSize)) - 1
	y1 = int(math.Ceil(r.Bottom()/b.CellSize)) - 1
	return x0, y0, x1, y1
}

// DrawPlaying draws the HUD and the board for a Playing snapshot.
// The player is drawn last so it is never hidden under a chair.
func DrawPlaying(scr *core.Screen, snap game.Snapshot, b Board) {
	scr.Clear()

	hud := fmt.Sprintf("Score: %d", snap.Score)
	scr.DrawTextColored(0, 0, hud, core.ColorBrightWhite)
	lives := fmt.Sprintf("Lives: %d", snap.Lives)
	scr.DrawTextColored(max(b.Width()-len(lives), len(hud)+2), 0, lives, core.ColorBrightRed)

	var player *game.Sprite
	for i := range snap.Sprites {
		sp := &snap.Sprites[i]
		if sp.Kind == game.SpritePlayer {
			player = sp
			continue
		}
		drawSprite(scr, b, *sp)
	}
	if player != nil {
		drawSprite(scr, b, *player)
	}
}

func drawSprite(scr *core.Screen, b Board, sp game.Sprite) {
	g, ok := glyphs[sp.Kind]
	if !ok {
		return
	}
	x0, y0, x1, y1 := b.tiles(sp.Rect)
	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			sx := tx * b.TileW
			sy := ty + hudRows
			for i := 0; i < b.TileW; i++ {
				scr.SetColored(sx+i, sy, g.runes[i], g.color)
			}
		}
	}
}

// DrawFatality draws the game over overlay with the final score.
func DrawFatality(scr *core.Screen, score int) {
	scr.Clear()
	mid := scr.Height() / 2
	w := min(scr.Width(), 30)
	scr.DrawBox((scr.Width()-w)/2, mid-3, w, 7, core.ColorDarkRed)
	scr.DrawTextCenteredColored(mid-1, "FATALITY", core.ColorBrightRed)
	scr.DrawTextCenteredColored(mid, "Game Over!", core.ColorBrightWhite)
	scr.DrawTextCenteredColored(mid+1, fmt.Sprintf("Score: %d", score), core.ColorGray)
}

// DrawTooSmall tells the player to enlarge the terminal.
func DrawTooSmall(scr *core.Screen, b Board) {
	scr.Clear()
	mid := scr.Height() / 2
	scr.DrawTextCenteredColored(mid-1, "Terminal too small", core.ColorBrightYellow)
	need := fmt.Sprintf("need %dx%d, have %dx%d", b.Cols, b.Rows+hudRows, scr.Width(), scr.Height())
	scr.DrawTextCenteredColored(mid+1, need, core.ColorGray)
}

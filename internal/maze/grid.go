package maze

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/dagyiman/internal/core"
)

// Grid is an ordered list of equal-length text rows, one character per tile.
type Grid []string

// Cols returns the row width in characters (0 for an empty grid).
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return utf8.RuneCountInString(g[0])
}

// Rows returns the number of rows.
func (g Grid) Rows() int {
	return len(g)
}

// Layout is a parsed map in pixel space.
// Spawn lists are in row-major scan order.
type Layout struct {
	Cols, Rows int
	CellSize   float64

	Walls        []core.Rect
	PlayerSpawn  core.Vec
	EnemySpawns  []core.Vec
	PickupSpawns []core.Vec // advisory, placement uses the slot search
	BonusSpawns  []core.Vec // advisory, placement uses the slot search
}

// Bounds returns the pixel extent of the map.
func (l *Layout) Bounds() core.Vec {
	return core.V(float64(l.Cols)*l.CellSize, float64(l.Rows)*l.CellSize)
}

// CellAt returns the top-left pixel position of grid cell (col, row).
func (l *Layout) CellAt(col, row int) core.Vec {
	return core.V(float64(col)*l.CellSize, float64(row)*l.CellSize)
}

// Parse converts the grid into walls and spawn points.
// When several player spawns exist the last one in scan order wins.
func Parse(g Grid, cellSize float64) (*Layout, error) {
	if cellSize <= 0 {
		return nil, mapErr(ErrBadCellSize, -1, -1, fmt.Sprintf("got %v", cellSize))
	}
	if len(g) == 0 {
		return nil, mapErr(ErrEmptyMap, -1, -1, "")
	}

	cols := g.Cols()
	if cols == 0 {
		return nil, mapErr(ErrEmptyMap, 0, -1, "first row is blank")
	}

	l := &Layout{
		Cols:     cols,
		Rows:     len(g),
		CellSize: cellSize,
	}

	havePlayer := false
	for row, line := range g {
		if n := utf8.RuneCountInString(line); n != cols {
			return nil, mapErr(ErrRaggedRows, row, -1, fmt.Sprintf("want %d columns, got %d", cols, n))
		}

		col := 0
		for _, r := range line {
			tile, ok := TileOf(r)
			if !ok {
				return nil, mapErr(ErrUnknownTile, row, col, fmt.Sprintf("%q", r))
			}

			pos := l.CellAt(col, row)
			switch tile {
			case TileWall:
				l.Walls = append(l.Walls, core.RectAt(pos, core.V(cellSize, cellSize)))
			case TilePlayer:
				l.PlayerSpawn = pos
				havePlayer = true
			case TileEnemy:
				l.EnemySpawns = append(l.EnemySpawns, pos)
			case TilePickup:
				l.PickupSpawns = append(l.PickupSpawns, pos)
			case TileBonus:
				l.BonusSpawns = append(l.BonusSpawns, pos)
			}
			col++
		}
	}

	if !havePlayer {
		return nil, mapErr(ErrMissingPlayerSpawn, -1, -1, "")
	}

	return l, nil
}

// Package maze turns a textual tile grid into wall rectangles and spawn
// points measured in pixels. It knows nothing about entities or timers.
package maze

// Tile is the semantic meaning of one grid character.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileWall
	TilePlayer // player spawn
	TileEnemy  // enemy spawn, one enemy per character
	TilePickup // advisory medicine spawn
	TileBonus  // advisory ambulance spawn
)

// TileOf maps a grid character to its tile. Space and '.' are both empty.
func TileOf(r rune) (Tile, bool) {
	switch r {
	case ' ', '.':
		return TileEmpty, true
	case 'W':
		return TileWall, true
	case 'P':
		return TilePlayer, true
	case 'E':
		return TileEnemy, true
	case 'M':
		return TilePickup, true
	case 'A':
		return TileBonus, true
	default:
		return TileEmpty, false
	}
}

// Rune returns the canonical character for the tile.
func (t Tile) Rune() rune {
	switch t {
	case TileWall:
		return 'W'
	case TilePlayer:
		return 'P'
	case TileEnemy:
		return 'E'
	case TilePickup:
		return 'M'
	case TileBonus:
		return 'A'
	default:
		return ' '
	}
}

// String returns a human-readable name for the tile.
func (t Tile) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileWall:
		return "wall"
	case TilePlayer:
		return "player"
	case TileEnemy:
		return "enemy"
	case TilePickup:
		return "pickup"
	case TileBonus:
		return "bonus"
	default:
		return "unknown"
	}
}

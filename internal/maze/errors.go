package maze

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by MapError. Check them with errors.Is.
var (
	ErrEmptyMap           = errors.New("map has no rows")
	ErrRaggedRows         = errors.New("rows differ in length")
	ErrUnknownTile        = errors.New("unknown tile character")
	ErrMissingPlayerSpawn = errors.New("no player spawn")
	ErrBadCellSize        = errors.New("cell size must be positive")
)

// MapError describes a malformed map. Row and Col are zero-based and set to
// -1 when the problem is not tied to a single cell.
type MapError struct {
	Row, Col int
	Detail   string
	Err      error
}

func (e *MapError) Error() string {
	msg := "maze: " + e.Err.Error()
	if e.Row >= 0 {
		if e.Col >= 0 {
			msg += fmt.Sprintf(" at row %d col %d", e.Row, e.Col)
		} else {
			msg += fmt.Sprintf(" at row %d", e.Row)
		}
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *MapError) Unwrap() error {
	return e.Err
}

func mapErr(err error, row, col int, detail string) *MapError {
	return &MapError{Row: row, Col: col, Detail: detail, Err: err}
}

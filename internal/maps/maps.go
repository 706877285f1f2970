// Package maps holds the built-in maps and registers them on import.
package maps

import (
	"embed"
	"fmt"

	"github.com/vovakirdan/dagyiman/internal/maze"
	"github.com/vovakirdan/dagyiman/internal/registry"
)

// DefaultID is the map used when none is requested.
const DefaultID = "clinic"

//go:embed data/*.txt
var files embed.FS

type builtin struct {
	id   string
	name string
}

var builtins = []builtin{
	{id: "clinic", name: "Clinic"},
	{id: "ward", name: "Practice Ward"},
}

func init() {
	for _, b := range builtins {
		data, err := files.ReadFile("data/" + b.id + ".txt")
		if err != nil {
			panic(fmt.Sprintf("maps: missing embedded map %s: %v", b.id, err))
		}
		registry.Register(b.id, factory(b, data))
	}
}

func factory(b builtin, data []byte) registry.Factory {
	return func() maze.Definition {
		d := maze.ParseText(b.id, data)
		d.Name = b.name
		d.Source = "builtin"
		return d
	}
}

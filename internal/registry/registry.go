// Package registry provides a global registry of named maps.
// Built-in maps register themselves in init() functions, allowing the CLI
// and shells to discover them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/dagyiman/internal/maze"
)

// MapInfo contains metadata about a registered map.
type MapInfo struct {
	ID   string
	Name string
	Cols int
	Rows int
}

// Factory returns a fresh copy of a map definition.
type Factory func() maze.Definition

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]MapInfo)
	mu        sync.RWMutex
)

// Register adds a map factory to the registry.
// Typically called from an init() function.
// Panics if a map with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: map %q already registered", id))
	}

	factories[id] = f

	d := f()
	infos[id] = MapInfo{
		ID:   id,
		Name: d.Name,
		Cols: d.Rows.Cols(),
		Rows: d.Rows.Rows(),
	}
}

// List returns information about all registered maps, sorted by ID.
func List() []MapInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]MapInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns the definition registered under id.
func Get(id string) (maze.Definition, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return maze.Definition{}, fmt.Errorf("registry: unknown map %q", id)
	}

	return f(), nil
}

// Exists checks if a map with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

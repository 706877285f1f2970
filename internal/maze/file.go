package maze

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition is a named map as stored on disk or embedded in the binary.
type Definition struct {
	ID     string
	Name   string
	Rows   Grid
	Source string // file path, or "builtin"
}

// Layout parses the definition at the given cell size.
func (d Definition) Layout(cellSize float64) (*Layout, error) {
	l, err := Parse(d.Rows, cellSize)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", d.ID, err)
	}
	return l, nil
}

// yamlMap is the on-disk YAML shape of a map file.
type yamlMap struct {
	ID   string   `yaml:"id"`
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// ParseText reads one row per line. Trailing blank lines and CR characters
// are dropped; everything else is kept verbatim.
func ParseText(id string, data []byte) Definition {
	var rows Grid
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		rows = append(rows, strings.TrimRight(sc.Text(), "\r"))
	}
	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}
	return Definition{ID: id, Name: id, Rows: rows}
}

// ParseYAML reads a YAML map file with id, name and rows keys.
func ParseYAML(data []byte) (Definition, error) {
	var ym yamlMap
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return Definition{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	name := ym.Name
	if name == "" {
		name = ym.ID
	}
	return Definition{ID: ym.ID, Name: name, Rows: Grid(ym.Rows)}, nil
}

// FormatExtensions returns the supported map file extensions.
func FormatExtensions() []string {
	return []string{".txt", ".yaml", ".yml"}
}

// LoadFile reads a map file and validates that it parses.
// The id defaults to the file name without extension.
func LoadFile(path string) (Definition, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(FormatExtensions(), ext) {
		return Definition{}, fmt.Errorf("unsupported map extension: %s", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("reading map %s: %w", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var def Definition
	switch ext {
	case ".yaml", ".yml":
		def, err = ParseYAML(data)
		if err != nil {
			return Definition{}, fmt.Errorf("parsing map %s: %w", path, err)
		}
	default:
		def = ParseText(base, data)
	}

	if def.ID == "" {
		def.ID = base
	}
	if def.Name == "" {
		def.Name = def.ID
	}
	def.Source = path

	// Cell size does not affect validity.
	if _, err := Parse(def.Rows, 1); err != nil {
		return Definition{}, fmt.Errorf("parsing map %s: %w", path, err)
	}
	return def, nil
}

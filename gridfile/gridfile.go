// Package gridfile reads and writes maps in the flat grid text format plus the
// sidecar metadata record holding the start and goal coordinates.
package gridfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdrpinto/gridsearch"
	"gopkg.in/yaml.v3"
)

// ErrBadCoordinate reports a sidecar key that is present but not a [row, col] pair.
var ErrBadCoordinate = errors.New("metadata coordinate must be [row, col]")

// Meta is the sidecar record. Coordinates are [row, col].
type Meta struct {
	Start []int `yaml:"start" json:"start"`
	Goal  []int `yaml:"goal" json:"goal"`
}

// Endpoints applies the record over the given defaults. Each key that is
// absent keeps its default.
func (m Meta) Endpoints(start, goal gridsearch.Position) (gridsearch.Position, gridsearch.Position, error) {
	var err error
	if start, err = coordinate("start", m.Start, start); err != nil {
		return start, goal, err
	}
	if goal, err = coordinate("goal", m.Goal, goal); err != nil {
		return start, goal, err
	}
	return start, goal, nil
}

func coordinate(key string, values []int, fallback gridsearch.Position) (gridsearch.Position, error) {
	switch len(values) {
	case 0:
		return fallback, nil
	case 2:
		return gridsearch.Position{Row: values[0], Col: values[1]}, nil
	}
	return fallback, fmt.Errorf("%w: %s has %d values", ErrBadCoordinate, key, len(values))
}

// Map is a grid file together with its endpoints.
type Map struct {
	Name    string
	Path    string
	Grid    *gridsearch.Grid
	Start   gridsearch.Position
	Goal    gridsearch.Position
	HasMeta bool // endpoints came from a sidecar rather than the defaults
}

// MetaPath returns the sidecar path for a grid file: the extension becomes .json.
func MetaPath(gridPath string) string {
	return strings.TrimSuffix(gridPath, filepath.Ext(gridPath)) + ".json"
}

// ReadMeta decodes a sidecar. JSON and YAML are both accepted.
func ReadMeta(path string) (Meta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Meta{}, err
	}
	var meta Meta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return Meta{}, fmt.Errorf("decode metadata %s: %w", path, err)
	}
	return meta, nil
}

// Load reads a grid file and its sidecar. Endpoints the sidecar does not name,
// or all of them without a sidecar, default to the top-left and bottom-right corners.
func Load(path string) (*Map, error) {
	grid, err := gridsearch.ReadGridFile(path)
	if err != nil {
		return nil, err
	}
	m := &Map{
		Name:  filepath.Base(path),
		Path:  path,
		Grid:  grid,
		Start: gridsearch.Position{Row: 0, Col: 0},
		Goal:  gridsearch.Position{Row: grid.Rows() - 1, Col: grid.Cols() - 1},
	}

	meta, err := ReadMeta(MetaPath(path))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return m, nil
	case err != nil:
		return nil, err
	}
	start, goal, err := meta.Endpoints(m.Start, m.Goal)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MetaPath(path), err)
	}
	m.Start, m.Goal, m.HasMeta = start, goal, true
	return m, nil
}

// Save writes the grid text to path and the JSON sidecar next to it.
func Save(path string, grid *gridsearch.Grid, start, goal gridsearch.Position) error {
	if start == goal {
		return fmt.Errorf("start and goal are both %v", start)
	}
	for _, p := range []gridsearch.Position{start, goal} {
		if !grid.InBounds(p) {
			return fmt.Errorf("%w: %v", gridsearch.ErrOutOfBounds, p)
		}
		if !grid.Free(p) {
			return fmt.Errorf("%w: %v", gridsearch.ErrBlockedEndpoint, p)
		}
	}

	if err := os.WriteFile(path, []byte(grid.String()), 0o644); err != nil {
		return err
	}
	meta, err := json.Marshal(Meta{
		Start: []int{start.Row, start.Col},
		Goal:  []int{goal.Row, goal.Col},
	})
	if err != nil {
		return err
	}
	return os.WriteFile(MetaPath(path), meta, 0o644)
}

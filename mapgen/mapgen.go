// Package mapgen builds random occupancy grids with clustered walls.
package mapgen

import (
	"errors"
	"math/rand"

	"github.com/pdrpinto/gridsearch"
)

// Params controls generation. Walls are laid by Clusters random walks of Steps
// moves each; every visited cell becomes a wall with probability Density.
type Params struct {
	Rows, Cols int
	Clusters   int
	Steps      int
	Density    float64
	Seed       int64
}

// DefaultParams mirrors the defaults of the web stepper.
func DefaultParams() Params {
	return Params{Rows: 24, Cols: 40, Clusters: 8, Steps: 200, Density: 0.25, Seed: 1}
}

// ErrTooSmall reports a grid with fewer than two cells.
var ErrTooSmall = errors.New("grid needs at least two cells")

var walkDirections = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Generate builds a grid with random endpoints. Start and goal are distinct and free.
func Generate(params Params) (*gridsearch.Grid, gridsearch.Position, gridsearch.Position, error) {
	if params.Rows < 1 || params.Cols < 1 || params.Rows*params.Cols < 2 {
		return nil, gridsearch.Position{}, gridsearch.Position{}, ErrTooSmall
	}
	rng := rand.New(rand.NewSource(params.Seed))
	start, goal := randomEndpoints(rng, params.Rows, params.Cols)
	grid, err := generateWalls(rng, params, start, goal)
	if err != nil {
		return nil, gridsearch.Position{}, gridsearch.Position{}, err
	}
	return grid, start, goal, nil
}

// GenerateWith builds a grid around fixed endpoints, which are left free.
func GenerateWith(params Params, start, goal gridsearch.Position) (*gridsearch.Grid, error) {
	if params.Rows < 1 || params.Cols < 1 || params.Rows*params.Cols < 2 {
		return nil, ErrTooSmall
	}
	rng := rand.New(rand.NewSource(params.Seed))
	return generateWalls(rng, params, start, goal)
}

func randomEndpoints(rng *rand.Rand, rows, cols int) (gridsearch.Position, gridsearch.Position) {
	for {
		start := gridsearch.Position{Row: rng.Intn(rows), Col: rng.Intn(cols)}
		goal := gridsearch.Position{Row: rng.Intn(rows), Col: rng.Intn(cols)}
		if start != goal {
			return start, goal
		}
	}
}

// generateWalls runs clustered random walks, laying walls away from the endpoints.
func generateWalls(rng *rand.Rand, params Params, start, goal gridsearch.Position) (*gridsearch.Grid, error) {
	values := make([][]int, params.Rows)
	for r := range values {
		values[r] = make([]int, params.Cols)
	}
	for c := 0; c < params.Clusters; c++ {
		p := gridsearch.Position{Row: rng.Intn(params.Rows), Col: rng.Intn(params.Cols)}
		for s := 0; s < params.Steps; s++ {
			if rng.Float64() < params.Density && p != start && p != goal {
				values[p.Row][p.Col] = int(gridsearch.Blocked)
			}
			d := walkDirections[rng.Intn(len(walkDirections))]
			next := gridsearch.Position{Row: p.Row + d[0], Col: p.Col + d[1]}
			if next.Row >= 0 && next.Row < params.Rows && next.Col >= 0 && next.Col < params.Cols {
				p = next
			}
		}
	}
	return gridsearch.NewGrid(values)
}

package gridsearch

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, text string) *Grid {
	t.Helper()
	grid, err := LoadGrid(text)
	require.NoError(t, err)
	return grid
}

func openGrid(t *testing.T, rows, cols int) *Grid {
	t.Helper()
	values := make([][]int, rows)
	for r := range values {
		values[r] = make([]int, cols)
	}
	grid, err := NewGrid(values)
	require.NoError(t, err)
	return grid
}

// randomGrid blocks roughly density of the cells, keeping start and goal free.
func randomGrid(t *testing.T, seed int64, rows, cols int, density float64, start, goal Position) *Grid {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	values := make([][]int, rows)
	for r := range values {
		values[r] = make([]int, cols)
		for c := range values[r] {
			if rng.Float64() < density {
				values[r][c] = 1
			}
		}
	}
	values[start.Row][start.Col] = 0
	values[goal.Row][goal.Col] = 0
	grid, err := NewGrid(values)
	require.NoError(t, err)
	return grid
}

// walkedCost sums the true move costs along a path.
func walkedCost(path []Position) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		if path[i].Row != path[i-1].Row && path[i].Col != path[i-1].Col {
			total += DiagonalCost
		} else {
			total += OrthogonalCost
		}
	}
	return total
}

func assertValidPath(t *testing.T, grid *Grid, path []Position, start, goal Position) {
	t.Helper()
	require.NotEmpty(t, path)
	assert.Equal(t, start, path[0])
	assert.Equal(t, goal, path[len(path)-1])
	for i, p := range path {
		assert.True(t, grid.Free(p), "path crosses blocked cell %v", p)
		if i == 0 {
			continue
		}
		dr, dc := p.Row-path[i-1].Row, p.Col-path[i-1].Col
		assert.True(t, dr >= -1 && dr <= 1 && dc >= -1 && dc <= 1 && (dr != 0 || dc != 0),
			"path not 8-adjacent at %d: %v -> %v", i, path[i-1], p)
	}
}

func TestSearch_ThreeByThree(t *testing.T) {
	grid := openGrid(t, 3, 3)
	start, goal := Position{0, 0}, Position{2, 2}
	diagonal := []Position{{0, 0}, {1, 1}, {2, 2}}

	for _, algorithm := range []Algorithm{AStar, Dijkstra} {
		t.Run(string(algorithm), func(t *testing.T) {
			result, err := Search(grid, start, goal, algorithm)
			require.NoError(t, err)
			assert.Equal(t, diagonal, result.Path)
			assert.InDelta(t, 2*math.Sqrt2, result.Metrics.TotalCost, 1e-9)
			assert.Equal(t, 3, result.Metrics.PathLength)
			assert.True(t, result.Metrics.Found)
		})
	}

	t.Run("greedy", func(t *testing.T) {
		result, err := Search(grid, start, goal, Greedy)
		require.NoError(t, err)
		assert.Equal(t, diagonal, result.Path)
		assert.Equal(t, 0.0, result.Metrics.TotalCost)
	})

	t.Run("bfs", func(t *testing.T) {
		result, err := Search(grid, start, goal, BreadthFirst)
		require.NoError(t, err)
		assert.Equal(t, diagonal, result.Path)
		assert.Equal(t, 3, result.Metrics.PathLength)
		assert.Equal(t, 3.0, result.Metrics.TotalCost)
		assert.Equal(t, []Position{
			{0, 0}, {1, 0}, {0, 1}, {1, 1}, {2, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2},
		}, result.Expanded)
	})
}

func TestSearch_DiagonalNeighborCostsSqrt2(t *testing.T) {
	grid := openGrid(t, 4, 4)
	for _, algorithm := range []Algorithm{AStar, Dijkstra} {
		result, err := Search(grid, Position{1, 1}, Position{2, 2}, algorithm)
		require.NoError(t, err)
		assert.InDelta(t, math.Sqrt2, result.Metrics.TotalCost, 1e-9, string(algorithm))
	}
}

func TestSearch_StartEqualsGoal(t *testing.T) {
	grid := openGrid(t, 2, 2)
	for _, algorithm := range Algorithms() {
		result, err := Search(grid, Position{1, 0}, Position{1, 0}, algorithm)
		require.NoError(t, err)
		assert.Equal(t, []Position{{1, 0}}, result.Path, string(algorithm))
		assert.Equal(t, 1, result.Metrics.NodesExpanded, string(algorithm))
	}
}

func TestDepthFirst_TracedOrder(t *testing.T) {
	grid := openGrid(t, 3, 3)

	path, expanded, err := DepthFirstSearch(grid, Position{0, 0}, Position{0, 2})
	require.NoError(t, err)

	wantPath := []Position{{0, 0}, {1, 1}, {2, 2}, {2, 1}, {1, 2}, {0, 1}, {0, 2}}
	if diff := cmp.Diff(wantPath, path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
	wantExpanded := []Position{{0, 0}, {1, 1}, {2, 2}, {2, 1}, {1, 2}, {0, 1}, {1, 0}, {2, 0}, {0, 2}}
	if diff := cmp.Diff(wantExpanded, expanded); diff != "" {
		t.Errorf("expansion order mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_SuboptimalStrategies(t *testing.T) {
	grid := openGrid(t, 3, 3)
	start, goal := Position{0, 0}, Position{0, 2}

	optimal, err := Search(grid, start, goal, AStar)
	require.NoError(t, err)
	assert.Equal(t, []Position{{0, 0}, {0, 1}, {0, 2}}, optimal.Path)

	depthFirst, err := Search(grid, start, goal, DepthFirst)
	require.NoError(t, err)
	assert.Greater(t, depthFirst.Metrics.PathLength, optimal.Metrics.PathLength)
	assert.Greater(t, walkedCost(depthFirst.Path), optimal.Metrics.TotalCost)
	assert.Equal(t, 7.0, depthFirst.Metrics.TotalCost)
}

func TestSearch_EnclosedGoal(t *testing.T) {
	grid := mustGrid(t, `
0 0 0 0 0 0 0
0 1 1 1 1 1 0
0 1 0 0 0 1 0
0 1 0 0 0 1 0
0 1 0 0 0 1 0
0 1 1 1 1 1 0
0 0 0 0 0 0 0
`)
	tests := []struct {
		name        string
		start, goal Position
		reachable   int
	}{
		{name: "outside to inside", start: Position{0, 0}, goal: Position{3, 3}, reachable: 24},
		{name: "inside to outside", start: Position{3, 3}, goal: Position{6, 6}, reachable: 9},
	}

	for _, tt := range tests {
		for _, algorithm := range Algorithms() {
			t.Run(tt.name+"/"+string(algorithm), func(t *testing.T) {
				result, err := Search(grid, tt.start, tt.goal, algorithm)
				require.NoError(t, err)
				assert.Nil(t, result.Path)
				assert.False(t, result.Found())
				assert.False(t, result.Metrics.Found)
				assert.Equal(t, tt.reachable, result.Metrics.NodesExpanded)
				assert.Zero(t, result.Metrics.PathLength)
				assert.Zero(t, result.Metrics.TotalCost)
			})
		}
	}
}

func TestSearch_Properties(t *testing.T) {
	start := Position{0, 0}
	for seed := int64(1); seed <= 40; seed++ {
		goal := Position{11, 14}
		grid := randomGrid(t, seed, 12, 15, 0.3, start, goal)

		results := make(map[Algorithm]Result)
		for _, algorithm := range Algorithms() {
			result, err := Search(grid, start, goal, algorithm)
			require.NoError(t, err)
			results[algorithm] = result
		}

		found := results[AStar].Found()
		for algorithm, result := range results {
			assert.Equal(t, found, result.Found(), "seed %d: %s disagrees on reachability", seed, algorithm)
			if result.Found() {
				assertValidPath(t, grid, result.Path, start, goal)
			}
		}
		if !found {
			continue
		}

		aStar, dijkstra := results[AStar], results[Dijkstra]
		assert.InDelta(t, dijkstra.Metrics.TotalCost, aStar.Metrics.TotalCost, 1e-9, "seed %d", seed)
		assert.InDelta(t, walkedCost(aStar.Path), aStar.Metrics.TotalCost, 1e-9, "seed %d", seed)

		assert.LessOrEqual(t, results[BreadthFirst].Metrics.PathLength, results[DepthFirst].Metrics.PathLength, "seed %d", seed)
		assert.GreaterOrEqual(t, walkedCost(results[Greedy].Path)+1e-9, aStar.Metrics.TotalCost, "seed %d", seed)
		assert.Zero(t, results[Greedy].Metrics.TotalCost)
	}
}

func TestSearch_Deterministic(t *testing.T) {
	start, goal := Position{0, 0}, Position{19, 19}
	grid := randomGrid(t, 7, 20, 20, 0.25, start, goal)

	for _, algorithm := range Algorithms() {
		first, err := Search(grid, start, goal, algorithm)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			again, err := Search(grid, start, goal, algorithm)
			require.NoError(t, err)
			assert.Equal(t, first.Path, again.Path, string(algorithm))
			assert.Equal(t, len(first.Expanded), len(again.Expanded), string(algorithm))
		}
	}
}

func TestSearch_SkipFinalizedDoesNotChangePath(t *testing.T) {
	start := Position{0, 0}
	for seed := int64(100); seed < 130; seed++ {
		goal := Position{15, 15}
		grid := randomGrid(t, seed, 16, 16, 0.25, start, goal)

		for _, algorithm := range []Algorithm{AStar, Dijkstra, Greedy} {
			guarded, err := Search(grid, start, goal, algorithm)
			require.NoError(t, err)
			unguarded, err := Search(grid, start, goal, algorithm, WithSkipFinalized(false))
			require.NoError(t, err)

			if diff := cmp.Diff(guarded.Path, unguarded.Path); diff != "" {
				t.Errorf("seed %d %s: path changed without guard (-guarded +unguarded):\n%s", seed, algorithm, diff)
			}
			assert.Equal(t, guarded.Metrics.TotalCost, unguarded.Metrics.TotalCost)
			assert.GreaterOrEqual(t, unguarded.Metrics.NodesExpanded, guarded.Metrics.NodesExpanded)
		}
	}
}

func TestSearch_ExpandsEachPositionOnce(t *testing.T) {
	start, goal := Position{0, 0}, Position{17, 17}
	grid := randomGrid(t, 3, 18, 18, 0.2, start, goal)

	for _, algorithm := range Algorithms() {
		result, err := Search(grid, start, goal, algorithm)
		require.NoError(t, err)
		seen := make(map[Position]bool)
		for _, p := range result.Expanded {
			assert.False(t, seen[p], "%s expanded %v twice", algorithm, p)
			seen[p] = true
		}
	}
}

func TestSearch_InvalidEndpoints(t *testing.T) {
	grid := mustGrid(t, `
0 0 0
0 1 0
0 0 0
`)
	tests := []struct {
		name        string
		start, goal Position
		want        error
	}{
		{name: "start out of bounds", start: Position{-1, 0}, goal: Position{2, 2}, want: ErrOutOfBounds},
		{name: "goal out of bounds", start: Position{0, 0}, goal: Position{3, 0}, want: ErrOutOfBounds},
		{name: "start blocked", start: Position{1, 1}, goal: Position{2, 2}, want: ErrBlockedEndpoint},
		{name: "goal blocked", start: Position{0, 0}, goal: Position{1, 1}, want: ErrBlockedEndpoint},
	}

	for _, tt := range tests {
		for _, algorithm := range Algorithms() {
			t.Run(tt.name+"/"+string(algorithm), func(t *testing.T) {
				_, err := Search(grid, tt.start, tt.goal, algorithm)
				assert.True(t, errors.Is(err, tt.want), "got %v", err)
			})
		}
	}

	_, _, err := WeightedSearch(grid, Position{1, 1}, Position{0, 0}, Policy{AccumulateCost: true})
	assert.ErrorIs(t, err, ErrBlockedEndpoint)
	_, _, err = BreadthFirstSearch(grid, Position{0, 0}, Position{0, 9})
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, _, err = DepthFirstSearch(grid, Position{9, 0}, Position{0, 0})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestSearch_UnknownAlgorithm(t *testing.T) {
	_, err := Search(openGrid(t, 2, 2), Position{0, 0}, Position{1, 1}, Algorithm("ida_star"))
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestSearch_Duration(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	clock := func() time.Time {
		calls++
		return base.Add(time.Duration(calls-1) * 5 * time.Millisecond)
	}

	result, err := Search(openGrid(t, 3, 3), Position{0, 0}, Position{2, 2}, AStar, WithClock(clock))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Millisecond, result.Metrics.Duration)
	assert.Equal(t, 2, calls)
}

func TestWeightedSearch_Policies(t *testing.T) {
	grid := openGrid(t, 5, 5)
	start, goal := Position{0, 0}, Position{4, 2}

	aStarPath, _, err := WeightedSearch(grid, start, goal, Policy{AccumulateCost: true, UseHeuristic: true})
	require.NoError(t, err)
	dijkstraPath, dijkstraExpanded, err := WeightedSearch(grid, start, goal, Policy{AccumulateCost: true})
	require.NoError(t, err)

	assert.InDelta(t, walkedCost(aStarPath), walkedCost(dijkstraPath), 1e-9)
	assert.InDelta(t, 2+2*math.Sqrt2, walkedCost(aStarPath), 1e-9)
	assert.NotEmpty(t, dijkstraExpanded)
}

func TestParseAlgorithm(t *testing.T) {
	for _, algorithm := range Algorithms() {
		parsed, err := ParseAlgorithm(string(algorithm))
		require.NoError(t, err)
		assert.Equal(t, algorithm, parsed)
	}
	parsed, err := ParseAlgorithm(" A* ")
	require.NoError(t, err)
	assert.Equal(t, AStar, parsed)

	_, err = ParseAlgorithm("jps")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestAlgorithm_Policy(t *testing.T) {
	policy, ok := AStar.Policy()
	assert.True(t, ok)
	assert.Equal(t, Policy{AccumulateCost: true, UseHeuristic: true}, policy)

	policy, ok = Dijkstra.Policy()
	assert.True(t, ok)
	assert.Equal(t, Policy{AccumulateCost: true}, policy)

	policy, ok = Greedy.Policy()
	assert.True(t, ok)
	assert.Equal(t, Policy{UseHeuristic: true}, policy)

	_, ok = BreadthFirst.Policy()
	assert.False(t, ok)
}

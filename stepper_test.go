package gridsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepper_MatchesSearch(t *testing.T) {
	start, goal := Position{0, 0}, Position{9, 11}
	grid := randomGrid(t, 42, 10, 12, 0.25, start, goal)

	for _, algorithm := range Algorithms() {
		t.Run(string(algorithm), func(t *testing.T) {
			result, err := Search(grid, start, goal, algorithm)
			require.NoError(t, err)

			stepper, err := NewStepper(grid, start, goal, algorithm)
			require.NoError(t, err)
			assert.Equal(t, algorithm, stepper.Algorithm())

			final := stepper.Run()
			assert.True(t, final.Done)
			assert.Equal(t, result.Found(), final.Found)
			assert.Equal(t, result.Path, final.Path)
			assert.Equal(t, result.Expanded, final.Closed)
			assert.Equal(t, len(result.Expanded), final.StepIndex)
			assert.Equal(t, result.Metrics.TotalCost, final.Cost)
		})
	}
}

func TestStepper_Snapshots(t *testing.T) {
	grid := openGrid(t, 3, 3)
	stepper, err := NewStepper(grid, Position{0, 0}, Position{2, 2}, BreadthFirst)
	require.NoError(t, err)

	first := stepper.Step()
	assert.Equal(t, 1, first.StepIndex)
	assert.Equal(t, Position{0, 0}, first.Current)
	assert.Equal(t, []Position{{1, 0}, {0, 1}, {1, 1}}, first.Open)
	assert.Equal(t, []Position{{0, 0}}, first.Closed)
	assert.False(t, first.Done)

	second := stepper.Step()
	assert.Equal(t, 2, second.StepIndex)
	assert.Equal(t, Position{1, 0}, second.Current)
	assert.Equal(t, []Position{{0, 1}, {1, 1}, {2, 0}, {2, 1}}, second.Open)

	final := stepper.Run()
	assert.True(t, final.Found)
	assert.Equal(t, Position{2, 2}, final.Current)
	assert.Equal(t, 9, final.StepIndex)

	again := stepper.Step()
	assert.Equal(t, final.StepIndex, again.StepIndex)
	assert.True(t, again.Done)
}

func TestStepper_Unreachable(t *testing.T) {
	grid := mustGrid(t, `
0 1 0
1 1 0
0 0 0
`)
	stepper, err := NewStepper(grid, Position{0, 0}, Position{2, 2}, Dijkstra)
	require.NoError(t, err)

	final := stepper.Run()
	assert.True(t, final.Done)
	assert.False(t, final.Found)
	assert.Nil(t, final.Path)
	assert.Equal(t, 1, final.StepIndex)
	assert.Empty(t, final.Open)
}

func TestStepper_ExhaustedReportsLastExpanded(t *testing.T) {
	grid := mustGrid(t, `
0 1 0
1 1 0
0 0 0
`)
	for _, algorithm := range Algorithms() {
		stepper, err := NewStepper(grid, Position{2, 2}, Position{0, 0}, algorithm)
		require.NoError(t, err)

		final := stepper.Run()
		require.False(t, final.Found, string(algorithm))
		require.Len(t, final.Closed, 5, string(algorithm))
		assert.Equal(t, final.Closed[len(final.Closed)-1], final.Current, string(algorithm))
		assert.True(t, grid.Free(final.Current), string(algorithm))

		again := stepper.Step()
		assert.Equal(t, final.Current, again.Current, string(algorithm))
	}
}

func TestNewStepper_Errors(t *testing.T) {
	grid := openGrid(t, 2, 2)
	_, err := NewStepper(grid, Position{0, 0}, Position{5, 5}, AStar)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = NewStepper(grid, Position{0, 0}, Position{1, 1}, Algorithm("nope"))
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

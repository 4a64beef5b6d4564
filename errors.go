package gridsearch

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGrid reports an empty or ragged grid, or a cell value outside {0,1}.
	ErrInvalidGrid = errors.New("invalid grid")
	// ErrOutOfBounds reports a start or goal outside the grid extents.
	ErrOutOfBounds = errors.New("position out of bounds")
	// ErrBlockedEndpoint reports a start or goal on a blocked cell.
	ErrBlockedEndpoint = errors.New("endpoint is blocked")
	// ErrUnknownAlgorithm reports an algorithm name that is not one of Algorithms().
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)

// GridError describes why grid text was rejected. It matches ErrInvalidGrid with errors.Is.
type GridError struct {
	Line   int // 1-based source line, 0 when not tied to a line
	Reason string
}

func (e *GridError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", ErrInvalidGrid, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidGrid, e.Reason)
}

func (e *GridError) Unwrap() error { return ErrInvalidGrid }

// validateEndpoints fails fast on endpoints that could never yield a path.
func validateEndpoints(grid *Grid, start, goal Position) error {
	for _, endpoint := range []struct {
		name     string
		position Position
	}{{"start", start}, {"goal", goal}} {
		if !grid.InBounds(endpoint.position) {
			return fmt.Errorf("%w: %s %v outside %dx%d grid",
				ErrOutOfBounds, endpoint.name, endpoint.position, grid.Rows(), grid.Cols())
		}
		if !grid.Free(endpoint.position) {
			return fmt.Errorf("%w: %s %v", ErrBlockedEndpoint, endpoint.name, endpoint.position)
		}
	}
	return nil
}

package gridsearch

import (
	"fmt"
	"strings"
	"time"
)

// Algorithm names a search strategy. The values match the results table.
type Algorithm string

const (
	AStar        Algorithm = "a_star"
	Dijkstra     Algorithm = "dijkstra"
	Greedy       Algorithm = "greedy"
	BreadthFirst Algorithm = "bfs"
	DepthFirst   Algorithm = "dfs"
)

// Algorithms returns every supported algorithm in reporting order.
func Algorithms() []Algorithm {
	return []Algorithm{AStar, Dijkstra, Greedy, BreadthFirst, DepthFirst}
}

// ParseAlgorithm accepts the canonical names case-insensitively, plus "astar" and "a*".
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "a_star", "astar", "a*":
		return AStar, nil
	case "dijkstra":
		return Dijkstra, nil
	case "greedy":
		return Greedy, nil
	case "bfs":
		return BreadthFirst, nil
	case "dfs":
		return DepthFirst, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Policy returns the weighted-engine policy, or false for BFS and DFS.
func (a Algorithm) Policy() (Policy, bool) {
	switch a {
	case AStar:
		return Policy{AccumulateCost: true, UseHeuristic: true}, true
	case Dijkstra:
		return Policy{AccumulateCost: true}, true
	case Greedy:
		return Policy{UseHeuristic: true}, true
	}
	return Policy{}, false
}

// Result contains the outcome of a search.
type Result struct {
	Algorithm Algorithm
	Path      []Position // start to goal inclusive, nil when unreachable
	Expanded  []Position // positions in expansion order
	Metrics   Metrics
}

// Found reports whether a path was found.
func (r Result) Found() bool { return r.Path != nil }

// Options defines parameters for the search.
type Options struct {
	SkipFinalized bool
	Clock         func() time.Time
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithSkipFinalized controls whether the weighted engines skip frontier entries for
// positions already expanded. It is on by default; turning it off re-expands stale
// entries, which grows the expansion log but never changes the path.
func WithSkipFinalized(skip bool) Option {
	return func(options *Options) { options.SkipFinalized = skip }
}

// WithClock replaces time.Now for duration measurement.
func WithClock(clock func() time.Time) Option {
	return func(options *Options) { options.Clock = clock }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{
		SkipFinalized: true,
		Clock:         time.Now,
	}
	for _, option := range options {
		option(&searchOptions)
	}
	return searchOptions
}

// engine is one search strategy advanced one frontier pop at a time.
type engine interface {
	// advance pops one frontier entry. expanded is false when the pop was a skipped
	// duplicate or the frontier was empty; done is true once the goal was expanded or
	// the frontier is exhausted.
	advance() (position Position, expanded bool, done bool)
	found() bool
	path() []Position
	cost() float64
	open() []Position
}

func newEngine(grid *Grid, start, goal Position, algorithm Algorithm, options Options) (engine, error) {
	if policy, ok := algorithm.Policy(); ok {
		return newWeightedEngine(grid, start, goal, policy, options.SkipFinalized), nil
	}
	switch algorithm {
	case BreadthFirst:
		return newBreadthFirstEngine(grid, start, goal), nil
	case DepthFirst:
		return newDepthFirstEngine(grid, start, goal), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(algorithm))
}

func runToCompletion(e engine) []Position {
	var expanded []Position
	for {
		position, wasExpanded, done := e.advance()
		if wasExpanded {
			expanded = append(expanded, position)
		}
		if done {
			return expanded
		}
	}
}

// Search runs algorithm from start to goal and records Metrics.
//
// Metrics.TotalCost is the goal's accumulated cost for A* and Dijkstra, always 0 for
// Greedy (its g is pinned at 0), and the path length in positions for BFS and DFS.
// An unreachable goal is not an error: the Result has a nil Path and valid Metrics.
func Search(
	grid *Grid,
	start Position,
	goal Position,
	algorithm Algorithm,
	options ...Option,
) (Result, error) {
	searchOptions := applyOptions(options)
	if err := validateEndpoints(grid, start, goal); err != nil {
		return Result{}, err
	}

	began := searchOptions.Clock()
	e, err := newEngine(grid, start, goal, algorithm, searchOptions)
	if err != nil {
		return Result{}, err
	}
	expanded := runToCompletion(e)
	path := e.path()
	elapsed := searchOptions.Clock().Sub(began)

	return Result{
		Algorithm: algorithm,
		Path:      path,
		Expanded:  expanded,
		Metrics:   newMetrics(elapsed, path, expanded, e.cost()),
	}, nil
}

// WeightedSearch runs the unified weighted engine with an explicit policy.
func WeightedSearch(grid *Grid, start, goal Position, policy Policy, options ...Option) (path, expanded []Position, err error) {
	searchOptions := applyOptions(options)
	if err := validateEndpoints(grid, start, goal); err != nil {
		return nil, nil, err
	}
	e := newWeightedEngine(grid, start, goal, policy, searchOptions.SkipFinalized)
	expanded = runToCompletion(e)
	return e.path(), expanded, nil
}

// BreadthFirstSearch finds the path with the fewest moves.
func BreadthFirstSearch(grid *Grid, start, goal Position) (path, expanded []Position, err error) {
	if err := validateEndpoints(grid, start, goal); err != nil {
		return nil, nil, err
	}
	e := newBreadthFirstEngine(grid, start, goal)
	expanded = runToCompletion(e)
	return e.path(), expanded, nil
}

// DepthFirstSearch finds some path; it is not shortest by any measure.
func DepthFirstSearch(grid *Grid, start, goal Position) (path, expanded []Position, err error) {
	if err := validateEndpoints(grid, start, goal); err != nil {
		return nil, nil, err
	}
	e := newDepthFirstEngine(grid, start, goal)
	expanded = runToCompletion(e)
	return e.path(), expanded, nil
}

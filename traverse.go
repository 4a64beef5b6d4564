package gridsearch

import "github.com/pdrpinto/gridsearch/internal"

// breadthFirstEngine marks a position visited when it is enqueued, so each
// position enters the queue at most once.
type breadthFirstEngine struct {
	grid     *Grid
	start    Position
	goal     Position
	queue    []Position
	head     int
	visited  map[Position]bool
	cameFrom map[Position]Position
	reached  bool
	done     bool
}

func newBreadthFirstEngine(grid *Grid, start, goal Position) *breadthFirstEngine {
	return &breadthFirstEngine{
		grid:     grid,
		start:    start,
		goal:     goal,
		queue:    []Position{start},
		visited:  map[Position]bool{start: true},
		cameFrom: make(map[Position]Position),
	}
}

func (e *breadthFirstEngine) advance() (Position, bool, bool) {
	if e.done || e.head == len(e.queue) {
		e.done = true
		return Position{}, false, true
	}
	current := e.queue[e.head]
	e.head++

	if current == e.goal {
		e.reached = true
		e.done = true
		return current, true, true
	}
	for _, move := range e.grid.Neighbors(current) {
		if e.visited[move.To] {
			continue
		}
		e.visited[move.To] = true
		e.cameFrom[move.To] = current
		e.queue = append(e.queue, move.To)
	}
	return current, true, false
}

func (e *breadthFirstEngine) found() bool { return e.reached }

func (e *breadthFirstEngine) path() []Position {
	if !e.reached {
		return nil
	}
	return internal.ReconstructPath(e.cameFrom, e.goal, e.start)
}

// cost is the path length in positions, not a walked distance.
func (e *breadthFirstEngine) cost() float64 { return float64(len(e.path())) }

func (e *breadthFirstEngine) open() []Position {
	return append([]Position(nil), e.queue[e.head:]...)
}

// depthFirstEngine marks a position visited when it is popped. A position may sit
// on the stack several times; pops after the first are skipped.
type depthFirstEngine struct {
	grid     *Grid
	start    Position
	goal     Position
	stack    []Position
	visited  map[Position]bool
	cameFrom map[Position]Position
	reached  bool
	done     bool
}

func newDepthFirstEngine(grid *Grid, start, goal Position) *depthFirstEngine {
	return &depthFirstEngine{
		grid:     grid,
		start:    start,
		goal:     goal,
		stack:    []Position{start},
		visited:  make(map[Position]bool),
		cameFrom: make(map[Position]Position),
	}
}

func (e *depthFirstEngine) advance() (Position, bool, bool) {
	if e.done || len(e.stack) == 0 {
		e.done = true
		return Position{}, false, true
	}
	current := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	if e.visited[current] {
		return current, false, false
	}
	e.visited[current] = true

	if current == e.goal {
		e.reached = true
		e.done = true
		return current, true, true
	}
	for _, move := range e.grid.Neighbors(current) {
		if e.visited[move.To] {
			continue
		}
		// the latest push wins; the parent is always already visited
		e.cameFrom[move.To] = current
		e.stack = append(e.stack, move.To)
	}
	return current, true, false
}

func (e *depthFirstEngine) found() bool { return e.reached }

func (e *depthFirstEngine) path() []Position {
	if !e.reached {
		return nil
	}
	return internal.ReconstructPath(e.cameFrom, e.goal, e.start)
}

func (e *depthFirstEngine) cost() float64 { return float64(len(e.path())) }

func (e *depthFirstEngine) open() []Position {
	positions := make([]Position, 0, len(e.stack))
	seen := make(map[Position]bool, len(e.stack))
	for i := len(e.stack) - 1; i >= 0; i-- {
		position := e.stack[i]
		if e.visited[position] || seen[position] {
			continue
		}
		seen[position] = true
		positions = append(positions, position)
	}
	return positions
}

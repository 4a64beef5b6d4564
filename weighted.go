package gridsearch

import (
	"container/heap"
	"math"

	"github.com/pdrpinto/gridsearch/internal"
)

// Policy selects the weighted strategy: A* uses both flags, Dijkstra only
// AccumulateCost, Greedy only UseHeuristic.
type Policy struct {
	AccumulateCost bool // sum true move costs into g; otherwise g stays 0
	UseHeuristic   bool // add the octile estimate to the priority; otherwise h is 0
}

// searchNode is an arena entry. parent is an arena index, -1 for the start node.
type searchNode struct {
	position Position
	gScore   float64
	hScore   float64
	parent   int
}

type weightedEngine struct {
	grid          *Grid
	goal          Position
	policy        Policy
	skipFinalized bool

	nodes     []searchNode
	openSet   PriorityQueue
	bestCost  []float64 // per cell, +Inf until first seen
	finalized []bool
	sequence  uint64

	goalNode int
	done     bool
}

func newWeightedEngine(grid *Grid, start, goal Position, policy Policy, skipFinalized bool) *weightedEngine {
	engine := &weightedEngine{
		grid:          grid,
		goal:          goal,
		policy:        policy,
		skipFinalized: skipFinalized,
		openSet:       make(PriorityQueue, 0),
		bestCost:      make([]float64, grid.rows*grid.cols),
		goalNode:      -1,
	}
	for i := range engine.bestCost {
		engine.bestCost[i] = math.Inf(1)
	}
	if skipFinalized {
		engine.finalized = make([]bool, len(engine.bestCost))
	}
	heap.Init(&engine.openSet)

	engine.bestCost[grid.index(start)] = 0
	engine.push(searchNode{position: start, gScore: 0, hScore: engine.heuristic(start), parent: -1})
	return engine
}

func (e *weightedEngine) heuristic(p Position) float64 {
	if !e.policy.UseHeuristic {
		return 0
	}
	return Octile(p, e.goal)
}

func (e *weightedEngine) push(node searchNode) {
	e.nodes = append(e.nodes, node)
	heap.Push(&e.openSet, PriorityQueueItem{
		Node:     len(e.nodes) - 1,
		FCost:    node.gScore + node.hScore,
		Sequence: e.sequence,
	})
	e.sequence++
}

func (e *weightedEngine) advance() (Position, bool, bool) {
	if e.done {
		return Position{}, false, true
	}
	if e.openSet.Len() == 0 {
		e.done = true
		return Position{}, false, true
	}

	currentItem := heap.Pop(&e.openSet).(PriorityQueueItem)
	current := e.nodes[currentItem.Node]

	if e.skipFinalized {
		cellIndex := e.grid.index(current.position)
		if e.finalized[cellIndex] {
			return current.position, false, false
		}
		e.finalized[cellIndex] = true
	}

	if current.position == e.goal {
		e.goalNode = currentItem.Node
		e.done = true
		return current.position, true, true
	}

	for _, move := range e.grid.Neighbors(current.position) {
		tentativeG := 0.0
		if e.policy.AccumulateCost {
			tentativeG = current.gScore + move.Cost
		}
		cellIndex := e.grid.index(move.To)
		if tentativeG < e.bestCost[cellIndex] {
			e.bestCost[cellIndex] = tentativeG
			e.push(searchNode{
				position: move.To,
				gScore:   tentativeG,
				hScore:   e.heuristic(move.To),
				parent:   currentItem.Node,
			})
		}
	}
	return current.position, true, false
}

func (e *weightedEngine) found() bool { return e.goalNode >= 0 }

// path walks arena parent indices back from the goal node.
func (e *weightedEngine) path() []Position {
	if e.goalNode < 0 {
		return nil
	}
	var path []Position
	for index := e.goalNode; index >= 0; index = e.nodes[index].parent {
		path = append(path, e.nodes[index].position)
	}
	internal.Reverse(path)
	return path
}

func (e *weightedEngine) cost() float64 {
	if e.goalNode < 0 {
		return 0
	}
	return e.nodes[e.goalNode].gScore
}

func (e *weightedEngine) open() []Position {
	positions := make([]Position, 0, len(e.openSet))
	seen := make(map[Position]bool, len(e.openSet))
	for _, item := range e.openSet {
		position := e.nodes[item.Node].position
		if e.skipFinalized && e.finalized[e.grid.index(position)] {
			continue
		}
		if !seen[position] {
			seen[position] = true
			positions = append(positions, position)
		}
	}
	return positions
}

// Package gridsearch provides grid pathfinding over a static 8-connected occupancy map.
//
// Five interchangeable strategies share one neighbor model and one result shape:
//
//   - A*, Dijkstra and Greedy best-first run on a single weighted engine driven by a Policy.
//   - Breadth-first and depth-first traversal ignore move costs.
//
// It exposes two main entry points:
//
//   - Search: run an algorithm to completion and get a Result with Metrics.
//   - Stepper: iterate a search one frontier pop at a time to drive UIs or debugging tools.
//
// Every call allocates its own frontier and cost table and never mutates the Grid, so
// independent searches may run concurrently over the same Grid.
package gridsearch

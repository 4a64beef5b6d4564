package gridsearch

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

// Cell is the occupancy of one grid square.
type Cell uint8

const (
	Free    Cell = 0
	Blocked Cell = 1
)

// Position is a (row, col) coordinate.
type Position struct {
	Row, Col int
}

func (p Position) String() string { return fmt.Sprintf("(%d, %d)", p.Row, p.Col) }

// Move is a reachable neighbor and the cost of stepping onto it.
type Move struct {
	To   Position
	Cost float64
}

const (
	OrthogonalCost = 1.0
	DiagonalCost   = math.Sqrt2
)

// neighborOffsets is the fixed enumeration order: up, down, left, right, then diagonals.
// DFS exploration order depends on it.
var neighborOffsets = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// Grid is an immutable rectangular occupancy map.
type Grid struct {
	rows, cols int
	cells      []Cell
}

// NewGrid builds a Grid from rows of 0/1 values. The input is copied.
func NewGrid(values [][]int) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, &GridError{Reason: "grid is empty"}
	}
	rows, cols := len(values), len(values[0])
	cells := make([]Cell, 0, rows*cols)
	for r, row := range values {
		if len(row) != cols {
			return nil, &GridError{Line: r + 1, Reason: fmt.Sprintf("row has %d cells, want %d", len(row), cols)}
		}
		for c, value := range row {
			if value != int(Free) && value != int(Blocked) {
				return nil, &GridError{Line: r + 1, Reason: fmt.Sprintf("column %d: value %d is not 0 or 1", c+1, value)}
			}
			cells = append(cells, Cell(value))
		}
	}
	return &Grid{rows: rows, cols: cols, cells: cells}, nil
}

// LoadGrid parses grid text: whitespace-separated 0/1 tokens, one row per line.
func LoadGrid(text string) (*Grid, error) {
	return ParseGrid(strings.NewReader(text))
}

// ParseGrid reads grid text from r. Blank lines are ignored.
func ParseGrid(r io.Reader) (*Grid, error) {
	var (
		values [][]int
		lines  []int
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		row := make([]int, len(fields))
		for i, token := range fields {
			switch token {
			case "0":
				row[i] = int(Free)
			case "1":
				row[i] = int(Blocked)
			default:
				return nil, &GridError{Line: lineNumber, Reason: fmt.Sprintf("token %q is not 0 or 1", token)}
			}
		}
		values = append(values, row)
		lines = append(lines, lineNumber)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read grid: %w", err)
	}

	grid, err := NewGrid(values)
	if err != nil {
		// report the source line rather than the row index
		if gridErr, ok := err.(*GridError); ok && gridErr.Line > 0 {
			gridErr.Line = lines[gridErr.Line-1]
		}
		return nil, err
	}
	return grid, nil
}

// ReadGridFile loads grid text from a file.
func ReadGridFile(path string) (*Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	grid, err := ParseGrid(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return grid, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// At returns the cell at p. p must be in bounds.
func (g *Grid) At(p Position) Cell { return g.cells[g.index(p)] }

// Free reports whether p is in bounds and not blocked.
func (g *Grid) Free(p Position) bool {
	return g.InBounds(p) && g.cells[g.index(p)] == Free
}

// FreeCount returns the number of free cells.
func (g *Grid) FreeCount() int {
	count := 0
	for _, cell := range g.cells {
		if cell == Free {
			count++
		}
	}
	return count
}

// Values returns a copy of the grid as rows of 0/1 values.
func (g *Grid) Values() [][]int {
	values := make([][]int, g.rows)
	for r := range values {
		values[r] = make([]int, g.cols)
		for c := range values[r] {
			values[r][c] = int(g.cells[r*g.cols+c])
		}
	}
	return values
}

// Neighbors returns moves to every free in-bounds cell among the 8 around p.
// Diagonal moves are allowed even when both flanking orthogonal cells are blocked.
func (g *Grid) Neighbors(p Position) []Move {
	moves := make([]Move, 0, len(neighborOffsets))
	for _, offset := range neighborOffsets {
		next := Position{Row: p.Row + offset[0], Col: p.Col + offset[1]}
		if !g.Free(next) {
			continue
		}
		cost := OrthogonalCost
		if offset[0] != 0 && offset[1] != 0 {
			cost = DiagonalCost
		}
		moves = append(moves, Move{To: next, Cost: cost})
	}
	return moves
}

// String renders the grid in the text format accepted by ParseGrid.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.rows * g.cols * 2)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte('0' + byte(g.cells[r*g.cols+c]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (g *Grid) index(p Position) int { return p.Row*g.cols + p.Col }

// Octile estimates the 8-directional grid distance between a and b.
func Octile(a, b Position) float64 {
	dr := math.Abs(float64(a.Row - b.Row))
	dc := math.Abs(float64(a.Col - b.Col))
	return math.Max(dr, dc) + (math.Sqrt2-1)*math.Min(dr, dc)
}

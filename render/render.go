// Package render draws grids with a search overlay: plain text, lipgloss
// colours for terminals, and an interactive tcell screen.
package render

import (
	"strings"

	"github.com/pdrpinto/gridsearch"
)

// Mark is what a single cell shows once the overlay is applied.
type Mark uint8

const (
	MarkFree Mark = iota
	MarkBlocked
	MarkExpanded
	MarkPath
	MarkStart
	MarkGoal
)

var markRunes = [...]rune{
	MarkFree:     '.',
	MarkBlocked:  '#',
	MarkExpanded: 'o',
	MarkPath:     '*',
	MarkStart:    'S',
	MarkGoal:     'G',
}

// Rune is the ASCII glyph of the mark.
func (m Mark) Rune() rune { return markRunes[m] }

// View is a grid plus the search results to overlay on it.
type View struct {
	Grid        *gridsearch.Grid
	Start, Goal gridsearch.Position
	Path        []gridsearch.Position
	Expanded    []gridsearch.Position
	Title       string
}

// NewView overlays a search result.
func NewView(grid *gridsearch.Grid, start, goal gridsearch.Position, result gridsearch.Result) View {
	return View{
		Grid:     grid,
		Start:    start,
		Goal:     goal,
		Path:     result.Path,
		Expanded: result.Expanded,
		Title:    string(result.Algorithm) + "  " + result.Metrics.String(),
	}
}

// Marks resolves every cell. Endpoints win over the path, which wins over
// expanded cells. Positions outside the grid are ignored.
func (v View) Marks() [][]Mark {
	marks := make([][]Mark, v.Grid.Rows())
	for r := range marks {
		marks[r] = make([]Mark, v.Grid.Cols())
		for c := range marks[r] {
			if v.Grid.At(gridsearch.Position{Row: r, Col: c}) == gridsearch.Blocked {
				marks[r][c] = MarkBlocked
			}
		}
	}
	set := func(p gridsearch.Position, mark Mark) {
		if v.Grid.InBounds(p) {
			marks[p.Row][p.Col] = mark
		}
	}
	for _, p := range v.Expanded {
		set(p, MarkExpanded)
	}
	for _, p := range v.Path {
		set(p, MarkPath)
	}
	set(v.Start, MarkStart)
	set(v.Goal, MarkGoal)
	return marks
}

// ASCII renders one character per cell, one line per row.
func ASCII(v View) string {
	var b strings.Builder
	for _, row := range v.Marks() {
		for _, mark := range row {
			b.WriteRune(mark.Rune())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

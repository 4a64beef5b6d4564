package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdrpinto/gridsearch"
)

// positionFlag parses "row,col". It stays unset until Set succeeds.
type positionFlag struct {
	position gridsearch.Position
	set      bool
}

func (f *positionFlag) String() string {
	if !f.set {
		return ""
	}
	return fmt.Sprintf("%d,%d", f.position.Row, f.position.Col)
}

func (f *positionFlag) Set(value string) error {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return fmt.Errorf("want row,col, got %q", value)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return fmt.Errorf("row: %w", err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return fmt.Errorf("col: %w", err)
	}
	f.position = gridsearch.Position{Row: row, Col: col}
	f.set = true
	return nil
}

func (f *positionFlag) Type() string { return "row,col" }

// apply overrides p when the flag was given.
func (f *positionFlag) apply(p *gridsearch.Position) {
	if f.set {
		*p = f.position
	}
}

// algorithmsFor expands "all" and validates a single algorithm name.
func algorithmsFor(name string) ([]gridsearch.Algorithm, error) {
	if strings.EqualFold(name, "all") {
		return gridsearch.Algorithms(), nil
	}
	algorithm, err := gridsearch.ParseAlgorithm(name)
	if err != nil {
		return nil, usageError("%v", err)
	}
	return []gridsearch.Algorithm{algorithm}, nil
}

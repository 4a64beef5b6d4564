package main

import (
	"fmt"
	"io"

	"github.com/pdrpinto/gridsearch"
	"github.com/pdrpinto/gridsearch/gridfile"
	"github.com/pdrpinto/gridsearch/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	runAlgorithm   string
	runStart       positionFlag
	runGoal        positionFlag
	runRender      string
	runPrintPath   bool
	runReexpansion bool
)

var runCmd = &cobra.Command{
	Use:   "run [map]",
	Short: "Search one map and print the metrics",
	Long: `Loads a grid file and its .json sidecar, runs the selected algorithm (or
all of them) and prints time, nodes expanded, path length and cost.

Example:
  gridsearch run maps/maze1.txt --algorithm all --render ascii`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	runCmd.Flags().StringVarP(&runAlgorithm, "algorithm", "a", "all", "a_star, dijkstra, greedy, bfs, dfs or all")
	runCmd.Flags().Var(&runStart, "start", "Override the start cell")
	runCmd.Flags().Var(&runGoal, "goal", "Override the goal cell")
	runCmd.Flags().StringVar(&runRender, "render", "none", "Overlay output: none, ascii or styled")
	runCmd.Flags().BoolVar(&runPrintPath, "path", false, "Print the path cells")
	runCmd.Flags().BoolVar(&runReexpansion, "reexpand", false, "Expand stale frontier entries again instead of skipping them")
}

// loadMap reads path and applies the endpoint overrides.
func loadMap(path string, start, goal *positionFlag) (*gridfile.Map, error) {
	m, err := gridfile.Load(path)
	if err != nil {
		return nil, err
	}
	start.apply(&m.Start)
	goal.apply(&m.Goal)
	logger.Debug("Map loaded",
		zap.String("map", m.Name),
		zap.Int("rows", m.Grid.Rows()),
		zap.Int("cols", m.Grid.Cols()),
		zap.Stringer("start", m.Start),
		zap.Stringer("goal", m.Goal),
		zap.Bool("sidecar", m.HasMeta))
	return m, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	algorithms, err := algorithmsFor(runAlgorithm)
	if err != nil {
		return err
	}
	var draw func(render.View) string
	switch runRender {
	case "none":
	case "ascii":
		draw = render.ASCII
	case "styled":
		draw = render.Styled
	default:
		return usageError("invalid render %q: must be none, ascii or styled", runRender)
	}

	m, err := loadMap(args[0], &runStart, &runGoal)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, algorithm := range algorithms {
		result, err := gridsearch.Search(m.Grid, m.Start, m.Goal, algorithm, gridsearch.WithSkipFinalized(!runReexpansion))
		if err != nil {
			return err
		}
		printResult(out, result)
		if draw != nil {
			view := render.NewView(m.Grid, m.Start, m.Goal, result)
			view.Title = ""
			fmt.Fprintln(out, draw(view))
		}
	}
	return nil
}

func printResult(out io.Writer, result gridsearch.Result) {
	fmt.Fprintf(out, "%-9s %s\n", result.Algorithm, result.Metrics)
	if runPrintPath && result.Found() {
		fmt.Fprintf(out, "%-9s path %v\n", "", result.Path)
	}
}

package main

import (
	"github.com/pdrpinto/gridsearch"
	"github.com/pdrpinto/gridsearch/render"
	"github.com/spf13/cobra"
)

var (
	showAlgorithm string
	showStart     positionFlag
	showGoal      positionFlag
)

var showCmd = &cobra.Command{
	Use:   "show [map]",
	Short: "Display a search overlay in the terminal",
	Long:  `Runs one algorithm and draws the map with expanded cells and the path. Press any key to exit.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showAlgorithm, "algorithm", "a", string(gridsearch.AStar), "a_star, dijkstra, greedy, bfs or dfs")
	showCmd.Flags().Var(&showStart, "start", "Override the start cell")
	showCmd.Flags().Var(&showGoal, "goal", "Override the goal cell")
}

func runShow(cmd *cobra.Command, args []string) error {
	algorithm, err := gridsearch.ParseAlgorithm(showAlgorithm)
	if err != nil {
		return usageError("%v", err)
	}
	m, err := loadMap(args[0], &showStart, &showGoal)
	if err != nil {
		return err
	}
	result, err := gridsearch.Search(m.Grid, m.Start, m.Goal, algorithm)
	if err != nil {
		return err
	}
	return render.Show(render.NewView(m.Grid, m.Start, m.Goal, result))
}

package main

import (
	"fmt"
	"time"

	"github.com/pdrpinto/gridsearch/gridfile"
	"github.com/pdrpinto/gridsearch/mapgen"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var genParams = mapgen.DefaultParams()

var genCmd = &cobra.Command{
	Use:   "gen [map]",
	Short: "Generate a random map with a sidecar",
	Long: `Lays clustered walls by random walks and writes the grid file plus its
.json sidecar with the random start and goal. A seed of 0 uses the clock.`,
	Args: cobra.ExactArgs(1),
	RunE: runGen,
}

func init() {
	genCmd.Flags().IntVar(&genParams.Rows, "rows", genParams.Rows, "Grid rows")
	genCmd.Flags().IntVar(&genParams.Cols, "cols", genParams.Cols, "Grid columns")
	genCmd.Flags().IntVar(&genParams.Clusters, "clusters", genParams.Clusters, "Random walks")
	genCmd.Flags().IntVar(&genParams.Steps, "steps", genParams.Steps, "Moves per walk")
	genCmd.Flags().Float64Var(&genParams.Density, "density", genParams.Density, "Chance a visited cell becomes a wall")
	genCmd.Flags().Int64Var(&genParams.Seed, "seed", genParams.Seed, "Random seed")
}

func runGen(cmd *cobra.Command, args []string) error {
	params := genParams
	if params.Density < 0 || params.Density > 1 {
		return usageError("density must be in [0, 1], got %v", params.Density)
	}
	if params.Seed == 0 {
		params.Seed = time.Now().UnixNano()
	}
	grid, start, goal, err := mapgen.Generate(params)
	if err != nil {
		return err
	}
	if err := gridfile.Save(args[0], grid, start, goal); err != nil {
		return err
	}
	logger.Info("Map generated",
		zap.String("file", args[0]),
		zap.String("sidecar", gridfile.MetaPath(args[0])),
		zap.Int64("seed", params.Seed),
		zap.Int("free", grid.FreeCount()))
	fmt.Fprintf(cmd.OutOrStdout(), "%s start=%v goal=%v\n", args[0], start, goal)
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pdrpinto/gridsearch/benchmark"
	"github.com/pdrpinto/gridsearch/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	benchConfig  string
	benchOutput  string
	benchWorkers int
	benchAppend  bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark every algorithm over a suite of maps",
	Long: `Reads an HCL suite, runs every listed algorithm on every map in parallel and
writes the results table as CSV.

Example suite:
  algorithms = all_algorithms
  map "maze1" {
    file = "maps/maze1.txt"
  }`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().StringVarP(&benchConfig, "config", "c", "suite.hcl", "Suite file")
	benchCmd.Flags().StringVarP(&benchOutput, "output", "o", "", "Results table, overriding the suite")
	benchCmd.Flags().IntVarP(&benchWorkers, "workers", "w", 0, "Concurrent searches, overriding the suite")
	benchCmd.Flags().BoolVar(&benchAppend, "append", false, "Append to the results table instead of replacing it")
}

func runBench(cmd *cobra.Command, args []string) error {
	suite, err := benchmark.LoadSuite(benchConfig)
	if err != nil {
		return err
	}
	if benchOutput != "" {
		suite.Output = benchOutput
	}
	if benchWorkers > 0 {
		suite.Workers = benchWorkers
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Benchmark starting",
		zap.String("suite", benchConfig),
		zap.Int("maps", len(suite.Maps)),
		zap.Int("algorithms", len(suite.Algorithms)),
		zap.Int("workers", suite.Workers))
	rows, err := benchmark.Run(ctx, suite, logger)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(suite.Output), 0o755); err != nil {
		return err
	}
	if err := benchmark.Save(suite, rows, benchAppend); err != nil {
		return fmt.Errorf("failed to write %s: %w", suite.Output, err)
	}
	logger.Info("Results saved", zap.String("output", suite.Output), zap.Int("rows", len(rows)))

	fmt.Fprint(cmd.OutOrStdout(), render.ResultsTable(rows))
	return nil
}

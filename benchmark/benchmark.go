package benchmark

import (
	"context"
	"errors"
	"io/fs"

	"github.com/pdrpinto/gridsearch/gridfile"
	"go.uber.org/zap"
)

// Run benchmarks every algorithm of the suite on every map and returns rows in
// suite order: maps as declared, algorithms as listed. Maps that are missing or
// malformed are logged and skipped, as are runs rejected by endpoint validation.
func Run(ctx context.Context, suite *Suite, logger *zap.Logger) ([]Row, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var jobs []Job
	for _, spec := range suite.Maps {
		loaded, err := spec.Load()
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Map file not found", zap.String("map", spec.Name), zap.String("file", spec.File))
			continue
		}
		if err != nil {
			logger.Error("Map rejected", zap.String("map", spec.Name), zap.Error(err))
			continue
		}
		logger.Info("Map loaded",
			zap.String("map", loaded.Name),
			zap.Int("rows", loaded.Grid.Rows()),
			zap.Int("cols", loaded.Grid.Cols()),
			zap.Stringer("start", loaded.Start),
			zap.Stringer("goal", loaded.Goal),
			zap.Bool("sidecar", loaded.HasMeta))
		jobs = append(jobs, jobsFor(loaded, suite)...)
	}

	runner := NewRunner(WithWorkers(suite.Workers), WithLogger(logger))
	outcomes, err := runner.Run(ctx, jobs)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			continue
		}
		rows = append(rows, NewRow(outcome.Job.Map.Name, outcome.Result))
	}
	logger.Info("Benchmark complete", zap.Int("jobs", len(jobs)), zap.Int("rows", len(rows)))
	return rows, nil
}

func jobsFor(m *gridfile.Map, suite *Suite) []Job {
	jobs := make([]Job, 0, len(suite.Algorithms))
	for _, algorithm := range suite.Algorithms {
		jobs = append(jobs, Job{Map: m, Algorithm: algorithm})
	}
	return jobs
}

// Save persists rows to the suite output, appending when appendRows is set.
func Save(suite *Suite, rows []Row, appendRows bool) error {
	if appendRows {
		return AppendTable(suite.Output, rows)
	}
	return WriteTableFile(suite.Output, rows)
}

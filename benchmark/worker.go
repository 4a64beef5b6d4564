package benchmark

import (
	"context"
	"runtime"

	"github.com/pdrpinto/gridsearch"
	"github.com/pdrpinto/gridsearch/gridfile"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Job represents one (map, algorithm) run handed to a worker.
type Job struct {
	Map       *gridfile.Map
	Algorithm gridsearch.Algorithm
}

// Outcome is the worker's report for a Job. Err holds validation failures such as
// an out-of-bounds endpoint; an unreachable goal is a successful Outcome.
type Outcome struct {
	Job    Job
	Result gridsearch.Result
	Err    error
}

// Runner fans jobs out to a bounded pool of workers.
type Runner struct {
	workers       int
	logger        *zap.Logger
	searchOptions []gridsearch.Option
}

// RunnerOption is a function that modifies a Runner.
type RunnerOption func(*Runner)

// WithWorkers specifies how many searches may run at once.
func WithWorkers(numberOfWorkers int) RunnerOption {
	return func(runner *Runner) {
		if numberOfWorkers > 0 {
			runner.workers = numberOfWorkers
		}
	}
}

// WithLogger sets the logger used for per-job reporting.
func WithLogger(logger *zap.Logger) RunnerOption {
	return func(runner *Runner) {
		if logger != nil {
			runner.logger = logger
		}
	}
}

// WithSearchOptions passes options through to every search.
func WithSearchOptions(options ...gridsearch.Option) RunnerOption {
	return func(runner *Runner) { runner.searchOptions = append(runner.searchOptions, options...) }
}

// NewRunner creates a Runner with one worker per CPU and a no-op logger.
func NewRunner(options ...RunnerOption) *Runner {
	runner := &Runner{
		workers: runtime.NumCPU(),
		logger:  zap.NewNop(),
	}
	for _, option := range options {
		option(runner)
	}
	return runner
}

// Run executes jobs concurrently and returns outcomes in job order. Only context
// cancellation aborts the run; per-job failures are reported in Outcome.Err.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Outcome, error) {
	outcomes := make([]Outcome, len(jobs))
	group, groupContext := errgroup.WithContext(ctx)
	group.SetLimit(r.workers)

	for i, job := range jobs {
		if groupContext.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupContext.Err(); err != nil {
				return err
			}
			result, err := gridsearch.Search(job.Map.Grid, job.Map.Start, job.Map.Goal, job.Algorithm, r.searchOptions...)
			outcomes[i] = Outcome{Job: job, Result: result, Err: err}
			if err != nil {
				r.logger.Error("Search rejected",
					zap.String("map", job.Map.Name),
					zap.String("algorithm", string(job.Algorithm)),
					zap.Error(err))
				return nil
			}
			r.logger.Debug("Search finished",
				zap.String("map", job.Map.Name),
				zap.String("algorithm", string(job.Algorithm)),
				zap.Int("expanded", result.Metrics.NodesExpanded),
				zap.Bool("found", result.Metrics.Found),
				zap.Duration("duration", result.Metrics.Duration))
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

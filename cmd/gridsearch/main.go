package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ExitError carries a specific process exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

var (
	// Global flags
	verbose   bool
	logFormat string

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "gridsearch",
	Short: "Pathfinding on occupancy grids",
	Long: `gridsearch runs A*, Dijkstra, greedy best-first, breadth-first and
depth-first search on 8-connected occupancy grids, benchmarks them over a
suite of maps, and renders the explored area.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var config zap.Config
		switch strings.ToLower(logFormat) {
		case "json":
			config = zap.NewProductionConfig()
		case "console":
			config = zap.NewProductionConfig()
			config.Encoding = "console"
			config.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		default:
			return usageError("invalid log-format %q: must be 'json' or 'console'", logFormat)
		}
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		built, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = built
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log encoding: json or console")

	rootCmd.AddCommand(runCmd, benchCmd, reportCmd, genCmd, showCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

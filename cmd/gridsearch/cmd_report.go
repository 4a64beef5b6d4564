package main

import (
	"fmt"

	"github.com/pdrpinto/gridsearch/benchmark"
	"github.com/pdrpinto/gridsearch/render"
	"github.com/spf13/cobra"
)

var (
	reportResults string
	reportMap     string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a results table, optionally normalized for one map",
	Long: `Prints the rows of a results table. With --map, also prints each algorithm's
nodes expanded, path length and cost divided by the largest value of that metric
on the map, the values plotted on a radar chart.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportResults, "results", "r", benchmark.DefaultOutput, "Results table")
	reportCmd.Flags().StringVarP(&reportMap, "map", "m", "", "Map to normalize")
}

func runReport(cmd *cobra.Command, args []string) error {
	rows, err := benchmark.ReadTableFile(reportResults)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, render.ResultsTable(rows))
	if reportMap == "" {
		return nil
	}

	normalized := benchmark.Normalize(rows, reportMap)
	if len(normalized) == 0 {
		return usageError("map %q not in %s (have %v)", reportMap, reportResults, benchmark.Maps(rows))
	}
	fmt.Fprintf(out, "\n%s normalized\n", reportMap)
	fmt.Fprintf(out, "%-9s %6s %6s %6s\n", "", "nodes", "length", "cost")
	for _, n := range normalized {
		fmt.Fprintf(out, "%-9s %6.2f %6.2f %6.2f\n", n.Algorithm, n.Nodes, n.Length, n.Cost)
	}
	return nil
}

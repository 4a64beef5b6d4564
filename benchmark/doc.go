// Package benchmark runs every configured algorithm over a suite of maps and
// persists one row per (map, algorithm) run into a delimited results table.
//
// Suites are HCL files:
//
//	output     = "results.csv"
//	workers    = 4
//	algorithms = all_algorithms
//
//	map "maze1" {
//	  file  = "maze1.txt"
//	  start = [0, 0]
//	  goal  = [4, 6]
//	}
//
// start and goal may be omitted, in which case the map's sidecar metadata (or the
// corner defaults) supply them.
package benchmark

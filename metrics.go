package gridsearch

import (
	"fmt"
	"time"
)

// Metrics summarizes one search call.
type Metrics struct {
	Duration      time.Duration
	NodesExpanded int
	PathLength    int     // positions in the path, 0 when no path
	TotalCost     float64 // see Search for the per-algorithm meaning
	Found         bool
}

func newMetrics(duration time.Duration, path, expanded []Position, cost float64) Metrics {
	metrics := Metrics{
		Duration:      duration,
		NodesExpanded: len(expanded),
	}
	if path != nil {
		metrics.Found = true
		metrics.PathLength = len(path)
		metrics.TotalCost = cost
	}
	return metrics
}

func (m Metrics) String() string {
	if !m.Found {
		return fmt.Sprintf("time=%.6fs expanded=%d no path", m.Duration.Seconds(), m.NodesExpanded)
	}
	return fmt.Sprintf("time=%.6fs expanded=%d length=%d cost=%.2f",
		m.Duration.Seconds(), m.NodesExpanded, m.PathLength, m.TotalCost)
}

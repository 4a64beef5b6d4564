package benchmark

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdrpinto/gridsearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRow(t *testing.T) {
	result := gridsearch.Result{
		Algorithm: gridsearch.Dijkstra,
		Path:      []gridsearch.Position{{Row: 0, Col: 0}, {Row: 1, Col: 1}},
		Metrics: gridsearch.Metrics{
			Duration:      1500 * time.Microsecond,
			NodesExpanded: 7,
			PathLength:    2,
			TotalCost:     1.41421356,
			Found:         true,
		},
	}
	row := NewRow("maze1.txt", result)
	assert.Equal(t,
		[]string{"maze1.txt", "dijkstra", "0.001500", "7", "2", "1.41", "Yes"},
		row.Record())
}

func TestRecord_NotFound(t *testing.T) {
	row := Row{Map: "blocked.txt", Algorithm: gridsearch.DepthFirst, NodesExpanded: 12}
	assert.Equal(t,
		[]string{"blocked.txt", "dfs", "0.000000", "12", "0", "-", "No"},
		row.Record())
}

func TestWriteReadTable(t *testing.T) {
	rows := []Row{
		{Map: "a", Algorithm: gridsearch.AStar, Seconds: 0.25, NodesExpanded: 10, PathLength: 5, TotalCost: 4.83, Found: true},
		{Map: "a", Algorithm: gridsearch.Greedy, Seconds: 0.125, NodesExpanded: 6, PathLength: 6, TotalCost: 0, Found: true},
		{Map: "b", Algorithm: gridsearch.BreadthFirst, NodesExpanded: 3},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, rows))
	assert.True(t, strings.HasPrefix(buf.String(), "Map,Algorithm,Time(s),Nodes Expanded,Path Length,Total Cost,Found\n"))

	read, err := ReadTable(&buf)
	require.NoError(t, err)
	assert.Equal(t, rows, read)
}

func TestReadTable_LegacyEmptyTime(t *testing.T) {
	src := "Map,Algorithm,Time(s),Nodes Expanded,Path Length,Total Cost,Found\n" +
		"map.txt,a_star,,14,10,10.00,Yes\n"
	rows, err := ReadTable(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].Seconds)
	assert.Equal(t, 10.0, rows[0].TotalCost)
}

func TestReadTable_Errors(t *testing.T) {
	tests := map[string]string{
		"wrong header":  "Map,Algo,Time(s),Nodes Expanded,Path Length,Total Cost,Found\n",
		"short record":  "Map,Algorithm,Time(s),Nodes Expanded,Path Length,Total Cost,Found\na,bfs,1\n",
		"bad algorithm": "Map,Algorithm,Time(s),Nodes Expanded,Path Length,Total Cost,Found\na,jps,0,1,1,1.00,Yes\n",
		"bad found":     "Map,Algorithm,Time(s),Nodes Expanded,Path Length,Total Cost,Found\na,bfs,0,1,1,1.00,Maybe\n",
		"bad nodes":     "Map,Algorithm,Time(s),Nodes Expanded,Path Length,Total Cost,Found\na,bfs,0,x,1,1.00,Yes\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadTable(strings.NewReader(src))
			assert.Error(t, err)
		})
	}

	rows, err := ReadTable(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAppendTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	first := []Row{{Map: "a", Algorithm: gridsearch.AStar, NodesExpanded: 1, PathLength: 1, Found: true}}
	second := []Row{{Map: "b", Algorithm: gridsearch.DepthFirst, NodesExpanded: 2}}

	require.NoError(t, AppendTable(path, first))
	require.NoError(t, AppendTable(path, second))

	rows, err := ReadTableFile(path)
	require.NoError(t, err)
	assert.Equal(t, append(first, second...), rows)
}

func TestAppendTable_EmptyFileGetsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	rows := []Row{{Map: "a", Algorithm: gridsearch.Greedy, NodesExpanded: 3, PathLength: 2, Found: true}}

	require.NoError(t, AppendTable(path, rows))
	require.NoError(t, AppendTable(path, rows))

	read, err := ReadTableFile(path)
	require.NoError(t, err)
	assert.Equal(t, append(rows, rows...), read)
}

func TestNormalize(t *testing.T) {
	rows := []Row{
		{Map: "a", Algorithm: gridsearch.AStar, NodesExpanded: 5, PathLength: 4, TotalCost: 2, Found: true},
		{Map: "a", Algorithm: gridsearch.DepthFirst, NodesExpanded: 10, PathLength: 8, TotalCost: 8, Found: true},
		{Map: "b", Algorithm: gridsearch.AStar, NodesExpanded: 100, PathLength: 50, TotalCost: 40, Found: true},
		{Map: "a", Algorithm: gridsearch.Greedy, NodesExpanded: 0},
	}

	normalized := Normalize(rows, "a")
	require.Len(t, normalized, 3)
	assert.Equal(t, Normalized{Algorithm: gridsearch.AStar, Nodes: 0.5, Length: 0.5, Cost: 0.25}, normalized[0])
	assert.Equal(t, Normalized{Algorithm: gridsearch.DepthFirst, Nodes: 1, Length: 1, Cost: 1}, normalized[1])
	assert.Equal(t, Normalized{Algorithm: gridsearch.Greedy}, normalized[2])

	assert.Empty(t, Normalize(rows, "missing"))
	assert.Equal(t, []string{"a", "b"}, Maps(rows))
}

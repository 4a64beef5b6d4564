package benchmark

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/pdrpinto/gridsearch"
)

// Header is the column layout of the results table.
var Header = []string{"Map", "Algorithm", "Time(s)", "Nodes Expanded", "Path Length", "Total Cost", "Found"}

// Row is one (map, algorithm) run.
type Row struct {
	Map           string
	Algorithm     gridsearch.Algorithm
	Seconds       float64
	NodesExpanded int
	PathLength    int
	TotalCost     float64 // 0 when Found is false
	Found         bool
}

// NewRow converts a search result into a table row.
func NewRow(mapName string, result gridsearch.Result) Row {
	return Row{
		Map:           mapName,
		Algorithm:     result.Algorithm,
		Seconds:       result.Metrics.Duration.Seconds(),
		NodesExpanded: result.Metrics.NodesExpanded,
		PathLength:    result.Metrics.PathLength,
		TotalCost:     result.Metrics.TotalCost,
		Found:         result.Metrics.Found,
	}
}

// Record formats the row in Header order. Cost is "-" for runs without a path.
func (r Row) Record() []string {
	cost, found := "-", "No"
	if r.Found {
		cost, found = strconv.FormatFloat(r.TotalCost, 'f', 2, 64), "Yes"
	}
	return []string{
		r.Map,
		string(r.Algorithm),
		strconv.FormatFloat(r.Seconds, 'f', 6, 64),
		strconv.Itoa(r.NodesExpanded),
		strconv.Itoa(r.PathLength),
		cost,
		found,
	}
}

// ParseRecord is the inverse of Record. An empty Time(s) cell reads as 0.
func ParseRecord(record []string) (Row, error) {
	if len(record) != len(Header) {
		return Row{}, fmt.Errorf("record has %d fields, want %d", len(record), len(Header))
	}
	row := Row{Map: record[0]}

	algorithm, err := gridsearch.ParseAlgorithm(record[1])
	if err != nil {
		return Row{}, err
	}
	row.Algorithm = algorithm

	if record[2] != "" {
		if row.Seconds, err = strconv.ParseFloat(record[2], 64); err != nil {
			return Row{}, fmt.Errorf("time column: %w", err)
		}
	}
	if row.NodesExpanded, err = strconv.Atoi(record[3]); err != nil {
		return Row{}, fmt.Errorf("nodes expanded column: %w", err)
	}
	if row.PathLength, err = strconv.Atoi(record[4]); err != nil {
		return Row{}, fmt.Errorf("path length column: %w", err)
	}

	switch record[6] {
	case "Yes":
		row.Found = true
	case "No":
	default:
		return Row{}, fmt.Errorf("found column: %q is not Yes or No", record[6])
	}
	if row.Found {
		if row.TotalCost, err = strconv.ParseFloat(record[5], 64); err != nil {
			return Row{}, fmt.Errorf("total cost column: %w", err)
		}
	}
	return row, nil
}

// WriteTable writes the header and rows.
func WriteTable(w io.Writer, rows []Row) error {
	return writeRecords(w, rows, true)
}

// AppendTable appends rows to the table at path, writing the header only when
// the file does not exist yet or is empty.
func AppendTable(path string, rows []Row) error {
	info, err := os.Stat(path)
	newFile := errors.Is(err, fs.ErrNotExist)
	if err != nil && !newFile {
		return err
	}
	if !newFile && info.Size() == 0 {
		newFile = true
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if err := writeRecords(file, rows, newFile); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteTableFile replaces the table at path.
func WriteTableFile(path string, rows []Row) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteTable(file, rows); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func writeRecords(w io.Writer, rows []Row, header bool) error {
	writer := csv.NewWriter(w)
	if header {
		if err := writer.Write(Header); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := writer.Write(row.Record()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadTable parses a results table. The first record must be Header.
func ReadTable(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(Header)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for i, name := range Header {
		if header[i] != name {
			return nil, fmt.Errorf("column %d is %q, want %q", i+1, header[i], name)
		}
	}

	var rows []Row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		row, err := ParseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
}

// ReadTableFile reads the table at path.
func ReadTableFile(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadTable(file)
}

// Normalized holds one algorithm's metrics divided by the largest value of the
// same metric among the rows of one map, so every value is in [0, 1].
type Normalized struct {
	Algorithm gridsearch.Algorithm
	Nodes     float64
	Length    float64
	Cost      float64
}

// Normalize scales the rows of mapName per metric. Rows keep their table order.
func Normalize(rows []Row, mapName string) []Normalized {
	var selected []Row
	var maxNodes, maxLength, maxCost float64
	for _, row := range rows {
		if row.Map != mapName {
			continue
		}
		selected = append(selected, row)
		maxNodes = max(maxNodes, float64(row.NodesExpanded))
		maxLength = max(maxLength, float64(row.PathLength))
		maxCost = max(maxCost, row.TotalCost)
	}

	scale := func(value, maximum float64) float64 {
		if maximum == 0 {
			return 0
		}
		return value / maximum
	}
	normalized := make([]Normalized, 0, len(selected))
	for _, row := range selected {
		normalized = append(normalized, Normalized{
			Algorithm: row.Algorithm,
			Nodes:     scale(float64(row.NodesExpanded), maxNodes),
			Length:    scale(float64(row.PathLength), maxLength),
			Cost:      scale(row.TotalCost, maxCost),
		})
	}
	return normalized
}

// Maps returns the distinct map names in first-seen order.
func Maps(rows []Row) []string {
	var names []string
	seen := make(map[string]bool)
	for _, row := range rows {
		if !seen[row.Map] {
			seen[row.Map] = true
			names = append(names, row.Map)
		}
	}
	return names
}

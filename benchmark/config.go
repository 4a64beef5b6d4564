package benchmark

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pdrpinto/gridsearch"
	"github.com/pdrpinto/gridsearch/gridfile"
	"github.com/zclconf/go-cty/cty"
)

// DefaultOutput is the results table written when a suite names none.
const DefaultOutput = "results.csv"

// Suite is a decoded benchmark configuration. Paths are resolved against the
// directory of the suite file.
type Suite struct {
	Output     string
	Workers    int
	Algorithms []gridsearch.Algorithm
	Maps       []MapSpec
}

// MapSpec names one grid file and optional endpoint overrides.
type MapSpec struct {
	Name  string
	File  string
	Start *gridsearch.Position
	Goal  *gridsearch.Position
}

// Load reads the grid and its sidecar, then applies the endpoint overrides.
func (m MapSpec) Load() (*gridfile.Map, error) {
	loaded, err := gridfile.Load(m.File)
	if err != nil {
		return nil, err
	}
	loaded.Name = m.Name
	if m.Start != nil {
		loaded.Start = *m.Start
	}
	if m.Goal != nil {
		loaded.Goal = *m.Goal
	}
	return loaded, nil
}

// suiteFile is the HCL shape of a suite.
type suiteFile struct {
	Output     string     `hcl:"output,optional"`
	Workers    int        `hcl:"workers,optional"`
	Algorithms []string   `hcl:"algorithms,optional"`
	Maps       []mapBlock `hcl:"map,block"`
}

type mapBlock struct {
	Name  string `hcl:"name,label"`
	File  string `hcl:"file"`
	Start []int  `hcl:"start,optional"`
	Goal  []int  `hcl:"goal,optional"`
}

// evalContext exposes all_algorithms and default_workers to suite expressions.
func evalContext() *hcl.EvalContext {
	names := make([]cty.Value, 0, len(gridsearch.Algorithms()))
	for _, algorithm := range gridsearch.Algorithms() {
		names = append(names, cty.StringVal(string(algorithm)))
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"all_algorithms":  cty.ListVal(names),
			"default_workers": cty.NumberIntVal(int64(runtime.NumCPU())),
		},
	}
}

// LoadSuite parses and validates the suite file at path.
func LoadSuite(path string) (*Suite, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse suite %s: %w", path, diags)
	}
	return decodeSuite(file, filepath.Dir(path))
}

// ParseSuite parses suite source. Relative paths resolve against baseDir.
func ParseSuite(src []byte, filename, baseDir string) (*Suite, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse suite %s: %w", filename, diags)
	}
	return decodeSuite(file, baseDir)
}

func decodeSuite(file *hcl.File, baseDir string) (*Suite, error) {
	var root suiteFile
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode suite: %w", diags)
	}

	suite := &Suite{
		Output:  resolve(baseDir, root.Output),
		Workers: root.Workers,
	}
	if root.Output == "" {
		suite.Output = resolve(baseDir, DefaultOutput)
	}
	if suite.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", suite.Workers)
	}
	if suite.Workers == 0 {
		suite.Workers = runtime.NumCPU()
	}

	if len(root.Algorithms) == 0 {
		suite.Algorithms = gridsearch.Algorithms()
	}
	for _, name := range root.Algorithms {
		algorithm, err := gridsearch.ParseAlgorithm(name)
		if err != nil {
			return nil, err
		}
		suite.Algorithms = append(suite.Algorithms, algorithm)
	}

	if len(root.Maps) == 0 {
		return nil, fmt.Errorf("suite declares no map blocks")
	}
	seen := make(map[string]bool, len(root.Maps))
	for _, block := range root.Maps {
		if seen[block.Name] {
			return nil, fmt.Errorf("map %q declared twice", block.Name)
		}
		seen[block.Name] = true

		spec := MapSpec{Name: block.Name, File: resolve(baseDir, block.File)}
		var err error
		if spec.Start, err = coordinate(block.Name, "start", block.Start); err != nil {
			return nil, err
		}
		if spec.Goal, err = coordinate(block.Name, "goal", block.Goal); err != nil {
			return nil, err
		}
		suite.Maps = append(suite.Maps, spec)
	}
	return suite, nil
}

func coordinate(mapName, field string, values []int) (*gridsearch.Position, error) {
	switch len(values) {
	case 0:
		return nil, nil
	case 2:
		return &gridsearch.Position{Row: values[0], Col: values[1]}, nil
	}
	return nil, fmt.Errorf("map %q: %s must be [row, col], got %d values", mapName, field, len(values))
}

func resolve(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

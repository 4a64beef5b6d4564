package web

import (
	"errors"
	"net/http"

	"github.com/pdrpinto/gridsearch"
	"github.com/pdrpinto/gridsearch/benchmark"
	"github.com/pdrpinto/gridsearch/gridfile"
	"github.com/pdrpinto/gridsearch/mapgen"
	"go.uber.org/zap"
)

var errNoSession = errors.New("unknown session")

type initResponse struct {
	ID        string               `json:"id"`
	Rows      int                  `json:"rows"`
	Cols      int                  `json:"cols"`
	Start     [2]int               `json:"start"`
	Goal      [2]int               `json:"goal"`
	Algorithm gridsearch.Algorithm `json:"algorithm"`
	Seed      int64                `json:"seed"`
}

type snapshot struct {
	Step    int      `json:"step"`
	Rows    int      `json:"rows"`
	Cols    int      `json:"cols"`
	Walls   [][2]int `json:"walls"`
	Open    [][2]int `json:"open,omitempty"`
	Closed  [][2]int `json:"closed,omitempty"`
	Current [2]int   `json:"current"`
	Start   [2]int   `json:"start"`
	Goal    [2]int   `json:"goal"`
	Done    bool     `json:"done"`
	Found   bool     `json:"found"`
	Path    [][2]int `json:"path,omitempty"`
	Cost    float64  `json:"cost"`
}

type runEntry struct {
	Algorithm     gridsearch.Algorithm `json:"algorithm"`
	Seconds       float64              `json:"seconds"`
	NodesExpanded int                  `json:"nodes_expanded"`
	PathLength    int                  `json:"path_length"`
	TotalCost     float64              `json:"total_cost"`
	Found         bool                 `json:"found"`
	Path          [][2]int             `json:"path,omitempty"`
}

func point(p gridsearch.Position) [2]int { return [2]int{p.Row, p.Col} }

func points(positions []gridsearch.Position) [][2]int {
	if positions == nil {
		return nil
	}
	out := make([][2]int, 0, len(positions))
	for _, p := range positions {
		out = append(out, point(p))
	}
	return out
}

func walls(grid *gridsearch.Grid) [][2]int {
	out := make([][2]int, 0)
	for r, row := range grid.Values() {
		for c, value := range row {
			if gridsearch.Cell(value) == gridsearch.Blocked {
				out = append(out, [2]int{r, c})
			}
		}
	}
	return out
}

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	algorithm := gridsearch.AStar
	if name := r.URL.Query().Get("algo"); name != "" {
		parsed, err := gridsearch.ParseAlgorithm(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		algorithm = parsed
	}

	params, err := s.params(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	grid, start, goal, err := mapgen.Generate(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	stepper, err := gridsearch.NewStepper(grid, start, goal, algorithm)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	id := s.store(&session{grid: grid, start: start, goal: goal, stepper: stepper, walls: walls(grid)})
	s.logger.Info("Session created",
		zap.String("id", id),
		zap.String("algorithm", string(algorithm)),
		zap.Int("rows", params.Rows),
		zap.Int("cols", params.Cols),
		zap.Int64("seed", params.Seed))

	writeJSON(w, http.StatusOK, initResponse{
		ID:        id,
		Rows:      grid.Rows(),
		Cols:      grid.Cols(),
		Start:     point(start),
		Goal:      point(goal),
		Algorithm: algorithm,
		Seed:      params.Seed,
	})
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, errNoSession)
		return
	}

	sess.mu.Lock()
	st := sess.stepper.Step()
	sess.mu.Unlock()

	writeJSON(w, http.StatusOK, snapshot{
		Step:    st.StepIndex,
		Rows:    sess.grid.Rows(),
		Cols:    sess.grid.Cols(),
		Walls:   sess.walls,
		Open:    points(st.Open),
		Closed:  points(st.Closed),
		Current: point(st.Current),
		Start:   point(sess.start),
		Goal:    point(sess.goal),
		Done:    st.Done,
		Found:   st.Found,
		Path:    points(st.Path),
		Cost:    st.Cost,
	})
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, errNoSession)
		return
	}

	m := &gridfile.Map{Name: "session", Grid: sess.grid, Start: sess.start, Goal: sess.goal}
	jobs := make([]benchmark.Job, 0, len(gridsearch.Algorithms()))
	for _, algorithm := range gridsearch.Algorithms() {
		jobs = append(jobs, benchmark.Job{Map: m, Algorithm: algorithm})
	}
	outcomes, err := benchmark.NewRunner(benchmark.WithLogger(s.logger)).Run(r.Context(), jobs)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	entries := make([]runEntry, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			writeError(w, http.StatusInternalServerError, outcome.Err)
			return
		}
		row := benchmark.NewRow(m.Name, outcome.Result)
		entries = append(entries, runEntry{
			Algorithm:     row.Algorithm,
			Seconds:       row.Seconds,
			NodesExpanded: row.NodesExpanded,
			PathLength:    row.PathLength,
			TotalCost:     row.TotalCost,
			Found:         row.Found,
			Path:          points(outcome.Result.Path),
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

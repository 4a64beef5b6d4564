package gridsearch

// StepSnapshot exposes the per-iteration state of the search.
type StepSnapshot struct {
	Current   Position
	Open      []Position // distinct positions still waiting in the frontier
	Closed    []Position // expanded positions in expansion order
	Done      bool
	Found     bool
	Path      []Position
	Cost      float64
	StepIndex int
}

// Stepper advances a search one expansion at a time.
type Stepper struct {
	algorithm Algorithm
	engine    engine
	closed    []Position
	current   Position // last expanded position
	stepCount int
	done      bool
}

// NewStepper validates the endpoints and prepares algorithm for stepping.
// Only SkipFinalized is taken from options.
func NewStepper(grid *Grid, start, goal Position, algorithm Algorithm, options ...Option) (*Stepper, error) {
	opts := applyOptions(options)
	if err := validateEndpoints(grid, start, goal); err != nil {
		return nil, err
	}
	e, err := newEngine(grid, start, goal, algorithm, opts)
	if err != nil {
		return nil, err
	}
	return &Stepper{algorithm: algorithm, engine: e}, nil
}

func (s *Stepper) Algorithm() Algorithm { return s.algorithm }

// Step advances the search by one node expansion and returns a snapshot.
// Skipped duplicate pops do not count as steps. Current is the last expanded
// position, so an exhausted search reports where it stopped. Once done, Step
// keeps returning the final snapshot.
func (s *Stepper) Step() StepSnapshot {
	for !s.done {
		position, expanded, done := s.engine.advance()
		s.done = done
		if expanded {
			s.current = position
			s.stepCount++
			s.closed = append(s.closed, position)
			break
		}
	}

	snapshot := StepSnapshot{
		Current:   s.current,
		Open:      s.engine.open(),
		Closed:    append([]Position(nil), s.closed...),
		Done:      s.done,
		StepIndex: s.stepCount,
	}
	if s.done && s.engine.found() {
		snapshot.Found = true
		snapshot.Path = s.engine.path()
		snapshot.Cost = s.engine.cost()
		snapshot.Current = snapshot.Path[len(snapshot.Path)-1]
	}
	return snapshot
}

// Run steps until the search is done and returns the final snapshot.
func (s *Stepper) Run() StepSnapshot {
	snapshot := s.Step()
	for !snapshot.Done {
		snapshot = s.Step()
	}
	return snapshot
}

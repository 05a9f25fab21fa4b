package engine

import (
	"errors"
	"fmt"
)

// ErrSimulationFailed is returned by Deploy once an earlier robot faulted
var ErrSimulationFailed = errors.New("simulation aborted by an earlier fault")

// Simulation runs robots one at a time over a single grid, threading one
// ScentRegistry through every deployment.
type Simulation struct {
	bounds  Bounds
	scents  *ScentRegistry
	results []Result
	failed  error
}

// NewSimulation creates a run with an empty scent registry
func NewSimulation(bounds Bounds) *Simulation {
	return &Simulation{
		bounds: bounds,
		scents: NewScentRegistry(),
	}
}

// Bounds returns the grid bounds of the run
func (s *Simulation) Bounds() Bounds {
	return s.bounds
}

// Scents returns the scents left so far
func (s *Simulation) Scents() []ScentEntry {
	return s.scents.Entries()
}

// Results returns the results of every robot deployed so far, in order
func (s *Simulation) Results() []Result {
	out := make([]Result, len(s.results))
	copy(out, s.results)
	return out
}

// Deploy simulates the next robot and assigns it the next ID, starting at 1.
// A fault aborts the whole run: this and every later call returns an error.
func (s *Simulation) Deploy(robot Robot) (Result, error) {
	if s.failed != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrSimulationFailed, s.failed)
	}

	id := len(s.results) + 1
	outcome, _, err := Simulate(robot, s.bounds, s.scents)
	if err != nil {
		var re *RobotError
		if errors.As(err, &re) {
			re.RobotID = id
		} else {
			err = &RobotError{RobotID: id, Err: err}
		}
		s.failed = err
		return Result{}, err
	}

	res := Result{ID: id, Robot: robot, Outcome: outcome}
	s.results = append(s.results, res)
	return res, nil
}

// Run simulates robots in order against bounds with a fresh registry. It
// returns either every result or an error, never a partial run.
func Run(bounds Bounds, robots []Robot) ([]Result, []ScentEntry, error) {
	sim := NewSimulation(bounds)
	for _, robot := range robots {
		if _, err := sim.Deploy(robot); err != nil {
			return nil, nil, err
		}
	}
	return sim.Results(), sim.Scents(), nil
}

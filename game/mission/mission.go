// Package mission reads the plain-text mission format into engine types and
// renders simulation results back into text.
package mission

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wricardo/martian-robots/game/engine"
)

var (
	ErrMalformedInput = errors.New("malformed mission input")
	ErrInvalidMission = errors.New("invalid mission")
)

// Mission is a validated grid plus the robots to deploy on it, in order
type Mission struct {
	Bounds engine.Bounds  `json:"bounds"`
	Robots []engine.Robot `json:"robots"`
}

// ValidationError describes the first rule a mission broke. Robot is the
// 1-based robot index, or 0 when the grid line itself is at fault.
type ValidationError struct {
	Robot  int
	Line   int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Robot > 0 {
		return fmt.Sprintf("robot %d (line %d): %s", e.Robot, e.Line, e.Reason)
	}
	return e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidMission
}

// Parse reads a mission. Headings and instructions are accepted in any case
// and normalized to upper case.
func Parse(input string) (*Mission, error) {
	doc, err := parser.ParseString("mission", strings.TrimSpace(input))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	m := &Mission{
		Bounds: engine.Bounds{MaxX: doc.MaxX, MaxY: doc.MaxY},
		Robots: make([]engine.Robot, 0, len(doc.Robots)),
	}
	if err := validateBounds(m.Bounds); err != nil {
		return nil, err
	}

	for i, line := range doc.Robots {
		robot, err := buildRobot(i+1, line, m.Bounds)
		if err != nil {
			return nil, err
		}
		m.Robots = append(m.Robots, robot)
	}
	return m, nil
}

// Run simulates the mission with a fresh scent registry
func (m *Mission) Run() ([]engine.Result, []engine.ScentEntry, error) {
	return engine.Run(m.Bounds, m.Robots)
}

func validateBounds(b engine.Bounds) error {
	switch {
	case b.MaxX < 0:
		return &ValidationError{Reason: "negative mapSize x"}
	case b.MaxX > engine.MaxCoordinate:
		return &ValidationError{Reason: fmt.Sprintf("max mapSize x is %d", engine.MaxCoordinate)}
	case b.MaxY < 0:
		return &ValidationError{Reason: "negative mapSize y"}
	case b.MaxY > engine.MaxCoordinate:
		return &ValidationError{Reason: fmt.Sprintf("max mapSize y is %d", engine.MaxCoordinate)}
	}
	return nil
}

func buildRobot(id int, line *robotLine, bounds engine.Bounds) (engine.Robot, error) {
	fail := func(format string, args ...any) (engine.Robot, error) {
		return engine.Robot{}, &ValidationError{Robot: id, Line: line.Pos.Line, Reason: fmt.Sprintf(format, args...)}
	}

	heading, err := engine.ParseOrientation(line.Heading)
	if err != nil {
		return fail("invalid orientation found")
	}
	if len(line.Instructions) > engine.MaxInstructionLen {
		return fail("max instruction length is %d", engine.MaxInstructionLen)
	}
	instructions, err := engine.ParseInstructions(line.Instructions)
	if err != nil {
		return fail("invalid instruction found")
	}

	switch {
	case line.X < 0:
		return fail("negative robot x")
	case line.X > engine.MaxCoordinate:
		return fail("max robot x is %d", engine.MaxCoordinate)
	case line.Y < 0:
		return fail("negative robot y")
	case line.Y > engine.MaxCoordinate:
		return fail("max robot y is %d", engine.MaxCoordinate)
	}

	start := engine.Position{X: line.X, Y: line.Y}
	if !bounds.Contains(start) {
		return fail("robot starts at %v outside the map (0,0)-(%d,%d)", start, bounds.MaxX, bounds.MaxY)
	}

	return engine.Robot{Start: start, Heading: heading, Instructions: instructions}, nil
}

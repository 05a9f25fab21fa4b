package engine

import "fmt"

// RobotState is the lifecycle of a robot during its own simulation turn
type RobotState int

const (
	Active RobotState = iota
	Lost
	Finished
)

func (s RobotState) String() string {
	switch s {
	case Active:
		return "active"
	case Lost:
		return "lost"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("RobotState(%d)", int(s))
}

// ForwardTarget returns the cell one step ahead of p when facing o
func ForwardTarget(p Position, o Orientation) (Position, error) {
	switch o {
	case North:
		return Position{X: p.X, Y: p.Y + 1}, nil
	case East:
		return Position{X: p.X + 1, Y: p.Y}, nil
	case South:
		return Position{X: p.X, Y: p.Y - 1}, nil
	case West:
		return Position{X: p.X - 1, Y: p.Y}, nil
	}
	return p, fmt.Errorf("%w %q", ErrInvalidOrientation, string(o))
}

// Contains reports whether p lies on the grid
func (b Bounds) Contains(p Position) bool {
	return p.X >= 0 && p.X <= b.MaxX && p.Y >= 0 && p.Y <= b.MaxY
}

// robotRun is the mutable state of one robot while it executes
type robotRun struct {
	pos     Position
	heading Orientation
	state   RobotState
	outcome Outcome
}

// step applies a single instruction. Forward moves consult the scent
// registry before the grid bounds, so a scented cell and heading never
// loses a second robot.
func (r *robotRun) step(ins Instruction, bounds Bounds, scents *ScentRegistry) error {
	switch ins {
	case TurnLeft:
		next, err := Left(r.heading)
		if err != nil {
			return err
		}
		r.heading = next

	case TurnRight:
		next, err := Right(r.heading)
		if err != nil {
			return err
		}
		r.heading = next

	case MoveForward:
		target, err := ForwardTarget(r.pos, r.heading)
		if err != nil {
			return err
		}
		switch {
		case scents.Contains(r.pos, r.heading):
			r.outcome.Ignored++
		case !bounds.Contains(target):
			scents.Record(r.pos, r.heading)
			r.state = Lost
		default:
			r.pos = target
		}

	default:
		return fmt.Errorf("%w %q", ErrInvalidInstruction, string(ins))
	}
	return nil
}

// Simulate drives robot through its instructions on a grid of the given
// bounds, reading and extending scents. Processing stops at the first loss.
// Any fault discards the partial state.
func Simulate(robot Robot, bounds Bounds, scents *ScentRegistry) (Outcome, RobotState, error) {
	if !robot.Heading.Valid() {
		return Outcome{}, Active, fmt.Errorf("%w %q", ErrInvalidOrientation, string(robot.Heading))
	}

	r := &robotRun{
		pos:     robot.Start,
		heading: robot.Heading,
		state:   Active,
	}

	for i, ins := range robot.Instructions {
		if err := r.step(ins, bounds, scents); err != nil {
			return Outcome{}, Active, &RobotError{Step: i + 1, Err: err}
		}
		r.outcome.Executed++
		if r.state == Lost {
			break
		}
	}
	if r.state == Active {
		r.state = Finished
	}

	r.outcome.Position = r.pos
	r.outcome.Orientation = r.heading
	r.outcome.Lost = r.state == Lost
	return r.outcome, r.state, nil
}

package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidInstruction = errors.New("invalid instruction")
)

// RobotError reports which robot of a run hit a fault
type RobotError struct {
	RobotID int
	Step    int // 1-based index of the offending instruction, 0 if none
	Err     error
}

func (e *RobotError) Error() string {
	if e.Step > 0 {
		return fmt.Sprintf("robot %d, instruction %d: %v", e.RobotID, e.Step, e.Err)
	}
	return fmt.Sprintf("robot %d: %v", e.RobotID, e.Err)
}

func (e *RobotError) Unwrap() error {
	return e.Err
}

package engine

import (
	"fmt"
	"strings"
)

// Left returns the heading 90° counter-clockwise from o
func Left(o Orientation) (Orientation, error) {
	switch o {
	case North:
		return West, nil
	case West:
		return South, nil
	case South:
		return East, nil
	case East:
		return North, nil
	}
	return "", fmt.Errorf("%w %q", ErrInvalidOrientation, string(o))
}

// Right returns the heading 90° clockwise from o
func Right(o Orientation) (Orientation, error) {
	switch o {
	case North:
		return East, nil
	case East:
		return South, nil
	case South:
		return West, nil
	case West:
		return North, nil
	}
	return "", fmt.Errorf("%w %q", ErrInvalidOrientation, string(o))
}

// Valid reports whether o is one of the four compass headings
func (o Orientation) Valid() bool {
	switch o {
	case North, East, South, West:
		return true
	}
	return false
}

// ParseOrientation accepts a heading letter in either case
func ParseOrientation(s string) (Orientation, error) {
	o := Orientation(strings.ToUpper(strings.TrimSpace(s)))
	if !o.Valid() {
		return "", fmt.Errorf("%w %q", ErrInvalidOrientation, s)
	}
	return o, nil
}

// Valid reports whether i is one of L, R or F
func (i Instruction) Valid() bool {
	switch i {
	case TurnLeft, TurnRight, MoveForward:
		return true
	}
	return false
}

// ParseInstructions splits a command string such as "FRRFLL" into
// instructions. Letters are accepted in either case.
func ParseInstructions(s string) ([]Instruction, error) {
	upper := strings.ToUpper(s)
	out := make([]Instruction, 0, len(upper))
	for i, r := range upper {
		ins := Instruction(string(r))
		if !ins.Valid() {
			return nil, fmt.Errorf("%w %q at offset %d", ErrInvalidInstruction, string(r), i)
		}
		out = append(out, ins)
	}
	return out, nil
}

// MustInstructions is ParseInstructions for literals known to be valid
func MustInstructions(s string) []Instruction {
	ins, err := ParseInstructions(s)
	if err != nil {
		panic(err)
	}
	return ins
}

// InstructionString joins instructions back into their compact form
func InstructionString(ins []Instruction) string {
	var b strings.Builder
	b.Grow(len(ins))
	for _, i := range ins {
		b.WriteString(string(i))
	}
	return b.String()
}

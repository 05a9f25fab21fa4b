package engine

import "fmt"

// Orientation is one of the four compass headings
type Orientation string

const (
	North Orientation = "N"
	East  Orientation = "E"
	South Orientation = "S"
	West  Orientation = "W"
)

// Instruction is a single robot command
type Instruction string

const (
	TurnLeft    Instruction = "L"
	TurnRight   Instruction = "R"
	MoveForward Instruction = "F"
)

// Mission limits
const (
	MaxCoordinate     = 50
	MaxInstructionLen = 99
)

// Orientations lists every valid heading in clockwise order starting at North
var Orientations = []Orientation{North, East, South, West}

// Position represents x,y coordinates
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Bounds is the upper-right corner of the grid; the lower-left is always (0,0)
type Bounds struct {
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// Robot describes a robot before it is simulated
type Robot struct {
	Start        Position      `json:"start"`
	Heading      Orientation   `json:"heading"`
	Instructions []Instruction `json:"instructions"`
}

// ScentEntry marks a cell and heading from which a robot was lost
type ScentEntry struct {
	Position    Position    `json:"position"`
	Orientation Orientation `json:"orientation"`
}

// Outcome is the frozen final state of a simulated robot
type Outcome struct {
	Position    Position    `json:"position"`
	Orientation Orientation `json:"orientation"`
	Lost        bool        `json:"lost"`

	// Executed counts the instructions consumed, including the fatal one.
	Executed int `json:"executed"`
	// Ignored counts forward moves skipped because of a scent.
	Ignored int `json:"ignored"`
}

// Result pairs an outcome with the robot's 1-based position in the run
type Result struct {
	ID      int     `json:"id"`
	Robot   Robot   `json:"robot"`
	Outcome Outcome `json:"outcome"`
}

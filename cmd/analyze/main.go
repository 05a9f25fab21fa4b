// Command analyze prints quick, human-readable facts about the mission files
// in a directory (default "missions"). It summarizes grid size and robot
// counts, how many robots are lost, how many scents are left and how many
// moves scents saved, and highlights missions whose outcome depends on the
// order robots are deployed in.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/martian-robots/game/engine"
	"github.com/wricardo/martian-robots/game/mission"
)

// Analysis holds the facts gathered about one mission.
type Analysis struct {
	Name         string
	Bounds       engine.Bounds
	Robots       int
	Instructions int
	Lost         int
	Scents       int
	Ignored      int
	Idle         []int // robots that never move forward
	OrderChanged []int // robots whose outcome differs when the order is reversed
}

func main() {
	dir := "missions"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		fmt.Printf("Error finding mission files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No mission files found in %s\n", dir)
		return
	}

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".txt")
		fmt.Printf("\n=== Analyzing %s ===\n", name)

		data, err := os.ReadFile(file)
		if err != nil {
			fmt.Printf("Error reading file: %v\n", err)
			continue
		}

		m, err := mission.Parse(string(data))
		if err != nil {
			fmt.Printf("Error parsing mission: %v\n", err)
			continue
		}

		a, err := analyzeMission(name, m)
		if err != nil {
			fmt.Printf("Error simulating mission: %v\n", err)
			continue
		}
		printAnalysis(os.Stdout, a)
	}
}

func analyzeMission(name string, m *mission.Mission) (*Analysis, error) {
	results, scents, err := engine.Run(m.Bounds, m.Robots)
	if err != nil {
		return nil, err
	}

	a := &Analysis{
		Name:   name,
		Bounds: m.Bounds,
		Robots: len(m.Robots),
		Scents: len(scents),
	}

	for i, robot := range m.Robots {
		a.Instructions += len(robot.Instructions)
		if !movesForward(robot) {
			a.Idle = append(a.Idle, i+1)
		}
		if results[i].Outcome.Lost {
			a.Lost++
		}
		a.Ignored += results[i].Outcome.Ignored
	}

	// Replay in reverse to find robots affected by scents left before them
	reversed := make([]engine.Robot, len(m.Robots))
	for i, robot := range m.Robots {
		reversed[len(m.Robots)-1-i] = robot
	}
	replay, _, err := engine.Run(m.Bounds, reversed)
	if err != nil {
		return nil, err
	}
	for i := range m.Robots {
		if mission.FormatOutcome(replay[len(m.Robots)-1-i].Outcome) != mission.FormatOutcome(results[i].Outcome) {
			a.OrderChanged = append(a.OrderChanged, i+1)
		}
	}

	return a, nil
}

func movesForward(robot engine.Robot) bool {
	for _, instruction := range robot.Instructions {
		if instruction == engine.MoveForward {
			return true
		}
	}
	return false
}

func printAnalysis(w io.Writer, a *Analysis) {
	fmt.Fprintf(w, "Grid: %d x %d cells\n", a.Bounds.MaxX+1, a.Bounds.MaxY+1)
	fmt.Fprintf(w, "Robots: %d (%d instructions)\n", a.Robots, a.Instructions)
	fmt.Fprintf(w, "Lost: %d\n", a.Lost)
	fmt.Fprintf(w, "Scents left: %d\n", a.Scents)
	fmt.Fprintf(w, "Moves ignored thanks to scents: %d\n", a.Ignored)

	if len(a.Idle) > 0 {
		fmt.Fprintf(w, "ℹ️  Robots that only turn: %v\n", a.Idle)
	}

	if len(a.OrderChanged) > 0 {
		fmt.Fprintf(w, "⚠️  WARNING: deployment order matters for robots %v\n", a.OrderChanged)
	} else {
		fmt.Fprintf(w, "✅ Every robot ends the same way in reverse order\n")
	}
}

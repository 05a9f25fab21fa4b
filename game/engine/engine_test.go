package engine

import (
	"errors"
	"reflect"
	"testing"
)

func sampleRobots() []Robot {
	return []Robot{
		{Start: Position{1, 1}, Heading: East, Instructions: MustInstructions("RFRFRFRF")},
		{Start: Position{3, 2}, Heading: North, Instructions: MustInstructions("FRRFLLFFRRFLL")},
		{Start: Position{0, 3}, Heading: West, Instructions: MustInstructions("LLFFFLFLFL")},
	}
}

func TestRun_SampleScenario(t *testing.T) {
	results, scents, err := Run(marsBounds, sampleRobots())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []struct {
		pos     Position
		heading Orientation
		lost    bool
	}{
		{Position{1, 1}, East, false},
		{Position{3, 3}, North, true},
		{Position{2, 3}, South, false},
	}

	if len(results) != len(expected) {
		t.Fatalf("expected %d results, got %d", len(expected), len(results))
	}
	for i, want := range expected {
		got := results[i]
		if got.ID != i+1 {
			t.Errorf("robot %d: expected ID %d, got %d", i, i+1, got.ID)
		}
		if got.Outcome.Position != want.pos || got.Outcome.Orientation != want.heading || got.Outcome.Lost != want.lost {
			t.Errorf("robot %d: expected %v %s lost=%v, got %v %s lost=%v",
				got.ID, want.pos, want.heading, want.lost,
				got.Outcome.Position, got.Outcome.Orientation, got.Outcome.Lost)
		}
	}

	if results[2].Outcome.Ignored != 1 {
		t.Errorf("expected robot 3 to ignore one move thanks to the scent, got %d", results[2].Outcome.Ignored)
	}

	wantScents := []ScentEntry{{Position: Position{3, 3}, Orientation: North}}
	if !reflect.DeepEqual(scents, wantScents) {
		t.Errorf("expected scents %v, got %v", wantScents, scents)
	}
}

func TestRun_ThirdRobotAloneIsLost(t *testing.T) {
	// Without the scent left by robot 2, robot 3 walks off the north edge.
	results, _, err := Run(marsBounds, sampleRobots()[2:])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := results[0].Outcome
	if !out.Lost || out.Position != (Position{3, 3}) || out.Orientation != North {
		t.Errorf("expected (3,3) N LOST, got %v %s lost=%v", out.Position, out.Orientation, out.Lost)
	}
}

func TestRun_Deterministic(t *testing.T) {
	first, firstScents, err := Run(marsBounds, sampleRobots())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, secondScents, err := Run(marsBounds, sampleRobots())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) || !reflect.DeepEqual(firstScents, secondScents) {
		t.Error("two runs over the same input produced different results")
	}
}

func TestRun_OrderSensitivity(t *testing.T) {
	edge := Robot{Start: Position{3, 3}, Heading: North, Instructions: MustInstructions("F")}
	climber := Robot{Start: Position{3, 2}, Heading: North, Instructions: MustInstructions("FF")}

	results, _, err := Run(marsBounds, []Robot{edge, climber})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !results[0].Outcome.Lost || results[1].Outcome.Lost {
		t.Errorf("edge first: expected edge lost and climber protected, got %v / %v",
			results[0].Outcome.Lost, results[1].Outcome.Lost)
	}

	swapped, _, err := Run(marsBounds, []Robot{climber, edge})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !swapped[0].Outcome.Lost || swapped[1].Outcome.Lost {
		t.Errorf("climber first: expected climber lost and edge protected, got %v / %v",
			swapped[0].Outcome.Lost, swapped[1].Outcome.Lost)
	}
}

func TestSimulation_RegistryOnlyGrows(t *testing.T) {
	sim := NewSimulation(Bounds{MaxX: 1, MaxY: 1})
	robots := []Robot{
		{Start: Position{0, 0}, Heading: South, Instructions: MustInstructions("F")},
		{Start: Position{0, 0}, Heading: West, Instructions: MustInstructions("F")},
		{Start: Position{0, 0}, Heading: South, Instructions: MustInstructions("FLF")},
		{Start: Position{1, 1}, Heading: North, Instructions: MustInstructions("F")},
	}

	prev := 0
	for _, r := range robots {
		if _, err := sim.Deploy(r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		n := len(sim.Scents())
		if n < prev {
			t.Fatalf("registry shrank from %d to %d", prev, n)
		}
		prev = n
	}

	// Robot 3 skips the scented south move, turns east and reaches (1,0).
	results := sim.Results()
	if results[2].Outcome.Lost || results[2].Outcome.Position != (Position{1, 0}) {
		t.Errorf("robot 3: expected (1,0) not lost, got %v lost=%v",
			results[2].Outcome.Position, results[2].Outcome.Lost)
	}
	if prev != 3 {
		t.Errorf("expected 3 scents, got %d", prev)
	}
}

func TestSimulation_FaultAbortsRun(t *testing.T) {
	sim := NewSimulation(marsBounds)
	if _, err := sim.Deploy(sampleRobots()[0]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := Robot{Start: Position{1, 1}, Heading: "X", Instructions: MustInstructions("F")}
	_, err := sim.Deploy(bad)
	var re *RobotError
	if !errors.As(err, &re) || re.RobotID != 2 {
		t.Fatalf("expected RobotError for robot 2, got %v", err)
	}
	if !errors.Is(err, ErrInvalidOrientation) {
		t.Errorf("expected ErrInvalidOrientation, got %v", err)
	}

	if _, err := sim.Deploy(sampleRobots()[1]); !errors.Is(err, ErrSimulationFailed) {
		t.Errorf("expected ErrSimulationFailed after a fault, got %v", err)
	}
}

func TestRun_NoPartialResults(t *testing.T) {
	robots := append(sampleRobots(), Robot{Start: Position{0, 0}, Heading: North, Instructions: []Instruction{"B"}})
	results, scents, err := Run(marsBounds, robots)
	if !errors.Is(err, ErrInvalidInstruction) {
		t.Fatalf("expected ErrInvalidInstruction, got %v", err)
	}
	if results != nil || scents != nil {
		t.Error("expected no results on a failed run")
	}
}

func TestRun_NoRobots(t *testing.T) {
	results, scents, err := Run(marsBounds, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 || len(scents) != 0 {
		t.Errorf("expected empty run, got %d results and %d scents", len(results), len(scents))
	}
}

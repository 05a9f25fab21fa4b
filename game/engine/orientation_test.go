package engine

import (
	"errors"
	"testing"
)

func TestLeft(t *testing.T) {
	tests := []struct {
		input    Orientation
		expected Orientation
	}{
		{North, West},
		{East, North},
		{South, East},
		{West, South},
	}

	for _, test := range tests {
		t.Run(string(test.input), func(t *testing.T) {
			got, err := Left(test.input)
			if err != nil {
				t.Fatalf("Left(%s): unexpected error %v", test.input, err)
			}
			if got != test.expected {
				t.Errorf("Left(%s): expected %s, got %s", test.input, test.expected, got)
			}
		})
	}
}

func TestRight(t *testing.T) {
	tests := []struct {
		input    Orientation
		expected Orientation
	}{
		{North, East},
		{East, South},
		{South, West},
		{West, North},
	}

	for _, test := range tests {
		t.Run(string(test.input), func(t *testing.T) {
			got, err := Right(test.input)
			if err != nil {
				t.Fatalf("Right(%s): unexpected error %v", test.input, err)
			}
			if got != test.expected {
				t.Errorf("Right(%s): expected %s, got %s", test.input, test.expected, got)
			}
		})
	}
}

func TestTurns_InvalidOrientation(t *testing.T) {
	if _, err := Left("Z"); !errors.Is(err, ErrInvalidOrientation) {
		t.Errorf("Left(Z): expected ErrInvalidOrientation, got %v", err)
	}
	if _, err := Right(""); !errors.Is(err, ErrInvalidOrientation) {
		t.Errorf("Right(\"\"): expected ErrInvalidOrientation, got %v", err)
	}
}

func TestTurns_Cycle(t *testing.T) {
	for _, o := range Orientations {
		r, _ := Right(o)
		back, _ := Left(r)
		if back != o {
			t.Errorf("Left(Right(%s)) = %s, expected %s", o, back, o)
		}

		cur := o
		for i := 0; i < 4; i++ {
			cur, _ = Left(cur)
		}
		if cur != o {
			t.Errorf("four lefts from %s ended at %s", o, cur)
		}

		l1, _ := Left(o)
		l2, _ := Left(l1)
		r1, _ := Right(o)
		r2, _ := Right(r1)
		if l2 != r2 {
			t.Errorf("two lefts (%s) and two rights (%s) from %s differ", l2, r2, o)
		}
	}
}

func TestParseOrientation(t *testing.T) {
	for _, in := range []string{"N", "e", " s ", "w"} {
		if _, err := ParseOrientation(in); err != nil {
			t.Errorf("ParseOrientation(%q): unexpected error %v", in, err)
		}
	}
	if _, err := ParseOrientation("Z"); !errors.Is(err, ErrInvalidOrientation) {
		t.Errorf("ParseOrientation(Z): expected ErrInvalidOrientation, got %v", err)
	}
}

func TestParseInstructions(t *testing.T) {
	ins, err := ParseInstructions("flrF")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := InstructionString(ins); got != "FLRF" {
		t.Errorf("expected FLRF, got %s", got)
	}

	empty, err := ParseInstructions("")
	if err != nil || len(empty) != 0 {
		t.Errorf("expected no instructions and no error, got %v, %v", empty, err)
	}

	if _, err := ParseInstructions("FFA"); !errors.Is(err, ErrInvalidInstruction) {
		t.Errorf("expected ErrInvalidInstruction, got %v", err)
	}
}

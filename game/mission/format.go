package mission

import (
	"fmt"
	"strings"

	"github.com/wricardo/martian-robots/game/engine"
)

// FormatOutcome renders "X Y O", suffixed with " LOST" for lost robots
func FormatOutcome(o engine.Outcome) string {
	line := fmt.Sprintf("%d %d %s", o.Position.X, o.Position.Y, o.Orientation)
	if o.Lost {
		line += " LOST"
	}
	return line
}

// FormatReport renders one outcome line per result, in run order
func FormatReport(results []engine.Result) string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, FormatOutcome(r.Outcome))
	}
	return strings.Join(lines, "\n")
}

// Encode writes m back in the canonical mission text format
func Encode(m *Mission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %d", m.Bounds.MaxX, m.Bounds.MaxY)
	for _, r := range m.Robots {
		fmt.Fprintf(&b, "\n%d %d %s\n%s", r.Start.X, r.Start.Y, r.Heading, engine.InstructionString(r.Instructions))
	}
	return b.String()
}

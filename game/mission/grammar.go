package mission

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var missionLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "Word", Pattern: `[A-Za-z]+`},
	{Name: "EOL", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

// document is the raw shape of a mission file:
//
//	5 3
//	1 1 E
//	RFRFRFRF
type document struct {
	MaxX   int          `parser:"@Int"`
	MaxY   int          `parser:"@Int"`
	Robots []*robotLine `parser:"( EOL @@ )*"`
}

type robotLine struct {
	Pos lexer.Position

	X            int    `parser:"@Int"`
	Y            int    `parser:"@Int"`
	Heading      string `parser:"@Word"`
	Instructions string `parser:"( EOL @Word? )?"`
}

var parser = participle.MustBuild[document](
	participle.Lexer(missionLexer),
	participle.Elide("Whitespace"),
)

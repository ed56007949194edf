package chord

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	cerr "github.com/FocuswithJustin/Chordsmith/core/errors"
)

// letterPitch maps root letters to pitch classes. There is no H; the note
// between A and B is always spelled Bb or A#.
var letterPitch = map[string]int{
	"C": 0, "D": 2, "E": 4, "F": 5, "G": 7, "A": 9, "B": 11,
}

// chordLexer tokenizes one chord token. Rule order is load-bearing: "maj7"
// must lex before the minor marker "m" (so "Dmaj7" stays major), and the
// modifier alternation keeps the grammar's fixed trial order, which Go's
// leftmost-first regexp alternation preserves.
var chordLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Note", Pattern: `[A-G]`},
	{Name: "Accidental", Pattern: `[#b]`},
	{Name: "Maj7", Pattern: `maj7`},
	{Name: "Minor", Pattern: `m`},
	{Name: "Mod", Pattern: `-|5|6|7|9|11|13|aug|sus4|sus2|dim|add9`},
	{Name: "Slash", Pattern: `/`},
})

// chordGrammar is the participle grammar for chord tokens.
// Examples: "C", "D7", "Gm", "Dmaj7", "G#sus4/B", "Fmaj7sus4"
//
//nolint:govet // participle grammar tags are not standard struct tags
type chordGrammar struct {
	Root  noteGrammar   `parser:"@@"`
	Minor bool          `parser:"@Minor?"`
	Tail  []tailGrammar `parser:"@@*"`
}

// noteGrammar is a root or bass note: a letter with an optional accidental.
//
//nolint:govet // participle grammar tags are not standard struct tags
type noteGrammar struct {
	Letter     string `parser:"@Note"`
	Accidental string `parser:"@Accidental?"`
}

// tailGrammar is one trailing element: a modifier or a slash bass. Elements
// repeat freely after the quality marker, so modifiers written after a
// slash bass still parse; rendering always puts modifiers before the bass.
//
//nolint:govet // participle grammar tags are not standard struct tags
type tailGrammar struct {
	Mod  string       `parser:"@Mod | @Maj7"`
	Bass *noteGrammar `parser:"| \"/\" @@"`
}

// chordParser is the participle parser for chord tokens.
var chordParser = participle.MustBuild[chordGrammar](
	participle.Lexer(chordLexer),
)

// Parse parses a chord token such as "G#sus4/B". The token must be fully
// consumed; any leftover text is a parse failure. The returned error wraps
// errors.ErrInvalidChord and carries the offending token plus, when the
// failure position is known, the unconsumed remainder.
func Parse(token string) (Chord, error) {
	if token == "" {
		return Chord{}, cerr.NewInvalidChord(token, "", fmt.Errorf("empty token"))
	}

	parsed, err := chordParser.ParseString("", token)
	if err != nil {
		return Chord{}, invalidChord(token, err)
	}

	root, spelling := resolveNote(parsed.Root)
	c := Chord{
		Root:     root,
		Spelling: spelling,
	}
	if parsed.Minor {
		c.Quality = Minor
	}

	for _, t := range parsed.Tail {
		switch {
		case t.Mod != "":
			c.Modifiers = append(c.Modifiers, t.Mod)
		case t.Bass != nil:
			// Last slash wins. The bass accidental shifts the pitch class
			// but never changes the chord's spelling hint.
			bass, _ := resolveNote(*t.Bass)
			c.Bass = &bass
		}
	}

	return c, nil
}

// MustParse parses a chord token and panics on failure. Intended for tests
// and compile-time-constant chord literals.
func MustParse(token string) Chord {
	c, err := Parse(token)
	if err != nil {
		panic(err)
	}
	return c
}

// resolveNote maps a parsed letter plus optional accidental to a pitch
// class and the spelling the accidental implies.
func resolveNote(n noteGrammar) (PitchClass, Spelling) {
	pc := letterPitch[n.Letter]
	switch n.Accidental {
	case "#":
		return NewPitchClass(pc + 1), Sharp
	case "b":
		return NewPitchClass(pc - 1), Flat
	}
	return NewPitchClass(pc), DefaultSpelling
}

// invalidChord converts a parse failure into an InvalidChordError,
// recovering the unconsumed remainder from the failure offset when the
// lexer or parser reports one.
func invalidChord(token string, err error) error {
	var perr participle.Error
	remainder := ""
	if errors.As(err, &perr) {
		if off := perr.Position().Offset; off > 0 && off < len(token) {
			remainder = token[off:]
		}
	}
	return cerr.NewInvalidChord(token, remainder, err)
}

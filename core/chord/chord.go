// Package chord models a single chord token: a root pitch class, scale
// quality, an ordered modifier list, an optional slash-bass pitch class, and
// a spelling preference for rendering accidentals.
//
// Chords have value semantics: every transform returns a copy that shares no
// mutable state with the receiver, and explicit in-place variants are
// provided for callers that rely on reference semantics.
package chord

import "strings"

// PitchClass is one of the 12 chromatic steps, stored normalized to 0-11.
// No note name is stored; names are derived at render time from the
// spelling preference.
type PitchClass int

// NewPitchClass normalizes v to the range 0-11. Negative values wrap.
func NewPitchClass(v int) PitchClass {
	return PitchClass(((v % 12) + 12) % 12)
}

// Add transposes the pitch class by n semitones, wrapping mod 12.
func (p PitchClass) Add(n int) PitchClass {
	return NewPitchClass(int(p) + n)
}

// noteNames maps pitch classes to natural note names. The accidental pitch
// classes (1, 3, 6, 8, 10) have no natural name and are spelled from a
// neighboring natural at render time.
var noteNames = [12]string{"C", "", "D", "", "E", "F", "", "G", "", "A", "", "B"}

// Name renders the pitch class using the given spelling preference.
// Natural pitch classes render verbatim. Accidental pitch classes spell
// sharp from the natural below ("G#") or flat from the natural above
// ("Ab"); the default preference is flat.
func (p PitchClass) Name(s Spelling) string {
	if name := noteNames[p]; name != "" {
		return name
	}
	if s == Sharp {
		return noteNames[p-1] + "#"
	}
	return noteNames[(p+1)%12] + "b"
}

// Quality is the scale quality of a chord.
type Quality int

// Scale quality constants.
const (
	// Major is the default quality.
	Major Quality = iota
	// Minor is marked by a lone "m" after the root (never the "m" of "maj7").
	Minor
)

// Spelling is a preference for rendering accidental pitch classes.
// The zero value defers to the default rule, which spells flat.
type Spelling int

// Spelling constants.
const (
	// DefaultSpelling means no explicit preference was given; accidentals
	// render flat.
	DefaultSpelling Spelling = iota
	// Sharp renders accidentals as the natural below plus "#".
	Sharp
	// Flat renders accidentals as the natural above plus "b".
	Flat
)

// Chord is a single named chord. Modifiers keep their parsed order, which is
// part of the chord's rendered identity. A nil Bass means no slash bass;
// a Bass pointing at pitch class 0 is a slash chord over C.
type Chord struct {
	Root      PitchClass
	Quality   Quality
	Modifiers []string
	Bass      *PitchClass
	Spelling  Spelling
}

// Transpose returns a copy of the chord shifted by n semitones. Quality,
// modifiers, and spelling are unchanged; the bass, when present, shifts with
// the root. Transposing by any multiple of 12 is the identity.
func (c Chord) Transpose(n int) Chord {
	out := c
	out.Root = c.Root.Add(n)
	out.Modifiers = append([]string(nil), c.Modifiers...)
	if c.Bass != nil {
		b := c.Bass.Add(n)
		out.Bass = &b
	}
	return out
}

// TransposeInPlace shifts the chord by n semitones, mutating the receiver.
func (c *Chord) TransposeInPlace(n int) {
	c.Root = c.Root.Add(n)
	if c.Bass != nil {
		*c.Bass = c.Bass.Add(n)
	}
}

// WithSpelling returns a copy of the chord that renders accidentals with
// spelling s. Root, quality, modifiers, and bass are unchanged.
func (c Chord) WithSpelling(s Spelling) Chord {
	out := c
	out.Modifiers = append([]string(nil), c.Modifiers...)
	if c.Bass != nil {
		b := *c.Bass
		out.Bass = &b
	}
	out.Spelling = s
	return out
}

// SetSpelling sets the rendering preference, mutating the receiver.
func (c *Chord) SetSpelling(s Spelling) {
	c.Spelling = s
}

// PreferSharp returns a copy that spells accidentals with sharps.
func (c Chord) PreferSharp() Chord {
	return c.WithSpelling(Sharp)
}

// PreferFlat returns a copy that spells accidentals with flats.
func (c Chord) PreferFlat() Chord {
	return c.WithSpelling(Flat)
}

// String renders the chord in canonical text form: root name, "m" for
// minor, the modifiers in stored order, then "/" and the bass name if a
// bass is present. The bass is spelled with the same preference as the
// root.
func (c Chord) String() string {
	var sb strings.Builder
	sb.WriteString(c.Root.Name(c.Spelling))
	if c.Quality == Minor {
		sb.WriteString("m")
	}
	for _, mod := range c.Modifiers {
		sb.WriteString(mod)
	}
	if c.Bass != nil {
		sb.WriteString("/")
		sb.WriteString(c.Bass.Name(c.Spelling))
	}
	return sb.String()
}

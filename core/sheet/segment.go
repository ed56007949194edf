// Package sheet models chord-sheet documents: songs made of labeled
// segments, each an ordered list of lyric lines with chords positioned by
// character column.
//
// The text format mirrors how chord sheets are written by hand: blocks
// separated by blank lines, an optional [label] header per block, then
// alternating chord-annotation and lyric lines. Chord columns are zero-based
// rune offsets into the annotation line, so alignment survives non-ASCII
// lyrics.
package sheet

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/FocuswithJustin/Chordsmith/core/chord"
	cerr "github.com/FocuswithJustin/Chordsmith/core/errors"
)

// Line is one lyric line with its chords keyed by zero-based rune column.
// Columns are unique per line but the map holds no ordering; render sites
// must sort.
type Line struct {
	Text   string
	Chords map[int]chord.Chord
}

// Segment is a part of a song, e.g. a verse or a chorus. An empty label
// means the segment is unlabeled.
type Segment struct {
	Label string
	Lines []Line
}

// chordToken matches one chord token: a maximal run of non-space characters
// in a chord-annotation line.
var chordToken = regexp.MustCompile(`\S+`)

// ParseSegment parses one blank-line-delimited block. If the block's first
// line is a [label] header it names the segment and is consumed; otherwise
// fallback (the previous segment's resolved label) applies. The remaining
// lines are consumed in consecutive (chord-line, lyric-line) pairs: a pair
// of two empty lines is skipped, and a trailing line with no pairing
// partner is dropped. Dropping the leftover is intentional, not an error.
//
// A header that opens with "[" but never closes fails with
// ErrMalformedSegment. Any chord token that does not match the chord
// grammar aborts the parse with the chord's error.
func ParseSegment(block, fallback string) (*Segment, error) {
	lines := strings.Split(block, "\n")
	label := fallback

	if len(lines) > 0 && strings.HasPrefix(lines[0], "[") {
		header := lines[0]
		if len(header) < 2 || !strings.HasSuffix(header, "]") {
			return nil, cerr.Wrapf(cerr.ErrMalformedSegment, "unterminated label header %q", header)
		}
		label = header[1 : len(header)-1]
		lines = lines[1:]
	}

	seg := &Segment{Label: label}
	for i := 0; i+1 < len(lines); i += 2 {
		cline, tline := lines[i], lines[i+1]
		if cline == "" && tline == "" {
			continue
		}

		chords := make(map[int]chord.Chord)
		for _, span := range chordToken.FindAllStringIndex(cline, -1) {
			token := cline[span[0]:span[1]]
			col := utf8.RuneCountInString(cline[:span[0]])
			c, err := chord.Parse(token)
			if err != nil {
				return nil, err
			}
			chords[col] = c
		}
		seg.Lines = append(seg.Lines, Line{Text: tline, Chords: chords})
	}

	return seg, nil
}

// columns returns the line's chord columns in ascending order.
func (l Line) columns() []int {
	cols := make([]int, 0, len(l.Chords))
	for col := range l.Chords {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	return cols
}

// RenderText renders the segment in column-aligned monospace form: the
// label header if present, then one chord-annotation line and one verbatim
// lyric line per entry. Each chord is written at its stored column, with
// the gap measured from the end of the previous chord so widths are never
// negative even when a wide chord runs into the next column.
func (s *Segment) RenderText() string {
	var sb strings.Builder
	if s.Label != "" {
		sb.WriteString("[")
		sb.WriteString(s.Label)
		sb.WriteString("]\n")
	}
	for _, line := range s.Lines {
		lo := 0
		for _, col := range line.columns() {
			text := line.Chords[col].String()
			spaces := col - lo
			if spaces < 0 {
				spaces = 0
			}
			sb.WriteString(strings.Repeat(" ", spaces))
			sb.WriteString(text)
			lo += spaces + utf8.RuneCountInString(text)
		}
		sb.WriteString("\n")
		sb.WriteString(line.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Transpose returns a copy of the segment with every chord shifted by n
// semitones. Columns, lyric text, and label are preserved.
func (s *Segment) Transpose(n int) *Segment {
	return s.mapChords(func(c chord.Chord) chord.Chord { return c.Transpose(n) })
}

// TransposeInPlace shifts every chord by n semitones, mutating the segment.
func (s *Segment) TransposeInPlace(n int) {
	s.applyChords(func(c chord.Chord) chord.Chord { return c.Transpose(n) })
}

// WithSpelling returns a copy with every chord's accidental spelling set to
// sp.
func (s *Segment) WithSpelling(sp chord.Spelling) *Segment {
	return s.mapChords(func(c chord.Chord) chord.Chord { return c.WithSpelling(sp) })
}

// SetSpelling sets every chord's accidental spelling in place.
func (s *Segment) SetSpelling(sp chord.Spelling) {
	s.applyChords(func(c chord.Chord) chord.Chord { return c.WithSpelling(sp) })
}

// mapChords builds a new segment by applying f to every chord. Lines and
// chord maps are freshly allocated so the copy shares no mutable state with
// the receiver.
func (s *Segment) mapChords(f func(chord.Chord) chord.Chord) *Segment {
	out := &Segment{Label: s.Label, Lines: make([]Line, len(s.Lines))}
	for i, line := range s.Lines {
		chords := make(map[int]chord.Chord, len(line.Chords))
		for col, c := range line.Chords {
			chords[col] = f(c)
		}
		out.Lines[i] = Line{Text: line.Text, Chords: chords}
	}
	return out
}

// applyChords rewrites every chord of the segment in place.
func (s *Segment) applyChords(f func(chord.Chord) chord.Chord) {
	for _, line := range s.Lines {
		for col, c := range line.Chords {
			line.Chords[col] = f(c)
		}
	}
}

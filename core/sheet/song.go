package sheet

import (
	"strings"

	"github.com/FocuswithJustin/Chordsmith/core/chord"
	cerr "github.com/FocuswithJustin/Chordsmith/core/errors"
)

// Song is an entire chord sheet: an ordered list of segments. A Song
// exclusively owns its segments; transforms either return a fresh tree or
// mutate the receiver via the explicit in-place variants.
type Song struct {
	Segments []*Segment
}

// Parse parses a whole chord-sheet document. Blocks are separated by a
// blank line (two consecutive newlines); a block without a [label] header
// inherits the most recently resolved label. Parsing is all-or-nothing: the
// first failing block aborts with a SegmentError naming the 1-based block
// index and its label.
func Parse(text string) (*Song, error) {
	blocks := strings.Split(text, "\n\n")
	song := &Song{Segments: make([]*Segment, 0, len(blocks))}

	label := ""
	for i, block := range blocks {
		seg, err := ParseSegment(block, label)
		if err != nil {
			return nil, cerr.NewSegment(i+1, peekLabel(block, label), err)
		}
		label = seg.Label
		song.Segments = append(song.Segments, seg)
	}
	return song, nil
}

// peekLabel resolves the label a block will carry without parsing its body,
// so parse errors can name the enclosing segment.
func peekLabel(block, fallback string) string {
	first := block
	if i := strings.IndexByte(block, '\n'); i >= 0 {
		first = block[:i]
	}
	if len(first) >= 2 && strings.HasPrefix(first, "[") && strings.HasSuffix(first, "]") {
		return first[1 : len(first)-1]
	}
	return fallback
}

// RenderText renders the whole song in column-aligned monospace form.
// Segments carry their own trailing newline; no blank separator lines are
// re-inserted between them.
func (s *Song) RenderText() string {
	var sb strings.Builder
	for _, seg := range s.Segments {
		sb.WriteString(seg.RenderText())
	}
	return sb.String()
}

// Transpose returns a copy of the song with every chord shifted by n
// semitones.
func (s *Song) Transpose(n int) *Song {
	out := &Song{Segments: make([]*Segment, len(s.Segments))}
	for i, seg := range s.Segments {
		out.Segments[i] = seg.Transpose(n)
	}
	return out
}

// TransposeInPlace shifts every chord by n semitones, mutating the song.
func (s *Song) TransposeInPlace(n int) {
	for _, seg := range s.Segments {
		seg.TransposeInPlace(n)
	}
}

// WithSpelling returns a copy with every chord's accidental spelling set to
// sp.
func (s *Song) WithSpelling(sp chord.Spelling) *Song {
	out := &Song{Segments: make([]*Segment, len(s.Segments))}
	for i, seg := range s.Segments {
		out.Segments[i] = seg.WithSpelling(sp)
	}
	return out
}

// SetSpelling sets every chord's accidental spelling in place.
func (s *Song) SetSpelling(sp chord.Spelling) {
	for _, seg := range s.Segments {
		seg.SetSpelling(sp)
	}
}

// PreferSharp returns a copy whose chords spell accidentals with sharps.
func (s *Song) PreferSharp() *Song {
	return s.WithSpelling(chord.Sharp)
}

// PreferFlat returns a copy whose chords spell accidentals with flats.
func (s *Song) PreferFlat() *Song {
	return s.WithSpelling(chord.Flat)
}

// Package tex renders songs as LaTeX source for songbook typesetting.
//
// The output wraps the whole song in a \beginsong/\endsong pair with empty
// title and music metadata, typesets each segment as a verse, chorus, or
// bridge environment, and attaches every chord as a superscript marker to
// the character it precedes.
package tex

import (
	"sort"
	"strings"

	"github.com/FocuswithJustin/Chordsmith/core/sheet"
)

// structural tags a segment label can select; anything else typesets as a
// verse.
var knownTags = []string{"verse", "chorus", "bridge"}

// Render renders the song as LaTeX source.
func Render(song *sheet.Song) string {
	var sb strings.Builder
	sb.WriteString("\\beginsong{}[music={}]\n")
	for _, seg := range song.Segments {
		renderSegment(&sb, seg)
	}
	sb.WriteString("\\endsong\n")
	return sb.String()
}

// blockTag picks the environment for a segment label. A label whose
// lower-cased form starts with verse, chorus, or bridge contributes its
// first word; any other label, including none, typesets as a verse.
func blockTag(label string) string {
	lower := strings.ToLower(label)
	for _, tag := range knownTags {
		if strings.HasPrefix(lower, tag) {
			if fields := strings.Fields(lower); len(fields) > 0 {
				return fields[0]
			}
		}
	}
	return "verse"
}

func renderSegment(sb *strings.Builder, seg *sheet.Segment) {
	tag := blockTag(seg.Label)
	sb.WriteString("\\begin{")
	sb.WriteString(tag)
	sb.WriteString("}\n")
	for _, line := range seg.Lines {
		renderLine(sb, line)
	}
	sb.WriteString("\\end{")
	sb.WriteString(tag)
	sb.WriteString("}\n")
}

// renderLine interleaves chord markers with the lyric text. A chord at
// column i lands immediately before the rune at index i; chords whose
// column is past the end of the line trail it in column order, tied to the
// line with a ~ placeholder. Every lyric line ends with an explicit break.
func renderLine(sb *strings.Builder, line sheet.Line) {
	runes := []rune(line.Text)
	for i, r := range runes {
		if c, ok := line.Chords[i]; ok {
			writeChord(sb, c.String())
		}
		sb.WriteString(escape(string(r)))
	}

	var trailing []int
	for col := range line.Chords {
		if col >= len(runes) {
			trailing = append(trailing, col)
		}
	}
	if len(trailing) > 0 {
		sort.Ints(trailing)
		for _, col := range trailing {
			writeChord(sb, line.Chords[col].String())
		}
		sb.WriteString("~")
	}

	sb.WriteString("\\\\\n")
}

func writeChord(sb *strings.Builder, name string) {
	sb.WriteString("\\textsuperscript{")
	sb.WriteString(escape(name))
	sb.WriteString("}")
}

// latexEscaper rewrites characters LaTeX treats specially. Chord names need
// it for "#"; lyrics can contain anything.
var latexEscaper = strings.NewReplacer(
	"\\", "\\textbackslash{}",
	"&", "\\&",
	"%", "\\%",
	"$", "\\$",
	"#", "\\#",
	"_", "\\_",
	"{", "\\{",
	"}", "\\}",
	"~", "\\textasciitilde{}",
	"^", "\\textasciicircum{}",
)

func escape(s string) string {
	return latexEscaper.Replace(s)
}

package sheet

import (
	"errors"
	"testing"

	cerr "github.com/FocuswithJustin/Chordsmith/core/errors"
)

const sampleDoc = "[Verse 1]\n" +
	"  C      G\n" +
	"Hello world\n" +
	"\n" +
	"[Chorus]\n" +
	"F     C\n" +
	"La la la\n" +
	"\n" +
	"Dm    G7\n" +
	"Again again"

func TestParseLabelPropagation(t *testing.T) {
	song, err := Parse(sampleDoc)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(song.Segments) != 3 {
		t.Fatalf("len(Segments) = %d, want 3", len(song.Segments))
	}

	wantLabels := []string{"Verse 1", "Chorus", "Chorus"}
	for i, want := range wantLabels {
		if got := song.Segments[i].Label; got != want {
			t.Errorf("Segments[%d].Label = %q, want %q", i, got, want)
		}
	}
}

func TestParseReportsFailingBlock(t *testing.T) {
	doc := "[Verse 1]\nC\nfine\n\n[Chorus]\nH7\nbroken"

	_, err := Parse(doc)
	if err == nil {
		t.Fatal("Parse succeeded, want error")
	}

	var segErr *cerr.SegmentError
	if !errors.As(err, &segErr) {
		t.Fatalf("errors.As(err, *SegmentError) = false, want true (err = %v)", err)
	}
	if segErr.Block != 2 {
		t.Errorf("Block = %d, want 2", segErr.Block)
	}
	if segErr.Label != "Chorus" {
		t.Errorf("Label = %q, want %q", segErr.Label, "Chorus")
	}

	var chordErr *cerr.InvalidChordError
	if !errors.As(err, &chordErr) {
		t.Fatalf("errors.As(err, *InvalidChordError) = false, want true (err = %v)", err)
	}
	if chordErr.Token != "H7" {
		t.Errorf("Token = %q, want %q", chordErr.Token, "H7")
	}
}

func TestParseErrorUsesInheritedLabel(t *testing.T) {
	doc := "[Chorus]\nC\nfine\n\nH7\nbroken"

	_, err := Parse(doc)
	var segErr *cerr.SegmentError
	if !errors.As(err, &segErr) {
		t.Fatalf("errors.As(err, *SegmentError) = false, want true (err = %v)", err)
	}
	if segErr.Block != 2 {
		t.Errorf("Block = %d, want 2", segErr.Block)
	}
	if segErr.Label != "Chorus" {
		t.Errorf("Label = %q, want %q", segErr.Label, "Chorus")
	}
}

func TestSongRenderText(t *testing.T) {
	song, err := Parse(sampleDoc)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := "[Verse 1]\n" +
		"  C      G\n" +
		"Hello world\n" +
		"[Chorus]\n" +
		"F     C\n" +
		"La la la\n" +
		"[Chorus]\n" +
		"Dm    G7\n" +
		"Again again\n"

	if got := song.RenderText(); got != want {
		t.Errorf("RenderText() = %q, want %q", got, want)
	}
}

func TestSongTranspose(t *testing.T) {
	song, err := Parse("Dsus4 A\nHello you")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	up := song.Transpose(2)
	if got, want := up.RenderText(), "Esus4 B\nHello you\n"; got != want {
		t.Errorf("Transpose(2).RenderText() = %q, want %q", got, want)
	}
	if got, want := song.RenderText(), "Dsus4 A\nHello you\n"; got != want {
		t.Errorf("receiver changed by Transpose: %q", got)
	}

	// transpose down is transpose up by the negation
	if got, want := up.Transpose(-2).RenderText(), song.RenderText(); got != want {
		t.Errorf("Transpose(2).Transpose(-2) = %q, want %q", got, want)
	}

	song.TransposeInPlace(2)
	if got, want := song.RenderText(), up.RenderText(); got != want {
		t.Errorf("TransposeInPlace(2) = %q, want %q", got, want)
	}
}

func TestSongSpelling(t *testing.T) {
	song, err := Parse("Bb Eb\nFlat keys")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	sharp := song.PreferSharp()
	if got, want := sharp.RenderText(), "A# D#\nFlat keys\n"; got != want {
		t.Errorf("PreferSharp().RenderText() = %q, want %q", got, want)
	}

	// prefer sharp then flat is the same as just flat
	if got, want := sharp.PreferFlat().RenderText(), song.PreferFlat().RenderText(); got != want {
		t.Errorf("PreferSharp().PreferFlat() = %q, PreferFlat() = %q; want equal", got, want)
	}
}

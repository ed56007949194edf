package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotFoundError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with ID",
			err:      &NotFoundError{Resource: "song", ID: "3f2a"},
			wantMsg:  "song not found: 3f2a",
			wantBase: ErrNotFound,
		},
		{
			name:     "without ID",
			err:      &NotFoundError{Resource: "library entry"},
			wantMsg:  "library entry not found",
			wantBase: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}

	// Test with underlying error separately
	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := fmt.Errorf("disk error")
		err := &NotFoundError{Resource: "file", ID: "song.txt", Err: underlyingErr}
		if got := err.Error(); got != "file not found: song.txt" {
			t.Errorf("Error() = %q, want %q", got, "file not found: song.txt")
		}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestInvalidChordError(t *testing.T) {
	tests := []struct {
		name    string
		err     *InvalidChordError
		wantMsg string
	}{
		{
			name:    "bad root",
			err:     &InvalidChordError{Token: "H7"},
			wantMsg: `invalid chord "H7"`,
		},
		{
			name:    "trailing remainder",
			err:     &InvalidChordError{Token: "C7x", Remainder: "x"},
			wantMsg: `invalid chord "C7x": unmatched trailing "x"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrInvalidChord) {
				t.Errorf("errors.Is(err, ErrInvalidChord) = false, want true")
			}
		})
	}
}

func TestSegmentError(t *testing.T) {
	inner := NewInvalidChord("H7", "", nil)
	err := NewSegment(2, "Chorus", inner)

	want := `block 2 [Chorus]: invalid chord "H7"`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrInvalidChord) {
		t.Errorf("errors.Is(err, ErrInvalidChord) = false, want true")
	}

	var chordErr *InvalidChordError
	if !errors.As(err, &chordErr) {
		t.Fatalf("errors.As(err, *InvalidChordError) = false, want true")
	}
	if chordErr.Token != "H7" {
		t.Errorf("Token = %q, want %q", chordErr.Token, "H7")
	}

	noLabel := NewSegment(1, "", inner)
	if got, want := noLabel.Error(), `block 1: invalid chord "H7"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidation("spelling", `must be one of "sharp", "flat", "#", "b"`)
	want := `validation failed for spelling: must be one of "sharp", "flat", "#", "b"`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("errors.Is(err, ErrInvalidInput) = false, want true")
	}
}

func TestWrap(t *testing.T) {
	if got := Wrap(nil, "context"); got != nil {
		t.Errorf("Wrap(nil) = %v, want nil", got)
	}

	base := errors.New("base error")
	wrapped := Wrap(base, "context")
	if wrapped == nil {
		t.Fatal("Wrap() = nil, want error")
	}
	if !errors.Is(wrapped, base) {
		t.Errorf("errors.Is(wrapped, base) = false, want true")
	}
	if got, want := wrapped.Error(), "context: base error"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrappedf := Wrapf(base, "block %d", 3)
	if got, want := wrappedf.Error(), "block 3: base error"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

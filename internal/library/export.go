package library

import (
	"archive/tar"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/Chordsmith/core/chord"
	cerr "github.com/FocuswithJustin/Chordsmith/core/errors"
	"github.com/FocuswithJustin/Chordsmith/core/sheet"
	"github.com/FocuswithJustin/Chordsmith/core/tex"
	"github.com/FocuswithJustin/Chordsmith/internal/logging"
)

// Output formats for rendered songs.
const (
	FormatText = "text"
	FormatTex  = "tex"
)

// ExportOptions control how library entries are rendered into a bundle.
type ExportOptions struct {
	// Format selects the renderer: FormatText (default) or FormatTex.
	Format string
	// Transpose shifts every song by this many semitones before rendering.
	Transpose int
	// Spelling, when not the default, respells every chord's accidentals.
	Spelling chord.Spelling
}

// Export renders every library entry and writes them into a tar.xz archive
// at path, one file per song. File names combine the sanitized title with a
// short content-hash prefix so they stay unique; timestamps are normalized
// to the export time.
func (l *Library) Export(path string, opts ExportOptions) error {
	entries, err := l.ListWithSource()
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return cerr.NewIO("create", path, err)
	}
	defer file.Close()

	xzWriter, err := xz.NewWriter(file)
	if err != nil {
		return fmt.Errorf("failed to create xz writer: %w", err)
	}
	defer xzWriter.Close()

	tarWriter := tar.NewWriter(xzWriter)
	defer tarWriter.Close()

	now := time.Now()
	for _, e := range entries {
		body, ext, err := renderEntry(e, opts)
		if err != nil {
			return err
		}

		header := &tar.Header{
			Name:    bundleName(e) + ext,
			Mode:    0644,
			Size:    int64(len(body)),
			ModTime: now,
		}
		if err := tarWriter.WriteHeader(header); err != nil {
			return fmt.Errorf("failed to write archive header: %w", err)
		}
		if _, err := tarWriter.Write([]byte(body)); err != nil {
			return fmt.Errorf("failed to write archive entry: %w", err)
		}
	}

	logging.Info("exported songbook", "path", path, "songs", len(entries))
	return nil
}

// renderEntry parses, transforms, and renders one stored sheet.
func renderEntry(e *Entry, opts ExportOptions) (body, ext string, err error) {
	song, err := sheet.Parse(e.Source)
	if err != nil {
		// Entries are validated on Add, so this means the database was
		// edited out of band.
		return "", "", cerr.Wrapf(err, "stored song %s is no longer parseable", e.ID)
	}

	if opts.Transpose != 0 {
		song.TransposeInPlace(opts.Transpose)
	}
	if opts.Spelling != chord.DefaultSpelling {
		song.SetSpelling(opts.Spelling)
	}

	switch opts.Format {
	case "", FormatText:
		return song.RenderText(), ".txt", nil
	case FormatTex:
		return tex.Render(song), ".tex", nil
	default:
		return "", "", cerr.NewValidation("format", fmt.Sprintf("unrecognized value %q (want %q or %q)", opts.Format, FormatText, FormatTex))
	}
}

// bundleName builds a stable archive member name for an entry.
func bundleName(e *Entry) string {
	short := e.ID
	if len(short) > 8 {
		short = short[:8]
	}
	title := sanitizeTitle(e.Title)
	if title == "" {
		return short
	}
	return title + "-" + short
}

// sanitizeTitle lowercases a title and collapses anything that is not a
// letter or digit into single hyphens.
func sanitizeTitle(title string) string {
	var sb strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				sb.WriteString("-")
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}

// Command chordsmith works with plain-text chord sheets: it parses them,
// transposes and respells chords, renders aligned text or LaTeX, and keeps
// a small sqlite-backed songbook library.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/Chordsmith/core/chord"
	cerr "github.com/FocuswithJustin/Chordsmith/core/errors"
	"github.com/FocuswithJustin/Chordsmith/core/sheet"
	"github.com/FocuswithJustin/Chordsmith/core/tex"
	"github.com/FocuswithJustin/Chordsmith/internal/library"
	"github.com/FocuswithJustin/Chordsmith/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for chordsmith.
var CLI struct {
	// Global flags
	LogLevel string `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`

	Render  RenderCmd    `cmd:"" help:"Render a chord sheet as aligned text or LaTeX"`
	Check   CheckCmd     `cmd:"" help:"Parse a chord sheet and report the first error"`
	Library LibraryGroup `cmd:"" help:"Songbook library operations (add, list, show, remove, export)"`
	Version VersionCmd   `cmd:"" help:"Print version information"`
}

// LibraryGroup contains songbook library operations.
type LibraryGroup struct {
	Add    LibraryAddCmd    `cmd:"" help:"Validate and add a chord sheet to the library"`
	List   LibraryListCmd   `cmd:"" help:"List library entries"`
	Show   LibraryShowCmd   `cmd:"" help:"Print a stored chord sheet"`
	Remove LibraryRemoveCmd `cmd:"" help:"Remove a chord sheet from the library"`
	Export LibraryExportCmd `cmd:"" help:"Render the whole library into a tar.xz bundle"`
}

// RenderCmd parses a chord sheet, applies the requested transforms, and
// renders it.
type RenderCmd struct {
	Path      string `arg:"" help:"Chord sheet file (- for stdin)"`
	Transpose int    `short:"t" help:"Transpose by n semitones (negative transposes down)"`
	Spelling  string `short:"s" help:"Accidental spelling: sharp, flat, # or b"`
	Format    string `short:"f" default:"text" enum:"text,tex" help:"Output format (text, tex)"`
	Out       string `short:"o" help:"Output file (default stdout)" type:"path"`
}

func (c *RenderCmd) Run() error {
	spelling, err := parseSpelling(c.Spelling)
	if err != nil {
		return err
	}

	text, err := readInput(c.Path)
	if err != nil {
		return err
	}

	song, err := sheet.Parse(text)
	if err != nil {
		return cerr.Wrap(err, "failed to parse chord sheet")
	}
	logging.Debug("parsed chord sheet", "path", c.Path, "segments", len(song.Segments))

	if c.Transpose != 0 {
		song.TransposeInPlace(c.Transpose)
	}
	if spelling != chord.DefaultSpelling {
		song.SetSpelling(spelling)
	}

	var out string
	switch c.Format {
	case library.FormatTex:
		out = tex.Render(song)
	default:
		out = song.RenderText()
	}
	return writeOutput(c.Out, out)
}

// CheckCmd parses a chord sheet and reports either a summary or the first
// parse error.
type CheckCmd struct {
	Path string `arg:"" help:"Chord sheet file (- for stdin)"`
}

func (c *CheckCmd) Run() error {
	text, err := readInput(c.Path)
	if err != nil {
		return err
	}

	song, err := sheet.Parse(text)
	if err != nil {
		return err
	}

	chords := 0
	for _, seg := range song.Segments {
		for _, line := range seg.Lines {
			chords += len(line.Chords)
		}
	}
	fmt.Printf("OK: %d segments, %d chords\n", len(song.Segments), chords)
	return nil
}

// LibraryAddCmd adds a chord sheet to the songbook library.
type LibraryAddCmd struct {
	Path  string `arg:"" help:"Chord sheet file" type:"existingfile"`
	DB    string `help:"Library database path" default:"songbook.db" type:"path"`
	Title string `help:"Song title (default: file name without extension)"`
}

func (c *LibraryAddCmd) Run() error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return cerr.NewIO("read", c.Path, err)
	}

	title := c.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(c.Path), filepath.Ext(c.Path))
	}

	lib, err := library.Open(c.DB)
	if err != nil {
		return err
	}
	defer lib.Close()

	entry, err := lib.Add(title, string(data))
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s\n", entry.ID[:12], entry.Title)
	return nil
}

// LibraryListCmd lists the songbook library.
type LibraryListCmd struct {
	DB string `help:"Library database path" default:"songbook.db" type:"path"`
}

func (c *LibraryListCmd) Run() error {
	lib, err := library.Open(c.DB)
	if err != nil {
		return err
	}
	defer lib.Close()

	entries, err := lib.List()
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%s  %s  %s\n", e.ID[:12], e.AddedAt.Format("2006-01-02"), e.Title)
	}
	return nil
}

// LibraryShowCmd prints a stored chord sheet verbatim.
type LibraryShowCmd struct {
	ID string `arg:"" help:"Song ID (full content hash)"`
	DB string `help:"Library database path" default:"songbook.db" type:"path"`
}

func (c *LibraryShowCmd) Run() error {
	lib, err := library.Open(c.DB)
	if err != nil {
		return err
	}
	defer lib.Close()

	entry, err := lib.Get(c.ID)
	if err != nil {
		return err
	}
	fmt.Print(entry.Source)
	return nil
}

// LibraryRemoveCmd removes a chord sheet from the library.
type LibraryRemoveCmd struct {
	ID string `arg:"" help:"Song ID (full content hash)"`
	DB string `help:"Library database path" default:"songbook.db" type:"path"`
}

func (c *LibraryRemoveCmd) Run() error {
	lib, err := library.Open(c.DB)
	if err != nil {
		return err
	}
	defer lib.Close()
	return lib.Remove(c.ID)
}

// LibraryExportCmd renders every library entry into a tar.xz bundle.
type LibraryExportCmd struct {
	Out       string `required:"" short:"o" help:"Output bundle path (tar.xz)" type:"path"`
	DB        string `help:"Library database path" default:"songbook.db" type:"path"`
	Format    string `short:"f" default:"text" enum:"text,tex" help:"Output format (text, tex)"`
	Transpose int    `short:"t" help:"Transpose by n semitones (negative transposes down)"`
	Spelling  string `short:"s" help:"Accidental spelling: sharp, flat, # or b"`
}

func (c *LibraryExportCmd) Run() error {
	spelling, err := parseSpelling(c.Spelling)
	if err != nil {
		return err
	}

	lib, err := library.Open(c.DB)
	if err != nil {
		return err
	}
	defer lib.Close()

	return lib.Export(c.Out, library.ExportOptions{
		Format:    c.Format,
		Transpose: c.Transpose,
		Spelling:  spelling,
	})
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("chordsmith %s\n", version)
	return nil
}

// parseSpelling maps the user-facing spelling option to a chord.Spelling.
// "sharp" and "#" are synonyms, as are "flat" and "b"; empty keeps the
// default. Anything else is a validation error.
func parseSpelling(v string) (chord.Spelling, error) {
	switch v {
	case "":
		return chord.DefaultSpelling, nil
	case "sharp", "#":
		return chord.Sharp, nil
	case "flat", "b":
		return chord.Flat, nil
	default:
		return chord.DefaultSpelling, cerr.NewValidation("spelling", fmt.Sprintf("unrecognized value %q (want sharp, flat, # or b)", v))
	}
}

// readInput reads a whole chord sheet from a file, or from stdin when path
// is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", cerr.NewIO("read", "stdin", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", cerr.NewIO("read", path, err)
	}
	return string(data), nil
}

// writeOutput writes rendered text to a file, or to stdout when path is
// empty.
func writeOutput(path, text string) error {
	if path == "" {
		_, err := io.WriteString(os.Stdout, text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return cerr.NewIO("write", path, err)
	}
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("chordsmith"),
		kong.Description("Chord sheet transposition and typesetting tool"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), logging.FormatText)
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}

package diagfmt

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"minic/internal/diag"
	"minic/internal/repair"
	"minic/internal/source"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow, color.Bold)
	noteColor  = color.New(color.FgCyan)
	locColor   = color.New(color.Bold)
	caretColor = color.New(color.FgRed, color.Bold)
)

// TermWidth returns the width of the attached terminal, or 0 when the
// descriptor is not a terminal.
func TermWidth(f *os.File) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}

// Pretty renders diagnostics in a human-readable form. It walks bag.Items()
// (call bag.Sort() first) and prints for each diagnostic:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// followed by the source line with a ^~~~ underline for the span, then any
// notes in the same shape. Color is controlled by opts.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		printHeading(w, fs, d.Primary, d.Severity, d.Code.ID(), d.Message, opts)
		printContext(w, fs, d.Primary, opts)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				printHeading(w, fs, n.Span, diag.SevInfo, "", n.Msg, opts)
				printContext(w, fs, n.Span, opts)
			}
		}
	}
}

// FixesPretty lists applied token-stream repairs, one per line:
//
//	<path>:<line>:<col>: fixed <kind>: "<original>" -> "<replacement>"
func FixesPretty(w io.Writer, records []repair.Record, fs *source.FileSet, opts PrettyOpts) {
	for _, r := range records {
		start, _ := fs.Resolve(r.At)
		loc := fmt.Sprintf("%s:%d:%d:", formatPath(fs, r.At, opts.PathMode), start.Line, start.Col)
		kind := r.Kind.String()
		if opts.Color {
			loc = locColor.Sprint(loc)
			kind = noteColor.Sprint(kind)
		}
		switch {
		case r.Original == "":
			fmt.Fprintf(w, "%s fixed %s: inserted %q\n", loc, kind, r.Replacement)
		default:
			fmt.Fprintf(w, "%s fixed %s: %q -> %q\n", loc, kind, r.Original, r.Replacement)
		}
	}
}

func printHeading(w io.Writer, fs *source.FileSet, sp source.Span, sev diag.Severity, code, msg string, opts PrettyOpts) {
	start, _ := fs.Resolve(sp)
	loc := fmt.Sprintf("%s:%d:%d:", formatPath(fs, sp, opts.PathMode), start.Line, start.Col)

	sevText := sev.String()
	if opts.Color {
		loc = locColor.Sprint(loc)
		sevText = severityColor(sev).Sprint(sevText)
	}

	line := loc + " " + sevText
	if code != "" {
		line += " " + code
	}
	line += ": " + msg
	if opts.Width > 0 {
		line = runewidth.Truncate(line, opts.Width, "…")
	}
	fmt.Fprintln(w, line)
}

// printContext prints the first line the span touches with a caret underline.
func printContext(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	text := f.GetLine(start.Line)
	if text == "" && start.Line != 1 {
		return
	}

	shown := text
	if opts.Width > 4 {
		shown = runewidth.Truncate(shown, opts.Width-4, "…")
	}
	fmt.Fprintf(w, "    %s\n", shown)

	// caret column accounting for tabs and wide runes before the span
	prefix := text
	if int(start.Col-1) <= len(text) {
		prefix = text[:start.Col-1]
	}
	pad := runewidth.StringWidth(strings.ReplaceAll(prefix, "\t", "    "))

	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	}
	underline := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		underline = caretColor.Sprint(underline)
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", pad), underline)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warnColor
	default:
		return noteColor
	}
}

func formatPath(fs *source.FileSet, sp source.Span, mode PathMode) string {
	f := fs.Get(sp.File)
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"eqgen/internal/diag"
	"eqgen/internal/source"
)

// Pretty renders diagnostics for terminals. Callers are expected to
// Sort the bag first. Each diagnostic prints as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with a caret run under the span, then
// notes and fix titles when enabled.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := prettyPrinter{w: w, fs: fs, opts: opts}
	for _, d := range bag.Items() {
		p.diagnostic(d)
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
}

func (p *prettyPrinter) paint(c *color.Color, s string) string {
	if !p.opts.Color {
		return s
	}
	return c.Sprint(s)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

func (p *prettyPrinter) diagnostic(d diag.Diagnostic) {
	head := fmt.Sprintf("%s %s", d.Severity, d.Code.ID())
	fmt.Fprintf(p.w, "%s: %s: %s\n",
		p.location(d.Primary),
		p.paint(severityColor(d.Severity), head),
		d.Message)
	p.excerpt(d.Primary)

	if p.opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(p.w, "  %s: %s: %s\n", p.location(n.Span), p.paint(color.New(color.FgBlue), "note"), n.Msg)
			p.excerpt(n.Span)
		}
	}
	if p.opts.ShowFixes {
		for _, f := range d.Fixes {
			marker := "fix"
			if f.IsPreferred {
				marker = "fix*"
			}
			fmt.Fprintf(p.w, "  %s: %s (%s)\n", p.paint(color.New(color.FgGreen), marker), f.Title, f.Applicability)
		}
	}
}

func (p *prettyPrinter) location(sp source.Span) string {
	f := p.fs.Get(sp.File)
	if f == nil {
		return "<unknown>"
	}
	start, _ := p.fs.Resolve(sp)
	path := f.FormatPath(p.opts.PathMode.mode(), p.fs.BaseDir())
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

// excerpt prints the first source line of the span with carets under
// the covered columns. Caret width follows the rendered width of the
// underlined text, so wide runes stay aligned.
func (p *prettyPrinter) excerpt(sp source.Span) {
	f := p.fs.Get(sp.File)
	if f == nil || sp.Empty() && sp.Start == 0 {
		return
	}
	start, end := p.fs.Resolve(sp)
	line := f.GetLine(start.Line)
	if line == "" {
		return
	}
	if p.opts.Width > 0 && runewidth.StringWidth(line) > p.opts.Width {
		line = runewidth.Truncate(line, p.opts.Width, "…")
	}
	fmt.Fprintf(p.w, "  %s\n", line)

	prefix := line
	if int(start.Col-1) <= len(line) {
		prefix = line[:start.Col-1]
	}
	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))

	covered := 1
	if end.Line == start.Line && end.Col > start.Col {
		text := line
		if int(end.Col-1) <= len(line) {
			text = line[start.Col-1 : end.Col-1]
		}
		covered = runewidth.StringWidth(text)
	}
	if covered < 1 {
		covered = 1
	}
	carets := "^" + strings.Repeat("~", covered-1)
	fmt.Fprintf(p.w, "  %s%s\n", pad, p.paint(severityColor(diag.SevError), carets))
}

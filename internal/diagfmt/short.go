package diagfmt

import (
	"io"

	"eqgen/internal/diag"
	"eqgen/internal/source"
)

// Short renders the one-line-per-diagnostic form used by golden tests
// and --format short.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) {
	io.WriteString(w, diag.FormatGolden(bag.Items(), fs, includeNotes))
}

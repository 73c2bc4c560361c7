package fix

import (
	"eqgen/internal/diag"
	"eqgen/internal/source"
)

// Option mutates a fix during construction.
type Option func(*diag.Fix)

// WithApplicability overrides applicability metadata.
func WithApplicability(app diag.FixApplicability) Option {
	return func(f *diag.Fix) { f.Applicability = app }
}

// Preferred marks the fix as the preferred suggestion.
func Preferred() Option {
	return func(f *diag.Fix) { f.IsPreferred = true }
}

// WithID sets a stable identifier.
func WithID(id string) Option {
	return func(f *diag.Fix) { f.ID = id }
}

func applyOptions(f diag.Fix, opts []Option) diag.Fix {
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

// InsertText builds a fix that inserts text at a position. The span
// collapses to its start, guard (when non-empty) is unused for pure
// insertions and therefore ignored.
func InsertText(title string, at source.Span, text string, opts ...Option) diag.Fix {
	f := diag.Fix{
		Title: title,
		Edits: []diag.FixEdit{{Span: diag.InsertionPoint(at), NewText: text}},
	}
	return applyOptions(f, opts)
}

// ReplaceSpan builds a fix that replaces the span's current text.
// guard pins the expected old text so a stale span never corrupts the
// file.
func ReplaceSpan(title string, at source.Span, newText, guard string, opts ...Option) diag.Fix {
	f := diag.Fix{
		Title: title,
		Edits: []diag.FixEdit{{Span: at, NewText: newText, OldText: guard}},
	}
	return applyOptions(f, opts)
}

// DeleteSpan builds a fix that removes the span's text.
func DeleteSpan(title string, at source.Span, guard string, opts ...Option) diag.Fix {
	return ReplaceSpan(title, at, "", guard, opts...)
}

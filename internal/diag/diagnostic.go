package diag

import (
	"eqgen/internal/source"
)

// Note is a secondary location attached to a diagnostic, e.g. the
// other half of a duplicate pair.
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit is one concrete text replacement. OldText, when set, guards
// the edit: the fix engine refuses to apply it if the span no longer
// contains that text.
type FixEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// FixApplicability tells consumers how much trust to put in a fix.
type FixApplicability uint8

const (
	FixAlwaysSafe FixApplicability = iota
	FixSafeWithHeuristics
	FixManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixAlwaysSafe:
		return "always-safe"
	case FixSafeWithHeuristics:
		return "safe-with-heuristics"
	case FixManualReview:
		return "manual-review"
	}
	return "unknown"
}

// Fix is a suggested automated correction, data only. The repair layer
// (internal/fix) is the sole consumer that mutates files.
type Fix struct {
	ID            string
	Title         string
	Applicability FixApplicability
	IsPreferred   bool
	Edits         []FixEdit
}

// Diagnostic is one finding for one declaration. Diagnostics are plain
// data: producers never panic or abort, consumers decide what an error
// means for the build.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

// InsertionPoint collapses a span to its start, the form fix edits use
// for pure insertions.
func InsertionPoint(s source.Span) source.Span {
	s.End = s.Start
	return s
}

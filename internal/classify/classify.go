// Package classify walks a host declaration's members and extracts the
// equality strategy attached to each. It is the leaf of the pipeline:
// a pure function of the declaration model, no rule checking beyond
// "is this slot allowed to carry a strategy at all".
package classify

import (
	"fmt"

	"eqgen/internal/decl"
	"eqgen/internal/diag"
	"eqgen/internal/marker"
	"eqgen/internal/source"
)

// StrategyKind is the per-member equality policy.
type StrategyKind uint8

const (
	Include StrategyKind = iota
	Ignore
	Sequence
	Custom
)

func (k StrategyKind) String() string {
	switch k {
	case Include:
		return "include"
	case Ignore:
		return "ignore"
	case Sequence:
		return "sequence"
	case Custom:
		return "custom"
	}
	return "unknown"
}

// Strategy is one parsed equality strategy with its parameters
// resolved to defaults.
type Strategy struct {
	Kind StrategyKind
	// Order positions the member in the evaluation plan; 0 when not
	// written. OrderExplicit distinguishes a written 0 from a default.
	Order         int
	OrderExplicit bool
	// OrderMatters and DeepEquality apply to Sequence only.
	OrderMatters bool
	DeepEquality bool
	Span         source.Span
}

// ClassifiedMember pairs a stored slot with its strategies. Strategy
// is nil for an unclassified member; Extra holds any strategies beyond
// the first, which the validator turns into a multiple-strategies
// error.
type ClassifiedMember struct {
	Member   decl.Member
	Strategy *Strategy
	Extra    []Strategy
}

// Result is the classifier's output for one host declaration.
type Result struct {
	Type *decl.Type
	// Members lists eligible stored slots in declaration order.
	// Embedded bases are not eligible and are excluded.
	Members []ClassifiedMember
}

// Classify extracts members and strategies from a host declaration.
// Placement follows the marker catalog: a strategy on a slot its spec
// does not allow (the type itself, an embedded base, a method) fails
// closed with an unsupported-member error, while a misplaced
// non-strategy marker stays a warning.
func Classify(t *decl.Type, r diag.Reporter) Result {
	res := Result{Type: t}
	reportMisplaced(r, t.Attrs, marker.TargetType, fmt.Sprintf("type %s", t.Name))

	for _, m := range t.Members {
		if m.Kind == decl.MemberEmbedded {
			// no marker targets an embedded base
			reportMisplaced(r, m.Attrs, marker.TargetNone, fmt.Sprintf("embedded %s", m.Name))
			continue
		}
		cm := ClassifiedMember{Member: m}
		for _, attr := range m.Attrs {
			spec, ok := marker.Lookup(attr.Name)
			if !ok {
				continue // the parser already warned
			}
			if !spec.Allows(marker.TargetField) {
				diag.ReportWarning(r, diag.ContractUnknownMarker, attr.Span,
					fmt.Sprintf("marker %q has no effect on a field", marker.Prefix+attr.Name)).Emit()
				continue
			}
			s := strategyFromAttr(attr)
			if cm.Strategy == nil {
				cm.Strategy = &s
			} else {
				cm.Extra = append(cm.Extra, s)
			}
		}
		res.Members = append(res.Members, cm)
	}

	for _, method := range t.Methods {
		reportMisplaced(r, method.Attrs, marker.TargetFunc, fmt.Sprintf("method %s", method.Name))
	}

	return res
}

// reportMisplaced diagnoses every attr whose catalog spec does not
// allow the given target. Strategies fail closed; everything else is
// noise worth a warning.
func reportMisplaced(r diag.Reporter, attrs []marker.Attr, target marker.TargetMask, slot string) {
	for _, attr := range attrs {
		spec, ok := marker.Lookup(attr.Name)
		if !ok || spec.Allows(target) {
			continue
		}
		if spec.Strategy {
			diag.ReportError(r, diag.ContractUnsupportedMember, attr.Span,
				fmt.Sprintf("%s cannot carry an equality strategy", slot)).Emit()
		} else {
			diag.ReportWarning(r, diag.ContractUnknownMarker, attr.Span,
				fmt.Sprintf("marker %q has no effect on %s", marker.Prefix+attr.Name, slot)).Emit()
		}
	}
}

func strategyFromAttr(attr marker.Attr) Strategy {
	s := Strategy{
		Order:         attr.Int("order", 0),
		OrderExplicit: attr.Has("order"),
		OrderMatters:  attr.Bool("ordered", true),
		DeepEquality:  attr.Bool("deep", true),
		Span:          attr.Span,
	}
	switch attr.Name {
	case "include":
		s.Kind = Include
	case "ignore":
		s.Kind = Ignore
	case "sequence":
		s.Kind = Sequence
	case "custom":
		s.Kind = Custom
	}
	return s
}

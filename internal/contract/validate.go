package contract

import (
	"fmt"
	"sort"

	"eqgen/internal/classify"
	"eqgen/internal/decl"
	"eqgen/internal/diag"
)

// validator tracks error severity so Validate can decide whether the
// contract survives without re-reading the bag.
type validator struct {
	r    diag.Reporter
	errs int
}

func (v *validator) error(b *diag.ReportBuilder) {
	v.errs++
	b.Emit()
}

func (v *validator) warn(b *diag.ReportBuilder) {
	b.Emit()
}

// Validate applies every contract rule to a classified declaration and
// returns the evaluation plan. The plan is nil when any rule reported
// an error; warnings never block. All independently detectable
// violations are reported, never just the first.
func Validate(res classify.Result, r diag.Reporter) (*Contract, bool) {
	t := res.Type
	v := &validator{r: r}

	marked := t.HasMarker("contract")
	if !marked {
		// strategies without a contract marker have nothing to bind to
		for _, cm := range res.Members {
			if cm.Strategy != nil {
				v.error(diag.ReportError(r, diag.ContractStrategyOutside, cm.Strategy.Span,
					fmt.Sprintf("member %s has an equality strategy but %s carries no eq:contract marker", cm.Member.Name, t.Name)))
			}
		}
		return nil, false
	}

	// the marker demands method injection; only a defined struct type
	// can receive it
	if t.Kind != decl.KindStruct {
		attr, _ := t.Marker("contract")
		v.error(diag.ReportError(r, diag.ContractNotExtensible, attr.Span,
			fmt.Sprintf("%s cannot receive generated methods; eq:contract requires a defined struct type", t.Name)))
		return nil, false
	}

	if t.IsWrapper() {
		return v.validateWrapper(res)
	}

	if !t.EmbedsValueObject {
		v.error(diag.ReportError(r, diag.ContractWithoutBaseShape, t.Span,
			fmt.Sprintf("%s must embed eq.ValueObject to participate in an equality contract", t.Name)))
	}

	entries := v.validateMembers(res)
	v.checkCompanionCollisions(res)
	v.checkDuplicateOrders(res)

	if v.errs > 0 {
		return nil, false
	}
	sortEntries(entries)
	return &Contract{Type: t, Entries: entries}, true
}

// validateWrapper handles the single-value wrapper shape: the wrapper
// already has fixed equality semantics, so the marker is unnecessary
// and extra members never participate.
func (v *validator) validateWrapper(res classify.Result) (*Contract, bool) {
	t := res.Type
	attr, _ := t.Marker("contract")
	v.warn(diag.ReportWarning(v.r, diag.ContractUnnecessaryMarker, attr.Span,
		fmt.Sprintf("%s wraps a single value with built-in equality; the eq:contract marker is unnecessary", t.Name)))

	for _, cm := range res.Members {
		if cm.Strategy != nil && cm.Strategy.Kind == classify.Ignore {
			continue
		}
		v.warn(diag.ReportWarning(v.r, diag.ContractExtraWrapperMember, cm.Member.Span,
			fmt.Sprintf("member %s does not participate; the wrapped value alone defines equality for %s", cm.Member.Name, t.Name)))
	}

	if v.errs > 0 {
		return nil, false
	}
	return &Contract{Type: t, Wrapper: true}, true
}

func (v *validator) validateMembers(res classify.Result) []Entry {
	t := res.Type
	var entries []Entry

	for _, cm := range res.Members {
		m := cm.Member

		if cm.Strategy == nil {
			if m.Name == "_" {
				continue // ignorable by policy
			}
			fix := diag.Fix{
				ID:            "contract.mark-ignored",
				Title:         fmt.Sprintf("exclude %s from the contract", m.Name),
				Applicability: diag.FixManualReview,
				Edits: []diag.FixEdit{{
					Span:    diag.InsertionPoint(m.Span),
					NewText: "// eq:ignore\n",
				}},
			}
			v.warn(diag.ReportWarning(v.r, diag.ContractMissingStrategy, m.Span,
				fmt.Sprintf("member %s has no equality strategy; mark it eq:include, eq:sequence, eq:custom or eq:ignore", m.Name)).
				WithFix(fix))
			continue
		}

		if len(cm.Extra) > 0 {
			b := diag.ReportError(v.r, diag.ContractMultipleStrategies, cm.Strategy.Span,
				fmt.Sprintf("member %s declares %d equality strategies; exactly one is allowed", m.Name, 1+len(cm.Extra)))
			for _, extra := range cm.Extra {
				b.WithNote(extra.Span, fmt.Sprintf("conflicting %s strategy here", extra.Kind))
			}
			v.error(b)
			continue // excluded from the contract
		}

		s := *cm.Strategy
		if s.Kind == classify.Ignore {
			continue
		}

		v.checkImmutability(t, m)

		switch s.Kind {
		case classify.Include:
			if !m.Type.Comparable && !m.Type.HasEqual {
				v.error(diag.ReportError(v.r, diag.ContractUnsupportedMember, s.Span,
					fmt.Sprintf("member %s (%s) supports neither == nor Equal; use eq:sequence or eq:custom", m.Name, m.Type.Expr)))
				continue
			}
			entries = append(entries, Entry{Member: m, Strategy: s})

		case classify.Sequence:
			if !m.Type.IsSequence || m.Type.IsString {
				v.error(diag.ReportError(v.r, diag.ContractSequenceMisuse, s.Span,
					fmt.Sprintf("eq:sequence requires an iterable member; %s is %s", m.Name, describeNonSequence(m))))
				continue
			}
			elem := m.Type.Elem
			if s.DeepEquality && !elem.Comparable && !elem.HasEqual {
				v.error(diag.ReportError(v.r, diag.ContractSequenceMisuse, s.Span,
					fmt.Sprintf("element type %s of %s supports neither == nor Equal", elem.Expr, m.Name)))
				continue
			}
			if !s.DeepEquality && !elem.Comparable && !elem.IsPointer {
				v.error(diag.ReportError(v.r, diag.ContractSequenceMisuse, s.Span,
					fmt.Sprintf("identity equality needs a comparable element type; %s has %s", m.Name, elem.Expr)))
				continue
			}
			entries = append(entries, Entry{Member: m, Strategy: s})

		case classify.Custom:
			suffix := CleanName(m.Name)
			ok := true
			if !v.checkCompanion(t, m, EqualsName(m.Name), 2, "bool", diag.ContractMissingEquals) {
				ok = false
			}
			if !v.checkCompanion(t, m, HashName(m.Name), 1, "uint64", diag.ContractMissingHash) {
				ok = false
			}
			if ok {
				entries = append(entries, Entry{Member: m, Strategy: s, Suffix: suffix})
			}
		}
	}
	return entries
}

// checkCompanion resolves one companion function against the host
// declaration's own method set.
func (v *validator) checkCompanion(t *decl.Type, m decl.Member, name string, params int, result string, code diag.Code) bool {
	method, ok := t.Method(name)
	if !ok {
		v.error(diag.ReportError(v.r, code, m.Span,
			fmt.Sprintf("member %s needs companion func (%s) %s(a, b %s)", m.Name, t.Name, name, m.Type.Expr)).
			WithNote(t.Span, "declared on this type"))
		return false
	}
	if len(method.Params) != params || len(method.Results) != 1 || method.Results[0] != result {
		v.error(diag.ReportError(v.r, code, method.Span,
			fmt.Sprintf("companion %s has the wrong signature; want %d parameter(s) and a %s result", name, params, result)))
		return false
	}
	return true
}

func (v *validator) checkImmutability(t *decl.Type, m decl.Member) {
	if m.Exported {
		v.warn(diag.ReportWarning(v.r, diag.ContractMutableField, m.Span,
			fmt.Sprintf("participating member %s is exported and freely reassignable; unexport it to keep %s immutable", m.Name, t.Name)))
	}
	if setter, ok := t.Method(SetterName(m.Name)); ok {
		v.warn(diag.ReportWarning(v.r, diag.ContractMutableProperty, m.Span,
			fmt.Sprintf("participating member %s has setter %s; equality over mutable state is fragile", m.Name, setter.Name)).
			WithNote(setter.Span, "setter declared here"))
	}
}

// checkCompanionCollisions reports Custom members whose cleaned names
// collide, which would make the companion target ambiguous.
func (v *validator) checkCompanionCollisions(res classify.Result) {
	bySuffix := make(map[string][]decl.Member)
	var order []string
	for _, cm := range res.Members {
		if cm.Strategy == nil || cm.Strategy.Kind != classify.Custom || len(cm.Extra) > 0 {
			continue
		}
		suffix := CleanName(cm.Member.Name)
		if len(bySuffix[suffix]) == 0 {
			order = append(order, suffix)
		}
		bySuffix[suffix] = append(bySuffix[suffix], cm.Member)
	}
	for _, suffix := range order {
		members := bySuffix[suffix]
		if len(members) < 2 {
			continue
		}
		b := diag.ReportError(v.r, diag.ContractAmbiguousCompanions, members[0].Span,
			fmt.Sprintf("members %s all resolve to companion suffix %q", memberNames(members), suffix))
		for _, m := range members[1:] {
			b.WithNote(m.Span, fmt.Sprintf("%s also cleans to %s", m.Name, suffix))
		}
		v.error(b)
	}
}

// checkDuplicateOrders warns when members share the same explicit
// order. Evaluation still proceeds with the declaration-position
// tie-break, so this is never an error.
func (v *validator) checkDuplicateOrders(res classify.Result) {
	byOrder := make(map[int][]classify.ClassifiedMember)
	for _, cm := range res.Members {
		if cm.Strategy == nil || !cm.Strategy.OrderExplicit || len(cm.Extra) > 0 {
			continue
		}
		if cm.Strategy.Kind == classify.Ignore {
			continue
		}
		byOrder[cm.Strategy.Order] = append(byOrder[cm.Strategy.Order], cm)
	}
	orders := make([]int, 0, len(byOrder))
	for o := range byOrder {
		orders = append(orders, o)
	}
	sort.Ints(orders)
	for _, o := range orders {
		group := byOrder[o]
		if len(group) < 2 {
			continue
		}
		b := diag.ReportWarning(v.r, diag.ContractDuplicateOrder, group[0].Strategy.Span,
			fmt.Sprintf("%d members share order=%d; declaration order breaks the tie", len(group), o))
		for _, cm := range group[1:] {
			b.WithNote(cm.Strategy.Span, fmt.Sprintf("%s also has order=%d", cm.Member.Name, o))
		}
		v.warn(b)
	}
}

func describeNonSequence(m decl.Member) string {
	if m.Type.IsString {
		return "a text string, which is excluded even though it is iterable"
	}
	return "of type " + m.Type.Expr
}

func memberNames(members []decl.Member) string {
	out := ""
	for i, m := range members {
		if i > 0 {
			out += ", "
		}
		out += m.Name
	}
	return out
}

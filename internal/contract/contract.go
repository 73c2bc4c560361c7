// Package contract decides whether a classified member list forms a
// valid equality contract and, if so, builds the ordered evaluation
// plan that drives synthesis. All structural and naming rules live
// here; they are independent and all checked in one pass so a single
// fix cycle can resolve every violation of a declaration.
package contract

import (
	"sort"

	"eqgen/internal/classify"
	"eqgen/internal/decl"
)

// Entry is one step of the evaluation plan.
type Entry struct {
	Member   decl.Member
	Strategy classify.Strategy
	// Suffix is the cleaned companion suffix; set for Custom entries.
	Suffix string
}

// Contract is the validated, ordered plan of (member, strategy) pairs.
// It is immutable after Validate succeeds; a host declaration owns
// exactly one and contracts are never merged.
type Contract struct {
	Type *decl.Type
	// Entries holds participating members sorted by (order ascending,
	// declaration position ascending). Ignored members are excluded.
	Entries []Entry
	// Wrapper is true for single-value wrapper shapes: the plan is
	// empty and synthesis delegates to the built-in wrapper semantics.
	Wrapper bool
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Strategy.Order != entries[j].Strategy.Order {
			return entries[i].Strategy.Order < entries[j].Strategy.Order
		}
		return entries[i].Member.DeclPos < entries[j].Member.DeclPos
	})
}

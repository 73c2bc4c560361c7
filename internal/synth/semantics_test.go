package synth_test

// The fixtures below are written in exactly the shape EmitContract
// produces, so the assertions double as a semantic check of the
// generated patterns against the runtime helpers.

import (
	"strings"
	"testing"

	"eqgen/pkg/eq"
)

type surname struct {
	eq.ValueObject
	family string
	given  string
}

var companionCalls int

func (s surname) Equals_Family(a, b string) bool {
	companionCalls++
	return strings.EqualFold(a, b)
}

func (s surname) GetHashCode_Family(v string) uint64 {
	return eq.HashString(strings.ToLower(v))
}

func (s surname) Equal(other surname) bool {
	if s.given != other.given {
		return false
	}
	if !s.Equals_Family(s.family, other.family) {
		return false
	}
	return true
}

func (s surname) EqualObject(other any) bool {
	o, ok := other.(surname)
	if !ok {
		return false
	}
	return s.Equal(o)
}

func (s surname) Hash() uint64 {
	h := eq.Seed("demo.surname")
	h = eq.Fold(h, eq.HashString(s.given))
	h = eq.Fold(h, s.GetHashCode_Family(s.family))
	return h
}

// alias-shaped twin of surname with identical members
type pseudonym struct {
	eq.ValueObject
	family string
	given  string
}

func (p pseudonym) EqualObject(other any) bool {
	_, ok := other.(pseudonym)
	return ok
}

func TestCaseInsensitiveCompanion(t *testing.T) {
	a := surname{family: "Gaza", given: "Ali"}
	b := surname{family: "GAZA", given: "Ali"}
	c := surname{family: "Jaber", given: "Ali"}
	if !a.Equal(b) {
		t.Error("case-insensitive companion must equate Gaza and GAZA")
	}
	if a.Hash() != b.Hash() {
		t.Error("equal values must hash alike")
	}
	if a.Equal(c) {
		t.Error("Gaza and Jaber reported equal")
	}
}

func TestShortCircuitSkipsLaterMembers(t *testing.T) {
	a := surname{family: "Gaza", given: "Ali"}
	b := surname{family: "Gaza", given: "Omar"}
	companionCalls = 0
	if a.Equal(b) {
		t.Fatal("distinct given names reported equal")
	}
	if companionCalls != 0 {
		t.Errorf("first mismatching member must stop evaluation; companion ran %d time(s)", companionCalls)
	}
}

func TestEqualObjectIsNominal(t *testing.T) {
	a := surname{family: "Gaza", given: "Ali"}
	twin := pseudonym{family: "Gaza", given: "Ali"}
	if a.EqualObject(twin) {
		t.Error("structurally identical foreign type must never be equal")
	}
	if !a.EqualObject(surname{family: "gaza", given: "Ali"}) {
		t.Error("same-type equal value rejected")
	}
	if a.EqualObject(nil) {
		t.Error("nil must never be equal")
	}
}

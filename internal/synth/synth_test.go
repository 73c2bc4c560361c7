package synth_test

import (
	"strings"
	"testing"

	"eqgen/internal/classify"
	"eqgen/internal/contract"
	"eqgen/internal/diag"
	"eqgen/internal/synth"
	"eqgen/internal/testkit"
)

const personSrc = `package demo

import "eqgen/pkg/eq"

// eq:contract
type Person struct {
	eq.ValueObject
	// eq:include order=0
	city string
	// eq:custom order=1
	lastName string
	// eq:sequence order=2
	nicknames []string
}

func (Person) Equals_LastName(a, b string) bool { return a == b }
func (Person) GetHashCode_LastName(v string) uint64 { return 0 }
`

func buildContract(t *testing.T, src, name string) *contract.Contract {
	t.Helper()
	pkg, _, bag := testkit.BuildSource(t, src)
	typ := testkit.MustType(t, pkg, name)
	r := diag.BagReporter{Bag: bag}
	c, ok := contract.Validate(classify.Classify(typ, r), r)
	if !ok {
		t.Fatalf("contract rejected: %v", bag.Items())
	}
	return c
}

func TestEmitDeterministic(t *testing.T) {
	c := buildContract(t, personSrc, "Person")
	a := synth.EmitContract(c)
	b := synth.EmitContract(c)
	if a.Source != b.Source {
		t.Error("same contract must emit identical source")
	}
}

func TestEmitShortCircuitOrder(t *testing.T) {
	c := buildContract(t, personSrc, "Person")
	chunk := synth.EmitContract(c)
	src := chunk.Source

	city := strings.Index(src, "p.city != other.city")
	custom := strings.Index(src, "p.Equals_LastName(p.lastName, other.lastName)")
	seq := strings.Index(src, "eq.SequenceEqual(p.nicknames, other.nicknames")
	if city < 0 || custom < 0 || seq < 0 {
		t.Fatalf("missing member checks:\n%s", src)
	}
	if !(city < custom && custom < seq) {
		t.Errorf("checks out of contract order:\n%s", src)
	}
	if strings.Count(src, "return false") < 4 {
		t.Errorf("every check must bail out early:\n%s", src)
	}
}

func TestEmitHashWalksSameOrder(t *testing.T) {
	c := buildContract(t, personSrc, "Person")
	src := synth.EmitContract(c).Source

	if !strings.Contains(src, `eq.Seed("demo.Person")`) {
		t.Errorf("hash must start from the type seed:\n%s", src)
	}
	city := strings.Index(src, "eq.HashString(p.city)")
	custom := strings.Index(src, "p.GetHashCode_LastName(p.lastName)")
	seq := strings.Index(src, "eq.HashSequence(h, p.nicknames")
	if city < 0 || custom < 0 || seq < 0 || !(city < custom && custom < seq) {
		t.Errorf("hash folds missing or out of order:\n%s", src)
	}
}

func TestEmitEqualObjectAssertsOwnType(t *testing.T) {
	c := buildContract(t, personSrc, "Person")
	src := synth.EmitContract(c).Source
	if !strings.Contains(src, "o, ok := other.(Person)") {
		t.Errorf("EqualObject must assert the host type:\n%s", src)
	}
}

func TestEmitUnorderedSequence(t *testing.T) {
	c := buildContract(t, `package demo

import "eqgen/pkg/eq"

// eq:contract
type Bag struct {
	eq.ValueObject
	// eq:sequence ordered=false
	items []int
}
`, "Bag")
	src := synth.EmitContract(c).Source
	if !strings.Contains(src, "eq.MultisetEqual(") || !strings.Contains(src, "eq.HashMultiset(") {
		t.Errorf("unordered sequence must use the multiset helpers:\n%s", src)
	}
	if strings.Contains(src, "eq.SequenceEqual(") {
		t.Errorf("ordered helper leaked into unordered member:\n%s", src)
	}
}

func TestEmitDeepSequenceUsesElementEqual(t *testing.T) {
	c := buildContract(t, `package demo

import "eqgen/pkg/eq"

// eq:contract
type Team struct {
	eq.ValueObject
	// eq:sequence
	members []Person
}

// eq:contract
type Person struct {
	eq.ValueObject
	// eq:include
	name string
}
`, "Team")
	src := synth.EmitContract(c).Source
	if !strings.Contains(src, "a.Equal(b)") {
		t.Errorf("deep element comparison must call Equal:\n%s", src)
	}
	if !strings.Contains(src, "v.Hash()") {
		t.Errorf("element hashing must call Hash:\n%s", src)
	}
}

const taggedSrc = `package demo

import "eqgen/pkg/eq"

// eq:contract
type Post struct {
	eq.ValueObject
	// eq:sequence
	tags []*Tag
}

// eq:contract
type Tag struct {
	eq.ValueObject
	// eq:include
	name string
}
`

func TestEmitDeepPointerSequenceComparesPointees(t *testing.T) {
	c := buildContract(t, taggedSrc, "Post")
	src := synth.EmitContract(c).Source
	if !strings.Contains(src, "if a == nil || b == nil { return a == b }; return a.Equal(*b)") {
		t.Errorf("deep pointer elements must compare pointees behind a nil guard:\n%s", src)
	}
	if !strings.Contains(src, "if v == nil { return 1 }; return v.Hash()") {
		t.Errorf("deep pointer elements must hash pointees behind a nil guard:\n%s", src)
	}
}

func TestEmitShallowPointerSequenceStaysIdentity(t *testing.T) {
	c := buildContract(t, `package demo

import "eqgen/pkg/eq"

// eq:contract
type Post struct {
	eq.ValueObject
	// eq:sequence deep=false
	tags []*Tag
}

// eq:contract
type Tag struct {
	eq.ValueObject
	// eq:include
	name string
}
`, "Post")
	src := synth.EmitContract(c).Source
	if !strings.Contains(src, "func(a, b *Tag) bool { return a == b }") {
		t.Errorf("deep=false must compare pointers by identity:\n%s", src)
	}
	if !strings.Contains(src, "eq.HashOf(v)") || strings.Contains(src, "v.Hash()") {
		t.Errorf("identity-compared pointers must hash by identity:\n%s", src)
	}
}

func TestEmitPointerMemberHashesByIdentity(t *testing.T) {
	c := buildContract(t, `package demo

import "eqgen/pkg/eq"

// eq:contract
type Node struct {
	eq.ValueObject
	// eq:include
	parent *Node
}
`, "Node")
	src := synth.EmitContract(c).Source
	if !strings.Contains(src, "n.parent != other.parent") {
		t.Errorf("pointer member must compare by identity:\n%s", src)
	}
	if !strings.Contains(src, "eq.HashOf(n.parent)") || strings.Contains(src, "n.parent.Hash()") {
		t.Errorf("pointer member must hash by identity, never dereference:\n%s", src)
	}
}

func TestEmitWrapperDelegates(t *testing.T) {
	pkg, _, bag := testkit.BuildSource(t, `package demo

import "eqgen/pkg/eq"

// eq:contract
type Celsius struct {
	eq.Wrapper[float64]
}
`)
	typ := testkit.MustType(t, pkg, "Celsius")
	r := diag.BagReporter{Bag: bag}
	c, ok := contract.Validate(classify.Classify(typ, r), r)
	if !ok {
		t.Fatalf("wrapper rejected: %v", bag.Items())
	}
	src := synth.EmitContract(c).Source
	if !strings.Contains(src, "c.Wrapper.Equal(other.Wrapper)") {
		t.Errorf("wrapper Equal must delegate:\n%s", src)
	}
	if !strings.Contains(src, `eq.Seed("demo.Celsius")`) {
		t.Errorf("wrapper hash must stay nominal:\n%s", src)
	}
}

func TestFileAssembly(t *testing.T) {
	c := buildContract(t, personSrc, "Person")
	chunk := synth.EmitContract(c)
	out, err := synth.File("demo", []synth.Chunk{chunk})
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	text := string(out)
	if !strings.HasPrefix(text, synth.Header) {
		t.Error("missing generated-code header")
	}
	if !strings.Contains(text, "package demo") {
		t.Error("missing package clause")
	}
	if !strings.Contains(text, `import "eqgen/pkg/eq"`) {
		t.Error("missing runtime import")
	}
}

func TestFileOrdersChunksByTypeName(t *testing.T) {
	chunks := []synth.Chunk{
		{TypeName: "Zeta", Source: "func (z Zeta) Equal(other Zeta) bool { return true }\n"},
		{TypeName: "Alpha", Source: "func (a Alpha) Equal(other Alpha) bool { return true }\n"},
	}
	out, err := synth.File("demo", chunks)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	text := string(out)
	if strings.Index(text, "Alpha") > strings.Index(text, "Zeta") {
		t.Error("chunks must be sorted by type name")
	}
}

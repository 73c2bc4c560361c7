package contract_test

import (
	"strings"
	"testing"

	"eqgen/internal/classify"
	"eqgen/internal/contract"
	"eqgen/internal/diag"
	"eqgen/internal/testkit"
)

func validateSrc(t *testing.T, src, typeName string) (*contract.Contract, *diag.Bag) {
	t.Helper()
	pkg, _, bag := testkit.BuildSource(t, src)
	typ := testkit.MustType(t, pkg, typeName)
	r := diag.BagReporter{Bag: bag}
	res := classify.Classify(typ, r)
	c, _ := contract.Validate(res, r)
	return c, bag
}

func codes(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func countCode(bag *diag.Bag, code diag.Code) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}

const validSrc = `package demo

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
	// eq:ignore
	cache map[string]bool
}

func (Person) Equals_LastName(a, b string) bool { return a == b }
func (Person) GetHashCode_LastName(v string) uint64 { return 0 }
`

func TestValidateHappyPath(t *testing.T) {
	c, bag := validateSrc(t, validSrc, "Person")
	if c == nil {
		t.Fatalf("contract rejected: %v", bag.Items())
	}
	if bag.HasErrors() || bag.HasWarnings() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(c.Entries) != 3 {
		t.Fatalf("entries = %d", len(c.Entries))
	}
	if c.Entries[0].Member.Name != "city" || c.Entries[1].Member.Name != "lastName" || c.Entries[2].Member.Name != "nicknames" {
		t.Errorf("plan order: %s %s %s", c.Entries[0].Member.Name, c.Entries[1].Member.Name, c.Entries[2].Member.Name)
	}
	if c.Entries[1].Suffix != "LastName" {
		t.Errorf("suffix = %q", c.Entries[1].Suffix)
	}
}

func TestValidateOrderSorting(t *testing.T) {
	c, _ := validateSrc(t, `package demo

import "eqgen/pkg/eq"

// eq:contract
type T struct {
	eq.ValueObject
	// eq:include order=5
	b int
	// eq:include
	c int
	// eq:include order=-1
	a int
}
`, "T")
	if c == nil {
		t.Fatal("contract rejected")
	}
	got := []string{c.Entries[0].Member.Name, c.Entries[1].Member.Name, c.Entries[2].Member.Name}
	want := []string{"a", "c", "b"} // -1, default 0, 5
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("plan = %v, want %v", got, want)
		}
	}
}

func TestValidateMissingStrategyWarns(t *testing.T) {
	c, bag := validateSrc(t, `package demo

import "eqgen/pkg/eq"

// eq:contract
type T struct {
	eq.ValueObject
	// eq:include
	x int
	unmarked string
}
`, "T")
	if c == nil {
		t.Fatal("warning must not block synthesis")
	}
	if countCode(bag, diag.ContractMissingStrategy) != 1 {
		t.Errorf("codes = %v", codes(bag))
	}
	if bag.HasErrors() {
		t.Error("missing strategy must stay a warning")
	}
	// the nudge carries a repair suggestion
	for _, d := range bag.Items() {
		if d.Code == diag.ContractMissingStrategy && len(d.Fixes) == 0 {
			t.Error("missing-strategy diagnostic has no fix")
		}
	}
	if len(c.Entries) != 1 {
		t.Errorf("unclassified member leaked into the plan: %d", len(c.Entries))
	}
}

func TestValidateMultipleStrategies(t *testing.T) {
	c, bag := validateSrc(t, `package demo

import "eqgen/pkg/eq"

// eq:contract
type T struct {
	eq.ValueObject
	// eq:include
	// eq:ignore
	x int
	// eq:include
	y int
}
`, "T")
	if c != nil {
		t.Fatal("error must block synthesis")
	}
	if countCode(bag, diag.ContractMultipleStrategies) != 1 {
		t.Errorf("codes = %v", codes(bag))
	}
}

func TestValidateNotExtensible(t *testing.T) {
	for _, src := range []string{
		`package demo

// eq:contract
type T = struct{ x int }
`,
		`package demo

// eq:contract
type T int
`,
	} {
		c, bag := validateSrc(t, src, "T")
		if c != nil {
			t.Fatal("non-struct contract accepted")
		}
		if countCode(bag, diag.ContractNotExtensible) != 1 {
			t.Errorf("codes = %v", codes(bag))
		}
	}
}

func TestValidateStrategyOutsideContract(t *testing.T) {
	c, bag := validateSrc(t, `package demo

type T struct {
	// eq:include
	x int
}
`, "T")
	if c != nil {
		t.Fatal("unmarked type produced a contract")
	}
	if countCode(bag, diag.ContractStrategyOutside) != 1 {
		t.Errorf("codes = %v", codes(bag))
	}
}

func TestValidateMissingBaseShape(t *testing.T) {
	c, bag := validateSrc(t, `package demo

// eq:contract
type T struct {
	// eq:include
	x int
}
`, "T")
	if c != nil {
		t.Fatal("missing base accepted")
	}
	if countCode(bag, diag.ContractWithoutBaseShape) != 1 {
		t.Errorf("codes = %v", codes(bag))
	}
}

func TestValidateSequenceMisuse(t *testing.T) {
	c, bag := validateSrc(t, `package demo

import "eqgen/pkg/eq"

// eq:contract
type T struct {
	eq.ValueObject
	// eq:sequence
	name string
	// eq:sequence
	count int
	// eq:sequence
	ok []byte
}
`, "T")
	if c != nil {
		t.Fatal("sequence misuse accepted")
	}
	if countCode(bag, diag.ContractSequenceMisuse) != 2 {
		t.Errorf("codes = %v", codes(bag))
	}
	// the string case names the exclusion explicitly
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.ContractSequenceMisuse && strings.Contains(d.Message, "text string") {
			found = true
		}
	}
	if !found {
		t.Error("string exclusion not called out")
	}
}

func TestValidateCompanionResolution(t *testing.T) {
	c, bag := validateSrc(t, `package demo

import "eqgen/pkg/eq"

// eq:contract
type T struct {
	eq.ValueObject
	// eq:custom
	a string
	// eq:custom
	b string
	// eq:custom
	c string
}

func (T) Equals_A(x, y string) bool { return x == y }
func (T) GetHashCode_A(v string) uint64 { return 0 }

func (T) Equals_B(x, y string) bool { return x == y }
// wrong arity
func (T) GetHashCode_B(v string, extra int) uint64 { return 0 }
`, "T")
	if c != nil {
		t.Fatal("missing companions accepted")
	}
	// b: bad hash signature; c: both companions missing
	if countCode(bag, diag.ContractMissingHash) != 2 {
		t.Errorf("missing-hash count = %d, codes = %v", countCode(bag, diag.ContractMissingHash), codes(bag))
	}
	if countCode(bag, diag.ContractMissingEquals) != 1 {
		t.Errorf("missing-equals count = %d", countCode(bag, diag.ContractMissingEquals))
	}
}

func TestValidateCompanionCollision(t *testing.T) {
	c, bag := validateSrc(t, `package demo

import "eqgen/pkg/eq"

// eq:contract
type T struct {
	eq.ValueObject
	// eq:custom
	_value string
	// eq:custom
	m_value string
}

func (T) Equals_Value(x, y string) bool { return x == y }
func (T) GetHashCode_Value(v string) uint64 { return 0 }
`, "T")
	if c != nil {
		t.Fatal("ambiguous companions accepted")
	}
	if countCode(bag, diag.ContractAmbiguousCompanions) != 1 {
		t.Errorf("codes = %v", codes(bag))
	}
	for _, d := range bag.Items() {
		if d.Code == diag.ContractAmbiguousCompanions && len(d.Notes) != 1 {
			t.Errorf("collision must reference both members: %+v", d)
		}
	}
}

func TestValidateDuplicateOrder(t *testing.T) {
	c, bag := validateSrc(t, `package demo

import "eqgen/pkg/eq"

// eq:contract
type T struct {
	eq.ValueObject
	// eq:include order=5
	a int
	// eq:include order=5
	b int
}
`, "T")
	if c == nil {
		t.Fatalf("duplicate order must stay a warning: %v", bag.Items())
	}
	if countCode(bag, diag.ContractDuplicateOrder) != 1 {
		t.Errorf("exactly one duplicate-order warning wanted, codes = %v", codes(bag))
	}
	for _, d := range bag.Items() {
		if d.Code == diag.ContractDuplicateOrder && len(d.Notes) != 1 {
			t.Errorf("warning must reference both locations: %+v", d)
		}
	}
	// declaration order breaks the tie
	if c.Entries[0].Member.Name != "a" || c.Entries[1].Member.Name != "b" {
		t.Errorf("tie-break broken: %s, %s", c.Entries[0].Member.Name, c.Entries[1].Member.Name)
	}
}

func TestValidateImplicitZeroOrderNoWarning(t *testing.T) {
	_, bag := validateSrc(t, `package demo

import "eqgen/pkg/eq"

// eq:contract
type T struct {
	eq.ValueObject
	// eq:include
	a int
	// eq:include
	b int
}
`, "T")
	if countCode(bag, diag.ContractDuplicateOrder) != 0 {
		t.Errorf("defaulted orders must not collide: %v", codes(bag))
	}
}

func TestValidateImmutabilityWarnings(t *testing.T) {
	c, bag := validateSrc(t, `package demo

import "eqgen/pkg/eq"

// eq:contract
type T struct {
	eq.ValueObject
	// eq:include
	Exposed int
	// eq:include
	guarded int
}

func (t *T) SetGuarded(v int) { t.guarded = v }
`, "T")
	if c == nil {
		t.Fatal("immutability is a nudge, not a precondition")
	}
	if countCode(bag, diag.ContractMutableField) != 1 {
		t.Errorf("mutable-field count wrong: %v", codes(bag))
	}
	if countCode(bag, diag.ContractMutableProperty) != 1 {
		t.Errorf("mutable-property count wrong: %v", codes(bag))
	}
	if len(c.Entries) != 2 {
		t.Errorf("entries = %d", len(c.Entries))
	}
}

func TestValidateWrapper(t *testing.T) {
	c, bag := validateSrc(t, `package demo

import "eqgen/pkg/eq"

// eq:contract
type Celsius struct {
	eq.Wrapper[float64]
	// eq:include
	note string
}
`, "Celsius")
	if c == nil {
		t.Fatalf("wrapper must still synthesize: %v", bag.Items())
	}
	if !c.Wrapper || len(c.Entries) != 0 {
		t.Errorf("wrapper contract = %+v", c)
	}
	if countCode(bag, diag.ContractExtraWrapperMember) != 1 {
		t.Errorf("extra-member count wrong: %v", codes(bag))
	}
	if countCode(bag, diag.ContractUnnecessaryMarker) != 1 {
		t.Errorf("unnecessary-marker count wrong: %v", codes(bag))
	}
	if bag.HasErrors() {
		t.Error("wrapper violations are warnings")
	}
}

func TestValidateIncludeOnNonComparable(t *testing.T) {
	c, bag := validateSrc(t, `package demo

import "eqgen/pkg/eq"

// eq:contract
type T struct {
	eq.ValueObject
	// eq:include
	m map[string]int
}
`, "T")
	if c != nil {
		t.Fatal("include on a map accepted")
	}
	if countCode(bag, diag.ContractUnsupportedMember) != 1 {
		t.Errorf("codes = %v", codes(bag))
	}
}

func TestValidateBlankMemberIgnorable(t *testing.T) {
	_, bag := validateSrc(t, `package demo

import "eqgen/pkg/eq"

// eq:contract
type T struct {
	eq.ValueObject
	_ [0]func()
	// eq:include
	x int
}
`, "T")
	if countCode(bag, diag.ContractMissingStrategy) != 0 {
		t.Errorf("blank member must be ignorable: %v", codes(bag))
	}
}

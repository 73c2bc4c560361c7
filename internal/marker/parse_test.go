package marker

import (
	"strings"
	"testing"

	"eqgen/internal/diag"
	"eqgen/internal/source"
)

func parseOne(t *testing.T, text string) (Attr, bool, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(16)
	attr, ok := ParseLine(text, source.Span{File: 0, Start: 0, End: 10}, diag.BagReporter{Bag: bag})
	return attr, ok, bag
}

func TestParseLineInclude(t *testing.T) {
	attr, ok, bag := parseOne(t, " eq:include order=3")
	if !ok || bag.Len() != 0 {
		t.Fatalf("ok=%v diags=%d", ok, bag.Len())
	}
	if attr.Name != "include" || attr.Int("order", 0) != 3 {
		t.Errorf("attr = %+v", attr)
	}
	if !attr.Has("order") {
		t.Error("explicit order not recorded")
	}
}

func TestParseLineSequenceDefaults(t *testing.T) {
	attr, ok, bag := parseOne(t, "eq:sequence")
	if !ok || bag.Len() != 0 {
		t.Fatalf("ok=%v diags=%d", ok, bag.Len())
	}
	if attr.Int("order", 0) != 0 || !attr.Bool("ordered", true) || !attr.Bool("deep", true) {
		t.Errorf("defaults broken: %+v", attr)
	}
	if attr.Has("order") {
		t.Error("defaulted order must not read as explicit")
	}
}

func TestParseLineSequenceParams(t *testing.T) {
	attr, ok, _ := parseOne(t, "eq:sequence order=2 ordered=false deep=false")
	if !ok {
		t.Fatal("not parsed")
	}
	if attr.Bool("ordered", true) || attr.Bool("deep", true) || attr.Int("order", 0) != 2 {
		t.Errorf("params = %+v", attr.Params)
	}
}

func TestParseLineNotAMarker(t *testing.T) {
	_, ok, bag := parseOne(t, "regular doc comment")
	if ok || bag.Len() != 0 {
		t.Errorf("ok=%v diags=%d", ok, bag.Len())
	}
	// "equality" prose must not trip the prefix check
	_, ok, _ = parseOne(t, "equally good comment")
	if ok {
		t.Error("prose parsed as marker")
	}
}

func TestParseLineUnknownMarker(t *testing.T) {
	_, ok, bag := parseOne(t, "eq:includ order=1")
	if ok {
		t.Error("unknown marker accepted")
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.ContractUnknownMarker {
		t.Errorf("diags = %v", bag.Items())
	}
	if bag.HasErrors() {
		t.Error("unknown marker must be a warning")
	}
}

func TestParseLineBadParam(t *testing.T) {
	attr, ok, bag := parseOne(t, "eq:include order=abc")
	if !ok {
		t.Fatal("marker dropped entirely")
	}
	if !bag.HasErrors() || bag.Items()[0].Code != diag.ContractInvalidMarkerParam {
		t.Errorf("diags = %v", bag.Items())
	}
	if attr.Has("order") {
		t.Error("bad value must not be recorded")
	}

	_, _, bag = parseOne(t, "eq:include depth=1")
	if !bag.HasErrors() {
		t.Error("unknown parameter must be an error")
	}
	if !strings.Contains(bag.Items()[0].Message, "depth") {
		t.Errorf("message = %q", bag.Items()[0].Message)
	}
}

func TestCatalogTargets(t *testing.T) {
	contract, _ := Lookup("contract")
	if contract.Allows(TargetField) || !contract.Allows(TargetType) {
		t.Error("contract targets wrong")
	}
	include, _ := Lookup("include")
	if !include.Allows(TargetField) || include.Allows(TargetType) {
		t.Error("include targets wrong")
	}
	if !IsStrategy("ignore") || IsStrategy("contract") || IsStrategy("nope") {
		t.Error("IsStrategy wrong")
	}
}

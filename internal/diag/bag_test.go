package diag

import (
	"testing"

	"eqgen/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagCap(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewError(ContractNotExtensible, span(0, 0, 1), "a")) {
		t.Error("first Add rejected")
	}
	if !b.Add(NewWarning(ContractMissingStrategy, span(0, 1, 2), "b")) {
		t.Error("second Add rejected")
	}
	if b.Add(NewWarning(ContractMissingStrategy, span(0, 2, 3), "c")) {
		t.Error("Add above cap accepted")
	}
	if b.Len() != 2 {
		t.Errorf("Len = %d", b.Len())
	}
}

func TestBagSeverityQueries(t *testing.T) {
	b := NewBag(10)
	if b.HasErrors() || b.HasWarnings() {
		t.Error("empty bag reports findings")
	}
	b.Add(NewWarning(ContractMutableField, span(0, 0, 1), "w"))
	if b.HasErrors() {
		t.Error("warning counted as error")
	}
	if !b.HasWarnings() {
		t.Error("warning not counted")
	}
	b.Add(NewError(ContractMultipleStrategies, span(0, 0, 1), "e"))
	if !b.HasErrors() {
		t.Error("error not counted")
	}
}

func TestBagSortDeterministic(t *testing.T) {
	b := NewBag(10)
	b.Add(NewWarning(ContractDuplicateOrder, span(0, 5, 6), "later"))
	b.Add(NewError(ContractMissingEquals, span(0, 1, 2), "earlier"))
	b.Add(NewError(ContractMissingHash, span(0, 1, 2), "same span, higher code"))
	b.Sort()
	items := b.Items()
	if items[0].Code != ContractMissingEquals || items[1].Code != ContractMissingHash {
		t.Errorf("order after Sort: %v %v %v", items[0].Code, items[1].Code, items[2].Code)
	}
	if items[2].Code != ContractDuplicateOrder {
		t.Errorf("span ordering broken: %v", items[2].Code)
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(10)
	d := NewError(EnumDuplicateName, span(0, 3, 9), "dup")
	b.Add(d)
	b.Add(d)
	b.Add(NewError(EnumDuplicateName, span(0, 10, 12), "dup elsewhere"))
	b.Dedup()
	if b.Len() != 2 {
		t.Errorf("Len after Dedup = %d", b.Len())
	}
}

func TestBagMergeGrowsCap(t *testing.T) {
	a := NewBag(1)
	a.Add(NewWarning(ContractMissingStrategy, span(0, 0, 1), "x"))
	other := NewBag(2)
	other.Add(NewWarning(ContractMissingStrategy, span(0, 1, 2), "y"))
	other.Add(NewError(ContractNotExtensible, span(0, 2, 3), "z"))
	a.Merge(other)
	if a.Len() != 3 {
		t.Errorf("Len after Merge = %d", a.Len())
	}
}

func TestDedupReporter(t *testing.T) {
	b := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: b})
	d := NewError(ContractMissingEquals, span(0, 0, 4), "same")
	r.Report(d)
	r.Report(d)
	r.Report(NewError(ContractMissingEquals, span(0, 0, 4), "different message"))
	if b.Len() != 2 {
		t.Errorf("Len = %d", b.Len())
	}
}

func TestCodeIDFamilies(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{ContractMissingStrategy, "CON1002"},
		{ContractUnsupportedMember, "CON1015"},
		{EnumDuplicateValue, "ENM2001"},
		{IOLoadFileError, "IO4001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("ID(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

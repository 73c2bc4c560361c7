package diagfmt_test

import (
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"

	"eqgen/internal/diag"
	"eqgen/internal/diagfmt"
	"eqgen/internal/source"
)

func fixtureBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	content := []byte("type Person struct {\n\tName string\n}\n")
	id := fs.AddVirtual("person.go", content)

	bag := diag.NewBag(16)
	bag.Add(diag.New(diag.SevError, diag.ContractWithoutBaseShape,
		source.MakeSpan(id, 5, 11), "Person must embed eq.ValueObject"))
	warn := diag.NewWarning(diag.ContractMutableField,
		source.MakeSpan(id, 22, 26), "participating member Name is exported")
	warn.Notes = append(warn.Notes, diag.Note{
		Span: source.MakeSpan(id, 0, 4), Msg: "declared here",
	})
	warn.Fixes = append(warn.Fixes, diag.Fix{
		ID:            "contract.mark-ignored",
		Title:         "exclude Name from the contract",
		Applicability: diag.FixManualReview,
		Edits: []diag.FixEdit{{
			Span:    diag.InsertionPoint(source.MakeSpan(id, 22, 26)),
			NewText: "// eq:ignore\n",
		}},
	})
	bag.Add(warn)
	bag.Sort()
	return bag, fs
}

func TestPretty(t *testing.T) {
	bag, fs := fixtureBag(t)
	var sb strings.Builder
	diagfmt.Pretty(&sb, bag, fs, diagfmt.PrettyOpts{ShowNotes: true, ShowFixes: true})
	out := sb.String()

	for _, want := range []string{
		"person.go:1:6: ERROR CON1008: Person must embed eq.ValueObject",
		"^~~~~",
		"person.go:2:2: WARNING CON1011: participating member Name is exported",
		"note: declared here",
		"fix: exclude Name from the contract (manual-review)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestPrettyWithoutNotes(t *testing.T) {
	bag, fs := fixtureBag(t)
	var sb strings.Builder
	diagfmt.Pretty(&sb, bag, fs, diagfmt.PrettyOpts{})
	out := sb.String()
	if strings.Contains(out, "note:") || strings.Contains(out, "fix:") {
		t.Errorf("notes and fixes must be opt-in:\n%s", out)
	}
}

func TestJSON(t *testing.T) {
	bag, fs := fixtureBag(t)
	var sb strings.Builder
	err := diagfmt.JSON(&sb, bag, fs, diagfmt.JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		IncludeFixes:     true,
	})
	if err != nil {
		t.Fatal(err)
	}

	var out diagfmt.DiagnosticsOutput
	if err := gojson.Unmarshal([]byte(sb.String()), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("count = %d, diagnostics = %d", out.Count, len(out.Diagnostics))
	}
	first := out.Diagnostics[0]
	if first.Code != "CON1008" || first.Severity != "ERROR" {
		t.Errorf("first = %+v", first)
	}
	if first.Location.StartLine != 1 || first.Location.StartCol != 6 {
		t.Errorf("location = %+v", first.Location)
	}
	second := out.Diagnostics[1]
	if len(second.Notes) != 1 || len(second.Fixes) != 1 {
		t.Errorf("second = %+v", second)
	}
	if second.Fixes[0].Applicability != "manual-review" {
		t.Errorf("fix = %+v", second.Fixes[0])
	}
}

func TestJSONTruncation(t *testing.T) {
	bag, fs := fixtureBag(t)
	var sb strings.Builder
	if err := diagfmt.JSON(&sb, bag, fs, diagfmt.JSONOpts{Max: 1}); err != nil {
		t.Fatal(err)
	}
	var out diagfmt.DiagnosticsOutput
	if err := gojson.Unmarshal([]byte(sb.String()), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 || len(out.Diagnostics) != 1 || !out.Truncated {
		t.Errorf("truncation broken: %+v", out)
	}
}

func TestSarif(t *testing.T) {
	bag, fs := fixtureBag(t)
	var sb strings.Builder
	err := diagfmt.Sarif(&sb, bag, fs, diagfmt.SarifRunMeta{ToolName: "eqgen", ToolVersion: "1.0.0"})
	if err != nil {
		t.Fatal(err)
	}

	var log map[string]any
	if err := gojson.Unmarshal([]byte(sb.String()), &log); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if log["version"] != "2.1.0" {
		t.Errorf("version = %v", log["version"])
	}
	out := sb.String()
	for _, want := range []string{
		`"name": "eqgen"`,
		`"ruleId": "CON1008"`,
		`"level": "error"`,
		`"level": "warning"`,
		`"startLine": 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestShort(t *testing.T) {
	bag, fs := fixtureBag(t)
	var sb strings.Builder
	diagfmt.Short(&sb, bag, fs, false)
	out := sb.String()
	if !strings.Contains(out, "CON1008") || !strings.Contains(out, "person.go") {
		t.Errorf("short output missing fields:\n%s", out)
	}
}

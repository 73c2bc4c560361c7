// Package testkit holds shared helpers for package tests: parsing Go
// snippets into the declaration model without going through the
// go/packages loader.
package testkit

import (
	"go/parser"
	"go/token"
	"testing"

	"eqgen/internal/decl"
	"eqgen/internal/diag"
	"eqgen/internal/source"
)

// BuildSource parses one Go source snippet and builds its declaration
// model. Marker parse diagnostics land in the returned bag.
func BuildSource(t *testing.T, src string) (*decl.Package, *source.FileSet, *diag.Bag) {
	t.Helper()

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "test.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	sfs := source.NewFileSetWithBase(".")
	id := sfs.AddVirtual("test.go", []byte(src))

	bag := diag.NewBag(64)
	pkg := decl.BuildPackage("example.com/demo", f.Name.Name, []decl.FileInput{{
		AST:     f,
		Tok:     fset.File(f.Pos()),
		ID:      id,
		Content: []byte(src),
	}}, decl.TypesContext{}, diag.BagReporter{Bag: bag})
	return pkg, sfs, bag
}

// MustType fetches a declaration by name or fails the test.
func MustType(t *testing.T, pkg *decl.Package, name string) *decl.Type {
	t.Helper()
	typ, ok := pkg.Type(name)
	if !ok {
		t.Fatalf("type %s not found", name)
	}
	return typ
}

// Package enumgen synthesizes lookup tables for enumeration types:
// eq:enum structs whose named constants are package-level vars built
// from literal constructor arguments.
package enumgen

import (
	"fmt"

	"eqgen/internal/decl"
	"eqgen/internal/diag"
	"eqgen/internal/source"
)

// Constant is one named enumeration member with its extracted keys.
type Constant struct {
	VarName string
	Value   int
	Name    string
	Span    source.Span
}

// Enum is the validated table model for one enumeration type.
type Enum struct {
	Type      *decl.Type
	Constants []Constant
	// NameField is the string member String() can return, empty when
	// the struct stores no name or the user already declared String.
	NameField string
}

// Extract collects and validates the named constants of an eq:enum
// type. It returns false when tables must not be synthesized: the
// type is not a defined struct, a key is duplicated, or there are no
// constants at all.
func Extract(pkg *decl.Package, t *decl.Type, r diag.Reporter) (*Enum, bool) {
	if t.Kind != decl.KindStruct {
		attr, _ := t.Marker("enum")
		diag.ReportError(r, diag.EnumNotExtensible, attr.Span,
			fmt.Sprintf("%s cannot be an enumeration; eq:enum requires a defined struct type", t.Name)).Emit()
		return nil, false
	}

	e := &Enum{Type: t, NameField: nameField(t)}
	for _, inst := range pkg.Instances {
		if inst.TypeName != t.Name {
			continue
		}
		c, ok := constantOf(inst)
		if !ok {
			// non-literal construction is out of scope: the constant
			// exists at runtime but is invisible to uniqueness checks
			continue
		}
		e.Constants = append(e.Constants, c)
	}

	if len(e.Constants) == 0 {
		diag.ReportWarning(r, diag.EnumNoEntries, t.Span,
			fmt.Sprintf("enumeration %s declares no literal constants; no tables generated", t.Name)).Emit()
		return e, false
	}

	ok := true
	if !checkUnique(e, r, func(c Constant) string { return fmt.Sprintf("%d", c.Value) },
		diag.EnumDuplicateValue, "value") {
		ok = false
	}
	if !checkUnique(e, r, func(c Constant) string { return c.Name },
		diag.EnumDuplicateName, "name") {
		ok = false
	}
	return e, ok
}

// constantOf extracts (value, name) from the first int and first
// string literal arguments, in either construction form.
func constantOf(inst decl.Instance) (Constant, bool) {
	c := Constant{VarName: inst.VarName, Span: inst.Span}
	haveValue, haveName := false, false
	for _, arg := range inst.Args {
		if !arg.Literal {
			continue
		}
		switch {
		case arg.IsInt && !haveValue:
			c.Value = arg.Int
			haveValue = true
		case arg.IsString && !haveName:
			c.Name = arg.Str
			haveName = true
		}
	}
	return c, haveValue && haveName
}

// checkUnique reports one error per duplicate, pointing back at the
// first occurrence of the shared key.
func checkUnique(e *Enum, r diag.Reporter, key func(Constant) string, code diag.Code, kind string) bool {
	first := make(map[string]Constant)
	ok := true
	for _, c := range e.Constants {
		k := key(c)
		prev, seen := first[k]
		if !seen {
			first[k] = c
			continue
		}
		ok = false
		diag.ReportError(r, code, c.Span,
			fmt.Sprintf("enumeration %s reuses %s %s; constants %s and %s are indistinguishable",
				e.Type.Name, kind, k, prev.VarName, c.VarName)).
			WithNote(prev.Span, fmt.Sprintf("%s first used here", kind)).
			Emit()
	}
	return ok
}

// nameField finds the string member String() can expose. The user's
// own String method always wins.
func nameField(t *decl.Type) string {
	if _, ok := t.Method("String"); ok {
		return ""
	}
	for _, m := range t.Members {
		if m.Kind == decl.MemberField && m.Type.IsString && m.Name != "_" {
			return m.Name
		}
	}
	return ""
}

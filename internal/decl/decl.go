// Package decl models host declarations: the struct types, methods and
// package-level constants the equality and enumeration pipelines
// analyze. Everything here is a pure snapshot of syntax (enriched with
// go/types facts when the loader has them); later stages never touch
// go/ast again.
package decl

import (
	"eqgen/internal/marker"
	"eqgen/internal/source"
)

// TypeKind classifies a host type declaration.
type TypeKind uint8

const (
	// KindStruct is a defined struct type; the only kind that can
	// receive injected members.
	KindStruct TypeKind = iota
	// KindAlias is `type A = B`; aliases cannot carry methods.
	KindAlias
	// KindOther is any other defined type (named basic, interface, ...).
	KindOther
)

// MemberKind distinguishes stored slots from embedded bases.
type MemberKind uint8

const (
	MemberField MemberKind = iota
	MemberEmbedded
)

// Descriptor is the structural shape of a member's type, as far as the
// pipelines need to know it: scalar/value, sequence-of-T, or opaque.
type Descriptor struct {
	// Expr is the type exactly as written, e.g. "[]*Tag" or "string".
	Expr string
	// IsSequence is true for slice and array types.
	IsSequence bool
	// Elem describes the element type of a sequence.
	Elem *Descriptor
	// IsString marks the predeclared string type; iterable, but
	// explicitly excluded from the sequence strategy.
	IsString bool
	// IsPointer marks pointer types, where == is identity.
	IsPointer bool
	// Comparable is a best-effort answer to "is == legal here".
	// Syntax rules out slices, arrays of non-comparable, maps and
	// funcs; go/types refines the rest when available.
	Comparable bool
	// HasEqual is true when the type has an Equal(T) bool method or is
	// itself a contract type in the same package.
	HasEqual bool
	// HasHash is true when the type has a Hash() uint64 method or is
	// itself a contract type in the same package.
	HasHash bool
}

// Member is one field-like slot of a host declaration.
type Member struct {
	Name string
	Kind MemberKind
	Type Descriptor
	// DeclPos is the source-order index, used only as a tie-break.
	DeclPos  int
	Span     source.Span
	Attrs    []marker.Attr
	Exported bool
}

// Method is a same-package method of a host type, kept for companion
// resolution, setter detection and misplaced-marker checks.
type Method struct {
	Name    string
	Span    source.Span
	Attrs   []marker.Attr
	Params  []string // rendered parameter types, expanded
	Results []string // rendered result types
	// MarkerErrors counts error diagnostics produced while parsing this
	// method's markers.
	MarkerErrors int
}

// Type is a host declaration: the unit of classification, validation
// and synthesis. One Type owns exactly one contract.
type Type struct {
	Name    string
	PkgPath string
	PkgName string
	Kind    TypeKind
	// Span covers the type name identifier.
	Span  source.Span
	File  source.FileID
	Attrs []marker.Attr
	// Members lists stored slots in declaration order, embedded bases
	// included.
	Members []Member
	Methods []Method
	// EmbedsValueObject is true when the struct embeds eq.ValueObject.
	EmbedsValueObject bool
	// WrapperElem is the rendered type argument of an embedded
	// eq.Wrapper[T]; empty when the type is not wrapper-shaped.
	WrapperElem string
	// SrcHash is the content hash of the declaration's source slice,
	// the memoization key for everything derived from this type.
	SrcHash [32]byte
	// MarkerErrors counts error diagnostics produced while parsing this
	// declaration's markers, member and method markers included. A
	// nonzero count blocks synthesis for the declaration.
	MarkerErrors int
}

// IsWrapper reports whether the declaration is a single-value wrapper
// with built-in equality semantics.
func (t *Type) IsWrapper() bool {
	return t.WrapperElem != ""
}

// HasMarker reports whether the declaration carries the given marker.
func (t *Type) HasMarker(name string) bool {
	for _, a := range t.Attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

// Marker returns the first marker with the given name.
func (t *Type) Marker(name string) (marker.Attr, bool) {
	for _, a := range t.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return marker.Attr{}, false
}

// Method looks up a method by name.
func (t *Type) Method(name string) (Method, bool) {
	for _, m := range t.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

// InstanceArg is one constructor argument of a named-constant
// enumeration instance. Only literal arguments are statically
// analyzable; anything else is recorded with Literal=false and skipped
// by uniqueness checking.
type InstanceArg struct {
	Literal  bool
	IsInt    bool
	IsString bool
	Int      int
	Str      string
	Span     source.Span
}

// Instance is a package-level var holding a named constant of an
// enumeration type: `var StatusActive = Status{1, "active"}` or the
// constructor form `NewStatus(1, "active")`.
type Instance struct {
	TypeName string
	VarName  string
	Span     source.Span
	Args     []InstanceArg
	File     source.FileID
}

// Package aggregates the declarations of one Go package.
type Package struct {
	Path      string
	Name      string
	Types     []*Type
	Instances []Instance
}

// Type looks up a declaration by name.
func (p *Package) Type(name string) (*Type, bool) {
	for _, t := range p.Types {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Package synth turns validated equality contracts into Go source.
// Emission is deterministic: the same contract always produces the
// same bytes, which keeps generated files diff-stable and lets the
// driver cache on declaration hashes.
package synth

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"eqgen/internal/classify"
	"eqgen/internal/contract"
	"eqgen/internal/decl"
)

// runtimePkg is the import path of the runtime helpers generated code
// calls into.
const runtimePkg = "eqgen/pkg/eq"

// Chunk is the generated source for one host type, without package
// clause or imports; the file assembler owns those.
type Chunk struct {
	TypeName string
	Source   string
	// Imports lists the packages the chunk's source references.
	Imports []string
}

// EmitContract renders the three generated methods for one contract.
func EmitContract(c *contract.Contract) Chunk {
	e := &emitter{recv: ReceiverName(c.Type.Name)}
	if c.Wrapper {
		e.wrapperMethods(c.Type)
	} else {
		e.equalMethod(c)
		e.equalObjectMethod(c.Type)
		e.hashMethod(c)
	}
	chunk := Chunk{TypeName: c.Type.Name, Source: e.buf.String()}
	if e.usesRuntime {
		chunk.Imports = []string{runtimePkg}
	}
	return chunk
}

type emitter struct {
	buf         strings.Builder
	recv        string
	usesRuntime bool
}

func (e *emitter) printf(format string, args ...any) {
	fmt.Fprintf(&e.buf, format, args...)
}

func (e *emitter) runtime(name string) string {
	e.usesRuntime = true
	return "eq." + name
}

// equalMethod emits the short-circuiting member walk. Members appear
// in contract order and every failing check returns immediately.
func (e *emitter) equalMethod(c *contract.Contract) {
	t := c.Type
	r := e.recv
	e.printf("// Equal reports whether both values satisfy the equality contract of %s.\n", t.Name)
	e.printf("func (%s %s) Equal(other %s) bool {\n", r, t.Name, t.Name)
	for _, entry := range c.Entries {
		e.memberCheck(entry)
	}
	e.printf("\treturn true\n}\n\n")
}

func (e *emitter) memberCheck(entry contract.Entry) {
	m := entry.Member
	r := e.recv
	switch entry.Strategy.Kind {
	case classify.Include:
		if m.Type.Comparable {
			e.printf("\tif %s.%s != other.%s {\n\t\treturn false\n\t}\n", r, m.Name, m.Name)
		} else {
			e.printf("\tif !%s.%s.Equal(other.%s) {\n\t\treturn false\n\t}\n", r, m.Name, m.Name)
		}
	case classify.Custom:
		e.printf("\tif !%s.Equals_%s(%s.%s, other.%s) {\n\t\treturn false\n\t}\n",
			r, entry.Suffix, r, m.Name, m.Name)
	case classify.Sequence:
		helper := "SequenceEqual"
		if !entry.Strategy.OrderMatters {
			helper = "MultisetEqual"
		}
		e.printf("\tif !%s(%s.%s, other.%s, %s) {\n\t\treturn false\n\t}\n",
			e.runtime(helper), r, m.Name, m.Name, elementComparer(entry))
	}
}

// elementComparer builds the element predicate for a sequence member.
// Deep equality over pointer elements compares pointees; nil guards
// keep a sparse slice from dereferencing.
func elementComparer(entry contract.Entry) string {
	elem := entry.Member.Type.Elem
	if entry.Strategy.DeepEquality && elem.HasEqual {
		if elem.IsPointer {
			return fmt.Sprintf("func(a, b %s) bool { if a == nil || b == nil { return a == b }; return a.Equal(*b) }", elem.Expr)
		}
		if !elem.Comparable {
			return fmt.Sprintf("func(a, b %s) bool { return a.Equal(b) }", elem.Expr)
		}
	}
	return fmt.Sprintf("func(a, b %s) bool { return a == b }", elem.Expr)
}

// equalObjectMethod emits the nominal-typing bridge: values of
// different host types never compare equal, without reflection.
func (e *emitter) equalObjectMethod(t *decl.Type) {
	r := e.recv
	e.printf("// EqualObject reports contract equality against an arbitrary value.\n")
	e.printf("// Values of any other type are never equal.\n")
	e.printf("func (%s %s) EqualObject(other any) bool {\n", r, t.Name)
	e.printf("\to, ok := other.(%s)\n\tif !ok {\n\t\treturn false\n\t}\n", t.Name)
	e.printf("\treturn %s.Equal(o)\n}\n\n", r)
}

// hashMethod folds member hashes into a type-distinct seed, walking
// the same members in the same order as Equal.
func (e *emitter) hashMethod(c *contract.Contract) {
	t := c.Type
	r := e.recv
	e.printf("// Hash returns a hash consistent with Equal: equal values always\n")
	e.printf("// hash alike.\n")
	e.printf("func (%s %s) Hash() uint64 {\n", r, t.Name)
	e.printf("\th := %s(%q)\n", e.runtime("Seed"), t.PkgPath+"."+t.Name)
	for _, entry := range c.Entries {
		e.memberHash(entry)
	}
	e.printf("\treturn h\n}\n\n")
}

func (e *emitter) memberHash(entry contract.Entry) {
	m := entry.Member
	r := e.recv
	switch entry.Strategy.Kind {
	case classify.Include:
		e.printf("\th = %s(h, %s)\n", e.runtime("Fold"), e.valueHash(m.Type, r+"."+m.Name))
	case classify.Custom:
		e.printf("\th = %s(h, %s.GetHashCode_%s(%s.%s))\n", e.runtime("Fold"), r, entry.Suffix, r, m.Name)
	case classify.Sequence:
		helper := "HashSequence"
		if !entry.Strategy.OrderMatters {
			helper = "HashMultiset"
		}
		e.printf("\th = %s(h, %s.%s, %s)\n", e.runtime(helper), r, m.Name, e.elementHasher(entry))
	}
}

// valueHash picks the hash expression for a single value. Strings get
// the process-stable helper; non-pointer types carrying their own Hash
// use it. Pointers hash through HashOf by identity, matching how ==
// compares them, and never dereference. A member with Equal but
// neither Hash nor comparability collapses to a constant, which is
// consistent though degenerate.
func (e *emitter) valueHash(d decl.Descriptor, expr string) string {
	switch {
	case d.IsString:
		return fmt.Sprintf("%s(%s)", e.runtime("HashString"), expr)
	case d.HasHash && !d.IsPointer:
		return fmt.Sprintf("%s.Hash()", expr)
	case d.Comparable:
		return fmt.Sprintf("%s(%s)", e.runtime("HashOf"), expr)
	default:
		return "1"
	}
}

// elementHasher builds the element hash for a sequence member. It
// mirrors elementComparer: whenever elements compare by pointee they
// hash by pointee, so the sequence hash stays consistent with the
// sequence predicate.
func (e *emitter) elementHasher(entry contract.Entry) string {
	elem := entry.Member.Type.Elem
	if entry.Strategy.DeepEquality && elem.IsPointer && elem.HasEqual {
		if elem.HasHash {
			return fmt.Sprintf("func(v %s) uint64 { if v == nil { return 1 }; return v.Hash() }", elem.Expr)
		}
		return fmt.Sprintf("func(v %s) uint64 { return 1 }", elem.Expr)
	}
	return fmt.Sprintf("func(v %s) uint64 { return %s }", elem.Expr, e.valueHash(*elem, "v"))
}

// wrapperMethods delegates to the embedded wrapper, which already has
// fixed single-value semantics; the seed still separates nominal
// wrapper types from each other.
func (e *emitter) wrapperMethods(t *decl.Type) {
	r := e.recv
	e.printf("// Equal reports whether both values wrap the same underlying value.\n")
	e.printf("func (%s %s) Equal(other %s) bool {\n", r, t.Name, t.Name)
	e.printf("\treturn %s.Wrapper.Equal(other.Wrapper)\n}\n\n", r)

	e.printf("// EqualObject reports contract equality against an arbitrary value.\n")
	e.printf("// Values of any other type are never equal.\n")
	e.printf("func (%s %s) EqualObject(other any) bool {\n", r, t.Name)
	e.printf("\to, ok := other.(%s)\n\tif !ok {\n\t\treturn false\n\t}\n", t.Name)
	e.printf("\treturn %s.Equal(o)\n}\n\n", r)

	e.printf("// Hash returns a hash consistent with Equal.\n")
	e.printf("func (%s %s) Hash() uint64 {\n", r, t.Name)
	e.printf("\treturn %s(%s(%q), %s.Wrapper.Hash())\n}\n\n",
		e.runtime("Fold"), e.runtime("Seed"), t.PkgPath+"."+t.Name, r)
}

// ReceiverName derives a short receiver from the type name, the way a
// maintainer would write it by hand.
func ReceiverName(typeName string) string {
	first, _ := utf8.DecodeRuneInString(typeName)
	if first == utf8.RuneError || !unicode.IsLetter(first) {
		return "v"
	}
	name := string(unicode.ToLower(first))
	switch name {
	case "o", "h": // collide with locals of the generated methods
		return "v"
	}
	return name
}

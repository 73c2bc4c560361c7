package enumgen

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"eqgen/internal/synth"
)

// Emit renders the lookup tables and accessors for a validated
// enumeration. Constants appear in declaration order everywhere, so
// the output is stable across runs.
func Emit(e *Enum) synth.Chunk {
	t := e.Type.Name
	table := tablePrefix(t)
	var b strings.Builder

	fmt.Fprintf(&b, "// %sAll returns every named %s constant in declaration order.\n", t, t)
	fmt.Fprintf(&b, "func %sAll() []%s {\n\treturn []%s{", t, t, t)
	for i, c := range e.Constants {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.VarName)
	}
	b.WriteString("}\n}\n\n")

	fmt.Fprintf(&b, "var %sByValue = map[int]%s{\n", table, t)
	for _, c := range e.Constants {
		fmt.Fprintf(&b, "\t%d: %s,\n", c.Value, c.VarName)
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "var %sByName = map[string]%s{\n", table, t)
	for _, c := range e.Constants {
		fmt.Fprintf(&b, "\t%q: %s,\n", c.Name, c.VarName)
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "// Try%sFromValue looks up a constant by value.\n", t)
	fmt.Fprintf(&b, "func Try%sFromValue(v int) (%s, bool) {\n", t, t)
	fmt.Fprintf(&b, "\tc, ok := %sByValue[v]\n\treturn c, ok\n}\n\n", table)

	fmt.Fprintf(&b, "// %sFromValue looks up a constant by value and reports unknown\n// values as errors.\n", t)
	fmt.Fprintf(&b, "func %sFromValue(v int) (%s, error) {\n", t, t)
	fmt.Fprintf(&b, "\tc, ok := %sByValue[v]\n\tif !ok {\n", table)
	fmt.Fprintf(&b, "\t\treturn %s{}, fmt.Errorf(\"unknown %s value %%d\", v)\n\t}\n\treturn c, nil\n}\n\n", t, t)

	fmt.Fprintf(&b, "// Try%sFromName looks up a constant by name.\n", t)
	fmt.Fprintf(&b, "func Try%sFromName(name string) (%s, bool) {\n", t, t)
	fmt.Fprintf(&b, "\tc, ok := %sByName[name]\n\treturn c, ok\n}\n\n", table)

	fmt.Fprintf(&b, "// %sFromName looks up a constant by name and reports unknown\n// names as errors.\n", t)
	fmt.Fprintf(&b, "func %sFromName(name string) (%s, error) {\n", t, t)
	fmt.Fprintf(&b, "\tc, ok := %sByName[name]\n\tif !ok {\n", table)
	fmt.Fprintf(&b, "\t\treturn %s{}, fmt.Errorf(\"unknown %s name %%q\", name)\n\t}\n\treturn c, nil\n}\n\n", t, t)

	if e.NameField != "" {
		recv := synth.ReceiverName(t)
		fmt.Fprintf(&b, "// String returns the constant name.\n")
		fmt.Fprintf(&b, "func (%s %s) String() string {\n\treturn %s.%s\n}\n\n", recv, t, recv, e.NameField)
	}

	return synth.Chunk{
		TypeName: t,
		Source:   b.String(),
		Imports:  []string{"fmt"},
	}
}

// tablePrefix lowercases the leading rune so the map tables stay
// unexported even for exported types.
func tablePrefix(typeName string) string {
	first, size := utf8.DecodeRuneInString(typeName)
	if first == utf8.RuneError {
		return typeName
	}
	return string(unicode.ToLower(first)) + typeName[size:]
}

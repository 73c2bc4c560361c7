package marker

import (
	"strconv"

	"eqgen/internal/source"
)

// Attr is one parsed eq: marker: its name, raw parameters and the span
// of the comment line that declared it.
type Attr struct {
	Name   string
	Params map[string]string
	Span   source.Span
}

// Has reports whether the parameter was written explicitly.
func (a Attr) Has(key string) bool {
	_, ok := a.Params[key]
	return ok
}

// Int returns the parameter as an int, or def when absent.
// Parse errors are caught earlier by ParseLine against the catalog.
func (a Attr) Int(key string, def int) int {
	raw, ok := a.Params[key]
	if !ok {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// Bool returns the parameter as a bool, or def when absent. A bare
// key with no value reads as true.
func (a Attr) Bool(key string, def bool) bool {
	raw, ok := a.Params[key]
	if !ok {
		return def
	}
	if raw == "" {
		return true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

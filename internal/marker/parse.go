package marker

import (
	"fmt"
	"strconv"
	"strings"

	"eqgen/internal/diag"
	"eqgen/internal/source"
)

// Prefix is the default marker prefix inside comments.
const Prefix = "eq:"

// CatalogVersion participates in cache keys; bump it whenever the
// marker grammar or the registry changes meaning.
const CatalogVersion = 1

// ParseLine parses one comment line that may carry a marker. The text
// is the comment body without the leading "//"; span covers the body.
// ok=false means the line carries no usable marker. Misplaced markers
// (a strategy on a type, contract on a field) still parse; placement
// is the classifier's business, which checks the catalog's target
// masks.
func ParseLine(text string, span source.Span, r diag.Reporter) (Attr, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, Prefix) {
		return Attr{}, false
	}
	body := strings.TrimPrefix(trimmed, Prefix)
	fields := strings.Fields(body)
	if len(fields) == 0 {
		diag.ReportWarning(r, diag.ContractUnknownMarker, span, "empty eq: marker").Emit()
		return Attr{}, false
	}

	name := fields[0]
	spec, known := Lookup(name)
	if !known {
		diag.ReportWarning(r, diag.ContractUnknownMarker, span,
			fmt.Sprintf("unknown marker %q", Prefix+name)).Emit()
		return Attr{}, false
	}
	return Attr{Name: name, Params: parseParams(fields[1:], spec, span, r), Span: span}, true
}

func parseParams(fields []string, spec Spec, span source.Span, r diag.Reporter) map[string]string {
	if len(fields) == 0 {
		return nil
	}
	params := make(map[string]string, len(fields))
	for _, f := range fields {
		key, value, hasValue := strings.Cut(f, "=")
		kind, ok := spec.Params[key]
		if !ok {
			diag.ReportError(r, diag.ContractInvalidMarkerParam, span,
				fmt.Sprintf("marker %q does not accept parameter %q", Prefix+spec.Name, key)).Emit()
			continue
		}
		if !hasValue {
			if kind != ParamBool {
				diag.ReportError(r, diag.ContractInvalidMarkerParam, span,
					fmt.Sprintf("parameter %q requires a value", key)).Emit()
				continue
			}
			params[key] = "true"
			continue
		}
		switch kind {
		case ParamInt:
			if _, err := strconv.Atoi(value); err != nil {
				diag.ReportError(r, diag.ContractInvalidMarkerParam, span,
					fmt.Sprintf("parameter %q wants an integer, got %q", key, value)).Emit()
				continue
			}
		case ParamBool:
			if _, err := strconv.ParseBool(value); err != nil {
				diag.ReportError(r, diag.ContractInvalidMarkerParam, span,
					fmt.Sprintf("parameter %q wants a bool, got %q", key, value)).Emit()
				continue
			}
		}
		params[key] = value
	}
	if len(params) == 0 {
		return nil
	}
	return params
}

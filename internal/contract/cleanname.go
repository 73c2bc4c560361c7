package contract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CleanName derives the companion-function suffix from a member name:
// strip one leading "_" or "m_" marker, then uppercase the first
// remaining character. When cleaning yields an empty or digit-leading
// result the original name is used unmodified. This is the single
// source of truth for the naming contract; the validator, the
// synthesizer and the repair layer all go through it.
func CleanName(name string) string {
	trimmed := name
	if rest, ok := strings.CutPrefix(name, "m_"); ok {
		trimmed = rest
	} else if rest, ok := strings.CutPrefix(name, "_"); ok {
		trimmed = rest
	}

	r, size := utf8.DecodeRuneInString(trimmed)
	if trimmed == "" || r == utf8.RuneError || unicode.IsDigit(r) {
		return name
	}
	return string(unicode.ToUpper(r)) + trimmed[size:]
}

// EqualsName is the companion equality function for a member.
func EqualsName(member string) string {
	return "Equals_" + CleanName(member)
}

// HashName is the companion hash function for a member.
func HashName(member string) string {
	return "GetHashCode_" + CleanName(member)
}

// SetterName is the conventional setter whose presence makes a member
// mutable-property.
func SetterName(member string) string {
	return "Set" + CleanName(member)
}

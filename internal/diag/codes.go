package diag

import "fmt"

// Code is a stable diagnostic identifier. Codes are partitioned into
// numeric families: 1000-1999 equality-contract rules, 2000-2999
// enumeration rules, 4000-4999 loader and output I/O. The numeric
// value and the ID() rendering are part of the tool's external
// interface and must never be reassigned.
type Code uint16

const (
	UnknownCode Code = 0

	// Equality-contract family.
	ContractInfo                Code = 1000
	ContractNotExtensible       Code = 1001 // marker on an alias or non-struct type
	ContractMissingStrategy     Code = 1002
	ContractMultipleStrategies  Code = 1003
	ContractMissingEquals       Code = 1004 // companion Equals_<Suffix> not found
	ContractMissingHash         Code = 1005 // companion GetHashCode_<Suffix> not found
	ContractSequenceMisuse      Code = 1006 // eq:sequence on a non-sequence or string member
	ContractStrategyOutside     Code = 1007 // strategy marker on a member of an unmarked type
	ContractWithoutBaseShape    Code = 1008 // host does not embed eq.ValueObject
	ContractAmbiguousCompanions Code = 1009 // two members clean to the same suffix
	ContractMutableProperty     Code = 1010 // participating member has a setter
	ContractMutableField        Code = 1011 // participating field is exported
	ContractExtraWrapperMember  Code = 1012
	ContractDuplicateOrder      Code = 1013
	ContractUnnecessaryMarker   Code = 1014 // eq:contract on a wrapper shape
	ContractUnsupportedMember   Code = 1015 // strategy marker on a method or embedded base
	ContractUnknownMarker       Code = 1016
	ContractInvalidMarkerParam  Code = 1017

	// Enumeration family.
	EnumInfo           Code = 2000
	EnumDuplicateValue Code = 2001
	EnumDuplicateName  Code = 2002
	EnumNotExtensible  Code = 2003
	EnumNoEntries      Code = 2004

	// Loader / output.
	IOLoadFileError    Code = 4001
	IOWriteError       Code = 4002
	IOPackageLoadError Code = 4003
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown diagnostic",

	ContractInfo:                "Equality contract information",
	ContractNotExtensible:       "declaration cannot receive generated methods",
	ContractMissingStrategy:     "member has no equality strategy",
	ContractMultipleStrategies:  "member has more than one equality strategy",
	ContractMissingEquals:       "companion equality function not found",
	ContractMissingHash:         "companion hash function not found",
	ContractSequenceMisuse:      "sequence strategy on a non-sequence member",
	ContractStrategyOutside:     "strategy marker outside an equality contract",
	ContractWithoutBaseShape:    "contract type does not embed the value-object base",
	ContractAmbiguousCompanions: "two members resolve to the same companion suffix",
	ContractMutableProperty:     "participating member has a setter",
	ContractMutableField:        "participating field is exported",
	ContractExtraWrapperMember:  "wrapper type declares an extra participating member",
	ContractDuplicateOrder:      "members share the same explicit order",
	ContractUnnecessaryMarker:   "contract marker on a wrapper with built-in equality",
	ContractUnsupportedMember:   "strategy marker on an unsupported member",
	ContractUnknownMarker:       "unknown eq: marker",
	ContractInvalidMarkerParam:  "invalid eq: marker parameter",

	EnumInfo:           "Enumeration information",
	EnumDuplicateValue: "duplicate enumeration value",
	EnumDuplicateName:  "duplicate enumeration name",
	EnumNotExtensible:  "enumeration declaration cannot receive generated tables",
	EnumNoEntries:      "enumeration has no literal constants",

	IOLoadFileError:    "I/O load file error",
	IOWriteError:       "I/O write error",
	IOPackageLoadError: "package load error",
}

// ID renders the stable external identifier, e.g. CON1002 or ENM2001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("CON%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("ENM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

// Title returns the short human description for the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

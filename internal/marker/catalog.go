package marker

// TargetMask describes the declaration slots a marker may be applied to.
type TargetMask uint8

const (
	TargetNone TargetMask = 0
	// TargetType covers struct type declarations.
	TargetType TargetMask = 1 << iota
	// TargetField covers stored struct fields.
	TargetField
	// TargetFunc covers methods and functions; no marker allows it, the
	// bit exists so misplaced markers can be diagnosed precisely.
	TargetFunc
)

// ParamKind is the declared type of a marker parameter.
type ParamKind uint8

const (
	ParamInt ParamKind = iota
	ParamBool
)

// Spec describes one marker: where it may appear and which parameters
// it accepts. The collection is closed; anything outside it is an
// unknown-marker diagnostic.
type Spec struct {
	Name    string
	Targets TargetMask
	Params  map[string]ParamKind
	// Strategy is true for the four per-member equality strategies.
	Strategy bool
}

// Allows reports whether the marker can be applied to the target bit.
func (s Spec) Allows(target TargetMask) bool {
	return s.Targets&target != 0
}

var registry = map[string]Spec{
	"contract": {Name: "contract", Targets: TargetType},
	"enum":     {Name: "enum", Targets: TargetType},
	"include":  {Name: "include", Targets: TargetField, Strategy: true, Params: map[string]ParamKind{"order": ParamInt}},
	"ignore":   {Name: "ignore", Targets: TargetField, Strategy: true},
	"sequence": {Name: "sequence", Targets: TargetField, Strategy: true, Params: map[string]ParamKind{
		"order":   ParamInt,
		"ordered": ParamBool,
		"deep":    ParamBool,
	}},
	"custom": {Name: "custom", Targets: TargetField, Strategy: true, Params: map[string]ParamKind{"order": ParamInt}},
}

// Lookup returns the spec for a marker name.
func Lookup(name string) (Spec, bool) {
	spec, ok := registry[name]
	return spec, ok
}

// IsStrategy reports whether name is one of the four equality
// strategies.
func IsStrategy(name string) bool {
	spec, ok := registry[name]
	return ok && spec.Strategy
}

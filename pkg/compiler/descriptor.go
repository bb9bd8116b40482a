package compiler

// Descriptor is the declarative metadata attached to a generated view.
type Descriptor struct {
	// TargetNamespace, when set, overrides the compiler's namespace option.
	TargetNamespace string
	// Templates are the template identifiers the view was built from.
	Templates []string
	// Accessors become constant-returning methods on the view.
	Accessors []Accessor
}

// Accessor declares a method Name() Type { return Value }. Value is a Go
// expression.
type Accessor struct {
	Name  string
	Type  string
	Value string
}

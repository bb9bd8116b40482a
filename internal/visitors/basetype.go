package visitors

import "github.com/goliatone/go-viewgen/pkg/chunk"

// BaseTypeVisitor resolves the type the generated view embeds. The last
// ExtendsBase declaration seen wins; Default applies when there is none.
type BaseTypeVisitor struct {
	Default  string
	declared []string
}

// Accept walks list for base type declarations.
func (v *BaseTypeVisitor) Accept(list chunk.List) {
	chunk.Walk(list, func(c chunk.Chunk) bool {
		switch node := c.(type) {
		case chunk.ExtendsBase:
			if node.TypeName != "" {
				v.declared = append(v.declared, node.TypeName)
			}
		default:
		}
		return true
	})
}

// TypeName returns the resolved base type.
func (v *BaseTypeVisitor) TypeName() string {
	if len(v.declared) == 0 {
		return v.Default
	}
	return v.declared[len(v.declared)-1]
}

// Declarations returns every declaration seen, in order.
func (v *BaseTypeVisitor) Declarations() []string {
	return append([]string(nil), v.declared...)
}

// Conflicting reports whether two different base types were declared.
func (v *BaseTypeVisitor) Conflicting() bool {
	for _, name := range v.declared {
		if name != v.declared[0] {
			return true
		}
	}
	return false
}

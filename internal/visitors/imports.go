package visitors

import (
	"strconv"

	"github.com/goliatone/go-viewgen/pkg/chunk"
)

// Import is one requested package import.
type Import struct {
	Path  string
	Alias string
}

// String renders the import spec as it appears after the import keyword.
func (i Import) String() string {
	if i.Alias == "" {
		return strconv.Quote(i.Path)
	}
	return i.Alias + " " + strconv.Quote(i.Path)
}

// ImportVisitor collects imports: the caller's explicit requests first, then
// every UseNamespace/UseLibrary chunk in document order. Repeats are kept.
type ImportVisitor struct {
	imports []Import
}

// UseNamespace records an explicit package import.
func (v *ImportVisitor) UseNamespace(path string) {
	if path == "" {
		return
	}
	v.imports = append(v.imports, Import{Path: path})
}

// UseLibrary records an explicit side-effect import.
func (v *ImportVisitor) UseLibrary(path string) {
	if path == "" {
		return
	}
	v.imports = append(v.imports, Import{Path: path, Alias: "_"})
}

// Accept walks list for import declarations.
func (v *ImportVisitor) Accept(list chunk.List) {
	chunk.Walk(list, func(c chunk.Chunk) bool {
		switch node := c.(type) {
		case chunk.UseNamespace:
			v.imports = append(v.imports, Import{Path: node.Namespace, Alias: node.Alias})
		case chunk.UseLibrary:
			v.imports = append(v.imports, Import{Path: node.Library, Alias: "_"})
		default:
		}
		return true
	})
}

// Imports returns the collected imports in order.
func (v *ImportVisitor) Imports() []Import {
	out := make([]Import, len(v.imports))
	copy(out, v.imports)
	return out
}

package viewgen

import (
	"io/fs"

	"github.com/goliatone/go-viewgen/pkg/compiler"
)

// EmbeddedTemplates exposes the unit skeleton template generated views are
// rendered from, so callers can inspect it without importing the compiler
// package directly.
func EmbeddedTemplates() fs.FS {
	return compiler.TemplatesFS()
}

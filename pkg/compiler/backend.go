package compiler

import (
	"context"

	"github.com/goliatone/go-viewgen/pkg/view"
)

// Backend compiles generated source into a loadable module.
type Backend interface {
	// Compile builds source. Failures are reported as *CompilationError.
	Compile(ctx context.Context, debug bool, source string) (Module, error)
}

// Module is a compiled unit from which view factories are resolved by their
// fully-qualified name.
type Module interface {
	Lookup(fullName string) (view.Factory, error)
}

// BackendFunc adapts a function to the Backend interface.
type BackendFunc func(ctx context.Context, debug bool, source string) (Module, error)

// Compile calls f.
func (f BackendFunc) Compile(ctx context.Context, debug bool, source string) (Module, error) {
	return f(ctx, debug, source)
}

package viewgen

import (
	"context"

	"github.com/goliatone/go-viewgen/pkg/backend/precompiled"
	"github.com/goliatone/go-viewgen/pkg/compiler"
)

// Request aliases compiler.Request for callers using the root package.
type Request = compiler.Request

// Descriptor aliases compiler.Descriptor.
type Descriptor = compiler.Descriptor

// Accessor aliases compiler.Accessor.
type Accessor = compiler.Accessor

// Unit aliases compiler.Unit.
type Unit = compiler.Unit

// Result aliases compiler.Result.
type Result = compiler.Result

// NewCompiler exposes the compiler constructor from the top-level module.
func NewCompiler(options ...compiler.Option) *compiler.Compiler {
	return compiler.New(options...)
}

// Generate assembles the Go source of a view without compiling it. It is the
// entry point for ahead-of-time generation.
func Generate(ctx context.Context, req Request, options ...compiler.Option) (Unit, error) {
	return compiler.New(options...).Generate(ctx, req)
}

// Compile generates a view and resolves its factory. Without a WithBackend
// option the precompiled backend is used, so the view must already be linked
// into the binary.
func Compile(ctx context.Context, req Request, options ...compiler.Option) (*Result, error) {
	options = append([]compiler.Option{compiler.WithBackend(precompiled.New())}, options...)
	return compiler.New(options...).Compile(ctx, req)
}

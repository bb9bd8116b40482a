// Package precompiled resolves views that were generated ahead of time and
// linked into the binary. Generated units register themselves with a
// view.Registry from init, so compiling here only checks the source and
// resolves the name.
package precompiled

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-viewgen/pkg/compiler"
	"github.com/goliatone/go-viewgen/pkg/view"
)

// ErrViewNotFound reports a unit whose view is not linked into the binary.
var ErrViewNotFound = errors.New("precompiled: view not linked into binary")

// Option customises the backend.
type Option func(*Backend)

// WithRegistry resolves views from registry instead of the default one.
func WithRegistry(registry *view.Registry) Option {
	return func(b *Backend) {
		if registry != nil {
			b.registry = registry
		}
	}
}

// Backend implements compiler.Backend over a view.Registry.
type Backend struct {
	registry *view.Registry
}

var _ compiler.Backend = (*Backend)(nil)

// New constructs a Backend applying any provided options.
func New(options ...Option) *Backend {
	b := &Backend{registry: view.Default()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// Compile syntax-checks source. The debug flag has no effect on views that
// are already compiled.
func (b *Backend) Compile(ctx context.Context, _ bool, source string) (compiler.Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := compiler.CheckSyntax(source); err != nil {
		return nil, err
	}
	return module{registry: b.registry}, nil
}

type module struct {
	registry *view.Registry
}

func (m module) Lookup(fullName string) (view.Factory, error) {
	entry, err := m.registry.Get(fullName)
	if err != nil {
		if errors.Is(err, view.ErrNotRegistered) {
			return nil, fmt.Errorf("%w: %s", ErrViewNotFound, fullName)
		}
		return nil, err
	}
	return entry.New, nil
}

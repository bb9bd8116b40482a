package compiler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-viewgen/internal/logging"
	"github.com/goliatone/go-viewgen/pkg/chunk"
	"github.com/goliatone/go-viewgen/pkg/view"
)

// DefaultBaseType is the type generated views embed unless a resource or
// WithBaseType says otherwise.
const DefaultBaseType = "view.Base"

// Option customises the compiler configuration.
type Option func(*Compiler)

// WithBaseType sets the base type used when no resource declares one.
func WithBaseType(typeName string) Option {
	return func(c *Compiler) {
		if trimmed := strings.TrimSpace(typeName); trimmed != "" {
			c.baseType = trimmed
		}
	}
}

// WithNamespace places generated views in the package at importPath. An
// empty namespace generates package main.
func WithNamespace(importPath string) Option {
	return func(c *Compiler) {
		c.namespace = strings.Trim(strings.TrimSpace(importPath), "/")
	}
}

// WithImports adds packages every generated view imports, ahead of the
// imports declared by resources.
func WithImports(paths ...string) Option {
	return func(c *Compiler) {
		c.imports = append(c.imports, paths...)
	}
}

// WithLibraries adds packages every generated view imports for their side
// effects only.
func WithLibraries(paths ...string) Option {
	return func(c *Compiler) {
		c.libraries = append(c.libraries, paths...)
	}
}

// WithDebug forwards the debug flag to the backend on every Compile.
func WithDebug(debug bool) Option {
	return func(c *Compiler) {
		c.debug = debug
	}
}

// WithBackend injects the backend Compile builds units with.
func WithBackend(backend Backend) Option {
	return func(c *Compiler) {
		c.backend = backend
	}
}

// WithLogger sets the logger. Without it the logger is taken from the
// request context.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithIDGenerator replaces the random identity source.
func WithIDGenerator(next func() view.ID) Option {
	return func(c *Compiler) {
		if next != nil {
			c.newID = next
		}
	}
}

// WithStrictBaseType makes two distinct base type declarations an error
// instead of letting the last one win.
func WithStrictBaseType(strict bool) Option {
	return func(c *Compiler) {
		c.strictBaseType = strict
	}
}

// Compiler generates view units and compiles them through a Backend. It holds
// only immutable configuration and is safe for concurrent use.
type Compiler struct {
	baseType       string
	namespace      string
	imports        []string
	libraries      []string
	debug          bool
	backend        Backend
	logger         *slog.Logger
	newID          func() view.ID
	strictBaseType bool
}

// New constructs a Compiler applying any provided options.
func New(options ...Option) *Compiler {
	c := &Compiler{
		baseType: DefaultBaseType,
		newID:    uuid.New,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Request describes the chunk trees a view is generated from.
type Request struct {
	// Templates are the template levels, innermost first and outermost
	// layout last. At least one is required.
	Templates []chunk.List

	// Resources contribute imports, the base type, globals, accessors and
	// macros. Order matters: the last base type declaration wins.
	Resources []chunk.List

	// Descriptor is optional metadata baked into the view.
	Descriptor *Descriptor

	// ViewID reuses an identity. A fresh one is generated when zero.
	ViewID view.ID
}

// Result is a compiled view.
type Result struct {
	Unit Unit
	New  view.Factory
}

// Generate assembles the compilation unit for req without compiling it.
func (c *Compiler) Generate(ctx context.Context, req Request) (Unit, error) {
	if ctx == nil {
		return Unit{}, errors.New("compiler: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Unit{}, err
	}
	if len(req.Templates) == 0 {
		return Unit{}, ErrNoTemplates
	}

	id := req.ViewID
	if id == uuid.Nil {
		id = c.newID()
	}

	logger := c.loggerFor(ctx)
	unit, err := c.assemble(logger.With("view", ShortName(id)), req, id)
	if err != nil {
		return Unit{}, err
	}
	logger.DebugContext(ctx, "view generated",
		"name", unit.FullName,
		"base", unit.BaseType,
		"levels", unit.Levels,
	)
	return unit, nil
}

// Compile generates the unit for req, builds it with the configured backend
// and resolves the view factory. Backend failures are returned unchanged.
func (c *Compiler) Compile(ctx context.Context, req Request) (*Result, error) {
	if c.backend == nil {
		return nil, ErrNoBackend
	}

	unit, err := c.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	logger := c.loggerFor(ctx)
	logger.DebugContext(ctx, "compiling view", "name", unit.FullName, "debug", c.debug)
	module, err := c.backend.Compile(ctx, c.debug, unit.Source)
	if err != nil {
		return nil, err
	}

	factory, err := module.Lookup(unit.FullName)
	if err != nil {
		return nil, fmt.Errorf("compiler: resolve %s: %w", unit.FullName, err)
	}
	return &Result{Unit: unit, New: factory}, nil
}

func (c *Compiler) loggerFor(ctx context.Context) *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return logging.FromContext(ctx)
}

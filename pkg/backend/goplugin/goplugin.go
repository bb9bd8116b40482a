// Package goplugin compiles generated units with the Go toolchain as plugins
// and loads them into the running process. The unit's init function
// registers its view with view.Default, which is where Lookup resolves it.
//
// The host binary and the plugin must be built from the same module sources,
// so the plugin's temporary module replaces the host module with ModuleDir.
package goplugin

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/goliatone/go-viewgen/internal/logging"
	"github.com/goliatone/go-viewgen/pkg/compiler"
	"github.com/goliatone/go-viewgen/pkg/view"
)

const defaultCacheSize = 64

// ErrAlreadyRegistered reports a unit whose view name is already registered
// by a different build. Loading it would panic inside the unit's init.
var ErrAlreadyRegistered = errors.New("goplugin: view already registered by another build")

// Option customises the backend.
type Option func(*Backend)

// WithModuleDir sets the directory holding the host module's go.mod. By
// default the nearest go.mod above the working directory is used.
func WithModuleDir(dir string) Option {
	return func(b *Backend) {
		b.moduleDir = dir
	}
}

// WithGoBinary overrides the go command used to build plugins.
func WithGoBinary(path string) Option {
	return func(b *Backend) {
		if path != "" {
			b.goBinary = path
		}
	}
}

// WithWorkDir sets where temporary build modules are created.
func WithWorkDir(dir string) Option {
	return func(b *Backend) {
		b.workDir = dir
	}
}

// WithCacheSize bounds how many compiled modules are kept.
func WithCacheSize(size int) Option {
	return func(b *Backend) {
		if size > 0 {
			b.cacheSize = size
		}
	}
}

// WithLogger sets the logger used for build events.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Backend) {
		b.logger = logger
	}
}

// Backend implements compiler.Backend by building plugins.
type Backend struct {
	moduleDir string
	goBinary  string
	workDir   string
	cacheSize int
	logger    *slog.Logger
	registry  *view.Registry

	mu     sync.Mutex
	cache  *lru.Cache[string, *module]
	loaded map[string]string // view name -> cache key of the build that registered it
}

var _ compiler.Backend = (*Backend)(nil)

// New constructs a Backend applying any provided options.
func New(options ...Option) (*Backend, error) {
	b := &Backend{
		goBinary:  "go",
		cacheSize: defaultCacheSize,
		logger:    logging.Discard(),
		registry:  view.Default(),
		loaded:    make(map[string]string),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}

	if b.moduleDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("goplugin: working directory: %w", err)
		}
		root, err := findModuleRoot(wd)
		if err != nil {
			return nil, err
		}
		b.moduleDir = root
	}
	abs, err := filepath.Abs(b.moduleDir)
	if err != nil {
		return nil, fmt.Errorf("goplugin: module dir: %w", err)
	}
	b.moduleDir = abs

	cache, err := lru.New[string, *module](b.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("goplugin: cache: %w", err)
	}
	b.cache = cache
	return b, nil
}

// Compile builds source as a plugin and loads it. Identical (debug, source)
// pairs are served from the cache. Builds are serialized.
func (b *Backend) Compile(ctx context.Context, debug bool, source string) (compiler.Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := compiler.CheckSyntax(source); err != nil {
		return nil, err
	}
	pkg, err := packageOf(source)
	if err != nil {
		return nil, err
	}

	key := cacheKey(debug, source)

	b.mu.Lock()
	defer b.mu.Unlock()

	if m, ok := b.cache.Get(key); ok {
		b.logger.DebugContext(ctx, "plugin cache hit", "key", key[:12])
		return m, nil
	}

	names := registeredNames(source)
	for _, name := range names {
		if !b.registry.Has(name) {
			continue
		}
		if b.loaded[name] != key {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
		}
		// evicted from the cache but still loaded in the process
		m := &module{registry: b.registry, path: modulePath(key)}
		b.cache.Add(key, m)
		return m, nil
	}

	m, err := b.build(ctx, buildSpec{key: key, debug: debug, pkg: pkg, source: source})
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		b.loaded[name] = key
	}
	b.cache.Add(key, m)
	return m, nil
}

type module struct {
	registry *view.Registry
	path     string
}

func (m *module) Lookup(fullName string) (view.Factory, error) {
	entry, err := m.registry.Get(fullName)
	if err != nil {
		return nil, fmt.Errorf("goplugin: %s did not register %s: %w", m.path, fullName, err)
	}
	return entry.New, nil
}

func cacheKey(debug bool, source string) string {
	h := sha256.New()
	if debug {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	h.Write([]byte(source))
	return hex.EncodeToString(h.Sum(nil))
}

func modulePath(key string) string {
	return "viewgen_unit_" + key[:16]
}

// registeredNames returns the names of the view.Entry literals in source.
func registeredNames(source string) []string {
	file, err := parser.ParseFile(token.NewFileSet(), compiler.UnitFileName, source, parser.SkipObjectResolution)
	if err != nil {
		return nil
	}

	var names []string
	ast.Inspect(file, func(n ast.Node) bool {
		lit, ok := n.(*ast.CompositeLit)
		if !ok || !isViewEntry(lit.Type) {
			return true
		}
		for _, elt := range lit.Elts {
			kv, ok := elt.(*ast.KeyValueExpr)
			if !ok {
				continue
			}
			key, ok := kv.Key.(*ast.Ident)
			if !ok || key.Name != "Name" {
				continue
			}
			value, ok := kv.Value.(*ast.BasicLit)
			if !ok || value.Kind != token.STRING {
				continue
			}
			if name, err := strconv.Unquote(value.Value); err == nil {
				names = append(names, name)
			}
		}
		return true
	})
	return names
}

func isViewEntry(expr ast.Expr) bool {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Entry" {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && pkg.Name == "view"
}

func packageOf(source string) (string, error) {
	file, err := parser.ParseFile(token.NewFileSet(), compiler.UnitFileName, source, parser.PackageClauseOnly)
	if err != nil {
		return "", fmt.Errorf("goplugin: package clause: %w", err)
	}
	return file.Name.Name, nil
}

// findModuleRoot walks up from dir to the first directory holding go.mod.
func findModuleRoot(dir string) (string, error) {
	for {
		if info, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("goplugin: no go.mod found; set WithModuleDir")
		}
		dir = parent
	}
}

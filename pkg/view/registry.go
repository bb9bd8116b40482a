package view

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotRegistered reports a lookup for a name no view was registered under.
var ErrNotRegistered = errors.New("view: not registered")

// Entry binds a fully-qualified view name to its factory.
type Entry struct {
	Name       string
	New        Factory
	Descriptor *Descriptor
}

// Registry stores view factories by fully-qualified name. Generated views
// register themselves with the default registry from their init function.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Entry),
	}
}

// Register adds an entry. Duplicate names return an error.
func (r *Registry) Register(entry Entry) error {
	if entry.Name == "" {
		return fmt.Errorf("view: entry name is required")
	}
	if entry.New == nil {
		return fmt.Errorf("view: entry %q factory is required", entry.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[entry.Name]; exists {
		return fmt.Errorf("view: %q already registered", entry.Name)
	}
	r.entries[entry.Name] = entry
	return nil
}

// MustRegister panics on registration failure. Generated init functions use it.
func (r *Registry) MustRegister(entry Entry) {
	if err := r.Register(entry); err != nil {
		panic(err)
	}
}

// Get retrieves an entry by name.
func (r *Registry) Get(name string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	return entry, nil
}

// List returns a sorted list of registered names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a view is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[name]
	return ok
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry generated views register with.
func Default() *Registry {
	return defaultRegistry
}

// MustRegister registers entry with the default registry.
func MustRegister(entry Entry) {
	defaultRegistry.MustRegister(entry)
}

package view

import (
	"io"

	"github.com/google/uuid"
)

// ContentSlot names the slot through which an inner level's captured output
// reaches the next outer level.
const ContentSlot = "view"

// ID is the 128-bit identity baked into every generated view.
type ID = uuid.UUID

// View is the contract satisfied by every generated view type.
type View interface {
	// GeneratedViewID returns the identity assigned when the view was compiled.
	GeneratedViewID() ID
	// SetViewData replaces the data accessors read from.
	SetViewData(data map[string]any)
	// RenderView renders every template level and writes the composed result
	// to w.
	RenderView(w io.Writer) error
}

// Factory constructs a fresh view instance. Views are not safe for concurrent
// renders, so callers create one per render.
type Factory func() View

// Descriptor is the declarative metadata a generated view carries about its
// origin.
type Descriptor struct {
	TargetNamespace string
	Templates       []string
}

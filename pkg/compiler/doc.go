// Package compiler turns chunk trees into a Go compilation unit for a view
// and hands it to a Backend to obtain a view factory.
//
// Resources contribute imports, the embedded base type, globals, accessors
// and macros; template levels (innermost first) each become a
// RenderViewLevel<i> method. RenderView chains the levels through the
// view.Base output-scope stack so every inner level renders into a buffer
// published as the "view" content slot and only the outermost level writes to
// the caller's writer.
package compiler

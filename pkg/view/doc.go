// Package view is the runtime every generated view links against. Base
// implements the output-scope stack behind the layered render dispatcher:
// inner template levels render into pooled buffers that are published as the
// "view" content slot, and the outermost level renders straight into the
// caller's writer.
package view

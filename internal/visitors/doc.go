// Package visitors holds the read-only traversals that each project one
// concern of a compilation unit out of chunk lists: imports, the embedded base
// type, view-level globals and per-level render bodies.
//
// Every visitor switches over the closed chunk set and ignores kinds outside
// its concern, including chunk.Opaque.
package visitors

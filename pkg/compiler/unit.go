package compiler

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-viewgen/pkg/view"
)

// Unit is one generated compilation unit.
type Unit struct {
	ID view.ID
	// ShortName is "View" followed by the 32 hex digits of ID.
	ShortName string
	// FullName is ShortName qualified by Namespace; equal to ShortName when
	// the namespace is empty.
	FullName  string
	Namespace string
	// Package is the package clause of Source.
	Package  string
	BaseType string
	Levels   int
	Source   string
}

// ShortName returns the type name for id.
func ShortName(id view.ID) string {
	return "View" + hex.EncodeToString(id[:])
}

var stableNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/goliatone/go-viewgen"))

// StableID derives a name-based identity from template identifiers so
// regenerating the same templates keeps the same type name.
func StableID(identifiers ...string) view.ID {
	return uuid.NewSHA1(stableNamespace, []byte(strings.Join(identifiers, "\x00")))
}

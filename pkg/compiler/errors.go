package compiler

import (
	"errors"
	"fmt"
	"go/parser"
	"go/scanner"
	"go/token"
	"strings"

	"github.com/goliatone/go-viewgen/internal/visitors"
)

var (
	// ErrNoTemplates reports a request without template levels.
	ErrNoTemplates = errors.New("compiler: at least one template level is required")
	// ErrNoBackend reports Compile on a compiler built without a backend.
	ErrNoBackend = errors.New("compiler: no backend configured")
	// ErrConflictingBaseType reports distinct base type declarations when the
	// compiler runs with WithStrictBaseType.
	ErrConflictingBaseType = errors.New("compiler: conflicting base type declarations")
	// ErrOrphanBranch reports an elseif/else chunk without a preceding if.
	ErrOrphanBranch = visitors.ErrOrphanBranch
)

// Diagnostic is one compiler message.
type Diagnostic struct {
	File    string
	Line    int
	Column  int
	Message string
}

func (d Diagnostic) String() string {
	switch {
	case d.File == "" && d.Line == 0:
		return d.Message
	case d.Column == 0:
		return fmt.Sprintf("%s:%d: %s", d.File, d.Line, d.Message)
	default:
		return fmt.Sprintf("%s:%d:%d: %s", d.File, d.Line, d.Column, d.Message)
	}
}

// CompilationError carries the diagnostics of a failed build.
type CompilationError struct {
	Diagnostics []Diagnostic
}

func (e *CompilationError) Error() string {
	if len(e.Diagnostics) == 0 {
		return "compiler: compilation failed"
	}
	lines := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		lines[i] = d.String()
	}
	return "compiler: compilation failed:\n" + strings.Join(lines, "\n")
}

// UnitFileName is the file name diagnostics refer to for generated source.
const UnitFileName = "view.go"

// CheckSyntax parses source and returns a *CompilationError describing every
// syntax error found.
func CheckSyntax(source string) error {
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, UnitFileName, source, parser.AllErrors|parser.SkipObjectResolution)
	if err == nil {
		return nil
	}

	var list scanner.ErrorList
	if !errors.As(err, &list) {
		return &CompilationError{Diagnostics: []Diagnostic{{File: UnitFileName, Message: err.Error()}}}
	}
	diagnostics := make([]Diagnostic, 0, len(list))
	for _, e := range list {
		diagnostics = append(diagnostics, Diagnostic{
			File:    e.Pos.Filename,
			Line:    e.Pos.Line,
			Column:  e.Pos.Column,
			Message: e.Msg,
		})
	}
	return &CompilationError{Diagnostics: diagnostics}
}

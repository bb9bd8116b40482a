package compiler

import (
	"bytes"
	"embed"
	"fmt"
	"go/token"
	"io/fs"
	"log/slog"
	"path"
	"strconv"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-viewgen/internal/visitors"
	"github.com/goliatone/go-viewgen/pkg/view"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

const (
	unitTemplate = "templates/unit.go.tpl"
	runtimeIO    = "io"
	runtimeView  = "github.com/goliatone/go-viewgen/pkg/view"
)

var (
	unitTemplateOnce sync.Once
	unitTemplateTpl  *pongo2.Template
	unitTemplateErr  error
)

func loadUnitTemplate() (*pongo2.Template, error) {
	unitTemplateOnce.Do(func() {
		set := pongo2.NewSet("compiler", pongo2.NewFSLoader(templatesFS))
		unitTemplateTpl, unitTemplateErr = set.FromFile(unitTemplate)
		if unitTemplateErr != nil {
			unitTemplateErr = fmt.Errorf("compiler: load unit template: %w", unitTemplateErr)
		}
	})
	return unitTemplateTpl, unitTemplateErr
}

type unitData struct {
	Package             string
	Imports             []string
	TypeName            string
	QuotedFullName      string
	BaseType            string
	IDBytes             string
	HasDescriptor       bool
	DescriptorNamespace string
	DescriptorTemplates []string
	Accessors           []Accessor
	Fields              []string
	Initializers        []string
	Methods             []string
	Levels              []levelData
	Dispatch            []dispatchStep
}

type levelData struct {
	Method string
	Body   string
}

type dispatchStep struct {
	Method  string
	Capture bool
	Slot    string
}

func (c *Compiler) assemble(logger *slog.Logger, req Request, id view.ID) (Unit, error) {
	unit := Unit{
		ID:        id,
		ShortName: ShortName(id),
		Levels:    len(req.Templates),
	}

	// imports
	var importer visitors.ImportVisitor
	for _, p := range c.imports {
		importer.UseNamespace(p)
	}
	for _, p := range c.libraries {
		importer.UseLibrary(p)
	}
	for _, list := range req.Resources {
		importer.Accept(list)
	}
	imports := dedupeImports(logger, importer.Imports())

	// base type
	base := visitors.BaseTypeVisitor{Default: c.baseType}
	for _, list := range req.Resources {
		base.Accept(list)
	}
	if declared := base.Declarations(); len(declared) > 0 {
		if base.Conflicting() {
			if c.strictBaseType {
				return Unit{}, fmt.Errorf("%w: %s", ErrConflictingBaseType, strings.Join(declared, ", "))
			}
			logger.Debug("base type declared more than once, last wins",
				"declarations", declared,
				"base", base.TypeName(),
			)
		}
	}
	unit.BaseType = base.TypeName()

	// namespace
	unit.Namespace = c.namespace
	if req.Descriptor != nil && strings.TrimSpace(req.Descriptor.TargetNamespace) != "" {
		unit.Namespace = strings.Trim(strings.TrimSpace(req.Descriptor.TargetNamespace), "/")
	}
	if unit.Namespace == "" {
		unit.Package = "main"
		unit.FullName = unit.ShortName
	} else {
		unit.Package = packageName(unit.Namespace)
		unit.FullName = unit.Namespace + "." + unit.ShortName
	}

	data := unitData{
		Package:        unit.Package,
		Imports:        imports,
		TypeName:       unit.ShortName,
		QuotedFullName: strconv.Quote(unit.FullName),
		BaseType:       unit.BaseType,
		IDBytes:        idLiteral(id),
	}

	// descriptor
	if req.Descriptor != nil {
		data.HasDescriptor = true
		data.DescriptorNamespace = strconv.Quote(unit.Namespace)
		for _, name := range req.Descriptor.Templates {
			data.DescriptorTemplates = append(data.DescriptorTemplates, strconv.Quote(name))
		}
		data.Accessors = append(data.Accessors, req.Descriptor.Accessors...)
	}

	// globals
	globals := visitors.NewGlobalsVisitor(unit.ShortName)
	for _, list := range req.Resources {
		if err := globals.Accept(list); err != nil {
			return Unit{}, fmt.Errorf("compiler: resources: %w", err)
		}
	}
	g := globals.Globals()
	data.Fields, data.Initializers, data.Methods = g.Fields, g.Initializers, g.Methods

	// levels and dispatcher
	last := len(req.Templates) - 1
	for i, list := range req.Templates {
		body, err := (&visitors.BodyVisitor{Indent: 1}).Body(list)
		if err != nil {
			return Unit{}, fmt.Errorf("compiler: template level %d: %w", i, err)
		}
		method := fmt.Sprintf("RenderViewLevel%d", i)
		data.Levels = append(data.Levels, levelData{Method: method, Body: body})
		data.Dispatch = append(data.Dispatch, dispatchStep{
			Method:  method,
			Capture: i < last,
			Slot:    strconv.Quote(view.ContentSlot),
		})
	}

	tpl, err := loadUnitTemplate()
	if err != nil {
		return Unit{}, err
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteWriter(pongo2.Context{"unit": data}, &buf); err != nil {
		return Unit{}, fmt.Errorf("compiler: render unit: %w", err)
	}

	source, err := formatUnit(buf.Bytes())
	if err != nil {
		logger.Debug("generated unit left unformatted", "error", err)
		source = buf.Bytes()
	}
	unit.Source = string(source)
	return unit, nil
}

// dedupeImports drops exact repeats, keyed by alias and path. The same path
// under different names is legal Go and kept.
func dedupeImports(logger *slog.Logger, imports []visitors.Import) []string {
	all := append([]visitors.Import{{Path: runtimeIO}, {Path: runtimeView}}, imports...)
	seen := make(map[visitors.Import]bool, len(all))
	specs := make([]string, 0, len(all))
	for _, imp := range all {
		if seen[imp] {
			logger.Debug("dropping repeated import", "path", imp.Path, "alias", imp.Alias)
			continue
		}
		seen[imp] = true
		specs = append(specs, imp.String())
	}
	return specs
}

func idLiteral(id view.ID) string {
	parts := make([]string, len(id))
	for i, b := range id {
		parts[i] = fmt.Sprintf("0x%02x", b)
	}
	return strings.Join(parts, ", ")
}

// packageName derives a package clause from an import path: the last element,
// skipping major version suffixes and mapping characters Go identifiers
// cannot hold to underscores. Keywords get a trailing underscore.
func packageName(importPath string) string {
	name := path.Base(importPath)
	if isMajorVersion(name) {
		if parent := path.Dir(importPath); parent != "." && parent != "/" {
			name = path.Base(parent)
		}
	}
	if i := strings.LastIndex(name, ".v"); i > 0 && isMajorVersion(name[i+1:]) {
		name = name[:i]
	}
	name = strings.TrimPrefix(name, "go-")

	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z'):
			b.WriteRune(r)
		case '0' <= r && r <= '9':
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "views"
	}
	if token.IsKeyword(b.String()) {
		b.WriteRune('_')
	}
	return b.String()
}

func isMajorVersion(elem string) bool {
	if len(elem) < 2 || elem[0] != 'v' {
		return false
	}
	_, err := strconv.Atoi(elem[1:])
	return err == nil
}

// TemplatesFS exposes the embedded unit skeleton template.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return templatesFS
	}
	return sub
}

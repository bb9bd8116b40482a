package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	viewgen "github.com/goliatone/go-viewgen"
	"github.com/goliatone/go-viewgen/pkg/chunk"
	"github.com/goliatone/go-viewgen/pkg/compiler"
)

// unitFlags are the inputs every command generates a view from.
type unitFlags struct {
	templates []string
	resources []string
	namespace string
	baseType  string
	imports   []string
	libraries []string
	stableID  bool
	debug     bool
	strict    bool
}

func (f *unitFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringArrayVarP(&f.templates, "template", "t", nil, "template chunk file; repeat innermost first, outermost layout last")
	flags.StringArrayVarP(&f.resources, "resource", "r", nil, "resource chunk files (doublestar glob, relative to --dir)")
	flags.StringVar(&f.namespace, "namespace", "", "import path of the generated package (empty generates package main)")
	flags.StringVar(&f.baseType, "base-type", "", "type embedded when no resource declares one")
	flags.StringArrayVar(&f.imports, "import", nil, "package imported by the view")
	flags.StringArrayVar(&f.libraries, "library", nil, "package imported for side effects")
	flags.BoolVar(&f.stableID, "stable-id", false, "derive the view identity from the template paths")
	flags.BoolVar(&f.debug, "debug", false, "build without optimizations")
	flags.BoolVar(&f.strict, "strict-base-type", false, "fail when resources declare different base types")
}

func (a *app) request(f *unitFlags) (compiler.Request, error) {
	if len(f.templates) == 0 {
		return compiler.Request{}, errors.New("at least one --template is required")
	}

	req := compiler.Request{
		Descriptor: &compiler.Descriptor{Templates: append([]string(nil), f.templates...)},
	}
	for _, path := range f.templates {
		list, err := chunk.LoadFile(path)
		if err != nil {
			return compiler.Request{}, fmt.Errorf("failed to load template: %w", err)
		}
		req.Templates = append(req.Templates, list)
	}

	patterns := append(append([]string(nil), a.cfg.Compiler.Resources...), f.resources...)
	if len(patterns) > 0 {
		resources, err := viewgen.LoadResources(a.rootDir, patterns...)
		if err != nil {
			return compiler.Request{}, fmt.Errorf("failed to load resources: %w", err)
		}
		req.Resources = resources
	}

	if f.stableID {
		req.ViewID = compiler.StableID(f.templates...)
	}
	return req, nil
}

func (a *app) compilerOptions(f *unitFlags) []compiler.Option {
	cc := a.cfg.Compiler

	namespace := cc.Namespace
	if f.namespace != "" {
		namespace = f.namespace
	}
	baseType := cc.BaseType
	if f.baseType != "" {
		baseType = f.baseType
	}

	return []compiler.Option{
		compiler.WithNamespace(namespace),
		compiler.WithBaseType(baseType),
		compiler.WithImports(append(append([]string(nil), cc.Imports...), f.imports...)...),
		compiler.WithLibraries(append(append([]string(nil), cc.Libraries...), f.libraries...)...),
		compiler.WithDebug(cc.Debug || f.debug),
		compiler.WithStrictBaseType(cc.StrictBaseType || f.strict),
		compiler.WithLogger(a.logger),
	}
}

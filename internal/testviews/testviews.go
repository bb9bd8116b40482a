// Package testviews links a generated view into test binaries so the
// precompiled backend has something to resolve.
package testviews

//go:generate go run ../../cmd/viewgen-cli generate --namespace github.com/goliatone/go-viewgen/internal/testviews --stable-id --resource testdata/resources.yaml --template testdata/page.yaml --template testdata/layout.yaml --output home_view.go --force

import (
	"embed"
	"fmt"

	"github.com/goliatone/go-viewgen/pkg/chunk"
	"github.com/goliatone/go-viewgen/pkg/compiler"
)

// Namespace is the import path of this package.
const Namespace = "github.com/goliatone/go-viewgen/internal/testviews"

//go:embed testdata/*.yaml
var fixtures embed.FS

// HomeTemplates are the template identifiers home_view.go was generated from.
var HomeTemplates = []string{"testdata/page.yaml", "testdata/layout.yaml"}

// HomeRequest rebuilds the request home_view.go was generated from.
func HomeRequest() (compiler.Request, error) {
	resources, err := chunk.LoadFS(fixtures, "testdata/resources.yaml")
	if err != nil {
		return compiler.Request{}, fmt.Errorf("testviews: %w", err)
	}

	req := compiler.Request{
		Resources:  []chunk.List{resources},
		Descriptor: &compiler.Descriptor{Templates: HomeTemplates},
		ViewID:     compiler.StableID(HomeTemplates...),
	}
	for _, name := range HomeTemplates {
		list, err := chunk.LoadFS(fixtures, name)
		if err != nil {
			return compiler.Request{}, fmt.Errorf("testviews: %w", err)
		}
		req.Templates = append(req.Templates, list)
	}
	return req, nil
}

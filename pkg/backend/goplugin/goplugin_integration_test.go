//go:build integration

package goplugin_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-viewgen/pkg/backend/goplugin"
	"github.com/goliatone/go-viewgen/pkg/chunk"
	"github.com/goliatone/go-viewgen/pkg/compiler"
	"github.com/goliatone/go-viewgen/pkg/testsupport"
)

// Builds real plugins; run with: go test -tags integration ./pkg/backend/goplugin
func TestCompile_BuildsAndLoadsPlugin(t *testing.T) {
	backend, err := goplugin.New(goplugin.WithModuleDir(filepath.Join("..", "..", "..")))
	if err != nil {
		t.Fatalf("backend: %v", err)
	}

	c := compiler.New(
		compiler.WithBackend(backend),
		compiler.WithNamespace("example.com/pluginviews"),
	)
	req := compiler.Request{
		Resources: []chunk.List{{
			chunk.UseNamespace{Namespace: "strings"},
			chunk.AccessorDeclaration{Name: "Name", Type: "string", Key: "name", Default: `"gopher"`},
		}},
		Templates: []chunk.List{
			{chunk.Text{Value: "hi "}, chunk.Expression{Code: "strings.ToUpper(v.Name())"}},
			{chunk.Text{Value: "["}, chunk.UseContent{Name: "view"}, chunk.Text{Value: "]"}},
		},
	}

	result, err := c.Compile(context.Background(), req)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if got := testsupport.Render(t, result.New(), nil); got != "[hi GOPHER]" {
		t.Fatalf("unexpected render %q", got)
	}

	again, err := c.Compile(context.Background(), compiler.Request{
		Resources: req.Resources,
		Templates: req.Templates,
		ViewID:    result.Unit.ID,
	})
	if err != nil {
		t.Fatalf("cached compile: %v", err)
	}
	if got := testsupport.Render(t, again.New(), map[string]any{"name": "ada"}); got != "[hi ADA]" {
		t.Fatalf("unexpected render %q", got)
	}
}

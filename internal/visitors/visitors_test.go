package visitors_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-viewgen/internal/visitors"
	"github.com/goliatone/go-viewgen/pkg/chunk"
	"github.com/goliatone/go-viewgen/pkg/testsupport"
)

func TestImportVisitor_ExplicitThenDiscovered(t *testing.T) {
	var v visitors.ImportVisitor
	v.UseNamespace("fmt")
	v.UseLibrary("github.com/acme/plugins")
	v.Accept(chunk.List{
		chunk.UseNamespace{Namespace: "strings"},
		chunk.Text{Value: "ignored"},
		chunk.Scope{Body: chunk.List{
			chunk.UseNamespace{Namespace: "example.com/site/helpers", Alias: "h"},
		}},
	})
	v.Accept(chunk.List{
		chunk.UseLibrary{Library: "github.com/acme/widgets"},
		chunk.UseNamespace{Namespace: "strings"},
		chunk.Opaque{Name: "custom"},
	})

	want := []visitors.Import{
		{Path: "fmt"},
		{Path: "github.com/acme/plugins", Alias: "_"},
		{Path: "strings"},
		{Path: "example.com/site/helpers", Alias: "h"},
		{Path: "github.com/acme/widgets", Alias: "_"},
		{Path: "strings"},
	}
	if diff := cmp.Diff(want, v.Imports()); diff != "" {
		t.Fatalf("imports mismatch (-want +got):\n%s", diff)
	}

	specs := []string{`"fmt"`, `_ "github.com/acme/plugins"`, `h "example.com/site/helpers"`}
	got := []string{want[0].String(), want[1].String(), want[3].String()}
	if diff := cmp.Diff(specs, got); diff != "" {
		t.Fatalf("import specs mismatch (-want +got):\n%s", diff)
	}
}

func TestBaseTypeVisitor(t *testing.T) {
	v := visitors.BaseTypeVisitor{Default: "view.Base"}
	if v.TypeName() != "view.Base" {
		t.Fatalf("expected default, got %q", v.TypeName())
	}

	v.Accept(chunk.List{chunk.ExtendsBase{TypeName: "A"}})
	v.Accept(chunk.List{chunk.Text{Value: "x"}, chunk.ExtendsBase{TypeName: "B"}})

	if v.TypeName() != "B" {
		t.Fatalf("expected last declaration to win, got %q", v.TypeName())
	}
	if diff := cmp.Diff([]string{"A", "B"}, v.Declarations()); diff != "" {
		t.Fatalf("declarations mismatch (-want +got):\n%s", diff)
	}
	if !v.Conflicting() {
		t.Fatal("expected A and B to conflict")
	}

	same := visitors.BaseTypeVisitor{Default: "view.Base"}
	same.Accept(chunk.List{chunk.ExtendsBase{TypeName: "A"}, chunk.ExtendsBase{TypeName: "A"}})
	if same.Conflicting() {
		t.Fatal("repeating one type is not a conflict")
	}
}

func TestGlobalsVisitor(t *testing.T) {
	resources := testsupport.MustLoadChunks(t, filepath.Join("..", "..", "pkg", "chunk", "testdata", "resources.yaml"))

	v := visitors.NewGlobalsVisitor("ViewX")
	if err := v.Accept(resources); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := v.Accept(chunk.List{chunk.GlobalDeclaration{Name: "Names", Type: "[]string"}}); err != nil {
		t.Fatalf("accept: %v", err)
	}

	want := visitors.Globals{
		Fields:       []string{"Count int", "Names []string"},
		Initializers: []string{"v.Count = 3"},
		Methods: []string{
			"func (v *ViewX) Title() string {\n" +
				"\tif value, ok := v.ViewData(\"title\").(string); ok {\n" +
				"\t\treturn value\n" +
				"\t}\n" +
				"\treturn \"untitled\"\n" +
				"}",
			"func (v *ViewX) Greet(who string) string {\n" +
				"\treturn v.CaptureString(func() {\n" +
				"\t\tv.Write(\"hi \")\n" +
				"\t\tv.WriteValue(who)\n" +
				"\t})\n" +
				"}",
		},
	}
	if diff := cmp.Diff(want, v.Globals()); diff != "" {
		t.Fatalf("globals mismatch (-want +got):\n%s", diff)
	}
}

func TestGlobalsVisitor_AccessorWithoutDefault(t *testing.T) {
	v := visitors.NewGlobalsVisitor("ViewY")
	if err := v.Accept(chunk.List{chunk.AccessorDeclaration{Name: "Items", Type: "[]string"}}); err != nil {
		t.Fatalf("accept: %v", err)
	}

	want := "func (v *ViewY) Items() []string {\n" +
		"\tif value, ok := v.ViewData(\"Items\").([]string); ok {\n" +
		"\t\treturn value\n" +
		"\t}\n" +
		"\tvar zero []string\n" +
		"\treturn zero\n" +
		"}"
	got := v.Globals()
	if len(got.Methods) != 1 || got.Methods[0] != want {
		t.Fatalf("accessor mismatch (-want +got):\n%s", cmp.Diff(want, got.Methods))
	}
	if len(got.Fields) != 0 || len(got.Initializers) != 0 {
		t.Fatalf("accessors must not declare fields, got %+v", got)
	}
}

func TestGlobalsVisitor_MacroErrorsPropagate(t *testing.T) {
	v := visitors.NewGlobalsVisitor("ViewZ")
	err := v.Accept(chunk.List{chunk.Macro{Name: "Broken", Body: chunk.List{
		chunk.Conditional{Branch: chunk.BranchElse},
	}}})
	if !errors.Is(err, visitors.ErrOrphanBranch) {
		t.Fatalf("expected ErrOrphanBranch, got %v", err)
	}
}

func TestBodyVisitor_Golden(t *testing.T) {
	list := testsupport.MustLoadChunks(t, filepath.Join("testdata", "page.yaml"))

	body, err := (&visitors.BodyVisitor{Indent: 1}).Body(list)
	if err != nil {
		t.Fatalf("body: %v", err)
	}
	testsupport.AssertGolden(t, filepath.Join("testdata", "page.golden"), body)
}

func TestBodyVisitor_UseContent(t *testing.T) {
	list := chunk.List{
		chunk.UseContent{Name: "view"},
		chunk.UseContent{Name: "sidebar", Default: chunk.List{chunk.Text{Value: "none"}}},
	}

	body, err := (&visitors.BodyVisitor{}).Body(list)
	if err != nil {
		t.Fatalf("body: %v", err)
	}
	want := "v.UseContent(\"view\")\n" +
		"if !v.UseContent(\"sidebar\") {\n" +
		"\tv.Write(\"none\")\n" +
		"}\n"
	if diff := cmp.Diff(want, body); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestBodyVisitor_LocalVariables(t *testing.T) {
	list := chunk.List{
		chunk.LocalVariable{Name: "a", Type: "int", Value: "1"},
		chunk.LocalVariable{Name: "b", Type: "string"},
		chunk.LocalVariable{Name: "c"},
		chunk.ForEach{Item: "row", Collection: "rows"},
	}

	body, err := (&visitors.BodyVisitor{}).Body(list)
	if err != nil {
		t.Fatalf("body: %v", err)
	}
	want := "var a int = 1\n_ = a\n" +
		"var b string\n_ = b\n" +
		"var c any\n_ = c\n" +
		"for _, row := range rows {\n\t_ = row\n}\n"
	if diff := cmp.Diff(want, body); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestBodyVisitor_OrphanBranches(t *testing.T) {
	cases := map[string]chunk.List{
		"leading else": {
			chunk.Conditional{Branch: chunk.BranchElse},
		},
		"elseif after text": {
			chunk.Conditional{Branch: chunk.BranchIf, Condition: "ok"},
			chunk.Text{Value: "x"},
			chunk.Conditional{Branch: chunk.BranchElseIf, Condition: "other"},
		},
		"elseif after else": {
			chunk.Conditional{Branch: chunk.BranchIf, Condition: "ok"},
			chunk.Conditional{Branch: chunk.BranchElse},
			chunk.Conditional{Branch: chunk.BranchElseIf, Condition: "late"},
		},
		"nested": {
			chunk.Scope{Body: chunk.List{chunk.Conditional{Branch: chunk.BranchElse}}},
		},
	}

	for name, list := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := (&visitors.BodyVisitor{}).Body(list)
			if !errors.Is(err, visitors.ErrOrphanBranch) {
				t.Fatalf("expected ErrOrphanBranch, got %v", err)
			}
		})
	}
}

func TestBodyVisitor_AdjacentChainsStaySeparate(t *testing.T) {
	list := chunk.List{
		chunk.Conditional{Branch: chunk.BranchIf, Condition: "a"},
		chunk.Conditional{Branch: chunk.BranchIf, Condition: "b"},
		chunk.Conditional{Branch: chunk.BranchElse},
	}

	body, err := (&visitors.BodyVisitor{}).Body(list)
	if err != nil {
		t.Fatalf("body: %v", err)
	}
	want := "if a {\n}\nif b {\n} else {\n}\n"
	if diff := cmp.Diff(want, body); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestVisitors_IgnoreOtherConcerns(t *testing.T) {
	body := chunk.List{
		chunk.Text{Value: "hello"},
		chunk.Expression{Code: "v.Name()"},
		chunk.Opaque{Name: "widget", Attrs: map[string]string{"id": "w1"}},
	}

	var imports visitors.ImportVisitor
	imports.Accept(body)
	base := visitors.BaseTypeVisitor{Default: "view.Base"}
	base.Accept(body)
	globals := visitors.NewGlobalsVisitor("ViewX")
	if err := globals.Accept(body); err != nil {
		t.Fatalf("globals: %v", err)
	}

	if len(imports.Imports()) != 0 {
		t.Fatalf("expected no imports, got %v", imports.Imports())
	}
	if base.TypeName() != "view.Base" {
		t.Fatalf("expected default base type, got %q", base.TypeName())
	}
	if diff := cmp.Diff(visitors.Globals{}, globals.Globals(), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("expected no globals (-want +got):\n%s", diff)
	}

	declarations := chunk.List{
		chunk.UseNamespace{Namespace: "fmt"},
		chunk.ExtendsBase{TypeName: "site.Page"},
		chunk.GlobalDeclaration{Name: "X", Type: "int"},
		chunk.AccessorDeclaration{Name: "Y", Type: "int"},
		chunk.Macro{Name: "Z"},
	}
	out, err := (&visitors.BodyVisitor{}).Body(declarations)
	if err != nil {
		t.Fatalf("body: %v", err)
	}
	if out != "" {
		t.Fatalf("declarations must not render, got %q", out)
	}
}

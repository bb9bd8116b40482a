package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-viewgen/pkg/compiler"
)

type fakePrompter struct {
	answer bool
	asked  []string
}

func (p *fakePrompter) Confirm(_ context.Context, message string, _ bool) (bool, error) {
	p.asked = append(p.asked, message)
	return p.answer, nil
}

func run(t *testing.T, a *app, args ...string) (string, string, error) {
	t.Helper()

	root := a.rootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func nonInteractive() bool { return false }

func TestGenerate_Stdout(t *testing.T) {
	dir := t.TempDir()
	page := writeFixture(t, dir, "page.yaml", "- kind: text\n  value: hi\n- kind: expression\n  code: strings.ToUpper(v.Name())\n")
	layout := writeFixture(t, dir, "layout.yaml", "- kind: use-content\n  name: view\n")
	writeFixture(t, dir, "resources/names.yaml", "- kind: use-namespace\n  namespace: strings\n- kind: accessor\n  name: Name\n  type: string\n")

	out, _, err := run(t, newApp(&fakePrompter{}, nonInteractive),
		"generate", "--dir", dir, "-t", page, "-t", layout, "-r", "resources/*.yaml", "--stable-id")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	name := compiler.ShortName(compiler.StableID(page, layout))
	for _, want := range []string{
		"package main\n",
		`import "strings"`,
		"type " + name + " struct {",
		`v.Write("hi")`,
		"func (v *" + name + ") Name() string {",
		"if err := v.CaptureLevel(\"view\", v.RenderViewLevel0); err != nil {",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestGenerate_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	page := writeFixture(t, dir, "page.yaml", "- kind: text\n  value: hi\n")
	writeFixture(t, dir, "viewgen.yaml", "compiler:\n  namespace: example.com/site/views\n")

	out, _, err := run(t, newApp(&fakePrompter{}, nonInteractive), "generate", "--dir", dir, "-t", page)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out, "package views\n") {
		t.Fatalf("expected configured namespace in:\n%s", out)
	}

	out, _, err = run(t, newApp(&fakePrompter{}, nonInteractive), "generate", "--dir", dir, "-t", page, "--namespace", "example.com/admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out, "package admin\n") {
		t.Fatalf("expected flag to override config in:\n%s", out)
	}
}

func TestGenerate_OutputOverwrite(t *testing.T) {
	dir := t.TempDir()
	page := writeFixture(t, dir, "page.yaml", "- kind: text\n  value: hi\n")
	output := writeFixture(t, dir, "view.go", "existing")

	_, _, err := run(t, newApp(&fakePrompter{}, nonInteractive), "generate", "--dir", dir, "-t", page, "-o", output)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected refusal without a terminal, got %v", err)
	}

	declined := &fakePrompter{answer: false}
	_, stderr, err := run(t, newApp(declined, func() bool { return true }), "generate", "--dir", dir, "-t", page, "-o", output)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(declined.asked) != 1 || !strings.Contains(stderr, "Skipped") {
		t.Fatalf("expected one prompt and a skip, asked=%v stderr=%q", declined.asked, stderr)
	}
	if data, _ := os.ReadFile(output); string(data) != "existing" {
		t.Fatal("declined overwrite must keep the file")
	}

	accepted := &fakePrompter{answer: true}
	if _, _, err := run(t, newApp(accepted, func() bool { return true }), "generate", "--dir", dir, "-t", page, "-o", output); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if data, _ := os.ReadFile(output); !strings.Contains(string(data), "package main") {
		t.Fatalf("expected generated source, got %q", data)
	}

	if err := os.WriteFile(output, []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}
	untouched := &fakePrompter{}
	if _, _, err := run(t, newApp(untouched, nonInteractive), "generate", "--dir", dir, "-t", page, "-o", output, "--force"); err != nil {
		t.Fatalf("generate --force: %v", err)
	}
	if len(untouched.asked) != 0 {
		t.Fatal("--force must not prompt")
	}
	if data, _ := os.ReadFile(output); !strings.Contains(string(data), "package main") {
		t.Fatal("expected --force to overwrite")
	}
}

func TestGenerate_RequiresTemplate(t *testing.T) {
	_, _, err := run(t, newApp(&fakePrompter{}, nonInteractive), "generate", "--dir", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "--template") {
		t.Fatalf("expected missing template error, got %v", err)
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeFixture(t, dir, "good.yaml", "- kind: text\n  value: ok\n")
	bad := writeFixture(t, dir, "bad.yaml", "- kind: code\n  code: \"if {\"\n")

	out, _, err := run(t, newApp(&fakePrompter{}, nonInteractive), "check", "--dir", dir, "-t", good)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.HasPrefix(out, "ok  View") || !strings.Contains(out, "(1 levels, base view.Base)") {
		t.Fatalf("unexpected check output %q", out)
	}

	_, stderr, err := run(t, newApp(&fakePrompter{}, nonInteractive), "check", "--dir", dir, "-t", bad)
	if err == nil || !strings.Contains(err.Error(), "syntax error(s)") {
		t.Fatalf("expected syntax errors, got %v", err)
	}
	if !strings.Contains(stderr, compiler.UnitFileName+":") {
		t.Fatalf("expected positioned diagnostics on stderr, got %q", stderr)
	}
}

func TestLoadViewData(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "data.json", `{"title": "Home", "count": 2}`)
	data, err := loadViewData(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data["title"] != "Home" || data["count"] != 2 {
		t.Fatalf("unexpected data %v", data)
	}

	empty, err := loadViewData("")
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty data, got %v %v", empty, err)
	}
}

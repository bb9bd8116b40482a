package goplugin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"plugin"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/goliatone/go-viewgen/pkg/compiler"
)

type buildSpec struct {
	key    string
	debug  bool
	pkg    string
	source string
}

type hostModule struct {
	path      string
	goVersion string
	sum       []byte
}

func (b *Backend) build(ctx context.Context, spec buildSpec) (*module, error) {
	host, err := readHostModule(b.moduleDir)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp(b.workDir, "viewgen-*")
	if err != nil {
		return nil, fmt.Errorf("goplugin: create build dir: %w", err)
	}
	defer os.RemoveAll(dir)

	modPath := modulePath(spec.key)
	if err := writeBuildModule(dir, modPath, b.moduleDir, host, spec); err != nil {
		return nil, err
	}

	out := filepath.Join(dir, "view.so")
	args := []string{"build", "-buildmode=plugin", "-o", out}
	if spec.debug {
		args = append(args, "-gcflags=all=-N -l")
	}
	args = append(args, ".")

	cmd := exec.CommandContext(ctx, b.goBinary, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GOFLAGS=-mod=mod", "GOWORK=off")
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	b.logger.DebugContext(ctx, "building plugin", "module", modPath, "package", spec.pkg, "debug", spec.debug)
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("goplugin: run %s: %w", b.goBinary, err)
		}
		return nil, parseBuildOutput(output.String())
	}

	if _, err := plugin.Open(out); err != nil {
		return nil, fmt.Errorf("goplugin: open plugin: %w", err)
	}
	return &module{registry: b.registry, path: modPath}, nil
}

func readHostModule(dir string) (hostModule, error) {
	gomod := filepath.Join(dir, "go.mod")
	data, err := os.ReadFile(gomod)
	if err != nil {
		return hostModule{}, fmt.Errorf("goplugin: read host module: %w", err)
	}
	file, err := modfile.Parse(gomod, data, nil)
	if err != nil {
		return hostModule{}, fmt.Errorf("goplugin: parse host module: %w", err)
	}
	if file.Module == nil || file.Module.Mod.Path == "" {
		return hostModule{}, fmt.Errorf("goplugin: %s declares no module path", gomod)
	}

	host := hostModule{path: file.Module.Mod.Path}
	if file.Go != nil {
		host.goVersion = file.Go.Version
	}
	if sum, err := os.ReadFile(filepath.Join(dir, "go.sum")); err == nil {
		host.sum = sum
	}
	return host, nil
}

// buildGoMod renders the go.mod of the plugin module. The host module is
// required at a placeholder version and replaced by its directory.
func buildGoMod(modulePath, moduleDir string, host hostModule) ([]byte, error) {
	file := &modfile.File{}
	if err := file.AddModuleStmt(modulePath); err != nil {
		return nil, fmt.Errorf("goplugin: go.mod module: %w", err)
	}
	if host.goVersion != "" {
		if err := file.AddGoStmt(host.goVersion); err != nil {
			return nil, fmt.Errorf("goplugin: go.mod go version: %w", err)
		}
	}
	if err := file.AddRequire(host.path, "v0.0.0"); err != nil {
		return nil, fmt.Errorf("goplugin: go.mod require: %w", err)
	}
	if err := file.AddReplace(host.path, "", moduleDir, ""); err != nil {
		return nil, fmt.Errorf("goplugin: go.mod replace: %w", err)
	}
	return modfile.Format(file.Syntax), nil
}

func writeBuildModule(dir, modulePath, moduleDir string, host hostModule, spec buildSpec) error {
	gomod, err := buildGoMod(modulePath, moduleDir, host)
	if err != nil {
		return err
	}
	files := map[string][]byte{"go.mod": gomod}
	if len(host.sum) > 0 {
		files["go.sum"] = host.sum
	}

	if spec.pkg == "main" {
		files[compiler.UnitFileName] = []byte(spec.source)
	} else {
		unitDir := filepath.Join("unit", spec.pkg)
		files[filepath.Join(unitDir, compiler.UnitFileName)] = []byte(spec.source)
		files["main.go"] = []byte(fmt.Sprintf("package main\n\nimport _ %s\n", strconv.Quote(modulePath+"/unit/"+spec.pkg)))
	}

	for name, data := range files {
		target := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("goplugin: mkdir %s: %w", filepath.Dir(name), err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("goplugin: write %s: %w", name, err)
		}
	}
	return nil
}

var diagnosticLine = regexp.MustCompile(`^(\S+\.go):(\d+)(?::(\d+))?: (.+)$`)

// parseBuildOutput turns go build output into a CompilationError. Lines that
// do not carry a position are kept only when nothing else was reported.
func parseBuildOutput(output string) error {
	var diagnostics []compiler.Diagnostic
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		m := diagnosticLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		d := compiler.Diagnostic{File: filepath.Base(m[1]), Message: m[4]}
		d.Line, _ = strconv.Atoi(m[2])
		if m[3] != "" {
			d.Column, _ = strconv.Atoi(m[3])
		}
		diagnostics = append(diagnostics, d)
	}
	if len(diagnostics) == 0 {
		message := strings.TrimSpace(output)
		if message == "" {
			message = "go build failed"
		}
		diagnostics = append(diagnostics, compiler.Diagnostic{Message: message})
	}
	return &compiler.CompilationError{Diagnostics: diagnostics}
}

package compiler

import (
	"bytes"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"strconv"
)

// formatUnit gofmts generated source. Imports the unit never references are
// turned into blank imports so the declared order and their side effects
// survive while the unit still compiles.
func formatUnit(src []byte) ([]byte, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, UnitFileName, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}
	blankUnusedImports(file)

	var out bytes.Buffer
	if err := format.Node(&out, fset, file); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// blankUnusedImports only trusts the guessed name of an unaliased import
// while every selector base in the file is accounted for. A base no import
// name or local declaration explains may be the real name of one of those
// imports, so they are left untouched.
func blankUnusedImports(file *ast.File) {
	bases := selectorBases(file)
	declared := declaredNames(file)

	names := make(map[string]bool, len(file.Imports))
	for _, spec := range file.Imports {
		names[importName(spec)] = true
	}

	unresolved := false
	for base := range bases {
		if !names[base] && !declared[base] {
			unresolved = true
			break
		}
	}

	for _, spec := range file.Imports {
		name := importName(spec)
		if name == "_" || name == "." || bases[name] {
			continue
		}
		if spec.Name == nil && unresolved {
			continue
		}
		spec.Name = ast.NewIdent("_")
	}
}

func selectorBases(file *ast.File) map[string]bool {
	bases := make(map[string]bool)
	ast.Inspect(file, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			if ident, ok := sel.X.(*ast.Ident); ok {
				bases[ident.Name] = true
			}
		}
		return true
	})
	return bases
}

// declaredNames collects every identifier the file declares at any scope.
func declaredNames(file *ast.File) map[string]bool {
	declared := make(map[string]bool)
	add := func(exprs ...ast.Expr) {
		for _, expr := range exprs {
			if ident, ok := expr.(*ast.Ident); ok {
				declared[ident.Name] = true
			}
		}
	}

	ast.Inspect(file, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.FuncDecl:
			declared[node.Name.Name] = true
		case *ast.Field:
			for _, name := range node.Names {
				declared[name.Name] = true
			}
		case *ast.ValueSpec:
			for _, name := range node.Names {
				declared[name.Name] = true
			}
		case *ast.TypeSpec:
			declared[node.Name.Name] = true
		case *ast.AssignStmt:
			if node.Tok == token.DEFINE {
				add(node.Lhs...)
			}
		case *ast.RangeStmt:
			if node.Tok == token.DEFINE {
				add(node.Key, node.Value)
			}
		}
		return true
	})
	return declared
}

func importName(spec *ast.ImportSpec) string {
	if spec.Name != nil {
		return spec.Name.Name
	}
	importPath, err := strconv.Unquote(spec.Path.Value)
	if err != nil {
		return "_"
	}
	return packageName(importPath)
}

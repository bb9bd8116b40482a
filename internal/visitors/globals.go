package visitors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-viewgen/pkg/chunk"
)

// Globals are the view-level members projected from resource chunks.
type Globals struct {
	// Fields are struct field declarations.
	Fields []string
	// Initializers are constructor assignments for fields with a value.
	Initializers []string
	// Methods are complete method declarations.
	Methods []string
}

// GlobalsVisitor projects GlobalDeclaration, AccessorDeclaration and Macro
// chunks into members of the view type named by TypeName.
type GlobalsVisitor struct {
	TypeName string
	globals  Globals
}

// NewGlobalsVisitor creates a visitor emitting methods on *typeName.
func NewGlobalsVisitor(typeName string) *GlobalsVisitor {
	return &GlobalsVisitor{TypeName: typeName}
}

// Accept walks list for global members. Macro bodies are rendered by a
// BodyVisitor and not searched for nested declarations.
func (v *GlobalsVisitor) Accept(list chunk.List) error {
	var err error
	chunk.Walk(list, func(c chunk.Chunk) bool {
		if err != nil {
			return false
		}
		switch node := c.(type) {
		case chunk.GlobalDeclaration:
			v.globals.Fields = append(v.globals.Fields, node.Name+" "+node.Type)
			if node.Value != "" {
				v.globals.Initializers = append(v.globals.Initializers,
					fmt.Sprintf("%s.%s = %s", Receiver, node.Name, node.Value))
			}
		case chunk.AccessorDeclaration:
			v.globals.Methods = append(v.globals.Methods, v.accessor(node))
		case chunk.Macro:
			var method string
			method, err = v.macro(node)
			if err == nil {
				v.globals.Methods = append(v.globals.Methods, method)
			}
			return false
		default:
		}
		return true
	})
	return err
}

// Globals returns the members collected so far.
func (v *GlobalsVisitor) Globals() Globals {
	return Globals{
		Fields:       append([]string(nil), v.globals.Fields...),
		Initializers: append([]string(nil), v.globals.Initializers...),
		Methods:      append([]string(nil), v.globals.Methods...),
	}
}

func (v *GlobalsVisitor) accessor(node chunk.AccessorDeclaration) string {
	key := node.Key
	if key == "" {
		key = node.Name
	}

	var b strings.Builder
	line(&b, 0, "func (%s *%s) %s() %s {", Receiver, v.TypeName, node.Name, node.Type)
	line(&b, 1, "if value, ok := %s.ViewData(%s).(%s); ok {", Receiver, strconv.Quote(key), node.Type)
	line(&b, 2, "return value")
	line(&b, 1, "}")
	if node.Default != "" {
		line(&b, 1, "return %s", node.Default)
	} else {
		line(&b, 1, "var zero %s", node.Type)
		line(&b, 1, "return zero")
	}
	b.WriteString("}")
	return b.String()
}

func (v *GlobalsVisitor) macro(node chunk.Macro) (string, error) {
	body, err := (&BodyVisitor{Indent: 2}).Body(node.Body)
	if err != nil {
		return "", fmt.Errorf("macro %s: %w", node.Name, err)
	}

	params := make([]string, 0, len(node.Params))
	for _, p := range node.Params {
		params = append(params, p.Name+" "+p.Type)
	}

	var b strings.Builder
	line(&b, 0, "func (%s *%s) %s(%s) string {", Receiver, v.TypeName, node.Name, strings.Join(params, ", "))
	line(&b, 1, "return %s.CaptureString(func() {", Receiver)
	b.WriteString(body)
	line(&b, 1, "})")
	b.WriteString("}")
	return b.String(), nil
}

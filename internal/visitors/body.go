package visitors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-viewgen/pkg/chunk"
)

// Receiver is the name generated methods bind the view to.
const Receiver = "v"

// ErrOrphanBranch reports an elseif or else chunk that does not follow an if
// or elseif sibling.
var ErrOrphanBranch = errors.New("visitors: elseif/else without preceding if")

// BodyVisitor renders a chunk list as the Go statements of a render method.
type BodyVisitor struct {
	// Indent is the tab depth of the first emitted statement.
	Indent int
}

// Body returns the statements for list.
func (v *BodyVisitor) Body(list chunk.List) (string, error) {
	var b strings.Builder
	if err := v.emitList(&b, list, v.Indent); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (v *BodyVisitor) emitList(b *strings.Builder, list chunk.List, depth int) error {
	for i := 0; i < len(list); i++ {
		switch node := list[i].(type) {
		case chunk.Text:
			if node.Value != "" {
				line(b, depth, "%s.Write(%s)", Receiver, strconv.Quote(node.Value))
			}
		case chunk.Expression:
			line(b, depth, "%s.%s(%s)", Receiver, writerFor(node.Encoding), node.Code)
		case chunk.Code:
			for _, stmt := range strings.Split(strings.TrimRight(node.Code, "\n"), "\n") {
				line(b, depth, "%s", strings.TrimRight(stmt, " \t\r"))
			}
		case chunk.Conditional:
			if node.Branch != chunk.BranchIf {
				return fmt.Errorf("%w: %s %q", ErrOrphanBranch, branchName(node.Branch), node.Condition)
			}
			consumed, err := v.emitConditional(b, list[i:], depth)
			if err != nil {
				return err
			}
			i += consumed - 1
		case chunk.ForEach:
			index := node.Index
			if index == "" {
				index = "_"
			}
			line(b, depth, "for %s, %s := range %s {", index, node.Item, node.Collection)
			if index == "_" {
				line(b, depth+1, "_ = %s", node.Item)
			} else {
				line(b, depth+1, "_, _ = %s, %s", index, node.Item)
			}
			if err := v.emitList(b, node.Body, depth+1); err != nil {
				return err
			}
			line(b, depth, "}")
		case chunk.Scope:
			line(b, depth, "{")
			if err := v.emitList(b, node.Body, depth+1); err != nil {
				return err
			}
			line(b, depth, "}")
		case chunk.LocalVariable:
			switch {
			case node.Type != "" && node.Value != "":
				line(b, depth, "var %s %s = %s", node.Name, node.Type, node.Value)
			case node.Type != "":
				line(b, depth, "var %s %s", node.Name, node.Type)
			case node.Value != "":
				line(b, depth, "%s := %s", node.Name, node.Value)
			default:
				line(b, depth, "var %s any", node.Name)
			}
			line(b, depth, "_ = %s", node.Name)
		case chunk.Content:
			line(b, depth, "func() {")
			line(b, depth+1, "defer %s.BeginContent(%s)()", Receiver, strconv.Quote(node.Name))
			if err := v.emitList(b, node.Body, depth+1); err != nil {
				return err
			}
			line(b, depth, "}()")
		case chunk.UseContent:
			if len(node.Default) == 0 {
				line(b, depth, "%s.UseContent(%s)", Receiver, strconv.Quote(node.Name))
				continue
			}
			line(b, depth, "if !%s.UseContent(%s) {", Receiver, strconv.Quote(node.Name))
			if err := v.emitList(b, node.Default, depth+1); err != nil {
				return err
			}
			line(b, depth, "}")
		case chunk.Opaque:
			if err := v.emitList(b, node.Children, depth); err != nil {
				return err
			}
		default:
			// declarations and macros are projected by the other visitors
		}
	}
	return nil
}

// emitConditional renders the if chain starting at chain[0] and reports how
// many siblings it consumed. Blank text between branches is dropped.
func (v *BodyVisitor) emitConditional(b *strings.Builder, chain chunk.List, depth int) (int, error) {
	first := chain[0].(chunk.Conditional)
	line(b, depth, "if %s {", first.Condition)
	if err := v.emitList(b, first.Body, depth+1); err != nil {
		return 0, err
	}

	consumed := 1
	for {
		next := consumed
		for next < len(chain) && isBlankText(chain[next]) {
			next++
		}
		if next >= len(chain) {
			break
		}
		branch, ok := chain[next].(chunk.Conditional)
		if !ok || branch.Branch == chunk.BranchIf {
			break
		}

		if branch.Branch == chunk.BranchElse {
			line(b, depth, "} else {")
		} else {
			line(b, depth, "} else if %s {", branch.Condition)
		}
		if err := v.emitList(b, branch.Body, depth+1); err != nil {
			return 0, err
		}
		consumed = next + 1
		if branch.Branch == chunk.BranchElse {
			break
		}
	}
	line(b, depth, "}")
	return consumed, nil
}

func isBlankText(c chunk.Chunk) bool {
	text, ok := c.(chunk.Text)
	return ok && strings.TrimSpace(text.Value) == ""
}

func writerFor(enc chunk.Encoding) string {
	switch enc {
	case chunk.EncodeHTML:
		return "WriteEscaped"
	case chunk.EncodeSanitize:
		return "WriteSanitized"
	default:
		return "WriteValue"
	}
}

func branchName(branch chunk.Branch) string {
	if branch == chunk.BranchElse {
		return "else"
	}
	return "elseif"
}

func line(b *strings.Builder, depth int, format string, args ...any) {
	b.WriteString(strings.Repeat("\t", depth))
	fmt.Fprintf(b, format, args...)
	b.WriteByte('\n')
}

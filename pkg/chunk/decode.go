package chunk

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Decode parses a YAML (or JSON) sequence of chunk documents. Each document
// is a mapping tagged by its "kind" key; kinds outside the modelled set decode
// to Opaque. Every validation problem is reported, not only the first.
func Decode(data []byte) (List, error) {
	if strings.TrimSpace(string(data)) == "" {
		return List{}, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("chunk: parse: %w", err)
	}

	var errs *multierror.Error
	list := decodeList(&root, &errs)
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	if list == nil {
		list = List{}
	}
	return list, nil
}

// LoadFile reads and decodes a chunk document from disk.
func LoadFile(path string) (List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("chunk: read %s: %w", path, err)
	}
	list, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("chunk: %s: %w", path, err)
	}
	return list, nil
}

// LoadFS reads and decodes a chunk document from fsys.
func LoadFS(fsys fs.FS, name string) (List, error) {
	if fsys == nil {
		return nil, fmt.Errorf("chunk: file system is nil")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("chunk: read %s: %w", name, err)
	}
	list, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("chunk: %s: %w", name, err)
	}
	return list, nil
}

type document struct {
	Kind      string          `yaml:"kind"`
	Value     string          `yaml:"value"`
	Code      string          `yaml:"code"`
	Encode    string          `yaml:"encode"`
	Condition string          `yaml:"condition"`
	Item      string          `yaml:"item"`
	Index     string          `yaml:"index"`
	In        string          `yaml:"in"`
	Name      string          `yaml:"name"`
	Alias     string          `yaml:"alias"`
	Namespace string          `yaml:"namespace"`
	Library   string          `yaml:"library"`
	Type      string          `yaml:"type"`
	Key       string          `yaml:"key"`
	Params    []paramDocument `yaml:"params"`
	Body      yaml.Node       `yaml:"body"`
	Default   yaml.Node       `yaml:"default"`
}

type paramDocument struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

func decodeList(node *yaml.Node, errs **multierror.Error) List {
	if node == nil || node.Kind == 0 {
		return nil
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		node = node.Content[0]
	}
	if node.Kind != yaml.SequenceNode {
		*errs = multierror.Append(*errs, fmt.Errorf("line %d: expected a sequence of chunks", node.Line))
		return nil
	}

	list := make(List, 0, len(node.Content))
	for _, item := range node.Content {
		if c := decodeChunk(item, errs); c != nil {
			list = append(list, c)
		}
	}
	return list
}

func decodeChunk(node *yaml.Node, errs **multierror.Error) Chunk {
	if node.Kind != yaml.MappingNode {
		*errs = multierror.Append(*errs, fmt.Errorf("line %d: chunk must be a mapping", node.Line))
		return nil
	}

	var doc document
	if err := node.Decode(&doc); err != nil {
		*errs = multierror.Append(*errs, fmt.Errorf("line %d: %w", node.Line, err))
		return nil
	}

	kind := strings.ToLower(strings.TrimSpace(doc.Kind))
	require := func(field, value string) bool {
		if strings.TrimSpace(value) != "" {
			return true
		}
		*errs = multierror.Append(*errs, fmt.Errorf("line %d: %s chunk requires %q", node.Line, kind, field))
		return false
	}

	switch kind {
	case "":
		*errs = multierror.Append(*errs, fmt.Errorf("line %d: chunk requires \"kind\"", node.Line))
		return nil
	case "text":
		return Text{Value: doc.Value}
	case "expression", "expr":
		if !require("code", doc.Code) {
			return nil
		}
		encoding, err := parseEncoding(doc.Encode)
		if err != nil {
			*errs = multierror.Append(*errs, fmt.Errorf("line %d: %w", node.Line, err))
			return nil
		}
		return Expression{Code: doc.Code, Encoding: encoding}
	case "code":
		return Code{Code: doc.Code}
	case "if", "elseif":
		if !require("condition", doc.Condition) {
			return nil
		}
		branch := BranchIf
		if kind == "elseif" {
			branch = BranchElseIf
		}
		return Conditional{Branch: branch, Condition: doc.Condition, Body: decodeList(&doc.Body, errs)}
	case "else":
		return Conditional{Branch: BranchElse, Body: decodeList(&doc.Body, errs)}
	case "foreach":
		okItem := require("item", doc.Item)
		okIn := require("in", doc.In)
		if !okItem || !okIn {
			return nil
		}
		return ForEach{Item: doc.Item, Index: doc.Index, Collection: doc.In, Body: decodeList(&doc.Body, errs)}
	case "scope":
		return Scope{Body: decodeList(&doc.Body, errs)}
	case "var":
		if !require("name", doc.Name) {
			return nil
		}
		return LocalVariable{Name: doc.Name, Type: doc.Type, Value: doc.Value}
	case "content":
		if !require("name", doc.Name) {
			return nil
		}
		return Content{Name: doc.Name, Body: decodeList(&doc.Body, errs)}
	case "use-content":
		if !require("name", doc.Name) {
			return nil
		}
		return UseContent{Name: doc.Name, Default: decodeList(&doc.Default, errs)}
	case "macro":
		if !require("name", doc.Name) {
			return nil
		}
		params := make([]Param, 0, len(doc.Params))
		for _, p := range doc.Params {
			if !require("params.name", p.Name) || !require("params.type", p.Type) {
				continue
			}
			params = append(params, Param{Name: p.Name, Type: p.Type})
		}
		return Macro{Name: doc.Name, Params: params, Body: decodeList(&doc.Body, errs)}
	case "use-namespace":
		if !require("namespace", doc.Namespace) {
			return nil
		}
		return UseNamespace{Namespace: doc.Namespace, Alias: doc.Alias}
	case "use-library":
		if !require("library", doc.Library) {
			return nil
		}
		return UseLibrary{Library: doc.Library}
	case "extends":
		if !require("type", doc.Type) {
			return nil
		}
		return ExtendsBase{TypeName: doc.Type}
	case "global":
		okName := require("name", doc.Name)
		okType := require("type", doc.Type)
		if !okName || !okType {
			return nil
		}
		return GlobalDeclaration{Name: doc.Name, Type: doc.Type, Value: doc.Value}
	case "accessor":
		okName := require("name", doc.Name)
		okType := require("type", doc.Type)
		if !okName || !okType {
			return nil
		}
		accessor := AccessorDeclaration{Name: doc.Name, Type: doc.Type, Key: doc.Key}
		if doc.Default.Kind == yaml.ScalarNode {
			accessor.Default = doc.Default.Value
		}
		return accessor
	default:
		return decodeOpaque(kind, node, doc, errs)
	}
}

func decodeOpaque(kind string, node *yaml.Node, doc document, errs **multierror.Error) Opaque {
	attrs := make(map[string]string)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Value == "kind" || key.Value == "body" || value.Kind != yaml.ScalarNode {
			continue
		}
		attrs[key.Value] = value.Value
	}
	if len(attrs) == 0 {
		attrs = nil
	}
	return Opaque{Name: kind, Attrs: attrs, Children: decodeList(&doc.Body, errs)}
}

func parseEncoding(raw string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "raw":
		return EncodeRaw, nil
	case "html", "escape":
		return EncodeHTML, nil
	case "sanitize":
		return EncodeSanitize, nil
	default:
		return EncodeRaw, fmt.Errorf("unknown encoding %q", raw)
	}
}

package chunk

// Kind tags every chunk with its member of the closed kind set.
type Kind int

const (
	KindText Kind = iota + 1
	KindExpression
	KindCode
	KindConditional
	KindForEach
	KindScope
	KindLocalVariable
	KindContent
	KindUseContent
	KindMacro
	KindUseNamespace
	KindUseLibrary
	KindExtendsBase
	KindGlobalDeclaration
	KindAccessorDeclaration
	KindOpaque
)

var kindNames = map[Kind]string{
	KindText:                "text",
	KindExpression:          "expression",
	KindCode:                "code",
	KindConditional:         "conditional",
	KindForEach:             "foreach",
	KindScope:               "scope",
	KindLocalVariable:       "var",
	KindContent:             "content",
	KindUseContent:          "use-content",
	KindMacro:               "macro",
	KindUseNamespace:        "use-namespace",
	KindUseLibrary:          "use-library",
	KindExtendsBase:         "extends",
	KindGlobalDeclaration:   "global",
	KindAccessorDeclaration: "accessor",
	KindOpaque:              "opaque",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Chunk is a node of a template's parsed intermediate representation. The set
// of implementations is closed: only types declared in this package satisfy
// the interface.
type Chunk interface {
	Kind() Kind
	chunk()
}

// List is an ordered sequence of sibling chunks.
type List []Chunk

// Encoding selects how an Expression is written to the output.
type Encoding int

const (
	// EncodeRaw writes the formatted value as-is.
	EncodeRaw Encoding = iota
	// EncodeHTML HTML-escapes the formatted value.
	EncodeHTML
	// EncodeSanitize runs the formatted value through the HTML sanitizer.
	EncodeSanitize
)

// Branch identifies the arm of a conditional chain.
type Branch int

const (
	BranchIf Branch = iota
	BranchElseIf
	BranchElse
)

// Text is literal output.
type Text struct {
	Value string
}

// Expression outputs the value of a Go expression.
type Expression struct {
	Code     string
	Encoding Encoding
}

// Code is a Go statement inlined into the render body.
type Code struct {
	Code string
}

// Conditional is one arm of an if / else if / else chain. Arms of one chain
// are consecutive siblings.
type Conditional struct {
	Branch    Branch
	Condition string
	Body      List
}

// ForEach ranges over Collection binding Item (and optionally Index).
type ForEach struct {
	Item       string
	Index      string
	Collection string
	Body       List
}

// Scope opens a nested block.
type Scope struct {
	Body List
}

// LocalVariable declares a variable local to the render body.
type LocalVariable struct {
	Name  string
	Type  string
	Value string
}

// Content captures its body into the named content slot.
type Content struct {
	Name string
	Body List
}

// UseContent writes the named content slot, or Default when the slot is empty.
type UseContent struct {
	Name    string
	Default List
}

// Param is a typed macro parameter.
type Param struct {
	Name string
	Type string
}

// Macro declares a reusable fragment rendered to a string.
type Macro struct {
	Name   string
	Params []Param
	Body   List
}

// UseNamespace requests a package import. Alias is optional.
type UseNamespace struct {
	Namespace string
	Alias     string
}

// UseLibrary requests a package linked for its side effects only.
type UseLibrary struct {
	Library string
}

// ExtendsBase selects the base type the generated view embeds.
type ExtendsBase struct {
	TypeName string
}

// GlobalDeclaration declares a view member with an optional initializer.
type GlobalDeclaration struct {
	Name  string
	Type  string
	Value string
}

// AccessorDeclaration declares a typed accessor over the view data entry Key
// (Name when Key is empty).
type AccessorDeclaration struct {
	Name    string
	Type    string
	Key     string
	// Default is a Go expression returned when the entry is missing or has
	// another type.
	Default string
}

// Opaque carries a chunk kind this package does not model. Visitors pass it
// through without error.
type Opaque struct {
	Name     string
	Attrs    map[string]string
	Children List
}

func (Text) Kind() Kind                { return KindText }
func (Expression) Kind() Kind          { return KindExpression }
func (Code) Kind() Kind                { return KindCode }
func (Conditional) Kind() Kind         { return KindConditional }
func (ForEach) Kind() Kind             { return KindForEach }
func (Scope) Kind() Kind               { return KindScope }
func (LocalVariable) Kind() Kind       { return KindLocalVariable }
func (Content) Kind() Kind             { return KindContent }
func (UseContent) Kind() Kind          { return KindUseContent }
func (Macro) Kind() Kind               { return KindMacro }
func (UseNamespace) Kind() Kind        { return KindUseNamespace }
func (UseLibrary) Kind() Kind          { return KindUseLibrary }
func (ExtendsBase) Kind() Kind         { return KindExtendsBase }
func (GlobalDeclaration) Kind() Kind   { return KindGlobalDeclaration }
func (AccessorDeclaration) Kind() Kind { return KindAccessorDeclaration }
func (Opaque) Kind() Kind              { return KindOpaque }

func (Text) chunk()                {}
func (Expression) chunk()          {}
func (Code) chunk()                {}
func (Conditional) chunk()         {}
func (ForEach) chunk()             {}
func (Scope) chunk()               {}
func (LocalVariable) chunk()       {}
func (Content) chunk()             {}
func (UseContent) chunk()          {}
func (Macro) chunk()               {}
func (UseNamespace) chunk()        {}
func (UseLibrary) chunk()          {}
func (ExtendsBase) chunk()         {}
func (GlobalDeclaration) chunk()   {}
func (AccessorDeclaration) chunk() {}
func (Opaque) chunk()              {}

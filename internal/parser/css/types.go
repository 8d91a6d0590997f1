package css

// NodeType identifies the kind of a stylesheet node
type NodeType int

const (
	// RootNode is the stylesheet itself
	RootNode NodeType = iota
	// RuleNode is a qualified rule: a selector list followed by a block
	RuleNode
	// AtRuleNode is an at-rule such as @media or @import, with or without a block
	AtRuleNode
	// DeclarationNode is a property: value pair
	DeclarationNode
	// CommentNode is a /* ... */ comment
	CommentNode
	// RawNode is source text the grammar could not classify, kept verbatim
	RawNode
)

// String returns the lower-case name of the node type
func (t NodeType) String() string {
	switch t {
	case RootNode:
		return "root"
	case RuleNode:
		return "rule"
	case AtRuleNode:
		return "atrule"
	case DeclarationNode:
		return "decl"
	case CommentNode:
		return "comment"
	case RawNode:
		return "raw"
	default:
		return "unknown"
	}
}

// Position represents a position in a text document
type Position struct {
	Line      uint32
	Character uint32
}

// Range represents a range in a text document
type Range struct {
	Start Position
	End   Position
}

// Raws holds the whitespace and punctuation around a node, so that an
// unmodified tree prints back exactly as it was read.
//
// Not every field applies to every node:
//   - Before: all nodes except Root; text preceding the node
//   - Between: Rule and AtRule (before "{" or ";"), Declaration (the colon and its spacing)
//   - After: containers; text before the closing "}" (or end of file for Root)
//   - AfterName: AtRule; text between the name and the params
//   - Important: Declaration; text between the value and ";" including "!important"
//   - Semicolon: containers; whether the last declaration carried a ";"
type Raws struct {
	Before    string
	Between   string
	After     string
	AfterName string
	Important string
	Semicolon bool
}

// Node is implemented by every element of the tree
type Node interface {
	// Type returns the kind of the node
	Type() NodeType
	// Parent returns the container holding the node, or nil when detached
	Parent() Container
	// Source returns where the node started in the parsed text
	Source() Position
	// Before returns the text preceding the node
	Before() string
	// SetBefore replaces the text preceding the node
	SetBefore(before string)
	// Remove detaches the node from its parent
	Remove()
	// Fail builds a SyntaxError located at the node
	Fail(message string) error
	// String prints the node without its leading whitespace
	String() string

	setParent(parent Container)
	cloneNode() Node
	stringify(sb stringWriter, semicolon bool)
}

// Container is a node that holds child nodes
type Container interface {
	Node
	// Nodes returns the children. The slice must not be modified by callers.
	Nodes() []Node
	// First returns the first child, or nil
	First() Node
	// Last returns the last child, or nil
	Last() Node
	// Index returns the position of child, or -1
	Index(child Node) int
	// Append adds nodes at the end
	Append(nodes ...Node)
	// Prepend adds nodes at the start
	Prepend(nodes ...Node)
	// InsertBefore adds nodes right before anchor. It reports false if anchor is not a child.
	InsertBefore(anchor Node, nodes ...Node) bool
	// InsertAfter adds nodes right after anchor. It reports false if anchor is not a child.
	InsertAfter(anchor Node, nodes ...Node) bool
	// RemoveChild detaches child. It reports false if child was not found.
	RemoveChild(child Node) bool
}

// Root is a parsed stylesheet
type Root struct {
	body
	Raws Raws
}

// Rule is a qualified rule, e.g. `.a, .b { color: red; }`
type Rule struct {
	body
	parent   Container
	position Position

	// Selector is the selector list as written, e.g. ".a, .b"
	Selector string
	Raws     Raws
}

// AtRule is an at-rule, e.g. `@media (min-width: 1px) { ... }` or `@import "x.css";`
type AtRule struct {
	body
	parent   Container
	position Position

	// Name is the at-keyword without "@"
	Name string
	// Params is everything between the name and the block or ";"
	Params string
	// HasBlock is true when the at-rule has a { ... } body
	HasBlock bool
	Raws     Raws
}

// Declaration is a single property: value pair
type Declaration struct {
	parent   Container
	position Position

	// Prop is the property name, e.g. "color" or "--primary-color"
	Prop string
	// Value is the value without surrounding whitespace or "!important"
	Value string
	// Important is true when the declaration ends with !important
	Important bool
	Raws      Raws
}

// Comment is a /* ... */ comment, including the delimiters
type Comment struct {
	parent   Container
	position Position

	Text string
	Raws Raws
}

// Raw holds text that is not understood as CSS and is printed back verbatim
type Raw struct {
	parent   Container
	position Position

	Text string
	Raws Raws
}

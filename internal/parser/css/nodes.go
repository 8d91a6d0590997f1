package css

import "slices"

// body is the child list shared by Root, Rule and AtRule.
// owner must point at the embedding node; the constructors take care of it.
type body struct {
	owner Container
	nodes []Node
}

func (b *body) Nodes() []Node { return b.nodes }

func (b *body) First() Node {
	if len(b.nodes) == 0 {
		return nil
	}
	return b.nodes[0]
}

func (b *body) Last() Node {
	if len(b.nodes) == 0 {
		return nil
	}
	return b.nodes[len(b.nodes)-1]
}

func (b *body) Index(child Node) int {
	for i, n := range b.nodes {
		if n == child {
			return i
		}
	}
	return -1
}

func (b *body) Append(nodes ...Node) {
	b.insertAt(-1, nodes)
}

func (b *body) Prepend(nodes ...Node) {
	b.insertAt(0, nodes)
}

func (b *body) InsertBefore(anchor Node, nodes ...Node) bool {
	if b.Index(anchor) < 0 {
		return false
	}
	detach(nodes)
	b.insertAt(b.Index(anchor), nodes)
	return true
}

func (b *body) InsertAfter(anchor Node, nodes ...Node) bool {
	if b.Index(anchor) < 0 {
		return false
	}
	detach(nodes)
	b.insertAt(b.Index(anchor)+1, nodes)
	return true
}

func (b *body) RemoveChild(child Node) bool {
	i := b.Index(child)
	if i < 0 {
		return false
	}
	b.nodes = slices.Delete(b.nodes, i, i+1)
	child.setParent(nil)
	return true
}

// insertAt adds nodes at index i, or at the end when i is negative
func (b *body) insertAt(i int, nodes []Node) {
	detach(nodes)
	for _, n := range nodes {
		n.setParent(b.owner)
	}
	if i < 0 || i > len(b.nodes) {
		b.nodes = append(b.nodes, nodes...)
		return
	}
	b.nodes = slices.Insert(b.nodes, i, nodes...)
}

func (b *body) cloneInto(owner Container) body {
	out := body{owner: owner, nodes: make([]Node, 0, len(b.nodes))}
	for _, n := range b.nodes {
		c := n.cloneNode()
		c.setParent(owner)
		out.nodes = append(out.nodes, c)
	}
	return out
}

// detach removes nodes from whatever container currently holds them
func detach(nodes []Node) {
	for _, n := range nodes {
		if p := n.Parent(); p != nil {
			p.RemoveChild(n)
		}
	}
}

func remove(n Node) {
	if p := n.Parent(); p != nil {
		p.RemoveChild(n)
	}
}

// NewRoot creates an empty stylesheet
func NewRoot() *Root {
	r := &Root{}
	r.body.owner = r
	return r
}

// NewRule creates a detached rule laid out as `selector { ... }` on one line
func NewRule(selector string) *Rule {
	r := &Rule{
		Selector: selector,
		Raws:     Raws{Between: " ", After: " ", Semicolon: true},
	}
	r.body.owner = r
	return r
}

// NewAtRule creates a detached at-rule. Blocks are added with Append.
func NewAtRule(name, params string, hasBlock bool) *AtRule {
	a := &AtRule{Name: name, Params: params, HasBlock: hasBlock}
	if params != "" {
		a.Raws.AfterName = " "
	}
	if hasBlock {
		a.Raws.Between = " "
		a.Raws.After = " "
		a.Raws.Semicolon = true
	}
	a.body.owner = a
	return a
}

// NewDeclaration creates a detached declaration printed as `prop: value`
func NewDeclaration(prop, value string) *Declaration {
	return &Declaration{Prop: prop, Value: value, Raws: Raws{Between: ": "}}
}

// NewComment creates a detached comment; text must include the delimiters
func NewComment(text string) *Comment {
	return &Comment{Text: text}
}

// Root

func (r *Root) Type() NodeType        { return RootNode }
func (r *Root) Parent() Container     { return nil }
func (r *Root) Source() Position      { return Position{} }
func (r *Root) Before() string        { return "" }
func (r *Root) SetBefore(string)      {}
func (r *Root) Remove()               {}
func (r *Root) Fail(msg string) error { return newSyntaxError(msg, Position{}) }
func (r *Root) setParent(Container)   {}
func (r *Root) cloneNode() Node       { return r.Clone() }

// Clone returns a deep copy of the stylesheet
func (r *Root) Clone() *Root {
	c := &Root{Raws: r.Raws}
	c.body = r.body.cloneInto(c)
	return c
}

// Prepend adds nodes at the top of the stylesheet. The first inserted node
// takes over the leading whitespace of the previous first child, which is
// moved onto its own line.
func (r *Root) Prepend(nodes ...Node) {
	if len(nodes) == 0 {
		return
	}
	if first := r.First(); first != nil {
		nodes[0].SetBefore(first.Before())
		if !containsNewline(first.Before()) {
			first.SetBefore("\n")
		}
	}
	r.body.Prepend(nodes...)
}

// RemoveChild detaches child. When the first child goes, its leading
// whitespace is handed to the node that becomes first.
func (r *Root) RemoveChild(child Node) bool {
	i := r.Index(child)
	if i < 0 {
		return false
	}
	if i == 0 && len(r.nodes) > 1 {
		r.nodes[1].SetBefore(child.Before())
	}
	return r.body.RemoveChild(child)
}

// Rule

func (r *Rule) Type() NodeType          { return RuleNode }
func (r *Rule) Parent() Container       { return r.parent }
func (r *Rule) Source() Position        { return r.position }
func (r *Rule) Before() string          { return r.Raws.Before }
func (r *Rule) SetBefore(before string) { r.Raws.Before = before }
func (r *Rule) Remove()                 { remove(r) }
func (r *Rule) Fail(msg string) error   { return newSyntaxError(msg, r.position) }
func (r *Rule) setParent(p Container)   { r.parent = p }
func (r *Rule) cloneNode() Node         { return r.Clone() }

// Clone returns a detached deep copy of the rule
func (r *Rule) Clone() *Rule {
	c := r.CloneEmpty()
	c.body = r.body.cloneInto(c)
	return c
}

// CloneEmpty returns a detached copy of the rule's selector and raws, without children
func (r *Rule) CloneEmpty() *Rule {
	c := &Rule{position: r.position, Selector: r.Selector, Raws: r.Raws}
	c.body.owner = c
	return c
}

// Selectors returns the individual selectors of the selector list
func (r *Rule) Selectors() []string {
	return SplitSelectors(r.Selector)
}

// SetSelectors replaces the selector list, joining with the separator the
// rule already uses (", " when it has none)
func (r *Rule) SetSelectors(selectors []string) {
	r.Selector = JoinSelectors(selectors, selectorSeparator(r.Selector))
}

// AtRule

func (a *AtRule) Type() NodeType          { return AtRuleNode }
func (a *AtRule) Parent() Container       { return a.parent }
func (a *AtRule) Source() Position        { return a.position }
func (a *AtRule) Before() string          { return a.Raws.Before }
func (a *AtRule) SetBefore(before string) { a.Raws.Before = before }
func (a *AtRule) Remove()                 { remove(a) }
func (a *AtRule) Fail(msg string) error   { return newSyntaxError(msg, a.position) }
func (a *AtRule) setParent(p Container)   { a.parent = p }
func (a *AtRule) cloneNode() Node         { return a.Clone() }

// Clone returns a detached deep copy of the at-rule
func (a *AtRule) Clone() *AtRule {
	c := &AtRule{position: a.position, Name: a.Name, Params: a.Params, HasBlock: a.HasBlock, Raws: a.Raws}
	c.body = a.body.cloneInto(c)
	return c
}

// Declaration

func (d *Declaration) Type() NodeType          { return DeclarationNode }
func (d *Declaration) Parent() Container       { return d.parent }
func (d *Declaration) Source() Position        { return d.position }
func (d *Declaration) Before() string          { return d.Raws.Before }
func (d *Declaration) SetBefore(before string) { d.Raws.Before = before }
func (d *Declaration) Remove()                 { remove(d) }
func (d *Declaration) Fail(msg string) error   { return newSyntaxError(msg, d.position) }
func (d *Declaration) setParent(p Container)   { d.parent = p }
func (d *Declaration) cloneNode() Node         { return d.Clone() }

// Clone returns a detached copy of the declaration
func (d *Declaration) Clone() *Declaration {
	c := *d
	c.parent = nil
	return &c
}

// IsCustomProperty reports whether the declaration defines a custom property (--name)
func (d *Declaration) IsCustomProperty() bool {
	return len(d.Prop) > 2 && d.Prop[0] == '-' && d.Prop[1] == '-'
}

// Rule returns the rule directly holding the declaration, or nil when the
// parent is the root, an at-rule, or nothing
func (d *Declaration) Rule() *Rule {
	r, _ := d.parent.(*Rule)
	return r
}

// Comment

func (c *Comment) Type() NodeType          { return CommentNode }
func (c *Comment) Parent() Container       { return c.parent }
func (c *Comment) Source() Position        { return c.position }
func (c *Comment) Before() string          { return c.Raws.Before }
func (c *Comment) SetBefore(before string) { c.Raws.Before = before }
func (c *Comment) Remove()                 { remove(c) }
func (c *Comment) Fail(msg string) error   { return newSyntaxError(msg, c.position) }
func (c *Comment) setParent(p Container)   { c.parent = p }
func (c *Comment) cloneNode() Node {
	out := *c
	out.parent = nil
	return &out
}

// Raw

func (r *Raw) Type() NodeType          { return RawNode }
func (r *Raw) Parent() Container       { return r.parent }
func (r *Raw) Source() Position        { return r.position }
func (r *Raw) Before() string          { return r.Raws.Before }
func (r *Raw) SetBefore(before string) { r.Raws.Before = before }
func (r *Raw) Remove()                 { remove(r) }
func (r *Raw) Fail(msg string) error   { return newSyntaxError(msg, r.position) }
func (r *Raw) setParent(p Container)   { r.parent = p }
func (r *Raw) cloneNode() Node {
	out := *r
	out.parent = nil
	return &out
}

func containsNewline(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return true
		}
	}
	return false
}

package css

import (
	"fmt"
	"strings"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

// Parser handles parsing CSS with tree-sitter
type Parser struct {
	parser *sitter.Parser
}

var cssLang = sitter.NewLanguage(tree_sitter_css.Language())

// parserPool is a pool of reusable CSS parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(cssLang); err != nil {
			panic(fmt.Sprintf("failed to set CSS language: %v", err))
		}
		return &Parser{parser: parser}
	},
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	p := parserPool.Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// Close closes the parser and releases its resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// ClosePool closes all parsers in the pool
func ClosePool() {
	for range 100 {
		if p, ok := parserPool.Get().(*Parser); ok && p != nil {
			p.Close()
		}
	}
}

// Parse parses a stylesheet with a pooled parser
func Parse(source string) (*Root, error) {
	p := AcquireParser()
	defer ReleaseParser(p)
	return p.Parse(source)
}

// Parse parses CSS code into a mutable tree that prints back unchanged
func (p *Parser) Parse(source string) (*Root, error) {
	src := []byte(source)
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse CSS")
	}
	defer tree.Close()

	b := &builder{src: src}
	root := NewRoot()
	root.Raws.After, root.Raws.Semicolon = b.fill(root, tree.RootNode(), 0, uint(len(src)))
	return root, nil
}

// builder converts tree-sitter nodes into tree nodes. Whitespace between
// nodes is taken from the source by byte offset so nothing is lost.
type builder struct {
	src []byte
}

func (b *builder) text(start, end uint) string {
	return string(b.src[start:end])
}

// fill appends the items found among parent's children within [from, to)
// to owner. It returns the text left after the last item and whether the
// last non-comment item ended with a semicolon.
func (b *builder) fill(owner Container, parent *sitter.Node, from, to uint) (string, bool) {
	pos := from
	semicolon := false
	for i := uint(0); i < parent.ChildCount(); i++ {
		child := parent.Child(i)
		if child == nil || child.IsMissing() || child.StartByte() == child.EndByte() {
			continue
		}
		if child.StartByte() < from || child.EndByte() > to {
			// block delimiters
			continue
		}
		node, hadSemicolon := b.build(child)
		node.SetBefore(b.text(pos, child.StartByte()))
		owner.Append(node)
		if node.Type() != CommentNode {
			semicolon = hadSemicolon
		}
		pos = child.EndByte()
	}
	return b.text(pos, to), semicolon
}

func (b *builder) build(n *sitter.Node) (Node, bool) {
	pos := position(n)
	switch n.Kind() {
	case "comment":
		return &Comment{position: pos, Text: b.text(n.StartByte(), n.EndByte())}, false
	case "declaration":
		if decl, ok := b.declaration(n); ok {
			return decl, strings.HasSuffix(b.text(n.StartByte(), n.EndByte()), ";")
		}
	case "rule_set", "keyframe_block":
		if blk := blockChild(n); blk != nil {
			return b.rule(n, blk), false
		}
	}

	text := b.text(n.StartByte(), n.EndByte())
	if strings.HasPrefix(text, "@") {
		if blk := blockChild(n); blk != nil {
			return b.blockAtRule(n, blk), false
		}
		return b.statementAtRule(n, text), strings.HasSuffix(text, ";")
	}
	return &Raw{position: pos, Text: text}, false
}

func (b *builder) declaration(n *sitter.Node) (*Declaration, bool) {
	var prop, colon, semi *sitter.Node
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "property_name":
			if prop == nil {
				prop = child
			}
		case ":":
			if colon == nil {
				colon = child
			}
		case ";":
			if !child.IsMissing() {
				semi = child
			}
		}
	}
	if prop == nil || colon == nil {
		return nil, false
	}

	valueEnd := n.EndByte()
	if semi != nil {
		valueEnd = semi.StartByte()
	}
	raw := b.text(colon.EndByte(), valueEnd)
	rest := strings.TrimLeft(raw, whitespace)
	value := strings.TrimRight(rest, whitespace)
	tail := rest[len(value):]

	important := false
	if strings.HasSuffix(strings.ToLower(value), "!important") {
		head := strings.TrimRight(value[:len(value)-len("!important")], whitespace)
		tail = value[len(head):] + tail
		value = head
		important = true
	}

	return &Declaration{
		position:  position(n),
		Prop:      b.text(prop.StartByte(), prop.EndByte()),
		Value:     value,
		Important: important,
		Raws: Raws{
			Between:   b.text(prop.EndByte(), colon.EndByte()) + raw[:len(raw)-len(rest)],
			Important: tail,
		},
	}, true
}

func (b *builder) rule(n, blk *sitter.Node) *Rule {
	head := b.text(n.StartByte(), blk.StartByte())
	selector := strings.TrimRight(head, whitespace)

	r := NewRule(selector)
	r.position = position(n)
	r.Raws = Raws{Between: head[len(selector):]}
	from, to := blockBounds(blk)
	r.Raws.After, r.Raws.Semicolon = b.fill(r, blk, from, to)
	return r
}

func (b *builder) blockAtRule(n, blk *sitter.Node) *AtRule {
	name, afterName, params, between := splitAtRuleHead(b.text(n.StartByte(), blk.StartByte()))

	a := NewAtRule(name, params, true)
	a.position = position(n)
	a.Raws = Raws{AfterName: afterName, Between: between}
	from, to := blockBounds(blk)
	a.Raws.After, a.Raws.Semicolon = b.fill(a, blk, from, to)
	return a
}

func (b *builder) statementAtRule(n *sitter.Node, text string) *AtRule {
	name, afterName, params, between := splitAtRuleHead(strings.TrimSuffix(text, ";"))

	a := NewAtRule(name, params, false)
	a.position = position(n)
	a.Raws = Raws{AfterName: afterName, Between: between}
	return a
}

const whitespace = " \t\r\n\f"

// splitAtRuleHead splits "@media  screen " into name, the spacing after the
// name, params and the trailing spacing
func splitAtRuleHead(head string) (name, afterName, params, between string) {
	head = strings.TrimPrefix(head, "@")
	i := 0
	for i < len(head) && isIdentByte(head[i]) {
		i++
	}
	name = head[:i]
	rest := head[i:]
	trimmed := strings.TrimLeft(rest, whitespace)
	afterName = rest[:len(rest)-len(trimmed)]
	params = strings.TrimRight(trimmed, whitespace)
	between = trimmed[len(params):]
	return name, afterName, params, between
}

// blockChild returns the { ... } child of n, if any
func blockChild(n *sitter.Node) *sitter.Node {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "block", "keyframe_block_list":
			return child
		}
	}
	return nil
}

// blockBounds returns the byte range inside the braces of blk
func blockBounds(blk *sitter.Node) (uint, uint) {
	from, to := blk.StartByte(), blk.EndByte()
	if count := blk.ChildCount(); count > 0 {
		if first := blk.Child(0); first.Kind() == "{" && !first.IsMissing() {
			from = first.EndByte()
		}
		if last := blk.Child(count - 1); last.Kind() == "}" && !last.IsMissing() {
			to = last.StartByte()
		}
	}
	return from, to
}

func position(n *sitter.Node) Position {
	p := n.StartPosition()
	return Position{Line: uint32(p.Row), Character: uint32(p.Column)}
}

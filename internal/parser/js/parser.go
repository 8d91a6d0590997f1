package js

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// Parser finds css and html tagged template literals in JS/TS source
type Parser struct {
	parser        *sitter.Parser
	templateQuery *sitter.Query
	genericQuery  *sitter.Query // matches css<Type>`...` (generic form parsed by JS grammar as binary_expression)
}

var jsLang = sitter.NewLanguage(tree_sitter_javascript.Language())

// parserPool is a pool of reusable JS parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(jsLang); err != nil {
			panic(fmt.Sprintf("failed to set JS language: %v", err))
		}

		templateQuery, qerr := sitter.NewQuery(jsLang, `
			(call_expression
				function: (identifier) @tag
				arguments: (template_string) @template)
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile template query: %v", qerr))
		}

		// css<Type>`...` is valid TypeScript but the JS grammar reads it as
		// nested binary expressions
		genericQuery, qerr := sitter.NewQuery(jsLang, `
			(binary_expression
				left: (binary_expression
					left: (identifier) @tag)
				right: (template_string) @template)
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile generic query: %v", qerr))
		}

		return &Parser{
			parser:        parser,
			templateQuery: templateQuery,
			genericQuery:  genericQuery,
		}
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
	if p.templateQuery != nil {
		p.templateQuery.Close()
	}
	if p.genericQuery != nil {
		p.genericQuery.Close()
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

// ParseTemplates finds css/html tagged template literals, ordered by position.
// Handles both standard form (css`...`) and generic form (css<Type>`...`).
func (p *Parser) ParseTemplates(source string) []TemplateRegion {
	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	var regions []TemplateRegion
	for _, query := range []*sitter.Query{p.templateQuery, p.genericQuery} {
		regions = runTemplateQuery(query, root, sourceBytes, regions)
	}

	slices.SortFunc(regions, func(a, b TemplateRegion) int {
		return int(a.StartByte) - int(b.StartByte)
	})
	return regions
}

// runTemplateQuery appends the css/html tagged templates matched by query to regions
func runTemplateQuery(query *sitter.Query, root *sitter.Node, sourceBytes []byte, regions []TemplateRegion) []TemplateRegion {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	names := query.CaptureNames()
	matches := cursor.Matches(query, root, sourceBytes)
	for match := matches.Next(); match != nil; match = matches.Next() {
		var tagName string
		var templateNode *sitter.Node

		for _, capture := range match.Captures {
			switch names[capture.Index] {
			case "tag":
				tagName = string(sourceBytes[capture.Node.StartByte():capture.Node.EndByte()])
			case "template":
				node := capture.Node
				templateNode = &node
			}
		}

		if tagName != "css" && tagName != "html" {
			continue
		}
		if templateNode == nil {
			continue
		}

		regions = append(regions, templateRegion(tagName, templateNode, sourceBytes))
	}

	return regions
}

func templateRegion(tag string, node *sitter.Node, sourceBytes []byte) TemplateRegion {
	start, end := node.StartByte(), node.EndByte()
	raw := string(sourceBytes[start:end])
	if len(raw) >= 2 && raw[0] == '`' && raw[len(raw)-1] == '`' {
		start, end = start+1, end-1
	}

	region := TemplateRegion{
		Tag:       tag,
		Content:   string(sourceBytes[start:end]),
		StartByte: start,
		EndByte:   end,
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "string_fragment":
			region.Segments = append(region.Segments, Segment{
				Content:   string(sourceBytes[child.StartByte():child.EndByte()]),
				StartLine: child.StartPosition().Row,
				StartCol:  child.StartPosition().Column,
			})
		case "template_substitution":
			region.Substitutions++
		}
	}
	return region
}

// Splice replaces the content of each template with the text returned by
// fn. A template for which fn returns false is left unchanged.
func Splice(source string, regions []TemplateRegion, fn func(TemplateRegion) (string, bool)) string {
	var sb strings.Builder
	pos := uint(0)
	for _, r := range regions {
		if r.StartByte < pos {
			continue
		}
		replacement, ok := fn(r)
		if !ok {
			continue
		}
		sb.WriteString(source[pos:r.StartByte])
		sb.WriteString(replacement)
		pos = r.EndByte
	}
	sb.WriteString(source[pos:])
	return sb.String()
}

package html

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
)

// Parser finds CSS regions in HTML documents
type Parser struct {
	parser     *sitter.Parser
	styleQuery *sitter.Query
	attrQuery  *sitter.Query
}

var htmlLang = sitter.NewLanguage(tree_sitter_html.Language())

// parserPool is a pool of reusable HTML parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(htmlLang); err != nil {
			panic(fmt.Sprintf("failed to set HTML language: %v", err))
		}

		styleQuery, qerr := sitter.NewQuery(htmlLang, `(style_element (raw_text) @css)`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile style query: %v", qerr))
		}

		attrQuery, qerr := sitter.NewQuery(htmlLang, `
			(attribute
				(attribute_name) @attr_name
				(quoted_attribute_value (attribute_value) @attr_value))
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile attribute query: %v", qerr))
		}

		return &Parser{
			parser:     parser,
			styleQuery: styleQuery,
			attrQuery:  attrQuery,
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
	if p.styleQuery != nil {
		p.styleQuery.Close()
	}
	if p.attrQuery != nil {
		p.attrQuery.Close()
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

// ParseCSSRegions returns the <style> contents and style="..." attribute
// values of source, ordered by position
func (p *Parser) ParseCSSRegions(source string) []CSSRegion {
	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	regions := p.styleRegions(root, sourceBytes)
	regions = append(regions, p.attributeRegions(root, sourceBytes)...)

	slices.SortFunc(regions, func(a, b CSSRegion) int {
		return int(a.StartByte) - int(b.StartByte)
	})
	return regions
}

func (p *Parser) styleRegions(root *sitter.Node, sourceBytes []byte) []CSSRegion {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	var regions []CSSRegion
	matches := cursor.Matches(p.styleQuery, root, sourceBytes)
	for match := matches.Next(); match != nil; match = matches.Next() {
		for _, capture := range match.Captures {
			if capture.Node.StartByte() == capture.Node.EndByte() {
				continue
			}
			regions = append(regions, region(&capture.Node, sourceBytes, StyleTag))
		}
	}
	return regions
}

func (p *Parser) attributeRegions(root *sitter.Node, sourceBytes []byte) []CSSRegion {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	var regions []CSSRegion
	names := p.attrQuery.CaptureNames()
	matches := cursor.Matches(p.attrQuery, root, sourceBytes)
	for match := matches.Next(); match != nil; match = matches.Next() {
		var isStyle bool
		var value *sitter.Node
		for _, capture := range match.Captures {
			switch names[capture.Index] {
			case "attr_name":
				name := sourceBytes[capture.Node.StartByte():capture.Node.EndByte()]
				isStyle = strings.EqualFold(string(name), "style")
			case "attr_value":
				node := capture.Node
				value = &node
			}
		}
		if isStyle && value != nil {
			regions = append(regions, region(value, sourceBytes, StyleAttribute))
		}
	}
	return regions
}

func region(node *sitter.Node, sourceBytes []byte, kind RegionType) CSSRegion {
	return CSSRegion{
		Content:   string(sourceBytes[node.StartByte():node.EndByte()]),
		StartByte: node.StartByte(),
		EndByte:   node.EndByte(),
		StartLine: node.StartPosition().Row,
		StartCol:  node.StartPosition().Column,
		Type:      kind,
	}
}

// Splice replaces each region of source with the text returned by fn.
// Regions must be ordered and must not overlap, as ParseCSSRegions returns them.
// A region for which fn returns false is left unchanged.
func Splice(source string, regions []CSSRegion, fn func(CSSRegion) (string, bool)) string {
	var sb strings.Builder
	pos := uint(0)
	for _, r := range regions {
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

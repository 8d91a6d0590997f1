package html_test

import (
	"strings"
	"testing"

	"bennypowers.dev/csstheme/internal/parser/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regions(t *testing.T, source string) []html.CSSRegion {
	t.Helper()
	parser := html.AcquireParser()
	defer html.ReleaseParser(parser)
	return parser.ParseCSSRegions(source)
}

func TestParseCSSRegions(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		wantTags int
		wantAttr int
	}{
		{
			name:     "style tag",
			source:   "<html><head><style>.a { color: var(--c); }</style></head></html>",
			wantTags: 1,
		},
		{
			name:     "style attributes",
			source:   `<div style="color: red"></div><p style="margin: 0"></p>`,
			wantAttr: 2,
		},
		{
			name:     "multiple styles",
			source:   "<style>.a{}</style>\n<div style=\"color: red\"></div>\n<style>.b{}</style>",
			wantTags: 2,
			wantAttr: 1,
		},
		{
			name:   "other attributes",
			source: `<div class="style" title="color: red"></div>`,
		},
		{
			name:   "no CSS",
			source: "<p>hello</p>",
		},
		{
			name:   "empty style tag",
			source: "<style></style>",
		},
		{
			name:     "empty style tag beside a filled one",
			source:   "<style></style><style>.a { color: red; }</style>",
			wantTags: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags, attrs := 0, 0
			for _, r := range regions(t, tt.source) {
				switch r.Type {
				case html.StyleTag:
					tags++
				case html.StyleAttribute:
					attrs++
				}
			}
			assert.Equal(t, tt.wantTags, tags, "style tag count")
			assert.Equal(t, tt.wantAttr, attrs, "style attribute count")
		})
	}
}

func TestRegionOffsets(t *testing.T) {
	source := "<div>\n  <style>\n.a { color: var(--c); }\n  </style>\n</div>"

	got := regions(t, source)
	require.Len(t, got, 1)

	r := got[0]
	assert.Equal(t, html.StyleTag, r.Type)
	assert.Equal(t, "\n.a { color: var(--c); }\n  ", r.Content)
	assert.Equal(t, r.Content, source[r.StartByte:r.EndByte])
	assert.Equal(t, uint(1), r.StartLine)
	assert.Equal(t, uint(9), r.StartCol)
}

func TestRegionsAreOrdered(t *testing.T) {
	source := `<div style="a: 1"></div><style>.b{}</style><p style="c: 3"></p>`

	got := regions(t, source)
	require.Len(t, got, 3)
	assert.Equal(t, "a: 1", got[0].Content)
	assert.Equal(t, ".b{}", got[1].Content)
	assert.Equal(t, "c: 3", got[2].Content)
}

func TestSplice(t *testing.T) {
	source := `<style>.a{}</style><div style="x: 1"></div><style>.b{}</style>`
	found := regions(t, source)
	require.Len(t, found, 3)

	out := html.Splice(source, found, func(r html.CSSRegion) (string, bool) {
		if r.Type == html.StyleAttribute {
			return "", false
		}
		return strings.ToUpper(r.Content), true
	})
	assert.Equal(t, `<style>.A{}</style><div style="x: 1"></div><style>.B{}</style>`, out)
}

func TestSpliceNoRegions(t *testing.T) {
	assert.Equal(t, "<p></p>", html.Splice("<p></p>", nil, nil))
}

func TestRegionTypeString(t *testing.T) {
	assert.Equal(t, "style tag", html.StyleTag.String())
	assert.Equal(t, "style attribute", html.StyleAttribute.String())
	assert.Equal(t, "unknown", html.UnknownRegion.String())
}

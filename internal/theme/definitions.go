package theme

import (
	"strings"

	"bennypowers.dev/csstheme/internal/collections"
	"bennypowers.dev/csstheme/internal/parser/css"
	"bennypowers.dev/csstheme/internal/themeconfig"
)

// definitions collects, per theme, the variables that were substituted.
// The first value registered for a property in a theme wins.
type definitions struct {
	buckets *collections.OrderedMap[string, *collections.OrderedMap[string, string]]
}

func newDefinitions() *definitions {
	return &definitions{buckets: collections.NewOrderedMap[string, *collections.OrderedMap[string, string]]()}
}

func (d *definitions) add(theme, prop, value string) {
	bucket, ok := d.buckets.Get(theme)
	if !ok {
		bucket = collections.NewOrderedMap[string, string]()
		d.buckets.Set(theme, bucket)
	}
	bucket.SetIfAbsent(prop, value)
}

// addVariable registers every value of v: a single value under the default
// theme, a theme map under each of its themes
func (d *definitions) addVariable(name string, v *themeconfig.Variable) {
	v.Each(func(theme, value string) {
		d.add(theme, name, value)
	})
}

// inject adds one rule per non-empty theme at the top of root, after any
// leading @charset and @import rules. The first registered theme ends up
// first in the output.
func (d *definitions) inject(root *css.Root, selector func(theme string) string) []*css.Rule {
	anchor := leadingImports(root)
	themes := d.buckets.Keys()
	rules := make([]*css.Rule, 0, len(themes))
	for i := len(themes) - 1; i >= 0; i-- {
		bucket, _ := d.buckets.Get(themes[i])
		if bucket.Len() == 0 {
			continue
		}
		rule := css.NewRule(selector(themes[i]))
		bucket.Each(func(prop, value string) bool {
			decl := css.NewDeclaration(prop, value)
			decl.SetBefore(" ")
			rule.Append(decl)
			return true
		})
		if anchor != nil {
			rule.SetBefore("\n")
			root.InsertAfter(anchor, rule)
		} else {
			root.Prepend(rule)
		}
		rules = append(rules, rule)
	}
	return rules
}

// leadingImports returns the last of the @charset and @import rules that
// open the stylesheet, or nil when there are none
func leadingImports(root *css.Root) css.Node {
	var last css.Node
	for _, n := range root.Nodes() {
		switch n := n.(type) {
		case *css.Comment:
			continue
		case *css.AtRule:
			if !n.HasBlock && (strings.EqualFold(n.Name, "charset") || strings.EqualFold(n.Name, "import")) {
				last = n
				continue
			}
		}
		break
	}
	return last
}

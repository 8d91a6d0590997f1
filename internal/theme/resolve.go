// Package theme resolves var() references against a theme configuration.
//
// Every declaration using a variable with theme values is resolved to the
// default theme in place, and copied into one clone of its rule per other
// theme. Clones are scoped with a selector prefix, e.g. body.dark .a, and
// hold only the declarations that differ per theme.
package theme

import (
	"strings"

	"bennypowers.dev/csstheme/internal/collections"
	"bennypowers.dev/csstheme/internal/log"
	"bennypowers.dev/csstheme/internal/parser/css"
	"bennypowers.dev/csstheme/internal/themeconfig"
)

// ResolveString parses source, resolves it and prints the result
func ResolveString(source string, opts Options) (string, error) {
	root, err := css.Parse(source)
	if err != nil {
		return "", err
	}
	if err := Resolve(root, opts); err != nil {
		return "", err
	}
	return root.String(), nil
}

// Resolve rewrites root in place. On error the changes made so far are
// kept; the tree is not rolled back.
func Resolve(root *css.Root, opts Options) error {
	r := newResolver(opts.withDefaults())
	if err := css.WalkDecls(root, r.visit); err != nil {
		return err
	}
	r.finish(root)
	return nil
}

// themeRuleRecord tracks the clones made of one original rule
type themeRuleRecord struct {
	clones *collections.OrderedMap[string, *css.Rule]
	// anchor is the node the next clone goes after: the rule itself, then
	// the last clone inserted
	anchor css.Node
}

// resolver holds the state of a single pass
type resolver struct {
	opts Options

	records    map[*css.Rule]*themeRuleRecord
	cloneTheme map[*css.Rule]string
	preserved  collections.Set[*css.Declaration]
	defs       *definitions

	// definitions to remove once the walk is over, unless pinned
	pending []*css.Declaration
	// variables whose definitions a computed declaration keeps
	pinned collections.Set[string]
}

func newResolver(opts Options) *resolver {
	return &resolver{
		opts:       opts,
		records:    make(map[*css.Rule]*themeRuleRecord),
		cloneTheme: make(map[*css.Rule]string),
		preserved:  collections.NewSet[*css.Declaration](),
		defs:       newDefinitions(),
		pinned:     collections.NewSet[string](),
	}
}

func (r *resolver) visit(decl *css.Declaration) error {
	switch {
	case r.preserved.Has(decl):
		return nil
	case decl.IsCustomProperty():
		if r.opts.Preserve.For(decl) == PreserveNone {
			r.pending = append(r.pending, decl)
		}
		return nil
	case css.HasVarCall(decl.Value):
		return r.substitute(decl)
	default:
		return nil
	}
}

func (r *resolver) substitute(decl *css.Declaration) error {
	calls := css.FindVarCalls(decl.Value)
	if len(calls) == 0 {
		return nil
	}

	rule := decl.Rule()
	theme, inClone := r.cloneTheme[rule]
	if !inClone {
		theme = themeconfig.DefaultTheme
	}

	var themes []string
	seen := collections.NewSet[string]()
	for _, call := range calls {
		v, ok := r.opts.Variables.Lookup(call.Name)
		if !ok || !v.IsThemed() {
			continue
		}
		if rule == nil {
			return newOutsideRuleError(decl, call.Name)
		}
		for _, t := range v.Themes() {
			if t != themeconfig.DefaultTheme && !seen.Has(t) {
				seen.Add(t)
				themes = append(themes, t)
			}
		}
	}
	if !inClone {
		for _, t := range themes {
			r.cloneFor(rule, t).Append(decl.Clone())
		}
	}

	value, used := r.render(decl.Value, calls, theme, inClone)
	if value == decl.Value {
		return nil
	}
	switch r.opts.Preserve.For(decl) {
	case PreserveAll:
		original := decl.Clone()
		r.preserved.Add(original)
		decl.Parent().InsertAfter(decl, original)
	case PreserveComputed:
		r.pinned.Add(used...)
	}
	decl.Value = value
	return nil
}

// render replaces the calls in value with their values for theme.
// Unknown variables, and theme maps with neither the theme, a default nor
// a fallback, are left as written. It returns the variables replaced.
func (r *resolver) render(value string, calls []css.VarCall, theme string, inClone bool) (string, []string) {
	var sb strings.Builder
	var used []string
	pos := 0
	for _, call := range calls {
		v, ok := r.opts.Variables.Lookup(call.Name)
		if !ok {
			log.Debug("Unknown variable %s", call.Name)
			continue
		}
		replacement, ok := v.ValueFor(theme)
		if !ok {
			if call.Fallback == nil {
				log.Debug("Variable %s has no value for theme %s", call.Name, theme)
				continue
			}
			replacement = *call.Fallback
		}
		if !inClone || !v.IsThemed() {
			r.defs.addVariable(call.Name, v)
		}
		sb.WriteString(value[pos:call.Start])
		sb.WriteString(replacement)
		pos = call.End
		used = append(used, call.Name)
	}
	sb.WriteString(value[pos:])
	return sb.String(), used
}

// cloneFor returns the clone of rule for theme, creating an empty one
// after the rule's previous clones when needed
func (r *resolver) cloneFor(rule *css.Rule, theme string) *css.Rule {
	rec, ok := r.records[rule]
	if !ok {
		rec = &themeRuleRecord{
			clones: collections.NewOrderedMap[string, *css.Rule](),
			anchor: rule,
		}
		r.records[rule] = rec
	}
	if clone, ok := rec.clones.Get(theme); ok {
		return clone
	}

	clone := rule.CloneEmpty()
	selectors := rule.Selectors()
	for i, s := range selectors {
		selectors[i] = r.opts.ThemeSelector(theme, s)
	}
	clone.SetSelectors(selectors)
	if !strings.Contains(clone.Before(), "\n") {
		clone.SetBefore("\n")
	}

	parent := rule.Parent()
	if !parent.InsertAfter(rec.anchor, clone) {
		parent.InsertAfter(rule, clone)
	}
	rec.anchor = clone
	rec.clones.Set(theme, clone)
	r.cloneTheme[clone] = theme
	log.Debug("Created %s clone of %q", theme, rule.Selector)
	return clone
}

// finish removes the definitions that are not preserved and the rules they
// leave empty, then injects the collected definitions
func (r *resolver) finish(root *css.Root) {
	var emptied []css.Container
	for _, decl := range r.pending {
		if r.pinned.Has(decl.Prop) {
			continue
		}
		parent := decl.Parent()
		decl.Remove()
		if parent != nil && parent.Type() != css.RootNode && len(parent.Nodes()) == 0 {
			emptied = append(emptied, parent)
		}
	}
	for _, c := range emptied {
		if len(c.Nodes()) == 0 {
			c.Remove()
		}
	}

	if r.opts.PreserveInjectedVariables {
		r.defs.inject(root, r.opts.ThemeDefineSelector)
	}
}

package css

import "strings"

type stringWriter interface {
	WriteString(s string) (int, error)
}

// String prints the stylesheet
func (r *Root) String() string {
	var sb strings.Builder
	r.stringify(&sb, false)
	return sb.String()
}

func (r *Root) stringify(sb stringWriter, _ bool) {
	r.body.stringify(sb, r.Raws.Semicolon)
	sb.WriteString(r.Raws.After)
}

// stringify prints the children. Every declaration gets a ";" except the
// last non-comment child, which follows the container's Semicolon raw.
func (b *body) stringify(sb stringWriter, semicolon bool) {
	last := len(b.nodes) - 1
	for last > 0 && b.nodes[last].Type() == CommentNode {
		last--
	}
	for i, n := range b.nodes {
		sb.WriteString(n.Before())
		n.stringify(sb, i != last || semicolon)
	}
}

func (r *Rule) String() string { return nodeString(r) }

func (r *Rule) stringify(sb stringWriter, _ bool) {
	sb.WriteString(r.Selector)
	sb.WriteString(r.Raws.Between)
	sb.WriteString("{")
	r.body.stringify(sb, r.Raws.Semicolon)
	sb.WriteString(r.Raws.After)
	sb.WriteString("}")
}

func (a *AtRule) String() string { return nodeString(a) }

func (a *AtRule) stringify(sb stringWriter, semicolon bool) {
	sb.WriteString("@")
	sb.WriteString(a.Name)
	sb.WriteString(a.Raws.AfterName)
	sb.WriteString(a.Params)
	sb.WriteString(a.Raws.Between)
	if !a.HasBlock {
		if semicolon {
			sb.WriteString(";")
		}
		return
	}
	sb.WriteString("{")
	a.body.stringify(sb, a.Raws.Semicolon)
	sb.WriteString(a.Raws.After)
	sb.WriteString("}")
}

// Inner prints the children of the at-rule without the braces around them
func (a *AtRule) Inner() string {
	var sb strings.Builder
	a.body.stringify(&sb, a.Raws.Semicolon)
	sb.WriteString(a.Raws.After)
	return sb.String()
}

func (d *Declaration) String() string { return nodeString(d) }

func (d *Declaration) stringify(sb stringWriter, semicolon bool) {
	sb.WriteString(d.Prop)
	sb.WriteString(d.Raws.Between)
	sb.WriteString(d.Value)
	switch {
	case d.Raws.Important != "":
		sb.WriteString(d.Raws.Important)
	case d.Important:
		sb.WriteString(" !important")
	}
	if semicolon {
		sb.WriteString(";")
	}
}

func (c *Comment) String() string { return nodeString(c) }

func (c *Comment) stringify(sb stringWriter, _ bool) {
	sb.WriteString(c.Text)
}

func (r *Raw) String() string { return nodeString(r) }

func (r *Raw) stringify(sb stringWriter, _ bool) {
	sb.WriteString(r.Text)
}

func nodeString(n Node) string {
	var sb strings.Builder
	n.stringify(&sb, false)
	return sb.String()
}

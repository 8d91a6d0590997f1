package themeconfig

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// MarshalJSON writes the variables as an object in definition order
func (vs *Variables) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range vs.Names() {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(&buf, name)
		buf.WriteByte(':')
		v, _ := vs.Lookup(name)
		b, err := v.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON writes a single value as a string and a theme map as an object
func (v *Variable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if !v.IsThemed() {
		writeJSONString(&buf, v.value)
		return buf.Bytes(), nil
	}
	buf.WriteByte('{')
	i := 0
	v.Each(func(theme, value string) {
		if i > 0 {
			buf.WriteByte(',')
		}
		i++
		writeJSONString(&buf, theme)
		buf.WriteByte(':')
		writeJSONString(&buf, value)
	})
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) {
	// strings always marshal
	b, _ := json.Marshal(s)
	buf.Write(b)
}

// MarshalYAML emits the variables as a mapping in definition order
func (vs *Variables) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range vs.Names() {
		v, _ := vs.Lookup(name)
		value, err := v.MarshalYAML()
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, scalarNode(name), value.(*yaml.Node))
	}
	return node, nil
}

// MarshalYAML emits a scalar or a mapping of themes
func (v *Variable) MarshalYAML() (any, error) {
	if !v.IsThemed() {
		return scalarNode(v.value), nil
	}
	node := &yaml.Node{Kind: yaml.MappingNode}
	v.Each(func(theme, value string) {
		node.Content = append(node.Content, scalarNode(theme), scalarNode(value))
	})
	return node, nil
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

package themeconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format identifies the syntax of a variable file
type Format int

const (
	// FormatUnknown is returned for unrecognised file extensions
	FormatUnknown Format = iota
	// FormatJSON accepts JSON with comments and trailing commas
	FormatJSON
	// FormatYAML accepts YAML
	FormatYAML
	// FormatCSS reads a theme stylesheet using the body / body.<theme> convention
	FormatCSS
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatCSS:
		return "css"
	default:
		return "unknown"
	}
}

// FormatFromPath guesses the format from a file extension
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".css":
		return FormatCSS
	default:
		return FormatUnknown
	}
}

// LoadFile reads a variable file, choosing the parser by extension.
// Theme stylesheets are read with the default selector mapping.
func LoadFile(path string) (*Variables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read variables: %w", err)
	}
	format := FormatFromPath(path)
	if format == FormatCSS {
		return ExtractCSS(string(data), ExtractOptions{})
	}
	vars, err := Parse(data, format)
	if err != nil {
		var invalid *InvalidConfigError
		if errors.As(err, &invalid) && invalid.FilePath == "" {
			invalid.FilePath = path
		}
		return nil, err
	}
	return vars, nil
}

// Parse decodes a JSON or YAML document of the form
//
//	{ "--name": "value", "--other": { "default": "a", "dark": "b" } }
//
// keeping the order of variables and themes as written.
func Parse(data []byte, format Format) (*Variables, error) {
	switch format {
	case FormatJSON:
		return parseJSON(jsonc.ToJSON(data))
	case FormatYAML:
		return parseYAML(data)
	default:
		return nil, NewInvalidConfigError("", fmt.Sprintf("unsupported format %s", format))
	}
}

func parseJSON(data []byte) (*Variables, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	vars := New()
	for dec.More() {
		name, err := jsonKey(dec)
		if err != nil {
			return nil, err
		}
		if err := checkName(name); err != nil {
			return nil, err
		}
		tok, err := dec.Token()
		if err != nil {
			return nil, NewInvalidConfigError("", err.Error())
		}
		if delim, ok := tok.(json.Delim); ok {
			if delim != '{' {
				return nil, NewInvalidConfigError("", fmt.Sprintf("%s: expected a value or a theme map", name))
			}
			v := Themed()
			for dec.More() {
				theme, err := jsonKey(dec)
				if err != nil {
					return nil, err
				}
				value, err := jsonScalar(dec, name+"."+theme)
				if err != nil {
					return nil, err
				}
				v.SetTheme(theme, value)
			}
			if err := expectDelim(dec, '}'); err != nil {
				return nil, err
			}
			vars.Define(name, v)
			continue
		}
		value, err := scalarString(tok, name)
		if err != nil {
			return nil, err
		}
		vars.Set(name, value)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, NewInvalidConfigError("", "unexpected data after the top-level object")
	}
	return vars, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return NewInvalidConfigError("", err.Error())
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return NewInvalidConfigError("", fmt.Sprintf("expected %q, found %v", want, tok))
	}
	return nil
}

func jsonKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", NewInvalidConfigError("", err.Error())
	}
	key, ok := tok.(string)
	if !ok {
		return "", NewInvalidConfigError("", fmt.Sprintf("expected a key, found %v", tok))
	}
	return key, nil
}

func jsonScalar(dec *json.Decoder, path string) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", NewInvalidConfigError("", err.Error())
	}
	return scalarString(tok, path)
}

func scalarString(tok json.Token, path string) (string, error) {
	switch v := tok.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", NewInvalidConfigError("", fmt.Sprintf("%s: values must be strings or numbers", path))
	}
}

func parseYAML(data []byte) (*Variables, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, NewInvalidConfigError("", err.Error())
	}
	vars := New()
	if len(doc.Content) == 0 {
		return vars, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, NewInvalidConfigError("", "expected a mapping of variable names")
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		name, value := root.Content[i].Value, root.Content[i+1]
		if err := checkName(name); err != nil {
			return nil, err
		}
		switch value.Kind {
		case yaml.ScalarNode:
			vars.Set(name, value.Value)
		case yaml.MappingNode:
			v := Themed()
			for j := 0; j+1 < len(value.Content); j += 2 {
				theme, themeValue := value.Content[j].Value, value.Content[j+1]
				if themeValue.Kind != yaml.ScalarNode {
					return nil, NewInvalidConfigError("", fmt.Sprintf("%s.%s: values must be scalars (line %d)", name, theme, themeValue.Line))
				}
				v.SetTheme(theme, themeValue.Value)
			}
			vars.Define(name, v)
		default:
			return nil, NewInvalidConfigError("", fmt.Sprintf("%s: expected a value or a theme map (line %d)", name, value.Line))
		}
	}
	return vars, nil
}

func checkName(name string) error {
	if !strings.HasPrefix(name, "--") || len(name) == 2 {
		return NewInvalidConfigError("", fmt.Sprintf("%q is not a custom property name (must start with --)", name))
	}
	return nil
}

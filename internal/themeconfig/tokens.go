package themeconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	asimonimParser "bennypowers.dev/asimonim/parser"
	"gopkg.in/yaml.v3"
)

// TokenSource is a design-token file providing the values of one theme
type TokenSource struct {
	// Path of a DTCG JSON or YAML file
	Path string
	// Theme receives the file's tokens; empty means the default theme
	Theme string
	// Prefix is prepended to variable names: --<prefix>-<token-name>
	Prefix string
}

// curlyReferenceRegexp matches DTCG alias references like {color.primary}
var curlyReferenceRegexp = regexp.MustCompile(`\{([^}]+)\}`)

// LoadTokens reads a set of token files into one configuration.
// Every token becomes a theme-map variable, so files for several themes
// combine into multi-theme variables. Token aliases are rewritten as var()
// references; call ResolveAliases to flatten them.
func LoadTokens(sources ...TokenSource) (*Variables, error) {
	vars := New()
	for _, src := range sources {
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read tokens: %w", err)
		}
		if FormatFromPath(src.Path) == FormatYAML {
			if data, err = yamlToJSON(data); err != nil {
				return nil, NewInvalidConfigError(src.Path, err.Error())
			}
		}
		tokens, err := ParseTokens(data, src.Theme, src.Prefix)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.Path, err)
		}
		vars.Merge(tokens)
	}
	return vars, nil
}

// ParseTokens converts DTCG JSON into variables of a single theme
func ParseTokens(data []byte, theme, prefix string) (*Variables, error) {
	if theme == "" {
		theme = DefaultTheme
	}
	parser := asimonimParser.NewJSONParser()
	tokens, err := parser.Parse(data, asimonimParser.Options{Prefix: prefix})
	if err != nil {
		return nil, err
	}

	vars := New()
	for _, tok := range tokens {
		value := curlyReferenceRegexp.ReplaceAllStringFunc(fmt.Sprint(tok.Value), func(ref string) string {
			return "var(" + cssVariableName(prefix, strings.Trim(ref, "{}")) + ")"
		})
		vars.Define(cssVariableName(prefix, tok.Name), Themed(theme, value))
	}
	return vars, nil
}

// cssVariableName returns e.g. "--color-primary" or "--my-prefix-color-primary"
func cssVariableName(prefix, name string) string {
	name = strings.ReplaceAll(name, ".", "-")
	if prefix != "" {
		return "--" + strings.ReplaceAll(prefix, ".", "-") + "-" + name
	}
	return "--" + name
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// Package config handles configuration file loading and parsing.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultThemeSelector         = "body.{theme} {selector}"
	DefaultThemeDefineSelector   = "body.{theme}"
	DefaultDefaultDefineSelector = "body"
	DefaultConcurrency           = 4
)

// FileNames are the configuration files looked up, in order, in a directory
// and its .config subdirectory
var FileNames = []string{"csstheme.toml", "csstheme.yaml", "csstheme.yml", "csstheme.json"}

// ErrUnsupportedFormat indicates a configuration file with an unknown extension
var ErrUnsupportedFormat = errors.New("unsupported configuration format")

// Config represents the csstheme configuration.
type Config struct {
	// Variables are variable files: JSON, YAML or theme stylesheets
	Variables []string `toml:"variables" yaml:"variables" json:"variables"`
	// Tokens are design-token files, one theme each
	Tokens []TokenConfig `toml:"tokens" yaml:"tokens" json:"tokens"`
	// ResolveAliases flattens var() references between configured variables
	ResolveAliases bool `toml:"resolveAliases" yaml:"resolveAliases" json:"resolveAliases"`
	// ColorFormat rewrites color values: "", "hex", "rgb" or "hsl"
	ColorFormat string `toml:"colorFormat" yaml:"colorFormat" json:"colorFormat"`

	// Preserve is true, false or "computed"
	Preserve any `toml:"preserve" yaml:"preserve" json:"preserve"`
	// PreserveInjectedVariables prepends per-theme definition rules
	PreserveInjectedVariables bool `toml:"preserveInjectedVariables" yaml:"preserveInjectedVariables" json:"preserveInjectedVariables"`
	// ThemeSelector is a template with {theme} and {selector} placeholders
	ThemeSelector string `toml:"themeSelector" yaml:"themeSelector" json:"themeSelector"`
	// ThemeDefineSelector is a template with a {theme} placeholder
	ThemeDefineSelector string `toml:"themeDefineSelector" yaml:"themeDefineSelector" json:"themeDefineSelector"`
	// DefaultDefineSelector names the rule of the default theme's injected definitions
	DefaultDefineSelector string `toml:"defaultDefineSelector" yaml:"defaultDefineSelector" json:"defaultDefineSelector"`

	// Include and Exclude are doublestar globs selecting input files
	Include []string `toml:"include" yaml:"include" json:"include"`
	Exclude []string `toml:"exclude" yaml:"exclude" json:"exclude"`
	// OutDir receives the output, mirroring input paths. Empty writes to stdout.
	OutDir string `toml:"outDir" yaml:"outDir" json:"outDir"`
	// Concurrency bounds the number of files processed at once
	Concurrency int `toml:"concurrency" yaml:"concurrency" json:"concurrency"`

	// Path is the file the configuration was read from, if any
	Path string `toml:"-" yaml:"-" json:"-"`
}

// TokenConfig names a design-token file and the theme it provides
type TokenConfig struct {
	Path   string `toml:"path" yaml:"path" json:"path"`
	Theme  string `toml:"theme" yaml:"theme" json:"theme"`
	Prefix string `toml:"prefix" yaml:"prefix" json:"prefix"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Preserve:              false,
		ThemeSelector:         DefaultThemeSelector,
		ThemeDefineSelector:   DefaultThemeDefineSelector,
		DefaultDefineSelector: DefaultDefaultDefineSelector,
		Concurrency:           DefaultConcurrency,
	}
}

// Discover returns the first configuration file found in dir or dir/.config,
// or "" when there is none
func Discover(dir string) string {
	for _, sub := range []string{"", ".config"} {
		for _, name := range FileNames {
			path := filepath.Join(dir, sub, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}
	return ""
}

// LoadConfig loads configuration from the specified path.
// If path is empty, the working directory is searched with Discover.
// Returns default config if no file is found.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		if path = Discover(wd); path == "" {
			return DefaultConfig(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

// Parse decodes configuration data over the defaults. ext selects the
// syntax: ".toml", ".yaml", ".yml", ".json" or ".jsonc".
func Parse(data []byte, ext string) (*Config, error) {
	cfg := DefaultConfig()
	var err error
	switch strings.ToLower(ext) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be checked by decoding alone
func (c *Config) Validate() error {
	if _, err := c.PreserveValue(); err != nil {
		return err
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	for i, tok := range c.Tokens {
		if tok.Path == "" {
			return fmt.Errorf("tokens[%d]: path is required", i)
		}
	}
	return nil
}

// PreserveValue returns the preserve setting as "true", "false" or "computed"
func (c *Config) PreserveValue() (string, error) {
	switch v := c.Preserve.(type) {
	case nil:
		return "false", nil
	case bool:
		return fmt.Sprint(v), nil
	case string:
		switch s := strings.ToLower(strings.TrimSpace(v)); s {
		case "", "false":
			return "false", nil
		case "true", "computed":
			return s, nil
		}
	}
	return "", fmt.Errorf("preserve must be true, false or \"computed\", got %v", c.Preserve)
}

// resolvePaths makes relative file paths relative to dir
func (c *Config) resolvePaths(dir string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	for i := range c.Variables {
		c.Variables[i] = abs(c.Variables[i])
	}
	for i := range c.Tokens {
		c.Tokens[i].Path = abs(c.Tokens[i].Path)
	}
	for i := range c.Include {
		c.Include[i] = abs(c.Include[i])
	}
	for i := range c.Exclude {
		c.Exclude[i] = abs(c.Exclude[i])
	}
	c.OutDir = abs(c.OutDir)
}

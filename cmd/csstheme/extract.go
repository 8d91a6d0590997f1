package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"bennypowers.dev/csstheme/internal/themeconfig"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type extractOptions struct {
	format string
	output string
	prefix string
}

func newExtractCmd() *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <theme.css>",
		Short: "Print the theme configuration of a theme stylesheet",
		Long: `Read a stylesheet written as

  body { --name: value; }
  body.<theme> { --name: value; }

and print its variables as a JSON or YAML configuration, with the
declarations under body as the default theme.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "json",
		"Output format: json or yaml")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "",
		"Write to this file instead of stdout")
	cmd.Flags().StringVar(&opts.prefix, "theme-prefix", "",
		"Strip this prefix from theme class names, e.g. theme- for body.theme-dark")
	return cmd
}

func runExtract(cmd *cobra.Command, opts *extractOptions, path string) error {
	vars, err := themeconfig.LoadCSSFile(path, themeconfig.ExtractOptions{
		SelectorToTheme: func(suffix string) string {
			return strings.TrimPrefix(strings.TrimPrefix(suffix, "."), opts.prefix)
		},
	})
	if err != nil {
		return err
	}

	data, err := encodeVariables(vars, opts.format)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", opts.output, err)
		}
		defer f.Close()
		w = f
	}
	_, err = w.Write(data)
	return err
}

func encodeVariables(vars *themeconfig.Variables, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(vars, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		return yaml.Marshal(vars)
	default:
		return nil, fmt.Errorf("unknown format %q, want json or yaml", format)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"bennypowers.dev/csstheme/internal/collections"
	"bennypowers.dev/csstheme/internal/config"
	"bennypowers.dev/csstheme/internal/log"
	"bennypowers.dev/csstheme/internal/parser/css"
	"bennypowers.dev/csstheme/internal/parser/html"
	"bennypowers.dev/csstheme/internal/parser/js"
	"bennypowers.dev/csstheme/internal/processor"
	"bennypowers.dev/csstheme/internal/version"
	"bennypowers.dev/csstheme/internal/watch"
	"github.com/spf13/cobra"
)

// ErrNoInputs is returned when neither arguments nor the configuration name input files
var ErrNoInputs = errors.New("no input files")

type rootOptions struct {
	configPath string
	verbose    bool
	watch      bool

	variables             []string
	tokens                []string
	tokenPrefix           string
	resolveAliases        bool
	colorFormat           string
	preserve              string
	preserveInjected      bool
	themeSelector         string
	themeDefineSelector   string
	defaultDefineSelector string
	exclude               []string
	outDir                string
	concurrency           int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "csstheme [flags] <files|globs>...",
		Short: "Resolve CSS variables into per-theme rules",
		Long: `csstheme replaces var(--name) references with the values of a theme
configuration. A declaration using a variable with several theme values
keeps the default value in place, and its rule is cloned once per other
theme under a scoping selector such as "body.dark .card".

Inputs are CSS files, <style> blocks and style attributes in HTML, and
css tagged templates in JavaScript and TypeScript.

Examples:
  # Resolve with a variables file, printing to stdout
  csstheme --variables theme.css src/app.css

  # Resolve a tree into dist/ using csstheme.toml
  csstheme --out-dir dist 'src/**/*.css'

  # Keep the var() syntax after each resolved value
  csstheme --preserve true --variables vars.yaml app.css`,
		Args:          cobra.ArbitraryArgs,
		Version:       version.Full(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if opts.verbose {
				log.SetLevel(log.LevelDebug)
			}
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			css.ClosePool()
			html.ClosePool()
			js.ClosePool()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, opts, args)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"Enable debug logging")
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"Path to config file (default: csstheme.{toml,yaml,yml,json} in the working directory or .config/)")

	flags := cmd.Flags()
	flags.BoolVarP(&opts.watch, "watch", "w", false,
		"Rebuild when inputs or configuration change")
	flags.StringArrayVar(&opts.variables, "variables", nil,
		"Variable file: JSON, JSONC, YAML or a theme stylesheet (repeatable)")
	flags.StringArrayVar(&opts.tokens, "tokens", nil,
		"Design-token file for a theme, as theme=path (repeatable)")
	flags.StringVar(&opts.tokenPrefix, "token-prefix", "",
		"Prefix for variables named after design tokens")
	flags.BoolVar(&opts.resolveAliases, "resolve-aliases", false,
		"Flatten var() references between configured variables")
	flags.StringVar(&opts.colorFormat, "color-format", "",
		"Rewrite color values as hex, rgb or hsl")
	flags.StringVar(&opts.preserve, "preserve", "",
		`Keep original var() syntax: true, false or "computed"`)
	flags.BoolVar(&opts.preserveInjected, "preserve-injected-variables", false,
		"Prepend a rule per theme defining the resolved variables")
	flags.StringVar(&opts.themeSelector, "theme-selector", "",
		"Selector template for theme clones (default: "+config.DefaultThemeSelector+")")
	flags.StringVar(&opts.themeDefineSelector, "theme-define-selector", "",
		"Selector template for injected definitions (default: "+config.DefaultThemeDefineSelector+")")
	flags.StringVar(&opts.defaultDefineSelector, "default-define-selector", "",
		"Selector for the default theme's injected definitions (default: "+config.DefaultDefaultDefineSelector+")")
	flags.StringArrayVar(&opts.exclude, "exclude", nil,
		"Glob of inputs to skip (repeatable)")
	flags.StringVarP(&opts.outDir, "out-dir", "o", "",
		"Write results here, mirroring input paths (default: stdout)")
	flags.IntVarP(&opts.concurrency, "concurrency", "j", config.DefaultConcurrency,
		"Number of files processed at once")

	cmd.AddCommand(newExtractCmd(), newVersionCmd())
	return cmd
}

// loadConfig reads the configuration file and applies the flags the user set
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Path != "" {
		log.Debug("Loaded config from %s", cfg.Path)
	}

	changed := cmd.Flags().Changed
	if changed("variables") {
		cfg.Variables = append(cfg.Variables, o.variables...)
	}
	if changed("tokens") {
		for _, entry := range o.tokens {
			themeName, path, ok := strings.Cut(entry, "=")
			if !ok || themeName == "" || path == "" {
				return nil, fmt.Errorf("invalid --tokens %q, want theme=path", entry)
			}
			cfg.Tokens = append(cfg.Tokens, config.TokenConfig{Path: path, Theme: themeName, Prefix: o.tokenPrefix})
		}
	}
	if changed("resolve-aliases") {
		cfg.ResolveAliases = o.resolveAliases
	}
	if changed("color-format") {
		cfg.ColorFormat = o.colorFormat
	}
	if changed("preserve") {
		cfg.Preserve = o.preserve
	}
	if changed("preserve-injected-variables") {
		cfg.PreserveInjectedVariables = o.preserveInjected
	}
	if changed("theme-selector") {
		cfg.ThemeSelector = o.themeSelector
	}
	if changed("theme-define-selector") {
		cfg.ThemeDefineSelector = o.themeDefineSelector
	}
	if changed("default-define-selector") {
		cfg.DefaultDefineSelector = o.defaultDefineSelector
	}
	if changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, o.exclude...)
	}
	if changed("out-dir") {
		cfg.OutDir = o.outDir
	}
	if changed("concurrency") {
		cfg.Concurrency = o.concurrency
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Debug("Config: %s", cfg)
	return cfg, nil
}

// build is one complete run over the inputs
type build struct {
	cfg   *config.Config
	files []string
}

func (o *rootOptions) prepare(cmd *cobra.Command, args []string) (*build, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	inputs := args
	if len(inputs) == 0 {
		inputs = cfg.Include
	}
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}
	files, err := config.ExpandInputs(inputs, cfg.Exclude)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoInputs
	}
	return &build{cfg: cfg, files: files}, nil
}

func (b *build) run(ctx context.Context, cmd *cobra.Command) error {
	vars, err := b.cfg.LoadVariables()
	if err != nil {
		return err
	}
	engineOpts, err := b.cfg.Options(vars)
	if err != nil {
		return err
	}
	log.Debug("Loaded %d variables in themes %v", vars.Len(), vars.ThemeNames())

	p := processor.New(engineOpts, processor.Settings{
		OutDir:      b.cfg.OutDir,
		BaseDir:     baseDir(b.cfg),
		Concurrency: b.cfg.Concurrency,
		Stdout:      cmd.OutOrStdout(),
	})
	results, err := p.Run(ctx, b.files)

	changed := 0
	for _, r := range results {
		if r.Changed {
			changed++
		}
	}
	log.Info("Processed %d files, %d changed", len(b.files), changed)
	return err
}

// baseDir is the directory output paths are mirrored from
func baseDir(cfg *config.Config) string {
	if cfg.Path != "" {
		return filepath.Dir(cfg.Path)
	}
	return ""
}

// watchedFiles lists the inputs and every file the configuration reads
func (b *build) watchedFiles() []string {
	files := append([]string{}, b.files...)
	files = append(files, b.cfg.Variables...)
	for _, tok := range b.cfg.Tokens {
		files = append(files, tok.Path)
	}
	if b.cfg.Path != "" {
		files = append(files, b.cfg.Path)
	}
	return files
}

func runResolve(cmd *cobra.Command, opts *rootOptions, args []string) error {
	b, err := opts.prepare(cmd, args)
	if err != nil {
		return err
	}
	err = b.run(cmd.Context(), cmd)
	if !opts.watch {
		return err
	}
	if err != nil {
		log.Error("%v", err)
	}
	return runWatch(cmd, opts, args, b)
}

func runWatch(cmd *cobra.Command, opts *rootOptions, args []string, b *build) error {
	ctx := cmd.Context()
	if b.cfg.OutDir == "" {
		log.Warn("Watching without --out-dir prints every rebuild to stdout")
	}

	outDir := ""
	if b.cfg.OutDir != "" {
		outDir, _ = filepath.Abs(b.cfg.OutDir)
	}
	known := absPaths(b.watchedFiles())
	w, err := watch.New(watch.DefaultDebounce, func(path string) bool {
		if outDir != "" && strings.HasPrefix(path, outDir+string(filepath.Separator)) {
			return false
		}
		return known.Has(path) || processor.LanguageFromPath(path) != processor.UnknownLanguage
	})
	if err != nil {
		return err
	}
	if err := w.Add(b.watchedFiles()...); err != nil {
		w.Close()
		return err
	}
	log.Info("Watching %d directories", len(w.Dirs()))

	return w.Run(ctx, func(changed []string) {
		log.Info("Rebuilding after changes to %s", strings.Join(changed, ", "))
		next, err := opts.prepare(cmd, args)
		if err != nil {
			log.Error("%v", err)
			return
		}
		if err := next.run(ctx, cmd); err != nil {
			log.Error("%v", err)
		}
		files := next.watchedFiles()
		known.Add(absPaths(files).Members()...)
		if err := w.Add(files...); err != nil {
			log.Warn("%v", err)
		}
	})
}

func absPaths(paths []string) collections.Set[string] {
	set := collections.NewSet[string]()
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			set.Add(abs)
		}
	}
	return set
}

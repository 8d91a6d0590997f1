package processor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"bennypowers.dev/csstheme/internal/log"
	"bennypowers.dev/csstheme/internal/parser/css"
	"bennypowers.dev/csstheme/internal/parser/html"
	"bennypowers.dev/csstheme/internal/parser/js"
	"bennypowers.dev/csstheme/internal/theme"
)

// ErrUnsupportedFile is returned for file types the processor cannot read
var ErrUnsupportedFile = errors.New("unsupported file type")

// Language is the kind of source a file holds
type Language int

const (
	UnknownLanguage Language = iota
	CSS
	HTML
	JavaScript
)

// LanguageFromPath picks the language from the file extension
func LanguageFromPath(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".css":
		return CSS
	case ".html", ".htm":
		return HTML
	case ".js", ".mjs", ".cjs", ".ts", ".mts", ".jsx", ".tsx":
		return JavaScript
	default:
		return UnknownLanguage
	}
}

// ProcessSource resolves source as the language of path
func (p *Processor) ProcessSource(path, source string) (string, error) {
	switch LanguageFromPath(path) {
	case CSS:
		return theme.ResolveString(source, p.opts)
	case HTML:
		return p.processHTML(source)
	case JavaScript:
		return p.processJS(source)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Ext(path))
	}
}

func (p *Processor) processHTML(source string) (string, error) {
	parser := html.AcquireParser()
	regions := parser.ParseCSSRegions(source)
	html.ReleaseParser(parser)

	var errs []error
	out := html.Splice(source, regions, func(r html.CSSRegion) (string, bool) {
		var resolved string
		var err error
		switch r.Type {
		case html.StyleTag:
			resolved, err = theme.ResolveString(r.Content, p.opts)
		case html.StyleAttribute:
			resolved, err = p.resolveAttribute(r.Content)
			if errors.Is(err, theme.ErrNoEnclosingRule) {
				log.Warn("Left style attribute at %d:%d unchanged: %v", r.StartLine+1, r.StartCol+1, err)
				return "", false
			}
		default:
			return "", false
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s at %d:%d: %w", r.Type, r.StartLine+1, r.StartCol+1, err))
			return "", false
		}
		return resolved, true
	})
	return out, errors.Join(errs...)
}

// attributeWrapper holds style attribute declarations in a block that is
// not a rule, so that themed variables, which need a rule to clone, are
// reported instead of resolved
const attributeWrapper = "@style"

// resolveAttribute resolves the declarations of a style="..." attribute.
// Only single-valued variables can be resolved there.
func (p *Processor) resolveAttribute(content string) (string, error) {
	root, err := css.Parse(attributeWrapper + "{" + content + "}")
	if err != nil {
		return "", err
	}
	opts := p.opts
	opts.PreserveInjectedVariables = false
	if err := theme.Resolve(root, opts); err != nil {
		return "", err
	}

	block, ok := root.First().(*css.AtRule)
	if !ok {
		// every declaration was a removed definition
		return "", nil
	}
	return block.Inner(), nil
}

func (p *Processor) processJS(source string) (string, error) {
	parser := js.AcquireParser()
	templates := parser.ParseTemplates(source)
	js.ReleaseParser(parser)

	var errs []error
	out := js.Splice(source, templates, func(t js.TemplateRegion) (string, bool) {
		if t.Interpolated() {
			log.Debug("Skipped %s template with %d substitutions", t.Tag, t.Substitutions)
			return "", false
		}
		var resolved string
		var err error
		switch t.Tag {
		case "css":
			resolved, err = theme.ResolveString(t.Content, p.opts)
		case "html":
			resolved, err = p.processHTML(t.Content)
		default:
			return "", false
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s template: %w", t.Tag, err))
			return "", false
		}
		return resolved, true
	})
	return out, errors.Join(errs...)
}

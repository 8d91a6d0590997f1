// Package processor runs the theme resolver over files on disk.
package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"bennypowers.dev/csstheme/internal/log"
	"bennypowers.dev/csstheme/internal/theme"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

// Settings controls where results go
type Settings struct {
	// OutDir receives the output, mirroring paths relative to BaseDir.
	// Empty writes every result to Stdout.
	OutDir string
	// BaseDir is the root that output paths are taken relative to.
	// Defaults to the working directory.
	BaseDir string
	// Concurrency bounds the number of files processed at once
	Concurrency int
	// Stdout receives the results when OutDir is empty
	Stdout io.Writer
}

// Result describes one processed file
type Result struct {
	// Path is the input file
	Path string
	// Output is where the result was written; empty for stdout
	Output string
	// Content is the resolved source
	Content string
	// Changed reports whether resolution altered the source
	Changed bool
}

// Processor resolves files with a fixed set of engine options.
// It is safe for concurrent use; every file gets its own tree.
type Processor struct {
	opts     theme.Options
	settings Settings
}

// New creates a Processor
func New(opts theme.Options, settings Settings) *Processor {
	if settings.Concurrency < 1 {
		settings.Concurrency = 1
	}
	if settings.Stdout == nil {
		settings.Stdout = os.Stdout
	}
	return &Processor{opts: opts, settings: settings}
}

// ProcessFile reads path, resolves it and returns the result without writing it
func (p *Processor) ProcessFile(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	source := string(data)
	content, err := p.ProcessSource(path, source)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}
	return Result{Path: path, Content: content, Changed: content != source}, nil
}

// Run processes paths concurrently and writes the results. Stdout output
// keeps the order of paths. Failures do not stop the other files; they are
// joined into the returned error.
func (p *Processor) Run(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))
	errs := make([]error, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.settings.Concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			result, err := p.ProcessFile(path)
			if err != nil {
				errs[i] = err
				return nil
			}
			if p.settings.OutDir != "" {
				if result.Output, err = p.write(result); err != nil {
					errs[i] = err
					return nil
				}
			}
			results[i] = result
			return nil
		})
	}
	_ = g.Wait()

	var failed []error
	for i, result := range results {
		if errs[i] != nil {
			log.Error("%v", errs[i])
			failed = append(failed, errs[i])
			continue
		}
		if p.settings.OutDir == "" {
			if _, err := io.WriteString(p.settings.Stdout, result.Content); err != nil {
				failed = append(failed, fmt.Errorf("failed to write output: %w", err))
			}
		}
	}

	if len(failed) > 0 {
		return results, errors.Join(failed...)
	}
	return results, nil
}

func (p *Processor) write(result Result) (string, error) {
	out, err := p.OutputPath(result.Path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(out, []byte(result.Content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", out, err)
	}
	log.Info("Wrote %s (%s)", out, humanize.Bytes(uint64(len(result.Content))))
	return out, nil
}

// OutputPath returns where the result for path is written under OutDir.
// Inputs outside BaseDir keep only their file name.
func (p *Processor) OutputPath(path string) (string, error) {
	base := p.settings.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		base = wd
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", base, err)
	}

	rel, err := filepath.Rel(absBase, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(abs)
	}
	return filepath.Join(p.settings.OutDir, rel), nil
}

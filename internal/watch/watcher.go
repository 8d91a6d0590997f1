// Package watch reruns a build when watched files change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"bennypowers.dev/csstheme/internal/collections"
	"bennypowers.dev/csstheme/internal/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for events to settle
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches the directories of a set of files and reports changes
// in batches
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu    sync.Mutex
	dirs  collections.Set[string]
	match func(path string) bool
}

// New creates a watcher. match decides which changed paths are reported;
// nil reports every path in the watched directories.
func New(debounce time.Duration, match func(path string) bool) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if match == nil {
		match = func(string) bool { return true }
	}
	return &Watcher{
		watcher:  watcher,
		debounce: debounce,
		dirs:     collections.NewSet[string](),
		match:    match,
	}, nil
}

// Add watches the directory of each file. Directories make writes through
// rename-and-replace visible.
func (w *Watcher) Add(files ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, file := range files {
		dir, err := filepath.Abs(filepath.Dir(file))
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", file, err)
		}
		if w.dirs.Has(dir) {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.dirs.Add(dir)
		log.Debug("Watching %s", dir)
	}
	return nil
}

// Dirs returns the watched directories, sorted
func (w *Watcher) Dirs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return collections.Sorted(w.dirs)
}

// Run calls onChange with the sorted paths that changed, once per burst
// of events, until ctx is cancelled. It closes the watcher on return.
func (w *Watcher) Run(ctx context.Context, onChange func(changed []string)) error {
	defer w.watcher.Close()

	pending := collections.NewSet[string]()
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !w.match(event.Name) {
				continue
			}
			pending.Add(event.Name)
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("File watcher error: %v", err)

		case <-timer.C:
			if pending.Len() == 0 {
				continue
			}
			changed := collections.Sorted(pending)
			pending = collections.NewSet[string]()
			log.Debug("Changed: %v", changed)
			onChange(changed)
		}
	}
}

// Close releases the watcher. Run closes it on return.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

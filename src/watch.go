package sweatci

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is how long a file must stay quiet before it is reloaded
const DefaultWatchDebounce = 100 * time.Millisecond

// ScriptWatcher reports script files that changed on disk.
// It watches each file's directory so editors that replace files on save are seen.
type ScriptWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	dirs     map[string]bool
	onChange func(path string)
	onError  func(err error)
	// Debounce groups bursts of events for one file into a single reload
	Debounce time.Duration
}

// NewScriptWatcher creates a watcher calling onChange with the absolute path of each changed file.
// onError may be nil.
func NewScriptWatcher(onChange func(path string), onError func(err error)) (*ScriptWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &ScriptWatcher{
		watcher:  w,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		onChange: onChange,
		onError:  onError,
		Debounce: DefaultWatchDebounce,
	}, nil
}

// Add starts watching path
func (w *ScriptWatcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	dir := filepath.Dir(abs)
	if !w.dirs[dir] {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	w.files[abs] = true
	return nil
}

// Files returns the watched files in sorted order
func (w *ScriptWatcher) Files() []string {
	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Run delivers change notifications until ctx is cancelled or the watcher is closed.
// Add must not be called while Run is active.
func (w *ScriptWatcher) Run(ctx context.Context) error {
	pending := make(map[string]bool)
	timer := time.NewTimer(w.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Clean(event.Name)
			if !w.files[name] {
				continue
			}
			pending[name] = true
			timer.Reset(w.Debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if w.onError != nil {
				w.onError(fmt.Errorf("watcher error: %w", err))
			}

		case <-timer.C:
			names := make([]string, 0, len(pending))
			for name := range pending {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				delete(pending, name)
				w.onChange(name)
			}
		}
	}
}

// Close stops watching
func (w *ScriptWatcher) Close() error {
	return w.watcher.Close()
}

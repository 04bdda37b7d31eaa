// Package watch reports changes to a set of content files. Editors often
// write a file several times per save, so events are debounced per file and
// reported once the file has been quiet for the debounce interval.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a change is reported.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches individual files. fsnotify loses a file watch when the
// file is replaced by rename, so the parent directories are watched and
// events are filtered by name.
type Watcher struct {
	fw       *fsnotify.Watcher
	debounce time.Duration
	files    map[string]bool
	done     chan struct{}

	mu      sync.Mutex
	stopped bool
	timers  map[string]*time.Timer
}

// New creates a watcher; a zero debounce uses DefaultDebounce.
func New(debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fw:       fw,
		debounce: debounce,
		files:    make(map[string]bool),
		done:     make(chan struct{}),
		timers:   make(map[string]*time.Timer),
	}, nil
}

// Watch starts monitoring paths. onChange is called with the absolute path
// of a changed file, from a timer goroutine, at most once per quiet period.
// onError receives watcher errors and may be nil.
func (w *Watcher) Watch(paths []string, onChange func(path string), onError func(error)) error {
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	go func() {
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				if !w.files[filepath.Clean(event.Name)] {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
					event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					w.schedule(filepath.Clean(event.Name), onChange)
				}

			case err, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				if onError != nil {
					onError(err)
				}

			case <-w.done:
				return
			}
		}
	}()
	return nil
}

// schedule (re)arms the per-file timer.
func (w *Watcher) schedule(path string, onChange func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if t, ok := w.timers[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		stopped := w.stopped
		w.mu.Unlock()
		if !stopped {
			onChange(path)
		}
	})
}

// Stop ends monitoring, drops pending notifications and releases
// resources. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	for _, t := range w.timers {
		t.Stop()
	}
	close(w.done)
	return w.fw.Close()
}

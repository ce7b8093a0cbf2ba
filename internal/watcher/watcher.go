// Package watcher triggers a rebuild when the navigation spreadsheet or other build inputs
// change on disk.
package watcher

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ziadkadry99/navchart/internal/logging"
)

// Watcher watches a fixed set of files and calls onChange once a burst of edits settles.
type Watcher struct {
	files     map[string]struct{}
	fsWatcher *fsnotify.Watcher
	onChange  func(changed []string)
	log       *slog.Logger

	debounceDelay time.Duration
	pendingMu     sync.Mutex
	pending       map[string]struct{}
	debounceTimer *time.Timer

	// runMu keeps callbacks from overlapping when a rebuild outlasts the debounce delay.
	runMu sync.Mutex

	done     chan struct{}
	stopOnce sync.Once
}

// Option configures the watcher.
type Option func(*Watcher)

// WithDebounceDelay sets how long the watcher waits for edits to settle.
func WithDebounceDelay(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounceDelay = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		w.log = l
	}
}

// New watches files. Their parent directories are watched rather than the files
// themselves, because spreadsheet editors save by writing a temp file and renaming it over
// the original.
func New(files []string, onChange func(changed []string), opts ...Option) (*Watcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		files:         make(map[string]struct{}, len(files)),
		fsWatcher:     fsWatcher,
		onChange:      onChange,
		debounceDelay: 300 * time.Millisecond,
		pending:       make(map[string]struct{}),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = logging.OrDefault(w.log).With("component", "watcher")

	dirs := make(map[string]struct{})
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fsWatcher.Close()
			return nil, err
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsWatcher.Add(dir); err != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
		w.log.Debug("watching directory", "dir", dir)
	}

	return w, nil
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	go w.eventLoop()
}

// Stop stops watching. Pending changes are dropped.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		w.pendingMu.Lock()
		if w.debounceTimer != nil {
			w.debounceTimer.Stop()
		}
		w.pendingMu.Unlock()
		err = w.fsWatcher.Close()
	})
	return err
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}
	if _, ok := w.files[name]; !ok {
		return
	}

	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	w.pending[name] = struct{}{}
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, w.trigger)
}

func (w *Watcher) trigger() {
	select {
	case <-w.done:
		return
	default:
	}

	w.pendingMu.Lock()
	changed := make([]string, 0, len(w.pending))
	for f := range w.pending {
		changed = append(changed, f)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	if len(changed) == 0 {
		return
	}
	sort.Strings(changed)

	w.runMu.Lock()
	defer w.runMu.Unlock()
	w.log.Info("inputs changed", "files", changed)
	w.onChange(changed)
}

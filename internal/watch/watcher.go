// Package watch re-parses corpus files as they change on disk, emitting
// parsed documents so long-running collaborators (preview servers, indexers)
// can stay current without rescanning the corpus.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/DeadKai/go-content/internal/corpus"
	"github.com/DeadKai/go-content/internal/frontmatter"
	"github.com/DeadKai/go-content/internal/logging"
	"github.com/DeadKai/go-content/pkg/interfaces"
)

// Op classifies a watch event.
type Op int

const (
	OpUpdated Op = iota
	OpRemoved
)

// Event reports one observed corpus change. Document is populated for
// updates that parsed cleanly; Err carries parse failures so callers can
// surface them without losing the watch loop.
type Event struct {
	Path     string
	Op       Op
	Document *interfaces.Document
	Err      error
}

// Config controls the watch loop.
type Config struct {
	// Dir is the corpus root to watch.
	Dir string
	// Pattern filters files (doublestar syntax, defaults to "*.md").
	Pattern string
	// Recursive watches sub-directories as well.
	Recursive bool
	// Debounce collapses bursts of events per file. Defaults to 100ms.
	Debounce time.Duration
	// FrontMatter tunes value coercion when re-parsing changed files.
	FrontMatter frontmatter.Options
}

// Watcher emits parsed documents for files that change under a directory.
type Watcher struct {
	cfg    Config
	logger interfaces.Logger
	events chan Event
	done   chan struct{}

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// Option customises Watcher construction.
type Option func(*Watcher)

// WithLogger injects the watcher logger. Defaults to a no-op logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New builds a Watcher for the configured directory.
func New(cfg Config, opts ...Option) (*Watcher, error) {
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, errors.New("watch: dir is required")
	}
	if strings.TrimSpace(cfg.Pattern) == "" {
		cfg.Pattern = "*.md"
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 100 * time.Millisecond
	}

	w := &Watcher{
		cfg:    cfg,
		logger: logging.NoOp(),
		events: make(chan Event, 16),
		done:   make(chan struct{}),
		timers: map[string]*time.Timer{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Events returns the channel watch events are delivered on. The channel is
// closed when Run returns.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Run blocks watching the directory until ctx is cancelled. It returns nil
// on cancellation and an error when the underlying watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer notifier.Close()
	defer close(w.events)
	// Closing done releases any debounce timer still waiting to hand
	// its event to the loop; without it those goroutines would block on
	// ready forever once the buffer fills.
	defer close(w.done)

	if err := w.addDirs(notifier); err != nil {
		return err
	}

	ready := make(chan readyEvent, 16)

	w.logger.Info("watch.started", "dir", w.cfg.Dir, "pattern", w.cfg.Pattern)

	for {
		select {
		case <-ctx.Done():
			w.drainTimers()
			return nil

		case event, ok := <-notifier.Events:
			if !ok {
				w.drainTimers()
				return nil
			}
			w.handleRaw(notifier, event, ready)

		case err, ok := <-notifier.Errors:
			if !ok {
				w.drainTimers()
				return nil
			}
			w.logger.Error("watch.error", "error", err)

		case item := <-ready:
			w.emit(ctx, item)
		}
	}
}

type readyEvent struct {
	path    string
	removed bool
}

func (w *Watcher) handleRaw(notifier *fsnotify.Watcher, event fsnotify.Event, ready chan<- readyEvent) {
	// New directories join the watch set when recursion is on.
	if w.cfg.Recursive && event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := notifier.Add(event.Name); err != nil {
				w.logger.Warn("watch.add_dir", "dir", event.Name, "error", err)
			}
			return
		}
	}

	if !w.matches(event.Name) {
		return
	}

	removed := event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename)
	w.debounce(event.Name, removed, ready)
}

// debounce collapses event bursts per path; the last observed kind wins.
func (w *Watcher) debounce(path string, removed bool, ready chan<- readyEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Stop()
	}
	w.timers[path] = time.AfterFunc(w.cfg.Debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		select {
		case ready <- readyEvent{path: path, removed: removed}:
		case <-w.done:
		}
	})
}

func (w *Watcher) emit(ctx context.Context, item readyEvent) {
	rel, err := filepath.Rel(w.cfg.Dir, item.path)
	if err != nil {
		rel = item.path
	}
	rel = filepath.ToSlash(rel)

	if item.removed {
		w.send(ctx, Event{Path: rel, Op: OpRemoved})
		return
	}

	data, err := os.ReadFile(item.path)
	if err != nil {
		if os.IsNotExist(err) {
			w.send(ctx, Event{Path: rel, Op: OpRemoved})
			return
		}
		w.send(ctx, Event{Path: rel, Op: OpUpdated, Err: err})
		return
	}

	info, err := os.Stat(item.path)
	modified := time.Now()
	if err == nil {
		modified = info.ModTime()
	}

	doc, err := corpus.BuildDocument(rel, data, modified, w.cfg.FrontMatter)
	if err != nil {
		w.send(ctx, Event{Path: rel, Op: OpUpdated, Err: err})
		return
	}
	w.send(ctx, Event{Path: rel, Op: OpUpdated, Document: doc})
}

func (w *Watcher) send(ctx context.Context, event Event) {
	select {
	case w.events <- event:
	case <-ctx.Done():
	}
}

func (w *Watcher) matches(path string) bool {
	pattern := filepath.ToSlash(w.cfg.Pattern)
	target := filepath.ToSlash(path)
	if !strings.Contains(pattern, "/") {
		target = filepath.Base(target)
	}
	match, err := doublestar.Match(pattern, target)
	if err != nil {
		return false
	}
	return match
}

func (w *Watcher) addDirs(notifier *fsnotify.Watcher) error {
	if err := notifier.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("watch: add %s: %w", w.cfg.Dir, err)
	}
	if !w.cfg.Recursive {
		return nil
	}
	return filepath.WalkDir(w.cfg.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || path == w.cfg.Dir {
			return nil
		}
		if err := notifier.Add(path); err != nil {
			return fmt.Errorf("watch: add %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) drainTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
}

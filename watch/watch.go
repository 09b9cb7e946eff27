// Package watch reports corpus files as they are written into a directory.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/coref/am"
	"github.com/teranos/coref/errors"
	"github.com/teranos/coref/logger"
)

// DefaultDebounce absorbs the burst of events a single save produces.
const DefaultDebounce = 500 * time.Millisecond

// Handler is called once per settled file.
type Handler func(ctx context.Context, path string) error

// Watcher watches one directory and hands settled files to a Handler.
type Watcher struct {
	dir      string
	match    func(path string) bool
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      *zap.SugaredLogger

	mu     sync.Mutex
	timers map[string]*time.Timer
	ready  chan string
	done   chan struct{}
	once   sync.Once
}

// New watches dir. match filters which files are reported; nil accepts all.
func New(dir string, match func(path string) bool) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "failed to watch %s", dir)
	}
	if match == nil {
		match = func(string) bool { return true }
	}
	return &Watcher{
		dir:      dir,
		match:    match,
		watcher:  fw,
		debounce: DefaultDebounce,
		log:      logger.ComponentLogger("watch"),
		timers:   make(map[string]*time.Timer),
		ready:    make(chan string, 16),
		done:     make(chan struct{}),
	}, nil
}

// SetDebounce changes the settle period. Call before Run.
func (w *Watcher) SetDebounce(d time.Duration) { w.debounce = d }

// Extensions returns a match func accepting the given file extensions.
func Extensions(exts ...string) func(string) bool {
	return func(path string) bool {
		ext := filepath.Ext(path)
		for _, e := range exts {
			if ext == e {
				return true
			}
		}
		return false
	}
}

// Run delivers settled files to h until ctx is cancelled. Handler errors are
// logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context, h Handler) error {
	defer w.shutdown()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if am.IsBackupFile(event.Name) || !w.match(event.Name) {
				continue
			}
			w.log.Debugw("change detected", logger.FieldPath, event.Name, "op", event.Op.String())
			w.schedule(event.Name)

		case path := <-w.ready:
			start := time.Now()
			if err := h(ctx, path); err != nil {
				w.log.Errorw("handler failed", logger.FieldPath, path, logger.FieldError, err)
				continue
			}
			w.log.Infow("file processed", logger.FieldPath, path,
				logger.FieldDurationMS, time.Since(start).Milliseconds())

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("watcher error", logger.FieldError, err)
		}
	}
}

// schedule restarts the settle timer for path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		w.deliver(path)
	})
}

// deliver queues path for Run, dropping it once Run has returned.
func (w *Watcher) deliver(path string) {
	select {
	case w.ready <- path:
	case <-w.done:
	}
}

func (w *Watcher) shutdown() {
	w.once.Do(func() { close(w.done) })
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

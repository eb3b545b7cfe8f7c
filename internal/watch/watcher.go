// Package watch reports store files that change on disk behind the
// application's back. The application never reloads them: the next save
// overwrites the external edit, so the operator is warned as soon as it
// happens.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/bookinn/pkg/log"
)

// Tracked is a store file that can tell its own writes from foreign ones.
type Tracked interface {
	Path() string
	ModifiedExternally() (bool, error)
}

// Config holds watcher settings.
type Config struct {
	// Debounce is how long a file must stay quiet before it is checked.
	// Default: 200 milliseconds
	Debounce time.Duration
}

// DefaultConfig returns a Config with defaults.
func DefaultConfig() Config {
	return Config{Debounce: 200 * time.Millisecond}
}

// Watcher watches the directories of a set of tracked stores.
type Watcher struct {
	mu sync.Mutex

	debounce time.Duration
	logger   log.Logger
	stores   map[string]Tracked
	timers   map[string]*time.Timer
	stopped  bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a watcher for stores. A nil logger discards warnings.
func New(cfg Config, logger log.Logger, stores ...Tracked) *Watcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultConfig().Debounce
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	w := &Watcher{
		debounce: cfg.Debounce,
		logger:   logger,
		stores:   make(map[string]Tracked, len(stores)),
		timers:   make(map[string]*time.Timer),
	}
	for _, s := range stores {
		w.stores[filepath.Clean(s.Path())] = s
	}
	return w
}

// Start begins watching. Store directories are created if missing so a
// store that has never been saved can still be watched.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	dirs := make(map[string]struct{})
	for path := range w.stores {
		dirs[filepath.Dir(path)] = struct{}{}
	}
	for dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fw.Close()
			return fmt.Errorf("create %s: %w", dir, err)
		}
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go w.loop(watchCtx, fw)

	w.logger.Debug("store watcher started", log.Int("stores", len(w.stores)))
	return nil
}

// Stop ends the watch loop and drops pending checks.
func (w *Watcher) Stop() error {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
	return nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher) {
	defer w.wg.Done()
	defer fw.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			path := filepath.Clean(event.Name)
			if _, tracked := w.stores[path]; !tracked {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.schedule(path)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("store watcher error", log.Err(err))
		}
	}
}

// schedule (re)arms the check for path so a burst of events yields one check.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.check(path)
	})
}

func (w *Watcher) check(path string) {
	w.mu.Lock()
	delete(w.timers, path)
	stopped := w.stopped
	w.mu.Unlock()
	if stopped {
		return
	}

	changed, err := w.stores[path].ModifiedExternally()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			w.logger.Error("store check failed", log.String("path", path), log.Err(err))
		}
		return
	}
	if changed {
		w.logger.Warn("store modified externally, it will be overwritten on the next save",
			log.String("path", path))
	}
}

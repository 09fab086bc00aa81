// Package watch reports changes to the decode spec file.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// SpecWatcher watches a single file and calls onChange after it has been
// written or recreated. The file's directory is watched rather than the file
// itself so atomic-rename saves are seen.
type SpecWatcher struct {
	fsWatcher *fsnotify.Watcher
	onChange  func(path string)
	debounce  time.Duration
	logger    zerolog.Logger

	mutex   sync.Mutex
	target  string
	dir     string
	timer   *time.Timer
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func New(onChange func(path string), logger zerolog.Logger) (*SpecWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	return &SpecWatcher{
		fsWatcher: fsWatcher,
		onChange:  onChange,
		debounce:  DefaultDebounce,
		logger:    logger,
	}, nil
}

// SetDebounce changes the quiet period; call before Start.
func (w *SpecWatcher) SetDebounce(d time.Duration) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.debounce = d
}

// Watch switches the watched file to path. An empty path stops watching.
func (w *SpecWatcher) Watch(path string) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		path = abs
	}
	if path == w.target {
		return nil
	}

	if w.dir != "" {
		if err := w.fsWatcher.Remove(w.dir); err != nil {
			w.logger.Debug().Err(err).Str("dir", w.dir).Msg("remove watch")
		}
	}
	w.target, w.dir = "", ""
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.target, w.dir = path, dir
	w.logger.Info().Str("spec", path).Msg("watching spec file")
	return nil
}

// Target returns the watched file, empty when nothing is watched.
func (w *SpecWatcher) Target() string {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.target
}

func (w *SpecWatcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	go w.loop(w.stopCh, w.doneCh)
	return nil
}

func (w *SpecWatcher) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
				w.handle(filepath.Clean(event.Name))
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("fsnotify watcher error")
		case <-stop:
			return
		}
	}
}

func (w *SpecWatcher) handle(name string) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if name != w.target {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	target := w.target
	w.timer = time.AfterFunc(w.debounce, func() {
		w.onChange(target)
	})
}

// Close stops the event loop and releases the fsnotify watcher.
func (w *SpecWatcher) Close() error {
	w.mutex.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	running, stop, done := w.running, w.stopCh, w.doneCh
	w.running = false
	w.mutex.Unlock()

	if running {
		close(stop)
		<-done
	}
	return w.fsWatcher.Close()
}

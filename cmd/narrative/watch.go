package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// datasetWatcher monitors the dataset file and triggers a session
// rebuild after writes settle. Editors and downloads produce bursts of
// events, so rebuilds are debounced.
type datasetWatcher struct {
	path     string
	debounce time.Duration
	rebuild  func()
	watcher  *fsnotify.Watcher
	stopChan chan struct{}
	doneChan chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

// newDatasetWatcher creates a watcher for the dataset file at path.
func newDatasetWatcher(path string, debounce time.Duration, rebuild func()) (*datasetWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}

	return &datasetWatcher{
		path:     abs,
		debounce: debounce,
		rebuild:  rebuild,
		watcher:  fsWatcher,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}, nil
}

// Start begins watching the dataset's directory. Watching the directory
// rather than the file survives rename-and-replace saves.
func (w *datasetWatcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch dataset directory: %w", err)
	}

	go w.processEvents()

	slog.Info("dataset watcher started",
		"path", w.path,
		"debounce_seconds", w.debounce.Seconds(),
	)
	return nil
}

// Stop stops watching and cancels any pending rebuild.
func (w *datasetWatcher) Stop() error {
	close(w.stopChan)
	<-w.doneChan

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	return w.watcher.Close()
}

// processEvents handles fsnotify events
func (w *datasetWatcher) processEvents() {
	defer close(w.doneChan)

	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

// handleEvent schedules a rebuild when the dataset file itself changes.
func (w *datasetWatcher) handleEvent(event fsnotify.Event) {
	name, err := filepath.Abs(event.Name)
	if err != nil {
		name = filepath.Clean(event.Name)
	}
	if name != w.path {
		return
	}

	if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
		slog.Debug("dataset file event", "event", event.Op.String(), "file", name)
		w.scheduleRebuild()
	}
}

// scheduleRebuild resets the debounce timer; the rebuild runs only after
// events stop arriving for the debounce period.
func (w *datasetWatcher) scheduleRebuild() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.rebuild)
}

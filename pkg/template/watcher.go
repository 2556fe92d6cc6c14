package template

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the catalog when template files change on disk. Events
// are debounced so an editor save burst triggers a single reload.
type Watcher struct {
	catalog  *Catalog
	path     string
	debounce time.Duration
	logger   *slog.Logger
}

// NewWatcher creates a watcher over the given template directory.
func NewWatcher(catalog *Catalog, path string, debounce time.Duration, logger *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		catalog:  catalog,
		path:     path,
		debounce: debounce,
		logger:   logger.With("component", "template.watcher"),
	}
}

// Watch blocks until the context is cancelled, reloading the catalog on
// file changes.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.path); err != nil {
		return fmt.Errorf("failed to watch template path %q: %w", w.path, err)
	}

	w.logger.Info("template watcher started", "path", w.path)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("template watcher stopped")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !relevant(event) {
				continue
			}
			// Restart the debounce timer on every relevant event.
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerC:
			if err := w.catalog.Reload(); err != nil {
				w.logger.Error("template reload failed", "error", err)
			} else {
				w.logger.Info("template catalog reloaded")
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Warn("template watcher error", "error", err)
		}
	}
}

// relevant filters events down to YAML writes, creates, renames and removes.
func relevant(event fsnotify.Event) bool {
	ext := filepath.Ext(event.Name)
	if ext != ".yaml" && ext != ".yml" {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}

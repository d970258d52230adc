// Package watcher reacts to edge-list file changes so watch mode can
// re-run the analysis.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ritzau/graphrank/pkg/logging"
)

// ChangeEvent is a batch of file system changes to the watched file.
type ChangeEvent struct {
	Paths     []string
	Timestamp time.Time
}

// FileWatcher watches a single edge-list file for changes. The parent
// directory is watched rather than the file itself: editors and atomic
// writers replace the file, which drops an inode-level watch.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string // absolute path of the watched file
	events  chan ChangeEvent
}

// NewFileWatcher creates a watcher for the given file.
func NewFileWatcher(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving watch path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher: w,
		path:    abs,
		events:  make(chan ChangeEvent, 100),
	}, nil
}

// Start begins watching. Events arrive on Events until ctx is
// cancelled or Close is called.
func (fw *FileWatcher) Start(ctx context.Context) error {
	if err := fw.watcher.Add(filepath.Dir(fw.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(fw.path), err)
	}

	logging.Info("watching edge list", "path", fw.path)

	go fw.run(ctx)
	return nil
}

// Events returns the channel of change events.
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}

// Close stops the watcher.
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}

func (fw *FileWatcher) run(ctx context.Context) {
	defer close(fw.events)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !fw.relevant(event) {
				continue
			}
			logging.Debug("file change detected", "path", event.Name, "op", event.Op.String())
			select {
			case fw.events <- ChangeEvent{Paths: []string{event.Name}, Timestamp: time.Now()}:
			default:
				logging.Warn("watcher event channel full, dropping event")
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logging.Warn("watcher error", "error", err)
		}
	}
}

// relevant filters directory noise down to writes of the watched file.
func (fw *FileWatcher) relevant(event fsnotify.Event) bool {
	if event.Name != fw.path {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Rename)
}

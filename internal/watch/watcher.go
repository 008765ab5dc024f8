package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DebounceInterval is the quiet period before a change batch is emitted
const DebounceInterval = 100 * time.Millisecond

// Watcher provides recursive file system watching with debouncing. Only
// paths accepted by the match function reach the output batches.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	matches   func(path string) bool
	rootDir   string
	logger    *zap.Logger

	done      chan struct{}
	closeOnce sync.Once
}

// NewWatcher creates a recursive file watcher on the given root directory.
// It registers all readable subdirectories for watching.
func NewWatcher(rootDir string, matches func(path string) bool, logger *zap.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		debouncer: NewDebouncer(DebounceInterval),
		matches:   matches,
		rootDir:   rootDir,
		logger:    logger,
		done:      make(chan struct{}),
	}

	// Walk directory tree and add all directories to the watcher
	err = filepath.WalkDir(rootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip entries that can't be read
		}
		if !d.IsDir() {
			return nil
		}
		if watchErr := fsWatcher.Add(path); watchErr != nil {
			w.logger.Warn("failed to watch directory", zap.String("path", path), zap.Error(watchErr))
		}
		return nil
	})
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return w, nil
}

// Events returns the channel that receives debounced change batches.
func (w *Watcher) Events() <-chan []Change {
	return w.debouncer.Output()
}

// Done returns a channel closed when the watcher shuts down, so consumers
// draining Events can stop.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// Start begins listening for file system events. Call this in a goroutine.
// It runs until the watcher is closed.
func (w *Watcher) Start() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// handleEvent processes a single fsnotify event, converting it to a debounced change.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	// If a new directory was created, start watching it
	if event.Has(fsnotify.Create) {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			if err := w.fsWatcher.Add(path); err != nil {
				w.logger.Warn("failed to watch new directory", zap.String("path", path), zap.Error(err))
			}
			return // Don't emit changes for directory creation
		}
	}

	// Skip paths the caller does not care about
	if w.matches != nil && !w.matches(path) {
		return
	}

	var op ChangeOp
	switch {
	case event.Has(fsnotify.Create):
		op = OpCreate
	case event.Has(fsnotify.Write):
		op = OpWrite
	case event.Has(fsnotify.Remove):
		op = OpRemove
	case event.Has(fsnotify.Rename):
		op = OpRename
	default:
		return
	}

	w.debouncer.Add(path, op)
}

// Close stops the watcher and releases resources. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
	})
	return err
}

package remove

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/modelsweep/modelsweep/internal/trash"
)

// DeleteIDPrefix prefixes generated delete operation identifiers
const DeleteIDPrefix = "delete-"

// ErrNoPaths indicates Start was called with an empty batch
var ErrNoPaths = errors.New("no files to delete")

// ErrDeleteActive indicates a delete batch is already running on this service
var ErrDeleteActive = errors.New("delete already in progress")

// Mode selects how files are removed. The zero value is ModeRecycle so the
// reversible path is always the default.
type Mode int

const (
	// ModeRecycle moves files to the platform trash
	ModeRecycle Mode = iota

	// ModePermanent unlinks files irreversibly
	ModePermanent
)

// String returns the mode name for logs
func (m Mode) String() string {
	if m == ModePermanent {
		return "permanent"
	}
	return "recycle"
}

// Failure records one file that could not be deleted
type Failure struct {
	Path string
	Err  error
}

// Report carries the outcome of one finished delete batch
type Report struct {
	ID        string
	Mode      Mode
	Deleted   []string  // paths removed successfully
	Failures  []Failure // paths that could not be removed
	Remaining int       // untouched tail after cancellation
	Elapsed   time.Duration
}

// Cancelled returns true when the batch was stopped before finishing
func (r Report) Cancelled() bool {
	return r.Remaining > 0
}

// Service deletes batches of files on a background goroutine
type Service struct {
	logger  *zap.Logger
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc

	onProgress func(processed, total int)
	onDone     func(Report)
}

// NewService creates a new delete service
func NewService(logger *zap.Logger) *Service {
	return &Service{logger: logger}
}

// SetProgressCallback sets the callback for per-file running counters.
// Callbacks must be registered before Start.
func (s *Service) SetProgressCallback(callback func(processed, total int)) {
	s.onProgress = callback
}

// SetDoneCallback sets the callback invoked once with the final report
func (s *Service) SetDoneCallback(callback func(Report)) {
	s.onDone = callback
}

// Start launches a delete batch in the background and returns its operation
// ID. It fails when the batch is empty or a batch is already running.
func (s *Service) Start(paths []string, mode Mode) (string, error) {
	if len(paths) == 0 {
		return "", ErrNoPaths
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return "", ErrDeleteActive
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.running = true
	s.cancel = cancel
	s.mu.Unlock()

	id := generateDeleteID()
	s.logger.Info("delete started",
		zap.String("id", id),
		zap.Int("files", len(paths)),
		zap.String("mode", mode.String()))

	go s.run(ctx, id, paths, mode)

	return id, nil
}

// Stop cancels the running batch, if any. Files already deleted stay
// deleted; the report counts the untouched remainder.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running && s.cancel != nil {
		s.cancel()
	}
}

// IsRunning returns true while a batch is in flight
func (s *Service) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// run processes the batch one file at a time and delivers the final report
func (s *Service) run(ctx context.Context, id string, paths []string, mode Mode) {
	start := time.Now()
	report := Report{ID: id, Mode: mode}

	for i, path := range paths {
		if ctx.Err() != nil {
			report.Remaining = len(paths) - i
			break
		}

		if err := deleteFile(path, mode); err != nil {
			report.Failures = append(report.Failures, Failure{Path: path, Err: err})
			s.logger.Warn("delete failed", zap.String("path", path), zap.Error(err))
		} else {
			report.Deleted = append(report.Deleted, path)
		}

		s.notifyProgress(i+1, len(paths))
	}
	report.Elapsed = time.Since(start)

	s.mu.Lock()
	s.running = false
	s.cancel = nil
	s.mu.Unlock()

	s.logger.Info("delete finished",
		zap.String("id", id),
		zap.Int("deleted", len(report.Deleted)),
		zap.Int("failed", len(report.Failures)),
		zap.Int("remaining", report.Remaining),
		zap.String("mode", mode.String()),
		zap.Duration("elapsed", report.Elapsed))

	s.notifyDone(report)
}

// deleteFile removes one file according to the mode. Recycle failures keep
// their trash.ErrUnsupported identity so callers can detect a missing
// facility with errors.Is.
func deleteFile(path string, mode Mode) error {
	if mode == ModePermanent {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("delete %s: %w", path, err)
		}
		return nil
	}

	if err := trash.MoveToTrash(path); err != nil {
		return fmt.Errorf("recycle %s: %w", path, err)
	}
	return nil
}

// notifyProgress calls the progress callback if set
func (s *Service) notifyProgress(processed, total int) {
	if s.onProgress != nil {
		s.onProgress(processed, total)
	}
}

// notifyDone calls the done callback if set
func (s *Service) notifyDone(report Report) {
	if s.onDone != nil {
		s.onDone(report)
	}
}

// generateDeleteID generates a unique operation ID using UUID v7 for better uniqueness and time ordering
func generateDeleteID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(DeleteIDPrefix+"%d", time.Now().UnixNano())
	}
	return DeleteIDPrefix + id.String()
}

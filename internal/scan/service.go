package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/modelsweep/modelsweep/internal/model"
)

// Scan constants
const (
	// ProgressInterval throttles running-counter callbacks during a walk
	ProgressInterval = 150 * time.Millisecond

	// ScanIDPrefix prefixes generated scan identifiers
	ScanIDPrefix = "scan-"
)

// ErrInvalidRoot indicates the scan root is missing or not a directory
var ErrInvalidRoot = errors.New("scan root is not a readable directory")

// ErrScanActive indicates a scan is already running on this service
var ErrScanActive = errors.New("scan already in progress")

// Result carries the outcome of one finished scan
type Result struct {
	ID        string
	Root      string
	Records   []*model.FileRecord
	Examined  int  // file entries inspected, matching or not
	Skipped   int  // entries whose metadata could not be read
	Cancelled bool // true when the scan was stopped early
	Elapsed   time.Duration
	Err       error // root became unreadable mid-walk; nil otherwise
}

// Service walks a directory tree collecting model file records
type Service struct {
	logger  *zap.Logger
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc

	onRecord   func(*model.FileRecord) // callback per matching file
	onProgress func(examined, found int)
	onDone     func(Result)
}

// NewService creates a new scan service
func NewService(logger *zap.Logger) *Service {
	return &Service{logger: logger}
}

// SetRecordCallback sets the callback invoked for each matching file.
// Callbacks must be registered before Start.
func (s *Service) SetRecordCallback(callback func(*model.FileRecord)) {
	s.onRecord = callback
}

// SetProgressCallback sets the callback for throttled running counters
func (s *Service) SetProgressCallback(callback func(examined, found int)) {
	s.onProgress = callback
}

// SetDoneCallback sets the callback invoked once with the final result
func (s *Service) SetDoneCallback(callback func(Result)) {
	s.onDone = callback
}

// Start validates the root synchronously and launches the walk in the
// background. It returns the scan ID, or an error when the root is not a
// directory or a scan is already running.
func (s *Service) Start(root string) (string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, root)
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return "", ErrScanActive
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.running = true
	s.cancel = cancel
	s.mu.Unlock()

	id := generateScanID()
	s.logger.Info("scan started", zap.String("id", id), zap.String("root", root))

	go s.walk(ctx, id, root)

	return id, nil
}

// Stop cancels the running scan, if any. Partial results are still delivered
// through the done callback with Cancelled set.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running && s.cancel != nil {
		s.cancel()
	}
}

// IsRunning returns true while a scan is in flight
func (s *Service) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// walk performs the traversal and delivers the final result
func (s *Service) walk(ctx context.Context, id, root string) {
	start := time.Now()
	result := Result{ID: id, Root: root}
	lastProgress := start

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err != nil {
			if path == root {
				return err
			}
			// Unreadable entry or subtree: count it and keep walking
			result.Skipped++
			s.logger.Warn("entry skipped", zap.String("path", path), zap.Error(err))
			return nil
		}

		if d.IsDir() {
			return nil
		}

		result.Examined++
		if time.Since(lastProgress) >= ProgressInterval {
			lastProgress = time.Now()
			s.notifyProgress(result.Examined, len(result.Records))
		}

		if !RecognizedPath(path) {
			return nil
		}

		info, err := entryInfo(path, d)
		if err != nil {
			// Broken symlink or file gone mid-scan
			result.Skipped++
			s.logger.Warn("entry skipped", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rec := model.NewFileRecord(path, info.Size(), accessTime(info))
		result.Records = append(result.Records, rec)
		s.notifyRecord(rec)

		return nil
	})

	switch {
	case errors.Is(err, context.Canceled):
		result.Cancelled = true
	case err != nil:
		result.Err = fmt.Errorf("scan aborted: %w", err)
	}
	result.Elapsed = time.Since(start)

	s.mu.Lock()
	s.running = false
	s.cancel = nil
	s.mu.Unlock()

	// Final counters so the UI shows the true totals
	s.notifyProgress(result.Examined, len(result.Records))

	s.logger.Info("scan finished",
		zap.String("id", id),
		zap.Int("found", len(result.Records)),
		zap.Int("examined", result.Examined),
		zap.Int("skipped", result.Skipped),
		zap.Bool("cancelled", result.Cancelled),
		zap.Duration("elapsed", result.Elapsed))

	s.notifyDone(result)
}

// entryInfo resolves metadata for an entry, following file symlinks so the
// record reflects the target
func entryInfo(path string, d fs.DirEntry) (fs.FileInfo, error) {
	if d.Type()&fs.ModeSymlink != 0 {
		return os.Stat(path)
	}
	return d.Info()
}

// notifyRecord calls the record callback if set
func (s *Service) notifyRecord(rec *model.FileRecord) {
	if s.onRecord != nil {
		s.onRecord(rec)
	}
}

// notifyProgress calls the progress callback if set
func (s *Service) notifyProgress(examined, found int) {
	if s.onProgress != nil {
		s.onProgress(examined, found)
	}
}

// notifyDone calls the done callback if set
func (s *Service) notifyDone(result Result) {
	if s.onDone != nil {
		s.onDone(result)
	}
}

// generateScanID generates a unique scan ID using UUID v7 for better uniqueness and time ordering
func generateScanID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(ScanIDPrefix+"%d", time.Now().UnixNano())
	}
	return ScanIDPrefix + id.String()
}

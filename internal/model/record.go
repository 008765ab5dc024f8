package model

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// TimeLayout is the display format for file timestamps in the table and exports
const TimeLayout = "2006-01-02 15:04:05"

// FileRecord represents a single model file found during a scan
type FileRecord struct {
	Path       string    // absolute path, unique within one scan
	Name       string    // filename component
	Ext        string    // lowercase extension including the dot
	SizeBytes  int64     // size at scan time
	AccessedAt time.Time // platform-reported last access time at scan time
	Selected   bool      // checked state, mutable by the user
}

// NewFileRecord builds a record for a path, deriving name and the
// lowercase-normalized extension
func NewFileRecord(path string, sizeBytes int64, accessedAt time.Time) *FileRecord {
	return &FileRecord{
		Path:       path,
		Name:       filepath.Base(path),
		Ext:        strings.ToLower(filepath.Ext(path)),
		SizeBytes:  sizeBytes,
		AccessedAt: accessedAt,
	}
}

// MatchesFilter reports whether the record matches a case-insensitive substring
// filter across path, name, and extension. An empty filter matches everything.
func (r *FileRecord) MatchesFilter(filter string) bool {
	if filter == "" {
		return true
	}

	needle := strings.ToLower(filter)
	return strings.Contains(strings.ToLower(r.Path), needle) ||
		strings.Contains(strings.ToLower(r.Name), needle) ||
		strings.Contains(r.Ext, needle)
}

// FormatSize returns the size as a human readable string (e.g., "4.2 GB")
func (r *FileRecord) FormatSize() string {
	if r.SizeBytes < 0 {
		return humanize.Bytes(0)
	}
	return humanize.Bytes(uint64(r.SizeBytes))
}

// FormatAccessedAt returns the last access time formatted for display
func (r *FileRecord) FormatAccessedAt() string {
	return r.AccessedAt.Format(TimeLayout)
}

//go:build !linux && !darwin && !windows

package scan

import (
	"io/fs"
	"time"
)

// accessTime falls back to the modification time on platforms without a
// known stat layout
func accessTime(info fs.FileInfo) time.Time {
	return info.ModTime()
}

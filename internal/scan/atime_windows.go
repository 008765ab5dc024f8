//go:build windows

package scan

import (
	"io/fs"
	"syscall"
	"time"
)

// accessTime extracts the last access time from the platform stat data,
// falling back to the modification time when it is unavailable
func accessTime(info fs.FileInfo) time.Time {
	if data, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return time.Unix(0, data.LastAccessTime.Nanoseconds())
	}
	return info.ModTime()
}

//go:build darwin

package scan

import (
	"io/fs"
	"syscall"
	"time"
)

// accessTime extracts the last access time from the platform stat data,
// falling back to the modification time when it is unavailable
func accessTime(info fs.FileInfo) time.Time {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(stat.Atimespec.Sec, stat.Atimespec.Nsec)
	}
	return info.ModTime()
}

package trash

// Package trash moves files to the platform's reversible delete facility:
// the XDG trash on Linux, the Finder Trash on macOS, and the Recycle Bin on
// Windows. Where no facility can be reached the move fails with
// ErrUnsupported so callers can report the condition instead of silently
// deleting permanently.

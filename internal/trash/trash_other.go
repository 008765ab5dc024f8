//go:build !linux && !darwin && !windows

package trash

// Available reports whether a trash facility exists on this platform
func Available() bool {
	return false
}

// MoveToTrash is not implemented on this platform
func MoveToTrash(path string) error {
	return ErrUnsupported
}

//go:build darwin

package trash

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Available reports whether the user Trash directory exists
func Available() bool {
	home, err := os.UserHomeDir()
	if err != nil {
		return false
	}
	_, err = os.Stat(filepath.Join(home, ".Trash"))
	return err == nil
}

// MoveToTrash moves the file into ~/.Trash, letting Finder handle files that
// cannot be renamed there (other volumes)
func MoveToTrash(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Lstat(absPath); err != nil {
		return err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	trashDir := filepath.Join(home, ".Trash")
	if _, err := os.Stat(trashDir); err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	if err := os.Rename(absPath, allocateName(trashDir, filepath.Base(absPath))); err == nil {
		return nil
	}

	return finderDelete(absPath)
}

// allocateName picks a collision-free name in the trash directory,
// inserting a counter before the extension
func allocateName(trashDir, base string) string {
	name := base
	for i := 2; ; i++ {
		target := filepath.Join(trashDir, name)
		if _, err := os.Lstat(target); err != nil {
			return target
		}

		ext := filepath.Ext(base)
		name = fmt.Sprintf("%s.%d%s", strings.TrimSuffix(base, ext), i, ext)
	}
}

// finderDelete asks Finder to trash the file, which also works across volumes
func finderDelete(path string) error {
	script := fmt.Sprintf("tell application \"Finder\" to delete POSIX file %q", path)
	output, err := exec.Command("osascript", "-e", script).CombinedOutput()
	if err != nil {
		return fmt.Errorf("move to trash: %v: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

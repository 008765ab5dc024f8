//go:build linux

package trash

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

// DeletionDate format required by the trash spec
const trashInfoTimeLayout = "2006-01-02T15:04:05"

// Available reports whether the home trash directory can be resolved
func Available() bool {
	_, err := trashDir()
	return err == nil
}

// MoveToTrash moves the file into the XDG home trash: the file itself under
// files/ and a matching .trashinfo record under info/. Name collisions get a
// numeric suffix. Files on a different filesystem than the home trash cannot
// be renamed there and fail with ErrUnsupported.
func MoveToTrash(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Lstat(absPath); err != nil {
		return err
	}

	dir, err := trashDir()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	filesDir := filepath.Join(dir, "files")
	infoDir := filepath.Join(dir, "info")
	for _, d := range []string{filesDir, infoDir} {
		if err := os.MkdirAll(d, 0700); err != nil {
			return fmt.Errorf("%w: %v", ErrUnsupported, err)
		}
	}

	target, infoPath := allocateNames(filesDir, infoDir, filepath.Base(absPath))

	info := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		escapePath(absPath), time.Now().Format(trashInfoTimeLayout))
	if err := os.WriteFile(infoPath, []byte(info), 0600); err != nil {
		return fmt.Errorf("write trash info: %w", err)
	}

	if err := os.Rename(absPath, target); err != nil {
		os.Remove(infoPath)
		if errors.Is(err, syscall.EXDEV) {
			return fmt.Errorf("%w: %s is on a different filesystem than the home trash", ErrUnsupported, absPath)
		}
		return fmt.Errorf("move to trash: %w", err)
	}

	return nil
}

// trashDir resolves the XDG home trash directory
func trashDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "Trash"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "Trash"), nil
}

// allocateNames picks a collision-free name pair in files/ and info/,
// inserting a counter before the extension (model.ckpt, model.2.ckpt, ...)
func allocateNames(filesDir, infoDir, base string) (string, string) {
	name := base
	for i := 2; ; i++ {
		filePath := filepath.Join(filesDir, name)
		infoPath := filepath.Join(infoDir, name+".trashinfo")
		if !pathExists(filePath) && !pathExists(infoPath) {
			return filePath, infoPath
		}

		ext := filepath.Ext(base)
		name = fmt.Sprintf("%s.%d%s", strings.TrimSuffix(base, ext), i, ext)
	}
}

// escapePath percent-encodes the path the way the trash spec expects,
// keeping separators intact
func escapePath(path string) string {
	u := url.URL{Path: path}
	return u.EscapedPath()
}

func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

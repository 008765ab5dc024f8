//go:build windows

package trash

import (
	"fmt"
	"path/filepath"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	shell32          = windows.NewLazySystemDLL("shell32.dll")
	shFileOperationW = shell32.NewProc("SHFileOperationW")
)

// SHFileOperation constants
const (
	foDelete          = 0x0003
	fofAllowUndo      = 0x0040
	fofNoConfirmation = 0x0010
	fofNoErrorUI      = 0x0400
	fofSilent         = 0x0004
)

// shFileOpStructW mirrors SHFILEOPSTRUCTW
type shFileOpStructW struct {
	hwnd                  uintptr
	wFunc                 uint32
	pFrom                 *uint16
	pTo                   *uint16
	fFlags                uint16
	fAnyOperationsAborted int32
	hNameMappings         uintptr
	lpszProgressTitle     *uint16
}

// Available reports whether the shell recycle API can be loaded
func Available() bool {
	return shFileOperationW.Find() == nil
}

// MoveToTrash sends the file to the Recycle Bin via SHFileOperationW with
// the undo flag set
func MoveToTrash(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if err := shFileOperationW.Find(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	from, err := syscall.UTF16FromString(absPath)
	if err != nil {
		return err
	}
	// pFrom must be double-null-terminated
	from = append(from, 0)

	op := shFileOpStructW{
		wFunc:  foDelete,
		pFrom:  &from[0],
		fFlags: fofAllowUndo | fofNoConfirmation | fofNoErrorUI | fofSilent,
	}

	ret, _, _ := shFileOperationW.Call(uintptr(unsafe.Pointer(&op)))
	if ret != 0 {
		return fmt.Errorf("recycle %s failed with code %#x", absPath, ret)
	}
	if op.fAnyOperationsAborted != 0 {
		return fmt.Errorf("recycle aborted for %s", absPath)
	}
	return nil
}

//go:build windows

package notification

import (
	"syscall"
	"unsafe"
)

const (
	mbOK              = 0x00000000
	mbIconInformation = 0x00000040
	mbSetForeground   = 0x00010000
)

var (
	user32         = syscall.NewLazyDLL("user32.dll")
	procMessageBox = user32.NewProc("MessageBoxW")
)

// showPlatformToast shows a non-blocking message box. Called from its own
// goroutine; MessageBoxW blocks until dismissed.
func showPlatformToast(title, body string) error {
	titlePtr, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return err
	}
	bodyPtr, err := syscall.UTF16PtrFromString(body)
	if err != nil {
		return err
	}
	ret, _, callErr := procMessageBox.Call(
		0,
		uintptr(unsafe.Pointer(bodyPtr)),
		uintptr(unsafe.Pointer(titlePtr)),
		uintptr(mbOK|mbIconInformation|mbSetForeground),
	)
	if ret == 0 {
		return callErr
	}
	return nil
}

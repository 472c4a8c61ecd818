//go:build windows

package win32

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"overlayhijack/internal/gfx"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	dwmapi = windows.NewLazySystemDLL("dwmapi.dll")

	findWindowW                = user32.NewProc("FindWindowW")
	getWindowLongW             = user32.NewProc("GetWindowLongW")
	setWindowLongPtrW          = user32.NewProc("SetWindowLongPtrW")
	setLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")
	setWindowPos               = user32.NewProc("SetWindowPos")
	showWindow                 = user32.NewProc("ShowWindow")
	isWindowVisible            = user32.NewProc("IsWindowVisible")
	getClientRect              = user32.NewProc("GetClientRect")
	getWindowRect              = user32.NewProc("GetWindowRect")

	dwmExtendFrameIntoClientArea = dwmapi.NewProc("DwmExtendFrameIntoClientArea")
)

const GWL_EXSTYLE int32 = -20

// Windowing implements gfx.Windowing with user32 and dwmapi.
type Windowing struct{}

// FindWindow looks up a top-level window by class and title.
func (Windowing) FindWindow(className, windowName string) gfx.HWND {
	class, err := windows.UTF16PtrFromString(className)
	if err != nil {
		return 0
	}
	title, err := windows.UTF16PtrFromString(windowName)
	if err != nil {
		return 0
	}
	ret, _, _ := findWindowW.Call(uintptr(unsafe.Pointer(class)), uintptr(unsafe.Pointer(title)))
	return gfx.HWND(ret)
}

// GetExStyle reads GWL_EXSTYLE. A zero style is treated as a failed read.
func (Windowing) GetExStyle(hwnd gfx.HWND) (uint32, error) {
	ret, _, err := getWindowLongW.Call(uintptr(hwnd), int32ToUintptr(GWL_EXSTYLE))
	if uint32(ret) == 0 {
		return 0, callError("GetWindowLongW", err)
	}
	return uint32(ret), nil
}

// SetExStyle writes GWL_EXSTYLE. SetWindowLongPtrW returns the previous
// style, which is never zero for a window GetExStyle could read.
func (Windowing) SetExStyle(hwnd gfx.HWND, style uint32) error {
	ret, _, err := setWindowLongPtrW.Call(uintptr(hwnd), int32ToUintptr(GWL_EXSTYLE), uintptr(style))
	if ret == 0 {
		return callError("SetWindowLongPtrW", err)
	}
	return nil
}

// ExtendFrameIntoClientArea calls DwmExtendFrameIntoClientArea.
func (Windowing) ExtendFrameIntoClientArea(hwnd gfx.HWND, m gfx.Margins) error {
	hr, _, _ := dwmExtendFrameIntoClientArea.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&m)))
	return hresultError("DwmExtendFrameIntoClientArea", hr)
}

// SetLayeredWindowAttributes sets the color key and constant alpha.
func (Windowing) SetLayeredWindowAttributes(hwnd gfx.HWND, key gfx.ColorRef, alpha uint8, flags uint32) error {
	ret, _, err := setLayeredWindowAttributes.Call(uintptr(hwnd), uintptr(key), uintptr(alpha), uintptr(flags))
	if ret == 0 {
		return callError("SetLayeredWindowAttributes", err)
	}
	return nil
}

// SetWindowPos changes the window's position, size or Z-order.
func (Windowing) SetWindowPos(hwnd, insertAfter gfx.HWND, x, y, cx, cy int32, flags uint32) error {
	ret, _, err := setWindowPos.Call(
		uintptr(hwnd),
		uintptr(insertAfter),
		int32ToUintptr(x),
		int32ToUintptr(y),
		int32ToUintptr(cx),
		int32ToUintptr(cy),
		uintptr(flags),
	)
	if ret == 0 {
		return callError("SetWindowPos", err)
	}
	return nil
}

// ShowWindow shows the window. ShowWindow itself only reports the previous
// visibility, so success is checked with IsWindowVisible.
func (Windowing) ShowWindow(hwnd gfx.HWND, cmd int32) error {
	showWindow.Call(uintptr(hwnd), int32ToUintptr(cmd))
	if cmd == gfx.SW_SHOW {
		visible, _, _ := isWindowVisible.Call(uintptr(hwnd))
		if visible == 0 {
			return errors.New("ShowWindow: window is still hidden")
		}
	}
	return nil
}

// ClientRect returns the client area in client coordinates.
func (Windowing) ClientRect(hwnd gfx.HWND) (gfx.Rect, error) {
	var rc gfx.Rect
	ret, _, err := getClientRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&rc)))
	if ret == 0 {
		return gfx.Rect{}, callError("GetClientRect", err)
	}
	return rc, nil
}

// WindowRect returns the full window rectangle in screen coordinates.
func (Windowing) WindowRect(hwnd gfx.HWND) (gfx.Rect, error) {
	var rc gfx.Rect
	ret, _, err := getWindowRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&rc)))
	if ret == 0 {
		return gfx.Rect{}, callError("GetWindowRect", err)
	}
	return rc, nil
}

func int32ToUintptr(v int32) uintptr {
	return uintptr(v)
}

// callError turns the last-error value of a failed call into an error.
func callError(op string, err error) error {
	var errno windows.Errno
	if errors.As(err, &errno) && errno != 0 {
		return fmt.Errorf("%s: %w", op, errno)
	}
	return fmt.Errorf("%s failed", op)
}

//go:build !windows

package overlay

import (
	"errors"

	"overlayhijack/internal/gfx"
)

var errUnsupported = errors.New("overlay windows are only available on Windows")

// unsupported finds no windows and creates nothing, so Init reports
// WindowNotFound unless a platform is supplied with WithPlatform.
type unsupported struct{}

func defaultPlatform() (gfx.Windowing, gfx.Graphics) {
	return unsupported{}, unsupported{}
}

func (unsupported) FindWindow(string, string) gfx.HWND { return 0 }

func (unsupported) GetExStyle(gfx.HWND) (uint32, error) { return 0, errUnsupported }

func (unsupported) SetExStyle(gfx.HWND, uint32) error { return errUnsupported }

func (unsupported) ExtendFrameIntoClientArea(gfx.HWND, gfx.Margins) error { return errUnsupported }

func (unsupported) SetLayeredWindowAttributes(gfx.HWND, gfx.ColorRef, uint8, uint32) error {
	return errUnsupported
}

func (unsupported) SetWindowPos(gfx.HWND, gfx.HWND, int32, int32, int32, int32, uint32) error {
	return errUnsupported
}

func (unsupported) ShowWindow(gfx.HWND, int32) error { return errUnsupported }

func (unsupported) ClientRect(gfx.HWND) (gfx.Rect, error) { return gfx.Rect{}, errUnsupported }

func (unsupported) WindowRect(gfx.HWND) (gfx.Rect, error) { return gfx.Rect{}, errUnsupported }

func (unsupported) CreateDrawingFactory(gfx.FactoryType) (gfx.DrawingFactory, error) {
	return nil, errUnsupported
}

func (unsupported) CreateTextFactory(gfx.TextFactoryType) (gfx.TextFactory, error) {
	return nil, errUnsupported
}

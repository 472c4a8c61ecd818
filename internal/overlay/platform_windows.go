//go:build windows

package overlay

import (
	"overlayhijack/internal/gfx"
	"overlayhijack/internal/win32"
)

func defaultPlatform() (gfx.Windowing, gfx.Graphics) {
	return win32.Windowing{}, win32.Graphics{}
}

//go:build windows

package main

import (
	"context"
	"fmt"
	"log/slog"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	shcore = windows.NewLazySystemDLL("shcore.dll")
)

// DPI awareness has to be set before any other Win32 call so that the
// client rect, and with it the render target, is measured in physical
// pixels.
func init() {
	// Windows 10 1703+
	setCtx := user32.NewProc("SetProcessDpiAwarenessContext")
	if setCtx.Find() == nil {
		// DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2 = -4
		if r, _, _ := setCtx.Call(^uintptr(3)); r != 0 {
			return
		}
		// DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE = -3
		if r, _, _ := setCtx.Call(^uintptr(2)); r != 0 {
			return
		}
	}

	// Windows 8.1+
	setAwareness := shcore.NewProc("SetProcessDpiAwareness")
	if setAwareness.Find() == nil {
		if r, _, _ := setAwareness.Call(2); r == 0 { // PROCESS_PER_MONITOR_DPI_AWARE
			return
		}
		// E_ACCESSDENIED means it was already set; settle for system aware.
		setAwareness.Call(1)
		return
	}

	user32.NewProc("SetProcessDPIAware").Call()
}

// logDPIInfo logs the screen metrics and DPI awareness at debug level.
func logDPIInfo(logger *slog.Logger) {
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	gsm := user32.NewProc("GetSystemMetrics")
	metric := func(index uintptr) int {
		r, _, _ := gsm.Call(index)
		return int(int32(r)) // sign-extend
	}

	attrs := []any{
		"screen", fmt.Sprintf("%dx%d", metric(0), metric(1)), // SM_CXSCREEN, SM_CYSCREEN
		"virtualOrigin", fmt.Sprintf("%d,%d", metric(76), metric(77)),
		"virtualSize", fmt.Sprintf("%dx%d", metric(78), metric(79)),
	}

	if p := user32.NewProc("GetDpiForSystem"); p.Find() == nil {
		dpi, _, _ := p.Call()
		attrs = append(attrs, "systemDPI", dpi, "scale", fmt.Sprintf("%d%%", dpi*100/96))
	}

	getCtx := user32.NewProc("GetThreadDpiAwarenessContext")
	getAwareness := user32.NewProc("GetAwarenessFromDpiAwarenessContext")
	if getCtx.Find() == nil && getAwareness.Find() == nil {
		ctx, _, _ := getCtx.Call()
		aw, _, _ := getAwareness.Call(ctx)
		attrs = append(attrs, "threadAwareness", aw) // 0 unaware, 1 system, 2 per monitor
	}

	if p := shcore.NewProc("GetProcessDpiAwareness"); p.Find() == nil {
		var awareness uint32
		p.Call(0, uintptr(unsafe.Pointer(&awareness)))
		attrs = append(attrs, "processAwareness", awareness)
	}

	logger.Debug("display", attrs...)
}

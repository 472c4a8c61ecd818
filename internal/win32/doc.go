// Package win32 binds the gfx contracts to user32, dwmapi, Direct2D and
// DirectWrite. COM objects are called through their vtables, so no cgo is
// needed. All objects are single-threaded and must stay on the OS thread
// that created them.
package win32

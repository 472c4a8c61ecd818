//go:build windows

package win32

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"overlayhijack/internal/gfx"
)

var (
	dwrite = windows.NewLazySystemDLL("dwrite.dll")

	dwriteCreateFactory = dwrite.NewProc("DWriteCreateFactory")
)

var iidIDWriteFactory = windows.GUID{
	Data1: 0xb859ee5a,
	Data2: 0xd838,
	Data3: 0x4b5b,
	Data4: [8]byte{0xa2, 0xe8, 0x1a, 0xdc, 0x7d, 0x93, 0xdb, 0x48},
}

// IDWriteFactory vtable indices.
const (
	dwFactoryCreateTextFormat = 15
	dwFactoryCreateTextLayout = 18
)

type textFactory struct {
	ptr uintptr
}

func newTextFactory(t gfx.TextFactoryType) (*textFactory, error) {
	var factory uintptr
	hr, _, _ := dwriteCreateFactory.Call(
		uintptr(t),
		uintptr(unsafe.Pointer(&iidIDWriteFactory)),
		uintptr(unsafe.Pointer(&factory)),
	)
	if err := hresultError("DWriteCreateFactory", hr); err != nil {
		return nil, err
	}
	if factory == 0 {
		return nil, fmt.Errorf("DWriteCreateFactory returned no factory")
	}
	return &textFactory{ptr: factory}, nil
}

func (f *textFactory) Release() {
	comRelease(f.ptr)
	f.ptr = 0
}

func (f *textFactory) CreateTextFormat(p gfx.TextFormatParams) (gfx.TextFormat, error) {
	family, err := windows.UTF16PtrFromString(p.FamilyName)
	if err != nil {
		return nil, fmt.Errorf("CreateTextFormat: font family: %w", err)
	}
	locale, err := windows.UTF16PtrFromString(p.Locale)
	if err != nil {
		return nil, fmt.Errorf("CreateTextFormat: locale: %w", err)
	}

	var format uintptr
	hr, _, _ := syscall.SyscallN(method(f.ptr, dwFactoryCreateTextFormat),
		f.ptr,
		uintptr(unsafe.Pointer(family)),
		0, // system font collection
		uintptr(p.Weight),
		uintptr(p.Style),
		uintptr(p.Stretch),
		f32(p.Size),
		uintptr(unsafe.Pointer(locale)),
		uintptr(unsafe.Pointer(&format)),
	)
	if err := hresultError("CreateTextFormat", hr); err != nil {
		return nil, err
	}
	return &textFormat{ptr: format}, nil
}

func (f *textFactory) CreateTextLayout(text string, format gfx.TextFormat, maxWidth, maxHeight float32) (gfx.TextLayout, error) {
	utf16, err := windows.UTF16FromString(text)
	if err != nil {
		return nil, fmt.Errorf("CreateTextLayout: %w", err)
	}

	var layout uintptr
	hr, _, _ := syscall.SyscallN(method(f.ptr, dwFactoryCreateTextLayout),
		f.ptr,
		uintptr(unsafe.Pointer(&utf16[0])),
		uintptr(len(utf16)-1), // without the terminating NUL
		format.(*textFormat).ptr,
		f32(maxWidth),
		f32(maxHeight),
		uintptr(unsafe.Pointer(&layout)),
	)
	if err := hresultError("CreateTextLayout", hr); err != nil {
		return nil, err
	}
	return &textLayout{ptr: layout}, nil
}

type textFormat struct {
	ptr uintptr
}

func (f *textFormat) Release() {
	comRelease(f.ptr)
	f.ptr = 0
}

type textLayout struct {
	ptr uintptr
}

func (l *textLayout) Release() {
	comRelease(l.ptr)
	l.ptr = 0
}

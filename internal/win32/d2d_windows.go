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
	d2d1 = windows.NewLazySystemDLL("d2d1.dll")

	d2d1CreateFactory = d2d1.NewProc("D2D1CreateFactory")
)

var iidID2D1Factory = windows.GUID{
	Data1: 0x06152247,
	Data2: 0x6f50,
	Data3: 0x465a,
	Data4: [8]byte{0x92, 0x45, 0x11, 0x8b, 0xfd, 0x3b, 0x60, 0x07},
}

// ID2D1Factory, ID2D1RenderTarget and ID2D1HwndRenderTarget vtable indices.
const (
	d2dFactoryCreateHwndRenderTarget = 14

	d2dRTCreateSolidColorBrush = 8
	d2dRTDrawRectangle         = 16
	d2dRTDrawTextLayout        = 28
	d2dRTClear                 = 47
	d2dRTBeginDraw             = 48
	d2dRTEndDraw               = 49
	d2dHwndRTResize            = 58
)

// Graphics implements gfx.Graphics with Direct2D and DirectWrite.
type Graphics struct{}

// CreateDrawingFactory calls D2D1CreateFactory.
func (Graphics) CreateDrawingFactory(t gfx.FactoryType) (gfx.DrawingFactory, error) {
	var factory uintptr
	hr, _, _ := d2d1CreateFactory.Call(
		uintptr(t),
		uintptr(unsafe.Pointer(&iidID2D1Factory)),
		0,
		uintptr(unsafe.Pointer(&factory)),
	)
	if err := hresultError("D2D1CreateFactory", hr); err != nil {
		return nil, err
	}
	if factory == 0 {
		return nil, fmt.Errorf("D2D1CreateFactory returned no factory")
	}
	return &drawingFactory{ptr: factory}, nil
}

// CreateTextFactory calls DWriteCreateFactory.
func (Graphics) CreateTextFactory(t gfx.TextFactoryType) (gfx.TextFactory, error) {
	f, err := newTextFactory(t)
	if err != nil {
		return nil, err
	}
	return f, nil
}

type drawingFactory struct {
	ptr uintptr
}

func (f *drawingFactory) Release() {
	comRelease(f.ptr)
	f.ptr = 0
}

func (f *drawingFactory) CreateHwndRenderTarget(rt gfx.RenderTargetProperties, hw gfx.HwndRenderTargetProperties) (gfx.RenderTarget, error) {
	var target uintptr
	hr, _, _ := syscall.SyscallN(method(f.ptr, d2dFactoryCreateHwndRenderTarget),
		f.ptr,
		uintptr(unsafe.Pointer(&rt)),
		uintptr(unsafe.Pointer(&hw)),
		uintptr(unsafe.Pointer(&target)),
	)
	if err := hresultError("CreateHwndRenderTarget", hr); err != nil {
		return nil, err
	}
	return &renderTarget{ptr: target, size: hw.PixelSize}, nil
}

// renderTarget wraps an ID2D1HwndRenderTarget. The pixel size is tracked
// on the Go side because GetPixelSize returns its struct through a hidden
// pointer that a plain call cannot describe.
type renderTarget struct {
	ptr  uintptr
	size gfx.SizeU
}

func (r *renderTarget) Release() {
	comRelease(r.ptr)
	r.ptr = 0
}

func (r *renderTarget) CreateSolidColorBrush(c gfx.ColorF, p gfx.BrushProperties) (gfx.Brush, error) {
	var brush uintptr
	hr, _, _ := syscall.SyscallN(method(r.ptr, d2dRTCreateSolidColorBrush),
		r.ptr,
		uintptr(unsafe.Pointer(&c)),
		uintptr(unsafe.Pointer(&p)),
		uintptr(unsafe.Pointer(&brush)),
	)
	if err := hresultError("CreateSolidColorBrush", hr); err != nil {
		return nil, err
	}
	return &solidBrush{ptr: brush}, nil
}

func (r *renderTarget) BeginDraw() {
	syscall.SyscallN(method(r.ptr, d2dRTBeginDraw), r.ptr)
}

func (r *renderTarget) Clear(c *gfx.ColorF) {
	syscall.SyscallN(method(r.ptr, d2dRTClear), r.ptr, uintptr(unsafe.Pointer(c)))
}

func (r *renderTarget) DrawTextLayout(origin gfx.PointF, layout gfx.TextLayout, brush gfx.Brush, options uint32) {
	syscall.SyscallN(method(r.ptr, d2dRTDrawTextLayout),
		r.ptr,
		point2F(origin.X, origin.Y),
		layout.(*textLayout).ptr,
		brush.(*solidBrush).ptr,
		uintptr(options),
	)
}

func (r *renderTarget) DrawRectangle(rect gfx.RectF, brush gfx.Brush, strokeWidth float32) {
	syscall.SyscallN(method(r.ptr, d2dRTDrawRectangle),
		r.ptr,
		uintptr(unsafe.Pointer(&rect)),
		brush.(*solidBrush).ptr,
		f32(strokeWidth),
		0,
	)
}

func (r *renderTarget) EndDraw() error {
	hr, _, _ := syscall.SyscallN(method(r.ptr, d2dRTEndDraw), r.ptr, 0, 0)
	return hresultError("EndDraw", hr)
}

func (r *renderTarget) PixelSize() gfx.SizeU {
	return r.size
}

func (r *renderTarget) Resize(size gfx.SizeU) error {
	hr, _, _ := syscall.SyscallN(method(r.ptr, d2dHwndRTResize), r.ptr, uintptr(unsafe.Pointer(&size)))
	if err := hresultError("Resize", hr); err != nil {
		return err
	}
	r.size = size
	return nil
}

type solidBrush struct {
	ptr uintptr
}

func (b *solidBrush) Release() {
	comRelease(b.ptr)
	b.ptr = 0
}

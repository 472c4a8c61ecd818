//go:build windows

package win32

import (
	"fmt"
	"math"
	"syscall"
	"unsafe"
)

// IUnknown vtable indices.
const (
	vtblQueryInterface = 0
	vtblAddRef         = 1
	vtblRelease        = 2
)

// Well-known failure codes.
const (
	D2DERR_RECREATE_TARGET = 0x8899000C
	D2DERR_WRONG_STATE     = 0x88990001
	E_INVALIDARG           = 0x80070057
	E_OUTOFMEMORY          = 0x8007000E
)

// HRESULT is a failed COM status code.
type HRESULT struct {
	Op   string
	Code uint32
}

func (e *HRESULT) Error() string {
	switch e.Code {
	case D2DERR_RECREATE_TARGET:
		return e.Op + ": render target must be recreated (D2DERR_RECREATE_TARGET)"
	case D2DERR_WRONG_STATE:
		return e.Op + ": wrong state (D2DERR_WRONG_STATE)"
	case E_INVALIDARG:
		return e.Op + ": invalid argument (E_INVALIDARG)"
	case E_OUTOFMEMORY:
		return e.Op + ": out of memory (E_OUTOFMEMORY)"
	}
	return fmt.Sprintf("%s: HRESULT 0x%08X", e.Op, e.Code)
}

// NeedsRecreate reports whether the device behind a render target was lost.
func (e *HRESULT) NeedsRecreate() bool {
	return e.Code == D2DERR_RECREATE_TARGET
}

func hresultError(op string, hr uintptr) error {
	if int32(hr) < 0 {
		return &HRESULT{Op: op, Code: uint32(hr)}
	}
	return nil
}

// method returns the address of the index-th entry of obj's vtable.
func method(obj uintptr, index int) uintptr {
	vtbl := *(*uintptr)(unsafe.Pointer(obj))
	return *(*uintptr)(unsafe.Pointer(vtbl + uintptr(index)*unsafe.Sizeof(uintptr(0))))
}

func comRelease(obj uintptr) {
	if obj == 0 {
		return
	}
	syscall.SyscallN(method(obj, vtblRelease), obj)
}

// f32 passes a FLOAT argument. The Windows amd64 call path copies the
// first four integer arguments into XMM0-3 as well, and stack slots are
// read by the callee as raw bits.
func f32(v float32) uintptr {
	return uintptr(math.Float32bits(v))
}

// point2F packs a D2D1_POINT_2F for pass-by-value in a single register.
func point2F(x, y float32) uintptr {
	return uintptr(uint64(math.Float32bits(x)) | uint64(math.Float32bits(y))<<32)
}

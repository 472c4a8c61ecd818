// Package gfx describes the host windowing, 2D drawing and text layout
// services an overlay is drawn through. The values mirror the Win32,
// Direct2D and DirectWrite structures so the Windows backend can pass
// them straight through, while other backends are free to interpret them.
package gfx

// HWND is a non-owning reference to a top-level window. Zero means no window.
type HWND uintptr

// Window styles and flags used when converting a window into an overlay.
const (
	WS_EX_TRANSPARENT = 0x00000020
	WS_EX_LAYERED     = 0x00080000

	LWA_COLORKEY = 0x00000001
	LWA_ALPHA    = 0x00000002

	SWP_NOSIZE = 0x0001
	SWP_NOMOVE = 0x0002

	SW_SHOW = 5
)

// HWND_TOPMOST is the Z-order sentinel for the topmost band ((HWND)-1).
const HWND_TOPMOST = ^HWND(0)

// Rect is a window or client rectangle in pixels.
type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

// Width of the rectangle.
func (r Rect) Width() int32 { return r.Right - r.Left }

// Height of the rectangle.
func (r Rect) Height() int32 { return r.Bottom - r.Top }

// Margins passed to DwmExtendFrameIntoClientArea. All -1 gives a sheet of glass.
type Margins struct {
	CxLeftWidth    int32
	CxRightWidth   int32
	CyTopHeight    int32
	CyBottomHeight int32
}

// SheetOfGlass extends the frame over the whole client area.
var SheetOfGlass = Margins{-1, -1, -1, -1}

// ColorRef is a GDI 0x00BBGGRR color.
type ColorRef uint32

// ColorF is a color with unit-interval float channels (D2D1_COLOR_F).
type ColorF struct {
	R, G, B, A float32
}

// PointF is D2D1_POINT_2F.
type PointF struct {
	X, Y float32
}

// RectF is D2D1_RECT_F.
type RectF struct {
	Left, Top, Right, Bottom float32
}

// SizeU is D2D1_SIZE_U.
type SizeU struct {
	Width, Height uint32
}

// Matrix3x2F is D2D1_MATRIX_3X2_F.
type Matrix3x2F [6]float32

// IdentityMatrix is the identity transform.
var IdentityMatrix = Matrix3x2F{1, 0, 0, 1, 0, 0}

// BrushProperties is D2D1_BRUSH_PROPERTIES.
type BrushProperties struct {
	Opacity   float32
	Transform Matrix3x2F
}

// DefaultBrushProperties is full opacity with an identity transform.
var DefaultBrushProperties = BrushProperties{Opacity: 1, Transform: IdentityMatrix}

// FactoryType selects the threading model of a drawing factory.
type FactoryType uint32

const (
	FactorySingleThreaded FactoryType = 0
	FactoryMultiThreaded  FactoryType = 1
)

// TextFactoryType selects whether a text factory is shared or isolated.
type TextFactoryType uint32

const (
	TextFactoryShared   TextFactoryType = 0
	TextFactoryIsolated TextFactoryType = 1
)

// Pixel formats and alpha modes for render targets.
const (
	DXGI_FORMAT_UNKNOWN = 0

	AlphaModeUnknown       = 0
	AlphaModePremultiplied = 1
	AlphaModeStraight      = 2
	AlphaModeIgnore        = 3
)

// RenderTargetType, usage, feature level and present option values.
const (
	RenderTargetTypeDefault = 0
	RenderTargetUsageNone   = 0
	FeatureLevelDefault     = 0
	PresentOptionsNone      = 0
)

// PixelFormat is D2D1_PIXEL_FORMAT.
type PixelFormat struct {
	Format    uint32
	AlphaMode uint32
}

// RenderTargetProperties is D2D1_RENDER_TARGET_PROPERTIES.
type RenderTargetProperties struct {
	Type        uint32
	PixelFormat PixelFormat
	DpiX        float32
	DpiY        float32
	Usage       uint32
	MinLevel    uint32
}

// HwndRenderTargetProperties is D2D1_HWND_RENDER_TARGET_PROPERTIES.
type HwndRenderTargetProperties struct {
	Hwnd           HWND
	PixelSize      SizeU
	PresentOptions uint32
}

// Font weight, style and stretch values for text formats.
const (
	FontWeightRegular   = 400
	FontStyleNormal     = 0
	FontStretchNormal   = 5
	DrawTextOptionsNone = 0
)

// TextFormatParams describes a text format to create.
type TextFormatParams struct {
	FamilyName string
	Weight     uint32
	Style      uint32
	Stretch    uint32
	Size       float32
	Locale     string
}

package gfx

// Windowing is the subset of the window manager an overlay needs. Every
// method reports rejection by the host as a non-nil error.
type Windowing interface {
	// FindWindow returns zero when no top-level window matches.
	FindWindow(className, windowName string) HWND
	GetExStyle(hwnd HWND) (uint32, error)
	SetExStyle(hwnd HWND, style uint32) error
	ExtendFrameIntoClientArea(hwnd HWND, m Margins) error
	SetLayeredWindowAttributes(hwnd HWND, key ColorRef, alpha uint8, flags uint32) error
	SetWindowPos(hwnd, insertAfter HWND, x, y, cx, cy int32, flags uint32) error
	ShowWindow(hwnd HWND, cmd int32) error
	ClientRect(hwnd HWND) (Rect, error)
	WindowRect(hwnd HWND) (Rect, error)
}

// Graphics creates the device-independent factories.
type Graphics interface {
	CreateDrawingFactory(t FactoryType) (DrawingFactory, error)
	CreateTextFactory(t TextFactoryType) (TextFactory, error)
}

// Releaser drops the caller's reference to a host object.
type Releaser interface {
	Release()
}

// DrawingFactory creates window-bound render targets.
type DrawingFactory interface {
	Releaser
	CreateHwndRenderTarget(rt RenderTargetProperties, hw HwndRenderTargetProperties) (RenderTarget, error)
}

// TextFactory creates text formats and text layouts.
type TextFactory interface {
	Releaser
	CreateTextFormat(p TextFormatParams) (TextFormat, error)
	CreateTextLayout(text string, format TextFormat, maxWidth, maxHeight float32) (TextLayout, error)
}

// TextFormat is an immutable font family, size and locale.
type TextFormat interface {
	Releaser
}

// TextLayout is measured text ready to be drawn.
type TextLayout interface {
	Releaser
}

// Brush paints strokes and glyphs.
type Brush interface {
	Releaser
}

// RenderTarget is a drawing surface bound to a window's client area.
type RenderTarget interface {
	Releaser
	CreateSolidColorBrush(c ColorF, p BrushProperties) (Brush, error)
	BeginDraw()
	// Clear fills the target; nil clears to transparent black.
	Clear(c *ColorF)
	DrawTextLayout(origin PointF, layout TextLayout, brush Brush, options uint32)
	// DrawRectangle strokes rect. A nil stroke style is the default solid stroke.
	DrawRectangle(rect RectF, brush Brush, strokeWidth float32)
	EndDraw() error
	PixelSize() SizeU
	Resize(size SizeU) error
}

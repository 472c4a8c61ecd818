// Package overlay takes over an externally owned overlay window and draws
// onto it frame by frame.
//
// The lifecycle is New → Init → Startup → (BeginScene, ClearScene, Draw*,
// EndScene)* → Close. An Overlay is not safe for concurrent use; every
// call must come from the thread that called Startup.
package overlay

import "overlayhijack/internal/gfx"

// Font is the family name and size used for all text.
type Font struct {
	Name string
	Size float32
}

// Target identifies the foreign window by class name and title.
type Target struct {
	Class string
	Title string
}

// DefaultTarget is the NVIDIA GeForce Experience in-game overlay.
var DefaultTarget = Target{
	Class: "CEF-OSC-WIDGET",
	Title: "NVIDIA GeForce Overlay",
}

// State is the position of an Overlay in its lifecycle.
type State int

const (
	Uninitialized State = iota
	WindowAcquired
	Ready
	InFrame
	Disposed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case WindowAcquired:
		return "window acquired"
	case Ready:
		return "ready"
	case InFrame:
		return "in frame"
	case Disposed:
		return "disposed"
	}
	return "unknown"
}

// Overlay owns the graphics objects bound to a hijacked window. The window
// itself belongs to another process and is only ever restyled.
type Overlay struct {
	windowing gfx.Windowing
	graphics  gfx.Graphics

	target     Target
	autoResize bool

	window         gfx.HWND
	drawingFactory gfx.DrawingFactory
	textFactory    gfx.TextFactory
	textFormat     gfx.TextFormat
	renderTarget   gfx.RenderTarget

	font  Font
	state State
}

// Option configures an Overlay.
type Option func(*Overlay)

// WithPlatform replaces the host window manager and graphics stack.
func WithPlatform(w gfx.Windowing, g gfx.Graphics) Option {
	return func(o *Overlay) {
		o.windowing = w
		o.graphics = g
	}
}

// WithTarget looks for a different window than DefaultTarget.
func WithTarget(t Target) Option {
	return func(o *Overlay) {
		o.target = t
	}
}

// WithAutoResize makes BeginScene resize the render target when the
// window's client area has changed since the last frame. Without it the
// render target keeps the size it had at Startup.
func WithAutoResize() Option {
	return func(o *Overlay) {
		o.autoResize = true
	}
}

// New returns an Overlay that will draw with font. No host state is touched
// until Init.
func New(font Font, opts ...Option) *Overlay {
	o := &Overlay{
		target: DefaultTarget,
		font:   font,
	}
	o.windowing, o.graphics = defaultPlatform()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Font returns the font the Overlay was built with.
func (o *Overlay) Font() Font { return o.font }

// Target returns the window descriptor Init looks for.
func (o *Overlay) Target() Target { return o.target }

// Window returns the hijacked window, or zero before Init has found one.
func (o *Overlay) Window() gfx.HWND { return o.window }

// State returns the lifecycle state.
func (o *Overlay) State() State { return o.state }

// Ready reports whether Startup has produced a render target.
func (o *Overlay) Ready() bool { return o.renderTarget != nil }

// RenderTargetSize returns the pixel size of the render target.
func (o *Overlay) RenderTargetSize() (gfx.SizeU, bool) {
	if o.renderTarget == nil {
		return gfx.SizeU{}, false
	}
	return o.renderTarget.PixelSize(), true
}

// Close draws one empty frame so the window is left blank, then releases
// the graphics objects in reverse creation order. Close never panics and
// is safe to call more than once.
func (o *Overlay) Close() error {
	if o.state == Disposed {
		return nil
	}
	o.flush()
	o.release()
	o.state = Disposed
	Logger().Debug("overlay closed", "window", o.window)
	return nil
}

func (o *Overlay) flush() {
	defer func() {
		if r := recover(); r != nil {
			Logger().Debug("final frame skipped", "reason", r)
		}
	}()
	o.BeginScene()
	o.ClearScene()
	if err := o.EndScene(); err != nil {
		Logger().Debug("final frame not presented", "error", err)
	}
}

func (o *Overlay) release() {
	if o.renderTarget != nil {
		o.renderTarget.Release()
		o.renderTarget = nil
	}
	if o.textFormat != nil {
		o.textFormat.Release()
		o.textFormat = nil
	}
	if o.textFactory != nil {
		o.textFactory.Release()
		o.textFactory = nil
	}
	if o.drawingFactory != nil {
		o.drawingFactory.Release()
		o.drawingFactory = nil
	}
}

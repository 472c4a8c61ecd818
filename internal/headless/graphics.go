package headless

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gg"

	"overlayhijack/internal/gfx"
)

// ErrWrongState is returned by EndDraw without a matching BeginDraw.
var ErrWrongState = errors.New("headless: render target is not drawing")

// CreateDrawingFactory returns a factory for gg-backed render targets.
func (d *Desktop) CreateDrawingFactory(t gfx.FactoryType) (gfx.DrawingFactory, error) {
	if err := d.fault(OpDrawingFactory); err != nil {
		return nil, err
	}
	d.live.DrawingFactories++
	d.created.DrawingFactories++
	return &drawingFactory{desk: d, kind: t}, nil
}

// CreateTextFactory returns a factory for go-text font faces.
func (d *Desktop) CreateTextFactory(t gfx.TextFactoryType) (gfx.TextFactory, error) {
	if err := d.fault(OpTextFactory); err != nil {
		return nil, err
	}
	d.live.TextFactories++
	d.created.TextFactories++
	return &textFactory{desk: d, kind: t}, nil
}

type drawingFactory struct {
	desk     *Desktop
	kind     gfx.FactoryType
	released bool
}

func (f *drawingFactory) Release() {
	if f.released {
		return
	}
	f.released = true
	f.desk.live.DrawingFactories--
}

func (f *drawingFactory) CreateHwndRenderTarget(rt gfx.RenderTargetProperties, hw gfx.HwndRenderTargetProperties) (gfx.RenderTarget, error) {
	if err := f.desk.fault(OpRenderTarget); err != nil {
		return nil, err
	}
	if _, ok := f.desk.windows[hw.Hwnd]; !ok {
		return nil, fmt.Errorf("%s: invalid window handle %#x", OpRenderTarget, uintptr(hw.Hwnd))
	}
	if hw.PixelSize.Width == 0 || hw.PixelSize.Height == 0 {
		return nil, fmt.Errorf("%s: empty pixel size %dx%d", OpRenderTarget, hw.PixelSize.Width, hw.PixelSize.Height)
	}
	target := &RenderTarget{
		desk:       f.desk,
		hwnd:       hw.Hwnd,
		Properties: rt,
		Hwnd:       hw,
		size:       hw.PixelSize,
		dc:         gg.NewContext(int(hw.PixelSize.Width), int(hw.PixelSize.Height)),
	}
	f.desk.live.RenderTargets++
	f.desk.created.RenderTargets++
	f.desk.targets = append(f.desk.targets, target)
	gg.Logger().Debug("headless render target created",
		"hwnd", uintptr(hw.Hwnd), "width", hw.PixelSize.Width, "height", hw.PixelSize.Height)
	return target, nil
}

// Call is one drawing command recorded by a RenderTarget.
type Call struct {
	Op          string
	Rect        gfx.RectF
	Origin      gfx.PointF
	Color       gfx.ColorF
	StrokeWidth float32
	Text        string
	Layout      *TextLayout
	Clear       *gfx.ColorF
}

// RenderTarget draws into an in-memory gg context sized like the window's
// client area at creation time.
type RenderTarget struct {
	desk *Desktop
	hwnd gfx.HWND

	Properties gfx.RenderTargetProperties
	Hwnd       gfx.HwndRenderTargetProperties

	size     gfx.SizeU
	dc       *gg.Context
	drawing  bool
	nested   bool
	frames   int
	calls    []Call
	released bool
}

// Calls returns the commands issued so far.
func (r *RenderTarget) Calls() []Call {
	return append([]Call(nil), r.calls...)
}

// CallsOf returns the recorded commands named op.
func (r *RenderTarget) CallsOf(op string) []Call {
	var out []Call
	for _, c := range r.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Frames returns the number of frames presented.
func (r *RenderTarget) Frames() int { return r.frames }

// Released reports whether Release has been called.
func (r *RenderTarget) Released() bool { return r.released }

// Image returns the current pixels.
func (r *RenderTarget) Image() image.Image { return r.dc.Image() }

func (r *RenderTarget) Release() {
	if r.released {
		return
	}
	r.released = true
	r.desk.live.RenderTargets--
	_ = r.dc.Close()
}

func (r *RenderTarget) CreateSolidColorBrush(c gfx.ColorF, p gfx.BrushProperties) (gfx.Brush, error) {
	if err := r.desk.fault(OpBrush); err != nil {
		return nil, err
	}
	r.desk.live.Brushes++
	r.desk.created.Brushes++
	return &Brush{desk: r.desk, Color: c, Properties: p}, nil
}

// BeginDraw opens a frame. A second BeginDraw before EndDraw makes that
// EndDraw fail with ErrWrongState, as Direct2D does.
func (r *RenderTarget) BeginDraw() {
	if r.drawing {
		r.nested = true
	}
	r.drawing = true
	r.calls = append(r.calls, Call{Op: "BeginDraw"})
}

func (r *RenderTarget) Clear(c *gfx.ColorF) {
	call := Call{Op: "Clear"}
	if c == nil {
		r.dc.Clear()
	} else {
		col := *c
		call.Clear = &col
		r.dc.ClearWithColor(gg.RGBA{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)})
	}
	r.calls = append(r.calls, call)
}

func (r *RenderTarget) DrawTextLayout(origin gfx.PointF, layout gfx.TextLayout, brush gfx.Brush, options uint32) {
	l := layout.(*TextLayout)
	b := brush.(*Brush)
	r.calls = append(r.calls, Call{Op: "DrawTextLayout", Origin: origin, Color: b.Color, Text: l.Text, Layout: l})

	r.dc.SetFont(l.face)
	r.setColor(b)
	ascent := l.face.Metrics().Ascent
	for _, line := range l.lines {
		if l.MaxHeight > 0 && line.baseline-ascent >= float64(l.MaxHeight) {
			break
		}
		r.dc.DrawString(line.text, float64(origin.X), float64(origin.Y)+line.baseline)
	}
}

func (r *RenderTarget) DrawRectangle(rect gfx.RectF, brush gfx.Brush, strokeWidth float32) {
	b := brush.(*Brush)
	r.calls = append(r.calls, Call{Op: "DrawRectangle", Rect: rect, Color: b.Color, StrokeWidth: strokeWidth})

	r.setColor(b)
	r.dc.SetLineWidth(float64(strokeWidth))
	r.dc.DrawRectangle(float64(rect.Left), float64(rect.Top),
		float64(rect.Right-rect.Left), float64(rect.Bottom-rect.Top))
	if err := r.dc.Stroke(); err != nil {
		gg.Logger().Warn("headless stroke failed", "error", err)
	}
}

func (r *RenderTarget) EndDraw() error {
	r.calls = append(r.calls, Call{Op: "EndDraw"})
	if err := r.desk.fault(OpEndDraw); err != nil {
		r.drawing, r.nested = false, false
		return err
	}
	if !r.drawing || r.nested {
		r.drawing, r.nested = false, false
		return ErrWrongState
	}
	r.drawing = false
	r.frames++
	if r.desk.present != nil {
		r.desk.present(r.hwnd, r.frames, r.dc.Image())
	}
	return nil
}

func (r *RenderTarget) PixelSize() gfx.SizeU { return r.size }

func (r *RenderTarget) Resize(size gfx.SizeU) error {
	if err := r.desk.fault(OpResize); err != nil {
		return err
	}
	if err := r.dc.Resize(int(size.Width), int(size.Height)); err != nil {
		return fmt.Errorf("%s: %w", OpResize, err)
	}
	r.size = size
	return nil
}

func (r *RenderTarget) setColor(b *Brush) {
	a := float64(b.Color.A) * float64(b.Properties.Opacity)
	r.dc.SetRGBA(float64(b.Color.R), float64(b.Color.G), float64(b.Color.B), a)
}

// Brush is a solid color brush.
type Brush struct {
	desk       *Desktop
	Color      gfx.ColorF
	Properties gfx.BrushProperties
	released   bool
}

func (b *Brush) Release() {
	if b.released {
		return
	}
	b.released = true
	b.desk.live.Brushes--
}

// Released reports whether Release has been called.
func (b *Brush) Released() bool { return b.released }

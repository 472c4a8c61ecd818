package overlay

import (
	"fmt"

	"overlayhijack/internal/gfx"
)

// BeginScene starts a frame. Without a render target it does nothing, so
// callers may begin a frame before Startup has succeeded.
//
// BeginScene does not check for an open frame. Calling it twice without
// EndScene issues a second BeginDraw, and Direct2D then fails the next
// EndScene with D2DERR_WRONG_STATE.
func (o *Overlay) BeginScene() {
	if o.renderTarget == nil {
		return
	}
	if o.autoResize {
		o.resizeToClient()
	}
	o.renderTarget.BeginDraw()
	o.state = InFrame
}

// ClearScene clears the whole render target to transparent.
// It panics with a *ContractViolation if there is no render target.
func (o *Overlay) ClearScene() {
	o.mustRenderTarget("ClearScene").Clear(nil)
}

// DrawText draws text with its layout box anchored at pos.
// It panics with a *ContractViolation outside a frame.
func (o *Overlay) DrawText(pos Point, text string, c Color) {
	o.mustInFrame("DrawText")
	layout := o.createTextLayout("DrawText", text)
	defer layout.Release()

	o.withBrush("DrawText", c, func(rt gfx.RenderTarget, brush gfx.Brush) {
		rt.DrawTextLayout(gfx.PointF{X: pos.X, Y: pos.Y}, layout, brush, gfx.DrawTextOptionsNone)
	})
}

// DrawRect strokes the rectangle from pos to pos+size.
// It panics with a *ContractViolation outside a frame.
func (o *Overlay) DrawRect(pos Point, size Size, strokeWidth float32, c Color) {
	o.mustInFrame("DrawRect")
	o.withBrush("DrawRect", c, func(rt gfx.RenderTarget, brush gfx.Brush) {
		rt.DrawRectangle(gfx.RectF{
			Left:   pos.X,
			Top:    pos.Y,
			Right:  pos.X + size.Width,
			Bottom: pos.Y + size.Height,
		}, brush, strokeWidth)
	})
}

// EndScene presents the frame. It panics with a *ContractViolation if there
// is no render target; errors reported by the host while presenting, such
// as a lost device, are returned.
func (o *Overlay) EndScene() error {
	rt := o.mustRenderTarget("EndScene")
	err := rt.EndDraw()
	o.state = Ready
	if err != nil {
		return fmt.Errorf("overlay: end scene: %w", err)
	}
	return nil
}

func (o *Overlay) mustInFrame(op string) {
	o.mustRenderTarget(op)
	if o.state != InFrame {
		violate(op, "active frame", nil)
	}
}

func (o *Overlay) resizeToClient() {
	rc, err := o.windowing.ClientRect(o.window)
	if err != nil {
		Logger().Debug("client rect unavailable, keeping render target size", "error", err)
		return
	}
	size := pixelSize(rc)
	if size == o.renderTarget.PixelSize() {
		return
	}
	if err := o.renderTarget.Resize(size); err != nil {
		Logger().Warn("render target resize failed", "width", size.Width, "height", size.Height, "error", err)
		return
	}
	Logger().Debug("render target resized", "width", size.Width, "height", size.Height)
}

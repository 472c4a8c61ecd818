package overlay

import "overlayhijack/internal/gfx"

func (o *Overlay) mustRenderTarget(op string) gfx.RenderTarget {
	if o.renderTarget == nil {
		violate(op, "render target", nil)
	}
	return o.renderTarget
}

// createBrush allocates a solid brush the caller must release before the
// draw call returns.
func (o *Overlay) createBrush(op string, c Color) gfx.Brush {
	rt := o.mustRenderTarget(op)
	brush, err := rt.CreateSolidColorBrush(c.Float(), gfx.DefaultBrushProperties)
	if err != nil {
		violate(op, "solid color brush", err)
	}
	return brush
}

// createTextLayout lays text out within the bounds of the whole window,
// not just its client area.
func (o *Overlay) createTextLayout(op, text string) gfx.TextLayout {
	if o.textFactory == nil || o.textFormat == nil {
		violate(op, "text format", nil)
	}
	rc, err := o.windowing.WindowRect(o.window)
	if err != nil {
		violate(op, "window rect", err)
	}
	layout, err := o.textFactory.CreateTextLayout(text, o.textFormat, float32(rc.Width()), float32(rc.Height()))
	if err != nil {
		violate(op, "text layout", err)
	}
	return layout
}

// withBrush runs draw with a brush of color c and releases the brush
// afterwards, even if draw panics.
func (o *Overlay) withBrush(op string, c Color, draw func(rt gfx.RenderTarget, brush gfx.Brush)) {
	brush := o.createBrush(op, c)
	defer brush.Release()
	draw(o.renderTarget, brush)
}

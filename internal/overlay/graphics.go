package overlay

import "overlayhijack/internal/gfx"

const textLocale = "en-us"

// Startup creates the drawing factory, text factory, text format and a
// render target sized to the window's current client area. The four
// objects are stored together only when all of them were created; on
// failure whatever was made is released and the Overlay is unchanged.
//
// Calling Startup again replaces the previous objects, releasing them
// once the new ones exist. Startup needs an Init that ran to completion;
// a window found by a failed Init is not enough.
func (o *Overlay) Startup() (err error) {
	if o.window == 0 || o.state == Uninitialized || o.state == Disposed {
		return &SetupError{Kind: WindowNotAcquired, Op: "Startup"}
	}

	var created []gfx.Releaser
	defer func() {
		if err == nil {
			return
		}
		for i := len(created) - 1; i >= 0; i-- {
			created[i].Release()
		}
	}()

	var drawing gfx.DrawingFactory
	drawing, err = o.graphics.CreateDrawingFactory(gfx.FactorySingleThreaded)
	if err != nil {
		return &SetupError{Kind: DrawingFactoryFailed, Op: "D2D1CreateFactory", Err: err}
	}
	created = append(created, drawing)

	var text gfx.TextFactory
	text, err = o.graphics.CreateTextFactory(gfx.TextFactoryShared)
	if err != nil {
		return &SetupError{Kind: TextFactoryFailed, Op: "DWriteCreateFactory", Err: err}
	}
	created = append(created, text)

	var format gfx.TextFormat
	format, err = text.CreateTextFormat(gfx.TextFormatParams{
		FamilyName: o.font.Name,
		Weight:     gfx.FontWeightRegular,
		Style:      gfx.FontStyleNormal,
		Stretch:    gfx.FontStretchNormal,
		Size:       o.font.Size,
		Locale:     textLocale,
	})
	if err != nil {
		return &SetupError{Kind: TextFormatFailed, Op: "CreateTextFormat", Err: err}
	}
	created = append(created, format)

	var rc gfx.Rect
	rc, err = o.windowing.ClientRect(o.window)
	if err != nil {
		return &SetupError{Kind: ClientRectFailed, Op: "GetClientRect", Err: err}
	}

	var target gfx.RenderTarget
	target, err = drawing.CreateHwndRenderTarget(renderTargetProperties(), gfx.HwndRenderTargetProperties{
		Hwnd:           o.window,
		PixelSize:      pixelSize(rc),
		PresentOptions: gfx.PresentOptionsNone,
	})
	if err != nil {
		return &SetupError{Kind: RenderTargetFailed, Op: "CreateHwndRenderTarget", Err: err}
	}

	o.release()
	o.drawingFactory = drawing
	o.textFactory = text
	o.textFormat = format
	o.renderTarget = target
	o.state = Ready

	Logger().Debug("overlay graphics ready",
		"font", o.font.Name, "size", o.font.Size, "width", rc.Width(), "height", rc.Height())
	return nil
}

func renderTargetProperties() gfx.RenderTargetProperties {
	return gfx.RenderTargetProperties{
		Type: gfx.RenderTargetTypeDefault,
		PixelFormat: gfx.PixelFormat{
			Format:    gfx.DXGI_FORMAT_UNKNOWN,
			AlphaMode: gfx.AlphaModePremultiplied,
		},
		Usage:    gfx.RenderTargetUsageNone,
		MinLevel: gfx.FeatureLevelDefault,
	}
}

func pixelSize(rc gfx.Rect) gfx.SizeU {
	w, h := rc.Width(), rc.Height()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return gfx.SizeU{Width: uint32(w), Height: uint32(h)}
}

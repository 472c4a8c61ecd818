package overlay

import "overlayhijack/internal/gfx"

// Init finds the target window and turns it into a layered, click-through,
// topmost surface. The changes are made to a window owned by another
// process and stay in place after the Overlay is closed. When a step
// fails the earlier steps are not undone.
func (o *Overlay) Init() error {
	hwnd := o.windowing.FindWindow(o.target.Class, o.target.Title)
	if hwnd == 0 {
		return &SetupError{Kind: WindowNotFound, Op: "FindWindow"}
	}
	o.window = hwnd

	style, err := o.windowing.GetExStyle(hwnd)
	if err != nil {
		return &SetupError{Kind: StyleReadFailed, Op: "GetWindowLong", Err: err}
	}

	if err := o.windowing.SetExStyle(hwnd, style|gfx.WS_EX_LAYERED|gfx.WS_EX_TRANSPARENT); err != nil {
		return &SetupError{Kind: StyleWriteFailed, Op: "SetWindowLongPtr", Err: err}
	}

	if err := o.windowing.ExtendFrameIntoClientArea(hwnd, gfx.SheetOfGlass); err != nil {
		return &SetupError{Kind: FrameExtendFailed, Op: "DwmExtendFrameIntoClientArea", Err: err}
	}

	if err := o.windowing.SetLayeredWindowAttributes(hwnd, 0x000000, 0xFF, gfx.LWA_ALPHA); err != nil {
		return &SetupError{Kind: LayeredAttributesFailed, Op: "SetLayeredWindowAttributes", Err: err}
	}

	if err := o.windowing.SetWindowPos(hwnd, gfx.HWND_TOPMOST, 0, 0, 0, 0, gfx.SWP_NOMOVE|gfx.SWP_NOSIZE); err != nil {
		return &SetupError{Kind: ZOrderFailed, Op: "SetWindowPos", Err: err}
	}

	if err := o.windowing.ShowWindow(hwnd, gfx.SW_SHOW); err != nil {
		return &SetupError{Kind: ShowFailed, Op: "ShowWindow", Err: err}
	}

	if o.state == Uninitialized {
		o.state = WindowAcquired
	}
	Logger().Debug("overlay window acquired",
		"class", o.target.Class, "title", o.target.Title, "window", hwnd, "exstyle", style)
	return nil
}

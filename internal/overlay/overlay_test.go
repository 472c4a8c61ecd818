package overlay

import (
	"errors"
	"image"
	"testing"

	"overlayhijack/internal/gfx"
	"overlayhijack/internal/headless"
)

var testFont = Font{Name: "Consolas", Size: 18}

// newDesktopOverlay returns an overlay bound to a desktop that has the
// default target window at (100,50)-(900,650).
func newDesktopOverlay(t *testing.T, opts ...Option) (*Overlay, *headless.Desktop, gfx.HWND) {
	t.Helper()
	desk := headless.NewDesktop()
	hwnd := desk.AddWindow(DefaultTarget.Class, DefaultTarget.Title, image.Rect(100, 50, 900, 650))
	opts = append([]Option{WithPlatform(desk, desk)}, opts...)
	return New(testFont, opts...), desk, hwnd
}

func startedOverlay(t *testing.T, opts ...Option) (*Overlay, *headless.Desktop, *headless.RenderTarget) {
	t.Helper()
	o, desk, _ := newDesktopOverlay(t, opts...)
	if err := o.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := o.Startup(); err != nil {
		t.Fatalf("Startup() error = %v", err)
	}
	targets := desk.RenderTargets()
	return o, desk, targets[len(targets)-1]
}

func TestNewTouchesNothing(t *testing.T) {
	o, desk, hwnd := newDesktopOverlay(t)

	if got := o.State(); got != Uninitialized {
		t.Errorf("State() = %v, want %v", got, Uninitialized)
	}
	if o.Window() != 0 || o.Ready() {
		t.Errorf("Window() = %#x, Ready() = %v, want 0, false", o.Window(), o.Ready())
	}
	if got := desk.Created().Total(); got != 0 {
		t.Errorf("objects created = %d, want 0", got)
	}
	w, _ := desk.Window(hwnd)
	if w.ExStyle != 0 || w.Visible || w.Topmost || w.Margins != nil {
		t.Errorf("window modified before Init: %+v", w)
	}
	if o.Font() != testFont {
		t.Errorf("Font() = %+v, want %+v", o.Font(), testFont)
	}
	if o.Target() != DefaultTarget {
		t.Errorf("Target() = %+v, want %+v", o.Target(), DefaultTarget)
	}
}

func TestInitWindowNotFound(t *testing.T) {
	desk := headless.NewDesktop()
	desk.AddWindow("CEF-OSC-WIDGET", "Some Other Overlay", image.Rect(0, 0, 640, 480))
	o := New(Font{Name: "Consolas", Size: 18}, WithPlatform(desk, desk))

	err := o.Init()
	if !errors.Is(err, WindowNotFound) {
		t.Fatalf("Init() error = %v, want %v", err, WindowNotFound)
	}
	var setupErr *SetupError
	if !errors.As(err, &setupErr) || setupErr.Op != "FindWindow" {
		t.Errorf("Init() error = %#v, want *SetupError for FindWindow", err)
	}
	if o.Window() != 0 || o.Ready() || o.State() != Uninitialized {
		t.Errorf("after failed Init: window=%#x ready=%v state=%v", o.Window(), o.Ready(), o.State())
	}
	if got := desk.Created().Total(); got != 0 {
		t.Errorf("objects created = %d, want 0", got)
	}
}

func TestInitMarksWindow(t *testing.T) {
	o, desk, hwnd := newDesktopOverlay(t)
	w, _ := desk.Window(hwnd)
	w.ExStyle = 0x00000100 // WS_EX_WINDOWEDGE
	before := w.Bounds

	if err := o.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if o.Window() != hwnd {
		t.Errorf("Window() = %#x, want %#x", o.Window(), hwnd)
	}
	if o.State() != WindowAcquired {
		t.Errorf("State() = %v, want %v", o.State(), WindowAcquired)
	}
	wantStyle := uint32(0x00000100 | gfx.WS_EX_LAYERED | gfx.WS_EX_TRANSPARENT)
	if w.ExStyle != wantStyle {
		t.Errorf("ExStyle = %#x, want %#x", w.ExStyle, wantStyle)
	}
	if w.Margins == nil || *w.Margins != gfx.SheetOfGlass {
		t.Errorf("Margins = %v, want %v", w.Margins, gfx.SheetOfGlass)
	}
	if w.ColorKey != 0 || w.Alpha != 0xFF || w.LayeredFlags != gfx.LWA_ALPHA {
		t.Errorf("layered attributes = (%#x, %#x, %#x), want (0, 0xff, LWA_ALPHA)", w.ColorKey, w.Alpha, w.LayeredFlags)
	}
	if !w.Topmost || !w.Visible {
		t.Errorf("Topmost = %v, Visible = %v, want both true", w.Topmost, w.Visible)
	}
	if w.Bounds != before {
		t.Errorf("Bounds = %+v, want unchanged %+v", w.Bounds, before)
	}
	if got := desk.Created().Total(); got != 0 {
		t.Errorf("Init created %d graphics objects, want 0", got)
	}
}

func TestInitStepFailures(t *testing.T) {
	tests := []struct {
		op   headless.Op
		kind Kind
		// state of later steps that must not have run
		check func(w *headless.Window) bool
	}{
		{headless.OpGetExStyle, StyleReadFailed, func(w *headless.Window) bool { return w.ExStyle == 0 }},
		{headless.OpSetExStyle, StyleWriteFailed, func(w *headless.Window) bool { return w.Margins == nil }},
		{headless.OpExtendFrame, FrameExtendFailed, func(w *headless.Window) bool { return w.Alpha == 0 }},
		{headless.OpSetLayered, LayeredAttributesFailed, func(w *headless.Window) bool { return !w.Topmost }},
		{headless.OpSetWindowPos, ZOrderFailed, func(w *headless.Window) bool { return !w.Visible }},
		{headless.OpShowWindow, ShowFailed, func(w *headless.Window) bool { return !w.Visible }},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			o, desk, hwnd := newDesktopOverlay(t)
			hostErr := errors.New("access denied")
			desk.Fail(tt.op, hostErr)

			err := o.Init()
			if !errors.Is(err, tt.kind) {
				t.Fatalf("Init() error = %v, want kind %v", err, tt.kind)
			}
			if !errors.Is(err, hostErr) {
				t.Errorf("Init() error = %v does not wrap the host error", err)
			}
			w, _ := desk.Window(hwnd)
			if !tt.check(w) {
				t.Errorf("a step after %s ran: %+v", tt.op, w)
			}
			if o.State() != Uninitialized {
				t.Errorf("State() = %v, want %v", o.State(), Uninitialized)
			}
		})
	}
}

func TestInitFailureKeepsEarlierChanges(t *testing.T) {
	o, desk, hwnd := newDesktopOverlay(t)
	desk.Fail(headless.OpSetWindowPos, errors.New("denied"))

	if err := o.Init(); !errors.Is(err, ZOrderFailed) {
		t.Fatalf("Init() error = %v, want %v", err, ZOrderFailed)
	}
	w, _ := desk.Window(hwnd)
	if w.ExStyle&gfx.WS_EX_LAYERED == 0 || w.Margins == nil || w.Alpha != 0xFF {
		t.Errorf("earlier changes were rolled back: %+v", w)
	}
}

func TestStartupBeforeInit(t *testing.T) {
	tests := []struct {
		name   string
		failOp headless.Op
	}{
		{"no init", ""},
		{"style read failed", headless.OpGetExStyle},
		{"style write failed", headless.OpSetExStyle},
		{"frame extend failed", headless.OpExtendFrame},
		{"layered failed", headless.OpSetLayered},
		{"z-order failed", headless.OpSetWindowPos},
		{"show failed", headless.OpShowWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, desk, _ := newDesktopOverlay(t)
			if tt.failOp != "" {
				desk.Fail(tt.failOp, errors.New("access denied"))
				if err := o.Init(); err == nil {
					t.Fatal("Init() error = nil")
				}
				desk.Fail(tt.failOp, nil)
			}

			err := o.Startup()
			if !errors.Is(err, WindowNotAcquired) {
				t.Fatalf("Startup() error = %v, want %v", err, WindowNotAcquired)
			}
			if got := desk.Created().Total(); got != 0 {
				t.Errorf("objects created = %d, want 0", got)
			}
			if len(desk.RenderTargets()) != 0 {
				t.Error("render target created without a completed Init")
			}
			if o.Ready() || o.State() != Uninitialized {
				t.Errorf("Ready() = %v, State() = %v after refused Startup", o.Ready(), o.State())
			}
		})
	}
}

func TestStartupCreatesAllObjects(t *testing.T) {
	o, desk, rt := startedOverlay(t)

	want := headless.Live{DrawingFactories: 1, TextFactories: 1, TextFormats: 1, RenderTargets: 1}
	if got := desk.Live(); got != want {
		t.Errorf("Live() = %+v, want %+v", got, want)
	}
	if o.State() != Ready || !o.Ready() {
		t.Errorf("State() = %v, Ready() = %v", o.State(), o.Ready())
	}

	size, ok := o.RenderTargetSize()
	if !ok || size != (gfx.SizeU{Width: 800, Height: 600}) {
		t.Errorf("RenderTargetSize() = %v, %v, want 800x600", size, ok)
	}
	if rt.Hwnd.Hwnd != o.Window() || rt.Hwnd.PresentOptions != gfx.PresentOptionsNone {
		t.Errorf("hwnd properties = %+v", rt.Hwnd)
	}
	wantFormat := gfx.PixelFormat{Format: gfx.DXGI_FORMAT_UNKNOWN, AlphaMode: gfx.AlphaModePremultiplied}
	if rt.Properties.PixelFormat != wantFormat {
		t.Errorf("pixel format = %+v, want %+v", rt.Properties.PixelFormat, wantFormat)
	}
}

func TestStartupStepFailures(t *testing.T) {
	tests := []struct {
		op   headless.Op
		kind Kind
	}{
		{headless.OpDrawingFactory, DrawingFactoryFailed},
		{headless.OpTextFactory, TextFactoryFailed},
		{headless.OpTextFormat, TextFormatFailed},
		{headless.OpClientRect, ClientRectFailed},
		{headless.OpRenderTarget, RenderTargetFailed},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			o, desk, _ := newDesktopOverlay(t)
			if err := o.Init(); err != nil {
				t.Fatalf("Init() error = %v", err)
			}
			desk.Fail(tt.op, errors.New("rejected"))

			err := o.Startup()
			if !errors.Is(err, tt.kind) {
				t.Fatalf("Startup() error = %v, want %v", err, tt.kind)
			}
			if o.Ready() {
				t.Error("Ready() = true after failed Startup")
			}
			if o.State() != WindowAcquired {
				t.Errorf("State() = %v, want %v", o.State(), WindowAcquired)
			}
			if got := desk.Live().Total(); got != 0 {
				t.Errorf("%d objects leaked: %+v", got, desk.Live())
			}
			if got := desk.Created().RenderTargets; got != 0 {
				t.Errorf("render targets created = %d, want 0", got)
			}
		})
	}
}

func TestStartupTwiceReplacesObjects(t *testing.T) {
	o, desk, first := startedOverlay(t)

	if err := o.Startup(); err != nil {
		t.Fatalf("second Startup() error = %v", err)
	}
	if !first.Released() {
		t.Error("first render target was not released")
	}
	want := headless.Live{DrawingFactories: 1, TextFactories: 1, TextFormats: 1, RenderTargets: 1}
	if got := desk.Live(); got != want {
		t.Errorf("Live() = %+v, want %+v", got, want)
	}
	if got := desk.Created().RenderTargets; got != 2 {
		t.Errorf("render targets created = %d, want 2", got)
	}
}

func TestFailedRestartupKeepsPreviousObjects(t *testing.T) {
	o, desk, first := startedOverlay(t)
	desk.Fail(headless.OpRenderTarget, errors.New("device removed"))

	if err := o.Startup(); !errors.Is(err, RenderTargetFailed) {
		t.Fatalf("Startup() error = %v, want %v", err, RenderTargetFailed)
	}
	if first.Released() || !o.Ready() {
		t.Error("previous render target was dropped by a failed Startup")
	}
	want := headless.Live{DrawingFactories: 1, TextFactories: 1, TextFormats: 1, RenderTargets: 1}
	if got := desk.Live(); got != want {
		t.Errorf("Live() = %+v, want %+v", got, want)
	}
}

func TestCloseFlushesOneEmptyFrame(t *testing.T) {
	o, desk, rt := startedOverlay(t)
	o.BeginScene()
	o.ClearScene()
	o.DrawRect(Point{10, 80}, Size{100, 100}, 2, RGBA(255, 51, 0, 255))
	if err := o.EndScene(); err != nil {
		t.Fatalf("EndScene() error = %v", err)
	}
	before := len(rt.Calls())

	if err := o.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	tail := rt.Calls()[before:]
	var ops []string
	for _, c := range tail {
		ops = append(ops, c.Op)
	}
	if len(ops) != 3 || ops[0] != "BeginDraw" || ops[1] != "Clear" || ops[2] != "EndDraw" {
		t.Errorf("Close issued %v, want [BeginDraw Clear EndDraw]", ops)
	}
	if rt.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", rt.Frames())
	}
	if got := desk.Live().Total(); got != 0 {
		t.Errorf("%d objects alive after Close: %+v", got, desk.Live())
	}
	if o.State() != Disposed || o.Ready() {
		t.Errorf("State() = %v, Ready() = %v", o.State(), o.Ready())
	}

	if err := o.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if len(rt.Calls()) != before+3 {
		t.Error("second Close issued more calls")
	}
}

func TestCloseWithoutStartup(t *testing.T) {
	desk := headless.NewDesktop()
	o := New(testFont, WithPlatform(desk, desk))
	_ = o.Init()

	if err := o.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if o.State() != Disposed {
		t.Errorf("State() = %v, want %v", o.State(), Disposed)
	}
}

func TestCloseSwallowsPresentFailure(t *testing.T) {
	o, desk, rt := startedOverlay(t)
	desk.Fail(headless.OpEndDraw, errors.New("device lost"))

	if err := o.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if !rt.Released() {
		t.Error("render target not released")
	}
}

func TestSetupErrorMessage(t *testing.T) {
	err := &SetupError{Kind: StyleWriteFailed, Op: "SetWindowLongPtr", Err: errors.New("access denied")}
	want := "overlay: SetWindowLongPtr: style write failed: access denied"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if Kind(99).String() != "kind(99)" {
		t.Errorf("unknown kind = %q", Kind(99).String())
	}
}

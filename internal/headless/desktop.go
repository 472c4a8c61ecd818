// Package headless is an in-memory desktop that implements the gfx
// contracts with the gogpu/gg software rasterizer. Windows are plain
// records, render targets are gg contexts, and every host call can be
// made to fail, which makes it the test double for the overlay and the
// backend for dry runs on machines without the target window.
package headless

import (
	"fmt"
	"image"

	"overlayhijack/internal/gfx"
)

// Op names a host call that can be made to fail with Fail.
type Op string

const (
	OpGetExStyle     Op = "GetExStyle"
	OpSetExStyle     Op = "SetExStyle"
	OpExtendFrame    Op = "ExtendFrameIntoClientArea"
	OpSetLayered     Op = "SetLayeredWindowAttributes"
	OpSetWindowPos   Op = "SetWindowPos"
	OpShowWindow     Op = "ShowWindow"
	OpClientRect     Op = "ClientRect"
	OpWindowRect     Op = "WindowRect"
	OpDrawingFactory Op = "CreateDrawingFactory"
	OpTextFactory    Op = "CreateTextFactory"
	OpTextFormat     Op = "CreateTextFormat"
	OpRenderTarget   Op = "CreateHwndRenderTarget"
	OpBrush          Op = "CreateSolidColorBrush"
	OpTextLayout     Op = "CreateTextLayout"
	OpEndDraw        Op = "EndDraw"
	OpResize         Op = "Resize"
)

// Window is the state of one desktop window.
type Window struct {
	Handle gfx.HWND
	Class  string
	Title  string

	// Bounds is the window rectangle in screen coordinates. The client
	// area covers the whole window.
	Bounds gfx.Rect

	ExStyle       uint32
	Margins       *gfx.Margins
	ColorKey      gfx.ColorRef
	Alpha         uint8
	LayeredFlags  uint32
	Topmost       bool
	Visible       bool
	PositionCalls int
}

// Live counts host objects that have been created and not yet released.
type Live struct {
	DrawingFactories int
	TextFactories    int
	TextFormats      int
	TextLayouts      int
	RenderTargets    int
	Brushes          int
}

// Total returns the number of live objects of every kind.
func (l Live) Total() int {
	return l.DrawingFactories + l.TextFactories + l.TextFormats + l.TextLayouts + l.RenderTargets + l.Brushes
}

// PresentFunc receives every frame a render target presents.
type PresentFunc func(hwnd gfx.HWND, frame int, img image.Image)

// Desktop implements gfx.Windowing and gfx.Graphics. It is not safe for
// concurrent use, matching the single-threaded host objects it stands in for.
type Desktop struct {
	windows map[gfx.HWND]*Window
	order   []gfx.HWND
	next    gfx.HWND

	faults  map[Op]error
	fonts   map[string][]byte
	live    Live
	created Live
	present PresentFunc
	targets []*RenderTarget
}

// NewDesktop returns an empty desktop.
func NewDesktop() *Desktop {
	return &Desktop{
		windows: make(map[gfx.HWND]*Window),
		next:    0x10000,
		faults:  make(map[Op]error),
		fonts:   make(map[string][]byte),
	}
}

// AddWindow creates a hidden window and returns its handle.
func (d *Desktop) AddWindow(class, title string, bounds image.Rectangle) gfx.HWND {
	d.next += 0x10
	w := &Window{
		Handle: d.next,
		Class:  class,
		Title:  title,
		Bounds: gfx.Rect{
			Left:   int32(bounds.Min.X),
			Top:    int32(bounds.Min.Y),
			Right:  int32(bounds.Max.X),
			Bottom: int32(bounds.Max.Y),
		},
	}
	d.windows[w.Handle] = w
	d.order = append(d.order, w.Handle)
	return w.Handle
}

// MoveWindow changes a window's bounds, as the owning process might.
func (d *Desktop) MoveWindow(hwnd gfx.HWND, bounds image.Rectangle) {
	if w, ok := d.windows[hwnd]; ok {
		w.Bounds = gfx.Rect{
			Left:   int32(bounds.Min.X),
			Top:    int32(bounds.Min.Y),
			Right:  int32(bounds.Max.X),
			Bottom: int32(bounds.Max.Y),
		}
	}
}

// Window returns the record for hwnd.
func (d *Desktop) Window(hwnd gfx.HWND) (*Window, bool) {
	w, ok := d.windows[hwnd]
	return w, ok
}

// Fail makes every later call of op return err. A nil err clears the fault.
func (d *Desktop) Fail(op Op, err error) {
	if err == nil {
		delete(d.faults, op)
		return
	}
	d.faults[op] = err
}

// RegisterFont makes family resolve to the given TrueType/OpenType data.
// Unregistered families fall back to Go Regular.
func (d *Desktop) RegisterFont(family string, data []byte) {
	d.fonts[family] = data
}

// OnPresent installs a callback for presented frames.
func (d *Desktop) OnPresent(fn PresentFunc) {
	d.present = fn
}

// Live returns the objects currently alive.
func (d *Desktop) Live() Live { return d.live }

// Created returns how many objects of each kind were ever created.
func (d *Desktop) Created() Live { return d.created }

// RenderTargets returns every render target created so far, oldest first.
func (d *Desktop) RenderTargets() []*RenderTarget {
	return append([]*RenderTarget(nil), d.targets...)
}

func (d *Desktop) fault(op Op) error {
	return d.faults[op]
}

func (d *Desktop) lookup(op Op, hwnd gfx.HWND) (*Window, error) {
	if err := d.fault(op); err != nil {
		return nil, err
	}
	w, ok := d.windows[hwnd]
	if !ok {
		return nil, fmt.Errorf("%s: invalid window handle %#x", op, uintptr(hwnd))
	}
	return w, nil
}

// FindWindow returns the first window with the given class and title.
func (d *Desktop) FindWindow(className, windowName string) gfx.HWND {
	for _, h := range d.order {
		w := d.windows[h]
		if w.Class == className && w.Title == windowName {
			return h
		}
	}
	return 0
}

func (d *Desktop) GetExStyle(hwnd gfx.HWND) (uint32, error) {
	w, err := d.lookup(OpGetExStyle, hwnd)
	if err != nil {
		return 0, err
	}
	return w.ExStyle, nil
}

func (d *Desktop) SetExStyle(hwnd gfx.HWND, style uint32) error {
	w, err := d.lookup(OpSetExStyle, hwnd)
	if err != nil {
		return err
	}
	w.ExStyle = style
	return nil
}

func (d *Desktop) ExtendFrameIntoClientArea(hwnd gfx.HWND, m gfx.Margins) error {
	w, err := d.lookup(OpExtendFrame, hwnd)
	if err != nil {
		return err
	}
	w.Margins = &m
	return nil
}

func (d *Desktop) SetLayeredWindowAttributes(hwnd gfx.HWND, key gfx.ColorRef, alpha uint8, flags uint32) error {
	w, err := d.lookup(OpSetLayered, hwnd)
	if err != nil {
		return err
	}
	if w.ExStyle&gfx.WS_EX_LAYERED == 0 {
		return fmt.Errorf("%s: window is not layered", OpSetLayered)
	}
	w.ColorKey = key
	w.Alpha = alpha
	w.LayeredFlags = flags
	return nil
}

func (d *Desktop) SetWindowPos(hwnd, insertAfter gfx.HWND, x, y, cx, cy int32, flags uint32) error {
	w, err := d.lookup(OpSetWindowPos, hwnd)
	if err != nil {
		return err
	}
	w.PositionCalls++
	if insertAfter == gfx.HWND_TOPMOST {
		w.Topmost = true
	}
	if flags&gfx.SWP_NOMOVE == 0 {
		width, height := w.Bounds.Width(), w.Bounds.Height()
		w.Bounds.Left, w.Bounds.Top = x, y
		w.Bounds.Right, w.Bounds.Bottom = x+width, y+height
	}
	if flags&gfx.SWP_NOSIZE == 0 {
		w.Bounds.Right = w.Bounds.Left + cx
		w.Bounds.Bottom = w.Bounds.Top + cy
	}
	return nil
}

func (d *Desktop) ShowWindow(hwnd gfx.HWND, cmd int32) error {
	w, err := d.lookup(OpShowWindow, hwnd)
	if err != nil {
		return err
	}
	w.Visible = cmd != 0
	return nil
}

func (d *Desktop) ClientRect(hwnd gfx.HWND) (gfx.Rect, error) {
	w, err := d.lookup(OpClientRect, hwnd)
	if err != nil {
		return gfx.Rect{}, err
	}
	return gfx.Rect{Right: w.Bounds.Width(), Bottom: w.Bounds.Height()}, nil
}

func (d *Desktop) WindowRect(hwnd gfx.HWND) (gfx.Rect, error) {
	w, err := d.lookup(OpWindowRect, hwnd)
	if err != nil {
		return gfx.Rect{}, err
	}
	return w.Bounds, nil
}

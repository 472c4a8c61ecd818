package tray

import (
	"sync/atomic"

	"github.com/getlantern/systray"
)

// Tray is the notification-area icon with Pause/Resume and Quit items.
type Tray struct {
	onPause    func(paused bool)
	onQuit     func()
	hotkeyText string
	statusText string
	paused     atomic.Bool
}

// NewTray returns a Tray with no callbacks.
func NewTray() *Tray {
	return &Tray{
		hotkeyText: "Ctrl+Alt+Q",
	}
}

// SetHotkeyText sets the quit shortcut shown in the menu.
func (t *Tray) SetHotkeyText(text string) {
	t.hotkeyText = text
}

// SetStatusText sets the tooltip's second line, such as the target window.
func (t *Tray) SetStatusText(text string) {
	t.statusText = text
}

// SetOnPause sets the callback for the Pause/Resume item. It receives the
// new paused state.
func (t *Tray) SetOnPause(fn func(paused bool)) {
	t.onPause = fn
}

// SetOnQuit sets the callback for the Quit item.
func (t *Tray) SetOnQuit(fn func()) {
	t.onQuit = fn
}

// Paused reports whether drawing is paused.
func (t *Tray) Paused() bool {
	return t.paused.Load()
}

// Run shows the icon and blocks until Quit is chosen or Stop is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Stop removes the icon and makes Run return.
func (t *Tray) Stop() {
	systray.Quit()
}

// toggle flips the paused state and returns the new one.
func (t *Tray) toggle() bool {
	for {
		old := t.paused.Load()
		if t.paused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (t *Tray) tooltip() string {
	tip := "Overlay Hijack"
	if t.statusText != "" {
		tip += " - " + t.statusText
	}
	if t.Paused() {
		tip += " (paused)"
	}
	return tip
}

func (t *Tray) onReady() {
	systray.SetIcon(getIcon(false))
	systray.SetTitle("Overlay Hijack")
	systray.SetTooltip(t.tooltip())

	mPause := systray.AddMenuItem("Pause", "Stop drawing and leave the overlay blank")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit ("+t.hotkeyText+")", "Release the overlay and exit")

	go func() {
		for {
			select {
			case <-mPause.ClickedCh:
				paused := t.toggle()
				if paused {
					mPause.SetTitle("Resume")
				} else {
					mPause.SetTitle("Pause")
				}
				systray.SetIcon(getIcon(paused))
				systray.SetTooltip(t.tooltip())
				if t.onPause != nil {
					t.onPause(paused)
				}
			case <-mQuit.ClickedCh:
				if t.onQuit != nil {
					t.onQuit()
				}
				systray.Quit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

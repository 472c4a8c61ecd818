package hotkey

import "golang.design/x/hotkey"

// X11 maps Alt to Mod1 and the Super key to Mod4.
const (
	modAlt = hotkey.Mod1
	modWin = hotkey.Mod4
)

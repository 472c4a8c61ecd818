package hotkey

import "golang.design/x/hotkey"

const (
	modAlt = hotkey.ModOption
	modWin = hotkey.ModCmd
)

package hotkey

import "golang.design/x/hotkey"

const (
	modAlt = hotkey.ModAlt
	modWin = hotkey.ModWin
)

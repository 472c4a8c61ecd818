package hotkey

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.design/x/hotkey"
)

// Manager owns one registered global hotkey.
type Manager struct {
	hk       *hotkey.Hotkey
	callback func()
	logger   *slog.Logger
}

// NewManager returns a Manager that logs to logger.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{logger: logger}
}

func parseModifiers(mods []string) ([]hotkey.Modifier, error) {
	var result []hotkey.Modifier
	for _, mod := range mods {
		switch strings.ToLower(strings.TrimSpace(mod)) {
		case "ctrl", "control":
			result = append(result, hotkey.ModCtrl)
		case "alt", "option":
			result = append(result, modAlt)
		case "shift":
			result = append(result, hotkey.ModShift)
		case "win", "cmd", "command", "super":
			result = append(result, modWin)
		default:
			return nil, fmt.Errorf("unknown modifier %q", mod)
		}
	}
	return result, nil
}

var namedKeys = map[string]hotkey.Key{
	"F1":     hotkey.KeyF1,
	"F2":     hotkey.KeyF2,
	"F3":     hotkey.KeyF3,
	"F4":     hotkey.KeyF4,
	"F5":     hotkey.KeyF5,
	"F6":     hotkey.KeyF6,
	"F7":     hotkey.KeyF7,
	"F8":     hotkey.KeyF8,
	"F9":     hotkey.KeyF9,
	"F10":    hotkey.KeyF10,
	"F11":    hotkey.KeyF11,
	"F12":    hotkey.KeyF12,
	"SPACE":  hotkey.KeySpace,
	"RETURN": hotkey.KeyReturn,
	"ENTER":  hotkey.KeyReturn,
	"ESCAPE": hotkey.KeyEscape,
	"ESC":    hotkey.KeyEscape,
	"TAB":    hotkey.KeyTab,
	"DELETE": hotkey.KeyDelete,
	"DEL":    hotkey.KeyDelete,
	"UP":     hotkey.KeyUp,
	"DOWN":   hotkey.KeyDown,
	"LEFT":   hotkey.KeyLeft,
	"RIGHT":  hotkey.KeyRight,
}

func parseKey(key string) (hotkey.Key, error) {
	upper := strings.ToUpper(strings.TrimSpace(key))

	if len(upper) == 1 {
		switch c := upper[0]; {
		case c >= 'A' && c <= 'Z':
			return letterKeys[c-'A'], nil
		case c >= '0' && c <= '9':
			return digitKeys[c-'0'], nil
		}
	}

	if k, ok := namedKeys[upper]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("unknown key %q", key)
}

var letterKeys = [26]hotkey.Key{
	hotkey.KeyA, hotkey.KeyB, hotkey.KeyC, hotkey.KeyD, hotkey.KeyE, hotkey.KeyF, hotkey.KeyG,
	hotkey.KeyH, hotkey.KeyI, hotkey.KeyJ, hotkey.KeyK, hotkey.KeyL, hotkey.KeyM, hotkey.KeyN,
	hotkey.KeyO, hotkey.KeyP, hotkey.KeyQ, hotkey.KeyR, hotkey.KeyS, hotkey.KeyT, hotkey.KeyU,
	hotkey.KeyV, hotkey.KeyW, hotkey.KeyX, hotkey.KeyY, hotkey.KeyZ,
}

var digitKeys = [10]hotkey.Key{
	hotkey.Key0, hotkey.Key1, hotkey.Key2, hotkey.Key3, hotkey.Key4,
	hotkey.Key5, hotkey.Key6, hotkey.Key7, hotkey.Key8, hotkey.Key9,
}

// Parse splits "ctrl+alt+q" into its modifiers and key. At least one
// modifier is required.
func Parse(s string) (modifiers []string, key string, err error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	if len(parts) < 2 {
		return nil, "", fmt.Errorf("hotkey %q: need at least one modifier and a key", s)
	}

	for _, part := range parts[:len(parts)-1] {
		part = strings.TrimSpace(part)
		switch part {
		case "ctrl", "control":
			modifiers = append(modifiers, "ctrl")
		case "alt", "option":
			modifiers = append(modifiers, "alt")
		case "shift":
			modifiers = append(modifiers, "shift")
		case "win", "cmd", "command", "super":
			modifiers = append(modifiers, "win")
		default:
			return nil, "", fmt.Errorf("hotkey %q: unknown modifier %q", s, part)
		}
	}

	key = strings.TrimSpace(parts[len(parts)-1])
	if _, err := parseKey(key); err != nil {
		return nil, "", fmt.Errorf("hotkey %q: %w", s, err)
	}
	return modifiers, key, nil
}

// Register registers the hotkey and remembers callback for Listen.
func (m *Manager) Register(modifiers []string, key string, callback func()) error {
	mods, err := parseModifiers(modifiers)
	if err != nil {
		return err
	}
	k, err := parseKey(key)
	if err != nil {
		return err
	}

	m.logger.Debug("registering hotkey", "modifiers", modifiers, "key", key, "code", fmt.Sprintf("0x%X", k))

	m.hk = hotkey.New(mods, k)
	m.callback = callback

	if err := m.hk.Register(); err != nil {
		m.hk = nil
		return fmt.Errorf("register hotkey %s: %w", strings.Join(append(modifiers, key), "+"), err)
	}

	return nil
}

// Unregister releases the hotkey. It is safe to call more than once.
func (m *Manager) Unregister() error {
	if m.hk == nil {
		return nil
	}
	err := m.hk.Unregister()
	m.hk = nil
	return err
}

// Listen calls the callback on every key press until the hotkey is
// unregistered.
func (m *Manager) Listen() {
	hk := m.hk
	if hk == nil {
		return
	}
	for range hk.Keydown() {
		if m.callback != nil {
			m.callback()
		}
	}
}

// ListenAsync runs Listen on its own goroutine.
func (m *Manager) ListenAsync() {
	go m.Listen()
}

package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Font is the family and size the overlay draws text with.
type Font struct {
	Name string  `json:"name"`
	Size float32 `json:"size"`
}

// Target identifies the window to take over.
type Target struct {
	Class string `json:"class"`
	Title string `json:"title"`
}

// Frame controls the demo frame loop.
type Frame struct {
	FPS      int `json:"fps"`      // frames per second, 1-240
	Duration int `json:"duration"` // seconds to run, 0 runs until quit
}

// Hotkey is the global quit shortcut.
type Hotkey struct {
	Modifiers []string `json:"modifiers"` // ctrl, alt, shift, win
	Key       string   `json:"key"`       // a-z, 0-9, f1-f12, esc ...
}

// Behavior holds runtime switches.
type Behavior struct {
	ShowNotification bool `json:"showNotification"` // toast on setup failure
	AutoResize       bool `json:"autoResize"`       // follow the window's client size
	Tray             bool `json:"tray"`             // show the tray icon
}

// Snapshot controls saving of presented frames in headless mode.
type Snapshot struct {
	Enabled   bool   `json:"enabled"`
	Directory string `json:"directory"`
	Format    string `json:"format"`  // png, jpg
	Quality   int    `json:"quality"` // jpg quality 1-100
	Every     int    `json:"every"`   // save every Nth frame
	KeepHours int    `json:"keepHours"`
}

// Config is the whole configuration file.
type Config struct {
	Font     Font     `json:"font"`
	Target   Target   `json:"target"`
	Frame    Frame    `json:"frame"`
	Hotkey   Hotkey   `json:"hotkey"`
	Behavior Behavior `json:"behavior"`
	Snapshot Snapshot `json:"snapshot"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	exePath, _ := os.Executable()
	exeDir := filepath.Dir(exePath)

	return &Config{
		Font: Font{
			Name: "Consolas",
			Size: 18,
		},
		Target: Target{
			Class: "CEF-OSC-WIDGET",
			Title: "NVIDIA GeForce Overlay",
		},
		Frame: Frame{
			FPS:      60,
			Duration: 10,
		},
		Hotkey: Hotkey{
			Modifiers: []string{"ctrl", "alt"},
			Key:       "q",
		},
		Behavior: Behavior{
			ShowNotification: true,
			AutoResize:       false,
			Tray:             true,
		},
		Snapshot: Snapshot{
			Enabled:   false,
			Directory: filepath.Join(exeDir, "frames"),
			Format:    "png",
			Quality:   90,
			Every:     60,
			KeepHours: 0,
		},
	}
}

// Path returns the configuration file location.
func Path() string {
	var configDir string

	if runtime.GOOS == "windows" {
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			homeDir, _ := os.UserHomeDir()
			configDir = filepath.Join(homeDir, "AppData", "Roaming")
		}
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "overlayhijack", "config.json")
}

// Load reads the configuration from Path.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the configuration at path. A missing file yields the
// defaults, which are written back to path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		_ = cfg.SaveTo(path)
		return cfg, nil
	}
	if err != nil {
		return DefaultConfig(), err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), err
	}

	cfg.Validate()

	return cfg, nil
}

// Validate replaces out-of-range values with their defaults.
func (c *Config) Validate() {
	defaults := DefaultConfig()

	if strings.TrimSpace(c.Font.Name) == "" {
		c.Font.Name = defaults.Font.Name
	}
	if c.Font.Size <= 0 {
		c.Font.Size = defaults.Font.Size
	}

	if c.Target.Class == "" && c.Target.Title == "" {
		c.Target = defaults.Target
	}

	if c.Frame.FPS < 1 || c.Frame.FPS > 240 {
		c.Frame.FPS = defaults.Frame.FPS
	}
	if c.Frame.Duration < 0 {
		c.Frame.Duration = defaults.Frame.Duration
	}

	if c.Snapshot.Quality < 1 || c.Snapshot.Quality > 100 {
		c.Snapshot.Quality = defaults.Snapshot.Quality
	}

	format := strings.ToLower(c.Snapshot.Format)
	switch format {
	case "png", "jpg":
		c.Snapshot.Format = format
	case "jpeg":
		c.Snapshot.Format = "jpg"
	default:
		c.Snapshot.Format = defaults.Snapshot.Format
	}

	// no path traversal out of the configured directory
	if c.Snapshot.Directory == "" || strings.Contains(c.Snapshot.Directory, "..") {
		c.Snapshot.Directory = defaults.Snapshot.Directory
	}
	if c.Snapshot.Every < 1 {
		c.Snapshot.Every = defaults.Snapshot.Every
	}
	if c.Snapshot.KeepHours < 0 {
		c.Snapshot.KeepHours = 0
	}

	if c.Hotkey.Key == "" {
		c.Hotkey = defaults.Hotkey
	}

	validMods := map[string]bool{"ctrl": true, "alt": true, "shift": true, "win": true, "control": true, "option": true, "super": true, "cmd": true, "command": true}
	validatedMods := []string{}
	for _, mod := range c.Hotkey.Modifiers {
		if validMods[strings.ToLower(mod)] {
			validatedMods = append(validatedMods, strings.ToLower(mod))
		}
	}
	if len(validatedMods) == 0 {
		c.Hotkey.Modifiers = defaults.Hotkey.Modifiers
	} else {
		c.Hotkey.Modifiers = validatedMods
	}
}

// Save writes the configuration to Path.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes the configuration to path, creating its directory.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// HotkeyString renders the quit hotkey as "ctrl+alt+q".
func (c *Config) HotkeyString() string {
	parts := append([]string(nil), c.Hotkey.Modifiers...)
	return strings.Join(append(parts, c.Hotkey.Key), "+")
}

// EnsureSnapshotDir expands a leading ~ in the snapshot directory and
// creates it.
func (c *Config) EnsureSnapshotDir() error {
	dir := c.Snapshot.Directory
	if len(dir) > 0 && dir[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		dir = filepath.Join(homeDir, dir[1:])
	}
	c.Snapshot.Directory = dir

	return os.MkdirAll(dir, 0755)
}

package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"overlayhijack/internal/config"
	"overlayhijack/internal/gfx"
	"overlayhijack/internal/headless"
	"overlayhijack/internal/overlay"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func headlessSession(t *testing.T, cfg *config.Config) (*session, *headless.Desktop) {
	t.Helper()
	opts, desk := overlayOptions(cfg, true, discardLogger())
	if desk == nil {
		t.Fatal("overlayOptions() returned no desktop in headless mode")
	}
	ov := overlay.New(overlay.Font{Name: cfg.Font.Name, Size: cfg.Font.Size}, opts...)
	return newSession(ov, discardLogger(), cfg.Frame.FPS), desk
}

func testConfig(t *testing.T) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Snapshot.Directory = t.TempDir()
	return cfg
}

func TestSessionDrawsDemoFrame(t *testing.T) {
	s, desk := headlessSession(t, testConfig(t))
	if err := s.start(); err != nil {
		t.Fatalf("start() error = %v", err)
	}
	if err := s.frame(); err != nil {
		t.Fatalf("frame() error = %v", err)
	}

	rt := desk.RenderTargets()[0]
	rects := rt.CallsOf("DrawRectangle")
	if len(rects) != 1 || rects[0].Rect != (gfx.RectF{Left: 10, Top: 80, Right: 110, Bottom: 180}) || rects[0].StrokeWidth != 2 {
		t.Errorf("DrawRectangle calls = %+v", rects)
	}
	texts := rt.CallsOf("DrawTextLayout")
	if len(texts) != 2 || texts[0].Text != "overlay hijack" || !strings.HasPrefix(texts[1].Text, "frame 0") {
		t.Errorf("DrawTextLayout calls = %+v", texts)
	}
	if rt.Frames() != 1 || s.frames != 1 {
		t.Errorf("frames = %d/%d, want 1", rt.Frames(), s.frames)
	}
	if live := desk.Live(); live.Brushes != 0 || live.TextLayouts != 0 {
		t.Errorf("per-frame objects leaked: %+v", live)
	}

	s.close()
	if got := desk.Live().Total(); got != 0 {
		t.Errorf("live after close = %d", got)
	}
}

func TestSessionPausedPresentsEmptyFrame(t *testing.T) {
	s, desk := headlessSession(t, testConfig(t))
	s.paused = func() bool { return true }
	if err := s.start(); err != nil {
		t.Fatal(err)
	}
	if err := s.frame(); err != nil {
		t.Fatal(err)
	}

	var ops []string
	for _, c := range desk.RenderTargets()[0].Calls() {
		ops = append(ops, c.Op)
	}
	if strings.Join(ops, ",") != "BeginDraw,Clear,EndDraw" {
		t.Errorf("paused frame issued %v", ops)
	}
}

func TestSessionRecreatesAfterPresentFailure(t *testing.T) {
	s, desk := headlessSession(t, testConfig(t))
	if err := s.start(); err != nil {
		t.Fatal(err)
	}

	desk.Fail(headless.OpEndDraw, errors.New("device removed"))
	if err := s.frame(); err != nil {
		t.Fatalf("frame() error = %v", err)
	}
	desk.Fail(headless.OpEndDraw, nil)

	targets := desk.RenderTargets()
	if len(targets) != 2 || !targets[0].Released() || targets[1].Released() {
		t.Fatalf("render targets after recovery: %d", len(targets))
	}
	if s.restarts != 1 {
		t.Errorf("restarts = %d, want 1", s.restarts)
	}
	if err := s.frame(); err != nil {
		t.Errorf("frame() after recovery error = %v", err)
	}
	if targets[1].Frames() != 1 {
		t.Errorf("new target frames = %d, want 1", targets[1].Frames())
	}
}

func TestSessionGivesUpWhenRecreateFails(t *testing.T) {
	s, desk := headlessSession(t, testConfig(t))
	if err := s.start(); err != nil {
		t.Fatal(err)
	}
	lost := errors.New("device removed")
	desk.Fail(headless.OpEndDraw, lost)
	desk.Fail(headless.OpRenderTarget, errors.New("no adapter"))

	err := s.frame()
	if !errors.Is(err, lost) || !errors.Is(err, overlay.RenderTargetFailed) {
		t.Errorf("frame() error = %v, want present and recreate errors", err)
	}
}

func TestSessionStartWindowNotFound(t *testing.T) {
	cfg := testConfig(t)
	desk := headless.NewDesktop()
	ov := overlay.New(overlay.Font{Name: "Consolas", Size: 18}, overlay.WithPlatform(desk, desk))
	s := newSession(ov, discardLogger(), cfg.Frame.FPS)

	err := s.start()
	if !errors.Is(err, overlay.WindowNotFound) {
		t.Fatalf("start() error = %v, want %v", err, overlay.WindowNotFound)
	}
	if !strings.Contains(setupHint(err), "not found") {
		t.Errorf("setupHint() = %q", setupHint(err))
	}
	s.close()
}

func TestSessionRunStopsOnCancel(t *testing.T) {
	s, desk := headlessSession(t, testConfig(t))
	if err := s.start(); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.run(ctx); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if desk.RenderTargets()[0].Frames() < 1 {
		t.Error("run() presented no frame")
	}
}

func TestSessionRunHonorsDeadline(t *testing.T) {
	cfg := testConfig(t)
	cfg.Frame.FPS = 200
	s, _ := headlessSession(t, cfg)
	if err := s.start(); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := s.run(ctx); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if s.frames < 2 {
		t.Errorf("frames = %d, want several", s.frames)
	}
}

func TestSnapshots(t *testing.T) {
	cfg := testConfig(t)
	cfg.Snapshot.Enabled = true
	cfg.Snapshot.Every = 2
	s, _ := headlessSession(t, cfg)
	if err := s.start(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if err := s.frame(); err != nil {
			t.Fatal(err)
		}
	}

	files, err := filepath.Glob(filepath.Join(cfg.Snapshot.Directory, "frame_*.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Errorf("snapshots = %v, want frames 2 and 4", files)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	opts := options{
		configPath:  path,
		font:        "Arial",
		size:        24,
		duration:    3 * time.Second,
		durationSet: true,
		hotkey:      "ctrl+shift+x",
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Font.Name != "Arial" || cfg.Font.Size != 24 || cfg.Frame.Duration != 3 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.HotkeyString() != "ctrl+shift+x" {
		t.Errorf("hotkey = %q", cfg.HotkeyString())
	}

	saved, err := config.LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if saved.HotkeyString() != "ctrl+shift+x" || saved.Font.Name != "Consolas" {
		t.Errorf("saved config = %+v, want only the hotkey persisted", saved)
	}
}

func TestLoadConfigBadHotkey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := loadConfig(options{configPath: path, hotkey: "nonsense"})
	if err == nil {
		t.Error("loadConfig() accepted an invalid hotkey")
	}
	if cfg.HotkeyString() != "ctrl+alt+q" {
		t.Errorf("hotkey = %q, want the default", cfg.HotkeyString())
	}
}

func TestOpenDebugLog(t *testing.T) {
	f, err := openDebugLog()
	if err != nil {
		t.Fatalf("openDebugLog() error = %v", err)
	}
	name := f.Name()
	f.Close()
	defer os.Remove(name)

	if !strings.HasPrefix(filepath.Base(name), "overlayhijack_debug_") {
		t.Errorf("debug log name = %q", name)
	}
}

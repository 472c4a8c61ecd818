package main

import (
	"image"
	"log/slog"
	"time"

	"overlayhijack/internal/config"
	"overlayhijack/internal/gfx"
	"overlayhijack/internal/headless"
	"overlayhijack/internal/overlay"
	"overlayhijack/internal/storage"
)

// headlessBounds is the size of the stand-in overlay window in dry runs.
var headlessBounds = image.Rect(0, 0, 1280, 720)

// overlayOptions builds the overlay options for cfg. In headless mode the
// overlay draws onto an in-memory desktop holding a single window that
// matches the configured target.
func overlayOptions(cfg *config.Config, headlessMode bool, logger *slog.Logger) ([]overlay.Option, *headless.Desktop) {
	opts := []overlay.Option{
		overlay.WithTarget(overlay.Target{Class: cfg.Target.Class, Title: cfg.Target.Title}),
	}
	if cfg.Behavior.AutoResize {
		opts = append(opts, overlay.WithAutoResize())
	}
	if !headlessMode {
		return opts, nil
	}

	desk := headless.NewDesktop()
	desk.AddWindow(cfg.Target.Class, cfg.Target.Title, headlessBounds)
	if cfg.Snapshot.Enabled {
		desk.OnPresent(snapshotter(cfg, logger))
	}
	return append(opts, overlay.WithPlatform(desk, desk)), desk
}

// snapshotter saves every Nth presented frame.
func snapshotter(cfg *config.Config, logger *slog.Logger) headless.PresentFunc {
	if err := cfg.EnsureSnapshotDir(); err != nil {
		logger.Warn("snapshot directory unavailable", "dir", cfg.Snapshot.Directory, "error", err)
	}
	store := storage.NewStorage(cfg.Snapshot.Directory, cfg.Snapshot.Format, cfg.Snapshot.Quality)
	if cfg.Snapshot.KeepHours > 0 {
		removed, err := store.Cleanup(time.Duration(cfg.Snapshot.KeepHours) * time.Hour)
		if err != nil {
			logger.Warn("snapshot cleanup failed", "error", err)
		} else if removed > 0 {
			logger.Debug("old snapshots removed", "count", removed)
		}
	}

	every := cfg.Snapshot.Every
	return func(hwnd gfx.HWND, frame int, img image.Image) {
		if frame%every != 0 {
			return
		}
		path, err := store.Save(frame, img)
		if err != nil {
			logger.Warn("snapshot failed", "frame", frame, "error", err)
			return
		}
		logger.Debug("snapshot saved", "frame", frame, "path", path)
	}
}

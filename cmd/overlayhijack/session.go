package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"overlayhijack/internal/overlay"
)

var (
	demoColor = overlay.RGBA(255, 51, 0, 255)
	infoColor = overlay.RGBA(255, 255, 255, 255)
)

// session drives one overlay through setup, the frame loop and teardown.
// Every overlay call goes through call so that it runs on one OS thread.
type session struct {
	ov     *overlay.Overlay
	logger *slog.Logger
	fps    int

	call   func(func())
	paused func() bool

	frames   int
	started  time.Time
	restarts int
}

func newSession(ov *overlay.Overlay, logger *slog.Logger, fps int) *session {
	return &session{
		ov:     ov,
		logger: logger,
		fps:    fps,
		call:   func(f func()) { f() },
		paused: func() bool { return false },
	}
}

// start runs Init and Startup.
func (s *session) start() error {
	var err error
	s.call(func() {
		if err = s.ov.Init(); err != nil {
			return
		}
		err = s.ov.Startup()
	})
	if err != nil {
		return err
	}
	size, _ := s.ov.RenderTargetSize()
	s.logger.Info("overlay ready",
		"window", fmt.Sprintf("%#x", uintptr(s.ov.Window())),
		"width", size.Width, "height", size.Height)
	s.started = time.Now()
	return nil
}

// frame draws and presents one frame. A paused session presents an empty
// frame.
func (s *session) frame() error {
	var err error
	s.call(func() {
		s.ov.BeginScene()
		s.ov.ClearScene()
		if !s.paused() {
			s.drawDemo()
		}
		err = s.ov.EndScene()
	})
	s.frames++
	if err == nil {
		return nil
	}

	// A lost device invalidates the render target; build a new one.
	s.logger.Warn("present failed, recreating graphics", "frame", s.frames, "error", err)
	var serr error
	s.call(func() { serr = s.ov.Startup() })
	if serr != nil {
		return errors.Join(err, serr)
	}
	s.restarts++
	return nil
}

func (s *session) drawDemo() {
	s.ov.DrawText(overlay.Point{X: 10, Y: 30}, "overlay hijack", demoColor)
	s.ov.DrawRect(overlay.Point{X: 10, Y: 80}, overlay.Size{Width: 100, Height: 100}, 2, demoColor)

	elapsed := time.Since(s.started).Truncate(time.Second)
	status := fmt.Sprintf("frame %d  %s", s.frames, elapsed)
	s.ov.DrawText(overlay.Point{X: 10, Y: 190}, status, infoColor)
}

// run presents frames at the session's rate until ctx is done or a frame
// cannot be recovered.
func (s *session) run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(s.fps))
	defer ticker.Stop()

	for {
		if err := s.frame(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			s.logger.Info("frame loop stopped", "frames", s.frames, "reason", context.Cause(ctx))
			return nil
		case <-ticker.C:
		}
	}
}

// close blanks and releases the overlay.
func (s *session) close() {
	s.call(func() {
		if err := s.ov.Close(); err != nil {
			s.logger.Warn("overlay close failed", "error", err)
		}
	})
}

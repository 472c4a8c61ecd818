//go:build windows

package notify

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/go-toast/toast"
)

func TestWindowsNotifierPushesBeforeReturning(t *testing.T) {
	var got *toast.Notification
	n := &WindowsNotifier{
		appID:  AppID,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		push: func(tn *toast.Notification) error {
			got = tn
			return nil
		},
	}

	if err := n.Show("Overlay setup failed", "window not found"); err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	if got == nil {
		t.Fatal("Show() returned before the toast was pushed")
	}
	if got.AppID != AppID || got.Title != "Overlay setup failed" || got.Message != "window not found" {
		t.Errorf("pushed %+v", got)
	}
}

func TestWindowsNotifierReportsPushError(t *testing.T) {
	pushErr := errors.New("powershell unavailable")
	n := &WindowsNotifier{
		appID:  AppID,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		push:   func(*toast.Notification) error { return pushErr },
	}

	if err := n.Show("t", "m"); !errors.Is(err, pushErr) {
		t.Errorf("Show() error = %v, want %v", err, pushErr)
	}
}

//go:build windows

package notify

import (
	"log/slog"

	"github.com/go-toast/toast"
)

// WindowsNotifier shows toast notifications.
type WindowsNotifier struct {
	appID  string
	logger *slog.Logger
	push   func(*toast.Notification) error
}

// NewNotifier returns a toast notifier.
func NewNotifier(logger *slog.Logger) Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &WindowsNotifier{
		appID:  AppID,
		logger: logger,
		push:   (*toast.Notification).Push,
	}
}

// Show pushes the toast and returns once it has been handed to the shell.
// Callers often exit right after a failure toast, so the push is not
// deferred to a goroutine.
func (n *WindowsNotifier) Show(title, message string) error {
	notification := &toast.Notification{
		AppID:   n.appID,
		Title:   title,
		Message: message,
	}
	if err := n.push(notification); err != nil {
		n.logger.Warn("toast failed", "title", title, "error", err)
		return err
	}
	return nil
}

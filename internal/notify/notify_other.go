//go:build !windows

package notify

import "log/slog"

// LogNotifier writes notifications to a logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewNotifier returns a notifier that logs at warn level.
func NewNotifier(logger *slog.Logger) Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Show(title, message string) error {
	n.logger.Warn(message, "app", AppID, "title", title)
	return nil
}

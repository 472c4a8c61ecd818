//go:build !windows

package notify

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	if err := n.Show("Overlay setup failed", "window not found"); err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"level=WARN", `msg="window not found"`, `title="Overlay setup failed"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

package main

import (
	"os"
	"path/filepath"
	"time"
)

// openDebugLog creates overlayhijack_debug_<time>.log next to the
// executable, falling back to the temp directory.
func openDebugLog() (*os.File, error) {
	dir := os.TempDir()
	if exePath, err := os.Executable(); err == nil {
		dir = filepath.Dir(exePath)
	}
	name := "overlayhijack_debug_" + time.Now().Format("20060102_150405") + ".log"

	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return os.OpenFile(filepath.Join(os.TempDir(), name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	}
	return f, nil
}

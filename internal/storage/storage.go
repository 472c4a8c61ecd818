package storage

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Storage writes presented frames to disk.
type Storage struct {
	directory string
	format    string
	quality   int
	now       func() time.Time
}

// NewStorage returns a Storage writing format ("png" or "jpg") files into
// directory.
func NewStorage(directory, format string, quality int) *Storage {
	return &Storage{
		directory: directory,
		format:    format,
		quality:   quality,
		now:       time.Now,
	}
}

// SetDirectory changes the target directory, expanding a leading ~.
func (s *Storage) SetDirectory(dir string) error {
	if len(dir) > 0 && dir[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		dir = filepath.Join(homeDir, dir[1:])
	}

	s.directory = dir
	return os.MkdirAll(dir, 0755)
}

// Directory returns the target directory.
func (s *Storage) Directory() string {
	return s.directory
}

// FileName returns the name Save uses for frame number frame.
func (s *Storage) FileName(frame int) string {
	ext := s.format
	if ext == "" {
		ext = "png"
	}
	timestamp := s.now().Format("20060102_150405")
	return fmt.Sprintf("frame_%s_%06d.%s", timestamp, frame, ext)
}

// Save encodes img as frame number frame and returns the file path.
func (s *Storage) Save(frame int, img image.Image) (string, error) {
	if err := os.MkdirAll(s.directory, 0755); err != nil {
		return "", fmt.Errorf("create snapshot directory: %w", err)
	}

	path := filepath.Join(s.directory, s.FileName(frame))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create snapshot: %w", err)
	}
	defer file.Close()

	switch s.format {
	case "jpg", "jpeg":
		err = jpeg.Encode(file, img, &jpeg.Options{Quality: s.quality})
	default:
		err = png.Encode(file, img)
	}

	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	return path, nil
}

// Cleanup removes frame files older than olderThan and returns how many
// were removed.
func (s *Storage) Cleanup(olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return 0, err
	}

	cutoff := s.now().Add(-olderThan)
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "frame_") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			if os.Remove(filepath.Join(s.directory, entry.Name())) == nil {
				removed++
			}
		}
	}

	return removed, nil
}

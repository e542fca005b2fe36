// Package imagefs lists rateable images from the local filesystem.
package imagefs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"photorank/domain/gallery"
)

// Source implements gallery.Source over os.ReadDir.
type Source struct {
	logger *slog.Logger
}

// NewSource creates a filesystem image source.
func NewSource(logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{logger: logger}
}

// ListImages returns the absolute paths of dir's image files in directory
// listing order. Subdirectories and other files are skipped.
func (s *Source) ListImages(dir string) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: no folder selected", gallery.ErrFolderUnavailable)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", gallery.ErrFolderUnavailable, dir, err)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gallery.ErrFolderUnavailable, err)
	}

	images := make([]string, 0, len(entries))
	skipped := 0
	for _, entry := range entries {
		if entry.IsDir() || !gallery.IsImageFile(entry.Name()) {
			skipped++
			continue
		}
		images = append(images, filepath.Join(abs, entry.Name()))
	}

	s.logger.Debug("Listed folder", "folder", abs, "images", len(images), "skipped", skipped)
	return images, nil
}

var _ gallery.Source = (*Source)(nil)

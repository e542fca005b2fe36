// Package gallery defines which files take part in a rating session.
package gallery

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrFolderUnavailable is returned when a folder cannot be listed.
var ErrFolderUnavailable = errors.New("folder unavailable")

// Extensions lists the accepted image extensions, lower-case and without the dot.
var Extensions = []string{"png", "jpg", "jpeg"}

// Source lists the images of a folder.
type Source interface {
	// ListImages returns absolute paths of the folder's image files in listing order.
	// Subfolders are not visited. Errors wrap ErrFolderUnavailable.
	ListImages(dir string) ([]string, error)
}

// IsImageFile reports whether a file name has an accepted extension, ignoring case.
func IsImageFile(name string) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return false
	}
	for _, e := range Extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

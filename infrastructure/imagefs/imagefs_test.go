package imagefs

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photorank/domain/gallery"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestSource_ListImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.JPG", "c.jpeg", "notes.txt", "archive.png.bak", "noext"} {
		touch(t, filepath.Join(dir, name))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.png"), 0o755))
	touch(t, filepath.Join(dir, "nested.png", "inner.png"))

	src := NewSource(slog.New(slog.NewTextHandler(io.Discard, nil)))
	images, err := src.ListImages(dir)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.JPG"),
		filepath.Join(dir, "c.jpeg"),
	}, images)
	for _, img := range images {
		assert.True(t, filepath.IsAbs(img), img)
	}
}

func TestSource_EmptyFolder(t *testing.T) {
	images, err := NewSource(nil).ListImages(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestSource_Unavailable(t *testing.T) {
	src := NewSource(nil)

	_, err := src.ListImages(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, gallery.ErrFolderUnavailable)

	_, err = src.ListImages("")
	assert.ErrorIs(t, err, gallery.ErrFolderUnavailable)

	file := filepath.Join(t.TempDir(), "photo.png")
	touch(t, file)
	_, err = src.ListImages(file)
	assert.ErrorIs(t, err, gallery.ErrFolderUnavailable)
}

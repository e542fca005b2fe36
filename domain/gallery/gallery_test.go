package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"photo.png", true},
		{"photo.PNG", true},
		{"photo.Jpg", true},
		{"photo.jpeg", true},
		{"archive.tar.JPEG", true},
		{"photo.gif", false},
		{"photo.webp", false},
		{"notes.txt", false},
		{"png", false},
		{"xpng", false},
		{".jpg", true},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsImageFile(tt.name))
		})
	}
}

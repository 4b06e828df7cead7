package upload_test

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"studio-site-backend/pkg/upload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		valid    bool
		errHint  string
	}{
		{"valid png", "logo.png", pngHeader, true, ""},
		{"valid jpeg", "photo.JPG", []byte{0xFF, 0xD8, 0xFF, 0xE0}, true, ""},
		{"valid gif", "anim.gif", []byte("GIF89a...."), true, ""},
		{"valid webp", "pic.webp", []byte("RIFF....WEBP"), true, ""},
		{"no extension", "logo", pngHeader, false, "no extension"},
		{"disallowed extension", "evil.svg", []byte("<svg/>"), false, "not allowed"},
		{"spoofed content", "fake.png", []byte("MZ executable"), false, "does not match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := upload.ValidateImage(tt.filename, tt.data)
			assert.Equal(t, tt.valid, result.Valid)
			if tt.errHint != "" {
				assert.Contains(t, result.Error, tt.errHint)
			}
		})
	}

	t.Run("oversized file", func(t *testing.T) {
		big := make([]byte, upload.MaxFileSize+1)
		copy(big, pngHeader)
		result := upload.ValidateImage("big.png", big)
		assert.False(t, result.Valid)
		assert.Contains(t, result.Error, "5MB")
	})
}

func TestStorageSaveRemove(t *testing.T) {
	storage, err := upload.NewStorage(t.TempDir())
	require.NoError(t, err)

	url, err := storage.Save("logo.png", pngHeader)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, upload.PublicPrefix))
	assert.True(t, strings.HasSuffix(url, ".png"))

	name := strings.TrimPrefix(url, upload.PublicPrefix)
	_, err = os.Stat(filepath.Join(storage.Dir(), name))
	assert.NoError(t, err)

	assert.NoError(t, storage.Remove(url))
	_, err = os.Stat(filepath.Join(storage.Dir(), name))
	assert.True(t, os.IsNotExist(err))

	t.Run("Should ignore URLs outside the uploads prefix", func(t *testing.T) {
		assert.NoError(t, storage.Remove("/etc/passwd"))
	})

	t.Run("Should tolerate a missing file", func(t *testing.T) {
		assert.NoError(t, storage.Remove(upload.PublicPrefix+"already-gone.png"))
	})
}

func TestStorageThumbnail(t *testing.T) {
	storage, err := upload.NewStorage(t.TempDir())
	require.NoError(t, err)

	// a real (tiny) png gets a sibling thumbnail
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 600, 400))))

	url, err := storage.Save("wide.png", buf.Bytes())
	require.NoError(t, err)

	name := strings.TrimPrefix(url, upload.PublicPrefix)
	thumb := strings.TrimSuffix(name, ".png") + "-thumb.jpg"
	_, err = os.Stat(filepath.Join(storage.Dir(), thumb))
	assert.NoError(t, err)
}

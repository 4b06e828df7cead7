// Package upload validates and stores admin-uploaded images on local disk.
// Filenames are timestamp-qualified so concurrent uploads never collide.
package upload

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	"image/jpeg"   // JPEG decoder + thumbnail encoder
	_ "image/png"  // Register PNG decoder
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// PublicPrefix is the URL path under which stored images are served.
const PublicPrefix = "/uploads/"

const thumbnailMaxDimension = 480

// Storage writes uploaded images under a local directory and maps them to
// public URLs.
type Storage struct {
	dir string
}

func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Dir returns the local directory backing the public uploads path.
func (s *Storage) Dir() string {
	return s.dir
}

// Save stores the image bytes under a unique timestamped name and returns
// its public URL. A downsized JPEG thumbnail is written alongside on a
// best-effort basis.
func (s *Storage) Save(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	name := fmt.Sprintf("image-%d-%s%s", time.Now().UnixMilli(), uuid.New().String()[:8], ext)

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	if thumb, err := makeThumbnail(data, thumbnailMaxDimension); err == nil {
		thumbName := strings.TrimSuffix(name, ext) + "-thumb.jpg"
		_ = os.WriteFile(filepath.Join(s.dir, thumbName), thumb, 0o644)
	}

	return PublicPrefix + name, nil
}

// Remove deletes the file backing a public URL. Only paths under the
// uploads prefix are touched; anything else is ignored.
func (s *Storage) Remove(publicURL string) error {
	if !strings.HasPrefix(publicURL, PublicPrefix) {
		return nil
	}
	name := filepath.Base(strings.TrimPrefix(publicURL, PublicPrefix))
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	// Thumbnail, if any.
	ext := filepath.Ext(name)
	thumbName := strings.TrimSuffix(name, ext) + "-thumb.jpg"
	if err := os.Remove(filepath.Join(s.dir, thumbName)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// makeThumbnail downsizes an image to the given max dimension, keeping the
// aspect ratio, and encodes it as JPEG.
func makeThumbnail(data []byte, maxDimension int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var newWidth, newHeight int
	if width > height {
		if width > maxDimension {
			newWidth = maxDimension
			newHeight = int(float64(height) * float64(maxDimension) / float64(width))
		} else {
			newWidth = width
			newHeight = height
		}
	} else {
		if height > maxDimension {
			newHeight = maxDimension
			newWidth = int(float64(width) * float64(maxDimension) / float64(height))
		} else {
			newWidth = width
			newHeight = height
		}
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

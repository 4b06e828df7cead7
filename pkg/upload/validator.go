package upload

import (
	"bytes"
	"path/filepath"
	"strings"
)

// MaxFileSize is the hard cap for a single uploaded image (5 MB).
const MaxFileSize = 5 * 1024 * 1024

// ValidationResult contains the result of image validation.
type ValidationResult struct {
	Valid     bool
	Extension string
	Error     string
}

// Magic byte signatures for the allowed image types. Maps lowercase
// extension to possible magic byte prefixes.
var magicBytes = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".gif":  {{0x47, 0x49, 0x46, 0x38, 0x37, 0x61}, {0x47, 0x49, 0x46, 0x38, 0x39, 0x61}}, // GIF87a & GIF89a
	".webp": {{0x52, 0x49, 0x46, 0x46}},                                                   // RIFF header
}

// Allowed image extensions (strict whitelist).
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ValidateImage performs 3-layer validation of an uploaded image:
// 1. Extension whitelist check
// 2. Magic byte verification (content matches extension)
// 3. Size cap
func ValidateImage(filename string, data []byte) ValidationResult {
	result := ValidationResult{}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	if !allowedExtensions[ext] {
		result.Error = "file extension not allowed: " + ext
		return result
	}

	if !validateMagicBytes(ext, data) {
		result.Error = "file content does not match extension (potential file spoofing detected)"
		return result
	}

	if len(data) > MaxFileSize {
		result.Error = "file exceeds the 5MB size limit"
		return result
	}

	result.Valid = true
	return result
}

func validateMagicBytes(ext string, data []byte) bool {
	signatures, ok := magicBytes[ext]
	if !ok {
		return false
	}
	for _, sig := range signatures {
		if len(data) >= len(sig) && bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

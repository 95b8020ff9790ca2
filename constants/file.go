package constants

import "strings"

// AllowedExtensions holds the accepted upload extensions for receipt images.
var AllowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"heic": {},
	"heif": {},
}

// MaxUploadBytes caps receipt uploads at 16 MiB.
const MaxUploadBytes = 16 << 20

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsAllowedExt reports whether a filename extension is an accepted image type.
func IsAllowedExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}

// IsHEICExt reports whether the extension needs conversion before OCR or
// a vision call (neither tesseract nor OpenAI accept HEIC directly).
func IsHEICExt(ext string) bool {
	switch NormalizeExt(ext) {
	case "heic", "heif":
		return true
	}
	return false
}

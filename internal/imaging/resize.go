package imaging

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
)

// Downscale rewrites the image at path so its longest edge is at most
// maxEdge pixels, re-encoding in the original format. Images already within
// bounds, and formats we cannot decode (HEIC), are left untouched.
func Downscale(path string, maxEdge int, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if maxEdge <= 0 {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
	default:
		logger.Debug("imaging.downscale.skipped", "path", path, "reason", "undecodable format")
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	img, format, err := image.Decode(f)
	closeErr := f.Close()
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	if closeErr != nil {
		return closeErr
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxEdge && h <= maxEdge {
		return nil
	}

	var scaled image.Image
	if w >= h {
		scaled = resize.Resize(uint(maxEdge), 0, img, resize.Lanczos3)
	} else {
		scaled = resize.Resize(0, uint(maxEdge), img, resize.Lanczos3)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rewrite image: %w", err)
	}
	defer out.Close()

	switch format {
	case "png":
		err = png.Encode(out, scaled)
	case "gif":
		err = gif.Encode(out, scaled, nil)
	default:
		err = jpeg.Encode(out, scaled, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return fmt.Errorf("encode image: %w", err)
	}

	logger.Info("imaging.downscale.ok",
		"path", path,
		"from", fmt.Sprintf("%dx%d", w, h),
		"max_edge", maxEdge,
	)
	return nil
}

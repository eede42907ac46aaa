package upload

import (
	"fmt"
	"image/jpeg"
	"os"

	"github.com/disintegration/imaging"

	// register the webp decoder so allow-listed webp uploads can be decoded
	_ "golang.org/x/image/webp"
)

const (
	maxDimension = 800
	jpegQuality  = 85
)

// normalizeImage re-encodes the image at srcPath into dstPath: scaled to fit
// inside maxDimension×maxDimension preserving aspect ratio (never upscaled),
// re-compressed as JPEG. The destination keeps the original file extension
// even though the bytes are always JPEG, matching the public filenames the
// frontend already stores.
func normalizeImage(srcPath, dstPath string) error {
	img, err := imaging.Open(srcPath)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	resized := imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)

	out, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("create normalized file: %w", err)
	}
	defer out.Close()
	if err := jpeg.Encode(out, resized, &jpeg.Options{Quality: jpegQuality}); err != nil {
		os.Remove(dstPath)
		return fmt.Errorf("encode image: %w", err)
	}
	return nil
}

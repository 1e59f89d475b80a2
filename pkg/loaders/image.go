package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/DenisKolodin/lustre-go/pkg/core"
	"github.com/DenisKolodin/lustre-go/pkg/material"
)

// LoadImageTexture reads an image file (PNG, JPEG, BMP or TIFF) and wraps
// it as a texture for image-mapped materials. On any failure it returns
// the fallback checkerboard instead of nil, so a missing asset shows up in
// the render without aborting it; the error reports what went wrong for
// callers that want to log it.
func LoadImageTexture(path string) (material.ColorSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return FallbackTexture(), fmt.Errorf("opening texture %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return FallbackTexture(), fmt.Errorf("decoding texture %s: %w", path, err)
	}
	return material.NewImageTextureFromImage(img), nil
}

// FallbackTexture is the stand-in for textures that could not be loaded,
// the usual magenta and black checkerboard.
func FallbackTexture() material.ColorSource {
	return material.NewCheckerboardTexture(16, 16, 2,
		core.NewVec3(1, 0, 1), core.NewVec3(0, 0, 0))
}

// Package imageio decodes image files for texture creation. It registers
// the stdlib png/jpeg/gif decoders plus the extended x/image formats, so a
// header probe or full decode accepts whatever any of those handle.
package imageio

import (
	"fmt"
	"image"
	"os"

	"golang.org/x/image/draw"

	// Registered decode formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Probe reads the image header at path and returns the origin width and
// height without decoding pixel data.
func Probe(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("imageio: open %s: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("imageio: decode header %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// Decode reads and fully decodes the image file at path.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", path, err)
	}
	return img, nil
}

// Stretch scales src to exactly width x height, returning RGBA pixels. The
// whole source maps onto the whole target, so non-matching aspect ratios
// stretch rather than letterbox. This is the fill step behind power-of-two
// texture padding.
func Stretch(src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if b := src.Bounds(); b.Dx() == width && b.Dy() == height {
		draw.Copy(dst, image.Point{}, src, b, draw.Src, nil)
		return dst
	}
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// DecodeStretched decodes the file at path and stretches it to exactly
// width x height.
func DecodeStretched(path string, width, height int) (*image.RGBA, error) {
	img, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return Stretch(img, width, height), nil
}

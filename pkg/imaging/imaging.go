// Package imaging decodes uploaded images and re-encodes them for the OCR engine.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrEmptyImage is returned for zero-length uploads.
	ErrEmptyImage = errors.New("empty image")
	// ErrTooManyPixels is returned when the declared dimensions exceed Limits.MaxPixels.
	ErrTooManyPixels = errors.New("image exceeds pixel limit")
)

// DefaultMaxPixels matches the decompression bomb threshold of common imaging libraries.
const DefaultMaxPixels int64 = 178956970

// Limits bounds the work done on one upload. Zero values disable a limit.
type Limits struct {
	MaxSide   int
	MaxPixels int64
}

// Prepared is an image ready for OCR. Scale maps prepared coordinates back
// to the original: original = prepared / Scale.
type Prepared struct {
	PNG    []byte
	Width  int
	Height int
	Scale  float64
	Format string
}

// Decode parses JPEG, PNG, GIF, BMP, TIFF or WebP bytes. The header is read
// first and images declaring more than maxPixels pixels are rejected before
// any pixel buffer is allocated.
func Decode(data []byte, maxPixels int64) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyImage
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image header: %w", err)
	}
	if maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, "", fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// Prepare decodes data, downscales it so neither side exceeds limits.MaxSide
// and encodes the result as PNG.
func Prepare(data []byte, limits Limits) (Prepared, error) {
	img, format, err := Decode(data, limits.MaxPixels)
	if err != nil {
		return Prepared{}, err
	}
	b := img.Bounds()
	if b.Empty() {
		return Prepared{}, ErrEmptyImage
	}

	scale := 1.0
	if limits.MaxSide > 0 {
		if longest := max(b.Dx(), b.Dy()); longest > limits.MaxSide {
			scale = float64(limits.MaxSide) / float64(longest)
		}
	}
	if scale < 1.0 {
		w := max(1, int(float64(b.Dx())*scale))
		h := max(1, int(float64(b.Dy())*scale))
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Prepared{}, fmt.Errorf("encode png: %w", err)
	}
	nb := img.Bounds()
	return Prepared{
		PNG:    buf.Bytes(),
		Width:  nb.Dx(),
		Height: nb.Dy(),
		Scale:  scale,
		Format: format,
	}, nil
}

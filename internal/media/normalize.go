package media

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// EnsureFormat converts image bytes into a form the chat platform
// accepts. PNG and JPEG inputs pass through untouched. Anything else is
// decoded, composited onto a white background so no alpha channel
// survives, and re-encoded as PNG.
//
// Failures are best effort: the original bytes are returned alongside
// the error so callers can still attempt delivery with them.
func EnsureFormat(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, ErrEmptyImage
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return data, fmt.Errorf("decode image config: %w", err)
	}
	if format == "png" || format == "jpeg" {
		return data, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data, fmt.Errorf("decode %s image: %w", format, err)
	}

	bounds := src.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, bounds, src, bounds.Min, draw.Over)

	var buf bytes.Buffer
	if err := png.Encode(&buf, flat); err != nil {
		return data, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

package misc

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
)

// EncodePNG encodes a row-major, RGB-interleaved buffer as an 8-bit PNG.
// The image is fully opaque, so the encoder writes it without alpha.
func EncodePNG(rgb []byte, width int, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: bad image size %dx%d", ErrOutput, width, height)
	}
	if len(rgb) != 3*width*height {
		return nil, fmt.Errorf("%w: got %d bytes for a %dx%d image", ErrOutput, len(rgb), width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for p, i := 0, 0; i < len(rgb); p, i = p+4, i+3 {
		img.Pix[p] = rgb[i]
		img.Pix[p+1] = rgb[i+1]
		img.Pix[p+2] = rgb[i+2]
		img.Pix[p+3] = 0xff
	}

	var buffer bytes.Buffer
	if err := png.Encode(&buffer, img); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrOutput, err)
	}
	return buffer.Bytes(), nil
}

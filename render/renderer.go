package render

import (
	"fmt"

	"fractal/escape"
	"fractal/misc"
	"fractal/palette"
)

// BytesPerPixel is the size of one RGB pixel in the output buffer.
const BytesPerPixel = 3

// Renderer turns pixel indices into colors. It holds no mutable state after
// construction, so any number of goroutines may render disjoint ranges.
type Renderer struct {
	colors   []palette.Color
	settings Settings
}

// NewRenderer verifies the settings and resolves the palette once.
func NewRenderer(settings Settings) (*Renderer, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}
	colors, err := settings.Coloring.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", misc.ErrConfig, err)
	}

	return &Renderer{
		colors:   colors,
		settings: settings,
	}, nil
}

func (r *Renderer) Settings() Settings {
	return r.settings
}

// Colors returns a copy of the resolved palette.
func (r *Renderer) Colors() []palette.Color {
	out := make([]palette.Color, len(r.colors))
	copy(out, r.colors)
	return out
}

// Growth classifies the pixel at index i.
func (r *Renderer) Growth(i int) escape.Growth {
	s := &r.settings
	return s.Mode.Classify(s.Coordinate(i), s.Power, s.IterationDepth)
}

// Pixel computes the color of the pixel at index i.
func (r *Renderer) Pixel(i int) palette.Color {
	return r.Growth(i).Color(r.settings.StableColor, r.colors)
}

// RenderInto fills dst with consecutive pixels starting at index start.
// dst must hold a whole number of pixels.
func (r *Renderer) RenderInto(dst []byte, start int) error {
	if len(dst)%BytesPerPixel != 0 {
		return fmt.Errorf("render: buffer of %d bytes is not a whole number of pixels", len(dst))
	}
	end := start + len(dst)/BytesPerPixel
	if start < 0 || end > r.settings.PixelCount() {
		return fmt.Errorf("render: pixels [%d, %d) outside image of %d pixels", start, end, r.settings.PixelCount())
	}

	for i, offset := start, 0; i < end; i, offset = i+1, offset+BytesPerPixel {
		c := r.Pixel(i)
		dst[offset] = c.R()
		dst[offset+1] = c.G()
		dst[offset+2] = c.B()
	}
	return nil
}

// NewBuffer allocates an output buffer for the whole image.
func (r *Renderer) NewBuffer() []byte {
	return make([]byte, BytesPerPixel*r.settings.PixelCount())
}

// Render computes the whole image on the calling goroutine.
func (r *Renderer) Render() []byte {
	buffer := r.NewBuffer()
	// the buffer is sized for the whole image so this cannot fail
	_ = r.RenderInto(buffer, 0)
	return buffer
}

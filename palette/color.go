package palette

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque 8-bit RGB triple.
type Color [3]uint8

// ColorOffset is a signed per-channel delta used while building gradients.
type ColorOffset [3]int32

var (
	Blue       = Color{0x00, 0x00, 0xff}
	Azure      = Color{0x00, 0x7f, 0xff}
	Cyan       = Color{0x00, 0xff, 0xff}
	Spring     = Color{0x00, 0xff, 0x7f}
	Green      = Color{0x00, 0xff, 0x00}
	Chartreuse = Color{0x7f, 0xff, 0x00}
	Yellow     = Color{0xff, 0xff, 0x00}
	Orange     = Color{0xff, 0x7f, 0x00}
	Red        = Color{0xff, 0x00, 0x00}
	Rose       = Color{0xff, 0x00, 0x7f}
	Magenta    = Color{0xff, 0x00, 0xff}
	Violet     = Color{0x7f, 0x00, 0xff}
	Black      = Color{0x00, 0x00, 0x00}
)

// Hues returns the twelve evenly spaced hues, starting at blue and walking
// the color wheel towards violet. A fresh slice is returned on every call.
func Hues() []Color {
	return []Color{Blue, Azure, Cyan, Spring, Green, Chartreuse, Yellow, Orange, Red, Rose, Magenta, Violet}
}

func (c Color) R() uint8 { return c[0] }
func (c Color) G() uint8 { return c[1] }
func (c Color) B() uint8 { return c[2] }

// Hex formats the color as #rrggbb, the same form UnmarshalJSON accepts.
func (c Color) Hex() string {
	return colorful.Color{R: float64(c[0]) / 255, G: float64(c[1]) / 255, B: float64(c[2]) / 255}.Hex()
}

func (c Color) String() string {
	return c.Hex()
}

// Offset returns the signed per-channel difference end - c.
func (c Color) Offset(end Color) ColorOffset {
	var o ColorOffset
	for i := range c {
		o[i] = int32(end[i]) - int32(c[i])
	}
	return o
}

// Shift moves every channel of c by o scaled by n. Callers keep the result
// inside the 0-255 range; the gradient builder only ever steps towards its
// end color.
func (c Color) Shift(o ColorOffset, n int) Color {
	var out Color
	for i := range c {
		out[i] = uint8(int32(c[i]) + o[i]*int32(n))
	}
	return out
}

// Divide truncates every channel of the offset towards zero.
func (o ColorOffset) Divide(steps int) ColorOffset {
	var out ColorOffset
	for i := range o {
		out[i] = o[i] / int32(steps)
	}
	return out
}

// UnmarshalJSON accepts either an [r, g, b] array or a "#rrggbb" string.
func (c *Color) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err == nil {
		parsed, err := colorful.Hex(strings.TrimSpace(hex))
		if err != nil {
			return fmt.Errorf("color %q: %s", hex, err)
		}
		r, g, b := parsed.RGB255()
		*c = Color{r, g, b}
		return nil
	}

	var channels []int
	if err := json.Unmarshal(data, &channels); err != nil {
		return fmt.Errorf("color must be [r, g, b] or \"#rrggbb\": %s", err)
	}
	if len(channels) != 3 {
		return fmt.Errorf("color must have 3 channels, got %d", len(channels))
	}
	for i, v := range channels {
		if v < 0 || v > 255 {
			return fmt.Errorf("color channel %d out of range: %d", i, v)
		}
		c[i] = uint8(v)
	}
	return nil
}

package palette

import (
	"errors"
	"fmt"
)

// MaxSteps bounds the size of a generated gradient.
const MaxSteps = 1 << 16

var (
	ErrEmptyPalette    = errors.New("palette has no colors")
	ErrAmbiguous       = errors.New("coloring sets both Palette and Range")
	ErrStepsOutOfRange = fmt.Errorf("range steps must be between 0 and %d", MaxSteps)
)

// Range generates a gradient of Steps+1 colors from Start to End.
type Range struct {
	Start Color
	End   Color
	Steps int
}

// Coloring describes where the escape palette comes from. At most one of
// Palette and Range is set; the zero value resolves to the default hues.
type Coloring struct {
	Palette []Color `json:",omitempty"`
	Range   *Range  `json:",omitempty"`
}

// Default is the twelve hue palette used when no coloring is configured.
func Default() Coloring {
	return Coloring{Palette: Hues()}
}

// FromPalette wraps an explicit list of colors.
func FromPalette(colors ...Color) Coloring {
	if colors == nil {
		colors = []Color{}
	}
	return Coloring{Palette: colors}
}

// FromRange wraps a gradient.
func FromRange(start Color, end Color, steps int) Coloring {
	return Coloring{Range: &Range{Start: start, End: end, Steps: steps}}
}

func (c Coloring) IsZero() bool {
	return c.Palette == nil && c.Range == nil
}

func (c Coloring) Verify() error {
	switch {
	case c.Palette != nil && c.Range != nil:
		return ErrAmbiguous
	case c.Range != nil:
		return c.Range.Verify()
	case c.Palette != nil && len(c.Palette) == 0:
		return ErrEmptyPalette
	}
	return nil
}

// Build materializes the coloring into a non-empty ordered list of colors.
func (c Coloring) Build() ([]Color, error) {
	if err := c.Verify(); err != nil {
		return nil, err
	}
	switch {
	case c.Range != nil:
		return c.Range.Build()
	case c.Palette != nil:
		out := make([]Color, len(c.Palette))
		copy(out, c.Palette)
		return out, nil
	}
	return Hues(), nil
}

func (c Coloring) String() string {
	switch {
	case c.Range != nil:
		return c.Range.String()
	case c.Palette != nil:
		return fmt.Sprintf("Palette%v", c.Palette)
	}
	return "Default"
}

func (r Range) Verify() error {
	if r.Steps < 0 || r.Steps > MaxSteps {
		return fmt.Errorf("%w: got %d", ErrStepsOutOfRange, r.Steps)
	}
	return nil
}

// Build linearly interpolates each channel independently. The per-step delta
// is the channel difference divided by Steps with truncation, so the last
// generated step can fall short of End; End is always appended as is.
func (r Range) Build() ([]Color, error) {
	if err := r.Verify(); err != nil {
		return nil, err
	}
	switch r.Steps {
	case 0:
		return []Color{r.Start}, nil
	case 1:
		return []Color{r.Start, r.End}, nil
	}

	step := r.Start.Offset(r.End).Divide(r.Steps)
	colors := make([]Color, 0, r.Steps+1)
	for i := 0; i < r.Steps; i++ {
		colors = append(colors, r.Start.Shift(step, i))
	}
	return append(colors, r.End), nil
}

func (r Range) String() string {
	return fmt.Sprintf("Range{Start: %s, End: %s, Steps: %d}", r.Start, r.End, r.Steps)
}

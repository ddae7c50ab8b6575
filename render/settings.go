package render

import (
	"encoding/json"
	"fmt"
	"math/cmplx"
	"strings"

	"fractal/escape"
	"fractal/misc"
	"fractal/palette"
)

const (
	DefaultIterationDepth = 1000
	// MaxScaleFactor keeps the in-memory image below roughly 800MB.
	MaxScaleFactor = 4096
)

// Settings describe a single image. They are read-only once verified and
// can be shared freely between goroutines.
type Settings struct {
	ScaleFactor    int
	Power          int
	Mode           escape.Mode
	IterationDepth uint
	StableColor    palette.Color
	Coloring       palette.Coloring

	// set by UnmarshalJSON when the key was present, so an explicit zero
	// is not mistaken for a missing value
	powerSet bool
	depthSet bool
	defaults []string
}

// ParseSettings decodes JSON settings and verifies them.
func ParseSettings(data []byte) (Settings, error) {
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("%w: %s", misc.ErrConfig, err)
	}
	if err := s.Verify(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s *Settings) UnmarshalJSON(data []byte) error {
	type plain Settings
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if err := json.Unmarshal(data, (*plain)(s)); err != nil {
		return err
	}
	s.powerSet = hasField(fields, "Power")
	s.depthSet = hasField(fields, "IterationDepth")
	return nil
}

// hasField matches keys the way encoding/json does, ignoring case. A null
// value leaves the field untouched, so it counts as absent.
func hasField(fields map[string]json.RawMessage, name string) bool {
	for key, value := range fields {
		if strings.EqualFold(key, name) && string(value) != "null" {
			return true
		}
	}
	return false
}

// Defaults lists the settings Verify had to fill in, e.g.
// "IterationDepth=1000".
func (s *Settings) Defaults() []string {
	return s.defaults
}

func (s *Settings) useDefault(name string, value interface{}) {
	s.defaults = append(s.defaults, fmt.Sprintf("%s=%v", name, value))
}

// Verify fills defaults and rejects settings that cannot be rendered. A zero
// Power or IterationDepth counts as missing unless it was decoded from JSON
// explicitly.
func (s *Settings) Verify() error {
	if s.ScaleFactor <= 0 || s.ScaleFactor > MaxScaleFactor {
		return fmt.Errorf("%w: ScaleFactor must be between 1 and %d, got %d", misc.ErrConfig, MaxScaleFactor, s.ScaleFactor)
	}
	if s.Power < 0 || (s.Power == 0 && s.powerSet) {
		return fmt.Errorf("%w: Power must be at least 1, got %d", misc.ErrConfig, s.Power)
	}
	if s.Power == 0 {
		s.Power = escape.DefaultPower
		s.useDefault("Power", s.Power)
	}
	switch s.Mode.Kind {
	case escape.Mandelbrot:
	case escape.Julia:
		if cmplx.IsNaN(s.Mode.C) || cmplx.IsInf(s.Mode.C) {
			return fmt.Errorf("%w: Julia constant must be finite, got %v", misc.ErrConfig, s.Mode.C)
		}
	default:
		return fmt.Errorf("%w: unknown mode %d", misc.ErrConfig, int(s.Mode.Kind))
	}
	if s.IterationDepth == 0 && !s.depthSet {
		s.IterationDepth = DefaultIterationDepth
		s.useDefault("IterationDepth", s.IterationDepth)
	}
	if s.Coloring.IsZero() {
		s.Coloring = palette.Default()
		s.useDefault("Coloring", s.Coloring)
	}
	if err := s.Coloring.Verify(); err != nil {
		return fmt.Errorf("%w: Coloring: %s", misc.ErrConfig, err)
	}
	return nil
}

func (s *Settings) String() string {
	output := "\nRender settings\n"
	output += fmt.Sprintf("Scale Factor: %d\n", s.ScaleFactor)
	output += fmt.Sprintf("Image Size: %dx%d\n", s.Width(), s.Height())
	output += fmt.Sprintf("Power: %d\n", s.Power)
	output += fmt.Sprintf("Mode: %s\n", s.Mode)
	output += fmt.Sprintf("Iteration Depth: %d\n", s.IterationDepth)
	output += fmt.Sprintf("Stable Color: %s\n", s.StableColor)
	output += fmt.Sprintf("Coloring: %s\n", s.Coloring)
	return output
}

// Width and Height are both four times the scale factor, so the image spans
// [-2, 2) on both axes.
func (s Settings) Width() int {
	return 4 * s.ScaleFactor
}

func (s Settings) Height() int {
	return 4 * s.ScaleFactor
}

func (s Settings) CenterX() int {
	return s.Width() / 2
}

func (s Settings) CenterY() int {
	return s.Height() / 2
}

func (s Settings) PixelCount() int {
	return s.Width() * s.Height()
}

// Title is the output file name, e.g. mandelbrot_800x800.png.
func (s Settings) Title() string {
	return fmt.Sprintf("%s_%dx%d.png", s.Mode, s.Width(), s.Height())
}

// IndexToPixel splits a row-major pixel index into column and row.
func (s Settings) IndexToPixel(i int) (int, int) {
	return i % s.Width(), i / s.Width()
}

// PixelToComplex centers the pixel on the image and scales it down to the
// complex plane.
func (s Settings) PixelToComplex(x int, y int) complex128 {
	scale := float64(s.ScaleFactor)
	re := float64(x-s.CenterX()) / scale
	im := float64(y-s.CenterY()) / scale
	return complex(re, im)
}

// Coordinate maps a row-major pixel index straight to the complex plane.
func (s Settings) Coordinate(i int) complex128 {
	return s.PixelToComplex(s.IndexToPixel(i))
}

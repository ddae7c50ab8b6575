package escape

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

const (
	Mandelbrot Kind = iota
	Julia
)

// Kind selects which of the two recurrence parameters the pixel provides.
type Kind int

func (k Kind) String() string {
	return []string{
		"Mandelbrot", "Julia",
	}[k]
}

// Mode is either Julia with a fixed constant, or Mandelbrot where every
// pixel supplies its own constant. The zero value is Mandelbrot.
type Mode struct {
	Kind Kind
	C    complex128
}

func NewJulia(re float64, im float64) Mode {
	return Mode{Kind: Julia, C: complex(re, im)}
}

func NewMandelbrot() Mode {
	return Mode{Kind: Mandelbrot}
}

// Iterator builds the sequence for the pixel at coordinate. Julia iterates
// from the coordinate with the fixed constant, Mandelbrot from zero with
// the coordinate as constant.
func (m Mode) Iterator(coordinate complex128, power int) *Iterator {
	if m.Kind == Julia {
		return NewIterator(m.C, coordinate, power)
	}
	return NewMandelbrotIterator(coordinate, power)
}

// Classify is shorthand for Classify(m.Iterator(coordinate, power), depth).
func (m Mode) Classify(coordinate complex128, power int, depth uint) Growth {
	return Classify(m.Iterator(coordinate, power), depth)
}

// String renders the mode the way output file names expect it, e.g.
// "mandelbrot" or "julia_-0.8+0.156i".
func (m Mode) String() string {
	if m.Kind != Julia {
		return "mandelbrot"
	}
	im := imag(m.C)
	sign := "+"
	if math.Signbit(im) {
		sign = ""
	}
	return fmt.Sprintf("julia_%s%s%si", formatFloat(real(m.C)), sign, formatFloat(im))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// UnmarshalJSON accepts "Mandelbrot" or {"Julia": [re, im]}.
func (m *Mode) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		if name != Mandelbrot.String() {
			return fmt.Errorf("unknown mode %q", name)
		}
		*m = NewMandelbrot()
		return nil
	}

	var julia struct {
		Julia *[2]float64
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&julia); err != nil {
		return fmt.Errorf("mode must be \"Mandelbrot\" or {\"Julia\": [re, im]}: %s", err)
	}
	if julia.Julia == nil {
		return fmt.Errorf("mode must be \"Mandelbrot\" or {\"Julia\": [re, im]}")
	}
	*m = NewJulia(julia.Julia[0], julia.Julia[1])
	return nil
}

func (m Mode) MarshalJSON() ([]byte, error) {
	if m.Kind != Julia {
		return json.Marshal(Mandelbrot.String())
	}
	return json.Marshal(map[string][2]float64{
		Julia.String(): {real(m.C), imag(m.C)},
	})
}

package escape

import (
	"fmt"

	"fractal/palette"
)

// Growth is the outcome of classifying a point: Stable, or the zero based
// step at which the sequence first escaped.
type Growth int

// Stable marks a point that never escaped within the iteration depth.
const Stable Growth = -1

// bandWidth is how many consecutive escape steps share a palette color.
const bandWidth = 4

// EscapedAfter builds the Growth for a sequence that escaped at step n.
func EscapedAfter(n int) Growth {
	if n < 0 {
		panic(fmt.Sprintf("escape: negative step %d", n))
	}
	return Growth(n)
}

func (g Growth) IsStable() bool {
	return g == Stable
}

// Steps returns the escape step and true, or 0 and false for Stable.
func (g Growth) Steps() (int, bool) {
	if g.IsStable() {
		return 0, false
	}
	return int(g), true
}

// Color maps the growth onto the palette. Stable points take the stable
// color, escaped ones are bucketed by four and wrap around the palette.
// colors must not be empty.
func (g Growth) Color(stable palette.Color, colors []palette.Color) palette.Color {
	n, escaped := g.Steps()
	if !escaped {
		return stable
	}
	return colors[(n/bandWidth)%len(colors)]
}

func (g Growth) String() string {
	if g.IsStable() {
		return "Stable"
	}
	return fmt.Sprintf("EscapedAfter(%d)", int(g))
}

// Classify drives the iterator for at most depth steps and reports the
// first step whose value escaped.
func Classify(it *Iterator, depth uint) Growth {
	for i := uint(0); i < depth; i++ {
		if Escaped(it.Next()) {
			return EscapedAfter(int(i))
		}
	}
	return Stable
}

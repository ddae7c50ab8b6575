package escape

import (
	"encoding/json"
	"math"
	"math/cmplx"
	"testing"

	"fractal/palette"
)

func TestIteratorTrace(t *testing.T) {
	it := NewMandelbrotIterator(1, DefaultPower)
	want := []complex128{1, 2, 5, 26, 677}
	for i, w := range want {
		if got := it.Next(); got != w {
			t.Fatalf("step %d = %v, want %v", i, got, w)
		}
	}

	if got := NewMandelbrotIterator(1, DefaultPower).Nth(3); got != 26 {
		t.Errorf("Nth(3) = %v, want 26", got)
	}
	if got := NewMandelbrotIterator(0, DefaultPower).Nth(10); got != 0 {
		t.Errorf("Nth(10) = %v, want 0", got)
	}
}

func TestIteratorDeterministic(t *testing.T) {
	a := NewIterator(complex(-0.8, 0.156), complex(0.1, -0.2), 3)
	b := NewIterator(complex(-0.8, 0.156), complex(0.1, -0.2), 3)
	for i := 0; i < 50; i++ {
		za, zb := a.Next(), b.Next()
		// NaN never equals itself, so compare the bits of each part.
		if !sameBits(za, zb) {
			t.Fatalf("step %d diverged: %v != %v", i, za, zb)
		}
	}
}

func sameBits(a, b complex128) bool {
	return math.Float64bits(real(a)) == math.Float64bits(real(b)) &&
		math.Float64bits(imag(a)) == math.Float64bits(imag(b))
}

func TestPowInt(t *testing.T) {
	z := complex(0.5, -1.25)
	tests := []struct {
		name string
		n    int
		want complex128
	}{
		{name: "zero", n: 0, want: 1},
		{name: "one", n: 1, want: z},
		{name: "square", n: 2, want: z * z},
		{name: "cube", n: 3, want: z * z * z},
		{name: "fifth", n: 5, want: z * z * z * z * z},
		{name: "inverse square", n: -2, want: 1 / (z * z)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PowInt(z, tt.n)
			if cmplx.Abs(got-tt.want) > 1e-12 {
				t.Errorf("PowInt(%v, %d) = %v, want %v", z, tt.n, got, tt.want)
			}
		})
	}
}

func TestEscaped(t *testing.T) {
	tests := []struct {
		name string
		z    complex128
		want bool
	}{
		{name: "origin", z: 0, want: false},
		{name: "on the threshold", z: 2, want: false},
		{name: "on the threshold imaginary", z: complex(0, -2), want: false},
		{name: "just past the threshold", z: complex(math.Nextafter(2, 3), 0), want: true},
		{name: "inside the square but outside the circle", z: complex(1.9, 1.9), want: true},
		{name: "infinity", z: cmplx.Inf(), want: true},
		{name: "nan", z: cmplx.NaN(), want: true},
		{name: "nan real part", z: complex(math.NaN(), 0), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escaped(tt.z); got != tt.want {
				t.Errorf("Escaped(%v) = %t, want %t", tt.z, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		point complex128
		power int
		depth uint
		want  Growth
	}{
		{name: "origin is stable", mode: NewMandelbrot(), point: 0, power: 2, depth: 1000, want: Stable},
		{name: "one escapes at step two", mode: NewMandelbrot(), point: 1, power: 2, depth: 10, want: EscapedAfter(2)},
		{name: "depth bounds the escape", mode: NewMandelbrot(), point: 1, power: 2, depth: 2, want: Stable},
		{name: "zero depth is always stable", mode: NewMandelbrot(), point: 100, power: 2, depth: 0, want: Stable},
		{name: "far point escapes immediately", mode: NewMandelbrot(), point: 3, power: 2, depth: 10, want: EscapedAfter(0)},
		{name: "minus two stays on the threshold", mode: NewMandelbrot(), point: -2, power: 2, depth: 100, want: Stable},
		{name: "minus one cycles", mode: NewMandelbrot(), point: -1, power: 2, depth: 100, want: Stable},
		{name: "julia starts from the point", mode: NewJulia(0, 0), point: 3, power: 2, depth: 10, want: EscapedAfter(0)},
		{name: "julia unit circle is stable", mode: NewJulia(0, 0), point: complex(0, 1), power: 2, depth: 100, want: Stable},
		{name: "cubic", mode: NewMandelbrot(), point: 1.5, power: 3, depth: 10, want: EscapedAfter(1)},
		{name: "negative power from zero overflows", mode: NewMandelbrot(), point: 0, power: -1, depth: 10, want: EscapedAfter(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mode.Classify(tt.point, tt.power, tt.depth); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyIdempotent(t *testing.T) {
	mode := NewJulia(-0.8, 0.156)
	for _, p := range []complex128{0, complex(0.3, 0.2), complex(-1.1, 0.05), complex(1.5, -1.5)} {
		first := mode.Classify(p, 2, 500)
		second := mode.Classify(p, 2, 500)
		if first != second {
			t.Errorf("Classify(%v) = %s then %s", p, first, second)
		}
	}
}

func TestClassifyNaN(t *testing.T) {
	it := NewIterator(cmplx.NaN(), 0, 2)
	if got := Classify(it, 100); got != EscapedAfter(0) {
		t.Errorf("Classify() = %s, want EscapedAfter(0)", got)
	}
}

func TestGrowthColor(t *testing.T) {
	stable := palette.Color{1, 1, 1}
	colors := palette.Hues()

	if got := Stable.Color(stable, colors); got != stable {
		t.Errorf("Stable.Color() = %v, want %v", got, stable)
	}

	tests := []struct {
		n    int
		want palette.Color
	}{
		{n: 0, want: palette.Blue},
		{n: 3, want: palette.Blue},
		{n: 4, want: palette.Azure},
		{n: 47, want: palette.Violet},
		{n: 48, want: palette.Blue},
	}
	for _, tt := range tests {
		if got := EscapedAfter(tt.n).Color(stable, colors); got != tt.want {
			t.Errorf("EscapedAfter(%d).Color() = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestGrowthColorPeriodic(t *testing.T) {
	stable := palette.Black
	palettes := [][]palette.Color{
		{palette.Red},
		{palette.Red, palette.Green, palette.Blue},
		palette.Hues(),
	}
	for _, colors := range palettes {
		period := 4 * len(colors)
		for n := 0; n < 3*period; n++ {
			want := EscapedAfter(n).Color(stable, colors)
			for k := 1; k <= 3; k++ {
				if got := EscapedAfter(n+k*period).Color(stable, colors); got != want {
					t.Fatalf("len %d: n=%d k=%d got %v, want %v", len(colors), n, k, got, want)
				}
			}
		}
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{mode: NewMandelbrot(), want: "mandelbrot"},
		{mode: NewJulia(-0.8, 0.156), want: "julia_-0.8+0.156i"},
		{mode: NewJulia(0.285, -0.01), want: "julia_0.285-0.01i"},
		{mode: NewJulia(0, 0), want: "julia_0+0i"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("String() = %s, want %s", got, tt.want)
		}
	}
}

func TestModeJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Mode
		wantErr bool
	}{
		{name: "mandelbrot", input: `"Mandelbrot"`, want: NewMandelbrot()},
		{name: "julia", input: `{"Julia": [-0.8, 0.156]}`, want: NewJulia(-0.8, 0.156)},
		{name: "unknown name", input: `"Newton"`, wantErr: true},
		{name: "unknown key", input: `{"Newton": [1, 2]}`, wantErr: true},
		{name: "empty object", input: `{}`, wantErr: true},
		{name: "number", input: `3`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Mode
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != tt.want {
				t.Errorf("Unmarshal() = %+v, want %+v", got, tt.want)
			}

			encoded, err := json.Marshal(got)
			if err != nil {
				t.Fatal(err)
			}
			var again Mode
			if err := json.Unmarshal(encoded, &again); err != nil || again != got {
				t.Errorf("round trip through %s = %+v, %v", encoded, again, err)
			}
		})
	}
}

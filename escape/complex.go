package escape

import "math/cmplx"

// Threshold is the magnitude a point has to exceed to count as escaped.
const Threshold = 2.0

// PowInt raises z to an integer power by repeated squaring.
func PowInt(z complex128, n int) complex128 {
	switch n {
	case 1:
		return z
	case 2:
		return z * z
	}
	if n < 0 {
		return 1 / PowInt(z, -n)
	}

	result := complex(1, 0)
	for n > 0 {
		if n&1 == 1 {
			result *= z
		}
		z *= z
		n >>= 1
	}
	return result
}

// Magnitude is the Euclidean norm of z.
func Magnitude(z complex128) float64 {
	return cmplx.Abs(z)
}

// Escaped reports whether |z| > Threshold. NaN magnitudes count as escaped,
// infinite ones compare greater than the threshold on their own.
func Escaped(z complex128) bool {
	return !(Magnitude(z) <= Threshold)
}

package escape

// DefaultPower is the exponent of the classic z^2 + c recurrence.
const DefaultPower = 2

// Iterator walks the sequence z(n+1) = z(n)^power + c. It keeps only the
// current value, so restarting means building a new Iterator.
type Iterator struct {
	c     complex128
	z     complex128
	power int
}

// NewIterator starts the sequence at z0 with the constant c.
func NewIterator(c complex128, z0 complex128, power int) *Iterator {
	return &Iterator{c: c, z: z0, power: power}
}

// NewMandelbrotIterator starts the sequence at zero.
func NewMandelbrotIterator(c complex128, power int) *Iterator {
	return NewIterator(c, 0, power)
}

// Next advances the sequence one step and returns the new value.
func (it *Iterator) Next() complex128 {
	it.z = PowInt(it.z, it.power) + it.c
	return it.z
}

// Nth advances n+1 steps and returns the last value, so Nth(0) equals a
// single call to Next.
func (it *Iterator) Nth(n int) complex128 {
	for i := 0; i < n; i++ {
		it.Next()
	}
	return it.Next()
}

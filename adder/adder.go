// Package adder implements the int32 addition exported by libadder.
//
// Overflow wraps using two's-complement arithmetic, the native behavior of Go's
// fixed-width signed integers: Add(math.MaxInt32, 1) == math.MinInt32. Add never
// panics and never allocates, so it is safe to call across a C boundary from any
// number of threads.
package adder

import "math"

// Add returns a + b, wrapping on overflow.
func Add(a, b int32) int32 {
	return a + b
}

// Overflows reports whether a + b falls outside the int32 range, i.e. whether
// Add wrapped.
func Overflows(a, b int32) bool {
	sum := int64(a) + int64(b)
	return sum > math.MaxInt32 || sum < math.MinInt32
}

//go:build cgo

// Package cgoadd is the C side of the call-overhead comparison: the same
// int32 addition as adder.Add, compiled by the C toolchain.
package cgoadd

/*
#include <stdint.h>

static inline int32_t add_c(int32_t a, int32_t b) {
    return (int32_t)((uint32_t)a + (uint32_t)b);
}
*/
// #cgo nocallback add_c
// #cgo noescape add_c
import "C"

// Enabled reports whether AddC calls into C.
const Enabled = true

// AddC is a small wrapper exposing the C implementation as a normal Go function.
// Overflow wraps, matching adder.Add.
func AddC(a, b int32) int32 {
	return int32(C.add_c(C.int32_t(a), C.int32_t(b)))
}

package main

/*
#include <stdint.h>
#include "adder.h"

static inline int32_t call_add(int32_t a, int32_t b) {
    return add(a, b);
}
*/
import "C"

// callAdd invokes the exported add symbol from C, the way a foreign caller would.
func callAdd(a, b int32) int32 {
	return int32(C.call_add(C.int32_t(a), C.int32_t(b)))
}

// Command libadder builds the adder shared library:
//
//	go build -buildmode=c-shared -o libadder.so ./cmd/libadder
//
// The exported symbol matches adder.h.
package main

/*
#include <stdint.h>
*/
import "C"

import "github.com/analogrelay/go-adder/adder"

//export add
func add(a, b C.int32_t) C.int32_t {
	return C.int32_t(adder.Add(int32(a), int32(b)))
}

func main() {}

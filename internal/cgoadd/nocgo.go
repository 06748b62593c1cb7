//go:build !cgo

package cgoadd

const Enabled = false

func AddC(a, b int32) int32 {
	panic("cgoadd: built without cgo")
}

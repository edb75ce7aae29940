package renderer

import "unsafe"

// Float32Bytes reinterprets values as bytes in host order, which is the order
// GPUs consume vertex data in. The result aliases values.
func Float32Bytes(values []float32) []byte {
	if len(values) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(values)*4)
}

// Uint32Bytes reinterprets values as bytes in host order. The result aliases values.
func Uint32Bytes(values []uint32) []byte {
	if len(values) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(values)*4)
}

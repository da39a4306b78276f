package buffer

import (
	"fmt"
	"unsafe"

	"github.com/npillmayer/dsc"
)

// Scalar is the set of types a Buffer may be viewed as. All of them are free of
// pointers, so placing them in memory outside of the Go heap is safe.
type Scalar interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr |
		~float32 | ~float64
}

// View returns the content of a Buffer as a slice of T. The slice aliases the Buffer's
// memory and is invalidated by Resize and Destroy.
//
// The element size of the Buffer has to match the size of T.
func View[T Scalar](buf *Buffer) ([]T, error) {
	if buf.IsEmpty() {
		return nil, fmt.Errorf("%w: cannot view empty buffer", dsc.ErrInvalidAddress)
	}
	var zero T
	if uintptr(buf.tsize) != unsafe.Sizeof(zero) {
		return nil, fmt.Errorf("%w: element size %d does not match %T of size %d",
			dsc.ErrInvalidArgument, buf.tsize, zero, unsafe.Sizeof(zero))
	}
	p := unsafe.Pointer(unsafe.SliceData(buf.mem))
	if uintptr(p)%unsafe.Alignof(zero) != 0 {
		return nil, fmt.Errorf("%w: buffer memory not aligned for %T", dsc.ErrInvalidArgument, zero)
	}
	return unsafe.Slice((*T)(p), len(buf.mem)/buf.tsize), nil
}

// First returns the first element of a Buffer as a T. This is the usual way to read the
// payload of a single-element buffer.
func First[T Scalar](buf *Buffer) (T, error) {
	v, err := View[T](buf)
	if err != nil {
		var zero T
		return zero, err
	}
	return v[0], nil
}

// Encode returns the in-memory representation of a sequence of values, suitable as an
// initial payload for containers with an element size of unsafe.Sizeof(T).
func Encode[T Scalar](values ...T) []byte {
	if len(values) == 0 {
		return nil
	}
	n := len(values) * int(unsafe.Sizeof(values[0]))
	b := make([]byte, n)
	copy(b, unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(values))), n))
	return b
}

// Decode reads the first value of type T from a byte slice holding its in-memory
// representation, as produced by Encode. b must be at least unsafe.Sizeof(T) long.
func Decode[T Scalar](b []byte) (T, error) {
	var v T
	if len(b) < int(unsafe.Sizeof(v)) {
		return v, fmt.Errorf("%w: %d bytes too short for %T", dsc.ErrInvalidArgument, len(b), v)
	}
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&v)), unsafe.Sizeof(v)), b)
	return v, nil
}

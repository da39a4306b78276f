package buffer

import (
	"fmt"
	"math"

	"github.com/npillmayer/dsc"
)

// Buffer is a resizable memory arena for elements of a fixed size.
//
// The zero value is the canonical empty Buffer: it owns no memory and every
// operation except Create reports dsc.ErrInvalidAddress on it.
type Buffer struct {
	mem   []byte    // nil ⇔ empty
	tsize int       // size of one element in bytes
	alloc Allocator // where mem came from and has to go back to
}

// Option is a type to help initializing buffers at creation time.
type Option func(Buffer) Buffer

// WithAllocator is an option to let a Buffer draw its memory from a given allocator.
// A nil allocator leaves the default allocator in place.
//
// Use it like this:
//
//	a := buffer.NewHeapAllocator()
//	buf, err := buffer.Create(10, 4, buffer.WithAllocator(a))
func WithAllocator(a Allocator) Option {
	return func(buf Buffer) Buffer {
		if a != nil {
			buf.alloc = a
		}
		return buf
	}
}

// Heap is an option to place a Buffer on the Go heap.
func Heap() Option {
	return WithAllocator(heap)
}

// --- API -------------------------------------------------------------------

// Create allocates a new Buffer holding nelem elements of tsize bytes each.
// Content of the new memory is unspecified; clients needing zeroed memory call Fill.
//
// Either argument being zero (or negative) is an error (dsc.ErrInvalidArgument); there is
// no uninitialized must-resize-first state. On error the empty Buffer is returned.
func Create(nelem, tsize int, opts ...Option) (Buffer, error) {
	buf := Buffer{tsize: tsize, alloc: defaultAllocator()}
	for _, option := range opts {
		buf = option(buf)
	}
	size, err := byteSize(nelem, tsize)
	if err != nil {
		tracer().Errorf("cannot create buffer: %v", err)
		return Buffer{tsize: tsize}, err
	}
	mem, err := buf.alloc.Alloc(size)
	if err != nil {
		tracer().Errorf("failed to allocate memory for buffer of %d bytes: %v", size, err)
		return Buffer{tsize: tsize}, fmt.Errorf("%w: %d bytes: %v", dsc.ErrOutOfMemory, size, err)
	}
	buf.mem = mem
	tracer().Debugf("created %s", buf)
	return buf, nil
}

// Destroy releases the memory of a Buffer and resets it to the empty state.
//
// Destroying an empty Buffer is an error (dsc.ErrInvalidAddress). If the allocator fails
// to release the memory, the Buffer is reset nevertheless and an error wrapping
// dsc.ErrDeallocation is returned.
func (buf *Buffer) Destroy() error {
	if buf.IsEmpty() {
		tracer().Errorf("the buffer points to an invalid address")
		return fmt.Errorf("%w: buffer already destroyed", dsc.ErrInvalidAddress)
	}
	mem := buf.mem
	buf.mem = nil
	if err := buf.alloc.Free(mem); err != nil {
		tracer().Errorf("failed to release buffer memory: %v", err)
		return fmt.Errorf("%w: %v", dsc.ErrDeallocation, err)
	}
	return nil
}

// Resize grows or shrinks a Buffer to hold nelem elements. The common prefix of old and
// new content is preserved, the tail of a growth is unspecified.
//
// Shrinking to zero elements is an error (dsc.ErrInvalidArgument); use Destroy instead.
// If the allocator fails, the Buffer keeps its previous memory and size.
func (buf *Buffer) Resize(nelem int) error {
	if buf.IsEmpty() {
		tracer().Errorf("the buffer points to an invalid address")
		return fmt.Errorf("%w: cannot resize empty buffer", dsc.ErrInvalidAddress)
	}
	size, err := byteSize(nelem, buf.tsize)
	if err != nil {
		tracer().Errorf("cannot resize buffer: %v", err)
		return err
	}
	if size == len(buf.mem) {
		return nil
	}
	mem, err := buf.alloc.Realloc(buf.mem, size)
	if err != nil {
		tracer().Errorf("failed to remap buffer to %d bytes: %v", size, err)
		return fmt.Errorf("%w: %d bytes: %v", dsc.ErrOutOfMemory, size, err)
	}
	tracer().Debugf("resized buffer from %d to %d bytes", len(buf.mem), size)
	buf.mem = mem
	return nil
}

// Fill writes the value b to every byte of a Buffer.
func (buf *Buffer) Fill(b byte) error {
	if buf.IsEmpty() {
		tracer().Errorf("the buffer points to an invalid address")
		return fmt.Errorf("%w: cannot fill empty buffer", dsc.ErrInvalidAddress)
	}
	for i := range buf.mem {
		buf.mem[i] = b
	}
	return nil
}

// Capacity returns the number of elements a Buffer holds.
// For an empty Buffer, -1 is returned together with an error.
func (buf *Buffer) Capacity() (int, error) {
	if buf.IsEmpty() {
		tracer().Errorf("the buffer points to an invalid address")
		return -1, fmt.Errorf("%w: empty buffer has no capacity", dsc.ErrInvalidAddress)
	}
	return len(buf.mem) / buf.tsize, nil
}

// --- Accessors -------------------------------------------------------------

// IsEmpty is true for a Buffer which owns no memory, i.e. which has never been created
// successfully or has been destroyed. A nil Buffer is empty.
func (buf *Buffer) IsEmpty() bool {
	return buf == nil || buf.mem == nil
}

// Bytes returns the memory of a Buffer. The slice is invalidated by Resize and Destroy.
// An empty Buffer returns nil.
func (buf *Buffer) Bytes() []byte {
	if buf == nil {
		return nil
	}
	return buf.mem
}

// Element returns the bytes of the i-th element of a Buffer. Like Bytes, the slice
// aliases the Buffer's memory.
func (buf *Buffer) Element(i int) ([]byte, error) {
	n, err := buf.Capacity()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= n {
		return nil, fmt.Errorf("%w: element index %d not in [0…%d)", dsc.ErrInvalidArgument, i, n)
	}
	start := i * buf.tsize
	return buf.mem[start : start+buf.tsize : start+buf.tsize], nil
}

// ElementSize returns the size of a single element in bytes.
func (buf *Buffer) ElementSize() int {
	if buf == nil {
		return 0
	}
	return buf.tsize
}

// Size returns the number of bytes a Buffer holds, which is 0 for an empty Buffer.
func (buf *Buffer) Size() int {
	if buf == nil {
		return 0
	}
	return len(buf.mem)
}

// Allocator returns the allocator a Buffer draws its memory from.
// Containers use it to place all their buffers with the same allocator.
func (buf *Buffer) Allocator() Allocator {
	if buf == nil || buf.alloc == nil {
		return defaultAllocator()
	}
	return buf.alloc
}

// Option returns an option which places new buffers with the same allocator as buf.
func (buf *Buffer) Option() Option {
	return WithAllocator(buf.Allocator())
}

func (buf Buffer) String() string {
	if buf.mem == nil {
		return fmt.Sprintf("Buffer(empty, tsize=%d)", buf.tsize)
	}
	return fmt.Sprintf("Buffer(%d×%d bytes)", len(buf.mem)/buf.tsize, buf.tsize)
}

// --- Helpers ---------------------------------------------------------------

func byteSize(nelem, tsize int) (int, error) {
	if nelem <= 0 || tsize <= 0 {
		return 0, fmt.Errorf("%w: buffer of %d elements of %d bytes", dsc.ErrInvalidArgument, nelem, tsize)
	}
	if nelem > math.MaxInt/tsize {
		return 0, fmt.Errorf("%w: buffer of %d elements of %d bytes overflows", dsc.ErrInvalidArgument, nelem, tsize)
	}
	return nelem * tsize, nil
}

/*
Package buffer implements the memory arena every container of this module is built on.

A Buffer owns exactly one contiguous region of memory of element-count × element-size
bytes. It may grow and shrink in place (the overlapping prefix of its content is
preserved), be filled with a byte value, and report its capacity in elements.
A Buffer is destroyed exactly once; destroying it a second time is reported as an
error (dsc.ErrInvalidAddress), never undefined behaviour.

Memory is handed out by an Allocator. On unix systems the default is an allocator
for anonymous memory mappings (page-grain, off the Go heap); elsewhere, and on
request, Go heap memory is used:

	buf, err := buffer.Create(16, 8, buffer.Heap())
	if err != nil {
	    …
	}
	defer buf.Destroy()

Buffers are values. Operations which change the allocation state have pointer
receivers; copying a Buffer copies the handle, not the memory, and clients must
not destroy both copies.
*/
package buffer

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'dsc.buffer'.
func tracer() tracing.Trace {
	return tracing.Select("dsc.buffer")
}

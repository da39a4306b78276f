//go:build !unix

package buffer

// MmapAllocator is a heap allocator where memory mappings are not available.
type MmapAllocator = HeapAllocator

var mmapped = NewMmapAllocator()

// NewMmapAllocator creates an allocator with its own statistics. Where memory mappings
// are not available, it places buffers on the Go heap.
func NewMmapAllocator() *MmapAllocator {
	return NewHeapAllocator()
}

// Mmap is an option to place a Buffer in a memory mapping. Where memory mappings are
// not available, buffers are placed on the Go heap.
func Mmap() Option {
	tracer().Infof("memory mappings not supported on this platform, using heap")
	return WithAllocator(mmapped)
}

func defaultAllocator() Allocator {
	return heap
}

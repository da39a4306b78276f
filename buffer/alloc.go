package buffer

import (
	"fmt"
	"sync/atomic"
)

// Allocator hands out raw memory for buffers.
//
// Realloc must preserve the common prefix of old and new memory. If Realloc fails, the
// memory it has been handed must still be valid and owned by the caller. Memory is
// always returned to the allocator it has been drawn from.
type Allocator interface {
	Alloc(size int) ([]byte, error)
	Realloc(mem []byte, size int) ([]byte, error)
	Free(mem []byte) error
	Stats() Stats
}

// Stats is a snapshot of an allocator's bookkeeping.
type Stats struct {
	Allocs    uint64 // number of successful allocations, cumulative
	Frees     uint64 // number of successful releases, cumulative
	Reallocs  uint64 // number of successful re-allocations, cumulative
	LiveBytes int64  // bytes currently handed out
}

// Live returns the number of allocations which have not been released yet.
func (s Stats) Live() int64 {
	return int64(s.Allocs) - int64(s.Frees)
}

func (s Stats) String() string {
	return fmt.Sprintf("alloc=%d free=%d realloc=%d live=%d (%d bytes)",
		s.Allocs, s.Frees, s.Reallocs, s.Live(), s.LiveBytes)
}

// counters is shared bookkeeping for allocator implementations.
type counters struct {
	allocs, frees, reallocs atomic.Uint64
	live                    atomic.Int64
}

func (c *counters) alloc(size int) {
	c.allocs.Add(1)
	c.live.Add(int64(size))
}

func (c *counters) realloc(from, to int) {
	c.reallocs.Add(1)
	c.live.Add(int64(to - from))
}

func (c *counters) free(size int) {
	c.frees.Add(1)
	c.live.Add(-int64(size))
}

func (c *counters) snapshot() Stats {
	return Stats{
		Allocs:    c.allocs.Load(),
		Frees:     c.frees.Load(),
		Reallocs:  c.reallocs.Load(),
		LiveBytes: c.live.Load(),
	}
}

// --- Heap ------------------------------------------------------------------

// HeapAllocator places buffers on the Go heap. Memory is released by dropping the
// last reference; Free only does the bookkeeping.
type HeapAllocator struct {
	counters
}

var heap = NewHeapAllocator()

// NewHeapAllocator creates an allocator for Go heap memory with its own statistics.
func NewHeapAllocator() *HeapAllocator {
	return &HeapAllocator{}
}

// Alloc allocates size bytes of zeroed memory.
func (h *HeapAllocator) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("heap: invalid allocation size %d", size)
	}
	mem := make([]byte, size)
	h.alloc(size)
	return mem, nil
}

// Realloc moves mem to a fresh slice of size bytes.
func (h *HeapAllocator) Realloc(mem []byte, size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("heap: invalid allocation size %d", size)
	}
	m := make([]byte, size)
	copy(m, mem)
	h.realloc(len(mem), size)
	return m, nil
}

// Free releases mem.
func (h *HeapAllocator) Free(mem []byte) error {
	if mem == nil {
		return fmt.Errorf("heap: release of nil memory")
	}
	h.free(len(mem))
	return nil
}

// Stats returns a snapshot of the allocator's bookkeeping.
func (h *HeapAllocator) Stats() Stats {
	return h.snapshot()
}

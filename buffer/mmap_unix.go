//go:build unix

package buffer

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// MmapAllocator places buffers in anonymous private memory mappings. Memory is
// page-grain and lives outside of the Go heap, so it is invisible to the garbage
// collector and must be released explicitly.
type MmapAllocator struct {
	counters
}

var mmapped = NewMmapAllocator()

// NewMmapAllocator creates an allocator for memory mappings with its own statistics.
func NewMmapAllocator() *MmapAllocator {
	return &MmapAllocator{}
}

// Mmap is an option to place a Buffer in a private anonymous memory mapping.
func Mmap() Option {
	return WithAllocator(mmapped)
}

func defaultAllocator() Allocator {
	return mmapped
}

// Alloc maps size bytes of zeroed memory.
func (m *MmapAllocator) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("mmap: invalid allocation size %d", size)
	}
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}
	m.alloc(size)
	return mem, nil
}

// Realloc re-maps mem to size bytes. The mapping may move.
func (m *MmapAllocator) Realloc(mem []byte, size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("mmap: invalid allocation size %d", size)
	}
	if len(mem) == 0 {
		return nil, fmt.Errorf("mmap: re-mapping of nil memory")
	}
	m2, err := remap(mem, size)
	if err != nil {
		return nil, err
	}
	m.realloc(len(mem), size)
	return m2, nil
}

// Free unmaps mem. mem has to be a slice exactly as returned by Alloc or Realloc.
func (m *MmapAllocator) Free(mem []byte) error {
	if len(mem) == 0 {
		return fmt.Errorf("mmap: release of nil memory")
	}
	size := len(mem)
	if err := unix.Munmap(mem); err != nil {
		return err
	}
	m.free(size)
	return nil
}

// Stats returns a snapshot of the allocator's bookkeeping.
func (m *MmapAllocator) Stats() Stats {
	return m.snapshot()
}

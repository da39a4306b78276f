//go:build unix && !linux

package buffer

import "golang.org/x/sys/unix"

// remap emulates mremap: map a new region, copy the common prefix and unmap the old
// region. If anything fails, the old region stays untouched.
func remap(mem []byte, size int) ([]byte, error) {
	m, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}
	copy(m, mem)
	if err = unix.Munmap(mem); err != nil {
		_ = unix.Munmap(m)
		return nil, err
	}
	return m, nil
}

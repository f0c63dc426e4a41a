package membuf

import (
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

// MappedBuffer is a Buffer backed by an anonymous memory mapping instead of
// the garbage collected heap. Release unmaps the region, so the memory goes
// back to the operating system immediately rather than when the collector
// gets around to it. That makes it the backing of choice for short lived
// handles over large contents.
type MappedBuffer struct {
	region mmap.MMap
	length int
}

// NewMappedBuffer creates a new MappedBuffer holding a copy of initial.
func NewMappedBuffer(initial []byte) (*MappedBuffer, error) {
	b := &MappedBuffer{}
	if err := b.Resize(len(initial)); err != nil {
		return nil, err
	}
	copy(b.region, initial)
	return b, nil
}

// Len returns the current length of the buffer
func (b *MappedBuffer) Len() int { return b.length }

// Cap returns the size of the mapped region
func (b *MappedBuffer) Cap() int { return len(b.region) }

// Bytes returns the contents of the buffer without copying
func (b *MappedBuffer) Bytes() []byte { return b.region[:b.length] }

// ReadAt copies bytes starting at off into p and returns the number copied
func (b *MappedBuffer) ReadAt(p []byte, off int) int {
	if off < 0 || off >= b.length {
		return 0
	}
	return copy(p, b.region[off:b.length])
}

// WriteAt copies p into the buffer starting at off, growing the buffer if
// the write extends past the current length
func (b *MappedBuffer) WriteAt(p []byte, off int) (int, error) {
	if off < 0 {
		return 0, errors.Errorf("write at negative offset %d", off)
	}
	if end := off + len(p); end > b.length {
		if err := b.grow(end); err != nil {
			return 0, err
		}
	}
	return copy(b.region[off:], p), nil
}

// Resize sets the length of the buffer to n
func (b *MappedBuffer) Resize(n int) error {
	if n < 0 {
		return errors.Errorf("resize to negative length %d", n)
	}
	switch {
	case n < b.length:
		// pages keep their contents after a shrink, clear them so a later
		// grow reads zeroes
		clear(b.region[n:b.length])
		b.length = n
	case n > b.length:
		return b.grow(n)
	}
	return nil
}

// Release unmaps the region, returning the pages to the operating system.
// The buffer stays usable, the next write maps a fresh region.
func (b *MappedBuffer) Release() error {
	if b.region == nil {
		b.length = 0
		return nil
	}
	err := b.region.Unmap()
	b.region = nil
	b.length = 0
	return errors.Wrap(err, "could not unmap buffer region")
}

// grow extends the length to n, remapping into a larger region when the
// current one is too small. Fresh anonymous mappings are zero filled, and
// Resize clears on shrink, so the newly exposed bytes are always zero.
func (b *MappedBuffer) grow(n int) error {
	if n <= len(b.region) {
		b.length = n
		return nil
	}

	size := 2 * len(b.region)
	if size < n {
		size = n
	}

	next, err := mmap.MapRegion(nil, pageAligned(size), mmap.RDWR, mmap.ANON, 0)
	if err != nil {
		return errors.Wrap(err, "could not map anonymous region")
	}

	copy(next, b.region[:b.length])

	prev := b.region
	b.region, b.length = next, n

	if prev == nil {
		return nil
	}
	return errors.Wrap(prev.Unmap(), "could not unmap old buffer region")
}

// pageAligned rounds n up to a whole number of pages, mmap length is in
// pages anyway so anything less just wastes the remainder
func pageAligned(n int) int {
	pagesize := os.Getpagesize()
	pages := (n + pagesize - 1) / pagesize
	return pages * pagesize
}

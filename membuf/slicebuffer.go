package membuf

import "github.com/pkg/errors"

// smallest allocation made for a non-empty buffer, so that a run of tiny
// writes does not reallocate on every call
const minCapacity = 64

// SliceBuffer is a Buffer backed by an ordinary heap slice. Growth beyond
// the current allocation doubles the capacity, so a sequence of appends is
// amortized linear.
type SliceBuffer struct {
	data []byte
}

// NewSliceBuffer creates a new SliceBuffer holding a copy of initial.
func NewSliceBuffer(initial []byte) *SliceBuffer {
	b := &SliceBuffer{}
	if len(initial) > 0 {
		b.data = make([]byte, len(initial), grownCapacity(0, len(initial)))
		copy(b.data, initial)
	}
	return b
}

// Len returns the current length of the buffer
func (b *SliceBuffer) Len() int { return len(b.data) }

// Cap returns the size of the underlying allocation
func (b *SliceBuffer) Cap() int { return cap(b.data) }

// Bytes returns the contents of the buffer without copying
func (b *SliceBuffer) Bytes() []byte { return b.data }

// ReadAt copies bytes starting at off into p and returns the number copied
func (b *SliceBuffer) ReadAt(p []byte, off int) int {
	if off < 0 || off >= len(b.data) {
		return 0
	}
	return copy(p, b.data[off:])
}

// WriteAt copies p into the buffer starting at off, growing the buffer if
// the write extends past the current length
func (b *SliceBuffer) WriteAt(p []byte, off int) (int, error) {
	if off < 0 {
		return 0, errors.Errorf("write at negative offset %d", off)
	}
	if end := off + len(p); end > len(b.data) {
		b.grow(end)
	}
	return copy(b.data[off:], p), nil
}

// Resize sets the length of the buffer to n
func (b *SliceBuffer) Resize(n int) error {
	if n < 0 {
		return errors.Errorf("resize to negative length %d", n)
	}
	switch {
	case n < len(b.data):
		// keep the zeroed-tail invariant: the discarded region may be
		// resliced back in by a later grow
		clear(b.data[n:])
		b.data = b.data[:n]
	case n > len(b.data):
		b.grow(n)
	}
	return nil
}

// Release drops the allocation entirely, the buffer stays usable and grows
// again on the next write
func (b *SliceBuffer) Release() error {
	b.data = nil
	return nil
}

// grow extends the length to n, reallocating when the current capacity is
// not enough. The region between the old and new length is zero either way:
// fresh allocations start zeroed and Resize clears before shrinking.
func (b *SliceBuffer) grow(n int) {
	if n <= cap(b.data) {
		b.data = b.data[:n]
		return
	}
	next := make([]byte, n, grownCapacity(cap(b.data), n))
	copy(next, b.data)
	b.data = next
}

func grownCapacity(current, need int) int {
	next := 2 * current
	if next < minCapacity {
		next = minCapacity
	}
	if next < need {
		next = need
	}
	return next
}

// Package membuf implements the resizable byte storage backing a memfile
// handle.
//
// initially tried to use bytes.Buffer but the main restriction with that is
// that it does not allow the freedom to move around in the buffer. Further,
// it always writes at the end of the buffer and its Truncate cannot grow
//
// what a file handle actually needs from its storage is random access plus
// explicit length control: read at an offset, write at an offset growing as
// needed, change the length in either direction, and give the memory back.
// this package implements that minimal surface twice, once on the heap and
// once on an anonymous memory mapping
package membuf

// Buffer is resizable byte storage addressed by absolute offsets.
//
// Storage beyond the current length up to the current capacity is always
// zeroed, so growing back into previously used space never exposes stale
// bytes.
type Buffer interface {
	// Len returns the current length of the buffer in bytes.
	Len() int

	// Cap returns the size of the underlying allocation.
	Cap() int

	// Bytes returns the contents [0, Len()) without copying. Callers must
	// not retain the slice across writes, resizes or a Release.
	Bytes() []byte

	// ReadAt copies bytes starting at off into p and returns the number
	// copied, stopping at the end of the buffer. Reads outside [0, Len())
	// copy nothing.
	ReadAt(p []byte, off int) int

	// WriteAt copies p into the buffer starting at off, growing the buffer
	// if the write extends past the current length. Any gap between the old
	// length and off reads as zero bytes.
	WriteAt(p []byte, off int) (int, error)

	// Resize sets the length to n. Growing exposes zero bytes, shrinking
	// discards the tail.
	Resize(n int) error

	// Release discards the contents and returns the storage to the system,
	// leaving an empty buffer that is still usable.
	Release() error
}

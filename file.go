package memfile

import (
	"io"

	"github.com/performancecopilot/memfile/membuf"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// File is an in-memory file handle: a growable byte buffer coupled with a
// cursor. It supports the usual file operations, reading, writing, seeking,
// truncation in both directions and close, with no backing device. The zero
// value is not usable, construct handles with Open, OpenString, OpenMapped
// or NewFile.
//
// A File is not safe for concurrent use, every operation reads or moves the
// cursor. Wrap it in a lock to share it.
type File struct {
	buf membuf.Buffer
	pos int

	// append forces every write to the end of the buffer and leaves the
	// cursor alone, fixed at open time
	append bool
}

// Open creates a File seeded with a private copy of data, positioned at the
// start. The mode string follows the familiar file-open vocabulary distilled
// to what matters in memory: a leading 'a' opens the handle in append mode,
// where all writes land at the end of the buffer and the cursor stays put.
// Any other mode, "r", "w", "r+" and friends, or the empty string, opens a
// normal handle that reads and writes at the cursor.
func Open(data []byte, mode string) *File {
	return NewFile(membuf.NewSliceBuffer(data), mode)
}

// OpenString is Open for string contents.
func OpenString(contents string, mode string) *File {
	return NewFile(membuf.NewSliceBuffer([]byte(contents)), mode)
}

// OpenMapped is Open with the contents held in an anonymous memory mapping
// instead of the heap, so Close hands the pages straight back to the
// operating system. Worth it for short lived handles over large contents,
// see membuf.MappedBuffer.
func OpenMapped(data []byte, mode string) (*File, error) {
	buf, err := membuf.NewMappedBuffer(data)
	if err != nil {
		return nil, err
	}

	if logging {
		logger.Info("opened memory mapped handle",
			zap.String("module", "memfile"),
			zap.Int("len", buf.Len()),
			zap.Int("cap", buf.Cap()),
		)
	}

	return NewFile(buf, mode), nil
}

// NewFile creates a File over caller-supplied backing storage. The File
// takes ownership of buf, the caller must not touch it afterwards.
func NewFile(buf membuf.Buffer, mode string) *File {
	return &File{
		buf:    buf,
		append: len(mode) > 0 && mode[0] == 'a',
	}
}

// Pos returns the current cursor position.
func (f *File) Pos() int { return f.pos }

// Len returns the current length of the contents in bytes.
func (f *File) Len() int { return f.buf.Len() }

// Seek moves the cursor to offset, interpreted relative to whence in the
// io.Seeker way: io.SeekStart, io.SeekCurrent or io.SeekEnd. The target must
// land inside the current contents, [0, Len()]; anything else fails with
// ErrSeekOutOfRange and the cursor stays where it was. Growing the file is
// the job of Resize and the write calls, never of Seek.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = int64(f.pos)
	case io.SeekEnd:
		base = int64(f.buf.Len())
	default:
		return 0, errors.Wrapf(ErrInvalidArgument, "unknown whence %d", whence)
	}

	target := base + offset
	if target < 0 || target > int64(f.buf.Len()) {
		return 0, errors.Wrapf(ErrSeekOutOfRange, "position %d is outside [0, %d]", target, f.buf.Len())
	}

	f.pos = int(target)
	return target, nil
}

// Resize sets the length of the contents to n and returns the length as it
// was before the call. Growing exposes zero bytes, shrinking discards the
// tail and pulls the cursor back to the new end if it would be left past it.
// A negative n fails with ErrInvalidArgument and mutates nothing.
func (f *File) Resize(n int) (int, error) {
	if n < 0 {
		return 0, errors.Wrapf(ErrInvalidArgument, "resize to negative length %d", n)
	}

	prev := f.buf.Len()
	if err := f.buf.Resize(n); err != nil {
		return 0, err
	}
	if f.pos > n {
		f.pos = n
	}

	if logging && n > prev {
		logger.Info("resize grew the buffer",
			zap.String("module", "memfile"),
			zap.Int("from", prev),
			zap.Int("to", n),
		)
	}

	return prev, nil
}

// Close empties the handle: the contents are discarded, the cursor returns
// to 0 and the backing storage is released eagerly, unmapped in the case of
// OpenMapped. The handle remains usable, it is simply empty, so Close is
// also the cheapest way to reset one for reuse. The error is the storage
// release error and is always nil for slice-backed handles.
func (f *File) Close() error {
	err := f.buf.Release()
	f.pos = 0

	if err != nil && logging {
		logger.Error("failed to release backing storage",
			zap.String("module", "memfile"),
			zap.Error(err),
		)
	}

	return err
}

// Flush is a no-op: there is no device to flush to. It exists so a File can
// stand in for file objects whose callers flush them.
func (f *File) Flush() error { return nil }

// Sync is a no-op like Flush, matching the method os.File callers reach for.
// Buffering knobs make no difference to a buffer that is its own storage.
func (f *File) Sync() error { return nil }

// Bytes returns a copy of the entire contents, regardless of the cursor,
// which does not move. The copy is the caller's to keep: later writes,
// resizes or a Close do not touch it.
func (f *File) Bytes() []byte {
	out := make([]byte, f.buf.Len())
	f.buf.ReadAt(out, 0)
	return out
}

// String returns the entire contents as a string, regardless of the cursor.
func (f *File) String() string {
	return string(f.buf.Bytes())
}

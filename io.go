package memfile

import (
	"io"

	"github.com/pkg/errors"
)

// File implements the standard library file interfaces, so it drops into
// code written against os.File and friends.
var (
	_ io.Reader       = (*File)(nil)
	_ io.Writer       = (*File)(nil)
	_ io.Seeker       = (*File)(nil)
	_ io.Closer       = (*File)(nil)
	_ io.ReaderAt     = (*File)(nil)
	_ io.WriterAt     = (*File)(nil)
	_ io.ByteReader   = (*File)(nil)
	_ io.ByteScanner  = (*File)(nil)
	_ io.StringWriter = (*File)(nil)
	_ io.ReaderFrom   = (*File)(nil)
	_ io.WriterTo     = (*File)(nil)
)

const maxInt = int(^uint(0) >> 1)

// Read reads up to len(p) bytes from the cursor, advancing it, and reports
// io.EOF once the cursor sits at the end of the contents.
func (f *File) Read(p []byte) (int, error) {
	if f.pos >= f.buf.Len() {
		return 0, io.EOF
	}

	n := f.buf.ReadAt(p, f.pos)
	f.pos += n
	return n, nil
}

// ReadByte reads and returns the byte at the cursor, or io.EOF.
func (f *File) ReadByte() (byte, error) {
	view := f.buf.Bytes()
	if f.pos >= len(view) {
		return 0, io.EOF
	}

	c := view[f.pos]
	f.pos++
	return c, nil
}

// UnreadByte moves the cursor back one byte. It fails only at the start of
// the contents.
func (f *File) UnreadByte() error {
	if f.pos <= 0 {
		return errors.Wrap(ErrSeekOutOfRange, "at beginning of file")
	}

	f.pos--
	return nil
}

// Write writes p at the cursor, advancing it, growing the contents when the
// write runs past the end. On an append-mode handle the bytes land at the
// end of the contents instead and the cursor does not move.
func (f *File) Write(p []byte) (int, error) {
	start := f.pos
	if f.append {
		start = f.buf.Len()
	}

	n, err := f.buf.WriteAt(p, start)
	if err != nil {
		return 0, err
	}

	if !f.append {
		f.pos = start + n
	}
	return n, nil
}

// WriteString writes s like Write.
func (f *File) WriteString(s string) (int, error) {
	return f.Write([]byte(s))
}

// ReadAt reads len(p) bytes starting at absolute offset off without touching
// the cursor. Like os.File, it returns io.EOF with the partial count when
// the contents end before p is full.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.Wrapf(ErrInvalidArgument, "read at negative offset %d", off)
	}
	if off >= int64(f.buf.Len()) {
		return 0, io.EOF
	}

	n := f.buf.ReadAt(p, int(off))
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt writes p starting at absolute offset off without touching the
// cursor, growing the contents as needed. Writing past the current end
// zero-fills the gap. Append-mode handles reject WriteAt with
// ErrWriteAtInAppendMode, as os.File does for O_APPEND.
func (f *File) WriteAt(p []byte, off int64) (int, error) {
	if f.append {
		return 0, ErrWriteAtInAppendMode
	}
	if off < 0 || off > int64(maxInt)-int64(len(p)) {
		return 0, errors.Wrapf(ErrInvalidArgument, "write at offset %d out of range", off)
	}

	return f.buf.WriteAt(p, int(off))
}

// ReadFrom writes r's contents at the cursor until io.EOF, implementing
// io.ReaderFrom so io.Copy into a File avoids an intermediate buffer.
func (f *File) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	chunk := make([]byte, 32*1024)

	for {
		n, err := r.Read(chunk)
		if n > 0 {
			if _, werr := f.Write(chunk[:n]); werr != nil {
				return total, werr
			}
			total += int64(n)
		}

		switch err {
		case nil:
		case io.EOF:
			return total, nil
		default:
			return total, err
		}
	}
}

// WriteTo drains the contents from the cursor to the end into w, advancing
// the cursor past everything written.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	rest := f.buf.Bytes()[f.pos:]
	if len(rest) == 0 {
		return 0, nil
	}

	n, err := w.Write(rest)
	f.pos += n
	if err != nil {
		return int64(n), err
	}
	if n < len(rest) {
		return int64(n), io.ErrShortWrite
	}
	return int64(n), nil
}

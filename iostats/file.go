package iostats

import (
	"io"

	"github.com/performancecopilot/memfile"
)

// File wraps a memfile handle so the byte count of every data operation
// lands in a Recorder. Methods not shadowed here, Seek, Resize, Close and
// the rest, are promoted from the embedded handle unchanged.
//
// Lines iterates on the embedded handle directly and is not recorded, scan
// with LineFormat when line reads should count.
type File struct {
	*memfile.File
	stats *Recorder
}

// Wrap instruments f with stats. Passing a shared Recorder aggregates
// several handles into one distribution.
func Wrap(f *memfile.File, stats *Recorder) *File {
	return &File{File: f, stats: stats}
}

// Stats returns the Recorder the observations land in.
func (f *File) Stats() *Recorder { return f.stats }

func (f *File) Read(p []byte) (int, error) {
	n, err := f.File.Read(p)
	f.stats.RecordRead(n)
	return n, err
}

func (f *File) ReadByte() (byte, error) {
	c, err := f.File.ReadByte()
	if err == nil {
		f.stats.RecordRead(1)
	}
	return c, err
}

func (f *File) ReadAt(p []byte, off int64) (int, error) {
	n, err := f.File.ReadAt(p, off)
	f.stats.RecordRead(n)
	return n, err
}

// Scan records the bytes the formats consumed, measured by how far the
// cursor moved.
func (f *File) Scan(formats ...memfile.Format) ([]memfile.Result, error) {
	before := f.File.Pos()
	res, err := f.File.Scan(formats...)
	f.stats.RecordRead(f.File.Pos() - before)
	return res, err
}

func (f *File) Write(p []byte) (int, error) {
	n, err := f.File.Write(p)
	f.stats.RecordWrite(n)
	return n, err
}

func (f *File) WriteString(s string) (int, error) {
	n, err := f.File.WriteString(s)
	f.stats.RecordWrite(n)
	return n, err
}

func (f *File) WriteAt(p []byte, off int64) (int, error) {
	n, err := f.File.WriteAt(p, off)
	f.stats.RecordWrite(n)
	return n, err
}

func (f *File) WriteValues(vals ...memfile.Value) (int, error) {
	n, err := f.File.WriteValues(vals...)
	f.stats.RecordWrite(n)
	return n, err
}

func (f *File) ReadFrom(r io.Reader) (int64, error) {
	n, err := f.File.ReadFrom(r)
	f.stats.RecordWrite(int(n))
	return n, err
}

// WriteTo drains the handle into w, which reads the handle, so the count is
// recorded as a read.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	n, err := f.File.WriteTo(w)
	f.stats.RecordRead(int(n))
	return n, err
}

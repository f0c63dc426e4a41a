package memfile

import "iter"

// Lines returns an iterator over the lines remaining between the cursor and
// the end of the contents, splitting like LineFormat: terminators are
// consumed and not yielded, and a last line without one still counts. The
// sequence simply stops at the end, no marker and no error surface.
//
// Lines is lazy, each step consumes from the handle as it happens, so the
// sequence observes writes and resizes made between steps and an abandoned
// loop leaves the cursor after the last line it yielded. Every yielded slice
// is the caller's own copy.
func (f *File) Lines() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for {
			r := f.scanLine()
			if r.EOF() {
				return
			}
			if !yield(r.data) {
				return
			}
		}
	}
}

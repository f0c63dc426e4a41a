package memfile

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// formatKind is an enumerated type representing all valid read specifiers
type formatKind int32

const (
	invalidFormat formatKind = iota
	lineFormat
	numberFormat
	allFormat
	charsFormat
)

// Format is a read specifier for Scan. The zero value is invalid, use the
// package variables LineFormat, NumberFormat and AllFormat, the Chars
// constructor, or ParseFormat.
type Format struct {
	kind  formatKind
	count int
}

// The three specifiers that need no parameter.
var (
	// LineFormat reads bytes up to and not including the next '\n'. The
	// terminator is consumed but not returned.
	LineFormat = Format{kind: lineFormat}

	// NumberFormat skips leading whitespace and reads the longest prefix
	// that is a valid decimal numeric literal.
	NumberFormat = Format{kind: numberFormat}

	// AllFormat reads everything from the cursor to the end, possibly
	// nothing. It never produces an EOF marker.
	AllFormat = Format{kind: allFormat}
)

// Chars returns a Format that reads up to n bytes. Fewer than n remaining is
// a short read, not a failure.
func Chars(n int) Format {
	return Format{kind: charsFormat, count: n}
}

// ParseFormat maps the conventional specifier strings to a Format: "l" or
// "*l" for a line, "n" or "*n" for a number, "a" or "*a" for the remainder,
// and a decimal count like "512" for a fixed number of bytes.
func ParseFormat(s string) (Format, error) {
	t := strings.TrimPrefix(s, "*")
	switch t {
	case "l":
		return LineFormat, nil
	case "n":
		return NumberFormat, nil
	case "a":
		return AllFormat, nil
	}

	n, err := strconv.Atoi(t)
	if err != nil || n < 0 {
		return Format{}, errors.Wrapf(ErrInvalidFormat, "%q", s)
	}
	return Chars(n), nil
}

// String renders the format as its conventional specifier string.
func (fm Format) String() string {
	switch fm.kind {
	case lineFormat:
		return "*l"
	case numberFormat:
		return "*n"
	case allFormat:
		return "*a"
	case charsFormat:
		return strconv.Itoa(fm.count)
	}
	return "invalid"
}

func (fm Format) valid() bool {
	switch fm.kind {
	case lineFormat, numberFormat, allFormat:
		return true
	case charsFormat:
		return fm.count >= 0
	}
	return false
}

// ResultKind is an enumerated type representing the possible outcomes of a
// single read format
type ResultKind int32

// Possible values for a ResultKind
const (
	BytesResult ResultKind = iota
	NumberResult
	EOFResult
)

//go:generate stringer -type=ResultKind

// Result is the outcome of one Format in a Scan call: a byte sequence, a
// parsed number, or an EOF marker for a format that ran out of input.
// Running out of input is an ordinary outcome, not an error.
type Result struct {
	kind ResultKind
	data []byte
	num  float64
}

var eofResult = Result{kind: EOFResult}

func bytesResult(b []byte) Result   { return Result{kind: BytesResult, data: b} }
func numberResult(x float64) Result { return Result{kind: NumberResult, num: x} }

// Kind returns which outcome the result holds.
func (r Result) Kind() ResultKind { return r.kind }

// EOF reports whether the format ran out of input.
func (r Result) EOF() bool { return r.kind == EOFResult }

// Bytes returns the bytes read by a line, count or all format. The slice is
// the caller's own copy. It is nil for number results and EOF markers.
func (r Result) Bytes() []byte { return r.data }

// Number returns the value read by NumberFormat, and 0 for everything else.
func (r Result) Number() float64 { return r.num }

// String renders the result for logs and tests: byte results as text,
// numbers as their shortest round-trip decimal, markers as "<eof>".
func (r Result) String() string {
	switch r.kind {
	case NumberResult:
		return strconv.FormatFloat(r.num, 'g', -1, 64)
	case EOFResult:
		return "<eof>"
	default:
		return string(r.data)
	}
}

// Scan reads one Result per Format from the cursor, left to right. Calling
// it with no formats reads a single line.
//
// Every format is validated before anything is consumed: an unknown format
// or a negative count fails the whole call with ErrInvalidFormat and the
// cursor does not move.
//
// A LineFormat or NumberFormat that finds no input yields an EOF marker and
// abandons the formats after it, so the returned slice can be shorter than
// the request. Chars and AllFormat never abandon: a count format at the end
// of the contents yields its marker and scanning continues, AllFormat simply
// yields whatever remains, possibly nothing.
//
// All returned byte slices are copies, they stay intact when the handle is
// written, resized or closed.
func (f *File) Scan(formats ...Format) ([]Result, error) {
	if len(formats) == 0 {
		formats = []Format{LineFormat}
	}

	for i, fm := range formats {
		if !fm.valid() {
			return nil, errors.Wrapf(ErrInvalidFormat, "format %v at index %d", fm, i)
		}
	}

	results := make([]Result, 0, len(formats))
	for _, fm := range formats {
		var r Result
		switch fm.kind {
		case charsFormat:
			r = f.scanChars(fm.count)
		case lineFormat:
			r = f.scanLine()
		case numberFormat:
			r = f.scanNumber()
		case allFormat:
			r = f.scanAll()
		}
		results = append(results, r)

		// only line and number failures abandon the remaining formats,
		// a count format that hit the end does not
		if r.EOF() && (fm.kind == lineFormat || fm.kind == numberFormat) {
			break
		}
	}

	return results, nil
}

// scanChars reads up to n bytes from the cursor. With nothing remaining it
// yields the EOF marker whatever n is; otherwise n == 0 reads empty bytes.
func (f *File) scanChars(n int) Result {
	remaining := f.buf.Len() - f.pos
	if remaining == 0 {
		return eofResult
	}
	if n > remaining {
		n = remaining
	}

	out := make([]byte, n)
	f.buf.ReadAt(out, f.pos)
	f.pos += n
	return bytesResult(out)
}

// scanLine reads bytes up to the next '\n', consuming but not returning the
// terminator. The last line of the contents needs no terminator.
func (f *File) scanLine() Result {
	view := f.buf.Bytes()
	if f.pos >= len(view) {
		return eofResult
	}

	rest := view[f.pos:]
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		f.pos += i + 1
		return bytesResult(copyBytes(rest[:i]))
	}

	f.pos = len(view)
	return bytesResult(copyBytes(rest))
}

// scanAll reads everything from the cursor to the end.
func (f *File) scanAll() Result {
	view := f.buf.Bytes()
	out := copyBytes(view[f.pos:])
	f.pos = len(view)
	return bytesResult(out)
}

// scanNumber skips whitespace, then consumes the longest prefix that is a
// valid decimal numeric literal. When no valid prefix exists the cursor is
// left where it started, before the skipped whitespace.
func (f *File) scanNumber() Result {
	view := f.buf.Bytes()

	start := f.pos
	for start < len(view) && isSpace(view[start]) {
		start++
	}

	width := numberPrefixWidth(view[start:])
	if width == 0 {
		return eofResult
	}

	x, err := strconv.ParseFloat(string(view[start:start+width]), 64)
	if err != nil {
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || numErr.Err != strconv.ErrRange {
			return eofResult
		}
		// out of range literals saturate like strtod, keep the value
	}

	f.pos = start + width
	return numberResult(x)
}

// numberPrefixWidth returns the length of the longest prefix of b matching
//
//	sign? (digits ['.' digits?] | '.' digits) (('e'|'E') sign? digits)?
//
// and 0 when no prefix matches. Hex, "inf" and "nan" spellings are not
// numbers here.
func numberPrefixWidth(b []byte) int {
	i := 0
	if i < len(b) && (b[i] == '+' || b[i] == '-') {
		i++
	}

	digits := 0
	for i < len(b) && isDigit(b[i]) {
		i++
		digits++
	}
	if i < len(b) && b[i] == '.' {
		j := i + 1
		for j < len(b) && isDigit(b[j]) {
			j++
		}
		if frac := j - (i + 1); digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}

	// an exponent needs at least one digit, otherwise the 'e' is not part
	// of the number
	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		j := i + 1
		if j < len(b) && (b[j] == '+' || b[j] == '-') {
			j++
		}
		exp := 0
		for j < len(b) && isDigit(b[j]) {
			j++
			exp++
		}
		if exp > 0 {
			i = j
		}
	}

	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func copyBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
